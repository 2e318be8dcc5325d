package semi

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	sectionRe  = regexp.MustCompile(`^([^: ]+):\s*$`)
	includeRe  = regexp.MustCompile(`^include:\s*(.+)$`)
	variableRe = regexp.MustCompile(`^([^ <:.]+)` +
		`(?: < ([^ &:.]+(?: & [^ &:.]+)*))?` +
		`(?: : ([^ ]+ [^ ,.]+(?:, [^ ]+ [^ ,.]+)*))?` +
		`\s*\.\s*$`)
	propertyRe = regexp.MustCompile(`^([^ <.]+)` +
		`(?: < ([^ &.]+(?: & [^ &.]+)*))?` +
		`\s*\.\s*$`)
	roleRe      = regexp.MustCompile(`^([^ :]+) : ([^ .]+)\s*\.\s*$`)
	predicateRe = regexp.MustCompile(`^([^ <:.]+)` +
		`(?: < ([^ &:.]+(?: & [^ &:.]+)*))?` +
		`(?: : (.*[^ .]))?` +
		`\s*\.\s*$`)
)

var sections = map[string]bool{
	"variables":  true,
	"properties": true,
	"roles":      true,
	"predicates": true,
}

// Load reads the SEM-I rooted at path, following include: lines relative
// to the file that contains them.
func Load(path string) (*SemI, error) {
	s := &SemI{
		Variables:  make(map[string]Variable),
		Properties: make(map[string]Property),
		Roles:      make(map[string]Role),
		Predicates: make(map[string]Predicate),
	}
	if err := readFile(s, path); err != nil {
		return nil, err
	}
	if err := s.index(); err != nil {
		return nil, err
	}
	return s, nil
}

func readFile(s *SemI, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	section := ""
	for i, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, ";") {
			continue
		}
		if m := includeRe.FindStringSubmatch(line); m != nil {
			inc := filepath.Join(filepath.Dir(path), strings.TrimSpace(m[1]))
			if err := readFile(s, inc); err != nil {
				return err
			}
			continue
		}
		if m := sectionRe.FindStringSubmatch(line); m != nil {
			if !sections[m[1]] {
				return fmt.Errorf("%w: %s:%d: unknown section %q", ErrDecode, path, i+1, m[1])
			}
			section = m[1]
			continue
		}
		if err := readEntry(s, section, line); err != nil {
			return fmt.Errorf("%w: %s:%d: %v", ErrDecode, path, i+1, err)
		}
	}
	return nil
}

func readEntry(s *SemI, section, line string) error {
	switch section {
	case "variables":
		m := variableRe.FindStringSubmatch(line)
		if m == nil {
			return fmt.Errorf("invalid variable entry %q", line)
		}
		props, err := parsePropList(m[3])
		if err != nil {
			return err
		}
		s.Variables[m[1]] = Variable{Parents: parents(m[2]), Properties: props}
	case "properties":
		m := propertyRe.FindStringSubmatch(line)
		if m == nil {
			return fmt.Errorf("invalid property entry %q", line)
		}
		s.Properties[m[1]] = Property{Parents: parents(m[2])}
	case "roles":
		m := roleRe.FindStringSubmatch(line)
		if m == nil {
			return fmt.Errorf("invalid role entry %q", line)
		}
		s.Roles[m[1]] = Role{Value: m[2]}
	case "predicates":
		m := predicateRe.FindStringSubmatch(line)
		if m == nil {
			return fmt.Errorf("invalid predicate entry %q", line)
		}
		entry := s.Predicates[m[1]]
		if p := parents(m[2]); len(p) > 0 {
			entry.Parents = p
		}
		if m[3] != "" {
			syn, err := parseSynopsis(m[3])
			if err != nil {
				return err
			}
			entry.Synopses = append(entry.Synopses, syn)
		}
		s.Predicates[m[1]] = entry
	default:
		return fmt.Errorf("entry %q outside any section", line)
	}
	return nil
}

func parents(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, " & ")
}

// parsePropList parses "PERF bool, TENSE tense" style pairs.
func parsePropList(s string) ([]PropertyConstraint, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	var props []PropertyConstraint
	for _, pair := range strings.Split(s, ",") {
		fields := strings.Fields(pair)
		if len(fields) != 2 {
			return nil, fmt.Errorf("invalid property pair %q", pair)
		}
		props = append(props, PropertyConstraint{Name: fields[0], Value: fields[1]})
	}
	return props, nil
}

// parseSynopsis reads "ARG0 e, [ ARG1 i { NUM sg } ]" style frames.
func parseSynopsis(s string) (Synopsis, error) {
	var syn Synopsis
	i, n := 0, len(s)
	skip := func() {
		for i < n && (s[i] == ' ' || s[i] == '\t') {
			i++
		}
	}
	token := func() string {
		start := i
		for i < n && !strings.ContainsRune(" \t,]{", rune(s[i])) {
			i++
		}
		return s[start:i]
	}
	for {
		skip()
		if i >= n {
			break
		}
		var slot SynopsisRole
		if s[i] == '[' {
			slot.Optional = true
			i++
			skip()
		}
		if slot.Role = token(); slot.Role == "" {
			return nil, fmt.Errorf("invalid synopsis %q: missing role", s)
		}
		skip()
		if slot.Value = token(); slot.Value == "" {
			return nil, fmt.Errorf("invalid synopsis %q: missing value for %s", s, slot.Role)
		}
		skip()
		if i < n && s[i] == '{' {
			end := strings.IndexByte(s[i:], '}')
			if end < 0 {
				return nil, fmt.Errorf("invalid synopsis %q: unterminated properties", s)
			}
			props, err := parsePropList(s[i+1 : i+end])
			if err != nil {
				return nil, err
			}
			slot.Properties = props
			i += end + 1
			skip()
		}
		if slot.Optional {
			if i >= n || s[i] != ']' {
				return nil, fmt.Errorf("invalid synopsis %q: unterminated optional slot", s)
			}
			i++
			skip()
		}
		if i < n {
			if s[i] != ',' {
				return nil, fmt.Errorf("invalid synopsis %q: expected comma at %q", s, s[i:])
			}
			i++
		}
		syn = append(syn, slot)
	}
	return syn, nil
}
