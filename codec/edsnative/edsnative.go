// Package edsnative reads and writes the native curly-brace notation for
// bare dependency graphs:
//
//	{e2:
//	 _1:_every_q<0:5>[BV x3]
//	 x3:_dog_n_1<6:9>{x NUM sg}[]
//	 e2:_bark_v_1<10:15>{e TENSE pres}[ARG1 x3]
//	}
//
// The header may carry (fragmented) and (cyclic) status markers. They are
// informational: decoding keeps every node and edge regardless, and
// encoding recomputes them from the graph.
package edsnative

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/semkit/semkit/eds"
	"github.com/semkit/semkit/sem"
	"github.com/semkit/semkit/variable"
)

// ErrDecode reports malformed input.
var ErrDecode = errors.New("edsnative: decode error")

// Option adjusts encoding.
type Option func(*config)

type config struct {
	properties bool
}

// WithoutProperties suppresses node type and properties.
func WithoutProperties() Option { return func(c *config) { c.properties = false } }

var (
	headerRe = regexp.MustCompile(`^\{\s*([^\s:(){}]*):?((?:\s*\([a-z]+\))*)\s*$`)
	nodeRe   = regexp.MustCompile(`^([^\s:\[\]{}<>()]+):` + // id
		`([^\s<("\[{]+)` + // predicate
		`(<[^>]*>)?` + // alignment
		`(?:\("((?:[^"\\]|\\.)*)"\))?` + // constant
		`(?:\{([^}]*)\})?` + // type and properties
		`(?:\[([^\]]*)\])?` + // edges
		`\s*$`)
)

// Decode parses the curly-brace notation.
func Decode(s string) (*eds.EDS, error) {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) < 2 {
		return nil, fmt.Errorf("%w: missing braces", ErrDecode)
	}
	head := headerRe.FindStringSubmatch(strings.TrimSpace(lines[0]))
	if head == nil {
		return nil, fmt.Errorf("%w: line 1: bad header %q", ErrDecode, lines[0])
	}
	e := &eds.EDS{Top: head[1]}

	last := strings.TrimSpace(lines[len(lines)-1])
	if last != "}" {
		return nil, fmt.Errorf("%w: missing closing brace", ErrDecode)
	}
	for i, line := range lines[1 : len(lines)-1] {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		n, err := decodeNode(line)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrDecode, i+2, err)
		}
		e.Nodes = append(e.Nodes, n)
	}
	return e, nil
}

func decodeNode(line string) (eds.Node, error) {
	m := nodeRe.FindStringSubmatch(line)
	if m == nil {
		return eds.Node{}, fmt.Errorf("bad node %q", line)
	}
	n := eds.Node{
		ID:         m[1],
		Predicate:  sem.SurfaceOrAbstract(m[2]),
		Edges:      map[string]string{},
		Properties: map[string]string{},
		Carg:       strings.ReplaceAll(m[4], `\"`, `"`),
	}
	if m[3] != "" {
		lnk, err := parseLnk(m[3])
		if err != nil {
			return eds.Node{}, err
		}
		n.Lnk = lnk
	}
	if m[5] != "" {
		fields := strings.Fields(strings.ReplaceAll(m[5], ",", " "))
		if len(fields)%2 != 1 {
			return eds.Node{}, fmt.Errorf("bad property list %q", m[5])
		}
		n.Type = fields[0]
		for i := 1; i < len(fields); i += 2 {
			n.Properties[fields[i]] = fields[i+1]
		}
	}
	if m[6] != "" {
		fields := strings.Fields(strings.ReplaceAll(m[6], ",", " "))
		if len(fields)%2 != 0 {
			return eds.Node{}, fmt.Errorf("bad edge list %q", m[6])
		}
		for i := 0; i < len(fields); i += 2 {
			n.Edges[fields[i]] = fields[i+1]
		}
	}
	return n, nil
}

var lnkRe = regexp.MustCompile(`^<(-?\d+):(-?\d+)>$`)

func parseLnk(s string) (sem.Lnk, error) {
	m := lnkRe.FindStringSubmatch(s)
	if m == nil {
		return sem.Lnk{}, fmt.Errorf("bad alignment %q", s)
	}
	from, _ := strconv.Atoi(m[1])
	to, _ := strconv.Atoi(m[2])
	return sem.CharSpan(from, to), nil
}

// Encode renders e in the curly-brace notation, one node per line.
func Encode(e *eds.EDS, opts ...Option) string {
	cfg := config{properties: true}
	for _, o := range opts {
		o(&cfg)
	}
	var b strings.Builder
	b.WriteString("{" + e.Top + ":")
	if e.Cyclic() {
		b.WriteString(" (cyclic)")
	}
	if e.Fragmented() {
		b.WriteString(" (fragmented)")
	}
	b.WriteString("\n")
	for _, n := range e.Nodes {
		b.WriteString(" " + encodeNode(n, cfg) + "\n")
	}
	b.WriteString("}")
	return b.String()
}

func encodeNode(n eds.Node, cfg config) string {
	var b strings.Builder
	b.WriteString(n.ID + ":" + n.Predicate.Short())
	if !n.Lnk.IsZero() {
		b.WriteString(n.Lnk.String())
	}
	if n.Carg != "" {
		fmt.Fprintf(&b, "(%q)", n.Carg)
	}
	if cfg.properties && (n.Type != "" || len(n.Properties) > 0) {
		typ := n.Type
		if typ == "" {
			typ = variable.UnknownSort
		}
		var parts []string
		for _, k := range sem.SortedProperties(n.Properties) {
			parts = append(parts, k+" "+n.Properties[k])
		}
		b.WriteString("{" + typ)
		if len(parts) > 0 {
			b.WriteString(" " + strings.Join(parts, ", "))
		}
		b.WriteString("}")
	}
	var edgeParts []string
	for _, role := range sem.SortedRoles(n.Edges) {
		edgeParts = append(edgeParts, role+" "+n.Edges[role])
	}
	b.WriteString("[" + strings.Join(edgeParts, ", ") + "]")
	return b.String()
}
