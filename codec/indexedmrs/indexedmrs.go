// Package indexedmrs reads and writes the Indexed MRS format. The format
// drops role names and property names, so both directions need a semantic
// interface: decoding recovers role names from the predicate's synopsis
// and property names from the variable sort's declaration; encoding picks
// the emission order the same way.
package indexedmrs

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/semkit/semkit/mrs"
	"github.com/semkit/semkit/sem"
	"github.com/semkit/semkit/semi"
	"github.com/semkit/semkit/variable"
)

// ErrDecode reports a syntax error. Failed grammar lookups propagate
// semi.ErrSemiLookup instead.
var ErrDecode = errors.New("indexedmrs: decode error")

// Option adjusts encoding.
type Option func(*encoder)

// WithIndent renders each predication on its own line.
func WithIndent() Option {
	return func(e *encoder) { e.indent = true }
}

// WithoutProperties suppresses variable property lists.
func WithoutProperties() Option {
	return func(e *encoder) { e.properties = false }
}

type tokenKind int

const (
	tokLnk tokenKind = iota
	tokString
	tokGraphOpen
	tokGraphClose
	tokListOpen
	tokListClose
	tokArgOpen
	tokArgClose
	tokComma
	tokColon
	tokSymbol
	tokEOF
)

type token struct {
	kind tokenKind
	text string
	line int
}

var lexRe = regexp.MustCompile(`<(-?\d+:-?\d+)>` +
	`|"((?:[^"\\]|\\.)*)"` +
	`|(<)|(>)|(\{)|(\})|(\()|(\))|(,)|(:)` +
	`|([^\s"'()/,:;<=>\[\]{}]+)` +
	`|(\S)`)

func lex(s string) ([]token, error) {
	var tokens []token
	for lineno, line := range strings.Split(s, "\n") {
		for _, m := range lexRe.FindAllStringSubmatchIndex(line, -1) {
			gid := 0
			for g := 1; g <= 12; g++ {
				if m[2*g] >= 0 {
					gid = g
					break
				}
			}
			text := line[m[2*gid]:m[2*gid+1]]
			if gid == 12 {
				return nil, fmt.Errorf("%w: line %d: unexpected input %q", ErrDecode, lineno+1, text)
			}
			tokens = append(tokens, token{kind: tokenKind(gid - 1), text: text, line: lineno + 1})
		}
	}
	tokens = append(tokens, token{kind: tokEOF, line: strings.Count(s, "\n") + 1})
	return tokens, nil
}

type parser struct {
	tokens []token
	pos    int
	semi   *semi.SemI

	// bare colon-separated property values per variable, resolved to
	// named properties once parsing completes
	rawProps map[string][]string
	vars     map[string]bool
}

func (p *parser) peek() token { return p.tokens[p.pos] }

func (p *parser) next() token {
	t := p.tokens[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) expect(kind tokenKind, what string) (token, error) {
	t := p.next()
	if t.kind != kind {
		return t, fmt.Errorf("%w: line %d: expected %s, got %q", ErrDecode, t.line, what, t.text)
	}
	return t, nil
}

// Decode parses a single structure, reconstructing role and property
// names from si.
func Decode(s string, si *semi.SemI) (*mrs.MRS, error) {
	tokens, err := lex(s)
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: tokens, semi: si}
	return p.decode()
}

// DecodeAll parses every structure in s, one after another.
func DecodeAll(s string, si *semi.SemI) ([]*mrs.MRS, error) {
	tokens, err := lex(s)
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: tokens, semi: si}
	var ms []*mrs.MRS
	for p.peek().kind != tokEOF {
		m, err := p.decode()
		if err != nil {
			return nil, err
		}
		ms = append(ms, m)
	}
	return ms, nil
}

func (p *parser) decode() (*mrs.MRS, error) {
	p.rawProps = map[string][]string{}
	p.vars = map[string]bool{}
	if _, err := p.expect(tokGraphOpen, "<"); err != nil {
		return nil, err
	}
	m := &mrs.MRS{}

	var err error
	if m.Top, m.Index, err = p.hook(); err != nil {
		return nil, err
	}
	if m.Rels, err = p.rels(); err != nil {
		return nil, err
	}
	if _, err = p.expect(tokComma, ","); err != nil {
		return nil, err
	}
	hcons, err := p.cons()
	if err != nil {
		return nil, err
	}
	for _, c := range hcons {
		m.HCons = append(m.HCons, mrs.HCons{Hi: c[0], Relation: c[1], Lo: c[2]})
	}
	if p.peek().kind == tokComma {
		p.next()
		icons, err := p.cons()
		if err != nil {
			return nil, err
		}
		for _, c := range icons {
			m.ICons = append(m.ICons, mrs.ICons{Left: c[0], Relation: c[1], Right: c[2]})
		}
	}
	if _, err := p.expect(tokGraphClose, ">"); err != nil {
		return nil, err
	}
	if m.Variables, err = p.resolveProperties(); err != nil {
		return nil, err
	}
	return m, nil
}

func (p *parser) hook() (top, index string, err error) {
	t, err := p.expect(tokSymbol, "top handle")
	if err != nil {
		return "", "", err
	}
	top = t.text
	p.vars[top] = true
	if _, err := p.expect(tokComma, ","); err != nil {
		return "", "", err
	}
	index, err = p.variable()
	if err != nil {
		return "", "", err
	}
	if _, err := p.expect(tokComma, ","); err != nil {
		return "", "", err
	}
	return top, index, nil
}

// variable reads a variable and its optional colon-separated bare
// property values.
func (p *parser) variable() (string, error) {
	t, err := p.expect(tokSymbol, "variable")
	if err != nil {
		return "", err
	}
	p.vars[t.text] = true
	for p.peek().kind == tokColon {
		p.next()
		val, err := p.expect(tokSymbol, "property value")
		if err != nil {
			return "", err
		}
		p.rawProps[t.text] = append(p.rawProps[t.text], val.text)
	}
	return t.text, nil
}

func (p *parser) rels() ([]mrs.EP, error) {
	if _, err := p.expect(tokListOpen, "{"); err != nil {
		return nil, err
	}
	var rels []mrs.EP
	for {
		if p.peek().kind == tokListClose {
			p.next()
			return rels, nil
		}
		ep, err := p.rel()
		if err != nil {
			return nil, err
		}
		rels = append(rels, ep)
		if p.peek().kind == tokComma {
			p.next()
		}
	}
}

func (p *parser) rel() (mrs.EP, error) {
	var ep mrs.EP
	t, err := p.expect(tokSymbol, "label")
	if err != nil {
		return ep, err
	}
	ep.Label = t.text
	p.vars[ep.Label] = true
	if _, err := p.expect(tokColon, ":"); err != nil {
		return ep, err
	}
	t, err = p.expect(tokSymbol, "predicate")
	if err != nil {
		return ep, err
	}
	ep.Predicate = sem.SurfaceOrAbstract(t.text)

	if p.peek().kind == tokLnk {
		lnk, err := parseLnk(p.next().text)
		if err != nil {
			return ep, err
		}
		ep.Lnk = lnk
	}

	args, carg, err := p.arglist()
	if err != nil {
		return ep, err
	}
	ep.Carg = carg

	sorts := make([]string, len(args))
	for i, arg := range args {
		sort, err := variable.Sort(arg)
		if err != nil {
			return ep, fmt.Errorf("%w: line %d: bad argument %q", ErrDecode, t.line, arg)
		}
		sorts[i] = sort
	}
	syn, err := p.semi.FindSynopsis(ep.Predicate.Short(), semi.WithVariableSorts(sorts))
	if err != nil {
		return ep, err
	}
	ep.Args = make(map[string]string, len(args))
	for i, arg := range args {
		ep.Args[syn[i].Role] = arg
	}
	return ep, nil
}

func (p *parser) arglist() (args []string, carg string, err error) {
	if _, err := p.expect(tokArgOpen, "("); err != nil {
		return nil, "", err
	}
	for {
		switch t := p.peek(); t.kind {
		case tokArgClose:
			p.next()
			return args, carg, nil
		case tokString:
			p.next()
			carg = strings.ReplaceAll(t.text, `\"`, `"`)
		case tokSymbol:
			arg, err := p.variable()
			if err != nil {
				return nil, "", err
			}
			args = append(args, arg)
		default:
			return nil, "", fmt.Errorf("%w: line %d: unexpected token %q in arguments", ErrDecode, t.line, t.text)
		}
		if p.peek().kind == tokComma {
			p.next()
		}
	}
}

func (p *parser) cons() ([][3]string, error) {
	if _, err := p.expect(tokListOpen, "{"); err != nil {
		return nil, err
	}
	var cons [][3]string
	for {
		if p.peek().kind == tokListClose {
			p.next()
			return cons, nil
		}
		lhs, err := p.expect(tokSymbol, "constraint left side")
		if err != nil {
			return nil, err
		}
		reln, err := p.expect(tokSymbol, "constraint relation")
		if err != nil {
			return nil, err
		}
		rhs, err := p.expect(tokSymbol, "constraint right side")
		if err != nil {
			return nil, err
		}
		p.vars[lhs.text] = true
		p.vars[rhs.text] = true
		cons = append(cons, [3]string{lhs.text, reln.text, rhs.text})
		if p.peek().kind == tokComma {
			p.next()
		}
	}
}

// resolveProperties turns the bare value lists into named property maps
// using the declared property order of each variable's sort.
func (p *parser) resolveProperties() (map[string]map[string]string, error) {
	variables := make(map[string]map[string]string, len(p.vars))
	for v := range p.vars {
		variables[v] = map[string]string{}
	}
	for v, values := range p.rawProps {
		sort, err := variable.Sort(v)
		if err != nil {
			return nil, fmt.Errorf("%w: bad variable %q", ErrDecode, v)
		}
		props, err := p.semi.NamedProperties(sort, normalize(values))
		if err != nil {
			return nil, err
		}
		variables[v] = props
	}
	return variables, nil
}

func normalize(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.ToLower(v)
	}
	return out
}

func parseLnk(s string) (sem.Lnk, error) {
	parts := strings.SplitN(s, ":", 2)
	from, _ := strconv.Atoi(parts[0])
	to, _ := strconv.Atoi(parts[1])
	return sem.CharSpan(from, to), nil
}

// Encode renders m in the Indexed MRS format, ordering arguments and
// property values by the declarations in si.
func Encode(m *mrs.MRS, si *semi.SemI, opts ...Option) (string, error) {
	e := &encoder{semi: si, properties: true}
	for _, o := range opts {
		o(e)
	}
	return e.encode(m)
}

// EncodeAll renders every structure, one per line.
func EncodeAll(ms []*mrs.MRS, si *semi.SemI, opts ...Option) (string, error) {
	parts := make([]string, 0, len(ms))
	for _, m := range ms {
		s, err := Encode(m, si, opts...)
		if err != nil {
			return "", err
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, "\n"), nil
}

type encoder struct {
	semi       *semi.SemI
	properties bool
	indent     bool
	varprops   map[string][]string
}

func (e *encoder) encode(m *mrs.MRS) (string, error) {
	e.varprops = map[string][]string{}
	if e.properties {
		if err := e.prepareProperties(m); err != nil {
			return "", err
		}
	}
	delim, start, end := ",", "<", ">"
	if e.indent {
		delim, start, end = ",\n  ", "< ", " >"
	}
	var rels []string
	for _, ep := range m.Rels {
		s, err := e.rel(ep)
		if err != nil {
			return "", err
		}
		rels = append(rels, s)
	}
	var hcons []string
	for _, hc := range m.HCons {
		hcons = append(hcons, fmt.Sprintf("%s %s %s", hc.Hi, hc.Relation, hc.Lo))
	}
	parts := []string{
		m.Top + "," + e.variable(m.Index),
		"{" + strings.Join(rels, delim) + "}",
		"{" + strings.Join(hcons, ",") + "}",
	}
	if len(m.ICons) > 0 {
		var icons []string
		for _, ic := range m.ICons {
			icons = append(icons, fmt.Sprintf("%s %s %s", ic.Left, ic.Relation, ic.Right))
		}
		parts = append(parts, "{"+strings.Join(icons, ",")+"}")
	}
	return start + strings.Join(parts, delim) + end, nil
}

// prepareProperties builds the ordered value list of every variable that
// carries properties, in the sort's declared order, defaulting missing
// values to the declared type.
func (e *encoder) prepareProperties(m *mrs.MRS) error {
	for v, props := range m.Variables {
		if len(props) == 0 {
			continue
		}
		sort, err := variable.Sort(v)
		if err != nil {
			return fmt.Errorf("%w: bad variable %q", ErrDecode, v)
		}
		order, err := e.semi.PropertyOrder(sort)
		if err != nil {
			return err
		}
		values := make([]string, len(order))
		for i, decl := range order {
			val, ok := props[decl.Name]
			if !ok {
				val = decl.Value
			}
			values[i] = strings.ToUpper(val)
		}
		e.varprops[v] = values
	}
	return nil
}

// variable renders a variable, attaching its value list on first mention
// only.
func (e *encoder) variable(v string) string {
	values, ok := e.varprops[v]
	if !ok {
		return v
	}
	delete(e.varprops, v)
	return v + ":" + strings.Join(values, ":")
}

func (e *encoder) rel(ep mrs.EP) (string, error) {
	short := ep.Predicate.Short()
	syn, err := e.semi.FindSynopsis(short, semi.WithRoles(sem.SortedRoles(ep.Args)))
	if err != nil {
		return "", err
	}
	var args []string
	for _, slot := range syn {
		if arg, ok := ep.Args[slot.Role]; ok {
			args = append(args, e.variable(arg))
		}
	}
	if ep.Carg != "" {
		args = append(args, fmt.Sprintf("%q", ep.Carg))
	}
	lnk := ""
	if !ep.Lnk.IsZero() {
		lnk = ep.Lnk.String()
	}
	return fmt.Sprintf("%s:%s%s(%s)", ep.Label, short, lnk, strings.Join(args, ", ")), nil
}
