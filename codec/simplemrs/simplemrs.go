package simplemrs

import (
	"errors"
	"fmt"
	"strings"

	"github.com/semkit/semkit/mrs"
	"github.com/semkit/semkit/sem"
	"github.com/semkit/semkit/variable"
)

// ErrDecode reports a syntax error in the bracketed notation. Wrapped
// errors carry the line number.
var ErrDecode = errors.New("simplemrs: decode error")

// Option adjusts encoding.
type Option func(*encoder)

// WithIndent renders each section on its own line.
func WithIndent() Option {
	return func(e *encoder) { e.indent = true }
}

// WithoutProperties suppresses variable property lists.
func WithoutProperties() Option {
	return func(e *encoder) { e.properties = false }
}

// Decode parses a single structure from the bracketed notation.
func Decode(s string) (*mrs.MRS, error) {
	lx := newLexer(s)
	m, err := decodeMRS(lx)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// DecodeAll parses every structure in s, one after another.
func DecodeAll(s string) ([]*mrs.MRS, error) {
	lx := newLexer(s)
	var ms []*mrs.MRS
	for {
		t, err := lx.peek()
		if err != nil {
			return nil, err
		}
		if t.kind == tokEOF {
			return ms, nil
		}
		m, err := decodeMRS(lx)
		if err != nil {
			return nil, err
		}
		ms = append(ms, m)
	}
}

func decodeMRS(lx *lexer) (*mrs.MRS, error) {
	if err := expect(lx, tokOpen, "["); err != nil {
		return nil, err
	}
	m := &mrs.MRS{Variables: map[string]map[string]string{}}

	if t, err := lx.peek(); err == nil && t.kind == tokLnk {
		lx.next()
		m.Lnk = t.lnk
	}
	if t, err := lx.peek(); err == nil && t.kind == tokString {
		lx.next()
		m.Surface = t.text
	}

	for {
		t, err := lx.next()
		if err != nil {
			return nil, err
		}
		if t.kind == tokClose {
			return m, nil
		}
		if t.kind != tokFeature {
			return nil, fmt.Errorf("%w: line %d: unexpected token %q", ErrDecode, t.line, t.text)
		}
		switch t.text {
		case "TOP", "LTOP":
			v, err := text(lx)
			if err != nil {
				return nil, err
			}
			m.Top = v
		case "INDEX":
			v, err := decodeVariable(lx, m.Variables)
			if err != nil {
				return nil, err
			}
			m.Index = v
		case "RELS":
			if err := decodeList(lx, func() error {
				ep, err := decodeRel(lx, m.Variables)
				if err != nil {
					return err
				}
				m.Rels = append(m.Rels, ep)
				return nil
			}); err != nil {
				return nil, err
			}
		case "HCONS":
			if err := decodeList(lx, func() error {
				hi, rel, lo, err := decodeCons(lx, m.Variables)
				if err != nil {
					return err
				}
				m.HCons = append(m.HCons, mrs.HCons{Hi: hi, Relation: rel, Lo: lo})
				return nil
			}); err != nil {
				return nil, err
			}
		case "ICONS":
			if err := decodeList(lx, func() error {
				left, rel, right, err := decodeCons(lx, m.Variables)
				if err != nil {
					return err
				}
				m.ICons = append(m.ICons, mrs.ICons{Left: left, Relation: rel, Right: right})
				return nil
			}); err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("%w: line %d: unknown feature %s", ErrDecode, t.line, t.text)
		}
	}
}

func decodeList(lx *lexer, item func() error) error {
	if err := expect(lx, tokListOpen, "<"); err != nil {
		return err
	}
	for {
		t, err := lx.peek()
		if err != nil {
			return err
		}
		if t.kind == tokListClose {
			lx.next()
			return nil
		}
		if t.kind == tokEOF {
			return fmt.Errorf("%w: line %d: unterminated list", ErrDecode, t.line)
		}
		if err := item(); err != nil {
			return err
		}
	}
}

// decodeVariable reads a variable and its optional property list,
// recording properties into the shared table.
func decodeVariable(lx *lexer, variables map[string]map[string]string) (string, error) {
	v, err := text(lx)
	if err != nil {
		return "", err
	}
	if _, ok := variables[v]; !ok {
		variables[v] = map[string]string{}
	}
	t, err := lx.peek()
	if err != nil || t.kind != tokOpen {
		return v, err
	}
	lx.next()
	t, err = lx.next()
	if err != nil {
		return "", err
	}
	if t.kind == tokText { // variable sort, informational
		t, err = lx.next()
		if err != nil {
			return "", err
		}
	}
	for t.kind == tokFeature {
		val, err := lx.next()
		if err != nil {
			return "", err
		}
		if val.kind != tokText {
			return "", fmt.Errorf("%w: line %d: expected property value", ErrDecode, val.line)
		}
		variables[v][t.text] = val.text
		t, err = lx.next()
		if err != nil {
			return "", err
		}
	}
	if t.kind != tokClose {
		return "", fmt.Errorf("%w: line %d: unterminated property list", ErrDecode, t.line)
	}
	return v, nil
}

func decodeRel(lx *lexer, variables map[string]map[string]string) (mrs.EP, error) {
	var ep mrs.EP
	if err := expect(lx, tokOpen, "["); err != nil {
		return ep, err
	}
	t, err := lx.next()
	if err != nil {
		return ep, err
	}
	if t.kind != tokString && t.kind != tokSymbol && t.kind != tokText {
		return ep, fmt.Errorf("%w: line %d: expected predicate", ErrDecode, t.line)
	}
	ep.Predicate = sem.SurfaceOrAbstract(t.text)

	if t, err := lx.peek(); err == nil && t.kind == tokLnk {
		lx.next()
		ep.Lnk = t.lnk
	}
	if t, err := lx.peek(); err == nil && t.kind == tokString {
		lx.next()
		ep.Surface = t.text
	}

	t, err = lx.next()
	if err != nil {
		return ep, err
	}
	if t.kind != tokFeature || t.text != "LBL" {
		return ep, fmt.Errorf("%w: line %d: expected LBL", ErrDecode, t.line)
	}
	ep.Label, err = text(lx)
	if err != nil {
		return ep, err
	}

	ep.Args = map[string]string{}
	for {
		t, err = lx.next()
		if err != nil {
			return ep, err
		}
		if t.kind == tokClose {
			return ep, nil
		}
		if t.kind != tokFeature {
			return ep, fmt.Errorf("%w: line %d: unexpected token in predication", ErrDecode, t.line)
		}
		if t.text == sem.ConstantRole {
			val, err := lx.next()
			if err != nil {
				return ep, err
			}
			if val.kind != tokString {
				return ep, fmt.Errorf("%w: line %d: constant must be quoted", ErrDecode, val.line)
			}
			ep.Carg = val.text
			continue
		}
		v, err := decodeVariable(lx, variables)
		if err != nil {
			return ep, err
		}
		ep.Args[t.text] = v
	}
}

func decodeCons(lx *lexer, variables map[string]map[string]string) (string, string, string, error) {
	lhs, err := decodeVariable(lx, variables)
	if err != nil {
		return "", "", "", err
	}
	rel, err := text(lx)
	if err != nil {
		return "", "", "", err
	}
	rhs, err := decodeVariable(lx, variables)
	if err != nil {
		return "", "", "", err
	}
	return lhs, rel, rhs, nil
}

func text(lx *lexer) (string, error) {
	t, err := lx.next()
	if err != nil {
		return "", err
	}
	if t.kind != tokText {
		return "", fmt.Errorf("%w: line %d: expected symbol", ErrDecode, t.line)
	}
	return t.text, nil
}

func expect(lx *lexer, kind tokenKind, what string) error {
	t, err := lx.next()
	if err != nil {
		return err
	}
	if t.kind != kind {
		return fmt.Errorf("%w: line %d: expected %q", ErrDecode, t.line, what)
	}
	return nil
}

// Encode renders m in the bracketed notation.
func Encode(m *mrs.MRS, opts ...Option) string {
	e := &encoder{properties: true}
	for _, o := range opts {
		o(e)
	}
	return e.encode(m)
}

// EncodeAll renders every structure, one per line, or separated by blank
// lines when indenting.
func EncodeAll(ms []*mrs.MRS, opts ...Option) string {
	parts := make([]string, 0, len(ms))
	for _, m := range ms {
		parts = append(parts, Encode(m, opts...))
	}
	return strings.Join(parts, "\n")
}

type encoder struct {
	properties bool
	indent     bool
	varprops   map[string]map[string]string
}

func (e *encoder) encode(m *mrs.MRS) string {
	e.varprops = map[string]map[string]string{}
	if e.properties {
		for v := range m.Variables {
			e.varprops[v] = m.Properties(v)
		}
	}
	delim := " "
	if e.indent {
		delim = "\n  "
	}
	var parts []string
	if s := e.surfaceInfo(m); s != "" {
		parts = append(parts, s)
	}
	if s := e.hook(m, delim); s != "" {
		parts = append(parts, s)
	}
	if s := e.rels(m); s != "" {
		parts = append(parts, s)
	}
	if s := encodeCons(m.HCons, "HCONS"); s != "" {
		parts = append(parts, s)
	}
	if s := e.icons(m); s != "" {
		parts = append(parts, s)
	}
	return "[ " + strings.Join(parts, delim) + " ]"
}

func (e *encoder) surfaceInfo(m *mrs.MRS) string {
	var tokens []string
	if !m.Lnk.IsZero() {
		tokens = append(tokens, m.Lnk.String())
	}
	if m.Surface != "" {
		tokens = append(tokens, fmt.Sprintf("%q", m.Surface))
	}
	return strings.Join(tokens, " ")
}

func (e *encoder) hook(m *mrs.MRS, delim string) string {
	var tokens []string
	if m.Top != "" {
		tokens = append(tokens, "TOP: "+m.Top)
	}
	if m.Index != "" {
		tokens = append(tokens, "INDEX: "+e.variable(m.Index))
	}
	return strings.Join(tokens, delim)
}

// variable renders a variable, attaching its property list on first
// mention only.
func (e *encoder) variable(v string) string {
	props := e.varprops[v]
	if len(props) == 0 {
		return v
	}
	delete(e.varprops, v)
	sort, err := variable.Sort(v)
	if err != nil {
		sort = variable.UnknownSort
	}
	tokens := []string{v, "[", sort}
	for _, prop := range sem.SortedProperties(props) {
		tokens = append(tokens, prop+":", props[prop])
	}
	tokens = append(tokens, "]")
	return strings.Join(tokens, " ")
}

func (e *encoder) rels(m *mrs.MRS) string {
	if len(m.Rels) == 0 {
		return ""
	}
	delim := " "
	if e.indent {
		delim = "\n  " + strings.Repeat(" ", len("RELS: < "))
	}
	var tokens []string
	for _, rel := range m.Rels {
		pred := rel.Predicate.String()
		if !rel.Lnk.IsZero() {
			pred += rel.Lnk.String()
		}
		reltoks := []string{"[", pred}
		if rel.Surface != "" {
			reltoks = append(reltoks, fmt.Sprintf("%q", rel.Surface))
		}
		reltoks = append(reltoks, "LBL:", rel.Label)
		for _, role := range sem.SortedRoles(rel.Args) {
			reltoks = append(reltoks, role+":", e.variable(rel.Args[role]))
		}
		if rel.Carg != "" {
			reltoks = append(reltoks, sem.ConstantRole+":", fmt.Sprintf("%q", rel.Carg))
		}
		reltoks = append(reltoks, "]")
		tokens = append(tokens, strings.Join(reltoks, " "))
	}
	return "RELS: < " + strings.Join(tokens, delim) + " >"
}

func encodeCons(hcons []mrs.HCons, name string) string {
	if len(hcons) == 0 {
		return ""
	}
	var tokens []string
	for _, hc := range hcons {
		tokens = append(tokens, fmt.Sprintf("%s %s %s", hc.Hi, hc.Relation, hc.Lo))
	}
	return name + ": < " + strings.Join(tokens, " ") + " >"
}

func (e *encoder) icons(m *mrs.MRS) string {
	if len(m.ICons) == 0 {
		return ""
	}
	var tokens []string
	for _, ic := range m.ICons {
		tokens = append(tokens,
			fmt.Sprintf("%s %s %s", e.variable(ic.Left), ic.Relation, e.variable(ic.Right)))
	}
	return "ICONS: < " + strings.Join(tokens, " ") + " >"
}
