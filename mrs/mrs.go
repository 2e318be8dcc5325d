package mrs

import (
	"errors"

	"github.com/semkit/semkit/sem"
)

// ErrUnresolvableArgument indicates an argument value that resolves to
// neither a node, a scope, a qeq'd scope, nor a recognized unexpressed
// variable.
var ErrUnresolvableArgument = errors.New("mrs: unresolvable argument")

// Handle-constraint relations. Qeq (equality modulo quantifiers) is the
// one that matters in practice.
const (
	QeqRelation       = "qeq"
	LheqRelation      = "lheq"
	OutscopesRelation = "outscopes"
)

// EP is an elementary predication: a predicate at a scope label with a
// role→variable argument map. The constant argument is carried separately
// in Carg rather than in Args.
type EP struct {
	Predicate sem.Predicate
	Label     string
	Args      map[string]string
	Carg      string
	Lnk       sem.Lnk
	Surface   string
	Base      string
}

// IntrinsicVariable returns the EP's ARG0 value, or "" when absent.
func (e EP) IntrinsicVariable() string { return e.Args[sem.IntrinsicRole] }

// IsQuantifier reports whether the EP carries the restriction-binding role.
func (e EP) IsQuantifier() bool {
	_, ok := e.Args[sem.RestrictionRole]
	return ok
}

// HCons relates a hole variable to a label: the predication holding the
// hole is solved by plugging in the labeled scope.
type HCons struct {
	Hi       string
	Relation string
	Lo       string
}

// Qeq builds an equality-modulo-quantifiers constraint.
func Qeq(hi, lo string) HCons { return HCons{Hi: hi, Relation: QeqRelation, Lo: lo} }

// ICons relates two ordinary (non-handle) variables independent of scope.
type ICons struct {
	Left     string
	Relation string
	Right    string
}

// MRS is a scoped semantic structure: the hook triple (top, index, xarg),
// elementary predications, handle and individual constraints, and the
// property map of every variable in use.
type MRS struct {
	Top   string
	Index string
	XArg  string
	Rels  []EP
	HCons []HCons
	ICons []ICons
	// Variables maps every variable to its property map; variables with
	// no properties map to nil or an empty map.
	Variables map[string]map[string]string

	Lnk        sem.Lnk
	Surface    string
	Identifier string
}

// Properties returns the property map of a variable, never nil.
func (m *MRS) Properties(v string) map[string]string {
	if p := m.Variables[v]; p != nil {
		return p
	}
	return map[string]string{}
}

// fillVariables completes m.Variables with every variable mentioned by the
// hook, predications, and constraints, so codecs can iterate one map.
func (m *MRS) fillVariables() {
	if m.Variables == nil {
		m.Variables = make(map[string]map[string]string)
	}
	add := func(v string) {
		if v != "" {
			if _, ok := m.Variables[v]; !ok {
				m.Variables[v] = map[string]string{}
			}
		}
	}
	add(m.Top)
	add(m.Index)
	add(m.XArg)
	for _, ep := range m.Rels {
		add(ep.Label)
		for _, v := range ep.Args {
			add(v)
		}
	}
	for _, hc := range m.HCons {
		add(hc.Hi)
		add(hc.Lo)
	}
	for _, ic := range m.ICons {
		add(ic.Left)
		add(ic.Right)
	}
}
