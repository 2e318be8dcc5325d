package semi

import (
	"errors"
	"fmt"
	"strings"
)

// Top is the implicit root of the type hierarchy.
const Top = "*top*"

var (
	// ErrDecode reports malformed .smi or compiled input.
	ErrDecode = errors.New("semi: decode error")

	// ErrDuplicateType reports a type declared more than once across the
	// variables, properties, and predicates sections.
	ErrDuplicateType = errors.New("semi: type defined more than once")

	// ErrSemiLookup reports a failed predicate, synopsis, or property
	// lookup.
	ErrSemiLookup = errors.New("semi: lookup failed")
)

// PropertyConstraint pairs a property name with its declared value, in
// declaration order.
type PropertyConstraint struct {
	Name  string
	Value string
}

// Variable describes a variable sort: its supertypes and the ordered
// property constraints its instances may carry.
type Variable struct {
	Parents    []string
	Properties []PropertyConstraint
}

// Property describes a property value type and its supertypes.
type Property struct {
	Parents []string
}

// Role describes a role and the variable sort it takes.
type Role struct {
	Value string
}

// SynopsisRole is one argument slot of a predicate synopsis.
type SynopsisRole struct {
	Role       string
	Value      string
	Properties []PropertyConstraint
	Optional   bool
}

// Synopsis is one valid argument frame for a predicate, in role order.
type Synopsis []SynopsisRole

// Predicate describes a lexicon entry: supertypes and the synopses the
// predicate licenses.
type Predicate struct {
	Parents  []string
	Synopses []Synopsis
}

// SemI is a semantic interface. The zero value is unusable; build one
// with Load or DecodeYAML.
type SemI struct {
	Variables  map[string]Variable
	Properties map[string]Property
	Roles      map[string]Role
	Predicates map[string]Predicate

	hierarchy map[string][]string
}

// index builds the shared type hierarchy from the variables, properties,
// and predicates tables. A name appearing in more than one of them, or
// twice in one, fails with ErrDuplicateType.
func (s *SemI) index() error {
	s.hierarchy = make(map[string][]string)
	insert := func(name string, parents []string) error {
		if _, ok := s.hierarchy[name]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateType, name)
		}
		if len(parents) == 0 {
			parents = []string{Top}
		}
		s.hierarchy[name] = parents
		return nil
	}
	for name, v := range s.Variables {
		if err := insert(name, v.Parents); err != nil {
			return err
		}
	}
	for name, p := range s.Properties {
		if err := insert(name, p.Parents); err != nil {
			return err
		}
	}
	for name, p := range s.Predicates {
		if err := insert(name, p.Parents); err != nil {
			return err
		}
	}
	return nil
}

// Subsumes reports whether ancestor is typ itself or one of its
// transitive supertypes. Top subsumes every known type.
func (s *SemI) Subsumes(ancestor, typ string) bool {
	ancestor = strings.ToLower(ancestor)
	typ = strings.ToLower(typ)
	if ancestor == Top || ancestor == typ {
		return true
	}
	seen := map[string]bool{typ: true}
	queue := []string{typ}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, p := range s.hierarchy[cur] {
			if p == ancestor {
				return true
			}
			if !seen[p] {
				seen[p] = true
				queue = append(queue, p)
			}
		}
	}
	return false
}

// LookupOption narrows FindSynopsis to synopses compatible with what the
// caller already knows about the arguments.
type LookupOption func(*lookup)

type lookup struct {
	roles []string
	sorts []string
}

// WithRoles requires the synopsis to license exactly the given role
// names: every name must be a slot, and no mandatory slot may be missing.
func WithRoles(roles []string) LookupOption {
	return func(l *lookup) { l.roles = roles }
}

// WithVariableSorts requires the synopsis to accept the given argument
// sorts positionally, honoring optional trailing slots.
func WithVariableSorts(sorts []string) LookupOption {
	return func(l *lookup) { l.sorts = sorts }
}

// FindSynopsis returns the first synopsis of pred compatible with the
// given constraints, or the predicate's first synopsis when no constraint
// is given. An unknown predicate or an unmatched constraint fails with
// ErrSemiLookup.
func (s *SemI) FindSynopsis(pred string, opts ...LookupOption) (Synopsis, error) {
	var l lookup
	for _, o := range opts {
		o(&l)
	}
	entry, ok := s.Predicates[strings.ToLower(pred)]
	if !ok {
		return nil, fmt.Errorf("%w: undefined predicate %q", ErrSemiLookup, pred)
	}
	if len(entry.Synopses) == 0 {
		if len(l.roles) == 0 && len(l.sorts) == 0 {
			return Synopsis{}, nil
		}
		return nil, fmt.Errorf("%w: predicate %q has no synopsis", ErrSemiLookup, pred)
	}
	for _, syn := range entry.Synopses {
		if s.matches(syn, l) {
			return syn, nil
		}
	}
	return nil, fmt.Errorf("%w: no synopsis of %q matches", ErrSemiLookup, pred)
}

func (s *SemI) matches(syn Synopsis, l lookup) bool {
	if len(l.roles) > 0 && !matchRoles(syn, l.roles) {
		return false
	}
	if len(l.sorts) > 0 && !s.matchSorts(syn, l.sorts) {
		return false
	}
	return true
}

func matchRoles(syn Synopsis, roles []string) bool {
	have := make(map[string]bool, len(roles))
	for _, r := range roles {
		have[r] = true
	}
	licensed := make(map[string]bool, len(syn))
	for _, slot := range syn {
		licensed[slot.Role] = true
		if !slot.Optional && !have[slot.Role] {
			return false
		}
	}
	for r := range have {
		if !licensed[r] {
			return false
		}
	}
	return true
}

func (s *SemI) matchSorts(syn Synopsis, sorts []string) bool {
	mandatory := 0
	for _, slot := range syn {
		if !slot.Optional {
			mandatory++
		}
	}
	if len(sorts) < mandatory || len(sorts) > len(syn) {
		return false
	}
	for i, sort := range sorts {
		if !s.Subsumes(syn[i].Value, sort) {
			return false
		}
	}
	return true
}

// NamedProperties maps a bare ordered property-value list onto the
// property names declared for the variable sort, checking each value
// against the declared one. Compact formats carry values without names;
// this restores the names.
func (s *SemI) NamedProperties(sort string, values []string) (map[string]string, error) {
	v, ok := s.Variables[strings.ToLower(sort)]
	if !ok {
		return nil, fmt.Errorf("%w: undefined variable sort %q", ErrSemiLookup, sort)
	}
	if len(values) != len(v.Properties) {
		return nil, fmt.Errorf("%w: sort %q declares %d properties, got %d values",
			ErrSemiLookup, sort, len(v.Properties), len(values))
	}
	props := make(map[string]string, len(values))
	for i, val := range values {
		decl := v.Properties[i]
		if !s.Subsumes(decl.Value, val) {
			return nil, fmt.Errorf("%w: property %s value %q not subsumed by %q",
				ErrSemiLookup, decl.Name, val, decl.Value)
		}
		props[decl.Name] = val
	}
	return props, nil
}

// PropertyOrder returns the declared property constraints of a variable
// sort, in declaration order, for encoders that emit bare value lists.
func (s *SemI) PropertyOrder(sort string) ([]PropertyConstraint, error) {
	v, ok := s.Variables[strings.ToLower(sort)]
	if !ok {
		return nil, fmt.Errorf("%w: undefined variable sort %q", ErrSemiLookup, sort)
	}
	return v.Properties, nil
}
