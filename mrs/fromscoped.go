package mrs

import (
	"fmt"

	"github.com/semkit/semkit/scope"
	"github.com/semkit/semkit/sem"
	"github.com/semkit/semkit/variable"
)

// FromScoped renders the canonical scoped graph g as an MRS.
//
// Handles are freshly generated; intrinsic variables recorded on the
// graph are reused so the surface form survives a round trip. Quantifier
// ARG0s are recovered from the representative of the restricted scope.
func FromScoped(g *sem.ScopedGraph) (*MRS, error) {
	b := &builder{
		g:      g,
		gen:    variable.NewGenerator(0),
		labels: make(map[sem.ScopeID]string),
		ivs:    make(map[sem.NodeID]string),
	}

	// Recorded intrinsic variables first, so fresh allocation skips them.
	for _, n := range g.Nodes {
		if iv := g.IntrinsicVariable(n.ID); iv != "" {
			if err := b.gen.Reserve(iv, n.Properties); err != nil {
				return nil, fmt.Errorf("%w: intrinsic variable %q on node %s",
					ErrUnresolvableArgument, iv, n.ID)
			}
			b.ivs[n.ID] = iv
		}
	}

	m := &MRS{
		Lnk:        g.Lnk,
		Surface:    g.Surface,
		Identifier: g.Identifier,
	}
	if g.Top != 0 {
		m.Top, _ = b.gen.New(variable.HandleSort, nil)
	}
	for _, sid := range g.ScopeIDs() {
		b.labels[sid], _ = b.gen.New(variable.HandleSort, nil)
	}
	if g.Top != 0 {
		m.HCons = append(m.HCons, Qeq(m.Top, b.labels[g.Top]))
	}

	for _, n := range g.Nodes {
		if n.IsUnexpressed() {
			continue
		}
		ep, err := b.predication(n)
		if err != nil {
			return nil, err
		}
		m.Rels = append(m.Rels, ep)
		m.HCons = append(m.HCons, b.hcons...)
		b.hcons = b.hcons[:0]
	}

	if g.Index != "" {
		m.Index = b.variableOf(g.Index)
	}
	if g.XArg != "" {
		m.XArg = b.variableOf(g.XArg)
	}
	for _, ic := range g.ICons {
		m.ICons = append(m.ICons, ICons{
			Left:     b.iconsVariable(ic.Left),
			Relation: ic.Relation,
			Right:    b.iconsVariable(ic.Right),
		})
	}

	m.Variables = b.gen.Variables()
	m.fillVariables()
	return m, nil
}

type builder struct {
	g      *sem.ScopedGraph
	gen    *variable.Generator
	labels map[sem.ScopeID]string
	ivs    map[sem.NodeID]string
	hcons  []HCons
}

func (b *builder) predication(n sem.Node) (EP, error) {
	sid, _ := b.g.ScopeOf(n.ID)
	ep := EP{
		Predicate: n.Predicate,
		Label:     b.labels[sid],
		Args:      map[string]string{},
		Carg:      n.Carg,
		Lnk:       n.Lnk,
		Surface:   n.Surface,
		Base:      n.Base,
	}
	ep.Args[sem.IntrinsicRole] = b.intrinsic(n)
	for _, e := range b.g.Outgoing(n.ID) {
		if e.Role == sem.IntrinsicRole || e.Role == sem.BareEqRole {
			continue
		}
		value, err := b.argument(e)
		if err != nil {
			return EP{}, fmt.Errorf("predication %s (%s): %w", n.ID, n.Predicate.Raw, err)
		}
		ep.Args[e.Role] = value
	}
	if b.g.IsQuantifier(n.ID) {
		if _, ok := ep.Args[sem.BodyRole]; !ok {
			ep.Args[sem.BodyRole], _ = b.gen.New(variable.HandleSort, nil)
		}
	}
	return ep, nil
}

// intrinsic returns the ARG0 for a predication node. Quantifiers bind the
// variable of the restricted scope's representative; other nodes use the
// recorded variable or a fresh one of the node's type.
func (b *builder) intrinsic(n sem.Node) string {
	if iv, ok := b.ivs[n.ID]; ok {
		return iv
	}
	if b.g.IsQuantifier(n.ID) {
		if bv := b.boundVariable(n.ID); bv != "" {
			b.ivs[n.ID] = bv
			return bv
		}
	}
	iv, _ := b.gen.New(n.Type, n.Properties)
	b.ivs[n.ID] = iv
	return iv
}

func (b *builder) boundVariable(id sem.NodeID) string {
	for _, e := range b.g.Outgoing(id) {
		if e.Role != sem.RestrictionRole {
			continue
		}
		switch e.Mode {
		case sem.LabelArg, sem.QeqArg:
			rep, err := scope.Representative(b.g, e.Scope)
			if err != nil {
				return ""
			}
			return b.variableOf(rep)
		default:
			return b.variableOf(e.End)
		}
	}
	return ""
}

func (b *builder) argument(e sem.Edge) (string, error) {
	switch e.Mode {
	case sem.LabelArg:
		return b.labels[e.Scope], nil
	case sem.QeqArg:
		hole, _ := b.gen.New(variable.HandleSort, nil)
		b.hcons = append(b.hcons, Qeq(hole, b.labels[e.Scope]))
		return hole, nil
	case sem.VariableArg, sem.UnexpressedArg:
		return b.variableOf(e.End), nil
	default:
		return "", fmt.Errorf("%w: role %s mode %s", ErrUnresolvableArgument, e.Role, e.Mode)
	}
}

// variableOf returns the variable denoting a node, allocating a fresh one
// for nodes seen for the first time, placeholders included.
func (b *builder) variableOf(id sem.NodeID) string {
	if iv, ok := b.ivs[id]; ok {
		return iv
	}
	n, ok := b.g.Node(id)
	if !ok {
		return ""
	}
	iv, _ := b.gen.New(n.Type, n.Properties)
	b.ivs[id] = iv
	return iv
}

// iconsVariable resolves an individual-constraint endpoint, which may name
// a node or carry a raw variable directly.
func (b *builder) iconsVariable(id sem.NodeID) string {
	if _, ok := b.g.Node(id); ok {
		return b.variableOf(id)
	}
	return string(id)
}
