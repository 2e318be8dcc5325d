package mrs

import (
	"fmt"
	"strconv"

	"github.com/semkit/semkit/sem"
	"github.com/semkit/semkit/variable"
)

// firstNodeID is the base for numeric node ids assigned in encounter
// order when entering the canonical form.
const firstNodeID = 10000

// ToScoped builds the canonical scoped graph from m.
//
// Scopes are the label equivalence classes of the predications, numbered
// from 1 in encounter order. Every argument is classified into its
// structural mode; variables denoting no predication synthesize placeholder
// nodes, reused for repeated references to the same variable.
func ToScoped(m *MRS) (*sem.ScopedGraph, error) {
	c := newClassifier(m)

	nodes := make([]sem.Node, 0, len(m.Rels))
	var edges []sem.Edge
	for i, ep := range m.Rels {
		id := sem.NodeID(strconv.Itoa(firstNodeID + i))
		nodes = append(nodes, epNode(m, ep, id))

		for _, role := range sem.SortedRoles(ep.Args) {
			value := ep.Args[role]
			switch {
			case role == sem.BodyRole:
				// The body hole carries no dependency of its own.
				continue
			case role == sem.IntrinsicRole:
				if ep.IsQuantifier() {
					continue
				}
				edges = append(edges, sem.Edge{
					Start:    id,
					Role:     role,
					Mode:     sem.IntrinsicArg,
					Variable: value,
				})
			default:
				e, err := c.classify(id, role, value)
				if err != nil {
					return nil, fmt.Errorf("predication %s (%s): %w",
						id, ep.Predicate.Raw, err)
				}
				edges = append(edges, e)
			}
		}
	}
	nodes = append(nodes, c.synthetic...)

	icons := make([]sem.ICons, 0, len(m.ICons))
	for _, ic := range m.ICons {
		icons = append(icons, sem.ICons{
			Left:     c.nodeFor(ic.Left),
			Relation: ic.Relation,
			Right:    c.nodeFor(ic.Right),
		})
	}

	opts := []sem.ScopedOption{
		sem.WithICons(icons),
		sem.WithLnk(m.Lnk),
		sem.WithSurface(m.Surface),
		sem.WithIdentifier(m.Identifier),
	}
	if x := c.epFor(m.XArg); x != "" {
		opts = append(opts, sem.WithXArg(x))
	}
	return sem.NewScopedGraph(
		c.topScope(m.Top),
		c.epFor(m.Index),
		nodes,
		c.scopes,
		edges,
		opts...,
	)
}

func epNode(m *MRS, ep EP, id sem.NodeID) sem.Node {
	typ := variable.UnknownSort
	props := map[string]string{}
	if iv := ep.IntrinsicVariable(); iv != "" {
		if sort, _, err := variable.Split(iv); err == nil {
			typ = sort
		}
		props = m.Properties(iv)
	}
	return sem.Node{
		ID:         id,
		Predicate:  ep.Predicate,
		Type:       typ,
		Properties: props,
		Carg:       ep.Carg,
		Lnk:        ep.Lnk,
		Surface:    ep.Surface,
		Base:       ep.Base,
	}
}

// classifier resolves raw argument values against the label, handle
// constraint and intrinsic-variable indexes of one MRS, synthesizing
// placeholder nodes for unexpressed referents.
type classifier struct {
	m          *MRS
	labelScope map[string]sem.ScopeID
	scopes     map[sem.ScopeID][]sem.NodeID
	nextScope  sem.ScopeID
	hcIndex    map[string]HCons
	ivIndex    map[string]sem.NodeID // non-quantifier intrinsic variables
	anyIV      map[string]sem.NodeID // any predication's intrinsic variable
	unexpr     map[string]sem.NodeID
	synthetic  []sem.Node
	nextNode   int
}

func newClassifier(m *MRS) *classifier {
	c := &classifier{
		m:          m,
		labelScope: make(map[string]sem.ScopeID),
		scopes:     make(map[sem.ScopeID][]sem.NodeID),
		nextScope:  1,
		hcIndex:    make(map[string]HCons, len(m.HCons)),
		ivIndex:    make(map[string]sem.NodeID),
		anyIV:      make(map[string]sem.NodeID),
		unexpr:     make(map[string]sem.NodeID),
		nextNode:   firstNodeID + len(m.Rels),
	}
	for i, ep := range m.Rels {
		id := sem.NodeID(strconv.Itoa(firstNodeID + i))
		sid, ok := c.labelScope[ep.Label]
		if !ok {
			sid = c.nextScope
			c.nextScope++
			c.labelScope[ep.Label] = sid
		}
		c.scopes[sid] = append(c.scopes[sid], id)
		if iv := ep.IntrinsicVariable(); iv != "" {
			if _, seen := c.anyIV[iv]; !seen {
				c.anyIV[iv] = id
			}
			if !ep.IsQuantifier() {
				if _, seen := c.ivIndex[iv]; !seen {
					c.ivIndex[iv] = id
				}
			}
		}
	}
	for _, hc := range m.HCons {
		if _, seen := c.hcIndex[hc.Hi]; !seen {
			c.hcIndex[hc.Hi] = hc
		}
	}
	return c
}

// classify runs the decision procedure for one non-intrinsic argument:
// scope label, qeq'd hole, known intrinsic variable, or unexpressed
// referent, in that order.
func (c *classifier) classify(start sem.NodeID, role, value string) (sem.Edge, error) {
	if sid, ok := c.labelScope[value]; ok {
		return sem.Edge{Start: start, Role: role, Mode: sem.LabelArg, Scope: sid}, nil
	}
	if hc, ok := c.hcIndex[value]; ok {
		sid, ok := c.labelScope[hc.Lo]
		if !ok {
			return sem.Edge{}, fmt.Errorf("%w: %s %s %s names no scope",
				sem.ErrMalformedScope, hc.Hi, hc.Relation, hc.Lo)
		}
		return sem.Edge{Start: start, Role: role, Mode: sem.QeqArg, Scope: sid}, nil
	}
	if id, ok := c.ivIndex[value]; ok {
		return sem.Edge{Start: start, Role: role, Mode: sem.VariableArg, End: id}, nil
	}
	id, err := c.unexpressed(value)
	if err != nil {
		return sem.Edge{}, fmt.Errorf("%w: role %s value %q", ErrUnresolvableArgument, role, value)
	}
	return sem.Edge{Start: start, Role: role, Mode: sem.UnexpressedArg, End: id}, nil
}

// unexpressed returns the placeholder node for a variable with no
// predication, synthesizing it on first reference. Placeholders occupy
// singleton scopes of their own so the partition stays total.
func (c *classifier) unexpressed(value string) (sem.NodeID, error) {
	if id, ok := c.unexpr[value]; ok {
		return id, nil
	}
	sort, _, err := variable.Split(value)
	if err != nil {
		return "", err
	}
	id := sem.NodeID(strconv.Itoa(c.nextNode))
	c.nextNode++
	c.unexpr[value] = id
	c.synthetic = append(c.synthetic, sem.Unexpressed(id, sort, c.m.Properties(value)))
	sid := c.nextScope
	c.nextScope++
	c.scopes[sid] = []sem.NodeID{id}
	return id, nil
}

// topScope resolves the top handle: directly when it is a label, through
// its handle constraint otherwise. 0 when no top can be resolved.
func (c *classifier) topScope(top string) sem.ScopeID {
	if top == "" {
		return 0
	}
	if sid, ok := c.labelScope[top]; ok {
		return sid
	}
	if hc, ok := c.hcIndex[top]; ok {
		if sid, ok := c.labelScope[hc.Lo]; ok {
			return sid
		}
	}
	return 0
}

// epFor maps a hook variable to the predication it identifies, preferring
// non-quantifiers when an intrinsic variable is shared.
func (c *classifier) epFor(v string) sem.NodeID {
	if v == "" {
		return ""
	}
	if id, ok := c.ivIndex[v]; ok {
		return id
	}
	return c.anyIV[v] // "" when unknown
}

// nodeFor maps an individual-constraint variable to a node id when it is
// some predication's intrinsic variable, keeping the raw variable
// otherwise.
func (c *classifier) nodeFor(v string) sem.NodeID {
	if id, ok := c.ivIndex[v]; ok {
		return id
	}
	if id, ok := c.anyIV[v]; ok {
		return id
	}
	if id, ok := c.unexpr[v]; ok {
		return id
	}
	return sem.NodeID(v)
}
