package sem

import (
	"fmt"
	"sort"
)

// ScopedGraph is the canonical in-memory semantic graph: a node list, a
// total scope partition, mode-classified edges, optional top scope, index
// node and external-argument node, and individual constraints.
//
// A ScopedGraph is immutable after construction. All conversions read it
// and build new output structures, so concurrent reads need no locking.
type ScopedGraph struct {
	// Top is the designated top scope, or 0 when none is given.
	Top ScopeID
	// Index is the main non-scopal referent node, or "" when none.
	Index NodeID
	// XArg is the external-argument node, or "" when none.
	XArg NodeID

	Nodes  []Node
	Scopes map[ScopeID][]NodeID
	Edges  []Edge
	ICons  []ICons

	// Whole-graph surface metadata.
	Lnk        Lnk
	Surface    string
	Identifier string

	nodeIndex map[NodeID]int
	scopeOf   map[NodeID]ScopeID
	outgoing  map[NodeID][]Edge
}

// ScopedOption configures optional ScopedGraph fields at construction.
type ScopedOption func(*ScopedGraph)

// WithXArg designates the external-argument node.
func WithXArg(id NodeID) ScopedOption {
	return func(g *ScopedGraph) { g.XArg = id }
}

// WithICons attaches individual constraints.
func WithICons(icons []ICons) ScopedOption {
	return func(g *ScopedGraph) { g.ICons = icons }
}

// WithLnk attaches a whole-graph surface alignment.
func WithLnk(lnk Lnk) ScopedOption {
	return func(g *ScopedGraph) { g.Lnk = lnk }
}

// WithSurface attaches the whole-graph surface string.
func WithSurface(surface string) ScopedOption {
	return func(g *ScopedGraph) { g.Surface = surface }
}

// WithIdentifier attaches a corpus-level identifier.
func WithIdentifier(id string) ScopedOption {
	return func(g *ScopedGraph) { g.Identifier = id }
}

// NewScopedGraph validates and indexes a canonical graph.
//
// Invariants enforced here:
//   - node ids are non-empty and unique (ErrDuplicateNode);
//   - the scope partition is total and disjoint over the node set, with no
//     empty scope, and top names a present scope (ErrMalformedScope);
//   - every edge endpoint resolves: node-valued targets to nodes
//     (ErrDanglingEdge), scopal targets to partition keys
//     (ErrMalformedScope).
//
// Complexity: O(V + E).
func NewScopedGraph(
	top ScopeID,
	index NodeID,
	nodes []Node,
	scopes map[ScopeID][]NodeID,
	edges []Edge,
	opts ...ScopedOption,
) (*ScopedGraph, error) {
	g := &ScopedGraph{
		Top:       top,
		Index:     index,
		Nodes:     nodes,
		Scopes:    scopes,
		Edges:     edges,
		nodeIndex: make(map[NodeID]int, len(nodes)),
		scopeOf:   make(map[NodeID]ScopeID, len(nodes)),
		outgoing:  make(map[NodeID][]Edge, len(nodes)),
	}
	for _, opt := range opts {
		opt(g)
	}

	for i, n := range nodes {
		if n.ID == "" {
			return nil, fmt.Errorf("%w: node %d has empty id", ErrDuplicateNode, i)
		}
		if _, seen := g.nodeIndex[n.ID]; seen {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateNode, n.ID)
		}
		g.nodeIndex[n.ID] = i
	}

	for sid, members := range scopes {
		if len(members) == 0 {
			return nil, fmt.Errorf("%w: scope %d is empty", ErrMalformedScope, sid)
		}
		for _, id := range members {
			if _, ok := g.nodeIndex[id]; !ok {
				return nil, fmt.Errorf("%w: scope %d member %s is not a node",
					ErrMalformedScope, sid, id)
			}
			if prev, dup := g.scopeOf[id]; dup {
				return nil, fmt.Errorf("%w: node %s in scopes %d and %d",
					ErrMalformedScope, id, prev, sid)
			}
			g.scopeOf[id] = sid
		}
	}
	for _, n := range nodes {
		if _, ok := g.scopeOf[n.ID]; !ok {
			return nil, fmt.Errorf("%w: node %s belongs to no scope",
				ErrMalformedScope, n.ID)
		}
	}
	if top != 0 {
		if _, ok := scopes[top]; !ok {
			return nil, fmt.Errorf("%w: top scope %d absent from partition",
				ErrMalformedScope, top)
		}
	}
	if index != "" {
		if _, ok := g.nodeIndex[index]; !ok {
			return nil, fmt.Errorf("%w: index node %s", ErrDanglingEdge, index)
		}
	}
	if g.XArg != "" {
		if _, ok := g.nodeIndex[g.XArg]; !ok {
			return nil, fmt.Errorf("%w: xarg node %s", ErrDanglingEdge, g.XArg)
		}
	}

	for _, e := range edges {
		if _, ok := g.nodeIndex[e.Start]; !ok {
			return nil, fmt.Errorf("%w: edge start %s", ErrDanglingEdge, e.Start)
		}
		switch e.Mode {
		case LabelArg, QeqArg:
			if _, ok := scopes[e.Scope]; !ok {
				return nil, fmt.Errorf("%w: edge %s:%s names scope %d absent from partition",
					ErrMalformedScope, e.Start, e.Role, e.Scope)
			}
		case IntrinsicArg:
			if e.Variable == "" {
				return nil, fmt.Errorf("%w: edge %s:%s has no intrinsic variable",
					ErrDanglingEdge, e.Start, e.Role)
			}
		default:
			if _, ok := g.nodeIndex[e.End]; !ok {
				return nil, fmt.Errorf("%w: edge %s:%s target %s",
					ErrDanglingEdge, e.Start, e.Role, e.End)
			}
		}
		g.outgoing[e.Start] = append(g.outgoing[e.Start], e)
	}

	return g, nil
}

// GraphKind reports KindScoped.
func (g *ScopedGraph) GraphKind() Kind { return KindScoped }

// Node returns the node with the given id.
func (g *ScopedGraph) Node(id NodeID) (Node, bool) {
	i, ok := g.nodeIndex[id]
	if !ok {
		return Node{}, false
	}
	return g.Nodes[i], true
}

// ScopeOf returns the scope containing the given node.
func (g *ScopedGraph) ScopeOf(id NodeID) (ScopeID, bool) {
	s, ok := g.scopeOf[id]
	return s, ok
}

// Outgoing returns the edges starting at the given node, in edge-list
// order. The returned slice must not be modified.
func (g *ScopedGraph) Outgoing(id NodeID) []Edge { return g.outgoing[id] }

// ScopeIDs returns the partition's scope ids in ascending order.
func (g *ScopedGraph) ScopeIDs() []ScopeID {
	ids := make([]ScopeID, 0, len(g.Scopes))
	for sid := range g.Scopes {
		ids = append(ids, sid)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// IsQuantifier reports whether the node carries the restriction-binding
// role, which identifies quantifier predications in every view.
func (g *ScopedGraph) IsQuantifier(id NodeID) bool {
	for _, e := range g.outgoing[id] {
		if e.Role == RestrictionRole {
			return true
		}
	}
	return false
}

// IntrinsicVariable returns the node's own identifying variable as
// recorded by its intrinsic-argument edge, or "" when none was recorded.
func (g *ScopedGraph) IntrinsicVariable(id NodeID) string {
	for _, e := range g.outgoing[id] {
		if e.Mode == IntrinsicArg {
			return e.Variable
		}
	}
	return ""
}
