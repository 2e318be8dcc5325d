package scope

import (
	"fmt"
	"sort"

	"github.com/semkit/semkit/sem"
)

// visitation markers for scope-link cycle detection
type color uint8

const (
	white color = iota
	gray
	black
)

// Representatives returns, for each scope of g, the ranked list of
// candidate representative nodes, best first. Every scope has at least one
// candidate; an empty candidate set (possible only for degenerate input
// where every member modifies another member) is rejected with
// sem.ErrMalformedScope, as is a cyclic scope nesting.
//
// Ranking within a scope: nodes participating in a quantifier-binding
// relation first, abstract-predicate nodes last, everything else between;
// original node order breaks ties.
//
// Time: O(V·S + E) where S bounds the nested-closure size.
func Representatives(g *sem.ScopedGraph) (map[sem.ScopeID][]sem.NodeID, error) {
	nesting, err := scopeNesting(g)
	if err != nil {
		return nil, err
	}

	order := make(map[sem.NodeID]int, len(g.Nodes))
	for i, n := range g.Nodes {
		order[n.ID] = i
	}
	qs := quantifierParticipants(g)

	reps := make(map[sem.ScopeID][]sem.NodeID, len(g.Scopes))
	for _, sid := range g.ScopeIDs() {
		closureNodes := closureMembers(g, nesting, sid)

		var candidates []sem.NodeID
		for _, id := range g.Scopes[sid] {
			if modifiesWithin(g, id, closureNodes) {
				continue
			}
			candidates = append(candidates, id)
		}
		if len(candidates) == 0 {
			return nil, fmt.Errorf("%w: scope %d has no representative candidate",
				sem.ErrMalformedScope, sid)
		}

		rank := func(id sem.NodeID) int {
			if qs[id] {
				return 0
			}
			if n, ok := g.Node(id); ok && !n.IsUnexpressed() && n.Predicate.Kind == sem.AbstractPred {
				return 2
			}
			return 1
		}
		sort.SliceStable(candidates, func(i, j int) bool {
			ri, rj := rank(candidates[i]), rank(candidates[j])
			if ri != rj {
				return ri < rj
			}
			return order[candidates[i]] < order[candidates[j]]
		})
		reps[sid] = candidates
	}
	return reps, nil
}

// Representative returns the single chosen representative of the given
// scope: the highest-ranked candidate from Representatives.
func Representative(g *sem.ScopedGraph, sid sem.ScopeID) (sem.NodeID, error) {
	if _, ok := g.Scopes[sid]; !ok {
		return "", fmt.Errorf("%w: scope %d absent from partition",
			sem.ErrMalformedScope, sid)
	}
	reps, err := Representatives(g)
	if err != nil {
		return "", err
	}
	return reps[sid][0], nil
}

// scopeNesting builds the scope-level digraph induced by label and qeq
// edges and rejects cyclic nesting.
func scopeNesting(g *sem.ScopedGraph) (map[sem.ScopeID][]sem.ScopeID, error) {
	nesting := make(map[sem.ScopeID][]sem.ScopeID)
	for _, e := range g.Edges {
		if e.Mode != sem.LabelArg && e.Mode != sem.QeqArg {
			continue
		}
		src, _ := g.ScopeOf(e.Start)
		nesting[src] = append(nesting[src], e.Scope)
	}

	// DFS coloring; a gray-gray edge is a nesting cycle.
	colors := make(map[sem.ScopeID]color, len(g.Scopes))
	var visit func(sid sem.ScopeID) error
	visit = func(sid sem.ScopeID) error {
		colors[sid] = gray
		for _, next := range nesting[sid] {
			switch colors[next] {
			case gray:
				return fmt.Errorf("%w: scope %d is nested inside itself",
					sem.ErrMalformedScope, next)
			case white:
				if err := visit(next); err != nil {
					return err
				}
			}
		}
		colors[sid] = black
		return nil
	}
	for _, sid := range g.ScopeIDs() {
		if colors[sid] == white {
			if err := visit(sid); err != nil {
				return nil, err
			}
		}
	}
	return nesting, nil
}

// closureMembers collects the node ids of every scope in the nested-scope
// closure of sid (sid itself plus all scopes reachable via scopal edges).
func closureMembers(
	g *sem.ScopedGraph,
	nesting map[sem.ScopeID][]sem.ScopeID,
	sid sem.ScopeID,
) map[sem.NodeID]bool {
	seen := map[sem.ScopeID]bool{sid: true}
	queue := []sem.ScopeID{sid}
	nodes := make(map[sem.NodeID]bool)
	for qi := 0; qi < len(queue); qi++ {
		s := queue[qi]
		for _, id := range g.Scopes[s] {
			nodes[id] = true
		}
		for _, next := range nesting[s] {
			if !seen[next] {
				seen[next] = true
				queue = append(queue, next)
			}
		}
	}
	return nodes
}

// modifiesWithin reports whether the node has a node-valued argument edge
// landing inside the closure. Such nodes are scope-internal modifiers, not
// heads. Intrinsic edges record a variable rather than a dependency and do
// not count.
func modifiesWithin(g *sem.ScopedGraph, id sem.NodeID, closure map[sem.NodeID]bool) bool {
	for _, e := range g.Outgoing(id) {
		switch e.Mode {
		case sem.VariableArg, sem.UnexpressedArg, sem.Unspecified:
			if closure[e.End] {
				return true
			}
		}
	}
	return false
}

// quantifierParticipants returns the nodes participating in a
// quantifier-binding relation: quantifiers (carriers of the restriction
// role) and any node a restriction edge reaches directly.
func quantifierParticipants(g *sem.ScopedGraph) map[sem.NodeID]bool {
	qs := make(map[sem.NodeID]bool)
	for _, e := range g.Edges {
		if e.Role == sem.RestrictionRole {
			qs[e.Start] = true
			if e.Mode == sem.VariableArg || e.Mode == sem.UnexpressedArg {
				qs[e.End] = true
			}
		}
	}
	return qs
}
