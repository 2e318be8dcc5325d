package dmrs

import (
	"fmt"

	"github.com/semkit/semkit/scope"
	"github.com/semkit/semkit/sem"
)

// FromScoped projects the canonical scoped graph g onto dependency links.
//
// Node-valued arguments become EQ or NEQ links depending on whether the
// endpoints share a scope; scopal arguments land on the representative of
// the target scope with an HEQ or H post. Scopes holding several nodes not
// already joined by an EQ link gain MOD/EQ links toward the representative
// so the partition is recoverable.
//
// Unexpressed arguments have no dependency rendering; they raise
// sem.ErrInvalidArgumentMode.
func FromScoped(g *sem.ScopedGraph) (*DMRS, error) {
	reps, err := scope.Representatives(g)
	if err != nil {
		return nil, err
	}

	ids := make(map[sem.NodeID]int, len(g.Nodes))
	d := &DMRS{
		Lnk:        g.Lnk,
		Surface:    g.Surface,
		Identifier: g.Identifier,
	}
	for _, n := range g.Nodes {
		if n.IsUnexpressed() {
			continue
		}
		id := FirstNodeID + len(d.Nodes)
		ids[n.ID] = id
		d.Nodes = append(d.Nodes, Node{
			ID:         id,
			Predicate:  n.Predicate,
			Type:       n.Type,
			Properties: n.Properties,
			Carg:       n.Carg,
			Lnk:        n.Lnk,
			Surface:    n.Surface,
			Base:       n.Base,
		})
	}

	for _, n := range g.Nodes {
		for _, e := range g.Outgoing(n.ID) {
			if e.Mode == sem.IntrinsicArg {
				continue
			}
			l, err := link(g, reps, ids, e)
			if err != nil {
				return nil, fmt.Errorf("node %s role %s: %w", n.ID, e.Role, err)
			}
			d.Links = append(d.Links, l)
		}
	}

	d.Links = append(d.Links, scopeLinks(g, reps, ids)...)

	if g.Top != 0 {
		if rep := reps[g.Top]; len(rep) > 0 {
			d.Top = ids[rep[0]]
		}
	}
	if g.Index != "" {
		d.Index = ids[g.Index]
	}
	return d, nil
}

func link(g *sem.ScopedGraph, reps map[sem.ScopeID][]sem.NodeID, ids map[sem.NodeID]int, e sem.Edge) (Link, error) {
	switch e.Mode {
	case sem.VariableArg:
		post := NEQPost
		if sameScope(g, e.Start, e.End) {
			post = EQPost
		}
		return Link{Start: ids[e.Start], End: ids[e.End], Role: e.Role, Post: post}, nil
	case sem.LabelArg:
		return scopalLink(reps, ids, e, HEQPost)
	case sem.QeqArg:
		return scopalLink(reps, ids, e, HPost)
	default:
		return Link{}, fmt.Errorf("%w: %s", sem.ErrInvalidArgumentMode, e.Mode)
	}
}

func scopalLink(reps map[sem.ScopeID][]sem.NodeID, ids map[sem.NodeID]int, e sem.Edge, post string) (Link, error) {
	rep := reps[e.Scope]
	if len(rep) == 0 {
		return Link{}, fmt.Errorf("%w: scope %d has no representative", sem.ErrMalformedScope, e.Scope)
	}
	return Link{Start: ids[e.Start], End: ids[rep[0]], Role: e.Role, Post: post}, nil
}

func sameScope(g *sem.ScopedGraph, a, b sem.NodeID) bool {
	sa, oka := g.ScopeOf(a)
	sb, okb := g.ScopeOf(b)
	return oka && okb && sa == sb
}

// scopeLinks emits MOD/EQ links joining scope members that the argument
// links left in separate EQ components, anchoring each to the scope's
// representative.
func scopeLinks(g *sem.ScopedGraph, reps map[sem.ScopeID][]sem.NodeID, ids map[sem.NodeID]int) []Link {
	// EQ adjacency among graph nodes, from node-valued same-scope edges.
	adj := make(map[int][]int)
	for _, e := range g.Edges {
		if e.Mode != sem.VariableArg || !sameScope(g, e.Start, e.End) {
			continue
		}
		a, b := ids[e.Start], ids[e.End]
		adj[a] = append(adj[a], b)
		adj[b] = append(adj[b], a)
	}

	var links []Link
	for _, sid := range g.ScopeIDs() {
		members := make([]int, 0, len(g.Scopes[sid]))
		for _, nid := range g.Scopes[sid] {
			if n, ok := g.Node(nid); ok && !n.IsUnexpressed() {
				members = append(members, ids[nid])
			}
		}
		if len(members) < 2 || len(reps[sid]) == 0 {
			continue
		}
		rep := ids[reps[sid][0]]
		reached := component(adj, rep)
		for _, m := range members {
			if reached[m] {
				continue
			}
			links = append(links, Link{Start: m, End: rep, Role: sem.BareEqRole, Post: EQPost})
			for id := range component(adj, m) {
				reached[id] = true
			}
		}
	}
	return links
}

func component(adj map[int][]int, start int) map[int]bool {
	seen := map[int]bool{start: true}
	queue := []int{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range adj[cur] {
			if !seen[next] {
				seen[next] = true
				queue = append(queue, next)
			}
		}
	}
	return seen
}
