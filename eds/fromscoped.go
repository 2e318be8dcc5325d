package eds

import (
	"fmt"
	"strconv"

	"github.com/semkit/semkit/scope"
	"github.com/semkit/semkit/sem"
)

// Option adjusts the projection.
type Option func(*config)

type config struct {
	predicateModifiers bool
}

// WithPredicateModifiers enables the reconnection pass: when the projected
// edges leave the graph in several components, a scope's excluded extra
// heads gain an ARG1 edge to the primary head, provided their own ARG1 is
// absent or targets a type-less placeholder. Edges are only added between
// separate components, so a connected graph is never touched.
func WithPredicateModifiers() Option {
	return func(c *config) { c.predicateModifiers = true }
}

// FromScoped projects the canonical scoped graph g onto a bare dependency
// graph. Node ids come from recorded intrinsic variables; quantifiers and
// nodes whose variable is taken get synthetic "_N" ids. The projection is
// lossy: scope information survives only as the BV edge of each
// quantifier.
func FromScoped(g *sem.ScopedGraph, opts ...Option) (*EDS, error) {
	var cfg config
	for _, o := range opts {
		o(&cfg)
	}

	reps, err := scope.Representatives(g)
	if err != nil {
		return nil, err
	}

	ids := identify(g)
	e := &EDS{
		Lnk:        g.Lnk,
		Surface:    g.Surface,
		Identifier: g.Identifier,
	}
	for _, n := range g.Nodes {
		if n.IsUnexpressed() {
			continue
		}
		node := Node{
			ID:         ids[n.ID],
			Predicate:  n.Predicate,
			Type:       n.Type,
			Edges:      map[string]string{},
			Properties: n.Properties,
			Carg:       n.Carg,
			Lnk:        n.Lnk,
			Surface:    n.Surface,
			Base:       n.Base,
		}
		for _, edge := range g.Outgoing(n.ID) {
			if edge.Mode == sem.IntrinsicArg || edge.Role == sem.BareEqRole {
				continue
			}
			role := edge.Role
			if role == sem.RestrictionRole {
				role = sem.BoundVariableRole
			}
			end, err := target(reps, ids, edge)
			if err != nil {
				return nil, fmt.Errorf("node %s role %s: %w", n.ID, edge.Role, err)
			}
			node.Edges[role] = end
		}
		e.Nodes = append(e.Nodes, node)
	}

	if cfg.predicateModifiers {
		modify(g, reps, ids, e)
	}

	if g.Top != 0 {
		if rep := reps[g.Top]; len(rep) > 0 {
			e.Top = ids[rep[0]]
		}
	}
	return e, nil
}

func target(reps map[sem.ScopeID][]sem.NodeID, ids map[sem.NodeID]string, edge sem.Edge) (string, error) {
	switch edge.Mode {
	case sem.VariableArg:
		return ids[edge.End], nil
	case sem.LabelArg, sem.QeqArg:
		rep := reps[edge.Scope]
		if len(rep) == 0 {
			return "", fmt.Errorf("%w: scope %d has no representative", sem.ErrMalformedScope, edge.Scope)
		}
		return ids[rep[0]], nil
	default:
		return "", fmt.Errorf("%w: %s", sem.ErrInvalidArgumentMode, edge.Mode)
	}
}

// identify assigns node ids. A non-quantifier keeps its intrinsic variable
// unless other nodes record the same one; a shared variable goes to the
// holder whose own edge lands inside the holder group, and everything else
// gets a synthetic id.
func identify(g *sem.ScopedGraph) map[sem.NodeID]string {
	holders := make(map[string][]sem.NodeID)
	for _, n := range g.Nodes {
		if n.IsUnexpressed() || g.IsQuantifier(n.ID) {
			continue
		}
		if iv := g.IntrinsicVariable(n.ID); iv != "" {
			holders[iv] = append(holders[iv], n.ID)
		}
	}

	ids := make(map[sem.NodeID]string, len(g.Nodes))
	taken := make(map[string]bool, len(g.Nodes))
	for iv, group := range holders {
		ids[keeper(g, group)] = iv
		taken[iv] = true
	}
	synth := 0
	for _, n := range g.Nodes {
		if n.IsUnexpressed() {
			continue
		}
		if _, ok := ids[n.ID]; ok {
			continue
		}
		for {
			synth++
			id := "_" + strconv.Itoa(synth)
			if !taken[id] {
				ids[n.ID] = id
				taken[id] = true
				break
			}
		}
	}
	return ids
}

// keeper picks the holder that keeps a shared intrinsic variable: the
// first in node order whose outgoing edge lands on another holder, the
// first holder when none does.
func keeper(g *sem.ScopedGraph, group []sem.NodeID) sem.NodeID {
	if len(group) == 1 {
		return group[0]
	}
	in := make(map[sem.NodeID]bool, len(group))
	for _, id := range group {
		in[id] = true
	}
	for _, id := range group {
		for _, e := range g.Outgoing(id) {
			switch e.Mode {
			case sem.VariableArg, sem.UnexpressedArg, sem.Unspecified:
				if in[e.End] {
					return id
				}
			}
		}
	}
	return group[0]
}

// modifierRole carries the synthesized reconnection edges.
const modifierRole = "ARG1"

// modify runs predicate modification over the projected graph. Nothing
// happens while the projection is connected. Otherwise each scope's extra
// heads, best first, gain an edge to the primary head when that joins two
// components and their own modifier role is free (absent, or landing on a
// type-less placeholder).
func modify(g *sem.ScopedGraph, reps map[sem.ScopeID][]sem.NodeID, ids map[sem.NodeID]string, e *EDS) {
	ccof, count := components(e)
	if count < 2 {
		return
	}
	byID := make(map[string]*Node, len(e.Nodes))
	for i := range e.Nodes {
		byID[e.Nodes[i].ID] = &e.Nodes[i]
	}
	for _, sid := range g.ScopeIDs() {
		heads := reps[sid]
		if len(heads) < 2 {
			continue
		}
		primary := ids[heads[0]]
		joined := map[int]bool{ccof[primary]: true}
		for _, h := range heads[1:] {
			id := ids[h]
			if joined[ccof[id]] || !modifierRoleFree(g, h) {
				continue
			}
			if n := byID[id]; n != nil {
				n.Edges[modifierRole] = primary
				joined[ccof[id]] = true
			}
		}
	}
}

// modifierRoleFree reports whether the node's modifier-role argument is
// open for synthesis: no such edge, or one landing on a type-less
// placeholder. A scopal or typed-target edge is a genuine dependency and
// blocks the node.
func modifierRoleFree(g *sem.ScopedGraph, id sem.NodeID) bool {
	for _, edge := range g.Outgoing(id) {
		if edge.Role != modifierRole || edge.Mode == sem.IntrinsicArg {
			continue
		}
		switch edge.Mode {
		case sem.VariableArg, sem.UnexpressedArg, sem.Unspecified:
			n, ok := g.Node(edge.End)
			return ok && (n.Type == "" || n.Type == "u")
		default:
			return false
		}
	}
	return true
}

// components labels each projected node with its undirected component.
func components(e *EDS) (map[string]int, int) {
	adj := make(map[string][]string, len(e.Nodes))
	for _, n := range e.Nodes {
		for _, end := range n.Edges {
			adj[n.ID] = append(adj[n.ID], end)
			adj[end] = append(adj[end], n.ID)
		}
	}
	ccof := make(map[string]int, len(e.Nodes))
	count := 0
	for _, n := range e.Nodes {
		if _, seen := ccof[n.ID]; seen {
			continue
		}
		count++
		ccof[n.ID] = count
		queue := []string{n.ID}
		for qi := 0; qi < len(queue); qi++ {
			for _, next := range adj[queue[qi]] {
				if _, seen := ccof[next]; !seen {
					ccof[next] = count
					queue = append(queue, next)
				}
			}
		}
	}
	return ccof, count
}
