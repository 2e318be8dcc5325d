package dmrs

import (
	"fmt"
	"strconv"

	"github.com/semkit/semkit/scope"
	"github.com/semkit/semkit/sem"
)

// ToScoped rebuilds the canonical scoped graph from d.
//
// The scope partition is the set of connected components over EQ-post
// links, MOD links included. MOD links contribute nothing beyond the
// partition; every other link becomes an argument edge, with H posts
// restored as qeq constraints and HEQ posts as direct scope arguments.
func ToScoped(d *DMRS) (*sem.ScopedGraph, error) {
	known := make(map[int]sem.NodeID, len(d.Nodes))
	nodeIDs := make([]sem.NodeID, 0, len(d.Nodes))
	nodes := make([]sem.Node, 0, len(d.Nodes))
	for _, n := range d.Nodes {
		id := sem.NodeID(strconv.Itoa(n.ID))
		known[n.ID] = id
		nodeIDs = append(nodeIDs, id)
		nodes = append(nodes, sem.Node{
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

	type rawArg struct {
		start, end sem.NodeID
		role, post string
	}
	var eqPairs [][2]sem.NodeID
	var args []rawArg
	topNode := d.Top
	for _, l := range d.Links {
		if l.Start == TopNodeID {
			if topNode == 0 {
				topNode = l.End
			}
			continue
		}
		start, ok := known[l.Start]
		if !ok {
			return nil, fmt.Errorf("%w: link start %d", sem.ErrDanglingEdge, l.Start)
		}
		end, ok := known[l.End]
		if !ok {
			return nil, fmt.Errorf("%w: link end %d", sem.ErrDanglingEdge, l.End)
		}
		if l.Post == EQPost {
			eqPairs = append(eqPairs, [2]sem.NodeID{start, end})
		}
		if l.Role == sem.BareEqRole {
			continue
		}
		args = append(args, rawArg{start: start, end: end, role: l.Role, post: l.Post})
	}

	scopes, scopeOf := scope.Partition(nodeIDs, eqPairs)

	edges := make([]sem.Edge, 0, len(args))
	for _, a := range args {
		switch a.post {
		case HPost:
			edges = append(edges, sem.Edge{Start: a.start, Role: a.role, Mode: sem.QeqArg, Scope: scopeOf[a.end]})
		case HEQPost:
			edges = append(edges, sem.Edge{Start: a.start, Role: a.role, Mode: sem.LabelArg, Scope: scopeOf[a.end]})
		default:
			edges = append(edges, sem.Edge{Start: a.start, Role: a.role, Mode: sem.VariableArg, End: a.end})
		}
	}

	var top sem.ScopeID
	if topNode != 0 {
		id, ok := known[topNode]
		if !ok {
			return nil, fmt.Errorf("%w: top %d", sem.ErrDanglingEdge, topNode)
		}
		top = scopeOf[id]
	}
	var index sem.NodeID
	if d.Index != 0 {
		id, ok := known[d.Index]
		if !ok {
			return nil, fmt.Errorf("%w: index %d", sem.ErrDanglingEdge, d.Index)
		}
		index = id
	}

	return sem.NewScopedGraph(top, index, nodes, scopes, edges,
		sem.WithLnk(d.Lnk),
		sem.WithSurface(d.Surface),
		sem.WithIdentifier(d.Identifier),
	)
}
