package scope

import (
	"sort"

	"github.com/semkit/semkit/sem"
)

// Partition computes the scope partition of nodeIDs under the given
// label-equality connections. Each pair connects its two endpoints
// regardless of direction; endpoints absent from nodeIDs are ignored.
//
// Scope ids are assigned from 1 in order of first encounter over nodeIDs,
// and each member list preserves nodeIDs order, so the numbering is stable
// for a given input.
//
// Returns the scope-id→members map and the inverse node→scope map.
//
// Time: O(V + E). Memory: O(V + E).
func Partition(
	nodeIDs []sem.NodeID,
	eqPairs [][2]sem.NodeID,
) (map[sem.ScopeID][]sem.NodeID, map[sem.NodeID]sem.ScopeID) {
	order := make(map[sem.NodeID]int, len(nodeIDs))
	for i, id := range nodeIDs {
		if _, seen := order[id]; !seen {
			order[id] = i
		}
	}

	adjacency := make(map[sem.NodeID][]sem.NodeID, len(nodeIDs))
	for _, p := range eqPairs {
		a, b := p[0], p[1]
		if _, ok := order[a]; !ok {
			continue
		}
		if _, ok := order[b]; !ok {
			continue
		}
		adjacency[a] = append(adjacency[a], b)
		adjacency[b] = append(adjacency[b], a)
	}

	scopes := make(map[sem.ScopeID][]sem.NodeID)
	scopeOf := make(map[sem.NodeID]sem.ScopeID, len(nodeIDs))
	next := sem.ScopeID(1)

	for _, start := range nodeIDs {
		if _, visited := scopeOf[start]; visited {
			continue
		}
		// BFS to collect the component
		sid := next
		next++
		queue := []sem.NodeID{start}
		scopeOf[start] = sid
		var members []sem.NodeID
		for qi := 0; qi < len(queue); qi++ {
			u := queue[qi]
			members = append(members, u)
			for _, v := range adjacency[u] {
				if _, visited := scopeOf[v]; !visited {
					scopeOf[v] = sid
					queue = append(queue, v)
				}
			}
		}
		sort.Slice(members, func(i, j int) bool {
			return order[members[i]] < order[members[j]]
		})
		scopes[sid] = members
	}
	return scopes, scopeOf
}
