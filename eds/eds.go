package eds

import "github.com/semkit/semkit/sem"

// Node is a single predication. Edges maps role names to target node ids.
type Node struct {
	ID         string
	Predicate  sem.Predicate
	Type       string
	Edges      map[string]string
	Properties map[string]string
	Carg       string
	Lnk        sem.Lnk
	Surface    string
	Base       string
}

// EDS is a bare dependency graph.
type EDS struct {
	Top   string
	Nodes []Node

	Lnk        sem.Lnk
	Surface    string
	Identifier string
}

// GraphKind reports KindBare.
func (e *EDS) GraphKind() sem.Kind { return sem.KindBare }

// Node returns the node with the given id.
func (e *EDS) Node(id string) (Node, bool) {
	for _, n := range e.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// Fragmented reports whether the graph is not connected when edges are
// taken as undirected, the top node counting as reachable by definition.
func (e *EDS) Fragmented() bool {
	if len(e.Nodes) == 0 {
		return false
	}
	adj := make(map[string][]string, len(e.Nodes))
	for _, n := range e.Nodes {
		for _, end := range n.Edges {
			adj[n.ID] = append(adj[n.ID], end)
			adj[end] = append(adj[end], n.ID)
		}
	}
	start := e.Top
	if _, ok := e.Node(start); !ok {
		start = e.Nodes[0].ID
	}
	seen := map[string]bool{start: true}
	queue := []string{start}
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
	return len(seen) != len(e.Nodes)
}

// Cyclic reports whether the directed edges contain a cycle.
func (e *EDS) Cyclic() bool {
	const (
		white = iota
		gray
		black
	)
	color := make(map[string]int, len(e.Nodes))
	edges := make(map[string]map[string]string, len(e.Nodes))
	for _, n := range e.Nodes {
		edges[n.ID] = n.Edges
	}
	var visit func(id string) bool
	visit = func(id string) bool {
		color[id] = gray
		for _, end := range edges[id] {
			switch color[end] {
			case gray:
				return true
			case white:
				if visit(end) {
					return true
				}
			}
		}
		color[id] = black
		return false
	}
	for _, n := range e.Nodes {
		if color[n.ID] == white && visit(n.ID) {
			return true
		}
	}
	return false
}

// ToScoped reports that bare dependency graphs cannot be rescoped: the
// projection that produced them discarded the partition.
func ToScoped(*EDS) (*sem.ScopedGraph, error) {
	return nil, sem.ErrConversionNotSupported
}
