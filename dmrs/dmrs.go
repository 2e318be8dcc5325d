package dmrs

import "github.com/semkit/semkit/sem"

// Node id conventions shared with the other DELPH-IN tools.
const (
	FirstNodeID = 10000
	TopNodeID   = 0 // start of the synthetic top link
)

// Link posts, the scope relation between a link's endpoints.
const (
	EQPost  = "EQ"  // same scope
	NEQPost = "NEQ" // different scopes, no outscoping claimed
	HEQPost = "HEQ" // start's argument is the end's scope itself
	HPost   = "H"   // start's argument is qeq the end's scope
	NilPost = "NIL" // no scope relation (top links)
)

// CvarSort is the property key dependency serializations use for the node
// type.
const CvarSort = "cvarsort"

// Node is a single predication.
type Node struct {
	ID         int
	Predicate  sem.Predicate
	Type       string
	Properties map[string]string
	Carg       string
	Lnk        sem.Lnk
	Surface    string
	Base       string
}

// Link is a labelled dependency between two nodes. A Role of
// sem.BareEqRole with an EQ post records scope sharing without any
// argument.
type Link struct {
	Start int
	End   int
	Role  string
	Post  string
}

// DMRS is a dependency semantic graph.
type DMRS struct {
	Top   int
	Index int
	Nodes []Node
	Links []Link

	Lnk        sem.Lnk
	Surface    string
	Identifier string
}

// GraphKind reports KindDependency.
func (d *DMRS) GraphKind() sem.Kind { return sem.KindDependency }

// Node returns the node with the given id.
func (d *DMRS) Node(id int) (Node, bool) {
	for _, n := range d.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}
