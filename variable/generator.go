package variable

import "strconv"

// Generator produces fresh variable strings with strictly increasing
// numeric ids. Ids issued or reserved earlier are never reused, across all
// sorts: one id namespace per generator, as in the scoped formalism where
// "h3" and "e3" cannot coexist in a well-formed structure.
//
// A Generator is not safe for concurrent use; give each conversion its own.
type Generator struct {
	next  int
	used  map[int]string
	store map[string]map[string]string
}

// NewGenerator returns a Generator whose first candidate id is start.
// A start below 1 is treated as 1.
func NewGenerator(start int) *Generator {
	if start < 1 {
		start = 1
	}
	return &Generator{
		next:  start,
		used:  make(map[int]string),
		store: make(map[string]map[string]string),
	}
}

// Reserve marks the variable v as already in use, so that New never
// allocates its numeric id again. Properties may be nil. Returns
// ErrInvalidIdentifier if v does not parse.
func (g *Generator) Reserve(v string, properties map[string]string) error {
	_, id, err := Split(v)
	if err != nil {
		return err
	}
	g.used[id] = v
	if properties != nil {
		g.store[v] = properties
	}
	return nil
}

// New allocates a fresh variable of the given sort, scanning forward past
// every id previously issued or reserved. An empty sort defaults to
// UnknownSort. The returned properties map is the same map recorded for
// later retrieval by Properties; a nil input yields an empty map.
func (g *Generator) New(sort string, properties map[string]string) (string, map[string]string) {
	if sort == "" {
		sort = UnknownSort
	}
	id := g.next
	for {
		if _, taken := g.used[id]; !taken {
			break
		}
		id++
	}
	v := sort + strconv.Itoa(id)
	g.used[id] = v
	if properties == nil {
		properties = make(map[string]string)
	}
	g.store[v] = properties
	g.next = id + 1
	return v, properties
}

// Properties returns the property map recorded when v was issued or
// reserved, and whether v is known to this generator.
func (g *Generator) Properties(v string) (map[string]string, bool) {
	p, ok := g.store[v]
	return p, ok
}

// Variables returns every variable string recorded by this generator with
// properties, in no particular order.
func (g *Generator) Variables() map[string]map[string]string {
	return g.store
}
