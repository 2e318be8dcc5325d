package scope

import (
	"errors"
	"reflect"
	"testing"

	"github.com/semkit/semkit/sem"
)

func mustGraph(
	t *testing.T,
	top sem.ScopeID,
	nodes []sem.Node,
	scopes map[sem.ScopeID][]sem.NodeID,
	edges []sem.Edge,
) *sem.ScopedGraph {
	t.Helper()
	g, err := sem.NewScopedGraph(top, "", nodes, scopes, edges)
	if err != nil {
		t.Fatalf("NewScopedGraph: %v", err)
	}
	return g
}

func TestPartition(t *testing.T) {
	nodeIDs := []sem.NodeID{"a", "b", "c", "d"}
	eqPairs := [][2]sem.NodeID{{"c", "a"}}

	scopes, scopeOf := Partition(nodeIDs, eqPairs)

	wantScopes := map[sem.ScopeID][]sem.NodeID{
		1: {"a", "c"},
		2: {"b"},
		3: {"d"},
	}
	if !reflect.DeepEqual(scopes, wantScopes) {
		t.Errorf("scopes = %v; want %v", scopes, wantScopes)
	}
	wantScopeOf := map[sem.NodeID]sem.ScopeID{"a": 1, "b": 2, "c": 1, "d": 3}
	if !reflect.DeepEqual(scopeOf, wantScopeOf) {
		t.Errorf("scopeOf = %v; want %v", scopeOf, wantScopeOf)
	}
}

func TestPartition_Transitive(t *testing.T) {
	nodeIDs := []sem.NodeID{"a", "b", "c"}
	eqPairs := [][2]sem.NodeID{{"a", "b"}, {"b", "c"}}

	scopes, scopeOf := Partition(nodeIDs, eqPairs)

	if len(scopes) != 1 {
		t.Fatalf("len(scopes) = %d; want 1", len(scopes))
	}
	if got := scopes[1]; !reflect.DeepEqual(got, []sem.NodeID{"a", "b", "c"}) {
		t.Errorf("scopes[1] = %v", got)
	}
	for _, id := range nodeIDs {
		if scopeOf[id] != 1 {
			t.Errorf("scopeOf[%s] = %d; want 1", id, scopeOf[id])
		}
	}
}

func TestPartition_ForeignEndpoints(t *testing.T) {
	nodeIDs := []sem.NodeID{"a", "b"}
	eqPairs := [][2]sem.NodeID{{"a", "ghost"}, {"ghost", "b"}}

	scopes, _ := Partition(nodeIDs, eqPairs)

	if len(scopes) != 2 {
		t.Fatalf("len(scopes) = %d; want 2 (foreign endpoints must not connect)", len(scopes))
	}
	if _, ok := scopes[1]; !ok {
		t.Error("missing scope 1")
	}
	if _, ok := scopes[2]; !ok {
		t.Error("missing scope 2")
	}
}

func TestPartition_Deterministic(t *testing.T) {
	nodeIDs := []sem.NodeID{"e", "d", "c", "b", "a"}
	eqPairs := [][2]sem.NodeID{{"a", "c"}, {"d", "b"}}

	s1, m1 := Partition(nodeIDs, eqPairs)
	s2, m2 := Partition(nodeIDs, eqPairs)

	if !reflect.DeepEqual(s1, s2) || !reflect.DeepEqual(m1, m2) {
		t.Error("repeated calls disagree")
	}
	// first encounter over nodeIDs fixes the numbering
	if m1["e"] != 1 || m1["d"] != 2 || m1["c"] != 3 {
		t.Errorf("numbering = %v", m1)
	}
}

// everyDogBarksLoudly builds a three-scope graph: the quantifier alone on
// top, the restriction with the noun, and a body scope where an adverb
// modifies the verb.
func everyDogBarksLoudly(t *testing.T) *sem.ScopedGraph {
	t.Helper()
	nodes := []sem.Node{
		{ID: "q", Predicate: sem.Surface("_every_q")},
		{ID: "dog", Predicate: sem.Surface("_dog_n_1"), Type: "x"},
		{ID: "bark", Predicate: sem.Surface("_bark_v_1"), Type: "e"},
		{ID: "loud", Predicate: sem.Surface("_loud_a_1"), Type: "e"},
	}
	scopes := map[sem.ScopeID][]sem.NodeID{
		1: {"q"},
		2: {"dog"},
		3: {"bark", "loud"},
	}
	edges := []sem.Edge{
		{Start: "q", Role: sem.RestrictionRole, Mode: sem.QeqArg, Scope: 2},
		{Start: "bark", Role: "ARG1", Mode: sem.VariableArg, End: "dog"},
		{Start: "loud", Role: "ARG1", Mode: sem.VariableArg, End: "bark"},
	}
	return mustGraph(t, 1, nodes, scopes, edges)
}

func TestRepresentatives(t *testing.T) {
	g := everyDogBarksLoudly(t)

	reps, err := Representatives(g)
	if err != nil {
		t.Fatalf("Representatives: %v", err)
	}
	want := map[sem.ScopeID][]sem.NodeID{
		1: {"q"},
		2: {"dog"},
		3: {"bark"}, // loud modifies bark inside the scope
	}
	if !reflect.DeepEqual(reps, want) {
		t.Errorf("reps = %v; want %v", reps, want)
	}
}

func TestRepresentatives_Ranking(t *testing.T) {
	// One shared scope holding an abstract predication, an ordinary one
	// and a quantifier; plus the quantified noun in its own scope.
	nodes := []sem.Node{
		{ID: "foc", Predicate: sem.Abstract("focus_d")},
		{ID: "win", Predicate: sem.Surface("_win_v_1"), Type: "e"},
		{ID: "q", Predicate: sem.Surface("_the_q")},
		{ID: "dog", Predicate: sem.Surface("_dog_n_1"), Type: "x"},
	}
	scopes := map[sem.ScopeID][]sem.NodeID{
		1: {"foc", "win", "q"},
		2: {"dog"},
	}
	edges := []sem.Edge{
		{Start: "q", Role: sem.RestrictionRole, Mode: sem.QeqArg, Scope: 2},
	}
	g := mustGraph(t, 1, nodes, scopes, edges)

	reps, err := Representatives(g)
	if err != nil {
		t.Fatalf("Representatives: %v", err)
	}
	want := []sem.NodeID{"q", "win", "foc"}
	if !reflect.DeepEqual(reps[1], want) {
		t.Errorf("reps[1] = %v; want %v", reps[1], want)
	}
}

func TestRepresentatives_QuantifiedNounOutranksModifier(t *testing.T) {
	// A restriction edge reaching a node directly marks that node as a
	// quantifier participant, so it wins its scope.
	nodes := []sem.Node{
		{ID: "q", Predicate: sem.Surface("_the_q")},
		{ID: "big", Predicate: sem.Surface("_big_a_1"), Type: "e"},
		{ID: "dog", Predicate: sem.Surface("_dog_n_1"), Type: "x"},
	}
	scopes := map[sem.ScopeID][]sem.NodeID{
		1: {"q"},
		2: {"big", "dog"},
	}
	edges := []sem.Edge{
		{Start: "q", Role: sem.RestrictionRole, Mode: sem.VariableArg, End: "dog"},
		{Start: "big", Role: "ARG1", Mode: sem.VariableArg, End: "dog"},
	}
	g := mustGraph(t, 1, nodes, scopes, edges)

	reps, err := Representatives(g)
	if err != nil {
		t.Fatalf("Representatives: %v", err)
	}
	if !reflect.DeepEqual(reps[2], []sem.NodeID{"dog"}) {
		t.Errorf("reps[2] = %v; want [dog]", reps[2])
	}
}

func TestRepresentatives_NestedClosure(t *testing.T) {
	// The adverb sits one scope above the verb it modifies; the scopal
	// edge pulls the verb's scope into the closure, so the adverb still
	// cannot represent its own scope.
	nodes := []sem.Node{
		{ID: "neg", Predicate: sem.Surface("_not_x_deg")},
		{ID: "alm", Predicate: sem.Surface("_almost_a_1"), Type: "e"},
		{ID: "bark", Predicate: sem.Surface("_bark_v_1"), Type: "e"},
	}
	scopes := map[sem.ScopeID][]sem.NodeID{
		1: {"neg", "alm"},
		2: {"bark"},
	}
	edges := []sem.Edge{
		{Start: "neg", Role: "ARG1", Mode: sem.LabelArg, Scope: 2},
		{Start: "alm", Role: "ARG1", Mode: sem.VariableArg, End: "bark"},
	}
	g := mustGraph(t, 1, nodes, scopes, edges)

	reps, err := Representatives(g)
	if err != nil {
		t.Fatalf("Representatives: %v", err)
	}
	if !reflect.DeepEqual(reps[1], []sem.NodeID{"neg"}) {
		t.Errorf("reps[1] = %v; want [neg]", reps[1])
	}
	if !reflect.DeepEqual(reps[2], []sem.NodeID{"bark"}) {
		t.Errorf("reps[2] = %v; want [bark]", reps[2])
	}
}

func TestRepresentatives_Deterministic(t *testing.T) {
	g := everyDogBarksLoudly(t)
	r1, err := Representatives(g)
	if err != nil {
		t.Fatal(err)
	}
	r2, err := Representatives(g)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(r1, r2) {
		t.Error("repeated calls disagree")
	}
}

func TestRepresentatives_CyclicNesting(t *testing.T) {
	nodes := []sem.Node{
		{ID: "a", Predicate: sem.Surface("_a_v_1")},
		{ID: "b", Predicate: sem.Surface("_b_v_1")},
	}
	scopes := map[sem.ScopeID][]sem.NodeID{1: {"a"}, 2: {"b"}}
	edges := []sem.Edge{
		{Start: "a", Role: "ARG1", Mode: sem.LabelArg, Scope: 2},
		{Start: "b", Role: "ARG1", Mode: sem.LabelArg, Scope: 1},
	}
	g := mustGraph(t, 1, nodes, scopes, edges)

	if _, err := Representatives(g); !errors.Is(err, sem.ErrMalformedScope) {
		t.Errorf("err = %v; want ErrMalformedScope", err)
	}
}

func TestRepresentatives_SelfNesting(t *testing.T) {
	nodes := []sem.Node{{ID: "a", Predicate: sem.Surface("_a_v_1")}}
	scopes := map[sem.ScopeID][]sem.NodeID{1: {"a"}}
	edges := []sem.Edge{
		{Start: "a", Role: "ARG1", Mode: sem.LabelArg, Scope: 1},
	}
	g := mustGraph(t, 1, nodes, scopes, edges)

	if _, err := Representatives(g); !errors.Is(err, sem.ErrMalformedScope) {
		t.Errorf("err = %v; want ErrMalformedScope", err)
	}
}

func TestRepresentatives_NoCandidate(t *testing.T) {
	// A node whose only argument points back at itself leaves its scope
	// without a head.
	nodes := []sem.Node{{ID: "a", Predicate: sem.Surface("_a_v_1")}}
	scopes := map[sem.ScopeID][]sem.NodeID{1: {"a"}}
	edges := []sem.Edge{
		{Start: "a", Role: "ARG1", Mode: sem.VariableArg, End: "a"},
	}
	g := mustGraph(t, 1, nodes, scopes, edges)

	if _, err := Representatives(g); !errors.Is(err, sem.ErrMalformedScope) {
		t.Errorf("err = %v; want ErrMalformedScope", err)
	}
}

func TestRepresentative(t *testing.T) {
	g := everyDogBarksLoudly(t)

	rep, err := Representative(g, 3)
	if err != nil {
		t.Fatalf("Representative: %v", err)
	}
	if rep != "bark" {
		t.Errorf("rep = %s; want bark", rep)
	}
}

func TestRepresentative_AbsentScope(t *testing.T) {
	g := everyDogBarksLoudly(t)

	if _, err := Representative(g, 99); !errors.Is(err, sem.ErrMalformedScope) {
		t.Errorf("err = %v; want ErrMalformedScope", err)
	}
}
