package mrs_test

import (
	"errors"
	"testing"

	"github.com/semkit/semkit/mrs"
	"github.com/semkit/semkit/sem"
)

// everyDogBarks builds the textbook quantified sentence: three
// predications, two handle constraints, a shared bound variable.
func everyDogBarks() *mrs.MRS {
	return &mrs.MRS{
		Top:   "h0",
		Index: "e2",
		Rels: []mrs.EP{
			{
				Predicate: sem.SurfaceOrAbstract("_every_q"),
				Label:     "h4",
				Args: map[string]string{
					"ARG0": "x3",
					"RSTR": "h5",
					"BODY": "h6",
				},
			},
			{
				Predicate: sem.SurfaceOrAbstract("_dog_n_1"),
				Label:     "h7",
				Args:      map[string]string{"ARG0": "x3"},
			},
			{
				Predicate: sem.SurfaceOrAbstract("_bark_v_1"),
				Label:     "h1",
				Args:      map[string]string{"ARG0": "e2", "ARG1": "x3"},
			},
		},
		HCons: []mrs.HCons{
			mrs.Qeq("h0", "h1"),
			mrs.Qeq("h5", "h7"),
		},
		Variables: map[string]map[string]string{
			"e2": {"TENSE": "pres"},
			"x3": {"NUM": "sg"},
		},
	}
}

func TestToScoped_EveryDogBarks(t *testing.T) {
	g, err := mrs.ToScoped(everyDogBarks())
	if err != nil {
		t.Fatalf("ToScoped: %v", err)
	}

	if len(g.Nodes) != 3 {
		t.Fatalf("got %d nodes; want 3", len(g.Nodes))
	}
	if len(g.Scopes) != 3 {
		t.Fatalf("got %d scopes; want 3", len(g.Scopes))
	}
	// h1 is the third label encountered, so top resolves through the
	// qeq to scope 3.
	if g.Top != 3 {
		t.Errorf("Top = %d; want 3", g.Top)
	}
	if g.Index != "10002" {
		t.Errorf("Index = %s; want 10002 (the verb)", g.Index)
	}
	if !g.IsQuantifier("10000") {
		t.Errorf("node 10000 should be a quantifier")
	}

	// Quantifier ARG0 and BODY are structural, not dependencies.
	q := g.Outgoing("10000")
	if len(q) != 1 {
		t.Fatalf("quantifier edges = %v; want only RSTR", q)
	}
	if q[0].Role != sem.RestrictionRole || q[0].Mode != sem.QeqArg || q[0].Scope != 2 {
		t.Errorf("RSTR edge = %+v; want qeq to scope 2", q[0])
	}

	verb := g.Outgoing("10002")
	if len(verb) != 2 {
		t.Fatalf("verb edges = %v; want ARG0 and ARG1", verb)
	}
	if verb[0].Mode != sem.IntrinsicArg || verb[0].Variable != "e2" {
		t.Errorf("verb ARG0 = %+v; want intrinsic e2", verb[0])
	}
	if verb[1].Role != "ARG1" || verb[1].Mode != sem.VariableArg || verb[1].End != "10001" {
		t.Errorf("verb ARG1 = %+v; want variable edge to the noun", verb[1])
	}

	dog, _ := g.Node("10001")
	if dog.Type != "x" || dog.Properties["NUM"] != "sg" {
		t.Errorf("noun node = %+v; want type x with NUM=sg", dog)
	}
}

func TestToScoped_Unexpressed(t *testing.T) {
	m := &mrs.MRS{
		Top:   "h0",
		Index: "e2",
		Rels: []mrs.EP{
			{
				Predicate: sem.SurfaceOrAbstract("_eat_v_1"),
				Label:     "h1",
				Args:      map[string]string{"ARG0": "e2", "ARG1": "x4", "ARG2": "i5"},
			},
			{
				Predicate: sem.SurfaceOrAbstract("pron"),
				Label:     "h3",
				Args:      map[string]string{"ARG0": "x4"},
			},
		},
		HCons: []mrs.HCons{mrs.Qeq("h0", "h1")},
	}
	g, err := mrs.ToScoped(m)
	if err != nil {
		t.Fatalf("ToScoped: %v", err)
	}
	if len(g.Nodes) != 3 {
		t.Fatalf("got %d nodes; want 2 predications + 1 placeholder", len(g.Nodes))
	}
	ph, ok := g.Node("10002")
	if !ok || !ph.IsUnexpressed() || ph.Type != "i" {
		t.Fatalf("placeholder = %+v, %v; want unexpressed node of type i", ph, ok)
	}
	if sid, ok := g.ScopeOf("10002"); !ok || len(g.Scopes[sid]) != 1 {
		t.Errorf("placeholder should occupy a singleton scope, got %d", sid)
	}
	var arg2 *sem.Edge
	for _, e := range g.Outgoing("10000") {
		if e.Role == "ARG2" {
			e := e
			arg2 = &e
		}
	}
	if arg2 == nil || arg2.Mode != sem.UnexpressedArg || arg2.End != "10002" {
		t.Errorf("ARG2 = %+v; want unexpressed edge to the placeholder", arg2)
	}
}

func TestToScoped_SharedUnexpressed(t *testing.T) {
	m := &mrs.MRS{
		Rels: []mrs.EP{
			{
				Predicate: sem.SurfaceOrAbstract("_a_v_1"),
				Label:     "h1",
				Args:      map[string]string{"ARG0": "e2", "ARG1": "i9"},
			},
			{
				Predicate: sem.SurfaceOrAbstract("_b_v_1"),
				Label:     "h3",
				Args:      map[string]string{"ARG0": "e4", "ARG1": "i9"},
			},
		},
	}
	g, err := mrs.ToScoped(m)
	if err != nil {
		t.Fatalf("ToScoped: %v", err)
	}
	if len(g.Nodes) != 3 {
		t.Fatalf("got %d nodes; want one shared placeholder", len(g.Nodes))
	}
}

func TestToScoped_Errors(t *testing.T) {
	bad := &mrs.MRS{
		Rels: []mrs.EP{{
			Predicate: sem.SurfaceOrAbstract("_a_v_1"),
			Label:     "h1",
			Args:      map[string]string{"ARG0": "e2", "ARG1": "q"},
		}},
	}
	if _, err := mrs.ToScoped(bad); !errors.Is(err, mrs.ErrUnresolvableArgument) {
		t.Errorf("unparseable argument: want ErrUnresolvableArgument, got %v", err)
	}

	dangling := &mrs.MRS{
		Rels: []mrs.EP{{
			Predicate: sem.SurfaceOrAbstract("_every_q"),
			Label:     "h1",
			Args:      map[string]string{"ARG0": "x3", "RSTR": "h5"},
		}},
		HCons: []mrs.HCons{mrs.Qeq("h5", "h99")},
	}
	if _, err := mrs.ToScoped(dangling); !errors.Is(err, sem.ErrMalformedScope) {
		t.Errorf("qeq to a missing label: want ErrMalformedScope, got %v", err)
	}
}

func TestRoundTrip_EveryDogBarks(t *testing.T) {
	g, err := mrs.ToScoped(everyDogBarks())
	if err != nil {
		t.Fatalf("ToScoped: %v", err)
	}
	m, err := mrs.FromScoped(g)
	if err != nil {
		t.Fatalf("FromScoped: %v", err)
	}

	if len(m.Rels) != 3 {
		t.Fatalf("got %d rels; want 3", len(m.Rels))
	}
	q, dog, bark := m.Rels[0], m.Rels[1], m.Rels[2]

	// Recorded intrinsic variables survive the round trip.
	if dog.IntrinsicVariable() != "x3" {
		t.Errorf("noun ARG0 = %s; want x3", dog.IntrinsicVariable())
	}
	if bark.IntrinsicVariable() != "e2" {
		t.Errorf("verb ARG0 = %s; want e2", bark.IntrinsicVariable())
	}
	if bark.Args["ARG1"] != "x3" {
		t.Errorf("verb ARG1 = %s; want x3", bark.Args["ARG1"])
	}
	// The quantifier rebinds the restricted scope's variable.
	if q.IntrinsicVariable() != "x3" {
		t.Errorf("quantifier ARG0 = %s; want x3", q.IntrinsicVariable())
	}
	if q.Args[sem.BodyRole] == "" {
		t.Errorf("quantifier should carry a body hole")
	}

	// Top is a fresh handle qeq'd to the verb's label.
	if m.Top == "" {
		t.Fatalf("missing top")
	}
	var topLo, rstrLo string
	for _, hc := range m.HCons {
		switch hc.Hi {
		case m.Top:
			topLo = hc.Lo
		case q.Args[sem.RestrictionRole]:
			rstrLo = hc.Lo
		}
	}
	if topLo != bark.Label {
		t.Errorf("top qeq %s; want the verb label %s", topLo, bark.Label)
	}
	if rstrLo != dog.Label {
		t.Errorf("RSTR qeq %s; want the noun label %s", rstrLo, dog.Label)
	}

	if q.Label == dog.Label || dog.Label == bark.Label || q.Label == bark.Label {
		t.Errorf("labels should be pairwise distinct: %s %s %s", q.Label, dog.Label, bark.Label)
	}
	if m.Index != "e2" {
		t.Errorf("index = %s; want e2", m.Index)
	}
	if m.Variables["x3"]["NUM"] != "sg" {
		t.Errorf("variable properties lost: %v", m.Variables["x3"])
	}
}

func TestFromScoped_SharedScope(t *testing.T) {
	// Two predications in one scope: an intersective modifier.
	nodes := []sem.Node{
		{ID: "10000", Predicate: sem.SurfaceOrAbstract("_big_a_1"), Type: "e"},
		{ID: "10001", Predicate: sem.SurfaceOrAbstract("_dog_n_1"), Type: "x"},
	}
	scopes := map[sem.ScopeID][]sem.NodeID{1: {"10000", "10001"}}
	edges := []sem.Edge{
		{Start: "10000", Role: "ARG0", Mode: sem.IntrinsicArg, Variable: "e4"},
		{Start: "10000", Role: "ARG1", Mode: sem.VariableArg, End: "10001"},
		{Start: "10001", Role: "ARG0", Mode: sem.IntrinsicArg, Variable: "x3"},
	}
	g, err := sem.NewScopedGraph(1, "10001", nodes, scopes, edges)
	if err != nil {
		t.Fatalf("NewScopedGraph: %v", err)
	}
	m, err := mrs.FromScoped(g)
	if err != nil {
		t.Fatalf("FromScoped: %v", err)
	}
	if m.Rels[0].Label != m.Rels[1].Label {
		t.Errorf("scope-mates should share a label: %s vs %s",
			m.Rels[0].Label, m.Rels[1].Label)
	}
	if m.Rels[0].Args["ARG1"] != "x3" {
		t.Errorf("modifier ARG1 = %s; want x3", m.Rels[0].Args["ARG1"])
	}
}
