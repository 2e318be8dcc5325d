package semkit_test

import (
	"errors"
	"testing"

	"github.com/semkit/semkit"
	"github.com/semkit/semkit/dmrs"
	"github.com/semkit/semkit/eds"
	"github.com/semkit/semkit/sem"
)

func rains(t *testing.T) *sem.ScopedGraph {
	t.Helper()
	nodes := []sem.Node{
		{ID: "v", Predicate: sem.SurfaceOrAbstract("_rain_v_1"), Type: "e"},
	}
	scopes := map[sem.ScopeID][]sem.NodeID{1: {"v"}}
	edges := []sem.Edge{
		{Start: "v", Role: sem.IntrinsicRole, Mode: sem.IntrinsicArg, Variable: "e2"},
	}
	g, err := sem.NewScopedGraph(1, "v", nodes, scopes, edges)
	if err != nil {
		t.Fatalf("NewScopedGraph: %v", err)
	}
	return g
}

func TestGraphKinds(t *testing.T) {
	var g sem.Graph = rains(t)
	if g.GraphKind() != sem.KindScoped {
		t.Errorf("scoped kind = %v", g.GraphKind())
	}
	g = &dmrs.DMRS{}
	if g.GraphKind() != sem.KindDependency {
		t.Errorf("dependency kind = %v", g.GraphKind())
	}
	g = &eds.EDS{}
	if g.GraphKind() != sem.KindBare {
		t.Errorf("bare kind = %v", g.GraphKind())
	}
}

func TestScoped(t *testing.T) {
	g := rains(t)

	// Already scoped: identity.
	s, err := semkit.Scoped(g)
	if err != nil {
		t.Fatalf("Scoped: %v", err)
	}
	if s != g {
		t.Error("scoped input must pass through unchanged")
	}

	// Dependency graphs rescope.
	d, err := semkit.Dependency(g)
	if err != nil {
		t.Fatalf("Dependency: %v", err)
	}
	back, err := semkit.Scoped(d)
	if err != nil {
		t.Fatalf("Scoped(dependency): %v", err)
	}
	if len(back.Nodes) != 1 || !back.Nodes[0].Predicate.Equal(g.Nodes[0].Predicate) {
		t.Errorf("rescoped nodes = %+v", back.Nodes)
	}

	// Bare graphs cannot be rescoped.
	if _, err := semkit.Scoped(&eds.EDS{}); !errors.Is(err, sem.ErrConversionNotSupported) {
		t.Errorf("Scoped(bare) err = %v; want ErrConversionNotSupported", err)
	}
}

func TestDependency(t *testing.T) {
	d, err := semkit.Dependency(rains(t))
	if err != nil {
		t.Fatalf("Dependency: %v", err)
	}
	if len(d.Nodes) != 1 || len(d.Links) != 0 {
		t.Errorf("graph = %+v", d)
	}

	same, err := semkit.Dependency(d)
	if err != nil || same != d {
		t.Errorf("dependency input must pass through unchanged: %v, %v", same, err)
	}

	if _, err := semkit.Dependency(&eds.EDS{}); !errors.Is(err, sem.ErrConversionNotSupported) {
		t.Errorf("Dependency(bare) err = %v; want ErrConversionNotSupported", err)
	}
}

func TestBare(t *testing.T) {
	e, err := semkit.Bare(rains(t))
	if err != nil {
		t.Fatalf("Bare: %v", err)
	}
	if e.Top != "e2" || len(e.Nodes) != 1 {
		t.Errorf("graph = %+v", e)
	}

	same, err := semkit.Bare(e)
	if err != nil || same != e {
		t.Errorf("bare input must pass through unchanged: %v, %v", same, err)
	}
}
