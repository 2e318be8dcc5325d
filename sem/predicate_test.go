package sem

import "testing"

func TestSplitPredicate(t *testing.T) {
	tests := []struct {
		in                string
		lemma, pos, sense string
	}{
		{"_dog_n_1_rel", "dog", "n", "1"},
		{"_dog_n_1", "dog", "n", "1"},
		{`"_dog_n_1_rel"`, "dog", "n", "1"},
		{"_bark_v_rel", "bark", "v", ""},
		{"udef_q_rel", "udef", "q", ""},
		{"pron_rel", "pron", "", ""},
		{"mofy", "mofy", "", ""},
		{"_green+tea_n_1", "green+tea", "n", "1"},
	}
	for _, tt := range tests {
		lemma, pos, sense := SplitPredicate(tt.in)
		if lemma != tt.lemma || pos != tt.pos || sense != tt.sense {
			t.Errorf("SplitPredicate(%q) = (%q, %q, %q); want (%q, %q, %q)",
				tt.in, lemma, pos, sense, tt.lemma, tt.pos, tt.sense)
		}
	}
}

func TestSurfaceOrAbstract(t *testing.T) {
	if p := SurfaceOrAbstract("_dog_n_1"); p.Kind != SurfacePred {
		t.Errorf("_dog_n_1 classified %v; want surface", p.Kind)
	}
	if p := SurfaceOrAbstract(`"_dog_n_1_rel"`); p.Kind != SurfacePred {
		t.Errorf("quoted surface classified %v; want surface", p.Kind)
	}
	if p := SurfaceOrAbstract("udef_q"); p.Kind != AbstractPred {
		t.Errorf("udef_q classified %v; want abstract", p.Kind)
	}
}

func TestNewRealPred(t *testing.T) {
	p := NewRealPred("dog", "n", "1")
	if p.Kind != RealPred {
		t.Errorf("Kind = %v; want RealPred", p.Kind)
	}
	if p.Raw != "_dog_n_1_rel" {
		t.Errorf("Raw = %q; want _dog_n_1_rel", p.Raw)
	}
	if p.Short() != "_dog_n_1" {
		t.Errorf("Short() = %q; want _dog_n_1", p.Short())
	}

	if got := NewRealPred("bark", "v", "").Raw; got != "_bark_v_rel" {
		t.Errorf("Raw = %q; want _bark_v_rel", got)
	}
}

func TestPredicateShort(t *testing.T) {
	tests := []struct {
		p    Predicate
		want string
	}{
		{Surface("_Dog_N_1_rel"), "_dog_n_1"},
		{Surface(`"_bark_v_1_rel"`), "_bark_v_1"},
		{Abstract("udef_q_rel"), "udef_q"},
		{Abstract("pron"), "pron"},
	}
	for _, tt := range tests {
		if got := tt.p.Short(); got != tt.want {
			t.Errorf("Short(%q) = %q; want %q", tt.p.Raw, got, tt.want)
		}
	}
}

func TestPredicateEqual(t *testing.T) {
	a := Surface(`"_dog_n_1_rel"`)
	b := Surface("_DOG_n_1")
	if !a.Equal(b) {
		t.Errorf("%q and %q should compare equal", a.Raw, b.Raw)
	}
	if a.Equal(Surface("_cat_n_1")) {
		t.Error("distinct lemmas compared equal")
	}
	if a.String() != `"_dog_n_1_rel"` {
		t.Errorf("String() = %q; want the raw form", a.String())
	}
}

func TestPredicateIsZero(t *testing.T) {
	if !(Predicate{}).IsZero() {
		t.Error("zero predicate not reported zero")
	}
	if Surface("_dog_n_1").IsZero() {
		t.Error("surface predicate reported zero")
	}
}
