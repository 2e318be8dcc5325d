package sem

import (
	"regexp"
	"strings"
)

// PredicateKind distinguishes how a predicate symbol was written.
type PredicateKind uint8

const (
	// AbstractPred is a grammar-internal symbol, e.g. udef_q_rel.
	AbstractPred PredicateKind = iota
	// RealPred was built from explicit lemma/pos/sense components.
	RealPred
	// SurfacePred is the quoted string form of a lexical predicate,
	// beginning with an underscore, e.g. "_dog_n_1_rel".
	SurfacePred
)

// predRe decomposes a predicate string into lemma, part of speech, sense
// and the trailing "rel" marker. The lemma match is lazy so the pos and
// sense claim the final underscore-delimited parts.
var predRe = regexp.MustCompile(
	`(?i)_?(.*?)_(?:([a-z])_)?(?:((?:[^_\\]|\\.)+)_)?(rel)$`)

// Predicate is a semantic predicate. Abstract predicates are grammar
// types; surface predicates are lexicon strings carried in quotes.
// Comparison uses the normalized short form, so quoting, capitalization
// and a trailing _rel do not affect equality.
type Predicate struct {
	Kind  PredicateKind
	Lemma string
	Pos   string
	Sense string
	// Raw is the predicate string as originally written, without
	// normalization.
	Raw string
}

// Surface builds a Predicate from its quoted string representation.
func Surface(predstr string) Predicate {
	lemma, pos, sense := SplitPredicate(predstr)
	return Predicate{Kind: SurfacePred, Lemma: lemma, Pos: pos, Sense: sense, Raw: predstr}
}

// Abstract builds a Predicate from a grammar symbol string.
func Abstract(predstr string) Predicate {
	lemma, pos, sense := SplitPredicate(predstr)
	return Predicate{Kind: AbstractPred, Lemma: lemma, Pos: pos, Sense: sense, Raw: predstr}
}

// SurfaceOrAbstract builds a surface Predicate when the (unquoted) string
// begins with an underscore, and an abstract Predicate otherwise.
func SurfaceOrAbstract(predstr string) Predicate {
	if strings.HasPrefix(strings.TrimLeft(predstr, `"'`), "_") {
		return Surface(predstr)
	}
	return Abstract(predstr)
}

// NewRealPred builds a Predicate from explicit components. Pos and sense
// may be empty.
func NewRealPred(lemma, pos, sense string) Predicate {
	parts := []string{"", lemma}
	if pos != "" {
		parts = append(parts, pos)
	}
	if sense != "" {
		parts = append(parts, sense)
	}
	parts = append(parts, "rel")
	return Predicate{
		Kind:  RealPred,
		Lemma: lemma,
		Pos:   pos,
		Sense: sense,
		Raw:   strings.Join(parts, "_"),
	}
}

// SplitPredicate decomposes a predicate string into lemma, pos and sense.
// Surrounding quotes and a missing _rel suffix are tolerated; a string the
// grammar cannot decompose yields the whole string as the lemma.
func SplitPredicate(predstr string) (lemma, pos, sense string) {
	s := strings.Trim(predstr, `"'`)
	if !strings.HasSuffix(strings.ToLower(s), "_rel") {
		s += "_rel"
	}
	m := predRe.FindStringSubmatch(s)
	if m == nil {
		return s, "", ""
	}
	return m[1], m[2], m[3]
}

// Short returns the normalized form of the predicate: quotes and the _rel
// suffix removed, lowercased, with a leading underscore preserved for
// surface predicates.
func (p Predicate) Short() string {
	parts := make([]string, 0, 3)
	for _, t := range []string{p.Lemma, p.Pos, p.Sense} {
		if t != "" {
			parts = append(parts, t)
		}
	}
	s := strings.Join(parts, "_")
	if strings.HasPrefix(strings.TrimLeft(p.Raw, `"'`), "_") {
		s = "_" + s
	}
	return strings.ToLower(s)
}

// String returns the predicate string as originally written.
func (p Predicate) String() string { return p.Raw }

// IsZero reports whether the predicate is unset, as on synthetic
// placeholder nodes for unexpressed referents.
func (p Predicate) IsZero() bool { return p.Raw == "" }

// Equal compares two predicates by their normalized short forms.
func (p Predicate) Equal(o Predicate) bool { return p.Short() == o.Short() }
