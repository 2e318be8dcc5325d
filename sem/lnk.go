package sem

import (
	"strconv"
	"strings"
)

// LnkKind distinguishes the four ways a Lnk relates semantics to surface
// form. Exactly one kind applies at a time; the zero value means no
// alignment is recorded.
type LnkKind uint8

const (
	// LnkNone marks an absent alignment.
	LnkNone LnkKind = iota
	// LnkCharSpan is a pair of character offsets, e.g. <0:5>.
	LnkCharSpan
	// LnkChartSpan is a pair of chart vertices, e.g. <0#5>.
	LnkChartSpan
	// LnkTokens is a list of token identifiers, e.g. <0 1 2>.
	LnkTokens
	// LnkEdge is a single edge identifier, e.g. <@1>.
	LnkEdge
)

// Lnk is surface-alignment information for a predication or a whole graph.
// The zero value is "no alignment".
type Lnk struct {
	Kind   LnkKind
	From   int   // first offset for CharSpan/ChartSpan
	To     int   // second offset for CharSpan/ChartSpan
	Tokens []int // token identifiers for LnkTokens
	Edge   int   // edge identifier for LnkEdge
}

// CharSpan returns a character-span alignment.
func CharSpan(from, to int) Lnk { return Lnk{Kind: LnkCharSpan, From: from, To: to} }

// ChartSpan returns a chart-vertex-span alignment.
func ChartSpan(from, to int) Lnk { return Lnk{Kind: LnkChartSpan, From: from, To: to} }

// TokenLnk returns a token-identifier alignment.
func TokenLnk(tokens ...int) Lnk { return Lnk{Kind: LnkTokens, Tokens: tokens} }

// EdgeLnk returns an edge-identifier alignment.
func EdgeLnk(edge int) Lnk { return Lnk{Kind: LnkEdge, Edge: edge} }

// IsZero reports whether no alignment is recorded.
func (l Lnk) IsZero() bool { return l.Kind == LnkNone }

// Cfrom returns the initial character position, or -1 when the Lnk is not a
// character span.
func (l Lnk) Cfrom() int {
	if l.Kind == LnkCharSpan {
		return l.From
	}
	return -1
}

// Cto returns the final character position, or -1 when the Lnk is not a
// character span.
func (l Lnk) Cto() int {
	if l.Kind == LnkCharSpan {
		return l.To
	}
	return -1
}

// String renders the conventional textual form of the alignment:
// <0:5>, <0#5>, <0 1 2> or <@1>. The zero Lnk renders as the empty string.
func (l Lnk) String() string {
	switch l.Kind {
	case LnkCharSpan:
		return "<" + strconv.Itoa(l.From) + ":" + strconv.Itoa(l.To) + ">"
	case LnkChartSpan:
		return "<" + strconv.Itoa(l.From) + "#" + strconv.Itoa(l.To) + ">"
	case LnkTokens:
		parts := make([]string, len(l.Tokens))
		for i, t := range l.Tokens {
			parts[i] = strconv.Itoa(t)
		}
		return "<" + strings.Join(parts, " ") + ">"
	case LnkEdge:
		return "<@" + strconv.Itoa(l.Edge) + ">"
	}
	return ""
}

// Equal reports whether two alignments are the same kind with the same data.
func (l Lnk) Equal(o Lnk) bool {
	if l.Kind != o.Kind {
		return false
	}
	switch l.Kind {
	case LnkTokens:
		if len(l.Tokens) != len(o.Tokens) {
			return false
		}
		for i := range l.Tokens {
			if l.Tokens[i] != o.Tokens[i] {
				return false
			}
		}
		return true
	case LnkEdge:
		return l.Edge == o.Edge
	default:
		return l.From == o.From && l.To == o.To
	}
}
