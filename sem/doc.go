// Package sem defines the base types shared by every semantic-graph view —
// surface alignments (Lnk), predicates, predication nodes, mode-annotated
// argument edges — and the canonical ScopedGraph that the scoped,
// dependency, and bare-dependency formalisms all convert through.
//
// What:
//
//   - Lnk: surface alignment (character span, chart span, tokens, edge id).
//   - Predicate: abstract vs. surface semantic predicates with
//     lemma/pos/sense decomposition and normalized comparison.
//   - Node: a predication with type, properties, constant argument and
//     alignment; synthetic "unexpressed" placeholder nodes have no predicate.
//   - Edge: a directed argument relation annotated with a structural Mode
//     that records how the raw argument value was resolved (plain variable,
//     scope label, qeq'd scope, intrinsic variable, unexpressed referent).
//   - ScopedGraph: the canonical form. Nodes, a total scope partition,
//     classified edges, optional top scope / index node / external-argument
//     node, and individual constraints. Immutable after construction:
//     conversions read it and build new structures, never mutate.
//   - Graph: the closed sum over the three views; conversion entry points
//     switch on Graph.GraphKind rather than duck-typing their input.
//
// Errors:
//
//	ErrMalformedScope         - scope partition not total/disjoint, a scopal
//	                            edge names an absent scope, or a scope cycle.
//	ErrInvalidArgumentMode    - an edge mode invalid for a projection.
//	ErrConversionNotSupported - reverse conversion from a lossy projection.
//	ErrDanglingEdge           - an edge endpoint names an absent node.
//	ErrDuplicateNode          - two nodes share one id.
package sem
