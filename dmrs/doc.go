// Package dmrs models dependency semantic graphs and converts them to and
// from the canonical scoped form.
//
// What:
//
//   - Node, Link, DMRS: the dependency representation, with integer node
//     ids starting at FirstNodeID and scope information carried on the
//     link posts (EQ, NEQ, HEQ, H) instead of explicit handles.
//   - FromScoped: project a scoped graph onto links, choosing a post per
//     argument and emitting MOD/EQ links so the scope partition survives.
//   - ToScoped: rebuild the scope partition from EQ-post links and restore
//     scopal arguments from HEQ and H posts.
//
// Errors:
//
//   - sem.ErrInvalidArgumentMode: the scoped graph carries an unexpressed
//     argument, which this representation cannot express.
//   - sem.ErrDanglingEdge: a link endpoint names no node.
package dmrs
