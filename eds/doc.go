// Package eds models bare dependency graphs, the fully reduced surface of
// the scoped form.
//
// What:
//
//   - Node, Edge, EDS: predications with string ids derived from intrinsic
//     variables and plain role-labelled edges, no scope information at all.
//   - FromScoped: one-way projection from the canonical scoped form.
//     Scopal arguments collapse onto scope representatives, the quantifier
//     restriction is renamed to BV, and optional predicate modification
//     reconnects scope-mates the reduction would otherwise orphan.
//   - ToScoped: always sem.ErrConversionNotSupported. The projection
//     discards scopes and cannot be inverted.
//
// Errors:
//
//   - sem.ErrInvalidArgumentMode: the scoped graph carries an unexpressed
//     argument.
//   - sem.ErrConversionNotSupported: ToScoped.
package eds
