// Package variable implements the identifier model shared by the scoped
// semantic formalisms: variable strings such as "h0", "e2" or "ref-ind12"
// that pair a sort (the non-digit prefix) with a numeric id.
//
// What:
//
//   - Split / Sort / ID: parse a variable string into its components.
//   - Generator: allocate fresh variables of a requested sort with strictly
//     increasing numeric ids, never colliding with ids already in use.
//     Generators may be pre-seeded with externally chosen variables
//     (Reserve) and continue allocation afterwards without collision.
//
// A Generator is deliberately an explicit object, not package state: each
// conversion owns its own Generator, so conversions compose and may run in
// parallel without synchronization.
//
// Errors:
//
//	ErrInvalidIdentifier - the string lacks the required sort+digits shape.
package variable
