// Package mrs implements the scope-carrying semantic formalism: elementary
// predications with labels, holes, handle constraints (qeq) and individual
// constraints, plus the bidirectional conversion between this form and the
// canonical sem.ScopedGraph.
//
// The conversion into the canonical form is where raw argument values are
// classified: each role/variable pair of an elementary predication resolves
// to a plain node argument, a scope label, a qeq'd scope, the predication's
// own intrinsic variable, or a synthesized placeholder for an unexpressed
// referent. A quantifier's intrinsic argument and the quantifier-body hole
// carry no semantic dependency and produce no edge.
//
// Errors:
//
//	ErrUnresolvableArgument - an argument value resolves to neither a node,
//	                          a scope, a qeq'd scope, nor a well-formed
//	                          unexpressed variable.
//	sem.ErrMalformedScope   - a handle constraint's low side is not a label.
package mrs
