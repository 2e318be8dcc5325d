// Package scope computes scope partitions and scope representatives over
// canonical semantic graphs.
//
// What:
//
//   - Partition: undirected connected components over a node list using
//     only label-equality connections, numbering scopes from 1 in order of
//     first encounter. Isolated nodes form singleton scopes.
//   - Representatives: for each scope, the ranked candidate predications
//     that may stand for the whole scope when collapsing to a dependency
//     view. Candidates exclude scope-internal modifiers (nodes whose plain
//     arguments land inside the scope's nested closure); remaining nodes
//     rank quantifier participants first, abstract predicates last, with
//     original node order breaking ties. Selection is deterministic:
//     the same graph always yields the same representative.
//
// Nested-scope closures are computed iteratively; a scope reachable from
// itself through label or qeq edges is rejected with sem.ErrMalformedScope
// rather than recursed into.
package scope
