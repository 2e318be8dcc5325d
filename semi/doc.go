// Package semi loads semantic interfaces (SEM-Is): the inventory of
// variable sorts, morphosemantic properties, roles, and predicates that a
// grammar may produce.
//
// What:
//
//   - Load: read the sectioned .smi format, following include: lines
//     relative to the including file. Variable sorts, properties, and
//     predicates share one type hierarchy rooted at *top*; defining the
//     same type twice is an error.
//   - FindSynopsis: pick the predicate synopsis (ordered role, sort,
//     property, optionality records) matching a set of known role names or
//     argument sorts. Compact formats that omit role names recover them
//     from the chosen synopsis.
//   - Subsumes: hierarchy walk used for sort and property compatibility.
//   - EncodeYAML / DecodeYAML: a compiled form that round-trips a SemI
//     without re-reading the .smi sources.
//
// Errors:
//
// Syntax problems in .smi input wrap ErrDecode. A type declared in more
// than one place wraps ErrDuplicateType. Failed predicate or property
// lookups wrap ErrSemiLookup; lookups never fall back to a default.
package semi
