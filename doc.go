// Package semkit converts between the three graph-based semantic
// representations used in DELPH-IN style processing pipelines: the
// scope-carrying form (MRS), the dependency form (DMRS), and the bare
// elementary-dependency form (EDS).
//
// 🚀 What is semkit?
//
//	A pure-Go library for lossless (where the formalism allows it)
//	interconversion of semantic graphs:
//		• Scoped graphs: predications, labels, holes and qeq constraints
//		• Dependency graphs: numeric-id nodes with role/post links
//		• Bare-dependency graphs: fully scope-collapsed role edges
//		• Scope computation: connected components and representative ranking
//		• Text and wire codecs: SimpleMRS, Indexed MRS, SimpleDMRS, DMRX,
//		  native EDS, JSON
//		• SEM-I lexicon support for reconstructing omitted role names
//
// Under the hood, everything is organized into small focused packages:
//
//	variable/   — variable sort+id parsing and the monotonic generator
//	sem/        — shared base types and the canonical ScopedGraph
//	scope/      — scope partitions and representative selection
//	mrs/        — the scoped formalism and its edge classifier
//	dmrs/       — the dependency formalism (bidirectional)
//	eds/        — the bare-dependency projection (one-way, lossy)
//	codec/      — one subpackage per exchange format
//	semi/       — grammar lexicon (SEM-I) loading and lookup
//	cmd/semkit  — batch conversion command-line tool
//
// All conversions are synchronous pure functions over immutable inputs;
// run one conversion per goroutine with no extra locking.
//
//	go get github.com/semkit/semkit
package semkit
