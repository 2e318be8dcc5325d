package sem

import "errors"

// Sentinel errors shared across the semantic-graph views.
var (
	// ErrMalformedScope indicates a scope partition that is not total and
	// disjoint, a scopal edge naming a scope absent from the partition, an
	// empty scope, or a scope nested inside itself.
	ErrMalformedScope = errors.New("sem: malformed scope")

	// ErrInvalidArgumentMode indicates an edge mode that is not valid for
	// the requested projection direction.
	ErrInvalidArgumentMode = errors.New("sem: invalid argument mode")

	// ErrConversionNotSupported indicates an attempted reverse conversion
	// from a strictly lossy projection.
	ErrConversionNotSupported = errors.New("sem: conversion not supported")

	// ErrDanglingEdge indicates an edge endpoint naming an absent node.
	ErrDanglingEdge = errors.New("sem: edge endpoint not found")

	// ErrDuplicateNode indicates two nodes sharing one id.
	ErrDuplicateNode = errors.New("sem: duplicate node id")
)

// NodeID identifies a predication node within one graph. Depending on the
// source format it may render as a small integer or an arbitrary symbol;
// it is treated as opaque here.
type NodeID string

// ScopeID identifies one scope (label equivalence class) in a scope
// partition. Scope ids are numbered from 1 in encounter order over the
// node list; 0 means "no scope designated".
type ScopeID int

// Role names with structural meaning across the formalisms.
const (
	// IntrinsicRole is the argument holding a predication's own
	// identifying variable.
	IntrinsicRole = "ARG0"
	// RestrictionRole is the quantifier-restriction argument.
	RestrictionRole = "RSTR"
	// BodyRole is the quantifier-body argument.
	BodyRole = "BODY"
	// ConstantRole is the constant (string) argument.
	ConstantRole = "CARG"
	// BoundVariableRole is the bare-dependency rendering of the
	// quantifier-restriction argument.
	BoundVariableRole = "BV"
	// BareEqRole marks a structural scope-equality-only link carrying no
	// semantic dependency of its own.
	BareEqRole = "MOD"
)

// Mode classifies how an argument's raw value was resolved.
type Mode uint8

const (
	// Unspecified is used by views that do not record a resolution, such
	// as bare-dependency edges.
	Unspecified Mode = iota
	// VariableArg denotes another predication directly via its intrinsic
	// variable.
	VariableArg
	// LabelArg denotes a scope via label equality; Edge.Scope is set.
	LabelArg
	// QeqArg denotes a scope reached through an equality-modulo-quantifiers
	// hole; Edge.Scope is set.
	QeqArg
	// IntrinsicArg records the node's own identifying variable in
	// Edge.Variable; it is not a semantic dependency.
	IntrinsicArg
	// UnexpressedArg denotes a synthesized placeholder node standing in
	// for a variable with no predication of its own.
	UnexpressedArg
)

// String returns the conventional short name of the mode.
func (m Mode) String() string {
	switch m {
	case VariableArg:
		return "var"
	case LabelArg:
		return "lbl"
	case QeqArg:
		return "qeq"
	case IntrinsicArg:
		return "intrinsic"
	case UnexpressedArg:
		return "unexpressed"
	default:
		return "unspec"
	}
}

// Node is a predication in any view. Synthetic placeholders for
// unexpressed referents have a zero Predicate.
type Node struct {
	ID         NodeID
	Predicate  Predicate
	Type       string // coarse semantic sort ("e", "x", ...); "" if unknown
	Properties map[string]string
	Carg       string // constant argument; "" if absent
	Lnk        Lnk
	Surface    string
	Base       string
}

// Unexpressed returns a placeholder node carrying only a type and
// properties, standing in for a variable with no predication.
func Unexpressed(id NodeID, typ string, properties map[string]string) Node {
	return Node{ID: id, Type: typ, Properties: properties}
}

// IsUnexpressed reports whether the node is a synthetic placeholder.
func (n Node) IsUnexpressed() bool { return n.Predicate.IsZero() }

// Edge is a generalized argument relation. The populated target field
// depends on Mode: End for VariableArg, UnexpressedArg and Unspecified;
// Scope for LabelArg and QeqArg; Variable for IntrinsicArg.
type Edge struct {
	Start    NodeID
	Role     string
	Mode     Mode
	End      NodeID  // target node, for node-valued modes
	Scope    ScopeID // target scope, for LabelArg and QeqArg
	Variable string  // the intrinsic variable, for IntrinsicArg
}

// ICons is a relation between two individuals, independent of scope. Left
// and Right are node ids when the individuals are expressed, otherwise the
// original variable strings.
type ICons struct {
	Left     NodeID
	Relation string
	Right    NodeID
}

// Kind identifies one of the three semantic-graph views.
type Kind uint8

const (
	// KindScoped is the canonical scope-carrying view.
	KindScoped Kind = iota + 1
	// KindDependency is the variable-free node/link view.
	KindDependency
	// KindBare is the scope-collapsed bare-dependency view.
	KindBare
)

// String names the kind for error messages.
func (k Kind) String() string {
	switch k {
	case KindScoped:
		return "scoped"
	case KindDependency:
		return "dependency"
	case KindBare:
		return "bare-dependency"
	default:
		return "unknown"
	}
}

// Graph is the closed sum over the three semantic-graph views. Conversion
// entry points switch on GraphKind instead of probing structure.
type Graph interface {
	GraphKind() Kind
}
