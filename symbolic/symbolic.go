// Package symbolic declares the contracts the rest of this module builds
// on: a symbolic set of coloured vertices (SCV), the async transition
// graph that operates on it, and the value-typed configuration records
// that every algorithmic component accepts.
//
// Nothing in this package performs BDD-level work itself — it is the
// boundary the real symbolic library (a black box per the design notes)
// is expected to satisfy. symbolic/naive ships one concrete, bitset-backed
// implementation used by tests and the bundled reference network.
//
// Errors:
//
//	ErrVariableOutOfRange - a VariableId exceeds the graph's variable count.
//	ErrForeignSCV          - an SCV was produced by a different graph/backend.
package symbolic

import (
	"errors"
	"math/big"
)

// ErrVariableOutOfRange indicates a VariableId used with a Graph that
// does not declare it.
var ErrVariableOutOfRange = errors.New("symbolic: variable id out of range")

// ErrForeignSCV indicates an SCV value was not produced by the Graph it
// is being used with.
var ErrForeignSCV = errors.New("symbolic: scv belongs to a different graph")

// VariableId is a dense, totally ordered index into a Graph's variables.
type VariableId int

// SCV is a symbolic, value-typed set of (state, colour) pairs. Every
// method returns a new value; there is no in-place mutation. Cloning is
// assumed cheap (the real backend is reference-counted internally).
type SCV interface {
	// IsEmpty reports whether the set has no members.
	IsEmpty() bool
	// Equal reports structural/semantic equality, not identity.
	Equal(other SCV) bool
	// Union returns the set union.
	Union(other SCV) SCV
	// Intersect returns the set intersection.
	Intersect(other SCV) SCV
	// Minus returns the set difference (receiver minus other).
	Minus(other SCV) SCV
	// IsSubsetOf reports whether every member of the receiver is in other.
	IsSubsetOf(other SCV) bool
	// Cardinality returns the exact number of (state, colour) pairs.
	Cardinality() *big.Int
	// SymbolicSize returns a backend-defined measure of representation
	// size (BDD node count for a real backend).
	SymbolicSize() int
	// PickVertex returns a singleton subset of the receiver, or an empty
	// SCV if the receiver is empty.
	PickVertex() SCV
	// Colors projects the receiver onto its colour dimension, discarding
	// state information (a colour is present iff some state carries it).
	Colors() SCV
	// IntersectColors restricts the receiver to members whose colour is
	// in colors (colors is itself an SCV produced by Colors).
	IntersectColors(colors SCV) SCV
	// MinusColors removes every member whose colour is in colors.
	MinusColors(colors SCV) SCV
}

// Graph is a symbolic asynchronous transition relation over a fixed,
// totally ordered set of VariableIds.
type Graph interface {
	// VariableCount returns the number of variables this graph knows.
	VariableCount() int
	// Variables returns the graph's variables in ascending VariableId order.
	Variables() []VariableId

	// VarPost returns s's successors under v (full space).
	VarPost(v VariableId, s SCV) SCV
	// VarPre returns s's predecessors under v (full space).
	VarPre(v VariableId, s SCV) SCV
	// VarPostOut returns successors under v that are not already in s.
	VarPostOut(v VariableId, s SCV) SCV
	// VarPreOut returns predecessors under v that are not already in s.
	VarPreOut(v VariableId, s SCV) SCV
	// VarCanPostOut returns the subset of s with a v-successor outside s.
	VarCanPostOut(v VariableId, s SCV) SCV
	// VarCanPreOut returns the subset of s with a v-predecessor outside s.
	VarCanPreOut(v VariableId, s SCV) SCV
	// VarCanPostWithin returns the subset of s with a v-successor inside s.
	VarCanPostWithin(v VariableId, s SCV) SCV
	// VarCanPreWithin returns the subset of s with a v-predecessor inside s.
	VarCanPreWithin(v VariableId, s SCV) SCV

	// Post returns the global (all-variable) successor set of s.
	Post(s SCV) SCV
	// Pre returns the global (all-variable) predecessor set of s.
	Pre(s SCV) SCV

	// Restrict returns a new graph whose transitions are confined to s.
	// Callers must treat s as the full universe afterwards.
	Restrict(s SCV) Graph

	// MkEmptyColoredVertices returns the empty SCV for this graph.
	MkEmptyColoredVertices() SCV
	// MkUnitColoredVertices returns the full (state x colour) SCV.
	MkUnitColoredVertices() SCV
}
