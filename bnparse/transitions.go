// Package bnparse loads Boolean networks for the CLIs: either a minimal
// textual per-variable update-expression format, or directly from an
// explicit list of asynchronous state transitions.
//
// FromTransitions mirrors original_source's test_utils/llm_transition_builder.rs:
// an asynchronous transition s -> s' must flip exactly one variable's bit,
// and every variable whose bit a transition never flips at a given state
// keeps its current value there (the network has no successor through
// that variable at that state).
package bnparse

import (
	"errors"
	"fmt"
	"math/bits"

	"github.com/katalvlaran/boolscc/symbolic/naive"
)

// ErrInvalidState indicates a transition endpoint is out of range for the
// declared variable count.
var ErrInvalidState = errors.New("bnparse: state out of range")

// ErrNoVariableChanged indicates a transition is a self-loop (from == to),
// which asynchronous semantics forbids: a real transition always flips
// exactly one variable.
var ErrNoVariableChanged = errors.New("bnparse: transition changes no variable")

// ErrMultipleVariablesChanged indicates a transition flips more than one
// bit, which asynchronous semantics forbids.
var ErrMultipleVariablesChanged = errors.New("bnparse: transition changes multiple variables")

// ErrInconsistentUpdate indicates two transitions disagree on the update
// function of the same variable at the same source state.
var ErrInconsistentUpdate = errors.New("bnparse: inconsistent update function")

// FromTransitions builds a naive.Graph from an explicit asynchronous
// transition list: each (from, to) pair must differ in exactly one bit.
// A variable with no listed transition at a given state is assumed to
// hold its current value there (no successor through that variable).
func FromTransitions(numVars int, transitions [][2]uint64) (*naive.Graph, error) {
	if numVars <= 0 || numVars > naive.MaxVariables {
		return nil, fmt.Errorf("bnparse: variable count %d out of range", numVars)
	}
	limit := uint64(1) << uint(numVars)
	tables := make([]map[uint64]bool, numVars)
	for i := range tables {
		tables[i] = make(map[uint64]bool)
	}

	for _, t := range transitions {
		from, to := t[0], t[1]
		if from >= limit || to >= limit {
			return nil, fmt.Errorf("%w: %d -> %d for %d variables", ErrInvalidState, from, to, numVars)
		}
		diff := from ^ to
		if diff == 0 {
			return nil, fmt.Errorf("%w: state %d", ErrNoVariableChanged, from)
		}
		if diff&(diff-1) != 0 {
			return nil, fmt.Errorf("%w: %d -> %d", ErrMultipleVariablesChanged, from, to)
		}
		v := bits.TrailingZeros64(diff)
		next := (to>>uint(v))&1 == 1
		if existing, ok := tables[v][from]; ok && existing != next {
			return nil, fmt.Errorf("%w: variable %d at state %d", ErrInconsistentUpdate, v, from)
		}
		tables[v][from] = next
	}

	updates := make([]naive.UpdateFunc, numVars)
	for v := 0; v < numVars; v++ {
		table := tables[v]
		vv := v
		updates[v] = func(state, _ uint64) bool {
			if next, ok := table[state]; ok {
				return next
			}
			return naive.StateBit(state, vv)
		}
	}
	return naive.NewGraph(updates, 0), nil
}

// ReferenceNetwork builds the 3-variable asynchronous network this module
// uses throughout its tests. States are written as binary numbers whose
// bit i is x_i (so the leftmost digit is x2): `000->∅`, `001->{000}`, `010->{000}`,
// `011->{001,010,111}`, `100->{000,110}`, `101->{111}`, `110->{111}`,
// `111->{110}`.
func ReferenceNetwork() *naive.Graph {
	g, err := FromTransitions(3, [][2]uint64{
		{0b001, 0b000},
		{0b010, 0b000},
		{0b011, 0b001},
		{0b011, 0b010},
		{0b011, 0b111},
		{0b100, 0b000},
		{0b100, 0b110},
		{0b101, 0b111},
		{0b110, 0b111},
		{0b111, 0b110},
	})
	if err != nil {
		panic("bnparse: reference network is malformed: " + err.Error())
	}
	return g
}
