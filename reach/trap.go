package reach

import (
	"context"

	"github.com/katalvlaran/boolscc/step"
	"github.com/katalvlaran/boolscc/symbolic"
)

// TrapMode selects which trap-set reduction to run. Note the polarity
// (§4.2): BackwardTrap (driven by HasSuccessorSaturation / CanPostOut)
// produces the greatest *forward-closed* subset; ForwardTrap (driven by
// HasPredecessorSaturation / CanPreOut) produces the greatest
// *backward-closed* subset. The names refer to which "can-escape" check
// drives the subtraction, not to the closure direction of the result.
type TrapMode int

const (
	// TrapBackward subtracts states that can escape forward
	// (var_can_post_out), converging on the greatest forward-closed
	// subset of the initial set.
	TrapBackward TrapMode = iota
	// TrapForward subtracts states that can escape backward
	// (var_can_pre_out), converging on the greatest backward-closed
	// subset of the initial set.
	TrapForward
)

// TrapConfig configures a trap-set computation.
type TrapConfig struct {
	Reach symbolic.ReachabilityConfig
	Mode  TrapMode
}

type trapStep struct{}

func (trapStep) Step(ctx context.Context, cfg TrapConfig, st *State) step.Completable[struct{}] {
	if c, cancelled := checkBudget(cfg.Reach, st); cancelled {
		return c
	}

	out := cfg.Reach.Graph.VarCanPostOut
	if cfg.Mode == TrapForward {
		out = cfg.Reach.Graph.VarCanPreOut
	}

	cand, reason, cancelled := saturationCandidate(ctx, cfg.Reach.Graph, cfg.Reach.ActiveVariables, st.Current, out)
	if cancelled {
		return step.Cancelled[struct{}](reason)
	}
	if cand.IsEmpty() {
		return step.Ready(struct{}{})
	}
	st.Current = st.Current.Minus(cand)

	if c, cancelled := checkSizeBudget(cfg.Reach, st); cancelled {
		return c
	}
	return step.Working[struct{}]()
}

func (trapStep) Output(_ context.Context, _ TrapConfig, st State) symbolic.SCV {
	return st.Current
}

// NewBackwardTrap builds the backward-trap computation: the greatest
// forward-closed subset of initial.
func NewBackwardTrap(cfg symbolic.ReachabilityConfig, initial symbolic.SCV) *step.Computation[TrapConfig, State, symbolic.SCV] {
	return step.NewComputation[TrapConfig, State, symbolic.SCV](
		trapStep{}, TrapConfig{Reach: cfg, Mode: TrapBackward}, State{Current: initial},
	)
}

// NewForwardTrap builds the forward-trap computation: the greatest
// backward-closed subset of initial.
func NewForwardTrap(cfg symbolic.ReachabilityConfig, initial symbolic.SCV) *step.Computation[TrapConfig, State, symbolic.SCV] {
	return step.NewComputation[TrapConfig, State, symbolic.SCV](
		trapStep{}, TrapConfig{Reach: cfg, Mode: TrapForward}, State{Current: initial},
	)
}

// RestoreTrap reconstructs a trap Computation from Snapshot bytes.
func RestoreTrap(cfg TrapConfig, data []byte) (*step.Computation[TrapConfig, State, symbolic.SCV], error) {
	return step.RestoreComputation[TrapConfig, State, symbolic.SCV](trapStep{}, cfg, data)
}
