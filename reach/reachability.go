package reach

import (
	"context"

	"github.com/katalvlaran/boolscc/step"
	"github.com/katalvlaran/boolscc/symbolic"
)

// Config configures a single reachability computation: which graph/caps
// to use (via symbolic.ReachabilityConfig), which direction, and which
// step operator.
type Config struct {
	Reach symbolic.ReachabilityConfig
	Mode  Mode
	Algo  Algo
}

type reachabilityStep struct{}

func (reachabilityStep) Step(ctx context.Context, cfg Config, st *State) step.Completable[struct{}] {
	if c, cancelled := checkBudget(cfg.Reach, st); cancelled {
		return c
	}

	out := cfg.Reach.Graph.VarPostOut
	if cfg.Mode == ModeBackward {
		out = cfg.Reach.Graph.VarPreOut
	}

	var cand symbolic.SCV
	var reason string
	var cancelled bool
	if cfg.Algo == AlgoSaturation {
		cand, reason, cancelled = saturationCandidate(ctx, cfg.Reach.Graph, cfg.Reach.ActiveVariables, st.Current, out)
	} else {
		cand, reason, cancelled = bfsCandidate(ctx, cfg.Reach.Graph, cfg.Reach.ActiveVariables, st.Current, out)
	}
	if cancelled {
		return step.Cancelled[struct{}](reason)
	}
	if cand.IsEmpty() {
		return step.Ready(struct{}{})
	}
	st.Current = st.Current.Union(cand)

	if c, cancelled := checkSizeBudget(cfg.Reach, st); cancelled {
		return c
	}
	return step.Working[struct{}]()
}

func (reachabilityStep) Output(_ context.Context, _ Config, st State) symbolic.SCV {
	return st.Current
}

func newReachability(cfg symbolic.ReachabilityConfig, mode Mode, algo Algo, initial symbolic.SCV) *step.Computation[Config, State, symbolic.SCV] {
	return step.NewComputation[Config, State, symbolic.SCV](
		reachabilityStep{},
		Config{Reach: cfg, Mode: mode, Algo: algo},
		State{Current: initial, Iteration: 0},
	)
}

// NewForwardSaturation builds a forward-reachability computation using
// the saturation step operator.
func NewForwardSaturation(cfg symbolic.ReachabilityConfig, initial symbolic.SCV) *step.Computation[Config, State, symbolic.SCV] {
	return newReachability(cfg, ModeForward, AlgoSaturation, initial)
}

// NewBackwardSaturation builds a backward-reachability computation using
// the saturation step operator.
func NewBackwardSaturation(cfg symbolic.ReachabilityConfig, initial symbolic.SCV) *step.Computation[Config, State, symbolic.SCV] {
	return newReachability(cfg, ModeBackward, AlgoSaturation, initial)
}

// NewForwardBFS builds a forward-reachability computation using the BFS
// step operator.
func NewForwardBFS(cfg symbolic.ReachabilityConfig, initial symbolic.SCV) *step.Computation[Config, State, symbolic.SCV] {
	return newReachability(cfg, ModeForward, AlgoBFS, initial)
}

// NewBackwardBFS builds a backward-reachability computation using the
// BFS step operator.
func NewBackwardBFS(cfg symbolic.ReachabilityConfig, initial symbolic.SCV) *step.Computation[Config, State, symbolic.SCV] {
	return newReachability(cfg, ModeBackward, AlgoBFS, initial)
}

// RestoreReachability reconstructs a reachability Computation from bytes
// produced by its Snapshot method, given a freshly supplied Config (the
// graph/caps are not serialised).
func RestoreReachability(cfg Config, data []byte) (*step.Computation[Config, State, symbolic.SCV], error) {
	return step.RestoreComputation[Config, State, symbolic.SCV](reachabilityStep{}, cfg, data)
}
