// Package trim implements the four trimming reductions used to strip
// trivial (single-state) SCCs from a candidate universe before SCC
// enumeration pivots on it: RelativeSources, RelativeSinks,
// RelativeSinksAndSources, and the identity (TrimSetting == None).
//
// All four share one state shape (reach.State — a current SCV plus an
// iteration counter) and one Config (graph/caps plus the TrimSetting),
// so a persisted SCC state only ever needs to carry that one plain value
// regardless of which setting produced it — the enclosing generator
// reconstructs the right behavior from its own SccConfig.Trim on resume.
package trim

import (
	"context"

	"github.com/katalvlaran/boolscc/reach"
	"github.com/katalvlaran/boolscc/step"
	"github.com/katalvlaran/boolscc/symbolic"
)

// State is trimming's working state: reach.State's (Current, Iteration)
// shape, reused rather than duplicated.
type State = reach.State

// Config configures a trimming computation.
type Config struct {
	Reach   symbolic.ReachabilityConfig
	Setting symbolic.TrimSetting
}

type trimmingStep struct{}

// tryRemove applies one relative-sources or relative-sinks reduction
// step: it unions every active variable's var_can_pre_within (sources) or
// var_can_post_within (sinks) contribution, subtracts that from Current
// to get the complement (the sources/sinks themselves), and removes them.
// Ready means this operator is dry (nothing left to remove); Working
// means it made progress; Cancelled propagates a budget/context abort.
func tryRemove(ctx context.Context, rc symbolic.ReachabilityConfig, st *State, out reach.VarOutFunc) step.Completable[struct{}] {
	w, reason, cancelled := reach.UnionCandidate(ctx, rc.Graph, rc.ActiveVariables, st.Current, out)
	if cancelled {
		return step.Cancelled[struct{}](reason)
	}
	toRemove := st.Current.Minus(w)
	if toRemove.IsEmpty() {
		return step.Ready(struct{}{})
	}
	st.Current = st.Current.Minus(toRemove)
	if c, cancelled := reach.CheckSizeBudget(rc, st); cancelled {
		return c
	}
	return step.Working[struct{}]()
}

func (trimmingStep) Step(ctx context.Context, cfg Config, st *State) step.Completable[struct{}] {
	if cfg.Setting == symbolic.TrimNone {
		return step.Ready(struct{}{})
	}
	if c, cancelled := reach.CheckIterationBudget(cfg.Reach, st); cancelled {
		return c
	}

	switch cfg.Setting {
	case symbolic.TrimSources:
		return tryRemove(ctx, cfg.Reach, st, cfg.Reach.Graph.VarCanPreWithin)
	case symbolic.TrimSinks:
		return tryRemove(ctx, cfg.Reach, st, cfg.Reach.Graph.VarCanPostWithin)
	default: // symbolic.TrimBoth: sources first, sinks as a cheap fallback.
		r := tryRemove(ctx, cfg.Reach, st, cfg.Reach.Graph.VarCanPreWithin)
		if !r.IsReady() {
			return r
		}
		return tryRemove(ctx, cfg.Reach, st, cfg.Reach.Graph.VarCanPostWithin)
	}
}

func (trimmingStep) Output(_ context.Context, _ Config, st State) symbolic.SCV {
	return st.Current
}

// New builds the trimming computation for setting. TrimNone yields the
// identity computation (Current is returned unchanged).
func New(setting symbolic.TrimSetting, rc symbolic.ReachabilityConfig, initial symbolic.SCV) *step.Computation[Config, State, symbolic.SCV] {
	return step.NewComputation[Config, State, symbolic.SCV](
		trimmingStep{}, Config{Reach: rc, Setting: setting}, State{Current: initial},
	)
}

// Restore reconstructs a trimming Computation from Snapshot bytes.
func Restore(cfg Config, data []byte) (*step.Computation[Config, State, symbolic.SCV], error) {
	return step.RestoreComputation[Config, State, symbolic.SCV](trimmingStep{}, cfg, data)
}
