package scc

import (
	"context"

	"github.com/katalvlaran/boolscc/reach"
	"github.com/katalvlaran/boolscc/step"
	"github.com/katalvlaran/boolscc/symbolic"
	"github.com/katalvlaran/boolscc/trim"
)

// newReachComputation picks the right reach constructor for cfg's
// Mode/Algo pair. The forward–backward generator passes its configured
// algorithm (saturation or BFS) through reach.Config.
func newReachComputation(cfg reach.Config, initial symbolic.SCV) *step.Computation[reach.Config, reach.State, symbolic.SCV] {
	switch {
	case cfg.Mode == reach.ModeForward && cfg.Algo == reach.AlgoSaturation:
		return reach.NewForwardSaturation(cfg.Reach, initial)
	case cfg.Mode == reach.ModeBackward && cfg.Algo == reach.AlgoSaturation:
		return reach.NewBackwardSaturation(cfg.Reach, initial)
	case cfg.Mode == reach.ModeForward:
		return reach.NewForwardBFS(cfg.Reach, initial)
	default:
		return reach.NewBackwardBFS(cfg.Reach, initial)
	}
}

// driveReach runs exactly one TryCompute step of a reachability
// sub-computation, reconstructing it from sub (or, if sub is nil,
// starting fresh from initial). On Working it returns the fresh Snapshot
// bytes; on Ready it returns the final SCV and clears the bytes.
func driveReach(ctx context.Context, cfg reach.Config, sub []byte, initial symbolic.SCV) (next []byte, result symbolic.SCV, ready bool, cancelled bool, reason string, err error) {
	var comp *step.Computation[reach.Config, reach.State, symbolic.SCV]
	if sub == nil {
		comp = newReachComputation(cfg, initial)
	} else {
		comp, err = reach.RestoreReachability(cfg, sub)
		if err != nil {
			return nil, nil, false, false, "", err
		}
	}
	r := comp.TryCompute(ctx)
	switch {
	case r.IsCancelled():
		return nil, nil, false, true, r.Reason(), nil
	case r.IsWorking():
		next, err = comp.Snapshot()
		return next, nil, false, false, "", err
	default:
		return nil, r.Value(), true, false, "", nil
	}
}

// driveTrim is driveReach's counterpart for the trim package's single
// collapsed step type.
func driveTrim(ctx context.Context, cfg trim.Config, sub []byte, initial symbolic.SCV) (next []byte, result symbolic.SCV, ready bool, cancelled bool, reason string, err error) {
	var comp *step.Computation[trim.Config, trim.State, symbolic.SCV]
	if sub == nil {
		comp = trim.New(cfg.Setting, cfg.Reach, initial)
	} else {
		comp, err = trim.Restore(cfg, sub)
		if err != nil {
			return nil, nil, false, false, "", err
		}
	}
	r := comp.TryCompute(ctx)
	switch {
	case r.IsCancelled():
		return nil, nil, false, true, r.Reason(), nil
	case r.IsWorking():
		next, err = comp.Snapshot()
		return next, nil, false, false, "", err
	default:
		return nil, r.Value(), true, false, "", nil
	}
}

func reachConfig(cfg Config, graph symbolic.Graph, mode reach.Mode) reach.Config {
	return reach.Config{
		Reach: symbolic.ReachabilityConfig{
			Graph:           graph,
			ActiveVariables: cfg.Scc.ActiveVariables,
		},
		Mode: mode,
		Algo: cfg.ReachAlgo,
	}
}

func trimConfig(cfg Config) trim.Config {
	return trim.Config{
		Reach: symbolic.ReachabilityConfig{
			Graph:           cfg.Scc.Graph,
			ActiveVariables: cfg.Scc.ActiveVariables,
		},
		Setting: cfg.Scc.Trim,
	}
}

// scanHint scans vars in descending order, returning the first non-empty
// out(v, source) ∩ domain. Used by the chain generator's hint reseeding
// (§4.4) with three different (out, source, domain) instantiations.
func scanHint(ctx context.Context, vars []symbolic.VariableId, source, domain symbolic.SCV, out func(v symbolic.VariableId, s symbolic.SCV) symbolic.SCV) (symbolic.SCV, bool) {
	for i := len(vars) - 1; i >= 0; i-- {
		select {
		case <-ctx.Done():
			return nil, true
		default:
		}
		cand := out(vars[i], source).Intersect(domain)
		if !cand.IsEmpty() {
			return cand, false
		}
	}
	return nil, false
}
