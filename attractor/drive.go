package attractor

import (
	"context"

	"github.com/katalvlaran/boolscc/reach"
	"github.com/katalvlaran/boolscc/step"
	"github.com/katalvlaran/boolscc/symbolic"
)

// driveBackward runs exactly one TryCompute step of a backward-saturation
// sub-computation over graph, reconstructing it from sub when present.
func driveBackward(ctx context.Context, graph symbolic.Graph, vars []symbolic.VariableId, sub []byte, initial symbolic.SCV) (next []byte, result symbolic.SCV, ready bool, cancelled bool, reason string, err error) {
	cfg := reach.Config{
		Reach: symbolic.ReachabilityConfig{Graph: graph, ActiveVariables: vars},
		Mode:  reach.ModeBackward,
		Algo:  reach.AlgoSaturation,
	}
	var comp *step.Computation[reach.Config, reach.State, symbolic.SCV]
	if sub == nil {
		comp = reach.NewBackwardSaturation(cfg.Reach, initial)
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
