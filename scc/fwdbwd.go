package scc

import (
	"context"

	"github.com/emirpasic/gods/stacks/arraystack"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/boolscc/reach"
	"github.com/katalvlaran/boolscc/step"
	"github.com/katalvlaran/boolscc/symbolic"
)

// Phase enumerates the forward–backward generator's internal states.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseTrimming
	PhaseBackward
	PhaseForward
)

// State is the forward–backward generator's resumable state. ToProcess is
// a LIFO of candidate universes, backed by gods' arraystack. Sub carries
// the live sub-computation's own Snapshot bytes, tagged by Phase — the
// "tagged variant, not a boxed trait object" persisted form the protocol
// requires for anything holding a nested Computation.
type State struct {
	ToProcess *arraystack.Stack
	Phase     Phase
	Universe  symbolic.SCV
	Pivot     symbolic.SCV
	Backward  symbolic.SCV
	Sub       []byte
}

type wireState struct {
	ToProcess []yaml.Node `yaml:"to_process"`
	Phase     Phase       `yaml:"phase"`
	Universe  yaml.Node   `yaml:"universe"`
	Pivot     yaml.Node   `yaml:"pivot"`
	Backward  yaml.Node   `yaml:"backward"`
	Sub       []byte      `yaml:"sub,omitempty"`
}

// MarshalYAML implements yaml.Marshaler.
func (s State) MarshalYAML() (interface{}, error) {
	w := wireState{Phase: s.Phase, Sub: s.Sub}
	for _, item := range dumpSCVStack(s.ToProcess) {
		n, err := encodeNode(item)
		if err != nil {
			return nil, err
		}
		w.ToProcess = append(w.ToProcess, n)
	}
	var err error
	if w.Universe, err = encodeNode(s.Universe); err != nil {
		return nil, err
	}
	if w.Pivot, err = encodeNode(s.Pivot); err != nil {
		return nil, err
	}
	if w.Backward, err = encodeNode(s.Backward); err != nil {
		return nil, err
	}
	return w, nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *State) UnmarshalYAML(value *yaml.Node) error {
	var w wireState
	if err := value.Decode(&w); err != nil {
		return err
	}
	s.Phase = w.Phase
	s.Sub = w.Sub
	var topToBottom []symbolic.SCV
	for _, n := range w.ToProcess {
		scv, err := decodeNode(n)
		if err != nil {
			return err
		}
		topToBottom = append(topToBottom, scv)
	}
	s.ToProcess = loadSCVStack(topToBottom)
	var err error
	if s.Universe, err = decodeNode(w.Universe); err != nil {
		return err
	}
	if s.Pivot, err = decodeNode(w.Pivot); err != nil {
		return err
	}
	if s.Backward, err = decodeNode(w.Backward); err != nil {
		return err
	}
	return nil
}

type genStep struct{}

// Step implements §4.3's loop, one phase transition per call.
func (genStep) Step(ctx context.Context, cfg Config, st *State) step.Completable[*symbolic.SCV] {
	if c, cancelled := step.CheckContext[*symbolic.SCV](ctx); cancelled {
		return c
	}

	switch st.Phase {
	case PhaseIdle:
		u, ok := pop(st.ToProcess)
		if !ok {
			return step.Ready[*symbolic.SCV](nil)
		}
		if u.IsEmpty() {
			return step.Working[*symbolic.SCV]()
		}
		st.Universe, st.Pivot, st.Backward, st.Sub = u, nil, nil, nil
		st.Phase = PhaseTrimming
		return step.Working[*symbolic.SCV]()

	case PhaseTrimming:
		next, uPrime, ready, cancelled, reason, err := driveTrim(ctx, trimConfig(cfg), st.Sub, st.Universe)
		if err != nil {
			return step.Cancelled[*symbolic.SCV]("error: " + err.Error())
		}
		if cancelled {
			return step.Cancelled[*symbolic.SCV](reason)
		}
		if !ready {
			st.Sub = next
			return step.Working[*symbolic.SCV]()
		}
		if uPrime.IsEmpty() {
			st.Phase = PhaseIdle
			return step.Working[*symbolic.SCV]()
		}
		st.Universe = uPrime
		st.Pivot = uPrime.PickVertex()
		st.Sub = nil
		st.Phase = PhaseBackward
		return step.Working[*symbolic.SCV]()

	case PhaseBackward:
		restricted := cfg.Scc.Graph.Restrict(st.Universe)
		next, b, ready, cancelled, reason, err := driveReach(ctx, reachConfig(cfg, restricted, reach.ModeBackward), st.Sub, st.Pivot)
		if err != nil {
			return step.Cancelled[*symbolic.SCV]("error: " + err.Error())
		}
		if cancelled {
			return step.Cancelled[*symbolic.SCV](reason)
		}
		if !ready {
			st.Sub = next
			return step.Working[*symbolic.SCV]()
		}
		st.Backward = b
		st.Sub = nil
		st.Phase = PhaseForward
		return step.Working[*symbolic.SCV]()

	case PhaseForward:
		restricted := cfg.Scc.Graph.Restrict(st.Universe)
		next, f, ready, cancelled, reason, err := driveReach(ctx, reachConfig(cfg, restricted, reach.ModeForward), st.Sub, st.Pivot)
		if err != nil {
			return step.Cancelled[*symbolic.SCV]("error: " + err.Error())
		}
		if cancelled {
			return step.Cancelled[*symbolic.SCV](reason)
		}
		if !ready {
			st.Sub = next
			return step.Working[*symbolic.SCV]()
		}

		b := st.Backward
		scc := f.Intersect(b)
		push(st.ToProcess, b.Minus(f))
		push(st.ToProcess, f.Minus(b))
		push(st.ToProcess, st.Universe.Minus(f.Union(b)))
		st.Universe, st.Pivot, st.Backward, st.Sub = nil, nil, nil, nil
		st.Phase = PhaseIdle

		filtered := filterSCC(cfg.Scc.Graph, cfg.Scc.ActiveVariables, scc, cfg.Scc.FilterLongLived)
		if filtered == nil || filtered.IsEmpty() {
			return step.Working[*symbolic.SCV]()
		}
		return step.Ready(&filtered)

	default:
		return step.Working[*symbolic.SCV]()
	}
}

// NewForwardBackward builds the forward–backward SCC generator seeded
// with a single initial universe. algo selects the reachability engine
// the generator's internal forward/backward steps use (saturation per
// §4.3, or BFS for the `fwd-bwd-bfs` CLI variant).
func NewForwardBackward(cfg symbolic.SccConfig, algo reach.Algo, initial symbolic.SCV) *step.Generator[Config, State, symbolic.SCV] {
	s := arraystack.New()
	push(s, initial)
	return step.NewGenerator[Config, State, symbolic.SCV](genStep{}, Config{Scc: cfg, ReachAlgo: algo}, State{ToProcess: s})
}

// RestoreForwardBackward reconstructs a forward–backward generator from
// Snapshot bytes.
func RestoreForwardBackward(cfg symbolic.SccConfig, algo reach.Algo, data []byte) (*step.Generator[Config, State, symbolic.SCV], error) {
	return step.RestoreGenerator[Config, State, symbolic.SCV](genStep{}, Config{Scc: cfg, ReachAlgo: algo}, data)
}
