package scc

import (
	"context"

	"github.com/emirpasic/gods/stacks/arraystack"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/boolscc/reach"
	"github.com/katalvlaran/boolscc/step"
	"github.com/katalvlaran/boolscc/symbolic"
)

// ChainPhase enumerates the chain generator's internal states (§4.4).
type ChainPhase int

const (
	ChainIdle ChainPhase = iota
	ChainTrimming
	ChainBasin
	ChainScc
)

// workItem pairs a candidate universe with a pivot hint: a (possibly
// empty/nil) subset the next pivot should be drawn from in preference to
// an arbitrary vertex.
type workItem struct {
	Universe symbolic.SCV
	Hint     symbolic.SCV
}

// ChainState is the chain generator's resumable state. ToProcess is a
// LIFO of (universe, hint) pairs, backed by gods' arraystack.
type ChainState struct {
	ToProcess *arraystack.Stack
	Phase     ChainPhase
	Hint      symbolic.SCV
	Universe  symbolic.SCV
	Pivot     symbolic.SCV
	Basin     symbolic.SCV
	Sub       []byte
}

type wireWorkItem struct {
	Universe yaml.Node `yaml:"universe"`
	Hint     yaml.Node `yaml:"hint"`
}

type wireChainState struct {
	ToProcess []wireWorkItem `yaml:"to_process"`
	Phase     ChainPhase     `yaml:"phase"`
	Hint      yaml.Node      `yaml:"hint"`
	Universe  yaml.Node      `yaml:"universe"`
	Pivot     yaml.Node      `yaml:"pivot"`
	Basin     yaml.Node      `yaml:"basin"`
	Sub       []byte         `yaml:"sub,omitempty"`
}

// MarshalYAML implements yaml.Marshaler.
func (s ChainState) MarshalYAML() (interface{}, error) {
	w := wireChainState{Phase: s.Phase, Sub: s.Sub}
	for _, item := range dumpWorkStack(s.ToProcess) {
		u, err := encodeNode(item.Universe)
		if err != nil {
			return nil, err
		}
		h, err := encodeNode(item.Hint)
		if err != nil {
			return nil, err
		}
		w.ToProcess = append(w.ToProcess, wireWorkItem{Universe: u, Hint: h})
	}
	var err error
	if w.Hint, err = encodeNode(s.Hint); err != nil {
		return nil, err
	}
	if w.Universe, err = encodeNode(s.Universe); err != nil {
		return nil, err
	}
	if w.Pivot, err = encodeNode(s.Pivot); err != nil {
		return nil, err
	}
	if w.Basin, err = encodeNode(s.Basin); err != nil {
		return nil, err
	}
	return w, nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *ChainState) UnmarshalYAML(value *yaml.Node) error {
	var w wireChainState
	if err := value.Decode(&w); err != nil {
		return err
	}
	s.Phase = w.Phase
	s.Sub = w.Sub
	var topToBottom []workItem
	for _, wi := range w.ToProcess {
		u, err := decodeNode(wi.Universe)
		if err != nil {
			return err
		}
		h, err := decodeNode(wi.Hint)
		if err != nil {
			return err
		}
		topToBottom = append(topToBottom, workItem{Universe: u, Hint: h})
	}
	s.ToProcess = loadWorkStack(topToBottom)
	var err error
	if s.Hint, err = decodeNode(w.Hint); err != nil {
		return err
	}
	if s.Universe, err = decodeNode(w.Universe); err != nil {
		return err
	}
	if s.Pivot, err = decodeNode(w.Pivot); err != nil {
		return err
	}
	if s.Basin, err = decodeNode(w.Basin); err != nil {
		return err
	}
	return nil
}

type chainStep struct{}

// Step implements §4.4's loop, one phase transition per call. The hint
// reseed after trimming uses var_post(v, removed) — the explicit form
// §4.4 spells out, which this module treats as the resolution of the
// corresponding open question in §9 rather than an independent choice.
func (chainStep) Step(ctx context.Context, cfg Config, st *ChainState) step.Completable[*symbolic.SCV] {
	if c, cancelled := step.CheckContext[*symbolic.SCV](ctx); cancelled {
		return c
	}

	switch st.Phase {
	case ChainIdle:
		item, ok := popWork(st.ToProcess)
		if !ok {
			return step.Ready[*symbolic.SCV](nil)
		}
		if item.Universe.IsEmpty() {
			return step.Working[*symbolic.SCV]()
		}
		st.Universe, st.Hint = item.Universe, item.Hint
		st.Pivot, st.Basin, st.Sub = nil, nil, nil
		st.Phase = ChainTrimming
		return step.Working[*symbolic.SCV]()

	case ChainTrimming:
		removedFrom := st.Universe
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
			st.Phase = ChainIdle
			return step.Working[*symbolic.SCV]()
		}

		var hintPrime symbolic.SCV
		if st.Hint != nil {
			hintPrime = st.Hint.Intersect(uPrime)
		}
		if hintPrime == nil || hintPrime.IsEmpty() {
			removed := removedFrom.Minus(uPrime)
			if !removed.IsEmpty() {
				h, cancelled := scanHint(ctx, cfg.Scc.ActiveVariables, removed, uPrime, cfg.Scc.Graph.VarPost)
				if cancelled {
					return step.Cancelled[*symbolic.SCV]("context")
				}
				hintPrime = h
			}
		}

		var pivot symbolic.SCV
		if hintPrime != nil && !hintPrime.IsEmpty() {
			pivot = hintPrime.PickVertex()
		} else {
			pivot = uPrime.PickVertex()
		}

		st.Universe = uPrime
		st.Pivot = pivot
		st.Hint = nil
		st.Sub = nil
		st.Phase = ChainBasin
		return step.Working[*symbolic.SCV]()

	case ChainBasin:
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
		st.Basin = b
		st.Sub = nil
		st.Phase = ChainScc
		return step.Working[*symbolic.SCV]()

	case ChainScc:
		restricted := cfg.Scc.Graph.Restrict(st.Basin)
		next, c, ready, cancelled, reason, err := driveReach(ctx, reachConfig(cfg, restricted, reach.ModeForward), st.Sub, st.Pivot)
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

		remainingBasin := st.Basin.Minus(c)
		remainingRest := st.Universe.Minus(st.Basin)

		if !remainingBasin.IsEmpty() {
			h, cancelled := scanHint(ctx, cfg.Scc.ActiveVariables, c, remainingBasin, cfg.Scc.Graph.VarPreOut)
			if cancelled {
				return step.Cancelled[*symbolic.SCV]("context")
			}
			pushWork(st.ToProcess, remainingBasin, h)
		}
		if !remainingRest.IsEmpty() {
			h, cancelled := scanHint(ctx, cfg.Scc.ActiveVariables, c, remainingRest, cfg.Scc.Graph.VarPostOut)
			if cancelled {
				return step.Cancelled[*symbolic.SCV]("context")
			}
			pushWork(st.ToProcess, remainingRest, h)
		}

		st.Universe, st.Pivot, st.Basin, st.Hint, st.Sub = nil, nil, nil, nil, nil
		st.Phase = ChainIdle

		filtered := filterSCC(cfg.Scc.Graph, cfg.Scc.ActiveVariables, c, cfg.Scc.FilterLongLived)
		if filtered == nil || filtered.IsEmpty() {
			return step.Working[*symbolic.SCV]()
		}
		return step.Ready(&filtered)

	default:
		return step.Working[*symbolic.SCV]()
	}
}

// NewChain builds the chain SCC generator seeded with a single initial
// universe and no pivot hint.
func NewChain(cfg symbolic.SccConfig, initial symbolic.SCV) *step.Generator[Config, ChainState, symbolic.SCV] {
	s := arraystack.New()
	pushWork(s, initial, nil)
	return step.NewGenerator[Config, ChainState, symbolic.SCV](chainStep{}, Config{Scc: cfg}, ChainState{ToProcess: s})
}

// RestoreChain reconstructs a chain generator from Snapshot bytes.
func RestoreChain(cfg symbolic.SccConfig, data []byte) (*step.Generator[Config, ChainState, symbolic.SCV], error) {
	return step.RestoreGenerator[Config, ChainState, symbolic.SCV](chainStep{}, Config{Scc: cfg}, data)
}
