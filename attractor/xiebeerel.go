package attractor

import (
	"context"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/boolscc/reach"
	"github.com/katalvlaran/boolscc/step"
	"github.com/katalvlaran/boolscc/symbolic"
)

// Phase enumerates the Xie–Beerel generator's internal states.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseBasin
	PhaseAttractor
)

// State is the Xie–Beerel generator's resumable state.
type State struct {
	Remaining symbolic.SCV
	Phase     Phase
	Pivot     symbolic.SCV
	Basin     symbolic.SCV
	Attractor symbolic.SCV
	Sub       []byte
}

type wireState struct {
	Remaining yaml.Node `yaml:"remaining"`
	Phase     Phase     `yaml:"phase"`
	Pivot     yaml.Node `yaml:"pivot"`
	Basin     yaml.Node `yaml:"basin"`
	Attractor yaml.Node `yaml:"attractor"`
	Sub       []byte    `yaml:"sub,omitempty"`
}

// MarshalYAML implements yaml.Marshaler.
func (s State) MarshalYAML() (interface{}, error) {
	w := wireState{Phase: s.Phase, Sub: s.Sub}
	var err error
	if w.Remaining, err = encodeNode(s.Remaining); err != nil {
		return nil, err
	}
	if w.Pivot, err = encodeNode(s.Pivot); err != nil {
		return nil, err
	}
	if w.Basin, err = encodeNode(s.Basin); err != nil {
		return nil, err
	}
	if w.Attractor, err = encodeNode(s.Attractor); err != nil {
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
	var err error
	if s.Remaining, err = decodeNode(w.Remaining); err != nil {
		return err
	}
	if s.Pivot, err = decodeNode(w.Pivot); err != nil {
		return err
	}
	if s.Basin, err = decodeNode(w.Basin); err != nil {
		return err
	}
	if s.Attractor, err = decodeNode(w.Attractor); err != nil {
		return err
	}
	return nil
}

type genStep struct{}

// Step implements §4.6's loop, one phase transition per call.
func (genStep) Step(ctx context.Context, cfg Config, st *State) step.Completable[*symbolic.SCV] {
	if c, cancelled := step.CheckContext[*symbolic.SCV](ctx); cancelled {
		return c
	}

	switch st.Phase {
	case PhaseIdle:
		if st.Remaining.IsEmpty() {
			return step.Ready[*symbolic.SCV](nil)
		}
		st.Pivot = st.Remaining.PickVertex()
		st.Basin, st.Attractor, st.Sub = nil, nil, nil
		st.Phase = PhaseBasin
		return step.Working[*symbolic.SCV]()

	case PhaseBasin:
		restricted := cfg.Attr.Graph.Restrict(st.Remaining)
		next, b, ready, cancelled, reason, err := driveBackward(ctx, restricted, cfg.Attr.ActiveVariables, st.Sub, st.Pivot)
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
		st.Attractor = st.Pivot
		st.Sub = nil
		st.Phase = PhaseAttractor
		return step.Working[*symbolic.SCV]()

	case PhaseAttractor:
		restricted := cfg.Attr.Graph.Restrict(st.Remaining)
		cand, reason, cancelled := reach.SaturationCandidate(ctx, restricted, cfg.Attr.ActiveVariables, st.Attractor, restricted.VarPostOut)
		if cancelled {
			return step.Cancelled[*symbolic.SCV](reason)
		}
		if cand == nil || cand.IsEmpty() || cand.IsSubsetOf(st.Attractor) {
			attr := st.Attractor
			st.Remaining = st.Remaining.Minus(st.Basin)
			st.Basin, st.Attractor, st.Pivot, st.Sub = nil, nil, nil, nil
			st.Phase = PhaseIdle
			if attr.IsEmpty() {
				return step.Working[*symbolic.SCV]()
			}
			return step.Ready(&attr)
		}

		st.Attractor = st.Attractor.Union(cand)
		escaped := cand.Minus(st.Basin)
		if !escaped.IsEmpty() {
			st.Attractor = st.Attractor.MinusColors(escaped.Colors())
		}
		if cfg.Attr.MaxSymbolicSize > 0 && st.Attractor.SymbolicSize() > cfg.Attr.MaxSymbolicSize {
			return step.Cancelled[*symbolic.SCV]("max_symbolic_size")
		}
		return step.Working[*symbolic.SCV]()

	default:
		return step.Working[*symbolic.SCV]()
	}
}

// New builds the Xie–Beerel generator over the full universe (or, after
// ITGR preprocessing, over ITGR's retained remaining set).
func New(cfg symbolic.AttractorConfig, universe symbolic.SCV) *step.Generator[Config, State, symbolic.SCV] {
	return step.NewGenerator[Config, State, symbolic.SCV](genStep{}, Config{Attr: cfg}, State{Remaining: universe})
}

// Restore reconstructs a Xie–Beerel generator from Snapshot bytes.
func Restore(cfg symbolic.AttractorConfig, data []byte) (*step.Generator[Config, State, symbolic.SCV], error) {
	return step.RestoreGenerator[Config, State, symbolic.SCV](genStep{}, Config{Attr: cfg}, data)
}
