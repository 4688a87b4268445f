package attractor

import (
	"context"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/boolscc/reach"
	"github.com/katalvlaran/boolscc/step"
	"github.com/katalvlaran/boolscc/symbolic"
)

// ReductionKind tags which of ITGR's four per-variable sub-tasks a
// Reduction currently is (§4.7). Kept as an explicit sum type, not a
// boxed sub-computation, since ItgrState is persisted.
type ReductionKind int

const (
	ReductionForward ReductionKind = iota
	ReductionExtended
	ReductionForwardBasin
	ReductionBottomBasin
)

// Reduction is one live per-variable reduction task. Which fields are
// meaningful depends on Kind: Forward is read by Forward/Extended/
// ForwardBasin, ExtendedComponent only by Extended, Basin/Bottom only by
// the two basin variants.
type Reduction struct {
	Var               symbolic.VariableId
	Kind              ReductionKind
	Forward           symbolic.SCV
	ExtendedComponent symbolic.SCV
	Basin             symbolic.SCV
	Bottom            symbolic.SCV
}

func (r Reduction) weight() int {
	switch r.Kind {
	case ReductionForward:
		return r.Forward.SymbolicSize()
	case ReductionExtended:
		return r.ExtendedComponent.SymbolicSize()
	default:
		return r.Basin.SymbolicSize()
	}
}

func (r *Reduction) restrictTo(s symbolic.SCV) {
	switch r.Kind {
	case ReductionForward:
		r.Forward = r.Forward.Intersect(s)
	case ReductionExtended:
		r.Forward = r.Forward.Intersect(s)
		r.ExtendedComponent = r.ExtendedComponent.Intersect(s)
	case ReductionForwardBasin:
		r.Forward = r.Forward.Intersect(s)
		r.Basin = r.Basin.Intersect(s)
	case ReductionBottomBasin:
		r.Bottom = r.Bottom.Intersect(s)
		r.Basin = r.Basin.Intersect(s)
	}
}

// ItgrState is the ITGR preprocessor's resumable state.
type ItgrState struct {
	RemainingSet symbolic.SCV
	ActiveVars   []symbolic.VariableId
	ToDiscard    symbolic.SCV
	Reductions   []Reduction
}

// ActiveVariables returns the variables ITGR has retained so far. Once
// the computation reaches Ready, this is the variable set the caller
// should configure the attractor enumerator with, alongside
// graph.Restrict(RemainingSet).
func (s ItgrState) ActiveVariables() []symbolic.VariableId {
	out := make([]symbolic.VariableId, len(s.ActiveVars))
	copy(out, s.ActiveVars)
	return out
}

type wireReduction struct {
	Var               int           `yaml:"var"`
	Kind              ReductionKind `yaml:"kind"`
	Forward           yaml.Node     `yaml:"forward"`
	ExtendedComponent yaml.Node     `yaml:"extended_component"`
	Basin             yaml.Node     `yaml:"basin"`
	Bottom            yaml.Node     `yaml:"bottom"`
}

type wireItgrState struct {
	RemainingSet yaml.Node       `yaml:"remaining_set"`
	ActiveVars   []int           `yaml:"active_vars"`
	ToDiscard    yaml.Node       `yaml:"to_discard"`
	Reductions   []wireReduction `yaml:"reductions"`
}

// MarshalYAML implements yaml.Marshaler.
func (s ItgrState) MarshalYAML() (interface{}, error) {
	w := wireItgrState{}
	var err error
	if w.RemainingSet, err = encodeNode(s.RemainingSet); err != nil {
		return nil, err
	}
	if w.ToDiscard, err = encodeNode(s.ToDiscard); err != nil {
		return nil, err
	}
	for _, v := range s.ActiveVars {
		w.ActiveVars = append(w.ActiveVars, int(v))
	}
	for _, r := range s.Reductions {
		wr := wireReduction{Var: int(r.Var), Kind: r.Kind}
		if wr.Forward, err = encodeNode(r.Forward); err != nil {
			return nil, err
		}
		if wr.ExtendedComponent, err = encodeNode(r.ExtendedComponent); err != nil {
			return nil, err
		}
		if wr.Basin, err = encodeNode(r.Basin); err != nil {
			return nil, err
		}
		if wr.Bottom, err = encodeNode(r.Bottom); err != nil {
			return nil, err
		}
		w.Reductions = append(w.Reductions, wr)
	}
	return w, nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *ItgrState) UnmarshalYAML(value *yaml.Node) error {
	var w wireItgrState
	if err := value.Decode(&w); err != nil {
		return err
	}
	var err error
	if s.RemainingSet, err = decodeNode(w.RemainingSet); err != nil {
		return err
	}
	if s.ToDiscard, err = decodeNode(w.ToDiscard); err != nil {
		return err
	}
	s.ActiveVars = nil
	for _, v := range w.ActiveVars {
		s.ActiveVars = append(s.ActiveVars, symbolic.VariableId(v))
	}
	s.Reductions = nil
	for _, wr := range w.Reductions {
		r := Reduction{Var: symbolic.VariableId(wr.Var), Kind: wr.Kind}
		if r.Forward, err = decodeNode(wr.Forward); err != nil {
			return err
		}
		if r.ExtendedComponent, err = decodeNode(wr.ExtendedComponent); err != nil {
			return err
		}
		if r.Basin, err = decodeNode(wr.Basin); err != nil {
			return err
		}
		if r.Bottom, err = decodeNode(wr.Bottom); err != nil {
			return err
		}
		s.Reductions = append(s.Reductions, r)
	}
	return nil
}

type itgrStep struct{}

// Step implements §4.7's loop. One call applies a pending discard (if
// any), then advances the current (last) reduction by one saturation
// increment, possibly popping it and pushing its successor task(s).
func (itgrStep) Step(ctx context.Context, cfg Config, st *ItgrState) step.Completable[struct{}] {
	if c, cancelled := step.CheckContext[struct{}](ctx); cancelled {
		return c
	}

	if st.ToDiscard != nil && !st.ToDiscard.IsEmpty() {
		st.RemainingSet = st.RemainingSet.Minus(st.ToDiscard)
		st.ToDiscard = nil

		restrictedAfterDiscard := cfg.Attr.Graph.Restrict(st.RemainingSet)
		kept := st.ActiveVars[:0:0]
		for _, v := range st.ActiveVars {
			if !restrictedAfterDiscard.VarCanPostWithin(v, st.RemainingSet).IsEmpty() {
				kept = append(kept, v)
			}
		}
		st.ActiveVars = kept

		for i := range st.Reductions {
			st.Reductions[i].restrictTo(st.RemainingSet)
		}
	}

	if len(st.Reductions) == 0 {
		return step.Ready(struct{}{})
	}

	last := st.Reductions[len(st.Reductions)-1]
	if last.Kind != ReductionForwardBasin && last.Kind != ReductionBottomBasin {
		sort.SliceStable(st.Reductions, func(i, j int) bool {
			return st.Reductions[i].weight() > st.Reductions[j].weight()
		})
	}

	cur := len(st.Reductions) - 1
	r := st.Reductions[cur]
	restricted := cfg.Attr.Graph.Restrict(st.RemainingSet)

	switch r.Kind {
	case ReductionForward:
		cand, reason, cancelled := reach.SaturationCandidate(ctx, restricted, st.ActiveVars, r.Forward, restricted.VarPostOut)
		if cancelled {
			return step.Cancelled[struct{}](reason)
		}
		if cand.IsEmpty() {
			st.Reductions = st.Reductions[:cur]
			st.Reductions = append(st.Reductions, Reduction{
				Var:               r.Var,
				Kind:              ReductionExtended,
				Forward:           r.Forward,
				ExtendedComponent: restricted.VarCanPostWithin(r.Var, st.RemainingSet),
			})
			if basinCandidates := st.RemainingSet.Minus(r.Forward); !basinCandidates.IsEmpty() {
				st.Reductions = append(st.Reductions, Reduction{
					Var:     r.Var,
					Kind:    ReductionForwardBasin,
					Forward: r.Forward,
					Basin:   r.Forward,
				})
			}
			return step.Working[struct{}]()
		}
		st.Reductions[cur].Forward = r.Forward.Union(cand)
		return step.Working[struct{}]()

	case ReductionExtended:
		restrictedToForward := cfg.Attr.Graph.Restrict(r.Forward)
		cand, reason, cancelled := reach.SaturationCandidate(ctx, restrictedToForward, st.ActiveVars, r.ExtendedComponent, restrictedToForward.VarPreOut)
		if cancelled {
			return step.Cancelled[struct{}](reason)
		}
		if cand.IsEmpty() {
			bottom := r.Forward.Minus(r.ExtendedComponent)
			st.Reductions = st.Reductions[:cur]
			if !bottom.IsEmpty() {
				st.Reductions = append(st.Reductions, Reduction{
					Var:    r.Var,
					Kind:   ReductionBottomBasin,
					Bottom: bottom,
					Basin:  bottom,
				})
			}
			return step.Working[struct{}]()
		}
		st.Reductions[cur].ExtendedComponent = r.ExtendedComponent.Union(cand)
		return step.Working[struct{}]()

	case ReductionForwardBasin:
		cand, reason, cancelled := reach.SaturationCandidate(ctx, restricted, st.ActiveVars, r.Basin, restricted.VarPreOut)
		if cancelled {
			return step.Cancelled[struct{}](reason)
		}
		if cand.IsEmpty() {
			discard := r.Basin.Minus(r.Forward)
			st.Reductions = st.Reductions[:cur]
			if !discard.IsEmpty() {
				st.ToDiscard = discard
			}
			return step.Working[struct{}]()
		}
		st.Reductions[cur].Basin = r.Basin.Union(cand)
		return step.Working[struct{}]()

	default: // ReductionBottomBasin
		cand, reason, cancelled := reach.SaturationCandidate(ctx, restricted, st.ActiveVars, r.Basin, restricted.VarPreOut)
		if cancelled {
			return step.Cancelled[struct{}](reason)
		}
		if cand.IsEmpty() {
			discard := r.Basin.Minus(r.Bottom)
			st.Reductions = st.Reductions[:cur]
			if !discard.IsEmpty() {
				st.ToDiscard = discard
			}
			return step.Working[struct{}]()
		}
		st.Reductions[cur].Basin = r.Basin.Union(cand)
		return step.Working[struct{}]()
	}
}

// ItgrResult is ITGR's finalised output: the retained universe plus the
// variable set pruned of anything ITGR proved dead. A caller feeding this
// into the Xie–Beerel generator should use cfg.Graph.Restrict(Remaining)
// and ActiveVars, not the original AttractorConfig's.
type ItgrResult struct {
	Remaining  symbolic.SCV
	ActiveVars []symbolic.VariableId
}

func (itgrStep) Output(_ context.Context, _ Config, st ItgrState) ItgrResult {
	return ItgrResult{Remaining: st.RemainingSet, ActiveVars: st.ActiveVariables()}
}

// NewITGR builds the ITGR preprocessing Computation over universe, seeded
// with one Forward task per active variable.
func NewITGR(cfg symbolic.AttractorConfig, universe symbolic.SCV) *step.Computation[Config, ItgrState, ItgrResult] {
	vars := append([]symbolic.VariableId(nil), cfg.ActiveVariables...)
	restricted := cfg.Graph.Restrict(universe)
	reductions := make([]Reduction, 0, len(vars))
	for _, v := range vars {
		reductions = append(reductions, Reduction{
			Var:     v,
			Kind:    ReductionForward,
			Forward: restricted.VarCanPostWithin(v, universe),
		})
	}
	initial := ItgrState{RemainingSet: universe, ActiveVars: vars, Reductions: reductions}
	return step.NewComputation[Config, ItgrState, ItgrResult](itgrStep{}, Config{Attr: cfg}, initial)
}

// RestoreITGR reconstructs an ITGR Computation from Snapshot bytes.
func RestoreITGR(cfg symbolic.AttractorConfig, data []byte) (*step.Computation[Config, ItgrState, ItgrResult], error) {
	return step.RestoreComputation[Config, ItgrState, ItgrResult](itgrStep{}, Config{Attr: cfg}, data)
}
