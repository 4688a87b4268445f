// Package reach implements the symbolic reachability engine: forward and
// backward fixpoint computations over saturation or BFS step operators,
// plus the forward/backward trap-set reductions that share the same
// skeleton with union swapped for set-difference.
//
// Every computation here is a step.ComputationStep over (Config, State,
// symbolic.SCV): State tracks the growing (or shrinking, for traps)
// candidate set and an iteration counter; Config carries the
// symbolic.ReachabilityConfig plus which operator to apply. The four
// public reachability constructors are thin configuration wrappers over
// one shared fixpoint loop, and the two trap constructors over a second
// one, the same shared-walker shape bfs.BFS/dfs.DFS use across small
// option-driven variations.
package reach

import (
	"context"

	"github.com/katalvlaran/boolscc/step"
	"github.com/katalvlaran/boolscc/symbolic"
	"gopkg.in/yaml.v3"
)

// Mode selects the direction of a reachability computation.
type Mode int

const (
	// ModeForward computes forward reachability (successors).
	ModeForward Mode = iota
	// ModeBackward computes backward reachability (predecessors).
	ModeBackward
)

// Algo selects the step operator a reachability computation uses.
type Algo int

const (
	// AlgoSaturation advances the first variable that contributes new
	// material, in descending VariableId order, until none does.
	AlgoSaturation Algo = iota
	// AlgoBFS unions every variable's contribution on each iteration.
	AlgoBFS
)

// varOutFunc is the shape of Graph.VarPostOut / Graph.VarPreOut /
// Graph.VarCanPostOut / Graph.VarCanPreOut — whichever "what does v
// contribute outside the current set" query an operator needs.
type varOutFunc func(v symbolic.VariableId, s symbolic.SCV) symbolic.SCV

// bfsCandidate folds every active variable's contribution (descending
// VariableId order) into one union, checking the ambient cancellation
// flag between variables.
func bfsCandidate(ctx context.Context, g symbolic.Graph, vars []symbolic.VariableId, current symbolic.SCV, out varOutFunc) (symbolic.SCV, string, bool) {
	acc := g.MkEmptyColoredVertices()
	for i := len(vars) - 1; i >= 0; i-- {
		select {
		case <-ctx.Done():
			return nil, "context", true
		default:
		}
		acc = acc.Union(out(vars[i], current))
	}
	return acc, "", false
}

// saturationCandidate returns the first variable's non-empty contribution
// in descending VariableId order, or empty if none contributes. The
// descending order is part of the contract: it determines visit order
// and must stay stable across runs for the algorithm-agreement property.
func saturationCandidate(ctx context.Context, g symbolic.Graph, vars []symbolic.VariableId, current symbolic.SCV, out varOutFunc) (symbolic.SCV, string, bool) {
	for i := len(vars) - 1; i >= 0; i-- {
		select {
		case <-ctx.Done():
			return nil, "context", true
		default:
		}
		cand := out(vars[i], current)
		if !cand.IsEmpty() {
			return cand, "", false
		}
	}
	return g.MkEmptyColoredVertices(), "", false
}

// State is the fixpoint loop's working state.
type State struct {
	Current   symbolic.SCV
	Iteration int
}

// wireState is State's YAML wire shape; Current is decoded through
// symbolic.DecodeSCV since an interface field can't be unmarshalled
// directly.
type wireState struct {
	Current   yaml.Node `yaml:"current"`
	Iteration int       `yaml:"iteration"`
}

// MarshalYAML implements yaml.Marshaler.
func (s State) MarshalYAML() (interface{}, error) {
	var node yaml.Node
	if err := node.Encode(s.Current); err != nil {
		return nil, err
	}
	return wireState{Current: node, Iteration: s.Iteration}, nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *State) UnmarshalYAML(value *yaml.Node) error {
	var w wireState
	if err := value.Decode(&w); err != nil {
		return err
	}
	raw, err := yaml.Marshal(&w.Current)
	if err != nil {
		return err
	}
	scv, err := symbolic.DecodeSCV(raw)
	if err != nil {
		return err
	}
	s.Current = scv
	s.Iteration = w.Iteration
	return nil
}

// checkBudget counts the step and enforces the iteration cap, checked
// before the step runs. The symbolic-size cap is checked separately by
// checkSizeBudget after new material is unioned or subtracted.
func checkBudget(cfg symbolic.ReachabilityConfig, st *State) (step.Completable[struct{}], bool) {
	st.Iteration++
	if cfg.MaxIterations > 0 && st.Iteration > cfg.MaxIterations {
		return step.Cancelled[struct{}]("max_iterations"), true
	}
	return step.Completable[struct{}]{}, false
}

func checkSizeBudget(cfg symbolic.ReachabilityConfig, st *State) (step.Completable[struct{}], bool) {
	if cfg.MaxSymbolicSize > 0 && st.Current.SymbolicSize() > cfg.MaxSymbolicSize {
		return step.Cancelled[struct{}]("max_symbolic_size"), true
	}
	return step.Completable[struct{}]{}, false
}

// CheckIterationBudget is the exported form of checkBudget, reused by the
// trim package's reductions which share this package's State shape.
func CheckIterationBudget(cfg symbolic.ReachabilityConfig, st *State) (step.Completable[struct{}], bool) {
	return checkBudget(cfg, st)
}

// CheckSizeBudget is the exported form of checkSizeBudget.
func CheckSizeBudget(cfg symbolic.ReachabilityConfig, st *State) (step.Completable[struct{}], bool) {
	return checkSizeBudget(cfg, st)
}

// VarOutFunc is exported for reuse by other packages (trim) building
// their own step operators over the same saturation/BFS iteration
// contract.
type VarOutFunc = varOutFunc

// UnionCandidate is the exported form of bfsCandidate: a full per-variable
// union (not a saturation pick-first), used by trim's relative-sources /
// relative-sinks reductions.
func UnionCandidate(ctx context.Context, g symbolic.Graph, vars []symbolic.VariableId, current symbolic.SCV, out VarOutFunc) (symbolic.SCV, string, bool) {
	return bfsCandidate(ctx, g, vars, current, out)
}

// SaturationCandidate is the exported form of saturationCandidate.
func SaturationCandidate(ctx context.Context, g symbolic.Graph, vars []symbolic.VariableId, current symbolic.SCV, out VarOutFunc) (symbolic.SCV, string, bool) {
	return saturationCandidate(ctx, g, vars, current, out)
}
