package naive

import (
	mapset "github.com/deckarep/golang-set/v2"

	"github.com/katalvlaran/boolscc/symbolic"
)

// Graph is the naive backend's symbolic.Graph implementation: an explicit
// asynchronous transition relation over stateVars Boolean variables and
// colorVars Boolean parameters, each update function given as a closure.
type Graph struct {
	stateVars int
	colorVars int
	updates   []UpdateFunc
	// universe, when non-nil, confines every transition to this SCV's
	// induced subgraph: an edge only exists when both its endpoints are
	// members (restricting keeps the same colour-pair shape).
	universe *SCV
}

// NewGraph builds a Graph from one update function per state variable.
// len(updates) is both the state-variable count and the number of
// variables exposed through VariableId 0..len(updates)-1.
func NewGraph(updates []UpdateFunc, colorVars int) *Graph {
	return &Graph{stateVars: len(updates), colorVars: colorVars, updates: updates}
}

// VariableCount implements symbolic.Graph.
func (g *Graph) VariableCount() int { return g.stateVars }

// Variables implements symbolic.Graph.
func (g *Graph) Variables() []symbolic.VariableId {
	out := make([]symbolic.VariableId, g.stateVars)
	for i := range out {
		out[i] = symbolic.VariableId(i)
	}
	return out
}

// transitionVia returns the state reached by firing variable v from
// (state, color), and whether that transition exists in this (possibly
// restricted) graph.
func (g *Graph) transitionVia(v int, state, color uint64) (uint64, bool) {
	next := g.updates[v](state, color)
	if next == bitAt(state, v) {
		return 0, false
	}
	tgt := withBit(state, v, next)
	if g.universe != nil {
		if !g.universe.members.Contains(pair{state: state, color: color}) {
			return 0, false
		}
		if !g.universe.members.Contains(pair{state: tgt, color: color}) {
			return 0, false
		}
	}
	return tgt, true
}

func (g *Graph) checkVar(v symbolic.VariableId) int {
	i := int(v)
	if i < 0 || i >= g.stateVars {
		panic(symbolic.ErrVariableOutOfRange)
	}
	return i
}

// VarPost implements symbolic.Graph.
func (g *Graph) VarPost(v symbolic.VariableId, s symbolic.SCV) symbolic.SCV {
	vi := g.checkVar(v)
	in, ok := s.(SCV)
	if !ok {
		return Empty()
	}
	out := mapset.NewThreadUnsafeSet[pair]()
	in.members.Each(func(p pair) bool {
		if tgt, ok := g.transitionVia(vi, p.state, p.color); ok {
			out.Add(pair{state: tgt, color: p.color})
		}
		return false
	})
	return newSCV(out, false)
}

// VarPre implements symbolic.Graph.
func (g *Graph) VarPre(v symbolic.VariableId, s symbolic.SCV) symbolic.SCV {
	vi := g.checkVar(v)
	in, ok := s.(SCV)
	if !ok {
		return Empty()
	}
	out := mapset.NewThreadUnsafeSet[pair]()
	in.members.Each(func(p pair) bool {
		cand := withBit(p.state, vi, !bitAt(p.state, vi))
		if _, ok := g.transitionVia(vi, cand, p.color); ok {
			out.Add(pair{state: cand, color: p.color})
		}
		return false
	})
	return newSCV(out, false)
}

// VarPostOut implements symbolic.Graph.
func (g *Graph) VarPostOut(v symbolic.VariableId, s symbolic.SCV) symbolic.SCV {
	return g.VarPost(v, s).Minus(s)
}

// VarPreOut implements symbolic.Graph.
func (g *Graph) VarPreOut(v symbolic.VariableId, s symbolic.SCV) symbolic.SCV {
	return g.VarPre(v, s).Minus(s)
}

// VarCanPostOut implements symbolic.Graph.
func (g *Graph) VarCanPostOut(v symbolic.VariableId, s symbolic.SCV) symbolic.SCV {
	vi := g.checkVar(v)
	in, ok := s.(SCV)
	if !ok {
		return Empty()
	}
	out := mapset.NewThreadUnsafeSet[pair]()
	in.members.Each(func(p pair) bool {
		if tgt, ok := g.transitionVia(vi, p.state, p.color); ok {
			if !in.members.Contains(pair{state: tgt, color: p.color}) {
				out.Add(p)
			}
		}
		return false
	})
	return newSCV(out, false)
}

// VarCanPreOut implements symbolic.Graph.
func (g *Graph) VarCanPreOut(v symbolic.VariableId, s symbolic.SCV) symbolic.SCV {
	vi := g.checkVar(v)
	in, ok := s.(SCV)
	if !ok {
		return Empty()
	}
	out := mapset.NewThreadUnsafeSet[pair]()
	in.members.Each(func(p pair) bool {
		cand := withBit(p.state, vi, !bitAt(p.state, vi))
		if _, ok := g.transitionVia(vi, cand, p.color); ok {
			if !in.members.Contains(pair{state: cand, color: p.color}) {
				out.Add(p)
			}
		}
		return false
	})
	return newSCV(out, false)
}

// VarCanPostWithin implements symbolic.Graph.
func (g *Graph) VarCanPostWithin(v symbolic.VariableId, s symbolic.SCV) symbolic.SCV {
	vi := g.checkVar(v)
	in, ok := s.(SCV)
	if !ok {
		return Empty()
	}
	out := mapset.NewThreadUnsafeSet[pair]()
	in.members.Each(func(p pair) bool {
		if tgt, ok := g.transitionVia(vi, p.state, p.color); ok {
			if in.members.Contains(pair{state: tgt, color: p.color}) {
				out.Add(p)
			}
		}
		return false
	})
	return newSCV(out, false)
}

// VarCanPreWithin implements symbolic.Graph.
func (g *Graph) VarCanPreWithin(v symbolic.VariableId, s symbolic.SCV) symbolic.SCV {
	vi := g.checkVar(v)
	in, ok := s.(SCV)
	if !ok {
		return Empty()
	}
	out := mapset.NewThreadUnsafeSet[pair]()
	in.members.Each(func(p pair) bool {
		cand := withBit(p.state, vi, !bitAt(p.state, vi))
		if _, ok := g.transitionVia(vi, cand, p.color); ok {
			if in.members.Contains(pair{state: cand, color: p.color}) {
				out.Add(p)
			}
		}
		return false
	})
	return newSCV(out, false)
}

// Post implements symbolic.Graph.
func (g *Graph) Post(s symbolic.SCV) symbolic.SCV {
	out := Empty()
	var result symbolic.SCV = out
	for _, v := range g.Variables() {
		result = result.Union(g.VarPost(v, s))
	}
	return result
}

// Pre implements symbolic.Graph.
func (g *Graph) Pre(s symbolic.SCV) symbolic.SCV {
	out := Empty()
	var result symbolic.SCV = out
	for _, v := range g.Variables() {
		result = result.Union(g.VarPre(v, s))
	}
	return result
}

// Restrict implements symbolic.Graph.
func (g *Graph) Restrict(s symbolic.SCV) symbolic.Graph {
	in, ok := s.(SCV)
	if !ok {
		in = Empty()
	}
	universe := in
	if g.universe != nil {
		inter, _ := g.universe.Intersect(in).(SCV)
		universe = inter
	}
	return &Graph{stateVars: g.stateVars, colorVars: g.colorVars, updates: g.updates, universe: &universe}
}

// MkEmptyColoredVertices implements symbolic.Graph.
func (g *Graph) MkEmptyColoredVertices() symbolic.SCV { return Empty() }

// MkUnitColoredVertices implements symbolic.Graph.
func (g *Graph) MkUnitColoredVertices() symbolic.SCV {
	if g.universe != nil {
		return *g.universe
	}
	out := mapset.NewThreadUnsafeSet[pair]()
	for state := uint64(0); state < uint64(1)<<uint(g.stateVars); state++ {
		for color := uint64(0); color < uint64(1)<<uint(g.colorVars); color++ {
			out.Add(pair{state: state, color: color})
		}
	}
	return newSCV(out, false)
}
