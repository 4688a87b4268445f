// Package naive is a small, explicit (non-symbolic) reference
// implementation of the symbolic.SCV / symbolic.Graph contracts.
//
// It exists only to exercise and test the algorithmic core without a real
// BDD library: every (state, colour) pair is tracked individually in a
// github.com/deckarep/golang-set/v2 set, which is exact but exponential in
// the number of variables and parameters. It is deliberately unsuited to
// anything beyond the bundled reference network and small test fixtures —
// the same role original_source's reachability_utils/algorithm_naive.rs
// plays for the Rust implementation it was distilled from.
//
// State variable i occupies bit i of the State field of a pair; parameter
// (uninterpreted 0-ary function) j occupies bit j of the Color field.
// Both are capped at MaxVariables bits.
package naive

import (
	"math/big"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/katalvlaran/boolscc/symbolic"
)

// MaxVariables bounds how many state variables or parameters this backend
// can represent (it packs each dimension into a uint64).
const MaxVariables = 63

// UpdateFunc computes variable v's next value given the current state and
// colour (parameter valuation) bits.
type UpdateFunc func(state, color uint64) bool

// pair is a single (state, colour) member.
type pair struct {
	state uint64
	color uint64
}

// SCV is the naive backend's symbolic.SCV implementation.
type SCV struct {
	members mapset.Set[pair]
	// colorOnly marks a value produced by Colors(): members' state field
	// is meaningless and only the color field is significant. Such a
	// value must only be passed back into IntersectColors/MinusColors.
	colorOnly bool
}

func newSCV(members mapset.Set[pair], colorOnly bool) SCV {
	return SCV{members: members, colorOnly: colorOnly}
}

// Empty returns the empty SCV.
func Empty() SCV {
	return newSCV(mapset.NewThreadUnsafeSet[pair](), false)
}

func (s SCV) asSCV(other symbolic.SCV) (SCV, bool) {
	o, ok := other.(SCV)
	return o, ok
}

// IsEmpty implements symbolic.SCV.
func (s SCV) IsEmpty() bool { return s.members.Cardinality() == 0 }

// Equal implements symbolic.SCV.
func (s SCV) Equal(other symbolic.SCV) bool {
	o, ok := s.asSCV(other)
	if !ok {
		return false
	}
	return s.members.Equal(o.members)
}

// Union implements symbolic.SCV.
func (s SCV) Union(other symbolic.SCV) symbolic.SCV {
	o, ok := s.asSCV(other)
	if !ok {
		return s
	}
	return newSCV(s.members.Union(o.members), s.colorOnly)
}

// Intersect implements symbolic.SCV.
func (s SCV) Intersect(other symbolic.SCV) symbolic.SCV {
	o, ok := s.asSCV(other)
	if !ok {
		return Empty()
	}
	return newSCV(s.members.Intersect(o.members), s.colorOnly)
}

// Minus implements symbolic.SCV.
func (s SCV) Minus(other symbolic.SCV) symbolic.SCV {
	o, ok := s.asSCV(other)
	if !ok {
		return s
	}
	return newSCV(s.members.Difference(o.members), s.colorOnly)
}

// IsSubsetOf implements symbolic.SCV.
func (s SCV) IsSubsetOf(other symbolic.SCV) bool {
	o, ok := s.asSCV(other)
	if !ok {
		return false
	}
	return s.members.IsSubset(o.members)
}

// Cardinality implements symbolic.SCV, returning an exact count.
func (s SCV) Cardinality() *big.Int {
	return big.NewInt(int64(s.members.Cardinality()))
}

// SymbolicSize implements symbolic.SCV. The naive backend has no BDD node
// graph, so it reports the member count as a stand-in cost measure.
func (s SCV) SymbolicSize() int { return s.members.Cardinality() }

// PickVertex implements symbolic.SCV.
func (s SCV) PickVertex() symbolic.SCV {
	if s.IsEmpty() {
		return Empty()
	}
	var one pair
	s.members.Each(func(p pair) bool {
		one = p
		return true
	})
	singleton := mapset.NewThreadUnsafeSet[pair]()
	singleton.Add(one)
	return newSCV(singleton, s.colorOnly)
}

// Colors implements symbolic.SCV, projecting onto the colour dimension.
func (s SCV) Colors() symbolic.SCV {
	out := mapset.NewThreadUnsafeSet[pair]()
	s.members.Each(func(p pair) bool {
		out.Add(pair{state: 0, color: p.color})
		return false
	})
	return newSCV(out, true)
}

// IntersectColors implements symbolic.SCV. colors must be a value
// previously returned by Colors (or composed from such values).
func (s SCV) IntersectColors(colors symbolic.SCV) symbolic.SCV {
	c, ok := s.asSCV(colors)
	if !ok {
		return Empty()
	}
	allowed := mapset.NewThreadUnsafeSet[uint64]()
	c.members.Each(func(p pair) bool {
		allowed.Add(p.color)
		return false
	})
	out := mapset.NewThreadUnsafeSet[pair]()
	s.members.Each(func(p pair) bool {
		if allowed.Contains(p.color) {
			out.Add(p)
		}
		return false
	})
	return newSCV(out, s.colorOnly)
}

// MinusColors implements symbolic.SCV.
func (s SCV) MinusColors(colors symbolic.SCV) symbolic.SCV {
	c, ok := s.asSCV(colors)
	if !ok {
		return s
	}
	blocked := mapset.NewThreadUnsafeSet[uint64]()
	c.members.Each(func(p pair) bool {
		blocked.Add(p.color)
		return false
	})
	out := mapset.NewThreadUnsafeSet[pair]()
	s.members.Each(func(p pair) bool {
		if !blocked.Contains(p.color) {
			out.Add(p)
		}
		return false
	})
	return newSCV(out, s.colorOnly)
}

// bitAt returns bit i of mask.
func bitAt(mask uint64, i int) bool { return mask&(uint64(1)<<uint(i)) != 0 }

// withBit returns mask with bit i set to v.
func withBit(mask uint64, i int, v bool) uint64 {
	if v {
		return mask | (uint64(1) << uint(i))
	}
	return mask &^ (uint64(1) << uint(i))
}
