package naive

import mapset "github.com/deckarep/golang-set/v2"

// Singleton returns the SCV containing exactly one (state, color) member.
func Singleton(state, color uint64) SCV {
	m := mapset.NewThreadUnsafeSet[pair]()
	m.Add(pair{state: state, color: color})
	return newSCV(m, false)
}

// OfStates returns the SCV containing every (state, color) pair for
// states in the given slice, all under a single color (colour 0 is the
// conventional choice for unparameterized networks).
func OfStates(color uint64, states ...uint64) SCV {
	m := mapset.NewThreadUnsafeSet[pair]()
	for _, s := range states {
		m.Add(pair{state: s, color: color})
	}
	return newSCV(m, false)
}

// StateBit extracts whether bit i of state is set. Exposed for callers
// (bnparse, CLIs) that format or build states from named variables.
func StateBit(state uint64, i int) bool { return bitAt(state, i) }

// WithStateBit returns state with bit i set to v.
func WithStateBit(state uint64, i int, v bool) uint64 { return withBit(state, i, v) }

// States returns the distinct state values present in the SCV, ignoring
// colour. Intended for small, reference-sized sets (tests, CLI summaries).
func (s SCV) States() []uint64 {
	seen := mapset.NewThreadUnsafeSet[uint64]()
	s.members.Each(func(p pair) bool {
		seen.Add(p.state)
		return false
	})
	return seen.ToSlice()
}
