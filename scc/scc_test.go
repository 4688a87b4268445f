package scc_test

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/boolscc/bnparse"
	"github.com/katalvlaran/boolscc/reach"
	"github.com/katalvlaran/boolscc/scc"
	"github.com/katalvlaran/boolscc/symbolic"
	"github.com/katalvlaran/boolscc/symbolic/naive"
)

func sortedStates(t *testing.T, s symbolic.SCV) []uint64 {
	t.Helper()
	concrete, ok := s.(naive.SCV)
	require.True(t, ok, "expected naive.SCV, got %T", s)
	states := concrete.States()
	sort.Slice(states, func(i, j int) bool { return states[i] < states[j] })
	return states
}

type sccGenerator interface {
	Next(ctx context.Context) (symbolic.SCV, bool, error)
}

func collect(t *testing.T, gen sccGenerator) [][]uint64 {
	t.Helper()
	var out [][]uint64
	for {
		item, ok, err := gen.Next(context.Background())
		require.NoError(t, err)
		if !ok {
			break
		}
		out = append(out, sortedStates(t, item))
	}
	sort.Slice(out, func(i, j int) bool {
		if len(out[i]) != len(out[j]) {
			return len(out[i]) < len(out[j])
		}
		for k := range out[i] {
			if out[i][k] != out[j][k] {
				return out[i][k] < out[j][k]
			}
		}
		return false
	})
	return out
}

func referenceSccConfig() symbolic.SccConfig {
	g := bnparse.ReferenceNetwork()
	return symbolic.SccConfig{Graph: g, ActiveVariables: g.Variables()}
}

// The reference network's only cycle is the 2-state {110,111} attractor;
// every other state is acyclic, so forward-backward, its BFS variant, and
// chain must all report exactly that one SCC.
func TestForwardBackwardFindsTheOnlySCC(t *testing.T) {
	cfg := referenceSccConfig()
	g := cfg.Graph
	gen := scc.NewForwardBackward(cfg, reach.AlgoSaturation, g.MkUnitColoredVertices())
	got := collect(t, gen)
	assert.Equal(t, [][]uint64{{0b110, 0b111}}, got)
}

func TestForwardBackwardBFSAgreesWithSaturation(t *testing.T) {
	cfg := referenceSccConfig()
	g := cfg.Graph
	satGen := scc.NewForwardBackward(cfg, reach.AlgoSaturation, g.MkUnitColoredVertices())
	bfsGen := scc.NewForwardBackward(cfg, reach.AlgoBFS, g.MkUnitColoredVertices())
	assert.Equal(t, collect(t, satGen), collect(t, bfsGen))
}

func TestChainAgreesWithForwardBackward(t *testing.T) {
	cfg := referenceSccConfig()
	g := cfg.Graph
	fb := scc.NewForwardBackward(cfg, reach.AlgoSaturation, g.MkUnitColoredVertices())
	chain := scc.NewChain(cfg, g.MkUnitColoredVertices())
	assert.Equal(t, collect(t, fb), collect(t, chain))
}

// longLivedNetwork builds a 3-variable network with two structurally
// identical 2-cycles, {000,100} and {011,111}, where only the second has
// an escape edge out of each of its members (011->001, 111->101).
func longLivedNetwork(t *testing.T) *naive.Graph {
	t.Helper()
	g, err := bnparse.FromTransitions(3, [][2]uint64{
		{0b000, 0b100},
		{0b100, 0b000},
		{0b011, 0b111},
		{0b111, 0b011},
		{0b011, 0b001},
		{0b111, 0b101},
	})
	require.NoError(t, err)
	return g
}

func TestLongLivedFilterOffFindsBothCycles(t *testing.T) {
	g := longLivedNetwork(t)
	cfg := symbolic.SccConfig{Graph: g, ActiveVariables: g.Variables(), FilterLongLived: false}
	gen := scc.NewForwardBackward(cfg, reach.AlgoSaturation, g.MkUnitColoredVertices())
	got := collect(t, gen)
	assert.Equal(t, [][]uint64{{0b000, 0b100}, {0b011, 0b111}}, got)
}

func TestLongLivedFilterOnDropsTheEscapableCycle(t *testing.T) {
	g := longLivedNetwork(t)
	cfg := symbolic.SccConfig{Graph: g, ActiveVariables: g.Variables(), FilterLongLived: true}
	gen := scc.NewForwardBackward(cfg, reach.AlgoSaturation, g.MkUnitColoredVertices())
	got := collect(t, gen)
	assert.Equal(t, [][]uint64{{0b000, 0b100}}, got)
}

func TestTrimSourcesStillFindsTheSameSCC(t *testing.T) {
	g := bnparse.ReferenceNetwork()
	cfg := symbolic.SccConfig{Graph: g, ActiveVariables: g.Variables(), Trim: symbolic.TrimSources}
	gen := scc.NewForwardBackward(cfg, reach.AlgoSaturation, g.MkUnitColoredVertices())
	got := collect(t, gen)
	assert.Equal(t, [][]uint64{{0b110, 0b111}}, got)
}

func TestForwardBackwardSnapshotRestoreRoundTrip(t *testing.T) {
	cfg := referenceSccConfig()
	g := cfg.Graph
	universe := g.MkUnitColoredVertices()

	want := collect(t, scc.NewForwardBackward(cfg, reach.AlgoSaturation, universe))

	gen := scc.NewForwardBackward(cfg, reach.AlgoSaturation, universe)
	// Pull up to three items, snapshot, restore, and confirm the rest
	// agrees with an uninterrupted run.
	var collected [][]uint64
	for i := 0; i < 3; i++ {
		item, ok, err := gen.Next(context.Background())
		require.NoError(t, err)
		if !ok {
			break
		}
		collected = append(collected, sortedStates(t, item))
	}

	data, err := gen.Snapshot()
	if err != nil {
		// Already exhausted within the first 3 items; nothing left to
		// resume, the collected prefix is the whole answer.
		sortResults(collected)
		assert.Equal(t, want, collected)
		return
	}

	resumed, err := scc.RestoreForwardBackward(cfg, reach.AlgoSaturation, data)
	require.NoError(t, err)
	for {
		item, ok, err := resumed.Next(context.Background())
		require.NoError(t, err)
		if !ok {
			break
		}
		collected = append(collected, sortedStates(t, item))
	}
	sortResults(collected)
	assert.Equal(t, want, collected)
}

func sortResults(out [][]uint64) {
	sort.Slice(out, func(i, j int) bool {
		if len(out[i]) != len(out[j]) {
			return len(out[i]) < len(out[j])
		}
		for k := range out[i] {
			if out[i][k] != out[j][k] {
				return out[i][k] < out[j][k]
			}
		}
		return false
	})
}
