package attractor_test

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/boolscc/attractor"
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

type attractorGenerator interface {
	Next(ctx context.Context) (symbolic.SCV, bool, error)
}

func collect(t *testing.T, gen attractorGenerator) [][]uint64 {
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

func referenceAttractorConfig() symbolic.AttractorConfig {
	g := bnparse.ReferenceNetwork()
	return symbolic.AttractorConfig{Graph: g, ActiveVariables: g.Variables()}
}

// The reference network has exactly two attractors: the absorbing
// singleton {000} (no outgoing transitions at all) and the {110,111}
// 2-cycle.
func TestXieBeerelFindsBothAttractors(t *testing.T) {
	cfg := referenceAttractorConfig()
	gen := attractor.New(cfg, cfg.Graph.MkUnitColoredVertices())
	got := collect(t, gen)
	assert.Equal(t, [][]uint64{{0b000}, {0b110, 0b111}}, got)
}

func TestXieBeerelAgreesWithItgrPreprocessing(t *testing.T) {
	cfg := referenceAttractorConfig()
	universe := cfg.Graph.MkUnitColoredVertices()

	plain := collect(t, attractor.New(cfg, universe))

	comp := attractor.NewITGR(cfg, universe)
	r := comp.Compute(context.Background())
	require.True(t, r.IsReady())
	result := r.Value()

	reduced := symbolic.AttractorConfig{
		Graph:           cfg.Graph.Restrict(result.Remaining),
		ActiveVariables: result.ActiveVars,
	}
	withItgr := collect(t, attractor.New(reduced, result.Remaining))

	assert.Equal(t, plain, withItgr)
}

// The cyclic attractor {110,111} is exactly the single SCC the scc
// package reports for this network; the singleton sink {000} is also an
// attractor (it has no successors) but is trivial and so never reported
// by SCC enumeration.
func TestXieBeerelCyclicAttractorAgreesWithSCCEnumeration(t *testing.T) {
	g := bnparse.ReferenceNetwork()
	sccCfg := symbolic.SccConfig{Graph: g, ActiveVariables: g.Variables()}
	sccGen := scc.NewForwardBackward(sccCfg, reach.AlgoSaturation, g.MkUnitColoredVertices())
	sccItem, ok, err := sccGen.Next(context.Background())
	require.NoError(t, err)
	require.True(t, ok)

	attrCfg := symbolic.AttractorConfig{Graph: g, ActiveVariables: g.Variables()}
	got := collect(t, attractor.New(attrCfg, g.MkUnitColoredVertices()))

	assert.Contains(t, got, sortedStates(t, sccItem))
}

func TestItgrPrunesVariablesThatCannotFireInsideRetainedSet(t *testing.T) {
	cfg := referenceAttractorConfig()
	universe := cfg.Graph.MkUnitColoredVertices()
	r := attractor.NewITGR(cfg, universe).Compute(context.Background())
	require.True(t, r.IsReady())
	// ITGR narrows the reference network down to its two attractors,
	// {000} and {110,111}. Inside that set only variable 0 can fire
	// (110 <-> 111), so variables 1 and 2 are pruned.
	assert.Equal(t, []symbolic.VariableId{0}, r.Value().ActiveVars)
}

func TestXieBeerelSnapshotRestoreRoundTrip(t *testing.T) {
	cfg := referenceAttractorConfig()
	universe := cfg.Graph.MkUnitColoredVertices()

	want := collect(t, attractor.New(cfg, universe))

	gen := attractor.New(cfg, universe)
	item, ok, err := gen.Next(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	var collected [][]uint64
	collected = append(collected, sortedStates(t, item))

	data, err := gen.Snapshot()
	require.NoError(t, err)

	resumed, err := attractor.Restore(cfg, data)
	require.NoError(t, err)
	for {
		item, ok, err := resumed.Next(context.Background())
		require.NoError(t, err)
		if !ok {
			break
		}
		collected = append(collected, sortedStates(t, item))
	}
	sort.Slice(collected, func(i, j int) bool {
		if len(collected[i]) != len(collected[j]) {
			return len(collected[i]) < len(collected[j])
		}
		for k := range collected[i] {
			if collected[i][k] != collected[j][k] {
				return collected[i][k] < collected[j][k]
			}
		}
		return false
	})
	assert.Equal(t, want, collected)
}

func TestItgrSnapshotRestoreRoundTrip(t *testing.T) {
	cfg := referenceAttractorConfig()
	universe := cfg.Graph.MkUnitColoredVertices()

	want := attractor.NewITGR(cfg, universe).Compute(context.Background())
	require.True(t, want.IsReady())

	partial := attractor.NewITGR(cfg, universe)
	r := partial.TryCompute(context.Background())
	require.True(t, r.IsWorking())

	data, err := partial.Snapshot()
	require.NoError(t, err)

	resumed, err := attractor.RestoreITGR(cfg, data)
	require.NoError(t, err)

	got := resumed.Compute(context.Background())
	require.True(t, got.IsReady())
	assert.Equal(t, sortedStates(t, want.Value().Remaining), sortedStates(t, got.Value().Remaining))
	assert.Equal(t, want.Value().ActiveVars, got.Value().ActiveVars)
}

func TestXieBeerelEmptyUniverseYieldsNoItems(t *testing.T) {
	cfg := referenceAttractorConfig()
	gen := attractor.New(cfg, cfg.Graph.MkEmptyColoredVertices())
	got := collect(t, gen)
	assert.Empty(t, got)
}
