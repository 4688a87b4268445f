package trim_test

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/boolscc/bnparse"
	"github.com/katalvlaran/boolscc/symbolic"
	"github.com/katalvlaran/boolscc/symbolic/naive"
	"github.com/katalvlaran/boolscc/trim"
)

func sortedStates(t *testing.T, s symbolic.SCV) []uint64 {
	t.Helper()
	concrete, ok := s.(naive.SCV)
	require.True(t, ok, "expected naive.SCV, got %T", s)
	states := concrete.States()
	sort.Slice(states, func(i, j int) bool { return states[i] < states[j] })
	return states
}

func referenceConfig() symbolic.ReachabilityConfig {
	g := bnparse.ReferenceNetwork()
	return symbolic.ReachabilityConfig{Graph: g, ActiveVariables: g.Variables()}
}

func TestTrimNoneIsIdentity(t *testing.T) {
	cfg := referenceConfig()
	initial := naive.OfStates(0, 0b000, 0b001, 0b111)
	r := trim.New(symbolic.TrimNone, cfg, initial).Compute(context.Background())
	require.True(t, r.IsReady())
	assert.Equal(t, sortedStates(t, initial), sortedStates(t, r.Value()))
}

func TestTrimSourcesIsolatesAttractor(t *testing.T) {
	cfg := referenceConfig()
	// Forward reach from 100: {000,100,110,111}. 100 has no predecessor
	// anywhere so it's a relative source; once gone, 000 loses its only
	// in-universe predecessor and becomes one too. {110,111} is a genuine
	// 2-cycle and survives.
	initial := naive.OfStates(0, 0b000, 0b100, 0b110, 0b111)
	r := trim.New(symbolic.TrimSources, cfg, initial).Compute(context.Background())
	require.True(t, r.IsReady())
	assert.Equal(t, []uint64{0b110, 0b111}, sortedStates(t, r.Value()))
}

func TestTrimSinksEmptiesAnAcyclicUniverse(t *testing.T) {
	cfg := referenceConfig()
	// {000,001,010,011,100} is exactly the backward-reachable set from
	// 000, which contains no cycle at all; relative-sinks trimming peels
	// it away to nothing.
	initial := naive.OfStates(0, 0b000, 0b001, 0b010, 0b011, 0b100)
	r := trim.New(symbolic.TrimSinks, cfg, initial).Compute(context.Background())
	require.True(t, r.IsReady())
	assert.True(t, r.Value().IsEmpty())
}

func TestTrimBothOverFullSpaceFindsTheOnlyCycle(t *testing.T) {
	g := bnparse.ReferenceNetwork()
	cfg := symbolic.ReachabilityConfig{Graph: g, ActiveVariables: g.Variables()}
	r := trim.New(symbolic.TrimBoth, cfg, g.MkUnitColoredVertices()).Compute(context.Background())
	require.True(t, r.IsReady())
	assert.Equal(t, []uint64{0b110, 0b111}, sortedStates(t, r.Value()))
}

func TestTrimSnapshotRestoreRoundTrip(t *testing.T) {
	cfg := trim.Config{Reach: referenceConfig(), Setting: symbolic.TrimSources}
	initial := naive.OfStates(0, 0b000, 0b100, 0b110, 0b111)

	want := trim.New(symbolic.TrimSources, cfg.Reach, initial).Compute(context.Background())
	require.True(t, want.IsReady())

	partial := trim.New(symbolic.TrimSources, cfg.Reach, initial)
	r := partial.TryCompute(context.Background())
	require.True(t, r.IsWorking())

	data, err := partial.Snapshot()
	require.NoError(t, err)

	resumed, err := trim.Restore(cfg, data)
	require.NoError(t, err)

	got := resumed.Compute(context.Background())
	require.True(t, got.IsReady())
	assert.Equal(t, sortedStates(t, want.Value()), sortedStates(t, got.Value()))
}

func TestTrimMaxIterationsCancels(t *testing.T) {
	cfg := referenceConfig()
	cfg.MaxIterations = 1
	initial := naive.OfStates(0, 0b000, 0b001, 0b010, 0b011, 0b100)
	r := trim.New(symbolic.TrimSinks, cfg, initial).Compute(context.Background())
	require.True(t, r.IsCancelled())
	assert.Equal(t, "max_iterations", r.Reason())
}
