package reach_test

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/boolscc/bnparse"
	"github.com/katalvlaran/boolscc/reach"
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

func referenceConfig() symbolic.ReachabilityConfig {
	g := bnparse.ReferenceNetwork()
	return symbolic.ReachabilityConfig{Graph: g, ActiveVariables: g.Variables()}
}

func TestForwardSaturationFromAllFourHundred(t *testing.T) {
	cfg := referenceConfig()
	initial := naive.Singleton(0b100, 0)
	r := reach.NewForwardSaturation(cfg, initial).Compute(context.Background())
	require.True(t, r.IsReady())
	assert.Equal(t, []uint64{0b000, 0b100, 0b110, 0b111}, sortedStates(t, r.Value()))
}

func TestForwardBFSAgreesWithSaturation(t *testing.T) {
	cfg := referenceConfig()
	initial := naive.Singleton(0b100, 0)
	sat := reach.NewForwardSaturation(cfg, initial).Compute(context.Background())
	bfs := reach.NewForwardBFS(cfg, initial).Compute(context.Background())
	require.True(t, sat.IsReady())
	require.True(t, bfs.IsReady())
	assert.Equal(t, sortedStates(t, sat.Value()), sortedStates(t, bfs.Value()))
}

func TestBackwardSaturationToState(t *testing.T) {
	cfg := referenceConfig()
	initial := naive.Singleton(0b110, 0)
	r := reach.NewBackwardSaturation(cfg, initial).Compute(context.Background())
	require.True(t, r.IsReady())
	assert.Equal(t, []uint64{0b011, 0b100, 0b101, 0b110, 0b111}, sortedStates(t, r.Value()))
}

func TestBackwardBFSAgreesWithSaturation(t *testing.T) {
	cfg := referenceConfig()
	initial := naive.Singleton(0b110, 0)
	sat := reach.NewBackwardSaturation(cfg, initial).Compute(context.Background())
	bfs := reach.NewBackwardBFS(cfg, initial).Compute(context.Background())
	require.True(t, sat.IsReady())
	require.True(t, bfs.IsReady())
	assert.Equal(t, sortedStates(t, sat.Value()), sortedStates(t, bfs.Value()))
}

func TestForwardReachabilityInitialInclusion(t *testing.T) {
	cfg := referenceConfig()
	initial := naive.Singleton(0b001, 0)
	r := reach.NewForwardSaturation(cfg, initial).Compute(context.Background())
	require.True(t, r.IsReady())
	assert.True(t, initial.IsSubsetOf(r.Value()))
}

func TestForwardReachabilityEmptyInEmptyOut(t *testing.T) {
	g := bnparse.ReferenceNetwork()
	cfg := symbolic.ReachabilityConfig{Graph: g, ActiveVariables: g.Variables()}
	r := reach.NewForwardSaturation(cfg, g.MkEmptyColoredVertices()).Compute(context.Background())
	require.True(t, r.IsReady())
	assert.True(t, r.Value().IsEmpty())
}

func TestReachabilityIsIdempotentAtFixpoint(t *testing.T) {
	cfg := referenceConfig()
	initial := naive.Singleton(0b100, 0)
	once := reach.NewForwardSaturation(cfg, initial).Compute(context.Background())
	require.True(t, once.IsReady())

	// Re-running forward reachability from an already-closed set changes
	// nothing further.
	twice := reach.NewForwardSaturation(cfg, once.Value()).Compute(context.Background())
	require.True(t, twice.IsReady())
	assert.Equal(t, sortedStates(t, once.Value()), sortedStates(t, twice.Value()))
}

func TestReachabilitySnapshotRestoreRoundTrip(t *testing.T) {
	g := bnparse.ReferenceNetwork()
	cfg := reach.Config{
		Reach: symbolic.ReachabilityConfig{Graph: g, ActiveVariables: g.Variables()},
		Mode:  reach.ModeForward,
		Algo:  reach.AlgoSaturation,
	}
	initial := naive.Singleton(0b100, 0)

	want := reach.NewForwardSaturation(cfg.Reach, initial).Compute(context.Background())
	require.True(t, want.IsReady())

	partial := reach.NewForwardSaturation(cfg.Reach, initial)
	r := partial.TryCompute(context.Background())
	require.True(t, r.IsWorking())

	data, err := partial.Snapshot()
	require.NoError(t, err)

	resumed, err := reach.RestoreReachability(cfg, data)
	require.NoError(t, err)

	got := resumed.Compute(context.Background())
	require.True(t, got.IsReady())
	assert.Equal(t, sortedStates(t, want.Value()), sortedStates(t, got.Value()))
}

func TestBackwardTrapGreatestForwardClosedSubset(t *testing.T) {
	g := bnparse.ReferenceNetwork()
	cfg := symbolic.ReachabilityConfig{Graph: g, ActiveVariables: g.Variables()}
	// {110, 111} is forward-closed (it's an attractor); adding 100 (which
	// can escape to 000, outside the set) should be trapped away.
	initial := naive.OfStates(0, 0b100, 0b110, 0b111)
	r := reach.NewBackwardTrap(cfg, initial).Compute(context.Background())
	require.True(t, r.IsReady())
	assert.Equal(t, []uint64{0b110, 0b111}, sortedStates(t, r.Value()))
}

func TestForwardTrapGreatestBackwardClosedSubset(t *testing.T) {
	g := bnparse.ReferenceNetwork()
	cfg := symbolic.ReachabilityConfig{Graph: g, ActiveVariables: g.Variables()}
	// {000,001,010,011,100} is exactly the backward-reachable set from
	// 000 (every predecessor of every member is already a member), so it
	// is already backward-closed and survives ForwardTrap unchanged.
	initial := naive.OfStates(0, 0b000, 0b001, 0b010, 0b011, 0b100)
	r := reach.NewForwardTrap(cfg, initial).Compute(context.Background())
	require.True(t, r.IsReady())
	assert.ElementsMatch(t, []uint64{0b000, 0b001, 0b010, 0b011, 0b100}, sortedStates(t, r.Value()))
}

func TestMaxIterationsCancelsReachability(t *testing.T) {
	g := bnparse.ReferenceNetwork()
	cfg := symbolic.ReachabilityConfig{Graph: g, ActiveVariables: g.Variables(), MaxIterations: 1}
	initial := naive.Singleton(0b100, 0)
	r := reach.NewForwardSaturation(cfg, initial).Compute(context.Background())
	require.True(t, r.IsCancelled())
	assert.Equal(t, "max_iterations", r.Reason())
}
