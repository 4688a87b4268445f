package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/boolscc/attractor"
	"github.com/katalvlaran/boolscc/symbolic"
)

const referenceNetworkText = `
vars: x0 x1 x2
x0: x2 & (x0 ^ x1)
x1: x2
x2: (x0 & x1) | (x0 & x2) | (x1 & x2)
`

func writeFixture(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "network.bn")
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
	return path
}

func TestParseAttractorAlgorithm(t *testing.T) {
	got, err := parseAttractorAlgorithm("xie-beerel")
	require.NoError(t, err)
	assert.False(t, got)

	got, err = parseAttractorAlgorithm("itgr-xie-beerel")
	require.NoError(t, err)
	assert.True(t, got)

	_, err = parseAttractorAlgorithm("bogus")
	assert.Error(t, err)
}

func TestLoadNetworkCompilesFixture(t *testing.T) {
	path := writeFixture(t, referenceNetworkText)
	g, active, err := loadNetwork(path, true)
	require.NoError(t, err)
	assert.Equal(t, 3, g.VariableCount())
	assert.NotEmpty(t, active)
}

func TestReduceWithITGRNarrowsConfig(t *testing.T) {
	path := writeFixture(t, referenceNetworkText)
	g, active, err := loadNetwork(path, true)
	require.NoError(t, err)

	cfg := symbolic.AttractorConfig{Graph: g, ActiveVariables: active}
	universe := g.MkUnitColoredVertices()

	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	reduced, remaining, err := reduceWithITGR(context.Background(), logger, cfg, universe)
	require.NoError(t, err)
	assert.NotNil(t, remaining)
	assert.NotNil(t, reduced.Graph)
}

func TestEnumerateWithAndWithoutITGRSucceeds(t *testing.T) {
	path := writeFixture(t, referenceNetworkText)
	g, active, err := loadNetwork(path, true)
	require.NoError(t, err)

	cfg := symbolic.AttractorConfig{Graph: g, ActiveVariables: active}
	universe := g.MkUnitColoredVertices()

	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	plain := attractor.New(cfg, universe)
	require.NoError(t, enumerate(context.Background(), logger, plain, 0))

	reduced, remaining, err := reduceWithITGR(context.Background(), logger, cfg, universe)
	require.NoError(t, err)
	withItgr := attractor.New(reduced, remaining)
	require.NoError(t, enumerate(context.Background(), logger, withItgr, 0))
}
