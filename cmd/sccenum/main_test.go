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

func TestParseSccAlgorithm(t *testing.T) {
	cases := []struct {
		in      string
		want    sccAlgorithm
		wantErr bool
	}{
		{"fwd-bwd", sccAlgoFwdBwd, false},
		{"fwd-bwd-bfs", sccAlgoFwdBwdBFS, false},
		{"chain", sccAlgoChain, false},
		{"bogus", 0, true},
	}
	for _, c := range cases {
		got, err := parseSccAlgorithm(c.in)
		if c.wantErr {
			assert.Error(t, err)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, c.want, got)
	}
}

func TestLoadNetworkCompilesFixture(t *testing.T) {
	path := writeFixture(t, referenceNetworkText)
	g, active, err := loadNetwork(path, true)
	require.NoError(t, err)
	assert.Equal(t, 3, g.VariableCount())
	assert.NotEmpty(t, active)
}

func TestLoadNetworkRejectsMissingFile(t *testing.T) {
	_, _, err := loadNetwork(filepath.Join(t.TempDir(), "missing.bn"), true)
	assert.Error(t, err)
}

func TestBuildGeneratorCoversEveryAlgorithm(t *testing.T) {
	path := writeFixture(t, referenceNetworkText)
	g, active, err := loadNetwork(path, true)
	require.NoError(t, err)

	for _, algo := range []sccAlgorithm{sccAlgoFwdBwd, sccAlgoFwdBwdBFS, sccAlgoChain} {
		gen, err := buildGenerator(g, active, algo, symbolic.TrimNone, true)
		require.NoError(t, err)
		require.NotNil(t, gen)
	}
}

func TestEnumerateRunsToExhaustion(t *testing.T) {
	path := writeFixture(t, referenceNetworkText)
	g, active, err := loadNetwork(path, true)
	require.NoError(t, err)

	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	gen, err := buildGenerator(g, active, sccAlgoFwdBwd, symbolic.TrimNone, false)
	require.NoError(t, err)

	require.NoError(t, enumerate(context.Background(), logger, gen, 0))
}
