package cliutil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/boolscc/cmd/internal/cliutil"
)

func TestVerboseValueAbsentByDefault(t *testing.T) {
	var v cliutil.VerboseValue
	assert.False(t, v.Present())
	assert.Equal(t, "", v.Level())
}

func TestVerboseValueBareFlagSetsTrueWithNoLevel(t *testing.T) {
	var v cliutil.VerboseValue
	require.NoError(t, v.Set("true"))
	assert.True(t, v.Present())
	assert.Equal(t, "", v.Level())
}

func TestVerboseValueExplicitLevel(t *testing.T) {
	var v cliutil.VerboseValue
	require.NoError(t, v.Set("debug"))
	assert.True(t, v.Present())
	assert.Equal(t, "debug", v.Level())
	assert.Equal(t, "debug", v.String())
}

func TestVerboseValueIsBoolFlag(t *testing.T) {
	var v cliutil.VerboseValue
	assert.True(t, v.IsBoolFlag())
}

func TestVerboseFlagWiresDestination(t *testing.T) {
	var v cliutil.VerboseValue
	f := cliutil.VerboseFlag(&v)
	assert.Equal(t, "verbose", f.Name)
	assert.Contains(t, f.Aliases, "v")
	assert.Equal(t, &v, f.Value)
}
