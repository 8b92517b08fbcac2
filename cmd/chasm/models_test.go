package main

import (
	"testing"

	"github.com/sourceplane/chasm/internal/mod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractInstructionInfo(t *testing.T) {
	registry, err := mod.DefaultRegistry()
	require.NoError(t, err)

	info, err := ExtractInstructionInfo(registry, "appendrandint")
	require.NoError(t, err)
	assert.Equal(t, mod.KindList, info.Kind)

	var required, optional []string
	for _, p := range info.Required {
		required = append(required, p.Name)
	}
	for _, p := range info.Optional {
		optional = append(optional, p.Name)
	}
	assert.Equal(t, []string{"high", "low", "num"}, required)
	assert.Equal(t, []string{"xkey", "xprefix", "ykey"}, optional)

	info, err = ExtractInstructionInfo(registry, "noop")
	require.NoError(t, err)
	assert.Empty(t, info.Required)
	assert.Empty(t, info.Optional)

	_, err = ExtractInstructionInfo(registry, "explode")
	assert.Error(t, err)
}
