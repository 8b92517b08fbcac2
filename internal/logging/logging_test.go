package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := Setup("debug", "json", &buf)
	require.NoError(t, err)

	logger.Debug().Str("mod", "a.mod").Msg("loaded")
	assert.Contains(t, buf.String(), `"mod":"a.mod"`)
	assert.Contains(t, buf.String(), `"message":"loaded"`)
}

func TestSetupLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger, err := Setup("WARN", "", &buf)
	require.NoError(t, err)

	logger.Info().Msg("hidden")
	assert.Empty(t, buf.String())

	logger.Warn().Msg("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestSetupText(t *testing.T) {
	var buf bytes.Buffer
	logger, err := Setup("", "text", &buf)
	require.NoError(t, err)

	logger.Info().Msg("hello")
	assert.Contains(t, buf.String(), "hello")
	assert.NotContains(t, buf.String(), `"message"`)
}

func TestSetupBadLevel(t *testing.T) {
	_, err := Setup("loud", "", &bytes.Buffer{})
	assert.Error(t, err)
}
