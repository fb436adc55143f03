package econ_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/fivetwenty-io/econ-client/pkg/econ"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZerologLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := econ.NewZerologLogger(zerolog.New(&buf).Level(zerolog.InfoLevel))

	logger.Debug("hidden", nil)
	logger.Warn("Retrying request", map[string]interface{}{"attempt": 2, "url": "https://api.econ.dev/v1/shops"})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]interface{}

	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "Retrying request", entry["message"])
	assert.InDelta(t, 2, entry["attempt"], 0)
	assert.Equal(t, "https://api.econ.dev/v1/shops", entry["url"])
}

func TestNopLogger(t *testing.T) {
	t.Parallel()

	var logger econ.Logger = econ.NopLogger{}

	assert.NotPanics(t, func() {
		logger.Error("ignored", map[string]interface{}{"k": "v"})
	})
}
