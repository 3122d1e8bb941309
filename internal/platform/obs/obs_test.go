package obs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLogs(t *testing.T, level string) *bytes.Buffer {
	t.Helper()

	prevLogger, prevLevel := log.Logger, zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = prevLogger
		zerolog.SetGlobalLevel(prevLevel)
	})

	var buf bytes.Buffer
	require.NoError(t, SetupLogger(&buf, level, "json"))
	return &buf
}

func TestSetupLoggerLevels(t *testing.T) {
	buf := captureLogs(t, "warn")

	log.Info().Msg("hidden")
	log.Warn().Msg("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestSetupLoggerRejectsUnknownLevel(t *testing.T) {
	captureLogs(t, "info")
	assert.Error(t, SetupLogger(&bytes.Buffer{}, "loud", ""))
}

func TestTimeLogsRunIDAndError(t *testing.T) {
	buf := captureLogs(t, "debug")
	ctx := WithRunID(context.Background(), "run-1")
	assert.Equal(t, "run-1", RunID(ctx))
	assert.Empty(t, RunID(context.Background()))

	func() (err error) {
		defer Time(ctx, "unit.op")(&err)
		return errors.New("boom")
	}()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "run-1", entry["run_id"])
	assert.Equal(t, "unit.op", entry["op"])
	assert.Equal(t, "boom", entry["error"])
}
