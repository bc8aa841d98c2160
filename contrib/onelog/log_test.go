package onelog_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	. "github.com/quenbyako/accountcache/contrib/onelog"
)

func newJSONLogger(t *testing.T, level slog.Level) (Logger, *bytes.Buffer) {
	t.Helper()

	var buf bytes.Buffer
	h := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: level})

	return Wrap(h), &buf
}

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	var res map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &res))
	delete(res, "time")

	return res
}

func TestEventAttributes(t *testing.T) {
	log, buf := newJSONLogger(t, slog.LevelDebug)

	log.Info().
		Ctx(t.Context()).
		Str("event_type", "refresh.accounts_committed").
		Int("visible", 2).
		Bool("first", true).
		Dur("took", 1500*time.Millisecond).
		Strs("patterns", []string{"*@example.com"}).
		Any("context", map[string]any{"total": 3}).
		Msgf("updated %d accounts", 2)

	require.Equal(t, map[string]any{
		"level":      "INFO",
		"msg":        "updated 2 accounts",
		"event_type": "refresh.accounts_committed",
		"visible":    float64(2),
		"first":      true,
		"took":       float64(1500 * time.Millisecond),
		"patterns":   []any{"*@example.com"},
		"context":    map[string]any{"total": float64(3)},
	}, decode(t, buf))
}

func TestErrors(t *testing.T) {
	log, buf := newJSONLogger(t, slog.LevelDebug)

	log.Err(errors.New("boom")).AnErr("cause", nil).Msg("failed")

	require.Equal(t, map[string]any{
		"level": "ERROR",
		"msg":   "failed",
		"error": "boom",
		"cause": "<nil>",
	}, decode(t, buf))
}

func TestLevelFiltering(t *testing.T) {
	log, buf := newJSONLogger(t, slog.LevelWarn)

	ev := log.Debug()
	require.False(t, ev.Enabled())
	ev.Str("key", "value").Msg("dropped")
	log.Info().Send()

	require.Zero(t, buf.Len())
	require.True(t, log.Warn().Enabled())
}

func TestDiscard(t *testing.T) {
	for _, log := range []Logger{Discard(), Wrap(nil)} {
		ev := log.Error()
		require.False(t, ev.Enabled())
		require.NotPanics(t, func() {
			ev.Stringer("nil", nil).Caller(1).Msg("nothing")
		})
	}
}
