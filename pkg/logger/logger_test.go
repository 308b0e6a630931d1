package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewLogger_Extractors(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := newLogger(&buf, Config{Format: FormatJSON, Level: slog.LevelInfo}, FlowIDExtractor, ProviderExtractor, nil)

	ctx := WithProvider(WithFlowID(context.Background(), "flow-1"), "github")
	log.InfoContext(ctx, "callback received")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	require.Equal(t, "callback received", rec["msg"])
	require.Equal(t, "flow-1", rec["flow_id"])
	require.Equal(t, "github", rec["oauth_provider"])
}

func TestNewLogger_LevelAndFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := newLogger(&buf, Config{Format: FormatText, Level: slog.LevelWarn})

	log.Info("dropped")
	require.Empty(t, buf.String())

	log.Warn("kept", "step", "token")
	require.Contains(t, buf.String(), "msg=kept")
	require.Contains(t, buf.String(), "step=token")
}

func TestExtractors_EmptyContext(t *testing.T) {
	t.Parallel()

	_, ok := FlowIDExtractor(context.Background())
	require.False(t, ok)
	_, ok = ProviderExtractor(WithProvider(context.Background(), ""))
	require.False(t, ok)
}

type failingHandler struct{ slog.Handler }

func (failingHandler) Handle(context.Context, slog.Record) error { return errors.New("boom") }

func TestMultiHandler_ContinuesAfterFailure(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	h := newMultiHandler(failingHandler{slog.NewTextHandler(&bytes.Buffer{}, nil)}, slog.NewTextHandler(&buf, nil))

	err := h.Handle(context.Background(), slog.NewRecord(time.Time{}, slog.LevelInfo, "hello", 0))
	require.Error(t, err)
	require.Contains(t, buf.String(), "msg=hello")
}

func TestLevelsFrom(t *testing.T) {
	t.Parallel()

	require.Equal(t, []slog.Level{slog.LevelWarn, slog.LevelError}, levelsFrom(slog.LevelWarn))
	require.Equal(t, []slog.Level{slog.LevelError}, levelsFrom(slog.LevelError))
}
