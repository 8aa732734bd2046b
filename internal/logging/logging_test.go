package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("warn", &buf)

	l.Info("hidden")
	require.Zero(t, buf.Len())

	l.Warn("shown", "status", 400)
	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Equal(t, "shown", line["msg"])
	require.EqualValues(t, 400, line["status"])
}

func TestContextRoundTrip(t *testing.T) {
	l := Discard()
	ctx := IntoContext(context.Background(), l)
	require.Same(t, l, FromContext(ctx))
	require.Same(t, slog.Default(), FromContext(context.Background()))
}

func TestNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.log")
	l, closer, err := NewFile("debug", path)
	require.NoError(t, err)
	l.Debug("written")
	require.NoError(t, closer.Close())
	require.FileExists(t, path)
}
