package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	Setup(&buf, "warn", "json")
	slog.Info("hidden")
	slog.Warn("region_missing", "code", "RI")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "region_missing", rec["msg"])
	assert.Equal(t, "RI", rec["code"])

	buf.Reset()
	Setup(&buf, "", "")
	slog.Debug("hidden")
	slog.Info("render_done", "regions", 51)
	assert.Contains(t, buf.String(), "msg=render_done regions=51")
}

func TestOpen(t *testing.T) {
	w, err := Open("")
	require.NoError(t, err)
	assert.NoError(t, w.Close())

	path := filepath.Join(t.TempDir(), "geostates.log")
	w, err = Open(path)
	require.NoError(t, err)
	_, err = w.Write([]byte("line\n"))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "line\n", string(data))

	_, err = Open(filepath.Join(t.TempDir(), "missing", "x.log"))
	assert.Error(t, err)
}
