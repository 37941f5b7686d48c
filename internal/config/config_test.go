package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geostates/internal/plot"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "shapefiles", cfg.Data.Dir)
	assert.Equal(t, "postal", cfg.Render.Labels)
	assert.Equal(t, "copper_r", cfg.Render.Colormap)
	assert.Equal(t, 10, cfg.Render.Bins)
	assert.Equal(t, "states.svg", cfg.Output.Path)

	o, err := cfg.Options()
	require.NoError(t, err)
	assert.Equal(t, plot.DefaultOptions(), o)
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.MkdirAll("configs", 0o755))
	require.NoError(t, os.WriteFile(filepath.Join("configs", "geostates.yaml"), []byte(`
data:
  dir: /srv/census
render:
  labels: both
  legend: colorbar
  bins: 4
  extra_regions: true
`), 0o644))
	t.Setenv("GEOSTATES_RENDER_BINS", "6")
	t.Setenv("GEOSTATES_RENDER_COLORMAP", "viridis")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/srv/census", cfg.Data.Dir)
	assert.Equal(t, "both", cfg.Render.Labels)
	assert.Equal(t, 6, cfg.Render.Bins)
	assert.Equal(t, "viridis", cfg.Render.Colormap)
	assert.True(t, cfg.Render.ExtraRegions)

	o, err := cfg.Options()
	require.NoError(t, err)
	assert.Equal(t, plot.LabelsBoth, o.Labels)
	assert.Equal(t, plot.LegendColorbar, o.Legend)
}

func TestLoadExplicitPath(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("render:\n  labels: names\n  bins: 0\nlog:\n  level: loud\n"), 0o644))
	cfg, err := Load(path)
	require.NoError(t, err)
	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "render: invalid labels")
	assert.Contains(t, err.Error(), "render.bins must be positive")
	assert.Contains(t, err.Error(), "log.level")
}

func TestOverrideBeforeValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "geostates.yaml")
	require.NoError(t, os.WriteFile(path, []byte("render:\n  labels: names\n"), 0o644))
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Error(t, cfg.Validate())

	cfg.Render.Labels = "values"
	require.NoError(t, cfg.Validate())
	o, err := cfg.Options()
	require.NoError(t, err)
	assert.Equal(t, plot.LabelsValues, o.Labels)
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}
