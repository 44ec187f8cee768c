package main

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nanobrick/herofx"
)

func execute(t *testing.T, args ...string) error {
	t.Helper()
	configPath, scriptPath, watch, verbose = "", "", false, false
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func TestHeadlessWritesPNG(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "frames", "hero.png")
	err := execute(t, "headless",
		"--frames", "5", "--width", "64", "--height", "48",
		"--out", out, "--log-file", filepath.Join(dir, "herofx.log"))
	require.NoError(t, err)

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())
	assert.Equal(t, 48, img.Bounds().Dy())
}

func TestConfigCommandRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "herofx.yaml")
	require.NoError(t, execute(t, "config", path, "--log-file", filepath.Join(dir, "herofx.log")))

	cfg, err := herofx.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, herofx.DefaultConfig(), cfg)
}

func TestWatchRequiresConfig(t *testing.T) {
	dir := t.TempDir()
	err := execute(t, "headless", "--watch", "--frames", "1",
		"--out", filepath.Join(dir, "x.png"), "--log-file", filepath.Join(dir, "herofx.log"))
	assert.ErrorContains(t, err, "--watch requires --config")
}

func TestHeadlessMissingScript(t *testing.T) {
	dir := t.TempDir()
	err := execute(t, "headless", "--frames", "1",
		"--script", filepath.Join(dir, "missing.json"),
		"--out", filepath.Join(dir, "x.png"), "--log-file", filepath.Join(dir, "herofx.log"))
	assert.ErrorContains(t, err, "read script")
}
