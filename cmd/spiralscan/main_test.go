package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func smallPass(t *testing.T) {
	t.Setenv("SPIRALSCAN_SEGMENT_COUNT", "200")
	t.Setenv("SPIRALSCAN_SECTORS", "2000")
	t.Setenv("SPIRALSCAN_READ_DELAY_MS", "0")
	t.Setenv("SPIRALSCAN_LOG_LEVEL", "off")
}

func TestRootCommandListsSubcommands(t *testing.T) {
	root := newRootCmd()

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Contains(t, names, "run")
	assert.Contains(t, names, "render")

	for _, flag := range []string{"config", "log-level", "json-log"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(flag), flag)
	}
}

func TestRenderWritesPNG(t *testing.T) {
	smallPass(t)
	dir := t.TempDir()
	out := filepath.Join(dir, "spiral.png")

	stdout, err := execute(t, "render",
		"--config", filepath.Join(dir, "missing.json"),
		"--out", out,
		"--width", "400",
		"--height", "300",
	)
	require.NoError(t, err)
	assert.Contains(t, stdout, "readable")

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()

	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 400, img.Bounds().Dx())
	assert.Equal(t, 300, img.Bounds().Dy())
}

func TestRenderReadsConfigFile(t *testing.T) {
	smallPass(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "spiralscan.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"start_radius": 12, "segment_size": 4}`), 0o600))

	_, err := execute(t, "render", "--config", path, "--out", filepath.Join(dir, "out.png"))
	require.NoError(t, err)
}

func TestRenderRejectsInvalidConfig(t *testing.T) {
	smallPass(t)
	t.Setenv("SPIRALSCAN_SEGMENT_COUNT", "0")
	dir := t.TempDir()

	_, err := execute(t, "render", "--config", filepath.Join(dir, "missing.json"), "--out", filepath.Join(dir, "out.png"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation")

	_, statErr := os.Stat(filepath.Join(dir, "out.png"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestLogLevelFlagOverridesConfig(t *testing.T) {
	smallPass(t)
	dir := t.TempDir()

	_, err := execute(t, "render",
		"--config", filepath.Join(dir, "missing.json"),
		"--log-level", "debug",
		"--out", filepath.Join(dir, "out.png"),
	)
	require.NoError(t, err)
	assert.Equal(t, "debug", logLevel)
}

func TestRenderReportsUnwritableOutput(t *testing.T) {
	smallPass(t)
	dir := t.TempDir()

	_, err := execute(t, "render",
		"--config", filepath.Join(dir, "missing.json"),
		"--out", filepath.Join(dir, "no-such-dir", "out.png"),
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create")
}
