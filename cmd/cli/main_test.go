package main

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/idfgo/internal/cli"
	"github.com/vk/idfgo/internal/testutil"
)

func TestRun_StartupError(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	invalidHCL := `
		seed "Zone" {
			fields = {
		// Missing closing braces here
	`
	cfgPath := testutil.WriteFile(t, "main.hcl", invalidHCL)
	out := &bytes.Buffer{}

	// --- Act ---
	runErr := run(context.Background(), out, []string{"--config", cfgPath, "--find", "zone"})

	// --- Assert ---
	require.Error(t, runErr)
	var exitErr *cli.ExitError
	require.True(t, errors.As(runErr, &exitErr))
	assert.Equal(t, 2, exitErr.Code)
	assert.Contains(t, exitErr.Message, "A critical startup error occurred")
	assert.Contains(t, exitErr.Message, "failed to load configuration")
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	err := run(context.Background(), out, []string{"-h"})

	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	err := run(context.Background(), &bytes.Buffer{}, []string{"--this-is-not-a-valid-flag"})

	require.Error(t, err, "run() should return an error when argument parsing fails")
	require.Contains(t, err.Error(), "unknown flag: --this-is-not-a-valid-flag")
}

func TestRun_Find(t *testing.T) {
	t.Parallel()

	cfgPath := testutil.WriteFile(t, "idfgo.yaml", "log_level: error\n")
	out := &bytes.Buffer{}

	err := run(context.Background(), out, []string{"--config", cfgPath, "--find", "Surface:D"})

	require.NoError(t, err)
	assert.Contains(t, out.String(), "buildingsurface:detailed\n")
}

func TestFileLoader_MixedFormats(t *testing.T) {
	t.Parallel()

	yamlPath := testutil.WriteFile(t, "seeds.yaml", `
log_level: warn
seeds:
  - type: Zone
    fields: {Name: Core}
publish:
  url: http://localhost:3000
`)
	hclPath := testutil.WriteFile(t, "log.hcl", `
log_level = "error"
seed "Building" {
  fields = { Name = "HQ" }
}
`)

	m, err := newFileLoader().Load(context.Background(), yamlPath, hclPath)
	require.NoError(t, err)

	assert.Equal(t, "error", m.LogLevel, "later paths override earlier ones")
	require.Len(t, m.Seeds, 2)
	assert.Equal(t, "Zone", m.Seeds[0].Type)
	assert.Equal(t, "Building", m.Seeds[1].Type)
	require.NotNil(t, m.Publish)
	assert.Equal(t, "http://localhost:3000", m.Publish.URL)
}

func TestRun_MissingConfigPath(t *testing.T) {
	t.Parallel()

	hclPath := testutil.WriteFile(t, "log.hcl", `log_level = "error"`)
	missing := filepath.Join(t.TempDir(), "seeds.yml")

	err := run(context.Background(), &bytes.Buffer{}, []string{"-c", hclPath, "-c", missing, "--find", "zone"})

	var exitErr *cli.ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 2, exitErr.Code)
	assert.Contains(t, exitErr.Message, "seeds.yml")
}
