package hcl

import (
	"context"
	"io/fs"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/idfgo/internal/testutil"
)

const fullConfig = `
schema_dir      = "/opt/idd"
default_version = "8.6"
log_level       = "debug"
log_format      = "json"

seed "Building" {
  fields = {
    Name         = "HQ"
    "North Axis" = 30
  }
}

seed "Timestep" {
  fields = { "Number of Timesteps per Hour" = 4 }
}

seed "SimulationControl" {}

publish {
  url       = "http://localhost:3000"
  namespace = "/models"
  timeout   = "5s"
}
`

func TestLoader_Load(t *testing.T) {
	ctx, _ := testutil.Context(t)
	path := testutil.WriteFile(t, "idfgo.hcl", fullConfig)

	m, err := NewLoader().Load(ctx, path)
	require.NoError(t, err)

	assert.Equal(t, "/opt/idd", m.SchemaDir)
	assert.Equal(t, "8.6", m.DefaultVersion)
	assert.Equal(t, "debug", m.LogLevel)
	assert.Equal(t, "json", m.LogFormat)

	require.Len(t, m.Seeds, 3)
	assert.Equal(t, "Building", m.Seeds[0].Type)
	assert.Equal(t, map[string]any{"Name": "HQ", "North Axis": 30.0}, m.Seeds[0].Fields)
	assert.Equal(t, map[string]any{"Number of Timesteps per Hour": 4.0}, m.Seeds[1].Fields)
	assert.Empty(t, m.Seeds[2].Fields)

	require.NotNil(t, m.Publish)
	assert.Equal(t, "http://localhost:3000", m.Publish.URL)
	assert.Equal(t, "/models", m.Publish.Namespace)
	assert.Equal(t, 5*time.Second, m.Publish.Timeout)
}

func TestLoader_Load_Directory(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{
		"a.hcl":        `log_level = "warn"`,
		"nested/b.hcl": `log_level = "error"` + "\n" + `seed "Zone" { fields = { Name = "Z" } }`,
		"notes.txt":    `not hcl`,
	})

	m, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, "error", m.LogLevel, "later files override earlier ones")
	require.Len(t, m.Seeds, 1)
	assert.Equal(t, "Zone", m.Seeds[0].Type)
}

func TestLoader_Load_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		content string
		wantErr string
	}{
		{"syntax", `log_level = `, "failed to parse HCL file"},
		{"unknown attribute", `colour = "red"`, "failed to decode HCL file"},
		{"fields not an object", `seed "Zone" { fields = "Z" }`, `seed "Zone": fields must be an object, got string`},
		{"bad timeout", "publish {\n  url = \"http://x\"\n  timeout = \"soon\"\n}", "publish timeout"},
		{"publish without url", `publish {}`, "failed to decode HCL file"},
	}

	t.Run("missing path", func(t *testing.T) {
		_, err := NewLoader().Load(context.Background(), filepath.Join(t.TempDir(), "missing.hcl"))
		require.Error(t, err)
		assert.ErrorIs(t, err, fs.ErrNotExist)
	})

	t.Run("explicit file of another format", func(t *testing.T) {
		path := testutil.WriteFile(t, "seeds.yaml", "log_level: warn\n")
		_, err := NewLoader().Load(context.Background(), path)
		assert.ErrorContains(t, err, "is not an .hcl file")
	})

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := testutil.WriteFile(t, "bad.hcl", tc.content)
			_, err := NewLoader().Load(context.Background(), path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}
