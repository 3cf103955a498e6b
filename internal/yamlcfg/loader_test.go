package yamlcfg

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/idfgo/internal/testutil"
)

func TestParse(t *testing.T) {
	m, err := Parse([]byte(`
schema_dir: ./schemas
default_version: "8.6"
log_format: json
seeds:
  - type: Building
    fields:
      Name: HQ
      North Axis: 30
  - type: SimulationControl
publish:
  url: http://localhost:3000
  event: idf
  timeout: 2s
`))
	require.NoError(t, err)

	assert.Equal(t, "./schemas", m.SchemaDir)
	assert.Equal(t, "8.6", m.DefaultVersion)
	assert.Equal(t, "json", m.LogFormat)
	require.Len(t, m.Seeds, 2)
	assert.Equal(t, map[string]any{"Name": "HQ", "North Axis": 30}, m.Seeds[0].Fields)
	assert.NotNil(t, m.Seeds[1].Fields)
	require.NotNil(t, m.Publish)
	assert.Equal(t, "idf", m.Publish.Event)
	assert.Equal(t, 2*time.Second, m.Publish.Timeout)
}

func TestParse_Empty(t *testing.T) {
	m, err := Parse(nil)
	require.NoError(t, err)
	assert.Empty(t, m.Seeds)
	assert.Nil(t, m.Publish)
}

func TestParse_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		wantErr string
	}{
		{"unknown key", "colour: red", "field colour not found"},
		{"seed without type", "seeds:\n  - fields: {Name: x}", "seeds[0]: type must not be empty"},
		{"publish without url", "publish:\n  event: x", "publish: url must not be empty"},
		{"bad duration", "publish:\n  url: http://x\n  timeout: soon", "time.Duration"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestLoader_Load(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{
		"base.yaml":    "log_level: info\nseeds:\n  - type: Building\n",
		"override.yml": "log_level: debug\n",
	})

	m, err := NewLoader().Load(context.Background(), dir+"/base.yaml", dir+"/override.yml")
	require.NoError(t, err)
	assert.Equal(t, "debug", m.LogLevel)
	assert.Len(t, m.Seeds, 1)

	_, err = NewLoader().Load(context.Background(), dir+"/missing.yaml")
	assert.ErrorContains(t, err, "failed to read config")
}

func TestIsYAML(t *testing.T) {
	assert.True(t, IsYAML("a.yaml"))
	assert.True(t, IsYAML("A.YML"))
	assert.False(t, IsYAML("a.hcl"))
}
