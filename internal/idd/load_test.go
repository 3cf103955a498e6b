package idd

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/idfgo/schemas"
)

func TestNormalizeVersion(t *testing.T) {
	testCases := map[string]string{
		"8.6":     "8.6.0",
		" 8.6 ":   "8.6.0",
		"8.6.0":   "8.6.0",
		"9.0.1":   "9.0.1",
		"8":       "8",
		"8.6.0.1": "8.6.0.1",
	}
	for in, want := range testCases {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, want, NormalizeVersion(in))
		})
	}
}

func TestLoad_UnsupportedVersion(t *testing.T) {
	fsys := fstest.MapFS{
		"1.0.0.idd": {Data: []byte("Version,\n  A1 ; \\field Version Identifier\n")},
	}

	_, err := Load(fsys, "2.0")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedVersion)
	assert.Contains(t, err.Error(), "2.0.0.idd")
	assert.Contains(t, err.Error(), "1.0.0")
}

func TestLoad_EmbeddedSchema(t *testing.T) {
	reg, err := Load(schemas.FS, "8.6")
	require.NoError(t, err)
	assert.Equal(t, "8.6.0.idd", reg.Source())

	versions, err := Versions(schemas.FS)
	require.NoError(t, err)
	assert.Contains(t, versions, "8.6.0")

	building, err := reg.Definition("Building")
	require.NoError(t, err)
	assert.True(t, building.Unique)
	assert.True(t, building.Required)

	surface, err := reg.Definition("BuildingSurface:Detailed")
	require.NoError(t, err)
	assert.Equal(t, 3, surface.Extensible)
	assert.Equal(t, []string{"Vertex 5 X-coordinate", "Vertex 5 Y-coordinate", "Vertex 5 Z-coordinate"}, surface.ExtensibleNames(1))

	assert.ElementsMatch(t, []string{"building", "globalgeometryrules"}, reg.RequiredTypes())
}

func TestCache_SharesRegistries(t *testing.T) {
	fsys := fstest.MapFS{
		"1.0.0.idd": {Data: []byte("Version,\n  A1 ; \\field Version Identifier\n")},
	}
	cache := NewCache(fsys)

	first, err := cache.Get("1.0")
	require.NoError(t, err)
	second, err := cache.Get("1.0.0")
	require.NoError(t, err)
	assert.Same(t, first, second)

	_, err = cache.Get("3.0.0")
	assert.ErrorIs(t, err, ErrUnsupportedVersion)
}
