package testutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/idfgo/internal/idd"
	"github.com/vk/idfgo/schemas"
)

// DefaultVersion is the version of the embedded schema used by tests.
const DefaultVersion = "8.6.0"

var cache = idd.NewCache(schemas.FS)

// Registry returns the shared registry of the embedded default schema.
func Registry(t *testing.T) *idd.Registry {
	t.Helper()
	reg, err := cache.Get(DefaultVersion)
	require.NoError(t, err)
	return reg
}

// ParseSchema builds a registry from inline schema text.
func ParseSchema(t *testing.T, text string) *idd.Registry {
	t.Helper()
	reg, err := idd.Parse("test.idd", strings.NewReader(text))
	require.NoError(t, err)
	return reg
}
