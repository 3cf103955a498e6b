package store

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/idfgo/internal/idd"
	"github.com/vk/idfgo/internal/object"
	"github.com/vk/idfgo/internal/testutil"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	return New(testutil.Registry(t))
}

func TestStore_Add(t *testing.T) {
	s := newStore(t)

	z1, err := s.Add("zone", map[string]any{"name": "Zone 1", "multiplier": 2})
	require.NoError(t, err)
	z2, err := s.Add("ZONE", map[string]any{"Name": "Zone 2", "x origin": 31})
	require.NoError(t, err)

	entry := s.Get("Zone")
	require.IsType(t, Many{}, entry)
	assert.Equal(t, []*object.Object{z1, z2}, entry.All())
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []string{"zone"}, s.Types())
}

func TestStore_Add_Errors(t *testing.T) {
	s := newStore(t)

	_, err := s.Add("Spaceship", map[string]any{"Name": "x"})
	assert.ErrorIs(t, err, idd.ErrUnknownType)
	var schemaErr *idd.SchemaError
	assert.True(t, errors.As(err, &schemaErr))

	_, err = s.Add("Zone", map[string]any{"Multiplier": 0})
	assert.ErrorIs(t, err, object.ErrRequiredField)

	_, err = s.Add("Zone", map[string]any{"Name": "Z1", "Multiplyer": 2})
	assert.ErrorIs(t, err, ErrUnknownField)
	assert.Equal(t, 0, s.Len(), "nothing partially validated is stored")
}

func TestStore_Uniqueness(t *testing.T) {
	t.Run("non-unique type rejects equal identities", func(t *testing.T) {
		s := newStore(t)
		_, err := s.Add("Zone", map[string]any{"Name": "Core"})
		require.NoError(t, err)

		_, err = s.Add("Zone", map[string]any{"Name": "CORE"})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrDuplicateIdentity)

		var vErr *object.ValidationError
		require.True(t, errors.As(err, &vErr))
		assert.Equal(t, "Zone", vErr.Type)
		assert.Equal(t, "Name", vErr.Field)
		assert.Len(t, s.Get("Zone").All(), 1)
	})

	t.Run("unique type rejects any second object", func(t *testing.T) {
		s := newStore(t)
		_, err := s.Add("Building", map[string]any{"Name": "A"})
		require.NoError(t, err)

		_, err = s.Add("Building", map[string]any{"Name": "B"})
		assert.ErrorIs(t, err, ErrDuplicateUnique)

		entry, ok := s.Get("building").(Singleton)
		require.True(t, ok)
		assert.Equal(t, "A", entry.Object.ID())
	})

	t.Run("identity-less objects never collide", func(t *testing.T) {
		s := newStore(t)
		rules := map[string]any{
			"Starting Vertex Position": "UpperLeftCorner",
			"Vertex Entry Direction":   "Counterclockwise",
			"Coordinate System":        "Relative",
		}
		_, err := s.Add("GlobalGeometryRules", rules)
		require.NoError(t, err)
		assert.False(t, s.Get("GlobalGeometryRules").All()[0].HasID())
	})
}

func TestStore_GetByID(t *testing.T) {
	s := newStore(t)
	_, err := s.Add("Building", map[string]any{"Name": "HQ"})
	require.NoError(t, err)
	_, err = s.Add("Zone", map[string]any{"Name": "Zone 1", "Multiplier": 2})
	require.NoError(t, err)
	_, err = s.Add("Zone", map[string]any{"Name": "Zone 2", "X Origin": 31})
	require.NoError(t, err)

	obj, ok := s.GetByID("zone 2")
	require.True(t, ok)
	x, ok := obj.Get("x origin")
	require.True(t, ok)
	n, _ := x.Number()
	assert.Equal(t, 31.0, n)

	obj, ok = s.GetByID("hq")
	require.True(t, ok, "singletons are searched too")
	assert.Equal(t, "Building", obj.Type())

	obj, ok = s.GetByID("nowhere")
	assert.False(t, ok)
	assert.Nil(t, obj)
	assert.Nil(t, s.Get("Material"))
}

func TestStore_Exists(t *testing.T) {
	s := newStore(t)
	_, err := s.Add("Zone", map[string]any{"Name": "Z1"})
	require.NoError(t, err)
	_, err = s.Add("Building", map[string]any{"Name": "HQ"})
	require.NoError(t, err)

	assert.True(t, s.Exists("zone", "z1"))
	assert.False(t, s.Exists("zone", "z2"))
	assert.False(t, s.Exists("Material", "z1"))
	assert.True(t, s.Exists("Building", "hq"))
	assert.False(t, s.Exists("Building", "other"))
}

func TestStore_Delete(t *testing.T) {
	s := newStore(t)
	_, err := s.Add("Zone", map[string]any{"Name": "x"})
	require.NoError(t, err)
	_, err = s.Add("Zone", map[string]any{"Name": "y"})
	require.NoError(t, err)

	assert.True(t, s.Delete("Zone", "X"))
	_, ok := s.GetByID("x")
	assert.False(t, ok)
	assert.False(t, s.Delete("Zone", "x"), "deleting a missing identity is a no-op")
	assert.Len(t, s.Get("Zone").All(), 1)

	assert.True(t, s.Delete("Zone", "y"))
	assert.Nil(t, s.Get("Zone"), "empty collections are dropped")
	assert.Empty(t, s.Types())

	_, err = s.Add("Building", map[string]any{"Name": "HQ"})
	require.NoError(t, err)
	assert.True(t, s.Delete("Building", "anything"), "singletons are removed whatever the identity")
	assert.Nil(t, s.Get("Building"))
	assert.Equal(t, 0, s.Len())
}

func TestStore_Set(t *testing.T) {
	s := newStore(t)
	_, err := s.Add("Zone", map[string]any{"Name": "Z1", "Multiplier": 1})
	require.NoError(t, err)
	_, err = s.Add("Zone", map[string]any{"Name": "Z2"})
	require.NoError(t, err)

	obj, err := s.Set("Zone", "z1", "multiplier", 4)
	require.NoError(t, err)
	m, _ := obj.Get("Multiplier")
	assert.Equal(t, object.Number(4), m)

	stored, _ := s.GetByID("Z1")
	assert.Same(t, obj, stored)

	testCases := []struct {
		name    string
		id      string
		field   string
		value   any
		wantErr error
	}{
		{"out of range", "Z1", "Multiplier", 0, object.ErrOutOfRange},
		{"identity collision", "Z1", "Name", "z2", ErrDuplicateIdentity},
		{"unknown field", "Z1", "Colour", "red", ErrUnknownField},
		{"missing object", "Z9", "Multiplier", 2, ErrNotFound},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.Set("Zone", tc.id, tc.field, tc.value)
			assert.ErrorIs(t, err, tc.wantErr)

			m, _ := stored.Get("Multiplier")
			assert.Equal(t, object.Number(4), m, "failed updates leave the object untouched")
		})
	}

	renamed, err := s.Set("Zone", "Z1", "Name", "Lobby")
	require.NoError(t, err)
	assert.Equal(t, "Lobby", renamed.ID())
	assert.True(t, s.Exists("Zone", "lobby"))
	assert.False(t, s.Exists("Zone", "z1"))
}

func TestStore_Unset(t *testing.T) {
	s := newStore(t)
	_, err := s.Add("Zone", map[string]any{"Name": "Z1", "Multiplier": 3})
	require.NoError(t, err)

	obj, err := s.Unset("Zone", "Z1", "MULTIPLIER")
	require.NoError(t, err)
	_, ok := obj.Get("Multiplier")
	assert.False(t, ok)

	_, err = s.Unset("Zone", "Z1", "Name")
	assert.ErrorIs(t, err, object.ErrRequiredField)
	assert.True(t, s.Exists("Zone", "Z1"))
}

func TestStore_Objects(t *testing.T) {
	s := newStore(t)
	_, err := s.Add("Zone", map[string]any{"Name": "Z1"})
	require.NoError(t, err)
	_, err = s.Add("Building", map[string]any{"Name": "HQ"})
	require.NoError(t, err)
	_, err = s.Add("Zone", map[string]any{"Name": "Z2"})
	require.NoError(t, err)

	var ids []string
	for _, obj := range s.Objects() {
		ids = append(ids, obj.ID())
	}
	assert.Equal(t, []string{"Z1", "Z2", "HQ"}, ids)
}
