package store

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/idfgo/internal/testutil"
)

const storeyIDF = `
Version, 8.6;
Building, HQ;
GlobalGeometryRules, UpperLeftCorner, Counterclockwise, Relative;
Material, Brick, Rough, 0.1, 0.9, 1920, 790;
Construction, Ext Slab, Brick;
Construction, Adiabatic Slab, Brick;
Zone, Z;
Floor:Detailed, F1, Ext Slab, Z, Surface, F2, NoSun, NoWind, , , 0,0,0, 1,0,0, 1,1,0;
BuildingSurface:Detailed, W1, Wall, Ext Slab, Z, Outdoors, , SunExposed, WindExposed, , ,
  0,0,3, 0,0,0, 1,0,0, 1,0,3;
BuildingSurface:Detailed, R1, Roof, Ext Slab, Z, Outdoors, , SunExposed, WindExposed, , ,
  0,0,3, 1,0,3, 1,1,3;
Roof, R2, Ext Slab, Z, 0, 0, 0, 0, 3, 1, 1;
Ceiling:Adiabatic, C1, Ext Slab, Z;
`

func loadStorey(t *testing.T) (*Store, context.Context, *testutil.SafeBuffer) {
	t.Helper()
	ctx, logs := testutil.Context(t)
	s := newStore(t)
	_, err := s.Ingest(ctx, strings.NewReader(storeyIDF), "storey.idf", IngestOptions{})
	require.NoError(t, err)
	return s, ctx, logs
}

func field(t *testing.T, s *Store, id, name string) string {
	t.Helper()
	obj, ok := s.GetByID(id)
	require.True(t, ok, "object %q", id)
	v, _ := obj.Get(name)
	return v.String()
}

func TestStore_FlattenToSingleStorey(t *testing.T) {
	s, ctx, logs := loadStorey(t)

	err := s.FlattenToSingleStorey(ctx, FlattenOptions{Construction: "adiabatic slab"})
	require.NoError(t, err)

	assert.Equal(t, "Adiabatic", field(t, s, "F1", fieldBoundary))
	assert.Equal(t, "", field(t, s, "F1", fieldBoundaryObject))
	assert.Equal(t, "adiabatic slab", field(t, s, "F1", fieldConstruction))

	assert.Equal(t, "Adiabatic", field(t, s, "R1", fieldBoundary))
	assert.Equal(t, "adiabatic slab", field(t, s, "R1", fieldConstruction))

	assert.Equal(t, "Outdoors", field(t, s, "W1", fieldBoundary), "walls are left alone")
	assert.Equal(t, "Ext Slab", field(t, s, "W1", fieldConstruction))

	assert.Equal(t, "adiabatic slab", field(t, s, "R2", fieldConstruction))
	assert.Equal(t, "adiabatic slab", field(t, s, "C1", fieldConstruction))

	out := logs.String()
	assert.Contains(t, out, "Surface cannot be made adiabatic; construction changed anyway.")
	assert.Contains(t, out, "id=R2")
	assert.Contains(t, out, "Surface is already adiabatic; construction changed anyway.")
	assert.Contains(t, out, "id=C1")
	assert.Contains(t, out, "surfaces=4")
}

func TestStore_FlattenToSingleStorey_KeepsConstruction(t *testing.T) {
	s, ctx, _ := loadStorey(t)

	require.NoError(t, s.FlattenToSingleStorey(ctx, FlattenOptions{}))
	assert.Equal(t, "Adiabatic", field(t, s, "F1", fieldBoundary))
	assert.Equal(t, "Ext Slab", field(t, s, "F1", fieldConstruction))
}

func TestStore_FlattenToSingleStorey_UnknownConstruction(t *testing.T) {
	s, ctx, _ := loadStorey(t)

	err := s.FlattenToSingleStorey(ctx, FlattenOptions{Construction: "Nope"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "Surface", field(t, s, "F1", fieldBoundary))
}

func TestStore_ImportGeometry(t *testing.T) {
	ctx := context.Background()
	path := testutil.WriteFile(t, "storey.idf", storeyIDF)

	s := newStore(t)
	n, err := s.ImportGeometry(ctx, path, IngestOptions{})
	require.NoError(t, err)
	assert.Equal(t, 7, n)
	assert.ElementsMatch(t,
		[]string{"globalgeometryrules", "zone", "floor:detailed", "buildingsurface:detailed", "roof", "ceiling:adiabatic"},
		s.Types(),
	)

	s = newStore(t)
	_, err = s.ImportGeometry(ctx, path, IngestOptions{ForceRequired: true})
	require.NoError(t, err)
	assert.NotNil(t, s.Get("Building"), "required types are forced in")
	assert.Nil(t, s.Get("Construction"))
}
