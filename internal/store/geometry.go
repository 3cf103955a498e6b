package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/idfgo/internal/ctxlog"
	"github.com/vk/idfgo/internal/object"
)

// GeometryTypes are the types needed to reproduce the shape of a building.
var GeometryTypes = []string{
	"GlobalGeometryRules",
	"Zone",

	"Wall:Exterior",
	"Wall:Adiabatic",
	"Wall:Underground",
	"Wall:Interzone",

	"Roof",
	"Ceiling:Adiabatic",
	"Ceiling:Interzone",

	"Floor:GroundContact",
	"Floor:Adiabatic",
	"Floor:Interzone",

	"Window",
	"Door",
	"GlazedDoor",
	"Window:Interzone",
	"Door:Interzone",
	"GlazedDoor:Interzone",

	"Wall:Detailed",
	"RoofCeiling:Detailed",
	"Floor:Detailed",
	"BuildingSurface:Detailed",
	"FenestrationSurface:Detailed",

	"InternalMass",

	"Shading:Site",
	"Shading:Building",
	"Shading:Site:Detailed",
	"Shading:Building:Detailed",

	"Shading:Overhang",
	"Shading:Overhang:Projection",
	"Shading:Fin",
	"Shading:Fin:Projection",
	"Shading:Zone:Detailed",
}

// ImportGeometry ingests only the GeometryTypes records of the instance
// file at path. opts.Types is ignored.
func (s *Store) ImportGeometry(ctx context.Context, path string, opts IngestOptions) (int, error) {
	opts.Types = GeometryTypes
	return s.IngestFile(ctx, path, opts)
}

// horizontalTypes are the types FlattenToSingleStorey rewrites.
var horizontalTypes = []string{
	"Roof",
	"Ceiling:Adiabatic",
	"Ceiling:Interzone",
	"Floor:GroundContact",
	"Floor:Adiabatic",
	"Floor:Interzone",
	"BuildingSurface:Detailed",
	"RoofCeiling:Detailed",
	"Floor:Detailed",
}

const (
	fieldBoundary       = "Outside Boundary Condition"
	fieldBoundaryObject = "Outside Boundary Condition Object"
	fieldConstruction   = "Construction Name"
	fieldSurfaceType    = "Surface Type"
	boundaryAdiabatic   = "Adiabatic"
	constructionType    = "Construction"
)

// FlattenOptions configure FlattenToSingleStorey.
type FlattenOptions struct {
	// Construction, when set, names a stored Construction assigned to every
	// rewritten surface.
	Construction string
}

// FlattenToSingleStorey makes every roof, ceiling and floor adiabatic so the
// model behaves like a single storey surrounded by identical ones. Detailed
// surfaces get an adiabatic outside boundary condition; simple types that
// cannot express one are only logged. Either every surface is rewritten or
// the store is left untouched.
func (s *Store) FlattenToSingleStorey(ctx context.Context, opts FlattenOptions) error {
	logger := ctxlog.FromContext(ctx)

	construction := strings.TrimSpace(opts.Construction)
	if construction != "" && !s.Exists(constructionType, construction) {
		return fmt.Errorf("%w: '%s' called '%s'", ErrNotFound, constructionType, construction)
	}

	snap := s.snapshot()
	rewritten := 0
	for _, typeName := range horizontalTypes {
		sl, ok := s.entries[typeKey(typeName)]
		if !ok {
			continue
		}
		for i, obj := range sl.objects {
			raw := obj.Raw()
			switch typeKey(typeName) {
			case "buildingsurface:detailed":
				surface, _ := obj.Get(fieldSurfaceType)
				switch strings.ToLower(surface.String()) {
				case "floor", "roof", "ceiling":
				default:
					continue
				}
				makeAdiabatic(raw)
			case "roofceiling:detailed", "floor:detailed":
				makeAdiabatic(raw)
			case "ceiling:adiabatic", "floor:adiabatic":
				logger.Warn("Surface is already adiabatic; construction changed anyway.", "type", obj.Type(), "id", obj.ID())
			default:
				logger.Warn("Surface cannot be made adiabatic; construction changed anyway.", "type", obj.Type(), "id", obj.ID())
			}
			if construction != "" {
				deleteField(raw, fieldConstruction)
				raw[fieldConstruction] = construction
			}

			updated, err := object.New(obj.Definition(), raw)
			if err != nil {
				s.restore(snap)
				return err
			}
			sl.objects[i] = updated
			rewritten++
		}
	}

	logger.Info("Flattened model to a single storey.", "surfaces", rewritten)
	return nil
}

func makeAdiabatic(raw map[string]any) {
	deleteField(raw, fieldBoundary)
	deleteField(raw, fieldBoundaryObject)
	raw[fieldBoundary] = boundaryAdiabatic
}
