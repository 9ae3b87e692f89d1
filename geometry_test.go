package pmst_test

import (
	"testing"

	"github.com/fwojciec/pmst"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoordinate_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		coord pmst.Coordinate
		ok    bool
	}{
		{"accepts point inside domain", pmst.Coordinate{Lat: -30, Lon: 100}, true},
		{"rejects latitude too far south", pmst.Coordinate{Lat: -80, Lon: 100}, false},
		{"rejects latitude too far north", pmst.Coordinate{Lat: -2, Lon: 100}, false},
		{"rejects latitude on exclusive bound", pmst.Coordinate{Lat: -70, Lon: 100}, false},
		{"rejects longitude too far west", pmst.Coordinate{Lat: -30, Lon: 60}, false},
		{"rejects longitude on exclusive bound", pmst.Coordinate{Lat: -30, Lon: 180}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.coord.Validate()
			if tt.ok {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, pmst.EINVALID, pmst.ErrorCode(err))
		})
	}
}

func TestCoordinate_ValidateReportsLatitude(t *testing.T) {
	t.Parallel()

	err := pmst.Coordinate{Lat: -80, Lon: 100}.Validate()

	assert.Contains(t, pmst.ErrorMessage(err), "latitude")
}

func TestNewQueryGeometry(t *testing.T) {
	t.Parallel()

	g := pmst.NewQueryGeometry()

	assert.Equal(t, pmst.GeometryUndefined, g.Kind())
	assert.Equal(t, pmst.CoordinatesUndefined, g.CoordinateSystem())
	assert.InDelta(t, pmst.DefaultBuffer, g.Buffer(), 1e-9)
	assert.Empty(t, g.Coordinates())
	assert.Empty(t, g.Contact())
}

func pairs(n int) []pmst.Coordinate {
	coords := make([]pmst.Coordinate, n)
	for i := range coords {
		coords[i] = pmst.Coordinate{Lat: -30, Lon: 140}
	}
	return coords
}

func TestQueryGeometry_SetCoordinates(t *testing.T) {
	t.Parallel()

	t.Run("single pair forces point", func(t *testing.T) {
		t.Parallel()

		g := pmst.NewQueryGeometry()
		require.NoError(t, g.SetKind(pmst.GeometryPolygon))

		require.NoError(t, g.SetCoordinates(pairs(1)))
		assert.Equal(t, pmst.GeometryPoint, g.Kind())
	})

	t.Run("two pairs force line", func(t *testing.T) {
		t.Parallel()

		g := pmst.NewQueryGeometry()

		require.NoError(t, g.SetCoordinates(pairs(2)))
		assert.Equal(t, pmst.GeometryLine, g.Kind())
	})

	t.Run("three pairs keep explicit polygon", func(t *testing.T) {
		t.Parallel()

		g := pmst.NewQueryGeometry()
		require.NoError(t, g.SetKind(pmst.GeometryPolygon))

		require.NoError(t, g.SetCoordinates(pairs(3)))
		assert.Equal(t, pmst.GeometryPolygon, g.Kind())
	})

	t.Run("three pairs leave undefined kind for caller to set", func(t *testing.T) {
		t.Parallel()

		g := pmst.NewQueryGeometry()

		require.NoError(t, g.SetCoordinates(pairs(3)))
		assert.Equal(t, pmst.GeometryUndefined, g.Kind())

		require.NoError(t, g.SetKind(pmst.GeometryLine))
		assert.Equal(t, pmst.GeometryLine, g.Kind())
	})

	t.Run("three pairs reject point kind", func(t *testing.T) {
		t.Parallel()

		g := pmst.NewQueryGeometry()
		require.NoError(t, g.SetKind(pmst.GeometryPoint))

		err := g.SetCoordinates(pairs(3))
		assert.Equal(t, pmst.EINVALID, pmst.ErrorCode(err))
		assert.Empty(t, g.Coordinates())
	})

	t.Run("accepts 150 pairs", func(t *testing.T) {
		t.Parallel()

		g := pmst.NewQueryGeometry()

		require.NoError(t, g.SetCoordinates(pairs(150)))
		assert.Len(t, g.Coordinates(), 150)
	})

	t.Run("rejects 151 pairs", func(t *testing.T) {
		t.Parallel()

		g := pmst.NewQueryGeometry()

		err := g.SetCoordinates(pairs(151))
		assert.Equal(t, pmst.EINVALID, pmst.ErrorCode(err))
	})

	t.Run("rejects 151 out-of-range pairs on count", func(t *testing.T) {
		t.Parallel()

		coords := make([]pmst.Coordinate, 151)
		g := pmst.NewQueryGeometry()

		err := g.SetCoordinates(coords)
		assert.Contains(t, pmst.ErrorMessage(err), "at most 150")
	})

	t.Run("rejects empty list", func(t *testing.T) {
		t.Parallel()

		g := pmst.NewQueryGeometry()

		err := g.SetCoordinates(nil)
		assert.Equal(t, pmst.EINVALID, pmst.ErrorCode(err))
	})

	t.Run("rejects out of range pair and keeps previous list", func(t *testing.T) {
		t.Parallel()

		g := pmst.NewQueryGeometry()
		require.NoError(t, g.SetCoordinates([]pmst.Coordinate{{Lat: -30, Lon: 100}}))

		err := g.SetCoordinates([]pmst.Coordinate{{Lat: -30, Lon: 100}, {Lat: -80, Lon: 100}})
		require.Error(t, err)
		assert.Equal(t, pmst.EINVALID, pmst.ErrorCode(err))
		assert.Contains(t, pmst.ErrorMessage(err), "pair 2")
		assert.Equal(t, []pmst.Coordinate{{Lat: -30, Lon: 100}}, g.Coordinates())
		assert.Equal(t, pmst.GeometryPoint, g.Kind())
	})

	t.Run("returns a copy of the coordinates", func(t *testing.T) {
		t.Parallel()

		g := pmst.NewQueryGeometry()
		require.NoError(t, g.SetCoordinates(pairs(1)))

		coords := g.Coordinates()
		coords[0].Lat = 0

		assert.InDelta(t, -30.0, g.Coordinates()[0].Lat, 1e-9)
	})
}

func TestQueryGeometry_SetKind(t *testing.T) {
	t.Parallel()

	t.Run("rejects kind out of range", func(t *testing.T) {
		t.Parallel()

		g := pmst.NewQueryGeometry()

		err := g.SetKind(pmst.GeometryKind(42))
		assert.Equal(t, pmst.EINVALID, pmst.ErrorCode(err))
	})

	t.Run("rejects point for two pairs", func(t *testing.T) {
		t.Parallel()

		g := pmst.NewQueryGeometry()
		require.NoError(t, g.SetCoordinates(pairs(2)))

		err := g.SetKind(pmst.GeometryPoint)
		assert.Equal(t, pmst.EINVALID, pmst.ErrorCode(err))
		assert.Equal(t, pmst.GeometryLine, g.Kind())
	})

	t.Run("rejects polygon for two pairs", func(t *testing.T) {
		t.Parallel()

		g := pmst.NewQueryGeometry()
		require.NoError(t, g.SetCoordinates(pairs(2)))

		err := g.SetKind(pmst.GeometryPolygon)
		assert.Equal(t, pmst.EINVALID, pmst.ErrorCode(err))
	})

	t.Run("rejects line for single pair", func(t *testing.T) {
		t.Parallel()

		g := pmst.NewQueryGeometry()
		require.NoError(t, g.SetCoordinates(pairs(1)))

		err := g.SetKind(pmst.GeometryLine)
		assert.Equal(t, pmst.EINVALID, pmst.ErrorCode(err))
	})

	t.Run("rejects undefined once one or two pairs are set", func(t *testing.T) {
		t.Parallel()

		for n, forced := range map[int]pmst.GeometryKind{1: pmst.GeometryPoint, 2: pmst.GeometryLine} {
			g := pmst.NewQueryGeometry()
			require.NoError(t, g.SetCoordinates(pairs(n)))

			err := g.SetKind(pmst.GeometryUndefined)

			assert.Equal(t, pmst.EINVALID, pmst.ErrorCode(err), "%d pair(s)", n)
			assert.Equal(t, forced, g.Kind(), "%d pair(s)", n)
		}
	})

	t.Run("accepts the forced kind again", func(t *testing.T) {
		t.Parallel()

		g := pmst.NewQueryGeometry()
		require.NoError(t, g.SetCoordinates(pairs(1)))

		require.NoError(t, g.SetKind(pmst.GeometryPoint))
		assert.Equal(t, pmst.GeometryPoint, g.Kind())
	})

	t.Run("accepts undefined for three or more pairs", func(t *testing.T) {
		t.Parallel()

		g := pmst.NewQueryGeometry()
		require.NoError(t, g.SetCoordinates(pairs(3)))

		require.NoError(t, g.SetKind(pmst.GeometryUndefined))
		assert.Equal(t, pmst.GeometryUndefined, g.Kind())
	})

	t.Run("accepts any valid kind before coordinates are set", func(t *testing.T) {
		t.Parallel()

		g := pmst.NewQueryGeometry()

		require.NoError(t, g.SetKind(pmst.GeometryPolygon))
		assert.Equal(t, pmst.GeometryPolygon, g.Kind())
	})
}

func TestQueryGeometry_SetCoordinateSystem(t *testing.T) {
	t.Parallel()

	g := pmst.NewQueryGeometry()

	require.NoError(t, g.SetCoordinateSystem(pmst.CoordinatesDecimalDegrees))
	assert.Equal(t, pmst.CoordinatesDecimalDegrees, g.CoordinateSystem())

	err := g.SetCoordinateSystem(pmst.CoordinateSystem(42))
	assert.Equal(t, pmst.EINVALID, pmst.ErrorCode(err))
	assert.Equal(t, pmst.CoordinatesDecimalDegrees, g.CoordinateSystem())
}

func TestQueryGeometry_SetBuffer(t *testing.T) {
	t.Parallel()

	g := pmst.NewQueryGeometry()

	require.NoError(t, g.SetBuffer(2.5))
	assert.InDelta(t, 2.5, g.Buffer(), 1e-9)

	assert.Equal(t, pmst.EINVALID, pmst.ErrorCode(g.SetBuffer(0)))
	assert.Equal(t, pmst.EINVALID, pmst.ErrorCode(g.SetBuffer(-1)))
	assert.InDelta(t, 2.5, g.Buffer(), 1e-9)
}

func TestQueryGeometry_Freeze(t *testing.T) {
	t.Parallel()

	g := pmst.NewQueryGeometry()
	require.NoError(t, g.SetCoordinates(pairs(1)))
	g.Freeze()

	assert.True(t, g.Frozen())
	assert.Equal(t, pmst.ECONFLICT, pmst.ErrorCode(g.SetCoordinates(pairs(2))))
	assert.Equal(t, pmst.ECONFLICT, pmst.ErrorCode(g.SetKind(pmst.GeometryPoint)))
	assert.Equal(t, pmst.ECONFLICT, pmst.ErrorCode(g.SetBuffer(5)))
	assert.Equal(t, pmst.ECONFLICT, pmst.ErrorCode(g.SetContact("a@example.com")))
	assert.Equal(t, pmst.ECONFLICT, pmst.ErrorCode(g.SetCoordinateSystem(pmst.CoordinatesDMS)))
	assert.Len(t, g.Coordinates(), 1)
}

func TestGeometryKind_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Point", pmst.GeometryPoint.String())
	assert.Equal(t, "Line", pmst.GeometryLine.String())
	assert.Equal(t, "Polygon", pmst.GeometryPolygon.String())
	assert.Equal(t, "Undefined", pmst.GeometryUndefined.String())
	assert.Equal(t, "Degrees minutes seconds", pmst.CoordinatesDMS.String())
}
