package main_test

import (
	"testing"

	"github.com/fwojciec/pmst"
	main "github.com/fwojciec/pmst/cmd/pmst"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeometryCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("single pair is a point", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := testDeps(nil)

		err := (&main.GeometryCmd{Coords: []string{"-30,140"}, Buffer: 1}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Kind: Point")
		assert.Contains(t, stdout.String(), "Coordinates: 1 pair(s)")
		assert.Contains(t, stdout.String(), "-30 140")
	})

	t.Run("polygon keeps its kind", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := testDeps(nil)
		cmd := &main.GeometryCmd{
			Kind:    "polygon",
			System:  "dd",
			Coords:  []string{"-30,140", "-31, 141", "-32,140"},
			Buffer:  5,
			Contact: "someone@example.com",
		}

		require.NoError(t, cmd.Run(deps))

		out := stdout.String()
		assert.Contains(t, out, "Kind: Polygon")
		assert.Contains(t, out, "Coordinate system: Decimal degrees")
		assert.Contains(t, out, "Buffer: 5")
		assert.Contains(t, out, "Contact: someone@example.com")
	})

	t.Run("point cannot hold three pairs", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := testDeps(nil)
		cmd := &main.GeometryCmd{Kind: "point", Coords: []string{"-30,140", "-31,141", "-32,140"}, Buffer: 1}

		err := cmd.Run(deps)

		assert.Equal(t, pmst.EINVALID, pmst.ErrorCode(err))
		assert.Contains(t, stderr.String(), "point geometry cannot hold 3 pairs")
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		t.Parallel()

		for name, cmd := range map[string]*main.GeometryCmd{
			"out of range latitude": {Coords: []string{"10,140"}, Buffer: 1},
			"malformed longitude":   {Coords: []string{"-30,east"}, Buffer: 1},
			"missing comma":         {Coords: []string{"-30 140"}, Buffer: 1},
			"unknown kind":          {Kind: "circle", Coords: []string{"-30,140"}, Buffer: 1},
			"unknown system":        {System: "utm", Coords: []string{"-30,140"}, Buffer: 1},
			"no coordinates":        {Buffer: 1},
			"zero buffer":           {Coords: []string{"-30,140"}},
		} {
			deps, stdout, stderr := testDeps(nil)

			err := cmd.Run(deps)

			assert.Equal(t, pmst.EINVALID, pmst.ErrorCode(err), name)
			assert.Contains(t, stderr.String(), "error:", name)
			assert.Empty(t, stdout.String(), name)
		}
	})
}
