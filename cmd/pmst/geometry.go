package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fwojciec/pmst"
)

var geometryKinds = map[string]pmst.GeometryKind{
	"":        pmst.GeometryUndefined,
	"point":   pmst.GeometryPoint,
	"line":    pmst.GeometryLine,
	"polygon": pmst.GeometryPolygon,
}

var coordinateSystems = map[string]pmst.CoordinateSystem{
	"":    pmst.CoordinatesUndefined,
	"dd":  pmst.CoordinatesDecimalDegrees,
	"dms": pmst.CoordinatesDMS,
}

// Run executes the geometry command.
func (c *GeometryCmd) Run(deps *Dependencies) error {
	g, err := c.build()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pmst.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Kind: %s\n", g.Kind())
	fmt.Fprintf(deps.Stdout, "Coordinate system: %s\n", g.CoordinateSystem())
	fmt.Fprintf(deps.Stdout, "Buffer: %g\n", g.Buffer())
	if g.Contact() != "" {
		fmt.Fprintf(deps.Stdout, "Contact: %s\n", g.Contact())
	}
	fmt.Fprintf(deps.Stdout, "Coordinates: %d pair(s)\n", len(g.Coordinates()))
	for _, coord := range g.Coordinates() {
		fmt.Fprintf(deps.Stdout, "  %g %g\n", coord.Lat, coord.Lon)
	}
	return nil
}

// build applies each flag through the geometry's setters, so the first
// invalid value is reported.
func (c *GeometryCmd) build() (*pmst.QueryGeometry, error) {
	kind, ok := geometryKinds[strings.ToLower(c.Kind)]
	if !ok {
		return nil, pmst.Errorf(pmst.EINVALID, "unknown geometry kind %q", c.Kind)
	}
	system, ok := coordinateSystems[strings.ToLower(c.System)]
	if !ok {
		return nil, pmst.Errorf(pmst.EINVALID, "unknown coordinate system %q", c.System)
	}

	coords := make([]pmst.Coordinate, 0, len(c.Coords))
	for _, raw := range c.Coords {
		coord, err := parseCoordinate(raw)
		if err != nil {
			return nil, err
		}
		coords = append(coords, coord)
	}

	g := pmst.NewQueryGeometry()
	if err := g.SetCoordinateSystem(system); err != nil {
		return nil, err
	}
	if err := g.SetKind(kind); err != nil {
		return nil, err
	}
	if err := g.SetCoordinates(coords); err != nil {
		return nil, err
	}
	if err := g.SetBuffer(c.Buffer); err != nil {
		return nil, err
	}
	if err := g.SetContact(c.Contact); err != nil {
		return nil, err
	}
	g.Freeze()
	return g, nil
}

func parseCoordinate(raw string) (pmst.Coordinate, error) {
	latStr, lonStr, ok := strings.Cut(raw, ",")
	if !ok {
		return pmst.Coordinate{}, pmst.Errorf(pmst.EINVALID, "coordinate %q must be lat,lon", raw)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil {
		return pmst.Coordinate{}, pmst.Errorf(pmst.EINVALID, "invalid latitude in %q", raw)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(lonStr), 64)
	if err != nil {
		return pmst.Coordinate{}, pmst.Errorf(pmst.EINVALID, "invalid longitude in %q", raw)
	}
	return pmst.Coordinate{Lat: lat, Lon: lon}, nil
}
