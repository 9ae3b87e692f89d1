package pmst

// GeometryKind is the shape of a PMST query.
type GeometryKind int

// Geometry kinds accepted by the PMST search form.
const (
	GeometryUndefined GeometryKind = iota
	GeometryPoint
	GeometryLine
	GeometryPolygon
)

// String returns the display name of the kind.
func (k GeometryKind) String() string {
	switch k {
	case GeometryPoint:
		return "Point"
	case GeometryLine:
		return "Line"
	case GeometryPolygon:
		return "Polygon"
	case GeometryUndefined:
		return "Undefined"
	}
	return "GeometryKind(invalid)"
}

// CoordinateSystem is the notation used for query coordinates.
type CoordinateSystem int

// Coordinate systems accepted by the PMST search form.
const (
	CoordinatesUndefined CoordinateSystem = iota
	CoordinatesDecimalDegrees
	CoordinatesDMS
)

// String returns the display name of the coordinate system.
func (s CoordinateSystem) String() string {
	switch s {
	case CoordinatesDecimalDegrees:
		return "Decimal degrees"
	case CoordinatesDMS:
		return "Degrees minutes seconds"
	case CoordinatesUndefined:
		return "Undefined"
	}
	return "CoordinateSystem(invalid)"
}

// Bounds of the tool's geographic domain (continental Australia and its
// territories). Both ranges are exclusive.
const (
	MinLatitude  = -70.0
	MaxLatitude  = -5.0
	MinLongitude = 65.0
	MaxLongitude = 180.0

	// MaxCoordinates is the largest number of pairs a query may hold.
	MaxCoordinates = 150

	// DefaultBuffer is the buffer distance of a new query.
	DefaultBuffer = 1.0
)

// Coordinate is a latitude/longitude pair in decimal degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Validate returns EINVALID if the pair lies outside the tool's domain.
func (c Coordinate) Validate() error {
	if !(c.Lat > MinLatitude && c.Lat < MaxLatitude) {
		return Errorf(EINVALID, "latitude %v out of range (%v, %v)", c.Lat, MinLatitude, MaxLatitude)
	}
	if !(c.Lon > MinLongitude && c.Lon < MaxLongitude) {
		return Errorf(EINVALID, "longitude %v out of range (%v, %v)", c.Lon, MinLongitude, MaxLongitude)
	}
	return nil
}

// QueryGeometry holds the parameters used to generate a PMST report.
//
// Every setter validates its own input against the current state and
// leaves the geometry unchanged on error. Prior state is never
// re-validated. Once frozen, all setters fail with ECONFLICT.
type QueryGeometry struct {
	kind    GeometryKind
	system  CoordinateSystem
	coords  []Coordinate
	buffer  float64
	contact string
	frozen  bool
}

// NewQueryGeometry returns a geometry with undefined kind and coordinate
// system and the default buffer.
func NewQueryGeometry() *QueryGeometry {
	return &QueryGeometry{buffer: DefaultBuffer}
}

// Kind returns the geometry kind.
func (g *QueryGeometry) Kind() GeometryKind { return g.kind }

// CoordinateSystem returns the coordinate notation.
func (g *QueryGeometry) CoordinateSystem() CoordinateSystem { return g.system }

// Coordinates returns a copy of the coordinate pairs.
func (g *QueryGeometry) Coordinates() []Coordinate {
	return append([]Coordinate(nil), g.coords...)
}

// Buffer returns the buffer distance.
func (g *QueryGeometry) Buffer() float64 { return g.buffer }

// Contact returns the optional contact identifier.
func (g *QueryGeometry) Contact() string { return g.contact }

// Frozen reports whether the geometry has been frozen.
func (g *QueryGeometry) Frozen() bool { return g.frozen }

// Freeze makes the geometry immutable. It is called once a report has been
// generated against it.
func (g *QueryGeometry) Freeze() { g.frozen = true }

// SetKind sets the geometry kind.
// Point requires at most one pair; Line at least two; Polygon at least three.
// Once one or two pairs are set, only the kind they force (Point or Line)
// is accepted.
func (g *QueryGeometry) SetKind(kind GeometryKind) error {
	if err := g.checkMutable(); err != nil {
		return err
	}
	switch kind {
	case GeometryUndefined, GeometryPoint, GeometryLine, GeometryPolygon:
	default:
		return Errorf(EINVALID, "geometry kind %d out of range", int(kind))
	}
	if n := len(g.coords); n > 0 {
		if err := kindAllows(kind, n); err != nil {
			return err
		}
	}
	g.kind = kind
	return nil
}

// SetCoordinateSystem sets the coordinate notation.
func (g *QueryGeometry) SetCoordinateSystem(system CoordinateSystem) error {
	if err := g.checkMutable(); err != nil {
		return err
	}
	switch system {
	case CoordinatesUndefined, CoordinatesDecimalDegrees, CoordinatesDMS:
	default:
		return Errorf(EINVALID, "coordinate system %d out of range", int(system))
	}
	g.system = system
	return nil
}

// SetCoordinates replaces the coordinate list.
//
// One pair forces the kind to Point and two pairs force Line. Three or more
// pairs are ambiguous: the current kind is kept if it is Line, Polygon or
// Undefined, and a Point kind is rejected.
func (g *QueryGeometry) SetCoordinates(coords []Coordinate) error {
	if err := g.checkMutable(); err != nil {
		return err
	}
	if len(coords) == 0 {
		return Errorf(EINVALID, "coordinate list must not be empty")
	}
	if len(coords) > MaxCoordinates {
		return Errorf(EINVALID, "coordinate list must hold at most %d pairs, got %d", MaxCoordinates, len(coords))
	}
	for i, c := range coords {
		if err := c.Validate(); err != nil {
			return Errorf(EINVALID, "pair %d: %s", i+1, ErrorMessage(err))
		}
	}

	kind := g.kind
	switch len(coords) {
	case 1:
		kind = GeometryPoint
	case 2:
		kind = GeometryLine
	default:
		if kind == GeometryPoint {
			return Errorf(EINVALID, "point geometry cannot hold %d pairs", len(coords))
		}
	}

	g.coords = append([]Coordinate(nil), coords...)
	g.kind = kind
	return nil
}

// SetBuffer sets the buffer distance, which must be positive.
func (g *QueryGeometry) SetBuffer(buffer float64) error {
	if err := g.checkMutable(); err != nil {
		return err
	}
	if !(buffer > 0) {
		return Errorf(EINVALID, "buffer must be positive, got %v", buffer)
	}
	g.buffer = buffer
	return nil
}

// SetContact sets the contact identifier (typically an email address).
func (g *QueryGeometry) SetContact(contact string) error {
	if err := g.checkMutable(); err != nil {
		return err
	}
	g.contact = contact
	return nil
}

func (g *QueryGeometry) checkMutable() error {
	if g.frozen {
		return Errorf(ECONFLICT, "geometry is frozen")
	}
	return nil
}

func kindAllows(kind GeometryKind, pairs int) error {
	switch {
	case kind == GeometryPoint && pairs != 1:
		return Errorf(EINVALID, "point geometry cannot hold %d pairs", pairs)
	case kind == GeometryLine && pairs < 2:
		return Errorf(EINVALID, "line geometry needs at least 2 pairs, got %d", pairs)
	case kind == GeometryPolygon && pairs < 3:
		return Errorf(EINVALID, "polygon geometry needs at least 3 pairs, got %d", pairs)
	case kind == GeometryUndefined && pairs < 3:
		return Errorf(EINVALID, "geometry with %d pair(s) must keep its kind", pairs)
	}
	return nil
}
