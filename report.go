package pmst

import (
	"context"
	"path/filepath"
	"strings"
	"time"
)

// SourceFormat is the file format a report was read from.
type SourceFormat string

// Supported report formats.
const (
	FormatUndefined SourceFormat = ""
	FormatPDF       SourceFormat = "pdf"
	FormatHTML      SourceFormat = "html"
)

// FormatFromPath returns the report format implied by a file extension.
// Returns EINVALID for anything other than .pdf, .html or .htm.
func FormatFromPath(path string) (SourceFormat, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return FormatPDF, nil
	case ".html", ".htm":
		return FormatHTML, nil
	}
	return FormatUndefined, Errorf(EINVALID, "file extension must be html or pdf: %q", path)
}

// Field names a scalar report field.
type Field string

// Report fields populated by the extractors.
const (
	FieldDate        Field = "date"
	FieldBuffer      Field = "buffer"
	FieldCoordinates Field = "coordinates"
)

// FieldProblem records why a field was left unset.
// Code is ENOTFOUND when the marker was absent and EPARSE when the marker
// was present but its value was malformed.
type FieldProblem struct {
	Field   Field  `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Report is the structured content of one PMST report.
//
// Unset scalar fields are nil; the reason is recorded in Problems.
type Report struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Format      SourceFormat   `json:"format"`
	ContentHash string         `json:"contentHash"`
	CreatedAt   *time.Time     `json:"createdAt,omitempty"`
	Buffer      *float64       `json:"buffer,omitempty"`
	Coordinates []Coordinate   `json:"coordinates,omitempty"`
	URLs        []string       `json:"urls"`
	Problems    []FieldProblem `json:"problems,omitempty"`

	Features    []*Entity `json:"features,omitempty"`
	Communities []*Entity `json:"communities,omitempty"`
	Species     []*Entity `json:"species,omitempty"`
	Heritage    []*Entity `json:"heritage,omitempty"`
	Parks       []*Entity `json:"parks,omitempty"`

	ImportedAt time.Time `json:"importedAt"`
}

// Validate returns an error if the report contains invalid fields.
func (r *Report) Validate() error {
	if r.Name == "" {
		return Errorf(EINVALID, "report name required")
	}
	switch r.Format {
	case FormatPDF, FormatHTML:
	default:
		return Errorf(EINVALID, "report format must be pdf or html")
	}
	return nil
}

// Problem returns the recorded problem for a field.
// The bool result is false if the field was extracted successfully.
func (r *Report) Problem(field Field) (FieldProblem, bool) {
	for _, p := range r.Problems {
		if p.Field == field {
			return p, true
		}
	}
	return FieldProblem{}, false
}

// Entities returns the collection for the given kind.
func (r *Report) Entities(kind EntityKind) []*Entity {
	switch kind {
	case KindFeature:
		return r.Features
	case KindCommunity:
		return r.Communities
	case KindSpecies:
		return r.Species
	case KindHeritage:
		return r.Heritage
	case KindPark:
		return r.Parks
	}
	return nil
}

// SetEntities replaces the collection for the given kind.
func (r *Report) SetEntities(kind EntityKind, entities []*Entity) {
	switch kind {
	case KindFeature:
		r.Features = entities
	case KindCommunity:
		r.Communities = entities
	case KindSpecies:
		r.Species = entities
	case KindHeritage:
		r.Heritage = entities
	case KindPark:
		r.Parks = entities
	}
}

// BuildReport runs every field extractor against doc. Extraction never
// fails as a whole: each field that cannot be extracted is left unset and
// described in Report.Problems.
func BuildReport(doc Document, format SourceFormat) *Report {
	r := &Report{
		Format: format,
		URLs:   ExtractURLs(doc),
	}

	if date, err := ExtractDate(doc); err != nil {
		r.addProblem(FieldDate, err)
	} else {
		r.CreatedAt = &date
	}

	if buffer, err := ExtractBuffer(doc); err != nil {
		r.addProblem(FieldBuffer, err)
	} else {
		r.Buffer = &buffer
	}

	if coords, err := ExtractCoordinates(doc); err != nil {
		r.addProblem(FieldCoordinates, err)
	} else {
		r.Coordinates = coords
	}

	return r
}

func (r *Report) addProblem(field Field, err error) {
	r.Problems = append(r.Problems, FieldProblem{
		Field:   field,
		Code:    ErrorCode(err),
		Message: ErrorMessage(err),
	})
}

// ReportService represents a service for managing stored reports.
type ReportService interface {
	// CreateReport stores a report and its entities, assigning its ID.
	CreateReport(ctx context.Context, report *Report) error

	// FindReportByID retrieves a report with its entities.
	// Returns ENOTFOUND if the report does not exist.
	FindReportByID(ctx context.Context, id string) (*Report, error)

	// FindReports retrieves reports matching the filter, without entities.
	FindReports(ctx context.Context, filter ReportFilter) ([]*Report, error)

	// DeleteReport permanently removes a report and its entities.
	// Returns ENOTFOUND if the report does not exist.
	DeleteReport(ctx context.Context, id string) error
}

// ReportFilter represents a filter for FindReports.
type ReportFilter struct {
	ID          *string `json:"id"`
	Name        *string `json:"name"`
	ContentHash *string `json:"contentHash"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
