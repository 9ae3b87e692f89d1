package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/pmst"
	"github.com/google/uuid"
	"github.com/ncruces/go-sqlite3"
)

// Compile-time interface verification.
var _ pmst.ReportService = (*ReportService)(nil)

// ReportService implements pmst.ReportService using SQLite.
type ReportService struct {
	db *DB
}

// NewReportService creates a new ReportService.
func NewReportService(db *DB) *ReportService {
	return &ReportService{db: db}
}

// CreateReport stores a report and all of its entities in one transaction.
// On success it assigns the report ID and, if unset, the import time. On
// failure the report is left unchanged.
func (s *ReportService) CreateReport(ctx context.Context, report *pmst.Report) error {
	if err := report.Validate(); err != nil {
		return err
	}
	for _, kind := range pmst.EntityKinds {
		for _, e := range report.Entities(kind) {
			if err := e.Validate(); err != nil {
				return err
			}
			if e.Kind != kind {
				return pmst.Errorf(pmst.EINVALID, "entity %s filed under %s has kind %s", e.ID, kind, e.Kind)
			}
		}
	}

	id := uuid.New().String()
	importedAt := report.ImportedAt
	if importedAt.IsZero() {
		importedAt = time.Now().UTC().Truncate(time.Second)
	}

	var createdAt *string
	if report.CreatedAt != nil {
		v := report.CreatedAt.Format(dateLayout)
		createdAt = &v
	}
	coords, err := encodeJSON(nonNil(report.Coordinates), "coordinates")
	if err != nil {
		return err
	}
	urls, err := encodeJSON(nonNil(report.URLs), "urls")
	if err != nil {
		return err
	}
	problems, err := encodeJSON(nonNil(report.Problems), "problems")
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO reports (id, name, format, content_hash, created_at, buffer, coordinates, urls, problems, imported_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, id, report.Name, string(report.Format), report.ContentHash, createdAt, report.Buffer,
		coords, urls, problems, importedAt.Format(time.RFC3339)); err != nil {
		return err
	}

	for _, kind := range pmst.EntityKinds {
		for i, e := range report.Entities(kind) {
			bioregions, err := encodeJSON(nonNil(e.Bioregions), "bioregions")
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO entities (report_id, kind, entity_id, name, url, status, registry_id, bioregions, position)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			`, id, string(kind), e.ID, e.Name, e.URL, string(e.Status), e.RegistryID, bioregions, i); err != nil {
				if isConstraint(err) {
					return pmst.Errorf(pmst.ECONFLICT, "duplicate %s entity %s", kind, e.ID)
				}
				return err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	report.ID = id
	report.ImportedAt = importedAt
	return nil
}

// FindReportByID retrieves a report with its entities.
func (s *ReportService) FindReportByID(ctx context.Context, id string) (*pmst.Report, error) {
	report, err := scanReport(s.db.QueryRowContext(ctx, `
		SELECT id, name, format, content_hash, created_at, buffer, coordinates, urls, problems, imported_at
		FROM reports
		WHERE id = ?
	`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, pmst.Errorf(pmst.ENOTFOUND, "report not found")
	}
	if err != nil {
		return nil, err
	}

	if err := s.attachEntities(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

// FindReports retrieves reports matching the filter, newest import first.
// Entity collections are not loaded.
func (s *ReportService) FindReports(ctx context.Context, filter pmst.ReportFilter) ([]*pmst.Report, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, name, format, content_hash, created_at, buffer, coordinates, urls, problems, imported_at FROM reports WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Name != nil {
		query.WriteString(" AND name = ?")
		args = append(args, *filter.Name)
	}
	if filter.ContentHash != nil {
		query.WriteString(" AND content_hash = ?")
		args = append(args, *filter.ContentHash)
	}

	query.WriteString(" ORDER BY imported_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []*pmst.Report
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}

	return reports, rows.Err()
}

// DeleteReport permanently removes a report and its entities.
func (s *ReportService) DeleteReport(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM reports WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return pmst.Errorf(pmst.ENOTFOUND, "report not found")
	}

	return nil
}

func (s *ReportService) attachEntities(ctx context.Context, report *pmst.Report) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT kind, entity_id, name, url, status, registry_id, bioregions
		FROM entities
		WHERE report_id = ?
		ORDER BY kind, position
	`, report.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	byKind := make(map[pmst.EntityKind][]*pmst.Entity)
	for rows.Next() {
		var e pmst.Entity
		var kind, status, bioregions string
		if err := rows.Scan(&kind, &e.ID, &e.Name, &e.URL, &status, &e.RegistryID, &bioregions); err != nil {
			return err
		}
		e.Kind = pmst.EntityKind(kind)
		e.Status = pmst.ConservationStatus(status)
		if err := decodeJSON(bioregions, "bioregions", &e.Bioregions); err != nil {
			return err
		}
		if len(e.Bioregions) == 0 {
			e.Bioregions = nil
		}
		byKind[e.Kind] = append(byKind[e.Kind], &e)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for kind, entities := range byKind {
		report.SetEntities(kind, entities)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanReport(row scanner) (*pmst.Report, error) {
	var report pmst.Report
	var format, coords, urls, problems, importedAt string
	var createdAt sql.NullString
	var buffer sql.NullFloat64

	if err := row.Scan(&report.ID, &report.Name, &format, &report.ContentHash, &createdAt, &buffer,
		&coords, &urls, &problems, &importedAt); err != nil {
		return nil, err
	}

	report.Format = pmst.SourceFormat(format)
	if createdAt.Valid {
		t, err := time.Parse(dateLayout, createdAt.String)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at: %w", err)
		}
		report.CreatedAt = &t
	}
	if buffer.Valid {
		report.Buffer = &buffer.Float64
	}
	if err := decodeJSON(coords, "coordinates", &report.Coordinates); err != nil {
		return nil, err
	}
	if err := decodeJSON(urls, "urls", &report.URLs); err != nil {
		return nil, err
	}
	if err := decodeJSON(problems, "problems", &report.Problems); err != nil {
		return nil, err
	}
	if len(report.Coordinates) == 0 {
		report.Coordinates = nil
	}
	if len(report.Problems) == 0 {
		report.Problems = nil
	}

	var err error
	report.ImportedAt, err = parseRFC3339(importedAt, "imported_at")
	if err != nil {
		return nil, err
	}

	return &report, nil
}

func isConstraint(err error) bool {
	return errors.Is(err, sqlite3.CONSTRAINT) || strings.Contains(err.Error(), "constraint failed")
}

// nonNil returns s, or an empty slice so that JSON columns hold [] not null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
