package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pmst"
)

// Ensure LoggingReportService implements pmst.ReportService.
var _ pmst.ReportService = (*LoggingReportService)(nil)

// LoggingReportService wraps a ReportService with operation logging.
type LoggingReportService struct {
	next   pmst.ReportService
	logger *slog.Logger
}

// NewLoggingReportService creates a new LoggingReportService.
func NewLoggingReportService(next pmst.ReportService, logger *slog.Logger) *LoggingReportService {
	return &LoggingReportService{next: next, logger: logger}
}

// CreateReport delegates to the wrapped service and logs the new ID.
func (s *LoggingReportService) CreateReport(ctx context.Context, report *pmst.Report) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("create report",
			"id", report.ID,
			"name", report.Name,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateReport(ctx, report)
}

// FindReportByID delegates to the wrapped service and logs the lookup.
func (s *LoggingReportService) FindReportByID(ctx context.Context, id string) (report *pmst.Report, err error) {
	defer func(begin time.Time) {
		s.logger.Info("find report",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindReportByID(ctx, id)
}

// FindReports delegates to the wrapped service and logs the result count.
func (s *LoggingReportService) FindReports(ctx context.Context, filter pmst.ReportFilter) (reports []*pmst.Report, err error) {
	defer func(begin time.Time) {
		s.logger.Info("find reports",
			"count", len(reports),
			"limit", filter.Limit,
			"offset", filter.Offset,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindReports(ctx, filter)
}

// DeleteReport delegates to the wrapped service and logs the deletion.
func (s *LoggingReportService) DeleteReport(ctx context.Context, id string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("delete report",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DeleteReport(ctx, id)
}
