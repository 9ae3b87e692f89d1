package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/pmst"
)

// Run executes the report command.
func (c *ReportCmd) Run(deps *Dependencies) error {
	format, err := pmst.FormatFromPath(c.File)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pmst.ErrorMessage(err))
		return err
	}
	if format == pmst.FormatPDF {
		err := pmst.Errorf(pmst.ENOTIMPLEMENTED, "PDF reports are not supported; save the report as HTML and try again")
		fmt.Fprintf(deps.Stderr, "error: %s\n", pmst.ErrorMessage(err))
		return err
	}

	data, err := os.ReadFile(c.File)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return fmt.Errorf("failed to read report: %w", err)
	}

	doc, err := deps.Parser.Parse(string(data))
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pmst.ErrorMessage(err))
		return err
	}

	report := pmst.BuildReport(doc, format)
	report.Name = c.Name
	if report.Name == "" {
		report.Name = strings.TrimSuffix(filepath.Base(c.File), filepath.Ext(c.File))
	}
	report.ContentHash = computeHash(data)
	for _, p := range report.Problems {
		deps.Logger.Warn("field not extracted", "field", p.Field, "code", p.Code, "reason", p.Message)
	}

	if c.Fetch {
		res, err := deps.Enricher.Enrich(deps.Ctx, report)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %v\n", err)
			return err
		}
		if len(res.Skips) > 0 {
			fmt.Fprintf(deps.Stderr, "Skipped %d registry page(s)\n", len(res.Skips))
		}
	}

	if c.Save {
		if !c.Force {
			existing, err := deps.Reports.FindReports(deps.Ctx, pmst.ReportFilter{ContentHash: &report.ContentHash, Limit: 1})
			if err != nil {
				fmt.Fprintf(deps.Stderr, "error: %s\n", pmst.ErrorMessage(err))
				return err
			}
			if len(existing) > 0 {
				fmt.Fprintf(deps.Stderr, "error: this file was already saved as %s. Use --force to save it again.\n", existing[0].ID)
				return pmst.Errorf(pmst.ECONFLICT, "report already saved as %s", existing[0].ID)
			}
		}
		if err := deps.Reports.CreateReport(deps.Ctx, report); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", pmst.ErrorMessage(err))
			return err
		}
	}

	if c.JSON {
		return writeJSON(deps.Stdout, report)
	}
	writeReport(deps.Stdout, report)
	if c.Save {
		fmt.Fprintf(deps.Stdout, "\nSaved report %s\n", report.ID)
	}
	return nil
}
