package main

import (
	"fmt"

	"github.com/fwojciec/pmst"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	reports, err := deps.Reports.FindReports(deps.Ctx, pmst.ReportFilter{Limit: c.Limit})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pmst.ErrorMessage(err))
		return err
	}

	if len(reports) == 0 {
		fmt.Fprintln(deps.Stdout, "No reports found. Use 'pmst report --save' to add one.")
		return nil
	}

	for _, r := range reports {
		created := "-"
		if r.CreatedAt != nil {
			created = r.CreatedAt.Format("2006-01-02")
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %s\n", r.ID, r.Name, created, r.Format)
	}

	return nil
}
