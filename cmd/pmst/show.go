package main

import (
	"fmt"

	"github.com/fwojciec/pmst"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	report, err := deps.Reports.FindReportByID(deps.Ctx, c.ID)
	if pmst.ErrorCode(err) == pmst.ENOTFOUND {
		fmt.Fprintf(deps.Stderr, "error: report %q not found. Use 'pmst list' to see saved reports.\n", c.ID)
		return err
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pmst.ErrorMessage(err))
		return err
	}

	if c.JSON {
		return writeJSON(deps.Stdout, report)
	}
	writeReport(deps.Stdout, report)
	return nil
}
