package main

import (
	"fmt"

	"github.com/fwojciec/pmst"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return pmst.Errorf(pmst.EINVALID, "use --force to confirm deletion")
	}

	if err := deps.Reports.DeleteReport(deps.Ctx, c.ID); err != nil {
		if pmst.ErrorCode(err) == pmst.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: report %q not found. Use 'pmst list' to see saved reports.\n", c.ID)
			return err
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", pmst.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted report %s\n", c.ID)
	return nil
}
