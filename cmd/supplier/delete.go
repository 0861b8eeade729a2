package main

import (
	"fmt"

	"github.com/fwojciec/supplier"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return supplier.Errorf(supplier.EINVALID, "use --force to confirm deletion")
	}

	if err := deps.Profiles.DeleteProfileRecord(deps.Ctx, c.ID); err != nil {
		if supplier.ErrorCode(err) == supplier.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: profile %q not found. Use 'supplier list' to see saved profiles.\n", c.ID)
			return err
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", supplier.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted profile %s\n", c.ID)
	return nil
}
