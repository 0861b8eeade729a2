package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/supplier"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	record, err := deps.Profiles.FindProfileRecordByID(deps.Ctx, c.ID)
	if err != nil {
		if supplier.ErrorCode(err) == supplier.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: profile %q not found. Use 'supplier list' to see saved profiles.\n", c.ID)
			return err
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", supplier.ErrorMessage(err))
		return err
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(deps.Stdout, string(data))
	return nil
}
