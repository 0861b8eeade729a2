package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/supplier"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	filter := supplier.ProfileRecordFilter{Limit: c.Limit}
	if c.Name != "" {
		filter.CompanyName = &c.Name
	}

	records, err := deps.Profiles.FindProfileRecords(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", supplier.ErrorMessage(err))
		return err
	}

	if len(records) == 0 {
		fmt.Fprintln(deps.Stdout, "No profiles found. Use 'supplier ingest --save' to create one.")
		return nil
	}

	for _, r := range records {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %s\n", r.ID, r.CreatedAt.Format(time.DateTime), r.CompanyName, r.CompanyURL)
	}

	return nil
}
