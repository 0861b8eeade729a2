package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/supplier"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	Profiles supplier.ProfileService
	Ingester supplier.Ingester
	Writer   supplier.ResultWriter
	Tokens   supplier.TokenCounter

	// Corpus is filled in by the ingester before extraction starts.
	Corpus *supplier.CorpusStats
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Ingest IngestCmd `cmd:"" help:"Build a supplier profile from a company website"`
	List   ListCmd   `cmd:"" help:"List saved profiles"`
	Show   ShowCmd   `cmd:"" help:"Print a saved profile"`
	Delete DeleteCmd `cmd:"" help:"Delete a saved profile"`
}

// IngestCmd is the "ingest" subcommand.
type IngestCmd struct {
	Name        string `short:"n" help:"Company name"`
	URL         string `short:"u" name:"url" help:"Company website URL"`
	Save        bool   `short:"s" help:"Save the profile to the local database"`
	Out         string `short:"o" help:"Also write the result JSON to this file"`
	Concurrency int    `short:"c" default:"0" help:"Concurrent fetch limit (0 for no limit)"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Name  string `help:"Only show profiles for this company name"`
	Limit int    `default:"20" help:"Maximum number of profiles to show"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID string `arg:"" help:"Profile ID"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID    string `arg:"" help:"Profile ID"`
	Force bool   `help:"Confirm deletion"`
}

func (d *Dependencies) logger() *slog.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return slog.Default()
}
