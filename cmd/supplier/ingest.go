package main

import (
	"fmt"
	"unicode/utf8"

	"github.com/fwojciec/supplier"
	"github.com/fwojciec/supplier/crawl"
	"github.com/fwojciec/supplier/fs"
)

// Run executes the ingest command. The result JSON is always printed; the
// returned error is non-nil when the result carries one.
func (c *IngestCmd) Run(deps *Dependencies) error {
	result := deps.Ingester.Run(deps.Ctx, c.request())
	if err := c.report(deps, result); err != nil {
		return err
	}

	if c.Save {
		record := c.record(deps, result.Summary)
		if err := deps.Profiles.CreateProfileRecord(deps.Ctx, record); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", supplier.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stderr, "Saved profile %s\n", record.ID)
	}

	return nil
}

func (c *IngestCmd) request() supplier.Request {
	return supplier.Request{CompanyName: c.Name, CompanyURL: c.URL}
}

// report prints result to stdout and, with --out, writes it to a file.
// It returns the error the result carries.
func (c *IngestCmd) report(deps *Dependencies, result supplier.Result) error {
	data, err := fs.MarshalResult(result)
	if err != nil {
		return err
	}
	if _, err := deps.Stdout.Write(data); err != nil {
		return err
	}

	if c.Out != "" {
		if err := deps.Writer.WriteResult(deps.Ctx, c.Out, result); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", supplier.ErrorMessage(err))
			return err
		}
	}

	if err := result.Err(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", supplier.ErrorMessage(err))
		return err
	}
	return nil
}

func (c *IngestCmd) record(deps *Dependencies, profile *supplier.Profile) *supplier.ProfileRecord {
	record := &supplier.ProfileRecord{
		CompanyName: profile.CompanyName,
		CompanyURL:  c.URL,
		Profile:     profile,
	}
	if deps.Corpus == nil {
		return record
	}

	record.CorpusHash = crawl.CorpusHash(deps.Corpus.Corpus)
	record.CorpusLength = utf8.RuneCountInString(deps.Corpus.Corpus)
	record.LinkCount = len(deps.Corpus.Links)

	if deps.Tokens != nil {
		n, err := deps.Tokens.CountTokens(deps.Ctx, deps.Corpus.Corpus)
		if err != nil {
			deps.logger().Warn("token count failed", "err", err)
		} else {
			record.CorpusTokens = n
		}
	}
	return record
}
