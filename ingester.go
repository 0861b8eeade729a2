package supplier

import "context"

// ProfileExtractor turns a corpus into a Profile using a completion service.
type ProfileExtractor interface {
	// ExtractProfile issues exactly one completion call. The returned
	// profile's CompanyName is always companyName.
	ExtractProfile(ctx context.Context, corpus, companyName string) (*Profile, error)
}

// Ingester runs the whole pipeline for one request.
type Ingester interface {
	// Ingest validates the request, renders the seed page, filters its
	// links, aggregates their text and extracts a profile.
	// Returns EINVALID without side effects if the request is empty.
	Ingest(ctx context.Context, req Request) (*Profile, error)

	// Run is the entry call: it ingests req and reports the outcome as a
	// Result, logging any failure. It never returns an error.
	Run(ctx context.Context, req Request) Result
}
