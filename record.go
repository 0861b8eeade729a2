package supplier

import (
	"context"
	"time"
)

// ProfileRecord is a stored ingestion outcome.
type ProfileRecord struct {
	ID           string    `json:"id"`
	CompanyName  string    `json:"companyName"`
	CompanyURL   string    `json:"companyURL"`
	Profile      *Profile  `json:"profile"`
	CorpusHash   string    `json:"corpusHash"`
	CorpusLength int       `json:"corpusLength"`
	CorpusTokens int       `json:"corpusTokens"`
	LinkCount    int       `json:"linkCount"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Validate returns an error if the record contains invalid fields.
func (r *ProfileRecord) Validate() error {
	if r.CompanyName == "" && r.CompanyURL == "" {
		return Errorf(EINVALID, "profile record name or URL required")
	}
	if r.Profile == nil {
		return Errorf(EINVALID, "profile record profile required")
	}
	return nil
}

// CorpusStats describes the corpus an ingestion produced.
type CorpusStats struct {
	Links  []string
	Corpus string
}

// ProfileService represents a service for managing stored profiles.
type ProfileService interface {
	// CreateProfileRecord stores a new record and sets its ID and CreatedAt.
	CreateProfileRecord(ctx context.Context, record *ProfileRecord) error

	// FindProfileRecordByID retrieves a record by ID.
	// Returns ENOTFOUND if the record does not exist.
	FindProfileRecordByID(ctx context.Context, id string) (*ProfileRecord, error)

	// FindProfileRecords retrieves records matching the filter, newest first.
	FindProfileRecords(ctx context.Context, filter ProfileRecordFilter) ([]*ProfileRecord, error)

	// DeleteProfileRecord permanently removes a record.
	// Returns ENOTFOUND if the record does not exist.
	DeleteProfileRecord(ctx context.Context, id string) error
}

// ProfileRecordFilter represents a filter for FindProfileRecords.
type ProfileRecordFilter struct {
	ID          *string `json:"id"`
	CompanyName *string `json:"companyName"`
	CompanyURL  *string `json:"companyURL"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
