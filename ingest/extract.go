package ingest

import (
	"context"

	"github.com/fwojciec/supplier"
)

// Ensure ExtractionClient implements supplier.ProfileExtractor at compile time.
var _ supplier.ProfileExtractor = (*ExtractionClient)(nil)

// ExtractionClient turns a corpus into a Profile with a single completion
// call.
type ExtractionClient struct {
	Completer supplier.Completer
}

// ExtractProfile submits the extraction prompt for corpus and parses the
// reply. The parsed Company_Name is always replaced with companyName, even
// when companyName is empty.
func (c *ExtractionClient) ExtractProfile(ctx context.Context, corpus, companyName string) (*supplier.Profile, error) {
	content, err := c.Completer.Complete(ctx, supplier.ExtractionMessages(corpus))
	if err != nil {
		return nil, supplier.Errorf(supplier.ECOMPLETION, "completion failed: %v", err)
	}

	profile, err := supplier.ParseProfile(content)
	if err != nil {
		return nil, err
	}

	profile.CompanyName = companyName
	return profile, nil
}
