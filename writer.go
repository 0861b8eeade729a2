package supplier

import "context"

// ResultWriter persists an ingestion Result outside the process.
type ResultWriter interface {
	WriteResult(ctx context.Context, path string, result Result) error
}
