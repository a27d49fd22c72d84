package interfaces

import (
	"context"
	"encoding/json"
)

// IEstimateExtractor turns a transcript into the raw estimate JSON object
// (client_name, job_type, job_description, items, notes).
//
// The returned payload is untrusted and must go through entities.ParseEstimate.
type IEstimateExtractor interface {
	Extract(ctx context.Context, transcript string) (json.RawMessage, error)
}
