package response

import (
	"encoding/json"

	"quickestimate/internal/domain/entities"
)

// TranscribeAndParseResponse is the body of a successful transcribe-and-parse call.
// ParsedJSON has the same shape generate-pdf accepts.
type TranscribeAndParseResponse struct {
	Transcript string           `json:"transcript"`
	ParsedJSON EstimateResponse `json:"parsed_json"`
}

type EstimateResponse struct {
	ClientName     string             `json:"client_name"`
	JobType        string             `json:"job_type"`
	JobDescription string             `json:"job_description"`
	Items          []LineItemResponse `json:"items"`
	Notes          string             `json:"notes"`
}

type LineItemResponse struct {
	Description string      `json:"description"`
	Quantity    int         `json:"quantity"`
	UnitPrice   json.Number `json:"unit_price" swaggertype:"number"`
}

func FromEstimate(doc entities.EstimateDocument) EstimateResponse {
	items := make([]LineItemResponse, 0, len(doc.Items))
	for _, it := range doc.Items {
		items = append(items, LineItemResponse{
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   json.Number(it.UnitPrice.String()),
		})
	}
	return EstimateResponse{
		ClientName:     doc.ClientName,
		JobType:        doc.JobType,
		JobDescription: doc.JobDescription,
		Items:          items,
		Notes:          doc.Notes,
	}
}

func FromExtraction(r entities.ExtractionResult) TranscribeAndParseResponse {
	return TranscribeAndParseResponse{
		Transcript: r.Transcript,
		ParsedJSON: FromEstimate(r.Document),
	}
}
