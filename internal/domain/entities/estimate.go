package entities

import (
	"strings"

	"github.com/shopspring/decimal"
)

// centPlaces is the precision of every displayed monetary value.
const centPlaces = 2

// LineItem is one billable unit of an estimate.
//
// Monetary representation:
//   - UnitPrice is an exact decimal; LineTotal never goes through float64.
type LineItem struct {
	Description string          `json:"description" validate:"required"`
	Quantity    int             `json:"quantity" validate:"gt=0"`
	UnitPrice   decimal.Decimal `json:"unit_price" validate:"gt=0"`
}

func (i LineItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// EstimateDocument is a quoted, non-binding price document for a job.
//
// It is built fresh per request from validated input (see ParseEstimate),
// consumed once by the renderer and never persisted.
type EstimateDocument struct {
	ClientName     string     `json:"client_name"`
	JobType        string     `json:"job_type"`
	JobDescription string     `json:"job_description"`
	Items          []LineItem `json:"items" validate:"dive"`
	Notes          string     `json:"notes"`
}

// HasNotes reports whether the notes block should be rendered.
func (d EstimateDocument) HasNotes() bool {
	return strings.TrimSpace(d.Notes) != ""
}

// Totals are derived at render time and never stored on the document.
type Totals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// Totals computes subtotal, tax and total for the document.
// Tax is computed once from the subtotal and rounded to cents.
func (d EstimateDocument) Totals(taxRate decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, it := range d.Items {
		subtotal = subtotal.Add(it.LineTotal())
	}
	tax := subtotal.Mul(taxRate).Round(centPlaces)
	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal.Add(tax),
	}
}

// CompanyProfile identifies the issuer printed in every page header.
type CompanyProfile struct {
	Name    string
	Address string
	Phone   string
	Email   string
}

// AudioUpload is one recording received from a caller.
type AudioUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExtractionResult is the outcome of transcribe-and-extract.
type ExtractionResult struct {
	Transcript string
	Document   EstimateDocument
}
