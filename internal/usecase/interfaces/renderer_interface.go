package interfaces

import (
	"quickestimate/internal/domain/entities"

	"github.com/shopspring/decimal"
)

// IDocumentRenderer lays out a validated estimate as a finished document.
type IDocumentRenderer interface {
	Render(doc entities.EstimateDocument, profile entities.CompanyProfile, taxRate decimal.Decimal) ([]byte, error)
}
