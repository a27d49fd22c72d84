package pdf

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"quickestimate/internal/domain/entities"
	"quickestimate/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// Renderer lays out estimates as A4 PDF documents.
//
// A Renderer holds no drawing state and may be shared between goroutines:
// every Render call builds and discards its own fpdf document.
type Renderer struct {
	now      func() time.Time
	newID    func(issuedAt time.Time) string
	compress bool
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithClock sets the time source used for the estimate number and issue date.
func WithClock(now func() time.Time) Option {
	return func(r *Renderer) {
		r.now = now
	}
}

// WithIDGenerator replaces the estimate number generator.
func WithIDGenerator(fn func(issuedAt time.Time) string) Option {
	return func(r *Renderer) {
		r.newID = fn
	}
}

// WithCompression toggles page stream compression (on by default).
func WithCompression(enabled bool) Option {
	return func(r *Renderer) {
		r.compress = enabled
	}
}

func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		now:      time.Now,
		newID:    NewEstimateID,
		compress: true,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var _ interfaces.IDocumentRenderer = (*Renderer)(nil)

// Render draws doc and returns the finished PDF bytes. Any drawing or
// encoding failure aborts the whole document.
func (r *Renderer) Render(doc entities.EstimateDocument, profile entities.CompanyProfile, taxRate decimal.Decimal) ([]byte, error) {
	issuedAt := r.now()
	meta := estimateMeta{
		Number:   r.newID(issuedAt),
		IssuedOn: issuedAt.Format(dateLayout),
	}

	l := newLayout(profile, r.compress)
	l.pdf.SetCreationDate(issuedAt)
	l.pdf.SetTitle("Estimate "+meta.Number, true)
	l.pdf.SetAuthor(profile.Name, true)
	l.draw(doc, meta, taxRate)

	var buf bytes.Buffer
	if err := l.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render estimate: %w", err)
	}
	return buf.Bytes(), nil
}

// NewEstimateID returns "EST-<unix seconds>-<8 hex chars>". The random
// suffix keeps numbers distinct for estimates issued within the same second.
func NewEstimateID(issuedAt time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:8]
	return fmt.Sprintf("EST-%d-%s", issuedAt.Unix(), suffix)
}
