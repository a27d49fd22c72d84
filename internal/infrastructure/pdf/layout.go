package pdf

import (
	"errors"
	"fmt"
	"strings"

	"quickestimate/internal/domain/entities"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// ErrUnsupportedText is returned when text cannot be drawn with the core
// fonts, which only cover Windows-1252.
var ErrUnsupportedText = errors.New("unsupported character encoding")

const (
	fontFamily = "Helvetica"

	// The footer band starts footerOffset mm above the page bottom.
	// pageBreakMargin must stay larger so body content never reaches it.
	footerOffset     = 30.0
	footerLineHeight = 4.0
	pageBreakMargin  = 32.0

	keyColumnWidth  = 35.0
	rowHeight       = 7.0
	lineHeight      = 5.0
	headingHeight   = 8.0
	totalsHeight    = 6.0
	signatureWidth  = 100.0
	blockSpacing    = 4.0
	sectionSpacing  = 8.0
	signatureSpacer = 14.0

	// A row this tall still fits below the header on a fresh page.
	maxDescriptionLines = 30
)

const disclaimer = "This estimate is valid for 30 days from the date issued. " +
	"Prices may vary based on actual time and materials required. " +
	"Final invoice may differ from this estimate."

type column struct {
	title string
	width float64
	align string
}

var itemColumns = [4]column{
	{title: "Description", width: 70, align: "L"},
	{title: "Qty", width: 20, align: "R"},
	{title: "Unit Price", width: 30, align: "R"},
	{title: "Total", width: 30, align: "R"},
}

type estimateMeta struct {
	Number   string
	IssuedOn string
}

// layout owns one fpdf document for the duration of a single render.
// fpdf keeps the first error it sees and ignores later drawing calls, so
// drawing code only checks for failure once, in Output.
type layout struct {
	pdf     *fpdf.Fpdf
	enc     *encoding.Encoder
	company string
	contact string
	accept  string
	footer  string
}

func newLayout(profile entities.CompanyProfile, compress bool) *layout {
	l := &layout{
		pdf: fpdf.New("P", "mm", "A4", ""),
		enc: charmap.Windows1252.NewEncoder(),
	}
	l.pdf.SetCompression(compress)
	l.pdf.SetAutoPageBreak(true, pageBreakMargin)

	l.company = l.text(profile.Name)
	l.contact = l.text(profile.Address + "\n" + profile.Phone + "\n" + profile.Email)
	l.accept = l.text("By signing below, you accept this estimate and authorize " + profile.Name + " to proceed.")
	l.footer = l.text(disclaimer)

	l.pdf.SetHeaderFunc(l.drawHeader)
	l.pdf.SetFooterFunc(l.drawFooter)
	return l
}

// text converts s to the core font encoding, recording a failure on the
// document instead of drawing replacement glyphs.
func (l *layout) text(s string) string {
	out, err := l.enc.String(s)
	if err != nil {
		l.pdf.SetError(fmt.Errorf("%w: %q", ErrUnsupportedText, s))
		return ""
	}
	return out
}

func (l *layout) drawHeader() {
	l.pdf.SetFont(fontFamily, "B", 16)
	l.pdf.CellFormat(0, 10, l.company, "", 1, "", false, 0, "")
	l.pdf.SetFont(fontFamily, "", 10)
	l.pdf.MultiCell(0, lineHeight, l.contact, "", "L", false)
	l.pdf.Ln(blockSpacing)
}

func (l *layout) drawFooter() {
	// The footer sits inside the reserved bottom margin; it must not
	// trigger a page break of its own.
	l.pdf.SetAutoPageBreak(false, 0)
	l.pdf.SetY(-footerOffset)
	l.pdf.SetFont(fontFamily, "", 8)
	l.pdf.MultiCell(0, footerLineHeight, l.footer, "", "C", false)
	l.pdf.SetAutoPageBreak(true, pageBreakMargin)
}

func (l *layout) draw(doc entities.EstimateDocument, meta estimateMeta, taxRate decimal.Decimal) {
	l.pdf.AddPage()

	l.keyValue("Estimate #", meta.Number)
	l.keyValue("Date", meta.IssuedOn)
	l.pdf.Ln(blockSpacing)

	l.heading("Client Information")
	l.paragraph(doc.ClientName)
	l.pdf.Ln(blockSpacing)

	l.heading("Job Details")
	l.keyValue("Type", doc.JobType)
	l.paragraph("Description: " + doc.JobDescription)
	l.pdf.Ln(blockSpacing)

	l.heading("Itemized Details")
	l.itemTable(doc.Items)
	l.totals(doc.Totals(taxRate), taxRate)

	if doc.HasNotes() {
		l.heading("Notes & Terms")
		l.paragraph(doc.Notes)
		l.pdf.Ln(sectionSpacing)
	}

	l.signature(meta.IssuedOn)
}

func (l *layout) keyValue(key, value string) {
	l.pdf.SetFont(fontFamily, "B", 10)
	l.pdf.CellFormat(keyColumnWidth, rowHeight, l.text(key+":"), "", 0, "", false, 0, "")
	l.pdf.SetFont(fontFamily, "", 10)
	l.pdf.CellFormat(0, rowHeight, l.text(value), "", 1, "", false, 0, "")
}

func (l *layout) heading(title string) {
	l.pdf.SetFont(fontFamily, "B", 12)
	l.pdf.CellFormat(0, headingHeight, l.text(title), "", 1, "", false, 0, "")
}

func (l *layout) paragraph(s string) {
	l.pdf.SetFont(fontFamily, "", 10)
	l.pdf.MultiCell(0, lineHeight, l.text(s), "", "L", false)
}

func (l *layout) itemTable(items []entities.LineItem) {
	l.pdf.SetFont(fontFamily, "B", 10)
	for _, c := range itemColumns {
		l.pdf.CellFormat(c.width, rowHeight, c.title, "1", 0, "C", false, 0, "")
	}
	l.pdf.Ln(-1)

	l.pdf.SetFont(fontFamily, "", 10)
	for _, it := range items {
		l.itemRow(it)
	}
}

// itemRow draws one bordered row. The description wraps inside its column
// and the row grows to fit it; the whole row always lands on one page.
func (l *layout) itemRow(it entities.LineItem) {
	lines := l.wrap(l.text(it.Description), itemColumns[0].width)
	if len(lines) > maxDescriptionLines {
		lines = lines[:maxDescriptionLines]
		lines[maxDescriptionLines-1] = l.fit(lines[maxDescriptionLines-1]+" ...", itemColumns[0].width)
	}
	h := max(rowHeight, float64(len(lines))*lineHeight)
	l.ensureSpace(h)

	x, y := l.pdf.GetXY()
	desc := itemColumns[0]
	if len(lines) == 1 {
		l.pdf.CellFormat(desc.width, h, lines[0], "1", 0, desc.align, false, 0, "")
	} else {
		l.pdf.Rect(x, y, desc.width, h, "D")
		for i, line := range lines {
			l.pdf.SetXY(x, y+float64(i)*lineHeight)
			l.pdf.CellFormat(desc.width, lineHeight, line, "", 0, desc.align, false, 0, "")
		}
		l.pdf.SetXY(x+desc.width, y)
	}

	cells := [3]string{
		fmt.Sprintf("%d", it.Quantity),
		formatMoney(it.UnitPrice),
		formatMoney(it.LineTotal()),
	}
	for i, c := range itemColumns[1:] {
		ln := 0
		if i == len(cells)-1 {
			ln = 1
		}
		l.pdf.CellFormat(c.width, h, cells[i], "1", ln, c.align, false, 0, "")
	}
}

// ensureSpace starts a new page when a block of height h would cross the
// page break trigger.
func (l *layout) ensureSpace(h float64) {
	_, pageHeight := l.pdf.GetPageSize()
	_, _, _, bottom := l.pdf.GetMargins()
	if l.pdf.GetY()+h > pageHeight-bottom {
		l.pdf.AddPage()
	}
}

func (l *layout) totals(t entities.Totals, taxRate decimal.Decimal) {
	l.pdf.Ln(2)
	l.pdf.CellFormat(0, totalsHeight, "Subtotal: "+formatMoney(t.Subtotal), "", 1, "R", false, 0, "")
	l.pdf.CellFormat(0, totalsHeight, "Tax ("+formatPercent(taxRate)+"): "+formatMoney(t.Tax), "", 1, "R", false, 0, "")
	l.pdf.CellFormat(0, totalsHeight, "Total: "+formatMoney(t.Total), "", 1, "R", false, 0, "")
	l.pdf.Ln(sectionSpacing)
}

func (l *layout) signature(issuedOn string) {
	l.pdf.SetFont(fontFamily, "", 10)
	l.pdf.CellFormat(0, totalsHeight, l.accept, "", 1, "", false, 0, "")
	l.pdf.Ln(signatureSpacer)
	l.pdf.CellFormat(signatureWidth, totalsHeight, "Client Signature______________________", "", 0, "", false, 0, "")
	l.pdf.CellFormat(0, totalsHeight, l.text("Date "+issuedOn), "", 1, "", false, 0, "")
}

// wrap splits an encoded string into lines that fit a cell of width w.
// Words wider than the cell are split across lines.
func (l *layout) wrap(s string, w float64) []string {
	limit := w - 2*l.pdf.GetCellMargin()
	var lines []string
	line := ""
	for _, word := range strings.Fields(s) {
		candidate := word
		if line != "" {
			candidate = line + " " + word
		}
		if l.pdf.GetStringWidth(candidate) <= limit {
			line = candidate
			continue
		}
		if line != "" {
			lines = append(lines, line)
		}
		for len(word) > 1 && l.pdf.GetStringWidth(word) > limit {
			n := len(word) - 1
			for n > 1 && l.pdf.GetStringWidth(word[:n]) > limit {
				n--
			}
			lines = append(lines, word[:n])
			word = word[n:]
		}
		line = word
	}
	if line != "" || len(lines) == 0 {
		lines = append(lines, line)
	}
	return lines
}

// fit truncates an encoded string with "..." so it stays inside a cell of width w.
func (l *layout) fit(s string, w float64) string {
	limit := w - 2*l.pdf.GetCellMargin()
	if l.pdf.GetStringWidth(s) <= limit {
		return s
	}
	const ellipsis = "..."
	for len(s) > 0 && l.pdf.GetStringWidth(s+ellipsis) > limit {
		s = s[:len(s)-1]
	}
	return s + ellipsis
}
