// Package invoice renders a sale as a printable A4 PDF invoice.
package invoice

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/bots-hq/truegrow-kashmir-connect/pkg/money"
	"github.com/go-pdf/fpdf"
)

// Line is one row of the item table
type Line struct {
	Description string
	Quantity    int
	Unit        string
	UnitPrice   float64
	Amount      float64
}

// Document is everything printed on an invoice
type Document struct {
	BusinessName    string
	BusinessAddress string
	BusinessPhone   string
	InvoiceNumber   string
	Date            time.Time
	CustomerID      string
	CustomerName    string
	PaymentStatus   string
	Lines           []Line
	Subtotal        float64
	TaxLabel        string
	TaxAmount       float64
	Total           float64
	GeneratedAt     time.Time
}

type rgb struct{ r, g, b int }

var (
	brandGreen  = rgb{34, 197, 94}
	badgeOrange = rgb{249, 115, 22}
	textDark    = rgb{31, 41, 55}
	textMuted   = rgb{107, 114, 128}
	borderGray  = rgb{229, 231, 235}
	rowShade    = rgb{249, 250, 251}
	white       = rgb{255, 255, 255}
)

const (
	margin       = 15.0
	headerHeight = 40.0
	rowHeight    = 8.0
	footerSpace  = 25.0
)

var (
	columnTitles = []string{"#", "Item Description", "Qty", "Unit Price", "Amount"}
	columnWidths = []float64{12, 78, 25, 32.5, 32.5}
	columnAligns = []string{"C", "L", "C", "R", "R"}
)

// Renderer draws invoices. The zero value is not usable; call New.
type Renderer struct {
	currency string
	compress bool
}

// asciiSymbols spells currency signs the cp1252 core fonts cannot draw
var asciiSymbols = map[string]string{
	"₹": "Rs.",
	"₨": "Rs.",
}

// Option configures a Renderer
type Option func(*Renderer)

// WithCurrency sets the symbol printed before amounts
func WithCurrency(symbol string) Option {
	return func(r *Renderer) { r.currency = symbol }
}

// WithCompression toggles content stream compression
func WithCompression(on bool) Option {
	return func(r *Renderer) { r.compress = on }
}

// New returns a Renderer with compression on and no currency symbol
func New(opts ...Option) *Renderer {
	r := &Renderer{compress: true}
	for _, opt := range opts {
		opt(r)
	}
	r.currency = printableSymbol(r.currency)
	return r
}

// Filename is the download name for an invoice
func Filename(invoiceNumber string) string {
	return "Invoice-" + invoiceNumber + ".pdf"
}

// Render writes doc as a PDF to w
func (r *Renderer) Render(w io.Writer, doc *Document) error {
	pdf := r.build(doc)
	if err := pdf.Error(); err != nil {
		return fmt.Errorf("render invoice %s: %w", doc.InvoiceNumber, err)
	}
	return pdf.Output(w)
}

func (r *Renderer) build(doc *Document) *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(r.compress)
	pdf.SetTitle(Filename(doc.InvoiceNumber), false)
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(false, footerSpace)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	generated := doc.GeneratedAt
	if generated.IsZero() {
		generated = time.Now()
	}
	pdf.SetFooterFunc(func() {
		pdf.SetY(-18)
		setText(pdf, textMuted)
		pdf.SetFont("Helvetica", "", 8)
		pdf.CellFormat(0, 5, "Generated on "+generated.Format("02 Jan 2006 15:04"), "", 1, "C", false, 0, "")
		pdf.CellFormat(0, 5, "Page "+strconv.Itoa(pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	r.drawHeader(pdf, doc, tr)
	r.drawDetails(pdf, doc, tr)
	pdf.SetY(headerHeight + 48)
	r.drawTableHeader(pdf)
	r.drawRows(pdf, doc, tr)
	r.drawTotals(pdf, doc)
	r.drawThanks(pdf)
	return pdf
}

func (r *Renderer) drawHeader(pdf *fpdf.Fpdf, doc *Document, tr func(string) string) {
	pageW, _ := pdf.GetPageSize()
	setFill(pdf, brandGreen)
	pdf.Rect(0, 0, pageW, headerHeight, "F")

	setText(pdf, white)
	pdf.SetFont("Helvetica", "B", 20)
	pdf.Text(margin, 18, tr(doc.BusinessName))

	pdf.SetFont("Helvetica", "", 9)
	y := 25.0
	for _, line := range []string{doc.BusinessAddress, doc.BusinessPhone} {
		if line == "" {
			continue
		}
		pdf.Text(margin, y, tr(line))
		y += 5
	}

	pdf.SetFont("Helvetica", "B", 24)
	label := "INVOICE"
	pdf.Text(pageW-margin-pdf.GetStringWidth(label), 24, label)
}

func (r *Renderer) drawDetails(pdf *fpdf.Fpdf, doc *Document, tr func(string) string) {
	pageW, _ := pdf.GetPageSize()
	top := headerHeight + 8
	boxW := pageW - 2*margin

	setFill(pdf, rowShade)
	setDraw(pdf, borderGray)
	pdf.Rect(margin, top, boxW, 32, "FD")

	customer := doc.CustomerID
	if doc.CustomerName != "" {
		customer = doc.CustomerName + " (" + doc.CustomerID + ")"
	}
	rows := [][2]string{
		{"Invoice #:", doc.InvoiceNumber},
		{"Date:", doc.Date.Format("02 Jan 2006")},
		{"Customer:", customer},
	}
	for i, row := range rows {
		y := top + 9 + float64(i)*8
		setText(pdf, textMuted)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.Text(margin+5, y, row[0])
		setText(pdf, textDark)
		pdf.SetFont("Helvetica", "", 10)
		pdf.Text(margin+30, y, tr(row[1]))
	}

	status := strings.ToUpper(doc.PaymentStatus)
	badge := badgeOrange
	if strings.EqualFold(doc.PaymentStatus, "paid") {
		badge = brandGreen
	}
	pdf.SetFont("Helvetica", "B", 10)
	badgeW := pdf.GetStringWidth(status) + 10
	badgeX := margin + boxW - badgeW - 5
	setFill(pdf, badge)
	pdf.RoundedRect(badgeX, top+5, badgeW, 8, 2, "1234", "F")
	setText(pdf, white)
	pdf.SetXY(badgeX, top+5)
	pdf.CellFormat(badgeW, 8, status, "", 0, "C", false, 0, "")
}

func (r *Renderer) drawTableHeader(pdf *fpdf.Fpdf) {
	setFill(pdf, brandGreen)
	setText(pdf, white)
	setDraw(pdf, brandGreen)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetX(margin)
	for i, title := range columnTitles {
		pdf.CellFormat(columnWidths[i], rowHeight+1, title, "1", 0, columnAligns[i], true, 0, "")
	}
	pdf.Ln(-1)
}

func (r *Renderer) drawRows(pdf *fpdf.Fpdf, doc *Document, tr func(string) string) {
	_, pageH := pdf.GetPageSize()
	pdf.SetFont("Helvetica", "", 9)
	setDraw(pdf, borderGray)

	for i, line := range doc.Lines {
		if pdf.GetY()+rowHeight > pageH-footerSpace {
			pdf.AddPage()
			r.drawTableHeader(pdf)
			pdf.SetFont("Helvetica", "", 9)
			setDraw(pdf, borderGray)
		}
		setText(pdf, textDark)
		setFill(pdf, rowShade)
		shaded := i%2 == 1

		qty := strconv.Itoa(line.Quantity)
		if line.Unit != "" {
			qty += " " + line.Unit
		}
		cells := []string{
			strconv.Itoa(i + 1),
			tr(line.Description),
			qty,
			r.amount(line.UnitPrice),
			r.amount(line.Amount),
		}
		pdf.SetX(margin)
		for c, text := range cells {
			pdf.CellFormat(columnWidths[c], rowHeight, text, "B", 0, columnAligns[c], shaded, 0, "")
		}
		pdf.Ln(-1)
	}
}

func (r *Renderer) drawTotals(pdf *fpdf.Fpdf, doc *Document) {
	pageW, pageH := pdf.GetPageSize()
	if pdf.GetY()+40 > pageH-footerSpace {
		pdf.AddPage()
	}
	labelW, valueW := 40.0, 40.0
	x := pageW - margin - labelW - valueW

	taxLabel := doc.TaxLabel
	if taxLabel == "" {
		taxLabel = "Tax"
	}

	pdf.Ln(6)
	setText(pdf, textDark)
	for _, row := range [][2]string{
		{"Subtotal:", r.amount(doc.Subtotal)},
		{taxLabel + ":", r.amount(doc.TaxAmount)},
	} {
		pdf.SetX(x)
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(labelW, 7, row[0], "", 0, "R", false, 0, "")
		pdf.CellFormat(valueW, 7, row[1], "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	setFill(pdf, brandGreen)
	setText(pdf, white)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetX(x)
	pdf.CellFormat(labelW, 10, "TOTAL:", "", 0, "R", true, 0, "")
	pdf.CellFormat(valueW, 10, r.amount(doc.Total), "", 1, "R", true, 0, "")
}

func (r *Renderer) drawThanks(pdf *fpdf.Fpdf) {
	pdf.Ln(14)
	setText(pdf, brandGreen)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Thank you for your business!", "", 1, "C", false, 0, "")
}

func (r *Renderer) amount(v float64) string {
	return money.FormatWithSymbol(r.currency, v)
}

// printableSymbol maps symbol into the cp1252 encoding of the core fonts
func printableSymbol(symbol string) string {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return ""
	}
	if ascii, ok := asciiSymbols[symbol]; ok {
		return ascii
	}
	tr := fpdf.New("P", "mm", "A4", "").UnicodeTranslatorFromDescriptor("")
	return tr(symbol)
}

func setFill(pdf *fpdf.Fpdf, c rgb) { pdf.SetFillColor(c.r, c.g, c.b) }
func setText(pdf *fpdf.Fpdf, c rgb) { pdf.SetTextColor(c.r, c.g, c.b) }
func setDraw(pdf *fpdf.Fpdf, c rgb) { pdf.SetDrawColor(c.r, c.g, c.b) }
