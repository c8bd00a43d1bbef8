package renderer

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/jung-kurt/gofpdf"
	"go.opentelemetry.io/otel"

	"propale/internal/document"
)

// A4 content geometry in millimetres.
const (
	marginLeft  = 15
	marginTop   = 18
	marginRight = 15
	lineHeight  = 6
	rowHeight   = 7
)

var tracer = otel.Tracer("propale/renderer")

// FPDF is the structured PDF backend. One instance is safe for concurrent
// use: each render builds its own gofpdf document.
type FPDF struct {
	logger *slog.Logger
}

func NewFPDF(logger *slog.Logger) *FPDF {
	return &FPDF{logger: logger}
}

// Render walks the document tree onto A4 portrait pages. The creation date
// comes from the tree, so output is reproducible for a fixed input.
func (f *FPDF) Render(ctx context.Context, doc *document.Document) ([]byte, error) {
	_, span := tracer.Start(ctx, "renderer.Render")
	defer span.End()

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetTitle(tr(doc.Cover.Title), true)
	pdf.SetAuthor("Progineers", true)
	pdf.SetCreationDate(doc.CreatedAt)
	pdf.SetMargins(marginLeft, marginTop, marginRight)
	pdf.SetAutoPageBreak(true, 20)

	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		if pdf.PageNo() == 1 {
			return
		}
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(120, 120, 120)
		pdf.CellFormat(0, 10, tr(fmt.Sprintf("Progineers — page %d/{nb}", pdf.PageNo())),
			"", 0, "C", false, 0, "")
	})

	f.renderCover(ctx, pdf, tr, doc.Cover)

	pdf.AddPage()
	for _, block := range doc.Blocks {
		switch b := block.(type) {
		case document.Heading:
			f.renderHeading(pdf, tr, b)
		case document.Paragraph:
			pdf.SetFont("Helvetica", "", 10)
			pdf.SetTextColor(40, 40, 40)
			pdf.MultiCell(0, lineHeight, tr(b.Text), "", "L", false)
			pdf.Ln(1)
		case document.BulletList:
			pdf.SetFont("Helvetica", "", 10)
			pdf.SetTextColor(40, 40, 40)
			for _, item := range b.Items {
				pdf.CellFormat(5, lineHeight, "-", "", 0, "L", false, 0, "")
				pdf.MultiCell(0, lineHeight, tr(item), "", "L", false)
			}
			pdf.Ln(1)
		case document.Table:
			f.renderTable(pdf, tr, b)
		case document.PageBreak:
			pdf.AddPage()
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("serialize pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (f *FPDF) renderCover(ctx context.Context, pdf *gofpdf.Fpdf, tr func(string) string, c document.Cover) {
	pdf.AddPage()

	if c.LogoPath != "" {
		if _, err := os.Stat(c.LogoPath); err == nil {
			pdf.ImageOptions(c.LogoPath, marginLeft, marginTop, 40, 0, false,
				gofpdf.ImageOptions{ReadDpi: true}, 0, "")
		} else if f.logger != nil {
			// Missing asset degrades to a logo-less cover, never a failure.
			f.logger.WarnContext(ctx, "logo asset unavailable, rendering without it",
				"path", c.LogoPath)
		}
	}

	pdf.SetY(90)
	pdf.SetFont("Helvetica", "B", 26)
	pdf.SetTextColor(30, 50, 90)
	pdf.MultiCell(0, 12, tr(c.Title), "", "C", false)

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "", 16)
	pdf.SetTextColor(80, 80, 80)
	pdf.MultiCell(0, 9, tr(c.Subtitle), "", "C", false)

	pdf.SetY(170)
	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(40, 40, 40)
	for _, line := range []string{c.Client, c.Location, c.Date} {
		pdf.CellFormat(0, lineHeight, tr(line), "", 1, "C", false, 0, "")
	}
}

func (f *FPDF) renderHeading(pdf *gofpdf.Fpdf, tr func(string) string, h document.Heading) {
	switch h.Level {
	case 1:
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 13)
		pdf.SetTextColor(30, 50, 90)
	default:
		pdf.Ln(2)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(60, 60, 60)
	}
	pdf.CellFormat(0, 8, tr(h.Text), "", 1, "L", false, 0, "")
	pdf.Ln(1)
}

func (f *FPDF) renderTable(pdf *gofpdf.Fpdf, tr func(string) string, t document.Table) {
	hasHeader := false
	for _, col := range t.Columns {
		if col.Title != "" {
			hasHeader = true
			break
		}
	}
	if hasHeader {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(30, 50, 90)
		pdf.SetTextColor(255, 255, 255)
		for _, col := range t.Columns {
			pdf.CellFormat(col.Width, rowHeight, tr(col.Title), "1", 0, col.Align, true, 0, "")
		}
		pdf.Ln(-1)
	}

	for _, row := range t.Rows {
		switch row.Kind {
		case document.RowCategory:
			pdf.SetFont("Helvetica", "B", 9)
			pdf.SetFillColor(225, 230, 240)
			pdf.SetTextColor(30, 50, 90)
		case document.RowSubtotal:
			pdf.SetFont("Helvetica", "B", 9)
			pdf.SetFillColor(244, 246, 250)
			pdf.SetTextColor(40, 40, 40)
		case document.RowTotal:
			pdf.SetFont("Helvetica", "B", 10)
			pdf.SetFillColor(30, 50, 90)
			pdf.SetTextColor(255, 255, 255)
		default:
			pdf.SetFont("Helvetica", "", 9)
			pdf.SetFillColor(255, 255, 255)
			pdf.SetTextColor(40, 40, 40)
		}

		fill := row.Kind != document.RowNormal
		for i, col := range t.Columns {
			cell := ""
			if i < len(row.Cells) {
				cell = row.Cells[i]
			}
			pdf.CellFormat(col.Width, rowHeight, tr(cell), "1", 0, col.Align, fill, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(3)
}
