package document

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"propale/internal/pricing"
)

var buildTime = time.Date(2026, 3, 12, 10, 0, 0, 0, time.UTC)

func TestBuildLayout(t *testing.T) {
	doc := Build(pricing.ForVariant(pricing.VariantColiving), buildTime)

	assert.Equal(t, "proposition-coliving.pdf", doc.Filename)
	assert.Equal(t, "Transformation en coliving", doc.Cover.Subtitle)
	assert.Equal(t, "12/03/2026", doc.Cover.Date)

	// The forced page break sits between the synthesis and the financial
	// detail, and nowhere later.
	breakIdx := -1
	detailIdx := -1
	for i, b := range doc.Blocks {
		switch blk := b.(type) {
		case PageBreak:
			require.Equal(t, -1, breakIdx, "exactly one forced page break")
			breakIdx = i
		case Heading:
			if blk.Text == "Détail financier des travaux" {
				detailIdx = i
			}
		}
	}
	require.NotEqual(t, -1, breakIdx)
	require.NotEqual(t, -1, detailIdx)
	assert.Equal(t, detailIdx, breakIdx+1, "financial detail follows the page break")
}

func TestBuildSectionOrder(t *testing.T) {
	doc := Build(pricing.ForVariant(pricing.VariantLogements), buildTime)

	var headings []string
	for _, b := range doc.Blocks {
		if h, ok := b.(Heading); ok && h.Level == 1 {
			headings = append(headings, h.Text)
		}
	}

	assert.Equal(t, []string{
		"Synthèse du projet",
		"Détail financier des travaux",
		"Honoraires de maîtrise d'œuvre",
		"Récapitulatif général",
		"Valorisation du bien",
		"Prestations incluses",
		"Prestations non incluses",
		"Calendrier prévisionnel",
		"Garanties",
	}, headings)
}

func TestDetailTableShape(t *testing.T) {
	cat := pricing.ForVariant(pricing.VariantColiving)
	doc := Build(cat, buildTime)

	var detail *Table
	for i, b := range doc.Blocks {
		if h, ok := b.(Heading); ok && h.Text == "Détail financier des travaux" {
			tbl := doc.Blocks[i+1].(Table)
			detail = &tbl
			break
		}
	}
	require.NotNil(t, detail)

	// Per category: one value-less header row, the line items, one subtotal.
	var categories, subtotals int
	for _, r := range detail.Rows {
		switch r.Kind {
		case RowCategory:
			categories++
			assert.Equal(t, "", r.Cells[1], "category rows carry no amounts")
			assert.Equal(t, "", r.Cells[3], "category rows carry no amounts")
		case RowSubtotal:
			subtotals++
		}
	}
	assert.Equal(t, len(cat.Sections), categories)
	assert.Equal(t, len(cat.Sections), subtotals)
}

func TestRecapShowsGrandTotalAndPremium(t *testing.T) {
	cat := pricing.ForVariant(pricing.VariantColiving)
	doc := Build(cat, buildTime)

	var cells []string
	for _, b := range doc.Blocks {
		if tbl, ok := b.(Table); ok {
			for _, r := range tbl.Rows {
				cells = append(cells, r.Cells...)
			}
		}
	}

	assert.Contains(t, cells, "-2 500 €", "CEE premium shown as a negative adjustment")
	assert.Contains(t, cells, "263 483 €", "grand total TTC")
}

func TestScheduleEndsWithTotalDuration(t *testing.T) {
	doc := Build(pricing.ForVariant(pricing.VariantColiving), buildTime)

	var schedule *Table
	for i, b := range doc.Blocks {
		if h, ok := b.(Heading); ok && h.Text == "Calendrier prévisionnel" {
			tbl := doc.Blocks[i+1].(Table)
			schedule = &tbl
		}
	}
	require.NotNil(t, schedule)

	last := schedule.Rows[len(schedule.Rows)-1]
	assert.Equal(t, RowTotal, last.Kind)
	assert.Equal(t, "15 mois", last.Cells[1])
}

func TestBuildComparative(t *testing.T) {
	doc := BuildComparative(buildTime)

	assert.Equal(t, "comparatif-solutions.pdf", doc.Filename)

	var total *Row
	for _, b := range doc.Blocks {
		if tbl, ok := b.(Table); ok {
			for _, r := range tbl.Rows {
				if r.Kind == RowTotal {
					rr := r
					total = &rr
				}
			}
		}
	}
	require.NotNil(t, total)
	assert.Equal(t, "263 483 €", total.Cells[1])
	assert.Equal(t, "298 009 €", total.Cells[2])
}
