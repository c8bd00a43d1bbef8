package document

import (
	"fmt"
	"time"

	"propale/internal/pricing"
)

const (
	companyName = "Progineers"
	logoPath    = "assets/logo.png"
)

// financial table column layout, shared by every pricing table so amounts
// line up across sections.
func amountColumns(first string, width float64) []Column {
	return []Column{
		{Title: first, Width: width, Align: "L"},
		{Title: "Montant HT", Width: 30, Align: "R"},
		{Title: "TVA", Width: 25, Align: "R"},
		{Title: "Montant TTC", Width: 30, Align: "R"},
	}
}

func amountRow(kind RowKind, label string, li pricing.LineItem) Row {
	return Row{Kind: kind, Cells: []string{
		label,
		pricing.FormatEUR(li.AmountExclTax),
		pricing.FormatEUR(li.Tax),
		pricing.FormatEUR(li.AmountInclTax),
	}}
}

// Build assembles the full proposal for one variant. Section order is fixed:
// synthesis, financial detail, fees, general recap, property upside,
// inclusions, exclusions/studies/insurance, schedule, guarantees. A forced
// page break separates the synthesis from the financial detail.
func Build(cat pricing.Catalog, now time.Time) *Document {
	tot := cat.Totals()

	doc := &Document{
		Filename:  fmt.Sprintf("proposition-%s.pdf", cat.Variant),
		CreatedAt: now,
		Cover: Cover{
			LogoPath: logoPath,
			Title:    cat.Title,
			Subtitle: cat.Variant.Label(),
			Client:   cat.Client,
			Location: cat.Location,
			Date:     now.Format("02/01/2006"),
		},
	}

	doc.add(Heading{Text: "Synthèse du projet", Level: 1})
	for _, p := range cat.Synthesis {
		doc.add(Paragraph{Text: p})
	}

	doc.add(PageBreak{})

	doc.add(Heading{Text: "Détail financier des travaux", Level: 1})
	detail := Table{Columns: amountColumns("Désignation", 95)}
	for _, s := range cat.Sections {
		detail.Rows = append(detail.Rows, Row{Kind: RowCategory, Cells: []string{s.Title, "", "", ""}})
		for _, line := range s.Lines() {
			detail.Rows = append(detail.Rows, amountRow(RowNormal, line.Label, line))
		}
		sub := s.Subtotal()
		detail.Rows = append(detail.Rows, amountRow(RowSubtotal, sub.Label, sub))
	}
	doc.add(detail)

	doc.add(Heading{Text: "Honoraires de maîtrise d'œuvre", Level: 1})
	fees := Table{Columns: amountColumns("Désignation", 95)}
	fees.Rows = append(fees.Rows, amountRow(RowNormal, "Mission complète de maîtrise d'œuvre", pricing.LineItem{
		AmountExclTax: tot.FeesExclTax,
		Tax:           tot.FeesTax,
		AmountInclTax: tot.FeesInclTax,
	}))
	doc.add(fees)

	doc.add(Heading{Text: "Récapitulatif général", Level: 1})
	recap := Table{Columns: []Column{
		{Title: "", Width: 125, Align: "L"},
		{Title: "Montant TTC", Width: 55, Align: "R"},
	}}
	for _, b := range tot.Bands {
		recap.Rows = append(recap.Rows, Row{Kind: RowNormal, Cells: []string{
			"Travaux — " + b.Band.Label(),
			pricing.FormatEUR(b.AmountInclTax),
		}})
	}
	recap.Rows = append(recap.Rows,
		Row{Kind: RowNormal, Cells: []string{"Honoraires de maîtrise d'œuvre", pricing.FormatEUR(tot.FeesInclTax)}},
		Row{Kind: RowNormal, Cells: []string{"Prime CEE (déduite)", pricing.FormatEUR(-tot.CEEPremium)}},
		Row{Kind: RowTotal, Cells: []string{"Total général TTC", pricing.FormatEUR(tot.GrandTotalInclTax)}},
	)
	doc.add(recap)

	doc.add(Heading{Text: "Valorisation du bien", Level: 1})
	doc.add(Paragraph{Text: fmt.Sprintf(
		"Valeur estimée du bien après travaux : %s, pour un investissement total de %s.",
		pricing.FormatEUR(cat.ResaleEstimate), pricing.FormatEUR(tot.GrandTotalInclTax))})

	doc.add(Heading{Text: "Prestations incluses", Level: 1})
	doc.add(BulletList{Items: cat.Inclusions})

	doc.add(Heading{Text: "Prestations non incluses", Level: 1})
	doc.add(BulletList{Items: cat.Exclusions})
	doc.add(Heading{Text: "Études à la charge du maître d'ouvrage", Level: 2})
	doc.add(BulletList{Items: cat.Studies})
	doc.add(Heading{Text: "Assurances", Level: 2})
	doc.add(BulletList{Items: cat.Insurance})

	doc.add(Heading{Text: "Calendrier prévisionnel", Level: 1})
	schedule := Table{Columns: []Column{
		{Title: "Phase", Width: 125, Align: "L"},
		{Title: "Durée", Width: 55, Align: "R"},
	}}
	for _, ph := range cat.Schedule {
		schedule.Rows = append(schedule.Rows, Row{Kind: RowNormal, Cells: []string{ph.Label, ph.Duration}})
	}
	schedule.Rows = append(schedule.Rows, Row{Kind: RowTotal, Cells: []string{"Durée totale estimée", cat.TotalDuration}})
	doc.add(schedule)

	doc.add(Heading{Text: "Garanties", Level: 1})
	doc.add(BulletList{Items: cat.Guarantees})
	doc.add(Paragraph{Text: fmt.Sprintf("%s — document établi le %s.", companyName, now.Format("02/01/2006"))})

	return doc
}

// BuildComparative assembles the dual-solution document: both variants'
// band totals, fees and grand totals side by side, derived from the same
// catalog arithmetic as the single-variant export.
func BuildComparative(now time.Time) *Document {
	doc := &Document{
		Filename:  "comparatif-solutions.pdf",
		CreatedAt: now,
		Cover: Cover{
			LogoPath: logoPath,
			Title:    "Comparatif des solutions",
			Subtitle: "Coliving / 3 logements indépendants",
			Client:   pricing.ForVariant(pricing.VariantColiving).Client,
			Location: pricing.ForVariant(pricing.VariantColiving).Location,
			Date:     now.Format("02/01/2006"),
		},
	}

	doc.add(Heading{Text: "Comparatif financier", Level: 1})

	table := Table{Columns: []Column{
		{Title: "", Width: 80, Align: "L"},
		{Title: pricing.VariantColiving.Label(), Width: 50, Align: "R"},
		{Title: pricing.VariantLogements.Label(), Width: 50, Align: "R"},
	}}

	col := pricing.ForVariant(pricing.VariantColiving).Totals()
	log := pricing.ForVariant(pricing.VariantLogements).Totals()

	for i, b := range col.Bands {
		table.Rows = append(table.Rows, Row{Kind: RowNormal, Cells: []string{
			"Travaux TTC — " + b.Band.Label(),
			pricing.FormatEUR(b.AmountInclTax),
			pricing.FormatEUR(log.Bands[i].AmountInclTax),
		}})
	}
	table.Rows = append(table.Rows,
		Row{Kind: RowNormal, Cells: []string{
			"Honoraires TTC",
			pricing.FormatEUR(col.FeesInclTax),
			pricing.FormatEUR(log.FeesInclTax),
		}},
		Row{Kind: RowNormal, Cells: []string{
			"Prime CEE (déduite)",
			pricing.FormatEUR(-col.CEEPremium),
			pricing.FormatEUR(-log.CEEPremium),
		}},
		Row{Kind: RowTotal, Cells: []string{
			"Total général TTC",
			pricing.FormatEUR(col.GrandTotalInclTax),
			pricing.FormatEUR(log.GrandTotalInclTax),
		}},
		Row{Kind: RowNormal, Cells: []string{
			"Valeur estimée après travaux",
			pricing.FormatEUR(pricing.ForVariant(pricing.VariantColiving).ResaleEstimate),
			pricing.FormatEUR(pricing.ForVariant(pricing.VariantLogements).ResaleEstimate),
		}},
	)
	doc.add(table)

	return doc
}

func (d *Document) add(b Block) {
	d.Blocks = append(d.Blocks, b)
}
