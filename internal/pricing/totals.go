package pricing

import "fmt"

// BandTotal aggregates all sections assigned to one VAT band. Tax is rounded
// once on the band's excl-tax sum; summing section-level taxes instead could
// drift by a cent and is not the contract.
type BandTotal struct {
	Band          Band
	AmountExclTax Cents
	Tax           Cents
	AmountInclTax Cents
}

// Totals carries every derived figure a renderer needs.
type Totals struct {
	Bands []BandTotal

	WorksExclTax Cents
	WorksInclTax Cents

	FeesExclTax Cents
	FeesTax     Cents
	FeesInclTax Cents

	CEEPremium Cents

	GrandTotalInclTax Cents
}

// Totals derives the band, fee and grand totals:
//
//	grand TTC = Σ_b (bandHT + round(bandHT·rate)) + fees + round(fees·20%) − CEE
func (c Catalog) Totals() Totals {
	t := Totals{
		FeesExclTax: c.FeesExclTax,
		CEEPremium:  c.CEEPremium,
	}

	byBand := make(map[Band]Cents, len(Bands))
	for _, s := range c.Sections {
		byBand[s.Band] += s.Subtotal().AmountExclTax
	}

	for _, b := range Bands {
		ht := byBand[b]
		tax := b.Tax(ht)
		t.Bands = append(t.Bands, BandTotal{
			Band:          b,
			AmountExclTax: ht,
			Tax:           tax,
			AmountInclTax: ht + tax,
		})
		t.WorksExclTax += ht
		t.WorksInclTax += ht + tax
	}

	t.FeesTax = BandEquipment.Tax(c.FeesExclTax)
	t.FeesInclTax = c.FeesExclTax + t.FeesTax

	t.GrandTotalInclTax = t.WorksInclTax + t.FeesInclTax - c.CEEPremium
	return t
}

// Validate checks the catalog's structural invariants: every section carries
// a known band (so every line item is counted in exactly one band sum),
// sections have items, and no authored amount is zero or negative.
func (c Catalog) Validate() error {
	known := make(map[Band]bool, len(Bands))
	for _, b := range Bands {
		known[b] = true
	}

	for _, s := range c.Sections {
		if !known[s.Band] {
			return fmt.Errorf("section %q: unknown tax band %d", s.Title, s.Band)
		}
		if len(s.Items) == 0 {
			return fmt.Errorf("section %q: no items", s.Title)
		}
		for _, it := range s.Items {
			if it.AmountExclTax <= 0 {
				return fmt.Errorf("section %q, item %q: non-positive amount", s.Title, it.Label)
			}
		}
	}

	if c.FeesExclTax <= 0 {
		return fmt.Errorf("variant %s: non-positive fees", c.Variant)
	}
	if c.CEEPremium < 0 {
		return fmt.Errorf("variant %s: CEE premium must be stored positive", c.Variant)
	}
	return nil
}
