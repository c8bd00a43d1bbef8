// Package pricing holds the proposal content model: line items grouped into
// cost categories, each category assigned to exactly one VAT band, plus the
// derived totals. Screen views, PDF exports and tests all consume this one
// model so figures cannot drift between surfaces.
package pricing

import (
	"fmt"
	"strings"
)

// Cents is a monetary amount in euro cents. All arithmetic stays in integers;
// rounding happens only where the pricing contract says it does.
type Cents int64

// Band is one of the three fixed VAT groupings of renovation cost categories.
type Band int

const (
	// BandEnergy covers energy-improvement work (insulation, heat pump,
	// ventilation, exterior joinery) taxed at the reduced 5.5% rate.
	BandEnergy Band = iota
	// BandRenovation covers general renovation work taxed at 10%.
	BandRenovation
	// BandEquipment covers equipment and variant-specific fit-out taxed at
	// the full 20% rate.
	BandEquipment
)

// Bands lists all bands in presentation order.
var Bands = []Band{BandEnergy, BandRenovation, BandEquipment}

// RatePermille returns the band's VAT rate in permille (5.5% -> 55).
func (b Band) RatePermille() int64 {
	switch b {
	case BandEnergy:
		return 55
	case BandRenovation:
		return 100
	case BandEquipment:
		return 200
	default:
		return 0
	}
}

func (b Band) Label() string {
	switch b {
	case BandEnergy:
		return "Amélioration énergétique (TVA 5,5 %)"
	case BandRenovation:
		return "Rénovation (TVA 10 %)"
	case BandEquipment:
		return "Équipements (TVA 20 %)"
	default:
		return "?"
	}
}

// Tax returns the VAT on an excl-tax amount, rounded half-up to the cent.
// The contract rounds once per band subtotal, never once on the grand total.
func (b Band) Tax(exclTax Cents) Cents {
	return Cents((int64(exclTax)*b.RatePermille() + 500) / 1000)
}

// Variant selects which proposal option parameterizes the figures. Exactly
// one variant is active per rendered document.
type Variant string

const (
	VariantColiving  Variant = "coliving"
	VariantLogements Variant = "logements"
)

// Variants lists the two proposal options in presentation order.
var Variants = []Variant{VariantColiving, VariantLogements}

// ParseVariant validates a URL or request value.
func ParseVariant(s string) (Variant, error) {
	switch Variant(strings.ToLower(s)) {
	case VariantColiving:
		return VariantColiving, nil
	case VariantLogements:
		return VariantLogements, nil
	default:
		return "", fmt.Errorf("unknown variant: %q", s)
	}
}

func (v Variant) Label() string {
	switch v {
	case VariantColiving:
		return "Transformation en coliving"
	case VariantLogements:
		return "Création de 3 logements indépendants"
	default:
		return string(v)
	}
}

// Item is one priced work line. Only the excl-tax amount is authored; taxed
// amounts derive from the owning section's band.
type Item struct {
	Label         string
	AmountExclTax Cents
}

// LineItem is a fully derived display row: HT, VAT and TTC amounts.
// AmountInclTax == AmountExclTax + Tax by construction.
type LineItem struct {
	Label         string
	AmountExclTax Cents
	Tax           Cents
	AmountInclTax Cents
}

// Section is a cost category: a titled, ordered run of items assigned to one
// VAT band.
type Section struct {
	Title string
	Band  Band
	Items []Item
}

// Lines derives the display rows for the section's items.
func (s Section) Lines() []LineItem {
	lines := make([]LineItem, 0, len(s.Items))
	for _, it := range s.Items {
		tax := s.Band.Tax(it.AmountExclTax)
		lines = append(lines, LineItem{
			Label:         it.Label,
			AmountExclTax: it.AmountExclTax,
			Tax:           tax,
			AmountInclTax: it.AmountExclTax + tax,
		})
	}
	return lines
}

// Subtotal aggregates the section. The excl-tax part is the exact item sum;
// the tax part is rounded once on that sum, per the band contract.
func (s Section) Subtotal() LineItem {
	var ht Cents
	for _, it := range s.Items {
		ht += it.AmountExclTax
	}
	tax := s.Band.Tax(ht)
	return LineItem{
		Label:         "Sous-total " + s.Title,
		AmountExclTax: ht,
		Tax:           tax,
		AmountInclTax: ht + tax,
	}
}

// SchedulePhase is one row of the project schedule.
type SchedulePhase struct {
	Label    string
	Duration string
}
