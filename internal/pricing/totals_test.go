package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The grand-total contract: per-band rounding, fees taxed at 20%, fixed CEE
// premium subtracted last. Recomputed here from raw section data, bypassing
// BandTotal, so a refactor of Totals cannot silently change the arithmetic.
func TestGrandTotalContract(t *testing.T) {
	for _, v := range Variants {
		t.Run(string(v), func(t *testing.T) {
			c := ForVariant(v)

			byBand := map[Band]Cents{}
			for _, s := range c.Sections {
				for _, it := range s.Items {
					byBand[s.Band] += it.AmountExclTax
				}
			}

			var want Cents
			for _, b := range Bands {
				ht := byBand[b]
				want += ht + Cents((int64(ht)*b.RatePermille()+500)/1000)
			}
			want += c.FeesExclTax + Cents((int64(c.FeesExclTax)*200+500)/1000)
			want -= c.CEEPremium

			got := c.Totals()
			assert.Equal(t, want, got.GrandTotalInclTax)
		})
	}
}

func TestTotalsColiving(t *testing.T) {
	tot := ForVariant(VariantColiving).Totals()

	require.Len(t, tot.Bands, 3)
	assert.Equal(t, Cents(68_600_00), tot.Bands[0].AmountExclTax)
	assert.Equal(t, Cents(3_773_00), tot.Bands[0].Tax)
	assert.Equal(t, Cents(69_100_00), tot.Bands[1].AmountExclTax)
	assert.Equal(t, Cents(6_910_00), tot.Bands[1].Tax)
	assert.Equal(t, Cents(76_500_00), tot.Bands[2].AmountExclTax)
	assert.Equal(t, Cents(15_300_00), tot.Bands[2].Tax)

	assert.Equal(t, Cents(240_183_00), tot.WorksInclTax)
	assert.Equal(t, Cents(4_300_00), tot.FeesTax)
	assert.Equal(t, Cents(25_800_00), tot.FeesInclTax)
	assert.Equal(t, Cents(263_483_00), tot.GrandTotalInclTax)
}

func TestTotalsLogements(t *testing.T) {
	tot := ForVariant(VariantLogements).Totals()

	assert.Equal(t, Cents(73_800_00), tot.Bands[0].AmountExclTax)
	assert.Equal(t, Cents(4_059_00), tot.Bands[0].Tax)
	assert.Equal(t, Cents(98_200_00), tot.Bands[2].AmountExclTax)
	assert.Equal(t, Cents(19_640_00), tot.Bands[2].Tax)
	assert.Equal(t, Cents(298_009_00), tot.GrandTotalInclTax)
}

func TestLineItemInvariants(t *testing.T) {
	for _, v := range Variants {
		c := ForVariant(v)
		for _, s := range c.Sections {
			var sum Cents
			for _, line := range s.Lines() {
				assert.Equal(t, line.AmountExclTax+line.Tax, line.AmountInclTax,
					"%s / %s: TTC must equal HT plus VAT", s.Title, line.Label)
				sum += line.AmountExclTax
			}
			assert.Equal(t, sum, s.Subtotal().AmountExclTax,
				"%s: subtotal HT must equal item sum", s.Title)
		}
	}
}

func TestValidate(t *testing.T) {
	for _, v := range Variants {
		require.NoError(t, ForVariant(v).Validate())
	}

	t.Run("rejects unknown band", func(t *testing.T) {
		c := ForVariant(VariantColiving)
		c.Sections[0].Band = Band(42)
		require.Error(t, c.Validate())
	})

	t.Run("rejects empty section", func(t *testing.T) {
		c := ForVariant(VariantColiving)
		c.Sections[0].Items = nil
		require.Error(t, c.Validate())
	})
}

func TestBandTaxRounding(t *testing.T) {
	// 5.5% of 99.99 € is 5.49945 €, which must round to 5.50 €.
	assert.Equal(t, Cents(550), BandEnergy.Tax(Cents(9999)))
	// 10% of 0.05 € rounds up to 0.01 €.
	assert.Equal(t, Cents(1), BandRenovation.Tax(Cents(5)))
}
