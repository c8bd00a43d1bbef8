package renderer

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"propale/internal/document"
	"propale/internal/pricing"
)

var renderTime = time.Date(2026, 3, 12, 10, 0, 0, 0, time.UTC)

func render(t *testing.T, doc *document.Document) []byte {
	t.Helper()
	pdf, err := NewFPDF(nil).Render(context.Background(), doc)
	require.NoError(t, err)
	return pdf
}

func TestRenderProducesValidPDF(t *testing.T) {
	for _, v := range pricing.Variants {
		t.Run(string(v), func(t *testing.T) {
			pdf := render(t, document.Build(pricing.ForVariant(v), renderTime))

			require.True(t, bytes.HasPrefix(pdf, []byte("%PDF-")), "missing PDF header")

			pages, err := api.PageCount(bytes.NewReader(pdf), model.NewDefaultConfiguration())
			require.NoError(t, err)
			// Cover page, then at least two content pages split by the
			// forced break.
			assert.GreaterOrEqual(t, pages, 3)
		})
	}
}

func TestRenderDeterministic(t *testing.T) {
	doc := document.Build(pricing.ForVariant(pricing.VariantColiving), renderTime)

	first := render(t, doc)
	second := render(t, doc)
	assert.Equal(t, first, second, "same tree must render to identical bytes")
}

func TestRenderSurvivesMissingLogo(t *testing.T) {
	doc := document.Build(pricing.ForVariant(pricing.VariantColiving), renderTime)
	doc.Cover.LogoPath = "testdata/does-not-exist.png"

	pdf := render(t, doc)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF-")))
}

func TestRenderComparative(t *testing.T) {
	pdf := render(t, document.BuildComparative(renderTime))

	pages, err := api.PageCount(bytes.NewReader(pdf), model.NewDefaultConfiguration())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, pages, 2)
}
