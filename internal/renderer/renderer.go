// Package renderer turns a document tree into PDF bytes.
//
// Backend is a strategy interface: the structured gofpdf backend below is
// the only one shipped, but the export handler depends on the interface so a
// capture-style backend could slot in without touching call sites.
package renderer

import (
	"context"

	"propale/internal/document"
)

// Backend produces a PDF from a document tree. Implementations must be pure:
// same tree (including CreatedAt) in, same bytes out.
type Backend interface {
	Render(ctx context.Context, doc *document.Document) ([]byte, error)
}
