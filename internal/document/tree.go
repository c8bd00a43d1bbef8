// Package document defines the renderer-neutral proposal tree. The builder
// turns the pricing catalog into pages, headings, tables and page breaks;
// backends (see internal/renderer) turn the tree into bytes. Keeping the two
// apart lets tests validate layout and figures without rasterizing anything.
package document

import "time"

// Document is one exportable proposal.
type Document struct {
	// Filename is the deterministic download name for this export.
	Filename string

	Cover  Cover
	Blocks []Block

	// CreatedAt is the request-scoped timestamp shown on the cover. Fixing
	// it makes renders byte-reproducible.
	CreatedAt time.Time
}

// Cover is the first page: logo, titles and project identity.
type Cover struct {
	// LogoPath may point at a missing file; backends must render without it.
	LogoPath string
	Title    string
	Subtitle string
	Client   string
	Location string
	Date     string
}

// Block is a vertical layout element on a content page.
type Block interface{ isBlock() }

// Heading opens a section. Level 1 is a section title, level 2 a sub-title.
type Heading struct {
	Text  string
	Level int
}

// Paragraph is a run of wrapped text.
type Paragraph struct {
	Text string
}

// BulletList is an unordered list.
type BulletList struct {
	Items []string
}

// RowKind selects the visual treatment of a table row.
type RowKind int

const (
	// RowNormal is a plain line item.
	RowNormal RowKind = iota
	// RowCategory is a category header carrying no values in its amount
	// columns.
	RowCategory
	// RowSubtotal closes a category.
	RowSubtotal
	// RowTotal is a grand-total row.
	RowTotal
)

// Table is a column-aligned grid.
type Table struct {
	Columns []Column
	Rows    []Row
}

// Column describes one table column. Width is in millimetres; Align is
// "L" or "R".
type Column struct {
	Title string
	Width float64
	Align string
}

// Row is one table line.
type Row struct {
	Kind  RowKind
	Cells []string
}

// PageBreak forces the next block onto a fresh page.
type PageBreak struct{}

func (Heading) isBlock()    {}
func (Paragraph) isBlock()  {}
func (BulletList) isBlock() {}
func (Table) isBlock()      {}
func (PageBreak) isBlock()  {}
