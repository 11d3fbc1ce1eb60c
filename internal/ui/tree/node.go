// Package tree holds the browse-screen node tree: a Root of titled Rows,
// each Row a strip of Items. Mutations go through the replace operations,
// which swap a node's children wholesale and bump the root's structural
// generation so the view knows to re-layout.
package tree

import (
	"github.com/marquee-tui/marquee/internal/catalog"
	"github.com/marquee-tui/marquee/internal/fetch"
)

// Item is a leaf tile. Row and Col are its address for selection matching
// and never change after construction.
type Item struct {
	Row      int
	Col      int
	ImageURL string

	selected bool
	progress int
}

// NewItem constructs a tile at the given grid address.
func NewItem(row, col int, imageURL string) *Item {
	return &Item{Row: row, Col: col, ImageURL: imageURL}
}

// Selected reports whether this item is the broadcast target.
func (it *Item) Selected() bool { return it.selected }

// Progress returns the animation counter in [0, MaxSteps].
func (it *Item) Progress() int { return it.progress }

// Row is one titled collection. Its item list is empty until the set fetch
// delivers; Pending holds the correlation token for that fetch.
type Row struct {
	Meta    catalog.RowMetadata
	Index   int
	Pending fetch.Token[[]string]
	Err     error

	items  []*Item
	loaded bool
	root   *Root
}

// Items returns the row's current children.
func (r *Row) Items() []*Item { return r.items }

// Loaded reports whether the row's set fetch has been applied. A loaded
// row with zero items is valid and renders empty.
func (r *Row) Loaded() bool { return r.loaded }

// ReplaceItems clears the row's children and rebuilds one Item per tile
// URL with sequential column indices. The row itself keeps its identity;
// the structural change is signalled upward through the root generation.
func (r *Row) ReplaceItems(urls []string) {
	items := make([]*Item, len(urls))
	for col, url := range urls {
		items[col] = NewItem(r.Index, col, url)
	}
	r.items = items
	r.loaded = true
	r.Err = nil
	if r.root != nil {
		r.root.invalidate()
	}
}

// Root owns the row list and the structural generation counter.
type Root struct {
	Pending fetch.Token[[]catalog.RowMetadata]
	Err     error

	rows   []*Row
	loaded bool
	gen    uint64
}

// NewRoot returns an empty tree: no rows yet, placeholder pending.
func NewRoot() *Root {
	return &Root{}
}

// Rows returns the current row nodes.
func (t *Root) Rows() []*Row { return t.rows }

// Loaded reports whether the catalog fetch has been applied.
func (t *Root) Loaded() bool { return t.loaded }

// Generation returns the structural generation. Any child replacement
// anywhere in the tree increments it.
func (t *Root) Generation() uint64 { return t.gen }

func (t *Root) invalidate() { t.gen++ }

// ReplaceRows clears the placeholder children and builds one Row per
// metadata entry, indexed in order. Returns the new rows so the caller
// can schedule their fetches in the same event step.
func (t *Root) ReplaceRows(meta []catalog.RowMetadata) []*Row {
	rows := make([]*Row, len(meta))
	for i, m := range meta {
		rows[i] = &Row{Meta: m, Index: i, root: t}
	}
	t.rows = rows
	t.loaded = true
	t.Err = nil
	t.invalidate()
	return rows
}

// RowCount returns the number of rows currently in the tree.
func (t *Root) RowCount() int { return len(t.rows) }

// ColCount returns the number of items in the given row, or 0 when the
// row does not exist yet.
func (t *Root) ColCount(row int) int {
	if row < 0 || row >= len(t.rows) {
		return 0
	}
	return len(t.rows[row].items)
}
