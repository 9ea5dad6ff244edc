package inventory

import (
	"slices"
	"sync/atomic"

	"github.com/xxxsen/glbpick/internal/model"
)

// Table is an immutable inventory snapshot. It is safe for concurrent use.
type Table struct {
	rows     []model.InventoryRow
	vocab    []string
	source   string
	fallback bool
}

func NewTable(rows []model.InventoryRow, source string) *Table {
	copied := make([]model.InventoryRow, 0, len(rows))
	seen := make(map[string]struct{})
	for _, row := range rows {
		copied = append(copied, model.InventoryRow{
			ID:         row.ID,
			Categories: slices.Clone(row.Categories),
		})
		for _, c := range row.Categories {
			seen[c] = struct{}{}
		}
	}
	vocab := make([]string, 0, len(seen))
	for tag := range seen {
		vocab = append(vocab, tag)
	}
	slices.Sort(vocab)
	return &Table{rows: copied, vocab: vocab, source: source}
}

func (t *Table) Len() int {
	return len(t.rows)
}

func (t *Table) Source() string {
	return t.source
}

// Fallback reports whether the table is the built-in fixture.
func (t *Table) Fallback() bool {
	return t.fallback
}

func (t *Table) Rows() []model.InventoryRow {
	return slices.Clone(t.rows)
}

// Vocabulary returns the sorted distinct labels, truncated to limit when
// limit is positive.
func (t *Table) Vocabulary(limit int) []string {
	if limit > 0 && len(t.vocab) > limit {
		return slices.Clone(t.vocab[:limit])
	}
	return slices.Clone(t.vocab)
}

// Match returns every row whose label set contains tag exactly, in row order.
func (t *Table) Match(tag string) []model.InventoryRow {
	if tag == "" {
		return nil
	}
	var out []model.InventoryRow
	for _, row := range t.rows {
		if row.HasCategory(tag) {
			out = append(out, row)
		}
	}
	return out
}

// Holder publishes the current snapshot to request handlers.
type Holder struct {
	current atomic.Pointer[Table]
}

func NewHolder(t *Table) *Holder {
	h := &Holder{}
	h.current.Store(t)
	return h
}

func (h *Holder) Table() *Table {
	return h.current.Load()
}

func (h *Holder) Swap(t *Table) *Table {
	return h.current.Swap(t)
}
