package model

// InventoryRow is one loaded inventory item. Categories are trimmed,
// non-empty and deduplicated, in the order they were read.
type InventoryRow struct {
	ID         string   `json:"fullId"`
	Categories []string `json:"category"`
}

func (r InventoryRow) HasCategory(tag string) bool {
	for _, c := range r.Categories {
		if c == tag {
			return true
		}
	}
	return false
}
