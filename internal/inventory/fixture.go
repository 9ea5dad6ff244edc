package inventory

import "github.com/xxxsen/glbpick/internal/model"

const fixtureSource = "builtin-fixture"

// Fixture is served when the inventory file cannot be loaded at startup.
func Fixture() *Table {
	t := NewTable([]model.InventoryRow{
		{ID: "dummy_chair_id", Categories: []string{"Chair", "Office"}},
		{ID: "dummy_couch_id", Categories: []string{"Couch", "Living"}},
	}, fixtureSource)
	t.fallback = true
	return t
}
