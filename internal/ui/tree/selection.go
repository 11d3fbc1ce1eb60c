package tree

// Broadcast delivers a set-selected message to every item in the current
// tree snapshot. The item at (row, col) becomes selected; every other
// selected item is deselected in the same step, so at most one item is
// selected afterwards. Returns true when any item now needs animation
// ticks to reach its rest size.
func (t *Root) Broadcast(row, col int) bool {
	animating := false
	for _, r := range t.rows {
		for _, it := range r.items {
			if it.Row == row && it.Col == col {
				it.selected = true
				if it.progress < MaxSteps {
					animating = true
				}
			} else if it.selected {
				it.selected = false
				if it.progress > 0 {
					animating = true
				}
			}
		}
	}
	return animating
}

// SelectedItem returns the currently selected item, or nil when the
// cursor points at a coordinate with no item.
func (t *Root) SelectedItem() *Item {
	for _, r := range t.rows {
		for _, it := range r.items {
			if it.selected {
				return it
			}
		}
	}
	return nil
}
