package tree

// MaxSteps is the number of animation ticks between an item's rest size
// and its fully grown selected size.
const MaxSteps = 5

// step advances the item's counter by at most one toward its target and
// reports whether it still needs further ticks.
func (it *Item) step() bool {
	if it.selected {
		if it.progress < MaxSteps {
			it.progress++
		}
		return it.progress < MaxSteps
	}
	if it.progress > 0 {
		it.progress--
	}
	return it.progress > 0
}

// Animate applies one animation tick to every item in the tree. Returns
// true while any item is off its rest point, i.e. another tick should be
// scheduled. Once it returns false the tree is at rest and no ticks may
// be scheduled until the next broadcast.
func (t *Root) Animate() bool {
	busy := false
	for _, r := range t.rows {
		for _, it := range r.items {
			if it.step() {
				busy = true
			}
		}
	}
	return busy
}

// Scale maps the animation counter to the tile's size factor: a linear
// interpolation from 90% at rest to 100% fully selected.
func (it *Item) Scale() float64 {
	return 0.90 + float64(it.progress)/50
}
