// Package state holds plain UI state types mutated by the control loop.
package state

// Bounds reports the current content dimensions for cursor clamping.
type Bounds interface {
	RowCount() int
	ColCount(row int) int
}

// Cursor is the single 2D selection coordinate. Directional moves adjust
// exactly one axis by one, saturating at zero. With Clamp set the cursor
// is also held inside the supplied content bounds; without it the cursor
// may roam past the last row or column, in which case no item is selected.
type Cursor struct {
	Row   int
	Col   int
	Clamp bool
}

// Up moves one row up. Returns true when the cursor changed.
func (c *Cursor) Up(b Bounds) bool {
	if c.Row == 0 {
		return false
	}
	c.Row--
	return true
}

// Down moves one row down, honouring the row bound when clamping.
func (c *Cursor) Down(b Bounds) bool {
	next := c.Row + 1
	if c.Clamp && b != nil && next >= b.RowCount() {
		return false
	}
	c.Row = next
	return true
}

// Left moves one column left.
func (c *Cursor) Left(b Bounds) bool {
	if c.Col == 0 {
		return false
	}
	c.Col--
	return true
}

// Right moves one column right, honouring the cursor row's item count
// when clamping.
func (c *Cursor) Right(b Bounds) bool {
	next := c.Col + 1
	if c.Clamp && b != nil && next >= b.ColCount(c.Row) {
		return false
	}
	c.Col = next
	return true
}

// MoveTo jumps the cursor to an absolute coordinate, saturating negative
// input at zero. Used by the row-jump search rather than key handling.
func (c *Cursor) MoveTo(row, col int) {
	if row < 0 {
		row = 0
	}
	if col < 0 {
		col = 0
	}
	c.Row = row
	c.Col = col
}
