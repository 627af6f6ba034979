package table

// Column is a named mapping from row key to Cell. In unindexed mode its
// Cells are scanned linearly; in indexed mode an IndexTree kept in sync
// with the Cells slice gives O(log n) lookups.
type Column struct {
	Name    string
	Cells   []*Cell
	Indexed bool

	tree *IndexTree
}

// NewColumn creates an empty Column.
func NewColumn(name string, indexed bool) *Column {
	c := &Column{Name: name, Indexed: indexed}
	if indexed {
		c.tree = NewIndexTree(nil)
	}
	return c
}

// NewColumnWithRows seeds a Column from an initial rowKey->payload map.
func NewColumnWithRows(name string, rows map[string]interface{}, indexed bool) *Column {
	c := &Column{Name: name, Indexed: indexed}
	for rowKey, payload := range rows {
		c.Cells = append(c.Cells, NewCell(rowKey, payload))
	}
	if indexed {
		c.tree = NewIndexTree(c.Cells)
	}
	return c
}

// RebuildIndex rebuilds the IndexTree from the current Cells slice. Used
// after a gob-decoded load, since the tree itself isn't persisted.
func (c *Column) RebuildIndex() {
	if c.Indexed {
		c.tree = NewIndexTree(c.Cells)
	} else {
		c.tree = nil
	}
}

// SetIndexed toggles indexed mode, building or discarding the tree.
func (c *Column) SetIndexed(indexed bool) {
	c.Indexed = indexed
	c.RebuildIndex()
}

// Search looks up a Cell by row key, via the tree when indexed.
func (c *Column) Search(rowKey string) *Cell {
	if c.Indexed {
		return c.tree.Search(rowKey)
	}
	for _, cell := range c.Cells {
		if cell.EqualRowKey(rowKey) {
			return cell
		}
	}
	return nil
}

// Insert appends a Value to the row's Cell, creating the Cell if absent.
func (c *Column) Insert(rowKey string, payload interface{}) {
	if cell := c.Search(rowKey); cell != nil {
		cell.Update(payload)
		return
	}
	cell := NewCell(rowKey, payload)
	c.Cells = append(c.Cells, cell)
	if c.Indexed {
		c.tree.Insert(cell)
	}
}

// InsertOrUpdate is an alias for Insert; the semantics are identical.
func (c *Column) InsertOrUpdate(rowKey string, payload interface{}) {
	c.Insert(rowKey, payload)
}

// Enumerate returns rowKey -> current value for every Cell.
func (c *Column) Enumerate() map[string]interface{} {
	out := make(map[string]interface{}, len(c.Cells))
	for _, cell := range c.Cells {
		out[cell.RowKey] = cell.Current()
	}
	return out
}

// EnumerateWithMetadata returns [rowKey, timestamp, value] rows.
func (c *Column) EnumerateWithMetadata() [][]interface{} {
	rows := make([][]interface{}, 0, len(c.Cells))
	for _, cell := range c.Cells {
		ts, val := cell.CurrentVersion()
		rows = append(rows, []interface{}{cell.RowKey, ts, val})
	}
	return rows
}

// EnumerateWithMetadataRow restricts EnumerateWithMetadata to one row.
func (c *Column) EnumerateWithMetadataRow(rowKey string) [][]interface{} {
	cell := c.Search(rowKey)
	if cell == nil {
		return nil
	}
	ts, val := cell.CurrentVersion()
	return [][]interface{}{{cell.RowKey, ts, val}}
}

// MaxVersionCount returns the largest version count across Cells, 0 if empty.
func (c *Column) MaxVersionCount() int {
	max := 0
	for _, cell := range c.Cells {
		if n := cell.VersionCount(); n > max {
			max = n
		}
	}
	return max
}

// MinVersionCount returns the smallest version count across Cells, 0 if empty.
func (c *Column) MinVersionCount() int {
	if len(c.Cells) == 0 {
		return 0
	}
	min := c.Cells[0].VersionCount()
	for _, cell := range c.Cells[1:] {
		if n := cell.VersionCount(); n < min {
			min = n
		}
	}
	return min
}

// DeleteVersion removes one Value by timestamp from the row's Cell,
// dropping the Cell entirely if that empties its history. It reports
// whether a Value was removed.
func (c *Column) DeleteVersion(rowKey string, timestamp float64) bool {
	cell := c.Search(rowKey)
	if cell == nil {
		return false
	}
	if !cell.RemoveVersion(timestamp) {
		return false
	}
	if cell.IsEmpty() {
		c.removeCell(rowKey)
	}
	return true
}

// DeleteRow drops the row's Cell outright, regardless of version count.
func (c *Column) DeleteRow(rowKey string) bool {
	if c.Search(rowKey) == nil {
		return false
	}
	c.removeCell(rowKey)
	return true
}

func (c *Column) removeCell(rowKey string) {
	for i, cell := range c.Cells {
		if cell.EqualRowKey(rowKey) {
			c.Cells = append(c.Cells[:i], c.Cells[i+1:]...)
			break
		}
	}
	if c.Indexed {
		c.tree = NewIndexTree(c.Cells)
	}
}
