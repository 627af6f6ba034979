package table

// Cell is a row-key-tagged, append-only, non-empty version history of
// Values for one (family, column, row). The row key travels with the
// Cell so Cells can live in a plain slice when a Column isn't indexed.
type Cell struct {
	RowKey  string
	History []Value
}

// NewCell starts a one-element history.
func NewCell(rowKey string, payload interface{}) *Cell {
	return &Cell{RowKey: rowKey, History: []Value{NewValue(payload)}}
}

// Update appends a new Value; it becomes the current one.
func (c *Cell) Update(payload interface{}) {
	c.History = append(c.History, NewValue(payload))
}

// Current returns the payload of the most recent Value, coercing a
// string-slice payload defensively even though NewValue already does so.
func (c *Cell) Current() interface{} {
	v := c.History[len(c.History)-1]
	if list, ok := v.Payload.([]string); ok {
		return stringifyList(list)
	}
	return v.Payload
}

// CurrentVersion returns the (timestamp, payload) of the most recent Value.
func (c *Cell) CurrentVersion() (float64, interface{}) {
	v := c.History[len(c.History)-1]
	return v.Timestamp, v.Payload
}

// VersionCount reports the number of Values in the history.
func (c *Cell) VersionCount() int {
	return len(c.History)
}

// IsEmpty reports whether the history has no Values left.
func (c *Cell) IsEmpty() bool {
	return len(c.History) == 0
}

// EqualRowKey compares a Cell to a bare row key.
func (c *Cell) EqualRowKey(rowKey string) bool {
	return c.RowKey == rowKey
}

// Equal compares two Cells by row key.
func (c *Cell) Equal(other *Cell) bool {
	if other == nil {
		return false
	}
	return c.RowKey == other.RowKey
}

// RemoveVersion removes the first Value whose timestamp matches ts,
// reporting whether anything was removed.
func (c *Cell) RemoveVersion(ts float64) bool {
	for i, v := range c.History {
		if v.Timestamp == ts {
			c.History = append(c.History[:i], c.History[i+1:]...)
			return true
		}
	}
	return false
}
