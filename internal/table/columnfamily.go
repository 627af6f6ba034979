package table

import "sort"

// ColumnFamily is a named grouping of Columns. The empty-string name is
// reserved for the default (unqualified) family. Writing a row auto-
// creates any Column that doesn't exist yet.
type ColumnFamily struct {
	Name    string
	Columns map[string]*Column
	Indexed bool
}

// NewColumnFamily creates a ColumnFamily with the given (initially empty) columns.
func NewColumnFamily(name string, columns []string, indexed bool) *ColumnFamily {
	cf := &ColumnFamily{Name: name, Columns: make(map[string]*Column, len(columns)), Indexed: indexed}
	for _, col := range columns {
		cf.Columns[col] = NewColumn(col, indexed)
	}
	return cf
}

// Qualifier renders a column name as "family:column", or just "column"
// for the default family.
func (cf *ColumnFamily) Qualifier(column string) string {
	if cf.Name == "" {
		return column
	}
	return cf.Name + ":" + column
}

// InsertColumn creates an empty Column.
func (cf *ColumnFamily) InsertColumn(name string) *Column {
	col := NewColumn(name, cf.Indexed)
	cf.Columns[name] = col
	return col
}

func (cf *ColumnFamily) column(name string) *Column {
	if col, ok := cf.Columns[name]; ok {
		return col
	}
	return cf.InsertColumn(name)
}

// InsertRow writes each (columnName -> payload) pair, auto-creating
// missing Columns.
func (cf *ColumnFamily) InsertRow(rowKey string, values map[string]interface{}) {
	for columnName, payload := range values {
		cf.column(columnName).Insert(rowKey, payload)
	}
}

// Search returns the Cell for (rowKey, column), or nil if either is absent.
func (cf *ColumnFamily) Search(rowKey, column string) *Cell {
	col, ok := cf.Columns[column]
	if !ok {
		return nil
	}
	return col.Search(rowKey)
}

// SearchRow returns rowKey's Cell in every Column of this family.
func (cf *ColumnFamily) SearchRow(rowKey string) map[string]*Cell {
	out := make(map[string]*Cell, len(cf.Columns))
	for name, col := range cf.Columns {
		out[name] = col.Search(rowKey)
	}
	return out
}

// SetIndexed cascades the indexed flag to every Column.
func (cf *ColumnFamily) SetIndexed(indexed bool) {
	cf.Indexed = indexed
	for _, col := range cf.Columns {
		col.SetIndexed(indexed)
	}
}

// RebuildIndex rebuilds every Column's IndexTree after a snapshot load.
func (cf *ColumnFamily) RebuildIndex() {
	for _, col := range cf.Columns {
		col.RebuildIndex()
	}
}

// sortedColumnNames returns column names in a stable order, so repeated
// enumeration produces deterministic row ordering.
func (cf *ColumnFamily) sortedColumnNames() []string {
	names := make([]string, 0, len(cf.Columns))
	for name := range cf.Columns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Enumerate returns {rowKey: {qualifier: value}}.
func (cf *ColumnFamily) Enumerate() map[string]map[string]interface{} {
	rows := make(map[string]map[string]interface{})
	for _, name := range cf.sortedColumnNames() {
		col := cf.Columns[name]
		for rowKey, value := range col.Enumerate() {
			if rows[rowKey] == nil {
				rows[rowKey] = make(map[string]interface{})
			}
			rows[rowKey][cf.Qualifier(name)] = value
		}
	}
	return rows
}

// EnumerateWithMetadata returns flat [rowKey, qualifier, timestamp, value] rows.
func (cf *ColumnFamily) EnumerateWithMetadata() [][]interface{} {
	var data [][]interface{}
	for _, name := range cf.sortedColumnNames() {
		col := cf.Columns[name]
		for _, row := range col.EnumerateWithMetadata() {
			data = append(data, []interface{}{row[0], cf.Qualifier(name), row[1], row[2]})
		}
	}
	return data
}

// EnumerateRow is the metadata form restricted to one row, optionally one column.
func (cf *ColumnFamily) EnumerateRow(rowKey, column string) [][]interface{} {
	var data [][]interface{}
	names := []string{column}
	if column == "" {
		names = cf.sortedColumnNames()
	}
	for _, name := range names {
		col, ok := cf.Columns[name]
		if !ok {
			continue
		}
		for _, row := range col.EnumerateWithMetadataRow(rowKey) {
			data = append(data, []interface{}{row[0], cf.Qualifier(name), row[1], row[2]})
		}
	}
	return data
}

// InsertOrUpdate coerces valueString per the shared coercion rule and
// writes it to column, auto-creating the Column if missing.
func (cf *ColumnFamily) InsertOrUpdate(rowKey, column, valueString string) {
	v := Coerce(valueString)
	cf.column(column).InsertOrUpdate(rowKey, v.Payload)
}

// MaxVersionCount returns the largest version count across Columns, 0 if empty.
func (cf *ColumnFamily) MaxVersionCount() int {
	max := 0
	for _, col := range cf.Columns {
		if n := col.MaxVersionCount(); n > max {
			max = n
		}
	}
	return max
}

// MinVersionCount returns the smallest version count across Columns, 0 if empty.
func (cf *ColumnFamily) MinVersionCount() int {
	if len(cf.Columns) == 0 {
		return 0
	}
	min := -1
	for _, col := range cf.Columns {
		n := col.MinVersionCount()
		if min == -1 || n < min {
			min = n
		}
	}
	return min
}

// DeleteVersion removes one Value by timestamp from (rowKey, column).
func (cf *ColumnFamily) DeleteVersion(rowKey, column string, timestamp float64) bool {
	col, ok := cf.Columns[column]
	if !ok {
		return false
	}
	return col.DeleteVersion(rowKey, timestamp)
}

// DeleteRow drops rowKey from every Column in this family.
func (cf *ColumnFamily) DeleteRow(rowKey string) {
	for _, col := range cf.Columns {
		col.DeleteRow(rowKey)
	}
}
