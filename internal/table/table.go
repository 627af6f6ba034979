package table

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// FamilySpec names a ColumnFamily to create, with its initial columns (if any).
type FamilySpec struct {
	Name    string
	Columns []string
}

// Table is an ordered collection of ColumnFamilies, the default family
// (name "") always at index 0, plus the enabled/indexed flags.
type Table struct {
	Families []*ColumnFamily
	Enabled  bool
	Indexed  bool
}

// NewTable builds a Table from the given family specs, ensuring the
// default family exists at index 0.
func NewTable(families []FamilySpec, indexed bool) *Table {
	t := &Table{Indexed: indexed, Enabled: true}
	t.Families = []*ColumnFamily{NewColumnFamily("", nil, indexed)}
	for _, spec := range families {
		cf := NewColumnFamily(strings.TrimSpace(spec.Name), spec.Columns, indexed)
		if cf.Name == "" {
			t.Families[0] = cf
			continue
		}
		t.Families = append(t.Families, cf)
	}
	return t
}

// RebuildIndex rebuilds every family's column indices. Used after a
// snapshot load, since IndexTrees aren't persisted.
func (t *Table) RebuildIndex() {
	for _, cf := range t.Families {
		cf.RebuildIndex()
	}
}

func (t *Table) findFamily(name string) (*ColumnFamily, int) {
	for i, cf := range t.Families {
		if cf.Name == strings.TrimSpace(name) {
			return cf, i
		}
	}
	return nil, -1
}

// generateRowKey mints a fresh UUID-shaped row key.
func generateRowKey() string {
	return uuid.NewString()
}

// InsertOne writes rowData to every named family present in it, under a
// freshly generated row key, and returns that key.
func (t *Table) InsertOne(rowData map[string]map[string]interface{}) string {
	rowKey := generateRowKey()
	for _, cf := range t.Families {
		if values, ok := rowData[cf.Name]; ok {
			cf.InsertRow(rowKey, values)
		}
	}
	return rowKey
}

// InsertOrUpdateRow locates the family by trimmed name and writes the
// coerced value, reporting false if the family doesn't exist.
func (t *Table) InsertOrUpdateRow(rowKey, family, column, valueString string) bool {
	cf, _ := t.findFamily(family)
	if cf == nil {
		return false
	}
	cf.InsertOrUpdate(rowKey, column, valueString)
	return true
}

// AddColumnFamily appends a new family, refusing if the name already exists.
func (t *Table) AddColumnFamily(name string, columns []string) error {
	name = strings.TrimSpace(name)
	if cf, _ := t.findFamily(name); cf != nil {
		return fmt.Errorf("column family %q already exists", name)
	}
	t.Families = append(t.Families, NewColumnFamily(name, columns, t.Indexed))
	return nil
}

// RemoveColumnFamily drops a non-default family, refusing to remove the
// last non-default family or to leave the table with zero families.
func (t *Table) RemoveColumnFamily(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("cannot delete the default column family")
	}
	_, idx := t.findFamily(name)
	if idx < 0 {
		return fmt.Errorf("column family %q not found", name)
	}
	nonDefault := 0
	for _, cf := range t.Families {
		if cf.Name != "" {
			nonDefault++
		}
	}
	if nonDefault <= 1 {
		return fmt.Errorf("cannot delete the last non-default column family")
	}
	t.Families = append(t.Families[:idx], t.Families[idx+1:]...)
	return nil
}

// RenameColumnFamily renames oldName to newName, refusing if newName is
// already taken or oldName doesn't exist.
func (t *Table) RenameColumnFamily(oldName, newName string) error {
	oldName, newName = strings.TrimSpace(oldName), strings.TrimSpace(newName)
	cf, _ := t.findFamily(oldName)
	if cf == nil {
		return fmt.Errorf("column family %q not found", oldName)
	}
	if existing, _ := t.findFamily(newName); existing != nil {
		return fmt.Errorf("column family %q already exists", newName)
	}
	cf.Name = newName
	return nil
}

// EnableIndex turns on table-wide indexed mode, cascading to every family.
func (t *Table) EnableIndex() {
	t.Indexed = true
	for _, cf := range t.Families {
		cf.SetIndexed(true)
	}
}

// DisableIndex turns off table-wide indexed mode, cascading to every family.
func (t *Table) DisableIndex() {
	t.Indexed = false
	for _, cf := range t.Families {
		cf.SetIndexed(false)
	}
}

// FamilyNames returns the non-default family names, in table order.
func (t *Table) FamilyNames() []string {
	var names []string
	for _, cf := range t.Families {
		if cf.Name != "" {
			names = append(names, cf.Name)
		}
	}
	return names
}

// FamilySpecs returns every family (default included) with its current
// column names, used by truncate to rebuild an equivalent empty table.
func (t *Table) FamilySpecs() []FamilySpec {
	specs := make([]FamilySpec, 0, len(t.Families))
	for _, cf := range t.Families {
		var cols []string
		for name := range cf.Columns {
			cols = append(cols, name)
		}
		sort.Strings(cols)
		specs = append(specs, FamilySpec{Name: cf.Name, Columns: cols})
	}
	return specs
}

// RowKeys returns the distinct row keys across every family, sorted.
func (t *Table) RowKeys() []string {
	seen := make(map[string]struct{})
	for _, cf := range t.Families {
		for _, col := range cf.Columns {
			for _, cell := range col.Cells {
				seen[cell.RowKey] = struct{}{}
			}
		}
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// CountRows returns the number of distinct row keys.
func (t *Table) CountRows() int {
	return len(t.RowKeys())
}

// Enumerate unions every family's {rowKey: {qualifier: value}} map.
func (t *Table) Enumerate() map[string]map[string]interface{} {
	out := make(map[string]map[string]interface{})
	for _, cf := range t.Families {
		for rowKey, values := range cf.Enumerate() {
			if out[rowKey] == nil {
				out[rowKey] = make(map[string]interface{})
			}
			for qualifier, value := range values {
				out[rowKey][qualifier] = value
			}
		}
	}
	return out
}

// EnumerateWithMetadata concatenates every family's metadata rows.
func (t *Table) EnumerateWithMetadata() [][]interface{} {
	var data [][]interface{}
	for _, cf := range t.Families {
		data = append(data, cf.EnumerateWithMetadata()...)
	}
	return data
}

// EnumerateRow restricts the metadata form to one row, optionally one
// family and column.
func (t *Table) EnumerateRow(rowKey, family, column string) [][]interface{} {
	var data [][]interface{}
	if family == "" {
		for _, cf := range t.Families {
			data = append(data, cf.EnumerateRow(rowKey, column)...)
		}
		return data
	}
	cf, _ := t.findFamily(family)
	if cf == nil {
		return nil
	}
	return cf.EnumerateRow(rowKey, column)
}

// SearchData is a point read returning {qualifier: Cell}. With an empty
// family it returns every column of every family and the column argument
// is not applied; a column holding no Cell for rowKey maps to nil.
func (t *Table) SearchData(rowKey, family, column string) map[string]*Cell {
	out := make(map[string]*Cell)
	if family == "" {
		for _, cf := range t.Families {
			for name, cell := range cf.SearchRow(rowKey) {
				out[cf.Qualifier(name)] = cell
			}
		}
		return out
	}
	cf, _ := t.findFamily(family)
	if cf == nil {
		return out
	}
	out[cf.Qualifier(column)] = cf.Search(rowKey, column)
	return out
}

// InsertMany bulk-inserts rowKey -> family -> column -> raw scalar data,
// coercing each leaf the same way put does. Families absent from the
// table are silently skipped.
func (t *Table) InsertMany(rows map[string]map[string]map[string]interface{}) {
	for rowKey, families := range rows {
		for _, cf := range t.Families {
			columns, ok := families[cf.Name]
			if !ok {
				continue
			}
			for column, raw := range columns {
				cf.InsertOrUpdate(rowKey, column, fmt.Sprint(raw))
			}
		}
	}
}

// DeleteRow drops rowKey from every family/column.
func (t *Table) DeleteRow(rowKey string) {
	for _, cf := range t.Families {
		cf.DeleteRow(rowKey)
	}
}

// DeleteVersion removes one Value by timestamp from (rowKey, family, column).
func (t *Table) DeleteVersion(rowKey, family, column string, timestamp float64) (bool, error) {
	cf, _ := t.findFamily(family)
	if cf == nil {
		return false, fmt.Errorf("column family %q not found", family)
	}
	return cf.DeleteVersion(rowKey, column, timestamp), nil
}

// Describe is the summary record behind the `describe` command. Name is
// left blank here; the catalog fills it in.
type Describe struct {
	Name           string
	RowKeys        int
	ColumnFamilies []string
	Enabled        bool
	MaxVersions    int
	MinVersions    int
	Indexed        bool
}

// Describe computes the table summary.
func (t *Table) Describe() Describe {
	max, min := 0, -1
	for _, cf := range t.Families {
		if n := cf.MaxVersionCount(); n > max {
			max = n
		}
		n := cf.MinVersionCount()
		if min == -1 || n < min {
			min = n
		}
	}
	if min == -1 {
		min = 0
	}
	return Describe{
		RowKeys:        t.CountRows(),
		ColumnFamilies: t.FamilyNames(),
		Enabled:        t.Enabled,
		MaxVersions:    max,
		MinVersions:    min,
		Indexed:        t.Indexed,
	}
}
