// Package catalog is the table directory: a named registry of Tables,
// each serialized whole to its own ".hfile" snapshot, with enable/disable
// lifecycle gating destructive operations.
package catalog

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/google/btree"
	"github.com/rs/zerolog"

	"github.com/rdiaz/hbaseshell/internal/shellerr"
	"github.com/rdiaz/hbaseshell/internal/table"
)

const snapshotExt = ".hfile"

// Catalog is the single long-lived registry of named Tables, owned by the
// dispatcher. There is no process-wide singleton.
type Catalog struct {
	dir    string
	tables map[string]*table.Table
	names  *btree.BTree
	log    zerolog.Logger
}

type tableNameItem string

func (t tableNameItem) Less(than btree.Item) bool {
	return string(t) < string(than.(tableNameItem))
}

// Open loads the catalog rooted at dir, creating the directory if it
// doesn't exist yet (reporting that back via the created bool) and
// otherwise loading every "*.hfile" snapshot it finds.
func Open(dir string, log zerolog.Logger) (*Catalog, bool, error) {
	c := &Catalog{dir: dir, tables: make(map[string]*table.Table), names: btree.New(8), log: log}

	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, false, fmt.Errorf("create table directory %s: %w", dir, err)
		}
		log.Info().Str("dir", dir).Msg("created table directory")
		return c, true, nil
	} else if err != nil {
		return nil, false, fmt.Errorf("stat table directory %s: %w", dir, err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, false, fmt.Errorf("read table directory %s: %w", dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != snapshotExt {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), snapshotExt)
		tbl, err := c.loadTable(name)
		if err != nil {
			return nil, false, fmt.Errorf("load table %s: %w", name, err)
		}
		c.tables[name] = tbl
		c.names.ReplaceOrInsert(tableNameItem(name))
	}
	log.Info().Int("tables", len(c.tables)).Str("dir", dir).Msg("catalog loaded")
	return c, false, nil
}

func (c *Catalog) path(name string) string {
	return filepath.Join(c.dir, name+snapshotExt)
}

func (c *Catalog) loadTable(name string) (*table.Table, error) {
	f, err := os.Open(c.path(name))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var tbl table.Table
	if err := gob.NewDecoder(f).Decode(&tbl); err != nil {
		return nil, err
	}
	tbl.RebuildIndex()
	return &tbl, nil
}

// saveTable snapshots a single table to its .hfile. Every mutation that
// changes a Table's content or Enabled flag is followed by this call.
func (c *Catalog) saveTable(name string) error {
	tbl := c.tables[name]
	f, err := os.Create(c.path(name))
	if err != nil {
		return shellerr.IOf("failed to save table '%s': %v", name, err)
	}
	defer f.Close()
	if err := gob.NewEncoder(f).Encode(tbl); err != nil {
		return shellerr.IOf("failed to save table '%s': %v", name, err)
	}
	return nil
}

func (c *Catalog) lookup(name string) (*table.Table, error) {
	tbl, ok := c.tables[name]
	if !ok {
		return nil, shellerr.NotFoundf("table '%s' not found", name)
	}
	return tbl, nil
}

func (c *Catalog) requireEnabled(tbl *table.Table, name string) error {
	if !tbl.Enabled {
		return shellerr.Preconditionf("table '%s' is disabled", name)
	}
	return nil
}

// List returns every table name in sorted order.
func (c *Catalog) List() []string {
	names := make([]string, 0, c.names.Len())
	c.names.Ascend(func(i btree.Item) bool {
		names = append(names, string(i.(tableNameItem)))
		return true
	})
	return names
}

// Create registers a new table with the given column families.
func (c *Catalog) Create(name string, families []string) error {
	if _, exists := c.tables[name]; exists {
		return shellerr.Conflictf("table '%s' already exists", name)
	}
	specs := make([]table.FamilySpec, len(families))
	for i, f := range families {
		specs[i] = table.FamilySpec{Name: f}
	}
	tbl := table.NewTable(specs, false)
	c.tables[name] = tbl
	c.names.ReplaceOrInsert(tableNameItem(name))
	c.log.Info().Str("table", name).Strs("families", families).Msg("table created")
	return c.saveTable(name)
}

// Drop destroys a table, refusing unless it's disabled.
func (c *Catalog) Drop(name string) error {
	tbl, err := c.lookup(name)
	if err != nil {
		return err
	}
	if tbl.Enabled {
		return shellerr.Preconditionf("disable table '%s' before dropping it", name)
	}
	delete(c.tables, name)
	c.names.Delete(tableNameItem(name))
	if err := os.Remove(c.path(name)); err != nil && !os.IsNotExist(err) {
		return shellerr.IOf("failed to remove snapshot for '%s': %v", name, err)
	}
	c.log.Info().Str("table", name).Msg("table dropped")
	return nil
}

// DropAll drops every table whose name fully matches regex, returning one
// result line per matched table: "dropped" or the rendered reason it was
// not. The error is non-nil only when the pattern does not compile.
func (c *Catalog) DropAll(pattern string) ([]string, error) {
	re, err := regexp.Compile(`\A(?:` + pattern + `)\z`)
	if err != nil {
		return nil, shellerr.InvalidValuef("invalid regex '%s': %v", pattern, err)
	}

	var matched []string
	for _, name := range c.List() {
		if re.MatchString(name) {
			matched = append(matched, name)
		}
	}

	lines := make([]string, 0, len(matched))
	for _, name := range matched {
		if err := c.Drop(name); err != nil {
			lines = append(lines, fmt.Sprintf("%s: %s", name, shellerr.Render(err)))
			continue
		}
		lines = append(lines, fmt.Sprintf("%s: dropped", name))
	}
	return lines, nil
}

// Enable flips a table's Enabled flag on and persists it.
func (c *Catalog) Enable(name string) error {
	tbl, err := c.lookup(name)
	if err != nil {
		return err
	}
	tbl.Enabled = true
	return c.saveTable(name)
}

// Disable flips a table's Enabled flag off and persists it.
func (c *Catalog) Disable(name string) error {
	tbl, err := c.lookup(name)
	if err != nil {
		return err
	}
	tbl.Enabled = false
	return c.saveTable(name)
}

// IsEnabled reports a table's current Enabled flag.
func (c *Catalog) IsEnabled(name string) (bool, error) {
	tbl, err := c.lookup(name)
	if err != nil {
		return false, err
	}
	return tbl.Enabled, nil
}

// Put writes family:column=value for one row, requiring the table be enabled.
func (c *Catalog) Put(name, row, family, column, value string) error {
	tbl, err := c.lookup(name)
	if err != nil {
		return err
	}
	if err := c.requireEnabled(tbl, name); err != nil {
		return err
	}
	if !tbl.InsertOrUpdateRow(row, family, column, value) {
		return shellerr.NotFoundf("column family '%s' not found in table '%s'", family, name)
	}
	return c.saveTable(name)
}

// GetRow performs a point read, optionally scoped to one family:column.
func (c *Catalog) GetRow(name, row, family, column string) ([][]interface{}, error) {
	tbl, err := c.lookup(name)
	if err != nil {
		return nil, err
	}
	return tbl.EnumerateRow(row, family, column), nil
}

// Scan dumps a table's full metadata.
func (c *Catalog) Scan(name string) ([][]interface{}, error) {
	tbl, err := c.lookup(name)
	if err != nil {
		return nil, err
	}
	return tbl.EnumerateWithMetadata(), nil
}

// Delete removes one Value by timestamp from (row, family:column).
func (c *Catalog) Delete(name, row, family, column string, timestamp float64) error {
	tbl, err := c.lookup(name)
	if err != nil {
		return err
	}
	if err := c.requireEnabled(tbl, name); err != nil {
		return err
	}
	removed, err := tbl.DeleteVersion(row, family, column, timestamp)
	if err != nil {
		return shellerr.NotFoundf("%v", err)
	}
	if !removed {
		return shellerr.NotFoundf("no value at timestamp %v for row '%s' column '%s:%s'", timestamp, row, family, column)
	}
	return c.saveTable(name)
}

// DeleteAll removes a row from every family/column of the table.
func (c *Catalog) DeleteAll(name, row string) error {
	tbl, err := c.lookup(name)
	if err != nil {
		return err
	}
	if err := c.requireEnabled(tbl, name); err != nil {
		return err
	}
	tbl.DeleteRow(row)
	return c.saveTable(name)
}

// Count returns the number of distinct row keys in a table.
func (c *Catalog) Count(name string) (int, error) {
	tbl, err := c.lookup(name)
	if err != nil {
		return 0, err
	}
	return tbl.CountRows(), nil
}

// Truncate disables, drops and re-creates a table with the same family set.
func (c *Catalog) Truncate(name string) error {
	tbl, err := c.lookup(name)
	if err != nil {
		return err
	}
	if err := c.requireEnabled(tbl, name); err != nil {
		return err
	}
	specs := tbl.FamilySpecs()
	wasIndexed := tbl.Indexed

	tbl.Enabled = false
	delete(c.tables, name)
	c.names.Delete(tableNameItem(name))
	if err := os.Remove(c.path(name)); err != nil && !os.IsNotExist(err) {
		return shellerr.IOf("failed to remove snapshot for '%s': %v", name, err)
	}

	fresh := table.NewTable(specs, wasIndexed)
	c.tables[name] = fresh
	c.names.ReplaceOrInsert(tableNameItem(name))
	c.log.Info().Str("table", name).Msg("table truncated")
	return c.saveTable(name)
}

// Describe returns the one-row summary for a table, Name filled in.
func (c *Catalog) Describe(name string) (table.Describe, error) {
	tbl, err := c.lookup(name)
	if err != nil {
		return table.Describe{}, err
	}
	d := tbl.Describe()
	d.Name = name
	return d, nil
}

// InsertMany bulk-inserts {table: {rowKey: {family: {column: value}}}}.
// Unknown tables are silently ignored. It returns the total number of
// (table, row) entries processed across every named table.
func (c *Catalog) InsertMany(data map[string]map[string]map[string]map[string]interface{}) (int, error) {
	affected := 0
	names := make([]string, 0, len(data))
	for name := range data {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		tbl, ok := c.tables[name]
		if !ok {
			continue
		}
		if err := c.requireEnabled(tbl, name); err != nil {
			return affected, err
		}
		rows := data[name]
		tbl.InsertMany(rows)
		affected += len(rows)
		if err := c.saveTable(name); err != nil {
			return affected, err
		}
	}
	return affected, nil
}
