// Package dispatch maps a parsed command.Command onto a catalog
// operation, validating required flags, timing the catalog call, and
// shaping the result into the tabular-or-status contract of spec §4.6/§6.
package dispatch

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/rdiaz/hbaseshell/internal/catalog"
	"github.com/rdiaz/hbaseshell/internal/command"
	"github.com/rdiaz/hbaseshell/internal/render"
	"github.com/rdiaz/hbaseshell/internal/shellerr"
)

// Output is what one dispatched command produces: either a tabular
// ResultSet or a single status line, never both.
type Output struct {
	ResultSet *render.ResultSet
	Status    string
}

// Dispatcher routes parsed commands to catalog operations.
type Dispatcher struct {
	cat *catalog.Catalog
	log zerolog.Logger
}

// New builds a Dispatcher backed by cat.
func New(cat *catalog.Catalog, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{cat: cat, log: log}
}

type handlerFunc func(d *Dispatcher, cmd *command.Command) (Output, error)

var handlers = map[string]handlerFunc{
	"list":        (*Dispatcher).handleList,
	"scan":        (*Dispatcher).handleScan,
	"create":      (*Dispatcher).handleCreate,
	"drop":        (*Dispatcher).handleDrop,
	"drop_all":    (*Dispatcher).handleDropAll,
	"enable":      (*Dispatcher).handleEnable,
	"disable":     (*Dispatcher).handleDisable,
	"is_enabled":  (*Dispatcher).handleIsEnabled,
	"put":         (*Dispatcher).handlePut,
	"get":         (*Dispatcher).handleGet,
	"delete":      (*Dispatcher).handleDelete,
	"delete_all":  (*Dispatcher).handleDeleteAll,
	"count":       (*Dispatcher).handleCount,
	"truncate":    (*Dispatcher).handleTruncate,
	"alter":       (*Dispatcher).handleAlter,
	"describe":    (*Dispatcher).handleDescribe,
	"insert_many": (*Dispatcher).handleInsertMany,
}

// Execute parses and runs one input line, returning a rendered Output
// and never an error the caller must further inspect: failures are
// already classified and formatted as the Status string.
func (d *Dispatcher) Execute(line string) Output {
	cmd, err := command.Parse(line)
	if err != nil {
		return Output{Status: shellerr.Render(err)}
	}
	if cmd.Op == "" {
		return Output{}
	}

	handler, ok := handlers[cmd.Op]
	if !ok {
		return Output{Status: fmt.Sprintf("Error: unknown command '%s'", cmd.Op)}
	}

	start := time.Now()
	out, err := handler(d, cmd)
	elapsed := time.Since(start).Seconds()

	if err != nil {
		d.log.Warn().Str("op", cmd.Op).Err(err).Msg("command failed")
		return Output{Status: shellerr.Render(err)}
	}
	if out.ResultSet != nil {
		return out
	}
	if out.Status == "" {
		out.Status = render.CountLine(1, elapsed)
	}
	return out
}

func requireString(cmd *command.Command, key string) (string, error) {
	return cmd.GetString(key)
}

func countStatus(n int, start time.Time) Output {
	return Output{Status: render.CountLine(n, time.Since(start).Seconds())}
}

func (d *Dispatcher) handleList(cmd *command.Command) (Output, error) {
	names := d.cat.List()
	rows := make([][]interface{}, len(names))
	for i, n := range names {
		rows[i] = []interface{}{n}
	}
	rs := render.NewResultSet([]string{"Tables"}, rows)
	return Output{ResultSet: &rs}, nil
}

func (d *Dispatcher) handleScan(cmd *command.Command) (Output, error) {
	name, err := requireString(cmd, "table")
	if err != nil {
		return Output{}, err
	}
	rows, err := d.cat.Scan(name)
	if err != nil {
		return Output{}, err
	}
	rs := render.NewResultSet([]string{"row", "qualifier", "timestamp", "value"}, rows)
	return Output{ResultSet: &rs}, nil
}

func (d *Dispatcher) handleCreate(cmd *command.Command) (Output, error) {
	name, err := requireString(cmd, "table")
	if err != nil {
		return Output{}, err
	}
	families, err := cmd.GetList("column_families")
	if err != nil {
		return Output{}, err
	}
	start := time.Now()
	if err := d.cat.Create(name, families); err != nil {
		return Output{}, err
	}
	return countStatus(1, start), nil
}

func (d *Dispatcher) handleDrop(cmd *command.Command) (Output, error) {
	name, err := requireString(cmd, "table")
	if err != nil {
		return Output{}, err
	}
	start := time.Now()
	if err := d.cat.Drop(name); err != nil {
		return Output{}, err
	}
	return countStatus(1, start), nil
}

func (d *Dispatcher) handleDropAll(cmd *command.Command) (Output, error) {
	pattern, err := requireString(cmd, "regex")
	if err != nil {
		return Output{}, err
	}
	lines, err := d.cat.DropAll(pattern)
	if err != nil {
		return Output{}, err
	}
	msg := ""
	for i, line := range lines {
		if i > 0 {
			msg += "\n"
		}
		msg += line
	}
	return Output{Status: msg}, nil
}

func (d *Dispatcher) handleEnable(cmd *command.Command) (Output, error) {
	name, err := requireString(cmd, "table")
	if err != nil {
		return Output{}, err
	}
	start := time.Now()
	if err := d.cat.Enable(name); err != nil {
		return Output{}, err
	}
	return countStatus(1, start), nil
}

func (d *Dispatcher) handleDisable(cmd *command.Command) (Output, error) {
	name, err := requireString(cmd, "table")
	if err != nil {
		return Output{}, err
	}
	start := time.Now()
	if err := d.cat.Disable(name); err != nil {
		return Output{}, err
	}
	return countStatus(1, start), nil
}

func (d *Dispatcher) handleIsEnabled(cmd *command.Command) (Output, error) {
	name, err := requireString(cmd, "table")
	if err != nil {
		return Output{}, err
	}
	enabled, err := d.cat.IsEnabled(name)
	if err != nil {
		return Output{}, err
	}
	state := "disabled"
	if enabled {
		state = "enabled"
	}
	return Output{Status: fmt.Sprintf("Table '%s' is %s.", name, state)}, nil
}

func (d *Dispatcher) handlePut(cmd *command.Command) (Output, error) {
	name, err := requireString(cmd, "table")
	if err != nil {
		return Output{}, err
	}
	row, err := requireString(cmd, "row")
	if err != nil {
		return Output{}, err
	}
	column, err := requireString(cmd, "column")
	if err != nil {
		return Output{}, err
	}
	value, err := requireString(cmd, "value")
	if err != nil {
		return Output{}, err
	}
	family, column := splitQualifier(column)

	start := time.Now()
	if err := d.cat.Put(name, row, family, column, value); err != nil {
		return Output{}, err
	}
	return countStatus(1, start), nil
}

// splitQualifier splits a "family:column" qualifier, defaulting family to
// the empty (default) family when no colon is present.
func splitQualifier(qualifier string) (family, column string) {
	for i := 0; i < len(qualifier); i++ {
		if qualifier[i] == ':' {
			return qualifier[:i], qualifier[i+1:]
		}
	}
	return "", qualifier
}

func (d *Dispatcher) handleGet(cmd *command.Command) (Output, error) {
	name, err := requireString(cmd, "table")
	if err != nil {
		return Output{}, err
	}
	row, err := requireString(cmd, "row")
	if err != nil {
		return Output{}, err
	}
	family, column := "", ""
	if v, ok := cmd.Get("column").AsString(); ok {
		family, column = splitQualifier(v)
	}
	rows, err := d.cat.GetRow(name, row, family, column)
	if err != nil {
		return Output{}, err
	}
	rs := render.NewResultSet([]string{"row", "qualifier", "timestamp", "value"}, rows)
	return Output{ResultSet: &rs}, nil
}

func (d *Dispatcher) handleDelete(cmd *command.Command) (Output, error) {
	name, err := requireString(cmd, "table")
	if err != nil {
		return Output{}, err
	}
	row, err := requireString(cmd, "row")
	if err != nil {
		return Output{}, err
	}
	qualifier, err := requireString(cmd, "column_name")
	if err != nil {
		return Output{}, err
	}
	tsRaw, err := requireString(cmd, "timestamp")
	if err != nil {
		return Output{}, err
	}
	ts, perr := strconv.ParseFloat(tsRaw, 64)
	if perr != nil {
		return Output{}, shellerr.InvalidValuef("invalid timestamp '%s': %v", tsRaw, perr)
	}
	family, column := splitQualifier(qualifier)

	start := time.Now()
	if err := d.cat.Delete(name, row, family, column, ts); err != nil {
		return Output{}, err
	}
	return countStatus(1, start), nil
}

func (d *Dispatcher) handleDeleteAll(cmd *command.Command) (Output, error) {
	name, err := requireString(cmd, "table")
	if err != nil {
		return Output{}, err
	}
	row, err := requireString(cmd, "row")
	if err != nil {
		return Output{}, err
	}
	start := time.Now()
	if err := d.cat.DeleteAll(name, row); err != nil {
		return Output{}, err
	}
	return countStatus(1, start), nil
}

func (d *Dispatcher) handleCount(cmd *command.Command) (Output, error) {
	name, err := requireString(cmd, "table")
	if err != nil {
		return Output{}, err
	}
	start := time.Now()
	n, err := d.cat.Count(name)
	if err != nil {
		return Output{}, err
	}
	return countStatus(n, start), nil
}

func (d *Dispatcher) handleTruncate(cmd *command.Command) (Output, error) {
	name, err := requireString(cmd, "table")
	if err != nil {
		return Output{}, err
	}
	start := time.Now()
	if err := d.cat.Truncate(name); err != nil {
		return Output{}, err
	}
	return countStatus(1, start), nil
}

func (d *Dispatcher) handleAlter(cmd *command.Command) (Output, error) {
	name, err := requireString(cmd, "table")
	if err != nil {
		return Output{}, err
	}

	opts := catalog.AlterOptions{}
	if v, ok := cmd.Get("delete").AsString(); ok {
		opts.Delete = &v
	}
	if v, ok := cmd.Get("cf").AsString(); ok {
		opts.CF = &v
	}
	if v, ok := cmd.Get("method").AsString(); ok {
		opts.Method = &v
	}
	if v, ok := cmd.Get("new_cf").AsString(); ok {
		opts.NewCF = &v
	}
	if cmd.Get("index") != nil {
		opts.Index = true
	}

	start := time.Now()
	if err := d.cat.Alter(name, opts); err != nil {
		return Output{}, err
	}
	return countStatus(1, start), nil
}

func (d *Dispatcher) handleDescribe(cmd *command.Command) (Output, error) {
	name, err := requireString(cmd, "table")
	if err != nil {
		return Output{}, err
	}
	desc, err := d.cat.Describe(name)
	if err != nil {
		return Output{}, err
	}
	header := []string{"Name", "Row keys", "Column Families", "isEnable", "Max number of versions", "Min number of versions", "Is indexed"}
	rows := [][]interface{}{{
		desc.Name, desc.RowKeys, fmt.Sprint(desc.ColumnFamilies), desc.Enabled, desc.MaxVersions, desc.MinVersions, desc.Indexed,
	}}
	rs := render.NewResultSet(header, rows)
	return Output{ResultSet: &rs}, nil
}

// bulkInsertPayload is the JSON shape insert_many reads:
// {table: {rowKey: {family: {column: value}}}}.
type bulkInsertPayload map[string]map[string]map[string]map[string]interface{}

func (d *Dispatcher) handleInsertMany(cmd *command.Command) (Output, error) {
	path, err := requireString(cmd, "file")
	if err != nil {
		return Output{}, err
	}
	raw, rerr := os.ReadFile(path)
	if rerr != nil {
		return Output{}, shellerr.IOf("failed to read '%s': %v", path, rerr)
	}
	var payload bulkInsertPayload
	if jerr := json.Unmarshal(raw, &payload); jerr != nil {
		return Output{}, shellerr.InvalidValuef("invalid JSON in '%s': %v", path, jerr)
	}

	start := time.Now()
	n, err := d.cat.InsertMany(payload)
	if err != nil {
		return Output{}, err
	}
	return countStatus(n, start), nil
}
