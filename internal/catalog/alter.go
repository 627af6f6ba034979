package catalog

import "github.com/rdiaz/hbaseshell/internal/shellerr"

// AlterOptions captures alter's mutually exclusive modes (spec §4.8):
// delete a family, add/rename/delete a family via cf+method, or toggle
// table-wide indexed mode.
type AlterOptions struct {
	Delete *string
	CF     *string
	Method *string
	NewCF  *string
	Index  bool
}

// Alter applies exactly one of AlterOptions' modes, evaluated in order:
// Delete, then CF (+Method), then Index.
func (c *Catalog) Alter(name string, opts AlterOptions) error {
	tbl, err := c.lookup(name)
	if err != nil {
		return err
	}
	if err := c.requireEnabled(tbl, name); err != nil {
		return err
	}

	if opts.Delete != nil && opts.CF != nil {
		return shellerr.Conflictf("alter: 'delete' and 'cf' are mutually exclusive")
	}

	switch {
	case opts.Delete != nil:
		if err := tbl.RemoveColumnFamily(*opts.Delete); err != nil {
			return shellerr.Preconditionf("%v", err)
		}

	case opts.CF != nil:
		method := "add"
		if opts.Method != nil && *opts.Method != "" {
			method = *opts.Method
		}
		switch method {
		case "delete":
			if err := tbl.RemoveColumnFamily(*opts.CF); err != nil {
				return shellerr.Preconditionf("%v", err)
			}
		case "rename":
			if opts.NewCF == nil || *opts.NewCF == "" {
				return shellerr.MissingFlagf("new_cf")
			}
			if err := tbl.RenameColumnFamily(*opts.CF, *opts.NewCF); err != nil {
				return shellerr.Conflictf("%v", err)
			}
		case "add":
			if err := tbl.AddColumnFamily(*opts.CF, nil); err != nil {
				return shellerr.Conflictf("%v", err)
			}
		default:
			return shellerr.InvalidValuef("alter: unknown method '%s'", method)
		}

	case opts.Index:
		if tbl.Indexed {
			tbl.DisableIndex()
		} else {
			tbl.EnableIndex()
		}

	default:
		return shellerr.MissingFlagf("delete, cf or index")
	}

	return c.saveTable(name)
}
