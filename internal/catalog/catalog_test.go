package catalog

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "tables")
	cat, created, err := Open(dir, zerolog.Nop())
	require.NoError(t, err)
	require.True(t, created)
	return cat
}

func TestOpenCreatesMissingDirectory(t *testing.T) {
	newTestCatalog(t)
}

func TestOpenReloadsPersistedTables(t *testing.T) {
	dir := t.TempDir()
	cat, _, err := Open(dir, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, cat.Create("u", []string{"info", "meta"}))
	require.NoError(t, cat.Put("u", "r1", "info", "name", "Ana"))

	reopened, created, err := Open(dir, zerolog.Nop())
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, []string{"u"}, reopened.List())

	count, err := reopened.Count("u")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestCreateListDescribeScenario(t *testing.T) {
	cat := newTestCatalog(t)
	require.NoError(t, cat.Create("u", []string{"info", "meta"}))

	assert.Equal(t, []string{"u"}, cat.List())

	d, err := cat.Describe("u")
	require.NoError(t, err)
	assert.Equal(t, []string{"info", "meta"}, d.ColumnFamilies)
	assert.True(t, d.Enabled)
}

func TestPutThenGetScenario(t *testing.T) {
	cat := newTestCatalog(t)
	require.NoError(t, cat.Create("u", []string{"info"}))
	require.NoError(t, cat.Put("u", "r1", "info", "name", "Ana"))

	rows, err := cat.GetRow("u", "r1", "", "")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "info:name", rows[0][1])
	assert.Equal(t, "Ana", rows[0][3])
}

func TestPutCoercesIntegerValue(t *testing.T) {
	cat := newTestCatalog(t)
	require.NoError(t, cat.Create("u", []string{"info"}))
	require.NoError(t, cat.Put("u", "r1", "info", "age", "30"))

	rows, err := cat.GetRow("u", "r1", "info", "age")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(30), rows[0][3])
}

func TestDisableThenDropRemovesTableDropBeforeDisableRefuses(t *testing.T) {
	cat := newTestCatalog(t)
	require.NoError(t, cat.Create("u", nil))

	err := cat.Drop("u")
	require.Error(t, err)

	require.NoError(t, cat.Disable("u"))
	require.NoError(t, cat.Drop("u"))
	assert.Empty(t, cat.List())
}

func TestEnableThenDropKeepsTablePresentUntilDisabled(t *testing.T) {
	cat := newTestCatalog(t)
	require.NoError(t, cat.Create("u", nil))
	require.NoError(t, cat.Enable("u"))
	assert.Error(t, cat.Drop("u"))
	assert.Equal(t, []string{"u"}, cat.List())
}

func TestTruncateResetsRowsButKeepsFamilies(t *testing.T) {
	cat := newTestCatalog(t)
	require.NoError(t, cat.Create("u", []string{"info"}))
	require.NoError(t, cat.Put("u", "r1", "info", "name", "Ana"))

	before, err := cat.Describe("u")
	require.NoError(t, err)

	require.NoError(t, cat.Truncate("u"))

	count, err := cat.Count("u")
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	after, err := cat.Describe("u")
	require.NoError(t, err)
	assert.Equal(t, before.ColumnFamilies, after.ColumnFamilies)
	assert.True(t, after.Enabled)
}

func TestInsertManyScenario(t *testing.T) {
	cat := newTestCatalog(t)
	require.NoError(t, cat.Create("u", []string{"info"}))

	n, err := cat.InsertMany(map[string]map[string]map[string]map[string]interface{}{
		"u": {"r2": {"info": {"name": "B"}}},
		"missing": {"r1": {"info": {"name": "x"}}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	count, err := cat.Count("u")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestDropAllMatchesFullNameRegex(t *testing.T) {
	cat := newTestCatalog(t)
	require.NoError(t, cat.Create("users", nil))
	require.NoError(t, cat.Create("usersarchive", nil))
	require.NoError(t, cat.Create("orders", nil))
	require.NoError(t, cat.Disable("users"))
	require.NoError(t, cat.Disable("usersarchive"))

	lines, err := cat.DropAll("users.*")
	require.NoError(t, err)
	assert.Len(t, lines, 2)
	assert.Equal(t, []string{"orders"}, cat.List())
}

func TestAlterAddRenameDeleteColumnFamily(t *testing.T) {
	cat := newTestCatalog(t)
	require.NoError(t, cat.Create("u", []string{"info"}))

	cf := "audit"
	require.NoError(t, cat.Alter("u", AlterOptions{CF: &cf}))

	d, err := cat.Describe("u")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"info", "audit"}, d.ColumnFamilies)

	method := "rename"
	newName := "log"
	require.NoError(t, cat.Alter("u", AlterOptions{CF: &cf, Method: &method, NewCF: &newName}))

	deleteMethod := "delete"
	require.NoError(t, cat.Alter("u", AlterOptions{CF: &newName, Method: &deleteMethod}))

	d, err = cat.Describe("u")
	require.NoError(t, err)
	assert.Equal(t, []string{"info"}, d.ColumnFamilies)
}

func TestAlterRefusesBothDeleteAndCF(t *testing.T) {
	cat := newTestCatalog(t)
	require.NoError(t, cat.Create("u", []string{"info", "meta"}))

	del := "info"
	cf := "meta"
	assert.Error(t, cat.Alter("u", AlterOptions{Delete: &del, CF: &cf}))
}

func TestAlterIndexTogglesTableWideFlag(t *testing.T) {
	cat := newTestCatalog(t)
	require.NoError(t, cat.Create("u", []string{"info"}))

	require.NoError(t, cat.Alter("u", AlterOptions{Index: true}))
	d, err := cat.Describe("u")
	require.NoError(t, err)
	assert.True(t, d.Indexed)

	require.NoError(t, cat.Alter("u", AlterOptions{Index: true}))
	d, err = cat.Describe("u")
	require.NoError(t, err)
	assert.False(t, d.Indexed)
}

func TestDeleteRemovesSingleVersionDeleteAllRemovesRow(t *testing.T) {
	cat := newTestCatalog(t)
	require.NoError(t, cat.Create("u", []string{"info"}))
	require.NoError(t, cat.Put("u", "r1", "info", "name", "Ana"))

	rows, err := cat.GetRow("u", "r1", "info", "name")
	require.NoError(t, err)
	ts, ok := rows[0][2].(float64)
	require.True(t, ok)

	require.NoError(t, cat.Delete("u", "r1", "info", "name", ts))
	count, err := cat.Count("u")
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	require.NoError(t, cat.Put("u", "r2", "info", "name", "Bo"))
	require.NoError(t, cat.DeleteAll("u", "r2"))
	count, err = cat.Count("u")
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestMutationOnDisabledTableIsRefused(t *testing.T) {
	cat := newTestCatalog(t)
	require.NoError(t, cat.Create("u", []string{"info"}))
	require.NoError(t, cat.Disable("u"))

	assert.Error(t, cat.Put("u", "r1", "info", "name", "Ana"))
}

func TestTruncateRefusesWhenDisabled(t *testing.T) {
	cat := newTestCatalog(t)
	require.NoError(t, cat.Create("u", []string{"info"}))
	require.NoError(t, cat.Disable("u"))

	assert.Error(t, cat.Truncate("u"))
}
