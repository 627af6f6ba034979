package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColumnIndexedModeMatchesUnindexedSearch(t *testing.T) {
	col := NewColumn("name", false)
	col.Insert("r1", "Ana")
	col.Insert("r2", "Bo")

	col.SetIndexed(true)
	require.True(t, col.Indexed)

	for _, k := range []string{"r1", "r2"} {
		linear := col.Search(k)
		require.NotNil(t, linear)
	}

	// invariant: the tree's row keys equal the sequence's row keys.
	var seqKeys []string
	for _, c := range col.Cells {
		seqKeys = append(seqKeys, c.RowKey)
	}
	assert.ElementsMatch(t, seqKeys, col.tree.RowKeys())
}

func TestColumnInsertAppendsVersionOnExistingRow(t *testing.T) {
	col := NewColumn("age", false)
	col.Insert("r1", int64(30))
	col.Insert("r1", int64(31))

	cell := col.Search("r1")
	require.NotNil(t, cell)
	assert.Equal(t, 2, cell.VersionCount())
	assert.Equal(t, int64(31), cell.Current())
}

func TestColumnDeleteVersionDropsCellWhenEmpty(t *testing.T) {
	col := NewColumn("name", true)
	col.Insert("r1", "Ana")
	cell := col.Search("r1")
	ts := cell.History[0].Timestamp

	removed := col.DeleteVersion("r1", ts)
	assert.True(t, removed)
	assert.Nil(t, col.Search("r1"))
	assert.Empty(t, col.tree.RowKeys())
}

func TestColumnMinMaxVersionCount(t *testing.T) {
	col := NewColumn("c", false)
	assert.Equal(t, 0, col.MaxVersionCount())
	assert.Equal(t, 0, col.MinVersionCount())

	col.Insert("r1", "a")
	col.Insert("r1", "b")
	col.Insert("r2", "c")

	assert.Equal(t, 2, col.MaxVersionCount())
	assert.Equal(t, 1, col.MinVersionCount())
}
