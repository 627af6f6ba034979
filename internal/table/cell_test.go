package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCellVersionHistoryAppendOnly(t *testing.T) {
	cell := NewCell("r1", "1")
	require.Equal(t, 1, cell.VersionCount())

	cell.Update("2")
	cell.Update("3")

	assert.Equal(t, 3, cell.VersionCount())
	assert.Equal(t, "3", cell.Current())
	assert.False(t, cell.IsEmpty())
}

func TestCellEquality(t *testing.T) {
	a := NewCell("r1", "x")
	b := NewCell("r1", "y")
	c := NewCell("r2", "z")

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.True(t, a.EqualRowKey("r1"))
	assert.False(t, a.EqualRowKey("r2"))
}

func TestCellRemoveVersionDropsHistoryEntry(t *testing.T) {
	cell := NewCell("r1", "1")
	ts := cell.History[0].Timestamp

	cell.Update("2")
	require.True(t, cell.RemoveVersion(ts))
	assert.Equal(t, 1, cell.VersionCount())
	assert.Equal(t, "2", cell.Current())
}

func TestValueCoercion(t *testing.T) {
	cases := map[string]interface{}{
		"123":   int64(123),
		"1.5":   float64(1.5),
		"True":  true,
		"FALSE": false,
		"foo":   "foo",
	}
	for raw, want := range cases {
		got := Coerce(raw)
		assert.Equalf(t, want, got.Payload, "coercing %q", raw)
	}
}
