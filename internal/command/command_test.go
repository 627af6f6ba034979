package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEmptyInputYieldsEmptyCommand(t *testing.T) {
	cmd, err := Parse("   ")
	require.NoError(t, err)
	assert.Equal(t, "", cmd.Op)
	assert.Empty(t, cmd.Flags)
}

func TestParseLowercasesOperationName(t *testing.T) {
	cmd, err := Parse("LIST")
	require.NoError(t, err)
	assert.Equal(t, "list", cmd.Op)
}

func TestParseBareFlagHasNoneKind(t *testing.T) {
	cmd, err := Parse("scan -table=u -verbose")
	require.NoError(t, err)
	assert.Equal(t, KindNone, cmd.Get("verbose").Kind)
	s, ok := cmd.Get("table").AsString()
	assert.True(t, ok)
	assert.Equal(t, "u", s)
}

func TestParseListLiteral(t *testing.T) {
	cmd, err := Parse("create -table=u -column_families=[info,meta]")
	require.NoError(t, err)
	list, err := cmd.GetList("column_families")
	require.NoError(t, err)
	assert.Equal(t, []string{"info", "meta"}, list)
}

func TestParseListLiteralIsIdempotentAcrossReparse(t *testing.T) {
	cmd1, err := Parse("create -column_families=[a,b,c]")
	require.NoError(t, err)
	list1, _ := cmd1.GetList("column_families")

	cmd2, err := Parse("create -column_families=[a,b,c]")
	require.NoError(t, err)
	list2, _ := cmd2.GetList("column_families")

	assert.Equal(t, []string{"a", "b", "c"}, list1)
	assert.Equal(t, list1, list2)
}

func TestParseMapLiteral(t *testing.T) {
	cmd, err := Parse("insert_many -row={info:Ana,meta:active}")
	require.NoError(t, err)
	v := cmd.Get("row")
	require.Equal(t, KindMap, v.Kind)
	assert.Equal(t, "Ana", v.Map["info"])
	assert.Equal(t, "active", v.Map["meta"])
}

func TestParseQuotedValueWithWhitespace(t *testing.T) {
	cmd, err := Parse(`put -table=u -row=r1 -column=info:name -value="Ana Maria"`)
	require.NoError(t, err)
	s, ok := cmd.Get("value").AsString()
	assert.True(t, ok)
	assert.Equal(t, "Ana Maria", s)
}

func TestGetStringMissingFlagReturnsError(t *testing.T) {
	cmd, err := Parse("get -table=u")
	require.NoError(t, err)
	_, err = cmd.GetString("row")
	assert.Error(t, err)
}

func TestGetStringRejectsBareFlag(t *testing.T) {
	cmd, err := Parse("get -table")
	require.NoError(t, err)
	_, err = cmd.GetString("table")
	assert.Error(t, err)
}
