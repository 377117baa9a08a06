package rowstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type note struct {
	Seq  int64  `gorm:"column:seq;primaryKey;autoIncrement"`
	Key  string `gorm:"column:key;type:text"`
	Body string `gorm:"column:body;type:text"`
}

func (note) TableName() string { return "notes" }

func (n note) RowSeq() int64 { return n.Seq }

func newTestTable(t *testing.T) *Table[note] {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	return NewTable[note](conn, Spec{KeyColumn: "key"})
}

func TestAppendPreservesOrder(t *testing.T) {
	table := newTestTable(t)
	ctx := context.Background()

	for _, key := range []string{"c", "a", "b"} {
		require.NoError(t, table.Append(ctx, &note{Key: key}))
	}

	rows, err := table.Scan(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, "c", rows[0].Key)
	require.Equal(t, "a", rows[1].Key)
	require.Equal(t, "b", rows[2].Key)
}

func TestFindByKeyFirstMatch(t *testing.T) {
	table := newTestTable(t)
	ctx := context.Background()

	require.NoError(t, table.Append(ctx, &note{Key: "dup", Body: "first"}))
	require.NoError(t, table.Append(ctx, &note{Key: "dup", Body: "second"}))

	row, err := table.FindByKey(ctx, "dup")
	require.NoError(t, err)
	require.Equal(t, "first", row.Body)

	_, err = table.FindByKey(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateFieldsLeavesOthersAlone(t *testing.T) {
	table := newTestTable(t)
	ctx := context.Background()

	require.NoError(t, table.Append(ctx, &note{Key: "k", Body: "original"}))
	require.NoError(t, table.UpdateFields(ctx, "k", map[string]any{"body": "changed"}))

	row, err := table.FindByKey(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, "k", row.Key)
	require.Equal(t, "changed", row.Body)

	err = table.UpdateFields(ctx, "missing", map[string]any{"body": "x"})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestReplaceOverwritesWholeRow(t *testing.T) {
	table := newTestTable(t)
	ctx := context.Background()

	require.NoError(t, table.Append(ctx, &note{Key: "k", Body: "original"}))
	require.NoError(t, table.Replace(ctx, "k", &note{Key: "k", Body: ""}))

	row, err := table.FindByKey(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, "", row.Body, "zero values must overwrite")
}

func TestDeleteByKeyRemovesFirstMatchOnly(t *testing.T) {
	table := newTestTable(t)
	ctx := context.Background()

	require.NoError(t, table.Append(ctx, &note{Key: "dup", Body: "first"}))
	require.NoError(t, table.Append(ctx, &note{Key: "dup", Body: "second"}))
	require.NoError(t, table.DeleteByKey(ctx, "dup"))

	rows, err := table.Scan(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "second", rows[0].Body)

	require.ErrorIs(t, table.DeleteByKey(ctx, "missing"), ErrNotFound)
}
