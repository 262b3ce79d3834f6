package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/danielcompton/peloton/common"
)

func TestSchemaOffsetsAndLength(t *testing.T) {
	schema := NewSchema([]Column{
		{Name: "a", Type: common.TinyIntColumnType},
		{Name: "b", Type: common.IntColumnType},
		{Name: "c", Type: common.BigIntColumnType},
		{Name: "d", Type: common.DoubleColumnType},
	})
	require.Equal(t, 4, schema.ColumnCount())
	require.Equal(t, 0, schema.Offset(0))
	require.Equal(t, 1, schema.Offset(1))
	require.Equal(t, 5, schema.Offset(2))
	require.Equal(t, 13, schema.Offset(3))
	require.Equal(t, 21, schema.Length())
}

func TestSchemaVarcharInlining(t *testing.T) {
	schema := NewSchema([]Column{
		{Name: "short", Type: common.NewVarcharColumnType(16)},
		{Name: "atLimit", Type: common.NewVarcharColumnType(MaxInlineVarcharLength)},
		{Name: "long", Type: common.NewVarcharColumnType(MaxInlineVarcharLength + 1)},
		{Name: "unbounded", Type: common.VarcharColumnType},
	})

	require.True(t, schema.IsInlined(0))
	require.Equal(t, 4+16, schema.Column(0).FixedLength)

	require.True(t, schema.IsInlined(1))
	require.Equal(t, 4+MaxInlineVarcharLength, schema.Column(1).FixedLength)

	// Beyond the inline bound the slot holds a handle and a length.
	require.False(t, schema.IsInlined(2))
	require.Equal(t, 8, schema.Column(2).FixedLength)

	require.False(t, schema.IsInlined(3))
	require.Equal(t, 8, schema.Column(3).FixedLength)
	require.Equal(t, 0, schema.Column(3).VariableLength)
}

func TestSchemaDecimalAndTimestampSlots(t *testing.T) {
	schema := NewSchema([]Column{
		{Name: "d", Type: common.NewDecimalColumnType(10, 2)},
		{Name: "ts", Type: common.TimestampColumnType},
	})
	require.Equal(t, 8, schema.Column(0).FixedLength)
	require.Equal(t, 8, schema.Column(1).FixedLength)
	require.Equal(t, 2, schema.Column(0).Type.DecScale)
}

func TestSchemaFromColumnTypes(t *testing.T) {
	schema := NewSchemaFromColumnTypes([]common.ColumnType{
		common.BigIntColumnType,
		common.VarcharColumnType,
	})
	require.Equal(t, 2, schema.ColumnCount())
	require.Equal(t, "col0", schema.Column(0).Name)
	require.Equal(t, common.TypeVarchar, schema.Type(1).Type)
	require.Equal(t, []common.ColumnType{common.BigIntColumnType, common.VarcharColumnType}, schema.ColumnTypes())
}
