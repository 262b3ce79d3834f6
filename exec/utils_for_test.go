package exec

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/danielcompton/peloton/catalog"
	"github.com/danielcompton/peloton/common"
	"github.com/danielcompton/peloton/storage"
)

// Test utils for this package

func toValue(t *testing.T, colType common.ColumnType, colVal interface{}) common.Value {
	t.Helper()
	if colVal == nil {
		return common.NewNullValue(colType.Type)
	}
	switch colType.Type {
	case common.TypeTinyInt:
		return common.NewTinyIntValue(int8(colVal.(int)))
	case common.TypeInt:
		return common.NewIntValue(int32(colVal.(int)))
	case common.TypeBigInt:
		return common.NewBigIntValue(int64(colVal.(int)))
	case common.TypeDouble:
		return common.NewDoubleValue(colVal.(float64))
	case common.TypeDecimal:
		dec, err := common.NewDecFromString(colVal.(string))
		require.NoError(t, err)
		return common.NewDecimalValue(dec)
	case common.TypeVarchar:
		return common.NewVarcharValue(colVal.(string))
	default:
		t.Fatalf("unexpected column type %d", colType.Type)
		return common.Value{}
	}
}

// buildTile encodes fixture rows into a physical tile. A nil colTypes infers
// the column types from the first row's Go values.
func buildTile(t *testing.T, colTypes []common.ColumnType, rows [][]interface{}) *storage.Tile {
	t.Helper()
	if colTypes == nil {
		require.NotEmpty(t, rows)
		colTypes = make([]common.ColumnType, len(rows[0]))
		for i, colVal := range rows[0] {
			colTypes[i] = common.InferColumnType(colVal)
		}
	}
	schema := catalog.NewSchemaFromColumnTypes(colTypes)
	numSlots := len(rows)
	if numSlots == 0 {
		numSlots = 1
	}
	tile := storage.NewTile(schema, numSlots)
	for _, row := range rows {
		values := make([]common.Value, len(row))
		for i, colVal := range row {
			values[i] = toValue(t, colTypes[i], colVal)
		}
		_, err := tile.InsertRow(values...)
		require.NoError(t, err)
	}
	return tile
}

func tileToSlice(t *testing.T, tile *LogicalTile, colTypes []common.ColumnType) [][]interface{} {
	t.Helper()
	rows := make([][]interface{}, tile.RowCount())
	for row := 0; row < tile.RowCount(); row++ {
		vals := make([]interface{}, tile.ColumnCount())
		for col := 0; col < tile.ColumnCount(); col++ {
			vals[col] = fromValue(t, colTypes[col], tile.Value(col, row))
		}
		rows[row] = vals
	}
	return rows
}

func fromValue(t *testing.T, colType common.ColumnType, val common.Value) interface{} {
	t.Helper()
	if val.IsNull() {
		return nil
	}
	switch colType.Type {
	case common.TypeTinyInt:
		return int(val.TinyInt())
	case common.TypeInt:
		return int(val.Int())
	case common.TypeBigInt:
		return int(val.BigInt())
	case common.TypeDouble:
		return val.Double()
	case common.TypeDecimal:
		return val.Decimal().String()
	case common.TypeVarchar:
		return val.Varchar()
	default:
		t.Fatalf("unexpected column type %d", colType.Type)
		return nil
	}
}

// drainJoin advances the executor until exhaustion, accumulating all output
// rows. Also returns the number of successful advances.
func drainJoin(t *testing.T, e Executor, colTypes []common.ColumnType) ([][]interface{}, int) {
	t.Helper()
	var rows [][]interface{}
	advances := 0
	for {
		ok, err := e.Advance()
		require.NoError(t, err)
		if !ok {
			return rows, advances
		}
		advances++
		tile := e.TakeOutput()
		rows = append(rows, tileToSlice(t, tile, colTypes)...)
	}
}
