package exec

import (
	"fmt"
	"strings"

	"github.com/danielcompton/peloton/common"
	"github.com/danielcompton/peloton/storage"
)

// Position is an opaque row-location id, resolvable together with its
// originating source to an actual value.
type Position uint32

// PositionSource dereferences a position against whatever physically holds
// the row. storage.Tile is the usual implementation.
type PositionSource interface {
	ValueAt(slot int, colIndex int) common.Value
}

// TileColumn binds one output column to a column of its originating source.
type TileColumn struct {
	Source   PositionSource
	ColIndex int
}

// LogicalTile is a virtual batch of rows built purely from indirection: one
// position list per output column, no row data copied. It is created empty by
// the factory, populated exactly once by its producer, then handed to exactly
// one consumer and never mutated again. An operator that builds one from
// matching pairs runs in time proportional to the matches, with zero payload
// copies.
type LogicalTile struct {
	schema        []TileColumn
	positionLists [][]Position
}

func NewLogicalTile() *LogicalTile {
	return &LogicalTile{}
}

// WrapTile builds a logical tile over every row and column of a physical
// tile, with identity position lists.
func WrapTile(tile *storage.Tile) *LogicalTile {
	colCount := tile.Schema().ColumnCount()
	schema := make([]TileColumn, colCount)
	lists := make([][]Position, colCount)
	for col := 0; col < colCount; col++ {
		schema[col] = TileColumn{Source: tile, ColIndex: col}
		list := make([]Position, tile.RowCount())
		for row := 0; row < tile.RowCount(); row++ {
			list[row] = Position(row)
		}
		lists[col] = list
	}
	lt := NewLogicalTile()
	lt.SetSchema(schema)
	lt.SetPositionLists(lists)
	return lt
}

// SetSchema replaces the schema wholesale, once, at construction.
func (lt *LogicalTile) SetSchema(columns []TileColumn) {
	if lt.schema != nil {
		panic("logical tile schema already set")
	}
	lt.schema = columns
}

// SetPositionLists replaces all position lists wholesale, once, after the
// producer finishes computing them. A mismatched list count or unequal inner
// lengths is a producer defect, not a recoverable condition.
func (lt *LogicalTile) SetPositionLists(lists [][]Position) {
	if lt.positionLists != nil {
		panic("logical tile position lists already set")
	}
	if lt.schema == nil {
		panic("logical tile schema must be set before position lists")
	}
	if len(lists) != len(lt.schema) {
		panic(fmt.Sprintf("%d position lists for %d columns", len(lists), len(lt.schema)))
	}
	for i := 1; i < len(lists); i++ {
		if len(lists[i]) != len(lists[0]) {
			panic(fmt.Sprintf("position list %d has length %d, expected %d", i, len(lists[i]), len(lists[0])))
		}
	}
	lt.positionLists = lists
}

func (lt *LogicalTile) Schema() []TileColumn {
	return lt.schema
}

func (lt *LogicalTile) PositionLists() [][]Position {
	return lt.positionLists
}

func (lt *LogicalTile) ColumnCount() int {
	return len(lt.schema)
}

func (lt *LogicalTile) RowCount() int {
	if len(lt.positionLists) == 0 {
		return 0
	}
	return len(lt.positionLists[0])
}

// Value resolves (column, row): look up the position, then dereference it
// against the column's originating source.
func (lt *LogicalTile) Value(colIndex int, rowIndex int) common.Value {
	pos := lt.positionLists[colIndex][rowIndex]
	col := lt.schema[colIndex]
	return col.Source.ValueAt(int(pos), col.ColIndex)
}

// Row returns the transient adapter presenting one logical row for predicate
// evaluation.
func (lt *LogicalTile) Row(rowIndex int) *TileRow {
	return &TileRow{tile: lt, rowIndex: rowIndex}
}

func (lt *LogicalTile) String() string {
	var sb strings.Builder
	for row := 0; row < lt.RowCount(); row++ {
		sb.WriteString("(")
		for col := 0; col < lt.ColumnCount(); col++ {
			if col > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(lt.Value(col, row).String())
		}
		sb.WriteString(")\n")
	}
	return sb.String()
}
