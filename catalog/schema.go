package catalog

import (
	"fmt"
	"strings"

	"github.com/danielcompton/peloton/common"
)

// MaxInlineVarcharLength is the largest varchar bound stored directly in the
// fixed row layout. Longer or unbounded varchars live out of line, addressed
// by an arena handle.
const MaxInlineVarcharLength = 64

// Bytes occupied in the fixed layout by an out-of-line column: a 4 byte
// arena handle followed by a 4 byte payload length.
const outOfLineSlotLength = 8

type Column struct {
	Name string
	Type common.ColumnType
}

// ColumnInfo is the resolved layout of one column: where its bytes start in a
// row, how many fixed bytes it occupies, and whether the value itself is
// inlined there or reached through a handle.
type ColumnInfo struct {
	Name           string
	Type           common.ColumnType
	Offset         int
	FixedLength    int
	VariableLength int
	Inlined        bool
}

// Schema is the fixed layout of a row. Column order, types and offsets never
// change once the schema is built.
type Schema struct {
	columns []ColumnInfo
	length  int
}

func NewSchema(columns []Column) *Schema {
	infos := make([]ColumnInfo, len(columns))
	offset := 0
	for i, col := range columns {
		fixedLength, inlined := slotLength(col.Type)
		infos[i] = ColumnInfo{
			Name:           col.Name,
			Type:           col.Type,
			Offset:         offset,
			FixedLength:    fixedLength,
			VariableLength: col.Type.MaxLength,
			Inlined:        inlined,
		}
		offset += fixedLength
	}
	return &Schema{columns: infos, length: offset}
}

// NewSchemaFromColumnTypes builds a schema with generated column names, which
// is all intermediate results need.
func NewSchemaFromColumnTypes(columnTypes []common.ColumnType) *Schema {
	columns := make([]Column, len(columnTypes))
	for i, ct := range columnTypes {
		columns[i] = Column{Name: fmt.Sprintf("col%d", i), Type: ct}
	}
	return NewSchema(columns)
}

func slotLength(ct common.ColumnType) (int, bool) {
	switch ct.Type {
	case common.TypeTinyInt:
		return 1, true
	case common.TypeInt:
		return 4, true
	case common.TypeBigInt, common.TypeDouble, common.TypeDecimal, common.TypeTimestamp:
		return 8, true
	case common.TypeVarchar:
		if ct.MaxLength > 0 && ct.MaxLength <= MaxInlineVarcharLength {
			// Length prefix plus payload bound.
			return 4 + ct.MaxLength, true
		}
		return outOfLineSlotLength, false
	default:
		panic(fmt.Sprintf("no layout for column type %s", ct))
	}
}

// Length is the total fixed layout length of a row in bytes.
func (s *Schema) Length() int {
	return s.length
}

func (s *Schema) ColumnCount() int {
	return len(s.columns)
}

func (s *Schema) Column(colIndex int) ColumnInfo {
	return s.columns[colIndex]
}

func (s *Schema) Offset(colIndex int) int {
	return s.columns[colIndex].Offset
}

func (s *Schema) Type(colIndex int) common.ColumnType {
	return s.columns[colIndex].Type
}

func (s *Schema) IsInlined(colIndex int) bool {
	return s.columns[colIndex].Inlined
}

func (s *Schema) ColumnTypes() []common.ColumnType {
	types := make([]common.ColumnType, len(s.columns))
	for i, col := range s.columns {
		types[i] = col.Type
	}
	return types
}

func (s *Schema) String() string {
	var sb strings.Builder
	sb.WriteString("schema(")
	for i, col := range s.columns {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s %s @%d", col.Name, col.Type, col.Offset)
	}
	sb.WriteString(")")
	return sb.String()
}
