package common

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

type Type int

const (
	TypeUnknown Type = iota
	TypeTinyInt
	TypeInt
	TypeBigInt
	TypeDouble
	TypeDecimal
	TypeVarchar
	TypeTimestamp
)

func (t *Type) Capture(tokens []string) error {
	text := strings.ToUpper(strings.Join(tokens, " "))
	switch text {
	case "TINYINT":
		*t = TypeTinyInt
	case "INT":
		*t = TypeInt
	case "BIGINT":
		*t = TypeBigInt
	case "DOUBLE":
		*t = TypeDouble
	case "DECIMAL":
		*t = TypeDecimal
	case "VARCHAR":
		*t = TypeVarchar
	case "TIMESTAMP":
		*t = TypeTimestamp
	default:
		return errors.Errorf("unknown column type %s", text)
	}
	return nil
}

func (t Type) String() string {
	switch t {
	case TypeTinyInt:
		return "tinyint"
	case TypeInt:
		return "int"
	case TypeBigInt:
		return "bigint"
	case TypeDouble:
		return "double"
	case TypeDecimal:
		return "decimal"
	case TypeVarchar:
		return "varchar"
	case TypeTimestamp:
		return "timestamp"
	default:
		return "unknown"
	}
}

type ColumnType struct {
	Type         Type
	DecPrecision int
	DecScale     int
	// MaxLength bounds varchar columns. Zero means unbounded.
	MaxLength int
}

var (
	TinyIntColumnType   = ColumnType{Type: TypeTinyInt}
	IntColumnType       = ColumnType{Type: TypeInt}
	BigIntColumnType    = ColumnType{Type: TypeBigInt}
	DoubleColumnType    = ColumnType{Type: TypeDouble}
	VarcharColumnType   = ColumnType{Type: TypeVarchar}
	TimestampColumnType = ColumnType{Type: TypeTimestamp}
	UnknownColumnType   = ColumnType{Type: TypeUnknown}

	// ColumnTypesByType allows lookup of non-parameterised ColumnType by Type.
	ColumnTypesByType = map[Type]ColumnType{
		TypeTinyInt:   TinyIntColumnType,
		TypeInt:       IntColumnType,
		TypeBigInt:    BigIntColumnType,
		TypeDouble:    DoubleColumnType,
		TypeVarchar:   VarcharColumnType,
		TypeTimestamp: TimestampColumnType,
	}
)

// InferColumnType from Go type.
func InferColumnType(value interface{}) ColumnType {
	switch value.(type) {
	case string:
		return VarcharColumnType
	case int, int64:
		return BigIntColumnType
	case int16, int32:
		return IntColumnType
	case int8:
		return TinyIntColumnType
	case float64:
		return DoubleColumnType
	default:
		panic(fmt.Sprintf("can't infer column of type %T", value))
	}
}

func NewDecimalColumnType(precision int, scale int) ColumnType {
	return ColumnType{
		Type:         TypeDecimal,
		DecPrecision: precision,
		DecScale:     scale,
	}
}

func NewVarcharColumnType(maxLength int) ColumnType {
	return ColumnType{
		Type:      TypeVarchar,
		MaxLength: maxLength,
	}
}

func (t ColumnType) String() string {
	switch t.Type {
	case TypeDecimal:
		return fmt.Sprintf("decimal(%d,%d)", t.DecPrecision, t.DecScale)
	case TypeVarchar:
		if t.MaxLength != 0 {
			return fmt.Sprintf("varchar(%d)", t.MaxLength)
		}
		return "varchar"
	default:
		return t.Type.String()
	}
}
