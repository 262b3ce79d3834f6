package common

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
)

// Value is a typed nullable scalar, the unit of exchange between row storage,
// expressions and operators. A varchar Value decoded from out-of-line storage
// also carries the arena handle of its payload, so writing it into another
// row can share the payload instead of copying it.
type Value struct {
	valueType Type
	null      bool
	i64       int64
	f64       float64
	str       string
	dec       Decimal
	ts        Timestamp
	handle    uint32
	hasHandle bool
}

func NewNullValue(valueType Type) Value {
	return Value{valueType: valueType, null: true}
}

func NewTinyIntValue(v int8) Value {
	return Value{valueType: TypeTinyInt, i64: int64(v)}
}

func NewIntValue(v int32) Value {
	return Value{valueType: TypeInt, i64: int64(v)}
}

func NewBigIntValue(v int64) Value {
	return Value{valueType: TypeBigInt, i64: v}
}

func NewDoubleValue(v float64) Value {
	return Value{valueType: TypeDouble, f64: v}
}

func NewVarcharValue(v string) Value {
	return Value{valueType: TypeVarchar, str: v}
}

// NewVarcharValueWithHandle tags a varchar value with the arena handle its
// payload already lives at. Used by row storage when decoding out-of-line
// columns; not for general use.
func NewVarcharValueWithHandle(v string, handle uint32) Value {
	return Value{valueType: TypeVarchar, str: v, handle: handle, hasHandle: true}
}

func NewDecimalValue(v Decimal) Value {
	return Value{valueType: TypeDecimal, dec: v}
}

func NewTimestampValue(v Timestamp) Value {
	return Value{valueType: TypeTimestamp, ts: v}
}

func (v Value) Type() Type {
	return v.valueType
}

func (v Value) IsNull() bool {
	return v.null
}

// Handle returns the arena handle of an out-of-line varchar payload, if the
// value carries one.
func (v Value) Handle() (uint32, bool) {
	return v.handle, v.hasHandle
}

func (v Value) TinyInt() int8 {
	v.checkType(TypeTinyInt)
	return int8(v.i64)
}

func (v Value) Int() int32 {
	v.checkType(TypeInt)
	return int32(v.i64)
}

func (v Value) BigInt() int64 {
	v.checkType(TypeBigInt)
	return v.i64
}

func (v Value) Double() float64 {
	v.checkType(TypeDouble)
	return v.f64
}

func (v Value) Varchar() string {
	v.checkType(TypeVarchar)
	return v.str
}

func (v Value) Decimal() Decimal {
	v.checkType(TypeDecimal)
	return v.dec
}

func (v Value) Timestamp() Timestamp {
	v.checkType(TypeTimestamp)
	return v.ts
}

func (v Value) checkType(expected Type) {
	if v.valueType != expected {
		panic(fmt.Sprintf("value is of type %s not %s", v.valueType, expected))
	}
}

// Compare orders two values of the same type. Nulls compare equal to each
// other and before any non-null value.
func (v Value) Compare(other Value) (int, error) {
	if v.valueType != other.valueType {
		return 0, errors.Errorf("cannot compare %s with %s", v.valueType, other.valueType)
	}
	if v.null || other.null {
		switch {
		case v.null && other.null:
			return 0, nil
		case v.null:
			return -1, nil
		default:
			return 1, nil
		}
	}
	switch v.valueType {
	case TypeTinyInt, TypeInt, TypeBigInt:
		return compareInt64(v.i64, other.i64), nil
	case TypeDouble:
		switch {
		case v.f64 < other.f64:
			return -1, nil
		case v.f64 > other.f64:
			return 1, nil
		default:
			return 0, nil
		}
	case TypeDecimal:
		return v.dec.CompareTo(other.dec), nil
	case TypeVarchar:
		switch {
		case v.str < other.str:
			return -1, nil
		case v.str > other.str:
			return 1, nil
		default:
			return 0, nil
		}
	case TypeTimestamp:
		return v.ts.CompareTo(other.ts), nil
	default:
		return 0, errors.Errorf("cannot compare values of type %s", v.valueType)
	}
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// CastAs converts the value to the target column type. Narrowing integer
// casts are range checked. A null value casts to a null of the target type.
func (v Value) CastAs(target ColumnType) (Value, error) {
	if v.null {
		return NewNullValue(target.Type), nil
	}
	if v.valueType == target.Type {
		return v, nil
	}
	switch target.Type {
	case TypeTinyInt:
		i, err := v.toInt64()
		if err != nil {
			return Value{}, err
		}
		if i < math.MinInt8 || i > math.MaxInt8 {
			return Value{}, errors.Errorf("value %d out of range for tinyint", i)
		}
		return NewTinyIntValue(int8(i)), nil
	case TypeInt:
		i, err := v.toInt64()
		if err != nil {
			return Value{}, err
		}
		if i < math.MinInt32 || i > math.MaxInt32 {
			return Value{}, errors.Errorf("value %d out of range for int", i)
		}
		return NewIntValue(int32(i)), nil
	case TypeBigInt:
		i, err := v.toInt64()
		if err != nil {
			return Value{}, err
		}
		return NewBigIntValue(i), nil
	case TypeDouble:
		switch v.valueType {
		case TypeTinyInt, TypeInt, TypeBigInt:
			return NewDoubleValue(float64(v.i64)), nil
		case TypeDecimal:
			return NewDoubleValue(v.dec.Float64()), nil
		}
	case TypeDecimal:
		switch v.valueType {
		case TypeTinyInt, TypeInt, TypeBigInt:
			return NewDecimalValue(NewDecFromInt64(v.i64)), nil
		case TypeDouble:
			return NewDecimalValue(NewDecFromFloat64(v.f64)), nil
		}
	}
	return Value{}, errors.Errorf("cannot cast %s to %s", v.valueType, target.Type)
}

func (v Value) toInt64() (int64, error) {
	switch v.valueType {
	case TypeTinyInt, TypeInt, TypeBigInt:
		return v.i64, nil
	default:
		return 0, errors.Errorf("cannot cast %s to an integer type", v.valueType)
	}
}

func (v Value) String() string {
	if v.null {
		return "null"
	}
	switch v.valueType {
	case TypeTinyInt, TypeInt, TypeBigInt:
		return fmt.Sprintf("%d", v.i64)
	case TypeDouble:
		return fmt.Sprintf("%g", v.f64)
	case TypeDecimal:
		return v.dec.String()
	case TypeVarchar:
		return v.str
	case TypeTimestamp:
		return v.ts.String()
	default:
		return "unknown"
	}
}
