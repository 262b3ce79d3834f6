package storage

import (
	"fmt"
	"math"
	"strings"

	"github.com/pkg/errors"
	"github.com/twmb/murmur3"

	"github.com/danielcompton/peloton/catalog"
	"github.com/danielcompton/peloton/common"
)

// Per-type null markers in the fixed layout. The minimum value of each
// integer width is reserved, as is the most negative double. A null varchar
// is marked in its length slot.
const (
	nullTinyInt       = int8(math.MinInt8)
	nullInt           = int32(math.MinInt32)
	nullBigInt        = int64(math.MinInt64)
	nullVarcharLength = uint32(math.MaxUint32)
)

var nullDouble = -math.MaxFloat64

// Tuple is a fixed-layout view over a contiguous byte buffer, addressed
// through a schema. The buffer is either owned (freshly allocated for this
// tuple) or borrowed (a window into a tile's backing array). Releasing a
// tuple drops only an owned buffer; out-of-line payloads are freed separately
// through FreeUninlinedData by whatever owns the tuple.
type Tuple struct {
	schema *catalog.Schema
	data   []byte
	owned  bool
	pool   *Pool
}

// NewTuple creates a tuple with no buffer. It is not usable until Move binds
// it to one.
func NewTuple(schema *catalog.Schema) *Tuple {
	if schema == nil {
		panic("tuple requires a schema")
	}
	return &Tuple{schema: schema}
}

// NewTupleWithBuffer creates a view over caller-owned memory. No ownership is
// transferred.
func NewTupleWithBuffer(schema *catalog.Schema, buffer []byte) *Tuple {
	t := NewTuple(schema)
	if len(buffer) != schema.Length() {
		panic(fmt.Sprintf("buffer length %d does not match schema length %d", len(buffer), schema.Length()))
	}
	t.data = buffer
	return t
}

// NewAllocatedTuple creates a tuple backed by freshly allocated memory of the
// schema's length.
func NewAllocatedTuple(schema *catalog.Schema) *Tuple {
	t := NewTuple(schema)
	t.data = make([]byte, schema.Length())
	t.owned = true
	return t
}

// SetPool attaches the arena that out-of-line columns of this tuple resolve
// against.
func (t *Tuple) SetPool(pool *Pool) {
	t.pool = pool
}

func (t *Tuple) Schema() *catalog.Schema {
	return t.schema
}

func (t *Tuple) Length() int {
	return t.schema.Length()
}

func (t *Tuple) ColumnCount() int {
	return t.schema.ColumnCount()
}

// Location exposes the backing buffer, e.g. for hashing or copying whole
// rows.
func (t *Tuple) Location() []byte {
	return t.data
}

// Move re-binds the view to a different buffer. No data is copied and
// ownership does not change hands; the previous buffer is simply no longer
// referenced.
func (t *Tuple) Move(buffer []byte) {
	if len(buffer) != t.schema.Length() {
		panic(fmt.Sprintf("buffer length %d does not match schema length %d", len(buffer), t.schema.Length()))
	}
	t.data = buffer
	t.owned = false
}

// IsNull reports whether the tuple has no buffer at all. This is distinct
// from any individual column being null.
func (t *Tuple) IsNull() bool {
	return t.data == nil
}

func (t *Tuple) SetNull() {
	t.data = nil
	t.owned = false
}

// Release drops an owned buffer. Borrowed buffers and out-of-line payloads
// are untouched; the enclosing owner must call FreeUninlinedData first if the
// payloads are to be reclaimed.
func (t *Tuple) Release() {
	if t.owned {
		t.data = nil
		t.owned = false
	}
}

func (t *Tuple) checkReadable() {
	if t.schema == nil {
		panic("tuple schema is not set")
	}
	if t.data == nil {
		panic("tuple buffer is not set")
	}
}

// GetValue decodes the column at colIndex using the schema's type, offset and
// inlined-ness.
func (t *Tuple) GetValue(colIndex int) common.Value {
	t.checkReadable()
	col := t.schema.Column(colIndex)
	offset := col.Offset
	switch col.Type.Type {
	case common.TypeTinyInt:
		v := int8(t.data[offset])
		if v == nullTinyInt {
			return common.NewNullValue(common.TypeTinyInt)
		}
		return common.NewTinyIntValue(v)
	case common.TypeInt:
		v := int32(common.ReadUint32FromBufferLE(t.data, offset))
		if v == nullInt {
			return common.NewNullValue(common.TypeInt)
		}
		return common.NewIntValue(v)
	case common.TypeBigInt:
		v := common.ReadInt64FromBufferLE(t.data, offset)
		if v == nullBigInt {
			return common.NewNullValue(common.TypeBigInt)
		}
		return common.NewBigIntValue(v)
	case common.TypeDouble:
		v := common.ReadFloat64FromBufferLE(t.data, offset)
		if v == nullDouble {
			return common.NewNullValue(common.TypeDouble)
		}
		return common.NewDoubleValue(v)
	case common.TypeDecimal:
		unscaled := common.ReadInt64FromBufferLE(t.data, offset)
		if unscaled == nullBigInt {
			return common.NewNullValue(common.TypeDecimal)
		}
		return common.NewDecimalValue(common.NewDecFromScaledInt64(unscaled, col.Type.DecScale))
	case common.TypeTimestamp:
		nanos := common.ReadInt64FromBufferLE(t.data, offset)
		if nanos == nullBigInt {
			return common.NewNullValue(common.TypeTimestamp)
		}
		return common.NewTimestampValue(common.NewTimestampFromUnixNanos(nanos))
	case common.TypeVarchar:
		if col.Inlined {
			length := common.ReadUint32FromBufferLE(t.data, offset)
			if length == nullVarcharLength {
				return common.NewNullValue(common.TypeVarchar)
			}
			return common.NewVarcharValue(string(t.data[offset+4 : offset+4+int(length)]))
		}
		handle := common.ReadUint32FromBufferLE(t.data, offset)
		length := common.ReadUint32FromBufferLE(t.data, offset+4)
		if length == nullVarcharLength {
			return common.NewNullValue(common.TypeVarchar)
		}
		if t.pool == nil {
			panic("tuple has an out-of-line column but no pool")
		}
		payload := t.pool.Payload(handle)
		return common.NewVarcharValueWithHandle(string(payload[:length]), handle)
	default:
		panic(fmt.Sprintf("no decoding for column type %s", col.Type))
	}
}

// SetValue casts value to the column's declared type and encodes it in place.
// For out-of-line columns only the payload's existing arena handle is stored;
// a value that has no handle yet must go through SetValueAllocate.
func (t *Tuple) SetValue(colIndex int, value common.Value) error {
	t.checkReadable()
	col := t.schema.Column(colIndex)
	value, err := value.CastAs(col.Type)
	if err != nil {
		return errors.WithStack(err)
	}
	if !col.Inlined {
		if value.IsNull() {
			common.PutUint32ToBufferLE(t.data, col.Offset, InvalidHandle)
			common.PutUint32ToBufferLE(t.data, col.Offset+4, nullVarcharLength)
			return nil
		}
		handle, ok := value.Handle()
		if !ok {
			return errors.Errorf("value for out-of-line column %d has no arena handle, use SetValueAllocate", colIndex)
		}
		common.PutUint32ToBufferLE(t.data, col.Offset, handle)
		common.PutUint32ToBufferLE(t.data, col.Offset+4, uint32(len(value.Varchar())))
		return nil
	}
	return t.setInlined(col, value)
}

// SetValueAllocate deep-copies an out-of-line payload into pool and stores
// the new handle, for values headed to persistent storage. Inlined columns
// behave exactly as SetValue.
func (t *Tuple) SetValueAllocate(colIndex int, value common.Value, pool *Pool) error {
	t.checkReadable()
	col := t.schema.Column(colIndex)
	value, err := value.CastAs(col.Type)
	if err != nil {
		return errors.WithStack(err)
	}
	if col.Inlined {
		return t.setInlined(col, value)
	}
	if value.IsNull() {
		common.PutUint32ToBufferLE(t.data, col.Offset, InvalidHandle)
		common.PutUint32ToBufferLE(t.data, col.Offset+4, nullVarcharLength)
		return nil
	}
	if pool == nil {
		return errors.Errorf("out-of-line column %d requires a pool", colIndex)
	}
	payload := value.Varchar()
	if col.VariableLength > 0 && len(payload) > col.VariableLength {
		return errors.Errorf("varchar of length %d exceeds column bound %d", len(payload), col.VariableLength)
	}
	handle := pool.Allocate([]byte(payload))
	common.PutUint32ToBufferLE(t.data, col.Offset, handle)
	common.PutUint32ToBufferLE(t.data, col.Offset+4, uint32(len(payload)))
	if t.pool == nil {
		t.pool = pool
	}
	return nil
}

func (t *Tuple) setInlined(col catalog.ColumnInfo, value common.Value) error {
	offset := col.Offset
	switch col.Type.Type {
	case common.TypeTinyInt:
		if value.IsNull() {
			nv := nullTinyInt
			t.data[offset] = byte(nv)
			return nil
		}
		t.data[offset] = byte(value.TinyInt())
	case common.TypeInt:
		if value.IsNull() {
			nv := nullInt
			common.PutUint32ToBufferLE(t.data, offset, uint32(nv))
			return nil
		}
		common.PutUint32ToBufferLE(t.data, offset, uint32(value.Int()))
	case common.TypeBigInt:
		if value.IsNull() {
			common.PutInt64ToBufferLE(t.data, offset, nullBigInt)
			return nil
		}
		common.PutInt64ToBufferLE(t.data, offset, value.BigInt())
	case common.TypeDouble:
		if value.IsNull() {
			common.PutFloat64ToBufferLE(t.data, offset, nullDouble)
			return nil
		}
		common.PutFloat64ToBufferLE(t.data, offset, value.Double())
	case common.TypeDecimal:
		if value.IsNull() {
			common.PutInt64ToBufferLE(t.data, offset, nullBigInt)
			return nil
		}
		unscaled, err := value.Decimal().ScaledInt64(col.Type.DecScale)
		if err != nil {
			return errors.WithStack(err)
		}
		common.PutInt64ToBufferLE(t.data, offset, unscaled)
	case common.TypeTimestamp:
		if value.IsNull() {
			common.PutInt64ToBufferLE(t.data, offset, nullBigInt)
			return nil
		}
		common.PutInt64ToBufferLE(t.data, offset, value.Timestamp().UnixNanos())
	case common.TypeVarchar:
		if value.IsNull() {
			common.PutUint32ToBufferLE(t.data, offset, nullVarcharLength)
			return nil
		}
		payload := value.Varchar()
		if len(payload) > col.VariableLength {
			return errors.Errorf("varchar of length %d exceeds column bound %d", len(payload), col.VariableLength)
		}
		common.PutUint32ToBufferLE(t.data, offset, uint32(len(payload)))
		copy(t.data[offset+4:], payload)
	default:
		return errors.Errorf("no encoding for column type %s", col.Type)
	}
	return nil
}

// IsColumnNull reports per-column null, which is unrelated to the tuple-level
// null of an unset buffer.
func (t *Tuple) IsColumnNull(colIndex int) bool {
	return t.GetValue(colIndex).IsNull()
}

func (t *Tuple) SetAllNulls() {
	t.checkReadable()
	for i := 0; i < t.schema.ColumnCount(); i++ {
		if err := t.SetValue(i, common.NewNullValue(t.schema.Type(i).Type)); err != nil {
			panic(err)
		}
	}
}

// FreeUninlinedData releases every out-of-line payload this tuple references
// and nulls out the columns. The owning tile or table calls this before the
// row is discarded; releasing the tuple itself never does.
func (t *Tuple) FreeUninlinedData() {
	t.checkReadable()
	for i := 0; i < t.schema.ColumnCount(); i++ {
		col := t.schema.Column(i)
		if col.Inlined {
			continue
		}
		handle := common.ReadUint32FromBufferLE(t.data, col.Offset)
		length := common.ReadUint32FromBufferLE(t.data, col.Offset+4)
		if handle != InvalidHandle && length != nullVarcharLength && t.pool != nil {
			t.pool.Free(handle)
		}
		common.PutUint32ToBufferLE(t.data, col.Offset, InvalidHandle)
		common.PutUint32ToBufferLE(t.data, col.Offset+4, nullVarcharLength)
	}
}

// Compare returns the first nonzero per-column comparison, else zero. Schemas
// must have identical column types.
func (t *Tuple) Compare(other *Tuple) (int, error) {
	if t.ColumnCount() != other.ColumnCount() {
		return 0, errors.Errorf("cannot compare tuples with %d and %d columns", t.ColumnCount(), other.ColumnCount())
	}
	for i := 0; i < t.ColumnCount(); i++ {
		cmp, err := t.GetValue(i).Compare(other.GetValue(i))
		if err != nil {
			return 0, errors.WithStack(err)
		}
		if cmp != 0 {
			return cmp, nil
		}
	}
	return 0, nil
}

// Equals reports whether every column compares equal under the schema's
// types.
func (t *Tuple) Equals(other *Tuple) bool {
	cmp, err := t.Compare(other)
	if err != nil {
		return false
	}
	return cmp == 0
}

// Hash computes a seeded murmur3 hash over the fixed-layout bytes.
func (t *Tuple) Hash(seed uint64) uint64 {
	t.checkReadable()
	return murmur3.SeedSum64(seed, t.data)
}

func (t *Tuple) String() string {
	if t.IsNull() {
		return "<null tuple>"
	}
	parts := make([]string, t.ColumnCount())
	for i := range parts {
		parts[i] = t.GetValue(i).String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
