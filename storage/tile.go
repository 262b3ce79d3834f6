package storage

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/danielcompton/peloton/catalog"
	"github.com/danielcompton/peloton/common"
)

// Tile is a physical row store: a contiguous backing array of fixed-layout
// rows plus the arena holding their out-of-line payloads. Logical batches
// never copy row data out of a tile; they reference slots by position and
// decode lazily through ValueAt.
type Tile struct {
	schema   *catalog.Schema
	data     []byte
	pool     *Pool
	numSlots int
	rowCount int
}

func NewTile(schema *catalog.Schema, numSlots int) *Tile {
	return &Tile{
		schema:   schema,
		data:     make([]byte, numSlots*schema.Length()),
		pool:     NewPool(),
		numSlots: numSlots,
	}
}

func (t *Tile) Schema() *catalog.Schema {
	return t.schema
}

func (t *Tile) Pool() *Pool {
	return t.pool
}

func (t *Tile) SlotCount() int {
	return t.numSlots
}

func (t *Tile) RowCount() int {
	return t.rowCount
}

func (t *Tile) slotBuffer(slot int) []byte {
	if slot < 0 || slot >= t.numSlots {
		panic(fmt.Sprintf("slot %d out of range, tile has %d slots", slot, t.numSlots))
	}
	rowLen := t.schema.Length()
	return t.data[slot*rowLen : (slot+1)*rowLen]
}

// TupleAt returns a borrowed view over the slot's bytes. The view shares the
// tile's backing array and pool; mutations through it are visible to every
// other reader of the slot.
func (t *Tile) TupleAt(slot int) *Tuple {
	tup := NewTupleWithBuffer(t.schema, t.slotBuffer(slot))
	tup.SetPool(t.pool)
	return tup
}

// InsertRow encodes values into the next free slot, allocating out-of-line
// payloads from the tile's pool, and returns the slot index.
func (t *Tile) InsertRow(values ...common.Value) (int, error) {
	if t.rowCount >= t.numSlots {
		return 0, errors.Errorf("tile is full, %d slots", t.numSlots)
	}
	if len(values) != t.schema.ColumnCount() {
		return 0, errors.Errorf("row has %d values, schema has %d columns", len(values), t.schema.ColumnCount())
	}
	slot := t.rowCount
	tup := t.TupleAt(slot)
	for i, v := range values {
		if err := tup.SetValueAllocate(i, v, t.pool); err != nil {
			return 0, errors.WithStack(err)
		}
	}
	t.rowCount++
	return slot, nil
}

// ValueAt decodes one column of one slot. Same decoding as Tuple.GetValue,
// reached through a transient view.
func (t *Tile) ValueAt(slot int, colIndex int) common.Value {
	return t.TupleAt(slot).GetValue(colIndex)
}

// SetValueAt overwrites one column of an existing row in place. The previous
// out-of-line payload, if any, is freed; the tile owns its rows' payloads and
// nothing else holds that handle once the slot no longer stores it.
func (t *Tile) SetValueAt(slot int, colIndex int, value common.Value) error {
	col := t.schema.Column(colIndex)
	if !col.Inlined {
		buffer := t.slotBuffer(slot)
		handle := common.ReadUint32FromBufferLE(buffer, col.Offset)
		length := common.ReadUint32FromBufferLE(buffer, col.Offset+4)
		if handle != InvalidHandle && length != nullVarcharLength {
			t.pool.Free(handle)
			common.PutUint32ToBufferLE(buffer, col.Offset, InvalidHandle)
			common.PutUint32ToBufferLE(buffer, col.Offset+4, nullVarcharLength)
		}
	}
	return t.TupleAt(slot).SetValueAllocate(colIndex, value, t.pool)
}

// Release frees every out-of-line payload and drops the backing array. Rows
// referencing this tile must not be resolved afterwards.
func (t *Tile) Release() {
	for slot := 0; slot < t.rowCount; slot++ {
		t.TupleAt(slot).FreeUninlinedData()
	}
	t.pool.FreeAll()
	t.data = nil
	t.rowCount = 0
}
