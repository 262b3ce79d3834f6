package exec

import (
	"github.com/pkg/errors"

	"github.com/danielcompton/peloton/common"
	"github.com/danielcompton/peloton/expression"
)

// TileRow presents one row of a logical tile, located by index, as input to
// predicate evaluation. It is transient and non-owning: alive for one
// evaluation, with no storage of its own. Values read through it are
// identical to those read directly from the underlying storage.
type TileRow struct {
	tile     *LogicalTile
	rowIndex int
}

var _ expression.Row = &TileRow{}

func (r *TileRow) GetValue(colIndex int) (common.Value, error) {
	if colIndex < 0 || colIndex >= r.tile.ColumnCount() {
		return common.Value{}, errors.Errorf("column index %d out of range, tile has %d columns", colIndex, r.tile.ColumnCount())
	}
	return r.tile.Value(colIndex, r.rowIndex), nil
}

func (r *TileRow) ColumnCount() int {
	return r.tile.ColumnCount()
}
