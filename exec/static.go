package exec

import (
	"github.com/danielcompton/peloton/storage"
)

// StaticTiles serves a fixed sequence of physical tiles, one logical tile per
// advance. It stands in for a scan in tests and demos. Init rewinds to the
// first tile, so a parent that restarts its child sees the same sequence
// again.
type StaticTiles struct {
	executorBase
	tiles  []*storage.Tile
	cursor int
}

var _ Executor = &StaticTiles{}

func NewStaticTiles(tiles ...*storage.Tile) *StaticTiles {
	return &StaticTiles{tiles: tiles}
}

func (s *StaticTiles) Init() error {
	s.cursor = 0
	s.output = nil
	return nil
}

func (s *StaticTiles) Advance() (bool, error) {
	if s.cursor >= len(s.tiles) {
		return false, nil
	}
	// A fresh logical tile per pull: each handed-off batch is owned by its
	// consumer, the physical tiles stay put.
	s.setOutput(WrapTile(s.tiles[s.cursor]))
	s.cursor++
	return true, nil
}
