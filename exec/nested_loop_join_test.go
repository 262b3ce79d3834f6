package exec

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/danielcompton/peloton/common"
	"github.com/danielcompton/peloton/expression"
)

var bigIntCol = []common.ColumnType{common.BigIntColumnType}

func leftLessThanRight() expression.Predicate {
	return expression.NewComparison(expression.OpLT,
		expression.NewColumnExpression(expression.LeftSide, 0),
		expression.NewColumnExpression(expression.RightSide, 0),
	)
}

func TestJoinLessThan(t *testing.T) {
	left := NewStaticTiles(buildTile(t, bigIntCol, [][]interface{}{{10}, {20}}))
	right := NewStaticTiles(buildTile(t, bigIntCol, [][]interface{}{{5}, {15}, {25}}))
	join := NewNestedLoopJoin(left, right, leftLessThanRight())
	require.NoError(t, join.Init())

	rows, _ := drainJoin(t, join, []common.ColumnType{common.BigIntColumnType, common.BigIntColumnType})
	require.Equal(t, [][]interface{}{
		{10, 15},
		{10, 25},
		{20, 25},
	}, rows)
}

func TestJoinCrossProductNoPredicate(t *testing.T) {
	// Column types inferred from the fixture values.
	left := NewStaticTiles(buildTile(t, nil, [][]interface{}{
		{1, "a"},
		{2, "b"},
	}))
	right := NewStaticTiles(buildTile(t, bigIntCol, [][]interface{}{{100}, {200}, {300}}))
	join := NewNestedLoopJoin(left, right, nil)
	require.NoError(t, join.Init())

	outTypes := []common.ColumnType{common.BigIntColumnType, common.VarcharColumnType, common.BigIntColumnType}
	rows, _ := drainJoin(t, join, outTypes)
	// Left-major, right-minor order, every pair exactly once, left columns
	// before right columns.
	require.Equal(t, [][]interface{}{
		{1, "a", 100},
		{1, "a", 200},
		{1, "a", 300},
		{2, "b", 100},
		{2, "b", 200},
		{2, "b", 300},
	}, rows)
}

func TestJoinNoPredicateSameAsAlwaysTrue(t *testing.T) {
	leftRows := [][]interface{}{{1}, {2}, {3}}
	rightRows := [][]interface{}{{10}, {20}}
	outTypes := []common.ColumnType{common.BigIntColumnType, common.BigIntColumnType}

	crossJoin := NewNestedLoopJoin(
		NewStaticTiles(buildTile(t, bigIntCol, leftRows)),
		NewStaticTiles(buildTile(t, bigIntCol, rightRows)),
		nil,
	)
	require.NoError(t, crossJoin.Init())
	crossOut, _ := drainJoin(t, crossJoin, outTypes)

	trueJoin := NewNestedLoopJoin(
		NewStaticTiles(buildTile(t, bigIntCol, leftRows)),
		NewStaticTiles(buildTile(t, bigIntCol, rightRows)),
		expression.NewConstBool(common.TristateTrue),
	)
	require.NoError(t, trueJoin.Init())
	trueOut, _ := drainJoin(t, trueJoin, outTypes)

	require.Equal(t, 6, len(crossOut))
	require.Equal(t, crossOut, trueOut)
}

func TestJoinMultipleBatchesPerSide(t *testing.T) {
	// Two batches per side. The left input must advance exactly once per full
	// pass over the right batches, so output comes in left-major batch order.
	left := NewStaticTiles(
		buildTile(t, bigIntCol, [][]interface{}{{1}}),
		buildTile(t, bigIntCol, [][]interface{}{{2}}),
	)
	right := NewStaticTiles(
		buildTile(t, bigIntCol, [][]interface{}{{10}}),
		buildTile(t, bigIntCol, [][]interface{}{{20}}),
	)
	join := NewNestedLoopJoin(left, right, nil)
	require.NoError(t, join.Init())

	rows, advances := drainJoin(t, join, []common.ColumnType{common.BigIntColumnType, common.BigIntColumnType})
	require.Equal(t, [][]interface{}{
		{1, 10},
		{1, 20},
		{2, 10},
		{2, 20},
	}, rows)
	// One output batch per batch pair.
	require.Equal(t, 4, advances)
}

func TestJoinAlwaysFalseTerminates(t *testing.T) {
	left := NewStaticTiles(
		buildTile(t, bigIntCol, [][]interface{}{{1}, {2}}),
		buildTile(t, bigIntCol, [][]interface{}{{3}}),
	)
	right := NewStaticTiles(
		buildTile(t, bigIntCol, [][]interface{}{{10}}),
		buildTile(t, bigIntCol, [][]interface{}{{20}, {30}}),
	)
	join := NewNestedLoopJoin(left, right, expression.NewConstBool(common.TristateFalse))
	require.NoError(t, join.Init())

	rows, advances := drainJoin(t, join, nil)
	require.Empty(t, rows)
	require.Equal(t, 0, advances)
}

func TestJoinUnknownIsNonMatch(t *testing.T) {
	// Null join keys evaluate to Unknown, which must filter the pair out
	// exactly like false.
	left := NewStaticTiles(buildTile(t, bigIntCol, [][]interface{}{{1}, {nil}}))
	right := NewStaticTiles(buildTile(t, bigIntCol, [][]interface{}{{1}, {nil}}))
	join := NewNestedLoopJoin(left, right, expression.NewComparison(expression.OpEQ,
		expression.NewColumnExpression(expression.LeftSide, 0),
		expression.NewColumnExpression(expression.RightSide, 0),
	))
	require.NoError(t, join.Init())

	rows, _ := drainJoin(t, join, []common.ColumnType{common.BigIntColumnType, common.BigIntColumnType})
	require.Equal(t, [][]interface{}{{1, 1}}, rows)
}

func TestJoinEmptyLeftChild(t *testing.T) {
	left := NewStaticTiles()
	right := NewStaticTiles(buildTile(t, bigIntCol, [][]interface{}{{1}}))
	join := NewNestedLoopJoin(left, right, nil)
	require.NoError(t, join.Init())

	ok, err := join.Advance()
	require.NoError(t, err)
	require.False(t, ok)
}

func TestJoinEmptyRightChild(t *testing.T) {
	left := NewStaticTiles(buildTile(t, bigIntCol, [][]interface{}{{1}}))
	right := NewStaticTiles()
	join := NewNestedLoopJoin(left, right, nil)
	require.NoError(t, join.Init())

	ok, err := join.Advance()
	require.NoError(t, err)
	require.False(t, ok)
}

func TestJoinEmptyBatchPairRetriesInternally(t *testing.T) {
	// The first (left, right) pair produces no rows; the join must move on to
	// the next right batch rather than reporting exhaustion.
	left := NewStaticTiles(buildTile(t, bigIntCol, [][]interface{}{{1}}))
	right := NewStaticTiles(
		buildTile(t, bigIntCol, nil),
		buildTile(t, bigIntCol, [][]interface{}{{10}, {20}}),
	)
	join := NewNestedLoopJoin(left, right, nil)
	require.NoError(t, join.Init())

	rows, _ := drainJoin(t, join, []common.ColumnType{common.BigIntColumnType, common.BigIntColumnType})
	require.Equal(t, [][]interface{}{
		{1, 10},
		{1, 20},
	}, rows)
}

func TestJoinRestartAfterExhaustion(t *testing.T) {
	join := NewNestedLoopJoin(
		NewStaticTiles(buildTile(t, bigIntCol, [][]interface{}{{10}, {20}})),
		NewStaticTiles(buildTile(t, bigIntCol, [][]interface{}{{5}, {15}, {25}})),
		leftLessThanRight(),
	)
	outTypes := []common.ColumnType{common.BigIntColumnType, common.BigIntColumnType}

	require.NoError(t, join.Init())
	first, _ := drainJoin(t, join, outTypes)

	require.NoError(t, join.Init())
	second, _ := drainJoin(t, join, outTypes)
	require.Equal(t, first, second)
}

func TestJoinOutputReferencesStorageWithoutCopying(t *testing.T) {
	leftTile := buildTile(t, bigIntCol, [][]interface{}{{1}})
	join := NewNestedLoopJoin(
		NewStaticTiles(leftTile),
		NewStaticTiles(buildTile(t, bigIntCol, [][]interface{}{{10}})),
		nil,
	)
	require.NoError(t, join.Init())

	ok, err := join.Advance()
	require.NoError(t, err)
	require.True(t, ok)
	out := join.TakeOutput()
	require.Equal(t, int64(1), out.Value(0, 0).BigInt())

	// Mutating the physical row after the fact is visible through the output
	// batch's indirection.
	require.NoError(t, leftTile.SetValueAt(0, 0, common.NewBigIntValue(42)))
	require.Equal(t, int64(42), out.Value(0, 0).BigInt())
}

func TestJoinObserverSeesPublishedTiles(t *testing.T) {
	join := NewNestedLoopJoin(
		NewStaticTiles(buildTile(t, bigIntCol, [][]interface{}{{1}, {2}})),
		NewStaticTiles(buildTile(t, bigIntCol, [][]interface{}{{10}})),
		nil,
	)
	observed := 0
	join.SetTileObserver(func(tile *LogicalTile) {
		observed += tile.RowCount()
	})
	require.NoError(t, join.Init())

	rows, _ := drainJoin(t, join, []common.ColumnType{common.BigIntColumnType, common.BigIntColumnType})
	require.Equal(t, 2, len(rows))
	require.Equal(t, 2, observed)
}

func TestJoinStaysExhaustedUntilInit(t *testing.T) {
	// The left child drains mid-pass, leaving the right child restarted with
	// a batch still pending. Advancing again without Init must keep reporting
	// exhaustion, not re-pair the cached left batch against that remainder.
	join := NewNestedLoopJoin(
		NewStaticTiles(buildTile(t, bigIntCol, [][]interface{}{{1}})),
		NewStaticTiles(
			buildTile(t, bigIntCol, [][]interface{}{{10}}),
			buildTile(t, bigIntCol, [][]interface{}{{20}}),
		),
		nil,
	)
	outTypes := []common.ColumnType{common.BigIntColumnType, common.BigIntColumnType}
	require.NoError(t, join.Init())
	rows, _ := drainJoin(t, join, outTypes)
	require.Equal(t, [][]interface{}{{1, 10}, {1, 20}}, rows)

	ok, err := join.Advance()
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, join.Init())
	again, _ := drainJoin(t, join, outTypes)
	require.Equal(t, rows, again)
}

func TestJoinRequiresTwoChildren(t *testing.T) {
	join := &NestedLoopJoinExecutor{}
	join.AddChild(NewStaticTiles())
	require.Panics(t, func() {
		_ = join.Init()
	})
}
