package exec

import (
	log "github.com/sirupsen/logrus"

	"github.com/pkg/errors"

	"github.com/danielcompton/peloton/common"
	"github.com/danielcompton/peloton/expression"
)

// NestedLoopJoinExecutor joins two child operators by evaluating a predicate
// over the cross product of one batch from each side. The right child is
// re-pulled on every advance and restarted when it exhausts; the left batch
// is cached and paired against successive right batches, advancing only once
// per full pass over the right side. A nil predicate produces the
// unconditional cross product.
type NestedLoopJoinExecutor struct {
	executorBase
	predicate  expression.Predicate
	leftTile   *LogicalTile
	leftCached bool
	exhausted  bool
	observer   func(*LogicalTile)
}

var _ Executor = &NestedLoopJoinExecutor{}

func NewNestedLoopJoin(left, right Executor, predicate expression.Predicate) *NestedLoopJoinExecutor {
	j := &NestedLoopJoinExecutor{predicate: predicate}
	ConnectExecutors([]Executor{left, right}, j)
	return j
}

// SetTileObserver installs a hook invoked with every published output tile.
// Purely observational; the tile still belongs to the downstream consumer.
func (j *NestedLoopJoinExecutor) SetTileObserver(observer func(*LogicalTile)) {
	j.observer = observer
}

func (j *NestedLoopJoinExecutor) Init() error {
	if len(j.children) != 2 {
		panic("nested loop join requires exactly two children")
	}
	if err := j.children[0].Init(); err != nil {
		return errors.WithStack(err)
	}
	if err := j.children[1].Init(); err != nil {
		return errors.WithStack(err)
	}
	j.leftTile = nil
	j.leftCached = false
	j.exhausted = false
	j.output = nil
	return nil
}

// Advance attempts to produce one output batch. A batch pair whose cross
// product matches nothing is not exhaustion; the loop pulls the next pair and
// tries again. Only the children running out of batches finishes the join, so
// termination holds even under a predicate that never matches. The retry is
// an explicit loop: an unbounded run of empty pairs cannot grow the stack.
// Once false has been returned the join stays exhausted until Init; the right
// child may have been restarted mid-pass, so resuming from the cached left
// tile would pair it against right batches it already consumed.
func (j *NestedLoopJoinExecutor) Advance() (bool, error) {
	if len(j.children) != 2 {
		panic("nested loop join requires exactly two children")
	}
	if j.exhausted {
		return false, nil
	}
	left, right := j.children[0], j.children[1]
	for {
		rightRestarted := false
		rightOk, err := right.Advance()
		if err != nil {
			return false, errors.WithStack(err)
		}
		if !rightOk {
			log.Trace("nested loop join: right child exhausted, restarting its scan")
			if err := right.Init(); err != nil {
				return false, errors.WithStack(err)
			}
			rightRestarted = true
			rightOk, err = right.Advance()
			if err != nil {
				return false, errors.WithStack(err)
			}
			if !rightOk {
				// Right child has no batches at all.
				j.exhausted = true
				return false, nil
			}
		}
		rightTile := right.TakeOutput()

		if !j.leftCached || rightRestarted {
			leftOk, err := left.Advance()
			if err != nil {
				return false, errors.WithStack(err)
			}
			if !leftOk {
				log.Trace("nested loop join: left child exhausted")
				j.exhausted = true
				return false, nil
			}
			j.leftTile = left.TakeOutput()
			j.leftCached = true
		}

		outTile, err := j.joinPair(j.leftTile, rightTile)
		if err != nil {
			return false, err
		}
		if outTile != nil {
			j.setOutput(outTile)
			if j.observer != nil {
				j.observer(outTile)
			}
			return true, nil
		}
		// This pair matched nothing. Try the next one.
	}
}

// joinPair evaluates the predicate over every (left row, right row) pair in
// left-major order and concatenates the matching positions. Returns nil when
// no pair matched.
func (j *NestedLoopJoinExecutor) joinPair(leftTile, rightTile *LogicalTile) (*LogicalTile, error) {
	leftColCount := leftTile.ColumnCount()
	rightColCount := rightTile.ColumnCount()
	outColCount := leftColCount + rightColCount

	leftLists := leftTile.PositionLists()
	rightLists := rightTile.PositionLists()
	outLists := make([][]Position, outColCount)

	leftRowCount := leftTile.RowCount()
	rightRowCount := rightTile.RowCount()
	log.Tracef("nested loop join: pairing %d left rows against %d right rows", leftRowCount, rightRowCount)

	matched := 0
	for leftRow := 0; leftRow < leftRowCount; leftRow++ {
		for rightRow := 0; rightRow < rightRowCount; rightRow++ {
			if j.predicate != nil {
				result, err := j.predicate.Eval(leftTile.Row(leftRow), rightTile.Row(rightRow))
				if err != nil {
					return nil, errors.WithStack(err)
				}
				if result != common.TristateTrue {
					continue
				}
			}
			for col := 0; col < leftColCount; col++ {
				outLists[col] = append(outLists[col], leftLists[col][leftRow])
			}
			for col := 0; col < rightColCount; col++ {
				outLists[leftColCount+col] = append(outLists[leftColCount+col], rightLists[col][rightRow])
			}
			matched++
		}
	}
	if matched == 0 || outColCount == 0 {
		return nil, nil
	}

	outSchema := make([]TileColumn, 0, outColCount)
	outSchema = append(outSchema, leftTile.Schema()...)
	outSchema = append(outSchema, rightTile.Schema()...)

	outTile := NewLogicalTile()
	outTile.SetSchema(outSchema)
	outTile.SetPositionLists(outLists)
	return outTile, nil
}
