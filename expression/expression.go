package expression

import (
	"github.com/pkg/errors"

	"github.com/danielcompton/peloton/common"
)

// Row is one logical row presented for evaluation. Implementations are
// transient adapters over a batch; they hold no storage of their own.
type Row interface {
	GetValue(colIndex int) (common.Value, error)
	ColumnCount() int
}

// Side selects which row of a join pair a column reference addresses.
type Side int

const (
	LeftSide Side = iota
	RightSide
)

// Expression produces a value from a pair of rows. Operators that evaluate
// over a single input pass nil for the right row.
type Expression interface {
	Eval(left, right Row) (common.Value, error)
}

type ColumnExpression struct {
	side     Side
	colIndex int
}

func NewColumnExpression(side Side, colIndex int) *ColumnExpression {
	return &ColumnExpression{side: side, colIndex: colIndex}
}

func (c *ColumnExpression) Eval(left, right Row) (common.Value, error) {
	row := left
	if c.side == RightSide {
		row = right
	}
	if row == nil {
		return common.Value{}, errors.Errorf("column expression references side %d but no row was supplied", c.side)
	}
	return row.GetValue(c.colIndex)
}

type ConstantExpression struct {
	value common.Value
}

func NewConstant(value common.Value) *ConstantExpression {
	return &ConstantExpression{value: value}
}

func (c *ConstantExpression) Eval(left, right Row) (common.Value, error) {
	return c.value, nil
}
