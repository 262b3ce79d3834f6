package expression

import (
	"github.com/pkg/errors"

	"github.com/danielcompton/peloton/common"
)

// Predicate evaluates a three-valued boolean over a pair of rows. A join
// accepts a pair only when the result is exactly TristateTrue; Unknown, which
// arises from null operands, is treated as a non-match, never as an error.
type Predicate interface {
	Eval(left, right Row) (common.Tristate, error)
}

type CompareOp int

const (
	OpLT CompareOp = iota
	OpLE
	OpEQ
	OpNE
	OpGE
	OpGT
)

func (op CompareOp) String() string {
	switch op {
	case OpLT:
		return "<"
	case OpLE:
		return "<="
	case OpEQ:
		return "="
	case OpNE:
		return "<>"
	case OpGE:
		return ">="
	default:
		return ">"
	}
}

type Comparison struct {
	op  CompareOp
	lhs Expression
	rhs Expression
}

func NewComparison(op CompareOp, lhs, rhs Expression) *Comparison {
	return &Comparison{op: op, lhs: lhs, rhs: rhs}
}

func (c *Comparison) Eval(left, right Row) (common.Tristate, error) {
	lv, err := c.lhs.Eval(left, right)
	if err != nil {
		return common.TristateUnknown, errors.WithStack(err)
	}
	rv, err := c.rhs.Eval(left, right)
	if err != nil {
		return common.TristateUnknown, errors.WithStack(err)
	}
	if lv.IsNull() || rv.IsNull() {
		return common.TristateUnknown, nil
	}
	lv, rv, err = coerce(lv, rv)
	if err != nil {
		return common.TristateUnknown, errors.WithStack(err)
	}
	cmp, err := lv.Compare(rv)
	if err != nil {
		return common.TristateUnknown, errors.WithStack(err)
	}
	switch c.op {
	case OpLT:
		return common.TristateOf(cmp < 0), nil
	case OpLE:
		return common.TristateOf(cmp <= 0), nil
	case OpEQ:
		return common.TristateOf(cmp == 0), nil
	case OpNE:
		return common.TristateOf(cmp != 0), nil
	case OpGE:
		return common.TristateOf(cmp >= 0), nil
	default:
		return common.TristateOf(cmp > 0), nil
	}
}

// coerce brings two comparable values to one type, e.g. an int column against
// a bigint constant.
func coerce(lv, rv common.Value) (common.Value, common.Value, error) {
	if lv.Type() == rv.Type() {
		return lv, rv, nil
	}
	if converted, err := rv.CastAs(common.ColumnType{Type: lv.Type()}); err == nil {
		return lv, converted, nil
	}
	converted, err := lv.CastAs(common.ColumnType{Type: rv.Type()})
	if err != nil {
		return common.Value{}, common.Value{}, errors.Errorf("cannot compare %s with %s", lv.Type(), rv.Type())
	}
	return converted, rv, nil
}

// And is a Kleene three-valued conjunction.
type And struct {
	preds []Predicate
}

func NewAnd(preds ...Predicate) *And {
	return &And{preds: preds}
}

func (a *And) Eval(left, right Row) (common.Tristate, error) {
	result := common.TristateTrue
	for _, pred := range a.preds {
		r, err := pred.Eval(left, right)
		if err != nil {
			return common.TristateUnknown, err
		}
		result = result.And(r)
		if result == common.TristateFalse {
			return result, nil
		}
	}
	return result, nil
}

// Or is a Kleene three-valued disjunction.
type Or struct {
	preds []Predicate
}

func NewOr(preds ...Predicate) *Or {
	return &Or{preds: preds}
}

func (o *Or) Eval(left, right Row) (common.Tristate, error) {
	result := common.TristateFalse
	for _, pred := range o.preds {
		r, err := pred.Eval(left, right)
		if err != nil {
			return common.TristateUnknown, err
		}
		result = result.Or(r)
		if result == common.TristateTrue {
			return result, nil
		}
	}
	return result, nil
}

// Not negates its operand, leaving Unknown unchanged.
type Not struct {
	pred Predicate
}

func NewNot(pred Predicate) *Not {
	return &Not{pred: pred}
}

func (n *Not) Eval(left, right Row) (common.Tristate, error) {
	r, err := n.pred.Eval(left, right)
	if err != nil {
		return common.TristateUnknown, err
	}
	return r.Not(), nil
}

// ConstBool always evaluates to the same result, whatever the rows.
type ConstBool struct {
	result common.Tristate
}

func NewConstBool(result common.Tristate) *ConstBool {
	return &ConstBool{result: result}
}

func (c *ConstBool) Eval(left, right Row) (common.Tristate, error) {
	return c.result, nil
}
