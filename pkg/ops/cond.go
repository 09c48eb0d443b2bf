package ops

import (
	"fmt"

	"github.com/wdm0006/framebench/pkg/frame"
)

// Condition is a row predicate over one column. Null cells never satisfy a
// condition.
type Condition interface {
	Holds(f *frame.Frame, row int) (bool, error)
	describe() string
}

// CmpOp is a comparison operator for Cmp conditions.
type CmpOp int

const (
	Eq CmpOp = iota
	Neq
	Lt
	Le
	Gt
	Ge
)

func (o CmpOp) String() string {
	switch o {
	case Eq:
		return "=="
	case Neq:
		return "!="
	case Lt:
		return "<"
	case Le:
		return "<="
	case Gt:
		return ">"
	default:
		return ">="
	}
}

// Cmp compares a column against a literal value.
func Cmp(column string, op CmpOp, value any) Condition {
	return cmpCond{column: column, op: op, value: value}
}

type cmpCond struct {
	column string
	op     CmpOp
	value  any
}

func (c cmpCond) describe() string {
	return fmt.Sprintf("%s %s %v", c.column, c.op, c.value)
}

func (c cmpCond) Holds(f *frame.Frame, row int) (bool, error) {
	v, err := f.Value(row, c.column)
	if err != nil {
		return false, err
	}
	if v == nil {
		return false, nil
	}
	cmp, ok := compare(v, c.value)
	if !ok {
		return false, fmt.Errorf("cannot compare column %q (%T) with %T", c.column, v, c.value)
	}
	switch c.op {
	case Eq:
		return cmp == 0, nil
	case Neq:
		return cmp != 0, nil
	case Lt:
		return cmp < 0, nil
	case Le:
		return cmp <= 0, nil
	case Gt:
		return cmp > 0, nil
	default:
		return cmp >= 0, nil
	}
}

// Between matches values within [lo, hi], inclusive on both bounds.
func Between(column string, lo, hi any) Condition {
	return betweenCond{column: column, lo: lo, hi: hi}
}

type betweenCond struct {
	column string
	lo, hi any
}

func (c betweenCond) describe() string {
	return fmt.Sprintf("%s in [%v, %v]", c.column, c.lo, c.hi)
}

func (c betweenCond) Holds(f *frame.Frame, row int) (bool, error) {
	v, err := f.Value(row, c.column)
	if err != nil {
		return false, err
	}
	if v == nil {
		return false, nil
	}
	lo, ok := compare(v, c.lo)
	if !ok {
		return false, fmt.Errorf("cannot compare column %q (%T) with %T", c.column, v, c.lo)
	}
	hi, ok := compare(v, c.hi)
	if !ok {
		return false, fmt.Errorf("cannot compare column %q (%T) with %T", c.column, v, c.hi)
	}
	return lo >= 0 && hi <= 0, nil
}
