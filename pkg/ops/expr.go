package ops

import (
	"fmt"

	"github.com/wdm0006/framebench/pkg/frame"
)

// Expr is a column expression usable in a Select: either a pass-through
// column reference or an arithmetic derivation over one column.
type Expr interface {
	Alias() string
	kind(s frame.Schema) (frame.Kind, error)
	eval(f *frame.Frame, row int) (any, error)
}

// Col references an existing column unchanged.
func Col(name string) Expr { return colExpr{name: name} }

type colExpr struct{ name string }

func (e colExpr) Alias() string { return e.name }

func (e colExpr) kind(s frame.Schema) (frame.Kind, error) {
	for _, cs := range s.Columns {
		if cs.Name == e.name {
			return cs.Type, nil
		}
	}
	return frame.KindInvalid, &frame.MissingColumnError{Column: e.name}
}

func (e colExpr) eval(f *frame.Frame, row int) (any, error) {
	return f.Value(row, e.name)
}

// ArithOp is the operator of an arithmetic column expression.
type ArithOp int

const (
	Add ArithOp = iota
	Sub
	Mul
	Div
)

// Arith derives a float column by applying op between a numeric column and a
// constant operand, e.g. Arith("Age", Mul, 1.0, "Age*1.0").
func Arith(column string, op ArithOp, operand float64, alias string) Expr {
	return arithExpr{column: column, op: op, operand: operand, alias: alias}
}

type arithExpr struct {
	column  string
	op      ArithOp
	operand float64
	alias   string
}

func (e arithExpr) Alias() string { return e.alias }

func (e arithExpr) kind(s frame.Schema) (frame.Kind, error) {
	for _, cs := range s.Columns {
		if cs.Name == e.column {
			if !cs.Type.Numeric() {
				return frame.KindInvalid, fmt.Errorf("arith over non-numeric column %q (%s)", e.column, cs.Type)
			}
			return frame.KindFloat, nil
		}
	}
	return frame.KindInvalid, &frame.MissingColumnError{Column: e.column}
}

func (e arithExpr) eval(f *frame.Frame, row int) (any, error) {
	v, err := f.Value(row, e.column)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, nil
	}
	x, ok := toFloat(v)
	if !ok {
		return nil, fmt.Errorf("arith over non-numeric value in column %q", e.column)
	}
	switch e.op {
	case Add:
		return x + e.operand, nil
	case Sub:
		return x - e.operand, nil
	case Mul:
		return x * e.operand, nil
	case Div:
		return x / e.operand, nil
	default:
		return nil, fmt.Errorf("unknown arith op %d", e.op)
	}
}
