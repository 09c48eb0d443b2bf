package ops

import (
	"context"

	"github.com/wdm0006/framebench/pkg/frame"
)

// Select projects a frame onto the given column expressions. Row count and
// order are preserved.
type Select struct {
	Exprs []Expr
}

func (op *Select) Name() string { return "select" }

func (op *Select) Apply(ctx context.Context, f *frame.Frame) (*frame.Frame, error) {
	s := frame.Schema{Columns: make([]frame.ColumnSchema, len(op.Exprs))}
	for i, e := range op.Exprs {
		k, err := e.kind(f.Schema())
		if err != nil {
			return nil, err
		}
		s.Columns[i] = frame.ColumnSchema{Name: e.Alias(), Type: k, Nullable: true}
	}
	out := frame.New(s)
	for r := 0; r < f.Rows(); r++ {
		out.AppendNullRow()
		for _, e := range op.Exprs {
			v, err := e.eval(f, r)
			if err != nil {
				return nil, err
			}
			if v == nil {
				continue
			}
			if err := out.SetCell(r, e.Alias(), v); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

// SelectAll returns a Select over every column of the given schema, in order.
func SelectAll(s frame.Schema) *Select {
	exprs := make([]Expr, len(s.Columns))
	for i, cs := range s.Columns {
		exprs[i] = Col(cs.Name)
	}
	return &Select{Exprs: exprs}
}
