package ops

import (
	"context"

	"github.com/wdm0006/framebench/pkg/frame"
)

// Filter keeps the rows satisfying Where, preserving input order.
type Filter struct {
	Where Condition
}

func (op *Filter) Name() string { return "filter " + op.Where.describe() }

func (op *Filter) Apply(ctx context.Context, f *frame.Frame) (*frame.Frame, error) {
	out := frame.New(f.Schema())
	for r := 0; r < f.Rows(); r++ {
		ok, err := op.Where.Holds(f, r)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		if err := out.CopyRow(f, r); err != nil {
			return nil, err
		}
	}
	return out, nil
}
