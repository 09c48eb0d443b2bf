package ops

import (
	"context"

	"github.com/wdm0006/framebench/pkg/frame"
)

// Concat appends the rows of With below the rows of the input frame.
// Columns are matched by name; both frames must declare the same column set.
// Kinds that disagree in width but not in kind widen losslessly (Int32 to
// Int, integers to Float); anything else fails with a SchemaMismatchError.
type Concat struct {
	With *frame.Frame
}

func (op *Concat) Name() string { return "concat" }

func (op *Concat) Apply(ctx context.Context, f *frame.Frame) (*frame.Frame, error) {
	other := op.With
	if len(f.Schema().Columns) != len(other.Schema().Columns) {
		return nil, &frame.SchemaMismatchError{Op: "concat", Column: "", Left: frame.KindInvalid, Right: frame.KindInvalid}
	}
	cols := make([]frame.ColumnSchema, len(f.Schema().Columns))
	for i, cs := range f.Schema().Columns {
		ok, err := other.Kind(cs.Name)
		if err != nil {
			return nil, err
		}
		w, compatible := widen(cs.Type, ok)
		if !compatible {
			return nil, &frame.SchemaMismatchError{Op: "concat", Column: cs.Name, Left: cs.Type, Right: ok}
		}
		cols[i] = frame.ColumnSchema{Name: cs.Name, Type: w, Nullable: true}
	}

	out := frame.New(frame.Schema{Columns: cols})
	for r := 0; r < f.Rows(); r++ {
		if err := out.CopyRow(f, r); err != nil {
			return nil, err
		}
	}
	for r := 0; r < other.Rows(); r++ {
		if err := out.CopyRow(other, r); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// widen reconciles two column kinds, promoting narrower numeric
// representations to wider ones without data loss.
func widen(a, b frame.Kind) (frame.Kind, bool) {
	if a == b {
		return a, true
	}
	if a.Numeric() && b.Numeric() {
		if a == frame.KindFloat || b == frame.KindFloat {
			return frame.KindFloat, true
		}
		// Int32 + Int
		return frame.KindInt, true
	}
	return frame.KindInvalid, false
}
