package ops

import (
	"context"

	"github.com/wdm0006/framebench/pkg/frame"
)

// JoinKind selects the join semantics.
type JoinKind int

const (
	// InnerJoin keeps only rows whose key appears on both sides.
	InnerJoin JoinKind = iota
	// LeftJoin keeps every left row; unmatched right columns are null.
	LeftJoin
)

func (k JoinKind) String() string {
	if k == LeftJoin {
		return "left"
	}
	return "inner"
}

// Join combines the input frame (left side) with With (right side) on the On
// key column, which must exist in both frames with reconcilable kinds.
// Output rows follow left-row order, matches in right-row order.
type Join struct {
	With *frame.Frame
	On   string
	Kind JoinKind
}

func (op *Join) Name() string { return op.Kind.String() + " join on " + op.On }

func (op *Join) Apply(ctx context.Context, left *frame.Frame) (*frame.Frame, error) {
	right := op.With
	lk, err := left.Kind(op.On)
	if err != nil {
		return nil, err
	}
	rk, err := right.Kind(op.On)
	if err != nil {
		return nil, err
	}
	if _, ok := widen(lk, rk); !ok {
		return nil, &frame.SchemaMismatchError{Op: "join", Column: op.On, Left: lk, Right: rk}
	}

	// left columns as-is, right columns minus the key; name collisions on
	// the right get a _right suffix
	cols := append([]frame.ColumnSchema(nil), left.Schema().Columns...)
	rightNames := make(map[string]string) // output name -> right column name
	for _, cs := range right.Schema().Columns {
		if cs.Name == op.On {
			continue
		}
		name := cs.Name
		if left.Schema().Has(name) {
			name += "_right"
		}
		rightNames[name] = cs.Name
		cols = append(cols, frame.ColumnSchema{Name: name, Type: cs.Type, Nullable: true})
	}

	byKey := make(map[string][]int)
	for r := 0; r < right.Rows(); r++ {
		v, err := right.Value(r, op.On)
		if err != nil {
			return nil, err
		}
		if v == nil {
			continue
		}
		k := formatValue(v)
		byKey[k] = append(byKey[k], r)
	}

	out := frame.New(frame.Schema{Columns: cols})
	for lr := 0; lr < left.Rows(); lr++ {
		v, err := left.Value(lr, op.On)
		if err != nil {
			return nil, err
		}
		var matches []int
		if v != nil {
			matches = byKey[formatValue(v)]
		}
		if len(matches) == 0 {
			if op.Kind == InnerJoin {
				continue
			}
			if err := op.emit(out, left, lr, right, -1, rightNames); err != nil {
				return nil, err
			}
			continue
		}
		for _, rr := range matches {
			if err := op.emit(out, left, lr, right, rr, rightNames); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

// emit appends one output row from left row lr and right row rr (rr < 0
// means no match; right columns stay null).
func (op *Join) emit(out, left *frame.Frame, lr int, right *frame.Frame, rr int, rightNames map[string]string) error {
	out.AppendNullRow()
	row := out.Rows() - 1
	for _, cs := range left.Schema().Columns {
		v, err := left.Value(lr, cs.Name)
		if err != nil {
			return err
		}
		if v == nil {
			continue
		}
		if err := out.SetCell(row, cs.Name, v); err != nil {
			return err
		}
	}
	if rr < 0 {
		return nil
	}
	for outName, srcName := range rightNames {
		v, err := right.Value(rr, srcName)
		if err != nil {
			return err
		}
		if v == nil {
			continue
		}
		if err := out.SetCell(row, outName, v); err != nil {
			return err
		}
	}
	return nil
}
