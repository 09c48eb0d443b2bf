package ops

import (
	"context"
	"fmt"

	"github.com/wdm0006/framebench/pkg/frame"
)

// Branch pairs a condition with the value a matching row receives.
type Branch struct {
	When Condition
	Then any
}

// Derive appends one column whose value per row is the Then value of the
// first matching branch, else Default. Columns named in Drop are omitted
// from the result after the new column is computed.
type Derive struct {
	Column   string
	Branches []Branch
	Default  any
	Drop     []string
}

func (op *Derive) Name() string { return "derive " + op.Column }

func (op *Derive) Apply(ctx context.Context, f *frame.Frame) (*frame.Frame, error) {
	outKind := kindOf(op.Default)
	for _, b := range op.Branches {
		if k := kindOf(b.Then); k != frame.KindInvalid {
			outKind = k
			break
		}
	}
	if outKind == frame.KindInvalid {
		return nil, fmt.Errorf("derive %s: no usable branch or default value", op.Column)
	}

	drop := make(map[string]bool, len(op.Drop))
	for _, name := range op.Drop {
		if !f.Schema().Has(name) {
			return nil, &frame.MissingColumnError{Column: name}
		}
		drop[name] = true
	}

	var cols []frame.ColumnSchema
	for _, cs := range f.Schema().Columns {
		if drop[cs.Name] {
			continue
		}
		cols = append(cols, cs)
	}
	cols = append(cols, frame.ColumnSchema{Name: op.Column, Type: outKind, Nullable: true})

	out := frame.New(frame.Schema{Columns: cols})
	for r := 0; r < f.Rows(); r++ {
		out.AppendNullRow()
		for _, cs := range cols[:len(cols)-1] {
			v, err := f.Value(r, cs.Name)
			if err != nil {
				return nil, err
			}
			if v == nil {
				continue
			}
			if err := out.SetCell(r, cs.Name, v); err != nil {
				return nil, err
			}
		}
		v, err := op.valueFor(f, r)
		if err != nil {
			return nil, err
		}
		if v == nil {
			continue
		}
		if err := out.SetCell(r, op.Column, v); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// valueFor evaluates branches in listed order; first match wins.
func (op *Derive) valueFor(f *frame.Frame, row int) (any, error) {
	for _, b := range op.Branches {
		ok, err := b.When.Holds(f, row)
		if err != nil {
			return nil, err
		}
		if ok {
			return b.Then, nil
		}
	}
	return op.Default, nil
}
