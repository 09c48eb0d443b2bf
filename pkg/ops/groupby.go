package ops

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/wdm0006/framebench/pkg/frame"
)

// Agg computes one aggregate column over each group's member rows.
type Agg interface {
	Alias() string
	column() string
	outKind(in frame.Kind) (frame.Kind, error)
	compute(f *frame.Frame, rows []int) (any, error)
}

// Sum sums a numeric column. Integer inputs sum into a 64-bit integer so
// narrow columns cannot overflow mid-aggregation.
type Sum struct {
	Column string
	As     string
}

func (a *Sum) Alias() string  { return a.As }
func (a *Sum) column() string { return a.Column }

func (a *Sum) outKind(in frame.Kind) (frame.Kind, error) {
	switch in {
	case frame.KindInt32, frame.KindInt:
		return frame.KindInt, nil
	case frame.KindFloat:
		return frame.KindFloat, nil
	default:
		return frame.KindInvalid, fmt.Errorf("sum over non-numeric column %q (%s)", a.Column, in)
	}
}

func (a *Sum) compute(f *frame.Frame, rows []int) (any, error) {
	k, err := f.Kind(a.Column)
	if err != nil {
		return nil, err
	}
	if k == frame.KindFloat {
		var sum float64
		for _, r := range rows {
			v, err := f.Value(r, a.Column)
			if err != nil {
				return nil, err
			}
			if v == nil {
				continue
			}
			sum += v.(float64)
		}
		return sum, nil
	}
	var sum int64
	for _, r := range rows {
		v, err := f.Value(r, a.Column)
		if err != nil {
			return nil, err
		}
		switch t := v.(type) {
		case int32:
			sum += int64(t)
		case int64:
			sum += t
		}
	}
	return sum, nil
}

// MeanRound averages a numeric column and rounds to Places decimal places.
type MeanRound struct {
	Column string
	Places int
	As     string
}

func (a *MeanRound) Alias() string  { return a.As }
func (a *MeanRound) column() string { return a.Column }

func (a *MeanRound) outKind(in frame.Kind) (frame.Kind, error) {
	if !in.Numeric() {
		return frame.KindInvalid, fmt.Errorf("mean over non-numeric column %q (%s)", a.Column, in)
	}
	return frame.KindFloat, nil
}

func (a *MeanRound) compute(f *frame.Frame, rows []int) (any, error) {
	var sum float64
	var n int
	for _, r := range rows {
		v, err := f.Value(r, a.Column)
		if err != nil {
			return nil, err
		}
		if v == nil {
			continue
		}
		x, _ := toFloat(v)
		sum += x
		n++
	}
	if n == 0 {
		return nil, nil
	}
	pow := math.Pow(10, float64(a.Places))
	return math.Round(sum/float64(n)*pow) / pow, nil
}

// Collect gathers each group's non-null values into a string list, in row order.
type Collect struct {
	Column string
	As     string
}

func (a *Collect) Alias() string  { return a.As }
func (a *Collect) column() string { return a.Column }

func (a *Collect) outKind(in frame.Kind) (frame.Kind, error) {
	return frame.KindStringList, nil
}

func (a *Collect) compute(f *frame.Frame, rows []int) (any, error) {
	vals := make([]string, 0, len(rows))
	for _, r := range rows {
		v, err := f.Value(r, a.Column)
		if err != nil {
			return nil, err
		}
		if v == nil {
			continue
		}
		vals = append(vals, formatValue(v))
	}
	return vals, nil
}

// GroupBy produces one row per distinct combination of the By columns, in
// order of first appearance, with Aggs computed over each group's rows.
type GroupBy struct {
	By   []string
	Aggs []Agg
}

func (op *GroupBy) Name() string { return "group by " + strings.Join(op.By, ", ") }

func (op *GroupBy) Apply(ctx context.Context, f *frame.Frame) (*frame.Frame, error) {
	for _, name := range op.By {
		if !f.Schema().Has(name) {
			return nil, &frame.MissingColumnError{Column: name}
		}
	}

	cols := make([]frame.ColumnSchema, 0, len(op.By)+len(op.Aggs))
	for _, name := range op.By {
		k, err := f.Kind(name)
		if err != nil {
			return nil, err
		}
		cols = append(cols, frame.ColumnSchema{Name: name, Type: k, Nullable: true})
	}
	for _, a := range op.Aggs {
		in, err := f.Kind(a.column())
		if err != nil {
			return nil, err
		}
		out, err := a.outKind(in)
		if err != nil {
			return nil, err
		}
		cols = append(cols, frame.ColumnSchema{Name: a.Alias(), Type: out, Nullable: true})
	}

	groups := make(map[string][]int)
	var order []string
	for r := 0; r < f.Rows(); r++ {
		key, err := op.keyFor(f, r)
		if err != nil {
			return nil, err
		}
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], r)
	}

	out := frame.New(frame.Schema{Columns: cols})
	for i, key := range order {
		rows := groups[key]
		out.AppendNullRow()
		for _, name := range op.By {
			v, err := f.Value(rows[0], name)
			if err != nil {
				return nil, err
			}
			if v == nil {
				continue
			}
			if err := out.SetCell(i, name, v); err != nil {
				return nil, err
			}
		}
		for _, a := range op.Aggs {
			v, err := a.compute(f, rows)
			if err != nil {
				return nil, err
			}
			if v == nil {
				continue
			}
			if err := out.SetCell(i, a.Alias(), v); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

// keyFor builds the group key string for a row; the unit separator keeps
// multi-column keys unambiguous.
func (op *GroupBy) keyFor(f *frame.Frame, row int) (string, error) {
	var b strings.Builder
	for i, name := range op.By {
		if i > 0 {
			b.WriteByte(0x1f)
		}
		v, err := f.Value(row, name)
		if err != nil {
			return "", err
		}
		if v == nil {
			b.WriteByte(0x00)
			continue
		}
		b.WriteString(formatValue(v))
	}
	return b.String(), nil
}
