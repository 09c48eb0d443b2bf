package ops

import (
	"context"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/wdm0006/framebench/pkg/frame"
)

func intFrame(values []int64) *frame.Frame {
	f := frame.New(frame.Schema{Columns: []frame.ColumnSchema{
		{Name: "v", Type: frame.KindInt, Nullable: true},
		{Name: "pos", Type: frame.KindInt, Nullable: true},
	}})
	for i, v := range values {
		f.AppendNullRow()
		_ = f.SetCell(i, "v", v)
		_ = f.SetCell(i, "pos", int64(i))
	}
	return f
}

func TestProperty_FilterSoundness(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("filter keeps exactly the rows satisfying the predicate", prop.ForAll(
		func(values []int64, threshold int64) bool {
			f := intFrame(values)
			out, err := (&Filter{Where: Cmp("v", Lt, threshold)}).Apply(context.Background(), f)
			if err != nil {
				return false
			}
			if out.Rows() > f.Rows() {
				return false
			}
			want := 0
			for _, v := range values {
				if v < threshold {
					want++
				}
			}
			if out.Rows() != want {
				return false
			}
			for r := 0; r < out.Rows(); r++ {
				v, _ := out.Value(r, "v")
				if v.(int64) >= threshold {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.Int64Range(-1000, 1000)),
		gen.Int64Range(-1000, 1000),
	))

	properties.TestingRun(t)
}

func TestProperty_SortStableAndOrdered(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("sorted output is ordered and equal keys keep input order", prop.ForAll(
		func(values []int64) bool {
			f := intFrame(values)
			out, err := (&Sort{Keys: []SortKey{{Column: "v"}}}).Apply(context.Background(), f)
			if err != nil || out.Rows() != len(values) {
				return false
			}
			for r := 1; r < out.Rows(); r++ {
				prev, _ := out.Value(r-1, "v")
				cur, _ := out.Value(r, "v")
				if prev.(int64) > cur.(int64) {
					return false
				}
				if prev.(int64) == cur.(int64) {
					ppos, _ := out.Value(r-1, "pos")
					cpos, _ := out.Value(r, "pos")
					if ppos.(int64) > cpos.(int64) {
						return false
					}
				}
			}
			return true
		},
		gen.SliceOf(gen.Int64Range(-50, 50)),
	))

	properties.TestingRun(t)
}

func TestProperty_ConcatPreservesRows(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("concat holds |A|+|B| rows, A's rows first and unchanged", prop.ForAll(
		func(a, b []int64) bool {
			fa := intFrame(a)
			fb := intFrame(b)
			out, err := (&Concat{With: fb}).Apply(context.Background(), fa)
			if err != nil {
				return false
			}
			if out.Rows() != len(a)+len(b) {
				return false
			}
			for i, v := range a {
				got, _ := out.Value(i, "v")
				if got.(int64) != v {
					return false
				}
			}
			for i, v := range b {
				got, _ := out.Value(len(a)+i, "v")
				if got.(int64) != v {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.Int64Range(-1000, 1000)),
		gen.SliceOf(gen.Int64Range(-1000, 1000)),
	))

	properties.TestingRun(t)
}
