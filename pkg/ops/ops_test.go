package ops

import (
	"context"
	"testing"

	"github.com/wdm0006/framebench/pkg/frame"
)

// censusFrame builds a small frame in the shape the benchmark workload uses.
func censusFrame(t *testing.T) *frame.Frame {
	t.Helper()
	f := frame.New(frame.Schema{Columns: []frame.ColumnSchema{
		{Name: "Year", Type: frame.KindInt, Nullable: true},
		{Name: "Age", Type: frame.KindInt, Nullable: true},
		{Name: "Sex", Type: frame.KindInt, Nullable: true},
		{Name: "count", Type: frame.KindInt32, Nullable: true},
	}})
	rows := []struct {
		year, age, sex int64
		count          int32
	}{
		{2005, 10, 1, 100},
		{2007, 20, 2, 200},
		{2010, 30, 3, 300},
		{2010, 40, 1, 400},
		{2005, 50, 2, 500},
	}
	for i, r := range rows {
		f.AppendNullRow()
		mustSet(t, f, i, "Year", r.year)
		mustSet(t, f, i, "Age", r.age)
		mustSet(t, f, i, "Sex", r.sex)
		mustSet(t, f, i, "count", r.count)
	}
	return f
}

func mustSet(t *testing.T, f *frame.Frame, row int, name string, v any) {
	t.Helper()
	if err := f.SetCell(row, name, v); err != nil {
		t.Fatal(err)
	}
}

func mustValue(t *testing.T, f *frame.Frame, row int, name string) any {
	t.Helper()
	v, err := f.Value(row, name)
	if err != nil {
		t.Fatal(err)
	}
	return v
}

func ctx(t *testing.T) context.Context {
	t.Helper()
	return context.Background()
}

func apply(t *testing.T, op Op, f *frame.Frame) *frame.Frame {
	t.Helper()
	out, err := op.Apply(context.Background(), f)
	if err != nil {
		t.Fatalf("%s: %v", op.Name(), err)
	}
	return out
}
