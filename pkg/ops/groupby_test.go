package ops

import (
	"reflect"
	"testing"

	"github.com/wdm0006/framebench/pkg/frame"
)

func groupFrame(t *testing.T) *frame.Frame {
	t.Helper()
	f := frame.New(frame.Schema{Columns: []frame.ColumnSchema{
		{Name: "Year", Type: frame.KindInt, Nullable: true},
		{Name: "count", Type: frame.KindInt32, Nullable: true},
		{Name: "gender", Type: frame.KindString, Nullable: true},
	}})
	rows := []struct {
		y int64
		c int32
		g string
	}{
		{2007, 10, "male"},
		{2005, 20, "female"},
		{2007, 5, "female"},
		{2005, 40, "others"},
	}
	for i, r := range rows {
		f.AppendNullRow()
		mustSet(t, f, i, "Year", r.y)
		mustSet(t, f, i, "count", r.c)
		mustSet(t, f, i, "gender", r.g)
	}
	return f
}

func yearGroup(t *testing.T) *GroupBy {
	t.Helper()
	return &GroupBy{
		By: []string{"Year"},
		Aggs: []Agg{
			&Sum{Column: "count", As: "year_wise_total_count"},
			&MeanRound{Column: "count", Places: 2, As: "year_wise_avg_count"},
			&Collect{Column: "gender", As: "gender"},
		},
	}
}

func TestGroupByOneRowPerKeyFirstAppearance(t *testing.T) {
	f := groupFrame(t)
	out := apply(t, yearGroup(t), f)
	if out.Rows() != 2 {
		t.Fatalf("expected 2 groups, got %d", out.Rows())
	}
	if out.Rows() > f.Rows() {
		t.Fatalf("group result larger than input: %d > %d", out.Rows(), f.Rows())
	}
	// 2007 appears first in the input, so it leads the output
	if y := mustValue(t, out, 0, "Year").(int64); y != 2007 {
		t.Fatalf("expected first-appearance order, got year %d first", y)
	}
}

func TestGroupBySumAndMean(t *testing.T) {
	f := groupFrame(t)
	out := apply(t, yearGroup(t), f)
	// 2007: 10 + 5
	if got := mustValue(t, out, 0, "year_wise_total_count").(int64); got != 15 {
		t.Fatalf("2007 sum: expected 15, got %d", got)
	}
	if got := mustValue(t, out, 0, "year_wise_avg_count").(float64); got != 7.5 {
		t.Fatalf("2007 mean: expected 7.5, got %v", got)
	}
	// 2005: 20 + 40
	if got := mustValue(t, out, 1, "year_wise_total_count").(int64); got != 60 {
		t.Fatalf("2005 sum: expected 60, got %d", got)
	}
}

func TestGroupByMeanRounds(t *testing.T) {
	f := frame.New(frame.Schema{Columns: []frame.ColumnSchema{
		{Name: "k", Type: frame.KindString, Nullable: true},
		{Name: "v", Type: frame.KindInt, Nullable: true},
	}})
	for i, v := range []int64{1, 1, 1} {
		f.AppendNullRow()
		mustSet(t, f, i, "k", "a")
		mustSet(t, f, i, "v", v)
	}
	f.AppendNullRow()
	mustSet(t, f, 3, "k", "a")
	mustSet(t, f, 3, "v", int64(2))

	// mean of 1,1,1,2 is 1.25; rounding to 1 place gives 1.3
	out := apply(t, &GroupBy{By: []string{"k"}, Aggs: []Agg{
		&MeanRound{Column: "v", Places: 1, As: "avg"},
	}}, f)
	if got := mustValue(t, out, 0, "avg").(float64); got != 1.3 {
		t.Fatalf("expected 1.3, got %v", got)
	}
}

func TestGroupByCollect(t *testing.T) {
	f := groupFrame(t)
	out := apply(t, yearGroup(t), f)
	got := mustValue(t, out, 0, "gender").([]string)
	if !reflect.DeepEqual(got, []string{"male", "female"}) {
		t.Fatalf("collect should keep row order, got %v", got)
	}
}

func TestGroupBySumOverGroupEqualsArithmeticSum(t *testing.T) {
	f := censusFrame(t)
	out := apply(t, &GroupBy{By: []string{"Year"}, Aggs: []Agg{
		&Sum{Column: "count", As: "total"},
	}}, f)

	want := map[int64]int64{}
	for r := 0; r < f.Rows(); r++ {
		y := mustValue(t, f, r, "Year").(int64)
		want[y] += int64(mustValue(t, f, r, "count").(int32))
	}
	if out.Rows() != len(want) {
		t.Fatalf("expected %d groups, got %d", len(want), out.Rows())
	}
	for r := 0; r < out.Rows(); r++ {
		y := mustValue(t, out, r, "Year").(int64)
		if got := mustValue(t, out, r, "total").(int64); got != want[y] {
			t.Fatalf("year %d: expected sum %d, got %d", y, want[y], got)
		}
	}
}

func TestGroupByNonNumericSumFails(t *testing.T) {
	f := groupFrame(t)
	_, err := (&GroupBy{By: []string{"Year"}, Aggs: []Agg{
		&Sum{Column: "gender", As: "oops"},
	}}).Apply(ctx(t), f)
	if err == nil {
		t.Fatal("expected error summing a string column")
	}
}
