package ops

import (
	"context"
	"errors"
	"testing"

	"github.com/wdm0006/framebench/pkg/frame"
)

func TestSelectIdentity(t *testing.T) {
	f := censusFrame(t)
	out := apply(t, SelectAll(f.Schema()), f)
	if out.Rows() != f.Rows() || out.Cols() != f.Cols() {
		t.Fatalf("identity projection changed shape: %dx%d vs %dx%d",
			out.Rows(), out.Cols(), f.Rows(), f.Cols())
	}
	for r := 0; r < f.Rows(); r++ {
		for _, cs := range f.Schema().Columns {
			if mustValue(t, out, r, cs.Name) != mustValue(t, f, r, cs.Name) {
				t.Fatalf("row %d column %s changed under identity projection", r, cs.Name)
			}
		}
	}
}

func TestSelectSubsetAndArith(t *testing.T) {
	f := censusFrame(t)
	out := apply(t, &Select{Exprs: []Expr{
		Col("Year"),
		Arith("Age", Mul, 1.0, "Age*1.0"),
	}}, f)
	if out.Cols() != 2 {
		t.Fatalf("expected 2 columns, got %d", out.Cols())
	}
	if out.Rows() != f.Rows() {
		t.Fatalf("projection changed row count: %d vs %d", out.Rows(), f.Rows())
	}
	k, err := out.Kind("Age*1.0")
	if err != nil {
		t.Fatal(err)
	}
	if k != frame.KindFloat {
		t.Fatalf("arith column should be float, got %s", k)
	}
	if got := mustValue(t, out, 2, "Age*1.0").(float64); got != 30.0 {
		t.Fatalf("expected 30.0, got %v", got)
	}
}

func TestSelectMissingColumn(t *testing.T) {
	f := censusFrame(t)
	_, err := (&Select{Exprs: []Expr{Col("Nope")}}).Apply(context.Background(), f)
	var mc *frame.MissingColumnError
	if !errors.As(err, &mc) {
		t.Fatalf("expected MissingColumnError, got %v", err)
	}
}

func TestSelectDoesNotMutateInput(t *testing.T) {
	f := censusFrame(t)
	before := mustValue(t, f, 0, "Age")
	out := apply(t, &Select{Exprs: []Expr{Arith("Age", Add, 5, "Age")}}, f)
	if got := mustValue(t, out, 0, "Age").(float64); got != 15.0 {
		t.Fatalf("expected 15.0, got %v", got)
	}
	if after := mustValue(t, f, 0, "Age"); after != before {
		t.Fatalf("input mutated: %v -> %v", before, after)
	}
}
