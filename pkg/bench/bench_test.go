package bench

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/wdm0006/framebench/pkg/frame"
	"github.com/wdm0006/framebench/pkg/ops"
)

func smallFrame(t *testing.T, rows int) *frame.Frame {
	t.Helper()
	f := frame.New(frame.Schema{Columns: []frame.ColumnSchema{
		{Name: "Year", Type: frame.KindInt, Nullable: true},
	}})
	for i := 0; i < rows; i++ {
		f.AppendNullRow()
		if err := f.SetCell(i, "Year", int64(2006+i)); err != nil {
			t.Fatal(err)
		}
	}
	return f
}

func TestStepRecordsSampleAndPrints(t *testing.T) {
	var out bytes.Buffer
	r := NewRunner(&out)
	f := smallFrame(t, 4)

	got, err := r.Step(context.Background(), &ops.Filter{Where: ops.Cmp("Year", ops.Lt, int64(2008))}, f)
	if err != nil {
		t.Fatal(err)
	}
	if got.Rows() != 2 {
		t.Fatalf("expected 2 rows from the step, got %d", got.Rows())
	}
	samples := r.Samples()
	if len(samples) != 1 {
		t.Fatalf("expected 1 sample, got %d", len(samples))
	}
	if samples[0].Rows != 2 {
		t.Fatalf("sample rows = %d, want 2", samples[0].Rows)
	}
	if samples[0].Elapsed < 0 {
		t.Fatalf("negative elapsed %v", samples[0].Elapsed)
	}
	line := out.String()
	if !strings.HasPrefix(line, "time to ") || !strings.Contains(line, "(2 rows)") {
		t.Fatalf("unexpected step output %q", line)
	}
}

func TestStepFuncErrorIsNamedAndNotSampled(t *testing.T) {
	var out bytes.Buffer
	r := NewRunner(&out)

	boom := errors.New("boom")
	_, err := r.StepFunc("fetch the csv file", func() (*frame.Frame, error) {
		return nil, boom
	})
	if err == nil || !errors.Is(err, boom) {
		t.Fatalf("expected wrapped step error, got %v", err)
	}
	if !strings.Contains(err.Error(), "fetch the csv file") {
		t.Fatalf("error should carry the step name, got %v", err)
	}
	if len(r.Samples()) != 0 {
		t.Fatalf("failed steps must not be sampled, got %d samples", len(r.Samples()))
	}
	if out.Len() != 0 {
		t.Fatalf("failed steps must not print, got %q", out.String())
	}
}

func TestReportTotalsAndJSON(t *testing.T) {
	var out bytes.Buffer
	r := NewRunner(&out)
	f := smallFrame(t, 3)

	for _, name := range []string{"first", "second"} {
		if _, err := r.StepFunc(name, func() (*frame.Frame, error) { return f, nil }); err != nil {
			t.Fatal(err)
		}
	}
	rep := r.Report()
	if len(rep.Samples) != 2 {
		t.Fatalf("expected 2 samples in report, got %d", len(rep.Samples))
	}
	var sum int64
	for _, s := range rep.Samples {
		sum += int64(s.Elapsed)
	}
	if int64(rep.Total) != sum {
		t.Fatalf("total %d != sum of samples %d", rep.Total, sum)
	}
	if rep.WallClock < rep.Total {
		t.Fatalf("wall clock %v below measured total %v", rep.WallClock, rep.Total)
	}

	var buf bytes.Buffer
	if err := rep.WriteJSON(&buf); err != nil {
		t.Fatal(err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("report JSON does not parse: %v", err)
	}
	for _, key := range []string{"samples", "total_ns", "wall_clock_ns", "mem_alloc_bytes"} {
		if _, ok := decoded[key]; !ok {
			t.Fatalf("report JSON missing %q", key)
		}
	}
}

func TestReportTextWithChart(t *testing.T) {
	var out bytes.Buffer
	r := NewRunner(&out)
	f := smallFrame(t, 1)
	for _, name := range []string{"a", "b", "c"} {
		if _, err := r.StepFunc(name, func() (*frame.Frame, error) { return f, nil }); err != nil {
			t.Fatal(err)
		}
	}
	var buf bytes.Buffer
	r.Report().WriteText(&buf, true)
	text := buf.String()
	if !strings.Contains(text, "Benchmark Summary") {
		t.Fatalf("missing summary header in %q", text)
	}
	if !strings.Contains(text, "per-step duration") {
		t.Fatalf("expected chart caption, got %q", text)
	}
}
