// Package bench wraps frame operations with wall-clock timing and collects
// per-step samples into a run report. Timing here is advisory
// instrumentation: single-shot measurements without warm-up or repetition,
// never part of an operation's functional contract.
package bench

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/guptarohit/asciigraph"

	"github.com/wdm0006/framebench/pkg/frame"
	"github.com/wdm0006/framebench/pkg/ops"
)

// Sample is one (step name, duration) measurement.
type Sample struct {
	Step    string        `json:"step"`
	Elapsed time.Duration `json:"elapsed_ns"`
	Rows    int           `json:"rows"`
}

// Runner executes named steps, printing the elapsed time of each to out as
// it completes and keeping the samples for the final report.
type Runner struct {
	out      io.Writer
	samples  []Sample
	started  time.Time
	msBefore runtime.MemStats
}

func NewRunner(out io.Writer) *Runner {
	r := &Runner{out: out, started: time.Now()}
	runtime.ReadMemStats(&r.msBefore)
	return r
}

// Step applies op to f, timing the call.
func (r *Runner) Step(ctx context.Context, op ops.Op, f *frame.Frame) (*frame.Frame, error) {
	return r.StepFunc(op.Name(), func() (*frame.Frame, error) {
		return op.Apply(ctx, f)
	})
}

// StepFunc times an arbitrary frame-producing function, e.g. the initial load.
func (r *Runner) StepFunc(name string, fn func() (*frame.Frame, error)) (*frame.Frame, error) {
	start := time.Now()
	out, err := fn()
	elapsed := time.Since(start)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	r.samples = append(r.samples, Sample{Step: name, Elapsed: elapsed, Rows: out.Rows()})
	fmt.Fprintf(r.out, "time to %s: %s (%d rows)\n", name, elapsed, out.Rows())
	return out, nil
}

// Samples returns the recorded samples in execution order.
func (r *Runner) Samples() []Sample { return r.samples }

// Report snapshots the run so far.
func (r *Runner) Report() Report {
	var msAfter runtime.MemStats
	runtime.ReadMemStats(&msAfter)
	var total time.Duration
	for _, s := range r.samples {
		total += s.Elapsed
	}
	return Report{
		Samples:         r.samples,
		Total:           total,
		WallClock:       time.Since(r.started),
		AllocBytes:      msAfter.Alloc,
		TotalAllocBytes: msAfter.TotalAlloc - r.msBefore.TotalAlloc,
		GCCycles:        msAfter.NumGC - r.msBefore.NumGC,
	}
}

// Report summarizes a benchmark run.
type Report struct {
	Samples         []Sample      `json:"samples"`
	Total           time.Duration `json:"total_ns"`
	WallClock       time.Duration `json:"wall_clock_ns"`
	AllocBytes      uint64        `json:"mem_alloc_bytes"`
	TotalAllocBytes uint64        `json:"mem_total_alloc_bytes"`
	GCCycles        uint32        `json:"gc_cycles"`
}

// WriteText renders a human-readable summary, optionally with an ASCII chart
// of per-step durations in milliseconds.
func (rep Report) WriteText(w io.Writer, chart bool) {
	fmt.Fprintln(w, "Benchmark Summary")
	for _, s := range rep.Samples {
		fmt.Fprintf(w, "- %-28s %12s %10d rows\n", s.Step, s.Elapsed, s.Rows)
	}
	fmt.Fprintf(w, "Total measured: %s (wall clock %s)\n", rep.Total, rep.WallClock)
	fmt.Fprintf(w, "Current alloc: %d KB\n", rep.AllocBytes/1024)
	fmt.Fprintf(w, "Total alloc (delta): %d KB\n", rep.TotalAllocBytes/1024)
	fmt.Fprintf(w, "GC cycles (delta): %d\n", rep.GCCycles)
	if chart && len(rep.Samples) > 1 {
		data := make([]float64, len(rep.Samples))
		for i, s := range rep.Samples {
			data[i] = float64(s.Elapsed.Microseconds()) / 1000.0
		}
		fmt.Fprintln(w, asciigraph.Plot(data,
			asciigraph.Height(8),
			asciigraph.Caption("per-step duration (ms, in execution order)")))
	}
}

// WriteJSON renders the machine-readable summary.
func (rep Report) WriteJSON(w io.Writer) error {
	b, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
