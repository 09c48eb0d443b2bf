// Command framebench loads a delimited dataset and runs a fixed sequence of
// relational operations over it, measuring wall-clock duration around each
// step and printing previews of intermediate results.
//
// The workload expects census-style columns (Year, Age, Ethnic, Sex, Area,
// count); cmd/genframes generates compatible inputs of any size.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/wdm0006/framebench/pkg/bench"
	"github.com/wdm0006/framebench/pkg/frame"
	csvio "github.com/wdm0006/framebench/pkg/io/csvio"
	parquetio "github.com/wdm0006/framebench/pkg/io/parquetio"
	"github.com/wdm0006/framebench/pkg/ops"
	"github.com/wdm0006/framebench/pkg/profile"
	"github.com/wdm0006/framebench/pkg/render"
)

var version = "0.1.0-dev"

func main() {
	var (
		showVersion = flag.Bool("version", false, "Print version and exit")
		configPath  = flag.String("config", "", "Path to benchmark config (YAML or TOML)")
		input       = flag.String("input", "", "Input CSV path (overrides config)")
		preview     = flag.Int("preview", 0, "Rows to preview per step (overrides config)")
		glimpse     = flag.Bool("glimpse", false, "Print per-column statistics after load")
		chart       = flag.Bool("chart", false, "Render an ASCII chart of step durations")
		jsonOut     = flag.Bool("json", false, "Emit the summary as JSON")
		export      = flag.String("export", "", "Export the concat result (.csv, .csv.gz or .parquet)")
	)
	flag.Parse()

	if *showVersion {
		fmt.Println("framebench", version)
		return
	}

	cfg := defaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = loadConfig(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "input":
			cfg.Input.Path = *input
		case "preview":
			cfg.Preview = *preview
		case "glimpse":
			cfg.Glimpse = *glimpse
		case "chart":
			cfg.Chart = *chart
		case "json":
			cfg.JSON = *jsonOut
		case "export":
			cfg.Export = *export
		}
	})
	if cfg.Input.Path == "" {
		fmt.Fprintln(os.Stderr, "no input provided; try --input <file.csv> or --config <file>")
		os.Exit(2)
	}

	if err := run(cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cfg Config) error {
	ctx := context.Background()
	runner := bench.NewRunner(os.Stdout)
	head := func(f *frame.Frame) {
		if cfg.Preview > 0 {
			render.Head(os.Stdout, f, cfg.Preview)
		}
	}

	overrides, err := cfg.overrideKinds()
	if err != nil {
		return err
	}

	// 1. load with schema overrides, skipping malformed rows when tolerant
	var dropped int
	df, err := runner.StepFunc("fetch the csv file", func() (*frame.Frame, error) {
		rdr, closer, err := csvio.Open(cfg.Input.Path, csvio.ReaderOptions{
			HasHeader:     cfg.Input.HasHeader,
			Delimiter:     cfg.delimiter(),
			SampleRows:    cfg.Input.SampleRows,
			TryParseDates: cfg.Input.TryParseDates,
			Overrides:     overrides,
			IgnoreErrors:  cfg.Input.IgnoreErrors,
		})
		if err != nil {
			return nil, err
		}
		defer func() { _ = closer.Close() }()
		schema, _, err := rdr.InferSchema()
		if err != nil {
			return nil, err
		}
		f, err := rdr.ReadAll(schema)
		dropped = rdr.DroppedRows()
		return f, err
	})
	if err != nil {
		return err
	}
	if dropped > 0 {
		fmt.Printf("dropped %d malformed rows\n", dropped)
	}
	head(df)

	if cfg.Glimpse {
		p, err := profile.Glimpse(df, cfg.TopK)
		if err != nil {
			return err
		}
		fmt.Print(p.Text())
	}

	// 2.a select columns, pass-through and computed
	sel, err := runner.Step(ctx, &ops.Select{Exprs: []ops.Expr{
		ops.Col("Year"),
		ops.Arith("Age", ops.Mul, 1.0, "Age*1.0"),
	}}, df)
	if err != nil {
		return err
	}
	head(sel)

	// 2.b derive gender from the numeric Sex code, first match wins
	derived, err := runner.Step(ctx, &ops.Derive{
		Column: "gender",
		Branches: []ops.Branch{
			{When: ops.Cmp("Sex", ops.Eq, int64(1)), Then: "male"},
			{When: ops.Cmp("Sex", ops.Eq, int64(2)), Then: "female"},
		},
		Default: "others",
		Drop:    []string{"Sex"},
	}, df)
	if err != nil {
		return err
	}
	head(derived)

	// 2.c basic and range filters
	filtered, err := runner.Step(ctx, &ops.Filter{Where: ops.Cmp("Year", ops.Lt, int64(2007))}, derived)
	if err != nil {
		return err
	}
	head(filtered)

	ranged, err := runner.Step(ctx, &ops.Filter{Where: ops.Between("Year", int64(2006), int64(2013))}, derived)
	if err != nil {
		return err
	}
	head(ranged)

	// 2.d multi-key sort, nulls last
	sorted, err := runner.Step(ctx, &ops.Sort{Keys: []ops.SortKey{
		{Column: "Year"},
		{Column: "count"},
	}}, derived)
	if err != nil {
		return err
	}
	head(sorted)

	// 2.e grouped aggregation in first-appearance order
	grouped, err := runner.Step(ctx, &ops.GroupBy{
		By: []string{"Year"},
		Aggs: []ops.Agg{
			&ops.Sum{Column: "count", As: "year_wise_total_count"},
			&ops.MeanRound{Column: "count", Places: 2, As: "year_wise_avg_count"},
			&ops.Collect{Column: "gender", As: "gender"},
		},
	}, sorted)
	if err != nil {
		return err
	}
	head(grouped)

	// 2.f.i joins against a small in-memory year list
	years := yearFrame(2006, 2013, 2018, 2019)
	leftJoined, err := runner.Step(ctx, &ops.Join{With: sorted, On: "Year", Kind: ops.LeftJoin}, years)
	if err != nil {
		return err
	}
	leftJoined, err = runner.Step(ctx, &ops.Sort{Keys: []ops.SortKey{{Column: "Year", Desc: true}}}, leftJoined)
	if err != nil {
		return err
	}
	head(leftJoined)

	innerJoined, err := runner.Step(ctx, &ops.Join{With: years, On: "Year", Kind: ops.InnerJoin}, sorted)
	if err != nil {
		return err
	}
	innerJoined, err = runner.Step(ctx, &ops.Sort{Keys: []ops.SortKey{{Column: "Year", Desc: true}}}, innerJoined)
	if err != nil {
		return err
	}
	head(innerJoined)

	// 2.f.ii relaxed concat; the wide-int count column widens the narrow one
	extra, err := extraRows(df.Schema())
	if err != nil {
		return err
	}
	concatted, err := runner.Step(ctx, &ops.Concat{With: extra}, df)
	if err != nil {
		return err
	}
	concatted, err = runner.Step(ctx, &ops.Sort{Keys: []ops.SortKey{{Column: "Year", Desc: true}}}, concatted)
	if err != nil {
		return err
	}
	head(concatted)

	if cfg.Export != "" {
		if err := exportFrame(cfg.Export, concatted); err != nil {
			return err
		}
		fmt.Printf("exported concat result to %s\n", cfg.Export)
	}

	fmt.Println()
	rep := runner.Report()
	if cfg.JSON {
		return rep.WriteJSON(os.Stdout)
	}
	rep.WriteText(os.Stdout, cfg.Chart)
	return nil
}

// yearFrame builds the single-column join frame.
func yearFrame(years ...int64) *frame.Frame {
	f := frame.New(frame.Schema{Columns: []frame.ColumnSchema{
		{Name: "Year", Type: frame.KindInt, Nullable: true},
	}})
	for i, y := range years {
		f.AppendNullRow()
		_ = f.SetCell(i, "Year", y)
	}
	return f
}

// extraRows builds four wide-count rows matching the loaded schema's column
// set, with count held as a 64-bit integer to exercise widening on concat.
func extraRows(s frame.Schema) (*frame.Frame, error) {
	cols := make([]frame.ColumnSchema, len(s.Columns))
	for i, cs := range s.Columns {
		k := cs.Type
		if cs.Name == "count" {
			k = frame.KindInt
		}
		cols[i] = frame.ColumnSchema{Name: cs.Name, Type: k, Nullable: true}
	}
	f := frame.New(frame.Schema{Columns: cols})
	rows := []map[string]int64{
		{"Year": 2020, "Age": 0, "Ethnic": 1, "Sex": 1, "Area": 1, "count": 1000},
		{"Year": 2021, "Age": 0, "Ethnic": 2, "Sex": 2, "Area": 2, "count": 2000},
		{"Year": 2022, "Age": 0, "Ethnic": 3, "Sex": 1, "Area": 3, "count": 3000},
		{"Year": 2023, "Age": 0, "Ethnic": 4, "Sex": 2, "Area": 4, "count": 4000},
	}
	for i, row := range rows {
		f.AppendNullRow()
		for _, cs := range cols {
			v, ok := row[cs.Name]
			if !ok {
				continue
			}
			var cell any = v
			switch cs.Type {
			case frame.KindInt32:
				cell = int32(v)
			case frame.KindFloat:
				cell = float64(v)
			case frame.KindString:
				cell = fmt.Sprintf("%d", v)
			case frame.KindInt:
			default:
				continue
			}
			if err := f.SetCell(i, cs.Name, cell); err != nil {
				return nil, err
			}
		}
	}
	return f, nil
}

func exportFrame(path string, f *frame.Frame) error {
	if filepath.Ext(path) == ".parquet" {
		return parquetio.WriteAll(path, f)
	}
	return csvio.WriteAll(path, f, csvio.WriterOptions{})
}
