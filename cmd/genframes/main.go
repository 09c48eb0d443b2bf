// Command genframes writes a synthetic census-style CSV (Year, Age, Ethnic,
// Sex, Area, count) for benchmarking. Rows stream out in chunks so dataset
// size is bounded only by disk. A fraction of cells can be left missing and
// a fraction of rows deliberately malformed to exercise tolerant loading.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strconv"

	"github.com/wdm0006/framebench/pkg/frame"
	csvio "github.com/wdm0006/framebench/pkg/io/csvio"
)

var schema = frame.Schema{Columns: []frame.ColumnSchema{
	{Name: "Year", Type: frame.KindInt, Nullable: true},
	{Name: "Age", Type: frame.KindInt, Nullable: true},
	{Name: "Ethnic", Type: frame.KindInt, Nullable: true},
	{Name: "Sex", Type: frame.KindInt, Nullable: true},
	{Name: "Area", Type: frame.KindInt, Nullable: true},
	{Name: "count", Type: frame.KindInt32, Nullable: true},
}}

func main() {
	var (
		out     = flag.String("out", "census.csv", "output path (.csv or .csv.gz)")
		rows    = flag.Int("rows", 1_000_000, "total rows to generate")
		chunk   = flag.Int("chunk", 100_000, "rows per chunk")
		missing = flag.Float64("missing", 0.02, "probability of a missing cell")
		dirty   = flag.Float64("dirty", 0.0, "probability of a malformed row")
		seed    = flag.Int64("seed", 42, "random seed")
	)
	flag.Parse()

	if err := generate(*out, *rows, *chunk, *missing, *dirty, rand.New(rand.NewSource(*seed))); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Printf("wrote %d rows to %s\n", *rows, *out)
}

func generate(path string, rows, chunk int, missing, dirty float64, rnd *rand.Rand) error {
	w, err := csvio.NewStreamWriter(path, schema, csvio.WriterOptions{})
	if err != nil {
		return err
	}
	remain := rows
	for remain > 0 {
		n := chunk
		if n > remain {
			n = remain
		}
		remain -= n
		f := frame.New(schema)
		for i := 0; i < n; i++ {
			if dirty > 0 && rnd.Float64() < dirty {
				if err := w.Write(f); err != nil {
					_ = w.Close()
					return err
				}
				f = frame.New(schema)
				if err := w.WriteRaw(malformedRow(rnd)); err != nil {
					_ = w.Close()
					return err
				}
				continue
			}
			appendRow(f, rnd, missing)
		}
		if err := w.Write(f); err != nil {
			_ = w.Close()
			return err
		}
	}
	return w.Close()
}

func appendRow(f *frame.Frame, rnd *rand.Rand, missing float64) {
	f.AppendNullRow()
	i := f.Rows() - 1
	set := func(name string, v any) {
		if rnd.Float64() < missing {
			return
		}
		_ = f.SetCell(i, name, v)
	}
	set("Year", int64(2005+rnd.Intn(15)))
	set("Age", int64(rnd.Intn(101)))
	set("Ethnic", int64(1+rnd.Intn(6)))
	set("Sex", int64(1+rnd.Intn(3)))
	set("Area", int64(1+rnd.Intn(50)))
	set("count", int32(rnd.Intn(5000)))
}

// malformedRow emits either a short record or a non-numeric count.
func malformedRow(rnd *rand.Rand) []string {
	if rnd.Intn(2) == 0 {
		return []string{strconv.Itoa(2005 + rnd.Intn(15)), strconv.Itoa(rnd.Intn(101))}
	}
	return []string{
		strconv.Itoa(2005 + rnd.Intn(15)),
		strconv.Itoa(rnd.Intn(101)),
		strconv.Itoa(1 + rnd.Intn(6)),
		strconv.Itoa(1 + rnd.Intn(3)),
		strconv.Itoa(1 + rnd.Intn(50)),
		"..C",
	}
}
