package csvio

import (
	"path/filepath"
	"testing"

	"github.com/wdm0006/framebench/pkg/frame"
)

func chunk(t *testing.T, years []int64, counts []int32) *frame.Frame {
	t.Helper()
	f := frame.New(frame.Schema{Columns: []frame.ColumnSchema{
		{Name: "Year", Type: frame.KindInt, Nullable: true},
		{Name: "count", Type: frame.KindInt32, Nullable: true},
	}})
	for i := range years {
		f.AppendNullRow()
		if err := f.SetCell(i, "Year", years[i]); err != nil {
			t.Fatal(err)
		}
		if err := f.SetCell(i, "count", counts[i]); err != nil {
			t.Fatal(err)
		}
	}
	return f
}

func TestStreamWriterRoundTrip(t *testing.T) {
	p := filepath.Join(t.TempDir(), "out.csv")
	sw, err := NewStreamWriter(p, chunk(t, nil, nil).Schema(), WriterOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if err := sw.Write(chunk(t, []int64{2006, 2013}, []int32{100, 200})); err != nil {
		t.Fatal(err)
	}
	if err := sw.Write(chunk(t, []int64{2018}, []int32{300})); err != nil {
		t.Fatal(err)
	}
	if err := sw.Close(); err != nil {
		t.Fatal(err)
	}

	r, f, err := Open(p, ReaderOptions{
		HasHeader: true,
		Overrides: map[string]frame.Kind{"count": frame.KindInt32},
	})
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = f.Close() }()
	schema, _, err := r.InferSchema()
	if err != nil {
		t.Fatal(err)
	}
	fr, err := r.ReadAll(schema)
	if err != nil {
		t.Fatal(err)
	}
	if fr.Rows() != 3 {
		t.Fatalf("expected 3 rows across chunks, got %d", fr.Rows())
	}
	v, err := fr.Value(2, "count")
	if err != nil {
		t.Fatal(err)
	}
	if got, ok := v.(int32); !ok || got != 300 {
		t.Fatalf("expected count 300 on last row, got %v", v)
	}
}

func TestStreamWriterRawRecords(t *testing.T) {
	schema := chunk(t, nil, nil).Schema()
	p := filepath.Join(t.TempDir(), "dirty.csv")
	sw, err := NewStreamWriter(p, schema, WriterOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if err := sw.Write(chunk(t, []int64{2006}, []int32{100})); err != nil {
		t.Fatal(err)
	}
	if err := sw.WriteRaw([]string{"2013", "..C"}); err != nil {
		t.Fatal(err)
	}
	if err := sw.Close(); err != nil {
		t.Fatal(err)
	}

	r, f, err := Open(p, ReaderOptions{
		HasHeader:    true,
		IgnoreErrors: true,
		Overrides:    map[string]frame.Kind{"count": frame.KindInt32},
	})
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = f.Close() }()
	s, _, err := r.InferSchema()
	if err != nil {
		t.Fatal(err)
	}
	fr, err := r.ReadAll(s)
	if err != nil {
		t.Fatal(err)
	}
	if fr.Rows() != 1 || r.DroppedRows() != 1 {
		t.Fatalf("expected 1 kept and 1 dropped, got %d kept %d dropped", fr.Rows(), r.DroppedRows())
	}
}

func TestWriteAllGzip(t *testing.T) {
	p := filepath.Join(t.TempDir(), "out.csv.gz")
	if err := WriteAll(p, chunk(t, []int64{2006, 2013}, []int32{100, 200}), WriterOptions{}); err != nil {
		t.Fatal(err)
	}

	r, f, err := Open(p, ReaderOptions{HasHeader: true})
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = f.Close() }()
	schema, names, err := r.InferSchema()
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 2 {
		t.Fatalf("expected 2 columns back, got %v", names)
	}
	fr, err := r.ReadAll(schema)
	if err != nil {
		t.Fatal(err)
	}
	if fr.Rows() != 2 {
		t.Fatalf("expected 2 rows back, got %d", fr.Rows())
	}
}
