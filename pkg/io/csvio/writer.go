package csvio

import (
	"encoding/csv"
	"strconv"
	"strings"

	"github.com/wdm0006/framebench/pkg/frame"
	iox "github.com/wdm0006/framebench/pkg/io/ioutils"
)

type WriterOptions struct {
	Delimiter rune // default ','
}

// WriteAll writes a Frame to a CSV file with a header row.
func WriteAll(path string, f *frame.Frame, opt WriterOptions) error {
	out, err := iox.CreateMaybeCompressed(path)
	if err != nil {
		return err
	}
	defer func() { _ = out.Close() }()
	w := csv.NewWriter(out)
	if opt.Delimiter != 0 {
		w.Comma = opt.Delimiter
	}
	if err := w.Write(header(f.Schema())); err != nil {
		return err
	}
	for r := 0; r < f.Rows(); r++ {
		if err := w.Write(formatRow(f, r)); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func header(s frame.Schema) []string {
	hdr := make([]string, len(s.Columns))
	for i, cs := range s.Columns {
		hdr[i] = cs.Name
	}
	return hdr
}

func formatRow(f *frame.Frame, r int) []string {
	cols := f.Schema().Columns
	row := make([]string, len(cols))
	for c, cs := range cols {
		col, err := f.Column(cs.Name)
		if err != nil || col.IsNull(r) {
			continue
		}
		switch cs.Type {
		case frame.KindFloat:
			v, _ := col.(*frame.FloatColumn).Get(r)
			row[c] = strconv.FormatFloat(v, 'g', -1, 64)
		case frame.KindInt32:
			v, _ := col.(*frame.Int32Column).Get(r)
			row[c] = strconv.FormatInt(int64(v), 10)
		case frame.KindInt:
			v, _ := col.(*frame.IntColumn).Get(r)
			row[c] = strconv.FormatInt(v, 10)
		case frame.KindBool:
			v, _ := col.(*frame.BoolColumn).Get(r)
			row[c] = strconv.FormatBool(v)
		case frame.KindString:
			v, _ := col.(*frame.StringColumn).Get(r)
			row[c] = v
		case frame.KindStringList:
			v, _ := col.(*frame.StringListColumn).Get(r)
			row[c] = strings.Join(v, "|")
		case frame.KindTime:
			v, _ := col.(*frame.TimeColumn).Get(r)
			row[c] = v.Format("2006-01-02T15:04:05Z07:00")
		}
	}
	return row
}
