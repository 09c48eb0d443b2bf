// Package render prints console previews of frames.
package render

import (
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/wdm0006/framebench/pkg/frame"
)

// Head writes the first n rows of f to w as an ASCII table, header included.
func Head(w io.Writer, f *frame.Frame, n int) {
	if n > f.Rows() {
		n = f.Rows()
	}
	hdr := make([]string, len(f.Schema().Columns))
	for i, cs := range f.Schema().Columns {
		hdr[i] = cs.Name
	}
	t := tablewriter.NewWriter(w)
	t.SetHeader(hdr)
	t.SetAutoFormatHeaders(false)
	for r := 0; r < n; r++ {
		row := make([]string, len(hdr))
		for c, cs := range f.Schema().Columns {
			row[c] = cell(f, r, cs.Name)
		}
		t.Append(row)
	}
	t.SetFooter(footer(f, len(hdr)))
	t.Render()
}

func cell(f *frame.Frame, row int, name string) string {
	v, err := f.Value(row, name)
	if err != nil || v == nil {
		return "null"
	}
	switch t := v.(type) {
	case string:
		return t
	case []string:
		return "[" + strings.Join(t, ", ") + "]"
	case int32:
		return strconv.FormatInt(int64(t), 10)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case time.Time:
		return t.Format("2006-01-02")
	default:
		return "?"
	}
}

func footer(f *frame.Frame, ncols int) []string {
	ft := make([]string, ncols)
	if ncols > 0 {
		ft[0] = strconv.Itoa(f.Rows()) + " rows"
	}
	return ft
}
