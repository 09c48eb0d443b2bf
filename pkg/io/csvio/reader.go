package csvio

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/wdm0006/framebench/pkg/frame"
	iox "github.com/wdm0006/framebench/pkg/io/ioutils"
)

// dateLayouts are tried in order when TryParseDates is on.
var dateLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
}

type ReaderOptions struct {
	HasHeader     bool
	Delimiter     rune // 0 = sniff, default ','
	SampleRows    int  // for inference; default 100
	TryParseDates bool // attempt date detection during inference
	// Overrides declares column kinds explicitly; they take precedence over
	// inference and their columns are decoded strictly.
	Overrides map[string]frame.Kind
	// IgnoreErrors drops malformed rows instead of failing with a ParseError.
	IgnoreErrors bool
}

type Reader struct {
	r   *csv.Reader
	opt ReaderOptions
	buf [][]string
	row int // physical rows consumed so far, header included

	droppedRows int
}

// Open opens a CSV file (gzip-transparently) and returns a Reader.
func Open(path string, opt ReaderOptions) (*Reader, io.Closer, error) {
	rc, err := iox.OpenMaybeCompressed(path)
	if err != nil {
		return nil, nil, err
	}
	rr := csv.NewReader(rc)
	rr.FieldsPerRecord = -1
	if opt.Delimiter == 0 {
		if d, lazy, err := sniffDelimiterAndQuotes(path); err == nil && d != 0 {
			rr.Comma = d
			rr.LazyQuotes = lazy
		}
	} else {
		rr.Comma = opt.Delimiter
	}
	return &Reader{r: rr, opt: opt}, rc, nil
}

// NewReaderFrom constructs a Reader from an arbitrary io.Reader (stdin, pipe).
func NewReaderFrom(r io.Reader, opt ReaderOptions) *Reader {
	rr := csv.NewReader(r)
	rr.FieldsPerRecord = -1
	if opt.Delimiter != 0 {
		rr.Comma = opt.Delimiter
	}
	return &Reader{r: rr, opt: opt}
}

// InferSchema reads the header (if present) and samples rows to determine
// column kinds. Declared overrides replace the inferred kind for their
// columns; an override naming a column the file does not have fails with a
// MissingColumnError.
func (r *Reader) InferSchema() (frame.Schema, []string, error) {
	var names []string
	rec, err := r.read()
	if err != nil {
		return frame.Schema{}, nil, err
	}
	if r.opt.HasHeader {
		names = make([]string, len(rec))
		for i := range rec {
			names[i] = strings.ToValidUTF8(rec[i], "?")
		}
		if len(names) > 0 {
			names[0] = strings.TrimPrefix(names[0], "\uFEFF")
		}
		rec, err = r.read()
		if err != nil {
			return frame.Schema{}, nil, err
		}
	} else {
		names = make([]string, len(rec))
		for i := range names {
			names[i] = "col_" + strconv.Itoa(i)
		}
	}

	sample := [][]string{rec}
	max := r.opt.SampleRows
	if max <= 0 {
		max = 100
	}
	for i := 1; i < max; i++ {
		rr, err := r.read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return frame.Schema{}, nil, err
		}
		sample = append(sample, rr)
	}

	kinds := inferKinds(sample, len(names), r.opt.TryParseDates)
	byName := make(map[string]int, len(names))
	for i, n := range names {
		byName[n] = i
	}
	for name, k := range r.opt.Overrides {
		i, ok := byName[name]
		if !ok {
			return frame.Schema{}, nil, &frame.MissingColumnError{Column: name}
		}
		kinds[i] = k
	}

	schema := frame.Schema{Columns: make([]frame.ColumnSchema, len(names))}
	for i := range names {
		schema.Columns[i] = frame.ColumnSchema{Name: names[i], Type: kinds[i], Nullable: true}
	}
	// retain sampled rows for the subsequent ReadAll
	r.buf = append(r.buf, sample...)
	return schema, names, nil
}

func (r *Reader) read() ([]string, error) {
	rec, err := r.r.Read()
	if err != nil {
		return nil, err
	}
	r.row++
	out := make([]string, len(rec))
	copy(out, rec)
	return out, nil
}

// ReadAll loads the remaining rows into a Frame. Rows with the wrong field
// count, or with a cell that fails to decode under an overridden kind, are
// dropped when IgnoreErrors is set and fail with a ParseError otherwise.
// Cells failing under a merely inferred kind become nulls.
func (r *Reader) ReadAll(schema frame.Schema) (*frame.Frame, error) {
	f := frame.New(schema)
	row := r.row - len(r.buf)
	for len(r.buf) > 0 {
		rec := r.buf[0]
		r.buf = r.buf[1:]
		row++
		if err := r.appendRecord(f, schema, rec, row); err != nil {
			return nil, err
		}
	}
	for {
		rec, err := r.read()
		if err == io.EOF {
			break
		}
		if err != nil {
			if r.opt.IgnoreErrors {
				r.droppedRows++
				continue
			}
			return nil, &frame.ParseError{Row: r.row + 1, Err: err}
		}
		if err := r.appendRecord(f, schema, rec, r.row); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func (r *Reader) appendRecord(f *frame.Frame, schema frame.Schema, rec []string, row int) error {
	if len(rec) != len(schema.Columns) {
		if r.opt.IgnoreErrors {
			r.droppedRows++
			return nil
		}
		return &frame.ParseError{
			Row: row,
			Err: fmt.Errorf("need %d fields, got %d", len(schema.Columns), len(rec)),
		}
	}
	vals := make([]any, len(schema.Columns))
	for i, cs := range schema.Columns {
		raw := strings.ToValidUTF8(strings.TrimSpace(rec[i]), "?")
		if raw == "" {
			continue
		}
		v, err := decodeCell(raw, cs.Type)
		if err != nil {
			if _, declared := r.opt.Overrides[cs.Name]; !declared {
				continue // inferred kind: lenient, leave the cell null
			}
			if r.opt.IgnoreErrors {
				r.droppedRows++
				return nil
			}
			return &frame.ParseError{Row: row, Column: cs.Name, Value: raw, Err: err}
		}
		vals[i] = v
	}
	f.AppendNullRow()
	out := f.Rows() - 1
	for i, cs := range schema.Columns {
		if vals[i] == nil {
			continue
		}
		if err := f.SetCell(out, cs.Name, vals[i]); err != nil {
			return err
		}
	}
	return nil
}

func decodeCell(raw string, k frame.Kind) (any, error) {
	switch k {
	case frame.KindFloat:
		return strconv.ParseFloat(raw, 64)
	case frame.KindInt32:
		x, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			return nil, err
		}
		return int32(x), nil
	case frame.KindInt:
		return strconv.ParseInt(raw, 10, 64)
	case frame.KindBool:
		return strconv.ParseBool(strings.ToLower(raw))
	case frame.KindTime:
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, raw); err == nil {
				return t, nil
			}
		}
		return nil, fmt.Errorf("unrecognized date %q", raw)
	default:
		return raw, nil
	}
}

// inferKinds samples rows to guess each column's kind, preferring float over
// int when values are mixed and falling back to string.
func inferKinds(rows [][]string, ncol int, dates bool) []frame.Kind {
	kinds := make([]frame.Kind, ncol)
	numre := regexp.MustCompile(`^[-+]?[0-9]*\.?[0-9]+([eE][-+]?[0-9]+)?$`)
	for c := 0; c < ncol; c++ {
		num, integer, str, dt := 0, 0, 0, 0
		for _, row := range rows {
			if c >= len(row) {
				continue
			}
			v := strings.TrimSpace(row[c])
			if v == "" {
				continue
			}
			if numre.MatchString(v) {
				num++
				if !strings.ContainsAny(v, ".eE") {
					integer++
				}
				continue
			}
			lv := strings.ToLower(v)
			if lv == "true" || lv == "false" {
				continue
			}
			if dates && looksLikeDate(v) {
				dt++
				continue
			}
			str++
		}
		switch {
		case dt > 0 && dt >= str && num == 0:
			kinds[c] = frame.KindTime
		case num > str:
			if integer == num {
				kinds[c] = frame.KindInt
			} else {
				kinds[c] = frame.KindFloat
			}
		default:
			kinds[c] = frame.KindString
		}
	}
	return kinds
}

func looksLikeDate(v string) bool {
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, v); err == nil {
			return true
		}
	}
	return false
}

func sniffDelimiterAndQuotes(path string) (rune, bool, error) {
	rc, err := iox.OpenMaybeCompressed(path)
	if err != nil {
		return 0, false, err
	}
	defer func() { _ = rc.Close() }()
	br := bufio.NewReader(rc)
	sample, _ := br.Peek(4096)
	if len(sample) == 0 {
		return ',', false, nil
	}
	candidates := []byte{',', '\t', ';', '|'}
	best := byte(',')
	bestCount := -1
	for _, c := range candidates {
		cnt := 0
		for _, b := range sample {
			if b == c {
				cnt++
			}
		}
		if cnt > bestCount {
			bestCount = cnt
			best = c
		}
	}
	quoteCount := 0
	for _, b := range sample {
		if b == '"' {
			quoteCount++
		}
	}
	return rune(best), quoteCount%2 != 0, nil
}

// DroppedRows reports how many malformed rows were skipped under IgnoreErrors.
func (r *Reader) DroppedRows() int { return r.droppedRows }
