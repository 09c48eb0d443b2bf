package csvio

import (
	"encoding/csv"
	"io"

	"github.com/wdm0006/framebench/pkg/frame"
	iox "github.com/wdm0006/framebench/pkg/io/ioutils"
)

// StreamWriter appends frame chunks to a CSV file with a header written once.
// cmd/genframes uses it to emit large synthetic datasets without holding
// them in memory.
type StreamWriter struct {
	w           *csv.Writer
	out         io.WriteCloser
	wroteHeader bool
	schema      frame.Schema
}

func NewStreamWriter(path string, schema frame.Schema, opt WriterOptions) (*StreamWriter, error) {
	out, err := iox.CreateMaybeCompressed(path)
	if err != nil {
		return nil, err
	}
	w := csv.NewWriter(out)
	if opt.Delimiter != 0 {
		w.Comma = opt.Delimiter
	}
	return &StreamWriter{w: w, out: out, schema: schema}, nil
}

func (s *StreamWriter) Write(fr *frame.Frame) error {
	if !s.wroteHeader {
		if err := s.w.Write(header(s.schema)); err != nil {
			return err
		}
		s.wroteHeader = true
	}
	for r := 0; r < fr.Rows(); r++ {
		if err := s.w.Write(formatRow(fr, r)); err != nil {
			return err
		}
	}
	s.w.Flush()
	return s.w.Error()
}

// WriteRaw appends a pre-formatted record, bypassing frame formatting. The
// generator uses it to plant deliberately malformed rows.
func (s *StreamWriter) WriteRaw(rec []string) error {
	if !s.wroteHeader {
		if err := s.w.Write(header(s.schema)); err != nil {
			return err
		}
		s.wroteHeader = true
	}
	return s.w.Write(rec)
}

func (s *StreamWriter) Close() error {
	s.w.Flush()
	if err := s.w.Error(); err != nil {
		_ = s.out.Close()
		return err
	}
	return s.out.Close()
}
