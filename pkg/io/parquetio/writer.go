// Package parquetio exports frames as Parquet files, used by the benchmark
// CLI to snapshot result datasets.
package parquetio

import (
	"encoding/json"
	"fmt"
	"strings"

	local "github.com/xitongsys/parquet-go-source/local"
	pw "github.com/xitongsys/parquet-go/writer"

	"github.com/wdm0006/framebench/pkg/frame"
)

func parquetSchemaJSON(s frame.Schema) string {
	type field struct {
		Tag string `json:"Tag"`
	}
	type schema struct {
		Tag    string  `json:"Tag"`
		Fields []field `json:"Fields"`
	}
	sc := schema{Tag: "name=schema, repetitiontype=REQUIRED"}
	for _, cs := range s.Columns {
		tag := "name=" + cs.Name + ", repetitiontype=OPTIONAL, type="
		switch cs.Type {
		case frame.KindFloat:
			tag += "DOUBLE"
		case frame.KindInt32:
			tag += "INT32"
		case frame.KindInt:
			tag += "INT64"
		case frame.KindBool:
			tag += "BOOLEAN"
		default:
			tag += "BYTE_ARRAY, convertedtype=UTF8"
		}
		sc.Fields = append(sc.Fields, field{Tag: tag})
	}
	b, _ := json.Marshal(sc)
	return string(b)
}

// WriteAll writes a Frame to a Parquet file. String lists flatten to a
// pipe-joined string; times use RFC 3339.
func WriteAll(path string, f *frame.Frame) error {
	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return err
	}
	writer, err := pw.NewJSONWriter(parquetSchemaJSON(f.Schema()), fw, 4)
	if err != nil {
		_ = fw.Close()
		return fmt.Errorf("parquet writer init: %w", err)
	}
	defer func() { _ = writer.WriteStop(); _ = fw.Close() }()
	for r := 0; r < f.Rows(); r++ {
		rec := make(map[string]any, len(f.Schema().Columns))
		for _, cs := range f.Schema().Columns {
			col, err := f.Column(cs.Name)
			if err != nil {
				return err
			}
			if col.IsNull(r) {
				continue
			}
			switch cs.Type {
			case frame.KindFloat:
				v, _ := col.(*frame.FloatColumn).Get(r)
				rec[cs.Name] = v
			case frame.KindInt32:
				v, _ := col.(*frame.Int32Column).Get(r)
				rec[cs.Name] = v
			case frame.KindInt:
				v, _ := col.(*frame.IntColumn).Get(r)
				rec[cs.Name] = v
			case frame.KindBool:
				v, _ := col.(*frame.BoolColumn).Get(r)
				rec[cs.Name] = v
			case frame.KindString:
				v, _ := col.(*frame.StringColumn).Get(r)
				rec[cs.Name] = v
			case frame.KindStringList:
				v, _ := col.(*frame.StringListColumn).Get(r)
				rec[cs.Name] = strings.Join(v, "|")
			case frame.KindTime:
				v, _ := col.(*frame.TimeColumn).Get(r)
				rec[cs.Name] = v.Format("2006-01-02T15:04:05Z07:00")
			}
		}
		b, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("parquet write row: %w", err)
		}
		if err := writer.Write(string(b)); err != nil {
			return fmt.Errorf("parquet write row: %w", err)
		}
	}
	return nil
}
