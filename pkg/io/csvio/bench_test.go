package csvio

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wdm0006/framebench/pkg/frame"
)

func BenchmarkReadCensus(b *testing.B) {
	var sb strings.Builder
	sb.WriteString("Year,Age,Ethnic,Sex,Area,count\n")
	for i := 0; i < 10000; i++ {
		fmt.Fprintf(&sb, "%d,%d,%d,%d,%02d,%d\n", 2006+i%14, i%90, 1+i%6, 1+i%2, i%20, 100+i)
	}
	p := filepath.Join(b.TempDir(), "census.csv")
	if err := os.WriteFile(p, []byte(sb.String()), 0o644); err != nil {
		b.Fatal(err)
	}
	opt := ReaderOptions{
		HasHeader:    true,
		IgnoreErrors: true,
		Overrides:    map[string]frame.Kind{"count": frame.KindInt32},
	}
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		r, f, err := Open(p, opt)
		if err != nil {
			b.Fatal(err)
		}
		schema, _, err := r.InferSchema()
		if err != nil {
			b.Fatal(err)
		}
		fr, err := r.ReadAll(schema)
		if err != nil {
			b.Fatal(err)
		}
		if fr.Rows() == 0 {
			b.Fatal("no rows")
		}
		_ = f.Close()
	}
}
