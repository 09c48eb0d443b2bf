// Package profile computes per-column summary statistics for a frame, the
// console analog of a dataframe glimpse.
package profile

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/wdm0006/framebench/pkg/frame"
)

type NumStats struct {
	Count int     `json:"count"`
	Nulls int     `json:"nulls"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Sum   float64 `json:"sum"`
}

func (s *NumStats) Mean() float64 {
	if s.Count == 0 {
		return 0
	}
	return s.Sum / float64(s.Count)
}

type BoolStats struct {
	Count int `json:"count"`
	Nulls int `json:"nulls"`
	True  int `json:"true"`
	False int `json:"false"`
}

type StringStats struct {
	Count int            `json:"count"`
	Nulls int            `json:"nulls"`
	Freqs map[string]int `json:"top,omitempty"`
}

type ColumnProfile struct {
	Name string       `json:"name"`
	Kind string       `json:"kind"`
	Num  *NumStats    `json:"num,omitempty"`
	Bool *BoolStats   `json:"bool,omitempty"`
	Str  *StringStats `json:"str,omitempty"`
}

// Profile is the per-column statistics of one frame.
type Profile struct {
	Rows    int             `json:"rows"`
	Columns []ColumnProfile `json:"columns"`
	topK    int
}

// Glimpse scans every column of f once. topK limits how many distinct string
// frequencies the text report shows (0 disables frequency tracking).
func Glimpse(f *frame.Frame, topK int) (*Profile, error) {
	p := &Profile{Rows: f.Rows(), topK: topK}
	for _, cs := range f.Schema().Columns {
		cp := ColumnProfile{Name: cs.Name, Kind: cs.Type.String()}
		col, err := f.Column(cs.Name)
		if err != nil {
			return nil, err
		}
		switch cs.Type {
		case frame.KindInt32, frame.KindInt, frame.KindFloat:
			cp.Num = scanNumeric(f, cs.Name, col)
		case frame.KindBool:
			cp.Bool = scanBool(col.(*frame.BoolColumn))
		default:
			cp.Str = scanString(f, cs.Name, col, topK)
		}
		p.Columns = append(p.Columns, cp)
	}
	return p, nil
}

func scanNumeric(f *frame.Frame, name string, col frame.Column) *NumStats {
	st := &NumStats{Min: math.Inf(1), Max: math.Inf(-1)}
	for i := 0; i < col.Len(); i++ {
		if col.IsNull(i) {
			st.Nulls++
			continue
		}
		v, _ := f.Value(i, name)
		var x float64
		switch t := v.(type) {
		case int32:
			x = float64(t)
		case int64:
			x = float64(t)
		case float64:
			x = t
		}
		st.Count++
		if x < st.Min {
			st.Min = x
		}
		if x > st.Max {
			st.Max = x
		}
		st.Sum += x
	}
	return st
}

func scanBool(col *frame.BoolColumn) *BoolStats {
	st := &BoolStats{}
	for i := 0; i < col.Len(); i++ {
		if col.IsNull(i) {
			st.Nulls++
			continue
		}
		v, _ := col.Get(i)
		st.Count++
		if v {
			st.True++
		} else {
			st.False++
		}
	}
	return st
}

func scanString(f *frame.Frame, name string, col frame.Column, topK int) *StringStats {
	st := &StringStats{}
	if topK > 0 {
		st.Freqs = make(map[string]int)
	}
	for i := 0; i < col.Len(); i++ {
		if col.IsNull(i) {
			st.Nulls++
			continue
		}
		st.Count++
		if topK <= 0 {
			continue
		}
		v, _ := f.Value(i, name)
		switch t := v.(type) {
		case string:
			st.Freqs[t]++
		case []string:
			st.Freqs[strings.Join(t, "|")]++
		default:
			st.Freqs[fmt.Sprintf("%v", t)]++
		}
	}
	return st
}

// JSON renders the profile as an indented JSON document.
func (p *Profile) JSON() ([]byte, error) {
	return json.MarshalIndent(p, "", "  ")
}

// Text renders the profile in the glimpse format.
func (p *Profile) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Glimpse: %d rows, %d columns\n", p.Rows, len(p.Columns))
	for _, cp := range p.Columns {
		fmt.Fprintf(&b, "- %s (%s): ", cp.Name, cp.Kind)
		switch {
		case cp.Num != nil:
			fmt.Fprintf(&b, "count=%d nulls=%d min=%.6g max=%.6g mean=%.6g\n",
				cp.Num.Count, cp.Num.Nulls, cp.Num.Min, cp.Num.Max, cp.Num.Mean())
		case cp.Bool != nil:
			fmt.Fprintf(&b, "count=%d nulls=%d true=%d false=%d\n",
				cp.Bool.Count, cp.Bool.Nulls, cp.Bool.True, cp.Bool.False)
		default:
			fmt.Fprintf(&b, "count=%d nulls=%d\n", cp.Str.Count, cp.Str.Nulls)
			if len(cp.Str.Freqs) > 0 {
				type kv struct {
					k string
					v int
				}
				arr := make([]kv, 0, len(cp.Str.Freqs))
				for k, v := range cp.Str.Freqs {
					arr = append(arr, kv{k, v})
				}
				sort.Slice(arr, func(i, j int) bool {
					if arr[i].v != arr[j].v {
						return arr[i].v > arr[j].v
					}
					return arr[i].k < arr[j].k
				})
				n := p.topK
				if n > len(arr) {
					n = len(arr)
				}
				for i := 0; i < n; i++ {
					fmt.Fprintf(&b, "    %q: %d\n", arr[i].k, arr[i].v)
				}
			}
		}
	}
	return b.String()
}
