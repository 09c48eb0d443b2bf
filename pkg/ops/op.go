// Package ops implements relational operations over frames: projection,
// derived columns, filtering, sorting, grouped aggregation, join, and
// concatenation. Each operation is a pure function from input frame(s) to a
// new output frame; inputs are never mutated.
package ops

import (
	"context"
	"strconv"
	"time"

	"github.com/wdm0006/framebench/pkg/frame"
)

// Op is a single relational operation applied to a frame.
type Op interface {
	Name() string
	Apply(ctx context.Context, f *frame.Frame) (*frame.Frame, error)
}

// toFloat coerces any numeric cell value to float64.
func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case float64:
		return t, true
	default:
		return 0, false
	}
}

// compare orders two non-nil cell values of compatible kinds.
// Returns -1, 0, or 1; ok is false when the values are not comparable.
func compare(a, b any) (int, bool) {
	if fa, ok := toFloat(a); ok {
		fb, ok := toFloat(b)
		if !ok {
			return 0, false
		}
		switch {
		case fa < fb:
			return -1, true
		case fa > fb:
			return 1, true
		default:
			return 0, true
		}
	}
	switch ta := a.(type) {
	case string:
		tb, ok := b.(string)
		if !ok {
			return 0, false
		}
		switch {
		case ta < tb:
			return -1, true
		case ta > tb:
			return 1, true
		default:
			return 0, true
		}
	case bool:
		tb, ok := b.(bool)
		if !ok {
			return 0, false
		}
		switch {
		case ta == tb:
			return 0, true
		case !ta:
			return -1, true
		default:
			return 1, true
		}
	case time.Time:
		tb, ok := b.(time.Time)
		if !ok {
			return 0, false
		}
		switch {
		case ta.Before(tb):
			return -1, true
		case ta.After(tb):
			return 1, true
		default:
			return 0, true
		}
	}
	return 0, false
}

// formatValue renders a cell value for group keys and collect aggregates.
func formatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case bool:
		return strconv.FormatBool(t)
	case int32:
		return strconv.FormatInt(int64(t), 10)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case string:
		return t
	case time.Time:
		return t.Format(time.RFC3339)
	default:
		return ""
	}
}

// kindOf maps a literal value to its column kind, used when deriving columns.
func kindOf(v any) frame.Kind {
	switch v.(type) {
	case bool:
		return frame.KindBool
	case int32:
		return frame.KindInt32
	case int, int64:
		return frame.KindInt
	case float64:
		return frame.KindFloat
	case string:
		return frame.KindString
	case []string:
		return frame.KindStringList
	case time.Time:
		return frame.KindTime
	default:
		return frame.KindInvalid
	}
}
