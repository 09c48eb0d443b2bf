package ops

import (
	"context"
	"sort"
	"strings"

	"github.com/wdm0006/framebench/pkg/frame"
)

// SortKey names one sort column and its direction.
type SortKey struct {
	Column string
	Desc   bool
}

// Sort reorders rows by the keys in priority order. The sort is stable and
// rows with null key values order last regardless of direction.
type Sort struct {
	Keys []SortKey
}

func (op *Sort) Name() string {
	names := make([]string, len(op.Keys))
	for i, k := range op.Keys {
		names[i] = k.Column
		if k.Desc {
			names[i] += " desc"
		}
	}
	return "sort by " + strings.Join(names, ", ")
}

func (op *Sort) Apply(ctx context.Context, f *frame.Frame) (*frame.Frame, error) {
	for _, k := range op.Keys {
		if !f.Schema().Has(k.Column) {
			return nil, &frame.MissingColumnError{Column: k.Column}
		}
	}

	perm := make([]int, f.Rows())
	for i := range perm {
		perm[i] = i
	}
	var sortErr error
	sort.SliceStable(perm, func(i, j int) bool {
		for _, k := range op.Keys {
			a, err := f.Value(perm[i], k.Column)
			if err != nil {
				sortErr = err
				return false
			}
			b, err := f.Value(perm[j], k.Column)
			if err != nil {
				sortErr = err
				return false
			}
			// nulls last in either direction
			if a == nil || b == nil {
				if a == nil && b == nil {
					continue
				}
				return b == nil
			}
			cmp, ok := compare(a, b)
			if !ok || cmp == 0 {
				continue
			}
			if k.Desc {
				return cmp > 0
			}
			return cmp < 0
		}
		return false
	})
	if sortErr != nil {
		return nil, sortErr
	}

	out := frame.New(f.Schema())
	for _, r := range perm {
		if err := out.CopyRow(f, r); err != nil {
			return nil, err
		}
	}
	return out, nil
}
