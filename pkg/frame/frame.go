package frame

import (
	"fmt"
	"time"
)

// Schema describes the logical shape of a dataset.
type Schema struct {
	Columns []ColumnSchema
}

type ColumnSchema struct {
	Name     string
	Type     Kind
	Nullable bool
}

// Has reports whether the schema contains a column with the given name.
func (s Schema) Has(name string) bool {
	for _, cs := range s.Columns {
		if cs.Name == name {
			return true
		}
	}
	return false
}

// Kind enumerates supported logical types.
type Kind int

const (
	KindInvalid Kind = iota
	KindBool
	KindInt32
	KindInt
	KindFloat
	KindString
	KindStringList
	KindTime
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt32:
		return "int32"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindStringList:
		return "list[string]"
	case KindTime:
		return "time"
	default:
		return "invalid"
	}
}

// Numeric reports whether the kind holds numeric values.
func (k Kind) Numeric() bool {
	return k == KindInt32 || k == KindInt || k == KindFloat
}

// Column is a typed, nullable column abstraction.
type Column interface {
	Name() string
	Kind() Kind
	Len() int
	IsNull(i int) bool
	SetNull(i int)
}

type BoolColumn struct {
	name  string
	data  []bool
	nulls []bool
}

func NewBoolColumn(name string, n int) *BoolColumn {
	return &BoolColumn{name: name, data: make([]bool, n), nulls: make([]bool, n)}
}
func (c *BoolColumn) Name() string           { return c.name }
func (c *BoolColumn) Kind() Kind             { return KindBool }
func (c *BoolColumn) Len() int               { return len(c.data) }
func (c *BoolColumn) IsNull(i int) bool      { return c.nulls[i] }
func (c *BoolColumn) SetNull(i int)          { c.nulls[i] = true }
func (c *BoolColumn) Get(i int) (bool, bool) { return c.data[i], !c.nulls[i] }
func (c *BoolColumn) Set(i int, v bool)      { c.data[i] = v; c.nulls[i] = false }
func (c *BoolColumn) AppendNull()            { c.data = append(c.data, false); c.nulls = append(c.nulls, true) }

type Int32Column struct {
	name  string
	data  []int32
	nulls []bool
}

func NewInt32Column(name string, n int) *Int32Column {
	return &Int32Column{name: name, data: make([]int32, n), nulls: make([]bool, n)}
}
func (c *Int32Column) Name() string            { return c.name }
func (c *Int32Column) Kind() Kind              { return KindInt32 }
func (c *Int32Column) Len() int                { return len(c.data) }
func (c *Int32Column) IsNull(i int) bool       { return c.nulls[i] }
func (c *Int32Column) SetNull(i int)           { c.nulls[i] = true }
func (c *Int32Column) Get(i int) (int32, bool) { return c.data[i], !c.nulls[i] }
func (c *Int32Column) Set(i int, v int32)      { c.data[i] = v; c.nulls[i] = false }
func (c *Int32Column) AppendNull()             { c.data = append(c.data, 0); c.nulls = append(c.nulls, true) }

type IntColumn struct {
	name  string
	data  []int64
	nulls []bool
}

func NewIntColumn(name string, n int) *IntColumn {
	return &IntColumn{name: name, data: make([]int64, n), nulls: make([]bool, n)}
}
func (c *IntColumn) Name() string            { return c.name }
func (c *IntColumn) Kind() Kind              { return KindInt }
func (c *IntColumn) Len() int                { return len(c.data) }
func (c *IntColumn) IsNull(i int) bool       { return c.nulls[i] }
func (c *IntColumn) SetNull(i int)           { c.nulls[i] = true }
func (c *IntColumn) Get(i int) (int64, bool) { return c.data[i], !c.nulls[i] }
func (c *IntColumn) Set(i int, v int64)      { c.data[i] = v; c.nulls[i] = false }
func (c *IntColumn) AppendNull()             { c.data = append(c.data, 0); c.nulls = append(c.nulls, true) }

type FloatColumn struct {
	name  string
	data  []float64
	nulls []bool
}

func NewFloatColumn(name string, n int) *FloatColumn {
	return &FloatColumn{name: name, data: make([]float64, n), nulls: make([]bool, n)}
}
func (c *FloatColumn) Name() string              { return c.name }
func (c *FloatColumn) Kind() Kind                { return KindFloat }
func (c *FloatColumn) Len() int                  { return len(c.data) }
func (c *FloatColumn) IsNull(i int) bool         { return c.nulls[i] }
func (c *FloatColumn) SetNull(i int)             { c.nulls[i] = true }
func (c *FloatColumn) Get(i int) (float64, bool) { return c.data[i], !c.nulls[i] }
func (c *FloatColumn) Set(i int, v float64)      { c.data[i] = v; c.nulls[i] = false }
func (c *FloatColumn) AppendNull()               { c.data = append(c.data, 0); c.nulls = append(c.nulls, true) }

type StringColumn struct {
	name  string
	data  []string
	nulls []bool
}

func NewStringColumn(name string, n int) *StringColumn {
	return &StringColumn{name: name, data: make([]string, n), nulls: make([]bool, n)}
}
func (c *StringColumn) Name() string             { return c.name }
func (c *StringColumn) Kind() Kind               { return KindString }
func (c *StringColumn) Len() int                 { return len(c.data) }
func (c *StringColumn) IsNull(i int) bool        { return c.nulls[i] }
func (c *StringColumn) SetNull(i int)            { c.nulls[i] = true }
func (c *StringColumn) Get(i int) (string, bool) { return c.data[i], !c.nulls[i] }
func (c *StringColumn) Set(i int, v string)      { c.data[i] = v; c.nulls[i] = false }
func (c *StringColumn) AppendNull()              { c.data = append(c.data, ""); c.nulls = append(c.nulls, true) }

// StringListColumn backs collect-style aggregates, one value list per row.
type StringListColumn struct {
	name  string
	data  [][]string
	nulls []bool
}

func NewStringListColumn(name string, n int) *StringListColumn {
	return &StringListColumn{name: name, data: make([][]string, n), nulls: make([]bool, n)}
}
func (c *StringListColumn) Name() string               { return c.name }
func (c *StringListColumn) Kind() Kind                 { return KindStringList }
func (c *StringListColumn) Len() int                   { return len(c.data) }
func (c *StringListColumn) IsNull(i int) bool          { return c.nulls[i] }
func (c *StringListColumn) SetNull(i int)              { c.nulls[i] = true }
func (c *StringListColumn) Get(i int) ([]string, bool) { return c.data[i], !c.nulls[i] }
func (c *StringListColumn) Set(i int, v []string)      { c.data[i] = v; c.nulls[i] = false }
func (c *StringListColumn) AppendNull() {
	c.data = append(c.data, nil)
	c.nulls = append(c.nulls, true)
}

type TimeColumn struct {
	name  string
	data  []time.Time
	nulls []bool
}

func NewTimeColumn(name string, n int) *TimeColumn {
	return &TimeColumn{name: name, data: make([]time.Time, n), nulls: make([]bool, n)}
}
func (c *TimeColumn) Name() string                { return c.name }
func (c *TimeColumn) Kind() Kind                  { return KindTime }
func (c *TimeColumn) Len() int                    { return len(c.data) }
func (c *TimeColumn) IsNull(i int) bool           { return c.nulls[i] }
func (c *TimeColumn) SetNull(i int)               { c.nulls[i] = true }
func (c *TimeColumn) Get(i int) (time.Time, bool) { return c.data[i], !c.nulls[i] }
func (c *TimeColumn) Set(i int, v time.Time)      { c.data[i] = v; c.nulls[i] = false }
func (c *TimeColumn) AppendNull() {
	c.data = append(c.data, time.Time{})
	c.nulls = append(c.nulls, true)
}

// Frame is a columnar container for tabular data. Operations in pkg/ops treat
// frames as immutable values and allocate new frames for their results.
type Frame struct {
	schema Schema
	cols   []Column
	index  map[string]int // name -> col index
	nrows  int
}

func New(s Schema) *Frame {
	f := &Frame{schema: s, cols: make([]Column, len(s.Columns)), index: make(map[string]int)}
	for i, cs := range s.Columns {
		f.cols[i] = newColumn(cs.Name, cs.Type)
		f.index[cs.Name] = i
	}
	return f
}

func newColumn(name string, k Kind) Column {
	switch k {
	case KindBool:
		return NewBoolColumn(name, 0)
	case KindInt32:
		return NewInt32Column(name, 0)
	case KindInt:
		return NewIntColumn(name, 0)
	case KindFloat:
		return NewFloatColumn(name, 0)
	case KindString:
		return NewStringColumn(name, 0)
	case KindStringList:
		return NewStringListColumn(name, 0)
	case KindTime:
		return NewTimeColumn(name, 0)
	default:
		panic("invalid column kind")
	}
}

func (f *Frame) Schema() Schema { return f.schema }
func (f *Frame) Rows() int      { return f.nrows }
func (f *Frame) Cols() int      { return len(f.cols) }

// Column returns the named column or a MissingColumnError.
func (f *Frame) Column(name string) (Column, error) {
	i, ok := f.index[name]
	if !ok {
		return nil, &MissingColumnError{Column: name}
	}
	return f.cols[i], nil
}

// Kind returns the declared kind of the named column.
func (f *Frame) Kind(name string) (Kind, error) {
	i, ok := f.index[name]
	if !ok {
		return KindInvalid, &MissingColumnError{Column: name}
	}
	return f.schema.Columns[i].Type, nil
}

// AppendNullRow appends a row with all-null values.
func (f *Frame) AppendNullRow() {
	for _, c := range f.cols {
		switch col := c.(type) {
		case *BoolColumn:
			col.AppendNull()
		case *Int32Column:
			col.AppendNull()
		case *IntColumn:
			col.AppendNull()
		case *FloatColumn:
			col.AppendNull()
		case *StringColumn:
			col.AppendNull()
		case *StringListColumn:
			col.AppendNull()
		case *TimeColumn:
			col.AppendNull()
		default:
			panic("unknown column type")
		}
	}
	f.nrows++
}

// Value returns the cell value at (row, name) as a Go value, or nil for a
// null cell. Int32 cells come back as int32, Int as int64.
func (f *Frame) Value(row int, name string) (any, error) {
	i, ok := f.index[name]
	if !ok {
		return nil, &MissingColumnError{Column: name}
	}
	c := f.cols[i]
	if c.IsNull(row) {
		return nil, nil
	}
	switch col := c.(type) {
	case *BoolColumn:
		v, _ := col.Get(row)
		return v, nil
	case *Int32Column:
		v, _ := col.Get(row)
		return v, nil
	case *IntColumn:
		v, _ := col.Get(row)
		return v, nil
	case *FloatColumn:
		v, _ := col.Get(row)
		return v, nil
	case *StringColumn:
		v, _ := col.Get(row)
		return v, nil
	case *StringListColumn:
		v, _ := col.Get(row)
		return v, nil
	case *TimeColumn:
		v, _ := col.Get(row)
		return v, nil
	default:
		return nil, fmt.Errorf("unknown column kind for %s", name)
	}
}

// SetCell sets a single cell value by name (row must exist). A nil value
// nulls the cell. Narrower numeric values widen to the column's kind.
func (f *Frame) SetCell(row int, name string, v any) error {
	i, ok := f.index[name]
	if !ok {
		return &MissingColumnError{Column: name}
	}
	c := f.cols[i]
	if v == nil {
		c.SetNull(row)
		return nil
	}
	switch col := c.(type) {
	case *BoolColumn:
		b, ok := v.(bool)
		if !ok {
			return fmt.Errorf("column %s expects bool, got %T", name, v)
		}
		col.Set(row, b)
	case *Int32Column:
		switch t := v.(type) {
		case int32:
			col.Set(row, t)
		case int:
			col.Set(row, int32(t))
		case int64:
			col.Set(row, int32(t))
		default:
			return fmt.Errorf("column %s expects int32, got %T", name, v)
		}
	case *IntColumn:
		switch t := v.(type) {
		case int:
			col.Set(row, int64(t))
		case int32:
			col.Set(row, int64(t))
		case int64:
			col.Set(row, t)
		default:
			return fmt.Errorf("column %s expects int, got %T", name, v)
		}
	case *FloatColumn:
		switch t := v.(type) {
		case float32:
			col.Set(row, float64(t))
		case float64:
			col.Set(row, t)
		case int:
			col.Set(row, float64(t))
		case int32:
			col.Set(row, float64(t))
		case int64:
			col.Set(row, float64(t))
		default:
			return fmt.Errorf("column %s expects float, got %T", name, v)
		}
	case *StringColumn:
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("column %s expects string, got %T", name, v)
		}
		col.Set(row, s)
	case *StringListColumn:
		l, ok := v.([]string)
		if !ok {
			return fmt.Errorf("column %s expects []string, got %T", name, v)
		}
		col.Set(row, l)
	case *TimeColumn:
		t, ok := v.(time.Time)
		if !ok {
			return fmt.Errorf("column %s expects time.Time, got %T", name, v)
		}
		col.Set(row, t)
	default:
		return fmt.Errorf("unknown column kind for %s", name)
	}
	return nil
}

// CopyRow appends the row at srcRow of src onto f for every column name f
// declares. Column kinds must be settable per SetCell's widening rules.
func (f *Frame) CopyRow(src *Frame, srcRow int) error {
	f.AppendNullRow()
	row := f.nrows - 1
	for _, cs := range f.schema.Columns {
		v, err := src.Value(srcRow, cs.Name)
		if err != nil {
			return err
		}
		if v == nil {
			continue
		}
		if err := f.SetCell(row, cs.Name, v); err != nil {
			return err
		}
	}
	return nil
}
