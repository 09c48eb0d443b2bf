// Package golearn converts between framebench frames and
// github.com/sjwhitworth/golearn/base DenseInstances, so benchmark datasets
// can feed downstream ML experiments.
package golearn

import (
	"strings"

	"github.com/sjwhitworth/golearn/base"

	"github.com/wdm0006/framebench/pkg/frame"
)

// ToDenseInstances converts a Frame into golearn DenseInstances. Numeric
// columns map to float attributes, everything else to categorical; the last
// attribute becomes the class attribute.
func ToDenseInstances(f *frame.Frame) (*base.DenseInstances, error) {
	attrs := make([]base.Attribute, len(f.Schema().Columns))
	for i, cs := range f.Schema().Columns {
		switch cs.Type {
		case frame.KindInt32, frame.KindInt, frame.KindFloat:
			attrs[i] = base.NewFloatAttribute(cs.Name)
		default:
			ca := new(base.CategoricalAttribute)
			ca.SetName(cs.Name)
			attrs[i] = ca
		}
	}
	inst := base.NewDenseInstances()
	specs := make([]base.AttributeSpec, len(attrs))
	for i, a := range attrs {
		specs[i] = inst.AddAttribute(a)
	}
	if err := inst.Extend(f.Rows()); err != nil {
		return nil, err
	}

	for r := 0; r < f.Rows(); r++ {
		for c, cs := range f.Schema().Columns {
			v, err := f.Value(r, cs.Name)
			if err != nil {
				return nil, err
			}
			if v == nil {
				continue
			}
			switch t := v.(type) {
			case int32:
				inst.Set(specs[c], r, base.PackFloatToBytes(float64(t)))
			case int64:
				inst.Set(specs[c], r, base.PackFloatToBytes(float64(t)))
			case float64:
				inst.Set(specs[c], r, base.PackFloatToBytes(t))
			case string:
				inst.Set(specs[c], r, base.Attribute.GetSysValFromString(attrs[c], t))
			case []string:
				inst.Set(specs[c], r, base.Attribute.GetSysValFromString(attrs[c], strings.Join(t, "|")))
			default:
				// bools and times render through the categorical attribute
				inst.Set(specs[c], r, base.Attribute.GetSysValFromString(attrs[c], cellString(f, r, cs.Name)))
			}
		}
	}
	if len(attrs) > 0 {
		if err := inst.AddClassAttribute(attrs[len(attrs)-1]); err != nil {
			return nil, err
		}
	}
	return inst, nil
}

func cellString(f *frame.Frame, r int, name string) string {
	col, err := f.Column(name)
	if err != nil {
		return ""
	}
	switch c := col.(type) {
	case *frame.BoolColumn:
		v, _ := c.Get(r)
		if v {
			return "true"
		}
		return "false"
	case *frame.TimeColumn:
		v, _ := c.Get(r)
		return v.Format("2006-01-02T15:04:05Z07:00")
	default:
		return ""
	}
}

// FromDenseInstances converts golearn DenseInstances into a Frame. Float
// attributes become float columns, categorical attributes string columns.
func FromDenseInstances(inst *base.DenseInstances) (*frame.Frame, error) {
	attrs := inst.AllAttributes()
	schema := frame.Schema{Columns: make([]frame.ColumnSchema, len(attrs))}
	specs := make([]base.AttributeSpec, len(attrs))
	for i, a := range attrs {
		k := frame.KindString
		if a.GetType() == 1 { // float in golearn
			k = frame.KindFloat
		}
		schema.Columns[i] = frame.ColumnSchema{Name: a.GetName(), Type: k, Nullable: true}
		spec, err := inst.GetAttribute(a)
		if err != nil {
			return nil, err
		}
		specs[i] = spec
	}
	f := frame.New(schema)
	_, nrows := inst.Size()
	for r := 0; r < nrows; r++ {
		f.AppendNullRow()
		for c, cs := range schema.Columns {
			switch cs.Type {
			case frame.KindFloat:
				v := base.UnpackBytesToFloat(inst.Get(specs[c], r))
				if err := f.SetCell(r, cs.Name, v); err != nil {
					return nil, err
				}
			default:
				v := base.Attribute.GetStringFromSysVal(specs[c].GetAttribute(), inst.Get(specs[c], r))
				if err := f.SetCell(r, cs.Name, v); err != nil {
					return nil, err
				}
			}
		}
	}
	return f, nil
}
