package mesh

import (
	"fmt"
)

// Field is a named array attached to points or cells, stored as consecutive
// tuples of NumComponents values
type Field struct {
	Name          string
	NumComponents int
	Data          []float64
}

func NewField(name string, numComponents, numTuples int) Field {
	return Field{
		Name:          name,
		NumComponents: numComponents,
		Data:          make([]float64, numComponents*numTuples),
	}
}

func (f Field) NumTuples() int {
	if f.NumComponents == 0 {
		return 0
	}
	return len(f.Data) / f.NumComponents
}

// Tuple returns a view of the i-th tuple
func (f Field) Tuple(i int) []float64 {
	return f.Data[i*f.NumComponents : (i+1)*f.NumComponents]
}

func (f Field) check(numTuples int) error {
	if f.NumComponents < 1 {
		return fmt.Errorf("field %q: must have at least one component, have %d", f.Name, f.NumComponents)
	}
	if len(f.Data) != f.NumComponents*numTuples {
		return fmt.Errorf("field %q: have %d values, expected %d tuples of %d components",
			f.Name, len(f.Data), numTuples, f.NumComponents)
	}
	return nil
}

func findField(fields []Field, name string) (f *Field, ok bool) {
	for i := range fields {
		if fields[i].Name == name {
			return &fields[i], true
		}
	}
	return nil, false
}
