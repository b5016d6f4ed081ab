package lagrange

import (
	"fmt"

	"github.com/james-bowman/sparse"

	"github.com/notargets/golagrange/utils"
)

// Permutation maps Lagrange ordered positions to grid ordered flat indices:
// Index[structured] = flat. It is fully determined by Dim and Order.
type Permutation struct {
	Dim, Order int
	Index      utils.Index
}

// StructuredCoords returns the grid coordinates of every point of an element in
// Lagrange order
func StructuredCoords(dim, order int) (coords []GridCoord, err error) {
	if order < 1 {
		err = fmt.Errorf("order must be at least 1, have %d", order)
		return
	}
	corners := ScaledCorners(dim, order)
	switch dim {
	case 2:
		var c [4]GridCoord
		copy(c[:], corners)
		coords = QuadOrderer{}.Number(c, order, false)
	case 3:
		var c [8]GridCoord
		copy(c[:], corners)
		coords = HexOrderer{}.Number(c, order)
	default:
		err = fmt.Errorf("unsupported dimension %d, must be 2 or 3", dim)
	}
	return
}

// NewPermutation builds the grid to Lagrange permutation for an element
func NewPermutation(dim, order int) (p *Permutation, err error) {
	var coords []GridCoord
	if coords, err = StructuredCoords(dim, order); err != nil {
		return
	}
	p = &Permutation{
		Dim:   dim,
		Order: order,
		Index: utils.NewIndex(len(coords)),
	}
	for k, c := range coords {
		p.Index[k] = FlatIndex(c, order)
	}
	return
}

func (p *Permutation) Len() int { return len(p.Index) }

// Validate checks the permutation is a bijection over the element's grid points
func (p *Permutation) Validate() (err error) {
	if want := NumPoints(p.Dim, p.Order); p.Len() != want {
		return &ShapeMismatchError{What: "permutation", Got: p.Len(), Want: want}
	}
	if err = p.Index.IsPermutation(); err != nil {
		err = fmt.Errorf("dim %d order %d: %w", p.Dim, p.Order, err)
	}
	return
}

// Inverse maps grid ordered flat indices to their Lagrange position
func (p *Permutation) Inverse() utils.Index {
	return p.Index.Inverse()
}

// Coords returns the grid coordinate of each Lagrange ordered point
func (p *Permutation) Coords() (coords []GridCoord) {
	coords = make([]GridCoord, p.Len())
	for k, flat := range p.Index {
		coords[k] = GridCoordOf(flat, p.Order)
	}
	return
}

// Operator returns the permutation matrix P, with P[k, Index[k]] = 1, so that
// P*x reorders a grid ordered column x into Lagrange order and P^T*y undoes it
func (p *Permutation) Operator() *sparse.CSR {
	var (
		N = p.Len()
	)
	dok := sparse.NewDOK(N, N)
	for k, flat := range p.Index {
		dok.Set(k, flat, 1)
	}
	return dok.ToCSR()
}

// ApplyPoints reorders an element's grid ordered coordinates into Lagrange order
func (p *Permutation) ApplyPoints(points [][3]float64) (out [][3]float64, err error) {
	if len(points) != p.Len() {
		err = &ShapeMismatchError{What: "points", Got: len(points), Want: p.Len()}
		return
	}
	out = make([][3]float64, len(points))
	for k, flat := range p.Index {
		out[k] = points[flat]
	}
	return
}

// ApplyField reorders a grid ordered point field stored as consecutive tuples
// of numComponents values
func (p *Permutation) ApplyField(data []float64, numComponents int) (out []float64, err error) {
	if err = p.checkField(data, numComponents); err != nil {
		return
	}
	out = make([]float64, len(data))
	for k, flat := range p.Index {
		copy(out[k*numComponents:(k+1)*numComponents], data[flat*numComponents:(flat+1)*numComponents])
	}
	return
}

// InvertField takes a Lagrange ordered point field back to grid order
func (p *Permutation) InvertField(data []float64, numComponents int) (out []float64, err error) {
	if err = p.checkField(data, numComponents); err != nil {
		return
	}
	out = make([]float64, len(data))
	for k, flat := range p.Index {
		copy(out[flat*numComponents:(flat+1)*numComponents], data[k*numComponents:(k+1)*numComponents])
	}
	return
}

func (p *Permutation) checkField(data []float64, numComponents int) error {
	if numComponents < 1 {
		return fmt.Errorf("field must have at least one component, have %d", numComponents)
	}
	if len(data) != p.Len()*numComponents {
		return &ShapeMismatchError{What: "point field", Got: len(data), Want: p.Len() * numComponents}
	}
	return nil
}
