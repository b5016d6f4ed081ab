package lagrange

import (
	"fmt"

	"github.com/notargets/golagrange/utils"
)

// InvalidElementError reports an element whose point count is not (n+1)^d for
// any order n >= 1
type InvalidElementError struct {
	Element   int // -1 when the element is not known
	NumPoints int
	Dim       int
}

func (e *InvalidElementError) Error() string {
	if e.Element < 0 {
		return fmt.Sprintf("point count %d is not (n+1)^%d for any order n >= 1",
			e.NumPoints, e.Dim)
	}
	return fmt.Sprintf("element %d: point count %d is not (n+1)^%d for any order n >= 1",
		e.Element, e.NumPoints, e.Dim)
}

// UnsupportedCellTypeError reports a cell type that can't be converted, or
// that differs from the type of the first cell in the mesh
type UnsupportedCellTypeError struct {
	Element   int
	Got, Want utils.ElementType
}

func (e *UnsupportedCellTypeError) Error() string {
	if e.Want == utils.Unknown {
		return fmt.Sprintf("element %d: unsupported cell type %s, need Quad or Hex",
			e.Element, e.Got)
	}
	return fmt.Sprintf("element %d: cell type %s differs from the mesh cell type %s",
		e.Element, e.Got, e.Want)
}

// ShapeMismatchError reports an array whose length disagrees with the
// permutation or with previously seen data
type ShapeMismatchError struct {
	What      string
	Got, Want int
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("shape mismatch in %s: have %d, expected %d", e.What, e.Got, e.Want)
}
