package lagrange

import (
	"fmt"
	"math"
)

// InferOrder recovers the polynomial order of an element from its point count,
// numPoints must be exactly (order+1)^dim
func InferOrder(dim, numPoints int) (order int, err error) {
	var root float64
	switch dim {
	case 2:
		root = math.Sqrt(float64(numPoints))
	case 3:
		root = math.Cbrt(float64(numPoints))
	default:
		err = fmt.Errorf("unsupported dimension %d, must be 2 or 3", dim)
		return
	}
	order = int(math.Round(root)) - 1
	if order < 1 || NumPoints(dim, order) != numPoints {
		return 0, &InvalidElementError{Element: -1, NumPoints: numPoints, Dim: dim}
	}
	return
}

// NumPoints is the number of grid points of an element of the given order
func NumPoints(dim, order int) (n int) {
	n = 1
	for i := 0; i < dim; i++ {
		n *= order + 1
	}
	return
}

// FlatIndex linearizes a grid coordinate in row major order, x fastest
func FlatIndex(c GridCoord, order int) int {
	n := order + 1
	return c[0] + n*(c[1]+n*c[2])
}

// GridCoordOf is the inverse of FlatIndex
func GridCoordOf(flat, order int) (c GridCoord) {
	n := order + 1
	c[0] = flat % n
	c[1] = (flat / n) % n
	c[2] = flat / (n * n)
	return
}
