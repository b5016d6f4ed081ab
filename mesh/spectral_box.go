package mesh

import (
	"fmt"

	"github.com/notargets/golagrange/lagrange"
	"github.com/notargets/golagrange/utils"
)

// Point fields written by NewSpectralBox
const (
	GridIndexField = "grid index"
	VelocityField  = "velocity"
)

/*
NewSpectralBox lays out nx*ny*nz unit sized spectral elements of the given
order the way spectral element solvers write them: every element owns its
(order+1)^dim points in tensor grid order (x fastest), and is split into
order^dim linear sub-cells tagged with the element id. Element ids run with x
fastest. nz is ignored in two dimensions.

Point fields are the flat grid index of each point within its element and a
solid body rotation velocity (-y, x, 0).
*/
func NewSpectralBox(dim, order, nx, ny, nz int) (g *UnstructuredGrid, err error) {
	if dim != 2 && dim != 3 {
		return nil, fmt.Errorf("unsupported dimension %d, must be 2 or 3", dim)
	}
	if dim == 2 {
		nz = 1
	}
	if order < 1 || nx < 1 || ny < 1 || nz < 1 {
		return nil, fmt.Errorf("order and element counts must be positive: order %d, nx,ny,nz = %d,%d,%d",
			order, nx, ny, nz)
	}
	var (
		nElem    = nx * ny * nz
		np       = lagrange.NumPoints(dim, order)
		nSub     = lagrange.NumPoints(dim, order-1)
		cellType = utils.Quad
	)
	if dim == 3 {
		cellType = utils.Hex
	}
	g = NewUnstructuredGrid()
	g.Points = make([][3]float64, 0, nElem*np)
	g.Cells = make([][]int, 0, nElem*nSub)
	g.CellTypes = make([]utils.ElementType, 0, nElem*nSub)
	var (
		gridIndex = NewField(GridIndexField, 1, nElem*np)
		velocity  = NewField(VelocityField, 3, nElem*np)
		elemID    = NewField(DefaultElementIDField, 1, nElem*nSub)
	)
	for ez := 0; ez < nz; ez++ {
		for ey := 0; ey < ny; ey++ {
			for ex := 0; ex < nx; ex++ {
				var (
					id     = ex + nx*(ey+ny*ez)
					origin = [3]float64{float64(ex), float64(ey), float64(ez)}
					base   = len(g.Points)
				)
				for flat := 0; flat < np; flat++ {
					c := lagrange.GridCoordOf(flat, order)
					var pt [3]float64
					for i := 0; i < dim; i++ {
						pt[i] = origin[i] + float64(c[i])/float64(order)
					}
					g.Points = append(g.Points, pt)
					gridIndex.Data[base+flat] = float64(flat)
					copy(velocity.Tuple(base+flat), []float64{-pt[1], pt[0], 0})
				}
				for _, cell := range subCells(dim, order) {
					for i := range cell {
						cell[i] += base
					}
					elemID.Data[len(g.Cells)] = float64(id)
					g.Cells = append(g.Cells, cell)
					g.CellTypes = append(g.CellTypes, cellType)
				}
			}
		}
	}
	g.PointData = []Field{gridIndex, velocity}
	g.CellData = []Field{elemID}
	return
}

// subCells splits an element's tensor grid into linear quads or hexes, with
// point ids local to the element
func subCells(dim, order int) (cells [][]int) {
	var (
		nk = 1
	)
	if dim == 3 {
		nk = order
	}
	at := func(i, j, k int) int {
		return lagrange.FlatIndex(lagrange.GridCoord{i, j, k}, order)
	}
	for k := 0; k < nk; k++ {
		for j := 0; j < order; j++ {
			for i := 0; i < order; i++ {
				cell := []int{at(i, j, k), at(i+1, j, k), at(i+1, j+1, k), at(i, j+1, k)}
				if dim == 3 {
					cell = append(cell, at(i, j, k+1), at(i+1, j, k+1), at(i+1, j+1, k+1), at(i, j+1, k+1))
				}
				cells = append(cells, cell)
			}
		}
	}
	return
}
