package lagrange

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// QuadOrderer numbers the grid points of a quadrilateral of arbitrary order in
// Lagrange order: corners, edge interiors, then the face interior
type QuadOrderer struct{}

/*
Number returns the grid coordinates of a quadrilateral's points in Lagrange
order. corners are given counter-clockwise, the edges are (0,1), (1,2), (3,2)
and (0,3), each traversed from the first vertex toward the second.

With interiorOnly set, corners and edges are skipped and only the (order-1)^2
points strictly inside the face are returned. This is how a hexahedron numbers
its faces, having already emitted their corners and edges.

The interior is walked row by row in the face's own basis, with
e_x = (c1-c0)/order and e_y = (c3-c0)/order:

	for i := 1..order-1 { for j := 1..order-1 { c0 + i*e_y + j*e_x } }
*/
func (QuadOrderer) Number(corners [4]GridCoord, order int, interiorOnly bool) (coords []GridCoord) {
	if order < 1 {
		return nil
	}
	var (
		nEdge = order - 1
	)
	if interiorOnly {
		coords = make([]GridCoord, 0, nEdge*nEdge)
	} else {
		coords = make([]GridCoord, 0, (order+1)*(order+1))
		coords = append(coords, corners[:]...)
		for _, e := range QuadEdges {
			coords = append(coords, edgeCoords(corners[e[0]], corners[e[1]], nEdge)...)
		}
	}
	var (
		c0 = toVec(corners[0])
		ex = unitStep(corners[0], corners[1], order)
		ey = unitStep(corners[0], corners[3], order)
	)
	for i := 1; i <= nEdge; i++ {
		for j := 1; j <= nEdge; j++ {
			p := r3.Add(c0, r3.Add(r3.Scale(float64(i), ey), r3.Scale(float64(j), ex)))
			coords = append(coords, toCoord(p))
		}
	}
	return
}
