package lagrange

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// HexOrderer numbers the grid points of a hexahedron of arbitrary order in
// Lagrange order. Face interiors are delegated to the quadrilateral orderer.
type HexOrderer struct {
	Quad QuadOrderer
}

// Number returns the (order+1)^3 grid coordinates of a hexahedron's points in
// Lagrange order: the 8 corners, the interior points of the 12 edges, the
// interior points of the 6 faces, then the volume interior with x varying
// fastest and z slowest
func (h HexOrderer) Number(corners [8]GridCoord, order int) (coords []GridCoord) {
	if order < 1 {
		return nil
	}
	var (
		nEdge = order - 1
		n     = order + 1
	)
	coords = make([]GridCoord, 0, n*n*n)
	coords = append(coords, corners[:]...)
	for _, e := range HexEdges {
		coords = append(coords, edgeCoords(corners[e[0]], corners[e[1]], nEdge)...)
	}
	for _, f := range HexFaces {
		faceCorners := [4]GridCoord{corners[f[0]], corners[f[1]], corners[f[2]], corners[f[3]]}
		coords = append(coords, h.Quad.Number(faceCorners, order, true)...)
	}
	var (
		c0 = toVec(corners[0])
		ex = unitStep(corners[0], corners[1], order)
		ey = unitStep(corners[0], corners[3], order)
		ez = unitStep(corners[0], corners[4], order)
	)
	for i := 1; i <= nEdge; i++ {
		for j := 1; j <= nEdge; j++ {
			for k := 1; k <= nEdge; k++ {
				p := r3.Add(c0, r3.Scale(float64(i), ez))
				p = r3.Add(p, r3.Scale(float64(j), ey))
				p = r3.Add(p, r3.Scale(float64(k), ex))
				coords = append(coords, toCoord(p))
			}
		}
	}
	return
}
