package lagrange

import (
	"fmt"
)

// GridCoord is a point position (x, y, z) on the (n+1)^d tensor grid of an
// element of order n. Quadrilaterals use z = 0.
type GridCoord [3]int

/*
Canonical corner, edge and face listings of the VTK Lagrange quadrilateral and
hexahedron. Corners are given on the unit square / cube and scaled by the order
before use.

	Hex vertices:                  Quad vertices:
	        7--------6                 3--------2
	       /|       /|                 |        |
	      4--------5 |                 |        |
	      | 3------|-2                 |        |
	      |/       |/                  0--------1
	      0--------1
*/
var (
	QuadCorners = []GridCoord{
		{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0},
	}
	QuadEdges = [][2]int{
		{0, 1}, {1, 2}, {3, 2}, {0, 3},
	}
	HexCorners = []GridCoord{
		{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}, // Bottom, CCW
		{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1}, // Top, directly above
	}
	HexEdges = [][2]int{
		{0, 1}, {1, 2}, {3, 2}, {0, 3}, // Bottom
		{4, 5}, {5, 6}, {7, 6}, {4, 7}, // Top
		{0, 4}, {1, 5}, {2, 6}, {3, 7}, // Verticals
	}
	// Each face is listed with the winding the quadrilateral numbering expects:
	// corner 0 is the face origin, 0->1 is the face local x axis, 0->3 the local y axis
	HexFaces = [][4]int{
		{0, 3, 7, 4}, // -x
		{1, 2, 6, 5}, // +x
		{0, 1, 5, 4}, // -y
		{3, 2, 6, 7}, // +y
		{0, 1, 2, 3}, // -z
		{4, 5, 6, 7}, // +z
	}
)

func init() {
	if err := checkTables(QuadCorners, QuadEdges, nil, 4, 4, 0); err != nil {
		panic(fmt.Errorf("quadrilateral tables: %w", err))
	}
	if err := checkTables(HexCorners, HexEdges, HexFaces, 8, 12, 6); err != nil {
		panic(fmt.Errorf("hexahedron tables: %w", err))
	}
}

func checkTables(corners []GridCoord, edges [][2]int, faces [][4]int,
	nCorners, nEdges, nFaces int) (err error) {
	switch {
	case len(corners) != nCorners:
		return fmt.Errorf("have %d corners, expected %d", len(corners), nCorners)
	case len(edges) != nEdges:
		return fmt.Errorf("have %d edges, expected %d", len(edges), nEdges)
	case len(faces) != nFaces:
		return fmt.Errorf("have %d faces, expected %d", len(faces), nFaces)
	}
	inRange := func(v int) bool { return v >= 0 && v < len(corners) }
	for i, e := range edges {
		if !inRange(e[0]) || !inRange(e[1]) {
			return fmt.Errorf("edge %d references a vertex out of range: %v", i, e)
		}
		// A cube edge moves along exactly one axis
		if axesCrossed(corners[e[0]], corners[e[1]]) != 1 {
			return fmt.Errorf("edge %d does not join adjacent corners: %v", i, e)
		}
	}
	for i, f := range faces {
		for _, v := range f {
			if !inRange(v) {
				return fmt.Errorf("face %d references a vertex out of range: %v", i, f)
			}
		}
		// Consecutive face vertices are adjacent, the diagonal is not
		for j := 0; j < 4; j++ {
			if axesCrossed(corners[f[j]], corners[f[(j+1)%4]]) != 1 {
				return fmt.Errorf("face %d is not wound around its boundary: %v", i, f)
			}
		}
		if axesCrossed(corners[f[0]], corners[f[2]]) != 2 {
			return fmt.Errorf("face %d is not planar: %v", i, f)
		}
	}
	return
}

func axesCrossed(a, b GridCoord) (n int) {
	for i := 0; i < 3; i++ {
		if a[i] != b[i] {
			n++
		}
	}
	return
}

// ScaledCorners returns the canonical corners for the given dimension
// stretched onto a grid of the given order
func ScaledCorners(dim, order int) (corners []GridCoord) {
	var unit []GridCoord
	switch dim {
	case 2:
		unit = QuadCorners
	case 3:
		unit = HexCorners
	default:
		return nil
	}
	corners = make([]GridCoord, len(unit))
	for i, c := range unit {
		corners[i] = GridCoord{c[0] * order, c[1] * order, c[2] * order}
	}
	return
}
