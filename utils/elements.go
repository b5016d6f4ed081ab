package utils

// ElementType represents the cell types found in spectral element output and
// the high order Lagrange cells they are converted into
type ElementType int

const (
	Unknown ElementType = iota
	// 0D elements
	Point
	// 1D elements
	Line
	// 2D elements
	Triangle
	Quad
	// 3D elements
	Tet
	Hex
	Prism
	Pyramid
	// Arbitrary order Lagrange cells, point count set by the order
	LagrangeQuad
	LagrangeHex
)

// String representation of element types
func (e ElementType) String() string {
	names := []string{
		"Unknown",
		"Point",
		"Line",
		"Triangle", "Quad",
		"Tet", "Hex", "Prism", "Pyramid",
		"LagrangeQuad", "LagrangeHex",
	}
	if int(e) >= 0 && int(e) < len(names) {
		return names[e]
	}
	return "Invalid"
}

// GetDimension returns the spatial dimension of the element
func (e ElementType) GetDimension() int {
	switch e {
	case Point:
		return 0
	case Line:
		return 1
	case Triangle, Quad, LagrangeQuad:
		return 2
	case Tet, Hex, Prism, Pyramid, LagrangeHex:
		return 3
	default:
		return -1
	}
}

// GetNumNodes returns the number of nodes for each fixed size element type.
// Lagrange cells have an order dependent node count and return 0.
func (e ElementType) GetNumNodes() int {
	switch e {
	case Point:
		return 1
	case Line:
		return 2
	case Triangle:
		return 3
	case Quad:
		return 4
	case Tet:
		return 4
	case Hex:
		return 8
	case Prism:
		return 6
	case Pyramid:
		return 5
	default:
		return 0
	}
}

// IsLagrange is true for the arbitrary order Lagrange cells
func (e ElementType) IsLagrange() bool {
	return e == LagrangeQuad || e == LagrangeHex
}

// Lagrange returns the high order Lagrange cell sharing the topology of e, or
// Unknown when there isn't one
func (e ElementType) Lagrange() ElementType {
	switch e {
	case Quad, LagrangeQuad:
		return LagrangeQuad
	case Hex, LagrangeHex:
		return LagrangeHex
	default:
		return Unknown
	}
}

// VTK cell type identifiers
const (
	VTK_VERTEX                 = 1
	VTK_LINE                   = 3
	VTK_TRIANGLE               = 5
	VTK_QUAD                   = 9
	VTK_TETRA                  = 10
	VTK_HEXAHEDRON             = 12
	VTK_WEDGE                  = 13
	VTK_PYRAMID                = 14
	VTK_LAGRANGE_QUADRILATERAL = 70
	VTK_LAGRANGE_HEXAHEDRON    = 72
)

var vtkElementTypeMap = map[int]ElementType{
	VTK_VERTEX:                 Point,
	VTK_LINE:                   Line,
	VTK_TRIANGLE:               Triangle,
	VTK_QUAD:                   Quad,
	VTK_TETRA:                  Tet,
	VTK_HEXAHEDRON:             Hex,
	VTK_WEDGE:                  Prism,
	VTK_PYRAMID:                Pyramid,
	VTK_LAGRANGE_QUADRILATERAL: LagrangeQuad,
	VTK_LAGRANGE_HEXAHEDRON:    LagrangeHex,
}

// VTKCode returns the VTK cell type identifier, -1 if VTK has no equivalent
func (e ElementType) VTKCode() int {
	for code, et := range vtkElementTypeMap {
		if et == e {
			return code
		}
	}
	return -1
}

// ElementTypeFromVTK maps a VTK cell type identifier to an ElementType
func ElementTypeFromVTK(code int) (e ElementType, ok bool) {
	e, ok = vtkElementTypeMap[code]
	return
}
