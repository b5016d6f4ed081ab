package mesh

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/golagrange/lagrange"
	"github.com/notargets/golagrange/utils"
)

func TestSpectralBoxElements(t *testing.T) {
	for _, dim := range []int{2, 3} {
		var (
			order = 3
			np    = lagrange.NumPoints(dim, order)
		)
		g, err := NewSpectralBox(dim, order, 2, 2, 2)
		require.NoError(t, err)
		require.NoError(t, g.Validate())
		nElem := 4
		if dim == 3 {
			nElem = 8
		}
		assert.Equal(t, nElem*np, g.NumPoints())
		assert.Equal(t, nElem*lagrange.NumPoints(dim, order-1), g.NumCells())
		n, err := g.NumElements()
		require.NoError(t, err)
		assert.Equal(t, nElem, n)
		if dim == 3 {
			assert.Equal(t, utils.Hex, g.CellType())
		} else {
			assert.Equal(t, utils.Quad, g.CellType())
		}

		// Element 3 sits at (1,1,0) in the block layout
		el, err := g.Element(3)
		require.NoError(t, err)
		assert.Equal(t, 3, el.ID)
		assert.Equal(t, np, el.NumPoints())
		for flat, pt := range el.Points {
			c := lagrange.GridCoordOf(flat, order)
			assert.InDelta(t, 1+float64(c[0])/3, pt[0], 1.e-12)
			assert.InDelta(t, 1+float64(c[1])/3, pt[1], 1.e-12)
			assert.InDelta(t, float64(c[2])/3, pt[2], 1.e-12)
		}
		require.Len(t, el.PointData, 2)
		assert.Equal(t, GridIndexField, el.PointData[0].Name)
		for flat := 0; flat < np; flat++ {
			assert.Equal(t, float64(flat), el.PointData[0].Data[flat])
			assert.Equal(t, []float64{-el.Points[flat][1], el.Points[flat][0], 0}, el.PointData[1].Tuple(flat))
		}
		require.Len(t, el.CellData, 1)
		assert.Equal(t, []float64{3}, el.CellData[0].Data)

		_, err = g.Element(nElem)
		assert.Error(t, err)
		_, err = g.Element(-1)
		assert.Error(t, err)
	}
}

func TestSpectralBoxErrors(t *testing.T) {
	_, err := NewSpectralBox(1, 2, 1, 1, 1)
	assert.Error(t, err)
	_, err = NewSpectralBox(3, 0, 1, 1, 1)
	assert.Error(t, err)
	_, err = NewSpectralBox(3, 2, 1, 0, 1)
	assert.Error(t, err)
	// nz is ignored in 2D
	g, err := NewSpectralBox(2, 1, 1, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, 4, g.NumPoints())
	assert.Equal(t, [][]int{{0, 1, 3, 2}}, g.Cells)
}

// twoQuads builds two linear quads sharing nothing, tagged 0 and 1
func twoQuads() *UnstructuredGrid {
	g := NewUnstructuredGrid()
	g.Points = [][3]float64{
		{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0},
		{2, 0, 0}, {3, 0, 0}, {3, 1, 0}, {2, 1, 0},
	}
	g.Cells = [][]int{{4, 5, 6, 7}, {0, 1, 2, 3}}
	g.CellTypes = []utils.ElementType{utils.Quad, utils.Quad}
	g.CellData = []Field{{Name: DefaultElementIDField, NumComponents: 1, Data: []float64{1, 0}}}
	return g
}

func TestUnstructuredGridElementErrors(t *testing.T) {
	{ // Missing element id field
		g := twoQuads()
		g.CellData[0].Name = "other"
		_, err := g.NumElements()
		assert.Error(t, err)
		_, err = g.Element(0)
		assert.Error(t, err)
	}
	{ // Custom element id field name
		g := twoQuads()
		g.CellData[0].Name = "eid"
		g.ElementIDField = "eid"
		n, err := g.NumElements()
		require.NoError(t, err)
		assert.Equal(t, 2, n)
		el, err := g.Element(1)
		require.NoError(t, err)
		assert.Equal(t, [3]float64{2, 0, 0}, el.Points[0])
	}
	{ // Gap in element ids
		g := twoQuads()
		g.CellData[0].Data = []float64{2, 0}
		_, err := g.NumElements()
		assert.Error(t, err)
	}
	{ // Id beyond the number of cells
		g := twoQuads()
		g.CellData[0].Data = []float64{0, 1e12}
		_, err := g.NumElements()
		assert.ErrorContains(t, err, "out of range")
		g = twoQuads()
		g.CellData[0].Data = []float64{2, 1}
		_, err = g.Element(0)
		assert.Error(t, err)
	}
	{ // Non integer id
		g := twoQuads()
		g.CellData[0].Data = []float64{0.5, 0}
		_, err := g.NumElements()
		assert.Error(t, err)
	}
	{ // Mixed cell types inside one element
		g := twoQuads()
		g.CellData[0].Data = []float64{0, 0}
		g.CellTypes[1] = utils.Triangle
		g.Cells[1] = []int{0, 1, 2}
		_, err := g.Element(0)
		var ucte *lagrange.UnsupportedCellTypeError
		require.True(t, errors.As(err, &ucte))
		assert.Equal(t, utils.Triangle, ucte.Got)
		assert.Equal(t, utils.Quad, ucte.Want)
	}
}

func TestUnstructuredGridValidate(t *testing.T) {
	g := twoQuads()
	require.NoError(t, g.Validate())
	g.CellTypes = g.CellTypes[:1]
	assert.Error(t, g.Validate())

	g = twoQuads()
	g.Cells[0] = []int{0, 1, 2}
	assert.Error(t, g.Validate())

	g = twoQuads()
	g.Cells[0][0] = 8
	assert.Error(t, g.Validate())

	g = twoQuads()
	g.PointData = []Field{{Name: "p", NumComponents: 1, Data: make([]float64, 7)}}
	assert.Error(t, g.Validate())

	g = twoQuads()
	g.CellData[0].NumComponents = 0
	assert.Error(t, g.Validate())

	assert.Equal(t, utils.Unknown, NewUnstructuredGrid().CellType())
}
