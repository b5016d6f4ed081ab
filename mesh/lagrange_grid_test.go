package mesh

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/golagrange/lagrange"
	"github.com/notargets/golagrange/utils"
)

func TestLagrangeGridAddCell(t *testing.T) {
	lg := NewLagrangeGrid()
	pts := [][3]float64{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}
	for i := 0; i < 3; i++ {
		err := lg.AddLagrangeCell(utils.LagrangeQuad, pts,
			[]Field{{Name: "p", NumComponents: 1, Data: []float64{1, 2, 3, 4}}},
			[]Field{{Name: "id", NumComponents: 1, Data: []float64{float64(i)}}})
		require.NoError(t, err)
	}
	assert.Equal(t, 3, lg.NumCells())
	assert.Equal(t, 12, lg.NumPoints())
	assert.Equal(t, []int{4, 8, 12}, lg.Offsets)
	assert.Equal(t, []int{8, 9, 10, 11}, lg.CellPoints(2))
	assert.Equal(t, []int{0, 1, 2, 3}, lg.CellPoints(0))
	p, ok := lg.PointField("p")
	require.True(t, ok)
	assert.Equal(t, 12, p.NumTuples())
	id, ok := lg.CellField("id")
	require.True(t, ok)
	assert.Equal(t, []float64{0, 1, 2}, id.Data)
	_, ok = lg.CellField("nope")
	assert.False(t, ok)
}

func TestLagrangeGridAddCellErrors(t *testing.T) {
	pts := [][3]float64{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}
	lg := NewLagrangeGrid()
	var ucte *lagrange.UnsupportedCellTypeError
	assert.True(t, errors.As(lg.AddLagrangeCell(utils.Quad, pts, nil, nil), &ucte))

	var sme *lagrange.ShapeMismatchError
	err := lg.AddLagrangeCell(utils.LagrangeQuad, pts,
		[]Field{{Name: "p", NumComponents: 2, Data: []float64{1, 2, 3, 4}}}, nil)
	require.True(t, errors.As(err, &sme))
	assert.Equal(t, 8, sme.Want)
	err = lg.AddLagrangeCell(utils.LagrangeQuad, pts, nil,
		[]Field{{Name: "c", NumComponents: 1, Data: []float64{1, 2}}})
	require.True(t, errors.As(err, &sme))
	assert.Equal(t, 0, lg.NumCells())

	require.NoError(t, lg.AddLagrangeCell(utils.LagrangeQuad, pts,
		[]Field{{Name: "p", NumComponents: 1, Data: []float64{1, 2, 3, 4}}}, nil))
	// Field set is fixed by the first cell
	assert.Error(t, lg.AddLagrangeCell(utils.LagrangeQuad, pts, nil, nil))
	assert.Error(t, lg.AddLagrangeCell(utils.LagrangeQuad, pts,
		[]Field{{Name: "q", NumComponents: 1, Data: []float64{1, 2, 3, 4}}}, nil))
	err = lg.AddLagrangeCell(utils.LagrangeQuad, pts,
		[]Field{{Name: "p", NumComponents: 2, Data: make([]float64, 8)}}, nil)
	require.True(t, errors.As(err, &sme))
	assert.Equal(t, 1, lg.NumCells())
	assert.Equal(t, 4, lg.NumPoints())
}
