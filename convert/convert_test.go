package convert

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/golagrange/lagrange"
	"github.com/notargets/golagrange/mesh"
	"github.com/notargets/golagrange/utils"
)

// elementList is an ElementSource over prebuilt elements
type elementList []*mesh.Element

func (el elementList) NumElements() (int, error) { return len(el), nil }
func (el elementList) CellType() utils.ElementType {
	if len(el) == 0 {
		return utils.Unknown
	}
	return el[0].CellType
}
func (el elementList) Element(id int) (*mesh.Element, error) {
	if id < 0 || id >= len(el) {
		return nil, fmt.Errorf("no element %d", id)
	}
	return el[id], nil
}

func quadElement(id, order int) *mesh.Element {
	np := lagrange.NumPoints(2, order)
	el := &mesh.Element{ID: id, CellType: utils.Quad, Points: make([][3]float64, np)}
	for flat := range el.Points {
		c := lagrange.GridCoordOf(flat, order)
		el.Points[flat] = [3]float64{float64(c[0]), float64(c[1]), 0}
	}
	return el
}

type failingSink struct{ calls int }

func (fs *failingSink) AddLagrangeCell(utils.ElementType, [][3]float64, []mesh.Field, []mesh.Field) error {
	fs.calls++
	if fs.calls == 2 {
		return errors.New("disk full")
	}
	return nil
}

func TestToLagrangeHexOrder2(t *testing.T) {
	src, err := mesh.NewSpectralBox(3, 2, 1, 1, 1)
	require.NoError(t, err)
	var (
		lg  = mesh.NewLagrangeGrid()
		buf bytes.Buffer
	)
	stats, err := ToLagrange(src, lg, Options{Logger: log.NewWithOptions(&buf, log.Options{})})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Converting hexahedral data")
	assert.Equal(t, 1, stats.NumElements)
	assert.Equal(t, 27, stats.NumPoints)
	assert.Equal(t, []int{2}, stats.Orders)
	assert.Equal(t, utils.LagrangeHex, stats.CellType)

	require.Equal(t, 1, lg.NumCells())
	require.Equal(t, 27, lg.NumPoints())
	assert.Equal(t, utils.LagrangeHex, lg.CellTypes[0])
	assert.Equal(t, [3]float64{0, 0, 0}, lg.Points[0])
	assert.Equal(t, [3]float64{1, 0, 0}, lg.Points[1])
	assert.Equal(t, [3]float64{1, 1, 0}, lg.Points[2])
	assert.Equal(t, [3]float64{0, 1, 1}, lg.Points[7])
	assert.Equal(t, [3]float64{0.5, 0, 0}, lg.Points[8])
	assert.Equal(t, [3]float64{0, 0.5, 0.5}, lg.Points[20])
	assert.Equal(t, [3]float64{0.5, 0.5, 0.5}, lg.Points[26])
	assert.Equal(t, []int(utils.NewRange(0, 26)), lg.CellPoints(0))

	ids, ok := lg.CellField(mesh.DefaultElementIDField)
	require.True(t, ok)
	assert.Equal(t, []float64{0}, ids.Data)
	vel, ok := lg.PointField(mesh.VelocityField)
	require.True(t, ok)
	for k, pt := range lg.Points {
		assert.Equal(t, []float64{-pt[1], pt[0], 0}, vel.Tuple(k))
	}
}

func TestToLagrangeQuads(t *testing.T) {
	var (
		order = 3
		np    = lagrange.NumPoints(2, order)
	)
	src, err := mesh.NewSpectralBox(2, order, 3, 1, 1)
	require.NoError(t, err)
	lg := mesh.NewLagrangeGrid()
	stats, err := ToLagrange(src, lg, Options{})
	require.NoError(t, err)
	assert.Equal(t, 3, stats.NumElements)
	assert.Equal(t, 3*np, lg.NumPoints())
	assert.Equal(t, src.NumPoints(), lg.NumPoints())
	require.Equal(t, 3, lg.NumCells())

	perm, err := lagrange.NewPermutation(2, order)
	require.NoError(t, err)
	gi, ok := lg.PointField(mesh.GridIndexField)
	require.True(t, ok)
	ids, ok := lg.CellField(mesh.DefaultElementIDField)
	require.True(t, ok)
	for e := 0; e < 3; e++ {
		assert.Equal(t, utils.LagrangeQuad, lg.CellTypes[e])
		assert.Equal(t, float64(e), ids.Data[e])
		for k, pt := range lg.CellPoints(e) {
			assert.Equal(t, float64(perm.Index[k]), gi.Data[pt])
		}
		// The element's first corner is its origin
		assert.Equal(t, [3]float64{float64(e), 0, 0}, lg.Points[lg.CellPoints(e)[0]])
	}
}

func TestToLagrangeParallel(t *testing.T) {
	src, err := mesh.NewSpectralBox(3, 3, 3, 2, 2)
	require.NoError(t, err)
	serial := mesh.NewLagrangeGrid()
	_, err = ToLagrange(src, serial, Options{ParallelDegree: 1})
	require.NoError(t, err)
	cache := lagrange.NewCache()
	for _, np := range []int{2, 5, 64} {
		parallel := mesh.NewLagrangeGrid()
		stats, err := ToLagrange(src, parallel, Options{ParallelDegree: np, Cache: cache})
		require.NoError(t, err)
		assert.Equal(t, 12, stats.NumElements)
		assert.Equal(t, serial, parallel)
	}
	assert.Equal(t, []lagrange.CacheKey{{Dim: 3, Order: 3}}, cache.Keys())
}

func TestToLagrangeMixedOrders(t *testing.T) {
	src := elementList{quadElement(0, 3), quadElement(1, 2), quadElement(2, 3)}
	lg := mesh.NewLagrangeGrid()
	stats, err := ToLagrange(src, lg, Options{ParallelDegree: 2})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, stats.Orders)
	assert.Equal(t, 16+9+16, stats.NumPoints)
	assert.Equal(t, []int{16, 25, 41}, lg.Offsets)
}

func TestToLagrangeErrors(t *testing.T) {
	// Unsupported first cell
	tri := elementList{{CellType: utils.Triangle, Points: make([][3]float64, 3)}}
	_, err := ToLagrange(tri, mesh.NewLagrangeGrid(), Options{})
	var uct *lagrange.UnsupportedCellTypeError
	require.True(t, errors.As(err, &uct))
	assert.Equal(t, utils.Triangle, uct.Got)

	// Already converted
	done := elementList{quadElement(0, 2)}
	done[0].CellType = utils.LagrangeQuad
	_, err = ToLagrange(done, mesh.NewLagrangeGrid(), Options{})
	require.True(t, errors.As(err, &uct))
	assert.Equal(t, utils.LagrangeQuad, uct.Got)

	// An element of a different type than the first
	mixed := elementList{quadElement(0, 2), quadElement(1, 2)}
	mixed[1].CellType = utils.Hex
	_, err = ToLagrange(mixed, mesh.NewLagrangeGrid(), Options{})
	require.True(t, errors.As(err, &uct))
	assert.Equal(t, 1, uct.Element)
	assert.Equal(t, utils.Hex, uct.Got)
	assert.Equal(t, utils.Quad, uct.Want)

	// Point counts that are not a square, lowest failing element is reported
	bad := elementList{quadElement(0, 2), quadElement(1, 2), quadElement(2, 2), quadElement(3, 2)}
	bad[1].Points = bad[1].Points[:5]
	bad[3].Points = bad[3].Points[:7]
	for _, np := range []int{1, 4} {
		lg := mesh.NewLagrangeGrid()
		_, err = ToLagrange(bad, lg, Options{ParallelDegree: np})
		var iee *lagrange.InvalidElementError
		require.True(t, errors.As(err, &iee))
		assert.Equal(t, 1, iee.Element)
		assert.Equal(t, 5, iee.NumPoints)
		// Element 0 converted but the sink stays empty
		assert.Equal(t, 0, lg.NumCells())
		assert.Equal(t, 0, lg.NumPoints())
	}
	fs0 := &failingSink{}
	_, err = ToLagrange(bad, fs0, Options{})
	assert.Error(t, err)
	assert.Equal(t, 0, fs0.calls)

	// Point field with the wrong length
	short := elementList{quadElement(0, 2)}
	short[0].PointData = []mesh.Field{{Name: "p", NumComponents: 1, Data: make([]float64, 4)}}
	_, err = ToLagrange(short, mesh.NewLagrangeGrid(), Options{})
	var sme *lagrange.ShapeMismatchError
	require.True(t, errors.As(err, &sme))

	// Sink failures stop the conversion
	fs := &failingSink{}
	_, err = ToLagrange(elementList{quadElement(0, 2), quadElement(1, 2), quadElement(2, 2)}, fs, Options{})
	assert.EqualError(t, err, "element 1: disk full")
	assert.Equal(t, 2, fs.calls)

	// Source without an element id field
	g, err := mesh.NewSpectralBox(2, 2, 1, 1, 1)
	require.NoError(t, err)
	g.ElementIDField = "no such field"
	_, err = ToLagrange(g, mesh.NewLagrangeGrid(), Options{})
	assert.Error(t, err)
}
