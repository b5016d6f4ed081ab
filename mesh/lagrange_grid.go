package mesh

import (
	"fmt"

	"github.com/notargets/golagrange/lagrange"
	"github.com/notargets/golagrange/utils"
)

// LagrangeGrid is an unstructured grid of high order Lagrange cells, each cell
// owning its own points. It is assembled one cell at a time.
type LagrangeGrid struct {
	Points       [][3]float64
	Connectivity []int
	Offsets      []int // End of each cell's connectivity, VTK style
	CellTypes    []utils.ElementType
	PointData    []Field
	CellData     []Field
}

func NewLagrangeGrid() *LagrangeGrid {
	return &LagrangeGrid{}
}

func (lg *LagrangeGrid) NumPoints() int { return len(lg.Points) }
func (lg *LagrangeGrid) NumCells() int  { return len(lg.CellTypes) }

// CellPoints returns the point ids of cell i
func (lg *LagrangeGrid) CellPoints(i int) []int {
	var start int
	if i > 0 {
		start = lg.Offsets[i-1]
	}
	return lg.Connectivity[start:lg.Offsets[i]]
}

func (lg *LagrangeGrid) PointField(name string) (*Field, bool) {
	return findField(lg.PointData, name)
}

func (lg *LagrangeGrid) CellField(name string) (*Field, bool) {
	return findField(lg.CellData, name)
}

/*
AddLagrangeCell appends a cell whose points are already in Lagrange order.
The cell's points are numbered after all previously added points. The first
cell fixes the set of point and cell fields, later cells must carry the same
fields with the same component counts, in the same order.
*/
func (lg *LagrangeGrid) AddLagrangeCell(ct utils.ElementType, points [][3]float64,
	pointData, cellData []Field) (err error) {
	if !ct.IsLagrange() {
		return &lagrange.UnsupportedCellTypeError{Element: lg.NumCells(), Got: ct}
	}
	var (
		nPts = len(points)
	)
	for _, f := range pointData {
		if len(f.Data) != nPts*f.NumComponents {
			return &lagrange.ShapeMismatchError{What: "point field " + f.Name,
				Got: len(f.Data), Want: nPts * f.NumComponents}
		}
	}
	for _, f := range cellData {
		if len(f.Data) != f.NumComponents {
			return &lagrange.ShapeMismatchError{What: "cell field " + f.Name,
				Got: len(f.Data), Want: f.NumComponents}
		}
	}
	if lg.NumCells() == 0 {
		lg.PointData = emptyLike(pointData)
		lg.CellData = emptyLike(cellData)
	} else {
		if err = sameLayout("point", lg.PointData, pointData); err != nil {
			return
		}
		if err = sameLayout("cell", lg.CellData, cellData); err != nil {
			return
		}
	}
	offset := len(lg.Points)
	lg.Points = append(lg.Points, points...)
	lg.Connectivity = append(lg.Connectivity, utils.NewRange(0, nPts-1).Add(offset)...)
	lg.Offsets = append(lg.Offsets, len(lg.Connectivity))
	lg.CellTypes = append(lg.CellTypes, ct)
	for i, f := range pointData {
		lg.PointData[i].Data = append(lg.PointData[i].Data, f.Data...)
	}
	for i, f := range cellData {
		lg.CellData[i].Data = append(lg.CellData[i].Data, f.Data...)
	}
	return
}

func emptyLike(fields []Field) (out []Field) {
	out = make([]Field, len(fields))
	for i, f := range fields {
		out[i] = Field{Name: f.Name, NumComponents: f.NumComponents}
	}
	return
}

func sameLayout(kind string, have, got []Field) error {
	if len(have) != len(got) {
		return &lagrange.ShapeMismatchError{What: kind + " field count", Got: len(got), Want: len(have)}
	}
	for i := range have {
		if have[i].Name != got[i].Name {
			return fmt.Errorf("%s field %d is %q, expected %q", kind, i, got[i].Name, have[i].Name)
		}
		if have[i].NumComponents != got[i].NumComponents {
			return &lagrange.ShapeMismatchError{What: kind + " field " + got[i].Name + " components",
				Got: got[i].NumComponents, Want: have[i].NumComponents}
		}
	}
	return nil
}
