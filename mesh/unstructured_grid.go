package mesh

import (
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/notargets/golagrange/lagrange"
	"github.com/notargets/golagrange/utils"
)

// DefaultElementIDField is the cell field spectral element solvers (nekRS)
// use to tag every linear sub-cell with the spectral element it belongs to
const DefaultElementIDField = "spectral element id"

// UnstructuredGrid is a linear cell mesh in which groups of cells make up the
// spectral elements, identified by an integer valued cell field
type UnstructuredGrid struct {
	// Geometry
	Points [][3]float64

	// Cell data
	Cells     [][]int             // Cell to point connectivity [ncells][npts_per_cell]
	CellTypes []utils.ElementType // Cell type for each cell

	// Fields
	PointData []Field
	CellData  []Field

	ElementIDField string // Name of the element id cell field

	once         sync.Once
	elementCells [][]int // Element id to cell ids, built on first use
	indexErr     error
}

// NewUnstructuredGrid creates an empty grid using the default element id field
func NewUnstructuredGrid() *UnstructuredGrid {
	return &UnstructuredGrid{
		ElementIDField: DefaultElementIDField,
	}
}

func (g *UnstructuredGrid) NumPoints() int { return len(g.Points) }
func (g *UnstructuredGrid) NumCells() int  { return len(g.Cells) }

func (g *UnstructuredGrid) PointField(name string) (*Field, bool) {
	return findField(g.PointData, name)
}

func (g *UnstructuredGrid) CellField(name string) (*Field, bool) {
	return findField(g.CellData, name)
}

// Validate checks that connectivity and field sizes agree with the point and
// cell counts
func (g *UnstructuredGrid) Validate() (err error) {
	if len(g.CellTypes) != len(g.Cells) {
		return fmt.Errorf("have %d cell types for %d cells", len(g.CellTypes), len(g.Cells))
	}
	for i, cell := range g.Cells {
		if nn := g.CellTypes[i].GetNumNodes(); nn != 0 && nn != len(cell) {
			return fmt.Errorf("cell %d: %s expects %d points, has %d", i, g.CellTypes[i], nn, len(cell))
		}
		for _, pt := range cell {
			if pt < 0 || pt >= len(g.Points) {
				return fmt.Errorf("cell %d: point index %d out of range [0,%d)", i, pt, len(g.Points))
			}
		}
	}
	for _, f := range g.PointData {
		if err = f.check(len(g.Points)); err != nil {
			return fmt.Errorf("point data: %w", err)
		}
	}
	for _, f := range g.CellData {
		if err = f.check(len(g.Cells)); err != nil {
			return fmt.Errorf("cell data: %w", err)
		}
	}
	return
}

// CellType reports the type of the first cell
func (g *UnstructuredGrid) CellType() utils.ElementType {
	if len(g.CellTypes) == 0 {
		return utils.Unknown
	}
	return g.CellTypes[0]
}

// NumElements is one past the largest element id
func (g *UnstructuredGrid) NumElements() (int, error) {
	if err := g.buildElementIndex(); err != nil {
		return 0, err
	}
	return len(g.elementCells), nil
}

func (g *UnstructuredGrid) buildElementIndex() error {
	g.once.Do(func() {
		g.elementCells, g.indexErr = g.groupCells()
	})
	return g.indexErr
}

func (g *UnstructuredGrid) groupCells() (elementCells [][]int, err error) {
	name := g.ElementIDField
	if name == "" {
		name = DefaultElementIDField
	}
	ids, ok := g.CellField(name)
	if !ok {
		return nil, fmt.Errorf("mesh has no cell field named %q to identify elements", name)
	}
	if err = ids.check(len(g.Cells)); err != nil {
		return nil, err
	}
	if ids.NumComponents != 1 {
		return nil, fmt.Errorf("element id field %q must be scalar, has %d components", name, ids.NumComponents)
	}
	var maxID = -1
	elemOf := make([]int, len(g.Cells))
	for i, v := range ids.Data {
		id := int(math.Round(v))
		if id < 0 || float64(id) != v {
			return nil, fmt.Errorf("cell %d: element id %v is not a non-negative integer", i, v)
		}
		if id >= len(g.Cells) {
			return nil, fmt.Errorf("cell %d: element id %d is out of range, %d cells can carry at most %d elements",
				i, id, len(g.Cells), len(g.Cells))
		}
		elemOf[i] = id
		if id > maxID {
			maxID = id
		}
	}
	elementCells = make([][]int, maxID+1)
	for cell, id := range elemOf {
		elementCells[id] = append(elementCells[id], cell)
	}
	for id, cells := range elementCells {
		if len(cells) == 0 {
			return nil, fmt.Errorf("element ids are not contiguous, no cells carry id %d", id)
		}
	}
	return
}

// Element gathers the points, point fields and cell fields of one spectral
// element. Points keep their relative order in the grid, which for spectral
// element output is the element's tensor grid order. Cell fields are taken
// from the element's first cell.
func (g *UnstructuredGrid) Element(id int) (el *Element, err error) {
	if err = g.buildElementIndex(); err != nil {
		return
	}
	if id < 0 || id >= len(g.elementCells) {
		err = fmt.Errorf("element id %d out of range [0,%d)", id, len(g.elementCells))
		return
	}
	var (
		cells = g.elementCells[id]
		first = cells[0]
		seen  = make(map[int]struct{})
		ptIDs []int
	)
	el = &Element{
		ID:       id,
		CellType: g.CellTypes[first],
	}
	for _, cell := range cells {
		if ct := g.CellTypes[cell]; ct != el.CellType {
			return nil, &lagrange.UnsupportedCellTypeError{Element: id, Got: ct, Want: el.CellType}
		}
		for _, pt := range g.Cells[cell] {
			if _, ok := seen[pt]; !ok {
				seen[pt] = struct{}{}
				ptIDs = append(ptIDs, pt)
			}
		}
	}
	sort.Ints(ptIDs)
	el.Points = make([][3]float64, len(ptIDs))
	for i, pt := range ptIDs {
		el.Points[i] = g.Points[pt]
	}
	el.PointData = make([]Field, len(g.PointData))
	for i, f := range g.PointData {
		ef := NewField(f.Name, f.NumComponents, len(ptIDs))
		for j, pt := range ptIDs {
			copy(ef.Tuple(j), f.Tuple(pt))
		}
		el.PointData[i] = ef
	}
	el.CellData = make([]Field, len(g.CellData))
	for i, f := range g.CellData {
		ef := NewField(f.Name, f.NumComponents, 1)
		copy(ef.Data, f.Tuple(first))
		el.CellData[i] = ef
	}
	return
}

// Element is one spectral element pulled out of an UnstructuredGrid
type Element struct {
	ID        int
	CellType  utils.ElementType
	Points    [][3]float64
	PointData []Field
	CellData  []Field // One tuple per field
}

func (el *Element) NumPoints() int { return len(el.Points) }
