package writers

import (
	"bufio"
	"fmt"
	"io"
	"net/url"
	"os"

	"github.com/notargets/golagrange/mesh"
)

// WriteVTKFile writes an unstructured grid to a legacy ASCII VTK file
func WriteVTKFile(filename string, g *mesh.UnstructuredGrid) (err error) {
	var file *os.File
	if file, err = os.Create(filename); err != nil {
		return
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()
	return WriteVTK(file, g)
}

// WriteVTK writes an unstructured grid in the legacy 4.2 ASCII layout. Array
// names are percent encoded so names with spaces survive.
func WriteVTK(w io.Writer, g *mesh.UnstructuredGrid) (err error) {
	if err = g.Validate(); err != nil {
		return
	}
	var (
		buf  = bufio.NewWriter(w)
		size int
	)
	fmt.Fprintf(buf, "# vtk DataFile Version 4.2\nspectral element mesh\nASCII\nDATASET UNSTRUCTURED_GRID\n")
	fmt.Fprintf(buf, "POINTS %d double\n", g.NumPoints())
	for _, p := range g.Points {
		fmt.Fprintf(buf, "%s %s %s\n", formatFloat(p[0]), formatFloat(p[1]), formatFloat(p[2]))
	}
	for _, cell := range g.Cells {
		size += len(cell) + 1
	}
	fmt.Fprintf(buf, "CELLS %d %d\n", g.NumCells(), size)
	for _, cell := range g.Cells {
		fmt.Fprintf(buf, "%d ", len(cell))
		writeInts(buf, cell)
	}
	fmt.Fprintf(buf, "CELL_TYPES %d\n", g.NumCells())
	for i, ct := range g.CellTypes {
		code := ct.VTKCode()
		if code < 0 {
			return fmt.Errorf("cell %d: no VTK cell type for %s", i, ct)
		}
		fmt.Fprintf(buf, "%d\n", code)
	}
	writeLegacyFields(buf, "CELL_DATA", g.NumCells(), g.CellData)
	writeLegacyFields(buf, "POINT_DATA", g.NumPoints(), g.PointData)
	return buf.Flush()
}

func writeLegacyFields(buf *bufio.Writer, section string, numTuples int, fields []mesh.Field) {
	if len(fields) == 0 {
		return
	}
	fmt.Fprintf(buf, "%s %d\nFIELD FieldData %d\n", section, numTuples, len(fields))
	for _, f := range fields {
		fmt.Fprintf(buf, "%s %d %d double\n", url.PathEscape(f.Name), f.NumComponents, f.NumTuples())
		for i := 0; i < f.NumTuples(); i++ {
			for j, v := range f.Tuple(i) {
				if j > 0 {
					buf.WriteByte(' ')
				}
				buf.WriteString(formatFloat(v))
			}
			buf.WriteByte('\n')
		}
	}
}
