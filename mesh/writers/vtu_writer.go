package writers

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/notargets/golagrange/mesh"
)

// WriteVTUFile writes a Lagrange grid to an ASCII VTK XML unstructured grid file
func WriteVTUFile(filename string, lg *mesh.LagrangeGrid) (err error) {
	var file *os.File
	if file, err = os.Create(filename); err != nil {
		return
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()
	return WriteVTU(file, lg)
}

/*
WriteVTU writes a Lagrange grid as an ASCII VTK XML unstructured grid.

The file is stamped version 2.2: readers treat older files as using the pre
VTK 9 hexahedron edge numbering and would swap the last two vertical edges.
*/
func WriteVTU(w io.Writer, lg *mesh.LagrangeGrid) error {
	var (
		buf = bufio.NewWriter(w)
		nv  = lg.NumPoints()
		nc  = lg.NumCells()
	)
	fmt.Fprintf(buf, "<?xml version=\"1.0\"?>\n<VTKFile type=\"UnstructuredGrid\" version=\"2.2\" byte_order=\"LittleEndian\" header_type=\"UInt64\">\n<UnstructuredGrid>\n")
	fmt.Fprintf(buf, "<Piece NumberOfPoints=\"%d\" NumberOfCells=\"%d\">\n", nv, nc)

	// points data
	fmt.Fprintf(buf, "<PointData>\n")
	for _, f := range lg.PointData {
		writeDataArray(buf, f)
	}
	fmt.Fprintf(buf, "</PointData>\n")

	// cells data
	fmt.Fprintf(buf, "<CellData>\n")
	for _, f := range lg.CellData {
		writeDataArray(buf, f)
	}
	fmt.Fprintf(buf, "</CellData>\n")

	// coordinates
	fmt.Fprintf(buf, "<Points>\n<DataArray type=\"Float64\" NumberOfComponents=\"3\" format=\"ascii\">\n")
	for _, p := range lg.Points {
		fmt.Fprintf(buf, "%s %s %s\n", formatFloat(p[0]), formatFloat(p[1]), formatFloat(p[2]))
	}
	fmt.Fprintf(buf, "</DataArray>\n</Points>\n")

	// connectivities
	fmt.Fprintf(buf, "<Cells>\n<DataArray type=\"Int64\" Name=\"connectivity\" format=\"ascii\">\n")
	for i := 0; i < nc; i++ {
		writeInts(buf, lg.CellPoints(i))
	}
	fmt.Fprintf(buf, "</DataArray>\n<DataArray type=\"Int64\" Name=\"offsets\" format=\"ascii\">\n")
	writeInts(buf, lg.Offsets)
	fmt.Fprintf(buf, "</DataArray>\n<DataArray type=\"UInt8\" Name=\"types\" format=\"ascii\">\n")
	codes := make([]int, nc)
	for i, ct := range lg.CellTypes {
		if codes[i] = ct.VTKCode(); codes[i] < 0 {
			return fmt.Errorf("cell %d: no VTK cell type for %s", i, ct)
		}
	}
	writeInts(buf, codes)
	fmt.Fprintf(buf, "</DataArray>\n</Cells>\n")

	fmt.Fprintf(buf, "</Piece>\n</UnstructuredGrid>\n</VTKFile>\n")
	return buf.Flush()
}

func writeDataArray(buf *bufio.Writer, f mesh.Field) {
	fmt.Fprintf(buf, "<DataArray type=\"Float64\" Name=\"%s\" NumberOfComponents=\"%d\" format=\"ascii\">\n",
		escapeAttr(f.Name), f.NumComponents)
	for i := 0; i < f.NumTuples(); i++ {
		for j, v := range f.Tuple(i) {
			if j > 0 {
				buf.WriteByte(' ')
			}
			buf.WriteString(formatFloat(v))
		}
		buf.WriteByte('\n')
	}
	fmt.Fprintf(buf, "</DataArray>\n")
}

func writeInts(buf *bufio.Writer, vals []int) {
	for i, v := range vals {
		if i > 0 {
			buf.WriteByte(' ')
		}
		buf.WriteString(strconv.Itoa(v))
	}
	buf.WriteByte('\n')
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func escapeAttr(s string) string {
	var sb strings.Builder
	_ = xml.EscapeText(&sb, []byte(s)) // strings.Builder writes never fail
	return sb.String()
}
