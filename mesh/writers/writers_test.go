package writers

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/golagrange/mesh"
	"github.com/notargets/golagrange/utils"
)

func quadGrid(t *testing.T) *mesh.LagrangeGrid {
	lg := mesh.NewLagrangeGrid()
	pts := [][3]float64{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}
	for i := 0; i < 2; i++ {
		require.NoError(t, lg.AddLagrangeCell(utils.LagrangeQuad, pts,
			[]mesh.Field{{Name: "grid index", NumComponents: 1, Data: []float64{0, 1, 3, 2}}},
			[]mesh.Field{{Name: "spectral element id", NumComponents: 1, Data: []float64{float64(i)}}}))
	}
	return lg
}

func TestWriteVTU(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteVTU(&buf, quadGrid(t)))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "<?xml version=\"1.0\"?>"))
	assert.Contains(t, out, `version="2.2"`)
	assert.Contains(t, out, `<Piece NumberOfPoints="8" NumberOfCells="2">`)
	assert.Contains(t, out, `Name="grid index" NumberOfComponents="1"`)
	assert.Contains(t, out, "0\n1\n3\n2\n0\n1\n3\n2\n")
	assert.Contains(t, out, "<DataArray type=\"Int64\" Name=\"connectivity\" format=\"ascii\">\n0 1 2 3\n4 5 6 7\n")
	assert.Contains(t, out, "<DataArray type=\"Int64\" Name=\"offsets\" format=\"ascii\">\n4 8\n")
	assert.Contains(t, out, "<DataArray type=\"UInt8\" Name=\"types\" format=\"ascii\">\n70 70\n")
	assert.True(t, strings.HasSuffix(out, "</VTKFile>\n"))
}

func TestWriteVTUEscapesNames(t *testing.T) {
	lg := quadGrid(t)
	lg.PointData[0].Name = `p<"1">&q`
	var buf bytes.Buffer
	require.NoError(t, WriteVTU(&buf, lg))
	assert.Contains(t, buf.String(), `Name="p&lt;&#34;1&#34;&gt;&amp;q"`)
}

func TestWriteVTUErrors(t *testing.T) {
	lg := &mesh.LagrangeGrid{
		Points:       [][3]float64{{0, 0, 0}},
		Connectivity: []int{0},
		Offsets:      []int{1},
		CellTypes:    []utils.ElementType{utils.Unknown},
	}
	var buf bytes.Buffer
	assert.Error(t, WriteVTU(&buf, lg))
	assert.Error(t, WriteVTUFile(filepath.Join(t.TempDir(), "no", "such", "dir.vtu"), quadGrid(t)))
}

func TestWriteFiles(t *testing.T) {
	dir := t.TempDir()
	vtu := filepath.Join(dir, "out.vtu")
	require.NoError(t, WriteVTUFile(vtu, quadGrid(t)))
	data, err := os.ReadFile(vtu)
	require.NoError(t, err)
	assert.Contains(t, string(data), "UnstructuredGrid")

	g, err := mesh.NewSpectralBox(3, 1, 1, 1, 1)
	require.NoError(t, err)
	vtk := filepath.Join(dir, "box.vtk")
	require.NoError(t, WriteVTKFile(vtk, g))
	data, err = os.ReadFile(vtk)
	require.NoError(t, err)
	text := string(data)
	assert.True(t, strings.HasPrefix(text, "# vtk DataFile Version 4.2\n"))
	assert.Contains(t, text, "CELLS 1 9\n8 0 1 3 2 4 5 7 6\n")
	assert.Contains(t, text, "CELL_TYPES 1\n12\n")
	assert.Contains(t, text, "spectral%20element%20id 1 1 double\n")
	assert.Contains(t, text, "velocity 3 8 double\n")

	g.Cells[0] = g.Cells[0][:3]
	assert.Error(t, WriteVTKFile(vtk, g))
}
