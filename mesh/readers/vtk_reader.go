package readers

import (
	"bufio"
	"fmt"
	"io"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/notargets/golagrange/mesh"
	"github.com/notargets/golagrange/utils"
)

// ReadVTK reads a legacy ASCII VTK unstructured grid file
func ReadVTK(filename string) (*mesh.UnstructuredGrid, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ParseVTK(file)
}

/*
ParseVTK reads a legacy ASCII VTK unstructured grid. Both cell layouts are
accepted: the 4.x "CELLS n size" list of counted connectivity, and the 5.1
OFFSETS / CONNECTIVITY arrays. Point and cell attributes may be SCALARS,
VECTORS, NORMALS or FIELD arrays; names are percent decoded ("%20" is a space).
Dataset level FIELD data (TimeValue and the like) and METADATA blocks are
read past and dropped.
*/
func ParseVTK(r io.Reader) (g *mesh.UnstructuredGrid, err error) {
	br := bufio.NewReader(r)
	var header [3]string
	for i := range header {
		var line string
		if line, err = br.ReadString('\n'); err != nil && (err != io.EOF || line == "") {
			return nil, fmt.Errorf("reading VTK header line %d: %w", i+1, err)
		}
		header[i] = strings.TrimSpace(line)
	}
	err = nil
	if !strings.HasPrefix(header[0], "# vtk DataFile") {
		return nil, fmt.Errorf("not a legacy VTK file, header is %q", header[0])
	}
	if !strings.EqualFold(header[2], "ASCII") {
		return nil, fmt.Errorf("only ASCII VTK files are supported, have %q", header[2])
	}

	tk := newTokenizer(br)
	g = mesh.NewUnstructuredGrid()
	var (
		attrTarget *[]mesh.Field
		attrCount  int
		haveTypes  bool
	)
	for {
		word, ok := tk.next()
		if !ok {
			break
		}
		switch strings.ToUpper(word) {
		case "DATASET":
			var kind string
			if kind, err = tk.nextWord("dataset type"); err != nil {
				return
			}
			if !strings.EqualFold(kind, "UNSTRUCTURED_GRID") {
				return nil, fmt.Errorf("unsupported dataset type %s, need UNSTRUCTURED_GRID", kind)
			}
		case "POINTS":
			var n int
			if n, err = tk.nextCount("number of points"); err != nil {
				return
			}
			if _, err = tk.nextWord("point data type"); err != nil {
				return
			}
			g.Points = make([][3]float64, n)
			for i := 0; i < n; i++ {
				for j := 0; j < 3; j++ {
					if g.Points[i][j], err = tk.nextFloat("point coordinate"); err != nil {
						return
					}
				}
			}
		case "CELLS":
			if g.Cells, err = readCells(tk); err != nil {
				return
			}
		case "CELL_TYPES":
			var n int
			if n, err = tk.nextCount("number of cell types"); err != nil {
				return
			}
			g.CellTypes = make([]utils.ElementType, n)
			for i := 0; i < n; i++ {
				var code int
				if code, err = tk.nextInt("cell type"); err != nil {
					return
				}
				et, known := utils.ElementTypeFromVTK(code)
				if !known {
					return nil, fmt.Errorf("cell %d: unsupported VTK cell type %d", i, code)
				}
				g.CellTypes[i] = et
			}
			haveTypes = true
		case "POINT_DATA":
			if attrCount, err = tk.nextCount("number of point data tuples"); err != nil {
				return
			}
			attrTarget = &g.PointData
		case "CELL_DATA":
			if attrCount, err = tk.nextCount("number of cell data tuples"); err != nil {
				return
			}
			attrTarget = &g.CellData
		case "METADATA":
			tk.skipMetadata()
		case "SCALARS", "VECTORS", "NORMALS", "FIELD":
			kind := strings.ToUpper(word)
			if attrTarget == nil {
				if kind != "FIELD" {
					return nil, fmt.Errorf("%s section before POINT_DATA or CELL_DATA", word)
				}
				// Dataset field data, any tuple count
				if _, err = readAttribute(tk, kind, -1); err != nil {
					return
				}
				continue
			}
			var fields []mesh.Field
			if fields, err = readAttribute(tk, kind, attrCount); err != nil {
				return
			}
			*attrTarget = append(*attrTarget, fields...)
		default:
			return nil, fmt.Errorf("unexpected keyword %q in VTK file", word)
		}
	}
	if tk.err != nil {
		return nil, tk.err
	}
	if !haveTypes && len(g.Cells) != 0 {
		return nil, fmt.Errorf("VTK file has CELLS but no CELL_TYPES")
	}
	if err = g.Validate(); err != nil {
		return nil, err
	}
	return
}

func readCells(tk *tokenizer) (cells [][]int, err error) {
	var n, size int
	if n, err = tk.nextCount("number of cells"); err != nil {
		return
	}
	if size, err = tk.nextCount("cell list size"); err != nil {
		return
	}
	if strings.EqualFold(tk.peek(), "OFFSETS") {
		// 5.1 layout: n is the offsets count, size the connectivity length
		tk.next()
		tk.next() // array type
		offsets := make([]int, n)
		for i := range offsets {
			if offsets[i], err = tk.nextInt("cell offset"); err != nil {
				return
			}
			switch {
			case i == 0 && offsets[i] != 0:
				return nil, fmt.Errorf("first cell offset is %d, must be 0", offsets[i])
			case i > 0 && (offsets[i] < offsets[i-1] || offsets[i] > size):
				return nil, fmt.Errorf("cell %d: invalid offsets %d..%d", i-1, offsets[i-1], offsets[i])
			}
		}
		if n > 0 && offsets[n-1] != size {
			return nil, fmt.Errorf("last cell offset is %d, connectivity holds %d values", offsets[n-1], size)
		}
		tk.skipMetadataIfPresent()
		if w, _ := tk.next(); !strings.EqualFold(w, "CONNECTIVITY") {
			return nil, fmt.Errorf("expected CONNECTIVITY after OFFSETS, have %q", w)
		}
		tk.next() // array type
		conn := make([]int, size)
		for i := range conn {
			if conn[i], err = tk.nextInt("cell connectivity"); err != nil {
				return
			}
		}
		tk.skipMetadataIfPresent()
		if n == 0 {
			return
		}
		cells = make([][]int, n-1)
		for i := range cells {
			cells[i] = conn[offsets[i]:offsets[i+1]]
		}
		return
	}
	cells = make([][]int, n)
	var read int
	for i := 0; i < n; i++ {
		var count int
		if count, err = tk.nextCount("cell point count"); err != nil {
			return
		}
		if read += count + 1; read > size {
			return nil, fmt.Errorf("CELLS size is %d but cell %d runs past it", size, i)
		}
		cells[i] = make([]int, count)
		for j := range cells[i] {
			if cells[i][j], err = tk.nextInt("cell connectivity"); err != nil {
				return
			}
		}
	}
	if read != size {
		return nil, fmt.Errorf("CELLS size is %d but the cell list holds %d values", size, read)
	}
	return
}

// readAttribute reads one attribute section. A negative numTuples accepts any
// tuple count, for dataset level FIELD data.
func readAttribute(tk *tokenizer, kind string, numTuples int) (fields []mesh.Field, err error) {
	switch kind {
	case "SCALARS":
		var (
			name string
			comp = 1
		)
		if name, err = tk.nextName(); err != nil {
			return
		}
		tk.next() // data type
		if _, convErr := strconv.Atoi(tk.peek()); convErr == nil {
			if comp, err = tk.nextInt("number of components"); err != nil {
				return
			}
			if comp < 1 {
				return nil, fmt.Errorf("scalars %q: invalid number of components %d", name, comp)
			}
		}
		if strings.EqualFold(tk.peek(), "LOOKUP_TABLE") {
			tk.next()
			tk.next()
		}
		f := mesh.NewField(name, comp, numTuples)
		err = tk.nextFloats(f.Data, name)
		fields = append(fields, f)
	case "VECTORS", "NORMALS":
		var name string
		if name, err = tk.nextName(); err != nil {
			return
		}
		tk.next() // data type
		f := mesh.NewField(name, 3, numTuples)
		err = tk.nextFloats(f.Data, name)
		fields = append(fields, f)
	case "FIELD":
		var nArrays int
		tk.next() // field data name
		if nArrays, err = tk.nextCount("number of field arrays"); err != nil {
			return
		}
		for a := 0; a < nArrays; a++ {
			var (
				name          string
				comp, nTuples int
			)
			if name, err = tk.nextName(); err != nil {
				return
			}
			if comp, err = tk.nextCount("field array components"); err != nil {
				return
			}
			if nTuples, err = tk.nextCount("field array tuples"); err != nil {
				return
			}
			tk.next() // data type
			if comp < 1 {
				return nil, fmt.Errorf("field array %q: invalid number of components %d", name, comp)
			}
			if numTuples >= 0 && nTuples != numTuples {
				return nil, fmt.Errorf("field array %q has %d tuples, expected %d", name, nTuples, numTuples)
			}
			f := mesh.NewField(name, comp, nTuples)
			if err = tk.nextFloats(f.Data, name); err != nil {
				return
			}
			tk.skipMetadataIfPresent()
			fields = append(fields, f)
		}
	}
	return
}

// Keywords that start a section, a METADATA block without its closing blank
// line ends at one of these
var sectionKeywords = map[string]bool{
	"DATASET": true, "POINTS": true, "CELLS": true, "CELL_TYPES": true,
	"POINT_DATA": true, "CELL_DATA": true, "SCALARS": true, "VECTORS": true,
	"NORMALS": true, "FIELD": true, "METADATA": true,
}

// tokenizer splits the body of a legacy file into words, one line at a time so
// that blank lines (which close METADATA blocks) can be seen
type tokenizer struct {
	r     *bufio.Reader
	words []string
	eof   bool
	err   error
}

func newTokenizer(r *bufio.Reader) *tokenizer {
	return &tokenizer{r: r}
}

func (tk *tokenizer) readLine() (words []string, blank bool) {
	line, err := tk.r.ReadString('\n')
	if err != nil {
		if err != io.EOF {
			tk.err = err
		}
		tk.eof = true
	}
	words = strings.Fields(line)
	return words, len(words) == 0 && !tk.eof
}

func (tk *tokenizer) fill() bool {
	for len(tk.words) == 0 {
		if tk.eof {
			return false
		}
		tk.words, _ = tk.readLine()
	}
	return true
}

func (tk *tokenizer) next() (word string, ok bool) {
	if !tk.fill() {
		return "", false
	}
	word, tk.words = tk.words[0], tk.words[1:]
	return word, true
}

func (tk *tokenizer) peek() string {
	if !tk.fill() {
		return ""
	}
	return tk.words[0]
}

// skipMetadata drops the rest of a METADATA block, which runs to the next blank
// line
func (tk *tokenizer) skipMetadata() {
	tk.words = nil
	for !tk.eof {
		words, blank := tk.readLine()
		if blank {
			return
		}
		if len(words) != 0 && sectionKeywords[strings.ToUpper(words[0])] {
			tk.words = words
			return
		}
	}
}

func (tk *tokenizer) skipMetadataIfPresent() {
	if strings.EqualFold(tk.peek(), "METADATA") {
		tk.next()
		tk.skipMetadata()
	}
}

func (tk *tokenizer) nextWord(what string) (string, error) {
	w, ok := tk.next()
	if !ok {
		return "", fmt.Errorf("unexpected end of file reading %s", what)
	}
	return w, nil
}

func (tk *tokenizer) nextName() (string, error) {
	w, err := tk.nextWord("array name")
	if err != nil {
		return "", err
	}
	if decoded, decErr := url.PathUnescape(w); decErr == nil {
		w = decoded
	}
	return w, nil
}

func (tk *tokenizer) nextInt(what string) (int, error) {
	w, err := tk.nextWord(what)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(w)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %v", what, err)
	}
	return v, nil
}

// nextCount reads a size or count, which must not be negative
func (tk *tokenizer) nextCount(what string) (int, error) {
	v, err := tk.nextInt(what)
	if err == nil && v < 0 {
		err = fmt.Errorf("invalid %s: %d is negative", what, v)
	}
	return v, err
}

func (tk *tokenizer) nextFloat(what string) (float64, error) {
	w, err := tk.nextWord(what)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(w, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %v", what, err)
	}
	return v, nil
}

func (tk *tokenizer) nextFloats(dst []float64, name string) (err error) {
	for i := range dst {
		if dst[i], err = tk.nextFloat("value of " + name); err != nil {
			return
		}
	}
	return
}
