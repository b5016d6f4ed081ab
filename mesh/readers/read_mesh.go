package readers

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/notargets/golagrange/mesh"
)

// ReadMeshFile reads a mesh file based on extension
func ReadMeshFile(filename string) (*mesh.UnstructuredGrid, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".vtk":
		return ReadVTK(filename)
	default:
		return nil, fmt.Errorf("unsupported mesh format: %s", ext)
	}
}
