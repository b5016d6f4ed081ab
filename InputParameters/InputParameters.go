package InputParameters

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/ghodss/yaml"
)

// Parameters of a conversion job, read from a YAML, JSON or TOML file
type ConvertParameters struct {
	Title          string   `json:"Title" toml:"Title"`
	InputFile      string   `json:"InputFile" toml:"InputFile"`
	OutputFile     string   `json:"OutputFile" toml:"OutputFile"`
	ElementIDField string   `json:"ElementIDField" toml:"ElementIDField"`
	ParallelDegree int      `json:"ParallelDegree" toml:"ParallelDegree"`
	PointFields    []string `json:"PointFields" toml:"PointFields"` // Point fields to keep, empty keeps all
}

// Parse reads YAML (or JSON, which is a subset)
func (cp *ConvertParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, cp)
}

func (cp *ConvertParameters) ParseTOML(data []byte) error {
	_, err := toml.Decode(string(data), cp)
	return err
}

// ReadFile picks the parser from the file extension, .toml files are TOML and
// everything else is YAML
func ReadFile(filename string) (cp *ConvertParameters, err error) {
	var data []byte
	if data, err = os.ReadFile(filename); err != nil {
		return
	}
	cp = &ConvertParameters{}
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".toml":
		err = cp.ParseTOML(data)
	default:
		err = cp.Parse(data)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filename, err)
	}
	return
}

func (cp *ConvertParameters) Print(w io.Writer) {
	fmt.Fprintf(w, "\"%s\"\t\t= Title\n", cp.Title)
	fmt.Fprintf(w, "[%s]\t\t= Input File\n", cp.InputFile)
	fmt.Fprintf(w, "[%s]\t\t= Output File\n", cp.OutputFile)
	fmt.Fprintf(w, "[%s]\t= Element ID Field\n", cp.ElementIDField)
	fmt.Fprintf(w, "[%d]\t\t\t\t= Parallel Degree\n", cp.ParallelDegree)
	if len(cp.PointFields) != 0 {
		fmt.Fprintf(w, "%v\t= Point Fields\n", cp.PointFields)
	}
}
