/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"io"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/notargets/golagrange/InputParameters"
	"github.com/notargets/golagrange/convert"
	"github.com/notargets/golagrange/mesh"
	"github.com/notargets/golagrange/mesh/readers"
	"github.com/notargets/golagrange/mesh/writers"
	"github.com/notargets/golagrange/utils"
)

type ConvertJob struct {
	InputFile, OutputFile string
	ElementIDField        string
	ParallelDegree        int
	PointFields           []string // Empty keeps every point field
	Profile               string
}

// ConvertCmd represents the convert command
var ConvertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a spectral element mesh into Lagrange cells",
	Long: `
Reads a legacy VTK unstructured grid written by a spectral element solver, groups
its linear cells by the element id cell field, and writes one VTK Lagrange
quadrilateral or hexahedron per element to a .vtu file.

golagrange convert -i box.vtk -o box.vtu -p 8`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var job *ConvertJob
		if job, err = newConvertJob(cmd.Flags(), viper.GetViper(), cmd.OutOrStdout()); err != nil {
			return
		}
		switch job.Profile {
		case "":
		case "cpu":
			defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
		case "mem":
			defer profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
		default:
			return fmt.Errorf("unknown profile %q, must be cpu or mem", job.Profile)
		}
		return RunConvert(job, logger)
	},
}

func init() {
	rootCmd.AddCommand(ConvertCmd)
	addConvertFlags(ConvertCmd.Flags())
	bindConvertFlags(viper.GetViper(), ConvertCmd.Flags())
}

func addConvertFlags(fs *pflag.FlagSet) {
	fs.StringP("input", "i", "", "spectral element mesh to read, legacy VTK (.vtk)")
	fs.StringP("output", "o", "", "Lagrange cell mesh to write (.vtu), defaults to the input name")
	fs.String("elementIdField", mesh.DefaultElementIDField, "cell field holding the spectral element id")
	fs.IntP("parallel", "p", runtime.NumCPU(), "number of goroutines converting elements")
	fs.StringP("inputParametersFile", "I", "", "YAML, JSON or TOML job file with the conversion parameters")
	fs.String("profile", "", "write a cpu or mem profile to the current directory")
}

func bindConvertFlags(v *viper.Viper, fs *pflag.FlagSet) {
	for _, name := range []string{"elementIdField", "parallel", "output"} {
		if err := v.BindPFlag(name, fs.Lookup(name)); err != nil {
			panic(err)
		}
	}
}

/*
newConvertJob resolves the conversion parameters. Config file and environment
values (through v) are the base, a job file given with -I overrides them, and
flags set on the command line override both.
*/
func newConvertJob(fs *pflag.FlagSet, v *viper.Viper, out io.Writer) (job *ConvertJob, err error) {
	job = &ConvertJob{
		OutputFile:     v.GetString("output"),
		ElementIDField: v.GetString("elementIdField"),
		ParallelDegree: v.GetInt("parallel"),
	}
	job.InputFile, _ = fs.GetString("input")
	job.Profile, _ = fs.GetString("profile")
	if ipFile, _ := fs.GetString("inputParametersFile"); ipFile != "" {
		var cp *InputParameters.ConvertParameters
		if cp, err = InputParameters.ReadFile(ipFile); err != nil {
			return nil, err
		}
		cp.Print(out)
		applyParameters(job, cp, fs)
	}
	if job.InputFile == "" {
		return nil, fmt.Errorf("must supply an input mesh (-i, --input) or a job file with InputFile (-I)")
	}
	if job.OutputFile == "" {
		job.OutputFile = strings.TrimSuffix(job.InputFile, filepath.Ext(job.InputFile)) + ".vtu"
	}
	if !strings.EqualFold(filepath.Ext(job.OutputFile), ".vtu") {
		return nil, fmt.Errorf("output file %s must have a .vtu extension", job.OutputFile)
	}
	return
}

func applyParameters(job *ConvertJob, cp *InputParameters.ConvertParameters, fs *pflag.FlagSet) {
	if cp.InputFile != "" && !fs.Changed("input") {
		job.InputFile = cp.InputFile
	}
	if cp.OutputFile != "" && !fs.Changed("output") {
		job.OutputFile = cp.OutputFile
	}
	if cp.ElementIDField != "" && !fs.Changed("elementIdField") {
		job.ElementIDField = cp.ElementIDField
	}
	if cp.ParallelDegree > 0 && !fs.Changed("parallel") {
		job.ParallelDegree = cp.ParallelDegree
	}
	job.PointFields = cp.PointFields
}

// RunConvert reads the input mesh, converts it and writes the Lagrange mesh
func RunConvert(job *ConvertJob, logger *log.Logger) (err error) {
	var (
		g     *mesh.UnstructuredGrid
		stats *convert.Stats
	)
	logger.Info("Reading", "file", job.InputFile)
	if g, err = readers.ReadMeshFile(job.InputFile); err != nil {
		return
	}
	logger.Debug("Read mesh", "points", g.NumPoints(), "cells", g.NumCells(),
		"pointFields", len(g.PointData), "cellFields", len(g.CellData))
	if job.ElementIDField != "" {
		g.ElementIDField = job.ElementIDField
	}
	if len(job.PointFields) != 0 {
		if err = selectPointFields(g, job.PointFields); err != nil {
			return
		}
	}
	lg := mesh.NewLagrangeGrid()
	if stats, err = convert.ToLagrange(g, lg, convert.Options{
		ParallelDegree: job.ParallelDegree,
		Logger:         logger,
	}); err != nil {
		return
	}
	if err = writers.WriteVTUFile(job.OutputFile, lg); err != nil {
		return
	}
	logger.Info("Wrote", "file", job.OutputFile, "cells", stats.NumElements, "type", stats.CellType)
	logger.Debug("Memory", "usage", utils.GetMemUsage())
	return
}

func selectPointFields(g *mesh.UnstructuredGrid, names []string) error {
	var kept []mesh.Field
	for _, name := range names {
		f, ok := g.PointField(name)
		if !ok {
			return fmt.Errorf("mesh has no point field named %q", name)
		}
		kept = append(kept, *f)
	}
	g.PointData = kept
	return nil
}
