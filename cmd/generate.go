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
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/notargets/golagrange/mesh"
	"github.com/notargets/golagrange/mesh/writers"
)

type GenerateOptions struct {
	Dim, Order int
	NX, NY, NZ int // Elements in each direction
	OutputFile string
}

// GenerateCmd represents the generate command
var GenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write a box of spectral elements in solver layout",
	Long: `
Writes a legacy VTK file laid out the way spectral element solvers write their
output: every element owns a tensor grid of points, split into linear cells that
carry the element id. Useful for trying out the converter.

golagrange generate --dim 3 --order 4 --nx 2 --ny 2 --nz 2 -o box.vtk`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var gen GenerateOptions
		gen.Dim, _ = cmd.Flags().GetInt("dim")
		gen.Order, _ = cmd.Flags().GetInt("order")
		gen.NX, _ = cmd.Flags().GetInt("nx")
		gen.NY, _ = cmd.Flags().GetInt("ny")
		gen.NZ, _ = cmd.Flags().GetInt("nz")
		gen.OutputFile, _ = cmd.Flags().GetString("output")
		return RunGenerate(gen, logger)
	},
}

func init() {
	rootCmd.AddCommand(GenerateCmd)
	GenerateCmd.Flags().IntP("dim", "d", 3, "element dimension, 2 or 3")
	GenerateCmd.Flags().IntP("order", "n", 2, "polynomial order of the elements")
	GenerateCmd.Flags().Int("nx", 1, "number of elements in x")
	GenerateCmd.Flags().Int("ny", 1, "number of elements in y")
	GenerateCmd.Flags().Int("nz", 1, "number of elements in z, ignored in 2D")
	GenerateCmd.Flags().StringP("output", "o", "box.vtk", "legacy VTK file to write")
}

func RunGenerate(gen GenerateOptions, logger *log.Logger) (err error) {
	var g *mesh.UnstructuredGrid
	if g, err = mesh.NewSpectralBox(gen.Dim, gen.Order, gen.NX, gen.NY, gen.NZ); err != nil {
		return
	}
	if err = writers.WriteVTKFile(gen.OutputFile, g); err != nil {
		return
	}
	n, _ := g.NumElements()
	logger.Info("Wrote", "file", gen.OutputFile, "elements", n, "points", g.NumPoints(), "cells", g.NumCells())
	return
}
