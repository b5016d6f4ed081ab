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

	"github.com/ghodss/yaml"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/golagrange/lagrange"
	"github.com/notargets/golagrange/utils"
)

type OrderOptions struct {
	Dim, Order int
	Coords     bool   // List the grid coordinate of every point
	Format     string // text or yaml
	Matrix     bool   // Print the permutation matrix
}

// orderListing is the yaml form of a permutation
type orderListing struct {
	CellType string               `json:"cellType"`
	Dim      int                  `json:"dim"`
	Order    int                  `json:"order"`
	Index    []int                `json:"index"`
	Coords   []lagrange.GridCoord `json:"coords,omitempty"`
}

// OrderCmd represents the order command
var OrderCmd = &cobra.Command{
	Use:   "order",
	Short: "Print the Lagrange point ordering of an element",
	Long: `
Prints, for every position of a VTK Lagrange cell, the flat tensor grid index of
the point that lands there.

golagrange order --dim 3 --order 2 --coords`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var oo OrderOptions
		oo.Dim, _ = cmd.Flags().GetInt("dim")
		oo.Order, _ = cmd.Flags().GetInt("order")
		oo.Coords, _ = cmd.Flags().GetBool("coords")
		oo.Format, _ = cmd.Flags().GetString("format")
		oo.Matrix, _ = cmd.Flags().GetBool("matrix")
		return RunOrder(cmd.OutOrStdout(), oo)
	},
}

func init() {
	rootCmd.AddCommand(OrderCmd)
	OrderCmd.Flags().IntP("dim", "d", 3, "element dimension, 2 (quadrilateral) or 3 (hexahedron)")
	OrderCmd.Flags().IntP("order", "n", 2, "polynomial order of the element")
	OrderCmd.Flags().BoolP("coords", "c", false, "list the grid coordinates of each point")
	OrderCmd.Flags().StringP("format", "f", "text", "output format, text or yaml")
	OrderCmd.Flags().BoolP("matrix", "m", false, "print the permutation matrix")
}

func RunOrder(w io.Writer, oo OrderOptions) (err error) {
	var (
		perm *lagrange.Permutation
		ct   = utils.LagrangeQuad
	)
	if perm, err = lagrange.NewPermutation(oo.Dim, oo.Order); err != nil {
		return
	}
	if oo.Dim == 3 {
		ct = utils.LagrangeHex
	}
	switch oo.Format {
	case "text", "":
		fmt.Fprintf(w, "%s order %d, %d points\n", ct, oo.Order, perm.Len())
		coords := perm.Coords()
		if oo.Coords {
			fmt.Fprintf(w, "%6s %6s  %s\n", "vtk", "grid", "(i,j,k)")
		} else {
			fmt.Fprintf(w, "%6s %6s\n", "vtk", "grid")
		}
		for k, flat := range perm.Index {
			if oo.Coords {
				c := coords[k]
				fmt.Fprintf(w, "%6d %6d  (%d,%d,%d)\n", k, flat, c[0], c[1], c[2])
			} else {
				fmt.Fprintf(w, "%6d %6d\n", k, flat)
			}
		}
	case "yaml":
		var data []byte
		listing := orderListing{
			CellType: ct.String(),
			Dim:      oo.Dim,
			Order:    oo.Order,
			Index:    perm.Index,
		}
		if oo.Coords {
			listing.Coords = perm.Coords()
		}
		if data, err = yaml.Marshal(listing); err != nil {
			return
		}
		if _, err = w.Write(data); err != nil {
			return
		}
	default:
		return fmt.Errorf("unknown format %q, must be text or yaml", oo.Format)
	}
	if oo.Matrix {
		fmt.Fprintf(w, "P = \n%v\n", mat.Formatted(perm.Operator(), mat.Prefix("    "), mat.Squeeze()))
	}
	return
}
