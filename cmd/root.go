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
	"os"

	"github.com/charmbracelet/log"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile   string
	configErr error
	verbose   bool
	logger    = newLogger(os.Stderr, log.InfoLevel)
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "golagrange",
	Short: "Converts spectral element output into VTK Lagrange cells",
	Long: `
Spectral element solvers write each element as a tensor grid of points split
into linear sub-cells. golagrange regroups the sub-cells into their elements and
renumbers each element's points into the VTK Lagrange quadrilateral or
hexahedron ordering, so the high order solution can be viewed as a single cell.

golagrange convert -i box.vtk -o box.vtu`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := log.InfoLevel
		if verbose {
			level = log.DebugLevel
		}
		logger = newLogger(cmd.ErrOrStderr(), level)
		if cfgFile != "" && configErr != nil {
			return fmt.Errorf("reading config file %s: %w", cfgFile, configErr)
		}
		if used := viper.ConfigFileUsed(); used != "" && configErr == nil {
			logger.Debug("Using config file", "file", used)
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.golagrange.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			configErr = err
			return
		}
		// Search config in home directory with name ".golagrange" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".golagrange")
	}
	viper.SetEnvPrefix("GOLAGRANGE")
	viper.AutomaticEnv() // read in environment variables that match
	configErr = viper.ReadInConfig()
}

func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}
