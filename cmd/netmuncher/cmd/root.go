package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	outputPath string
	format     string
)

var rootCmd = &cobra.Command{
	Use:     "netmuncher <INPUT>",
	Short:   "Compile a netmuncher circuit description into a netlist",
	Long:    `netmuncher loads a circuit description, validates it, elaborates the abstract component tree rooted at Main, and emits a netlist (or a visualization of the design).`,
	Args:    cobra.ExactArgs(1),
	Version: "0.1",
	RunE:    runCompile,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file path (default: <INPUT>.net, or .json for diagram_json)")
	rootCmd.Flags().StringVarP(&format, "format", "f", "kicad", "output format: kicad, dot, or diagram_json")
}
