package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"scfg/internal/dot"
	"scfg/restructure"
	"scfg/scfgyaml"
)

var renderSkipRestructure bool

var renderCmd = &cobra.Command{
	Use:   "render <file.yaml>",
	Short: "Restructure a graph and print a Graphviz DOT skeleton",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading graph: %w", err)
		}
		g, err := scfgyaml.FromYAML(data)
		if err != nil {
			return fmt.Errorf("parsing graph: %w", err)
		}
		if !renderSkipRestructure {
			if err := restructure.Restructure(g); err != nil {
				return fmt.Errorf("restructuring graph: %w", err)
			}
		}
		fmt.Print(dot.Render(g))
		return nil
	},
}

func init() {
	renderCmd.Flags().BoolVar(&renderSkipRestructure, "raw", false, "render the graph as given, without restructuring first")
}
