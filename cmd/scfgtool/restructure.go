package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"scfg/restructure"
	"scfg/scfgyaml"
)

var restructureCmd = &cobra.Command{
	Use:   "restructure <file.yaml>",
	Short: "Restructure a graph and re-emit it as YAML",
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
		if err := restructure.Restructure(g); err != nil {
			return fmt.Errorf("restructuring graph: %w", err)
		}
		out, err := scfgyaml.ToYAML(g)
		if err != nil {
			return fmt.Errorf("rendering graph: %w", err)
		}
		fmt.Println(string(out))
		return nil
	},
}
