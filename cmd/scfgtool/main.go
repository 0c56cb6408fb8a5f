// Command scfgtool is a small front end exercising the scfg engine end to
// end: load a YAML graph, restructure it, and either re-emit YAML or print
// a DOT skeleton of its concealed region view.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "scfgtool",
	Short: "scfgtool restructures control-flow graphs described in YAML",
	Long: `scfgtool loads a control-flow graph from a YAML file, restructures it into
a single-entry-single-exit region tree, and reports the result.

Commands:
  restructure   Restructure a graph and re-emit it as YAML
  render        Restructure a graph and print a Graphviz DOT skeleton

Use "scfgtool [command] --help" for more information about a command.`,
}

func init() {
	rootCmd.AddCommand(restructureCmd)
	rootCmd.AddCommand(renderCmd)
}
