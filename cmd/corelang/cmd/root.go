package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "corelang",
	Short: "Programmable runtime core: values, types, instructions, evaluator",
	Long: `corelang is the core of a small programmable runtime: a unified value
representation, an algebraic type lattice with a ranked match relation, a
compiler from builder-surface expressions to typed statements, and a
tree-walking evaluator over lowered instructions.

There is no surface-syntax parser in the core; programs are assembled
through the expression builder API and exercised via the built-in smoke
scenarios.`,
	Version: Version,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
