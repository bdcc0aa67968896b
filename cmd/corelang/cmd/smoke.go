package cmd

import (
	"fmt"

	"github.com/cwbudde/corelang/internal/scenarios"
	"github.com/cwbudde/corelang/internal/value"
	"github.com/spf13/cobra"
)

var smokeCmd = &cobra.Command{
	Use:   "smoke [scenario]",
	Short: "Compile and evaluate the built-in smoke scenarios",
	Long: `Run the end-to-end smoke scenarios: each is compiled from its expression
graph, lowered, and evaluated, and the resulting value (or error) is printed
next to its expected outcome. With a scenario name, runs only that scenario.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		list := scenarios.All
		if len(args) == 1 {
			s, ok := scenarios.Lookup(args[0])
			if !ok {
				exitWithError("unknown scenario %q", args[0])
			}
			list = []scenarios.Scenario{s}
		}

		failed := 0
		for _, s := range list {
			got, err := s.Run()
			switch {
			case s.WantErr && err != nil:
				fmt.Printf("ok   %-32s %s\n", s.Name, err)
			case s.WantErr:
				failed++
				fmt.Printf("FAIL %-32s expected an error, got %s\n", s.Name, got)
			case err != nil:
				failed++
				fmt.Printf("FAIL %-32s %s\n", s.Name, err)
			case !value.Equal(got, s.Want):
				failed++
				fmt.Printf("FAIL %-32s got %s, want %s\n", s.Name, got, s.Want)
			default:
				fmt.Printf("ok   %-32s %s = %s\n", s.Name, s.Source, got)
			}
		}
		if failed > 0 {
			exitWithError("%d scenario(s) failed", failed)
		}
	},
}

func init() {
	rootCmd.AddCommand(smokeCmd)
}
