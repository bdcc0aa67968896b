package cmd

import (
	"fmt"

	"github.com/cwbudde/corelang/internal/instr"
	"github.com/cwbudde/corelang/internal/scenarios"
	"github.com/spf13/cobra"
)

var disasmYAML bool

var disasmCmd = &cobra.Command{
	Use:   "disasm <scenario>",
	Short: "Print a scenario's lowered instruction tree",
	Long: `Compile a smoke scenario and print its lowered instruction tree in the
debug text form. With --yaml, also dump the compiled statement's cached type
as YAML for tooling.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s, ok := scenarios.Lookup(args[0])
		if !ok {
			exitWithError("unknown scenario %q", args[0])
		}
		st, _, err := s.Compile()
		if err != nil {
			exitWithError("compile %s: %s", s.Name, err)
		}
		fmt.Printf("; %s\n", s.Source)
		if disasmYAML {
			dump, err := st.CachedType.DebugYAML()
			if err != nil {
				exitWithError("type dump: %s", err)
			}
			fmt.Printf("; result type:\n")
			fmt.Print(prefixLines(dump, ";   "))
		}
		fmt.Print(instr.PrintToString(instr.Lower(st)))
	},
}

func prefixLines(s, prefix string) string {
	out := ""
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			out += prefix + s[start:i+1]
			start = i + 1
		}
	}
	if start < len(s) {
		out += prefix + s[start:] + "\n"
	}
	return out
}

func init() {
	disasmCmd.Flags().BoolVar(&disasmYAML, "yaml", false, "dump the result type as YAML")
	rootCmd.AddCommand(disasmCmd)
}
