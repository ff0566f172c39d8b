package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lex00/nghint/lint"
)

// NewRulesCommand lists the rules of reg, with sub-rules indented under the
// rule that runs them. Every listed ID can be disabled.
func NewRulesCommand(reg *lint.Registry) *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List available rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, info := range reg.Describe() {
				id := info.ID
				if info.Parent != "" {
					id = "  " + id
				}
				_, _ = fmt.Fprintf(out, "%-26s %s\n", id, info.Description)
			}
			return nil
		},
	}
}
