package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lex00/nghint/version"
)

// NewVersionCommand prints the module version.
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", cmd.Root().Name(), version.Version())
		},
	}
}
