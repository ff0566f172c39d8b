package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lex00/nghint/config"
)

// NewInitCommand creates a new init command that uses the provided Initializer.
func NewInitCommand(initializer Initializer) *cobra.Command {
	var opts InitOptions
	var path string

	cmd := &cobra.Command{
		Use:   "init [patterns...]",
		Short: "Write a starter configuration file",
		Long: `Init writes ` + config.ConfigFilename + ` with default settings.

The patterns become the files to lint; without patterns the current
directory is linted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Files = args
			if err := initializer.Init(cmd.Context(), path, opts); err != nil {
				return inputError(fmt.Errorf("init failed: %w", err))
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&path, "output", "o", config.ConfigFilename, "Path of the configuration file")
	cmd.Flags().BoolVar(&opts.Force, "force", false, "Overwrite an existing file")

	return cmd
}
