package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/lex00/nghint/config"
	"github.com/lex00/nghint/lint"
	"github.com/lex00/nghint/mcp"
	"github.com/lex00/nghint/source"
	"github.com/lex00/nghint/version"
)

// NewMCPCommand serves the lint tools over stdio for MCP clients.
func NewMCPCommand(reg *lint.Registry) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve lint tools to MCP clients over stdio",
		Long: `Mcp reads JSON-RPC requests from stdin and answers on stdout, one
message per line. Logs go to stderr.

Tools: ` + mcp.ToolLintTemplate + `, ` + mcp.ToolLintFiles + `, ` + mcp.ToolListRules + `, ` +
			mcp.ToolExplain + ` and ` + mcp.ToolComplete + `.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Files arrive with each tool call.
			cfg, log, err := loadConfig(cmd, func(c *config.Config) {
				if len(c.Files) == 0 {
					c.Files = []string{"."}
				}
			})
			if err != nil {
				return inputError(err)
			}
			lcfg, err := cfg.LintConfig()
			if err != nil {
				return inputError(err)
			}

			server := mcp.NewServer(mcp.Config{
				Name:    cmd.Root().Name(),
				Version: version.Version(),
				Log:     log,
			})
			mcp.RegisterTools(server, &mcp.Linter{
				Registry: reg,
				Config:   lcfg,
				Walk:     source.DefaultWalkOptions,
				Log:      log,
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := server.Serve(ctx, cmd.InOrStdin(), cmd.OutOrStdout()); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
}
