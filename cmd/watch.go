package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/lex00/nghint/config"
	"github.com/lex00/nghint/format"
	"github.com/lex00/nghint/lint"
	"github.com/lex00/nghint/source"
	"github.com/lex00/nghint/watch"
)

// NewWatchCommand creates a command that re-lints templates as they change.
func NewWatchCommand(reg *lint.Registry) *cobra.Command {
	var (
		outputFormat string
		delay        time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch [patterns...]",
		Short: "Re-lint templates whenever they change",
		Long: `Watch lints the given files once, then again each time one of them is
written. Directories are watched recursively for new templates.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfig(cmd, func(c *config.Config) {
				if len(args) > 0 {
					c.Files = args
				}
				if cmd.Flags().Changed("format") {
					c.Format = outputFormat
				}
			})
			if err != nil {
				return inputError(err)
			}
			lcfg, err := cfg.LintConfig()
			if err != nil {
				return inputError(err)
			}

			out := cmd.OutOrStdout()
			w, err := watch.New(watch.Config{
				Patterns: cfg.Files,
				Rules:    reg.All(),
				Lint:     lcfg,
				Walk:     source.DefaultWalkOptions,
				Delay:    delay,
				Log:      log,
				OnResults: func(results []lint.FileResult) {
					text, err := format.FormatReport(format.NewReport(results), cfg.Format, cfg.Template)
					if err != nil {
						log.WithError(err).Error("failed to format results")
						return
					}
					_, _ = fmt.Fprint(out, text)
				},
			})
			if err != nil {
				return inputError(err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "Output format (text, json, yaml)")
	cmd.Flags().DurationVar(&delay, "delay", watch.DefaultDelay, "Wait this long after a change before re-linting")

	return cmd
}
