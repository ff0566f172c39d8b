package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lex00/nghint/config"
	"github.com/lex00/nghint/format"
)

// NewLintCommand creates a new lint command that uses the provided Linter.
func NewLintCommand(linter Linter) *cobra.Command {
	var (
		outputFormat string
		template     string
		disable      []string
		minSeverity  string
		concurrency  int
		maxWarnings  int
	)

	cmd := &cobra.Command{
		Use:   "lint [patterns...]",
		Short: "Check templates for directive misuse",
		Long: `Lint analyzes HTML templates for AngularJS directive misuse.

Patterns may name files, directories (walked for .html and .htm files) or
globs. Without patterns the files of the configuration are linted.

Exit status is 0 when no error was found, 1 when errors were found, warnings
exceed --max-warnings or a file could not be read, and 2 on invalid input.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			cfg, log, err := loadConfig(cmd, func(c *config.Config) {
				if len(args) > 0 {
					c.Files = args
				}
				if flags.Changed("format") {
					c.Format = outputFormat
				}
				if flags.Changed("template") {
					c.Template = template
				}
				if flags.Changed("disable") {
					c.Disable = append(c.Disable, disable...)
				}
				if flags.Changed("min-severity") {
					c.MinSeverity = minSeverity
				}
				if flags.Changed("concurrency") {
					c.Concurrency = concurrency
				}
			})
			if err != nil {
				return inputError(err)
			}

			results, err := linter.Lint(cmd.Context(), LintOptions{Config: cfg, Log: log})
			if err != nil {
				return inputError(fmt.Errorf("lint failed: %w", err))
			}

			report := format.NewReport(results)
			out, err := format.FormatReport(report, cfg.Format, cfg.Template)
			if err != nil {
				return inputError(err)
			}
			_, _ = fmt.Fprint(cmd.OutOrStdout(), out)

			var unitErrs []error
			for _, r := range results {
				if r.Err != nil {
					unitErrs = append(unitErrs, r.Err)
				}
			}

			switch {
			case report.Summary.Errors > 0:
				return problems("lint found %d error(s)", report.Summary.Errors)
			case maxWarnings >= 0 && report.Summary.Warnings > maxWarnings:
				return problems("lint found %d warning(s), more than the maximum of %d", report.Summary.Warnings, maxWarnings)
			case len(unitErrs) > 0:
				return &ExitError{Code: ExitProblems, Err: errors.Join(unitErrs...)}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "Output format (text, json, yaml)")
	cmd.Flags().StringVarP(&template, "template", "t", format.DefaultTemplate, "Line template for text output")
	cmd.Flags().StringSliceVar(&disable, "disable", nil, "Rules to disable (comma-separated)")
	cmd.Flags().StringVar(&minSeverity, "min-severity", "info", "Lowest severity to report (error, warning, info)")
	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "Files linted at once (0 uses all CPUs)")
	cmd.Flags().IntVar(&maxWarnings, "max-warnings", -1, "Fail when more warnings are found (-1 disables)")

	return cmd
}
