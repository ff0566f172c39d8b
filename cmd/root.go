package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/lex00/nghint/config"
	"github.com/lex00/nghint/lint"
	"github.com/lex00/nghint/logging"
	"github.com/lex00/nghint/version"
)

// NewRootCommand creates the root command for an nghint CLI.
func NewRootCommand(name, description string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   name,
		Short: description,
		Long: description + `

Templates are scanned for AngularJS directive attributes; each finding is
reported with its file, line and severity.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Add persistent flags available to all commands
	cmd.PersistentFlags().StringP("config", "c", "", "Config file (default: nearest "+config.ConfigFilename+")")
	cmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().String("log-format", "", "Log format (text, json)")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")

	return cmd
}

// NewApp assembles the nghint command tree around a rule registry.
func NewApp(reg *lint.Registry) *cobra.Command {
	root := NewRootCommand("nghint", "Lint AngularJS directives in HTML templates")
	root.Version = version.Version()

	engine := NewEngine(reg)
	root.AddCommand(NewLintCommand(engine))
	root.AddCommand(NewWatchCommand(reg))
	root.AddCommand(NewMCPCommand(reg))
	root.AddCommand(NewRulesCommand(reg))
	root.AddCommand(NewInitCommand(engine))
	root.AddCommand(NewVersionCommand())

	return root
}

// Run executes root, reports any error on stderr and returns the exit code.
func Run(root *cobra.Command, stderr io.Writer) int {
	err := root.Execute()
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
	}
	return ExitCode(err)
}

// loadConfig resolves the configuration for cmd: the --config file or the
// nearest config file, then the environment, then log flags, then overrides.
func loadConfig(cmd *cobra.Command, overrides ...func(*config.Config)) (*config.Config, *logging.Logger, error) {
	path, _ := cmd.Flags().GetString("config")

	logFlags := func(c *config.Config) {
		if f := cmd.Flags().Lookup("log-level"); f != nil && f.Changed {
			c.Log.Level = f.Value.String()
		} else if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			c.Log.Level = "debug"
		}
		if f := cmd.Flags().Lookup("log-format"); f != nil && f.Changed {
			c.Log.Format = f.Value.String()
		}
	}

	cfg, used, err := config.Load(path, append([]func(*config.Config){logFlags}, overrides...)...)
	if err != nil {
		return nil, nil, err
	}

	log := logging.New(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr())
	log.Debug("configuration loaded", "file", used, "patterns", len(cfg.Files))
	return cfg, log, nil
}
