package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lex00/nghint/config"
	"github.com/lex00/nghint/lint"
	"github.com/lex00/nghint/rules"
)

// inEmptyDir moves the test into a fresh temporary directory.
func inEmptyDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func TestNewRootCommand(t *testing.T) {
	root := NewRootCommand("test-cli", "Test CLI for nghint")
	assert.Equal(t, "test-cli", root.Use)
	assert.Contains(t, root.Short, "Test CLI")
	assert.NotNil(t, root.PersistentFlags().Lookup("config"))
	assert.NotNil(t, root.PersistentFlags().Lookup("log-level"))
}

func TestRootCommandExecute(t *testing.T) {
	root := NewRootCommand("test-cli", "Test CLI")
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetArgs([]string{"--help"})
	err := root.Execute()
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Test CLI")
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, ExitOK, ExitCode(nil))
	assert.Equal(t, ExitProblems, ExitCode(problems("found %d", 1)))
	assert.Equal(t, ExitInput, ExitCode(inputError(config.ErrNoFiles)))
	assert.Equal(t, ExitInput, ExitCode(errors.New("unknown flag")))

	err := inputError(config.ErrNoFiles)
	assert.ErrorIs(t, err, config.ErrNoFiles)
	assert.Equal(t, config.ErrNoFiles.Error(), err.Error())
}

type mockLinter struct {
	called  bool
	opts    LintOptions
	results []lint.FileResult
	err     error
}

func (m *mockLinter) Lint(ctx context.Context, opts LintOptions) ([]lint.FileResult, error) {
	m.called = true
	m.opts = opts
	return m.results, m.err
}

func runLint(t *testing.T, ml *mockLinter, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand("test-cli", "Test")
	root.AddCommand(NewLintCommand(ml))
	out := new(bytes.Buffer)
	root.SetOut(out)
	root.SetErr(new(bytes.Buffer))
	root.SetArgs(append([]string{"lint"}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestNewLintCommand(t *testing.T) {
	cmd := NewLintCommand(&mockLinter{})
	assert.Equal(t, "lint [patterns...]", cmd.Use)
}

func TestLintCommandExecution(t *testing.T) {
	inEmptyDir(t)

	t.Run("flags reach the configuration", func(t *testing.T) {
		ml := &mockLinter{}
		_, err := runLint(t, ml, "a.html", "views", "--format", "json", "--disable", "typo,legacy-spelling", "--min-severity", "warning")
		require.NoError(t, err)
		require.True(t, ml.called)

		cfg := ml.opts.Config
		assert.Equal(t, config.StringList{"a.html", "views"}, cfg.Files)
		assert.Equal(t, "json", cfg.Format)
		assert.Equal(t, config.StringList{"typo", "legacy-spelling"}, cfg.Disable)
		assert.Equal(t, "warning", cfg.MinSeverity)
		assert.NotNil(t, ml.opts.Log)
	})

	t.Run("no files is an input error", func(t *testing.T) {
		ml := &mockLinter{}
		_, err := runLint(t, ml)
		assert.Equal(t, ExitInput, ExitCode(err))
		assert.ErrorIs(t, err, config.ErrNoFiles)
		assert.False(t, ml.called)
	})

	t.Run("invalid flag value is an input error", func(t *testing.T) {
		_, err := runLint(t, &mockLinter{}, "a.html", "--format", "xml")
		assert.Equal(t, ExitInput, ExitCode(err))
	})

	t.Run("warnings only succeed", func(t *testing.T) {
		ml := &mockLinter{results: []lint.FileResult{{
			File:        "a.html",
			Diagnostics: []lint.Diagnostic{{Rule: "r", File: "a.html", Line: 4, Severity: lint.SeverityWarning, Message: "careful"}},
		}}}
		out, err := runLint(t, ml, "a.html")
		require.NoError(t, err)
		assert.Contains(t, out, "a.html:4 [warning] careful")
	})

	t.Run("max warnings", func(t *testing.T) {
		ml := &mockLinter{results: []lint.FileResult{{
			File:        "a.html",
			Diagnostics: []lint.Diagnostic{{Rule: "r", File: "a.html", Line: 4, Severity: lint.SeverityWarning, Message: "careful"}},
		}}}
		_, err := runLint(t, ml, "a.html", "--max-warnings", "0")
		assert.Equal(t, ExitProblems, ExitCode(err))
	})

	t.Run("errors fail", func(t *testing.T) {
		ml := &mockLinter{results: []lint.FileResult{{
			File:        "a.html",
			Diagnostics: []lint.Diagnostic{{Rule: "r", File: "a.html", Line: 1, Severity: lint.SeverityError, Message: "broken"}},
		}}}
		out, err := runLint(t, ml, "a.html", "--template", "{rule}@{line}")
		assert.Equal(t, ExitProblems, ExitCode(err))
		assert.Contains(t, out, "r@1\n")
	})

	t.Run("unreadable files fail with their errors", func(t *testing.T) {
		readErr := errors.New("open b.html: permission denied")
		ml := &mockLinter{results: []lint.FileResult{{File: "a.html"}, {File: "b.html", Err: readErr}}}
		out, err := runLint(t, ml, "a.html", "b.html")
		assert.Equal(t, ExitProblems, ExitCode(err))
		assert.ErrorIs(t, err, readErr)
		assert.Contains(t, out, "b.html: open b.html: permission denied")
	})

	t.Run("linter failure is an input error", func(t *testing.T) {
		_, err := runLint(t, &mockLinter{err: errors.New("bad pattern")}, "[")
		assert.Equal(t, ExitInput, ExitCode(err))
	})
}

func TestLintCommandUsesConfigFile(t *testing.T) {
	dir := inEmptyDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.ConfigFilename),
		[]byte("files: [index.html]\ndisable: [typo]\nformat: yaml\n"), 0644))

	ml := &mockLinter{}
	_, err := runLint(t, ml, "--disable", "empty-attribute")
	require.NoError(t, err)
	assert.Equal(t, config.StringList{"index.html"}, ml.opts.Config.Files)
	assert.Equal(t, config.StringList{"typo", "empty-attribute"}, ml.opts.Config.Disable)
	assert.Equal(t, "yaml", ml.opts.Config.Format)
}

type mockInitializer struct {
	called bool
	path   string
	opts   InitOptions
}

func (m *mockInitializer) Init(ctx context.Context, path string, opts InitOptions) error {
	m.called = true
	m.path = path
	m.opts = opts
	return nil
}

func TestNewInitCommand(t *testing.T) {
	cmd := NewInitCommand(&mockInitializer{})
	assert.Equal(t, "init [patterns...]", cmd.Use)
}

func TestInitCommandExecution(t *testing.T) {
	mi := &mockInitializer{}
	root := NewRootCommand("test-cli", "Test")
	root.AddCommand(NewInitCommand(mi))
	root.SetOut(new(bytes.Buffer))
	root.SetArgs([]string{"init", "app/**", "--force"})
	err := root.Execute()
	require.NoError(t, err)
	assert.True(t, mi.called)
	assert.Equal(t, config.ConfigFilename, mi.path)
	assert.Equal(t, InitOptions{Files: []string{"app/**"}, Force: true}, mi.opts)
}

func TestApp(t *testing.T) {
	dir := inEmptyDir(t)
	views := filepath.Join(dir, "views")
	require.NoError(t, os.MkdirAll(views, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(views, "f.html"),
		[]byte("<form>\n\n<input ng-trim=\"true\" type=\"password\">\n</form>\n"), 0644))

	t.Run("warning exits zero", func(t *testing.T) {
		root := NewApp(rules.Default())
		out := new(bytes.Buffer)
		root.SetOut(out)
		root.SetErr(new(bytes.Buffer))
		root.SetArgs([]string{"lint", "views"})

		code := Run(root, new(bytes.Buffer))
		assert.Equal(t, ExitOK, code)
		assert.Contains(t, out.String(), filepath.Join("views", "f.html")+":3 [warning]")
		assert.Contains(t, out.String(), "✗ 0 errors, 1 warning, 0 infos in 1 file")
	})

	t.Run("json output", func(t *testing.T) {
		root := NewApp(rules.Default())
		out := new(bytes.Buffer)
		root.SetOut(out)
		root.SetErr(new(bytes.Buffer))
		root.SetArgs([]string{"lint", "views", "--format", "json"})
		require.Equal(t, ExitOK, Run(root, new(bytes.Buffer)))

		var report struct {
			Diagnostics []lint.Diagnostic `json:"diagnostics"`
		}
		require.NoError(t, json.Unmarshal(out.Bytes(), &report))
		require.Len(t, report.Diagnostics, 1)
		assert.Equal(t, rules.IDPasswordTrim, report.Diagnostics[0].Rule)
		assert.Equal(t, []string{"ngTrim"}, report.Diagnostics[0].Attrs)
	})

	t.Run("disabled rule", func(t *testing.T) {
		root := NewApp(rules.Default())
		out := new(bytes.Buffer)
		root.SetOut(out)
		root.SetErr(new(bytes.Buffer))
		root.SetArgs([]string{"lint", "views", "--disable", rules.IDPasswordTrim})
		assert.Equal(t, ExitOK, Run(root, new(bytes.Buffer)))
		assert.Contains(t, out.String(), "✓ No problems found in 1 file")
	})

	t.Run("error diagnostics exit one", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.html"),
			[]byte(`<li ng-repeat="item items"></li>`), 0644))

		root := NewApp(rules.Default())
		root.SetOut(new(bytes.Buffer))
		root.SetErr(new(bytes.Buffer))
		root.SetArgs([]string{"lint", "bad.html"})
		stderr := new(bytes.Buffer)
		assert.Equal(t, ExitProblems, Run(root, stderr))
		assert.Contains(t, stderr.String(), "lint found 1 error(s)")
	})

	t.Run("unmatched pattern exits two", func(t *testing.T) {
		root := NewApp(rules.Default())
		root.SetOut(new(bytes.Buffer))
		root.SetErr(new(bytes.Buffer))
		root.SetArgs([]string{"lint", "missing/*.html"})
		assert.Equal(t, ExitInput, Run(root, new(bytes.Buffer)))
	})

	t.Run("rules", func(t *testing.T) {
		root := NewApp(rules.Default())
		out := new(bytes.Buffer)
		root.SetOut(out)
		root.SetArgs([]string{"rules"})
		require.Equal(t, ExitOK, Run(root, new(bytes.Buffer)))
		assert.Contains(t, out.String(), rules.IDMutuallyExclusive)
		assert.Contains(t, out.String(), "\n  "+rules.IDTypo)
	})

	t.Run("version", func(t *testing.T) {
		root := NewApp(rules.Default())
		out := new(bytes.Buffer)
		root.SetOut(out)
		root.SetArgs([]string{"version"})
		require.Equal(t, ExitOK, Run(root, new(bytes.Buffer)))
		assert.Contains(t, out.String(), "nghint ")
	})

	t.Run("init then lint", func(t *testing.T) {
		root := NewApp(rules.Default())
		root.SetOut(new(bytes.Buffer))
		root.SetArgs([]string{"init", "views"})
		require.Equal(t, ExitOK, Run(root, new(bytes.Buffer)))

		cfg, _, err := config.Load(filepath.Join(dir, config.ConfigFilename))
		require.NoError(t, err)
		assert.Equal(t, config.StringList{"views"}, cfg.Files)

		root = NewApp(rules.Default())
		root.SetOut(new(bytes.Buffer))
		root.SetArgs([]string{"init"})
		assert.Equal(t, ExitInput, Run(root, new(bytes.Buffer)), "existing file is kept")

		root = NewApp(rules.Default())
		out := new(bytes.Buffer)
		root.SetOut(out)
		root.SetErr(new(bytes.Buffer))
		root.SetArgs([]string{"lint"})
		assert.Equal(t, ExitOK, Run(root, new(bytes.Buffer)))
		assert.Contains(t, out.String(), ":3 [warning]")
	})
}

func TestEngineInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.ConfigFilename)
	e := NewEngine(rules.Default())

	require.NoError(t, e.Init(context.Background(), path, InitOptions{}))
	cfg, _, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.StringList{"."}, cfg.Files)

	assert.Error(t, e.Init(context.Background(), path, InitOptions{}))
	assert.NoError(t, e.Init(context.Background(), path, InitOptions{Force: true, Files: []string{"x"}}))
}

func TestEngineLintNoConfig(t *testing.T) {
	_, err := NewEngine(rules.Default()).Lint(context.Background(), LintOptions{})
	assert.ErrorIs(t, err, config.ErrNoFiles)
}

func TestMCPCommand(t *testing.T) {
	inEmptyDir(t)

	root := NewApp(rules.Default())
	out := new(bytes.Buffer)
	root.SetOut(out)
	root.SetErr(new(bytes.Buffer))
	root.SetIn(bytes.NewBufferString(`{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"lint_template","arguments":{"content":"<input type=\"password\" ng-trim=\"true\">","name":"p.html"}}}` + "\n"))
	root.SetArgs([]string{"mcp"})
	require.Equal(t, ExitOK, Run(root, new(bytes.Buffer)))

	var resp struct {
		Result struct {
			Content []struct {
				Text string `json:"text"`
			} `json:"content"`
			IsError bool `json:"isError"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	require.Len(t, resp.Result.Content, 1)
	assert.False(t, resp.Result.IsError)
	assert.Contains(t, resp.Result.Content[0].Text, "p.html:1 [warning]")
}
