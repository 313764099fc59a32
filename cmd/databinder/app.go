// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/databinder/databinder/internal/config"
	"github.com/databinder/databinder/internal/engine"
	"github.com/databinder/databinder/internal/engine/layoutxml"
	"github.com/databinder/databinder/internal/issue"
	"github.com/databinder/databinder/internal/pipeline"
	"github.com/databinder/databinder/pkg/types"
)

type (
	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}

	// EngineFactory builds the engine the pipelines drive.
	EngineFactory func(logger *log.Logger) engine.Engine

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config ConfigProvider
		Engine EngineFactory
		Stdout io.Writer
		Stderr io.Writer
	}

	// App is the composition root of one CLI invocation. It is built per
	// invocation, so no state leaks between runs.
	App struct {
		config    ConfigProvider
		newEngine EngineFactory
		stdout    io.Writer
		stderr    io.Writer

		// set from global flags and config before a subcommand runs
		verbose bool
		cfgFile string
		cfg     *config.Config
		logger  *log.Logger
	}
)

// NewApp builds an App from deps.
func NewApp(deps Dependencies) *App {
	a := &App{
		config:    deps.Config,
		newEngine: deps.Engine,
		stdout:    deps.Stdout,
		stderr:    deps.Stderr,
		cfg:       config.DefaultConfig(),
	}
	if a.config == nil {
		a.config = config.NewProvider()
	}
	if a.newEngine == nil {
		a.newEngine = func(logger *log.Logger) engine.Engine { return layoutxml.New(logger) }
	}
	if a.stdout == nil {
		a.stdout = os.Stdout
	}
	if a.stderr == nil {
		a.stderr = os.Stderr
	}
	a.logger = log.NewWithOptions(a.stderr, log.Options{Prefix: config.AppName})
	return a
}

// loadConfig applies the configuration and the --verbose flag. A config that
// fails to load is reported as a warning and defaults are used.
func (a *App) loadConfig(ctx context.Context) {
	cfg, err := a.config.Load(ctx, config.LoadOptions{ConfigFilePath: types.FilesystemPath(a.cfgFile)})
	if err != nil {
		fmt.Fprintln(a.stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, a.verbose))
		cfg = config.DefaultConfig()
	}
	a.cfg = cfg

	level, err := log.ParseLevel(cfg.LogLevel.String())
	if err != nil {
		level = log.InfoLevel
	}
	if a.verbose {
		level = log.DebugLevel
	}
	a.logger.SetLevel(level)
	if cfg.Source != "" {
		a.logger.Debug("loaded configuration", "path", cfg.Source)
	}
}

func (a *App) newRunner() *pipeline.Runner {
	return pipeline.NewRunner(
		a.newEngine(a.logger),
		pipeline.WithLogger(a.logger),
		pipeline.WithTempRoot(a.cfg.TempRoot),
		pipeline.WithKeepTemp(a.cfg.KeepTemp),
		pipeline.WithLayoutInfoArchiveName(a.cfg.LayoutInfoArchiveName),
	)
}

// runPipeline runs one pipeline and turns its failure into a command error.
// Invalid options are flag errors in every mode. Other failures exit
// non-zero unless legacy_exit_status is set, in which case they are only
// logged.
func (a *App) runPipeline(ctx context.Context, operation string, run func(context.Context, *pipeline.Runner) error) error {
	err := run(ctx, a.newRunner())
	if err == nil {
		return nil
	}
	if errors.Is(err, pipeline.ErrInvalidOptions) {
		return &FlagError{Err: err}
	}

	code := exitCodeFor(err)
	actionable := issue.NewErrorContext().
		WithOperation(operation).
		WithIssue(issueFor(code)).
		Wrap(err)
	switch code {
	case types.ExitInvalidInput:
		actionable.WithSuggestions(
			"Pass an existing zip archive or directory",
			"Check that the build step producing this input ran first",
		)
	case types.ExitUnsupported:
		actionable.WithSuggestion("Leave -zipSourceOutput off to write sources to a directory")
	}
	reported := actionable.BuildError()

	if a.cfg.LegacyExitStatus {
		a.logger.Error("pipeline failed", "operation", operation, "err", err)
		return nil
	}
	return &ExitError{Code: code, Err: reported}
}

func issueFor(code types.ExitCode) issue.Id {
	switch code {
	case types.ExitInvalidInput:
		return issue.InputNotUsableId
	case types.ExitUnsupported:
		return issue.UnsupportedOperationId
	default:
		return issue.PipelineFailedId
	}
}

// renderError is the fang error handler.
func (a *App) renderError(w io.Writer, err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Err == nil {
		return
	}

	fmt.Fprintln(w, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, a.verbose))

	var flagErr *FlagError
	if errors.As(err, &flagErr) {
		fmt.Fprintln(w, SubtitleStyle.Render("Run 'databinder <SUBCOMMAND> --help' for the list of flags."))
	}

	var ae *issue.ActionableError
	if !a.verbose || !errors.As(err, &ae) || ae.IssueID == 0 {
		return
	}
	if entry := issue.Get(ae.IssueID); entry != nil {
		rendered, renderErr := entry.Render("dark")
		if renderErr != nil {
			a.logger.Warn("failed to render issue catalog entry", "issueID", ae.IssueID, "err", renderErr)
			return
		}
		fmt.Fprint(w, rendered)
	}
}

// formatErrorForDisplay uses ActionableError.Format when available.
func formatErrorForDisplay(err error, verbose bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verbose)
	}
	return err.Error()
}
