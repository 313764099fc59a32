// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/databinder/databinder/pkg/types"
)

const (
	// ProcessResourcesCmd selects the resource-processing stage.
	ProcessResourcesCmd = "PROCESS_RESOURCES"
	// GenBaseClassesCmd selects the base-class generation stage.
	GenBaseClassesCmd = "GEN_BASE_CLASSES"

	usageIntro = "This binary can be used to either process xml resources or generate base classes for data binding."
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the command line with the process arguments and exits.
// This is called by main.main().
func Execute() {
	os.Exit(int(Dispatch(context.Background(), os.Args[1:], os.Stdout, os.Stderr)))
}

// Dispatch runs one invocation: argv[0] selects the subcommand and the rest
// are its flags. It never exits the process.
func Dispatch(ctx context.Context, argv []string, stdout, stderr io.Writer) types.ExitCode {
	return NewApp(Dependencies{Stdout: stdout, Stderr: stderr}).Run(ctx, argv)
}

// Run executes argv against a fresh command tree.
func (a *App) Run(ctx context.Context, argv []string) types.ExitCode {
	root := newRootCommand(a)
	root.SetArgs(normalizeArgs(root, argv))
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	err := fang.Execute(
		ctx,
		root,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithoutManpage(),
		fang.WithoutCompletions(),
		fang.WithErrorHandler(func(w io.Writer, _ fang.Styles, err error) {
			a.renderError(w, err)
		}),
	)
	return exitCodeFor(err)
}

func newRootCommand(a *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "databinder <SUBCOMMAND> [flags...]",
		Short: "Process layout resources and generate data binding base classes",
		Long: TitleStyle.Render("databinder") + SubtitleStyle.Render(" - data binding build steps") + `

` + usageIntro,
		Args: cobra.ArbitraryArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd != cmd.Root() && !isSelector(cmd.Name()) {
				return rejectSelector(cmd, cmd.Name())
			}
			a.loadConfig(cmd.Context())
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				printUsage(cmd.OutOrStdout(), cmd.Root())
				return &ExitError{Code: types.ExitFailure}
			}
			return rejectSelector(cmd, args[0])
		},
	}

	// An unknown selector is reported as such, not as a bad flag.
	root.FParseErrWhitelist.UnknownFlags = true
	// Only the two subcommands are selectors; help and completion are not.
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetHelpCommand(&cobra.Command{
		Use:                "help",
		Hidden:             true,
		DisableFlagParsing: true,
		Run:                func(*cobra.Command, []string) {},
	})

	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose output")
	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/databinder/config.cue)")
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &FlagError{Err: err}
	})

	root.AddCommand(newProcessResourcesCommand(a), newGenBaseClassesCommand(a))
	root.InitDefaultHelpFlag()
	for _, c := range root.Commands() {
		c.InitDefaultHelpFlag()
	}
	return root
}

func isSelector(name string) bool {
	return name == ProcessResourcesCmd || name == GenBaseClassesCmd
}

// rejectSelector prints usage and fails with exit status 1.
func rejectSelector(cmd *cobra.Command, name string) error {
	printUsage(cmd.OutOrStdout(), cmd.Root())
	return &ExitError{Code: types.ExitFailure, Err: fmt.Errorf("unknown subcommand %q", name)}
}

// noPositionalArgs rejects positional arguments as a flag error.
func noPositionalArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return &FlagError{Err: fmt.Errorf("unexpected argument %q for %s", args[0], cmd.Name())}
	}
	return nil
}

// printUsage lists both subcommands and their flags.
func printUsage(w io.Writer, root *cobra.Command) {
	var b strings.Builder
	b.WriteString(usageIntro)
	b.WriteString("\n\n")
	b.WriteString(SubtitleStyle.Render("Usage: "))
	b.WriteString(TitleStyle.Render(root.Name()))
	b.WriteString(" <SUBCOMMAND> [flags...]\n")
	for _, c := range root.Commands() {
		if c.Hidden || !isSelector(c.Name()) {
			continue
		}
		fmt.Fprintf(&b, "\n  %s  %s\n", CmdStyle.Render(c.Name()), c.Short)
		b.WriteString(indent(c.LocalNonPersistentFlags().FlagUsages(), "  "))
	}
	b.WriteString("\n")
	b.WriteString(SubtitleStyle.Render("Global flags:"))
	b.WriteString("\n")
	b.WriteString(indent(root.PersistentFlags().FlagUsages(), "  "))
	fmt.Fprint(w, b.String())
}

func indent(s, prefix string) string {
	lines := strings.SplitAfter(s, "\n")
	var b strings.Builder
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			b.WriteString(line)
			continue
		}
		b.WriteString(prefix + line)
	}
	return b.String()
}
