// SPDX-License-Identifier: MPL-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"gust-cli/internal/config"
	"gust-cli/internal/runtime"
	"gust-cli/internal/search"
	"gust-cli/pkg/justfile"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"

	cfgFile        string
	justfilePath   string
	workingDir     string
	setOverrides   []string
	shellFlag      string
	shellArgs      []string
	clearShellArgs bool
	dryRun         bool
	quiet          bool
	verbose        bool
	noHighlight    bool
	colorMode      string
	virtualShell   bool

	// cfg is the loaded user configuration, populated before RunE.
	cfg = config.DefaultConfig()

	rootCmd = &cobra.Command{
		Use:   "gust [flags] [targets-and-overrides...]",
		Short: "A command runner for justfile recipes",
		Long: TitleStyle.Render("gust") + ` saves and runs project commands.

Recipes are defined in a justfile in the project directory. Running gust
with no arguments runs the first recipe; arguments of the form NAME=VALUE
override variables, everything else names recipes to run.`,
		Args:              cobra.ArbitraryArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: loadUserConfig,
		RunE:              runRecipes,
	}
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is "+config.AppName+"/config.cue in the platform config dir)")
	flags.StringVarP(&justfilePath, "justfile", "f", "", "use this justfile instead of searching")
	flags.StringVarP(&workingDir, "working-directory", "d", "", "run recipes in this directory")
	flags.StringArrayVar(&setOverrides, "set", nil, "override a variable (NAME=VALUE, repeatable)")
	flags.StringVar(&shellFlag, "shell", "", "shell to run recipe lines with")
	flags.StringArrayVar(&shellArgs, "shell-arg", nil, "argument passed to the shell (repeatable)")
	flags.BoolVar(&clearShellArgs, "clear-shell-args", false, "drop the default shell arguments")
	flags.BoolVar(&dryRun, "dry-run", false, "print what would run without running it")
	flags.BoolVarP(&quiet, "quiet", "q", false, "suppress recipe line echoing")
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable diagnostic logging")
	flags.BoolVar(&noHighlight, "no-highlight", false, "do not bold echoed recipe lines")
	flags.StringVar(&colorMode, "color", "", "colorize output: auto, always, or never")
	flags.BoolVar(&virtualShell, "virtual", false, "run recipe lines with the embedded POSIX interpreter")

	rootCmd.AddCommand(
		newListCommand(),
		newShowCommand(),
		newDumpCommand(),
		newSummaryCommand(),
		newVariablesCommand(),
		newEvaluateCommand(),
		newInitCommand(),
		newEditCommand(),
		newCompletionCommand(),
	)
}

// Execute runs the CLI and exits with the recipe's status on failure.
func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(versionString()),
		fang.WithNotifySignal(os.Interrupt, syscall.SIGTERM),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

func versionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s)", Version, Commit)
}

// loadUserConfig reads the optional config file and layers flag values
// on top. Flags the user did not set fall back to file values.
func loadUserConfig(cmd *cobra.Command, _ []string) error {
	loaded, _, err := config.Load(config.LoadOptions{ConfigFilePath: cfgFile})
	if err != nil {
		return err
	}
	cfg = loaded

	flags := cmd.Flags()
	if shellFlag == "" {
		shellFlag = cfg.Shell
		if len(shellArgs) == 0 {
			shellArgs = cfg.ShellArgs
		}
	}
	if !flags.Changed("quiet") {
		quiet = cfg.Quiet
	}
	if !flags.Changed("verbose") {
		verbose = cfg.Verbose
	}
	if !flags.Changed("no-highlight") {
		noHighlight = !cfg.Highlight
	}
	if colorMode == "" {
		colorMode = cfg.Color
	}
	if !flags.Changed("virtual") {
		virtualShell = cfg.Virtual
	}
	switch colorMode {
	case "", "auto", "always", "never":
	default:
		return fmt.Errorf("invalid --color value %q: expected auto, always, or never", colorMode)
	}
	return nil
}

// colorEnabled reports whether styled output should be emitted.
func colorEnabled() bool {
	switch colorMode {
	case "always":
		return true
	case "never":
		return false
	default:
		return term.IsTerminal(int(os.Stderr.Fd()))
	}
}

func newLogger() *log.Logger {
	if !verbose {
		return log.New(io.Discard)
	}
	logger := log.New(os.Stderr)
	logger.SetLevel(log.DebugLevel)
	return logger
}

// loadJustfile compiles the justfile named by --justfile, or the one
// discovered by walking upward from the working directory.
func loadJustfile() (*justfile.Justfile, error) {
	path := justfilePath
	if path == "" {
		start := workingDir
		if start == "" {
			wd, err := os.Getwd()
			if err != nil {
				return nil, err
			}
			start = wd
		}
		found, err := search.Justfile(start)
		if err != nil {
			return nil, err
		}
		path = found
	}
	jf, err := justfile.CompileFile(path)
	if err != nil {
		return nil, err
	}
	for _, warning := range jf.Warnings {
		fmt.Fprintln(os.Stderr, "warning: "+warning.String())
	}
	return jf, nil
}

// engineOptions builds runtime options from the flag and config state.
func engineOptions(overrides map[string]string) runtime.Options {
	// Explicit --shell-arg values replace the defaults on their own;
	// --clear-shell-args empties them even when none were passed.
	args := shellArgs
	if clearShellArgs && args == nil {
		args = []string{}
	}
	invocationDir, err := os.Getwd()
	if err != nil {
		invocationDir = ""
	}
	return runtime.Options{
		DryRun:              dryRun,
		Highlight:           !noHighlight && colorEnabled(),
		Quiet:               quiet,
		Shell:               shellFlag,
		ShellArgs:           args,
		Virtual:             virtualShell,
		WorkingDirectory:    workingDir,
		InvocationDirectory: invocationDir,
		Overrides:           overrides,
		Logger:              newLogger(),
	}
}
