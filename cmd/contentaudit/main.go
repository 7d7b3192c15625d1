package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"

	"contentaudit/internal/prof"
	"contentaudit/internal/version"
)

// Exit codes: 0 clean, 1 CRITICAL issues found, 2 operational failure.
const (
	exitOK          = 0
	exitCritical    = 1
	exitOperational = 2
)

// exitError carries a process exit code through cobra's RunE.
type exitError struct {
	code   int
	err    error
	silent bool // already reported, print nothing
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }

var errCriticalFound = errors.New("critical issues found")

// exitCode maps a RunE error onto the process exit code. Anything that is not
// an exitError is an operational failure.
func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitOperational
}

// cli holds state shared by the subcommands of one invocation.
type cli struct {
	logger   *zap.Logger
	profiler *prof.Session
}

func newRootCmd() (*cobra.Command, *cli) {
	app := &cli{logger: zap.NewNop()}
	rootCmd := &cobra.Command{
		Use:   "contentaudit",
		Short: "Content quality audit for question banks",
		Long: `contentaudit scans course question banks, checks every record for structural,
content and metadata defects, and cross-checks the corpus for duplicates.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := app.setupLogger(cmd)
			if err != nil {
				return err
			}
			app.logger = logger
			return app.setupProfiling(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			app.close()
		},
	}

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().String("log-level", "warn", "operational log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().Bool("timings", false, "show phase timings on stderr")
	rootCmd.PersistentFlags().String("cpu-profile", "", "write a CPU profile to this file")
	rootCmd.PersistentFlags().String("mem-profile", "", "write a heap profile to this file on exit")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write a runtime trace to this file")

	rootCmd.AddCommand(newAuditCmd(app))
	rootCmd.AddCommand(newExtractCmd(app))
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd, app
}

// setupLogger builds the console logger on stderr so stdout stays machine-readable.
func (app *cli) setupLogger(cmd *cobra.Command) (*zap.Logger, error) {
	levelStr, err := cmd.Root().PersistentFlags().GetString("log-level")
	if err != nil {
		return nil, fmt.Errorf("failed to get log-level flag: %w", err)
	}
	level, err := zapcore.ParseLevel(levelStr)
	if err != nil {
		return nil, usageError(fmt.Errorf("invalid --log-level %q: %w", levelStr, err))
	}
	if f := cmd.Flags().Lookup("verbose"); f != nil && f.Value.String() == "true" && level > zapcore.InfoLevel {
		level = zapcore.InfoLevel
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(cmd.ErrOrStderr()), level)
	return zap.New(core), nil
}

// setupProfiling starts the profilers requested by the persistent flags.
func (app *cli) setupProfiling(cmd *cobra.Command) error {
	root := cmd.Root()
	var opts prof.Options
	var err error
	if opts.CPUPath, err = root.PersistentFlags().GetString("cpu-profile"); err != nil {
		return fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	if opts.MemPath, err = root.PersistentFlags().GetString("mem-profile"); err != nil {
		return fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	if opts.TracePath, err = root.PersistentFlags().GetString("runtime-trace"); err != nil {
		return fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}
	if !opts.Enabled() {
		return nil
	}
	if app.profiler, err = prof.Start(opts); err != nil {
		return err
	}
	return nil
}

// close stops profiling and flushes the logger. Safe to call twice:
// PersistentPostRun is skipped when RunE fails, so execute calls it too.
func (app *cli) close() {
	if err := app.profiler.Stop(); err != nil {
		app.logger.Warn("failed to write profile", zap.Error(err))
	}
	_ = app.logger.Sync()
}

func usageError(err error) error {
	return &exitError{code: exitOperational, err: err}
}

// execute runs the CLI and returns the process exit code.
func execute(args []string, stdout, stderr io.Writer) int {
	rootCmd, app := newRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.Execute()
	app.close()
	var ee *exitError
	if err != nil && !(errors.As(err, &ee) && ee.silent) {
		fmt.Fprintf(stderr, "error: %v\n", err)
	}
	return exitCode(err)
}

// main runs the CLI; the exit status is 0, 1 on CRITICAL issues and 2 on failure.
func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}

// isTerminal проверяет, является ли writer терминалом
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

type colorMode string

const (
	colorAuto colorMode = "auto"
	colorOn   colorMode = "on"
	colorOff  colorMode = "off"
)

func readColorMode(value string) (colorMode, error) {
	switch colorMode(value) {
	case "", colorAuto:
		return colorAuto, nil
	case colorOn, colorOff:
		return colorMode(value), nil
	}
	return "", usageError(fmt.Errorf("invalid --color value %q (expected auto|on|off)", value))
}

func (m colorMode) enabled(w io.Writer) bool {
	switch m {
	case colorOn:
		return true
	case colorOff:
		return false
	}
	return isTerminal(w) && os.Getenv("NO_COLOR") == ""
}
