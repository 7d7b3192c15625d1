package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"contentaudit/internal/diag"
	"contentaudit/internal/diagfmt"
	"contentaudit/internal/driver"
	"contentaudit/internal/observ"
	"contentaudit/internal/project"
	"contentaudit/internal/version"
)

func newAuditCmd(app *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit [flags]",
		Short: "Audit question banks and report content issues",
		Long: `Audit scans every course directory under the data root, checks each question
record, checks answer distribution per file and looks for duplicates across the
whole corpus. Exit status is 1 when CRITICAL issues are found, 2 on failure.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runAudit(cmd)
		},
	}

	cmd.Flags().String("config", "", "path to contentaudit.toml (or .yaml); default: nearest contentaudit.toml")
	cmd.Flags().String("root", "", "data root containing the course directories (overrides config)")
	cmd.Flags().StringSlice("course", nil, "restrict the audit to these course ids (repeatable)")
	cmd.Flags().String("severity", "", "minimum severity to report (LOW|MEDIUM|HIGH|CRITICAL)")
	cmd.Flags().Int("limit", 0, "maximum number of issues to show (0 = no limit)")
	cmd.Flags().Int("jobs", 0, "files processed in parallel (0 = config, 1 = sequential)")
	cmd.Flags().String("format", "pretty", "output format (pretty|json|short|sarif)")
	cmd.Flags().Bool("json", false, "shorthand for --format json")
	cmd.Flags().Bool("summary", false, "print statistics only")
	cmd.Flags().BoolP("verbose", "v", false, "show file locations and every issue")
	cmd.Flags().String("progress", "off", "show scan progress on stderr (auto|on|off)")
	cmd.Flags().Bool("cache", false, "cache extracted records between runs")
	return cmd
}

// auditOptions are the parsed flags of the audit command.
type auditOptions struct {
	configPath string
	root       string
	courses    []string
	severity   string
	limit      int
	jobs       int
	format     diagfmt.Format
	summary    bool
	verbose    bool
	progress   colorMode
	cache      bool
	color      colorMode
	timings    bool
}

func readAuditOptions(cmd *cobra.Command) (auditOptions, error) {
	var opts auditOptions
	var err error

	if opts.configPath, err = cmd.Flags().GetString("config"); err != nil {
		return opts, fmt.Errorf("failed to get config flag: %w", err)
	}
	if opts.root, err = cmd.Flags().GetString("root"); err != nil {
		return opts, fmt.Errorf("failed to get root flag: %w", err)
	}
	if opts.courses, err = cmd.Flags().GetStringSlice("course"); err != nil {
		return opts, fmt.Errorf("failed to get course flag: %w", err)
	}
	if opts.severity, err = cmd.Flags().GetString("severity"); err != nil {
		return opts, fmt.Errorf("failed to get severity flag: %w", err)
	}
	if opts.limit, err = cmd.Flags().GetInt("limit"); err != nil {
		return opts, fmt.Errorf("failed to get limit flag: %w", err)
	}
	if opts.limit < 0 {
		return opts, usageError(fmt.Errorf("--limit must not be negative"))
	}
	if opts.jobs, err = cmd.Flags().GetInt("jobs"); err != nil {
		return opts, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if opts.jobs < 0 {
		return opts, usageError(fmt.Errorf("--jobs must not be negative"))
	}

	formatStr, err := cmd.Flags().GetString("format")
	if err != nil {
		return opts, fmt.Errorf("failed to get format flag: %w", err)
	}
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return opts, fmt.Errorf("failed to get json flag: %w", err)
	}
	if asJSON {
		if cmd.Flags().Changed("format") && formatStr != string(diagfmt.FormatJSON) {
			return opts, usageError(fmt.Errorf("--json conflicts with --format %s", formatStr))
		}
		formatStr = string(diagfmt.FormatJSON)
	}
	format, ok := diagfmt.ParseFormat(strings.ToLower(formatStr))
	if !ok {
		return opts, usageError(fmt.Errorf("unknown format: %s", formatStr))
	}
	opts.format = format

	if opts.summary, err = cmd.Flags().GetBool("summary"); err != nil {
		return opts, fmt.Errorf("failed to get summary flag: %w", err)
	}
	if opts.verbose, err = cmd.Flags().GetBool("verbose"); err != nil {
		return opts, fmt.Errorf("failed to get verbose flag: %w", err)
	}
	progressStr, err := cmd.Flags().GetString("progress")
	if err != nil {
		return opts, fmt.Errorf("failed to get progress flag: %w", err)
	}
	if opts.progress, err = readColorMode(progressStr); err != nil {
		return opts, usageError(fmt.Errorf("invalid --progress value %q (expected auto|on|off)", progressStr))
	}
	if opts.cache, err = cmd.Flags().GetBool("cache"); err != nil {
		return opts, fmt.Errorf("failed to get cache flag: %w", err)
	}

	colorStr, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return opts, fmt.Errorf("failed to get color flag: %w", err)
	}
	if opts.color, err = readColorMode(colorStr); err != nil {
		return opts, err
	}
	if opts.timings, err = cmd.Root().PersistentFlags().GetBool("timings"); err != nil {
		return opts, fmt.Errorf("failed to get timings flag: %w", err)
	}
	return opts, nil
}

// loadConfig resolves the configuration and applies flag overrides.
func loadConfig(opts auditOptions, logger *zap.Logger) (*project.Config, error) {
	var (
		cfg project.Config
		err error
	)
	if opts.configPath != "" {
		cfg, err = project.Load(opts.configPath)
	} else {
		var wd string
		if wd, err = os.Getwd(); err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		cfg, err = project.LoadNearest(wd)
		if errors.Is(err, project.ErrConfigNotFound) {
			logger.Debug("no project file, using defaults", zap.String("file", project.ConfigFileName))
			err = nil
		}
	}
	if err != nil {
		return nil, usageError(err)
	}
	if cfg.Path != "" {
		logger.Info("loaded config", zap.String("path", cfg.Path))
	}

	if opts.root != "" {
		cfg.DataRoot = opts.root
	}
	if opts.severity != "" {
		cfg.MinSeverity = opts.severity
	}
	if opts.limit > 0 {
		cfg.Limit = opts.limit
	}
	if opts.jobs > 0 {
		cfg.Jobs = opts.jobs
	}
	for _, c := range opts.courses {
		if !cfg.HasCourse(c) {
			logger.Warn("course is not in the configured course list", zap.String("course", c))
		}
	}
	return &cfg, nil
}

func (app *cli) runAudit(cmd *cobra.Command) error {
	opts, err := readAuditOptions(cmd)
	if err != nil {
		return err
	}
	logger := app.logger
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()

	cfg, err := loadConfig(opts, logger)
	if err != nil {
		return err
	}
	floor := diag.SevLow
	if cfg.MinSeverity != "" {
		if floor, err = diag.ParseSeverity(cfg.MinSeverity); err != nil {
			return usageError(err)
		}
	}

	var timer *observ.Timer
	if opts.timings {
		timer = observ.NewTimer()
	}

	baseDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}
	if cfg.Path != "" {
		baseDir = filepath.Dir(cfg.Path)
	}

	runOpts := driver.Options{
		Config:  cfg,
		Courses: opts.courses,
		Floor:   floor,
		Jobs:    cfg.Jobs,
		BaseDir: baseDir,
		Logger:  logger,
		Timer:   timer,
	}
	if opts.cache || cfg.CacheDir != "" {
		cache, cacheErr := driver.OpenDiskCache(cfg.CacheDir)
		if cacheErr != nil {
			logger.Warn("extraction cache disabled", zap.Error(cacheErr))
		} else {
			runOpts.Cache = cache
			logger.Debug("extraction cache", zap.String("dir", cache.Dir()))
		}
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var res *driver.Result
	if opts.progress.enabled(stderr) {
		res, err = runAuditWithUI(ctx, runOpts, teaProgram(stderr))
	} else {
		res, err = driver.Run(ctx, runOpts)
	}
	if err != nil {
		if errors.Is(err, driver.ErrNoCourses) {
			return &exitError{code: exitOperational, err: err}
		}
		return err
	}

	done := timer.Track("render")
	err = render(stdout, res.Collector, cfg, opts)
	done(string(opts.format))
	if err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	if opts.timings {
		timer.Log(logger)
		fmt.Fprint(stderr, timer.Summary())
	}

	if res.Collector.HasCritical() {
		return &exitError{code: exitCritical, err: errCriticalFound, silent: true}
	}
	return nil
}

func render(w io.Writer, col *diag.Collector, cfg *project.Config, opts auditOptions) error {
	issues := col.Items()
	stats := col.Stats()
	switch opts.format {
	case diagfmt.FormatJSON:
		return diagfmt.JSON(w, issues, stats, diagfmt.JSONOpts{Limit: cfg.Limit})
	case diagfmt.FormatShort:
		return diagfmt.Short(w, issues, cfg.Limit)
	case diagfmt.FormatSarif:
		if cfg.Limit > 0 && cfg.Limit < len(issues) {
			issues = issues[:cfg.Limit]
		}
		return diagfmt.Sarif(w, issues, diagfmt.SarifRunMeta{
			ToolName:       "contentaudit",
			ToolVersion:    version.Version,
			InvocationArgs: os.Args[1:],
		})
	default:
		return diagfmt.Pretty(w, issues, stats, diagfmt.PrettyOpts{
			Color:      opts.color.enabled(w),
			Verbose:    opts.verbose,
			Summary:    opts.summary,
			Limit:      cfg.Limit,
			DisplayCap: cfg.Thresholds.DisplayCap,
		})
	}
}
