package main

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"contentaudit/internal/driver"
	"contentaudit/internal/ui"
)

type auditOutcome struct {
	result *driver.Result
	err    error
}

// showFunc runs a Bubble Tea model until it quits.
type showFunc func(tea.Model) error

func teaProgram(out io.Writer) showFunc {
	return func(m tea.Model) error {
		_, err := tea.NewProgram(m, tea.WithOutput(out)).Run()
		return err
	}
}

// runAuditWithUI runs the audit while show renders the progress view.
// Files are discovered once here and handed to the driver. If the view quits
// before the audit is done (ctrl+c), the audit is cancelled.
func runAuditWithUI(ctx context.Context, opts driver.Options, show showFunc) (*driver.Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg := opts.Config
	courses := opts.Courses
	if len(courses) == 0 {
		courses = cfg.Courses
	}
	found, err := driver.Discover(driver.DiscoverOptions{
		Root:            cfg.DataRoot,
		Courses:         courses,
		Extensions:      cfg.Extensions,
		ExcludeSuffixes: cfg.ExcludeSuffixes,
		Logger:          logger,
	})
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan driver.Event, 256)
	outcomeCh := make(chan auditOutcome, 1)
	go func() {
		runOpts := opts
		runOpts.Found = found
		runOpts.Progress = driver.Sinks{driver.ChannelSink{Ch: events}, opts.Progress}
		res, err := driver.Run(ctx, runOpts)
		outcomeCh <- auditOutcome{result: res, err: err}
		close(events)
	}()

	uiErr := show(ui.NewProgressModel("auditing", found, events))

	var outcome auditOutcome
	select {
	case outcome = <-outcomeCh:
	default:
		cancel()
		logger.Info("progress view closed before the audit finished, cancelling")
		// дочитываем события, чтобы Run не встал на полном канале
		for range events {
		}
		outcome = <-outcomeCh
	}
	if uiErr != nil {
		return outcome.result, uiErr
	}
	if outcome.err != nil && ctx.Err() != nil {
		return nil, fmt.Errorf("audit interrupted: %w", outcome.err)
	}
	return outcome.result, outcome.err
}
