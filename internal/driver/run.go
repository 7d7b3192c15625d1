package driver

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"contentaudit/internal/corpus"
	"contentaudit/internal/diag"
	"contentaudit/internal/extract"
	"contentaudit/internal/observ"
	"contentaudit/internal/project"
	"contentaudit/internal/record"
	"contentaudit/internal/rules"
	"contentaudit/internal/source"
)

// Options configures Run.
type Options struct {
	Config *project.Config
	// Courses restricts the run; empty means Config.Courses.
	Courses []string
	// Floor is the minimum severity kept by the collector.
	Floor diag.Severity
	// Jobs is the number of files processed concurrently. 0 and 1 are sequential.
	Jobs int
	// BaseDir is used to render record paths relative; empty means absolute paths.
	BaseDir string

	// Found skips discovery and scans these files instead. Callers that need
	// the file list up front (the progress view) discover once and pass it here.
	Found []CourseFiles

	Cache    *DiskCache
	Logger   *zap.Logger
	Progress ProgressSink
	Timer    *observ.Timer
}

// Result is everything a run produced.
type Result struct {
	Collector *diag.Collector
	Records   []record.Record
	Courses   []CourseFiles
}

// fileTask is one candidate file in discovery order.
type fileTask struct {
	course string
	path   string
}

// fileOutcome is what scanning a file yields; merged in task order.
type fileOutcome struct {
	collector *diag.Collector
	records   []record.Record
}

// Run discovers, scans and audits the corpus. Content problems end up in the
// collector; only ErrNoCourses, a bad configuration or cancellation return an error.
func Run(ctx context.Context, opts Options) (*Result, error) {
	if opts.Config == nil {
		return nil, fmt.Errorf("driver: missing config")
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg := opts.Config
	engine, err := rules.NewEngine(cfg)
	if err != nil {
		return nil, err
	}
	logger.Debug("rule engine ready", zap.Strings("recordRules", rules.RuleNames()))
	courses := opts.Courses
	if len(courses) == 0 {
		courses = cfg.Courses
	}

	done := opts.Timer.Track("discover")
	found := opts.Found
	if found == nil {
		found, err = Discover(DiscoverOptions{
			Root:            cfg.DataRoot,
			Courses:         courses,
			Extensions:      cfg.Extensions,
			ExcludeSuffixes: cfg.ExcludeSuffixes,
			Logger:          logger,
		})
		if err != nil {
			done("failed")
			return nil, err
		}
	}

	var tasks []fileTask
	for _, cf := range found {
		for _, path := range cf.Files {
			tasks = append(tasks, fileTask{course: cf.Course, path: path})
		}
	}
	for _, t := range tasks {
		emit(opts.Progress, Event{File: t.path, Stage: StageLoad, Status: StatusQueued})
	}
	done(fmt.Sprintf("%d courses, %d files", len(found), len(tasks)))

	collector := diag.NewCollector(opts.Floor)
	for _, cf := range found {
		collector.TouchCourse(cf.Course)
	}

	s := &scanner{
		engine:  engine,
		floor:   opts.Floor,
		baseDir: opts.BaseDir,
		cache:   opts.Cache,
		logger:  logger,
		sink:    opts.Progress,
	}

	done = opts.Timer.Track("scan")
	outcomes, err := s.scanAll(ctx, tasks, opts.Jobs)
	if err != nil {
		done("cancelled")
		return nil, err
	}
	var all []record.Record
	for i := range outcomes {
		collector.Merge(outcomes[i].collector)
		all = append(all, outcomes[i].records...)
	}
	done(fmt.Sprintf("%d records", len(all)))

	done = opts.Timer.Track("global")
	emit(opts.Progress, Event{Stage: StageGlobal, Status: StatusWorking})
	corpus.New(engine.Thresholds()).Audit(all, collector)
	emit(opts.Progress, Event{Stage: StageGlobal, Status: StatusDone})
	done("")

	logger.Info("audit finished",
		zap.Int("files", collector.Stats().TotalFiles),
		zap.Int("records", len(all)),
		zap.Int("issues", collector.Len()),
	)
	return &Result{Collector: collector, Records: all, Courses: found}, nil
}

type scanner struct {
	engine  *rules.Engine
	floor   diag.Severity
	baseDir string
	cache   *DiskCache
	logger  *zap.Logger
	sink    ProgressSink
}

// scanAll processes every task. With jobs > 1 files are processed by an
// errgroup; each writes only its own slot, so the merge order is the task order
// and the output matches the sequential run.
func (s *scanner) scanAll(ctx context.Context, tasks []fileTask, jobs int) ([]fileOutcome, error) {
	outcomes := make([]fileOutcome, len(tasks))
	if jobs <= 1 || len(tasks) < 2 {
		for i := range tasks {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			outcomes[i] = s.scanFile(&tasks[i])
		}
		return outcomes, nil
	}

	if jobs > runtime.GOMAXPROCS(0)*4 {
		jobs = runtime.GOMAXPROCS(0) * 4
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(tasks)))
	for i := range tasks {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			outcomes[i] = s.scanFile(&tasks[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

// scanFile extracts and checks one file into a fresh collector.
func (s *scanner) scanFile(t *fileTask) fileOutcome {
	start := time.Now()
	col := diag.NewCollector(s.floor)
	out := fileOutcome{collector: col}

	// Файл читается только здесь и живёт до конца проверки; в памяти остаются записи.
	emit(s.sink, Event{File: t.path, Stage: StageLoad, Status: StatusWorking})
	fileSet := source.NewFileSet()
	id, err := fileSet.Load(t.path)
	if err != nil {
		s.logger.Warn("failed to read file, skipping", zap.String("path", t.path), zap.Error(err))
		col.CountSkipped()
		emit(s.sink, Event{File: t.path, Stage: StageLoad, Status: StatusError, Err: err})
		return out
	}
	file := fileSet.Get(id)
	if why := Qualify(file.Content); why != NotExcluded {
		s.logger.Debug("file does not qualify", zap.String("path", t.path), zap.Stringer("reason", why))
		emit(s.sink, Event{File: t.path, Stage: StageLoad, Status: StatusSkipped})
		return out
	}

	display := file.DisplayPath(s.baseDir)

	emit(s.sink, Event{File: t.path, Stage: StageExtract, Status: StatusWorking})
	recs := s.extract(file, display)
	col.CountFile(t.course, len(recs))
	if len(recs) == 0 {
		s.logger.Info("no records extracted", zap.String("path", display))
		emit(s.sink, Event{File: t.path, Stage: StageExtract, Status: StatusDone, Elapsed: time.Since(start)})
		return out
	}

	emit(s.sink, Event{File: t.path, Stage: StageCheck, Status: StatusWorking, Records: len(recs)})
	rep := diag.CourseReporter{Next: col, Course: t.course}
	s.engine.CheckRecords(recs, t.course, rep)
	s.engine.CheckFile(display, recs, rep)

	out.records = recs
	emit(s.sink, Event{File: t.path, Stage: StageCheck, Status: StatusDone, Records: len(recs), Elapsed: time.Since(start)})
	return out
}

// extract consults the cache before running the extractor.
func (s *scanner) extract(file *source.File, display string) []record.Record {
	if s.cache != nil {
		key := KeyFor(file.Hash)
		recs, ok, err := s.cache.Get(key)
		if err != nil {
			s.logger.Debug("cache read failed", zap.String("path", display), zap.Error(err))
		}
		if ok {
			s.logger.Debug("cache hit", zap.String("path", display))
			for i := range recs {
				recs[i].File = display
			}
			return recs
		}
		recs = extract.Extract(file, extract.Options{Logger: s.logger, Path: display})
		if err := s.cache.Put(key, recs); err != nil {
			s.logger.Debug("cache write failed", zap.String("path", display), zap.Error(err))
		}
		return recs
	}
	return extract.Extract(file, extract.Options{Logger: s.logger, Path: display})
}
