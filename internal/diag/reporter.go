package diag

// Reporter: минимальный контракт получения issues от правил.
// Реализации: *Collector, CourseReporter (проставляет курс), SliceReporter.
type Reporter interface {
	Report(is Issue)
}

// ReportBuilder accumulates issue details before emitting to Reporter.
type ReportBuilder struct {
	reporter Reporter
	issue    Issue
	emitted  bool
}

// NewReportBuilder constructs a builder bound to Reporter.
func NewReportBuilder(r Reporter, sev Severity, cat Category, subject, msg string) *ReportBuilder {
	return &ReportBuilder{
		reporter: r,
		issue: Issue{
			Severity: sev,
			Category: cat,
			Subject:  subject,
			Message:  msg,
		},
	}
}

// ReportCritical is a shortcut for SevCritical issues.
func ReportCritical(r Reporter, cat Category, subject, msg string) *ReportBuilder {
	return NewReportBuilder(r, SevCritical, cat, subject, msg)
}

// ReportHigh is a shortcut for SevHigh issues.
func ReportHigh(r Reporter, cat Category, subject, msg string) *ReportBuilder {
	return NewReportBuilder(r, SevHigh, cat, subject, msg)
}

// ReportMedium is a shortcut for SevMedium issues.
func ReportMedium(r Reporter, cat Category, subject, msg string) *ReportBuilder {
	return NewReportBuilder(r, SevMedium, cat, subject, msg)
}

// ReportLow is a shortcut for SevLow issues.
func ReportLow(r Reporter, cat Category, subject, msg string) *ReportBuilder {
	return NewReportBuilder(r, SevLow, cat, subject, msg)
}

// At sets the source location.
func (b *ReportBuilder) At(file string, line uint32) *ReportBuilder {
	if b == nil {
		return nil
	}
	b.issue.File = file
	b.issue.Line = line
	return b
}

// With attaches one detail value.
func (b *ReportBuilder) With(key string, value any) *ReportBuilder {
	if b == nil {
		return nil
	}
	if b.issue.Details == nil {
		b.issue.Details = make(map[string]any, 2)
	}
	b.issue.Details[key] = value
	return b
}

// Emit sends the issue to the underlying reporter exactly once.
func (b *ReportBuilder) Emit() {
	if b == nil || b.emitted {
		return
	}
	if b.reporter != nil {
		b.reporter.Report(b.issue)
	}
	b.emitted = true
}

// CourseReporter stamps the course on every issue before forwarding it.
type CourseReporter struct {
	Next   Reporter
	Course string
}

func (r CourseReporter) Report(is Issue) {
	if r.Next == nil {
		return
	}
	if is.Course == "" {
		is.Course = r.Course
	}
	r.Next.Report(is)
}

// SliceReporter appends issues to a slice without filtering. Handy in tests.
type SliceReporter struct {
	Issues []Issue
}

func (r *SliceReporter) Report(is Issue) {
	r.Issues = append(r.Issues, is)
}
