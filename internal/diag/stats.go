package diag

// CourseStats is the per-course breakdown.
type CourseStats struct {
	Files   int `json:"files"`
	Records int `json:"records"`
	Issues  int `json:"issues"`
}

// Stats are run statistics. They are updated as issues are accepted, so an
// issue dropped by the severity floor never shows up here.
type Stats struct {
	TotalFiles   int                     `json:"totalFiles"`
	TotalRecords int                     `json:"totalRecords"`
	SkippedFiles int                     `json:"skippedFiles"`
	ByCourse     map[string]*CourseStats `json:"byCourse"`
	BySeverity   map[Severity]int        `json:"bySeverity"`
	ByCategory   map[Category]int        `json:"byCategory"`
}

func newStats() Stats {
	st := Stats{
		ByCourse:   make(map[string]*CourseStats),
		BySeverity: make(map[Severity]int, len(Severities)),
		ByCategory: make(map[Category]int),
	}
	for _, sev := range Severities {
		st.BySeverity[sev] = 0
	}
	return st
}

// Course returns the breakdown for course, creating it on first use.
func (s *Stats) Course(course string) *CourseStats {
	cs, ok := s.ByCourse[course]
	if !ok {
		cs = &CourseStats{}
		s.ByCourse[course] = cs
	}
	return cs
}

// TotalIssues sums the per-severity tallies.
func (s *Stats) TotalIssues() int {
	n := 0
	for _, c := range s.BySeverity {
		n += c
	}
	return n
}

func (s *Stats) merge(other *Stats) {
	s.TotalFiles += other.TotalFiles
	s.TotalRecords += other.TotalRecords
	s.SkippedFiles += other.SkippedFiles
	for course, cs := range other.ByCourse {
		dst := s.Course(course)
		dst.Files += cs.Files
		dst.Records += cs.Records
		dst.Issues += cs.Issues
	}
	for sev, n := range other.BySeverity {
		s.BySeverity[sev] += n
	}
	for cat, n := range other.ByCategory {
		s.ByCategory[cat] += n
	}
}

func (s *Stats) clone() Stats {
	out := newStats()
	out.merge(s)
	return out
}
