package diag

// Collector accumulates issues and keeps Stats in step with them.
// A Collector is not safe for concurrent use; parallel scans give every file
// its own Collector and Merge them afterwards in a fixed order.
type Collector struct {
	floor Severity
	items []Issue
	stats Stats
}

// NewCollector returns a Collector that drops issues below floor.
func NewCollector(floor Severity) *Collector {
	return &Collector{floor: floor, stats: newStats()}
}

// Add stores the issue unless it is below the floor.
// Возвращает false, если issue отброшен фильтром.
func (c *Collector) Add(is Issue) bool {
	if is.Severity < c.floor {
		return false
	}
	c.items = append(c.items, is)
	c.stats.BySeverity[is.Severity]++
	c.stats.ByCategory[is.Category]++
	if is.Course != "" {
		c.stats.Course(is.Course).Issues++
	}
	return true
}

// Report implements Reporter.
func (c *Collector) Report(is Issue) {
	c.Add(is)
}

// CountFile records one scanned file and its record count.
func (c *Collector) CountFile(course string, records int) {
	c.stats.TotalFiles++
	c.stats.TotalRecords += records
	cs := c.stats.Course(course)
	cs.Files++
	cs.Records += records
}

// CountSkipped records a file that could not be read.
func (c *Collector) CountSkipped() {
	c.stats.SkippedFiles++
}

// TouchCourse makes course appear in the breakdown even when it has no files.
func (c *Collector) TouchCourse(course string) {
	c.stats.Course(course)
}

// Len returns the number of accepted issues.
func (c *Collector) Len() int {
	return len(c.items)
}

// Items returns the accepted issues in insertion order.
// ВАЖНО: срез указывает на внутренний массив, не модифицируйте его.
func (c *Collector) Items() []Issue {
	return c.items
}

// Stats returns a snapshot of the statistics.
func (c *Collector) Stats() Stats {
	return c.stats.clone()
}

// HasCritical reports whether at least one CRITICAL issue was accepted.
func (c *Collector) HasCritical() bool {
	return c.stats.BySeverity[SevCritical] > 0
}

// Merge appends other's issues after c's and folds its statistics in.
// Issues are re-filtered against c's floor; statistics of dropped issues are not carried over.
func (c *Collector) Merge(other *Collector) {
	if other == nil {
		return
	}
	st := other.stats
	if other.floor < c.floor {
		for _, is := range other.items {
			c.Add(is)
		}
		c.stats.TotalFiles += st.TotalFiles
		c.stats.TotalRecords += st.TotalRecords
		c.stats.SkippedFiles += st.SkippedFiles
		for course, cs := range st.ByCourse {
			dst := c.stats.Course(course)
			dst.Files += cs.Files
			dst.Records += cs.Records
		}
		return
	}
	c.items = append(c.items, other.items...)
	c.stats.merge(&st)
}
