package diagfmt

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"contentaudit/internal/diag"
)

const ruleWidth = 64

// palette holds the styles; with colour off every method is the identity.
type palette struct {
	enabled bool
	title   lipgloss.Style
	dim     *color.Color
	sev     map[diag.Severity]*color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		enabled: enabled,
		title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7")),
		dim:     color.New(color.Faint),
		sev: map[diag.Severity]*color.Color{
			diag.SevCritical: color.New(color.FgRed, color.Bold),
			diag.SevHigh:     color.New(color.FgYellow, color.Bold),
			diag.SevMedium:   color.New(color.FgCyan),
			diag.SevLow:      color.New(color.FgWhite),
		},
	}
	// fatih/color по умолчанию смотрит на stdout; здесь решает опция
	for _, c := range p.sev {
		setColor(c, enabled)
	}
	setColor(p.dim, enabled)
	return p
}

func setColor(c *color.Color, on bool) {
	if on {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
}

func (p palette) heading(s string) string {
	if !p.enabled {
		return s
	}
	return p.title.Render(s)
}

func (p palette) severity(sev diag.Severity, s string) string {
	return p.sev[sev].Sprint(s)
}

func (p palette) faint(s string) string {
	return p.dim.Sprint(s)
}

// Pretty writes the human-oriented report: statistics, then issues grouped by
// severity, highest first. Each group lists at most the display cap unless
// Verbose or Limit says otherwise.
func Pretty(w io.Writer, issues []diag.Issue, stats diag.Stats, opts PrettyOpts) error {
	bw := bufio.NewWriter(w)
	p := newPalette(opts.Color)
	width := opts.Width
	rule := strings.Repeat("═", ruleWidth)
	if width > 0 && width < ruleWidth {
		rule = strings.Repeat("═", width)
	}

	fmt.Fprintln(bw, rule)
	fmt.Fprintln(bw, p.heading("  CONTENT AUDIT RESULTS"))
	fmt.Fprintln(bw, rule)
	writeStats(bw, p, stats, width)

	if !opts.Summary {
		writeIssues(bw, p, issues, opts, width)
	}

	fmt.Fprintln(bw)
	fmt.Fprintln(bw, rule)
	writeVerdict(bw, p, stats)
	fmt.Fprintln(bw, rule)
	return bw.Flush()
}

func writeStats(w io.Writer, p palette, stats diag.Stats, width int) {
	fmt.Fprintf(w, "  Total files:     %d\n", stats.TotalFiles)
	if stats.SkippedFiles > 0 {
		fmt.Fprintf(w, "  Skipped files:   %d\n", stats.SkippedFiles)
	}
	fmt.Fprintf(w, "  Total records:   %d\n", stats.TotalRecords)
	fmt.Fprintf(w, "  Total issues:    %d\n", stats.TotalIssues())

	if len(stats.ByCourse) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, p.heading("  By course:"))
		courses := make([]string, 0, len(stats.ByCourse))
		for c := range stats.ByCourse {
			courses = append(courses, c)
		}
		sort.Strings(courses)
		for _, c := range courses {
			cs := stats.ByCourse[c]
			fmt.Fprintf(w, "     %-6s %5d records  %4d issues  (%d files)\n",
				strings.ToUpper(c), cs.Records, cs.Issues, cs.Files)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, p.heading("  By severity:"))
	for _, sev := range diag.Severities {
		if n := stats.BySeverity[sev]; n > 0 {
			fmt.Fprintf(w, "     %s %d\n", p.severity(sev, pad(sev.String(), 10)), n)
		}
	}

	if len(stats.ByCategory) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, p.heading("  By category:"))
		type catCount struct {
			cat diag.Category
			n   int
		}
		cats := make([]catCount, 0, len(stats.ByCategory))
		for c, n := range stats.ByCategory {
			if n > 0 {
				cats = append(cats, catCount{c, n})
			}
		}
		sort.Slice(cats, func(i, j int) bool {
			if cats[i].n != cats[j].n {
				return cats[i].n > cats[j].n
			}
			return cats[i].cat < cats[j].cat
		})
		nameWidth := 35
		if width > 0 {
			nameWidth = min(nameWidth, max(width-15, 10))
		}
		for _, c := range cats {
			fmt.Fprintf(w, "     %s %d\n", pad(truncate(string(c.cat), nameWidth), nameWidth), c.n)
		}
	}
}

func writeIssues(w io.Writer, p palette, issues []diag.Issue, opts PrettyOpts, width int) {
	displayCap := opts.DisplayCap
	if displayCap <= 0 {
		displayCap = DefaultDisplayCap
	}
	bySev := make(map[diag.Severity][]*diag.Issue, len(diag.Severities))
	for i := range issues {
		is := &issues[i]
		bySev[is.Severity] = append(bySev[is.Severity], is)
	}

	for _, sev := range diag.Severities {
		group := bySev[sev]
		if len(group) == 0 {
			continue
		}
		fmt.Fprintln(w)
		fmt.Fprintln(w, p.severity(sev, fmt.Sprintf("═══ %s ISSUES (%d) ═══", sev, len(group))))

		show := len(group)
		capped := false
		switch {
		case opts.Limit > 0:
			show = min(show, opts.Limit)
		case !opts.Verbose && show > displayCap:
			show = displayCap
			capped = true
		}
		for _, is := range group[:show] {
			fmt.Fprintf(w, "  [%s] %s\n", is.Category, is.Subject)
			msg := is.Message
			if width > 0 {
				msg = truncate(msg, width-4)
			}
			fmt.Fprintf(w, "    %s\n", msg)
			if opts.Verbose && is.File != "" {
				fmt.Fprintf(w, "    %s\n", p.faint("File: "+is.Location()))
			}
		}
		if rest := len(group) - show; rest > 0 {
			if capped {
				fmt.Fprintf(w, "  ... and %d more. Use --verbose to see all.\n", rest)
			} else {
				fmt.Fprintf(w, "  ... and %d more.\n", rest)
			}
		}
	}
}

func writeVerdict(w io.Writer, p palette, stats diag.Stats) {
	crit := stats.BySeverity[diag.SevCritical]
	high := stats.BySeverity[diag.SevHigh]
	if crit > 0 {
		fmt.Fprintln(w, p.severity(diag.SevCritical, fmt.Sprintf("  %d CRITICAL issues need fixing", crit)))
	}
	if high > 0 {
		fmt.Fprintln(w, p.severity(diag.SevHigh, fmt.Sprintf("  %d HIGH issues should be reviewed", high)))
	}
	if crit == 0 && high == 0 {
		fmt.Fprintln(w, "  No critical or high-severity issues found!")
	}
}

// pad right-pads by display width.
func pad(s string, width int) string {
	return runewidth.FillRight(s, width)
}

func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}
