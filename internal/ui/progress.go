package ui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"contentaudit/internal/driver"
)

// maxActive caps the in-flight file list under the course table.
const maxActive = 8

type fileState uint8

const (
	stateQueued fileState = iota
	stateReading
	stateExtracting
	stateChecking
	stateDone
	stateSkipped
	stateFailed
)

func (s fileState) final() bool { return s >= stateDone }

// weight is the share of a file's work that is behind it in this state.
func (s fileState) weight() float64 {
	switch s {
	case stateReading:
		return 0.1
	case stateExtracting:
		return 0.4
	case stateChecking:
		return 0.8
	case stateQueued:
		return 0
	default:
		return 1
	}
}

type courseRow struct {
	name    string
	total   int
	done    int
	failed  int
	records int
}

type progressModel struct {
	title    string
	events   <-chan driver.Event
	spinner  spinner.Model
	bar      progress.Model
	courses  []courseRow
	owner    map[string]int // file -> index in courses
	state    map[string]fileState
	active   []string // in-flight files, oldest first
	phase    string
	width    int
	finished bool
}

type eventMsg driver.Event
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model showing per-course scan progress
// for the discovered files. It quits once events is closed.
func NewProgressModel(title string, found []driver.CourseFiles, events <-chan driver.Event) tea.Model {
	return newProgressModel(title, found, events)
}

func newProgressModel(title string, found []driver.CourseFiles, events <-chan driver.Event) *progressModel {
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	m := &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithWidth(60)),
		owner:   make(map[string]int),
		state:   make(map[string]fileState),
		width:   80,
	}
	for _, cf := range found {
		m.courses = append(m.courses, courseRow{name: cf.Course, total: len(cf.Files)})
		for _, f := range cf.Files {
			m.owner[f] = len(m.courses) - 1
			m.state[f] = stateQueued
		}
	}
	return m
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.next())
}

// next waits for one driver event.
func (m *progressModel) next() tea.Cmd {
	return func() tea.Msg {
		if ev, ok := <-m.events; ok {
			return eventMsg(ev)
		}
		return doneMsg{}
	}
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		return m, tea.Batch(m.applyEvent(driver.Event(msg)), m.next())
	case doneMsg:
		m.finished = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.finished {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case progress.FrameMsg:
		bar, cmd := m.bar.Update(msg)
		m.bar = bar.(progress.Model)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.bar.Width = max(msg.Width-4, 10)
		}
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
	}
	return m, nil
}

func stateOf(ev driver.Event) (fileState, bool) {
	switch ev.Status {
	case driver.StatusDone:
		return stateDone, true
	case driver.StatusSkipped:
		return stateSkipped, true
	case driver.StatusError:
		return stateFailed, true
	case driver.StatusWorking:
		switch ev.Stage {
		case driver.StageLoad:
			return stateReading, true
		case driver.StageExtract:
			return stateExtracting, true
		case driver.StageCheck:
			return stateChecking, true
		}
	}
	return stateQueued, false
}

func (m *progressModel) applyEvent(ev driver.Event) tea.Cmd {
	if ev.File == "" {
		if ev.Status == driver.StatusWorking {
			m.phase = phaseLabel(ev.Stage)
		}
		return nil
	}
	row, known := m.owner[ev.File]
	st, ok := stateOf(ev)
	if !known || !ok || m.state[ev.File].final() {
		return nil
	}
	m.state[ev.File] = st

	if !st.final() {
		if !slices.Contains(m.active, ev.File) {
			m.active = append(m.active, ev.File)
		}
		return m.bar.SetPercent(m.percent())
	}
	m.active = slices.DeleteFunc(m.active, func(f string) bool { return f == ev.File })
	c := &m.courses[row]
	c.done++
	if st == stateFailed {
		c.failed++
	}
	// записи считаются только после проверки, иначе кэш и скан дадут двойной счёт
	if st == stateDone && ev.Stage == driver.StageCheck {
		c.records += ev.Records
	}
	return m.bar.SetPercent(m.percent())
}

func phaseLabel(stage driver.Stage) string {
	switch stage {
	case driver.StageGlobal:
		return "cross-checks"
	case driver.StageLoad:
		return "reading"
	default:
		return string(stage)
	}
}

func (m *progressModel) totals() (done, total, records int) {
	for _, c := range m.courses {
		done += c.done
		total += c.total
		records += c.records
	}
	return done, total, records
}

func (m *progressModel) percent() float64 {
	if len(m.state) == 0 {
		return 0
	}
	sum := 0.0
	for _, st := range m.state {
		sum += st.weight()
	}
	return sum / float64(len(m.state))
}

var (
	headStyle  = lipgloss.NewStyle().Bold(true)
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	faintStyle = lipgloss.NewStyle().Faint(true)
)

func (m *progressModel) View() string {
	done, total, records := m.totals()
	if total == 0 {
		return ""
	}
	head := fmt.Sprintf("%s %d/%d files, %d records", m.title, done, total, records)
	if m.phase != "" {
		head += " (" + m.phase + ")"
	}
	if m.finished {
		head = okStyle.Render("✓") + " " + head
	} else {
		head = m.spinner.View() + " " + head
	}

	var b strings.Builder
	b.WriteString(headStyle.Render(head) + "\n\n")
	for _, c := range m.courses {
		line := fmt.Sprintf("  %-6s %4d/%-4d %6d records", strings.ToUpper(c.name), c.done, c.total, c.records)
		if c.done == c.total {
			line = okStyle.Render(line)
		}
		b.WriteString(line)
		if c.failed > 0 {
			b.WriteString(failStyle.Render(fmt.Sprintf("  %d unreadable", c.failed)))
		}
		b.WriteByte('\n')
	}
	if len(m.active) > 0 {
		b.WriteByte('\n')
		for _, f := range m.active[:min(len(m.active), maxActive)] {
			b.WriteString(faintStyle.Render("  › "+truncate(f, m.width-6)) + "\n")
		}
		if extra := len(m.active) - maxActive; extra > 0 {
			b.WriteString(faintStyle.Render(fmt.Sprintf("  … %d more", extra)) + "\n")
		}
	}
	b.WriteByte('\n')
	if m.finished {
		b.WriteString(m.bar.ViewAs(1))
	} else {
		b.WriteString(m.bar.View())
	}
	b.WriteByte('\n')
	return b.String()
}

func truncate(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	if width <= 3 {
		return runewidth.Truncate(s, width, "")
	}
	return runewidth.Truncate(s, width, "...")
}
