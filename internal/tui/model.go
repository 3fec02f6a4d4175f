package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"trendbench/internal/report"
	"trendbench/internal/scheduler"
	"trendbench/internal/tui/components"
	"trendbench/internal/tui/styles"
)

// StatsMsg wraps a driver snapshot for the bubbletea loop.
type StatsMsg scheduler.Snapshot

// ReportMsg carries the final report. The driver's sink sends it with
// Program.Send, so delivery stays fire-and-continue for the step loop.
type ReportMsg report.Report

type Model struct {
	RunID   string
	Updates scheduler.UpdateChan

	Spin     spinner.Model
	StepLine components.Sparkline

	Snap   scheduler.Snapshot
	Report *report.Report

	StartTime time.Time
	Width     int
	Height    int
	Quitting  bool
}

func NewModel(runID string, updates scheduler.UpdateChan) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Active

	return Model{
		RunID:     runID,
		Updates:   updates,
		Spin:      sp,
		StepLine:  components.NewSparkline(40, "Step time (µs)", styles.Warn),
		StartTime: time.Now(),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Spin.Tick, waitForUpdate(m.Updates))
}

func waitForUpdate(sub scheduler.UpdateChan) tea.Cmd {
	return func() tea.Msg {
		return StatsMsg(<-sub)
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.Quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		w := msg.Width - 8
		if w < 10 {
			w = 10
		}
		m.StepLine.Width = w
		return m, nil

	case StatsMsg:
		m.Snap = scheduler.Snapshot(msg)
		if m.Snap.LastStepUs > 0 {
			m.StepLine.Add(float64(m.Snap.LastStepUs))
		}
		return m, waitForUpdate(m.Updates)

	case ReportMsg:
		r := report.Report(msg)
		m.Report = &r
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Spin, cmd = m.Spin.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) View() string {
	if m.Width == 0 {
		return "Loading..."
	}
	if m.Report != nil {
		return m.reportView()
	}
	return m.liveView()
}

func (m Model) liveView() string {
	s := strings.Builder{}

	s.WriteString(styles.Title.Render("⚡ TrendBench — run " + m.RunID))
	s.WriteString("\n\n")

	col1 := fmt.Sprintf("STEPS: %d\nRATE:  %.0f/s", m.Snap.Steps, m.Snap.StepsPerSec)
	col2 := fmt.Sprintf("STEP P50: %.2f ms\nSTEP P99: %.2f ms", m.Snap.P50StepMs, m.Snap.P99StepMs)
	col3 := fmt.Sprintf("ELAPSED:\n%s", m.Snap.Elapsed.Round(time.Second))

	grid := lipgloss.JoinHorizontal(lipgloss.Top,
		styles.Box.Render(col1),
		styles.Box.Render(col2),
		styles.Box.Render(col3),
	)
	s.WriteString(grid)
	s.WriteString("\n\n")

	s.WriteString(styles.Box.Render(m.StepLine.View()))
	s.WriteString("\n\n")

	s.WriteString(m.Spin.View())
	s.WriteString(styles.Subtle.Render(" sampling — the suite advances one engine step at a time"))
	s.WriteString("\n\n")
	s.WriteString(styles.FooterBase.Render(styles.RenderKey("Q", "Quit (abandons the run)")))

	return s.String()
}

func (m Model) reportView() string {
	s := strings.Builder{}

	s.WriteString(styles.Title.Render("📊 Benchmark Report — run " + m.RunID))
	s.WriteString("\n\n")

	if m.Report.Warning != nil {
		s.WriteString(styles.Box.BorderForeground(styles.ColorWarning).Render(
			styles.Warn.Render("⚠ " + *m.Report.Warning)))
		s.WriteString("\n\n")
	}

	// Align the ns/run column after the longest path.
	maxPath := 0
	for _, r := range m.Report.Results {
		if l := len(strings.Join(r.Name, ".")); l > maxPath {
			maxPath = l
		}
	}

	rows := strings.Builder{}
	for _, r := range m.Report.Results {
		path := strings.Join(r.Name, ".")
		rows.WriteString(styles.Text.Render(fmt.Sprintf("%-*s", maxPath+2, path)))
		if r.NsPerRun != nil {
			rows.WriteString(styles.Value.Render(fmt.Sprintf("%12.2f ns/run", *r.NsPerRun)))
		} else {
			rows.WriteString(styles.Error.Render("      (no estimate)"))
		}
		rows.WriteString("\n")
	}
	s.WriteString(styles.Box.Render(strings.TrimRight(rows.String(), "\n")))
	s.WriteString("\n\n")

	s.WriteString(styles.Subtle.Render(fmt.Sprintf("%d results in %d steps", len(m.Report.Results), m.Snap.Steps)))
	s.WriteString("\n")
	s.WriteString(styles.FooterBase.Render(styles.RenderKey("Q", "Quit")))

	return s.String()
}
