package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/AnyUserName/storeresize-cli/internal/pipeline"
)

// Model renders batch progress. It is the foreground side of a run: it only
// reads from the run's progress channel and never blocks the worker.
type Model struct {
	updates  <-chan pipeline.Progress
	started  time.Time
	width    int
	total    int
	done     int
	failed   int
	last     string
	quitting bool
}

type doneMsg struct{}

type updateMsg pipeline.Progress

// NewModel creates a model for a run of total images.
func NewModel(updates <-chan pipeline.Progress, total int) Model {
	return Model{updates: updates, total: total, started: time.Now()}
}

func (m Model) Init() tea.Cmd {
	return listenForUpdates(m.updates)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case updateMsg:
		// Progress is monotonic; never let a stale message move the bar back.
		if msg.Done > m.done {
			m.done = msg.Done
		}
		if msg.Failed > m.failed {
			m.failed = msg.Failed
		}
		if msg.Total > 0 {
			m.total = msg.Total
		}
		m.last = msg.Name
		return m, listenForUpdates(m.updates)
	case doneMsg:
		m.quitting = true
		return m, tea.Quit
	case tea.KeyMsg:
		// No cancellation: a started batch runs to completion.
		return m, nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	default:
		return m, nil
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	barWidth := 40
	if m.width > 0 {
		barWidth = int(math.Min(60, float64(m.width-10)))
		if barWidth < 20 {
			barWidth = 20
		}
	}

	ratio := 0.0
	if m.total > 0 {
		ratio = float64(m.done+m.failed) / float64(m.total)
		if ratio > 1 {
			ratio = 1
		}
	}

	bar := renderBar(barWidth, ratio)
	elapsed := time.Since(m.started).Round(time.Millisecond)

	counts := labelStyle.Render(fmt.Sprintf("Images: %d of %d", m.done, m.total))
	if m.failed > 0 {
		counts += warnStyle.Render(fmt.Sprintf("  skipped:%d", m.failed))
	}

	lines := []string{
		titleStyle.Render("storeresize"),
		counts,
		dimStyle.Render(fmt.Sprintf("Last: %s", m.last)),
		dimStyle.Render(fmt.Sprintf("Elapsed: %s", elapsed)),
		barStyle.Render(bar),
	}

	return strings.Join(lines, "\n")
}

func listenForUpdates(updates <-chan pipeline.Progress) tea.Cmd {
	return func() tea.Msg {
		update, ok := <-updates
		if !ok {
			return doneMsg{}
		}
		return updateMsg(update)
	}
}

func renderBar(width int, ratio float64) string {
	filled := int(math.Round(ratio * float64(width)))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return "[" + strings.Repeat("=", filled) + strings.Repeat(" ", width-filled) + "]"
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
	labelStyle = lipgloss.NewStyle().Foreground(ColorInk)
	barStyle   = lipgloss.NewStyle().Foreground(ColorSuccess)
	warnStyle  = lipgloss.NewStyle().Foreground(ColorWarn)
	dimStyle   = lipgloss.NewStyle().Foreground(ColorDim)
)
