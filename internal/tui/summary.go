package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type SummaryRow struct {
	Label string
	Value string
}

// RenderSummary draws rows as a two-column table.
func RenderSummary(rows []SummaryRow) string {
	labelWidth := 0
	valueWidth := 0
	for _, row := range rows {
		labelWidth = max(labelWidth, lipgloss.Width(row.Label))
		valueWidth = max(valueWidth, lipgloss.Width(row.Value))
	}

	hline := dimStyle.Render(strings.Repeat("─", labelWidth+valueWidth+3))
	lines := []string{hline}

	for _, row := range rows {
		label := summaryLabelStyle.Width(labelWidth).Render(row.Label)
		value := valueStyle.Width(valueWidth).Render(row.Value)
		lines = append(lines, fmt.Sprintf("%s │ %s", label, value))
	}

	lines = append(lines, hline)
	return strings.Join(lines, "\n")
}

// FormatBytes renders a byte count for humans.
func FormatBytes(b int64) string {
	switch {
	case b < 0:
		return "unknown"
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}

var (
	summaryLabelStyle = lipgloss.NewStyle().Foreground(ColorAccentAlt)
	valueStyle        = lipgloss.NewStyle().Foreground(ColorInk).Bold(true)
)
