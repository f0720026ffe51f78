package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"household/internal/domain"
)

// Theme colors
var (
	ColorBorder    = lipgloss.Color("#282726")
	ColorTextDim   = lipgloss.Color("#575653")
	ColorTextMuted = lipgloss.Color("#6F6E69")
	ColorText      = lipgloss.Color("#FFFCF0")
	ColorAccent    = lipgloss.Color("#3AA99F")
	ColorGreen     = lipgloss.Color("#879A39")
	ColorOrange    = lipgloss.Color("#DA702C")
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Align(lipgloss.Center)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	valueStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	mutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	usageStyle = lipgloss.NewStyle().
			Foreground(ColorGreen)

	warnStyle = lipgloss.NewStyle().
			Foreground(ColorOrange)

	dimStyle = lipgloss.NewStyle().
			Foreground(ColorTextDim)
)

// Table is a bordered text table for CLI output.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// RenderTitle renders a centered title bar in a bordered box.
func RenderTitle(title string) string {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Width(55).
		Align(lipgloss.Center).
		Padding(0, 1)

	return border.Render(titleStyle.Render(title))
}

// RenderSuggestions renders the suggestion list, one numbered line each.
// Alerts and fallbacks are highlighted.
func RenderSuggestions(list []string) string {
	var b strings.Builder
	for i, s := range list {
		num := dimStyle.Render(fmt.Sprintf("%2d.", i+1))
		style := valueStyle
		switch {
		case strings.HasPrefix(s, "Low inventory alert"),
			strings.HasSuffix(s, "unavailable right now."):
			style = warnStyle
		case strings.HasPrefix(s, "Predicted "):
			style = usageStyle
		case strings.HasPrefix(s, "Eco tip"):
			style = mutedStyle
		}
		fmt.Fprintf(&b, "  %s %s\n", num, style.Render(s))
	}
	return b.String()
}

// RenderForecast renders a single forecast line.
func RenderForecast(resourceType string, f domain.Forecast) string {
	label := headerStyle.Render(resourceType)
	v, ok := f.Value()
	if !ok {
		return fmt.Sprintf("  %s: %s\n", label, mutedStyle.Render("No data available"))
	}
	return fmt.Sprintf("  %s: %s\n", label, usageStyle.Render(fmt.Sprintf("%.2f", v)))
}

// RenderTable renders a bordered table with headers and rows.
func RenderTable(t Table) string {
	numCols := len(t.Headers)
	if numCols == 0 && len(t.Rows) > 0 {
		numCols = len(t.Rows[0])
	}
	if numCols == 0 {
		return ""
	}

	widths := make([]int, numCols)
	for i, h := range t.Headers {
		widths[i] = len(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < numCols && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	line := func(left, mid, right string) string {
		var b strings.Builder
		b.WriteString(left)
		for i, w := range widths {
			b.WriteString(strings.Repeat("─", w+2))
			if i < numCols-1 {
				b.WriteString(mid)
			}
		}
		b.WriteString(right)
		return dimStyle.Render(b.String()) + "\n"
	}
	row := func(cells []string, style lipgloss.Style) string {
		var b strings.Builder
		b.WriteString(dimStyle.Render("│"))
		for i := 0; i < numCols; i++ {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			b.WriteString(style.Render(fmt.Sprintf(" %-*s ", widths[i], cell)))
			b.WriteString(dimStyle.Render("│"))
		}
		return b.String() + "\n"
	}

	var b strings.Builder
	if t.Title != "" {
		b.WriteString("  " + headerStyle.Render(t.Title) + "\n")
	}
	b.WriteString(line("╭", "┬", "╮"))
	if len(t.Headers) > 0 {
		b.WriteString(row(t.Headers, headerStyle))
		b.WriteString(line("├", "┼", "┤"))
	}
	for _, r := range t.Rows {
		b.WriteString(row(r, valueStyle))
	}
	b.WriteString(line("╰", "┴", "╯"))
	return b.String()
}
