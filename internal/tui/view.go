package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muonworks/muontickets/internal/ticket"
)

// --- Color palette ---
var (
	clrSubtle    = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#666666"}
	clrHighlight = lipgloss.AdaptiveColor{Light: "#0F766E", Dark: "#2DD4BF"}
	clrGreen     = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	clrYellow    = lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#F59E0B"}
	clrRed       = lipgloss.AdaptiveColor{Light: "#B91C1C", Dark: "#F87171"}
	clrBlue      = lipgloss.AdaptiveColor{Light: "#1D4ED8", Dark: "#60A5FA"}
	clrCyan      = lipgloss.AdaptiveColor{Light: "#0E7490", Dark: "#22D3EE"}
	clrDim       = lipgloss.AdaptiveColor{Light: "#999999", Dark: "#555555"}
)

// --- Styles ---
var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(clrHighlight)
	dimStyle   = lipgloss.NewStyle().Foreground(clrDim)
	idStyle    = lipgloss.NewStyle().Foreground(clrCyan)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(clrSubtle).
			Padding(0, 1)

	cardSelectedStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(clrHighlight).
				Padding(0, 1).
				Bold(true)

	columnHeaderStyle = lipgloss.NewStyle().Bold(true)

	detailStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(clrHighlight).
			Padding(1, 2)

	errorStyle = lipgloss.NewStyle().Foreground(clrRed).Bold(true)

	footerKeyStyle  = lipgloss.NewStyle().Bold(true).Foreground(clrHighlight)
	footerDescStyle = lipgloss.NewStyle().Foreground(clrSubtle)
)

var columnColors = [numColumns]lipgloss.AdaptiveColor{
	clrSubtle, clrBlue, clrRed, clrYellow, clrGreen,
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.currentScreen == screenDetail && m.selected != nil {
		return m.viewDetail()
	}
	return m.viewBoard()
}

func (m Model) viewBoard() string {
	var b strings.Builder

	header := titleStyle.Render("mt board")
	header += dimStyle.Render(fmt.Sprintf(" — %d tickets", len(m.cards)))
	if m.activeFilter != "" {
		header += dimStyle.Render("  label:") + idStyle.Render(m.activeFilter)
	}
	b.WriteString(header + "\n\n")

	colWidth := 24
	if m.width > 0 {
		colWidth = (m.width - numColumns) / numColumns
		if colWidth < 18 {
			colWidth = 18
		}
		if colWidth > 34 {
			colWidth = 34
		}
	}

	var columns []string
	for i := 0; i < numColumns; i++ {
		columns = append(columns, m.renderColumn(i, colWidth))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, columns...))
	b.WriteString("\n")

	if m.filtering {
		b.WriteString("\n  filter: " + m.filterInput.View() + "\n")
	}
	if m.statusMsg != "" {
		b.WriteString("\n" + errorStyle.Render("  "+m.statusMsg) + "\n")
	}
	b.WriteString("\n" + m.footer())
	return b.String()
}

func (m Model) renderColumn(i, width int) string {
	var b strings.Builder
	color := columnColors[i]

	header := columnHeaderStyle.Foreground(color).
		Render(fmt.Sprintf("%s (%d)", columnLabels[i], len(m.columns[i])))
	b.WriteString(header + "\n")

	for row, c := range m.columns[i] {
		var content strings.Builder
		content.WriteString(idStyle.Render(c.Meta.ID) + " " + priorityBadge(c.Meta.Priority) + "\n")
		content.WriteString(truncate(c.Meta.Title, width-4))
		if c.Meta.Owner != nil && *c.Meta.Owner != "" {
			content.WriteString("\n" + dimStyle.Render("["+*c.Meta.Owner+"]"))
		}

		style := cardStyle.Width(width)
		if i == m.cursorCol && row == m.cursorRow {
			style = cardSelectedStyle.Width(width)
		}
		b.WriteString(style.Render(content.String()) + "\n")
	}
	if len(m.columns[i]) == 0 {
		b.WriteString(dimStyle.Render("  —") + "\n")
	}

	return lipgloss.NewStyle().Width(width + 2).Render(b.String())
}

func (m Model) viewDetail() string {
	c := m.selected
	meta := c.Meta

	var b strings.Builder
	b.WriteString(idStyle.Render(meta.ID) + "  " + titleStyle.Render(meta.Title) + "\n\n")
	b.WriteString(fmt.Sprintf("status: %s   priority: %s   type: %s   effort: %s\n",
		meta.Status, meta.Priority, meta.Type, meta.Effort))

	owner, branch := "-", "-"
	if meta.Owner != nil && *meta.Owner != "" {
		owner = *meta.Owner
	}
	if meta.Branch != nil && *meta.Branch != "" {
		branch = *meta.Branch
	}
	b.WriteString(fmt.Sprintf("owner: %s   branch: %s\n", owner, branch))
	b.WriteString(fmt.Sprintf("created: %s   updated: %s\n", meta.Created, meta.Updated))
	if len(meta.Labels) > 0 {
		b.WriteString("labels: " + strings.Join(meta.Labels, ", ") + "\n")
	}
	if len(meta.DependsOn) > 0 {
		b.WriteString("depends_on: " + strings.Join(meta.DependsOn, ", ") + "\n")
	}
	if meta.Score != nil {
		b.WriteString(fmt.Sprintf("score: %.1f\n", *meta.Score))
	}

	body := strings.TrimSpace(c.Body)
	if body != "" {
		b.WriteString("\n" + dimStyle.Render(body) + "\n")
	}

	width := 70
	if m.width > 4 && m.width < 74 {
		width = m.width - 4
	}
	panel := detailStyle.Width(width).Render(b.String())

	footer := footerKeyStyle.Render("esc") + footerDescStyle.Render(" back  ") +
		footerKeyStyle.Render("r") + footerDescStyle.Render(" refresh  ") +
		footerKeyStyle.Render("ctrl+c") + footerDescStyle.Render(" quit")
	return panel + "\n" + footer
}

func (m Model) footer() string {
	keys := [][2]string{
		{"←↑↓→", "move"},
		{"enter", "detail"},
		{"/", "filter"},
		{"r", "refresh"},
		{"q", "quit"},
	}
	var parts []string
	for _, k := range keys {
		parts = append(parts, footerKeyStyle.Render(k[0])+footerDescStyle.Render(" "+k[1]))
	}
	return strings.Join(parts, "  ")
}

func priorityBadge(p ticket.Priority) string {
	switch p {
	case ticket.PriorityP0:
		return lipgloss.NewStyle().Foreground(clrRed).Bold(true).Render("p0")
	case ticket.PriorityP1:
		return lipgloss.NewStyle().Foreground(clrYellow).Render("p1")
	default:
		return dimStyle.Render(string(p))
	}
}

func truncate(s string, maxLen int) string {
	if maxLen < 4 {
		maxLen = 4
	}
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
