package cli

import (
	"fmt"
	"strings"

	"github.com/muonworks/muontickets/internal/board"
	"github.com/muonworks/muontickets/internal/ticket"
	"github.com/spf13/cobra"
)

// ANSI color codes.
const (
	colorReset   = "\033[0m"
	colorBold    = "\033[1m"
	colorDim     = "\033[2m"
	colorRed     = "\033[31m"
	colorGreen   = "\033[32m"
	colorYellow  = "\033[33m"
	colorBlue    = "\033[34m"
	colorMagenta = "\033[35m"
	colorCyan    = "\033[36m"
	colorWhite   = "\033[37m"
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Show the ticket board",
	RunE:  runBoard,
}

func runBoard(cmd *cobra.Command, args []string) error {
	e, _, err := openEngine()
	if err != nil {
		return err
	}
	entries, err := e.Store.LoadAll()
	if err != nil {
		return err
	}

	columns := map[ticket.Status][]ticket.Meta{}
	for _, entry := range entries {
		if entry.Err != nil {
			continue
		}
		m := ticket.Normalize(entry.Meta)
		columns[m.Status] = append(columns[m.Status], m)
	}

	if len(columns) == 0 {
		fmt.Printf("%sBoard is empty.%s Create a ticket: %smt new \"title\"%s\n",
			colorDim, colorReset, colorCyan, colorReset)
		return nil
	}

	type col struct {
		status ticket.Status
		label  string
		color  string
	}
	order := []col{
		{ticket.StatusReady, "READY", colorWhite},
		{ticket.StatusClaimed, "CLAIMED", colorBlue},
		{ticket.StatusBlocked, "BLOCKED", colorRed},
		{ticket.StatusNeedsReview, "REVIEW", colorMagenta},
		{ticket.StatusDone, "DONE", colorGreen},
	}

	colWidth := 26
	headerLine := ""
	sepLine := ""
	for _, c := range order {
		count := len(columns[c.status])
		header := fmt.Sprintf(" %s%s%s (%d)", c.color+colorBold, c.label, colorReset, count)
		// padRight needs visible length, not byte length (ANSI codes add bytes).
		visibleLen := len(fmt.Sprintf(" %s (%d)", c.label, count))
		padding := colWidth - visibleLen
		if padding < 0 {
			padding = 0
		}
		headerLine += header + strings.Repeat(" ", padding)
		sepLine += strings.Repeat("─", colWidth)
	}
	fmt.Println(headerLine)
	fmt.Println(colorDim + sepLine + colorReset)

	maxRows := 0
	for _, c := range order {
		if len(columns[c.status]) > maxRows {
			maxRows = len(columns[c.status])
		}
	}

	for i := 0; i < maxRows; i++ {
		line := ""
		for _, c := range order {
			tickets := columns[c.status]
			if i < len(tickets) {
				m := tickets[i]
				priColor := priorityColor(m.Priority)
				titleStr := truncate(m.Title, colWidth-len(m.ID)-3)
				card := fmt.Sprintf(" %s%s%s %s", priColor, m.ID, colorReset, titleStr)
				visibleLen := len(fmt.Sprintf(" %s %s", m.ID, titleStr))
				padding := colWidth - visibleLen
				if padding < 0 {
					padding = 0
				}
				line += card + strings.Repeat(" ", padding)
			} else {
				line += strings.Repeat(" ", colWidth)
			}
		}
		fmt.Println(line)

		detailLine := ""
		for _, c := range order {
			tickets := columns[c.status]
			if i < len(tickets) {
				m := tickets[i]
				detail := ""
				visibleDetail := ""
				if m.Owner != nil && *m.Owner != "" {
					detail = fmt.Sprintf("    %s[%s]%s", colorCyan, *m.Owner, colorReset)
					visibleDetail = fmt.Sprintf("    [%s]", *m.Owner)
				}
				padding := colWidth - len(visibleDetail)
				if padding < 0 {
					padding = 0
				}
				detailLine += detail + strings.Repeat(" ", padding)
			} else {
				detailLine += strings.Repeat(" ", colWidth)
			}
		}
		fmt.Println(detailLine)
	}
	fmt.Println()

	stats := board.Collect(entries)
	fmt.Printf("%s%d tickets%s", colorBold, stats.Total, colorReset)
	if n := stats.ByStatus[ticket.StatusDone]; n > 0 {
		fmt.Printf("  %s✓ %d done%s", colorGreen, n, colorReset)
	}
	if n := stats.ByStatus[ticket.StatusClaimed]; n > 0 {
		fmt.Printf("  %s● %d claimed%s", colorBlue, n, colorReset)
	}
	if n := stats.ByStatus[ticket.StatusBlocked]; n > 0 {
		fmt.Printf("  %s⚠ %d blocked%s", colorRed, n, colorReset)
	}
	fmt.Println()

	return nil
}

func priorityColor(p ticket.Priority) string {
	switch p {
	case ticket.PriorityP0:
		return colorRed + colorBold
	case ticket.PriorityP1:
		return colorYellow
	case ticket.PriorityP2:
		return colorDim
	default:
		return ""
	}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
