package cli

import (
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muonworks/muontickets/internal/store"
	"github.com/muonworks/muontickets/internal/tui"
	"github.com/spf13/cobra"
)

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Open the interactive board",
	Long:  "Opens a read-only dashboard with status columns, ticket cards, a detail panel, and a label filter.",
	RunE:  runUI,
}

func runUI(cmd *cobra.Command, args []string) error {
	root, err := repoRoot()
	if err != nil {
		return err
	}
	model := tui.New(store.New(filepath.Join(root, "tickets")))
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
