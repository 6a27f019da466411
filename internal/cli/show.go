package cli

import (
	"fmt"
	"strings"

	"github.com/muonworks/muontickets/internal/ticket"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print one ticket",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	e, _, err := openEngine()
	if err != nil {
		return err
	}
	entry, err := e.Store.LoadOne(args[0])
	if err != nil {
		return err
	}
	m := ticket.Normalize(entry.Meta)

	owner, branch := "null", "null"
	if m.Owner != nil {
		owner = *m.Owner
	}
	if m.Branch != nil {
		branch = *m.Branch
	}
	fmt.Printf("%s  %s\n", m.ID, m.Title)
	fmt.Printf("status: %s  priority: %s  type: %s  effort: %s\n", m.Status, m.Priority, m.Type, m.Effort)
	fmt.Printf("owner: %s  branch: %s\n", owner, branch)
	fmt.Printf("created: %s  updated: %s\n", m.Created, m.Updated)
	if len(m.Labels) > 0 {
		fmt.Printf("labels: %s\n", strings.Join(m.Labels, ", "))
	}
	if len(m.DependsOn) > 0 {
		fmt.Printf("depends_on: %s\n", strings.Join(m.DependsOn, ", "))
	}
	if m.Score != nil {
		fmt.Printf("score: %.1f\n", *m.Score)
	}
	fmt.Println()
	fmt.Println(strings.TrimRight(entry.Body, "\n"))
	return nil
}
