package cli

import (
	"fmt"

	"github.com/muonworks/muontickets/internal/engine"
	"github.com/muonworks/muontickets/internal/ticket"
	"github.com/spf13/cobra"
)

var (
	newPriority string
	newType     string
	newEffort   string
	newLabels   []string
	newTags     []string
	newDeps     []string
	newGoal     string
)

var newCmd = &cobra.Command{
	Use:   "new <title>",
	Short: "Create a new ticket",
	Args:  cobra.ExactArgs(1),
	RunE:  runNew,
}

func init() {
	newCmd.Flags().StringVar(&newPriority, "priority", "p1", "Priority (p0|p1|p2)")
	newCmd.Flags().StringVar(&newType, "type", "code", "Type (spec|code|tests|docs|refactor|chore)")
	newCmd.Flags().StringVar(&newEffort, "effort", "s", "Effort (xs|s|m|l)")
	newCmd.Flags().StringArrayVar(&newLabels, "label", nil, "Label (repeatable)")
	newCmd.Flags().StringArrayVar(&newTags, "tag", nil, "Tag (repeatable)")
	newCmd.Flags().StringArrayVar(&newDeps, "depends-on", nil, "Dependency ticket id (repeatable)")
	newCmd.Flags().StringVar(&newGoal, "goal", "", "One-sentence goal")
}

func runNew(cmd *cobra.Command, args []string) error {
	if err := checkEnumFlags(newPriority, newType, ""); err != nil {
		return err
	}
	if !containsEffort(ticket.Effort(newEffort)) {
		return fmt.Errorf("unknown effort %q", newEffort)
	}
	e, _, err := openEngine()
	if err != nil {
		return err
	}
	m, err := e.New(engine.NewRequest{
		Title:     args[0],
		Goal:      newGoal,
		Priority:  ticket.Priority(newPriority),
		Type:      ticket.Type(newType),
		Effort:    ticket.Effort(newEffort),
		Labels:    newLabels,
		Tags:      newTags,
		DependsOn: newDeps,
	})
	if err != nil {
		return err
	}
	fmt.Println(e.Store.Path(m.ID))
	return nil
}
