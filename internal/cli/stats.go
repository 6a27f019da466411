package cli

import (
	"fmt"

	"github.com/muonworks/muontickets/internal/board"
	"github.com/muonworks/muontickets/internal/ticket"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Ticket counts by status and claimed counts by owner",
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	e, _, err := openEngine()
	if err != nil {
		return err
	}
	entries, err := e.Store.LoadAll()
	if err != nil {
		return err
	}
	stats := board.Collect(entries)

	fmt.Printf("total: %d\n", stats.Total)
	for _, st := range ticket.Statuses {
		if n := stats.ByStatus[st]; n > 0 {
			fmt.Printf("  %-13s %d\n", st, n)
		}
	}
	if len(stats.ByOwner) > 0 {
		fmt.Println("claimed by owner:")
		for _, owner := range stats.OwnersByLoad() {
			fmt.Printf("  %-13s %d\n", owner, stats.ByOwner[owner])
		}
	}
	return nil
}
