package cli

import (
	"github.com/muonworks/muontickets/internal/ticket"
	"github.com/spf13/cobra"
)

var (
	setStatusForce      bool
	setStatusClearOwner bool
)

var setStatusCmd = &cobra.Command{
	Use:   "set-status <id> <status>",
	Short: "Move a ticket along the status state machine",
	Args:  cobra.ExactArgs(2),
	RunE:  runSetStatus,
}

func init() {
	setStatusCmd.Flags().BoolVar(&setStatusForce, "force", false, "Bypass the transition table")
	setStatusCmd.Flags().BoolVar(&setStatusClearOwner, "clear-owner", false, "Null owner and branch when moving to ready")
}

func runSetStatus(cmd *cobra.Command, args []string) error {
	e, _, err := openEngine()
	if err != nil {
		return err
	}
	res, err := e.SetStatus(args[0], ticket.Status(args[1]), setStatusForce, setStatusClearOwner)
	if err != nil {
		return err
	}
	return finish(res)
}
