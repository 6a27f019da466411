package cli

import (
	"github.com/spf13/cobra"
)

var doneForce bool

var doneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Mark a reviewed ticket done",
	Args:  cobra.ExactArgs(1),
	RunE:  runDone,
}

func init() {
	doneCmd.Flags().BoolVar(&doneForce, "force", false, "Mark done regardless of current status")
}

func runDone(cmd *cobra.Command, args []string) error {
	e, _, err := openEngine()
	if err != nil {
		return err
	}
	res, err := e.Done(args[0], doneForce)
	if err != nil {
		return err
	}
	return finish(res)
}
