package cli

import (
	"github.com/spf13/cobra"
)

var commentCmd = &cobra.Command{
	Use:   "comment <id> <text>",
	Short: "Append a dated entry to a ticket's progress log",
	Args:  cobra.ExactArgs(2),
	RunE:  runComment,
}

func runComment(cmd *cobra.Command, args []string) error {
	e, _, err := openEngine()
	if err != nil {
		return err
	}
	res, err := e.Comment(args[0], args[1])
	if err != nil {
		return err
	}
	return finish(res)
}
