// Package cli wires the ticket engine into the mt command tree.
package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "mt",
	Short:         "File-based tickets for coordinating concurrent agents",
	Long:          "mt — a ticket tracker stored as plain files.\nAgents pick, claim, and complete tickets; the repository is the board.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(lsCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(claimCmd)
	rootCmd.AddCommand(pickCmd)
	rootCmd.AddCommand(commentCmd)
	rootCmd.AddCommand(setStatusCmd)
	rootCmd.AddCommand(doneCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(graphCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(boardCmd)
	rootCmd.AddCommand(uiCmd)
}
