package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var (
	claimOwner      string
	claimBranch     string
	claimIgnoreDeps bool
	claimForce      bool
)

var claimCmd = &cobra.Command{
	Use:   "claim <id>",
	Short: "Claim a ready ticket",
	Args:  cobra.ExactArgs(1),
	RunE:  runClaim,
}

func init() {
	claimCmd.Flags().StringVar(&claimOwner, "owner", "", "Owner agent identifier")
	claimCmd.Flags().StringVar(&claimBranch, "branch", "", "Work branch (defaulted from title when empty)")
	claimCmd.Flags().BoolVar(&claimIgnoreDeps, "ignore-deps", false, "Claim even when dependencies are not done")
	claimCmd.Flags().BoolVar(&claimForce, "force", false, "Claim regardless of current status")
}

func runClaim(cmd *cobra.Command, args []string) error {
	e, cfg, err := openEngine()
	if err != nil {
		return err
	}
	owner := claimOwner
	if owner == "" {
		owner = cfg.DefaultOwner
	}
	if owner == "" {
		return errors.New("--owner is required (or set default_owner in .mt/config.yaml)")
	}
	res, err := e.Claim(args[0], owner, claimBranch, claimIgnoreDeps, claimForce)
	if err != nil {
		return err
	}
	return finish(res)
}
