package cli

import (
	"encoding/json"
	"errors"
	"os"

	"github.com/muonworks/muontickets/internal/engine"
	"github.com/muonworks/muontickets/internal/ticket"
	"github.com/spf13/cobra"
)

var (
	pickOwner       string
	pickBranch      string
	pickPriority    string
	pickType        string
	pickLabels      []string
	pickAvoidLabels []string
	pickIgnoreDeps  bool
	pickMaxClaimed  int
	pickJSON        bool
)

var pickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Pick the best ready ticket and claim it",
	RunE:  runPick,
}

func init() {
	pickCmd.Flags().StringVar(&pickOwner, "owner", "", "Owner agent identifier")
	pickCmd.Flags().StringVar(&pickBranch, "branch", "", "Work branch (defaulted from title when empty)")
	pickCmd.Flags().StringVar(&pickPriority, "priority", "", "Only consider this priority")
	pickCmd.Flags().StringVar(&pickType, "type", "", "Only consider this type")
	pickCmd.Flags().StringArrayVar(&pickLabels, "label", nil, "Require label (repeatable, ANDed)")
	pickCmd.Flags().StringArrayVar(&pickAvoidLabels, "avoid-label", nil, "Exclude label (repeatable)")
	pickCmd.Flags().BoolVar(&pickIgnoreDeps, "ignore-deps", false, "Consider tickets with unmet dependencies")
	pickCmd.Flags().IntVar(&pickMaxClaimed, "max-claimed-per-owner", 0, "Override the configured WIP cap")
	pickCmd.Flags().BoolVar(&pickJSON, "json", false, "Emit the pick as one JSON object")
}

func runPick(cmd *cobra.Command, args []string) error {
	if err := checkEnumFlags(pickPriority, pickType, ""); err != nil {
		return err
	}
	e, cfg, err := openEngine()
	if err != nil {
		return err
	}
	owner := pickOwner
	if owner == "" {
		owner = cfg.DefaultOwner
	}
	if owner == "" {
		return errors.New("--owner is required (or set default_owner in .mt/config.yaml)")
	}
	maxClaimed := cfg.MaxClaimedPerOwner
	if pickMaxClaimed > 0 {
		maxClaimed = pickMaxClaimed
	}

	res, err := e.Pick(engine.PickRequest{
		Owner:              owner,
		Branch:             pickBranch,
		Priority:           ticket.Priority(pickPriority),
		Type:               ticket.Type(pickType),
		Labels:             pickLabels,
		AvoidLabels:        pickAvoidLabels,
		IgnoreDeps:         pickIgnoreDeps,
		MaxClaimedPerOwner: maxClaimed,
	})
	if err != nil {
		return err
	}
	if res.Outcome == engine.OK && pickJSON {
		return json.NewEncoder(os.Stdout).Encode(res)
	}
	return finish(res.Result)
}
