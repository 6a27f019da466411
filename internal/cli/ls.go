package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/muonworks/muontickets/internal/ticket"
	"github.com/spf13/cobra"
)

var (
	lsStatus      string
	lsOwner       string
	lsPriority    string
	lsType        string
	lsLabels      []string
	lsShowInvalid bool
)

var lsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List tickets",
	RunE:  runLs,
}

func init() {
	lsCmd.Flags().StringVar(&lsStatus, "status", "", "Filter by status")
	lsCmd.Flags().StringVar(&lsOwner, "owner", "", "Filter by owner (exact match, '' for unowned)")
	lsCmd.Flags().StringVar(&lsPriority, "priority", "", "Filter by priority")
	lsCmd.Flags().StringVar(&lsType, "type", "", "Filter by type")
	lsCmd.Flags().StringArrayVar(&lsLabels, "label", nil, "Filter by label (repeatable, ANDed)")
	lsCmd.Flags().BoolVar(&lsShowInvalid, "show-invalid", false, "Show tickets that failed to parse")
}

func runLs(cmd *cobra.Command, args []string) error {
	e, _, err := openEngine()
	if err != nil {
		return err
	}
	entries, err := e.Store.LoadAll()
	if err != nil {
		return err
	}
	ownerFiltered := cmd.Flags().Changed("owner")

	for _, entry := range entries {
		if entry.Err != nil {
			if lsShowInvalid {
				fmt.Printf("%s  PARSE_ERROR  %v\n", filepath.Base(entry.Path), entry.Err)
			}
			continue
		}
		m := ticket.Normalize(entry.Meta)
		if lsStatus != "" && string(m.Status) != lsStatus {
			continue
		}
		if lsPriority != "" && string(m.Priority) != lsPriority {
			continue
		}
		if lsType != "" && string(m.Type) != lsType {
			continue
		}
		if ownerFiltered {
			owner := ""
			if m.Owner != nil {
				owner = *m.Owner
			}
			if owner != lsOwner {
				continue
			}
		}
		if len(lsLabels) > 0 && !m.HasLabels(lsLabels) {
			continue
		}

		owner := "-"
		if m.Owner != nil && *m.Owner != "" {
			owner = *m.Owner
		}
		labels := "-"
		if len(m.Labels) > 0 {
			labels = strings.Join(m.Labels, ",")
		}
		fmt.Printf("%s  %-12s %-3s %-8s %-10s %-12s %s\n",
			m.ID, m.Status, m.Priority, m.Type, owner, labels, m.Title)
	}
	return nil
}
