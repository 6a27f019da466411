package cli

import (
	"fmt"

	"github.com/muonworks/muontickets/internal/board"
	"github.com/spf13/cobra"
)

var (
	validateEnforceDoneDeps bool
	validateMaxClaimed      int
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check every ticket and cross-ticket invariant",
	RunE:  runValidate,
}

func init() {
	validateCmd.Flags().BoolVar(&validateEnforceDoneDeps, "enforce-done-deps", false, "Require in-flight tickets to have all dependencies done")
	validateCmd.Flags().IntVar(&validateMaxClaimed, "max-claimed-per-owner", 0, "Override the configured WIP cap")
}

func runValidate(cmd *cobra.Command, args []string) error {
	e, cfg, err := openEngine()
	if err != nil {
		return err
	}
	entries, err := e.Store.LoadAll()
	if err != nil {
		return err
	}

	opts := board.Options{
		MaxClaimedPerOwner: cfg.MaxClaimedPerOwner,
		EnforceDoneDeps:    cfg.EnforceDoneDeps || validateEnforceDoneDeps,
	}
	if validateMaxClaimed > 0 {
		opts.MaxClaimedPerOwner = validateMaxClaimed
	}

	report := board.Validate(entries, e.Schema, opts)
	if report.OK() {
		fmt.Printf("OK: %d tickets valid\n", len(entries))
		return nil
	}
	return &ExitError{
		Code:    1,
		Message: fmt.Sprintf("%s\n%d violation(s)", report.String(), len(report.Violations)),
	}
}
