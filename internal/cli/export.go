package cli

import (
	"fmt"
	"os"

	"github.com/muonworks/muontickets/internal/export"
	"github.com/spf13/cobra"
)

var (
	exportFormat string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the board as JSON, JSONL, or SQLite",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "Output format (json|jsonl|sqlite)")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "Output file (required for sqlite, stdout otherwise)")
}

func runExport(cmd *cobra.Command, args []string) error {
	e, _, err := openEngine()
	if err != nil {
		return err
	}
	entries, err := e.Store.LoadAll()
	if err != nil {
		return err
	}
	rows := export.Rows(entries)

	switch exportFormat {
	case "json", "jsonl":
		out := os.Stdout
		if exportOut != "" {
			f, err := os.Create(exportOut)
			if err != nil {
				return fmt.Errorf("create output file: %w", err)
			}
			defer f.Close()
			out = f
		}
		if exportFormat == "json" {
			return export.WriteJSON(out, rows)
		}
		return export.WriteJSONL(out, rows)
	case "sqlite":
		if exportOut == "" {
			return fmt.Errorf("--out is required for sqlite export")
		}
		if err := export.WriteSQLite(exportOut, rows); err != nil {
			return err
		}
		fmt.Printf("exported %d tickets to %s\n", len(rows), exportOut)
		return nil
	default:
		return fmt.Errorf("unknown format %q (json|jsonl|sqlite)", exportFormat)
	}
}
