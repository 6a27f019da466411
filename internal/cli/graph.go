package cli

import (
	"fmt"

	"github.com/muonworks/muontickets/internal/board"
	"github.com/spf13/cobra"
)

var (
	graphMermaid  bool
	graphOpenOnly bool
)

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Print the dependency graph",
	RunE:  runGraph,
}

func init() {
	graphCmd.Flags().BoolVar(&graphMermaid, "mermaid", false, "Render as a mermaid block")
	graphCmd.Flags().BoolVar(&graphOpenOnly, "open-only", false, "Skip tickets that are already done")
}

func runGraph(cmd *cobra.Command, args []string) error {
	e, _, err := openEngine()
	if err != nil {
		return err
	}
	entries, err := e.Store.LoadAll()
	if err != nil {
		return err
	}
	edges := board.Edges(entries, graphOpenOnly)

	if graphMermaid {
		fmt.Print(board.Mermaid(edges))
		return nil
	}
	if len(edges) == 0 {
		fmt.Println("no dependencies")
		return nil
	}
	for _, edge := range edges {
		fmt.Printf("%s -> %s\n", edge.From, edge.To)
	}
	return nil
}
