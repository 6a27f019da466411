package board

import (
	"fmt"
	"sort"
	"strings"

	"github.com/muonworks/muontickets/internal/store"
	"github.com/muonworks/muontickets/internal/ticket"
)

// Edge is one dependency arrow: From must be done before To can start.
type Edge struct {
	From string
	To   string
}

// Edges lists the dependency edges of the snapshot in deterministic
// order. With openOnly set, tickets that are already done are skipped.
func Edges(entries []store.Entry, openOnly bool) []Edge {
	index := Index(entries)

	ids := make([]string, 0, len(index))
	for id := range index {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var edges []Edge
	for _, id := range ids {
		m := index[id]
		if openOnly && m.Status == ticket.StatusDone {
			continue
		}
		for _, dep := range m.DependsOn {
			edges = append(edges, Edge{From: dep, To: id})
		}
	}
	return edges
}

// Mermaid renders the edges as a mermaid graph block.
func Mermaid(edges []Edge) string {
	var b strings.Builder
	b.WriteString("```mermaid\ngraph TD\n")
	for _, e := range edges {
		fmt.Fprintf(&b, "  %s --> %s\n", e.From, e.To)
	}
	b.WriteString("```\n")
	return b.String()
}
