package board

import (
	"sort"

	"github.com/muonworks/muontickets/internal/store"
	"github.com/muonworks/muontickets/internal/ticket"
)

// Stats summarizes a snapshot: ticket counts per status and claimed
// counts per owner.
type Stats struct {
	ByStatus map[ticket.Status]int
	ByOwner  map[string]int
	Total    int
}

// Collect computes board statistics over the parseable entries.
func Collect(entries []store.Entry) Stats {
	stats := Stats{
		ByStatus: map[ticket.Status]int{},
		ByOwner:  map[string]int{},
	}
	for _, e := range entries {
		if e.Err != nil {
			continue
		}
		m := ticket.Normalize(e.Meta)
		stats.ByStatus[m.Status]++
		stats.Total++
		if m.Status == ticket.StatusClaimed {
			owner := "<unowned>"
			if m.Owner != nil && *m.Owner != "" {
				owner = *m.Owner
			}
			stats.ByOwner[owner]++
		}
	}
	return stats
}

// OwnersByLoad returns the claiming owners ordered by claimed count
// (descending), with ties broken alphabetically.
func (s Stats) OwnersByLoad() []string {
	owners := make([]string, 0, len(s.ByOwner))
	for o := range s.ByOwner {
		owners = append(owners, o)
	}
	sort.Slice(owners, func(i, j int) bool {
		if s.ByOwner[owners[i]] != s.ByOwner[owners[j]] {
			return s.ByOwner[owners[i]] > s.ByOwner[owners[j]]
		}
		return owners[i] < owners[j]
	})
	return owners
}
