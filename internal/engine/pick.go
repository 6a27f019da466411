package engine

import (
	"sort"

	"github.com/muonworks/muontickets/internal/board"
	"github.com/muonworks/muontickets/internal/ticket"
)

// PickRequest carries the filters for one pick invocation.
type PickRequest struct {
	Owner       string
	Branch      string
	Priority    ticket.Priority
	Type        ticket.Type
	Labels      []string
	AvoidLabels []string
	IgnoreDeps  bool
	// MaxClaimedPerOwner is the WIP cap. Unlike claim preconditions it is
	// a hard gate with no force override.
	MaxClaimedPerOwner int
}

// PickResult is the structured payload of a successful pick.
type PickResult struct {
	Result   `json:"-"`
	PickedID string  `json:"picked"`
	Owner    string  `json:"owner"`
	Branch   string  `json:"branch"`
	Score    float64 `json:"score"`
}

type candidate struct {
	meta  ticket.Meta
	path  string
	body  string
	score float64
}

// Pick selects the best claimable ticket for an owner and claims it,
// recording the computed score on the ticket. Candidates come from the
// structurally-valid tickets only; the same map serves as the dependency
// index. Selection is a strict total order: score descending, then
// updated ascending (stale first), then id ascending.
func (e *Engine) Pick(req PickRequest) (PickResult, error) {
	entries, err := e.Store.LoadAll()
	if err != nil {
		return PickResult{}, err
	}
	index := board.ValidIndex(entries, e.Schema)

	claimed := 0
	for _, m := range index {
		if m.Status == ticket.StatusClaimed && m.Owner != nil && *m.Owner == req.Owner {
			claimed++
		}
	}
	if claimed >= req.MaxClaimedPerOwner {
		return PickResult{Result: refused("owner %q already has %d claimed tickets (max %d)",
			req.Owner, claimed, req.MaxClaimedPerOwner)}, nil
	}

	var candidates []candidate
	for _, entry := range entries {
		if entry.Err != nil {
			continue
		}
		m := ticket.Normalize(entry.Meta)
		if _, valid := index[m.ID]; !valid {
			continue
		}
		if m.Status != ticket.StatusReady {
			continue
		}
		if req.Priority != "" && m.Priority != req.Priority {
			continue
		}
		if req.Type != "" && m.Type != req.Type {
			continue
		}
		if len(req.Labels) > 0 && !m.HasLabels(req.Labels) {
			continue
		}
		if len(req.AvoidLabels) > 0 && m.HasAnyLabel(req.AvoidLabels) {
			continue
		}
		if satisfied, _ := ticket.DepsSatisfied(m, index); !satisfied && !req.IgnoreDeps {
			continue
		}
		candidates = append(candidates, candidate{
			meta:  m,
			path:  entry.Path,
			body:  entry.Body,
			score: ticket.ComputeScore(m, index, e.now()),
		})
	}

	if len(candidates) == 0 {
		return PickResult{Result: Result{
			Outcome: NoCandidate,
			Message: "no claimable tickets found (ready + deps satisfied + filters)",
		}}, nil
	}

	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.score != b.score {
			return a.score > b.score
		}
		if a.meta.Updated != b.meta.Updated {
			return a.meta.Updated < b.meta.Updated
		}
		return a.meta.ID < b.meta.ID
	})
	best := candidates[0]

	branch := req.Branch
	if branch == "" {
		branch = ticket.DefaultBranch(best.meta)
	}
	m := best.meta
	m.Status = ticket.StatusClaimed
	m.Owner = &req.Owner
	m.Branch = &branch
	m.Updated = e.today()
	score := best.score
	m.Score = &score

	if err := e.Store.Save(best.path, m, best.body); err != nil {
		return PickResult{}, err
	}
	return PickResult{
		Result:   ok("picked %s (score %.1f) -> claimed as %s (branch: %s)", m.ID, score, req.Owner, branch),
		PickedID: m.ID,
		Owner:    req.Owner,
		Branch:   branch,
		Score:    score,
	}, nil
}
