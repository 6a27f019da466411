// Package engine implements the ticket lifecycle operations: claim,
// comment, set-status, done, and pick. Each operation loads a snapshot
// through the store, computes a decision, writes at most one mutated
// ticket, and reports a rich Result. Precondition refusals are Result
// values, never errors; errors are reserved for not-found ids and I/O.
package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/muonworks/muontickets/internal/board"
	"github.com/muonworks/muontickets/internal/schema"
	"github.com/muonworks/muontickets/internal/store"
	"github.com/muonworks/muontickets/internal/ticket"
)

// Outcome is the tri-state result of an operation.
type Outcome int

const (
	// OK means the operation succeeded and the store was updated (or the
	// request was a no-op).
	OK Outcome = iota
	// Refused means a precondition or capacity gate blocked the operation.
	// The message names the cause and the override flag, if any.
	Refused
	// NoCandidate means pick found nothing claimable. It is distinct from
	// Refused so callers can tell "nothing to do" from a gating failure.
	NoCandidate
)

// Result is what every operation hands back to the CLI.
type Result struct {
	Outcome Outcome
	Message string
}

func ok(format string, args ...any) Result {
	return Result{Outcome: OK, Message: fmt.Sprintf(format, args...)}
}

func refused(format string, args ...any) Result {
	return Result{Outcome: Refused, Message: fmt.Sprintf(format, args...)}
}

// Engine binds the store, the schema, and a clock. Now is injectable so
// date-dependent behavior (updated stamps, age bonus) is testable; when
// nil, the wall clock is used.
type Engine struct {
	Store  *store.Store
	Schema schema.Schema
	Now    func() time.Time
}

func (e *Engine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

func (e *Engine) today() string {
	return e.now().Format("2006-01-02")
}

// Claim takes ownership of a ticket for owner. The ticket must be ready
// unless force, and its dependencies must all be done unless ignoreDeps.
// An empty branch is defaulted from the title and id.
func (e *Engine) Claim(id, owner, branch string, ignoreDeps, force bool) (Result, error) {
	entry, err := e.Store.LoadOne(id)
	if err != nil {
		return Result{}, err
	}
	m := ticket.Normalize(entry.Meta)

	if m.Status != ticket.StatusReady && !force {
		return refused("refusing to claim %s: status is %q (expected ready); use --force to override", id, m.Status), nil
	}

	if !ignoreDeps && len(m.DependsOn) > 0 {
		entries, err := e.Store.LoadAll()
		if err != nil {
			return Result{}, err
		}
		if satisfied, unmet := ticket.DepsSatisfied(m, board.Index(entries)); !satisfied {
			return refused("refusing to claim %s: dependencies not done: %s; use --ignore-deps to override",
				id, strings.Join(unmet, ", ")), nil
		}
	}

	if branch == "" {
		branch = ticket.DefaultBranch(m)
	}
	m.Status = ticket.StatusClaimed
	m.Owner = &owner
	m.Branch = &branch
	m.Updated = e.today()

	if err := e.Store.Save(entry.Path, m, entry.Body); err != nil {
		return Result{}, err
	}
	return ok("claimed %s as %s (branch: %s)", id, owner, branch), nil
}

// Comment appends a dated entry to the ticket's progress log and
// refreshes updated. Status is untouched.
func (e *Engine) Comment(id, text string) (Result, error) {
	entry, err := e.Store.LoadOne(id)
	if err != nil {
		return Result{}, err
	}
	m := ticket.Normalize(entry.Meta)
	m.Updated = e.today()
	body := ticket.AppendProgressLog(entry.Body, e.today(), strings.TrimSpace(text))

	if err := e.Store.Save(entry.Path, m, body); err != nil {
		return Result{}, err
	}
	return ok("commented on %s", id), nil
}

// SetStatus moves a ticket to newStatus. Equal old and new is a no-op
// success. The transition table applies unless force; clearOwner nulls
// owner and branch when the target status is ready.
func (e *Engine) SetStatus(id string, newStatus ticket.Status, force, clearOwner bool) (Result, error) {
	if !ticket.KnownStatus(newStatus) {
		return Result{}, fmt.Errorf("unknown status %q", newStatus)
	}
	entry, err := e.Store.LoadOne(id)
	if err != nil {
		return Result{}, err
	}
	m := ticket.Normalize(entry.Meta)
	old := m.Status

	if old == newStatus {
		return ok("%s already %s", id, newStatus), nil
	}
	if !force {
		if err := ticket.ValidateTransition(old, newStatus); err != nil {
			return refused("refusing: %v; use --force to override", err), nil
		}
	}

	if newStatus == ticket.StatusReady && clearOwner {
		m.Owner = nil
		m.Branch = nil
	}
	m.Status = newStatus
	m.Updated = e.today()

	if err := e.Store.Save(entry.Path, m, entry.Body); err != nil {
		return Result{}, err
	}
	return ok("%s: %s -> %s", id, old, newStatus), nil
}

// Done marks a ticket done. The ticket must be in needs_review unless
// force.
func (e *Engine) Done(id string, force bool) (Result, error) {
	entry, err := e.Store.LoadOne(id)
	if err != nil {
		return Result{}, err
	}
	m := ticket.Normalize(entry.Meta)

	if m.Status != ticket.StatusNeedsReview && !force {
		return refused("refusing to mark %s done: status is %q (expected needs_review); use set-status first or --force", id, m.Status), nil
	}

	m.Status = ticket.StatusDone
	m.Updated = e.today()

	if err := e.Store.Save(entry.Path, m, entry.Body); err != nil {
		return Result{}, err
	}
	return ok("done %s", id), nil
}
