// Package board checks cross-ticket invariants over a full store snapshot
// and derives aggregate views of it (stats, dependency graph).
package board

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/muonworks/muontickets/internal/schema"
	"github.com/muonworks/muontickets/internal/store"
	"github.com/muonworks/muontickets/internal/ticket"
)

// Violation is one board-validation finding, attributed to the ticket
// file it was found in (or the owner, for WIP findings).
type Violation struct {
	Source  string
	Message string
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: %s", v.Source, v.Message)
}

// Report accumulates violations across the whole snapshot. Validation
// never stops at the first finding; the board passes only when the report
// is empty.
type Report struct {
	Violations []Violation
}

// Add records a violation.
func (r *Report) Add(source, format string, args ...any) {
	r.Violations = append(r.Violations, Violation{Source: source, Message: fmt.Sprintf(format, args...)})
}

// OK reports whether the snapshot passed validation.
func (r *Report) OK() bool {
	return len(r.Violations) == 0
}

func (r *Report) String() string {
	lines := make([]string, 0, len(r.Violations))
	for _, v := range r.Violations {
		lines = append(lines, v.String())
	}
	return strings.Join(lines, "\n")
}

// Options tune the validation pass.
type Options struct {
	// MaxClaimedPerOwner is the WIP limit; an owner holding more claimed
	// tickets than this is a violation.
	MaxClaimedPerOwner int
	// EnforceDoneDeps additionally requires that claimed, needs_review and
	// done tickets with dependencies have them all done.
	EnforceDoneDeps bool
}

// Validate runs every per-ticket and cross-ticket check over the snapshot
// and returns the full accumulated report. Parse failures are reported
// and the remaining tickets are still checked.
func Validate(entries []store.Entry, sch schema.Schema, opts Options) Report {
	var report Report

	index := Index(entries)

	for _, e := range entries {
		source := filepath.Base(e.Path)
		if e.Err != nil {
			report.Add(source, "%v", e.Err)
			continue
		}
		m := ticket.Normalize(e.Meta)

		for _, violation := range sch.Validate(m.Fields()) {
			report.Add(source, "%s", violation)
		}

		if m.Status == ticket.StatusClaimed && (m.Owner == nil || *m.Owner == "") {
			report.Add(source, "claimed ticket must have owner")
		}
		if (m.Status == ticket.StatusNeedsReview || m.Status == ticket.StatusDone) &&
			(m.Branch == nil || *m.Branch == "") {
			report.Add(source, "status %s should have branch set", m.Status)
		}

		if m.Created != "" && m.Updated != "" && m.Updated < m.Created {
			report.Add(source, "updated (%s) is earlier than created (%s)", m.Updated, m.Created)
		}

		if !knownEffort(m.Effort) {
			report.Add(source, "effort must be one of %v, got %q", ticket.Efforts, m.Effort)
		}

		for _, dep := range m.DependsOn {
			if _, ok := index[dep]; !ok {
				report.Add(source, "depends_on missing ticket %s", dep)
			}
		}

		if opts.EnforceDoneDeps && inFlight(m.Status) && len(m.DependsOn) > 0 {
			if ok, unmet := ticket.DepsSatisfied(m, index); !ok {
				report.Add(source, "status %s but deps not done: %s", m.Status, strings.Join(unmet, ", "))
			}
		}
	}

	validateWIP(entries, opts.MaxClaimedPerOwner, &report)

	return report
}

// validateWIP flags owners holding more claimed tickets than the limit.
func validateWIP(entries []store.Entry, max int, report *Report) {
	counts := map[string]int{}
	for _, e := range entries {
		if e.Err != nil {
			continue
		}
		m := e.Meta
		if m.Status == ticket.StatusClaimed && m.Owner != nil && *m.Owner != "" {
			counts[*m.Owner]++
		}
	}
	for owner, n := range counts {
		if n > max {
			report.Add("owner "+owner, "has %d claimed tickets (max %d)", n, max)
		}
	}
}

// Index builds the id-to-metadata map over the parseable entries of a
// snapshot, normalizing each record.
func Index(entries []store.Entry) map[string]ticket.Meta {
	index := make(map[string]ticket.Meta, len(entries))
	for _, e := range entries {
		if e.Err != nil {
			continue
		}
		m := ticket.Normalize(e.Meta)
		if m.ID != "" {
			index[m.ID] = m
		}
	}
	return index
}

// ValidIndex builds the id-to-metadata map over entries that also pass
// schema validation. Pick uses this as both its candidate pool and its
// dependency map.
func ValidIndex(entries []store.Entry, sch schema.Schema) map[string]ticket.Meta {
	index := make(map[string]ticket.Meta, len(entries))
	for _, e := range entries {
		if e.Err != nil {
			continue
		}
		m := ticket.Normalize(e.Meta)
		if m.ID == "" || len(sch.Validate(m.Fields())) > 0 {
			continue
		}
		index[m.ID] = m
	}
	return index
}

func knownEffort(e ticket.Effort) bool {
	for _, known := range ticket.Efforts {
		if e == known {
			return true
		}
	}
	return false
}

func inFlight(s ticket.Status) bool {
	return s == ticket.StatusClaimed || s == ticket.StatusNeedsReview || s == ticket.StatusDone
}
