// Package ticket defines the ticket metadata model and the pure rules
// that govern it: normalization, status transitions, dependency gating,
// and pick scoring.
package ticket

import (
	"regexp"
	"strings"
)

// Status is the lifecycle state of a ticket. It is the main signal the
// scheduling logic reads.
type Status string

const (
	StatusReady       Status = "ready"
	StatusClaimed     Status = "claimed"
	StatusBlocked     Status = "blocked"
	StatusNeedsReview Status = "needs_review"
	StatusDone        Status = "done"
)

// Priority of a ticket; p0 is the most urgent.
type Priority string

const (
	PriorityP0 Priority = "p0"
	PriorityP1 Priority = "p1"
	PriorityP2 Priority = "p2"
)

// Type categorizes the kind of work a ticket represents.
type Type string

const (
	TypeSpec     Type = "spec"
	TypeCode     Type = "code"
	TypeTests    Type = "tests"
	TypeDocs     Type = "docs"
	TypeRefactor Type = "refactor"
	TypeChore    Type = "chore"
)

// Effort is a coarse size estimate; smaller is preferred when picking.
type Effort string

const (
	EffortXS Effort = "xs"
	EffortS  Effort = "s"
	EffortM  Effort = "m"
	EffortL  Effort = "l"
)

// Enumerations in canonical order, used by schema validation and CLI help.
var (
	Statuses   = []Status{StatusReady, StatusClaimed, StatusBlocked, StatusNeedsReview, StatusDone}
	Priorities = []Priority{PriorityP0, PriorityP1, PriorityP2}
	Types      = []Type{TypeSpec, TypeCode, TypeTests, TypeDocs, TypeRefactor, TypeChore}
	Efforts    = []Effort{EffortXS, EffortS, EffortM, EffortL}
)

// IDPattern matches a ticket id: "T-" plus six zero-padded digits.
var IDPattern = regexp.MustCompile(`^T-\d{6}$`)

// DatePattern matches the ISO calendar dates stored in created/updated.
var DatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Meta is the typed frontmatter of a ticket. Owner and Branch are nil
// while unassigned; Score is recorded at pick time as an audit trail.
// Extra catches frontmatter keys this tool does not recognize so they
// survive a read-modify-write cycle.
type Meta struct {
	ID        string         `yaml:"id"`
	Title     string         `yaml:"title"`
	Status    Status         `yaml:"status"`
	Priority  Priority       `yaml:"priority"`
	Type      Type           `yaml:"type"`
	Effort    Effort         `yaml:"effort"`
	Labels    []string       `yaml:"labels"`
	Tags      []string       `yaml:"tags"`
	Owner     *string        `yaml:"owner"`
	Created   string         `yaml:"created"`
	Updated   string         `yaml:"updated"`
	DependsOn []string       `yaml:"depends_on"`
	Branch    *string        `yaml:"branch"`
	Score     *float64       `yaml:"score,omitempty"`
	Extra     map[string]any `yaml:",inline"`
}

// Normalize fills in the defaults for a possibly-partial metadata record:
// empty sequences for labels/tags/depends_on and "s" for effort. It must
// run before any other component inspects the record, and it is
// idempotent.
func Normalize(m Meta) Meta {
	if m.Labels == nil {
		m.Labels = []string{}
	}
	if m.Tags == nil {
		m.Tags = []string{}
	}
	if m.DependsOn == nil {
		m.DependsOn = []string{}
	}
	if m.Effort == "" {
		m.Effort = EffortS
	}
	return m
}

// Fields flattens the record into the generic form the schema validator
// checks. String fields are present only when non-empty, so a zero value
// reads as a missing field; owner and branch are always present (possibly
// nil) because their schema rule is a string-or-null union.
func (m Meta) Fields() map[string]any {
	fields := map[string]any{
		"labels":     m.Labels,
		"tags":       m.Tags,
		"depends_on": m.DependsOn,
	}
	put := func(key, val string) {
		if val != "" {
			fields[key] = val
		}
	}
	put("id", m.ID)
	put("title", m.Title)
	put("status", string(m.Status))
	put("priority", string(m.Priority))
	put("type", string(m.Type))
	put("effort", string(m.Effort))
	put("created", m.Created)
	put("updated", m.Updated)
	fields["owner"] = ptrValue(m.Owner)
	fields["branch"] = ptrValue(m.Branch)
	if m.Score != nil {
		fields["score"] = *m.Score
	}
	for k, v := range m.Extra {
		fields[k] = v
	}
	return fields
}

func ptrValue(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

// HasLabels reports whether the ticket carries every label in want.
func (m Meta) HasLabels(want []string) bool {
	set := make(map[string]bool, len(m.Labels))
	for _, l := range m.Labels {
		set[l] = true
	}
	for _, w := range want {
		if !set[w] {
			return false
		}
	}
	return true
}

// HasAnyLabel reports whether the ticket carries at least one label in avoid.
func (m Meta) HasAnyLabel(avoid []string) bool {
	set := make(map[string]bool, len(m.Labels))
	for _, l := range m.Labels {
		set[l] = true
	}
	for _, a := range avoid {
		if set[a] {
			return true
		}
	}
	return false
}

var slugRun = regexp.MustCompile(`[^a-z0-9]+`)

// DefaultBranch derives the work-branch name used when claim/pick are not
// given one explicitly: bug/<lowercased id>-<slug of title>. Deterministic
// for a given title and id.
func DefaultBranch(m Meta) string {
	slug := slugRun.ReplaceAllString(strings.ToLower(m.Title), "-")
	slug = strings.Trim(slug, "-")
	if len(slug) > 40 {
		slug = slug[:40]
	}
	if slug == "" {
		slug = "task"
	}
	return "bug/" + strings.ToLower(m.ID) + "-" + slug
}
