package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/muonworks/muontickets/internal/ticket"
)

// NewRequest describes a ticket to create. Zero-valued enum fields fall
// back to the creation defaults (p1, code, s).
type NewRequest struct {
	Title     string
	Goal      string
	Priority  ticket.Priority
	Type      ticket.Type
	Effort    ticket.Effort
	Labels    []string
	Tags      []string
	DependsOn []string
}

// New allocates the next id and writes a fresh ready ticket with a
// templated body. It returns the created metadata.
func (e *Engine) New(req NewRequest) (ticket.Meta, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return ticket.Meta{}, errors.New("title must not be empty")
	}
	if err := e.Store.Ensure(); err != nil {
		return ticket.Meta{}, err
	}
	id, err := e.Store.NextID()
	if err != nil {
		return ticket.Meta{}, err
	}

	if req.Priority == "" {
		req.Priority = ticket.PriorityP1
	}
	if req.Type == "" {
		req.Type = ticket.TypeCode
	}
	today := e.today()
	m := ticket.Normalize(ticket.Meta{
		ID:        id,
		Title:     title,
		Status:    ticket.StatusReady,
		Priority:  req.Priority,
		Type:      req.Type,
		Effort:    req.Effort,
		Labels:    req.Labels,
		Tags:      req.Tags,
		DependsOn: req.DependsOn,
		Created:   today,
		Updated:   today,
	})

	goal := strings.TrimSpace(req.Goal)
	if goal == "" {
		goal = "Write a single-sentence goal."
	}
	body := fmt.Sprintf(`## Goal
%s

## Acceptance Criteria
- [ ] Define clear, testable checks (2-5 items)

## Notes
`, goal)

	if err := e.Store.Save(e.Store.Path(id), m, body); err != nil {
		return ticket.Meta{}, err
	}
	return m, nil
}

// Seed creates the example ticket an empty store starts with. It is a
// no-op when any ticket already exists.
func (e *Engine) Seed() (string, error) {
	if err := e.Store.Ensure(); err != nil {
		return "", err
	}
	entries, err := e.Store.LoadAll()
	if err != nil {
		return "", err
	}
	if len(entries) > 0 {
		return "", nil
	}

	today := e.today()
	m := ticket.Normalize(ticket.Meta{
		ID:       "T-000001",
		Title:    "Example: replace this ticket",
		Status:   ticket.StatusReady,
		Priority: ticket.PriorityP2,
		Type:     ticket.TypeChore,
		Effort:   ticket.EffortXS,
		Labels:   []string{"example"},
		Created:  today,
		Updated:  today,
	})
	body := `## Goal
Replace this example with a real task.

## Acceptance Criteria
- [ ] Delete or edit this ticket
- [ ] Create at least one real ticket with ` + "`mt new`" + `

## Notes
This repository uses ticket files for agent-friendly coordination.
`
	if err := e.Store.Save(e.Store.Path(m.ID), m, body); err != nil {
		return "", err
	}
	return m.ID, nil
}
