// Package export renders the board snapshot into machine-readable
// formats: JSON, JSONL, and a queryable SQLite file. Exports are derived
// read-only artifacts; the ticket files stay the source of truth.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/muonworks/muontickets/internal/store"
	"github.com/muonworks/muontickets/internal/ticket"
)

const excerptLines = 20

// Row is one exported ticket.
type Row struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Status    string   `json:"status"`
	Priority  string   `json:"priority"`
	Type      string   `json:"type"`
	Effort    string   `json:"effort"`
	Labels    []string `json:"labels"`
	Tags      []string `json:"tags"`
	Owner     *string  `json:"owner"`
	Created   string   `json:"created"`
	Updated   string   `json:"updated"`
	DependsOn []string `json:"depends_on"`
	Branch    *string  `json:"branch"`
	Score     *float64 `json:"score,omitempty"`
	Excerpt   string   `json:"excerpt"`
	Path      string   `json:"path"`
}

// Rows converts the parseable entries of a snapshot into export rows.
// Unparseable tickets are skipped.
func Rows(entries []store.Entry) []Row {
	rows := make([]Row, 0, len(entries))
	for _, e := range entries {
		if e.Err != nil {
			continue
		}
		m := ticket.Normalize(e.Meta)
		rows = append(rows, Row{
			ID:        m.ID,
			Title:     m.Title,
			Status:    string(m.Status),
			Priority:  string(m.Priority),
			Type:      string(m.Type),
			Effort:    string(m.Effort),
			Labels:    m.Labels,
			Tags:      m.Tags,
			Owner:     m.Owner,
			Created:   m.Created,
			Updated:   m.Updated,
			DependsOn: m.DependsOn,
			Branch:    m.Branch,
			Score:     m.Score,
			Excerpt:   excerpt(e.Body),
			Path:      filepath.Base(e.Path),
		})
	}
	return rows
}

// excerpt keeps the first lines of the body so exports stay small.
func excerpt(body string) string {
	lines := strings.Split(strings.TrimSpace(body), "\n")
	if len(lines) > excerptLines {
		lines = lines[:excerptLines]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// WriteJSON writes the rows as one indented JSON array.
func WriteJSON(w io.Writer, rows []Row) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rows); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

// WriteJSONL writes one JSON object per line.
func WriteJSONL(w io.Writer, rows []Row) error {
	enc := json.NewEncoder(w)
	for _, r := range rows {
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encode jsonl: %w", err)
		}
	}
	return nil
}
