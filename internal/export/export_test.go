package export

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/muonworks/muontickets/internal/store"
	"github.com/muonworks/muontickets/internal/ticket"
)

func sampleEntries() []store.Entry {
	owner := "agent-1"
	a := ticket.Normalize(ticket.Meta{
		ID:       "T-000001",
		Title:    "First",
		Status:   ticket.StatusClaimed,
		Priority: ticket.PriorityP0,
		Type:     ticket.TypeCode,
		Owner:    &owner,
		Created:  "2026-08-01",
		Updated:  "2026-08-02",
		Labels:   []string{"backend", "db"},
	})
	b := ticket.Normalize(ticket.Meta{
		ID:        "T-000002",
		Title:     "Second",
		Status:    ticket.StatusReady,
		Priority:  ticket.PriorityP1,
		Type:      ticket.TypeDocs,
		Created:   "2026-08-03",
		Updated:   "2026-08-03",
		DependsOn: []string{"T-000001"},
	})
	return []store.Entry{
		{Path: "tickets/T-000001.md", Meta: a, Body: "## Goal\nShip it.\n"},
		{Path: "tickets/T-000002.md", Meta: b, Body: "## Goal\nWrite docs.\n"},
		{Path: "tickets/T-000003.md", Err: errors.New("missing frontmatter")},
	}
}

func TestRows_SkipsUnparseable(t *testing.T) {
	rows := Rows(sampleEntries())
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].ID != "T-000001" || rows[0].Owner == nil || *rows[0].Owner != "agent-1" {
		t.Errorf("first row: %+v", rows[0])
	}
	if rows[1].Branch != nil {
		t.Errorf("unset branch should export as null, got %v", rows[1].Branch)
	}
	if rows[0].Path != "T-000001.md" {
		t.Errorf("path = %q", rows[0].Path)
	}
}

func TestExcerpt_Truncates(t *testing.T) {
	long := strings.Repeat("line\n", 30)
	got := excerpt(long)
	if n := len(strings.Split(got, "\n")); n != excerptLines {
		t.Errorf("excerpt has %d lines, want %d", n, excerptLines)
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, Rows(sampleEntries())); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	var decoded []Row
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded) != 2 || decoded[1].DependsOn[0] != "T-000001" {
		t.Errorf("decoded: %+v", decoded)
	}
}

func TestWriteJSONL(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSONL(&buf, Rows(sampleEntries())); err != nil {
		t.Fatalf("WriteJSONL: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	for _, line := range lines {
		var r Row
		if err := json.Unmarshal([]byte(line), &r); err != nil {
			t.Errorf("line is not valid JSON: %v", err)
		}
	}
}

func TestWriteSQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "tickets.db")
	if err := WriteSQLite(dbPath, Rows(sampleEntries())); err != nil {
		t.Fatalf("WriteSQLite: %v", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("open exported db: %v", err)
	}
	defer db.Close()

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM tickets").Scan(&count); err != nil {
		t.Fatalf("count tickets: %v", err)
	}
	if count != 2 {
		t.Errorf("ticket rows = %d, want 2", count)
	}

	var owner sql.NullString
	if err := db.QueryRow("SELECT owner FROM tickets WHERE id = ?", "T-000001").Scan(&owner); err != nil {
		t.Fatalf("query owner: %v", err)
	}
	if !owner.Valid || owner.String != "agent-1" {
		t.Errorf("owner = %+v", owner)
	}

	var dep string
	if err := db.QueryRow("SELECT depends_on FROM ticket_deps WHERE ticket_id = ?", "T-000002").Scan(&dep); err != nil {
		t.Fatalf("query dep: %v", err)
	}
	if dep != "T-000001" {
		t.Errorf("dep = %q", dep)
	}

	db.Close()

	// Re-export replaces the tables instead of appending.
	if err := WriteSQLite(dbPath, Rows(sampleEntries())); err != nil {
		t.Fatalf("second WriteSQLite: %v", err)
	}
	again, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer again.Close()
	if err := again.QueryRow("SELECT COUNT(*) FROM tickets").Scan(&count); err != nil {
		t.Fatalf("recount: %v", err)
	}
	if count != 2 {
		t.Errorf("re-export should replace, got %d rows", count)
	}
}
