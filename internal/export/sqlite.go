package export

import (
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

// WriteSQLite writes the rows into a SQLite database at dbPath, replacing
// any previous tickets table. Dependencies go into a separate edge table
// so the graph is queryable with plain SQL.
func WriteSQLite(dbPath string, rows []Row) error {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	schema := `
	DROP TABLE IF EXISTS tickets;
	DROP TABLE IF EXISTS ticket_deps;

	CREATE TABLE tickets (
		id         TEXT PRIMARY KEY,
		title      TEXT NOT NULL,
		status     TEXT NOT NULL,
		priority   TEXT NOT NULL,
		type       TEXT NOT NULL,
		effort     TEXT NOT NULL,
		labels     TEXT DEFAULT '',
		tags       TEXT DEFAULT '',
		owner      TEXT,
		created    TEXT NOT NULL,
		updated    TEXT NOT NULL,
		branch     TEXT,
		score      REAL,
		excerpt    TEXT DEFAULT '',
		path       TEXT NOT NULL
	);

	CREATE TABLE ticket_deps (
		ticket_id  TEXT NOT NULL REFERENCES tickets(id),
		depends_on TEXT NOT NULL
	);
	`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	insert, err := tx.Prepare(`INSERT INTO tickets
		(id, title, status, priority, type, effort, labels, tags, owner,
		 created, updated, branch, score, excerpt, path)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer insert.Close()

	insertDep, err := tx.Prepare(`INSERT INTO ticket_deps (ticket_id, depends_on) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare dep insert: %w", err)
	}
	defer insertDep.Close()

	for _, r := range rows {
		_, err := insert.Exec(
			r.ID, r.Title, r.Status, r.Priority, r.Type, r.Effort,
			strings.Join(r.Labels, ","), strings.Join(r.Tags, ","),
			r.Owner, r.Created, r.Updated, r.Branch, r.Score, r.Excerpt, r.Path,
		)
		if err != nil {
			return fmt.Errorf("insert ticket %s: %w", r.ID, err)
		}
		for _, dep := range r.DependsOn {
			if _, err := insertDep.Exec(r.ID, dep); err != nil {
				return fmt.Errorf("insert dep %s -> %s: %w", r.ID, dep, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
