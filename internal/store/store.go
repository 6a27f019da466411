// Package store is the gateway to the file-based ticket store: a tickets/
// directory holding one T-NNNNNN.md document per ticket, YAML frontmatter
// plus markdown body. Every read takes a full snapshot and every write
// replaces one whole document; conflict detection across concurrent
// invocations is left to the version-control substrate underneath.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/muonworks/muontickets/internal/ticket"
)

var (
	// ErrNotFound indicates no ticket file exists for the requested id.
	ErrNotFound = errors.New("ticket not found")
	// ErrInvalidID indicates a malformed ticket id.
	ErrInvalidID = errors.New("invalid ticket id")
)

var ticketFilePattern = regexp.MustCompile(`^(T-\d{6})\.md$`)

// Entry is one ticket as loaded from disk. When the document could not be
// parsed, Err is set and Meta/Body are zero; a malformed ticket never
// aborts a snapshot load.
type Entry struct {
	Path string
	Meta ticket.Meta
	Body string
	Err  error
}

// Store reads and writes tickets under a single directory.
type Store struct {
	dir string
}

// New returns a store over the given tickets directory.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the tickets directory path.
func (s *Store) Dir() string {
	return s.dir
}

// Ensure creates the tickets directory if it does not exist.
func (s *Store) Ensure() error {
	return os.MkdirAll(s.dir, 0755)
}

// Path returns the file path a ticket id maps to.
func (s *Store) Path(id string) string {
	return filepath.Join(s.dir, id+".md")
}

// files lists the ticket file paths in the directory, sorted by name (and
// therefore by id, since ids are zero-padded).
func (s *Store) files() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read tickets dir: %w", err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || !ticketFilePattern.MatchString(e.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(s.dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// LoadAll reads a snapshot of every ticket in the store. Unparseable
// documents surface as entries with Err set; only a directory-level
// failure returns an error.
func (s *Store) LoadAll() ([]Entry, error) {
	paths, err := s.files()
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(paths))
	for _, p := range paths {
		entries = append(entries, s.read(p))
	}
	return entries, nil
}

// LoadOne reads a single ticket by id. The id must match the ticket id
// format; a missing file reports ErrNotFound.
func (s *Store) LoadOne(id string) (Entry, error) {
	if !ticket.IDPattern.MatchString(id) {
		return Entry{}, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	path := s.Path(id)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return Entry{}, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return Entry{}, fmt.Errorf("stat %s: %w", path, err)
	}
	e := s.read(path)
	if e.Err != nil {
		return Entry{}, fmt.Errorf("%s: %w", filepath.Base(path), e.Err)
	}
	return e, nil
}

func (s *Store) read(path string) Entry {
	content, err := os.ReadFile(path)
	if err != nil {
		return Entry{Path: path, Err: fmt.Errorf("read ticket: %w", err)}
	}
	meta, body, err := SplitFrontmatter(content)
	if err != nil {
		return Entry{Path: path, Err: err}
	}
	return Entry{Path: path, Meta: meta, Body: body}
}

// Save writes a ticket document as a whole-file replace. The write goes
// through a temp file and rename so a crash never leaves a half-written
// ticket behind.
func (s *Store) Save(path string, meta ticket.Meta, body string) error {
	content, err := JoinFrontmatter(meta, body)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".mt-tmp-*.md")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		tmp.Close()
		os.Remove(tmpName)
	}()

	if _, err := tmp.Write(content); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// NextID returns the id one past the highest numeric suffix in use,
// formatted with six-digit zero padding.
func (s *Store) NextID() (string, error) {
	paths, err := s.files()
	if err != nil {
		return "", err
	}
	max := 0
	for _, p := range paths {
		m := ticketFilePattern.FindStringSubmatch(filepath.Base(p))
		if m == nil {
			continue
		}
		var n int
		fmt.Sscanf(m[1], "T-%06d", &n)
		if n > max {
			max = n
		}
	}
	return fmt.Sprintf("T-%06d", max+1), nil
}

// FindRoot walks upward from start looking for a directory containing
// tickets/. When none is found it falls back to start itself.
func FindRoot(start string) string {
	dir, err := filepath.Abs(start)
	if err != nil {
		return start
	}
	cur := dir
	for {
		if info, err := os.Stat(filepath.Join(cur, "tickets")); err == nil && info.IsDir() {
			return cur
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return dir
		}
		cur = parent
	}
}
