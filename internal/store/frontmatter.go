package store

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/muonworks/muontickets/internal/ticket"
)

var (
	// ErrMissingFrontmatter indicates the document did not start with a YAML fence.
	ErrMissingFrontmatter = errors.New("missing frontmatter: expected first line to be '---'")
	// ErrUnterminatedFrontmatter indicates the closing fence was not found.
	ErrUnterminatedFrontmatter = errors.New("unterminated frontmatter: missing closing '---'")
)

const fence = "---"

// SplitFrontmatter parses a ticket document into its typed metadata and
// markdown body. The document must start with a `---` fence followed by a
// YAML mapping and a closing fence.
func SplitFrontmatter(content []byte) (ticket.Meta, string, error) {
	normalized := bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))
	if !bytes.HasPrefix(normalized, []byte(fence+"\n")) {
		return ticket.Meta{}, "", ErrMissingFrontmatter
	}
	rest := normalized[len(fence)+1:]
	parts := bytes.SplitN(rest, []byte("\n"+fence+"\n"), 2)
	if len(parts) < 2 {
		// Closing fence at end of file without a trailing newline.
		if bytes.HasSuffix(rest, []byte("\n"+fence)) {
			parts = [][]byte{rest[:len(rest)-len(fence)-1], nil}
		} else {
			return ticket.Meta{}, "", ErrUnterminatedFrontmatter
		}
	}

	var meta ticket.Meta
	if err := yaml.Unmarshal(parts[0], &meta); err != nil {
		return ticket.Meta{}, "", fmt.Errorf("parse frontmatter: %w", err)
	}
	body := strings.TrimLeft(string(parts[1]), "\n")
	return meta, body, nil
}

// JoinFrontmatter renders metadata and body back into a ticket document.
func JoinFrontmatter(meta ticket.Meta, body string) ([]byte, error) {
	data, err := yaml.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("encode frontmatter: %w", err)
	}
	var buf bytes.Buffer
	buf.WriteString(fence + "\n")
	buf.Write(bytes.TrimRight(data, "\n"))
	buf.WriteString("\n" + fence + "\n\n")
	buf.WriteString(strings.TrimRight(body, "\n"))
	buf.WriteString("\n")
	return buf.Bytes(), nil
}
