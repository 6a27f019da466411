package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/muonworks/muontickets/internal/config"
	"github.com/muonworks/muontickets/internal/engine"
	"github.com/muonworks/muontickets/internal/schema"
	"github.com/muonworks/muontickets/internal/store"
	"github.com/muonworks/muontickets/internal/ticket"
)

// ExitError carries a process exit code through cobra. Code 2 is a
// precondition refusal, 3 a no-candidate pick, 1 a validation failure.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

// repoRoot finds the repository root by walking upward from the current
// directory until a tickets/ directory appears.
func repoRoot() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	return store.FindRoot(wd), nil
}

// loadSchema returns the schema override from .mt/schema.yaml when
// present, the built-in default otherwise.
func loadSchema(root string) (schema.Schema, error) {
	path := filepath.Join(root, config.Dir, "schema.yaml")
	if _, err := os.Stat(path); err == nil {
		return schema.Load(path)
	}
	return schema.Default(), nil
}

// openEngine builds the engine and config for the enclosing repository.
func openEngine() (*engine.Engine, *config.Config, error) {
	root, err := repoRoot()
	if err != nil {
		return nil, nil, err
	}
	cfg, err := config.Load(root)
	if err != nil {
		return nil, nil, err
	}
	sch, err := loadSchema(root)
	if err != nil {
		return nil, nil, err
	}
	e := &engine.Engine{
		Store:  store.New(filepath.Join(root, "tickets")),
		Schema: sch,
	}
	return e, cfg, nil
}

// checkEnumFlags validates optional priority/type/status flag values.
// Empty strings mean the flag was not given.
func checkEnumFlags(priority, typ, status string) error {
	if priority != "" && !containsPriority(ticket.Priority(priority)) {
		return fmt.Errorf("unknown priority %q", priority)
	}
	if typ != "" && !containsType(ticket.Type(typ)) {
		return fmt.Errorf("unknown type %q", typ)
	}
	if status != "" && !ticket.KnownStatus(ticket.Status(status)) {
		return fmt.Errorf("unknown status %q", status)
	}
	return nil
}

func containsPriority(p ticket.Priority) bool {
	for _, known := range ticket.Priorities {
		if p == known {
			return true
		}
	}
	return false
}

func containsType(t ticket.Type) bool {
	for _, known := range ticket.Types {
		if t == known {
			return true
		}
	}
	return false
}

func containsEffort(e ticket.Effort) bool {
	for _, known := range ticket.Efforts {
		if e == known {
			return true
		}
	}
	return false
}

// finish prints an OK result and converts refusals and empty picks into
// their exit codes.
func finish(res engine.Result) error {
	switch res.Outcome {
	case engine.Refused:
		return &ExitError{Code: 2, Message: res.Message}
	case engine.NoCandidate:
		return &ExitError{Code: 3, Message: res.Message}
	}
	fmt.Println(res.Message)
	return nil
}
