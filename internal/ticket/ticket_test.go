package ticket

import (
	"reflect"
	"strings"
	"testing"
)

func TestNormalize_Defaults(t *testing.T) {
	m := Normalize(Meta{ID: "T-000001", Title: "Thing"})

	if m.Labels == nil || len(m.Labels) != 0 {
		t.Errorf("expected empty labels, got %v", m.Labels)
	}
	if m.Tags == nil || len(m.Tags) != 0 {
		t.Errorf("expected empty tags, got %v", m.Tags)
	}
	if m.DependsOn == nil || len(m.DependsOn) != 0 {
		t.Errorf("expected empty depends_on, got %v", m.DependsOn)
	}
	if m.Effort != EffortS {
		t.Errorf("expected default effort s, got %q", m.Effort)
	}
	if m.Owner != nil {
		t.Errorf("expected nil owner, got %v", m.Owner)
	}
	if m.Branch != nil {
		t.Errorf("expected nil branch, got %v", m.Branch)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	owner := "agent-1"
	in := Meta{
		ID:        "T-000002",
		Title:     "Keep",
		Status:    StatusClaimed,
		Effort:    EffortL,
		Labels:    []string{"wasm"},
		Owner:     &owner,
		DependsOn: []string{"T-000001"},
	}

	once := Normalize(in)
	twice := Normalize(once)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("normalize not idempotent:\nonce:  %+v\ntwice: %+v", once, twice)
	}
}

func TestNormalize_KeepsExistingEffort(t *testing.T) {
	m := Normalize(Meta{Effort: EffortXS})
	if m.Effort != EffortXS {
		t.Errorf("expected xs preserved, got %q", m.Effort)
	}
}

func TestIDPattern(t *testing.T) {
	valid := []string{"T-000001", "T-999999"}
	invalid := []string{"T-1", "T-0000001", "t-000001", "X-000001", "T-00001a", ""}

	for _, id := range valid {
		if !IDPattern.MatchString(id) {
			t.Errorf("expected %q to match", id)
		}
	}
	for _, id := range invalid {
		if IDPattern.MatchString(id) {
			t.Errorf("expected %q not to match", id)
		}
	}
}

func TestDefaultBranch(t *testing.T) {
	tests := []struct {
		name  string
		title string
		id    string
		want  string
	}{
		{"simple", "Fix the parser", "T-000042", "bug/t-000042-fix-the-parser"},
		{"punctuation collapses", "Add: WASM!! support", "T-000007", "bug/t-000007-add-wasm-support"},
		{"empty title falls back", "", "T-000001", "bug/t-000001-task"},
		{"symbols only falls back", "!!!", "T-000001", "bug/t-000001-task"},
		{
			"long title truncated",
			strings.Repeat("abcde ", 20),
			"T-000003",
			"bug/t-000003-" + strings.Repeat("abcde-", 7)[:40],
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DefaultBranch(Meta{ID: tt.id, Title: tt.title})
			if got != tt.want {
				t.Errorf("DefaultBranch(%q, %q) = %q, want %q", tt.title, tt.id, got, tt.want)
			}
		})
	}
}

func TestDefaultBranch_Deterministic(t *testing.T) {
	m := Meta{ID: "T-000010", Title: "Same title every time"}
	first := DefaultBranch(m)
	for i := 0; i < 5; i++ {
		if got := DefaultBranch(m); got != first {
			t.Fatalf("branch derivation not deterministic: %q vs %q", got, first)
		}
	}
}

func TestHasLabels(t *testing.T) {
	m := Meta{Labels: []string{"wasm", "backend"}}

	if !m.HasLabels(nil) {
		t.Error("empty requirement should match")
	}
	if !m.HasLabels([]string{"wasm"}) {
		t.Error("expected wasm to match")
	}
	if m.HasLabels([]string{"wasm", "frontend"}) {
		t.Error("missing label should not match")
	}
	if !m.HasAnyLabel([]string{"frontend", "backend"}) {
		t.Error("expected backend to be found")
	}
	if m.HasAnyLabel([]string{"frontend"}) {
		t.Error("frontend should not be found")
	}
}

func TestAppendProgressLog(t *testing.T) {
	body := "## Goal\nDo the thing.\n"

	got := AppendProgressLog(body, "2026-08-28", "started work")
	if !strings.Contains(got, "## Progress Log") {
		t.Fatalf("missing progress log section:\n%s", got)
	}
	if !strings.Contains(got, "- 2026-08-28: started work") {
		t.Fatalf("missing entry:\n%s", got)
	}

	// Second append reuses the existing section.
	got = AppendProgressLog(got, "2026-08-29", "more work")
	if strings.Count(got, "## Progress Log") != 1 {
		t.Errorf("progress log section duplicated:\n%s", got)
	}
	if !strings.HasSuffix(got, "- 2026-08-29: more work\n") {
		t.Errorf("entry not appended at end:\n%s", got)
	}
}
