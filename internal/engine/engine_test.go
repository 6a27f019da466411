package engine

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/muonworks/muontickets/internal/schema"
	"github.com/muonworks/muontickets/internal/store"
	"github.com/muonworks/muontickets/internal/ticket"
)

var testDay = time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

// testEngine builds an engine over a temp store with a fixed clock.
func testEngine(t *testing.T) *Engine {
	t.Helper()
	s := store.New(filepath.Join(t.TempDir(), "tickets"))
	if err := s.Ensure(); err != nil {
		t.Fatalf("ensure tickets dir: %v", err)
	}
	return &Engine{
		Store:  s,
		Schema: schema.Default(),
		Now:    func() time.Time { return testDay },
	}
}

// put writes a ticket directly into the engine's store.
func put(t *testing.T, e *Engine, m ticket.Meta) {
	t.Helper()
	m = ticket.Normalize(m)
	if err := e.Store.Save(e.Store.Path(m.ID), m, "## Goal\nbody\n"); err != nil {
		t.Fatalf("save %s: %v", m.ID, err)
	}
}

func readyTicket(id string) ticket.Meta {
	return ticket.Meta{
		ID:       id,
		Title:    "Ticket " + id,
		Status:   ticket.StatusReady,
		Priority: ticket.PriorityP1,
		Type:     ticket.TypeCode,
		Created:  "2026-08-28",
		Updated:  "2026-08-28",
	}
}

func reload(t *testing.T, e *Engine, id string) ticket.Meta {
	t.Helper()
	entry, err := e.Store.LoadOne(id)
	if err != nil {
		t.Fatalf("reload %s: %v", id, err)
	}
	return ticket.Normalize(entry.Meta)
}

func TestClaim_Success(t *testing.T) {
	e := testEngine(t)
	m := readyTicket("T-000001")
	m.Title = "Fix the widget parser"
	put(t, e, m)

	res, err := e.Claim("T-000001", "agent-1", "", false, false)
	if err != nil {
		t.Fatalf("Claim: %v", err)
	}
	if res.Outcome != OK {
		t.Fatalf("outcome = %v, message %q", res.Outcome, res.Message)
	}

	got := reload(t, e, "T-000001")
	if got.Status != ticket.StatusClaimed {
		t.Errorf("status = %s", got.Status)
	}
	if got.Owner == nil || *got.Owner != "agent-1" {
		t.Errorf("owner = %v", got.Owner)
	}
	if got.Branch == nil || *got.Branch != "bug/t-000001-fix-the-widget-parser" {
		t.Errorf("branch = %v", got.Branch)
	}
	if got.Updated != "2026-08-28" {
		t.Errorf("updated = %s", got.Updated)
	}
}

func TestClaim_ExplicitBranch(t *testing.T) {
	e := testEngine(t)
	put(t, e, readyTicket("T-000001"))

	res, err := e.Claim("T-000001", "agent-1", "feature/custom", false, false)
	if err != nil || res.Outcome != OK {
		t.Fatalf("Claim: %v / %+v", err, res)
	}
	if got := reload(t, e, "T-000001"); got.Branch == nil || *got.Branch != "feature/custom" {
		t.Errorf("branch = %v", got.Branch)
	}
}

func TestClaim_RefusesNonReady(t *testing.T) {
	e := testEngine(t)
	m := readyTicket("T-000001")
	m.Status = ticket.StatusBlocked
	put(t, e, m)

	res, err := e.Claim("T-000001", "agent-1", "", false, false)
	if err != nil {
		t.Fatalf("Claim: %v", err)
	}
	if res.Outcome != Refused || !strings.Contains(res.Message, "--force") {
		t.Errorf("expected refusal naming --force, got %+v", res)
	}

	// Force overrides the status gate.
	res, err = e.Claim("T-000001", "agent-1", "", false, true)
	if err != nil || res.Outcome != OK {
		t.Fatalf("forced claim: %v / %+v", err, res)
	}
}

// Scenario: a ticket depending on a not-yet-done ticket refuses to claim
// unless deps are explicitly ignored.
func TestClaim_DependencyGate(t *testing.T) {
	e := testEngine(t)
	put(t, e, readyTicket("T-000001"))
	m := readyTicket("T-000002")
	m.DependsOn = []string{"T-000001"}
	put(t, e, m)

	res, err := e.Claim("T-000002", "agent-x", "", false, false)
	if err != nil {
		t.Fatalf("Claim: %v", err)
	}
	if res.Outcome != Refused {
		t.Fatalf("expected refusal, got %+v", res)
	}
	if !strings.Contains(res.Message, "T-000001") || !strings.Contains(res.Message, "--ignore-deps") {
		t.Errorf("message should name the unmet dep and the override: %q", res.Message)
	}

	res, err = e.Claim("T-000002", "agent-x", "", true, false)
	if err != nil || res.Outcome != OK {
		t.Fatalf("ignore-deps claim: %v / %+v", err, res)
	}
	got := reload(t, e, "T-000002")
	if got.Status != ticket.StatusClaimed || got.Owner == nil || *got.Owner != "agent-x" {
		t.Errorf("after ignore-deps claim: %+v", got)
	}
}

func TestClaim_NotFound(t *testing.T) {
	e := testEngine(t)
	if _, err := e.Claim("T-000042", "agent-1", "", false, false); err == nil {
		t.Error("expected not-found error")
	}
}

func TestComment_AppendsProgressLog(t *testing.T) {
	e := testEngine(t)
	m := readyTicket("T-000001")
	m.Updated = "2026-08-01"
	put(t, e, m)

	res, err := e.Comment("T-000001", "  started investigating  ")
	if err != nil || res.Outcome != OK {
		t.Fatalf("Comment: %v / %+v", err, res)
	}

	entry, err := e.Store.LoadOne("T-000001")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(entry.Body, "## Progress Log") {
		t.Errorf("missing log section:\n%s", entry.Body)
	}
	if !strings.Contains(entry.Body, "- 2026-08-28: started investigating") {
		t.Errorf("missing dated entry:\n%s", entry.Body)
	}
	if got := ticket.Normalize(entry.Meta); got.Updated != "2026-08-28" {
		t.Errorf("updated = %s", got.Updated)
	}
	if got := ticket.Normalize(entry.Meta); got.Status != ticket.StatusReady {
		t.Errorf("comment must not change status, got %s", got.Status)
	}
}

func TestSetStatus_NoOpWhenEqual(t *testing.T) {
	e := testEngine(t)
	put(t, e, readyTicket("T-000001"))

	res, err := e.SetStatus("T-000001", ticket.StatusReady, false, false)
	if err != nil || res.Outcome != OK {
		t.Fatalf("SetStatus: %v / %+v", err, res)
	}
	if !strings.Contains(res.Message, "already") {
		t.Errorf("message = %q", res.Message)
	}
}

func TestSetStatus_IllegalTransition(t *testing.T) {
	e := testEngine(t)
	put(t, e, readyTicket("T-000001"))

	res, err := e.SetStatus("T-000001", ticket.StatusDone, false, false)
	if err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	if res.Outcome != Refused || !strings.Contains(res.Message, `"ready" -> "done"`) {
		t.Errorf("expected refusal naming the pair, got %+v", res)
	}

	// Force bypasses the table.
	res, err = e.SetStatus("T-000001", ticket.StatusDone, true, false)
	if err != nil || res.Outcome != OK {
		t.Fatalf("forced: %v / %+v", err, res)
	}
	if got := reload(t, e, "T-000001"); got.Status != ticket.StatusDone {
		t.Errorf("status = %s", got.Status)
	}
}

func TestSetStatus_ClearOwnerOnReady(t *testing.T) {
	e := testEngine(t)
	m := readyTicket("T-000001")
	m.Status = ticket.StatusClaimed
	owner, branch := "agent-1", "bug/t-000001-x"
	m.Owner = &owner
	m.Branch = &branch
	put(t, e, m)

	res, err := e.SetStatus("T-000001", ticket.StatusReady, false, true)
	if err != nil || res.Outcome != OK {
		t.Fatalf("SetStatus: %v / %+v", err, res)
	}
	got := reload(t, e, "T-000001")
	if got.Owner != nil || got.Branch != nil {
		t.Errorf("owner/branch not cleared: %v / %v", got.Owner, got.Branch)
	}
}

func TestSetStatus_UnknownStatusIsError(t *testing.T) {
	e := testEngine(t)
	put(t, e, readyTicket("T-000001"))
	if _, err := e.SetStatus("T-000001", "archived", false, false); err == nil {
		t.Error("expected error for unknown status")
	}
}

// Scenario: done on a ready ticket refuses without force; with force it
// completes unconditionally.
func TestDone_RequiresNeedsReview(t *testing.T) {
	e := testEngine(t)
	put(t, e, readyTicket("T-000001"))

	res, err := e.Done("T-000001", false)
	if err != nil {
		t.Fatalf("Done: %v", err)
	}
	if res.Outcome != Refused || !strings.Contains(res.Message, "needs_review") {
		t.Errorf("expected refusal, got %+v", res)
	}

	res, err = e.Done("T-000001", true)
	if err != nil || res.Outcome != OK {
		t.Fatalf("forced done: %v / %+v", err, res)
	}
	if got := reload(t, e, "T-000001"); got.Status != ticket.StatusDone {
		t.Errorf("status = %s", got.Status)
	}
}

func TestDone_FromNeedsReview(t *testing.T) {
	e := testEngine(t)
	m := readyTicket("T-000001")
	m.Status = ticket.StatusNeedsReview
	put(t, e, m)

	res, err := e.Done("T-000001", false)
	if err != nil || res.Outcome != OK {
		t.Fatalf("Done: %v / %+v", err, res)
	}
}

func TestNew_CreatesReadyTicket(t *testing.T) {
	e := testEngine(t)

	m, err := e.New(NewRequest{Title: "  Build the exporter  ", Labels: []string{"infra"}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if m.ID != "T-000001" {
		t.Errorf("id = %s", m.ID)
	}
	if m.Title != "Build the exporter" {
		t.Errorf("title not trimmed: %q", m.Title)
	}
	if m.Status != ticket.StatusReady || m.Priority != ticket.PriorityP1 || m.Type != ticket.TypeCode || m.Effort != ticket.EffortS {
		t.Errorf("defaults wrong: %+v", m)
	}
	if m.Created != "2026-08-28" || m.Updated != "2026-08-28" {
		t.Errorf("dates: %s / %s", m.Created, m.Updated)
	}

	entry, err := e.Store.LoadOne("T-000001")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(entry.Body, "## Goal") || !strings.Contains(entry.Body, "## Acceptance Criteria") {
		t.Errorf("body template:\n%s", entry.Body)
	}

	// Ids are monotonic.
	m2, err := e.New(NewRequest{Title: "Second"})
	if err != nil {
		t.Fatal(err)
	}
	if m2.ID != "T-000002" {
		t.Errorf("second id = %s", m2.ID)
	}
}

func TestNew_EmptyTitle(t *testing.T) {
	e := testEngine(t)
	if _, err := e.New(NewRequest{Title: "   "}); err == nil {
		t.Error("expected error for empty title")
	}
}

func TestSeed_OnlyWhenEmpty(t *testing.T) {
	e := testEngine(t)

	id, err := e.Seed()
	if err != nil {
		t.Fatalf("Seed: %v", err)
	}
	if id != "T-000001" {
		t.Errorf("seed id = %q", id)
	}
	got := reload(t, e, "T-000001")
	if got.Priority != ticket.PriorityP2 || got.Type != ticket.TypeChore {
		t.Errorf("seed meta: %+v", got)
	}

	// Second call is a no-op.
	id, err = e.Seed()
	if err != nil {
		t.Fatalf("second Seed: %v", err)
	}
	if id != "" {
		t.Errorf("second seed created %q", id)
	}
}
