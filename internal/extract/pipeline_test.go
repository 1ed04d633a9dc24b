package extract

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/deckhq/deck/internal/agent"
	"github.com/deckhq/deck/internal/board"
)

// fakeRunner returns scripted responses in order, or a scripted error.
type fakeRunner struct {
	responses []string
	errs      []error
	requests  []agent.Request
}

func (f *fakeRunner) Send(ctx context.Context, req agent.Request) (*agent.Response, error) {
	i := len(f.requests)
	f.requests = append(f.requests, req)
	if i < len(f.errs) && f.errs[i] != nil {
		return nil, f.errs[i]
	}
	text := ""
	if i < len(f.responses) {
		text = f.responses[i]
	}
	return &agent.Response{Response: text, Timestamp: time.Now().Format(time.RFC3339)}, nil
}

func (f *fakeRunner) Name() string { return "fake" }
func (f *fakeRunner) Mode() string { return "http" }

func testDefaults() Defaults {
	return Defaults{
		Title:       "Manual fallback title",
		Priority:    board.PriorityMedium,
		Assignee:    board.RoleDev,
		StoryPoints: 3,
	}
}

func TestPipeline_TwoPassRun(t *testing.T) {
	runner := &fakeRunner{responses: []string{
		"Title: User Login\nDescription: Allow users to authenticate.",
		"Story 1:\nTitle: Email/password login\nDescription: Users can log in.\nStory Points: 5",
	}}
	p := New(runner)

	epic, tickets, err := p.Run(context.Background(), "We need user login with email and password", testDefaults())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if epic.Title != "User Login" {
		t.Errorf("epic title: got %q", epic.Title)
	}
	if epic.Description != "Allow users to authenticate." {
		t.Errorf("epic description: got %q", epic.Description)
	}
	if len(tickets) != 1 {
		t.Fatalf("expected 1 ticket, got %d", len(tickets))
	}

	tk := tickets[0]
	if tk.Title != "Email/password login" {
		t.Errorf("ticket title: got %q", tk.Title)
	}
	if tk.StoryPoints != 5 {
		t.Errorf("ticket points: got %d", tk.StoryPoints)
	}
	if tk.Status != board.StatusBacklog {
		t.Errorf("ticket status: got %s", tk.Status)
	}
	if tk.EpicID != epic.ID {
		t.Errorf("ticket epic id %q != epic id %q", tk.EpicID, epic.ID)
	}
	if tk.Assignee != board.RoleDev || tk.Priority != board.PriorityMedium {
		t.Errorf("defaults not applied: %+v", tk)
	}

	// The two passes go to the two authoring roles.
	if len(runner.requests) != 2 {
		t.Fatalf("expected 2 round trips, got %d", len(runner.requests))
	}
	if runner.requests[0].Role != board.RoleAnalyst {
		t.Errorf("epic pass role: got %s", runner.requests[0].Role)
	}
	if runner.requests[1].Role != board.RolePM {
		t.Errorf("story pass role: got %s", runner.requests[1].Role)
	}
}

func TestPipeline_FallbackStory(t *testing.T) {
	runner := &fakeRunner{responses: []string{
		"Title: Reporting\nDescription: Weekly usage reports.",
		"Sorry, I can't break this down right now.",
	}}
	p := New(runner)

	epic, tickets, err := p.Run(context.Background(), "reports please", testDefaults())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	// Zero parsed stories synthesizes exactly one fallback ticket from
	// the epic itself.
	if len(tickets) != 1 {
		t.Fatalf("expected 1 fallback ticket, got %d", len(tickets))
	}
	if tickets[0].Title != epic.Title || tickets[0].Description != epic.Description {
		t.Errorf("fallback ticket should mirror the epic: %+v", tickets[0])
	}
	if tickets[0].StoryPoints != 3 {
		t.Errorf("fallback points should use the form default, got %d", tickets[0].StoryPoints)
	}
}

func TestPipeline_EpicFieldFallbacks(t *testing.T) {
	runner := &fakeRunner{responses: []string{
		"No structured output here at all.",
		"Title: Something\nDescription: A story.\nStory Points: 2",
	}}
	p := New(runner)

	epic, _, err := p.Run(context.Background(), "vague request", testDefaults())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if epic.Title != "Manual fallback title" {
		t.Errorf("epic title should fall back to the manual-form title, got %q", epic.Title)
	}
	if epic.Description != fallbackDescription {
		t.Errorf("epic description should fall back to the generic literal, got %q", epic.Description)
	}
}

func TestPipeline_MultipleStories(t *testing.T) {
	runner := &fakeRunner{responses: []string{
		"Title: Checkout\nDescription: Buy things.",
		`Story 1:
Title: Cart page
Description: Review items before paying.
Story Points: 3

Story 2:
Title: Payment form
Description: Card entry with validation.
Story Points: 8

Story 3:
Title: Order confirmation
Description: Receipt by email.
Story Points: 2`,
	}}
	p := New(runner)

	epic, tickets, err := p.Run(context.Background(), "checkout flow", testDefaults())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(tickets) != 3 {
		t.Fatalf("expected 3 tickets, got %d", len(tickets))
	}

	// All ids pairwise distinct, all tickets referencing the epic.
	seen := map[string]bool{epic.ID: true}
	for _, tk := range tickets {
		if seen[tk.ID] {
			t.Fatalf("duplicate id %q", tk.ID)
		}
		seen[tk.ID] = true
		if tk.EpicID != epic.ID {
			t.Errorf("ticket %q has epic id %q", tk.ID, tk.EpicID)
		}
	}
}

func TestPipeline_EpicPassTransportFailure(t *testing.T) {
	runner := &fakeRunner{errs: []error{errors.New("connection refused")}}
	p := New(runner)

	_, tickets, err := p.Run(context.Background(), "anything", testDefaults())
	if err == nil {
		t.Fatal("expected error from failed epic pass")
	}
	if tickets != nil {
		t.Error("no tickets may be created on transport failure")
	}
	// The story pass must not run after the epic pass failed.
	if len(runner.requests) != 1 {
		t.Errorf("expected pipeline to abort after 1 request, got %d", len(runner.requests))
	}
}

func TestPipeline_StoryPassTransportFailure(t *testing.T) {
	runner := &fakeRunner{
		responses: []string{"Title: Fine\nDescription: Fine."},
		errs:      []error{nil, errors.New("status 502")},
	}
	p := New(runner)

	_, tickets, err := p.Run(context.Background(), "anything", testDefaults())
	if err == nil {
		t.Fatal("expected error from failed story pass")
	}
	if tickets != nil {
		t.Error("partial materialization must not be observable")
	}
}

func TestManualTicket(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	epic, ticket, err := ManualTicket("Fix header overlap", testDefaults(), now)
	if err != nil {
		t.Fatalf("ManualTicket: %v", err)
	}

	if epic.Title != "Fix header overlap" {
		t.Errorf("epic title: got %q", epic.Title)
	}
	if ticket.Description != "Fix header overlap" {
		t.Error("ticket description should default to the title")
	}
	if ticket.EpicID != epic.ID {
		t.Error("ticket should reference its auto-generated epic")
	}
	if ticket.ID == epic.ID {
		t.Error("ticket and epic ids must differ")
	}
	if ticket.Status != board.StatusBacklog {
		t.Errorf("status: got %s", ticket.Status)
	}
}

func TestManualTicket_EmptyTitleRejected(t *testing.T) {
	if _, _, err := ManualTicket("   ", testDefaults(), time.Now()); err == nil {
		t.Fatal("empty title must be rejected")
	}
}

func TestManualTicket_OffScalePointsRejected(t *testing.T) {
	d := testDefaults()
	d.StoryPoints = 4
	if _, _, err := ManualTicket("Valid title", d, time.Now()); err == nil {
		t.Fatal("off-scale structured points must be rejected")
	}
}
