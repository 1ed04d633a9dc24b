package extract

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/deckhq/deck/internal/agent"
	"github.com/deckhq/deck/internal/board"
)

// fallbackDescription is substituted when the epic-summary response has
// no parsable description.
const fallbackDescription = "Epic extracted from conversation."

// Defaults are the staged manual-ticket-form values, used only as
// fallback values by the pipeline.
type Defaults struct {
	Title       string // manual-form title, epic title fallback
	Priority    board.Priority
	Assignee    board.Role
	StoryPoints int
}

// Pipeline turns the accumulated conversation into one epic and its
// tickets via two agent round trips: an epic-summary pass and a
// story-breakdown pass.
type Pipeline struct {
	runner agent.Runner
}

// New creates a pipeline on top of an agent runner.
func New(runner agent.Runner) *Pipeline {
	return &Pipeline{runner: runner}
}

// Run executes both passes and materializes the results.
//
// A transport failure during either pass aborts the whole run: nothing is
// created and the error is returned to the caller. Malformed agent output
// is not a failure: missing epic fields are substituted from the
// defaults, and a story pass with zero parsed blocks synthesizes exactly
// one fallback story from the epic itself, so a successful run always
// yields one epic and at least one ticket.
func (p *Pipeline) Run(ctx context.Context, summary string, d Defaults) (board.Epic, []board.Ticket, error) {
	// Pass 1: epic summary.
	epicResp, err := p.runner.Send(ctx, agent.Request{
		Role:    board.RoleAnalyst,
		Message: BuildEpicPrompt(summary),
	})
	if err != nil {
		return board.Epic{}, nil, fmt.Errorf("epic summary pass: %w", err)
	}

	parsed := ParseEpicSummary(epicResp.Response)
	if parsed.Title == "" {
		parsed.Title = d.Title
	}
	if parsed.Title == "" {
		parsed.Title = "Untitled epic"
	}
	if parsed.Description == "" {
		parsed.Description = fallbackDescription
	}

	// Pass 2: story breakdown.
	storyResp, err := p.runner.Send(ctx, agent.Request{
		Role:    board.RolePM,
		Message: BuildStoryPrompt(summary),
	})
	if err != nil {
		return board.Epic{}, nil, fmt.Errorf("story breakdown pass: %w", err)
	}

	stories := ParseStories(storyResp.Response)
	if len(stories) == 0 {
		stories = []ParsedStory{{
			Title:       parsed.Title,
			Description: parsed.Description,
			Points:      d.StoryPoints,
		}}
	}

	// Materialize atomically: one id batch for the epic and every ticket.
	batch := board.NewBatch(time.Now())
	epic := board.Epic{
		ID:          batch.EpicID(),
		Title:       parsed.Title,
		Description: parsed.Description,
		CreatedAt:   batch.Instant(),
	}

	tickets := make([]board.Ticket, 0, len(stories))
	for _, s := range stories {
		tickets = append(tickets, board.Ticket{
			ID:          batch.TicketID(),
			EpicID:      epic.ID,
			Title:       s.Title,
			Description: s.Description,
			Status:      board.StatusBacklog,
			Assignee:    d.Assignee,
			Priority:    d.Priority,
			StoryPoints: s.Points,
			CreatedAt:   batch.Instant(),
		})
	}

	return epic, tickets, nil
}

// ManualTicket is the extraction bypass: a single-field form producing
// exactly one epic/ticket pair synchronously. The ticket's description
// defaults to the title. An empty title is rejected at the boundary and
// nothing is created.
func ManualTicket(title string, d Defaults, now time.Time) (board.Epic, board.Ticket, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return board.Epic{}, board.Ticket{}, fmt.Errorf("ticket title must not be empty")
	}
	if d.StoryPoints != 0 && !board.ValidStoryPoints(d.StoryPoints) {
		return board.Epic{}, board.Ticket{}, fmt.Errorf("story points %d not on the scale", d.StoryPoints)
	}

	batch := board.NewBatch(now)
	epic := board.Epic{
		ID:          batch.EpicID(),
		Title:       title,
		Description: title,
		CreatedAt:   batch.Instant(),
	}
	ticket := board.Ticket{
		ID:          batch.TicketID(),
		EpicID:      epic.ID,
		Title:       title,
		Description: title,
		Status:      board.StatusBacklog,
		Assignee:    d.Assignee,
		Priority:    d.Priority,
		StoryPoints: d.StoryPoints,
		CreatedAt:   batch.Instant(),
	}
	return epic, ticket, nil
}
