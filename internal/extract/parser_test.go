package extract

import (
	"testing"
)

func TestParseEpicSummary_Standard(t *testing.T) {
	output := `Title: User Login
Description: Allow users to authenticate.`

	e := ParseEpicSummary(output)
	if e.Title != "User Login" {
		t.Errorf("title: got %q", e.Title)
	}
	if e.Description != "Allow users to authenticate." {
		t.Errorf("description: got %q", e.Description)
	}
}

func TestParseEpicSummary_WithPreamble(t *testing.T) {
	output := `Sure, here's a summary of what you asked for.

Title: Payment Integration
Description: Accept card payments through a hosted
checkout flow with receipts.

Let me know if you want changes.`

	e := ParseEpicSummary(output)
	if e.Title != "Payment Integration" {
		t.Errorf("title: got %q", e.Title)
	}
	// Description runs to the blank line, not to end of string.
	want := "Accept card payments through a hosted\ncheckout flow with receipts."
	if e.Description != want {
		t.Errorf("description: got %q", e.Description)
	}
}

func TestParseEpicSummary_MarkdownLabels(t *testing.T) {
	output := `**Title:** Search improvements
**Description:** Faster indexing.`

	e := ParseEpicSummary(output)
	if e.Title != "Search improvements" {
		t.Errorf("title: got %q", e.Title)
	}
	if e.Description != "Faster indexing." {
		t.Errorf("description: got %q", e.Description)
	}
}

func TestParseEpicSummary_MissingFields(t *testing.T) {
	e := ParseEpicSummary("I couldn't figure out what you want.")
	if e.Title != "" || e.Description != "" {
		t.Errorf("expected empty fields, got %+v", e)
	}
}

func TestParseStories_Standard(t *testing.T) {
	output := `Story 1:
Title: Email/password login
Description: Users can log in.
Story Points: 5

Story 2:
Title: Password reset
Description: Users can reset a forgotten password by email.
Story Points: 3`

	stories := ParseStories(output)
	if len(stories) != 2 {
		t.Fatalf("expected 2 stories, got %d", len(stories))
	}

	if stories[0].Title != "Email/password login" {
		t.Errorf("story 0 title: got %q", stories[0].Title)
	}
	if stories[0].Description != "Users can log in." {
		t.Errorf("story 0 desc: got %q", stories[0].Description)
	}
	if stories[0].Points != 5 {
		t.Errorf("story 0 points: got %d", stories[0].Points)
	}
	if stories[1].Title != "Password reset" || stories[1].Points != 3 {
		t.Errorf("story 1: got %+v", stories[1])
	}
}

func TestParseStories_OrderOfAppearance(t *testing.T) {
	output := `Title: Third
Description: c
Story Points: 1
Title: First
Description: a
Story Points: 2`

	stories := ParseStories(output)
	if len(stories) != 2 {
		t.Fatalf("expected 2 stories, got %d", len(stories))
	}
	if stories[0].Title != "Third" || stories[1].Title != "First" {
		t.Error("stories not in order of appearance")
	}
}

func TestParseStories_OffScalePointsCoerced(t *testing.T) {
	// Extraction-derived estimates are coerced to int but not clamped to
	// the structured scale.
	output := `Title: Big one
Description: Everything at once.
Story Points: 40`

	stories := ParseStories(output)
	if len(stories) != 1 {
		t.Fatalf("expected 1 story, got %d", len(stories))
	}
	if stories[0].Points != 40 {
		t.Errorf("points: got %d", stories[0].Points)
	}
}

func TestParseStories_NoMatches(t *testing.T) {
	output := "These requirements are too vague to break down."
	stories := ParseStories(output)
	if len(stories) != 0 {
		t.Fatalf("expected 0 stories, got %d", len(stories))
	}
}

func TestParseStories_MarkdownLabels(t *testing.T) {
	output := `**Title:** Export to CSV
**Description:** Download the board as a file.
**Story Points:** 2`

	stories := ParseStories(output)
	if len(stories) != 1 {
		t.Fatalf("expected 1 story, got %d", len(stories))
	}
	if stories[0].Title != "Export to CSV" {
		t.Errorf("title: got %q", stories[0].Title)
	}
}
