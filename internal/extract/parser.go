// Package extract converts free-form agent text into structured epics
// and stories. Parsing is tolerant: a mismatch yields zero values or an
// empty list, never an error. Fallback construction is a separate step
// owned by the pipeline.
package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// ParsedEpic is the two-field result of the epic-summary pass. Either
// field may be empty when the response did not match the expected shape.
type ParsedEpic struct {
	Title       string
	Description string
}

// ParsedStory is one story block from the story-breakdown pass.
type ParsedStory struct {
	Title       string
	Description string
	Points      int
}

// The label patterns tolerate markdown emphasis around labels and after
// colons ("**Title:** ..." and friends).
var (
	// Title captures up to end of line.
	epicTitleRe = regexp.MustCompile(`(?im)^\s*\**Title\**\s*:[ \t*]*(.+)$`)
	// Description captures up to a blank line or end of string.
	epicDescRe = regexp.MustCompile(`(?is)\**Description\**\s*:[ \t*]*(.+?)(?:\n\s*\n|$)`)

	// One story block: Title / Description / Story Points in order.
	storyRe = regexp.MustCompile(`(?is)\**Title\**\s*:[ \t*]*(.+?)\s*\n\s*\**Description\**\s*:[ \t*]*(.+?)\s*\n\s*\**Story Points\**\s*:[ \t*]*(\d+)`)
)

// ParseEpicSummary extracts the Title:/Description: fields from an
// epic-summary response. Missing fields come back empty.
func ParseEpicSummary(output string) ParsedEpic {
	var e ParsedEpic

	if m := epicTitleRe.FindStringSubmatch(output); m != nil {
		e.Title = cleanField(m[1])
	}
	if m := epicDescRe.FindStringSubmatch(output); m != nil {
		e.Description = cleanField(m[1])
	}
	return e
}

// ParseStories scans the story-breakdown response for all repetitions of
// the labeled block pattern, in order of appearance. Story points are
// coerced to an integer; agent-derived values are not restricted to the
// structured estimate scale.
func ParseStories(output string) []ParsedStory {
	var stories []ParsedStory

	for _, m := range storyRe.FindAllStringSubmatch(output, -1) {
		title := cleanField(m[1])
		if title == "" {
			continue
		}
		points, _ := strconv.Atoi(m[3])
		stories = append(stories, ParsedStory{
			Title:       title,
			Description: cleanField(m[2]),
			Points:      points,
		})
	}
	return stories
}

// cleanField strips surrounding whitespace and stray markdown emphasis.
func cleanField(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, "*`")
	return strings.TrimSpace(s)
}
