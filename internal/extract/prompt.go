package extract

import "fmt"

// BuildEpicPrompt asks the analyst agent to summarize the conversation
// as a single epic in the labeled two-field format the parser expects.
func BuildEpicPrompt(summary string) string {
	return fmt.Sprintf(`Summarize the following conversation as one epic for a project board.

Respond in this exact format:

Title: [short epic title]
Description: [one or two sentences describing the epic]

Conversation:
%s`, summary)
}

// BuildStoryPrompt asks the pm agent to break the conversation down into
// story blocks in the repeating labeled format the parser expects.
func BuildStoryPrompt(summary string) string {
	return fmt.Sprintf(`Break the following conversation down into user stories for a project board.

Respond with one block per story, in this exact format:

Story 1:
Title: [story title]
Description: [what the story delivers]
Story Points: [estimate, e.g. 1, 2, 3, 5, 8 or 13]

Story 2:
Title: ...
Description: ...
Story Points: ...

Conversation:
%s`, summary)
}
