// Package chat maintains the rolling conversation between the user and
// the agent service. The log is append-only and authoritative; only the
// context slice sent outward is bounded.
package chat

import (
	"strings"
	"time"
)

// Sender tags who authored a message.
type Sender string

const (
	SenderUser  Sender = "user"
	SenderAgent Sender = "agent"
)

// Message is one timestamped conversation turn.
type Message struct {
	Sender Sender    `json:"sender"`
	Text   string    `json:"text"`
	Time   time.Time `json:"time"`
}

// ContextWindow is how many trailing messages are sent to the agent
// service as context, to bound payload growth.
const ContextWindow = 10

// Log is the ordered, append-only message sequence. The zero value is
// ready to use.
type Log struct {
	messages []Message
}

// Append records a message at the end of the sequence.
func (l *Log) Append(sender Sender, text string, at time.Time) {
	l.messages = append(l.messages, Message{Sender: sender, Text: text, Time: at.UTC()})
}

// Len returns the number of messages in the authoritative sequence.
func (l *Log) Len() int { return len(l.messages) }

// Messages returns a copy of the full sequence.
func (l *Log) Messages() []Message {
	out := make([]Message, len(l.messages))
	copy(out, l.messages)
	return out
}

// Window returns a copy of the last n messages. Messages are never
// discarded from the log itself, only omitted from the outbound slice.
func (l *Log) Window(n int) []Message {
	start := len(l.messages) - n
	if start < 0 {
		start = 0
	}
	out := make([]Message, len(l.messages)-start)
	copy(out, l.messages[start:])
	return out
}

// Context returns the bounded suffix used for outgoing agent requests.
func (l *Log) Context() []Message {
	return l.Window(ContextWindow)
}

// UserSummary concatenates the user-authored messages in chronological
// order. This is the conversation summary fed to the extraction pipeline.
func (l *Log) UserSummary() string {
	var parts []string
	for _, m := range l.messages {
		if m.Sender == SenderUser {
			parts = append(parts, m.Text)
		}
	}
	return strings.Join(parts, "\n")
}

// Restore replaces the log contents, used when loading a persisted
// session. The slice is copied.
func (l *Log) Restore(messages []Message) {
	l.messages = make([]Message, len(messages))
	copy(l.messages, messages)
}
