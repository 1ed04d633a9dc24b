package chat

import (
	"fmt"
	"testing"
	"time"
)

func TestLog_AppendOrdered(t *testing.T) {
	var l Log
	now := time.Now()

	l.Append(SenderUser, "we need login", now)
	l.Append(SenderAgent, "noted", now.Add(time.Second))

	msgs := l.Messages()
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	if msgs[0].Sender != SenderUser || msgs[1].Sender != SenderAgent {
		t.Error("messages out of order")
	}
}

func TestLog_WindowBounded(t *testing.T) {
	var l Log
	now := time.Now()
	for i := 0; i < 25; i++ {
		l.Append(SenderUser, fmt.Sprintf("message %d", i), now)
	}

	ctx := l.Context()
	if len(ctx) != ContextWindow {
		t.Fatalf("expected %d context messages, got %d", ContextWindow, len(ctx))
	}
	// The window is the suffix, not the prefix.
	if ctx[len(ctx)-1].Text != "message 24" {
		t.Errorf("window should end at the latest message, got %q", ctx[len(ctx)-1].Text)
	}
	// The authoritative log keeps everything.
	if l.Len() != 25 {
		t.Errorf("log discarded messages: len %d", l.Len())
	}
}

func TestLog_WindowShorterThanLog(t *testing.T) {
	var l Log
	l.Append(SenderUser, "only one", time.Now())

	if got := len(l.Window(10)); got != 1 {
		t.Errorf("expected 1, got %d", got)
	}
}

func TestLog_UserSummary(t *testing.T) {
	var l Log
	now := time.Now()
	l.Append(SenderUser, "We need user login", now)
	l.Append(SenderAgent, "Sure, tell me more.", now)
	l.Append(SenderUser, "with email and password", now)

	want := "We need user login\nwith email and password"
	if got := l.UserSummary(); got != want {
		t.Errorf("UserSummary = %q, want %q", got, want)
	}
}

func TestLog_MessagesReturnsCopy(t *testing.T) {
	var l Log
	l.Append(SenderUser, "original", time.Now())

	msgs := l.Messages()
	msgs[0].Text = "tampered"

	if l.Messages()[0].Text != "original" {
		t.Error("Messages should return a copy")
	}
}
