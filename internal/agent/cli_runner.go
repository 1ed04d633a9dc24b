package agent

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/deckhq/deck/internal/config"
)

// CLIRunner spawns an external CLI agent (claude, gemini, codex, ollama,
// etc.) and treats its stdout as the response text.
type CLIRunner struct {
	name string
	cfg  config.Agent
}

// NewCLIRunner creates a runner that spawns CLI processes.
func NewCLIRunner(name string, cfg config.Agent) *CLIRunner {
	return &CLIRunner{name: name, cfg: cfg}
}

func (r *CLIRunner) Name() string { return r.name }
func (r *CLIRunner) Mode() string { return "cli" }

// Send spawns the CLI agent process with the message.
//
// The message is passed as the last argument to the command. For example,
// with cmd="claude" and args=["--print"], the full command becomes:
// claude --print "the message text".
func (r *CLIRunner) Send(ctx context.Context, req Request) (*Response, error) {
	args := make([]string, len(r.cfg.Args))
	copy(args, r.cfg.Args)

	message := req.Message
	if len(req.Context) > 0 {
		// CLI agents have no structured context channel; prepend it as text.
		var sb strings.Builder
		sb.WriteString("Context:\n")
		for k, v := range req.Context {
			sb.WriteString(fmt.Sprintf("  %s: %s\n", k, v))
		}
		sb.WriteString("\n")
		sb.WriteString(message)
		message = sb.String()
	}
	args = append(args, message)

	timeout := time.Duration(r.cfg.DefaultTimeout()) * time.Second
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, r.cfg.Cmd, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("agent %s timed out after %ds", r.name, int(timeout.Seconds()))
		}
		stderrStr := strings.TrimSpace(stderr.String())
		if stderrStr != "" {
			return nil, fmt.Errorf("agent %s failed: %s", r.name, stderrStr)
		}
		return nil, fmt.Errorf("agent %s failed: %w", r.name, err)
	}

	return &Response{
		Response:  stdout.String(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// CLIAvailable checks if the CLI command exists in PATH.
func CLIAvailable(cmd string) bool {
	_, err := exec.LookPath(cmd)
	return err == nil
}
