// Package agent is the client side of the external Agent Service: a
// request/response text-generation collaborator parameterized by role.
// Concrete adapters exist for an HTTP service and for spawning a local
// CLI agent.
package agent

import (
	"context"
	"fmt"

	"github.com/deckhq/deck/internal/board"
	"github.com/deckhq/deck/internal/config"
)

// Request is one outgoing exchange with the agent service.
type Request struct {
	Role    board.Role        // Which role agent handles the message.
	Message string            // The free-text prompt.
	Context map[string]string // Optional structured context, passed through.
}

// Response is what the agent service returns. Core logic depends only on
// the Response text; the remaining fields are passed through for display.
type Response struct {
	Response            string   `json:"response"`
	ContextUsed         string   `json:"context_used"`
	Timestamp           string   `json:"timestamp"`
	WorkflowSuggestions []string `json:"workflow_suggestions,omitempty"`
}

// Runner is the interface all agent adapters implement.
type Runner interface {
	// Send performs one round trip with the agent service. A transport
	// failure or non-success response is returned as an error and never
	// partially applied by callers.
	Send(ctx context.Context, req Request) (*Response, error)

	// Name returns the agent's configured name.
	Name() string

	// Mode returns "cli" or "http".
	Mode() string
}

// NewRunner creates the appropriate runner based on agent config.
func NewRunner(name string, agentCfg config.Agent) (Runner, error) {
	switch agentCfg.Mode {
	case "cli":
		return NewCLIRunner(name, agentCfg), nil
	case "http":
		return NewHTTPRunner(name, agentCfg)
	default:
		return nil, fmt.Errorf("unknown agent mode: %s", agentCfg.Mode)
	}
}
