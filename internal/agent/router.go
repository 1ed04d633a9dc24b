package agent

import (
	"context"
	"fmt"

	"github.com/deckhq/deck/internal/board"
	"github.com/deckhq/deck/internal/config"
)

// Router dispatches each request to the runner configured for its role.
// Roles without a dedicated agent fall back to the first configured one,
// so a single-agent config still serves the whole board.
type Router struct {
	runners  map[board.Role]Runner
	fallback Runner
}

// NewRouter builds one runner per configured agent, keyed by role.
func NewRouter(cfg *config.Config) (*Router, error) {
	if len(cfg.Agents) == 0 {
		return nil, fmt.Errorf("no agents configured; add one to config.yaml")
	}

	r := &Router{runners: make(map[board.Role]Runner)}
	for _, role := range board.Roles {
		name, agentCfg, ok := cfg.AgentForRole(role)
		if !ok {
			continue
		}
		runner, err := NewRunner(name, agentCfg)
		if err != nil {
			return nil, fmt.Errorf("agent %q: %w", name, err)
		}
		r.runners[role] = runner
		if r.fallback == nil {
			r.fallback = runner
		}
	}
	if r.fallback == nil {
		return nil, fmt.Errorf("no agent serves a known role")
	}
	return r, nil
}

// Send forwards the request to the runner serving its role.
func (r *Router) Send(ctx context.Context, req Request) (*Response, error) {
	runner, ok := r.runners[req.Role]
	if !ok {
		runner = r.fallback
	}
	return runner.Send(ctx, req)
}

// Name returns the name of the fallback runner.
func (r *Router) Name() string { return r.fallback.Name() }

// Mode identifies the router among runners.
func (r *Router) Mode() string { return "router" }
