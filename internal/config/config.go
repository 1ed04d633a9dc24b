package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/deckhq/deck/internal/board"
)

// Config is the root configuration for a deck project.
type Config struct {
	Version  int              `yaml:"version"`
	Defaults Defaults         `yaml:"defaults"`
	Agents   map[string]Agent `yaml:"agents"`
}

// Defaults are the manual-ticket-form values, also used as fallback
// values by the extraction pipeline.
type Defaults struct {
	Priority    string `yaml:"priority"`
	Assignee    string `yaml:"assignee"`
	StoryPoints int    `yaml:"story_points"`
}

// Agent describes how to reach the agent service for one role.
type Agent struct {
	Role       string   `yaml:"role"`                  // analyst, pm, dev, qa
	Mode       string   `yaml:"mode"`                  // "cli" or "http"
	Cmd        string   `yaml:"cmd,omitempty"`         // CLI command to spawn
	Args       []string `yaml:"args,omitempty"`        // CLI arguments
	BaseURL    string   `yaml:"base_url,omitempty"`    // Agent service base URL for http mode
	APIKeyEnv  string   `yaml:"api_key_env,omitempty"` // Env var name containing API key (optional)
	TimeoutSec int      `yaml:"timeout_sec,omitempty"` // Timeout in seconds (0 = default 120)
}

// DefaultTimeout returns the effective timeout for the agent.
func (a Agent) DefaultTimeout() int {
	if a.TimeoutSec > 0 {
		return a.TimeoutSec
	}
	return 120
}

// Load reads and parses the config file at the given path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the config to the given path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// DefaultConfig returns a starter config with sensible form defaults and
// no agents.
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Defaults: Defaults{
			Priority:    string(board.PriorityMedium),
			Assignee:    string(board.RoleDev),
			StoryPoints: 3,
		},
		Agents: map[string]Agent{},
	}
}

func (c *Config) validate() error {
	if c.Defaults.Priority != "" && !board.ValidPriority(board.Priority(c.Defaults.Priority)) {
		return fmt.Errorf("defaults: unknown priority %q", c.Defaults.Priority)
	}
	if c.Defaults.Assignee != "" && !board.ValidRole(board.Role(c.Defaults.Assignee)) {
		return fmt.Errorf("defaults: unknown assignee role %q", c.Defaults.Assignee)
	}
	if c.Defaults.StoryPoints != 0 && !board.ValidStoryPoints(c.Defaults.StoryPoints) {
		return fmt.Errorf("defaults: story points %d not on the scale", c.Defaults.StoryPoints)
	}

	for name, agent := range c.Agents {
		if agent.Mode == "" {
			return fmt.Errorf("agent %q: mode is required (cli or http)", name)
		}
		if agent.Mode != "cli" && agent.Mode != "http" {
			return fmt.Errorf("agent %q: mode must be 'cli' or 'http', got %q", name, agent.Mode)
		}
		if agent.Mode == "cli" && agent.Cmd == "" {
			return fmt.Errorf("agent %q: cmd is required for cli mode", name)
		}
		if agent.Mode == "http" && agent.BaseURL == "" {
			return fmt.Errorf("agent %q: base_url is required for http mode", name)
		}
		if agent.Role == "" {
			return fmt.Errorf("agent %q: role is required", name)
		}
		if !board.ValidRole(board.Role(agent.Role)) {
			return fmt.Errorf("agent %q: unknown role %q", name, agent.Role)
		}
	}
	return nil
}

// AgentForRole returns the configured agent serving the given role.
func (c *Config) AgentForRole(role board.Role) (string, Agent, bool) {
	for name, agent := range c.Agents {
		if agent.Role == string(role) {
			return name, agent, true
		}
	}
	return "", Agent{}, false
}

// FormDefaults converts the configured defaults into typed board values,
// filling gaps with the built-in defaults.
func (c *Config) FormDefaults() (board.Priority, board.Role, int) {
	pri := board.PriorityMedium
	if c.Defaults.Priority != "" {
		pri = board.Priority(c.Defaults.Priority)
	}
	assignee := board.RoleDev
	if c.Defaults.Assignee != "" {
		assignee = board.Role(c.Defaults.Assignee)
	}
	points := 3
	if c.Defaults.StoryPoints != 0 {
		points = c.Defaults.StoryPoints
	}
	return pri, assignee, points
}
