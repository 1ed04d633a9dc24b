package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeConfig writes a temp config file and returns its path.
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_Valid(t *testing.T) {
	path := writeConfig(t, `
version: 1
defaults:
  priority: high
  assignee: dev
  story_points: 5
agents:
  planner:
    role: pm
    mode: http
    base_url: http://localhost:8080
  helper:
    role: dev
    mode: cli
    cmd: claude
    args: ["--print"]
    timeout_sec: 60
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Version != 1 {
		t.Errorf("version: got %d", cfg.Version)
	}
	if cfg.Defaults.Priority != "high" || cfg.Defaults.StoryPoints != 5 {
		t.Errorf("defaults not parsed: %+v", cfg.Defaults)
	}
	if len(cfg.Agents) != 2 {
		t.Fatalf("expected 2 agents, got %d", len(cfg.Agents))
	}
	if cfg.Agents["planner"].BaseURL != "http://localhost:8080" {
		t.Errorf("planner base_url: got %q", cfg.Agents["planner"].BaseURL)
	}
	if cfg.Agents["helper"].TimeoutSec != 60 {
		t.Errorf("helper timeout: got %d", cfg.Agents["helper"].TimeoutSec)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "agents: [not a map")
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestValidate_Errors(t *testing.T) {
	cases := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			"missing mode",
			"agents:\n  a:\n    role: dev\n",
			"mode is required",
		},
		{
			"bad mode",
			"agents:\n  a:\n    role: dev\n    mode: grpc\n",
			"mode must be",
		},
		{
			"cli without cmd",
			"agents:\n  a:\n    role: dev\n    mode: cli\n",
			"cmd is required",
		},
		{
			"http without base_url",
			"agents:\n  a:\n    role: dev\n    mode: http\n",
			"base_url is required",
		},
		{
			"missing role",
			"agents:\n  a:\n    mode: cli\n    cmd: claude\n",
			"role is required",
		},
		{
			"unknown role",
			"agents:\n  a:\n    role: manager\n    mode: cli\n    cmd: claude\n",
			"unknown role",
		},
		{
			"bad default priority",
			"defaults:\n  priority: urgent\n",
			"unknown priority",
		},
		{
			"off-scale default points",
			"defaults:\n  story_points: 4\n",
			"not on the scale",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeConfig(t, tc.content)
			_, err := Load(path)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("error %q does not contain %q", err, tc.wantErr)
			}
		})
	}
}

func TestSaveAndReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	cfg := DefaultConfig()
	cfg.Agents["planner"] = Agent{Role: "pm", Mode: "http", BaseURL: "http://localhost:9000"}

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load after Save: %v", err)
	}
	if loaded.Agents["planner"].BaseURL != "http://localhost:9000" {
		t.Errorf("round trip lost base_url: %+v", loaded.Agents["planner"])
	}
}

func TestAgentForRole(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Agents["planner"] = Agent{Role: "pm", Mode: "http", BaseURL: "http://localhost:9000"}

	name, agent, ok := cfg.AgentForRole("pm")
	if !ok {
		t.Fatal("expected pm agent")
	}
	if name != "planner" || agent.Mode != "http" {
		t.Errorf("got %q %+v", name, agent)
	}

	if _, _, ok := cfg.AgentForRole("qa"); ok {
		t.Error("no qa agent configured, expected ok=false")
	}
}

func TestFormDefaults_FillsGaps(t *testing.T) {
	cfg := &Config{}
	pri, assignee, points := cfg.FormDefaults()
	if pri != "medium" || assignee != "dev" || points != 3 {
		t.Errorf("built-in defaults wrong: %s %s %d", pri, assignee, points)
	}

	cfg.Defaults = Defaults{Priority: "critical", Assignee: "qa", StoryPoints: 8}
	pri, assignee, points = cfg.FormDefaults()
	if pri != "critical" || assignee != "qa" || points != 8 {
		t.Errorf("configured defaults ignored: %s %s %d", pri, assignee, points)
	}
}
