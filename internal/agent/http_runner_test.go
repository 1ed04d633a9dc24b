package agent

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deckhq/deck/internal/board"
	"github.com/deckhq/deck/internal/config"
)

func httpAgent(baseURL string) config.Agent {
	return config.Agent{Role: "analyst", Mode: "http", BaseURL: baseURL}
}

func TestHTTPRunner_Send(t *testing.T) {
	var gotPath string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(Response{
			Response:            "Title: Login\nDescription: Auth work.",
			Timestamp:           "2025-06-01T12:00:00Z",
			WorkflowSuggestions: []string{"extract"},
		})
	}))
	defer srv.Close()

	runner, err := NewHTTPRunner("svc", httpAgent(srv.URL))
	if err != nil {
		t.Fatalf("NewHTTPRunner: %v", err)
	}

	resp, err := runner.Send(context.Background(), Request{
		Role:    board.RoleAnalyst,
		Message: "summarize",
		Context: map[string]string{"history_00_user": "we need login"},
	})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}

	if gotPath != "/api/agents/analyst" {
		t.Errorf("path: got %q", gotPath)
	}
	if gotBody["message"] != "summarize" {
		t.Errorf("message: got %v", gotBody["message"])
	}
	if _, ok := gotBody["context"]; !ok {
		t.Error("context missing from request body")
	}
	if !strings.HasPrefix(resp.Response, "Title: Login") {
		t.Errorf("response text: got %q", resp.Response)
	}
	if len(resp.WorkflowSuggestions) != 1 {
		t.Errorf("suggestions: got %v", resp.WorkflowSuggestions)
	}
}

func TestHTTPRunner_ServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "agent exploded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	runner, err := NewHTTPRunner("svc", httpAgent(srv.URL))
	if err != nil {
		t.Fatalf("NewHTTPRunner: %v", err)
	}

	if _, err := runner.Send(context.Background(), Request{Role: board.RoleDev, Message: "hi"}); err == nil {
		t.Fatal("expected error for 500 response")
	}
}

func TestHTTPRunner_MissingAPIKey(t *testing.T) {
	cfg := httpAgent("http://localhost:9")
	cfg.APIKeyEnv = "DECK_TEST_KEY_THAT_IS_NOT_SET"

	if _, err := NewHTTPRunner("svc", cfg); err == nil {
		t.Fatal("expected error when the key env var is unset")
	}
}

func TestRouter_DispatchesByRole(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		json.NewEncoder(w).Encode(Response{Response: "ok"})
	}))
	defer srv.Close()

	cfg := &config.Config{Agents: map[string]config.Agent{
		"analyst-svc": {Role: "analyst", Mode: "http", BaseURL: srv.URL},
		"dev-svc":     {Role: "dev", Mode: "http", BaseURL: srv.URL},
	}}

	router, err := NewRouter(cfg)
	if err != nil {
		t.Fatalf("NewRouter: %v", err)
	}

	if _, err := router.Send(context.Background(), Request{Role: board.RoleDev, Message: "x"}); err != nil {
		t.Fatalf("Send dev: %v", err)
	}
	// qa has no dedicated agent: falls back to the first configured one.
	if _, err := router.Send(context.Background(), Request{Role: board.RoleQA, Message: "x"}); err != nil {
		t.Fatalf("Send qa: %v", err)
	}

	if len(paths) != 2 || paths[0] != "/api/agents/dev" {
		t.Errorf("paths: got %v", paths)
	}
}

func TestRouter_NoAgents(t *testing.T) {
	if _, err := NewRouter(&config.Config{}); err == nil {
		t.Fatal("expected error with no agents configured")
	}
}
