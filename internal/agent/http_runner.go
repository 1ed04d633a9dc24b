package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/deckhq/deck/internal/config"
)

// HTTPRunner calls the agent service over HTTP. One role-tagged endpoint
// per request: POST {base_url}/api/agents/{role}.
type HTTPRunner struct {
	name   string
	cfg    config.Agent
	apiKey string
	client *http.Client
}

// NewHTTPRunner creates a runner for the HTTP agent service.
func NewHTTPRunner(name string, cfg config.Agent) (*HTTPRunner, error) {
	apiKey := ""
	if cfg.APIKeyEnv != "" {
		apiKey = os.Getenv(cfg.APIKeyEnv)
		if apiKey == "" {
			return nil, fmt.Errorf("agent %s: environment variable %s is not set", name, cfg.APIKeyEnv)
		}
	}

	timeout := time.Duration(cfg.DefaultTimeout()) * time.Second

	return &HTTPRunner{
		name:   name,
		cfg:    cfg,
		apiKey: apiKey,
		client: &http.Client{Timeout: timeout},
	}, nil
}

func (r *HTTPRunner) Name() string { return r.name }
func (r *HTTPRunner) Mode() string { return "http" }

// Send posts the message to the role endpoint and decodes the response.
func (r *HTTPRunner) Send(ctx context.Context, req Request) (*Response, error) {
	body := map[string]any{
		"message": req.Message,
	}
	if len(req.Context) > 0 {
		body["context"] = req.Context
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := strings.TrimRight(r.cfg.BaseURL, "/") + "/api/agents/" + string(req.Role)
	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if r.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+r.apiKey)
	}

	httpResp, err := r.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("agent %s: call failed: %w", r.name, err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("agent %s: service returned status %d: %s", r.name, httpResp.StatusCode, string(respBody))
	}

	var result Response
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	if result.Timestamp == "" {
		result.Timestamp = time.Now().UTC().Format(time.RFC3339)
	}

	return &result, nil
}
