package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"knowledge-search/internal/models"
)

// AgentClientInterface defines the interface for hosted agent communication
type AgentClientInterface interface {
	// Ask sends one question scoped by the session identifier and returns
	// the agent's envelope. The envelope itself may carry status "error"
	// (service-reported failure); transport, HTTP and decode failures are
	// returned as errors instead.
	Ask(ctx context.Context, question string, sessionID string) (*models.AgentResponse, error)
}

// AgentClient handles communication with the hosted RAG agent
type AgentClient struct {
	baseURL    string
	agentID    string
	httpClient *http.Client
}

// NewAgentClient creates a new agent client with default settings
func NewAgentClient(baseURL, agentID string) *AgentClient {
	return NewAgentClientWithOptions(baseURL, agentID, 60*time.Second)
}

// NewAgentClientWithOptions creates a client with a custom timeout
func NewAgentClientWithOptions(baseURL, agentID string, timeout time.Duration) *AgentClient {
	return &AgentClient{
		baseURL: baseURL,
		agentID: agentID,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// askRequest is the wire format of an agent query
type askRequest struct {
	Question  string `json:"question"`
	AgentID   string `json:"agent_id"`
	SessionID string `json:"session_id"`
}

// Ask sends a question to the hosted agent. No retries: a failed call
// surfaces immediately and retry policy stays with the caller.
func (c *AgentClient) Ask(ctx context.Context, question string, sessionID string) (*models.AgentResponse, error) {
	url := fmt.Sprintf("%s/v3/agents/%s/query", c.baseURL, c.agentID)

	body, err := json.Marshal(askRequest{
		Question:  question,
		AgentID:   c.agentID,
		SessionID: sessionID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal agent request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create agent request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("agent request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("agent returned HTTP %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var result models.AgentResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode agent response: %w", err)
	}

	return &result, nil
}
