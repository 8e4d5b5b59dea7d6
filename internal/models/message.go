package models

import (
	"time"
)

// Role identifies the author of a conversation turn
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// IsValid checks if the role is valid
func (r Role) IsValid() bool {
	return r == RoleUser || r == RoleAssistant
}

// String returns the string representation of the role
func (r Role) String() string {
	return string(r)
}

// Message represents a single turn in a conversation. Turns are immutable
// once appended to a conversation; ordering is insertion order.
type Message struct {
	ID        string         `json:"id"`
	Role      Role           `json:"role"`
	Content   string         `json:"content"`
	Response  *AgentResult   `json:"response,omitempty"`
	Metadata  *AgentMetadata `json:"metadata,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// AgentResult is the structured answer produced by a successful agent call
type AgentResult struct {
	Answer              string   `json:"answer"`
	Sources             []Source `json:"sources"`
	ContextMaintained   bool     `json:"context_maintained"`
	FollowUpSuggestions []string `json:"follow_up_suggestions"`
	Confidence          float64  `json:"confidence"`
}

// ConfidencePercent returns the confidence as a whole percentage for display
// (0.82 -> 82). Values outside [0,1] are clamped.
func (r *AgentResult) ConfidencePercent() int {
	c := r.Confidence
	if c < 0 {
		c = 0
	}
	if c > 1 {
		c = 1
	}
	return int(c*100 + 0.5)
}

// AgentMetadata describes how the agent produced an answer
type AgentMetadata struct {
	AgentName         string `json:"agent_name"`
	Timestamp         string `json:"timestamp"`
	DocumentsSearched int    `json:"documents_searched"`
	RetrievalMethod   string `json:"retrieval_method"`
}

// AgentResponse is the wire-level envelope returned by the hosted agent.
// Status is "success" or "error"; Message carries the service-reported
// failure reason when Status is "error".
type AgentResponse struct {
	Status   string         `json:"status"`
	Result   *AgentResult   `json:"result,omitempty"`
	Metadata *AgentMetadata `json:"metadata,omitempty"`
	Message  string         `json:"message,omitempty"`
}

const (
	AgentStatusSuccess = "success"
	AgentStatusError   = "error"
)

// IsSuccess reports whether the agent produced a structured answer
func (r *AgentResponse) IsSuccess() bool {
	return r.Status == AgentStatusSuccess && r.Result != nil
}

// MessageDTO represents the API view of a conversation turn
type MessageDTO struct {
	ID        string         `json:"id"`
	Role      string         `json:"role"`
	Content   string         `json:"content"`
	Response  *AgentResult   `json:"response,omitempty"`
	Metadata  *AgentMetadata `json:"metadata,omitempty"`
	Timestamp string         `json:"timestamp"`
}

// ToDTO converts Message domain model to DTO
func (m *Message) ToDTO() MessageDTO {
	return MessageDTO{
		ID:        m.ID,
		Role:      string(m.Role),
		Content:   m.Content,
		Response:  m.Response,
		Metadata:  m.Metadata,
		Timestamp: m.Timestamp.Format(time.RFC3339),
	}
}
