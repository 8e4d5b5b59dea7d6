package repositories

import (
	"knowledge-search/internal/models"
)

// ConversationRepository is an append-only log of conversation turns.
// Turns are never mutated or removed after creation; Reset discards the
// whole transcript for a fresh conversation.
type ConversationRepository interface {
	// AppendUserTurn records a question from the user and returns the turn
	AppendUserTurn(content string) *models.Message

	// AppendAssistantTurn records an answer (or synthesized error text)
	// from the assistant. Response and metadata are nil on error turns.
	AppendAssistantTurn(content string, response *models.AgentResult, metadata *models.AgentMetadata) *models.Message

	// Messages returns the transcript in insertion order
	Messages() []*models.Message

	// Count returns the number of turns in the transcript
	Count() int

	// Reset clears all turns
	Reset()
}
