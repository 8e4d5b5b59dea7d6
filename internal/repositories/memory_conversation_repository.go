package repositories

import (
	"sync"
	"time"

	"knowledge-search/internal/models"

	"github.com/google/uuid"
)

// MemoryConversationRepository keeps the transcript in process memory.
// Conversations are ephemeral by design: nothing survives a restart.
type MemoryConversationRepository struct {
	mu       sync.RWMutex
	messages []*models.Message
}

// NewMemoryConversationRepository creates an empty in-memory transcript
func NewMemoryConversationRepository() *MemoryConversationRepository {
	return &MemoryConversationRepository{
		messages: make([]*models.Message, 0),
	}
}

// AppendUserTurn records a question from the user and returns the turn
func (r *MemoryConversationRepository) AppendUserTurn(content string) *models.Message {
	return r.append(&models.Message{
		ID:        uuid.New().String(),
		Role:      models.RoleUser,
		Content:   content,
		Timestamp: time.Now(),
	})
}

// AppendAssistantTurn records an answer or synthesized error text
func (r *MemoryConversationRepository) AppendAssistantTurn(content string, response *models.AgentResult, metadata *models.AgentMetadata) *models.Message {
	return r.append(&models.Message{
		ID:        uuid.New().String(),
		Role:      models.RoleAssistant,
		Content:   content,
		Response:  response,
		Metadata:  metadata,
		Timestamp: time.Now(),
	})
}

func (r *MemoryConversationRepository) append(msg *models.Message) *models.Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, msg)
	return msg
}

// Messages returns a copy of the transcript in insertion order
func (r *MemoryConversationRepository) Messages() []*models.Message {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*models.Message, len(r.messages))
	copy(out, r.messages)
	return out
}

// Count returns the number of turns in the transcript
func (r *MemoryConversationRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.messages)
}

// Reset clears all turns
func (r *MemoryConversationRepository) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = r.messages[:0]
}
