package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"

	"knowledge-search/internal/models"
	"knowledge-search/internal/repositories"

	"github.com/google/uuid"
)

// Sentinel errors reported by SubmitQuestion
var (
	// ErrEmptyQuestion is returned when the question is empty or whitespace
	ErrEmptyQuestion = errors.New("question is empty")

	// ErrRequestInFlight is returned while a previous question is still
	// being answered. Requests are rejected, not queued.
	ErrRequestInFlight = errors.New("a question is already being processed")
)

// User-facing texts for failed agent calls. Failures become normal
// assistant turns so the transcript stays self-contained.
const (
	networkErrorText = "Network error occurred. Please try again."
	agentErrorText   = "Failed to get response from agent"
)

// ChatServiceInterface defines the interface for conversation operations
type ChatServiceInterface interface {
	SubmitQuestion(ctx context.Context, question string) (*models.Message, error)
	StartNewConversation() string
	SessionID() string
	Messages() []*models.Message
	IsLoading() bool
	Suggestions() []string
}

// ChatService orchestrates the conversation: it owns the session
// identifier, appends turns to the transcript, and funnels questions to
// the hosted agent one at a time.
type ChatService struct {
	agent    AgentClientInterface
	repo     repositories.ConversationRepository
	notifier NotifierInterface
	logger   *log.Logger

	mu        sync.Mutex
	sessionID string
	loading   bool
}

// NewChatService creates a chat service with a fresh session identifier
func NewChatService(agent AgentClientInterface, repo repositories.ConversationRepository, notifier NotifierInterface, logger *log.Logger) *ChatService {
	return &ChatService{
		agent:     agent,
		repo:      repo,
		notifier:  notifier,
		logger:    logger,
		sessionID: uuid.New().String(),
	}
}

// SubmitQuestion records the question, queries the agent and records the
// answer. Only one question may be in flight at a time; concurrent calls
// get ErrRequestInFlight. Agent failures do not error: they produce an
// assistant turn carrying the failure text, and the returned message is
// that turn.
func (s *ChatService) SubmitQuestion(ctx context.Context, question string) (*models.Message, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, ErrEmptyQuestion
	}

	s.mu.Lock()
	if s.loading {
		s.mu.Unlock()
		return nil, ErrRequestInFlight
	}
	s.loading = true
	sessionID := s.sessionID
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	s.repo.AppendUserTurn(question)
	s.logger.Printf("Submitting question (session %s)", sessionID)

	resp, err := s.agent.Ask(ctx, question, sessionID)
	if err != nil {
		s.logger.Printf("Agent call failed: %v", err)
		return s.repo.AppendAssistantTurn(networkErrorText, nil, nil), nil
	}

	if !resp.IsSuccess() {
		text := agentErrorText
		if resp.Message != "" {
			text = resp.Message
		}
		s.logger.Printf("Agent reported error: %s", text)
		return s.repo.AppendAssistantTurn(text, nil, nil), nil
	}

	return s.repo.AppendAssistantTurn(resp.Result.Answer, resp.Result, resp.Metadata), nil
}

// StartNewConversation clears the transcript and returns the session
// identifier. The session identifier is not rotated: the hosted agent
// scopes its own memory per session and the fresh transcript is what
// defines the new conversation locally.
func (s *ChatService) StartNewConversation() string {
	s.repo.Reset()
	s.notifier.Notify("Started new conversation")

	s.mu.Lock()
	defer s.mu.Unlock()
	s.logger.Printf("Started new conversation (session %s)", s.sessionID)
	return s.sessionID
}

// SessionID returns the current session identifier
func (s *ChatService) SessionID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessionID
}

// Messages returns the transcript in insertion order
func (s *ChatService) Messages() []*models.Message {
	return s.repo.Messages()
}

// IsLoading reports whether a question is currently in flight
func (s *ChatService) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// starterQuestions seed an empty conversation
var starterQuestions = []string{
	"What are the key findings in the research?",
	"Summarize the methodology used",
	"What conclusions were drawn?",
}

// Suggestions returns the follow-up suggestions of the latest assistant
// turn that carried any, or the starter questions on an empty conversation
func (s *ChatService) Suggestions() []string {
	messages := s.repo.Messages()
	if len(messages) == 0 {
		return starterQuestions
	}
	for i := len(messages) - 1; i >= 0; i-- {
		m := messages[i]
		if m.Role == models.RoleAssistant && m.Response != nil && len(m.Response.FollowUpSuggestions) > 0 {
			return m.Response.FollowUpSuggestions
		}
	}
	return nil
}
