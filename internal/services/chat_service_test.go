package services

import (
	"context"
	"errors"
	"log"
	"os"
	"sync"
	"testing"

	"knowledge-search/internal/models"
	"knowledge-search/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// ============================================================================
// Mocks
// ============================================================================

type MockAgentClient struct {
	mock.Mock
}

func (m *MockAgentClient) Ask(ctx context.Context, question string, sessionID string) (*models.AgentResponse, error) {
	args := m.Called(ctx, question, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AgentResponse), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(message string) {
	m.Called(message)
}

func (m *MockNotifier) Status() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockNotifier) Clear() {
	m.Called()
}

// ============================================================================
// Test Helpers
// ============================================================================

func setupChatService(t *testing.T) (*ChatService, *MockAgentClient, *MockNotifier, *repositories.MemoryConversationRepository) {
	t.Helper()
	agent := new(MockAgentClient)
	notifier := new(MockNotifier)
	repo := repositories.NewMemoryConversationRepository()
	logger := log.New(os.Stdout, "[TEST] ", log.LstdFlags)
	return NewChatService(agent, repo, notifier, logger), agent, notifier, repo
}

func successResponse(answer string) *models.AgentResponse {
	return &models.AgentResponse{
		Status: models.AgentStatusSuccess,
		Result: &models.AgentResult{
			Answer:              answer,
			Sources:             []models.Source{{"document_name": "report.pdf"}},
			ContextMaintained:   true,
			FollowUpSuggestions: []string{"Tell me more"},
			Confidence:          0.82,
		},
		Metadata: &models.AgentMetadata{AgentName: "research-assistant"},
	}
}

// ============================================================================
// Tests
// ============================================================================

func TestNewChatService(t *testing.T) {
	service, _, _, _ := setupChatService(t)
	assert.NotNil(t, service)
	assert.NotEmpty(t, service.SessionID())
	assert.False(t, service.IsLoading())
	assert.Empty(t, service.Messages())
}

func TestSubmitQuestion_Success(t *testing.T) {
	service, agent, _, repo := setupChatService(t)
	ctx := context.Background()

	agent.On("Ask", ctx, "What is in the report?", service.SessionID()).
		Return(successResponse("Revenue grew in Q3."), nil)

	msg, err := service.SubmitQuestion(ctx, "What is in the report?")

	assert.NoError(t, err)
	assert.NotNil(t, msg)
	assert.Equal(t, models.RoleAssistant, msg.Role)
	assert.Equal(t, "Revenue grew in Q3.", msg.Content)
	assert.NotNil(t, msg.Response)
	assert.Equal(t, 82, msg.Response.ConfidencePercent())

	// User turn then assistant turn
	messages := repo.Messages()
	assert.Len(t, messages, 2)
	assert.Equal(t, models.RoleUser, messages[0].Role)
	assert.Equal(t, "What is in the report?", messages[0].Content)
	assert.Equal(t, models.RoleAssistant, messages[1].Role)

	assert.False(t, service.IsLoading())
	agent.AssertExpectations(t)
}

func TestSubmitQuestion_TrimsWhitespace(t *testing.T) {
	service, agent, _, _ := setupChatService(t)
	ctx := context.Background()

	agent.On("Ask", ctx, "hello", service.SessionID()).
		Return(successResponse("hi"), nil)

	msg, err := service.SubmitQuestion(ctx, "  hello  ")
	assert.NoError(t, err)
	assert.Equal(t, "hi", msg.Content)
	agent.AssertExpectations(t)
}

func TestSubmitQuestion_Empty(t *testing.T) {
	service, _, _, repo := setupChatService(t)

	_, err := service.SubmitQuestion(context.Background(), "   ")

	assert.ErrorIs(t, err, ErrEmptyQuestion)
	assert.Equal(t, 0, repo.Count())
}

func TestSubmitQuestion_TransportError(t *testing.T) {
	service, agent, _, repo := setupChatService(t)
	ctx := context.Background()

	agent.On("Ask", ctx, "hello", service.SessionID()).
		Return(nil, errors.New("connection refused"))

	msg, err := service.SubmitQuestion(ctx, "hello")

	// Transport failures become a normal assistant turn, not an error
	assert.NoError(t, err)
	assert.Equal(t, models.RoleAssistant, msg.Role)
	assert.Equal(t, "Network error occurred. Please try again.", msg.Content)
	assert.Nil(t, msg.Response)
	assert.Nil(t, msg.Metadata)
	assert.Equal(t, 2, repo.Count())
	assert.False(t, service.IsLoading())
}

func TestSubmitQuestion_ServiceErrorWithMessage(t *testing.T) {
	service, agent, _, _ := setupChatService(t)
	ctx := context.Background()

	agent.On("Ask", ctx, "hello", service.SessionID()).
		Return(&models.AgentResponse{
			Status:  models.AgentStatusError,
			Message: "Agent quota exceeded",
		}, nil)

	msg, err := service.SubmitQuestion(ctx, "hello")

	assert.NoError(t, err)
	assert.Equal(t, "Agent quota exceeded", msg.Content)
	assert.Nil(t, msg.Response)
}

func TestSubmitQuestion_ServiceErrorWithoutMessage(t *testing.T) {
	service, agent, _, _ := setupChatService(t)
	ctx := context.Background()

	agent.On("Ask", ctx, "hello", service.SessionID()).
		Return(&models.AgentResponse{Status: models.AgentStatusError}, nil)

	msg, err := service.SubmitQuestion(ctx, "hello")

	assert.NoError(t, err)
	assert.Equal(t, "Failed to get response from agent", msg.Content)
}

func TestSubmitQuestion_SuccessWithoutResult(t *testing.T) {
	service, agent, _, _ := setupChatService(t)
	ctx := context.Background()

	// "success" without a result payload is still a failure
	agent.On("Ask", ctx, "hello", service.SessionID()).
		Return(&models.AgentResponse{Status: models.AgentStatusSuccess}, nil)

	msg, err := service.SubmitQuestion(ctx, "hello")

	assert.NoError(t, err)
	assert.Equal(t, "Failed to get response from agent", msg.Content)
}

func TestSubmitQuestion_RejectsConcurrent(t *testing.T) {
	service, agent, _, _ := setupChatService(t)
	ctx := context.Background()

	started := make(chan struct{})
	release := make(chan struct{})

	agent.On("Ask", ctx, "slow", service.SessionID()).
		Run(func(args mock.Arguments) {
			close(started)
			<-release
		}).
		Return(successResponse("done"), nil)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := service.SubmitQuestion(ctx, "slow")
		assert.NoError(t, err)
	}()

	<-started
	assert.True(t, service.IsLoading())

	_, err := service.SubmitQuestion(ctx, "second")
	assert.ErrorIs(t, err, ErrRequestInFlight)

	close(release)
	wg.Wait()
	assert.False(t, service.IsLoading())

	// The flight guard clears, so a new question goes through
	agent.On("Ask", ctx, "third", service.SessionID()).
		Return(successResponse("ok"), nil)
	_, err = service.SubmitQuestion(ctx, "third")
	assert.NoError(t, err)
}

func TestSubmitQuestion_LoadingClearsAfterFailure(t *testing.T) {
	service, agent, _, _ := setupChatService(t)
	ctx := context.Background()

	agent.On("Ask", ctx, "hello", service.SessionID()).
		Return(nil, errors.New("boom"))

	_, err := service.SubmitQuestion(ctx, "hello")
	assert.NoError(t, err)
	assert.False(t, service.IsLoading())
}

func TestStartNewConversation(t *testing.T) {
	service, agent, notifier, repo := setupChatService(t)
	ctx := context.Background()

	agent.On("Ask", ctx, "hello", service.SessionID()).
		Return(successResponse("hi"), nil)
	notifier.On("Notify", "Started new conversation").Return()

	_, err := service.SubmitQuestion(ctx, "hello")
	assert.NoError(t, err)
	assert.Equal(t, 2, repo.Count())

	before := service.SessionID()
	sessionID := service.StartNewConversation()

	assert.Equal(t, 0, repo.Count())
	// The session identifier survives a reset
	assert.Equal(t, before, sessionID)
	notifier.AssertExpectations(t)
}

func TestSuggestions_StartersOnEmptyConversation(t *testing.T) {
	service, _, _, _ := setupChatService(t)

	suggestions := service.Suggestions()
	assert.Len(t, suggestions, 3)
	assert.Contains(t, suggestions, "What are the key findings in the research?")
}

func TestSuggestions(t *testing.T) {
	service, agent, _, _ := setupChatService(t)
	ctx := context.Background()

	agent.On("Ask", ctx, "hello", service.SessionID()).
		Return(successResponse("hi"), nil)

	_, err := service.SubmitQuestion(ctx, "hello")
	assert.NoError(t, err)

	assert.Equal(t, []string{"Tell me more"}, service.Suggestions())
}

func TestSuggestions_SkipsErrorTurns(t *testing.T) {
	service, agent, _, _ := setupChatService(t)
	ctx := context.Background()

	agent.On("Ask", ctx, "first", service.SessionID()).
		Return(successResponse("hi"), nil).Once()
	agent.On("Ask", ctx, "second", service.SessionID()).
		Return(nil, errors.New("boom")).Once()

	_, err := service.SubmitQuestion(ctx, "first")
	assert.NoError(t, err)
	_, err = service.SubmitQuestion(ctx, "second")
	assert.NoError(t, err)

	// The error turn carries no suggestions; the previous answer's stand
	assert.Equal(t, []string{"Tell me more"}, service.Suggestions())
}

func TestSubmitQuestion_Sequential(t *testing.T) {
	service, agent, _, repo := setupChatService(t)
	ctx := context.Background()

	agent.On("Ask", ctx, mock.AnythingOfType("string"), service.SessionID()).
		Return(successResponse("answer"), nil)

	for i := 0; i < 3; i++ {
		_, err := service.SubmitQuestion(ctx, "question")
		assert.NoError(t, err)
	}

	assert.Equal(t, 6, repo.Count())

	// Turns alternate user/assistant in insertion order
	messages := repo.Messages()
	for i, m := range messages {
		if i%2 == 0 {
			assert.Equal(t, models.RoleUser, m.Role)
		} else {
			assert.Equal(t, models.RoleAssistant, m.Role)
		}
		if i > 0 {
			assert.False(t, m.Timestamp.Before(messages[i-1].Timestamp))
		}
	}
}
