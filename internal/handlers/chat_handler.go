package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"knowledge-search/internal/models"
	"knowledge-search/internal/services"
)

// ChatHandler handles HTTP requests for conversation operations
type ChatHandler struct {
	chatService services.ChatServiceInterface
	logger      *log.Logger
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chatService services.ChatServiceInterface, logger *log.Logger) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		logger:      logger,
	}
}

// AskRequest represents a question submission
type AskRequest struct {
	Question string `json:"question"`
}

// AskQuestion handles question submissions
// @Summary Ask a question
// @Description Submit a question to the research assistant and get its answer turn
// @Tags chat
// @Accept json
// @Produce json
// @Param request body AskRequest true "Question"
// @Success 200 {object} models.MessageDTO
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/chat/ask [post]
func (h *ChatHandler) AskQuestion(w http.ResponseWriter, r *http.Request) {
	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Printf("Failed to decode ask request: %v", err)
		h.sendError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	msg, err := h.chatService.SubmitQuestion(r.Context(), req.Question)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyQuestion):
			h.sendError(w, http.StatusBadRequest, "Question is required")
		case errors.Is(err, services.ErrRequestInFlight):
			h.sendError(w, http.StatusConflict, "A question is already being processed")
		default:
			h.logger.Printf("Failed to submit question: %v", err)
			h.sendError(w, http.StatusInternalServerError, "Failed to submit question")
		}
		return
	}

	h.sendJSON(w, http.StatusOK, msg.ToDTO())
}

// MessageListResponse represents the conversation transcript
type MessageListResponse struct {
	Messages []models.MessageDTO `json:"messages"`
	Count    int                 `json:"count"`
}

// ListMessages handles requests for the conversation transcript
// @Summary List conversation messages
// @Description Get all turns of the current conversation in order
// @Tags chat
// @Produce json
// @Success 200 {object} MessageListResponse
// @Router /api/v1/chat/messages [get]
func (h *ChatHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	messages := h.chatService.Messages()

	dtos := make([]models.MessageDTO, len(messages))
	for i, m := range messages {
		dtos[i] = m.ToDTO()
	}

	h.sendJSON(w, http.StatusOK, MessageListResponse{
		Messages: dtos,
		Count:    len(dtos),
	})
}

// SessionResponse represents the current conversation session
type SessionResponse struct {
	SessionID    string `json:"session_id"`
	MessageCount int    `json:"message_count"`
	IsLoading    bool   `json:"is_loading"`
}

// GetSession handles requests for session information
// @Summary Get session info
// @Description Get the current session identifier and conversation state
// @Tags chat
// @Produce json
// @Success 200 {object} SessionResponse
// @Router /api/v1/chat/session [get]
func (h *ChatHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	h.sendJSON(w, http.StatusOK, SessionResponse{
		SessionID:    h.chatService.SessionID(),
		MessageCount: len(h.chatService.Messages()),
		IsLoading:    h.chatService.IsLoading(),
	})
}

// NewConversationResponse confirms a conversation reset
type NewConversationResponse struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

// NewConversation handles conversation reset requests
// @Summary Start a new conversation
// @Description Clear the transcript and start a fresh conversation
// @Tags chat
// @Produce json
// @Success 200 {object} NewConversationResponse
// @Router /api/v1/chat/new [post]
func (h *ChatHandler) NewConversation(w http.ResponseWriter, r *http.Request) {
	sessionID := h.chatService.StartNewConversation()
	h.logger.Printf("Conversation reset (session %s)", sessionID)

	h.sendJSON(w, http.StatusOK, NewConversationResponse{
		Message:   "Started new conversation",
		SessionID: sessionID,
	})
}

// SuggestionsResponse carries follow-up question suggestions
type SuggestionsResponse struct {
	Suggestions []string `json:"suggestions"`
}

// GetSuggestions handles requests for follow-up suggestions
// @Summary Get follow-up suggestions
// @Description Get the follow-up questions suggested by the latest answer
// @Tags chat
// @Produce json
// @Success 200 {object} SuggestionsResponse
// @Router /api/v1/chat/suggestions [get]
func (h *ChatHandler) GetSuggestions(w http.ResponseWriter, r *http.Request) {
	suggestions := h.chatService.Suggestions()
	if suggestions == nil {
		suggestions = []string{}
	}

	h.sendJSON(w, http.StatusOK, SuggestionsResponse{Suggestions: suggestions})
}

func (h *ChatHandler) sendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Printf("Failed to encode JSON: %v", err)
	}
}

func (h *ChatHandler) sendError(w http.ResponseWriter, status int, message string) {
	h.sendJSON(w, status, ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Status:  status,
	})
}
