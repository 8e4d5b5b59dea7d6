package routes

import (
	"net/http"

	"knowledge-search/internal/handlers"

	"github.com/gorilla/mux"
)

// Handlers groups everything the router needs
type Handlers struct {
	Health func(w http.ResponseWriter, r *http.Request)
	Home   func(w http.ResponseWriter, r *http.Request)

	ChatHandler     *handlers.ChatHandler
	DocumentHandler *handlers.DocumentHandler
}

// RegisterRoutes sets up all application routes
func RegisterRoutes(router *mux.Router, h *Handlers) {
	// Health endpoints
	router.HandleFunc("/health", h.Health).Methods(http.MethodGet)

	// Main routes
	router.HandleFunc("/", h.Home).Methods(http.MethodGet)

	api := router.PathPrefix("/api/v1").Subrouter()

	// Conversation endpoints
	api.HandleFunc("/chat/ask", h.ChatHandler.AskQuestion).Methods(http.MethodPost)
	api.HandleFunc("/chat/messages", h.ChatHandler.ListMessages).Methods(http.MethodGet)
	api.HandleFunc("/chat/session", h.ChatHandler.GetSession).Methods(http.MethodGet)
	api.HandleFunc("/chat/new", h.ChatHandler.NewConversation).Methods(http.MethodPost)
	api.HandleFunc("/chat/suggestions", h.ChatHandler.GetSuggestions).Methods(http.MethodGet)

	// Document endpoints
	api.HandleFunc("/documents/upload", h.DocumentHandler.UploadDocuments).Methods(http.MethodPost)
	api.HandleFunc("/documents", h.DocumentHandler.ListDocuments).Methods(http.MethodGet)
	api.HandleFunc("/documents/{index:[0-9]+}", h.DocumentHandler.DeleteDocument).Methods(http.MethodDelete)
	api.HandleFunc("/uploads/{id}", h.DocumentHandler.GetUploadRun).Methods(http.MethodGet)

	// Status endpoint
	api.HandleFunc("/status", h.DocumentHandler.GetStatus).Methods(http.MethodGet)
}
