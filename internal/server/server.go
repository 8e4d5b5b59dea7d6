package server

import (
	"log"
	"net/http"
	"os"
	"time"

	"knowledge-search/internal/config"
	"knowledge-search/internal/handlers"
	"knowledge-search/internal/repositories"
	"knowledge-search/internal/routes"
	"knowledge-search/internal/services"

	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"
)

// corsMiddleware adds CORS headers to all responses
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		// Handle preflight requests
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func NewServer() *http.Server {
	logger := log.New(os.Stdout, "[SERVER] ", log.LstdFlags)

	cfg := config.Load()
	logger.Printf("Agent endpoint: %s (agent %s)", cfg.AgentBaseURL, cfg.AgentID)
	logger.Printf("Ingestion endpoint: %s", cfg.RAGUploadURL())

	// External clients
	agentClient := services.NewAgentClientWithOptions(cfg.AgentBaseURL, cfg.AgentID, cfg.AgentTimeout)
	ingestClient := services.NewIngestClient(cfg.RAGUploadURL(), cfg.UploadTimeout)

	// In-memory state. Conversations and the document registry are
	// ephemeral: a restart starts clean.
	conversationRepo := repositories.NewMemoryConversationRepository()
	documentRegistry := repositories.NewMemoryDocumentRegistry()

	// Services
	notifier := services.NewNotifier(cfg.StatusClearDelay)
	chatService := services.NewChatService(agentClient, conversationRepo, notifier,
		log.New(os.Stdout, "[CHAT] ", log.LstdFlags))
	uploadService := services.NewUploadService(ingestClient, documentRegistry, notifier,
		log.New(os.Stdout, "[UPLOAD] ", log.LstdFlags),
		cfg.UploadTimeout, cfg.IndexingWait, cfg.SuccessResetDelay)

	// Handlers
	chatHandler := handlers.NewChatHandler(chatService, logger)
	docHandler := handlers.NewDocumentHandler(uploadService, documentRegistry, notifier, logger, cfg.MaxUploadMemory)

	h := &routes.Handlers{
		Health:          handlers.HealthCheckHandler,
		Home:            handlers.HomeHandler,
		ChatHandler:     chatHandler,
		DocumentHandler: docHandler,
	}

	router := mux.NewRouter()
	routes.RegisterRoutes(router, h)

	// Add Swagger endpoints
	router.PathPrefix("/swagger/").Handler(httpSwagger.Handler(
		httpSwagger.URL("http://localhost:8080/swagger/doc.json"), // The url pointing to API definition
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("none"),
		httpSwagger.DomID("swagger-ui"),
	))

	logger.Printf("Session %s ready", chatService.SessionID())

	return &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      corsMiddleware(router),
		ReadTimeout:  cfg.UploadTimeout,
		WriteTimeout: cfg.AgentTimeout + 10*time.Second,
	}
}
