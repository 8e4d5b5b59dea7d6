package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration for the KnowledgeSearch server.
// Values come from the environment with sensible defaults; a .env file in
// the working directory is loaded if present.
type Config struct {
	// ListenAddr is the address the HTTP server binds to
	ListenAddr string

	// AgentBaseURL is the base URL of the hosted agent service
	AgentBaseURL string

	// AgentID identifies the research-assistant agent to query
	AgentID string

	// RAGBaseURL is the base URL of the hosted ingestion service
	RAGBaseURL string

	// RAGID identifies the knowledge base that uploads are indexed into
	RAGID string

	// AgentTimeout bounds a single agent query call
	AgentTimeout time.Duration

	// UploadTimeout bounds a single multipart upload call
	UploadTimeout time.Duration

	// IndexingWait is the fixed wait representing server-side indexing.
	// There is no poll-until-ready contract on the ingestion service yet,
	// so this is a bounded stand-in, not a readiness guarantee.
	IndexingWait time.Duration

	// SuccessResetDelay is how long a successful run stays visible before
	// resetting to idle
	SuccessResetDelay time.Duration

	// StatusClearDelay is how long transient status notifications live
	StatusClearDelay time.Duration

	// MaxUploadMemory caps in-memory multipart form parsing
	MaxUploadMemory int64
}

// Load reads configuration from the environment
func Load() *Config {
	// Missing .env is fine; the environment may be set directly
	_ = godotenv.Load()

	return &Config{
		ListenAddr:        getEnv("LISTEN_ADDR", ":8080"),
		AgentBaseURL:      getEnv("AGENT_BASE_URL", "https://agent-prod.studio.lyzr.ai"),
		AgentID:           getEnv("AGENT_ID", "697d2c28d36f070193f5c85e"),
		RAGBaseURL:        getEnv("RAG_BASE_URL", "https://rag-prod.studio.lyzr.ai"),
		RAGID:             getEnv("RAG_ID", "697d2c1647177de38546da1e"),
		AgentTimeout:      getDuration("AGENT_TIMEOUT", 60*time.Second),
		UploadTimeout:     getDuration("UPLOAD_TIMEOUT", 120*time.Second),
		IndexingWait:      getDuration("INDEXING_WAIT", 2*time.Second),
		SuccessResetDelay: getDuration("SUCCESS_RESET_DELAY", 1500*time.Millisecond),
		StatusClearDelay:  getDuration("STATUS_CLEAR_DELAY", 2*time.Second),
		MaxUploadMemory:   getInt64("MAX_UPLOAD_MEMORY", 100<<20),
	}
}

// RAGUploadURL returns the full ingestion endpoint for the configured
// knowledge base
func (c *Config) RAGUploadURL() string {
	return fmt.Sprintf("%s/v2/rag/%s/upload", c.RAGBaseURL, c.RAGID)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return n
		}
	}
	return defaultValue
}
