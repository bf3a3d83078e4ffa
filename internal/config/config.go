// Package config centralises all environment configuration for the API.
// It should be imported only by `cmd/server` (and test code). Business-logic
// layers receive an already-built Config instance via dependency-injection.
package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Backend selector values. Defaults reproduce the hosted setup the review
// index was built for: Gemini embeddings, a Pinecone index, OpenRouter
// completions.
const (
	EmbedderGemini = "gemini"
	EmbedderVertex = "vertex"

	VectorPinecone = "pinecone"
	VectorMongo    = "mongo"
	VectorQdrant   = "qdrant"

	LLMOpenRouter = "openrouter"
	LLMVertex     = "vertex"
)

// Config holds every runtime option the server needs.
// Keep it flat and simple—prefer primitive types over embedding structs.
type Config struct {
	// Network
	Port string

	// Backend selection
	EmbedderBackend string
	VectorBackend   string
	LLMBackend      string

	// Gemini embeddings
	GeminiAPIKey   string
	EmbeddingModel string

	// Pinecone
	PineconeAPIKey    string
	PineconeIndexHost string
	PineconeNamespace string

	// MongoDB Atlas vector search
	MongoURI string
	DBName   string

	// Qdrant
	QdrantHost       string
	QdrantPort       int
	QdrantCollection string

	// OpenRouter completions
	OpenRouterAPIKey  string
	OpenRouterBaseURL string
	CompletionModel   string

	// Google Cloud (vertex embedder / vertex completions)
	ProjectID   string
	Location    string
	VertexModel string

	// Server tuning
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Load parses the environment (and an optional .env file) into Config.
// Missing credentials for a selected backend terminate the process so
// mis-configurations fail fast instead of surfacing as a confusing
// downstream provider error.
func Load() Config {
	// godotenv.Load() is a no-op if .env doesn't exist—safe in production.
	_ = godotenv.Load()

	cfg := Config{
		Port:            getEnv("PORT", "8080"),
		EmbedderBackend: getEnv("EMBEDDER_BACKEND", EmbedderGemini),
		VectorBackend:   getEnv("VECTOR_BACKEND", VectorPinecone),
		LLMBackend:      getEnv("LLM_BACKEND", LLMOpenRouter),
		EmbeddingModel:  getEnv("EMBEDDING_MODEL", "text-embedding-004"),
		CompletionModel: getEnv("COMPLETION_MODEL", "meta-llama/llama-3.1-8b-instruct:free"),
		VertexModel:     getEnv("VERTEX_MODEL", "gemini-2.0-flash-lite-001"),
		ReadTimeout:     getDuration("READ_TIMEOUT_SEC", 5),
		// Streamed replies hold the connection open for the whole
		// generation; 0 disables the write deadline.
		WriteTimeout: getDuration("WRITE_TIMEOUT_SEC", 0),
	}

	switch cfg.EmbedderBackend {
	case EmbedderGemini:
		cfg.GeminiAPIKey = must("GEMINI_API_KEY")
	case EmbedderVertex:
		cfg.ProjectID = must("GCP_PROJECT_ID")
		cfg.Location = getEnv("GCP_LOCATION", "us-central1")
	default:
		log.Fatalf("unknown EMBEDDER_BACKEND %q", cfg.EmbedderBackend)
	}

	switch cfg.VectorBackend {
	case VectorPinecone:
		cfg.PineconeAPIKey = must("PINECONE_API_KEY")
		cfg.PineconeIndexHost = must("PINECONE_INDEX_HOST")
		cfg.PineconeNamespace = getEnv("PINECONE_NAMESPACE", "ns1")
	case VectorMongo:
		cfg.MongoURI = must("MONGODB_URI")
		cfg.DBName = getEnv("MONGODB_DB", "starprofs")
	case VectorQdrant:
		cfg.QdrantHost = getEnv("QDRANT_HOST", "localhost")
		cfg.QdrantPort = getInt("QDRANT_PORT", 6334)
		cfg.QdrantCollection = getEnv("QDRANT_COLLECTION", "reviews")
	default:
		log.Fatalf("unknown VECTOR_BACKEND %q", cfg.VectorBackend)
	}

	switch cfg.LLMBackend {
	case LLMOpenRouter:
		cfg.OpenRouterAPIKey = must("OPENROUTER_API_KEY")
		cfg.OpenRouterBaseURL = getEnv("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1")
	case LLMVertex:
		cfg.ProjectID = must("GCP_PROJECT_ID")
		cfg.Location = getEnv("GCP_LOCATION", "us-central1")
	default:
		log.Fatalf("unknown LLM_BACKEND %q", cfg.LLMBackend)
	}

	return cfg
}

// must fetches a required env var or terminates the program.
func must(key string) string {
	val := os.Getenv(key)
	if val == "" {
		log.Fatalf("env var %s is required", key)
	}
	return val
}

// getEnv returns env[key] if set, otherwise defaultVal.
func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// getInt reads an integer from env, falling back to defaultVal.
func getInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Printf("invalid %s=%q; using default %d", key, v, defaultVal)
	}
	return defaultVal
}

// getDuration reads an integer (seconds) from env, falling back to defaultSec.
func getDuration(key string, defaultSec int) time.Duration {
	if v := os.Getenv(key); v != "" {
		if sec, err := strconv.Atoi(v); err == nil {
			return time.Duration(sec) * time.Second
		}
		log.Printf("invalid %s=%q; using default %ds", key, v, defaultSec)
	}
	return time.Duration(defaultSec) * time.Second
}
