package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/starprofs/server/internal/config"
	"github.com/starprofs/server/internal/database"
	"github.com/starprofs/server/internal/handler"
	"github.com/starprofs/server/internal/middleware"
	"github.com/starprofs/server/internal/repository"
	"github.com/starprofs/server/internal/service"
)

// main is the single entry-point for the StarProfs chat API.
func main() {
	// Load configuration
	cfg := config.Load()
	log.Printf("Configuration loaded:")
	log.Printf("  - Embedder: %s (%s)", cfg.EmbedderBackend, cfg.EmbeddingModel)
	log.Printf("  - Vector backend: %s", cfg.VectorBackend)
	log.Printf("  - Completion: %s", cfg.LLMBackend)

	// Vector search backend
	var mongoClient *mongo.Client
	var reviews service.ReviewRepository
	switch cfg.VectorBackend {
	case config.VectorPinecone:
		reviews = repository.NewPinecone(cfg.PineconeAPIKey, cfg.PineconeIndexHost, cfg.PineconeNamespace)
	case config.VectorMongo:
		connectCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		client, err := database.NewMongo(connectCtx, cfg.MongoURI)
		cancel()
		if err != nil {
			log.Fatalf("Failed to connect to MongoDB: %v", err)
		}
		defer client.Disconnect(context.Background())
		log.Printf("Connected to MongoDB, database: %s", cfg.DBName)
		mongoClient = client
		reviews = repository.NewReviewRepository(client.Database(cfg.DBName))
	case config.VectorQdrant:
		q, err := repository.NewQdrant(cfg.QdrantHost, cfg.QdrantPort, cfg.QdrantCollection)
		if err != nil {
			log.Fatalf("Failed to connect to Qdrant: %v", err)
		}
		defer q.Close()
		reviews = q
	}

	// Embedding backend
	var embedder service.EmbeddingClient
	switch cfg.EmbedderBackend {
	case config.EmbedderGemini:
		embedder = service.NewGeminiEmbedder(cfg.GeminiAPIKey, cfg.EmbeddingModel, "")
	case config.EmbedderVertex:
		ve, err := service.NewVertexEmbedder(context.Background(), cfg.ProjectID, cfg.Location, cfg.EmbeddingModel)
		if err != nil {
			log.Fatalf("Failed to initialize Vertex AI embedder: %v", err)
		}
		defer ve.Close()
		embedder = ve
	}

	// Completion backend
	var llm service.CompletionStreamer
	switch cfg.LLMBackend {
	case config.LLMOpenRouter:
		llm = service.NewOpenRouterLLM(cfg.OpenRouterAPIKey, cfg.CompletionModel, cfg.OpenRouterBaseURL)
	case config.LLMVertex:
		vl, err := service.NewVertexLLM(context.Background(), cfg.ProjectID, cfg.Location, cfg.VertexModel)
		if err != nil {
			log.Fatalf("Failed to initialize Vertex AI LLM: %v", err)
		}
		defer vl.Close()
		llm = vl
	}

	chatSvc := service.NewChatService(embedder, reviews, llm)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	// Add middleware
	app.Use(middleware.Logging())

	// Register routes
	handler.RegisterRoutes(app, chatSvc)
	handler.NewHealthHandler(mongoClient, cfg.EmbedderBackend, cfg.VectorBackend, cfg.LLMBackend).Register(app)

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
