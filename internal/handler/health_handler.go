package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/mongo"
)

// HealthHandler reports process liveness and which provider backends the
// server was wired with.
type HealthHandler struct {
	mongoClient *mongo.Client // nil unless the mongo vector backend is active
	embedder    string
	vector      string
	llm         string
}

func NewHealthHandler(mongoClient *mongo.Client, embedder, vector, llm string) *HealthHandler {
	return &HealthHandler{
		mongoClient: mongoClient,
		embedder:    embedder,
		vector:      vector,
		llm:         llm,
	}
}

func (h *HealthHandler) Register(r fiber.Router) {
	r.Get("/health", h.health)
}

func (h *HealthHandler) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"backends": fiber.Map{
			"embedder":   h.embedder,
			"vector":     h.vector,
			"completion": h.llm,
		},
		"mongo": h.checkMongo(),
	})
}

func (h *HealthHandler) checkMongo() string {
	if h.mongoClient == nil {
		return "not_configured"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := h.mongoClient.Ping(ctx, nil); err != nil {
		return "error"
	}
	return "connected"
}
