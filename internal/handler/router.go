package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/starprofs/server/internal/service"
)

// RegisterRoutes mounts all API endpoints on the app.
func RegisterRoutes(app *fiber.App, chatSvc service.ChatService) {
	api := app.Group("/api")
	NewChatHandler(chatSvc).Register(api)
}
