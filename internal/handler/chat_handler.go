package handler

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"

	"github.com/starprofs/server/internal/models"
	"github.com/starprofs/server/internal/service"
)

// ChatHandler wires HTTP → ChatService.
type ChatHandler struct {
	svc service.ChatService
}

// NewChatHandler returns a struct pointer so you can call Register on it.
func NewChatHandler(svc service.ChatService) *ChatHandler {
	return &ChatHandler{svc: svc}
}

// Register mounts the /chat endpoint on the supplied router group.
func (h *ChatHandler) Register(r fiber.Router) {
	r.Post("/chat", h.chat)
}

// chat handles POST /api/chat. The body is a JSON array of {role, content}
// objects — the full transcript, newest user message last. The reply is
// streamed as plain text, one completion delta at a time.
func (h *ChatHandler) chat(c *fiber.Ctx) error {
	var transcript []models.ChatMessage
	if err := json.Unmarshal(c.Body(), &transcript); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "body must be a JSON array of chat messages")
	}
	if len(transcript) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "transcript is empty")
	}
	for i, m := range transcript {
		if !m.Valid() {
			return fiber.NewError(fiber.StatusBadRequest,
				fmt.Sprintf("message %d is missing role or content", i))
		}
	}

	// The stream writer below outlives this handler, so the pipeline runs
	// on its own context rather than the (recycled) fiber one.
	ctx, cancel := context.WithCancel(context.Background())

	stream, err := h.svc.Answer(ctx, transcript)
	if err != nil {
		cancel()
		// Provider detail stays in the server log; the client gets a
		// fixed body.
		log.Printf("chat request failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).SendString("Internal Server Error")
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer cancel()
		for chunk := range stream {
			if chunk.Err != nil {
				// Bytes are already committed; the reply just ends
				// here with no error marker.
				log.Printf("completion stream aborted: %v", chunk.Err)
				return
			}
			if _, err := w.WriteString(chunk.Content); err != nil {
				return // client went away
			}
			if err := w.Flush(); err != nil {
				return
			}
		}
	}))
	return nil
}
