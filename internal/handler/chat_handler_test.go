package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/starprofs/server/internal/models"
	"github.com/starprofs/server/internal/service"
)

// fakeChatService scripts the pipeline outcome for handler tests.
type fakeChatService struct {
	calls  int
	err    error
	chunks []service.Chunk
}

func (f *fakeChatService) Answer(ctx context.Context, _ []models.ChatMessage) (<-chan service.Chunk, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return service.NewScriptedStreamer(f.chunks...).StreamChat(ctx, nil)
}

func newTestApp(svc service.ChatService) *fiber.App {
	app := fiber.New()
	RegisterRoutes(app, svc)
	return app
}

func postChat(t *testing.T, app *fiber.App, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	return resp
}

func TestChat_StreamsReply(t *testing.T) {
	svc := &fakeChatService{chunks: []service.Chunk{
		{Content: "Dr. A "},
		{Content: "is a great fit."},
	}}
	app := newTestApp(svc)

	resp := postChat(t, app, `[{"role":"user","content":"Who teaches thermodynamics well?"}]`)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if string(body) != "Dr. A is a great fit." {
		t.Errorf("unexpected body %q", body)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("unexpected content type %q", ct)
	}
}

func TestChat_EmptyTranscript(t *testing.T) {
	svc := &fakeChatService{}
	app := newTestApp(svc)

	resp := postChat(t, app, `[]`)

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if svc.calls != 0 {
		t.Error("expected no pipeline call for an empty transcript")
	}
}

func TestChat_MalformedBody(t *testing.T) {
	svc := &fakeChatService{}
	app := newTestApp(svc)

	for _, body := range []string{`{"role":"user"}`, `not json`, `[{"content":"no role"}]`, `[{"role":"user"}]`, `[{"role":"wizard","content":"hi"}]`} {
		resp := postChat(t, app, body)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("body %q: expected 400, got %d", body, resp.StatusCode)
		}
	}
	if svc.calls != 0 {
		t.Error("expected no pipeline calls for malformed bodies")
	}
}

func TestChat_PreStreamFailure(t *testing.T) {
	svc := &fakeChatService{err: errors.New("embed query: quota exceeded")}
	app := newTestApp(svc)

	resp := postChat(t, app, `[{"role":"user","content":"hi"}]`)

	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if string(body) != "Internal Server Error" {
		t.Errorf("expected fixed error body, got %q", body)
	}
	if strings.Contains(string(body), "quota") {
		t.Error("provider detail leaked to the client")
	}
}

func TestChat_MidStreamFailureTruncates(t *testing.T) {
	svc := &fakeChatService{chunks: []service.Chunk{
		{Content: "The best "},
		{Content: "professor is "},
		{Err: errors.New("provider reset the connection")},
		{Content: "never sent"},
	}}
	app := newTestApp(svc)

	resp := postChat(t, app, `[{"role":"user","content":"hi"}]`)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 (bytes already committed), got %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if string(body) != "The best professor is " {
		t.Errorf("expected silent truncation after 2 chunks, got %q", body)
	}
}
