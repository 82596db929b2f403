// Package httpapi exposes the draft workflow over HTTP so thin clients
// never hold the provider credential.
package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/felixgeelhaar/hashdraft/pkg/domain/ai"
	"github.com/felixgeelhaar/hashdraft/pkg/domain/draft"
)

// Drafter is the part of the draft service the HTTP surface needs.
type Drafter interface {
	Draft(ctx context.Context, prompt string) draft.Result
	ProviderID() string
}

type Server struct {
	app     *fiber.App
	drafter Drafter
	logger  *slog.Logger
	timeout time.Duration
}

type DraftRequest struct {
	Prompt string `json:"prompt"`
}

type DraftResponse struct {
	ID        string `json:"id"`
	Text      string `json:"text,omitempty"`
	Kind      string `json:"kind,omitempty"`
	Error     string `json:"error,omitempty"`
	LatencyMs int64  `json:"latency_ms"`
}

// NewServer builds the fiber app. timeout bounds each draft request; zero
// leaves it to the provider.
func NewServer(drafter Drafter, logger *slog.Logger, timeout time.Duration) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		app: fiber.New(fiber.Config{
			AppName:               "hashdraft",
			DisableStartupMessage: true,
			BodyLimit:             64 * 1024,
		}),
		drafter: drafter,
		logger:  logger,
		timeout: timeout,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.app.Get("/healthz", s.handleHealth)
	s.app.Post("/v1/drafts", s.handleDraft)
}

// App returns the underlying fiber app, mainly for app.Test in tests.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Listen(addr string) error {
	s.logger.Info("http server listening", "addr", addr, "provider", s.drafter.ProviderID())
	return s.app.Listen(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok", "provider": s.drafter.ProviderID()})
}

func (s *Server) handleDraft(c *fiber.Ctx) error {
	var req DraftRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(DraftResponse{
			Kind:  "invalid_request",
			Error: "body must be JSON with a prompt field",
		})
	}

	ctx := c.UserContext()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	res := s.drafter.Draft(ctx, req.Prompt)
	resp := DraftResponse{ID: res.ID, LatencyMs: res.Latency.Milliseconds()}
	if res.OK() {
		resp.Text = strings.TrimSpace(res.Text)
		return c.JSON(resp)
	}

	resp.Kind = string(res.Kind())
	resp.Error = publicMessage(res.Err)
	return c.Status(statusFor(res.Err)).JSON(resp)
}

// statusFor maps a failure kind to the HTTP status seen by clients.
func statusFor(err error) int {
	switch ai.KindOf(err) {
	case ai.KindMissingCredential:
		return fiber.StatusServiceUnavailable
	case ai.KindTransportFailure:
		if errors.Is(err, context.DeadlineExceeded) {
			return fiber.StatusGatewayTimeout
		}
		return fiber.StatusBadGateway
	default:
		return fiber.StatusBadGateway
	}
}

// publicMessage hides provider internals from clients.
func publicMessage(err error) string {
	switch ai.KindOf(err) {
	case ai.KindMissingCredential:
		return "drafting is disabled: no API credential configured"
	case ai.KindTransportFailure:
		return "could not reach the completion service"
	case ai.KindProviderRejected:
		return "the completion service rejected the request"
	default:
		return "the completion service returned an unusable response"
	}
}
