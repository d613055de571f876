// Package server exposes the assistant over HTTP. The transport is thin
// glue: one chat endpoint that submits a question plus session id and
// returns the answer, the retrieval context and the grounding accuracy.
package server

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	mailgraph "github.com/mailgraph/mailgraph"
	"github.com/mailgraph/mailgraph/logging"
)

// Options configure the HTTP server.
type Options struct {
	// CorsAllowedOrigins is passed to the CORS middleware.
	CorsAllowedOrigins string
	// Logger defaults to NoOpLogger.
	Logger logging.Logger
}

// ChatRequest is the inbound payload for the chat endpoint.
type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

// ChatResponse is the outbound payload. EvaluationError is set when answer
// generation succeeded but the scoring stage failed; Accuracy is zero in
// that case.
type ChatResponse struct {
	Reply            string  `json:"reply"`
	RetrievalContext string  `json:"retrieval_context"`
	Accuracy         float64 `json:"accuracy"`
	EvaluationError  string  `json:"evaluation_error,omitempty"`
}

// Server hosts the chat endpoint over Fiber.
type Server struct {
	app       *fiber.App
	assistant *mailgraph.Assistant
	opts      Options
}

// New builds the Fiber app and registers routes.
func New(assistant *mailgraph.Assistant, optFns ...func(o *Options)) *Server {
	opts := Options{
		CorsAllowedOrigins: "*",
		Logger:             logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	app := fiber.New()
	app.Use(cors.New(cors.Config{
		AllowOrigins: opts.CorsAllowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, OPTIONS",
	}))

	s := &Server{app: app, assistant: assistant, opts: opts}
	api := app.Group("/api")
	api.Post("/chat", s.handleChat)
	return s
}

// App exposes the underlying Fiber app, mainly for tests.
func (s *Server) App() *fiber.App { return s.app }

// Listen blocks serving HTTP on the given port.
func (s *Server) Listen(port string) error {
	return s.app.Listen(":" + port)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error { return s.app.Shutdown() }

func (s *Server) handleChat(c *fiber.Ctx) error {
	var req ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.Message == "" {
		return fiber.NewError(fiber.StatusBadRequest, "message is required")
	}

	result, err := s.assistant.Ask(c.Context(), req.Message, req.SessionID)
	if err != nil {
		// Evaluation failures still carry a usable answer; everything
		// else is a failed request.
		if result == nil {
			s.opts.Logger.Error("chat request failed", "error", err)
			return fiber.NewError(fiber.StatusBadGateway, "answer generation failed")
		}
		s.opts.Logger.Warn("answer produced but evaluation failed", "error", err)
		return c.JSON(ChatResponse{
			Reply:            result.Answer,
			RetrievalContext: result.Context,
			EvaluationError:  evaluationMessage(err),
		})
	}

	return c.JSON(ChatResponse{
		Reply:            result.Answer,
		RetrievalContext: result.Context,
		Accuracy:         result.Accuracy,
	})
}

func evaluationMessage(err error) string {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Message
	}
	return err.Error()
}
