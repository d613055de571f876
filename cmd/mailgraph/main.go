// Command mailgraph runs the email assistant HTTP server.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	anthropicsdk "github.com/anthropics/anthropic-sdk-go"
	mailgraph "github.com/mailgraph/mailgraph"
	"github.com/mailgraph/mailgraph/config"
	"github.com/mailgraph/mailgraph/graph"
	"github.com/mailgraph/mailgraph/logging"
	"github.com/mailgraph/mailgraph/model"
	"github.com/mailgraph/mailgraph/model/anthropic"
	"github.com/mailgraph/mailgraph/model/openai"
	"github.com/mailgraph/mailgraph/server"
	"github.com/mailgraph/mailgraph/session"
)

func main() {
	cfg := config.Load()
	logger := logging.NewJSONLogger(os.Stdout, slogLevel(cfg.App.LogLevel))

	store, err := graph.NewStore(cfg.Neo4j.URI, cfg.Neo4j.Username, cfg.Neo4j.Password, func(o *graph.Options) {
		o.Database = cfg.Neo4j.Database
		o.Logger = logger
	})
	if err != nil {
		log.Fatalf("graph store: %v", err)
	}
	defer store.Close(context.Background())

	chatModel, embedder := buildModels(cfg)

	assistant, err := mailgraph.New(chatModel, embedder, store, func(o *mailgraph.Options) {
		o.Sessions = session.NewNeo4jStore(store)
		o.Logger = logger
	})
	if err != nil {
		log.Fatalf("assistant: %v", err)
	}

	srv := server.New(assistant, func(o *server.Options) {
		o.CorsAllowedOrigins = cfg.App.CorsAllowedOrigins
		o.Logger = logger
	})

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		logger.Info("shutting down")
		_ = srv.Shutdown()
	}()

	logger.Info("server starting", "port", cfg.App.Port, "provider", chatModel.Info().Provider, "model", chatModel.Info().Name)
	if err := srv.Listen(cfg.App.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}

// buildModels selects the chat provider. Embeddings always come from OpenAI;
// the pre-built index was populated with its vectors.
func buildModels(cfg *config.Config) (model.Model, model.Embedder) {
	embeddings := openai.NewModel(func(o *openai.Options) {
		if cfg.LLM.EmbeddingModel != "" {
			o.EmbeddingModel = cfg.LLM.EmbeddingModel
		}
	})

	switch strings.ToLower(cfg.LLM.Provider) {
	case "anthropic":
		chat := anthropic.NewModel(func(o *anthropic.Options) {
			if cfg.LLM.Model != "" {
				o.Model = anthropicsdk.Model(cfg.LLM.Model)
			}
		})
		return chat, embeddings
	default:
		chat := openai.NewModel(func(o *openai.Options) {
			if cfg.LLM.Model != "" {
				o.Model = cfg.LLM.Model
			}
		})
		return chat, embeddings
	}
}

func slogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
