// Package config loads process configuration from the environment (with an
// optional .env file) for the server binary. Library packages never read the
// environment; they are configured through functional options.
package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config carries everything the server binary needs to wire the pipeline.
type Config struct {
	App   AppConfig
	Neo4j Neo4jConfig
	LLM   LLMConfig
}

// AppConfig covers the HTTP surface.
type AppConfig struct {
	Port               string
	CorsAllowedOrigins string
	LogLevel           string
}

// Neo4jConfig covers the graph database connection.
type Neo4jConfig struct {
	URI      string
	Username string
	Password string
	Database string
}

// LLMConfig selects the chat model provider. API keys are read by the
// provider SDKs from their usual environment variables.
type LLMConfig struct {
	Provider       string // "openai" or "anthropic"
	Model          string
	EmbeddingModel string
}

// Load reads configuration from the environment, loading .env first when
// present.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8000"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			LogLevel:           getEnv("LOG_LEVEL", "info"),
		},
		Neo4j: Neo4jConfig{
			URI:      getEnv("NEO4J_URI", "neo4j://localhost:7687"),
			Username: getEnv("NEO4J_USERNAME", "neo4j"),
			Password: getEnv("NEO4J_PASSWORD", ""),
			Database: getEnv("NEO4J_DATABASE", ""),
		},
		LLM: LLMConfig{
			Provider:       getEnv("LLM_PROVIDER", "openai"),
			Model:          getEnv("LLM_MODEL", ""),
			EmbeddingModel: getEnv("EMBEDDING_MODEL", ""),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
