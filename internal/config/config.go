package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Access    AccessFileConfig
	Ingestion IngestionConfig
	Ai        AIConfig
	Keys      APIKeys
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	RedisURL           string
	JWTSecret          string
	JWTTTLMinutes      int
}

type DatabaseConfig struct {
	Connection string
}

type AccessFileConfig struct {
	Path string
}

type IngestionConfig struct {
	DataDir      string
	ChunkSize    int
	ChunkOverlap int
	IngestTopic  string
}

type AIConfig struct {
	EmbeddingProvider string // "gemini", "ollama" or "openai"
	OllamaBaseURL     string
	OllamaModel       string
	LLMProvider       string // "ollama", "openai"
	LLMModel          string
	TopK              int
	ScoreThreshold    float64
}

type APIKeys struct {
	GoogleGemini string
	OpenAI       string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:8501"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			JWTSecret:          getEnv("JWT_SECRET", ""),
			JWTTTLMinutes:      getEnvAsInt("JWT_TTL_MINUTES", 60),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Access: AccessFileConfig{
			Path: getEnv("ACCESS_CONFIG_PATH", "config/access.toml"),
		},
		Ingestion: IngestionConfig{
			DataDir:      getEnv("DATA_DIR", "data"),
			ChunkSize:    getEnvAsInt("CHUNK_SIZE", 500),
			ChunkOverlap: getEnvAsInt("CHUNK_OVERLAP", 100),
			IngestTopic:  getEnv("INGEST_PARTITION_TOPIC_NAME", "INGEST_PARTITION"),
		},
		Ai: AIConfig{
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "gemini"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:       getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			LLMProvider:       getEnv("LLM_PROVIDER", "openai"),
			LLMModel:          getEnv("LLM_MODEL", "gpt-4"),
			TopK:              getEnvAsInt("RETRIEVAL_TOP_K", 4),
			ScoreThreshold:    getEnvAsFloat("RETRIEVAL_SCORE_THRESHOLD", 0.0),
		},
		Keys: APIKeys{
			GoogleGemini: getEnv("GOOGLE_GEMINI_API_KEY", ""),
			OpenAI:       getEnv("OPENAI_API_KEY", ""),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}
