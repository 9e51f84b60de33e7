package bootstrap

import (
	"context"
	"log"
	"os"
	"time"

	"rbac-chatbot-be/internal/config"
	"rbac-chatbot-be/internal/controller"
	"rbac-chatbot-be/internal/pkg/logger"
	"rbac-chatbot-be/internal/pkg/serverutils"
	"rbac-chatbot-be/internal/repository/unitofwork"
	"rbac-chatbot-be/internal/service"
	"rbac-chatbot-be/pkg/embedding"
	"rbac-chatbot-be/pkg/llm/factory"
	"rbac-chatbot-be/pkg/rag"
	"rbac-chatbot-be/pkg/session"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController  controller.IAuthController
	ChatController  controller.IChatController
	AdminController controller.IAdminController

	// Request authentication middleware
	AuthRequired fiber.Handler

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// Exposed for cmd/ingest
	IngestionService service.IIngestionService
}

func NewContainer(db *gorm.DB, cfg *config.Config, accessCfg *config.AccessConfig) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	policy := accessCfg.Policy()
	credentialStore := accessCfg.CredentialStore()

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI Providers
	embeddingProvider := newEmbeddingProvider(cfg)

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.OpenAI,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. Session Store (Redis with in-memory fallback)
	var sessionStore session.Store
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{Addr: cfg.App.RedisURL}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v. Session history falls back to memory", err)
		sessionStore = session.NewMemoryStore(30 * time.Minute)
	} else {
		sessionStore = session.NewRedisStore(rdb, 30*time.Minute)
	}

	// 5. Services
	retriever := rag.NewRetriever(
		embeddingProvider,
		rag.Config{TopK: cfg.Ai.TopK, ScoreThreshold: cfg.Ai.ScoreThreshold},
		log.New(os.Stdout, "[RAG] ", log.LstdFlags),
	)

	authService := service.NewAuthService(
		credentialStore,
		cfg.App.JWTSecret,
		time.Duration(cfg.App.JWTTTLMinutes)*time.Minute,
		sysLogger,
	)
	chatService := service.NewChatService(
		uowFactory,
		policy,
		retriever,
		llmProvider,
		sessionStore,
		sysLogger,
	)
	ingestionService := service.NewIngestionService(
		uowFactory,
		embeddingProvider,
		policy,
		cfg.Ingestion,
		sysLogger,
	)
	publisherService := service.NewPublisherService(cfg.Ingestion.IngestTopic, pubSub)
	consumerService := service.NewConsumerService(pubSub, cfg.Ingestion.IngestTopic, ingestionService)
	adminService := service.NewAdminService(uowFactory, publisherService, sysLogger)

	// 6. Controllers
	return &Container{
		AuthController:  controller.NewAuthController(authService),
		ChatController:  controller.NewChatController(chatService),
		AdminController: controller.NewAdminController(adminService, accessCfg),

		AuthRequired: serverutils.AuthMiddleware(credentialStore, cfg.App.JWTSecret),

		ConsumerService:  consumerService,
		IngestionService: ingestionService,
	}
}

func newEmbeddingProvider(cfg *config.Config) embedding.EmbeddingProvider {
	switch cfg.Ai.EmbeddingProvider {
	case "ollama":
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
		return embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaModel)
	case "openai":
		log.Printf("[INFO] Using Embedding Provider: OPENAI")
		return embedding.NewOpenAIProvider(cfg.Keys.OpenAI)
	default:
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
		return embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
	}
}
