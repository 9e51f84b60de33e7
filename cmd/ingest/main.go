package main

import (
	"context"
	"errors"
	"flag"
	"log"

	"rbac-chatbot-be/internal/config"
	"rbac-chatbot-be/internal/pkg/logger"
	"rbac-chatbot-be/internal/repository/unitofwork"
	"rbac-chatbot-be/internal/service"
	"rbac-chatbot-be/pkg/database"
	"rbac-chatbot-be/pkg/embedding"

	"github.com/fatih/color"
)

// Offline batch indexer. Reads <DATA_DIR>/<partition>/ for every declared
// partition (or just the one named with -partition) and rebuilds its index.
func main() {
	partitionFlag := flag.String("partition", "", "ingest a single partition instead of all")
	flag.Parse()

	cfg := config.Load()

	accessCfg, err := config.LoadAccessConfig(cfg.Access.Path)
	if err != nil {
		log.Fatalf("Invalid access config: %v", err)
	}

	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatalf("Unable to connect to GORM DB: %v", err)
	}
	if err := database.Migrate(gormDB); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	var embeddingProvider embedding.EmbeddingProvider
	switch cfg.Ai.EmbeddingProvider {
	case "ollama":
		embeddingProvider = embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaModel)
	case "openai":
		embeddingProvider = embedding.NewOpenAIProvider(cfg.Keys.OpenAI)
	default:
		embeddingProvider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
	}

	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	defer sysLogger.Sync()

	ingestion := service.NewIngestionService(
		unitofwork.NewRepositoryFactory(gormDB),
		embeddingProvider,
		accessCfg.Policy(),
		cfg.Ingestion,
		sysLogger,
	)

	ctx := context.Background()

	var reports []*service.IngestReport
	if *partitionFlag != "" {
		report, err := ingestion.IngestPartition(ctx, *partitionFlag)
		if err != nil && !errors.Is(err, service.ErrSourceDirMissing) {
			color.Red("✗ %s: %v", *partitionFlag, err)
			log.Fatal(err)
		}
		reports = append(reports, report)
	} else {
		reports, err = ingestion.IngestAll(ctx)
		if err != nil {
			color.Red("✗ ingestion aborted: %v", err)
			log.Fatal(err)
		}
	}

	for _, report := range reports {
		if report.Skipped {
			color.Yellow("– %s: skipped (no source directory)", report.Partition)
			continue
		}
		color.Green("✓ %s: %d documents, %d chunks", report.Partition, report.Documents, report.ChunkCount)
	}
}
