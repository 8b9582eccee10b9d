package main

import (
	"context"

	"github.com/sentinai/sentinai/internal/adapters/classify"
	"github.com/sentinai/sentinai/internal/adapters/docai"
	httpadapter "github.com/sentinai/sentinai/internal/adapters/http"
	"github.com/sentinai/sentinai/internal/adapters/llm"
	"github.com/sentinai/sentinai/internal/adapters/speech"
	firestorestore "github.com/sentinai/sentinai/internal/adapters/storage/firestore"
	memstore "github.com/sentinai/sentinai/internal/adapters/storage/memory"
	"github.com/sentinai/sentinai/internal/adapters/storage/redisstore"
	"github.com/sentinai/sentinai/internal/app/agentflow"
	"github.com/sentinai/sentinai/internal/app/chat"
	"github.com/sentinai/sentinai/internal/app/tools"
	"github.com/sentinai/sentinai/internal/config"
	"github.com/sentinai/sentinai/internal/domain"
	"github.com/sentinai/sentinai/internal/observability"
)

func main() {
	ctx := context.Background()
	cfg := config.Load()
	log := observability.Logger()
	defer observability.Sync()

	// LLM: mock or Gemini by config (useful for dev)
	var (
		llmClient domain.LLMClient
		err       error
	)
	if cfg.UseMockLLM {
		log.Infow("using mock LLM client")
		llmClient = llm.NewMockLLM()
	} else {
		log.Infow("using Gemini LLM client", "model", cfg.ModelName)
		llmClient, err = llm.NewGeminiClient(ctx, llm.GeminiConfig{
			APIKey:    cfg.GoogleAPIKey,
			ProjectID: cfg.GCPProjectID,
			Location:  cfg.GCPLocation,
			ModelName: cfg.ModelName,
		})
		if err != nil {
			log.Fatalw("error initializing Gemini client", "error", err)
		}
	}

	// Processors: mock or GCP-backed by config
	var transcriber domain.Transcriber
	var reader domain.DocumentReader
	if cfg.UseMockTools {
		log.Infow("using mock transcriber and document reader")
		transcriber = speech.NewMockTranscriber()
		reader = docai.NewMockReader()
	} else {
		transcriber, err = speech.NewGoogleTranscriber(ctx, cfg.SpeechLanguage)
		if err != nil {
			log.Fatalw("error initializing transcriber", "error", err)
		}
		reader, err = docai.NewGoogleReader(ctx, cfg.GCPProjectID, cfg.DocAILocation, cfg.DocAIProcessorID)
		if err != nil {
			log.Fatalw("error initializing document reader", "error", err)
		}
	}

	// Storage: memory, Redis or Firestore
	var store domain.ConversationStore
	switch cfg.StorageBackend {
	case "firestore":
		log.Infow("using Firestore storage", "project", cfg.GCPProjectID)
		store, err = firestorestore.NewStore(ctx, cfg.GCPProjectID)
		if err != nil {
			log.Fatalw("error initializing Firestore store", "error", err)
		}
	case "redis":
		log.Infow("using Redis storage", "addr", cfg.RedisAddr)
		store, err = redisstore.NewStore(cfg.RedisAddr)
		if err != nil {
			log.Fatalw("error initializing Redis store", "error", err)
		}
	default:
		log.Infow("using in-memory storage")
		store = memstore.NewConversationStore()
	}

	orch := agentflow.NewOrchestrator(
		llmClient,
		tools.NewTranscribeTool(transcriber),
		tools.NewDocumentTool(reader, llmClient),
		tools.NewClassifyTool(classify.NewDefaultClassifier()),
	)

	chatSvc := chat.NewService(store, orch)
	router := httpadapter.NewServer(chatSvc, orch, cfg.DataDir)

	addr := ":" + cfg.Port
	log.Infow("SentinAI API listening", "addr", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalw("server failed", "error", err)
	}
}
