package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/sentinai/sentinai/internal/domain"
)

type GeminiClient struct {
	client    *genai.Client
	modelName string
}

// GeminiConfig selects the backend: a plain Gemini API key, or Vertex AI
// when Project/Location are set instead.
type GeminiConfig struct {
	APIKey    string
	ProjectID string
	Location  string
	ModelName string
}

// NewGeminiClient creates an LLMClient backed by Gemini.
func NewGeminiClient(ctx context.Context, cfg GeminiConfig) (*GeminiClient, error) {
	modelName := cfg.ModelName
	if modelName == "" {
		modelName = "gemini-1.5-pro"
	}

	var clientCfg *genai.ClientConfig
	switch {
	case cfg.APIKey != "":
		clientCfg = &genai.ClientConfig{
			APIKey:  cfg.APIKey,
			Backend: genai.BackendGeminiAPI,
		}
	case cfg.ProjectID != "" && cfg.Location != "":
		clientCfg = &genai.ClientConfig{
			Project:  cfg.ProjectID,
			Location: cfg.Location,
			Backend:  genai.BackendVertexAI,
		}
	default:
		return nil, fmt.Errorf("either an API key or project and location must be set")
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("creating Gemini client: %w", err)
	}

	return &GeminiClient{
		client:    client,
		modelName: modelName,
	}, nil
}

// GenerateReply implements domain.LLMClient using Gemini.
func (g *GeminiClient) GenerateReply(
	ctx context.Context,
	userMessage string,
	convCtx domain.ConversationContext,
) (string, error) {
	// 1) History (user / assistant) as conversation
	var contents []*genai.Content
	for _, m := range convCtx.History {
		var role genai.Role
		switch m.Role {
		case domain.RoleAssistant:
			role = genai.RoleModel
		default:
			role = genai.RoleUser
		}

		contents = append(contents, genai.NewContentFromText(m.Content, role))
	}

	// 2) Current user message
	contents = append(contents, genai.NewContentFromText(userMessage, genai.RoleUser))

	// 3) Model config
	temp := float32(0.1)
	outputTokens := int32(8192)

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
		Temperature:       &temp,
		MaxOutputTokens:   outputTokens,
	}

	res, err := g.client.Models.GenerateContent(ctx, g.modelName, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}

	text := res.Text()
	if text == "" {
		return "", fmt.Errorf("gemini returned empty text")
	}

	return text, nil
}
