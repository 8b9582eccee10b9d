package llm

import (
	"context"
	"fmt"

	"github.com/sentinai/sentinai/internal/domain"
)

// MockLLM is the local-mode stand-in for Gemini. It echoes enough of the
// prompt to make responses traceable in tests and demos.
type MockLLM struct{}

func NewMockLLM() *MockLLM {
	return &MockLLM{}
}

func (m *MockLLM) GenerateReply(ctx context.Context, prompt string, convCtx domain.ConversationContext) (string, error) {
	if len(prompt) > 120 {
		prompt = prompt[:120] + "..."
	}
	return fmt.Sprintf("[SentinAI] Processed: %s", prompt), nil
}
