package tools

import (
	"context"
	"fmt"

	"github.com/sentinai/sentinai/internal/adapters/classify"
	"github.com/sentinai/sentinai/internal/observability"
)

// ClassifyTool categorizes support tickets (Billing, Technical, Account).
type ClassifyTool struct {
	classifier *classify.Classifier
}

func NewClassifyTool(classifier *classify.Classifier) *ClassifyTool {
	return &ClassifyTool{classifier: classifier}
}

func (t *ClassifyTool) Name() string {
	return "classify_ticket"
}

func (t *ClassifyTool) Description() string {
	return "Classify a support ticket into categories: Billing, Technical, or Account. " +
		"Use this when given text that appears to be a customer support request."
}

// Call expects input {"text": string} and returns
// {"category", "probability", "score", "summary"}.
func (t *ClassifyTool) Call(ctx context.Context, tctx ToolContext, input map[string]any) (map[string]any, error) {
	log := observability.LoggerFromContext(ctx).With("tool", t.Name())

	text, _ := input["text"].(string)
	pred, err := t.classifier.Predict(text)
	if err != nil {
		return nil, err
	}

	log.Infow("ticket classified", "category", pred.Category, "probability", pred.Probability)

	return map[string]any{
		"category":    pred.Category,
		"probability": pred.Probability,
		"score":       pred.Score,
		"summary":     fmt.Sprintf("Category: %s (Probability: %.2f%%)", pred.Category, pred.Probability*100),
	}, nil
}

// TicketScore reports how ticket-like a text is, for routing.
func (t *ClassifyTool) TicketScore(text string) float64 {
	pred, err := t.classifier.Predict(text)
	if err != nil {
		return 0
	}
	return pred.Score
}
