package tools

import (
	"context"
	"fmt"

	"github.com/sentinai/sentinai/internal/domain"
	"github.com/sentinai/sentinai/internal/observability"
)

const documentAnswerPrompt = "Answer the question using only the document text below.\n" +
	"If the document does not contain the answer, say so.\n\n" +
	"Document:\n%s\n\nQuestion: %s"

// DocumentTool extracts the text of a document and answers a question
// about it with the LLM.
type DocumentTool struct {
	reader domain.DocumentReader
	llm    domain.LLMClient
}

func NewDocumentTool(reader domain.DocumentReader, llm domain.LLMClient) *DocumentTool {
	return &DocumentTool{reader: reader, llm: llm}
}

func (t *DocumentTool) Name() string {
	return "query_document"
}

func (t *DocumentTool) Description() string {
	return "Extract information from a document (PDF or image) by asking questions. " +
		"Use this when given a document file path and a question about its contents."
}

// Call expects input {"file_path": string, "query": string} and returns
// {"answer", "summary"}.
func (t *DocumentTool) Call(ctx context.Context, tctx ToolContext, input map[string]any) (map[string]any, error) {
	log := observability.LoggerFromContext(ctx).With("tool", t.Name())

	path, _ := input["file_path"].(string)
	if path == "" {
		return nil, fmt.Errorf("file_path is required")
	}
	query, _ := input["query"].(string)
	if query == "" {
		query = "What is this document about?"
	}

	text, err := t.reader.ExtractText(ctx, path)
	if err != nil {
		log.Errorw("document extraction failed", "error", err)
		return nil, fmt.Errorf("extract %s: %w", path, err)
	}

	answer, err := t.llm.GenerateReply(ctx,
		fmt.Sprintf(documentAnswerPrompt, text, query),
		domain.ConversationContext{ConversationID: domain.ConversationID(tctx.ConversationID)},
	)
	if err != nil {
		return nil, fmt.Errorf("answer document query: %w", err)
	}

	log.Infow("document query answered")

	return map[string]any{
		"answer":  answer,
		"summary": fmt.Sprintf("Answer: %s", answer),
	}, nil
}
