package chat_test

import (
	"context"
	"strings"
	"testing"

	"github.com/sentinai/sentinai/internal/adapters/classify"
	"github.com/sentinai/sentinai/internal/adapters/docai"
	"github.com/sentinai/sentinai/internal/adapters/llm"
	"github.com/sentinai/sentinai/internal/adapters/speech"
	memstore "github.com/sentinai/sentinai/internal/adapters/storage/memory"
	"github.com/sentinai/sentinai/internal/app/agentflow"
	"github.com/sentinai/sentinai/internal/app/chat"
	"github.com/sentinai/sentinai/internal/app/tools"
	"github.com/sentinai/sentinai/internal/domain"
)

func newTestService() (*chat.Service, *memstore.ConversationStore) {
	llmClient := llm.NewMockLLM()
	orch := agentflow.NewOrchestrator(
		llmClient,
		tools.NewTranscribeTool(speech.NewMockTranscriber()),
		tools.NewDocumentTool(docai.NewMockReader(), llmClient),
		tools.NewClassifyTool(classify.NewDefaultClassifier()),
	)

	store := memstore.NewConversationStore()
	return chat.NewService(store, orch), store
}

func TestProcessCreatesConversationAndRecordsMessages(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService()

	out, err := svc.Process(ctx, chat.ProcessInput{
		Kind:  agentflow.KindText,
		Query: "Hello SentinAI",
	})
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}

	if out.Response == "" {
		t.Fatalf("expected a reply")
	}
	if out.UserMessage == nil || out.UserMessage.Role != domain.RoleUser {
		t.Fatalf("expected a recorded user message, got %+v", out.UserMessage)
	}
	if out.AssistantMessage == nil || out.AssistantMessage.Role != domain.RoleAssistant {
		t.Fatalf("expected a recorded assistant message, got %+v", out.AssistantMessage)
	}

	// Empty conversation id falls back to the default one.
	conv, err := store.GetConversation(ctx, chat.DefaultConversationID)
	if err != nil {
		t.Fatalf("expected the default conversation to exist: %v", err)
	}
	if conv.Title != "Hello SentinAI" {
		t.Fatalf("expected the first query as title, got %q", conv.Title)
	}

	msgs, err := store.ListMessages(ctx, chat.DefaultConversationID, 0)
	if err != nil {
		t.Fatalf("ListMessages failed: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("expected 2 stored messages, got %d", len(msgs))
	}
}

func TestChatAccumulatesHistory(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService()

	convID := domain.ConversationID("c1")
	for _, msg := range []string{"first message", "second message"} {
		if _, err := svc.Chat(ctx, convID, msg); err != nil {
			t.Fatalf("Chat failed: %v", err)
		}
	}

	msgs, err := store.ListMessages(ctx, convID, 0)
	if err != nil {
		t.Fatalf("ListMessages failed: %v", err)
	}
	if len(msgs) != 4 {
		t.Fatalf("expected 4 stored messages, got %d", len(msgs))
	}
	if msgs[0].Role != domain.RoleUser || msgs[1].Role != domain.RoleAssistant {
		t.Fatalf("unexpected message order: %s, %s", msgs[0].Role, msgs[1].Role)
	}
}

func TestConversationTitleIsTruncated(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService()

	long := strings.Repeat("a", 100)
	if _, err := svc.Chat(ctx, "c2", long); err != nil {
		t.Fatalf("Chat failed: %v", err)
	}

	conv, err := store.GetConversation(ctx, "c2")
	if err != nil {
		t.Fatalf("GetConversation failed: %v", err)
	}
	if len(conv.Title) != 40 {
		t.Fatalf("expected a 40-char title, got %d chars", len(conv.Title))
	}
}
