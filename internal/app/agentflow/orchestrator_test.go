package agentflow_test

import (
	"context"
	"strings"
	"testing"

	"github.com/sentinai/sentinai/internal/adapters/classify"
	"github.com/sentinai/sentinai/internal/adapters/docai"
	"github.com/sentinai/sentinai/internal/adapters/llm"
	"github.com/sentinai/sentinai/internal/adapters/speech"
	"github.com/sentinai/sentinai/internal/app/agentflow"
	"github.com/sentinai/sentinai/internal/app/tools"
	"github.com/sentinai/sentinai/internal/domain"
)

func newTestOrchestrator() *agentflow.Orchestrator {
	llmClient := llm.NewMockLLM()
	return agentflow.NewOrchestrator(
		llmClient,
		tools.NewTranscribeTool(speech.NewMockTranscriber()),
		tools.NewDocumentTool(docai.NewMockReader(), llmClient),
		tools.NewClassifyTool(classify.NewDefaultClassifier()),
	)
}

func TestRunTextPlain(t *testing.T) {
	orch := newTestOrchestrator()

	res, err := orch.Run(context.Background(), agentflow.Input{
		Kind:  agentflow.KindText,
		Query: "Hello there, nice weather today",
	}, domain.ConversationContext{ConversationID: "c1"})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if res.Response == "" {
		t.Fatalf("expected a reply")
	}
	if res.IntermediateSteps != "" {
		t.Fatalf("expected no operations for small talk, got %q", res.IntermediateSteps)
	}
	if !orch.Initialized() {
		t.Fatalf("expected lazy initialization on first run")
	}
}

func TestRunTextRoutesTicketThroughClassifier(t *testing.T) {
	orch := newTestOrchestrator()

	res, err := orch.Run(context.Background(), agentflow.Input{
		Kind:  agentflow.KindText,
		Query: "I was charged twice for my subscription",
	}, domain.ConversationContext{ConversationID: "c1"})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if !strings.Contains(res.IntermediateSteps, "classify_ticket") {
		t.Fatalf("expected classify_ticket in the trace, got %q", res.IntermediateSteps)
	}
	if !strings.Contains(res.IntermediateSteps, "Billing") {
		t.Fatalf("expected a Billing classification, got %q", res.IntermediateSteps)
	}
}

func TestRunAudio(t *testing.T) {
	orch := newTestOrchestrator()

	res, err := orch.Run(context.Background(), agentflow.Input{
		Kind:     agentflow.KindAudio,
		Query:    "What did they say?",
		FilePath: "/tmp/uploads/abc.mp3",
		FileName: "voicemail.mp3",
	}, domain.ConversationContext{ConversationID: "c1"})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if !strings.Contains(res.IntermediateSteps, "transcribe_audio(voicemail.mp3)") {
		t.Fatalf("expected a transcription entry, got %q", res.IntermediateSteps)
	}
	if res.Response == "" {
		t.Fatalf("expected a composed reply")
	}
}

func TestRunDocument(t *testing.T) {
	orch := newTestOrchestrator()

	res, err := orch.Run(context.Background(), agentflow.Input{
		Kind:     agentflow.KindDocument,
		Query:    "What is the total?",
		FilePath: "/tmp/uploads/def.pdf",
		FileName: "invoice.pdf",
	}, domain.ConversationContext{ConversationID: "c1"})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if !strings.Contains(res.IntermediateSteps, "query_document(invoice.pdf)") {
		t.Fatalf("expected a document entry, got %q", res.IntermediateSteps)
	}
	if res.Response == "" {
		t.Fatalf("expected the document answer as the reply")
	}
}

func TestRunEmptyInput(t *testing.T) {
	orch := newTestOrchestrator()

	if _, err := orch.Run(context.Background(), agentflow.Input{Kind: agentflow.KindText}, domain.ConversationContext{}); err == nil {
		t.Fatalf("expected an error for empty input")
	}
}

func TestInitializeRequiresLLM(t *testing.T) {
	orch := agentflow.NewOrchestrator(nil, nil, nil, nil)

	if err := orch.Initialize(context.Background()); err == nil {
		t.Fatalf("expected an error without an LLM client")
	}
	if orch.Initialized() {
		t.Fatalf("expected not initialized after failure")
	}
}
