package agentflow

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/sentinai/sentinai/internal/app/tools"
	"github.com/sentinai/sentinai/internal/domain"
	"github.com/sentinai/sentinai/internal/observability"
)

// ticketScoreThreshold is the minimum classifier similarity for a text
// query to be routed through classify_ticket.
const ticketScoreThreshold = 0.2

type InputKind string

const (
	KindText     InputKind = "text"
	KindAudio    InputKind = "audio"
	KindDocument InputKind = "document"
)

// Input is one unit of work for the orchestrator: a plain text query, or a
// spooled upload plus the query.
type Input struct {
	Kind     InputKind
	Query    string
	FilePath string
	FileName string
}

// Result carries the composed reply plus the operation trace consumed by
// clients for their step timeline.
type Result struct {
	Response          string
	IntermediateSteps string
}

// Orchestrator routes inputs to the processor tools and composes the final
// reply with the LLM. Routing is deterministic (by input kind and ticket
// score) and the trace lists the operations that actually ran.
type Orchestrator struct {
	llm        domain.LLMClient
	transcribe *tools.TranscribeTool
	document   *tools.DocumentTool
	classify   *tools.ClassifyTool

	mu          sync.Mutex
	initialized bool
}

func NewOrchestrator(
	llm domain.LLMClient,
	transcribe *tools.TranscribeTool,
	document *tools.DocumentTool,
	classify *tools.ClassifyTool,
) *Orchestrator {
	return &Orchestrator{
		llm:        llm,
		transcribe: transcribe,
		document:   document,
		classify:   classify,
	}
}

// Initialize marks the orchestrator ready. It exists so callers can
// pre-warm the agent and so /status can report not_initialized before the
// first request.
func (o *Orchestrator) Initialize(ctx context.Context) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.initialized {
		return nil
	}
	if o.llm == nil {
		return fmt.Errorf("no LLM client configured")
	}

	o.initialized = true
	observability.LoggerFromContext(ctx).Infow("orchestrator initialized")
	return nil
}

func (o *Orchestrator) Initialized() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.initialized
}

// Tools lists the registered tools, for the status endpoint.
func (o *Orchestrator) Tools() []tools.Tool {
	return []tools.Tool{o.transcribe, o.document, o.classify}
}

// Run executes the workflow for one input. Lazy-initializes on first use.
func (o *Orchestrator) Run(ctx context.Context, in Input, convCtx domain.ConversationContext) (*Result, error) {
	if err := o.Initialize(ctx); err != nil {
		return nil, err
	}

	if strings.TrimSpace(in.Query) == "" && in.FilePath == "" {
		return nil, fmt.Errorf("input data cannot be empty")
	}

	log := observability.LoggerFromContext(ctx).With(
		"conversation_id", convCtx.ConversationID,
		"kind", in.Kind,
	)
	log.Infow("orchestrator run start")

	tctx := tools.ToolContext{ConversationID: string(convCtx.ConversationID)}

	var (
		reply string
		trace []string
		err   error
	)

	switch in.Kind {
	case KindAudio:
		reply, trace, err = o.runAudio(ctx, tctx, in, convCtx)
	case KindDocument:
		reply, trace, err = o.runDocument(ctx, tctx, in)
	default:
		reply, trace, err = o.runText(ctx, tctx, in, convCtx)
	}
	if err != nil {
		log.Errorw("orchestrator run failed", "error", err)
		return nil, err
	}

	log.Infow("orchestrator run end", "operations", len(trace))

	return &Result{
		Response:          reply,
		IntermediateSteps: strings.Join(trace, "; "),
	}, nil
}

func (o *Orchestrator) runAudio(ctx context.Context, tctx tools.ToolContext, in Input, convCtx domain.ConversationContext) (string, []string, error) {
	out, err := o.callTool(ctx, o.transcribe, tctx, map[string]any{"file_path": in.FilePath})
	if err != nil {
		return "", nil, err
	}
	trace := []string{traceEntry(o.transcribe.Name(), in.FileName, tools.Summary(out))}

	text, _ := out["text"].(string)
	prompt := fmt.Sprintf(
		"The user uploaded the audio file %q and it was transcribed as:\n%s\n\n"+
			"User request: %s\n"+
			"Respond helpfully based on the transcription.",
		in.FileName, text, in.Query,
	)
	reply, err := o.llm.GenerateReply(ctx, prompt, convCtx)
	if err != nil {
		return "", nil, fmt.Errorf("compose audio reply: %w", err)
	}
	return reply, trace, nil
}

func (o *Orchestrator) runDocument(ctx context.Context, tctx tools.ToolContext, in Input) (string, []string, error) {
	out, err := o.callTool(ctx, o.document, tctx, map[string]any{
		"file_path": in.FilePath,
		"query":     in.Query,
	})
	if err != nil {
		return "", nil, err
	}
	trace := []string{traceEntry(o.document.Name(), in.FileName, tools.Summary(out))}

	// The document tool already composes its answer with the LLM.
	answer, _ := out["answer"].(string)
	return answer, trace, nil
}

func (o *Orchestrator) runText(ctx context.Context, tctx tools.ToolContext, in Input, convCtx domain.ConversationContext) (string, []string, error) {
	var trace []string
	prompt := in.Query

	if o.classify != nil && o.classify.TicketScore(in.Query) >= ticketScoreThreshold {
		out, err := o.callTool(ctx, o.classify, tctx, map[string]any{"text": in.Query})
		if err != nil {
			return "", nil, err
		}
		trace = append(trace, traceEntry(o.classify.Name(), "", tools.Summary(out)))

		category, _ := out["category"].(string)
		prompt = fmt.Sprintf(
			"The user's message was classified as a %s support ticket.\n"+
				"User message: %s\n"+
				"Acknowledge the category and respond helpfully.",
			category, in.Query,
		)
	}

	reply, err := o.llm.GenerateReply(ctx, prompt, convCtx)
	if err != nil {
		return "", nil, fmt.Errorf("generate reply: %w", err)
	}
	return reply, trace, nil
}

func (o *Orchestrator) callTool(ctx context.Context, t tools.Tool, tctx tools.ToolContext, input map[string]any) (map[string]any, error) {
	log := observability.LoggerFromContext(ctx)

	start := time.Now()
	log.Infow("tool run start", "tool", t.Name())

	out, err := t.Call(ctx, tctx, input)
	if err != nil {
		log.Errorw("tool failed", "tool", t.Name(), "error", err)
		return nil, fmt.Errorf("tool %s failed: %w", t.Name(), err)
	}

	log.Infow("tool run end", "tool", t.Name(), "elapsed_ms", time.Since(start).Milliseconds())
	return out, nil
}

// traceEntry formats one operation for the intermediate_steps string, e.g.
// "transcribe_audio(call.mp3) -> Transcription: ...". Clients match on the
// operation name by substring.
func traceEntry(name, file, summary string) string {
	if len(summary) > 80 {
		summary = summary[:77] + "..."
	}
	if file != "" {
		return fmt.Sprintf("%s(%s) -> %s", name, filepath.Base(file), summary)
	}
	return fmt.Sprintf("%s -> %s", name, summary)
}
