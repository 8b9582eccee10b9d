package console_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sentinai/sentinai/internal/app/console"
	"github.com/sentinai/sentinai/internal/domain"
)

// fakeGateway records every request and replies with whatever fn returns.
type fakeGateway struct {
	requests []domain.ProcessRequest
	fn       func(req domain.ProcessRequest) (*domain.ProcessResult, error)
}

func (g *fakeGateway) Process(ctx context.Context, req domain.ProcessRequest) (*domain.ProcessResult, error) {
	g.requests = append(g.requests, req)
	return g.fn(req)
}

func successGateway(response, steps string) *fakeGateway {
	return &fakeGateway{fn: func(domain.ProcessRequest) (*domain.ProcessResult, error) {
		return &domain.ProcessResult{
			Status:            "success",
			Response:          response,
			IntermediateSteps: steps,
		}, nil
	}}
}

func failingGateway() *fakeGateway {
	return &fakeGateway{fn: func(domain.ProcessRequest) (*domain.ProcessResult, error) {
		return nil, errors.New("backend down")
	}}
}

func TestSubmitTextSuccess(t *testing.T) {
	ctx := context.Background()
	gw := successGateway("Your ticket was categorized.", "classify_ticket -> Category: Billing (Probability: 92.00%)")
	ctrl := console.NewController(gw)

	ctrl.SubmitText(ctx, "I was charged twice")

	snap := ctrl.Snapshot()
	if snap.Status != domain.StatusReady {
		t.Fatalf("expected ready, got %s", snap.Status)
	}
	if snap.Processing {
		t.Fatalf("expected processing cleared after completion")
	}

	if len(snap.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(snap.Messages))
	}
	if snap.Messages[0].Role != domain.RoleUser || snap.Messages[0].Content != "I was charged twice" {
		t.Fatalf("unexpected user message: %+v", snap.Messages[0])
	}
	if snap.Messages[1].Role != domain.RoleAssistant || snap.Messages[1].Content != "Your ticket was categorized." {
		t.Fatalf("unexpected assistant message: %+v", snap.Messages[1])
	}

	// Initial reasoning step plus one synthesized classification step.
	if len(snap.Steps) != 2 {
		t.Fatalf("expected 2 steps, got %d", len(snap.Steps))
	}
	if snap.Steps[0].Type != domain.StepReasoning || snap.Steps[0].Status != domain.StepCompleted {
		t.Fatalf("unexpected initial step: %+v", snap.Steps[0])
	}
	if snap.Steps[1].Type != domain.StepClassify || snap.Steps[1].Title != "Ticket Classification" {
		t.Fatalf("unexpected synthesized step: %+v", snap.Steps[1])
	}
}

func TestSubmitTextEmptyIsNoOp(t *testing.T) {
	gw := successGateway("unused", "")
	ctrl := console.NewController(gw)

	ctrl.SubmitText(context.Background(), "   ")

	if len(gw.requests) != 0 {
		t.Fatalf("expected no request for blank input, got %d", len(gw.requests))
	}
	snap := ctrl.Snapshot()
	if len(snap.Messages) != 0 || len(snap.Steps) != 0 || snap.Status != domain.StatusReady {
		t.Fatalf("expected untouched state, got %+v", snap)
	}
}

func TestSubmitFailureThenAutoReset(t *testing.T) {
	ctrl := console.NewController(failingGateway(), console.WithResetDelay(30*time.Millisecond))

	ctrl.SubmitText(context.Background(), "hello")

	snap := ctrl.Snapshot()
	if snap.Status != domain.StatusError {
		t.Fatalf("expected error status, got %s", snap.Status)
	}
	if len(snap.Messages) != 2 || snap.Messages[1].Role != domain.RoleAssistant || snap.Messages[1].Content == "" {
		t.Fatalf("expected an error reply message, got %+v", snap.Messages)
	}
	if len(snap.Steps) != 1 || snap.Steps[0].Status != domain.StepError {
		t.Fatalf("expected the in-flight step marked as error, got %+v", snap.Steps)
	}

	time.Sleep(150 * time.Millisecond)

	snap = ctrl.Snapshot()
	if snap.Status != domain.StatusReady {
		t.Fatalf("expected auto-reset to ready, got %s", snap.Status)
	}
	if len(snap.Messages) != 2 {
		t.Fatalf("expected reset to leave the history alone, got %d messages", len(snap.Messages))
	}
}

func TestSubmitDuringErrorWindowCancelsReset(t *testing.T) {
	calls := 0
	gw := &fakeGateway{}
	gw.fn = func(domain.ProcessRequest) (*domain.ProcessResult, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("backend down")
		}
		return &domain.ProcessResult{Status: "success", Response: "recovered"}, nil
	}
	ctrl := console.NewController(gw, console.WithResetDelay(200*time.Millisecond))

	ctrl.SubmitText(context.Background(), "first")
	if got := ctrl.Status(); got != domain.StatusError {
		t.Fatalf("expected error status, got %s", got)
	}

	// Submitting inside the error window is allowed and replaces the
	// pending reset with the new request's outcome.
	ctrl.SubmitText(context.Background(), "second")

	snap := ctrl.Snapshot()
	if snap.Status != domain.StatusReady {
		t.Fatalf("expected ready after recovery, got %s", snap.Status)
	}
	if len(snap.Messages) != 4 {
		t.Fatalf("expected 4 messages, got %d", len(snap.Messages))
	}

	time.Sleep(300 * time.Millisecond)
	if got := ctrl.Status(); got != domain.StatusReady {
		t.Fatalf("expected the stale reset not to fire, got %s", got)
	}
}

func TestSubmitWhileInFlightIsDropped(t *testing.T) {
	var ctrl *console.Controller
	gw := &fakeGateway{}
	gw.fn = func(domain.ProcessRequest) (*domain.ProcessResult, error) {
		// A second submission while this request is in flight must be a
		// no-op.
		ctrl.SubmitText(context.Background(), "reentrant")
		return &domain.ProcessResult{Status: "success", Response: "done"}, nil
	}
	ctrl = console.NewController(gw)

	ctrl.SubmitText(context.Background(), "first")

	if len(gw.requests) != 1 {
		t.Fatalf("expected exactly 1 request, got %d", len(gw.requests))
	}
	if got := len(ctrl.Snapshot().Messages); got != 2 {
		t.Fatalf("expected 2 messages, got %d", got)
	}
}

func TestSubmitFileStepCategories(t *testing.T) {
	cases := []struct {
		mediaType string
		stepType  domain.StepType
		title     string
	}{
		{"audio/mpeg", domain.StepAudio, "Audio Transcription"},
		{"application/pdf", domain.StepDocument, "Document Analysis"},
		{"image/png", domain.StepDocument, "Document Analysis"},
		{"text/plain", domain.StepGeneral, "File Processing"},
		{"", domain.StepGeneral, "File Processing"},
	}

	for _, tc := range cases {
		ctrl := console.NewController(successGateway("ok", ""))
		ctrl.SubmitFile(context.Background(), &console.FileUpload{
			Name:      "upload.bin",
			MediaType: tc.mediaType,
			Data:      []byte("payload"),
		}, "look at this")

		steps := ctrl.Snapshot().Steps
		if len(steps) == 0 {
			t.Fatalf("%s: expected at least one step", tc.mediaType)
		}
		if steps[0].Type != tc.stepType || steps[0].Title != tc.title {
			t.Fatalf("%s: expected %s/%s, got %s/%s",
				tc.mediaType, tc.stepType, tc.title, steps[0].Type, steps[0].Title)
		}
	}
}

func TestSubmitFileDefaultQuery(t *testing.T) {
	gw := successGateway("ok", "")
	ctrl := console.NewController(gw)

	ctrl.SubmitFile(context.Background(), &console.FileUpload{
		Name:      "report.pdf",
		MediaType: "application/pdf",
		Data:      []byte("%PDF"),
	}, "  ")

	if len(gw.requests) != 1 {
		t.Fatalf("expected 1 request, got %d", len(gw.requests))
	}
	req := gw.requests[0]
	if req.Query != "Analyze this file" {
		t.Fatalf("expected default query, got %q", req.Query)
	}
	if req.FileName != "report.pdf" || req.FileType != "application/pdf" {
		t.Fatalf("unexpected file fields: %+v", req)
	}

	msgs := ctrl.Snapshot().Messages
	if msgs[0].FileName != "report.pdf" {
		t.Fatalf("expected the user message to carry the file name, got %q", msgs[0].FileName)
	}
}

func TestSubmitFileNilIsNoOp(t *testing.T) {
	gw := successGateway("unused", "")
	ctrl := console.NewController(gw)

	ctrl.SubmitFile(context.Background(), nil, "query")

	if len(gw.requests) != 0 {
		t.Fatalf("expected no request for nil file, got %d", len(gw.requests))
	}
}

func TestClearEmptiesHistoryOnly(t *testing.T) {
	ctrl := console.NewController(successGateway("ok", ""))
	ctrl.SubmitText(context.Background(), "hello")

	ctrl.Clear()
	ctrl.Clear()

	snap := ctrl.Snapshot()
	if len(snap.Messages) != 0 || len(snap.Steps) != 0 {
		t.Fatalf("expected empty history after clear, got %d messages, %d steps",
			len(snap.Messages), len(snap.Steps))
	}
	if snap.Status != domain.StatusReady {
		t.Fatalf("expected status untouched by clear, got %s", snap.Status)
	}
}
