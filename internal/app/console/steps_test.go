package console_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/sentinai/sentinai/internal/app/console"
	"github.com/sentinai/sentinai/internal/domain"
)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("step-%d", n)
	}
}

func TestSynthesizeStepsFixedOrder(t *testing.T) {
	// The classify entry comes first in the trace, but emitted steps follow
	// the marker order: audio, document, classify.
	trace := "classify_ticket -> Category: Billing; transcribe_audio(call.mp3) -> Transcription: hi"

	steps := console.SynthesizeSteps(trace, sequentialIDs())

	if len(steps) != 2 {
		t.Fatalf("expected 2 steps, got %d", len(steps))
	}
	if steps[0].Type != domain.StepAudio || steps[1].Type != domain.StepClassify {
		t.Fatalf("expected [audio, classify], got [%s, %s]", steps[0].Type, steps[1].Type)
	}
	for _, s := range steps {
		if s.Status != domain.StepCompleted {
			t.Fatalf("expected completed step, got %s", s.Status)
		}
		if s.Duration < 800*time.Millisecond || s.Duration >= 2400*time.Millisecond {
			t.Fatalf("duration %v outside the display range", s.Duration)
		}
	}
}

func TestSynthesizeStepsAllMarkers(t *testing.T) {
	trace := "transcribe_audio(a.mp3) -> x; query_document(b.pdf) -> y; classify_ticket -> z"

	steps := console.SynthesizeSteps(trace, sequentialIDs())

	want := []domain.StepType{domain.StepAudio, domain.StepDocument, domain.StepClassify}
	if len(steps) != len(want) {
		t.Fatalf("expected %d steps, got %d", len(want), len(steps))
	}
	for i, s := range steps {
		if s.Type != want[i] {
			t.Fatalf("step %d: expected %s, got %s", i, want[i], s.Type)
		}
	}
}

func TestSynthesizeStepsFallback(t *testing.T) {
	for _, trace := range []string{"", "the agent pondered deeply"} {
		steps := console.SynthesizeSteps(trace, sequentialIDs())

		if len(steps) != 1 {
			t.Fatalf("trace %q: expected 1 fallback step, got %d", trace, len(steps))
		}
		if steps[0].Type != domain.StepReasoning || steps[0].Title != "Reasoning" {
			t.Fatalf("trace %q: unexpected fallback step %+v", trace, steps[0])
		}
		if steps[0].Status != domain.StepCompleted {
			t.Fatalf("trace %q: expected completed, got %s", trace, steps[0].Status)
		}
	}
}
