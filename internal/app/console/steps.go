package console

import (
	"math/rand/v2"
	"strings"
	"time"

	"github.com/sentinai/sentinai/internal/domain"
)

// marker maps an operation name that may appear in the backend's trace
// string onto a presentable step.
type marker struct {
	substr      string
	stepType    domain.StepType
	title       string
	description string
}

// Markers are checked in this fixed order; emitted steps follow it
// regardless of where the substrings sit in the trace.
var markers = []marker{
	{"transcribe_audio", domain.StepAudio, "Audio Transcription", "Transcribing audio"},
	{"query_document", domain.StepDocument, "Document Analysis", "Extracting document information"},
	{"classify_ticket", domain.StepClassify, "Ticket Classification", "Categorizing ticket"},
}

// SynthesizeSteps converts the backend's free-text operation trace into
// completed steps by substring containment. The trace is unstructured and
// the matching is best-effort, never authoritative. When nothing matches,
// a single generic reasoning step is produced.
func SynthesizeSteps(trace string, newID func() string) []domain.ThinkingStep {
	var out []domain.ThinkingStep
	for _, m := range markers {
		if strings.Contains(trace, m.substr) {
			out = append(out, domain.ThinkingStep{
				ID:          domain.StepID(newID()),
				Type:        m.stepType,
				Title:       m.title,
				Description: m.description,
				Status:      domain.StepCompleted,
				Duration:    cosmeticDuration(),
			})
		}
	}

	if len(out) == 0 {
		out = append(out, domain.ThinkingStep{
			ID:          domain.StepID(newID()),
			Type:        domain.StepReasoning,
			Title:       "Reasoning",
			Description: "Processing your request",
			Status:      domain.StepCompleted,
			Duration:    cosmeticDuration(),
		})
	}

	return out
}

// cosmeticDuration returns display jitter in a fixed range. It is not a
// measurement.
func cosmeticDuration() time.Duration {
	return time.Duration(800+rand.IntN(1600)) * time.Millisecond
}
