package speech

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/sentinai/sentinai/internal/domain"
)

// MockTranscriber returns a canned transcript, for local mode and tests.
type MockTranscriber struct{}

func NewMockTranscriber() *MockTranscriber {
	return &MockTranscriber{}
}

func (m *MockTranscriber) Transcribe(ctx context.Context, path string) (*domain.Transcript, error) {
	return &domain.Transcript{
		Text:     fmt.Sprintf("(mock transcription of %s)", filepath.Base(path)),
		Language: "en-US",
	}, nil
}
