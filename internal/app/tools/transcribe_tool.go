package tools

import (
	"context"
	"fmt"

	"github.com/sentinai/sentinai/internal/domain"
	"github.com/sentinai/sentinai/internal/observability"
)

// TranscribeTool converts speech in an audio file to text.
type TranscribeTool struct {
	transcriber domain.Transcriber
}

func NewTranscribeTool(transcriber domain.Transcriber) *TranscribeTool {
	return &TranscribeTool{transcriber: transcriber}
}

func (t *TranscribeTool) Name() string {
	return "transcribe_audio"
}

func (t *TranscribeTool) Description() string {
	return "Transcribe speech from an audio file to text. " +
		"Use this when given an audio file path (.mp3, .wav, .m4a, etc.)."
}

// Call expects input {"file_path": string} and returns
// {"text", "language", "summary"}.
func (t *TranscribeTool) Call(ctx context.Context, tctx ToolContext, input map[string]any) (map[string]any, error) {
	log := observability.LoggerFromContext(ctx).With("tool", t.Name())

	path, _ := input["file_path"].(string)
	if path == "" {
		return nil, fmt.Errorf("file_path is required")
	}

	result, err := t.transcriber.Transcribe(ctx, path)
	if err != nil {
		log.Errorw("transcription failed", "error", err)
		return nil, fmt.Errorf("transcribe %s: %w", path, err)
	}

	log.Infow("transcription completed", "language", result.Language)

	return map[string]any{
		"text":     result.Text,
		"language": result.Language,
		"summary":  fmt.Sprintf("Transcription: %s (Language: %s)", result.Text, result.Language),
	}, nil
}
