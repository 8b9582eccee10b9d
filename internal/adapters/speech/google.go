package speech

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	speech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"

	"github.com/sentinai/sentinai/internal/domain"
)

// GoogleTranscriber implements domain.Transcriber with Cloud
// Speech-to-Text synchronous recognition.
type GoogleTranscriber struct {
	client   *speech.Client
	language string
}

func NewGoogleTranscriber(ctx context.Context, language string) (*GoogleTranscriber, error) {
	if language == "" {
		language = "en-US"
	}

	client, err := speech.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("speech client: %w", err)
	}

	return &GoogleTranscriber{
		client:   client,
		language: language,
	}, nil
}

func (t *GoogleTranscriber) Close() error {
	return t.client.Close()
}

func (t *GoogleTranscriber) Transcribe(ctx context.Context, path string) (*domain.Transcript, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read audio file: %w", err)
	}

	resp, err := t.client.Recognize(ctx, &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:                   encodingForFile(path),
			LanguageCode:               t.language,
			EnableAutomaticPunctuation: true,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: data},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("speech recognize: %w", err)
	}

	var parts []string
	language := t.language
	for _, result := range resp.GetResults() {
		alts := result.GetAlternatives()
		if len(alts) == 0 {
			continue
		}
		parts = append(parts, strings.TrimSpace(alts[0].GetTranscript()))
		if lc := result.GetLanguageCode(); lc != "" {
			language = lc
		}
	}

	if len(parts) == 0 {
		return nil, fmt.Errorf("no speech recognized in %s", filepath.Base(path))
	}

	return &domain.Transcript{
		Text:     strings.Join(parts, " "),
		Language: language,
	}, nil
}

// encodingForFile picks an explicit encoding where the header alone is not
// enough; wav and flac are self-describing.
func encodingForFile(path string) speechpb.RecognitionConfig_AudioEncoding {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		return speechpb.RecognitionConfig_MP3
	case ".ogg":
		return speechpb.RecognitionConfig_OGG_OPUS
	case ".webm":
		return speechpb.RecognitionConfig_WEBM_OPUS
	default:
		return speechpb.RecognitionConfig_ENCODING_UNSPECIFIED
	}
}
