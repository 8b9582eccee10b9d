package docai

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	documentai "cloud.google.com/go/documentai/apiv1"
	"cloud.google.com/go/documentai/apiv1/documentaipb"
	"google.golang.org/api/option"
)

// GoogleReader implements domain.DocumentReader with a Document AI OCR
// processor.
type GoogleReader struct {
	client    *documentai.DocumentProcessorClient
	processor string // full resource name
}

// mimeTypes lists the supported formats; anything else is rejected before
// the API call, mirroring the upload routing.
var mimeTypes = map[string]string{
	".pdf":  "application/pdf",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".bmp":  "image/bmp",
	".tiff": "image/tiff",
	".webp": "image/webp",
}

func NewGoogleReader(ctx context.Context, projectID, location, processorID string) (*GoogleReader, error) {
	if projectID == "" || processorID == "" {
		return nil, fmt.Errorf("project and processor id are required for Document AI")
	}
	if location == "" {
		location = "us"
	}

	endpoint := fmt.Sprintf("%s-documentai.googleapis.com:443", location)
	client, err := documentai.NewDocumentProcessorClient(ctx, option.WithEndpoint(endpoint))
	if err != nil {
		return nil, fmt.Errorf("documentai client: %w", err)
	}

	return &GoogleReader{
		client:    client,
		processor: fmt.Sprintf("projects/%s/locations/%s/processors/%s", projectID, location, processorID),
	}, nil
}

func (r *GoogleReader) Close() error {
	return r.client.Close()
}

func (r *GoogleReader) ExtractText(ctx context.Context, path string) (string, error) {
	mimeType, err := MimeTypeFor(path)
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read document file: %w", err)
	}

	resp, err := r.client.ProcessDocument(ctx, &documentaipb.ProcessRequest{
		Name: r.processor,
		Source: &documentaipb.ProcessRequest_RawDocument{
			RawDocument: &documentaipb.RawDocument{
				Content:  data,
				MimeType: mimeType,
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("documentai process: %w", err)
	}

	text := resp.GetDocument().GetText()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("no text could be extracted from %s", filepath.Base(path))
	}
	return text, nil
}

// MimeTypeFor maps a document path to its mime type, rejecting unsupported
// formats.
func MimeTypeFor(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	mt, ok := mimeTypes[ext]
	if !ok {
		return "", fmt.Errorf("unsupported file format: %s (supported: pdf and common image types)", ext)
	}
	return mt, nil
}
