package docai

import (
	"context"
	"fmt"
	"path/filepath"
)

// MockReader returns canned document text, for local mode and tests.
type MockReader struct{}

func NewMockReader() *MockReader {
	return &MockReader{}
}

func (m *MockReader) ExtractText(ctx context.Context, path string) (string, error) {
	if _, err := MimeTypeFor(path); err != nil {
		return "", err
	}
	return fmt.Sprintf("(mock extracted text of %s)", filepath.Base(path)), nil
}
