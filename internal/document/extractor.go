package document

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Extractor pulls plain text out of an uploaded file. Implementations
// return the concatenated text of all pages, or an error when nothing
// usable can be read.
type Extractor interface {
	Extract(data []byte) (string, error)
}

type pdfExtractor struct{}

func NewPDFExtractor() Extractor {
	return &pdfExtractor{}
}

func (e *pdfExtractor) Extract(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}

	content, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to read PDF text: %w", err)
	}

	var sb strings.Builder
	if _, err := io.Copy(&sb, content); err != nil {
		return "", fmt.Errorf("failed to read PDF text: %w", err)
	}
	return sb.String(), nil
}
