package pdf

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gen2brain/go-fitz"

	"github.com/kpauljoseph/ankigen/pkg/logger"
)

// ErrExtraction wraps any failure to open or read the source PDF.
var ErrExtraction = errors.New("pdf extraction failed")

type Extractor struct {
	logger *logger.Logger
}

func NewExtractor(log *logger.Logger) *Extractor {
	return &Extractor{logger: log}
}

// ExtractText concatenates the text of every page in page order.
// Pages with no extractable text contribute nothing, not even a
// separator.
func (e *Extractor) ExtractText(ctx context.Context, pdfPath string) (string, error) {
	doc, err := fitz.New(pdfPath)
	if err != nil {
		return "", fmt.Errorf("%w: open %s: %w", ErrExtraction, pdfPath, err)
	}
	defer doc.Close()

	var text strings.Builder

	// Page numbers are zero indexed in the fitz package.
	for pageNum := 0; pageNum < doc.NumPage(); pageNum++ {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		pageText, err := doc.Text(pageNum)
		if err != nil {
			return "", fmt.Errorf("%w: page %d: %w", ErrExtraction, pageNum, err)
		}

		if pageText == "" {
			e.logger.Debug("Page %d has no extractable text, skipping", pageNum)
			continue
		}

		text.WriteString(pageText)
	}

	e.logger.Debug("Extracted %d characters from %d pages", text.Len(), doc.NumPage())

	return text.String(), nil
}
