package ingestion

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/ledongthuc/pdf"
	"github.com/poiesic/docindex/core"
)

// PageExtractor parses raw document bytes into an ordered sequence of pages.
type PageExtractor interface {
	ExtractPages(ctx context.Context, data []byte) ([]core.Page, error)
}

// PDFExtractor implements PageExtractor for PDF documents.
type PDFExtractor struct {
	logger *slog.Logger
}

var _ PageExtractor = (*PDFExtractor)(nil)

// NewPDFExtractor creates a new PDF page extractor.
func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{
		logger: slog.Default().With("component", "pdf-extractor"),
	}
}

// ExtractPages extracts per-page plain text from PDF bytes. Pages are
// numbered from 1 in document order; pages without a content object are
// skipped.
func (e *PDFExtractor) ExtractPages(ctx context.Context, data []byte) (pages []core.Page, err error) {
	// The pdf package panics on some malformed files.
	defer func() {
		if r := recover(); r != nil {
			pages = nil
			err = fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}

	total := reader.NumPage()
	pages = make([]core.Page, 0, total)
	for number := 1; number <= total; number++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page := reader.Page(number)
		if page.V.IsNull() {
			e.logger.Debug("skipping page without content", "page", number)
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", number, err)
		}

		pages = append(pages, core.Page{Text: text, Number: number})
	}

	return pages, nil
}
