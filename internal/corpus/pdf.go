package corpus

import (
	"bytes"
	"fmt"
	"log"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ExtractPages splits a PDF document into per-page chunks of plain
// text. Pages with no extractable content are dropped; surviving
// chunks keep their original 1-based page number as ordinal.
func ExtractPages(data []byte, logger *log.Logger) ([]Chunk, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("opening pdf: %w", err)
	}

	total := reader.NumPage()
	chunks := make([]Chunk, 0, total)
	for n := 1; n <= total; n++ {
		if logger != nil && (n-1)%10 == 0 {
			logger.Printf("extracting page %d/%d", n, total)
		}
		page := reader.Page(n)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// A single unreadable page should not sink the corpus.
			if logger != nil {
				logger.Printf("page %d: %v", n, err)
			}
			continue
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		chunks = append(chunks, Chunk{Ordinal: n, Text: text})
	}
	return chunks, nil
}
