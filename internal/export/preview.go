package export

import (
	"bytes"
	"fmt"
	"image/png"
	"log"

	"github.com/gen2brain/go-fitz"
)

// PreviewPNG rasterizes the first page of a PDF and reports how many pages
// the document has.
func PreviewPNG(pdf []byte) ([]byte, int, error) {
	doc, err := fitz.NewFromMemory(pdf)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	pages := doc.NumPage()
	if pages == 0 {
		return nil, 0, fmt.Errorf("PDF has no pages")
	}
	img, err := doc.Image(0)
	if err != nil {
		return nil, 0, fmt.Errorf("page 1: failed to extract image: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, 0, fmt.Errorf("failed to encode PNG: %w", err)
	}
	log.Printf("Rendered preview of %d-page PDF (%d bytes)", pages, buf.Len())
	return buf.Bytes(), pages, nil
}
