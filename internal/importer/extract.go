package importer

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// MaxUploadSize bounds uploaded recipe documents.
const MaxUploadSize = 5 << 20 // 5 MiB

// ExtractText returns the plain text of an uploaded document. PDFs are read page by
// page; anything else is treated as UTF-8 text.
func ExtractText(data []byte, mime string) (string, error) {
	if len(data) > MaxUploadSize {
		return "", fmt.Errorf("file exceeds %d bytes", MaxUploadSize)
	}
	lower := strings.ToLower(mime)
	switch {
	case strings.Contains(lower, "pdf"):
		return extractTextFromPDF(data)
	case strings.HasPrefix(lower, "image/"):
		return "", fmt.Errorf("unsupported document type %q", mime)
	default:
		return string(data), nil
	}
}

func extractTextFromPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("read pdf: %w", err)
	}
	var builder strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			return "", fmt.Errorf("read pdf page %d: %w", i, err)
		}
		for _, row := range rows {
			for j, word := range row.Content {
				if j > 0 {
					builder.WriteString(" ")
				}
				builder.WriteString(word.S)
			}
			builder.WriteString("\n")
		}
	}
	return builder.String(), nil
}

// MimeTypeFromName guesses a content type from a file extension.
func MimeTypeFromName(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	switch ext {
	case ".txt", ".md":
		return "text/plain"
	case ".pdf":
		return "application/pdf"
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	default:
		return "application/octet-stream"
	}
}
