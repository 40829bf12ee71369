package pdf

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"

	"NewsRisk/internal/ports"
)

// Reader extracts plain text from PDF files, page by page.
type Reader struct{}

var _ ports.TextExtractor = Reader{}

// ExtractText concatenates the text of every page in order.
func (Reader) ExtractText(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf %s: %w", path, err)
	}
	defer f.Close()

	var buf bytes.Buffer
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("read page %d of %s: %w", i, path, err)
		}
		buf.WriteString(text)
	}

	return buf.String(), nil
}
