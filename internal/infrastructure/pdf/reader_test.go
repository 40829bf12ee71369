package pdf

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExtractTextMissingFile(t *testing.T) {
	t.Parallel()

	if _, err := (Reader{}).ExtractText(filepath.Join(t.TempDir(), "absent.pdf")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestExtractTextNotAPDF(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "contract.pdf")
	if err := os.WriteFile(path, []byte("plain text, not a pdf"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := (Reader{}).ExtractText(path); err == nil {
		t.Fatalf("expected error for non-pdf input")
	}
}
