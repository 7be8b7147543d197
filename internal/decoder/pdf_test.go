package decoder

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"flipbook-viewer/internal/types"
)

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "absent.pdf"))
	if err == nil {
		t.Fatal("Open() succeeded on a missing file")
	}

	var appErr *types.AppError
	if !errors.As(err, &appErr) || appErr.Code != types.ErrFileNotFound {
		t.Errorf("error = %v, want file-not-found app error", err)
	}
}

func TestOpenDirectory(t *testing.T) {
	_, err := Open(t.TempDir())
	if err == nil {
		t.Fatal("Open() succeeded on a directory")
	}

	var appErr *types.AppError
	if !errors.As(err, &appErr) || appErr.Code != types.ErrDecode {
		t.Errorf("error = %v, want decode app error", err)
	}
}

func TestOpenMalformedDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.pdf")
	if err := os.WriteFile(path, []byte("this is not a pdf"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Open(path)
	if err == nil {
		t.Fatal("Open() accepted a malformed document")
	}
	var appErr *types.AppError
	if !errors.As(err, &appErr) || appErr.Code != types.ErrDecode {
		t.Errorf("error = %v, want decode app error", err)
	}
}

func TestOpenBytesEmptyBuffer(t *testing.T) {
	if _, err := OpenBytes(nil, t.TempDir()); err == nil {
		t.Error("OpenBytes() accepted an empty buffer")
	}
}

func TestOpenBytesMalformedCleansUp(t *testing.T) {
	workDir := t.TempDir()
	_, err := OpenBytes([]byte("%PDF-garbage"), workDir)
	if err == nil {
		t.Fatal("OpenBytes() accepted a malformed document")
	}

	// The spooled temp file must not be left behind on failure.
	entries, readErr := os.ReadDir(workDir)
	if readErr != nil {
		t.Fatal(readErr)
	}
	if len(entries) != 0 {
		t.Errorf("work directory holds %d leftover files after a failed open", len(entries))
	}
}

func TestIsOperatorJunk(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"ordinary sentence text", false},
		{"/BuildChar { ... } def", true},
		{"null def", true},
		{"marker @stx payload", true},
		{"trailing @etx", true},
		{"/BURL annotation", true},
		{"define the term", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := isOperatorJunk(tt.text); got != tt.want {
			t.Errorf("isOperatorJunk(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}
