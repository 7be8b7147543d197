package textindex

import (
	"context"
	"errors"
	"image"
	"testing"

	"flipbook-viewer/internal/decoder"
)

// stubDecoder serves canned text runs per page
type stubDecoder struct {
	texts map[int][]string
	fail  map[int]bool
}

func (d *stubDecoder) PageCount() int { return len(d.texts) }

func (d *stubDecoder) PageSize(page int) (float64, float64, error) {
	return 100, 200, nil
}

func (d *stubDecoder) Rasterize(ctx context.Context, page, width, height int) (image.Image, error) {
	return image.NewRGBA(image.Rect(0, 0, width, height)), nil
}

func (d *stubDecoder) TextRuns(page int) ([]decoder.TextRun, error) {
	if d.fail[page] {
		return nil, errors.New("extraction failed")
	}
	var runs []decoder.TextRun
	for _, text := range d.texts[page] {
		runs = append(runs, decoder.TextRun{Text: text})
	}
	return runs, nil
}

func TestBuildJoinsAndFolds(t *testing.T) {
	dec := &stubDecoder{
		texts: map[int][]string{
			1: {"The", "Quick", "FOX"},
			2: {"straße"},
			3: {},
		},
	}

	ix := Build(context.Background(), dec, 2)

	if ix.PageCount() != 3 {
		t.Fatalf("PageCount() = %d, want 3", ix.PageCount())
	}
	if got := ix.Text(1); got != "the quick fox" {
		t.Errorf("Text(1) = %q, want %q", got, "the quick fox")
	}
	// Unicode case folding: ß folds to ss.
	if got := ix.Text(2); got != "strasse" {
		t.Errorf("Text(2) = %q, want %q", got, "strasse")
	}
	if got := ix.Text(3); got != "" {
		t.Errorf("Text(3) = %q, want empty", got)
	}
}

func TestBuildFailedPageIndexedEmpty(t *testing.T) {
	dec := &stubDecoder{
		texts: map[int][]string{
			1: {"alpha"},
			2: {"beta"},
		},
		fail: map[int]bool{2: true},
	}

	ix := Build(context.Background(), dec, 1)

	if got := ix.Text(1); got != "alpha" {
		t.Errorf("Text(1) = %q, want %q", got, "alpha")
	}
	if got := ix.Text(2); got != "" {
		t.Errorf("Text(2) after failure = %q, want empty", got)
	}
}

func TestTextOutOfRange(t *testing.T) {
	ix := Build(context.Background(), &stubDecoder{texts: map[int][]string{1: {"x"}}}, 1)

	if ix.Text(0) != "" || ix.Text(2) != "" {
		t.Error("out-of-range Text() returned content")
	}
}

func TestFold(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hello", "hello"},
		{"STRASSE", "strasse"},
		{"straße", "strasse"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Fold(tt.in); got != tt.want {
			t.Errorf("Fold(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
