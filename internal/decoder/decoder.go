// Package decoder provides the document decoding collaborator for the viewer:
// opening and validating a document, querying page geometry, rasterizing pages
// at a target pixel size and extracting positioned text runs.
package decoder

import (
	"context"
	"image"
)

// TextRun is one positioned run of text on a page, in native page coordinates
// (origin bottom-left, units are PDF points).
type TextRun struct {
	Text     string  `json:"text"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	FontSize float64 `json:"font_size"`
	FontName string  `json:"font_name"`
}

// Decoder is the read surface the rendering pipeline consumes.
// Implementations must be safe for concurrent use: page renders are issued
// in parallel during prefetch.
type Decoder interface {
	// PageCount returns the number of pages in the document
	PageCount() int
	// PageSize returns the native page dimensions in points for a 1-based page index
	PageSize(page int) (width, height float64, err error)
	// Rasterize renders a page at exactly the given pixel dimensions
	Rasterize(ctx context.Context, page, width, height int) (image.Image, error)
	// TextRuns extracts the positioned text runs of a page
	TextRuns(page int) ([]TextRun, error)
}

// DocumentInfo describes a successfully opened document.
type DocumentInfo struct {
	FilePath  string `json:"file_path"`
	FileName  string `json:"file_name"`
	PageCount int    `json:"page_count"`
	FileSize  int64  `json:"file_size"`
	HasText   bool   `json:"has_text"` // false for scanned documents; search will find nothing
}
