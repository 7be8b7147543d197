// Package textindex builds the per-page text blobs that back search.
package textindex

import (
	"context"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/cases"

	"flipbook-viewer/internal/decoder"
	"flipbook-viewer/internal/logger"
)

// Index maps page numbers to the case-folded text content of that page.
// Built once per document, immutable thereafter.
type Index struct {
	pages []string // pages[i] holds page i+1
}

// Fold lowercases a string for matching. Unicode case folding rather than a
// naive ToLower, so queries like "STRASSE" match "straße".
func Fold(s string) string {
	return cases.Fold().String(s)
}

// Build extracts text from every page of the document. A failed page stores
// an empty blob: search degrades to "no match on this page" instead of
// failing the whole index.
func Build(ctx context.Context, dec decoder.Decoder, concurrency int) *Index {
	pageCount := dec.PageCount()
	ix := &Index{pages: make([]string, pageCount)}

	if concurrency < 1 {
		concurrency = 1
	}

	var mu sync.Mutex
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for page := 1; page <= pageCount; page++ {
		page := page
		g.Go(func() error {
			runs, err := dec.TextRuns(page)
			if err != nil {
				logger.Warn("text extraction failed, page indexed as empty",
					logger.Int("page", page), logger.Err(err))
				return nil
			}

			texts := make([]string, 0, len(runs))
			for _, run := range runs {
				if run.Text == "" {
					continue
				}
				texts = append(texts, run.Text)
			}
			blob := Fold(strings.Join(texts, " "))

			mu.Lock()
			ix.pages[page-1] = blob
			mu.Unlock()
			return nil
		})
	}
	g.Wait()

	logger.Info("text index built", logger.Int("pages", pageCount))
	return ix
}

// Text returns the folded text blob of a page, or "" for out-of-range pages
func (ix *Index) Text(page int) string {
	if page < 1 || page > len(ix.pages) {
		return ""
	}
	return ix.pages[page-1]
}

// PageCount returns the number of indexed pages
func (ix *Index) PageCount() int {
	return len(ix.pages)
}
