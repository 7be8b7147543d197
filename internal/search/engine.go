// Package search implements substring search over the text index with
// page-level results and cyclic result navigation.
package search

import (
	"strings"
	"sync"

	"flipbook-viewer/internal/logger"
	"flipbook-viewer/internal/textindex"
)

// Result is the outcome of a search: matching pages in ascending order and
// the current cursor position (-1 when there are no results).
type Result struct {
	Query  string `json:"query"`
	Pages  []int  `json:"pages"`
	Cursor int    `json:"cursor"`
}

// Engine executes queries against a text index. Results are page-level:
// a page either matches or it does not, regardless of occurrence count.
// The result list is rebuilt in full on every query change.
type Engine struct {
	mu     sync.Mutex
	index  *textindex.Index
	query  string
	pages  []int
	cursor int
}

// NewEngine creates a search engine over the given index
func NewEngine(index *textindex.Index) *Engine {
	return &Engine{
		index:  index,
		cursor: -1,
	}
}

// Search runs a query. An empty or whitespace-only query clears all state.
// On a non-empty result set the cursor points at the first match.
func (e *Engine) Search(query string) Result {
	e.mu.Lock()
	defer e.mu.Unlock()

	query = strings.TrimSpace(query)
	if query == "" {
		e.query = ""
		e.pages = nil
		e.cursor = -1
		return e.snapshot()
	}

	folded := textindex.Fold(query)
	e.query = folded
	e.pages = e.pages[:0]

	for page := 1; page <= e.index.PageCount(); page++ {
		if strings.Contains(e.index.Text(page), folded) {
			e.pages = append(e.pages, page)
		}
	}

	if len(e.pages) == 0 {
		e.cursor = -1
	} else {
		e.cursor = 0
	}

	logger.Debug("search executed",
		logger.String("query", folded),
		logger.Int("matches", len(e.pages)))

	return e.snapshot()
}

// Next advances the cursor cyclically and returns the page it lands on.
// ok is false when there are no results.
func (e *Engine) Next() (int, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.pages) == 0 {
		return 0, false
	}
	e.cursor = (e.cursor + 1) % len(e.pages)
	return e.pages[e.cursor], true
}

// Prev moves the cursor back cyclically and returns the page it lands on
func (e *Engine) Prev() (int, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.pages) == 0 {
		return 0, false
	}
	e.cursor = (e.cursor - 1 + len(e.pages)) % len(e.pages)
	return e.pages[e.cursor], true
}

// Current returns the page under the cursor, if any
func (e *Engine) Current() (int, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.cursor < 0 || e.cursor >= len(e.pages) {
		return 0, false
	}
	return e.pages[e.cursor], true
}

// Query returns the active folded query string, "" when cleared
func (e *Engine) Query() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.query
}

// State returns the current result snapshot without re-running the query
func (e *Engine) State() Result {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshot()
}

// snapshot copies the result state; callers must hold the lock
func (e *Engine) snapshot() Result {
	pages := make([]int, len(e.pages))
	copy(pages, e.pages)
	return Result{
		Query:  e.query,
		Pages:  pages,
		Cursor: e.cursor,
	}
}
