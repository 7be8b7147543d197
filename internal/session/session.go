// Package session bundles everything that lives and dies with one open
// document. Loading a new document builds a fresh Session and discards the
// old one wholesale, so no cached artifact or index entry can outlive its
// document.
package session

import (
	"context"
	"sync"

	"flipbook-viewer/internal/decoder"
	"flipbook-viewer/internal/logger"
	"flipbook-viewer/internal/pagination"
	"flipbook-viewer/internal/render"
	"flipbook-viewer/internal/search"
	"flipbook-viewer/internal/textindex"
	"flipbook-viewer/internal/types"
	"flipbook-viewer/internal/viewport"
)

// Document is what a session needs from an open document: the decoder
// surface plus metadata and teardown
type Document interface {
	decoder.Decoder
	Info() decoder.DocumentInfo
	Close() error
}

// Session is the per-document component bundle
type Session struct {
	Doc      Document
	Cache    *render.Cache
	Renderer *render.Renderer
	Index    *textindex.Index
	Search   *search.Engine
	Pages    *pagination.Controller
	View     *viewport.Transform

	resizeThreshold int
	floorWidth      int
	floorHeight     int

	mu          sync.Mutex
	availWidth  int
	availHeight int
	pageWidth   int
	pageHeight  int
	aspect      float64
}

// New assembles a session for an opened document. The text index is built
// here, before the session is handed out, so search is ready the moment the
// document is.
func New(ctx context.Context, doc Document, cfg *types.Config, device pagination.DeviceClass, mode pagination.ViewMode, listener pagination.Listener) *Session {
	cache := render.NewCache()
	renderer := render.NewRenderer(doc, cache, cfg.SupersampleFactor, cfg.RenderConcurrency)
	renderer.SetBacksides(mode == pagination.ModeSingle || device == pagination.DeviceMobile)

	index := textindex.Build(ctx, doc, cfg.RenderConcurrency)

	pages := pagination.NewController(pagination.Config{
		PageCount:     doc.PageCount(),
		Mode:          mode,
		Device:        device,
		SinglePreload: cfg.SinglePreload,
		DoublePreload: cfg.DoublePreload,
		FlipLookahead: cfg.FlipLookahead,
	}, listener)

	s := &Session{
		Doc:             doc,
		Cache:           cache,
		Renderer:        renderer,
		Index:           index,
		Search:          search.NewEngine(index),
		Pages:           pages,
		View:            viewport.NewTransform(cfg.MinZoom, cfg.MaxZoom, cfg.ZoomStep),
		resizeThreshold: cfg.ResizeThreshold,
		floorWidth:      cfg.FloorWidth,
		floorHeight:     cfg.FloorHeight,
		aspect:          pageAspect(doc, cfg),
	}
	return s
}

// pageAspect derives the planning aspect ratio from the first page, falling
// back to the floor dimensions for documents whose geometry cannot be read
func pageAspect(doc Document, cfg *types.Config) float64 {
	w, h, err := doc.PageSize(1)
	if err != nil || w <= 0 || h <= 0 {
		logger.Warn("first page geometry unavailable, planning with floor aspect", logger.Err(err))
		return float64(cfg.FloorWidth) / float64(cfg.FloorHeight)
	}
	return w / h
}

// Plan recomputes the target page size for a viewport of the given available
// dimensions under the current layout mode. The invalidation signal is the
// planned page width itself, not the raw viewport delta: a height-only resize
// moves the target width when height is the binding constraint, and in double
// mode the viewport delta is split across two pages. When the newly planned
// width differs from the last plan by more than the resize threshold, the
// render cache is cleared and cleared is true; smaller jitter keeps the
// cache warm.
func (s *Session) Plan(availWidth, availHeight int) (pageWidth, pageHeight int, cleared bool) {
	s.mu.Lock()

	double := s.Pages.Mode() == pagination.ModeDouble
	newWidth, newHeight := render.PlanPageSize(availWidth, availHeight, s.aspect, double, s.floorWidth, s.floorHeight)

	delta := newWidth - s.pageWidth
	if delta < 0 {
		delta = -delta
	}
	if s.pageWidth > 0 && delta > s.resizeThreshold {
		cleared = true
	}

	s.availWidth = availWidth
	s.availHeight = availHeight
	s.pageWidth, s.pageHeight = newWidth, newHeight
	s.mu.Unlock()

	if cleared {
		s.Cache.Clear()
		logger.Info("target page width crossed resize threshold, render cache cleared",
			logger.Int("pageWidth", newWidth),
			logger.Int("delta", delta))
	}
	return newWidth, newHeight, cleared
}

// PlanForMode replans with the stored viewport dimensions for an explicit
// layout mode. Used just before a mode switch so the new render set is
// produced at the right size; the caller clears the cache.
func (s *Session) PlanForMode(double bool) (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pageWidth, s.pageHeight = render.PlanPageSize(s.availWidth, s.availHeight, s.aspect, double, s.floorWidth, s.floorHeight)
	return s.pageWidth, s.pageHeight
}

// PlannedSize returns the current target page dimensions
func (s *Session) PlannedSize() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pageWidth, s.pageHeight
}

// Close releases the document's resources
func (s *Session) Close() error {
	return s.Doc.Close()
}
