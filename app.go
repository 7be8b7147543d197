package main

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"flipbook-viewer/internal/config"
	"flipbook-viewer/internal/decoder"
	"flipbook-viewer/internal/fetch"
	"flipbook-viewer/internal/input"
	"flipbook-viewer/internal/logger"
	"flipbook-viewer/internal/pagination"
	"flipbook-viewer/internal/recent"
	"flipbook-viewer/internal/render"
	"flipbook-viewer/internal/search"
	"flipbook-viewer/internal/session"
	"flipbook-viewer/internal/settings"
	"flipbook-viewer/internal/types"
	"flipbook-viewer/internal/viewport"

	"github.com/wailsapp/wails/v2/pkg/runtime"
)

// Event names for frontend communication
const (
	EventLoadStatus       = "load-status"
	EventDocumentReady    = "document-ready"
	EventPageSettled      = "page-settled"
	EventRenderSetChanged = "render-set-changed"
	EventRenderSetReady   = "render-set-ready"
	EventSearchResults    = "search-results"
	EventNotice           = "notice"
)

// Fallback viewport used before the frontend reports its real dimensions
const (
	DefaultViewportWidth  = 1024
	DefaultViewportHeight = 768
)

// DocumentDTO is the document summary handed to the frontend after a load
type DocumentDTO struct {
	FilePath  string `json:"file_path"`
	FileName  string `json:"file_name"`
	PageCount int    `json:"page_count"`
	HasText   bool   `json:"has_text"`
	Page      int    `json:"page"`
	Mode      string `json:"mode"`
	Device    string `json:"device"`
}

// PageImageDTO carries one rendered page across the bridge. The bitmap is a
// base64 PNG at backing resolution; the display dimensions tell the frontend
// what to downscale to.
type PageImageDTO struct {
	Page          int                 `json:"page"`
	Data          string              `json:"data"`
	Backside      string              `json:"backside,omitempty"`
	BackingWidth  int                 `json:"backing_width"`
	BackingHeight int                 `json:"backing_height"`
	DisplayWidth  int                 `json:"display_width"`
	DisplayHeight int                 `json:"display_height"`
	Runs          []render.OverlayRun `json:"runs,omitempty"`
	Placeholder   bool                `json:"placeholder"`
}

// CacheStatsDTO reports render cache effectiveness
type CacheStatsDTO struct {
	Entries int   `json:"entries"`
	Hits    int64 `json:"hits"`
	Misses  int64 `json:"misses"`
}

// App is the main Wails application controller. It wires the document
// pipeline (fetch, decode, index) to the per-document session and bridges
// pagination events to the frontend.
type App struct {
	ctx      context.Context
	config   *config.ConfigManager
	settings *settings.Manager
	fetcher  *fetch.Fetcher
	recent   *recent.Manager

	// Status tracking
	status   *types.Status
	statusMu sync.RWMutex

	// Current document session; replaced wholesale on every load
	sessionMu sync.RWMutex
	session   *session.Session

	// Viewport dimensions reported by the frontend
	viewMu     sync.Mutex
	availW     int
	availH     int
	pendingPag int // page requested via fragment before the next load

	// isWailsRuntime indicates if the app is running in a Wails environment.
	// This is used to safely skip EventsEmit calls during tests.
	isWailsRuntime bool
}

// NewApp creates a new App application struct
func NewApp() *App {
	return &App{
		status: &types.Status{Phase: types.PhaseIdle},
		availW: DefaultViewportWidth,
		availH: DefaultViewportHeight,
	}
}

// NewAppWithConfig creates a new App with a custom config path.
// This is useful for testing or when a specific configuration location is needed.
func NewAppWithConfig(configPath string) (*App, error) {
	app := NewApp()

	configMgr, err := config.NewConfigManager(configPath)
	if err != nil {
		return nil, err
	}
	app.config = configMgr
	return app, nil
}

// SetWailsRuntime sets the Wails runtime flag.
// This should be called from main.go when the app is started in Wails mode.
func (a *App) SetWailsRuntime(isWails bool) {
	a.isWailsRuntime = isWails
}

// safeEmit safely emits an event to the frontend.
// It only emits events when running in a Wails environment.
func (a *App) safeEmit(eventName string, data ...interface{}) {
	if !a.isWailsRuntime {
		logger.Debug("event emit skipped (not in Wails runtime)",
			logger.String("event", eventName))
		return
	}
	runtime.EventsEmit(a.ctx, eventName, data...)
}

// startup is called when the app starts. The context is saved so we can call
// the runtime methods, and all managers are initialized.
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
	logger.Info("application starting up")

	if a.config == nil {
		configMgr, err := config.NewConfigManager("")
		if err != nil {
			logger.Error("failed to create config manager", err)
			return
		}
		a.config = configMgr
	}
	if err := a.config.Load(); err != nil {
		logger.Warn("failed to load config, using defaults", logger.Err(err))
	}

	if a.settings == nil {
		settingsMgr, err := settings.NewManager()
		if err != nil {
			logger.Warn("failed to create settings manager", logger.Err(err))
		} else {
			a.settings = settingsMgr
		}
	}

	cfg := a.config.Get()
	a.fetcher = fetch.NewFetcher(cfg.MaxDownloadSizeMB)

	recentMgr, err := recent.NewManager("")
	if err != nil {
		logger.Warn("recent-documents library unavailable", logger.Err(err))
	} else {
		a.recent = recentMgr
	}

	logger.Info("application started")
}

// shutdown is called when the app terminates
func (a *App) shutdown(ctx context.Context) {
	logger.Info("application shutting down")

	a.sessionMu.Lock()
	if a.session != nil {
		if err := a.session.Close(); err != nil {
			logger.Warn("failed to close document session", logger.Err(err))
		}
		a.session = nil
	}
	a.sessionMu.Unlock()

	if a.config != nil {
		if err := a.config.Save(); err != nil {
			logger.Warn("failed to save config on shutdown", logger.Err(err))
		}
	}
	logger.Close()
}

// appCtx returns the runtime context, falling back to Background outside Wails
func (a *App) appCtx() context.Context {
	if a.ctx != nil {
		return a.ctx
	}
	return context.Background()
}

// currentSession returns the active session, nil before the first load
func (a *App) currentSession() *session.Session {
	a.sessionMu.RLock()
	defer a.sessionMu.RUnlock()
	return a.session
}

// setStatus updates the load pipeline status and notifies the frontend
func (a *App) setStatus(phase types.LoadPhase, progress int, message string) {
	a.statusMu.Lock()
	a.status = &types.Status{Phase: phase, Progress: progress, Message: message}
	status := *a.status
	a.statusMu.Unlock()

	logger.Debug("status updated",
		logger.String("phase", string(phase)),
		logger.Int("progress", progress))
	a.safeEmit(EventLoadStatus, status)
}

// failStatus records a load failure without discarding the current document
func (a *App) failStatus(err error) {
	a.statusMu.Lock()
	a.status = &types.Status{
		Phase:   types.PhaseLoadFailed,
		Message: "document load failed",
		Error:   err.Error(),
	}
	status := *a.status
	a.statusMu.Unlock()

	a.safeEmit(EventLoadStatus, status)
	a.safeEmit(EventNotice, err.Error())
}

// GetStatus returns the current load pipeline status
func (a *App) GetStatus() *types.Status {
	a.statusMu.RLock()
	defer a.statusMu.RUnlock()
	status := *a.status
	return &status
}

// OpenInput classifies the given reference and loads it as a local file or a
// URL accordingly
func (a *App) OpenInput(in string) (*DocumentDTO, error) {
	sourceType, err := input.ParseInput(in)
	if err != nil {
		a.failStatus(err)
		return nil, err
	}

	switch sourceType {
	case input.SourceTypeURL:
		return a.LoadDocumentFromURL(in)
	default:
		return a.LoadDocument(strings.TrimSpace(in))
	}
}

// LoadDocument opens a local PDF file and makes it the active document.
// On failure the previous document, if any, stays loaded and usable.
func (a *App) LoadDocument(path string) (*DocumentDTO, error) {
	a.setStatus(types.PhaseDecoding, 20, "opening document")

	doc, err := decoder.Open(path)
	if err != nil {
		logger.Error("failed to open document", err, logger.String("path", path))
		a.failStatus(err)
		return nil, err
	}
	return a.install(doc, path)
}

// LoadDocumentFromURL downloads a PDF and makes it the active document
func (a *App) LoadDocumentFromURL(url string) (*DocumentDTO, error) {
	a.setStatus(types.PhaseFetching, 10, "downloading document")

	if a.fetcher == nil {
		a.fetcher = fetch.NewFetcher(a.config.Get().MaxDownloadSizeMB)
	}
	data, err := a.fetcher.FetchDocument(url)
	if err != nil {
		logger.Error("failed to fetch document", err, logger.String("url", url))
		a.failStatus(err)
		return nil, err
	}

	a.setStatus(types.PhaseDecoding, 30, "opening document")
	doc, err := decoder.OpenBytes(data, a.config.Get().WorkDirectory)
	if err != nil {
		logger.Error("failed to decode fetched document", err, logger.String("url", url))
		a.failStatus(err)
		return nil, err
	}
	return a.install(doc, url)
}

// install builds a session around an opened document, swaps it in for the
// previous one and seeds the initial page.
func (a *App) install(doc *decoder.PDFDocument, source string) (*DocumentDTO, error) {
	cfg := a.config.Get()
	info := doc.Info()

	a.setStatus(types.PhaseIndexing, 60, "indexing text")
	s := session.New(a.appCtx(), doc, cfg, a.deviceClass(), pagination.ModeSingle, a)

	a.sessionMu.Lock()
	old := a.session
	a.session = s
	a.sessionMu.Unlock()
	if old != nil {
		if err := old.Close(); err != nil {
			logger.Warn("failed to close previous document", logger.Err(err))
		}
	}

	a.viewMu.Lock()
	availW, availH := a.availW, a.availH
	seed := a.pendingPag
	a.pendingPag = 0
	a.viewMu.Unlock()

	s.Plan(availW, availH)

	if seed < 1 || seed > doc.PageCount() {
		seed = 1
		if a.recent != nil {
			if page, ok := a.recent.LastPage(source); ok && page >= 1 && page <= doc.PageCount() {
				seed = page
			}
		}
	}

	if a.recent != nil {
		if err := a.recent.Record(source, displayName(source), info.PageCount); err != nil {
			logger.Warn("failed to record recent document", logger.Err(err))
		}
	}
	cfg.LastFile = source
	if err := a.config.Update(cfg); err != nil {
		logger.Warn("failed to persist last file", logger.Err(err))
	}

	a.setStatus(types.PhasePrefetch, 85, "rendering pages")
	s.Pages.GoToPage(seed)

	a.setStatus(types.PhaseReady, 100, "ready")
	dto := &DocumentDTO{
		FilePath:  info.FilePath,
		FileName:  info.FileName,
		PageCount: info.PageCount,
		HasText:   info.HasText,
		Page:      s.Pages.CurrentPage(),
		Mode:      string(s.Pages.Mode()),
		Device:    string(s.Pages.Device()),
	}
	a.safeEmit(EventDocumentReady, dto)

	logger.Info("document loaded",
		logger.String("source", source),
		logger.Int("pages", info.PageCount),
		logger.Bool("hasText", info.HasText))
	return dto, nil
}

// deviceClass resolves the device class from the local settings override
func (a *App) deviceClass() pagination.DeviceClass {
	if a.settings != nil && a.settings.DeviceClass() == string(pagination.DeviceMobile) {
		return pagination.DeviceMobile
	}
	return pagination.DeviceDesktop
}

// PageSettled implements pagination.Listener: the reading position changed
func (a *App) PageSettled(page int) {
	a.safeEmit(EventPageSettled, page)

	if a.recent != nil && a.config != nil {
		if err := a.recent.SetLastPage(a.config.Get().LastFile, page); err != nil {
			logger.Warn("failed to persist reading position", logger.Err(err))
		}
	}
}

// RenderSetChanged implements pagination.Listener: a new set of pages needs
// rendering. The batch runs off the caller so page turns never wait on
// rasterization.
func (a *App) RenderSetChanged(pages []int) {
	s := a.currentSession()
	if s == nil || len(pages) == 0 {
		return
	}
	a.safeEmit(EventRenderSetChanged, pages)

	w, h := s.PlannedSize()
	go func() {
		if err := s.Renderer.RenderAll(a.appCtx(), pages, w, h); err != nil {
			logger.Warn("render batch aborted", logger.Err(err))
			return
		}
		a.safeEmit(EventRenderSetReady, pages)
	}()
}

// Notify implements pagination.Listener: forward a toast to the frontend
func (a *App) Notify(message string) {
	a.safeEmit(EventNotice, message)
}

// GetPageImage renders (or fetches from cache) one page at the currently
// planned size and returns it as a base64 PNG with its overlay
func (a *App) GetPageImage(page int) (*PageImageDTO, error) {
	s := a.currentSession()
	if s == nil {
		return nil, types.NewAppError(types.ErrInvalidInput, "no document loaded", nil)
	}

	w, h := s.PlannedSize()
	artifact, err := s.Renderer.Render(a.appCtx(), page, w, h)
	if err != nil {
		return nil, err
	}

	data, err := encodePNG(artifact.Bitmap)
	if err != nil {
		return nil, types.NewAppErrorWithPage(types.ErrRender, "failed to encode page image", page, err)
	}

	dto := &PageImageDTO{
		Page:          artifact.Page,
		Data:          data,
		BackingWidth:  artifact.BackingWidth,
		BackingHeight: artifact.BackingHeight,
		DisplayWidth:  artifact.DisplayWidth,
		DisplayHeight: artifact.DisplayHeight,
		Runs:          artifact.Runs,
		Placeholder:   artifact.Placeholder,
	}
	if artifact.Backside != nil {
		backside, err := encodePNG(artifact.Backside)
		if err != nil {
			return nil, types.NewAppErrorWithPage(types.ErrRender, "failed to encode page backside", page, err)
		}
		dto.Backside = backside
	}
	return dto, nil
}

// GetPageThumbnail renders a page and downscales it so the longest edge is
// maxDim pixels, returned as a base64 PNG
func (a *App) GetPageThumbnail(page, maxDim int) (string, error) {
	s := a.currentSession()
	if s == nil {
		return "", types.NewAppError(types.ErrInvalidInput, "no document loaded", nil)
	}

	w, h := s.PlannedSize()
	artifact, err := s.Renderer.Render(a.appCtx(), page, w, h)
	if err != nil {
		return "", err
	}
	return encodePNG(render.Thumbnail(artifact, maxDim))
}

// encodePNG serializes an image as a base64 PNG string
func encodePNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// GoToPage jumps the reading position; out-of-range pages are ignored
func (a *App) GoToPage(page int) {
	if s := a.currentSession(); s != nil {
		s.Pages.GoToPage(page)
	}
}

// NextPage advances one spread
func (a *App) NextPage() {
	if s := a.currentSession(); s != nil {
		s.Pages.Next()
	}
}

// PrevPage moves back one spread
func (a *App) PrevPage() {
	if s := a.currentSession(); s != nil {
		s.Pages.Prev()
	}
}

// CurrentPage returns the settled page, 0 before the first load
func (a *App) CurrentPage() int {
	if s := a.currentSession(); s != nil {
		return s.Pages.CurrentPage()
	}
	return 0
}

// CurrentSpread returns the visible spread
func (a *App) CurrentSpread() pagination.Spread {
	if s := a.currentSession(); s != nil {
		return s.Pages.CurrentSpread()
	}
	return pagination.Spread{}
}

// ToggleViewMode switches between single and double layout. The render cache
// is cleared before the switch: artifacts planned for the old layout are at
// the wrong resolution for the new one.
func (a *App) ToggleViewMode() string {
	s := a.currentSession()
	if s == nil {
		return ""
	}
	if s.Pages.Device() == pagination.DeviceMobile {
		// The controller rejects this itself and raises the notice.
		return string(s.Pages.ToggleMode())
	}

	nextDouble := s.Pages.Mode() != pagination.ModeDouble
	s.Cache.Clear()
	s.Renderer.SetBacksides(!nextDouble)
	s.PlanForMode(nextDouble)
	return string(s.Pages.ToggleMode())
}

// SetDeviceClass switches the device class and persists the override.
// Switching to mobile collapses the layout to single mode.
func (a *App) SetDeviceClass(class string) error {
	device := pagination.DeviceClass(class)
	if device != pagination.DeviceDesktop && device != pagination.DeviceMobile {
		return types.NewAppError(types.ErrInvalidInput, "unknown device class: "+class, nil)
	}

	if a.settings != nil {
		if err := a.settings.SetDeviceClass(class); err != nil {
			logger.Warn("failed to persist device class", logger.Err(err))
		}
	}

	s := a.currentSession()
	if s == nil {
		return nil
	}
	if device == pagination.DeviceMobile && s.Pages.Mode() == pagination.ModeDouble {
		s.Cache.Clear()
		s.Renderer.SetBacksides(true)
		s.PlanForMode(false)
	}
	s.Pages.SetDeviceClass(device)
	return nil
}

// Resize reports new viewport dimensions. The page size is replanned; when
// the planned page width moved beyond the configured threshold the cache is
// invalidated and the visible set re-rendered.
func (a *App) Resize(availWidth, availHeight int) {
	a.viewMu.Lock()
	a.availW = availWidth
	a.availH = availHeight
	a.viewMu.Unlock()

	s := a.currentSession()
	if s == nil {
		return
	}

	_, _, cleared := s.Plan(availWidth, availHeight)
	if cleared {
		a.RenderSetChanged(s.Pages.RenderSet(s.Pages.CurrentPage()))
	}
}

// OrientationChanged reports a device orientation swap. The viewport
// dimensions trade places, which in practice always crosses the resize
// threshold, so this goes through the same replanning path as a resize.
func (a *App) OrientationChanged(availWidth, availHeight int) {
	logger.Info("orientation changed",
		logger.Int("availWidth", availWidth),
		logger.Int("availHeight", availHeight))
	a.Resize(availWidth, availHeight)
}

// TurnStarted forwards a turn-start event from the turn engine. Turn input
// arriving during an active pan gesture is dropped: pan and turn are
// mutually exclusive interpretations of the same drag.
func (a *App) TurnStarted(target int) {
	s := a.currentSession()
	if s == nil {
		return
	}
	if s.View.PanActive() {
		logger.Debug("turn input suppressed during pan", logger.Int("target", target))
		return
	}
	s.Pages.TurnStarted(target)
}

// TurnCompleted forwards a turn-complete event from the turn engine
func (a *App) TurnCompleted(page int) {
	s := a.currentSession()
	if s == nil {
		return
	}
	if s.View.PanActive() {
		logger.Debug("turn completion suppressed during pan", logger.Int("page", page))
		return
	}
	s.Pages.TurnCompleted(page)
}

// UnderneathPage returns the page to pre-expose beneath a turning sheet
func (a *App) UnderneathPage() int {
	if s := a.currentSession(); s != nil {
		return s.Pages.UnderneathPage()
	}
	return 0
}

// Search runs a query and jumps to the first match when there is one
func (a *App) Search(query string) search.Result {
	s := a.currentSession()
	if s == nil {
		return search.Result{Cursor: -1}
	}

	result := s.Search.Search(query)
	a.safeEmit(EventSearchResults, result)
	if result.Cursor >= 0 {
		s.Pages.GoToPage(result.Pages[result.Cursor])
	}
	return result
}

// SearchNext advances to the next matching page, wrapping past the last
func (a *App) SearchNext() int {
	s := a.currentSession()
	if s == nil {
		return 0
	}
	page, ok := s.Search.Next()
	if !ok {
		return 0
	}
	s.Pages.GoToPage(page)
	return page
}

// SearchPrev moves to the previous matching page, wrapping past the first
func (a *App) SearchPrev() int {
	s := a.currentSession()
	if s == nil {
		return 0
	}
	page, ok := s.Search.Prev()
	if !ok {
		return 0
	}
	s.Pages.GoToPage(page)
	return page
}

// ZoomIn applies one zoom step
func (a *App) ZoomIn() viewport.Matrix {
	if s := a.currentSession(); s != nil {
		return s.View.ZoomIn()
	}
	return viewport.Matrix{Zoom: 1}
}

// ZoomOut applies one zoom step down
func (a *App) ZoomOut() viewport.Matrix {
	if s := a.currentSession(); s != nil {
		return s.View.ZoomOut()
	}
	return viewport.Matrix{Zoom: 1}
}

// Pan shifts the view by a pixel delta
func (a *App) Pan(dx, dy float64) viewport.Matrix {
	if s := a.currentSession(); s != nil {
		return s.View.PanBy(dx, dy)
	}
	return viewport.Matrix{Zoom: 1}
}

// BeginPan marks the start of a pan gesture
func (a *App) BeginPan() {
	if s := a.currentSession(); s != nil {
		s.View.BeginPan()
	}
}

// EndPan marks the end of a pan gesture
func (a *App) EndPan() {
	if s := a.currentSession(); s != nil {
		s.View.EndPan()
	}
}

// BeginPinch starts a two-finger pinch gesture
func (a *App) BeginPinch(dist, centerX, centerY float64) {
	if s := a.currentSession(); s != nil {
		s.View.BeginPinch(dist, centerX, centerY)
	}
}

// UpdatePinch applies a pinch movement and returns the resulting transform
func (a *App) UpdatePinch(dist, centerX, centerY float64) viewport.Matrix {
	if s := a.currentSession(); s != nil {
		return s.View.UpdatePinch(dist, centerX, centerY)
	}
	return viewport.Matrix{Zoom: 1}
}

// EndPinch finishes a pinch gesture
func (a *App) EndPinch() {
	if s := a.currentSession(); s != nil {
		s.View.EndPinch()
	}
}

// ResetView restores the identity transform
func (a *App) ResetView() viewport.Matrix {
	if s := a.currentSession(); s != nil {
		return s.View.Reset()
	}
	return viewport.Matrix{Zoom: 1}
}

// GetViewMatrix returns the current zoom/pan transform
func (a *App) GetViewMatrix() viewport.Matrix {
	if s := a.currentSession(); s != nil {
		return s.View.Matrix()
	}
	return viewport.Matrix{Zoom: 1}
}

// SetPageFragment records a "page=<n>" fragment to apply on the next load.
// Invalid fragments are rejected; an out-of-range page is resolved at load
// time by falling back to the remembered or first page.
func (a *App) SetPageFragment(fragment string) error {
	page, err := ParsePageFragment(fragment)
	if err != nil {
		return err
	}
	a.viewMu.Lock()
	a.pendingPag = page
	a.viewMu.Unlock()
	return nil
}

// ParsePageFragment extracts the page number from a "page=<n>" URL fragment.
// A leading "#" is tolerated.
func ParsePageFragment(fragment string) (int, error) {
	fragment = strings.TrimPrefix(strings.TrimSpace(fragment), "#")
	value, ok := strings.CutPrefix(fragment, "page=")
	if !ok {
		return 0, types.NewAppError(types.ErrInvalidInput, "fragment does not carry a page reference", nil)
	}
	page, err := strconv.Atoi(value)
	if err != nil || page < 1 {
		return 0, types.NewAppError(types.ErrInvalidInput, "invalid page number in fragment: "+value, err)
	}
	return page, nil
}

// PageFragment returns the "page=<n>" fragment for the current reading
// position, "" before the first load. The frontend mirrors it into the URL
// so a reload restores the position.
func (a *App) PageFragment() string {
	s := a.currentSession()
	if s == nil {
		return ""
	}
	return fmt.Sprintf("page=%d", s.Pages.CurrentPage())
}

// GetCacheStats reports render cache size and hit statistics
func (a *App) GetCacheStats() CacheStatsDTO {
	s := a.currentSession()
	if s == nil {
		return CacheStatsDTO{}
	}
	hits, misses := s.Cache.Stats()
	return CacheStatsDTO{Entries: s.Cache.Len(), Hits: hits, Misses: misses}
}

// GetRecentDocuments returns the recent-documents library, newest first
func (a *App) GetRecentDocuments() []*recent.Entry {
	if a.recent == nil {
		return nil
	}
	return a.recent.List()
}

// RemoveRecentDocument drops one entry from the library
func (a *App) RemoveRecentDocument(path string) error {
	if a.recent == nil {
		return nil
	}
	return a.recent.Remove(path)
}

// GetDocumentInfo returns metadata for the loaded document
func (a *App) GetDocumentInfo() (*decoder.DocumentInfo, error) {
	s := a.currentSession()
	if s == nil {
		return nil, types.NewAppError(types.ErrInvalidInput, "no document loaded", nil)
	}
	info := s.Doc.Info()
	return &info, nil
}

// printDocumentInfo writes a plain-text document summary for CLI mode
func printDocumentInfo(path string) error {
	doc, err := decoder.Open(path)
	if err != nil {
		return err
	}
	defer doc.Close()

	info := doc.Info()
	fmt.Printf("File:      %s\n", info.FileName)
	fmt.Printf("Path:      %s\n", info.FilePath)
	fmt.Printf("Pages:     %d\n", info.PageCount)
	fmt.Printf("Size:      %d bytes\n", info.FileSize)
	fmt.Printf("Has text:  %v\n", info.HasText)

	for page := 1; page <= info.PageCount && page <= 3; page++ {
		w, h, err := doc.PageSize(page)
		if err != nil {
			fmt.Printf("Page %d:    size unavailable (%v)\n", page, err)
			continue
		}
		fmt.Printf("Page %d:    %.1f x %.1f pt\n", page, w, h)
	}
	return nil
}

// displayName returns a readable name for a source path or URL
func displayName(source string) string {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return source
	}
	return filepath.Base(source)
}
