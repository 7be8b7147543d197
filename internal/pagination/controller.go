package pagination

import (
	"sync"

	"flipbook-viewer/internal/logger"
)

// State is the page-turn lifecycle state the controller tracks
type State string

const (
	// StateIdle is the state before the first page settles
	StateIdle State = "idle"
	// StateFlipping is active while a turn animation is in progress
	StateFlipping State = "flipping"
	// StateRead is the settled reading state
	StateRead State = "read"
)

// Listener receives the controller's outbound signals. The presentation
// layer renders on RenderSetChanged and repositions on PageSettled; Notify
// is the fire-and-forget toast channel.
type Listener interface {
	PageSettled(page int)
	RenderSetChanged(pages []int)
	Notify(message string)
}

// Config carries the controller's fixed parameters for one document
type Config struct {
	PageCount     int
	Mode          ViewMode
	Device        DeviceClass
	SinglePreload int // preload radius around the page in single mode
	DoublePreload int // forward preload distance in double mode
	FlipLookahead int // eager window past the turn target while flipping
}

// Controller is the pagination state machine. It owns the current page and
// layout mode, reacts to turn-engine lifecycle events, and decides the
// render set after every settled page change.
type Controller struct {
	mu       sync.RWMutex
	cfg      Config
	current  int
	state    State
	listener Listener
}

// NewController creates a controller. A mobile device class forces single
// mode regardless of the requested mode.
func NewController(cfg Config, listener Listener) *Controller {
	if cfg.PageCount < 1 {
		cfg.PageCount = 1
	}
	if cfg.Mode == "" {
		cfg.Mode = ModeSingle
	}
	if cfg.Device == DeviceMobile {
		cfg.Mode = ModeSingle
	}
	if cfg.SinglePreload < 1 {
		cfg.SinglePreload = 2
	}
	if cfg.DoublePreload < 1 {
		cfg.DoublePreload = 4
	}
	if cfg.FlipLookahead < 1 {
		cfg.FlipLookahead = 6
	}
	return &Controller{
		cfg:      cfg,
		current:  1,
		state:    StateIdle,
		listener: listener,
	}
}

// CurrentPage returns the current 1-based page index
func (c *Controller) CurrentPage() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// PageCount returns the document's page count
func (c *Controller) PageCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cfg.PageCount
}

// Mode returns the active layout mode
func (c *Controller) Mode() ViewMode {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cfg.Mode
}

// Device returns the device class
func (c *Controller) Device() DeviceClass {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cfg.Device
}

// State returns the lifecycle state
func (c *Controller) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// CurrentSpread returns the spread containing the current page
func (c *Controller) CurrentSpread() Spread {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return SpreadOf(c.current, c.cfg.Mode, c.cfg.PageCount)
}

// GoToPage jumps to the given page. Out-of-range requests are silently
// ignored — callers rely on this for boundary handling, so a change here
// needs the boundary tests revisited.
func (c *Controller) GoToPage(page int) {
	c.mu.Lock()
	if page < 1 || page > c.cfg.PageCount {
		c.mu.Unlock()
		logger.Debug("ignoring out-of-range jump", logger.Int("page", page))
		return
	}
	c.settleLocked(page)
}

// Next advances to the following spread
func (c *Controller) Next() {
	c.mu.Lock()
	spread := SpreadOf(c.current, c.cfg.Mode, c.cfg.PageCount)
	target := spread.Last() + 1
	if target > c.cfg.PageCount {
		c.mu.Unlock()
		return
	}
	c.settleLocked(target)
}

// Prev moves back to the preceding spread
func (c *Controller) Prev() {
	c.mu.Lock()
	spread := SpreadOf(c.current, c.cfg.Mode, c.cfg.PageCount)
	target := spread.First() - 1
	if target < 1 {
		c.mu.Unlock()
		return
	}
	c.settleLocked(target)
}

// ToggleMode switches between single and double layout and returns the mode
// in effect afterwards. On mobile the toggle is rejected: the mode stays
// single and the user is notified through the toast channel.
func (c *Controller) ToggleMode() ViewMode {
	c.mu.Lock()
	if c.cfg.Device == DeviceMobile {
		mode := c.cfg.Mode
		c.mu.Unlock()
		logger.Info("view mode toggle rejected on mobile")
		c.listener.Notify("Two-page view is not available on this device")
		return mode
	}

	if c.cfg.Mode == ModeSingle {
		c.cfg.Mode = ModeDouble
	} else {
		c.cfg.Mode = ModeSingle
	}
	mode := c.cfg.Mode
	logger.Info("view mode toggled", logger.String("mode", string(mode)))

	// The spread around the current page changed, so the render set did too.
	c.settleLocked(c.current)
	return mode
}

// SetDeviceClass updates the device class. Switching to mobile forces
// single mode.
func (c *Controller) SetDeviceClass(device DeviceClass) {
	c.mu.Lock()
	c.cfg.Device = device
	if device == DeviceMobile && c.cfg.Mode != ModeSingle {
		c.cfg.Mode = ModeSingle
		c.settleLocked(c.current)
		return
	}
	c.mu.Unlock()
}

// TurnStarted is the turn-engine's turn-start lifecycle event. While the
// flip runs, pages up to the look-ahead window past the target are rendered
// eagerly so the animation never exposes an unrendered page.
func (c *Controller) TurnStarted(target int) {
	c.mu.Lock()
	if target < 1 {
		target = 1
	}
	if target > c.cfg.PageCount {
		target = c.cfg.PageCount
	}
	c.state = StateFlipping

	spread := SpreadOf(target, c.cfg.Mode, c.cfg.PageCount)
	first := spread.First()
	last := spread.Last() + c.cfg.FlipLookahead
	if last > c.cfg.PageCount {
		last = c.cfg.PageCount
	}
	pages := pageRange(first, last)
	c.mu.Unlock()

	logger.Debug("turn started",
		logger.Int("target", target),
		logger.Int("eager", len(pages)))
	c.listener.RenderSetChanged(pages)
}

// TurnCompleted is the turn-engine's turn-complete event: the flip settled
// on the given page. Any underside preview overlay is obsolete from here on;
// UnderneathPage returns 0 once the state leaves Flipping.
func (c *Controller) TurnCompleted(page int) {
	c.mu.Lock()
	if page < 1 {
		page = 1
	}
	if page > c.cfg.PageCount {
		page = c.cfg.PageCount
	}
	c.settleLocked(page)
}

// UnderneathPage returns the page the turn engine should pre-expose beneath
// the turning sheet: the right-hand page of the spread after the current
// one. Only meaningful in double mode while a flip is active; 0 otherwise.
func (c *Controller) UnderneathPage() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.cfg.Mode != ModeDouble || c.state != StateFlipping {
		return 0
	}
	spread := SpreadOf(c.current, c.cfg.Mode, c.cfg.PageCount)
	next := SpreadOf(spread.Last()+1, c.cfg.Mode, c.cfg.PageCount)
	return next.Right
}

// RenderSet returns the pages that must be rendered for the given settled
// page: the visible spread plus the preload window (±2 pages in single
// mode; one spread back and 4 pages forward in double mode). Ascending,
// deduplicated, clamped to the document.
func (c *Controller) RenderSet(page int) []int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.renderSetLocked(page)
}

func (c *Controller) renderSetLocked(page int) []int {
	spread := SpreadOf(page, c.cfg.Mode, c.cfg.PageCount)
	var first, last int
	if c.cfg.Mode == ModeDouble {
		first = spread.First() - 2
		last = spread.Last() + c.cfg.DoublePreload
	} else {
		first = page - c.cfg.SinglePreload
		last = page + c.cfg.SinglePreload
	}

	if first < 1 {
		first = 1
	}
	if last > c.cfg.PageCount {
		last = c.cfg.PageCount
	}
	return pageRange(first, last)
}

// settleLocked records the settled page and emits the outbound signals.
// The caller must hold the write lock; it is released here.
func (c *Controller) settleLocked(page int) {
	c.current = page
	c.state = StateRead
	pages := c.renderSetLocked(page)
	c.mu.Unlock()

	logger.Debug("page settled",
		logger.Int("page", page),
		logger.Int("renderSet", len(pages)))

	c.listener.PageSettled(page)
	c.listener.RenderSetChanged(pages)
}

// pageRange returns [first..last] inclusive
func pageRange(first, last int) []int {
	if last < first {
		return nil
	}
	pages := make([]int, 0, last-first+1)
	for p := first; p <= last; p++ {
		pages = append(pages, p)
	}
	return pages
}
