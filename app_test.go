package main

import (
	"context"
	"image"
	"path/filepath"
	"testing"

	"flipbook-viewer/internal/decoder"
	"flipbook-viewer/internal/pagination"
	"flipbook-viewer/internal/render"
	"flipbook-viewer/internal/session"
	"flipbook-viewer/internal/types"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	app, err := NewAppWithConfig(filepath.Join(t.TempDir(), "config.json"))
	if err != nil {
		t.Fatalf("NewAppWithConfig() error = %v", err)
	}
	return app
}

// stubDocument is an in-memory session.Document with fixed 600x800 pages
type stubDocument struct {
	pages int
}

func (d *stubDocument) PageCount() int { return d.pages }

func (d *stubDocument) PageSize(page int) (float64, float64, error) {
	return 600, 800, nil
}

func (d *stubDocument) Rasterize(ctx context.Context, page, width, height int) (image.Image, error) {
	return image.NewRGBA(image.Rect(0, 0, width, height)), nil
}

func (d *stubDocument) TextRuns(page int) ([]decoder.TextRun, error) {
	return nil, nil
}

func (d *stubDocument) Info() decoder.DocumentInfo {
	return decoder.DocumentInfo{FileName: "stub.pdf", PageCount: d.pages}
}

func (d *stubDocument) Close() error { return nil }

// installStubSession wires a session over stubDocument into the app, planned
// for a 1000x800 viewport (single mode plans 600x800 pages).
func installStubSession(t *testing.T, app *App, mode pagination.ViewMode) *session.Session {
	t.Helper()
	s := session.New(context.Background(), &stubDocument{pages: 10}, app.config.Get(),
		pagination.DeviceDesktop, mode, app)
	app.sessionMu.Lock()
	app.session = s
	app.sessionMu.Unlock()
	s.Plan(1000, 800)
	return s
}

func TestParsePageFragment(t *testing.T) {
	tests := []struct {
		fragment string
		want     int
		wantErr  bool
	}{
		{"page=12", 12, false},
		{"#page=3", 3, false},
		{"  page=1 ", 1, false},
		{"page=0", 0, true},
		{"page=-4", 0, true},
		{"page=abc", 0, true},
		{"chapter=2", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.fragment, func(t *testing.T) {
			got, err := ParsePageFragment(tt.fragment)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePageFragment(%q) error = %v, wantErr %v", tt.fragment, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParsePageFragment(%q) = %d, want %d", tt.fragment, got, tt.want)
			}
		})
	}
}

func TestSetPageFragment(t *testing.T) {
	app := newTestApp(t)

	if err := app.SetPageFragment("page=9"); err != nil {
		t.Fatalf("SetPageFragment() error = %v", err)
	}
	app.viewMu.Lock()
	pending := app.pendingPag
	app.viewMu.Unlock()
	if pending != 9 {
		t.Errorf("pending page = %d, want 9", pending)
	}

	if err := app.SetPageFragment("page=x"); err == nil {
		t.Error("SetPageFragment() accepted an invalid fragment")
	}
}

func TestAppBeforeFirstLoad(t *testing.T) {
	app := newTestApp(t)

	if page := app.CurrentPage(); page != 0 {
		t.Errorf("CurrentPage() = %d, want 0 with no document", page)
	}
	if result := app.Search("anything"); result.Cursor != -1 {
		t.Errorf("Search() cursor = %d, want -1 with no document", result.Cursor)
	}
	if stats := app.GetCacheStats(); stats != (CacheStatsDTO{}) {
		t.Errorf("GetCacheStats() = %+v, want zero stats", stats)
	}
	if m := app.GetViewMatrix(); m.Zoom != 1 {
		t.Errorf("GetViewMatrix() zoom = %v, want identity", m.Zoom)
	}
	if page := app.UnderneathPage(); page != 0 {
		t.Errorf("UnderneathPage() = %d, want 0", page)
	}
	if _, err := app.GetPageImage(1); err == nil {
		t.Error("GetPageImage() succeeded with no document")
	}

	// Navigation with no document must be a no-op, not a panic.
	app.NextPage()
	app.PrevPage()
	app.GoToPage(3)
	app.Resize(800, 600)
	app.TurnStarted(2)
	app.TurnCompleted(2)
}

func TestToggleViewModeDropsStaleArtifacts(t *testing.T) {
	app := newTestApp(t)
	s := installStubSession(t, app, pagination.ModeSingle)

	stale := render.Key{Page: 1, Width: 600, Height: 800}
	s.Cache.Put(stale, &render.PageArtifact{Page: 1})

	if mode := app.ToggleViewMode(); mode != string(pagination.ModeDouble) {
		t.Fatalf("ToggleViewMode() = %q, want double", mode)
	}
	if _, ok := s.Cache.Get(stale); ok {
		t.Error("artifact planned for the old layout survived the mode toggle")
	}
	if w, h := s.PlannedSize(); w != 500 || h != 666 {
		t.Errorf("planned size after toggle = %dx%d, want 500x666", w, h)
	}
}

func TestResizePastThresholdDropsStaleArtifacts(t *testing.T) {
	app := newTestApp(t)
	s := installStubSession(t, app, pagination.ModeSingle)

	stale := render.Key{Page: 1, Width: 600, Height: 800}
	s.Cache.Put(stale, &render.PageArtifact{Page: 1})

	// Height-only shrink: height binds, so the planned width drops to 525,
	// 75 px past the last plan.
	app.Resize(1000, 700)
	if _, ok := s.Cache.Get(stale); ok {
		t.Error("artifact survived a resize that moved the page width past the threshold")
	}

	// A small nudge replans to 547 and keeps warm entries.
	warm := render.Key{Page: 1, Width: 525, Height: 700}
	s.Cache.Put(warm, &render.PageArtifact{Page: 1})
	app.Resize(1000, 730)
	if _, ok := s.Cache.Get(warm); !ok {
		t.Error("sub-threshold resize dropped cached artifacts")
	}
}

func TestGetStatusInitial(t *testing.T) {
	app := newTestApp(t)

	status := app.GetStatus()
	if status.Phase != types.PhaseIdle {
		t.Errorf("Phase = %q, want idle", status.Phase)
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		source string
		want   string
	}{
		{"/books/atlas.pdf", "atlas.pdf"},
		{"https://example.com/docs/a.pdf", "https://example.com/docs/a.pdf"},
	}
	for _, tt := range tests {
		if got := displayName(tt.source); got != tt.want {
			t.Errorf("displayName(%q) = %q, want %q", tt.source, got, tt.want)
		}
	}
}
