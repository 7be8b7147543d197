package render

import (
	"context"
	"errors"
	"image"
	"image/color"
	"math"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"flipbook-viewer/internal/decoder"
)

// fakeDecoder implements decoder.Decoder with deterministic geometry and
// call counting
type fakeDecoder struct {
	pages       int
	nativeW     float64
	nativeH     float64
	failPages   map[int]bool
	runs        map[int][]decoder.TextRun
	rasterDelay time.Duration
	rasterCalls atomic.Int64
}

func (d *fakeDecoder) PageCount() int { return d.pages }

func (d *fakeDecoder) PageSize(page int) (float64, float64, error) {
	if page < 1 || page > d.pages {
		return 0, 0, errors.New("page out of range")
	}
	return d.nativeW, d.nativeH, nil
}

func (d *fakeDecoder) Rasterize(ctx context.Context, page, width, height int) (image.Image, error) {
	d.rasterCalls.Add(1)
	if d.rasterDelay > 0 {
		time.Sleep(d.rasterDelay)
	}
	if d.failPages[page] {
		return nil, errors.New("rasterization failed")
	}

	// Leftmost column red, rest white, so mirroring is observable.
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		img.Set(0, y, color.RGBA{R: 0xff, A: 0xff})
		for x := 1; x < width; x++ {
			img.Set(x, y, color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})
		}
	}
	return img, nil
}

func (d *fakeDecoder) TextRuns(page int) ([]decoder.TextRun, error) {
	return d.runs[page], nil
}

func newTestDecoder(pages int) *fakeDecoder {
	return &fakeDecoder{
		pages:     pages,
		nativeW:   100,
		nativeH:   200,
		failPages: make(map[int]bool),
		runs:      make(map[int][]decoder.TextRun),
	}
}

func TestRendererDimensions(t *testing.T) {
	dec := newTestDecoder(5)
	r := NewRenderer(dec, NewCache(), 2, 1)

	// Native 100x200 into 50x100: fit scale 0.5, display 50x100, backing 100x200.
	a, err := r.Render(context.Background(), 1, 50, 100)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if a.DisplayWidth != 50 || a.DisplayHeight != 100 {
		t.Errorf("display = %dx%d, want 50x100", a.DisplayWidth, a.DisplayHeight)
	}
	if a.BackingWidth != 100 || a.BackingHeight != 200 {
		t.Errorf("backing = %dx%d, want 100x200", a.BackingWidth, a.BackingHeight)
	}
	if b := a.Bitmap.Bounds(); b.Dx() != 100 || b.Dy() != 200 {
		t.Errorf("bitmap = %dx%d, want backing 100x200", b.Dx(), b.Dy())
	}
	if a.Placeholder {
		t.Error("successful render marked as placeholder")
	}
}

func TestRendererCacheFirst(t *testing.T) {
	dec := newTestDecoder(5)
	r := NewRenderer(dec, NewCache(), 2, 1)

	if _, err := r.Render(context.Background(), 1, 50, 100); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if _, err := r.Render(context.Background(), 1, 50, 100); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if calls := dec.rasterCalls.Load(); calls != 1 {
		t.Errorf("rasterize calls = %d, want 1 (second request served from cache)", calls)
	}

	// A different resolution is a different key and renders again.
	if _, err := r.Render(context.Background(), 1, 25, 50); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if calls := dec.rasterCalls.Load(); calls != 2 {
		t.Errorf("rasterize calls = %d, want 2 after a new resolution", calls)
	}
}

func TestRendererStatsCountOneLookupPerRequest(t *testing.T) {
	dec := newTestDecoder(5)
	cache := NewCache()
	r := NewRenderer(dec, cache, 2, 1)

	// First request renders, second is served from cache. The in-flight
	// re-check must not inflate the miss counter.
	if _, err := r.Render(context.Background(), 1, 50, 100); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if _, err := r.Render(context.Background(), 1, 50, 100); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	hits, misses := cache.Stats()
	if hits != 1 || misses != 1 {
		t.Errorf("Stats() = (%d hits, %d misses), want (1, 1)", hits, misses)
	}
}

func TestRendererDeduplicatesConcurrentRequests(t *testing.T) {
	dec := newTestDecoder(5)
	dec.rasterDelay = 100 * time.Millisecond
	r := NewRenderer(dec, NewCache(), 2, 4)

	start := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			if _, err := r.Render(context.Background(), 1, 50, 100); err != nil {
				t.Errorf("Render() error = %v", err)
			}
		}()
	}
	close(start)
	wg.Wait()

	if calls := dec.rasterCalls.Load(); calls != 1 {
		t.Errorf("rasterize calls = %d, want 1 shared in-flight render", calls)
	}
}

func TestRendererPlaceholderOnFailure(t *testing.T) {
	dec := newTestDecoder(5)
	dec.failPages[3] = true
	r := NewRenderer(dec, NewCache(), 2, 1)

	a, err := r.Render(context.Background(), 3, 50, 100)
	if err != nil {
		t.Fatalf("Render() error = %v, want placeholder instead of failure", err)
	}
	if !a.Placeholder {
		t.Fatal("failed page did not produce a placeholder artifact")
	}
	if a.DisplayWidth != 50 || a.DisplayHeight != 100 {
		t.Errorf("placeholder display = %dx%d, want target 50x100", a.DisplayWidth, a.DisplayHeight)
	}
	if a.Bitmap == nil {
		t.Error("placeholder artifact carries no bitmap")
	}
}

func TestRendererOverlayScaling(t *testing.T) {
	dec := newTestDecoder(5)
	dec.runs[1] = []decoder.TextRun{
		{Text: "hello", X: 10, Y: 20, FontSize: 10, FontName: "F1"},
	}
	r := NewRenderer(dec, NewCache(), 2, 1)

	a, err := r.Render(context.Background(), 1, 50, 100)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if len(a.Runs) != 1 {
		t.Fatalf("runs = %d, want 1", len(a.Runs))
	}

	// Fit scale 0.5; native bottom-left origin flips to top-left.
	run := a.Runs[0]
	if math.Abs(run.X-5) > 1e-9 {
		t.Errorf("run X = %v, want 5", run.X)
	}
	if math.Abs(run.Y-90) > 1e-9 {
		t.Errorf("run Y = %v, want 90", run.Y)
	}
	if math.Abs(run.FontSize-5) > 1e-9 {
		t.Errorf("run font size = %v, want 5", run.FontSize)
	}
}

func TestRendererBacksides(t *testing.T) {
	dec := newTestDecoder(5)
	r := NewRenderer(dec, NewCache(), 2, 1)
	r.SetBacksides(true)

	a, err := r.Render(context.Background(), 1, 50, 100)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if a.Backside == nil {
		t.Fatal("backside requested but artifact carries none")
	}

	// The red left edge of the front must sit on the right edge of the back.
	b := a.Backside.Bounds()
	r16, g16, _, _ := a.Backside.At(b.Max.X-1, b.Min.Y).RGBA()
	if uint8(r16>>8) != 0xff || g16 != 0 {
		t.Error("backside is not a horizontal mirror of the front bitmap")
	}
}

func TestRendererNoBacksideByDefault(t *testing.T) {
	dec := newTestDecoder(5)
	r := NewRenderer(dec, NewCache(), 2, 1)

	a, err := r.Render(context.Background(), 1, 50, 100)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if a.Backside != nil {
		t.Error("backside produced without being requested")
	}
}

func TestRenderAllPopulatesCache(t *testing.T) {
	dec := newTestDecoder(6)
	cache := NewCache()
	r := NewRenderer(dec, cache, 2, 3)

	pages := []int{1, 2, 3, 4}
	if err := r.RenderAll(context.Background(), pages, 50, 100); err != nil {
		t.Fatalf("RenderAll() error = %v", err)
	}

	for _, page := range pages {
		if _, ok := cache.Get(Key{Page: page, Width: 50, Height: 100}); !ok {
			t.Errorf("page %d missing from cache after RenderAll", page)
		}
	}
}

func TestThumbnail(t *testing.T) {
	a := &PageArtifact{
		Page:   1,
		Bitmap: image.NewRGBA(image.Rect(0, 0, 400, 200)),
	}

	thumb := Thumbnail(a, 100)
	b := thumb.Bounds()
	if b.Dx() != 100 || b.Dy() != 50 {
		t.Errorf("thumbnail = %dx%d, want 100x50", b.Dx(), b.Dy())
	}

	// Already small enough: returned unscaled.
	small := &PageArtifact{Page: 1, Bitmap: image.NewRGBA(image.Rect(0, 0, 80, 40))}
	if got := Thumbnail(small, 100); got != small.Bitmap {
		t.Error("small bitmap was rescaled instead of returned as is")
	}
}
