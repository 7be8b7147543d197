package render

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"math"
	"sync"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"flipbook-viewer/internal/decoder"
	"flipbook-viewer/internal/logger"
)

const placeholderLabel = "page unavailable"

// Renderer produces page artifacts from the document decoder and populates
// the cache. Renders are cache-first and deduplicated per key: OS threads are
// real here, so concurrent requests for the same (page, width, height) share
// one rasterization instead of racing duplicate work.
type Renderer struct {
	dec         decoder.Decoder
	cache       *Cache
	supersample int
	concurrency int
	group       singleflight.Group

	mu        sync.RWMutex
	backsides bool
}

// NewRenderer creates a renderer over the given decoder and cache.
// supersample is the oversampling factor applied over fit scale (min 2);
// concurrency bounds parallel renders in batch operations.
func NewRenderer(dec decoder.Decoder, cache *Cache, supersample, concurrency int) *Renderer {
	if supersample < 2 {
		supersample = 2
	}
	if concurrency < 1 {
		concurrency = 1
	}
	return &Renderer{
		dec:         dec,
		cache:       cache,
		supersample: supersample,
		concurrency: concurrency,
	}
}

// SetBacksides controls whether artifacts carry a mirrored backside bitmap.
// Single-page mode needs it for the turn engine's underside rendering.
// The owner clears the cache when the layout mode changes, so existing
// entries never disagree with this flag.
func (r *Renderer) SetBacksides(enabled bool) {
	r.mu.Lock()
	r.backsides = enabled
	r.mu.Unlock()
}

// Render returns the artifact for (page, targetWidth, targetHeight), serving
// from cache when possible. Per-page failures degrade to a placeholder
// artifact: one bad page must never stall pagination.
func (r *Renderer) Render(ctx context.Context, page, targetWidth, targetHeight int) (*PageArtifact, error) {
	key := Key{Page: page, Width: targetWidth, Height: targetHeight}
	if a, ok := r.cache.Get(key); ok {
		return a, nil
	}

	v, err, _ := r.group.Do(key.String(), func() (interface{}, error) {
		// Re-check under the flight: a concurrent render may have landed.
		// Uncounted so the outer Get stays the one stats sample per request.
		if a, ok := r.cache.peek(key); ok {
			return a, nil
		}
		a := r.renderPage(ctx, page, targetWidth, targetHeight)
		r.cache.Put(key, a)
		return a, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*PageArtifact), nil
}

// RenderAll renders every listed page at the same target size. Individual
// failures are already absorbed as placeholders, so the batch always
// processes every page.
func (r *Renderer) RenderAll(ctx context.Context, pages []int, targetWidth, targetHeight int) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)

	for _, page := range pages {
		page := page
		g.Go(func() error {
			_, err := r.Render(ctx, page, targetWidth, targetHeight)
			return err
		})
	}
	return g.Wait()
}

// renderPage performs one rasterization. It never fails: decode errors
// produce a placeholder artifact at the target dimensions.
func (r *Renderer) renderPage(ctx context.Context, page, targetWidth, targetHeight int) *PageArtifact {
	nativeWidth, nativeHeight, err := r.dec.PageSize(page)
	if err != nil || nativeWidth <= 0 || nativeHeight <= 0 {
		logger.Warn("page geometry unavailable, using placeholder",
			logger.Int("page", page), logger.Err(err))
		return r.placeholder(page, targetWidth, targetHeight)
	}

	fitScale := math.Min(float64(targetWidth)/nativeWidth, float64(targetHeight)/nativeHeight)
	displayWidth := int(math.Floor(nativeWidth * fitScale))
	displayHeight := int(math.Floor(nativeHeight * fitScale))
	backingWidth := displayWidth * r.supersample
	backingHeight := displayHeight * r.supersample

	img, err := r.dec.Rasterize(ctx, page, backingWidth, backingHeight)
	if err != nil {
		logger.Warn("page rasterization failed, using placeholder",
			logger.Int("page", page), logger.Err(err))
		return r.placeholder(page, targetWidth, targetHeight)
	}

	runs, err := r.dec.TextRuns(page)
	if err != nil {
		// Text failure degrades the overlay only; the bitmap still renders.
		logger.Warn("text extraction failed for page overlay",
			logger.Int("page", page), logger.Err(err))
		runs = nil
	}

	a := &PageArtifact{
		Page:          page,
		Bitmap:        img,
		BackingWidth:  backingWidth,
		BackingHeight: backingHeight,
		DisplayWidth:  displayWidth,
		DisplayHeight: displayHeight,
		Runs:          overlayRuns(runs, nativeHeight, fitScale),
	}

	r.mu.RLock()
	backsides := r.backsides
	r.mu.RUnlock()
	if backsides {
		a.Backside = mirrorHorizontal(img)
	}

	logger.Debug("page rendered",
		logger.Int("page", page),
		logger.Int("displayWidth", displayWidth),
		logger.Int("displayHeight", displayHeight),
		logger.Int("runs", len(a.Runs)))

	return a
}

// overlayRuns converts native-space text runs to display-space pixel runs.
// Native page coordinates have a bottom-left origin; display space is
// top-left.
func overlayRuns(runs []decoder.TextRun, nativeHeight, fitScale float64) []OverlayRun {
	if len(runs) == 0 {
		return nil
	}
	out := make([]OverlayRun, 0, len(runs))
	for _, run := range runs {
		out = append(out, OverlayRun{
			Text:     run.Text,
			X:        run.X * fitScale,
			Y:        (nativeHeight - run.Y) * fitScale,
			FontSize: run.FontSize * fitScale,
			FontName: run.FontName,
		})
	}
	return out
}

// placeholder builds the flat-fill artifact used when a page cannot be
// decoded or rasterized.
func (r *Renderer) placeholder(page, targetWidth, targetHeight int) *PageArtifact {
	if targetWidth < 1 {
		targetWidth = 1
	}
	if targetHeight < 1 {
		targetHeight = 1
	}

	img := image.NewRGBA(image.Rect(0, 0, targetWidth, targetHeight))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.RGBA{R: 0xf2, G: 0xf2, B: 0xf2, A: 0xff}}, image.Point{}, draw.Src)

	face := basicfont.Face7x13
	label := placeholderLabel
	labelWidth := font.MeasureString(face, label).Ceil()
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.RGBA{R: 0x88, G: 0x88, B: 0x88, A: 0xff}),
		Face: face,
		Dot: fixed.P(
			(targetWidth-labelWidth)/2,
			targetHeight/2,
		),
	}
	d.DrawString(label)

	return &PageArtifact{
		Page:          page,
		Bitmap:        img,
		BackingWidth:  targetWidth,
		BackingHeight: targetHeight,
		DisplayWidth:  targetWidth,
		DisplayHeight: targetHeight,
		Placeholder:   true,
	}
}

// mirrorHorizontal flips an image left-to-right
func mirrorHorizontal(src image.Image) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			dst.Set(b.Dx()-1-x, y, src.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return dst
}

// Thumbnail downscales an artifact's backing bitmap so its longest edge is
// maxDim pixels, preserving aspect ratio.
func Thumbnail(a *PageArtifact, maxDim int) image.Image {
	if maxDim < 1 {
		maxDim = 1
	}
	b := a.Bitmap.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxDim && h <= maxDim {
		return a.Bitmap
	}

	scale := float64(maxDim) / float64(w)
	if h > w {
		scale = float64(maxDim) / float64(h)
	}
	tw := int(math.Max(1, math.Floor(float64(w)*scale)))
	th := int(math.Max(1, math.Floor(float64(h)*scale)))

	dst := image.NewRGBA(image.Rect(0, 0, tw, th))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), a.Bitmap, b, xdraw.Over, nil)
	return dst
}
