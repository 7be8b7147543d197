package render

import "image"

// OverlayRun is one positioned text run in display-space pixels: the baseline
// position and font size are already scaled to the artifact's display size.
type OverlayRun struct {
	Text     string  `json:"text"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"` // baseline from the top edge
	FontSize float64 `json:"font_size"`
	FontName string  `json:"font_name"`
}

// PageArtifact is one rendered page: the supersampled backing bitmap, the
// intended display size the presentation layer downscales to, and the text
// overlay. Artifacts are immutable once created; the overlay is part of the
// artifact so it can never be observed without its bitmap.
type PageArtifact struct {
	Page          int
	Bitmap        image.Image
	Backside      image.Image // horizontally mirrored bitmap for the turn engine's underside; nil unless requested
	BackingWidth  int
	BackingHeight int
	DisplayWidth  int
	DisplayHeight int
	Runs          []OverlayRun
	Placeholder   bool
}
