// Package render implements the page rendering pipeline: resolution planning,
// the keyed artifact cache and the supersampling page renderer.
package render

import "math"

// PlanPageSize computes the target pixel dimensions for one page given the
// available viewport and the page's native aspect ratio (width/height).
//
// Height is the binding constraint: the page is sized to fill the available
// height at its aspect ratio. In double mode two pages sit side by side, so
// when the doubled width would exceed the available width, width becomes the
// binding constraint and height is re-derived from the aspect ratio. The
// result never falls below the floor dimensions and is always whole pixels.
// Pure function.
func PlanPageSize(availWidth, availHeight int, aspect float64, double bool, floorWidth, floorHeight int) (int, int) {
	if aspect <= 0 {
		aspect = float64(floorWidth) / float64(floorHeight)
	}

	height := availHeight
	width := int(math.Floor(float64(height) * aspect))

	needed := width
	if double {
		needed = width * 2
	}
	if needed > availWidth && availWidth > 0 {
		if double {
			width = availWidth / 2
		} else {
			width = availWidth
		}
		height = int(math.Floor(float64(width) / aspect))
	}

	if width < floorWidth {
		width = floorWidth
	}
	if height < floorHeight {
		height = floorHeight
	}
	return width, height
}
