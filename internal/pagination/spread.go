// Package pagination owns the current page, the layout mode and the decision
// of which pages must be rendered eagerly around the reading position.
package pagination

// ViewMode selects how pages are laid out
type ViewMode string

const (
	// ModeSingle shows one page per spread
	ModeSingle ViewMode = "single"
	// ModeDouble shows facing pages, book style
	ModeDouble ViewMode = "double"
)

// DeviceClass distinguishes layouts that fit on the device
type DeviceClass string

const (
	DeviceDesktop DeviceClass = "desktop"
	DeviceMobile  DeviceClass = "mobile"
)

// Spread is the set of one or two pages displayed together. A zero value on
// either side means no page occupies that position.
type Spread struct {
	Left  int `json:"left"`
	Right int `json:"right"`
}

// SpreadOf returns the spread containing the given page.
//
// Double-mode pairing: page 1 is a lone cover on the right; pages then pair
// as (2,3), (4,5), ...; when the last page would start a new pair it stands
// alone as the back cover. This is the one source of truth for pairing —
// derived lookups (the underside preview included) must come through here.
func SpreadOf(page int, mode ViewMode, pageCount int) Spread {
	if page < 1 || page > pageCount {
		return Spread{}
	}
	if mode != ModeDouble {
		return Spread{Left: page}
	}

	if page == 1 {
		return Spread{Right: 1}
	}

	left := page
	if page%2 != 0 {
		left = page - 1
	}
	right := left + 1
	if right > pageCount {
		right = 0
	}
	return Spread{Left: left, Right: right}
}

// Pages returns the pages of the spread in ascending order
func (s Spread) Pages() []int {
	var pages []int
	if s.Left > 0 {
		pages = append(pages, s.Left)
	}
	if s.Right > 0 {
		pages = append(pages, s.Right)
	}
	return pages
}

// Contains reports whether the page is part of the spread
func (s Spread) Contains(page int) bool {
	return page > 0 && (s.Left == page || s.Right == page)
}

// First returns the lowest page of the spread, 0 for an empty spread
func (s Spread) First() int {
	if s.Left > 0 {
		return s.Left
	}
	return s.Right
}

// Last returns the highest page of the spread, 0 for an empty spread
func (s Spread) Last() int {
	if s.Right > 0 {
		return s.Right
	}
	return s.Left
}
