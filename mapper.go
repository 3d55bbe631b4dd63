package scrub

import "math"

// DefaultPlaybackSpan is the share of scroll travel spent advancing frames.
// The remainder holds the last frame while only the overlays move.
const DefaultPlaybackSpan = 0.9

// FrameMapper converts scroll progress into a frame index.
type FrameMapper struct {
	Count        int
	PlaybackSpan float64
}

// NewFrameMapper returns a mapper over count frames with the default span.
func NewFrameMapper(count int) FrameMapper {
	return FrameMapper{Count: count, PlaybackSpan: DefaultPlaybackSpan}
}

// Index returns round(min(p/span, 1) * (Count-1)). Progress at or below 0
// (and NaN) maps to 0; progress at or beyond the span maps to Count-1.
func (m FrameMapper) Index(progress float64) int {
	if m.Count <= 1 {
		return 0
	}
	span := m.PlaybackSpan
	if !(span > 0) || span > 1 {
		span = DefaultPlaybackSpan
	}
	anim := progress / span
	if !(anim > 0) {
		return 0
	}
	if anim > 1 {
		anim = 1
	}
	return int(math.Round(anim * float64(m.Count-1)))
}
