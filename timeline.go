package scrub

import "math"

// Band boundaries and depths of the overlay timeline, in scroll progress and
// depth units respectively.
const (
	NavFadeEnd = 0.1

	HeaderFadeStart = 0.2
	HeaderEnd       = 0.25
	HeaderDepth     = -500.0

	OutroStart     = 0.7
	OutroOpaqueAt  = 0.85
	OutroEnd       = 1.0
	OutroFarDepth  = 1000.0
	OutroNearDepth = 0.0
)

// Layer offsets as a fraction of the layer's own size.
var (
	centered    = Vec2{X: -0.5, Y: -0.5}
	topCentered = Vec2{X: -0.5}
)

// OverlayState is the visual state of one overlay layer.
type OverlayState struct {
	Opacity float64
	// Depth is the translation along the view axis; positive moves toward the
	// viewer.
	Depth float64
	// Translate offsets the layer by a fraction of its own size.
	Translate Vec2
}

// OverlayTarget receives computed overlay state.
type OverlayTarget interface {
	SetOverlay(OverlayState)
}

// NavOverlay fades the navigation bar out over the first tenth of travel.
func NavOverlay(p float64) OverlayState {
	switch {
	case p <= 0:
		return OverlayState{Opacity: 1, Translate: topCentered}
	case p <= NavFadeEnd:
		return OverlayState{Opacity: 1 - p/NavFadeEnd, Translate: topCentered}
	default:
		return OverlayState{Opacity: 0, Translate: topCentered}
	}
}

// HeaderOverlay pushes the headline away in depth up to HeaderEnd, fading it
// during the last part of that band.
func HeaderOverlay(p float64) OverlayState {
	if p < 0 {
		p = 0
	}
	if p >= HeaderEnd {
		return OverlayState{Opacity: 0, Depth: HeaderDepth, Translate: centered}
	}
	opacity := 1.0
	if p >= HeaderFadeStart {
		fade := (p - HeaderFadeStart) / (HeaderEnd - HeaderFadeStart)
		if fade > 1 {
			fade = 1
		}
		opacity = 1 - fade
	}
	return OverlayState{
		Opacity:   opacity,
		Depth:     (p / HeaderEnd) * HeaderDepth,
		Translate: centered,
	}
}

// OutroOverlay brings the closing section in from far in front of the viewer
// over the last stretch of travel, fading in during its first half. From
// OutroEnd on it is at rest.
func OutroOverlay(p float64) OverlayState {
	switch {
	case p < OutroStart:
		return OverlayState{Opacity: 0, Depth: OutroFarDepth, Translate: centered}
	case p < OutroEnd:
		t := (p - OutroStart) / (OutroEnd - OutroStart)
		opacity := 1.0
		if p <= OutroOpaqueAt {
			opacity = clamp01((p - OutroStart) / (OutroOpaqueAt - OutroStart))
		}
		return OverlayState{
			Opacity:   opacity,
			Depth:     lerp(OutroFarDepth, OutroNearDepth, t),
			Translate: centered,
		}
	default:
		return OverlayState{Opacity: 1, Depth: OutroNearDepth, Translate: centered}
	}
}

// Timeline writes overlay state for the three layers. Targets are captured
// once; a nil target is skipped.
type Timeline struct {
	Nav    OverlayTarget
	Header OverlayTarget
	Outro  OverlayTarget
}

// NewTimeline creates a timeline over the given targets.
func NewTimeline(nav, header, outro OverlayTarget) *Timeline {
	return &Timeline{Nav: nav, Header: header, Outro: outro}
}

// Apply computes every layer's state for progress p and writes it. NaN is
// treated as 0.
func (t *Timeline) Apply(p float64) {
	if t == nil {
		return
	}
	if math.IsNaN(p) {
		p = 0
	}
	if t.Nav != nil {
		t.Nav.SetOverlay(NavOverlay(p))
	}
	if t.Header != nil {
		t.Header.SetOverlay(HeaderOverlay(p))
	}
	if t.Outro != nil {
		t.Outro.SetOverlay(OutroOverlay(p))
	}
}
