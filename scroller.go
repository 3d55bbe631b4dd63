package scrub

import (
	"math"

	"github.com/charmbracelet/harmonica"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Scroll defaults mirror a typical smooth-scroll setup: a 1.2s exponential
// ease-out toward the wheel target.
const (
	DefaultScrollDuration = 1.2
	DefaultWheelStep      = 100.0
	DefaultTPS            = 60

	springSettle = 1e-4
)

// PinSpec describes a pinned region in units of viewport height.
type PinSpec struct {
	// Start is the document offset where pinning begins.
	Start float64
	// Distance is the scroll travel the region stays pinned for.
	Distance float64
	// Scrub is how many seconds reported progress lags behind the scroll
	// position. Zero reports the position directly.
	Scrub float64
}

// ProgressFunc receives pin progress in [0, 1].
type ProgressFunc func(progress float64)

// ScrollEngine is the scroll collaborator a Section registers with.
type ScrollEngine interface {
	Pin(spec PinSpec, fn ProgressFunc) CallbackHandle
	Refresh()
}

type pin struct {
	id      uint32
	spec    PinSpec
	fn      ProgressFunc
	removed bool

	start, end float64 // pixels

	progress float64
	velocity float64
	spring   harmonica.Spring
	emitted  float64
	fired    bool
}

// Scroller is a smooth scroll engine over a virtual document made of pinned
// regions. Position changes animate with a gween tween; each pin reports its
// progress through a critically damped harmonica spring when Scrub is set.
// All methods must be called from the update goroutine.
type Scroller struct {
	// Duration is the smooth scroll time in seconds. Zero jumps.
	Duration float32
	// Ease shapes the smooth scroll.
	Ease ease.TweenFunc
	// WheelMultiplier scales wheel deltas.
	WheelMultiplier float64
	// TrailingViewports is document content after the last pin.
	TrailingViewports float64

	viewport *Viewport
	tps      int

	pos, target float64
	maxScroll   float64
	tween       *gween.Tween

	pins   []*pin
	iter   []*pin
	depth  int
	nextID uint32
}

// NewScroller creates a scroller whose geometry follows vp. tps is the update
// rate used to step scrub springs; zero uses DefaultTPS.
func NewScroller(vp *Viewport, tps int) *Scroller {
	if tps <= 0 {
		tps = DefaultTPS
	}
	return &Scroller{
		Duration:        DefaultScrollDuration,
		Ease:            ease.OutExpo,
		WheelMultiplier: 1,
		viewport:        vp,
		tps:             tps,
	}
}

// Pin registers a pinned region. fn is called from Update whenever the
// region's progress changes and from Refresh.
func (s *Scroller) Pin(spec PinSpec, fn ProgressFunc) CallbackHandle {
	s.nextID++
	p := &pin{id: s.nextID, spec: spec, fn: fn}
	if spec.Scrub > 0 {
		p.spring = harmonica.NewSpring(harmonica.FPS(s.tps), 6/spec.Scrub, 1)
	}
	s.pins = append(s.pins, p)
	s.layout()
	p.progress = p.raw(s.pos)
	return CallbackHandle{id: p.id, reg: s}
}

func (s *Scroller) remove(id uint32) {
	for i, p := range s.pins {
		if p.id == id {
			p.removed = true
			copy(s.pins[i:], s.pins[i+1:])
			s.pins[len(s.pins)-1] = nil
			s.pins = s.pins[:len(s.pins)-1]
			s.layout()
			return
		}
	}
}

// Pins returns the number of registered pins.
func (s *Scroller) Pins() int {
	return len(s.pins)
}

// Refresh recomputes the document geometry from the viewport, clamps the
// scroll position and re-emits every pin's current progress.
func (s *Scroller) Refresh() {
	s.layout()
	s.each(func(p *pin) {
		if p.spec.Scrub <= 0 {
			p.progress = p.raw(s.pos)
		}
		p.emit(true)
	})
}

// layout derives pixel geometry from the viewport height.
func (s *Scroller) layout() {
	vh := s.viewportHeight()
	maxEnd := 0.0
	for _, p := range s.pins {
		p.start = p.spec.Start * vh
		p.end = p.start + p.spec.Distance*vh
		maxEnd = max(maxEnd, p.end)
	}
	s.maxScroll = maxEnd + s.TrailingViewports*vh
	s.pos = s.clamp(s.pos)
	s.target = s.clamp(s.target)
}

func (s *Scroller) viewportHeight() float64 {
	if s.viewport == nil {
		return 0
	}
	_, h := s.viewport.Size()
	return h
}

func (s *Scroller) clamp(y float64) float64 {
	return math.Max(0, math.Min(y, s.maxScroll))
}

// Position returns the current scroll offset in pixels.
func (s *Scroller) Position() float64 {
	return s.pos
}

// Target returns the offset the scroll is animating toward.
func (s *Scroller) Target() float64 {
	return s.target
}

// MaxScroll returns the largest scroll offset.
func (s *Scroller) MaxScroll() float64 {
	return s.maxScroll
}

// Wheel scrolls by a wheel delta in notches; positive moves down the document.
func (s *Scroller) Wheel(notches float64) {
	s.ScrollBy(notches * DefaultWheelStep * s.WheelMultiplier)
}

// ScrollBy animates the scroll target by delta pixels.
func (s *Scroller) ScrollBy(delta float64) {
	s.ScrollTo(s.target + delta)
}

// ScrollTo animates toward offset y.
func (s *Scroller) ScrollTo(y float64) {
	s.target = s.clamp(y)
	if s.Duration <= 0 || s.Ease == nil {
		s.pos = s.target
		s.tween = nil
		return
	}
	s.tween = gween.New(float32(s.pos), float32(s.target), s.Duration, s.Ease)
}

// JumpTo moves to offset y immediately.
func (s *Scroller) JumpTo(y float64) {
	s.target = s.clamp(y)
	s.pos = s.target
	s.tween = nil
}

// ScrollToProgress animates so that the first pin reaches progress p.
func (s *Scroller) ScrollToProgress(p float64) {
	if len(s.pins) == 0 {
		return
	}
	first := s.pins[0]
	s.ScrollTo(lerp(first.start, first.end, clamp01(p)))
}

// Update advances the smooth scroll by dt seconds and notifies pins whose
// progress changed.
func (s *Scroller) Update(dt float64) {
	if s.tween != nil {
		val, done := s.tween.Update(float32(dt))
		s.pos = s.clamp(float64(val))
		if done {
			s.pos = s.target
			s.tween = nil
		}
	}
	s.each(func(p *pin) {
		p.step(s.pos)
		p.emit(false)
	})
}

// each visits live pins over a snapshot so callbacks may remove pins or call
// back into the scroller. Only the outermost visit reuses iter.
func (s *Scroller) each(fn func(*pin)) {
	var pins []*pin
	if s.depth == 0 {
		s.iter = append(s.iter[:0], s.pins...)
		pins = s.iter
	} else {
		pins = append(pins, s.pins...)
	}
	s.depth++
	for _, p := range pins {
		if !p.removed {
			fn(p)
		}
	}
	s.depth--
	if s.depth == 0 {
		clear(s.iter)
	}
}

// raw returns the unsmoothed progress at scroll offset y.
func (p *pin) raw(y float64) float64 {
	if p.end <= p.start {
		if y >= p.end {
			return 1
		}
		return 0
	}
	return clamp01((y - p.start) / (p.end - p.start))
}

// step moves progress toward the raw value, through the spring when scrubbed.
func (p *pin) step(y float64) {
	target := p.raw(y)
	if p.spec.Scrub <= 0 {
		p.progress = target
		return
	}
	p.progress, p.velocity = p.spring.Update(p.progress, p.velocity, target)
	if math.Abs(p.progress-target) < springSettle && math.Abs(p.velocity) < springSettle {
		p.progress, p.velocity = target, 0
	}
}

// emit calls fn when progress changed since the last call, or when forced.
func (p *pin) emit(force bool) {
	v := clamp01(p.progress)
	if !force && p.fired && v == p.emitted {
		return
	}
	p.emitted, p.fired = v, true
	p.fn(v)
}
