package scrub

import "time"

// DefaultPinViewports is the scroll distance, in viewport heights, that the
// section stays pinned for.
const DefaultPinViewports = 7.0

// FrameEvent describes one applied progress update.
type FrameEvent struct {
	Progress float64
	Frame    int
	Drawn    bool
}

// FrameObserver is notified after each applied progress update.
type FrameObserver interface {
	OnFrame(FrameEvent)
}

// SectionConfig wires a Section to its collaborators. Loader, Canvas and
// Engine are required for the section to do anything; the rest are optional.
type SectionConfig struct {
	Loader   *FrameLoader
	Canvas   *Canvas
	Timeline *Timeline
	Engine   ScrollEngine
	Viewport *Viewport
	Observer FrameObserver

	// Pin is the pinned region. A zero Distance uses DefaultPinViewports.
	Pin PinSpec
	// PlaybackSpan overrides the mapper's frame playback span when non-zero.
	PlaybackSpan float64
}

// Section is a pinned, scroll-scrubbed image sequence. It stays inert until
// its loader has settled every frame; progress updates arriving earlier are
// dropped. Each applied update maps progress to a frame, paints it and writes
// the overlay timeline, synchronously and without allocating.
type Section struct {
	loader   *FrameLoader
	canvas   *Canvas
	timeline *Timeline
	engine   ScrollEngine
	viewport *Viewport
	observer FrameObserver

	pin    PinSpec
	mapper FrameMapper

	pinHandle    CallbackHandle
	resizeHandle CallbackHandle

	mounted  bool
	active   bool
	tornDown bool

	progress float64
	frame    int

	stats sectionStats
}

// sectionStats accumulates hot path timings for debug output.
type sectionStats struct {
	updates   int
	ignored   int
	drawn     int
	mapTime   time.Duration
	paintTime time.Duration
	overTime  time.Duration
}

// NewSection creates an unmounted section.
func NewSection(cfg SectionConfig) *Section {
	pin := cfg.Pin
	if pin.Distance <= 0 {
		pin.Distance = DefaultPinViewports
	}
	n := 0
	if cfg.Loader != nil {
		n = cfg.Loader.Len()
	}
	mapper := NewFrameMapper(n)
	if cfg.PlaybackSpan > 0 {
		mapper.PlaybackSpan = cfg.PlaybackSpan
	}
	return &Section{
		loader:   cfg.Loader,
		canvas:   cfg.Canvas,
		timeline: cfg.Timeline,
		engine:   cfg.Engine,
		viewport: cfg.Viewport,
		observer: cfg.Observer,
		pin:      pin,
		mapper:   mapper,
	}
}

// Mount registers the pin with the scroll engine and the resize listener with
// the viewport. Calling Mount again, or after Teardown, does nothing.
func (s *Section) Mount() {
	if s.mounted || s.tornDown {
		return
	}
	s.mounted = true
	if s.engine != nil {
		s.pinHandle = s.engine.Pin(s.pin, s.OnProgress)
	}
	if s.viewport != nil {
		s.resizeHandle = s.viewport.OnResize(s.onResize)
	}
}

// Update activates the section once every frame has settled. Call it once per
// tick; it returns whether the section is active.
func (s *Section) Update() bool {
	if s.active || s.tornDown || !s.mounted {
		return s.active
	}
	if s.loader == nil || s.canvas == nil || s.canvas.Surface() == nil {
		return false
	}
	select {
	case <-s.loader.Done():
	default:
		return false
	}
	s.activate()
	return true
}

func (s *Section) activate() {
	s.active = true
	if failed := s.loader.Failed(); len(failed) > 0 {
		debugf("section active with %d/%d frames missing: %v", len(failed), s.loader.Len(), failed)
	} else {
		debugf("section active with %d frames", s.loader.Len())
	}

	w, h, scale := 0.0, 0.0, 1.0
	if s.viewport != nil {
		w, h = s.viewport.Size()
		scale = s.viewport.Scale()
	}
	s.canvas.Resize(w, h, scale)
	s.frame = 0
	s.canvas.Render(s.loader.Frame(0))
	if s.engine != nil {
		s.engine.Refresh()
	}
}

// OnProgress applies scroll progress p. It does nothing before activation or
// after teardown.
func (s *Section) OnProgress(p float64) {
	if !s.active || s.tornDown {
		s.stats.ignored++
		return
	}
	s.stats.updates++
	s.progress = p

	debug := globalDebug.Load()
	var t0 time.Time
	if debug {
		t0 = time.Now()
	}

	s.frame = s.mapper.Index(p)

	if debug {
		s.stats.mapTime += time.Since(t0)
		t0 = time.Now()
	}

	drawn := s.canvas.Render(s.loader.Frame(s.frame))
	if drawn {
		s.stats.drawn++
	}

	if debug {
		s.stats.paintTime += time.Since(t0)
		t0 = time.Now()
	}

	s.timeline.Apply(p)

	if debug {
		s.stats.overTime += time.Since(t0)
		s.debugLog()
	}

	if s.observer != nil {
		s.observer.OnFrame(FrameEvent{Progress: p, Frame: s.frame, Drawn: drawn})
	}
}

// onResize resizes and repaints the canvas, then tells the engine the
// document geometry changed.
func (s *Section) onResize(width, height, scale float64) {
	if !s.active || s.tornDown {
		return
	}
	s.canvas.Resize(width, height, scale)
	if s.engine != nil {
		s.engine.Refresh()
	}
}

// Teardown releases the pin and resize registrations and stops outstanding
// loads. No callback has any effect afterwards. Safe to call more than once.
func (s *Section) Teardown() {
	if s.tornDown {
		return
	}
	s.tornDown = true
	s.active = false
	s.pinHandle.Remove()
	s.resizeHandle.Remove()
	s.pinHandle = CallbackHandle{}
	s.resizeHandle = CallbackHandle{}
	if s.loader != nil {
		s.loader.Close()
	}
}

// Active reports whether the section is applying progress updates.
func (s *Section) Active() bool {
	return s.active
}

// Progress returns the last applied progress.
func (s *Section) Progress() float64 {
	return s.progress
}

// Frame returns the last selected frame index.
func (s *Section) Frame() int {
	return s.frame
}

// LoadProgress returns settled and total frame counts.
func (s *Section) LoadProgress() (settled, total int) {
	if s.loader == nil {
		return 0, 0
	}
	return s.loader.Progress(), s.loader.Len()
}

// SetObserver replaces the frame observer. Nil disables notifications.
func (s *Section) SetObserver(o FrameObserver) {
	s.observer = o
}
