package scrub

import (
	"context"
	"fmt"
	"image/color"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// App is an ebiten.Game hosting one pinned, scroll-scrubbed section with its
// nav, header and outro overlays.
//
// Window size changes reported by LayoutF are applied at the start of the
// next Update, so a resize and the repaint it triggers happen in one tick.
type App struct {
	cfg Config

	viewport *Viewport
	scroller *Scroller
	loader   *FrameLoader
	surface  *EbitenSurface
	canvas   *Canvas
	timeline *Timeline
	section  *Section

	nav, header, outro *Layer

	layoutW, layoutH, layoutScale float64

	// ScreenshotDir is where queued screenshots are written.
	ScreenshotDir string

	injectQueue     []float64
	screenshotQueue []string
	runner          *TestRunner

	memChecked bool
	closed     bool
}

// NewApp builds the page described by cfg over src and starts loading frames.
func NewApp(cfg Config, src FrameSource) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	SetDebugMode(cfg.Debug)

	w, h := float64(cfg.Window.Width), float64(cfg.Window.Height)
	a := &App{
		cfg:           cfg,
		viewport:      NewViewport(w, h, 1),
		layoutW:       w,
		layoutH:       h,
		layoutScale:   1,
		ScreenshotDir: cfg.ScreenshotDir,
	}

	if err := a.buildLayers(); err != nil {
		return nil, err
	}

	a.scroller = NewScroller(a.viewport, ebiten.TPS())
	a.scroller.Duration = float32(cfg.Scroll.Duration)
	a.scroller.WheelMultiplier = cfg.Scroll.WheelMultiplier
	a.scroller.TrailingViewports = cfg.Section.TrailingViewports

	a.loader = NewFrameLoader(context.Background(), src, LoaderOptions{Concurrency: cfg.Frames.Concurrency})
	a.surface = NewEbitenSurface(cfg.Window.Width, cfg.Window.Height)
	a.canvas = NewCanvas(a.surface)
	a.timeline = NewTimeline(a.nav, a.header, a.outro)

	a.section = NewSection(SectionConfig{
		Loader:   a.loader,
		Canvas:   a.canvas,
		Timeline: a.timeline,
		Engine:   a.scroller,
		Viewport: a.viewport,
		Pin: PinSpec{
			Distance: cfg.Section.PinViewports,
			Scrub:    cfg.Section.Scrub,
		},
		PlaybackSpan: cfg.Section.PlaybackSpan,
	})
	a.section.Mount()
	return a, nil
}

// buildLayers renders the overlay content.
func (a *App) buildLayers() error {
	o := a.cfg.Overlay
	var err error
	if a.nav, err = NewTextLayer("nav", o.Nav, o.NavSize, ColorWhite, Vec2{X: 0.5}); err != nil {
		return err
	}
	if a.header, err = NewTextLayer("header", o.Headline, o.HeadlineSize, ColorWhite, Vec2{X: 0.5, Y: 0.5}); err != nil {
		return err
	}

	outroText, err := TextImage(o.Outro, o.OutroSize, o.OutroSize/2, ColorWhite, Color{})
	if err != nil {
		return fmt.Errorf("outro layer: %w", err)
	}
	content := outroText
	if o.OutroURL != "" {
		qr, err := QRCodeImage(o.OutroURL, 4*int(o.OutroSize))
		if err != nil {
			return fmt.Errorf("outro layer: %w", err)
		}
		content = StackImages(o.OutroSize/2, outroText, ebiten.NewImageFromImage(qr))
	}
	a.outro = NewLayer("outro", content, Vec2{X: 0.5, Y: 0.5})
	return nil
}

// Section returns the hosted section.
func (a *App) Section() *Section {
	return a.section
}

// SetFrameObserver forwards applied section updates to o.
func (a *App) SetFrameObserver(o FrameObserver) {
	a.section.SetObserver(o)
}

// Scroller returns the scroll engine.
func (a *App) Scroller() *Scroller {
	return a.scroller
}

// Update applies pending layout, input and scrolling for one tick.
func (a *App) Update() error {
	if a.closed {
		return ebiten.Termination
	}
	// The runner finished on an earlier tick, so its last screenshot has
	// already been drawn.
	if a.runner != nil && a.runner.Done() && a.runner.exit {
		return ebiten.Termination
	}
	a.viewport.Set(a.layoutW, a.layoutH, a.layoutScale)

	if a.section.Update() && !a.memChecked {
		a.memChecked = true
		warnMemory(a.loader, a.cfg.MemoryBudget)
	}

	if a.runner != nil {
		a.runner.step(a)
	}
	a.processInput()
	a.scroller.Update(1 / float64(ebiten.TPS()))
	return nil
}

// processInput feeds one injected wheel event, or real input, to the
// scroller.
func (a *App) processInput() {
	if len(a.injectQueue) > 0 {
		notches := a.injectQueue[0]
		copy(a.injectQueue, a.injectQueue[1:])
		a.injectQueue = a.injectQueue[:len(a.injectQueue)-1]
		a.scroller.Wheel(notches)
		return
	}

	if _, dy := ebiten.Wheel(); dy != 0 {
		// Wheel up is positive; scrolling down the document is positive here.
		a.scroller.Wheel(-dy)
	}

	_, vh := a.viewport.Size()
	step := a.cfg.Scroll.KeyStep * vh
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown):
		a.scroller.ScrollBy(step)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp):
		a.scroller.ScrollBy(-step)
	case inpututil.IsKeyJustPressed(ebiten.KeyPageDown), inpututil.IsKeyJustPressed(ebiten.KeySpace):
		a.scroller.ScrollBy(vh)
	case inpututil.IsKeyJustPressed(ebiten.KeyPageUp):
		a.scroller.ScrollBy(-vh)
	case inpututil.IsKeyJustPressed(ebiten.KeyHome):
		a.scroller.ScrollTo(0)
	case inpututil.IsKeyJustPressed(ebiten.KeyEnd):
		a.scroller.ScrollTo(a.scroller.MaxScroll())
	}
}

// Draw composites the canvas and overlays, or the loading bar while frames
// are still settling.
func (a *App) Draw(screen *ebiten.Image) {
	vw, vh := a.viewport.Size()
	scale := a.viewport.Scale()

	if a.section.Active() {
		screen.DrawImage(a.surface.Image(), nil)
		perspective := a.cfg.Section.Perspective
		a.nav.Draw(screen, vw, vh, scale, perspective)
		a.header.Draw(screen, vw, vh, scale, perspective)
		a.outro.Draw(screen, vw, vh, scale, perspective)
	} else {
		settled, total := a.section.LoadProgress()
		drawLoadingBar(screen, settled, total, scale)
	}

	if a.cfg.ShowFPS {
		drawFPS(screen)
	}
	a.flushScreenshots(screen)
}

// Loading bar geometry in logical pixels.
const (
	loadingBarWidth  = 240.0
	loadingBarHeight = 4.0
)

var (
	loadingTrack = color.RGBA{0x33, 0x33, 0x33, 0xff}
	loadingFill  = color.RGBA{0xee, 0xee, 0xee, 0xff}
)

func drawLoadingBar(screen *ebiten.Image, settled, total int, scale float64) {
	b := screen.Bounds()
	w := float32(loadingBarWidth * scale)
	h := float32(loadingBarHeight * scale)
	x := (float32(b.Dx()) - w) / 2
	y := (float32(b.Dy()) - h) / 2
	frac := float32(1)
	if total > 0 {
		frac = float32(settled) / float32(total)
	}
	vector.DrawFilledRect(screen, x, y, w, h, loadingTrack, false)
	vector.DrawFilledRect(screen, x, y, w*frac, h, loadingFill, false)
}

// LayoutF records the window size for the next Update and returns a
// device-resolution screen.
func (a *App) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	scale := 1.0
	if m := ebiten.Monitor(); m != nil {
		scale = m.DeviceScaleFactor()
	}
	a.layoutW, a.layoutH, a.layoutScale = outsideWidth, outsideHeight, scale
	return outsideWidth * scale, outsideHeight * scale
}

// Layout implements ebiten.Game. Ebitengine prefers LayoutF.
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := a.LayoutF(float64(outsideWidth), float64(outsideHeight))
	return int(w), int(h)
}

// Close tears the section down and releases GPU resources. Update returns
// ebiten.Termination afterwards.
func (a *App) Close() {
	if a.closed {
		return
	}
	a.closed = true
	a.section.Teardown()
	a.surface.Dispose()
}

// SourceFromConfig returns an HTTP source when BaseURL is set and a
// directory source otherwise.
func SourceFromConfig(fc FrameConfig) FrameSource {
	tmpl := fc.Template
	if fc.BaseURL != "" {
		return NewHTTPSource(fc.BaseURL, fc.Count, tmpl, nil)
	}
	dir := tmpl.Dir
	if dir == "" {
		dir = "."
	}
	tmpl.Dir = ""
	return NewFSSource(os.DirFS(dir), fc.Count, tmpl)
}

// Run opens a window and runs the page described by cfg until it is closed.
// A non-nil runner drives scripted input and screenshots.
func Run(cfg Config, runner *TestRunner) error {
	app, err := NewApp(cfg, SourceFromConfig(cfg.Frames))
	if err != nil {
		return err
	}
	defer app.Close()
	if runner != nil {
		app.SetTestRunner(runner)
	}

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(app); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}
