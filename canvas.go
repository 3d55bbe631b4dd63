package scrub

// Surface is the raster target a Canvas paints into. Coordinates passed to
// DrawFrame are backing-store (device) pixels.
type Surface interface {
	// Resize reallocates the backing store. Previous contents are lost.
	Resize(width, height int)
	// Clear fills the backing store with the clear color.
	Clear()
	// DrawFrame scales the frame's image into dst.
	DrawFrame(frame *FrameAsset, dst Rect)
}

// Canvas draws the selected frame onto a Surface with a cover fit. Logical
// sizes are in window units; the backing store is logical size times scale.
//
// A Canvas with a nil Surface has no drawing context and does nothing.
type Canvas struct {
	surface Surface

	width, height float64
	scale         float64

	selected *FrameAsset
	lastGood *FrameAsset

	paints int
}

// NewCanvas creates a canvas over s. s may be nil.
func NewCanvas(s Surface) *Canvas {
	return &Canvas{surface: s, scale: 1}
}

// Surface returns the underlying surface, possibly nil.
func (c *Canvas) Surface() Surface {
	return c.surface
}

// Size returns the logical canvas size.
func (c *Canvas) Size() (w, h float64) {
	return c.width, c.height
}

// Scale returns the device pixel ratio applied to the backing store.
func (c *Canvas) Scale() float64 {
	return c.scale
}

// Paints returns how many frames have actually been drawn.
func (c *Canvas) Paints() int {
	return c.paints
}

// Selected returns the most recently selected frame.
func (c *Canvas) Selected() *FrameAsset {
	return c.selected
}

// Resize sets the logical size and pixel ratio, reallocates the backing store
// and repaints once. If the selected frame cannot be drawn, the last frame that
// was drawn is repainted so the canvas never comes back blank.
func (c *Canvas) Resize(width, height, scale float64) {
	if c.surface == nil {
		return
	}
	if !(scale > 0) {
		scale = 1
	}
	c.width, c.height, c.scale = width, height, scale
	c.surface.Resize(backingSize(width, scale), backingSize(height, scale))

	switch {
	case c.selected.Drawable():
		c.paint(c.selected)
	case c.lastGood.Drawable():
		c.paint(c.lastGood)
	}
}

// Render selects frame and repaints the canvas with it. Frames that are nil,
// pending, failed or empty are skipped and the previous pixels remain. It
// reports whether a paint happened; a canvas that has not been sized yet
// paints nothing.
func (c *Canvas) Render(frame *FrameAsset) bool {
	if c.surface == nil {
		return false
	}
	c.selected = frame
	if !frame.Drawable() {
		return false
	}
	return c.paint(frame)
}

// paint reports whether frame was drawn. Nothing is drawn before the canvas
// has a size.
func (c *Canvas) paint(frame *FrameAsset) bool {
	if c.width <= 0 || c.height <= 0 {
		return false
	}
	w, h := frame.NaturalSize()
	dst := CoverRect(float64(w), float64(h), c.width, c.height)
	c.surface.Clear()
	c.surface.DrawFrame(frame, dst.Scale(c.scale))
	c.lastGood = frame
	c.paints++
	return true
}

// CoverRect fits an image of imgW x imgH over a canvas of canvasW x canvasH,
// preserving aspect ratio and cropping the overflow. A relatively wider image
// matches the canvas height and is centered horizontally; otherwise it matches
// the width and is centered vertically.
func CoverRect(imgW, imgH, canvasW, canvasH float64) Rect {
	if imgW <= 0 || imgH <= 0 || canvasW <= 0 || canvasH <= 0 {
		return Rect{}
	}
	imageAspect := imgW / imgH
	canvasAspect := canvasW / canvasH
	if imageAspect > canvasAspect {
		w := canvasH * imageAspect
		return Rect{X: (canvasW - w) / 2, Y: 0, Width: w, Height: canvasH}
	}
	h := canvasW / imageAspect
	return Rect{X: 0, Y: (canvasH - h) / 2, Width: canvasW, Height: h}
}
