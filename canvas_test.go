package scrub

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"testing"
)

func TestCoverRectWideImage(t *testing.T) {
	// 2:1 image over a 1:1 canvas matches height and crops the sides.
	r := CoverRect(200, 100, 100, 100)
	want := Rect{X: -50, Y: 0, Width: 200, Height: 100}
	if r != want {
		t.Errorf("CoverRect = %+v, want %+v", r, want)
	}
}

func TestCoverRectTallImage(t *testing.T) {
	r := CoverRect(100, 200, 100, 100)
	want := Rect{X: 0, Y: -50, Width: 100, Height: 200}
	if r != want {
		t.Errorf("CoverRect = %+v, want %+v", r, want)
	}
}

func TestCoverRectSameAspect(t *testing.T) {
	r := CoverRect(1920, 1080, 1280, 720)
	if !approxEqual(r.X, 0, epsilon) || !approxEqual(r.Y, 0, epsilon) ||
		!approxEqual(r.Width, 1280, epsilon) || !approxEqual(r.Height, 720, epsilon) {
		t.Errorf("CoverRect = %+v, want exact fit", r)
	}
}

func TestCoverRectCoversCanvas(t *testing.T) {
	sizes := [][2]float64{{1920, 1080}, {1080, 1920}, {640, 640}, {3, 1000}}
	canvases := [][2]float64{{1280, 720}, {390, 844}, {100, 100}}
	for _, img := range sizes {
		for _, cv := range canvases {
			r := CoverRect(img[0], img[1], cv[0], cv[1])
			if r.X > epsilon || r.Y > epsilon ||
				r.X+r.Width < cv[0]-1e-6 || r.Y+r.Height < cv[1]-1e-6 {
				t.Errorf("CoverRect(%v over %v) = %+v does not cover", img, cv, r)
			}
			if !approxEqual(r.Width/r.Height, img[0]/img[1], 1e-9) {
				t.Errorf("CoverRect(%v over %v) changes aspect", img, cv)
			}
		}
	}
}

func TestCoverRectDegenerate(t *testing.T) {
	if r := CoverRect(0, 100, 100, 100); !r.Empty() {
		t.Errorf("zero width image: %+v, want empty", r)
	}
	if r := CoverRect(100, 100, 0, 100); !r.Empty() {
		t.Errorf("zero width canvas: %+v, want empty", r)
	}
}

func TestCanvasRenderPaints(t *testing.T) {
	s := NewRasterSurface(1, 1)
	c := NewCanvas(s)
	c.Resize(40, 30, 1)

	red := loadedFrame(0, 8, 6, color.RGBA{255, 0, 0, 255})
	if !c.Render(red) {
		t.Fatal("Render returned false for a loaded frame")
	}
	if c.Paints() != 1 {
		t.Errorf("Paints = %d, want 1", c.Paints())
	}
	got := s.Image().RGBAAt(20, 15)
	if got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("center pixel = %v, want red", got)
	}
	if b := s.Image().Bounds(); b.Dx() != 40 || b.Dy() != 30 {
		t.Errorf("backing size = %v, want 40x30", b)
	}
}

func TestCanvasRenderIdempotent(t *testing.T) {
	s := NewRasterSurface(1, 1)
	c := NewCanvas(s)
	c.Resize(64, 36, 1)
	f := &FrameAsset{Status: FrameLoaded, Image: gradientImage(50, 40)}

	c.Render(f)
	first := append([]byte(nil), s.Image().Pix...)
	c.Render(f)
	if !bytes.Equal(first, s.Image().Pix) {
		t.Error("rendering the same frame twice changed pixels")
	}
}

func TestCanvasSkipsUndrawableFrames(t *testing.T) {
	s := NewRasterSurface(1, 1)
	c := NewCanvas(s)
	c.Resize(20, 20, 1)

	blue := loadedFrame(0, 4, 4, color.RGBA{0, 0, 255, 255})
	c.Render(blue)
	before := append([]byte(nil), s.Image().Pix...)

	undrawable := []*FrameAsset{
		nil,
		{Index: 1, Status: FrameFailed, Err: errors.New("404")},
		{Index: 2, Status: FramePending},
		{Index: 3, Status: FrameLoaded, Image: solidImage(0, 0, color.RGBA{})},
	}
	for _, f := range undrawable {
		if c.Render(f) {
			t.Errorf("Render(%+v) = true, want false", f)
		}
		if !bytes.Equal(before, s.Image().Pix) {
			t.Fatalf("Render(%+v) changed pixels", f)
		}
	}
	if c.Paints() != 1 {
		t.Errorf("Paints = %d, want 1", c.Paints())
	}
}

func TestCanvasNilSurface(t *testing.T) {
	c := NewCanvas(nil)
	c.Resize(100, 100, 2)
	if c.Render(loadedFrame(0, 4, 4, color.RGBA{255, 255, 255, 255})) {
		t.Error("Render on a nil surface returned true")
	}
	if c.Paints() != 0 {
		t.Errorf("Paints = %d, want 0", c.Paints())
	}
	if w, h := c.Size(); w != 0 || h != 0 {
		t.Errorf("Size = %vx%v, want untouched", w, h)
	}
}

func TestCanvasResizeAppliesScale(t *testing.T) {
	s := NewRasterSurface(1, 1)
	c := NewCanvas(s)
	c.Resize(100, 50, 2)
	if b := s.Image().Bounds(); b.Dx() != 200 || b.Dy() != 100 {
		t.Errorf("backing = %v, want 200x100", b)
	}
	if w, h := c.Size(); w != 100 || h != 50 {
		t.Errorf("logical size = %vx%v, want 100x50", w, h)
	}
	c.Resize(100, 50, 0)
	if c.Scale() != 1 {
		t.Errorf("Scale after invalid scale = %v, want 1", c.Scale())
	}
}

func TestCanvasResizeRepaintsSelected(t *testing.T) {
	s := NewRasterSurface(1, 1)
	c := NewCanvas(s)
	c.Resize(10, 10, 1)
	green := loadedFrame(0, 4, 4, color.RGBA{0, 255, 0, 255})
	c.Render(green)

	c.Resize(30, 20, 1)
	if got := s.Image().RGBAAt(15, 10); got != (color.RGBA{0, 255, 0, 255}) {
		t.Errorf("after resize center = %v, want green", got)
	}
	if c.Paints() != 2 {
		t.Errorf("Paints = %d, want 2", c.Paints())
	}
}

func TestCanvasResizeRepaintsLastGood(t *testing.T) {
	s := NewRasterSurface(1, 1)
	c := NewCanvas(s)
	c.Resize(10, 10, 1)
	green := loadedFrame(0, 4, 4, color.RGBA{0, 255, 0, 255})
	c.Render(green)
	c.Render(&FrameAsset{Index: 1, Status: FrameFailed})

	c.Resize(16, 16, 1)
	if got := s.Image().RGBAAt(8, 8); got != (color.RGBA{0, 255, 0, 255}) {
		t.Errorf("after resize with failed selection = %v, want last good frame", got)
	}
}

func TestCanvasResizeBeforeAnyFrame(t *testing.T) {
	s := NewRasterSurface(1, 1)
	c := NewCanvas(s)
	c.Resize(10, 10, 1)
	if c.Paints() != 0 {
		t.Errorf("Paints = %d, want 0", c.Paints())
	}
}

func gradientImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{uint8(x * 255 / w), uint8(y * 255 / h), 128, 255})
		}
	}
	return img
}

func TestCanvasRenderBeforeResize(t *testing.T) {
	s := NewRasterSurface(1, 1)
	c := NewCanvas(s)
	red := loadedFrame(3, 4, 4, color.RGBA{255, 0, 0, 255})

	if c.Render(red) {
		t.Error("Render on an unsized canvas reported a paint")
	}
	if c.Paints() != 0 {
		t.Errorf("Paints = %d, want 0", c.Paints())
	}
	if c.Selected() != red {
		t.Errorf("Selected = %+v, want frame 3", c.Selected())
	}

	// Sizing the canvas paints the frame selected earlier.
	c.Resize(8, 8, 1)
	if c.Paints() != 1 || s.Image().RGBAAt(4, 4) != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("after resize Paints = %d pixel = %v", c.Paints(), s.Image().RGBAAt(4, 4))
	}
}
