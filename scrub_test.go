package scrub

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"
	"testing"
)

const epsilon = 1e-9

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

// solidImage returns a w x h image filled with c.
func solidImage(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
	}
	return img
}

func encodePNG(t testing.TB, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func loadedFrame(i, w, h int, c color.RGBA) *FrameAsset {
	return &FrameAsset{Index: i, Status: FrameLoaded, Image: solidImage(w, h, c)}
}

func TestColorToRGBA(t *testing.T) {
	if got := ColorWhite.toRGBA(); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("white = %v", got)
	}
	half := Color{1, 0, 0, 0.5}.toRGBA()
	if half.A != 128 || half.R != 128 || half.G != 0 {
		t.Errorf("half red = %v, want premultiplied {128 0 0 128}", half)
	}
	over := Color{2, -1, 0.5, 1}.toRGBA()
	if over.R != 255 || over.G != 0 {
		t.Errorf("out of range components not clamped: %v", over)
	}
}

func TestClamp01(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{-1, 0}, {0, 0}, {0.3, 0.3}, {1, 1}, {5, 1}, {math.NaN(), 0},
	}
	for _, c := range cases {
		if got := clamp01(c.in); got != c.want {
			t.Errorf("clamp01(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestBackingSize(t *testing.T) {
	if got := backingSize(800, 2); got != 1600 {
		t.Errorf("backingSize(800, 2) = %d, want 1600", got)
	}
	if got := backingSize(100.2, 1.5); got != 151 {
		t.Errorf("backingSize(100.2, 1.5) = %d, want 151", got)
	}
	if got := backingSize(0, 2); got != 1 {
		t.Errorf("backingSize(0, 2) = %d, want 1", got)
	}
}

func TestRectScale(t *testing.T) {
	r := Rect{X: -10, Y: 5, Width: 100, Height: 50}.Scale(2)
	if r != (Rect{X: -20, Y: 10, Width: 200, Height: 100}) {
		t.Errorf("Scale(2) = %v", r)
	}
	if !(Rect{Width: 0, Height: 10}).Empty() {
		t.Error("zero width rect should be empty")
	}
}
