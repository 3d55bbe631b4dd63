package scrub

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"math"
	"os"

	xdraw "golang.org/x/image/draw"
)

// RasterSurface is a CPU Surface backed by an *image.RGBA. Output is
// deterministic for a given frame and size, which makes it the surface used
// for tests and headless export.
type RasterSurface struct {
	// ClearColor fills the buffer on Clear.
	ClearColor Color
	// Scaler resamples frames into the buffer. Nil uses ApproxBiLinear.
	Scaler xdraw.Scaler

	img *image.RGBA
}

// NewRasterSurface creates a raster surface of the given backing size.
func NewRasterSurface(width, height int) *RasterSurface {
	s := &RasterSurface{ClearColor: ColorBlack}
	s.Resize(width, height)
	return s
}

// Resize reallocates the buffer.
func (s *RasterSurface) Resize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	s.img = image.NewRGBA(image.Rect(0, 0, width, height))
}

// Clear fills the buffer with ClearColor.
func (s *RasterSurface) Clear() {
	draw.Draw(s.img, s.img.Bounds(), image.NewUniform(s.ClearColor.toRGBA()), image.Point{}, draw.Src)
}

// DrawFrame scales frame into dst, clipped to the buffer.
func (s *RasterSurface) DrawFrame(frame *FrameAsset, dst Rect) {
	if !frame.Drawable() || dst.Empty() {
		return
	}
	dr := image.Rect(
		int(math.Round(dst.X)), int(math.Round(dst.Y)),
		int(math.Round(dst.X+dst.Width)), int(math.Round(dst.Y+dst.Height)),
	)
	scaler := s.Scaler
	if scaler == nil {
		scaler = xdraw.ApproxBiLinear
	}
	scaler.Scale(s.img, dr, frame.Image, frame.Image.Bounds(), xdraw.Src, nil)
}

// Image returns the backing buffer. It is replaced on Resize.
func (s *RasterSurface) Image() *image.RGBA {
	return s.img
}

// WritePNG encodes the current buffer to path.
func (s *RasterSurface) WritePNG(path string) error {
	return writePNG(path, s.img)
}

// writePNG encodes an image to a PNG file at the given path.
func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
