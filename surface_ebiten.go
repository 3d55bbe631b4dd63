package scrub

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// EbitenSurface is a GPU Surface backed by a persistent offscreen
// *ebiten.Image. Each decoded frame is uploaded to the GPU the first time it is
// drawn and reused afterwards.
type EbitenSurface struct {
	// ClearColor fills the canvas on Clear.
	ClearColor Color

	image *ebiten.Image
	w, h  int

	textures []*ebiten.Image
}

// NewEbitenSurface creates a surface of the given backing size.
func NewEbitenSurface(width, height int) *EbitenSurface {
	s := &EbitenSurface{ClearColor: ColorBlack}
	s.Resize(width, height)
	return s
}

// Resize reallocates the backing image when the size changes.
func (s *EbitenSurface) Resize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	if s.image != nil && s.w == width && s.h == height {
		return
	}
	if s.image != nil {
		s.image.Deallocate()
	}
	s.image = ebiten.NewImage(width, height)
	s.w, s.h = width, height
}

// Clear fills the canvas with ClearColor.
func (s *EbitenSurface) Clear() {
	s.image.Fill(s.ClearColor.toRGBA())
}

// DrawFrame draws the frame scaled into dst.
func (s *EbitenSurface) DrawFrame(frame *FrameAsset, dst Rect) {
	if !frame.Drawable() || dst.Empty() {
		return
	}
	tex := s.texture(frame)
	w, h := frame.NaturalSize()

	var op ebiten.DrawImageOptions
	op.GeoM.Scale(dst.Width/float64(w), dst.Height/float64(h))
	op.GeoM.Translate(dst.X, dst.Y)
	op.Filter = ebiten.FilterLinear
	s.image.DrawImage(tex, &op)
}

// texture returns the GPU copy of frame, uploading it on first use.
func (s *EbitenSurface) texture(frame *FrameAsset) *ebiten.Image {
	if frame.Index >= len(s.textures) {
		grown := make([]*ebiten.Image, frame.Index+1)
		copy(grown, s.textures)
		s.textures = grown
	}
	tex := s.textures[frame.Index]
	if tex == nil {
		tex = ebiten.NewImageFromImage(frame.Image)
		s.textures[frame.Index] = tex
	}
	return tex
}

// Image returns the backing image for compositing onto the screen.
func (s *EbitenSurface) Image() *ebiten.Image {
	return s.image
}

// Width returns the backing width in pixels.
func (s *EbitenSurface) Width() int {
	return s.w
}

// Height returns the backing height in pixels.
func (s *EbitenSurface) Height() int {
	return s.h
}

// Dispose releases the backing image and every uploaded frame.
func (s *EbitenSurface) Dispose() {
	for i, tex := range s.textures {
		if tex != nil {
			tex.Deallocate()
			s.textures[i] = nil
		}
	}
	s.textures = nil
	if s.image != nil {
		s.image.Deallocate()
	}
}
