package scrub

import (
	"image/color"
	"testing"
)

func TestEbitenSurfaceResize(t *testing.T) {
	s := NewEbitenSurface(0, -5)
	defer s.Dispose()
	if s.Width() != 1 || s.Height() != 1 {
		t.Errorf("size = %dx%d, want 1x1", s.Width(), s.Height())
	}

	s.Resize(320, 180)
	img := s.Image()
	if s.Width() != 320 || s.Height() != 180 {
		t.Errorf("size = %dx%d, want 320x180", s.Width(), s.Height())
	}
	if b := img.Bounds(); b.Dx() != 320 || b.Dy() != 180 {
		t.Errorf("image bounds = %v", b)
	}

	s.Resize(320, 180)
	if s.Image() != img {
		t.Error("same size Resize reallocated the backing image")
	}
}

func TestEbitenSurfaceUploadsOnce(t *testing.T) {
	s := NewEbitenSurface(16, 9)
	defer s.Dispose()
	f := loadedFrame(2, 4, 4, color.RGBA{0, 0, 255, 255})

	s.DrawFrame(f, Rect{Width: 16, Height: 9})
	tex := s.textures[2]
	if tex == nil {
		t.Fatal("frame not uploaded")
	}
	s.DrawFrame(f, Rect{Width: 16, Height: 9})
	if s.textures[2] != tex {
		t.Error("frame uploaded twice")
	}

	s.DrawFrame(&FrameAsset{Index: 5, Status: FrameFailed}, Rect{Width: 16, Height: 9})
	if len(s.textures) != 3 {
		t.Errorf("failed frame allocated a texture slot, len = %d", len(s.textures))
	}
}
