package scrub

import (
	"bytes"
	"fmt"
	"image"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// DefaultPerspective is the viewer distance used to project layer depth,
// matching a CSS perspective of 1000px.
const DefaultPerspective = 1000.0

// Layer is an overlay drawn above the canvas. Its content image is placed at
// an anchor point (a fraction of the viewport), offset by the state's
// Translate (a fraction of the content size), and scaled by perspective
// projection of the state's Depth.
type Layer struct {
	Name string
	// Image is the layer content in logical pixels. Nil layers draw nothing.
	Image *ebiten.Image
	// Anchor is the attachment point as a fraction of the viewport.
	Anchor Vec2

	state  OverlayState
	writes int
}

// NewLayer creates a fully opaque layer at depth 0.
func NewLayer(name string, img *ebiten.Image, anchor Vec2) *Layer {
	return &Layer{
		Name:   name,
		Image:  img,
		Anchor: anchor,
		state:  OverlayState{Opacity: 1},
	}
}

// SetOverlay stores the state applied on the next Draw.
func (l *Layer) SetOverlay(s OverlayState) {
	if l == nil {
		return
	}
	l.state = s
	l.writes++
}

// State returns the last written overlay state.
func (l *Layer) State() OverlayState {
	return l.state
}

// Writes returns the number of SetOverlay calls received.
func (l *Layer) Writes() int {
	return l.writes
}

// Placement projects the layer into a viewport of vw x vh logical pixels and
// returns the top-left corner and uniform scale of the content. ok is false
// when the layer is invisible or behind the viewer.
func (l *Layer) Placement(vw, vh, perspective float64) (x, y, scale float64, ok bool) {
	if l == nil || l.Image == nil || l.state.Opacity <= 0 {
		return 0, 0, 0, false
	}
	b := l.Image.Bounds()
	return project(l.state, float64(b.Dx()), float64(b.Dy()),
		l.Anchor.X*vw, l.Anchor.Y*vh, perspective)
}

// project places a w x h box whose translated origin sits at (ax, ay), seen
// through a perspective of distance p centered on the anchor.
func project(s OverlayState, w, h, ax, ay, p float64) (x, y, scale float64, ok bool) {
	if !(p > 0) {
		p = DefaultPerspective
	}
	if s.Depth >= p {
		return 0, 0, 0, false
	}
	scale = p / (p - s.Depth)
	x = ax + s.Translate.X*w*scale
	y = ay + s.Translate.Y*h*scale
	return x, y, scale, true
}

// Draw renders the layer onto dst. vw and vh are the logical viewport size and
// pixelScale is the device pixel ratio of dst.
func (l *Layer) Draw(dst *ebiten.Image, vw, vh, pixelScale, perspective float64) {
	x, y, s, ok := l.Placement(vw, vh, perspective)
	if !ok {
		return
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(s*pixelScale, s*pixelScale)
	op.GeoM.Translate(x*pixelScale, y*pixelScale)
	op.ColorScale.ScaleAlpha(float32(clamp01(l.state.Opacity)))
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(l.Image, &op)
}

var (
	fontOnce   sync.Once
	fontSource *text.GoTextFaceSource
	fontErr    error
)

// defaultFontSource parses the bundled Go Regular font once.
func defaultFontSource() (*text.GoTextFaceSource, error) {
	fontOnce.Do(func() {
		fontSource, fontErr = text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
		if fontErr != nil {
			fontErr = fmt.Errorf("scrub: parse default font: %w", fontErr)
		}
	})
	return fontSource, fontErr
}

// TextImage renders str with the default font at size, padded by pad pixels
// on every side. Multi-line strings are centered.
func TextImage(str string, size, pad float64, c Color, background Color) (*ebiten.Image, error) {
	src, err := defaultFontSource()
	if err != nil {
		return nil, err
	}
	face := &text.GoTextFace{Source: src, Size: size}
	m := face.Metrics()
	lineHeight := m.HAscent + m.HDescent + m.HLineGap
	w, h := text.Measure(str, face, lineHeight)

	img := ebiten.NewImage(backingSize(w+2*pad, 1), backingSize(h+2*pad, 1))
	if background.A > 0 {
		img.Fill(background.toRGBA())
	}
	op := &text.DrawOptions{}
	op.LineSpacing = lineHeight
	op.PrimaryAlign = text.AlignCenter
	op.GeoM.Translate(float64(img.Bounds().Dx())/2, pad)
	op.ColorScale.ScaleWithColor(c.toRGBA())
	text.Draw(img, str, face, op)
	return img, nil
}

// NewTextLayer creates a layer whose content is rendered text.
func NewTextLayer(name, str string, size float64, c Color, anchor Vec2) (*Layer, error) {
	img, err := TextImage(str, size, size/2, c, Color{})
	if err != nil {
		return nil, fmt.Errorf("text layer %s: %w", name, err)
	}
	return NewLayer(name, img, anchor), nil
}

// NewImageLayer creates a layer from a decoded image.
func NewImageLayer(name string, img image.Image, anchor Vec2) *Layer {
	return NewLayer(name, ebiten.NewImageFromImage(img), anchor)
}

// StackImages composes images vertically, centered, with gap pixels between
// them. Nil entries are skipped.
func StackImages(gap float64, imgs ...*ebiten.Image) *ebiten.Image {
	var w, h float64
	n := 0
	for _, img := range imgs {
		if img == nil {
			continue
		}
		b := img.Bounds()
		w = max(w, float64(b.Dx()))
		if n > 0 {
			h += gap
		}
		h += float64(b.Dy())
		n++
	}
	out := ebiten.NewImage(backingSize(w, 1), backingSize(h, 1))
	y := 0.0
	for _, img := range imgs {
		if img == nil {
			continue
		}
		b := img.Bounds()
		var op ebiten.DrawImageOptions
		op.GeoM.Translate((w-float64(b.Dx()))/2, y)
		out.DrawImage(img, &op)
		y += float64(b.Dy()) + gap
	}
	return out
}
