package scrub

import (
	"fmt"
	"image"
	"path"
)

// FrameStatus is the load state of a single FrameAsset.
type FrameStatus uint8

const (
	FramePending FrameStatus = iota // fetch issued, not yet settled
	FrameLoaded                     // decoded image available
	FrameFailed                     // permanently absent; never retried
)

// String returns a lowercase name for the status.
func (s FrameStatus) String() string {
	switch s {
	case FramePending:
		return "pending"
	case FrameLoaded:
		return "loaded"
	case FrameFailed:
		return "failed"
	default:
		return fmt.Sprintf("FrameStatus(%d)", uint8(s))
	}
}

// FrameAsset is one still image of the sequence. It is created pending by the
// loader and settled exactly once by its own load.
type FrameAsset struct {
	Index  int
	Source string
	Status FrameStatus
	Image  image.Image
	Err    error
}

// Drawable reports whether f can be painted: loaded, decoded and with
// non-zero natural dimensions. A nil asset is not drawable.
func (f *FrameAsset) Drawable() bool {
	if f == nil || f.Status != FrameLoaded || f.Image == nil {
		return false
	}
	b := f.Image.Bounds()
	return b.Dx() > 0 && b.Dy() > 0
}

// NaturalSize returns the decoded image dimensions, or zeros when the asset
// is not drawable.
func (f *FrameAsset) NaturalSize() (w, h int) {
	if !f.Drawable() {
		return 0, 0
	}
	b := f.Image.Bounds()
	return b.Dx(), b.Dy()
}

// FrameSet is the ordered frame sequence. Index order is temporal order and
// indices are contiguous from 0 to Len()-1.
type FrameSet struct {
	frames []FrameAsset
}

func newFrameSet(n int, locate func(int) string) FrameSet {
	frames := make([]FrameAsset, n)
	for i := range frames {
		frames[i] = FrameAsset{Index: i, Source: locate(i)}
	}
	return FrameSet{frames: frames}
}

// Len returns the number of frames in the set.
func (s *FrameSet) Len() int {
	return len(s.frames)
}

// At returns the frame at index i, or nil when i is out of range.
func (s *FrameSet) At(i int) *FrameAsset {
	if i < 0 || i >= len(s.frames) {
		return nil
	}
	return &s.frames[i]
}

// PathTemplate maps a 0-based frame index to a fetch path using a 1-based,
// zero-padded frame number: Prefix + pad(i+1, Digits) + Ext, under Dir.
type PathTemplate struct {
	Dir    string `yaml:"dir"`
	Prefix string `yaml:"prefix"`
	Digits int    `yaml:"digits"`
	Ext    string `yaml:"ext"`
}

// DefaultPathTemplate produces frame_0001.jpg, frame_0002.jpg, ...
var DefaultPathTemplate = PathTemplate{Prefix: "frame_", Digits: 4, Ext: ".jpg"}

// Path returns the slash-separated path of frame i.
func (t PathTemplate) Path(i int) string {
	name := fmt.Sprintf("%s%0*d%s", t.Prefix, t.Digits, i+1, t.Ext)
	if t.Dir == "" {
		return name
	}
	return path.Join(t.Dir, name)
}

// FramePath returns the default-template path of frame i.
func FramePath(i int) string {
	return DefaultPathTemplate.Path(i)
}
