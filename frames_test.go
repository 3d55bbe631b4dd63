package scrub

import "testing"

func TestFramePath(t *testing.T) {
	cases := []struct {
		i    int
		want string
	}{
		{0, "frame_0001.jpg"},
		{9, "frame_0010.jpg"},
		{206, "frame_0207.jpg"},
		{9999, "frame_10000.jpg"},
	}
	for _, c := range cases {
		if got := FramePath(c.i); got != c.want {
			t.Errorf("FramePath(%d) = %q, want %q", c.i, got, c.want)
		}
	}
}

func TestPathTemplate(t *testing.T) {
	tmpl := PathTemplate{Dir: "assets/hero", Prefix: "f", Digits: 3, Ext: ".webp"}
	if got := tmpl.Path(4); got != "assets/hero/f005.webp" {
		t.Errorf("Path(4) = %q", got)
	}
	bare := PathTemplate{Ext: ".png"}
	if got := bare.Path(11); got != "12.png" {
		t.Errorf("Path(11) = %q, want 12.png", got)
	}
}

func TestFrameSetAt(t *testing.T) {
	set := newFrameSet(3, FramePath)
	if set.Len() != 3 {
		t.Fatalf("Len = %d", set.Len())
	}
	for i := 0; i < 3; i++ {
		f := set.At(i)
		if f.Index != i || f.Status != FramePending || f.Source != FramePath(i) {
			t.Errorf("At(%d) = %+v", i, f)
		}
	}
	if set.At(-1) != nil || set.At(3) != nil {
		t.Error("out of range At should be nil")
	}
}

func TestFrameAssetDrawable(t *testing.T) {
	var nilFrame *FrameAsset
	if nilFrame.Drawable() {
		t.Error("nil frame drawable")
	}
	if w, h := nilFrame.NaturalSize(); w != 0 || h != 0 {
		t.Errorf("nil NaturalSize = %dx%d", w, h)
	}
	f := loadedFrame(0, 16, 9, ColorWhite.toRGBA())
	if !f.Drawable() {
		t.Error("loaded frame not drawable")
	}
	if w, h := f.NaturalSize(); w != 16 || h != 9 {
		t.Errorf("NaturalSize = %dx%d, want 16x9", w, h)
	}
	f.Status = FrameFailed
	if f.Drawable() {
		t.Error("failed frame drawable")
	}
}
