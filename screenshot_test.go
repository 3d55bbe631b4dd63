package scrub

import "testing"

func TestSanitizeLabel(t *testing.T) {
	cases := map[string]string{
		"":              "unlabeled",
		"   ":           "unlabeled",
		"outro":         "outro",
		"frame 12/207":  "frame_12_207",
		"v1.2-final":    "v1.2-final",
		"../etc/passwd": ".._etc_passwd",
	}
	for in, want := range cases {
		if got := sanitizeLabel(in); got != want {
			t.Errorf("sanitizeLabel(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestUnpremultiply(t *testing.T) {
	pix := []byte{
		64, 32, 0, 128, // half transparent
		10, 20, 30, 255, // opaque
		0, 0, 0, 0, // transparent
	}
	unpremultiply(pix)
	want := []byte{127, 63, 0, 128, 10, 20, 30, 255, 0, 0, 0, 0}
	for i := range want {
		if pix[i] != want[i] {
			t.Fatalf("pix = %v, want %v", pix, want)
		}
	}
}

func TestScreenshotQueues(t *testing.T) {
	a := &App{}
	a.Screenshot("one")
	a.Screenshot("two")
	if len(a.screenshotQueue) != 2 {
		t.Errorf("queue = %v", a.screenshotQueue)
	}
}
