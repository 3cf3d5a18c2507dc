package easel

import "testing"

func TestSanitizeLabel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"hello", "hello"},
		{"after-render", "after-render"},
		{"frame.01", "frame.01"},
		{"has spaces", "has_spaces"},
		{"path/to/thing", "path_to_thing"},
		{"back\\slash", "back_slash"},
		{"special!@#$%", "special_____"},
		{"", "unlabeled"},
		{"   ", "unlabeled"},
		{"MixedCase123", "MixedCase123"},
	}
	for _, tt := range tests {
		got := sanitizeLabel(tt.in)
		if got != tt.want {
			t.Errorf("sanitizeLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestUnpremultiply(t *testing.T) {
	tests := []struct {
		in   [4]uint8
		want [4]uint8
	}{
		{[4]uint8{0, 0, 0, 0}, [4]uint8{0, 0, 0, 0}},
		{[4]uint8{255, 99, 71, 255}, [4]uint8{255, 99, 71, 255}},
		{[4]uint8{64, 32, 0, 128}, [4]uint8{127, 63, 0, 128}},
	}
	for _, tt := range tests {
		r, g, b, a := unpremultiply(tt.in[0], tt.in[1], tt.in[2], tt.in[3])
		if got := [4]uint8{r, g, b, a}; got != tt.want {
			t.Errorf("unpremultiply(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestScreenshotQueueAppend(t *testing.T) {
	l := &Loop{ScreenshotDir: "screenshots"}
	l.Screenshot("a")
	l.Screenshot("b")
	l.Screenshot("c")
	if len(l.screenshotQueue) != 3 {
		t.Fatalf("queue len = %d, want 3", len(l.screenshotQueue))
	}
	if l.screenshotQueue[0] != "a" || l.screenshotQueue[1] != "b" || l.screenshotQueue[2] != "c" {
		t.Errorf("queue = %v, want [a b c]", l.screenshotQueue)
	}
}
