package pin

import "testing"

func TestFromDesignPinnedLeftTop(t *testing.T) {
	h, v := FromDesign(200, 200, Bounds{X: 20, Y: 20, Width: 60, Height: 60}, DesignFlags{PinLeft: true, PinTop: true})
	want := Both(Abs(20), Frac(0.6))
	if h != want {
		t.Fatalf("horizontal pin = %v, want %v", h, want)
	}
	if v != want {
		t.Fatalf("vertical pin = %v, want %v", v, want)
	}
	// 在原始尺寸下应还原出原始矩形。
	if s := Resolve(h, 200); !near(s.Start, 20) || !near(s.Size(), 60) {
		t.Fatalf("resolved at original size: %+v", s)
	}
	// 父容器变宽时，左侧固定，右侧按比例伸缩。
	if s := Resolve(h, 400); !near(s.Start, 20) || !near(s.End, 160) {
		t.Fatalf("resolved at double size: %+v", s)
	}
}

func TestFromDesignFixedSize(t *testing.T) {
	b := Bounds{X: 30, Y: 10, Width: 40, Height: 20}

	h, v := FromDesign(100, 100, b, DesignFlags{FixedWidth: true, FixedHeight: true})
	if h != Centered(40, 0.5) {
		t.Fatalf("fixed width, no pins: got %v", h)
	}
	if v != Centered(20, 0.125) {
		t.Fatalf("fixed height, no pins: got %v", v)
	}

	h, _ = FromDesign(100, 100, b, DesignFlags{FixedWidth: true, PinRight: true})
	if h != EndSize(Abs(30), 40) {
		t.Fatalf("fixed width pinned right: got %v", h)
	}
	h, _ = FromDesign(100, 100, b, DesignFlags{FixedWidth: true, PinLeft: true})
	if h != StartSize(Abs(30), 40) {
		t.Fatalf("fixed width pinned left: got %v", h)
	}
	h, _ = FromDesign(100, 100, b, DesignFlags{FixedWidth: true, PinLeft: true, PinRight: true})
	if h != Both(Abs(30), Abs(30)) {
		t.Fatalf("fixed width pinned both: got %v", h)
	}
}

func TestFromDesignStretchesUnpinnedEdges(t *testing.T) {
	h, _ := FromDesign(200, 100, Bounds{X: 50, Width: 100}, DesignFlags{})
	if h != Both(Frac(0.25), Frac(0.25)) {
		t.Fatalf("unpinned stretch: got %v", h)
	}
}

func TestFromDesignDegenerateParent(t *testing.T) {
	h, v := FromDesign(0, 60, Bounds{Width: 0, Height: 60}, DesignFlags{FixedHeight: true})
	if h != Both(Frac(0), Frac(0)) {
		t.Fatalf("zero-width parent: got %v", h)
	}
	if v != Centered(60, 0) {
		t.Fatalf("no leftover space: got %v", v)
	}
}
