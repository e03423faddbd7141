package pin

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestResolveBothEdges(t *testing.T) {
	cases := []struct {
		name       string
		pin        Pin
		length     float64
		start, end float64
	}{
		{"absolute", Both(Abs(20), Abs(30)), 200, 20, 170},
		{"fractions", Both(Frac(0.15), Frac(0.2)), 200, 30, 160},
		{"mixed", Both(Abs(20), Frac(0.6)), 200, 20, 80},
		{"zero length", Both(Abs(0), Abs(0)), 0, 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := Resolve(tc.pin, tc.length)
			if !near(s.Start, tc.start) || !near(s.End, tc.end) {
				t.Fatalf("Resolve(%v, %g) = %+v, want [%g, %g]", tc.pin, tc.length, s, tc.start, tc.end)
			}
		})
	}
}

func TestResolveStartAndSize(t *testing.T) {
	s := Resolve(StartSize(Frac(0.3), 70), 200)
	if !near(s.Start, 60) || !near(s.End, 130) {
		t.Fatalf("start fraction + size: got %+v, want [60, 130]", s)
	}

	// 起点 + 尺寸超出远端时，整体左移而不是缩小。
	s = Resolve(StartSize(Abs(150), 80), 200)
	if s.Start != 120 || s.End != 200 || s.Size() != 80 {
		t.Fatalf("overflowing start + size: got %+v", s)
	}
}

func TestResolveEndAndSize(t *testing.T) {
	s := Resolve(EndSize(Abs(20), 50), 200)
	if s.Start != 130 || s.End != 180 {
		t.Fatalf("end + size: got %+v, want [130, 180]", s)
	}

	s = Resolve(EndSize(Abs(180), 50), 200)
	if s.Start != 0 || s.End != 50 {
		t.Fatalf("overflowing end + size: got %+v, want [0, 50]", s)
	}
}

func TestResolveSizeAndMiddle(t *testing.T) {
	s := Resolve(Centered(80, 0.5), 200)
	if s.Start != 60 || s.End != 140 {
		t.Fatalf("size + middle: got %+v, want [60, 140]", s)
	}
	// 尺寸大于可用长度时不做截断。
	s = Resolve(Centered(300, 0.5), 200)
	if s.Size() != 300 || s.Start != -50 {
		t.Fatalf("oversized size + middle: got %+v", s)
	}
}

func TestResolveFill(t *testing.T) {
	if s := Resolve(Stretch(), 123); s != (Span{0, 123}) {
		t.Fatalf("fill: got %+v", s)
	}
	var zero Pin
	if zero.Kind() != Fill {
		t.Fatalf("zero Pin should be Fill, got %v", zero.Kind())
	}
}

func TestSpanSizeNeverNegative(t *testing.T) {
	pins := []Pin{
		Both(Abs(150), Abs(150)),
		Both(Frac(0.9), Frac(0.9)),
		StartSize(Abs(10), -40),
		EndSize(Abs(10), -40),
		Centered(-10, 2),
		Both(Frac(-1), Frac(3)),
	}
	for _, p := range pins {
		for _, length := range []float64{0, 1, 100, 1e6} {
			if sz := Resolve(p, length).Size(); sz < 0 {
				t.Fatalf("Resolve(%v, %g).Size() = %g", p, length, sz)
			}
		}
	}
}

func TestStartSizeProperty(t *testing.T) {
	for _, length := range []float64{0, 50, 100, 200} {
		for _, start := range []float64{0, 10, 60, 150} {
			for _, size := range []float64{0, 20, 80} {
				s := Resolve(StartSize(Abs(start), size), length)
				if start+size <= length {
					if s.Start != start || s.End-s.Start != size {
						t.Fatalf("length=%g start=%g size=%g: got %+v", length, start, size, s)
					}
				} else if s.End != length || s.Start != length-size {
					t.Fatalf("clamped length=%g start=%g size=%g: got %+v", length, start, size, s)
				}
			}
		}
	}
}

func TestEndSizeProperty(t *testing.T) {
	for _, length := range []float64{0, 50, 100, 200} {
		for _, end := range []float64{0, 10, 60, 150} {
			for _, size := range []float64{0, 20, 80} {
				s := Resolve(EndSize(Abs(end), size), length)
				if end+size <= length {
					if s.End != length-end || s.End-s.Start != size {
						t.Fatalf("length=%g end=%g size=%g: got %+v", length, end, size, s)
					}
				} else if s.Start != 0 || s.End != size {
					t.Fatalf("clamped length=%g end=%g size=%g: got %+v", length, end, size, s)
				}
			}
		}
	}
}

func TestNewInvariants(t *testing.T) {
	f := Float
	cases := []struct {
		name   string
		fields Fields
		want   error
	}{
		{"start twice", Fields{Start: f(1), StartFraction: f(0.1)}, ErrStartConflict},
		{"end twice", Fields{End: f(1), EndFraction: f(0.1)}, ErrEndConflict},
		{"middle alone", Fields{Middle: f(0.5)}, ErrMiddleWithoutSize},
		{"middle with start", Fields{Start: f(1), Size: f(10), Middle: f(0.5)}, ErrMiddleWithEdge},
		{"middle with end fraction", Fields{EndFraction: f(0.2), Size: f(10), Middle: f(0.5)}, ErrMiddleWithEdge},
		{"size and both edges", Fields{Start: f(1), End: f(2), Size: f(10)}, ErrOverConstrained},
		{"size and both fractional edges", Fields{StartFraction: f(0.1), EndFraction: f(0.2), Size: f(10)}, ErrOverConstrained},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.fields)
			if !errors.Is(err, tc.want) {
				t.Fatalf("New(%s) error = %v, want %v", tc.name, err, tc.want)
			}
		})
	}
}

func TestNewMapsFieldsToVariants(t *testing.T) {
	f := Float
	cases := []struct {
		fields Fields
		want   Pin
	}{
		{Fields{Start: f(20), End: f(30)}, Both(Abs(20), Abs(30))},
		{Fields{StartFraction: f(0.15), EndFraction: f(0.2)}, Both(Frac(0.15), Frac(0.2))},
		{Fields{StartFraction: f(0.3), Size: f(70)}, StartSize(Frac(0.3), 70)},
		{Fields{End: f(10), Size: f(70)}, EndSize(Abs(10), 70)},
		{Fields{Size: f(80), Middle: f(0.5)}, Centered(80, 0.5)},
		{Fields{}, Stretch()},
		{Fields{Start: f(5)}, Stretch()},
		{Fields{Size: f(5)}, Stretch()},
	}
	for _, tc := range cases {
		got, err := New(tc.fields)
		if err != nil {
			t.Fatalf("New(%+v): %v", tc.fields, err)
		}
		if got != tc.want {
			t.Fatalf("New(%+v) = %v, want %v", tc.fields, got, tc.want)
		}
	}
}

func TestMustPanicsOnConflict(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("Must did not panic")
		}
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrStartConflict) {
			t.Fatalf("unexpected panic value: %v", r)
		}
	}()
	Must(Fields{Start: Float(1), StartFraction: Float(0.5)})
}

func TestFieldsRoundTrip(t *testing.T) {
	pins := []Pin{
		Stretch(),
		Both(Abs(20), Frac(0.6)),
		StartSize(Frac(0.3), 70),
		EndSize(Abs(5), 12),
		Centered(80, 0.25),
	}
	for _, p := range pins {
		got := Must(p.Fields())
		if got != p {
			t.Fatalf("round trip of %v gave %v", p, got)
		}
	}

	want := Fields{Start: Float(20), EndFraction: Float(0.6)}
	if diff := cmp.Diff(want, Both(Abs(20), Frac(0.6)).Fields()); diff != "" {
		t.Fatalf("Fields() mismatch (-want +got):\n%s", diff)
	}
}

func TestEqualPinsHashAndResolveEqually(t *testing.T) {
	a := Must(Fields{Start: Float(20), EndFraction: Float(0.6)})
	b := Both(Abs(20), Frac(0.6))
	if a != b {
		t.Fatalf("structurally equal pins compare unequal: %v vs %v", a, b)
	}
	if a.Hash() != b.Hash() {
		t.Fatalf("equal pins hash differently")
	}
	if Resolve(a, 321) != Resolve(b, 321) {
		t.Fatalf("equal pins resolve differently")
	}
	if a.Hash() == Both(Abs(20), Abs(0.6)).Hash() {
		t.Fatalf("fraction flag does not affect the hash")
	}
	if Centered(10, 0).Hash() == StartSize(Abs(0), 10).Hash() {
		t.Fatalf("kind does not affect the hash")
	}
}

func TestSignedZeroPinsHashEqually(t *testing.T) {
	negZero := math.Copysign(0, -1)
	cases := []struct{ a, b Pin }{
		{StartSize(Abs(0), 10), StartSize(Abs(negZero), 10)},
		{Both(Frac(0), Abs(5)), Both(Frac(negZero), Abs(5))},
		{EndSize(Abs(3), 0), EndSize(Abs(3), negZero)},
		{Centered(10, 0), Centered(10, negZero)},
	}
	for _, tc := range cases {
		if tc.a != tc.b {
			t.Fatalf("%v and %v should compare equal", tc.a, tc.b)
		}
		if tc.a.Hash() != tc.b.Hash() {
			t.Fatalf("equal pins hash differently: %v", tc.a)
		}
	}
}

func TestString(t *testing.T) {
	cases := map[Pin]string{
		Stretch():                "Pin()",
		Both(Abs(20), Frac(0.6)): "Pin(start: 20, endFraction: 0.6)",
		Centered(80, 0.5):        "Pin(size: 80, middle: 0.5)",
		EndSize(Abs(3), 4):       "Pin(end: 3, size: 4)",
	}
	for p, want := range cases {
		if got := p.String(); got != want {
			t.Fatalf("String() = %q, want %q", got, want)
		}
	}
}
