package pin

// Bounds is a child rectangle inside its original parent, as exported by a
// design tool.
type Bounds struct {
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// DesignFlags are the resizing options a design tool attaches to a child.
type DesignFlags struct {
	PinLeft     bool `json:"pinLeft" yaml:"pinLeft"`
	PinRight    bool `json:"pinRight" yaml:"pinRight"`
	PinTop      bool `json:"pinTop" yaml:"pinTop"`
	PinBottom   bool `json:"pinBottom" yaml:"pinBottom"`
	FixedWidth  bool `json:"fixedWidth" yaml:"fixedWidth"`
	FixedHeight bool `json:"fixedHeight" yaml:"fixedHeight"`
}

// FromDesign derives the horizontal and vertical pins that keep b where the
// design tool put it when the parent is resized.
//
// A pinned edge keeps its absolute inset. An unpinned edge of a stretching
// axis keeps its inset as a fraction of the parent. A fixed-size axis with no
// pinned edge keeps the child's position within the leftover space.
func FromDesign(parentWidth, parentHeight float64, b Bounds, f DesignFlags) (h, v Pin) {
	h = designAxis(parentWidth, b.X, b.Width, f.PinLeft, f.PinRight, f.FixedWidth)
	v = designAxis(parentHeight, b.Y, b.Height, f.PinTop, f.PinBottom, f.FixedHeight)
	return h, v
}

func designAxis(parent, offset, length float64, pinStart, pinEnd, fixed bool) Pin {
	startInset := offset
	endInset := parent - offset - length

	if fixed && !(pinStart && pinEnd) {
		switch {
		case pinStart:
			return StartSize(Abs(startInset), length)
		case pinEnd:
			return EndSize(Abs(endInset), length)
		}
		leftover := parent - length
		if leftover == 0 {
			return Centered(length, 0)
		}
		return Centered(length, startInset/leftover)
	}

	start := Abs(startInset)
	if !pinStart {
		start = Frac(fraction(startInset, parent))
	}
	end := Abs(endInset)
	if !pinEnd {
		end = Frac(fraction(endInset, parent))
	}
	return Both(start, end)
}

func fraction(inset, parent float64) float64 {
	if parent == 0 {
		return 0
	}
	return inset / parent
}
