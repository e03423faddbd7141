package pin

import "math"

// Span is the resolved extent of a child along one axis.
type Span struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Size is the length of s, never negative.
func (s Span) Size() float64 {
	return math.Max(0, s.End-s.Start)
}

// Resolve places p on an axis of the given available length.
//
// A fixed-size child pinned to one edge is shifted, not shrunk, when the
// inset would push it past the opposite edge.
func Resolve(p Pin, length float64) Span {
	switch p.kind {
	case BothEdges:
		return Span{
			Start: p.start.Resolve(length),
			End:   length - p.end.Resolve(length),
		}
	case StartAndSize:
		start := math.Min(length-p.size, p.start.Resolve(length))
		return Span{Start: start, End: start + p.size}
	case EndAndSize:
		end := math.Max(p.size, length-p.end.Resolve(length))
		return Span{Start: end - p.size, End: end}
	case SizeAndMiddle:
		start := p.middle * (length - p.size)
		return Span{Start: start, End: start + p.size}
	default:
		return Span{Start: 0, End: length}
	}
}
