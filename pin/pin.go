// Package pin describes how a child is placed along one axis of its parent
// and resolves that description against the length available on the axis.
package pin

import (
	"errors"
	"fmt"
	"hash/fnv"
	"math"
	"strconv"
	"strings"
)

// Kind tells which combination of constraints a Pin carries.
type Kind uint8

const (
	// Fill stretches the child over the whole available length.
	Fill Kind = iota
	// BothEdges fixes the distance to the near and the far edge.
	BothEdges
	// StartAndSize fixes the distance to the near edge and the length.
	StartAndSize
	// EndAndSize fixes the distance to the far edge and the length.
	EndAndSize
	// SizeAndMiddle fixes the length and spreads the leftover space by a fraction.
	SizeAndMiddle
)

func (k Kind) String() string {
	switch k {
	case Fill:
		return "Fill"
	case BothEdges:
		return "BothEdges"
	case StartAndSize:
		return "StartAndSize"
	case EndAndSize:
		return "EndAndSize"
	case SizeAndMiddle:
		return "SizeAndMiddle"
	default:
		panic("unreachable")
	}
}

// Inset is a distance from a parent edge, either absolute or a fraction of
// the available length.
type Inset struct {
	Value    float64
	Fraction bool
}

// Abs returns an absolute inset.
func Abs(v float64) Inset { return Inset{Value: v} }

// Frac returns an inset expressed as a fraction of the available length.
func Frac(f float64) Inset { return Inset{Value: f, Fraction: true} }

// Resolve converts the inset to an absolute distance.
func (in Inset) Resolve(length float64) float64 {
	if in.Fraction {
		return in.Value * length
	}
	return in.Value
}

func (in Inset) String() string {
	if in.Fraction {
		return formatFloat(in.Value*100) + "%"
	}
	return formatFloat(in.Value)
}

// Pin is the placement of a child along one axis. Pins are values: two Pins
// are equal exactly when they describe the same placement, so they can be
// compared with == and used as map keys. The zero Pin is Fill.
type Pin struct {
	kind   Kind
	start  Inset
	end    Inset
	size   float64
	middle float64
}

// Stretch returns a Pin that fills the available length.
func Stretch() Pin { return Pin{} }

// Both returns a Pin fixed to both edges.
func Both(start, end Inset) Pin {
	return Pin{kind: BothEdges, start: start, end: end}
}

// StartSize returns a Pin fixed to the near edge with a fixed length.
func StartSize(start Inset, size float64) Pin {
	return Pin{kind: StartAndSize, start: start, size: size}
}

// EndSize returns a Pin fixed to the far edge with a fixed length.
func EndSize(end Inset, size float64) Pin {
	return Pin{kind: EndAndSize, end: end, size: size}
}

// Centered returns a Pin with a fixed length whose leftover space is split
// by middle: 0 keeps the child at the near edge, 1 at the far edge.
func Centered(size, middle float64) Pin {
	return Pin{kind: SizeAndMiddle, size: size, middle: middle}
}

// Kind reports which constraints p carries.
func (p Pin) Kind() Kind { return p.kind }

// Start returns the near-edge inset; ok is false when p has none.
func (p Pin) Start() (Inset, bool) {
	return p.start, p.kind == BothEdges || p.kind == StartAndSize
}

// End returns the far-edge inset; ok is false when p has none.
func (p Pin) End() (Inset, bool) {
	return p.end, p.kind == BothEdges || p.kind == EndAndSize
}

// Size returns the fixed length; ok is false when p has none.
func (p Pin) Size() (float64, bool) {
	return p.size, p.kind == StartAndSize || p.kind == EndAndSize || p.kind == SizeAndMiddle
}

// Middle returns the leftover-space fraction; ok is false when p has none.
func (p Pin) Middle() (float64, bool) {
	return p.middle, p.kind == SizeAndMiddle
}

// Hash combines every field of p. Equal pins hash equally.
func (p Pin) Hash() uint64 {
	h := fnv.New64a()
	var buf [8]byte
	put := func(v uint64) {
		for i := range buf {
			buf[i] = byte(v >> (8 * i))
		}
		h.Write(buf[:])
	}
	// -0 == +0，哈希前统一为 +0。
	bits := func(v float64) uint64 {
		if v == 0 {
			v = 0
		}
		return math.Float64bits(v)
	}
	put(uint64(p.kind))
	for _, in := range []Inset{p.start, p.end} {
		put(bits(in.Value))
		if in.Fraction {
			put(1)
		} else {
			put(0)
		}
	}
	put(bits(p.size))
	put(bits(p.middle))
	return h.Sum64()
}

// String dumps the fields p carries, e.g. "Pin(start: 20, endFraction: 0.6)".
func (p Pin) String() string {
	f := p.Fields()
	var parts []string
	add := func(name string, v *float64) {
		if v != nil {
			parts = append(parts, name+": "+formatFloat(*v))
		}
	}
	add("start", f.Start)
	add("startFraction", f.StartFraction)
	add("end", f.End)
	add("endFraction", f.EndFraction)
	add("size", f.Size)
	add("middle", f.Middle)
	return "Pin(" + strings.Join(parts, ", ") + ")"
}

// Fields is the loose form of a Pin: six optional values of which only some
// combinations are valid. It is what configuration files, the scene DSL and
// command-line flags produce before New checks it.
type Fields struct {
	Start         *float64 `json:"start,omitempty" yaml:"start,omitempty"`
	StartFraction *float64 `json:"startFraction,omitempty" yaml:"startFraction,omitempty"`
	End           *float64 `json:"end,omitempty" yaml:"end,omitempty"`
	EndFraction   *float64 `json:"endFraction,omitempty" yaml:"endFraction,omitempty"`
	Size          *float64 `json:"size,omitempty" yaml:"size,omitempty"`
	Middle        *float64 `json:"middle,omitempty" yaml:"middle,omitempty"`
}

var (
	ErrStartConflict     = errors.New("pin: start and startFraction are both set")
	ErrEndConflict       = errors.New("pin: end and endFraction are both set")
	ErrMiddleWithoutSize = errors.New("pin: middle requires size")
	ErrMiddleWithEdge    = errors.New("pin: middle cannot be combined with an edge")
	ErrOverConstrained   = errors.New("pin: size cannot be combined with both edges")
)

// New checks f and turns it into a Pin.
//
// Combinations the resolver has no rule for (a single edge without a size,
// or a size without an edge or middle) become Fill.
func New(f Fields) (Pin, error) {
	if f.Start != nil && f.StartFraction != nil {
		return Pin{}, fmt.Errorf("%w (start=%g, startFraction=%g)", ErrStartConflict, *f.Start, *f.StartFraction)
	}
	if f.End != nil && f.EndFraction != nil {
		return Pin{}, fmt.Errorf("%w (end=%g, endFraction=%g)", ErrEndConflict, *f.End, *f.EndFraction)
	}
	start, hasStart := pickInset(f.Start, f.StartFraction)
	end, hasEnd := pickInset(f.End, f.EndFraction)
	if f.Middle != nil {
		if f.Size == nil {
			return Pin{}, fmt.Errorf("%w (middle=%g)", ErrMiddleWithoutSize, *f.Middle)
		}
		if hasStart || hasEnd {
			return Pin{}, fmt.Errorf("%w (middle=%g)", ErrMiddleWithEdge, *f.Middle)
		}
	}
	if f.Size != nil && hasStart && hasEnd {
		return Pin{}, fmt.Errorf("%w (start=%s, end=%s, size=%g)", ErrOverConstrained, start, end, *f.Size)
	}

	switch {
	case hasStart && hasEnd:
		return Both(start, end), nil
	case hasStart && f.Size != nil:
		return StartSize(start, *f.Size), nil
	case hasEnd && f.Size != nil:
		return EndSize(end, *f.Size), nil
	case f.Size != nil && f.Middle != nil:
		return Centered(*f.Size, *f.Middle), nil
	default:
		return Stretch(), nil
	}
}

// Must is like New but panics when f combines fields in a forbidden way.
func Must(f Fields) Pin {
	p, err := New(f)
	if err != nil {
		panic(err)
	}
	return p
}

// Fields returns the loose form of p.
func (p Pin) Fields() Fields {
	var f Fields
	if in, ok := p.Start(); ok {
		if in.Fraction {
			f.StartFraction = Float(in.Value)
		} else {
			f.Start = Float(in.Value)
		}
	}
	if in, ok := p.End(); ok {
		if in.Fraction {
			f.EndFraction = Float(in.Value)
		} else {
			f.End = Float(in.Value)
		}
	}
	if v, ok := p.Size(); ok {
		f.Size = Float(v)
	}
	if v, ok := p.Middle(); ok {
		f.Middle = Float(v)
	}
	return f
}

// Float returns a pointer to v, for filling Fields.
func Float(v float64) *float64 { return &v }

func pickInset(abs, frac *float64) (Inset, bool) {
	switch {
	case abs != nil:
		return Abs(*abs), true
	case frac != nil:
		return Frac(*frac), true
	default:
		return Inset{}, false
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
