package layout

import (
	"fmt"

	"github.com/ByLCY/pinned/pin"
)

// Node 是布局树中的节点：接收父节点给出的约束，返回自身占用的尺寸。
type Node interface {
	Layout(cs Constraints) Size
}

// Invalidator 接收"需要重新布局"的通知。
type Invalidator interface {
	MarkNeedsLayout()
}

// ownable 由可以向上传递重新布局通知的节点实现。
type ownable interface {
	setOwner(owner Invalidator)
}

// Pinned 按水平、垂直两组 Pin 定位唯一的子节点。
// 它总是占满父节点给出的最大尺寸，子节点则以精确尺寸布局在解析出的位置上。
type Pinned struct {
	horizontal pin.Pin
	vertical   pin.Pin
	child      Node

	owner       Invalidator
	needsLayout bool
	passes      int

	hSpan     pin.Span
	vSpan     pin.Span
	childSize Size
	offset    Point
}

var _ Node = (*Pinned)(nil)

// NewPinned 创建定位节点；child 可以为 nil。
func NewPinned(horizontal, vertical pin.Pin, child Node) *Pinned {
	p := &Pinned{
		horizontal:  horizontal,
		vertical:    vertical,
		child:       child,
		needsLayout: true,
	}
	if o, ok := child.(ownable); ok {
		o.setOwner(p)
	}
	return p
}

// Horizontal 返回当前的水平 Pin。
func (p *Pinned) Horizontal() pin.Pin { return p.horizontal }

// Vertical 返回当前的垂直 Pin。
func (p *Pinned) Vertical() pin.Pin { return p.vertical }

// Child 返回子节点。
func (p *Pinned) Child() Node { return p.child }

// SetHorizontal 整体替换水平 Pin；与当前值相等时不触发重新布局。
func (p *Pinned) SetHorizontal(h pin.Pin) {
	if p.horizontal == h {
		return
	}
	p.horizontal = h
	p.MarkNeedsLayout()
}

// SetVertical 整体替换垂直 Pin；与当前值相等时不触发重新布局。
func (p *Pinned) SetVertical(v pin.Pin) {
	if p.vertical == v {
		return
	}
	p.vertical = v
	p.MarkNeedsLayout()
}

// SetPins replaces both pins.
func (p *Pinned) SetPins(h, v pin.Pin) {
	p.SetHorizontal(h)
	p.SetVertical(v)
}

// MarkNeedsLayout 标记本节点需要重新布局，并沿父链向上传递。
func (p *Pinned) MarkNeedsLayout() {
	if p.needsLayout {
		return
	}
	p.needsLayout = true
	if p.owner != nil {
		p.owner.MarkNeedsLayout()
	}
}

// NeedsLayout reports whether a pin changed since the last layout pass.
func (p *Pinned) NeedsLayout() bool { return p.needsLayout }

// Passes 返回已执行的布局次数。
func (p *Pinned) Passes() int { return p.passes }

func (p *Pinned) setOwner(owner Invalidator) { p.owner = owner }

// Layout 执行一次布局：按最大可用宽高分别解析两个轴，
// 以精确尺寸布局子节点，并报告自身占满全部可用空间。
func (p *Pinned) Layout(cs Constraints) Size {
	p.passes++
	p.needsLayout = false
	if p.child == nil {
		p.hSpan, p.vSpan = pin.Span{}, pin.Span{}
		p.childSize, p.offset = Size{}, Point{}
		return cs.Constrain(Size{})
	}

	avail := cs.Max
	p.hSpan = pin.Resolve(p.horizontal, avail.Width)
	p.vSpan = pin.Resolve(p.vertical, avail.Height)
	p.childSize = Size{Width: p.hSpan.Size(), Height: p.vSpan.Size()}
	p.child.Layout(Tight(p.childSize))
	p.offset = Point{X: p.hSpan.Start, Y: p.vSpan.Start}
	return avail
}

// ChildOffset 返回最近一次布局后子节点相对本节点原点的偏移。
func (p *Pinned) ChildOffset() Point { return p.offset }

// ChildSize 返回最近一次布局时下发给子节点的精确尺寸。
func (p *Pinned) ChildSize() Size { return p.childSize }

// Spans returns the spans resolved by the last layout pass.
func (p *Pinned) Spans() (h, v pin.Span) { return p.hSpan, p.vSpan }

func (p *Pinned) String() string {
	return fmt.Sprintf("Pinned(horizontal: %v, vertical: %v)", p.horizontal, p.vertical)
}
