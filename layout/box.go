package layout

// Box 是可绘制的矩形节点。它总是占满收到的最大尺寸，
// 并把每个 Pinned 子节点都放在自身的完整区域内独立解析。
type Box struct {
	Name  string
	Paint Paint

	children    []*Pinned
	owner       Invalidator
	needsLayout bool
	size        Size
}

var (
	_ Node        = (*Box)(nil)
	_ Invalidator = (*Box)(nil)
)

// Paint 描述矩形的填充与描边。
type Paint struct {
	Fill        *Color  `json:"fill,omitempty"`
	Stroke      *Color  `json:"stroke,omitempty"`
	StrokeWidth float64 `json:"strokeWidth,omitempty"`
	Opacity     float64 `json:"opacity,omitempty"`
}

// NewBox 创建一个矩形节点并挂接子节点。
func NewBox(name string, paint Paint, children ...*Pinned) *Box {
	b := &Box{Name: name, Paint: paint, needsLayout: true}
	for _, c := range children {
		b.Add(c)
	}
	return b
}

// Add 追加一个定位子节点。
func (b *Box) Add(p *Pinned) {
	if p == nil {
		return
	}
	p.setOwner(b)
	b.children = append(b.children, p)
	b.MarkNeedsLayout()
}

// Children 返回全部定位子节点。
func (b *Box) Children() []*Pinned { return b.children }

// Size 返回最近一次布局得到的尺寸。
func (b *Box) Size() Size { return b.size }

// MarkNeedsLayout 标记需要重新布局并通知父节点。
func (b *Box) MarkNeedsLayout() {
	b.needsLayout = true
	if b.owner != nil {
		b.owner.MarkNeedsLayout()
	}
}

// NeedsLayout reports whether the box or one of its descendants changed.
func (b *Box) NeedsLayout() bool { return b.needsLayout }

func (b *Box) setOwner(owner Invalidator) { b.owner = owner }

// Layout 以最大可用尺寸布局自身，然后对每个子节点下发同样的精确约束。
func (b *Box) Layout(cs Constraints) Size {
	b.size = cs.Constrain(cs.Max)
	b.needsLayout = false
	inner := Tight(b.size)
	for _, c := range b.children {
		c.Layout(inner)
	}
	return b.size
}

// Placement 是布局完成后某个 Box 在根坐标系下的位置。
type Placement struct {
	Box    *Box
	Origin Point
	Size   Size
	Depth  int
	// Via 是把该 Box 放到此处的定位节点，根节点为 nil。
	Via *Pinned
}

// Flatten 按深度优先顺序（父在子前）展开已经布局好的树。
func Flatten(root *Box) []Placement {
	var out []Placement
	var walk func(b *Box, origin Point, depth int, via *Pinned)
	walk = func(b *Box, origin Point, depth int, via *Pinned) {
		out = append(out, Placement{Box: b, Origin: origin, Size: b.size, Depth: depth, Via: via})
		for _, p := range b.children {
			child, ok := p.Child().(*Box)
			if !ok {
				continue
			}
			walk(child, origin.Add(p.ChildOffset()), depth+1, p)
		}
	}
	if root != nil {
		walk(root, Point{}, 0, nil)
	}
	return out
}
