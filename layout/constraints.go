package layout

import "math"

// 该文件定义布局协议中的尺寸、坐标与约束，单位与其余布局结果一致（mm）。

// Size 是宽高二元组。
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Point 是相对于父节点原点的坐标。
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Constraints 描述父节点允许子节点占用的尺寸范围。
type Constraints struct {
	Min Size
	Max Size
}

// Tight 返回只能由 size 满足的约束。
func Tight(size Size) Constraints {
	return Constraints{Min: size, Max: size}
}

// Loose 返回最小值为零、最大值为 size 的约束。
func Loose(size Size) Constraints {
	return Constraints{Max: size}
}

// Constrain 把 size 夹到 [Min, Max] 区间内。
func (c Constraints) Constrain(size Size) Size {
	return Size{
		Width:  clamp(size.Width, c.Min.Width, c.Max.Width),
		Height: clamp(size.Height, c.Min.Height, c.Max.Height),
	}
}

// IsTight reports whether c admits exactly one size.
func (c Constraints) IsTight() bool {
	return c.Min == c.Max
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}
