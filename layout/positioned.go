package layout

import (
	"fmt"

	"github.com/ByLCY/pinned/pin"
)

// Positioned 用语义化的边距/尺寸参数描述子节点位置，字段一一对应 pin.Fields。
type Positioned struct {
	Left             *float64 `json:"left,omitempty"`
	LeftFraction     *float64 `json:"leftFraction,omitempty"`
	Right            *float64 `json:"right,omitempty"`
	RightFraction    *float64 `json:"rightFraction,omitempty"`
	Width            *float64 `json:"width,omitempty"`
	HorizontalMiddle *float64 `json:"horizontalMiddle,omitempty"`

	Top            *float64 `json:"top,omitempty"`
	TopFraction    *float64 `json:"topFraction,omitempty"`
	Bottom         *float64 `json:"bottom,omitempty"`
	BottomFraction *float64 `json:"bottomFraction,omitempty"`
	Height         *float64 `json:"height,omitempty"`
	VerticalMiddle *float64 `json:"verticalMiddle,omitempty"`
}

// Pins 把语义参数转换为水平、垂直两个 Pin。
func (p Positioned) Pins() (h, v pin.Pin, err error) {
	h, err = pin.New(pin.Fields{
		Start:         p.Left,
		StartFraction: p.LeftFraction,
		End:           p.Right,
		EndFraction:   p.RightFraction,
		Size:          p.Width,
		Middle:        p.HorizontalMiddle,
	})
	if err != nil {
		return pin.Pin{}, pin.Pin{}, fmt.Errorf("水平方向: %w", err)
	}
	v, err = pin.New(pin.Fields{
		Start:         p.Top,
		StartFraction: p.TopFraction,
		End:           p.Bottom,
		EndFraction:   p.BottomFraction,
		Size:          p.Height,
		Middle:        p.VerticalMiddle,
	})
	if err != nil {
		return pin.Pin{}, pin.Pin{}, fmt.Errorf("垂直方向: %w", err)
	}
	return h, v, nil
}

// MustPins 与 Pins 相同，但参数组合非法时直接 panic。
func (p Positioned) MustPins() (h, v pin.Pin) {
	h, v, err := p.Pins()
	if err != nil {
		panic(err)
	}
	return h, v
}

// Pinned 以 p 描述的位置创建定位节点。
func (p Positioned) Pinned(child Node) (*Pinned, error) {
	h, v, err := p.Pins()
	if err != nil {
		return nil, err
	}
	return NewPinned(h, v, child), nil
}

// Design 描述设计工具导出的原始布局：原父容器尺寸、子节点原始矩形，以及各边固定与定尺寸标记。
type Design struct {
	ParentWidth  float64         `json:"parentWidth"`
	ParentHeight float64         `json:"parentHeight"`
	Bounds       pin.Bounds      `json:"bounds"`
	Flags        pin.DesignFlags `json:"flags"`
}

// Pins 推导出水平、垂直两个 Pin，本身不做任何布局。
func (d Design) Pins() (h, v pin.Pin) {
	return pin.FromDesign(d.ParentWidth, d.ParentHeight, d.Bounds, d.Flags)
}

// Pinned 以设计稿推导出的位置创建定位节点。
func (d Design) Pinned(child Node) *Pinned {
	h, v := d.Pins()
	return NewPinned(h, v, child)
}
