// Package design 读取设计工具导出的布局文件，并把其中每个节点换算成可随父容器缩放的 Pin。
package design

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ByLCY/pinned/pin"
)

// Export 是一次设计稿导出：原父容器尺寸与其中的子节点。
type Export struct {
	Parent Size   `yaml:"parent"`
	Nodes  []Node `yaml:"nodes"`
}

// Size 是父容器尺寸。
type Size struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Node 是导出文件中的一个子节点。
type Node struct {
	Name   string     `yaml:"name"`
	Bounds pin.Bounds `yaml:"bounds"`
	Pin    []string   `yaml:"pin"`   // left/right/top/bottom
	Fixed  []string   `yaml:"fixed"` // width/height
}

// NodePins 是某个节点推导出的两个 Pin。
type NodePins struct {
	Name       string
	Horizontal pin.Pin
	Vertical   pin.Pin
}

// Placed 是节点在新父容器尺寸下的位置。
type Placed struct {
	Name       string   `json:"name"`
	Horizontal pin.Span `json:"horizontal"`
	Vertical   pin.Span `json:"vertical"`
}

// Load 解析 YAML 导出文件，未知字段视为错误。
func Load(r io.Reader) (*Export, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var e Export
	if err := dec.Decode(&e); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("导出文件为空")
		}
		return nil, fmt.Errorf("解析导出文件失败: %w", err)
	}
	if err := e.validate(); err != nil {
		return nil, err
	}
	return &e, nil
}

func (e *Export) validate() error {
	if e.Parent.Width < 0 || e.Parent.Height < 0 {
		return fmt.Errorf("父容器尺寸不能为负: %gx%g", e.Parent.Width, e.Parent.Height)
	}
	seen := map[string]bool{}
	for i, n := range e.Nodes {
		if n.Name == "" {
			return fmt.Errorf("第 %d 个节点缺少 name", i+1)
		}
		if seen[n.Name] {
			return fmt.Errorf("节点 %s 重复", n.Name)
		}
		seen[n.Name] = true
		if _, err := n.Flags(); err != nil {
			return fmt.Errorf("节点 %s: %w", n.Name, err)
		}
	}
	return nil
}

// Flags 把 pin/fixed 列表转换为 pin.DesignFlags。
func (n Node) Flags() (pin.DesignFlags, error) {
	var f pin.DesignFlags
	for _, edge := range n.Pin {
		switch strings.ToLower(edge) {
		case "left":
			f.PinLeft = true
		case "right":
			f.PinRight = true
		case "top":
			f.PinTop = true
		case "bottom":
			f.PinBottom = true
		default:
			return f, fmt.Errorf("未知的边 %q", edge)
		}
	}
	for _, dim := range n.Fixed {
		switch strings.ToLower(dim) {
		case "width":
			f.FixedWidth = true
		case "height":
			f.FixedHeight = true
		default:
			return f, fmt.Errorf("未知的尺寸 %q", dim)
		}
	}
	return f, nil
}

// Pins 按节点顺序推导每个节点的 Pin。
func (e *Export) Pins() []NodePins {
	out := make([]NodePins, 0, len(e.Nodes))
	for _, n := range e.Nodes {
		flags, _ := n.Flags() // Load 已校验
		h, v := pin.FromDesign(e.Parent.Width, e.Parent.Height, n.Bounds, flags)
		out = append(out, NodePins{Name: n.Name, Horizontal: h, Vertical: v})
	}
	return out
}

// Resolve 在 width×height 的新父容器中解析每个节点的位置。
func (e *Export) Resolve(width, height float64) []Placed {
	pins := e.Pins()
	out := make([]Placed, 0, len(pins))
	for _, np := range pins {
		out = append(out, Placed{
			Name:       np.Name,
			Horizontal: pin.Resolve(np.Horizontal, width),
			Vertical:   pin.Resolve(np.Vertical, height),
		})
	}
	return out
}
