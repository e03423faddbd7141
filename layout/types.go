package layout

import "github.com/ByLCY/pinned/pin"

// 该文件定义布局结果与资源描述，供布局计算、渲染与调试 JSON 共用。

// Result 保存布局后的画框与资源信息。
type Result struct {
	Frames    []Frame      `json:"frames"`
	Resources ResourceSet  `json:"resources"`
	Meta      DocumentMeta `json:"meta"`
}

// ResourceSet 记录解析出的颜色与样式定义。
type ResourceSet struct {
	Colors map[string]Color `json:"colors"`
	Styles map[string]Style `json:"styles"`
}

// Color 采用 0-255 的 RGB 数值。
type Color struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// Frame 是一个根画框：尺寸（mm）以及按绘制顺序排列的矩形。
type Frame struct {
	Name   string  `json:"name,omitempty"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Rects  []Rect  `json:"rects"`
}

// Rect 是一个已经排好坐标的矩形，坐标为画框坐标（左上角为原点）。
type Rect struct {
	Name        string     `json:"name,omitempty"`
	X           float64    `json:"x"`
	Y           float64    `json:"y"`
	Width       float64    `json:"width"`
	Height      float64    `json:"height"`
	Depth       int        `json:"depth"`
	Fill        *Color     `json:"fill,omitempty"`
	Stroke      *Color     `json:"stroke,omitempty"`
	StrokeWidth float64    `json:"strokeWidth,omitempty"` // mm，<=0 时由渲染器给默认值
	Opacity     float64    `json:"opacity,omitempty"`     // 0 视为不透明
	Debug       *RectDebug `json:"debug,omitempty"`
}

// RectDebug holds the pins that placed a rect and what they resolved to.
type RectDebug struct {
	Horizontal pin.Fields `json:"horizontal"`
	Vertical   pin.Fields `json:"vertical"`
	Pins       string     `json:"pins"`
	HSpan      pin.Span   `json:"hSpan"`
	VSpan      pin.Span   `json:"vSpan"`
	RawUnits   *RawUnits  `json:"rawUnits,omitempty"`
}

// RawUnits records the author-specified values behind the pins.
type RawUnits map[string]RawLengthJSON

// RawLengthJSON is a JSON-friendly representation of Length.
type RawLengthJSON struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// Style 用于描述可继承的绘制样式。
type Style struct {
	Name    string            `json:"name"`
	Extends string            `json:"extends,omitempty"`
	Props   map[string]string `json:"props"`
}

// DocumentMeta 保存输出文件的元信息。
type DocumentMeta struct {
	Title    string   `json:"title"`
	Author   string   `json:"author"`
	Subject  string   `json:"subject"`
	Creator  string   `json:"creator"`
	Keywords []string `json:"keywords"`
}
