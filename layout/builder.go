package layout

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/ByLCY/pinned/binding"
	"github.com/ByLCY/pinned/dsl"
	"github.com/ByLCY/pinned/pin"
)

// Build 根据 DSL AST 构建定位树，对每个 frame 执行一次布局，并展开为可直接渲染的矩形。
func Build(doc *dsl.Document, data any, opts BuildOptions) (*Result, error) {
	if doc == nil {
		return nil, fmt.Errorf("文档为空")
	}
	res, err := collectResources(doc)
	if err != nil {
		return nil, err
	}
	meta := collectMeta(doc)
	opts.logger().Debug("resources collected",
		zap.Int("colors", len(res.Colors)),
		zap.Int("styles", len(res.Styles)))

	var frames []Frame
	for _, section := range doc.Sections {
		if section.Frame == nil {
			continue
		}
		scene, err := buildScene(section.Frame, res, data)
		if err != nil {
			return nil, err
		}
		frames = append(frames, scene.Layout(opts))
	}
	if len(frames) == 0 {
		return nil, fmt.Errorf("文档中缺少 frame 段落")
	}

	return &Result{
		Frames:    frames,
		Resources: res,
		Meta:      meta,
	}, nil
}

// Scene 是一个 frame 构建出的定位树，可以反复修改 Pin 并重新布局。
type Scene struct {
	Name string
	Root *Box
	Size Size

	raw map[*Pinned]RawUnits
}

// BuildScene 只构建第一个 frame 的定位树，不执行布局。
func BuildScene(doc *dsl.Document, data any) (*Scene, error) {
	if doc == nil {
		return nil, fmt.Errorf("文档为空")
	}
	res, err := collectResources(doc)
	if err != nil {
		return nil, err
	}
	for _, section := range doc.Sections {
		if section.Frame != nil {
			return buildScene(section.Frame, res, data)
		}
	}
	return nil, fmt.Errorf("文档中缺少 frame 段落")
}

// Layout 以 frame 尺寸为精确约束执行一次布局，返回展开后的画框。
func (s *Scene) Layout(opts BuildOptions) Frame {
	dirty := s.Root.NeedsLayout()
	s.Root.Layout(Tight(s.Size))
	frame := Frame{Name: s.Name, Width: s.Size.Width, Height: s.Size.Height}
	for _, pl := range Flatten(s.Root) {
		if pl.Depth == 0 && pl.Box.Paint == (Paint{}) {
			continue // frame 本身无样式时不输出矩形
		}
		frame.Rects = append(frame.Rects, s.rect(pl, opts.Debug))
	}
	opts.logger().Debug("frame laid out",
		zap.String("frame", frame.Name),
		zap.Float64("width", frame.Width),
		zap.Float64("height", frame.Height),
		zap.Bool("dirty", dirty),
		zap.Int("rects", len(frame.Rects)))
	return frame
}

func (s *Scene) rect(pl Placement, debug DebugOptions) Rect {
	r := Rect{
		Name:        pl.Box.Name,
		X:           pl.Origin.X,
		Y:           pl.Origin.Y,
		Width:       pl.Size.Width,
		Height:      pl.Size.Height,
		Depth:       pl.Depth,
		Fill:        pl.Box.Paint.Fill,
		Stroke:      pl.Box.Paint.Stroke,
		StrokeWidth: pl.Box.Paint.StrokeWidth,
		Opacity:     pl.Box.Paint.Opacity,
	}
	if debug.Pins && pl.Via != nil {
		hSpan, vSpan := pl.Via.Spans()
		r.Debug = &RectDebug{
			Horizontal: pl.Via.Horizontal().Fields(),
			Vertical:   pl.Via.Vertical().Fields(),
			Pins:       pl.Via.String(),
			HSpan:      hSpan,
			VSpan:      vSpan,
		}
		if raw, ok := s.raw[pl.Via]; ok && debug.RawUnits {
			r.Debug.RawUnits = &raw
		}
	}
	return r
}

// sceneBuilder 在构建期间携带资源、绑定数据与调试影子信息。
type sceneBuilder struct {
	res  ResourceSet
	data any
	raw  map[*Pinned]RawUnits
}

func buildScene(section *dsl.FrameSection, res ResourceSet, data any) (*Scene, error) {
	if section.Block == nil {
		return nil, fmt.Errorf("%s: frame 段落缺少内容", section.Pos)
	}
	b := &sceneBuilder{res: res, data: data, raw: map[*Pinned]RawUnits{}}
	params, err := b.interpolate(section.Params)
	if err != nil {
		return nil, fmt.Errorf("%s: frame: %w", section.Pos, err)
	}
	size, name, paint, err := b.resolveFrameSpec(params)
	if err != nil {
		return nil, fmt.Errorf("%s: frame: %w", section.Pos, err)
	}

	root := NewBox(name, paint)
	if err := b.processBlock(section.Block, root); err != nil {
		return nil, err
	}
	return &Scene{Name: name, Root: root, Size: size, raw: b.raw}, nil
}

// processBlock 处理 frame/box 内的语句：pinned、design，以及直接铺满父节点的 box。
func (b *sceneBuilder) processBlock(block *dsl.Block, parent *Box) error {
	for _, stmt := range block.Statements {
		if stmt.Command == nil {
			continue
		}
		cmd := stmt.Command
		var (
			p   *Pinned
			err error
		)
		switch cmd.Name {
		case "pinned":
			p, err = b.handlePinned(cmd)
		case "design":
			p, err = b.handleDesign(cmd)
		case "box":
			var box *Box
			box, err = b.handleBox(cmd)
			if err == nil {
				p = NewPinned(pin.Stretch(), pin.Stretch(), box)
			}
		default:
			err = fmt.Errorf("不支持的语句 %s", cmd.Name)
		}
		if err != nil {
			return fmt.Errorf("%s: %s: %w", cmd.Pos, cmd.Name, err)
		}
		parent.Add(p)
	}
	return nil
}

func (b *sceneBuilder) handlePinned(cmd *dsl.Command) (*Pinned, error) {
	args, err := b.interpolate(cmd.Args)
	if err != nil {
		return nil, err
	}
	pos, raw, err := parsePositioned(args)
	if err != nil {
		return nil, err
	}
	child, err := b.singleChild(cmd)
	if err != nil {
		return nil, err
	}
	p, err := pos.Pinned(child)
	if err != nil {
		return nil, err
	}
	if len(raw) > 0 {
		b.raw[p] = raw
	}
	return p, nil
}

func (b *sceneBuilder) handleDesign(cmd *dsl.Command) (*Pinned, error) {
	args, err := b.interpolate(cmd.Args)
	if err != nil {
		return nil, err
	}
	d, err := parseDesign(args)
	if err != nil {
		return nil, err
	}
	child, err := b.singleChild(cmd)
	if err != nil {
		return nil, err
	}
	return d.Pinned(child), nil
}

// singleChild 取出 pinned/design 块中唯一的 box；没有块时返回 nil 子节点。
func (b *sceneBuilder) singleChild(cmd *dsl.Command) (Node, error) {
	if cmd.Block == nil {
		return nil, nil
	}
	var child Node
	for _, stmt := range cmd.Block.Statements {
		if stmt.Command == nil {
			continue
		}
		if stmt.Command.Name != "box" {
			return nil, fmt.Errorf("%s: 只能包含 box，得到 %s", stmt.Command.Pos, stmt.Command.Name)
		}
		if child != nil {
			return nil, fmt.Errorf("%s: 只能包含一个子节点", stmt.Command.Pos)
		}
		box, err := b.handleBox(stmt.Command)
		if err != nil {
			return nil, fmt.Errorf("%s: box: %w", stmt.Command.Pos, err)
		}
		child = box
	}
	return child, nil
}

func (b *sceneBuilder) handleBox(cmd *dsl.Command) (*Box, error) {
	args, err := b.interpolate(cmd.Args)
	if err != nil {
		return nil, err
	}
	styleName, attrs := parseArgs(args, b.res.Styles)
	attrs = mergeStyleAttributes(styleName, attrs, b.res.Styles)
	paint, err := b.parsePaint(attrs)
	if err != nil {
		return nil, err
	}
	box := NewBox(attrs["name"], paint)
	if cmd.Block != nil {
		if err := b.processBlock(cmd.Block, box); err != nil {
			return nil, err
		}
	}
	return box, nil
}

func (b *sceneBuilder) parsePaint(attrs map[string]string) (Paint, error) {
	var paint Paint
	if v := attrs["fill"]; v != "" {
		c, err := resolveColor(v, b.res)
		if err != nil {
			return paint, err
		}
		paint.Fill = &c
	}
	if v := attrs["stroke"]; v != "" {
		c, err := resolveColor(v, b.res)
		if err != nil {
			return paint, err
		}
		paint.Stroke = &c
	}
	if v := attrs["stroke-width"]; v != "" {
		l, err := ParseRawLengthStr(v)
		if err != nil || l.IsFraction() {
			return paint, fmt.Errorf("stroke-width %q 无效", v)
		}
		paint.StrokeWidth = l.ToMM()
	}
	if v := attrs["opacity"]; v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return paint, fmt.Errorf("opacity %q 无效: %w", v, err)
		}
		paint.Opacity = f
	}
	return paint, nil
}

// resolveFrameSpec 解析 frame 头部：宽 高（或 A4/A5 预设与 landscape），以及可选的 name/样式属性。
func (b *sceneBuilder) resolveFrameSpec(params []*dsl.Lexeme) (Size, string, Paint, error) {
	var dims []float64
	var size Size
	landscape := false
	rest := []*dsl.Lexeme{}
	for i := 0; i < len(params); i++ {
		tok := params[i]
		if preset, ok := framePresets[strings.ToUpper(tok.Value)]; ok && len(dims) == 0 {
			dims = append(dims, preset[0], preset[1])
			continue
		}
		if tok.Value == "landscape" {
			landscape = true
			continue
		}
		if tok.Type == "Number" && len(dims) < 2 {
			l, err := ParseRawLengthStr(tok.Value)
			if err != nil || l.IsFraction() {
				return size, "", Paint{}, fmt.Errorf("frame 尺寸 %q 无效", tok.Value)
			}
			dims = append(dims, l.ToMM())
			continue
		}
		rest = append(rest, tok)
	}
	if len(dims) != 2 {
		return size, "", Paint{}, fmt.Errorf("frame 需要宽和高")
	}
	size = Size{Width: dims[0], Height: dims[1]}
	if landscape {
		size.Width, size.Height = size.Height, size.Width
	}
	styleName, attrs := parseArgs(rest, b.res.Styles)
	attrs = mergeStyleAttributes(styleName, attrs, b.res.Styles)
	paint, err := b.parsePaint(attrs)
	if err != nil {
		return size, "", Paint{}, err
	}
	return size, attrs["name"], paint, nil
}

var framePresets = map[string][2]float64{
	"A4": {210, 297},
	"A5": {148, 210},
}

// interpolate 用绑定数据替换参数中的 ${...}，无法替换时报错。
func (b *sceneBuilder) interpolate(args []*dsl.Lexeme) ([]*dsl.Lexeme, error) {
	out := make([]*dsl.Lexeme, 0, len(args))
	for _, arg := range args {
		if arg.Type != "Expr" {
			out = append(out, arg)
			continue
		}
		val := binding.Interpolate(arg.Value, b.data)
		if binding.HasPlaceholder(val) {
			return nil, fmt.Errorf("%s: 无法绑定 %s", arg.Pos, arg.Value)
		}
		typ := "Ident"
		if _, err := ParseRawLengthStr(val); err == nil {
			typ = "Number"
		}
		out = append(out, &dsl.Lexeme{Type: typ, Value: val, Raw: arg.Raw, Pos: arg.Pos})
	}
	return out, nil
}

// parseArgs 把参数按 key value 成对解析；若首个参数是已定义的样式名则视为样式。
func parseArgs(args []*dsl.Lexeme, styles map[string]Style) (string, map[string]string) {
	result := map[string]string{}
	if len(args) == 0 {
		return "", result
	}

	cursor := 0
	var style string
	if _, ok := styles[args[0].Value]; ok && args[0].Type == "Ident" {
		style = args[0].Value
		cursor = 1
	}

	for cursor < len(args)-1 {
		result[args[cursor].Value] = args[cursor+1].Value
		cursor += 2
	}
	return style, result
}

func mergeStyleAttributes(style string, inline map[string]string, styles map[string]Style) map[string]string {
	out := make(map[string]string)
	if s, ok := styles[style]; ok && style != "" {
		for k, v := range s.Props {
			out[k] = v
		}
	}
	for k, v := range inline {
		out[k] = v
	}
	return out
}
