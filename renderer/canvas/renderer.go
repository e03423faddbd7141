package canvasrenderer

import (
	"bytes"
	"fmt"
	"image/color"
	"strings"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"
	"github.com/tdewolff/canvas/renderers/svg"
	"go.uber.org/zap"

	"github.com/ByLCY/pinned/layout"
	"github.com/ByLCY/pinned/renderer"
)

const defaultStrokeWidth = 0.2

// Renderer draws layout results via github.com/tdewolff/canvas.
type Renderer struct {
	format      renderer.Format
	strokeWidth float64
	frame       int
	outline     bool
	log         *zap.Logger
}

var _ renderer.Renderer = (*Renderer)(nil)

// Options configures the canvas renderer.
type Options struct {
	Format renderer.Format
	// StrokeWidth 是描边宽度未指定时的默认值（mm）。
	StrokeWidth float64
	// Frame 是 SVG 输出的画框序号；PDF 会输出全部画框。
	Frame int
	// Outline 为每个矩形额外描一条细线，便于检查 Pin 解析结果。
	Outline bool
	Logger  *zap.Logger
}

// NewRenderer creates a PDF renderer with default options.
func NewRenderer() *Renderer { return NewRendererWithOptions(Options{}) }

// NewRendererWithOptions creates a renderer for the given format.
func NewRendererWithOptions(opts Options) *Renderer {
	r := &Renderer{
		format:      opts.Format,
		strokeWidth: opts.StrokeWidth,
		frame:       opts.Frame,
		outline:     opts.Outline,
		log:         opts.Logger,
	}
	if r.format == "" {
		r.format = renderer.FormatPDF
	}
	if r.strokeWidth <= 0 {
		r.strokeWidth = defaultStrokeWidth
	}
	if r.log == nil {
		r.log = zap.NewNop()
	}
	return r
}

// Render renders the result into PDF or SVG bytes.
func (r *Renderer) Render(result *layout.Result) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("渲染结果为空")
	}
	if len(result.Frames) == 0 {
		return nil, fmt.Errorf("缺少可渲染的画框")
	}
	switch r.format {
	case renderer.FormatPDF:
		return r.renderPDF(result)
	case renderer.FormatSVG:
		return r.renderSVG(result)
	default:
		return nil, fmt.Errorf("不支持的输出格式 %q", r.format)
	}
}

func (r *Renderer) renderPDF(result *layout.Result) ([]byte, error) {
	var buf bytes.Buffer
	first := result.Frames[0]
	writer := pdf.New(&buf, first.Width, first.Height, nil)
	applyMeta(writer, result.Meta)
	for i, frame := range result.Frames {
		if i > 0 {
			writer.NewPage(frame.Width, frame.Height)
		}
		r.drawFrame(frame).RenderTo(writer)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("写入 PDF 失败: %w", err)
	}
	r.log.Debug("pdf rendered", zap.Int("frames", len(result.Frames)), zap.Int("bytes", buf.Len()))
	return buf.Bytes(), nil
}

func (r *Renderer) renderSVG(result *layout.Result) ([]byte, error) {
	if r.frame < 0 || r.frame >= len(result.Frames) {
		return nil, fmt.Errorf("画框序号 %d 超出范围（共 %d 个）", r.frame, len(result.Frames))
	}
	frame := result.Frames[r.frame]
	var buf bytes.Buffer
	writer := svg.New(&buf, frame.Width, frame.Height, nil)
	r.drawFrame(frame).RenderTo(writer)
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("写入 SVG 失败: %w", err)
	}
	r.log.Debug("svg rendered", zap.String("frame", frame.Name), zap.Int("bytes", buf.Len()))
	return buf.Bytes(), nil
}

func (r *Renderer) drawFrame(frame layout.Frame) *canvas.Canvas {
	c := canvas.New(frame.Width, frame.Height)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV) // 使坐标与布局保持左上角为原点
	r.drawRects(ctx, frame.Rects)
	return c
}

func applyMeta(writer *pdf.PDF, meta layout.DocumentMeta) {
	if writer == nil {
		return
	}
	keywords := strings.Join(meta.Keywords, ", ")
	writer.SetInfo(meta.Title, meta.Subject, keywords, meta.Author, meta.Creator)
}

// drawRects 按展开顺序绘制矩形，父节点先于子节点。
func (r *Renderer) drawRects(ctx *canvas.Context, rects []layout.Rect) {
	for _, rc := range rects {
		alpha := 1.0
		if rc.Opacity > 0 && rc.Opacity < 1 {
			alpha = rc.Opacity
		}
		if rc.Fill != nil {
			ctx.SetFillColor(colorFromLayout(*rc.Fill, alpha))
		} else {
			ctx.SetFillColor(color.RGBA{0, 0, 0, 0})
		}
		switch {
		case rc.Stroke != nil:
			w := rc.StrokeWidth
			if w <= 0 {
				w = r.strokeWidth
			}
			ctx.SetStrokeColor(colorFromLayout(*rc.Stroke, alpha))
			ctx.SetStrokeWidth(w)
		case r.outline:
			ctx.SetStrokeColor(canvas.RGBA(0.9, 0.2, 0.2, 1))
			ctx.SetStrokeWidth(r.strokeWidth / 2)
		default:
			ctx.SetStrokeColor(color.RGBA{0, 0, 0, 0})
			ctx.SetStrokeWidth(0)
		}
		if rc.Width <= 0 || rc.Height <= 0 {
			continue
		}
		ctx.DrawPath(rc.X, rc.Y, canvas.Rectangle(rc.Width, rc.Height))
	}
}

func colorFromLayout(c layout.Color, alpha float64) color.Color {
	return canvas.RGBA(float64(c.R)/255.0, float64(c.G)/255.0, float64(c.B)/255.0, alpha)
}
