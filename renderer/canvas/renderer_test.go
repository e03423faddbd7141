package canvasrenderer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ByLCY/pinned/dsl"
	"github.com/ByLCY/pinned/layout"
	"github.com/ByLCY/pinned/renderer"
)

const scene = `
scene Render v1 {
  meta {
    title: "Render test"
  }
  frame 100mm 60mm fill #ffffff {
    pinned left 10 right 10 top 10 height 20 {
      box fill #3366cc stroke #000 stroke-width 0.5 opacity 0.8
    }
    pinned width 30 h-middle 0.5 bottom 5 height 10 {
      box stroke #cc0000
    }
  }
  frame A5 {
    box fill #eee
  }
}
`

func buildResult(t *testing.T) *layout.Result {
	t.Helper()
	doc, err := dsl.ParseString(scene)
	if err != nil {
		t.Fatalf("解析 DSL 失败: %v", err)
	}
	res, err := layout.Build(doc, nil, layout.BuildOptions{})
	if err != nil {
		t.Fatalf("构建布局失败: %v", err)
	}
	return res
}

func TestRenderPDF(t *testing.T) {
	out, err := NewRenderer().Render(buildResult(t))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Fatalf("output is not a PDF: %q", out[:min(len(out), 16)])
	}
}

func TestRenderSVG(t *testing.T) {
	r := NewRendererWithOptions(Options{Format: renderer.FormatSVG, Outline: true})
	out, err := r.Render(buildResult(t))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(string(out), "<svg") {
		t.Fatalf("output is not an SVG document")
	}
}

func TestRenderErrors(t *testing.T) {
	if _, err := NewRenderer().Render(nil); err == nil {
		t.Fatalf("nil result should fail")
	}
	if _, err := NewRenderer().Render(&layout.Result{}); err == nil {
		t.Fatalf("result without frames should fail")
	}
	r := NewRendererWithOptions(Options{Format: renderer.FormatSVG, Frame: 5})
	if _, err := r.Render(buildResult(t)); err == nil {
		t.Fatalf("out of range frame should fail")
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]renderer.Format{"": renderer.FormatPDF, "PDF": renderer.FormatPDF, " svg ": renderer.FormatSVG} {
		got, err := renderer.ParseFormat(in)
		if err != nil || got != want {
			t.Fatalf("ParseFormat(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := renderer.ParseFormat("png"); err == nil {
		t.Fatalf("png should be rejected")
	}
}
