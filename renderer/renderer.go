package renderer

import (
	"fmt"
	"strings"

	"github.com/ByLCY/pinned/layout"
)

// Renderer 将布局结果输出为最终文件，例如 PDF 或 SVG。
// Render 返回生成的二进制数据以及可能的错误。
type Renderer interface {
	Render(result *layout.Result) ([]byte, error)
}

// Format 是输出文件格式。
type Format string

const (
	FormatPDF Format = "pdf"
	FormatSVG Format = "svg"
)

// ParseFormat 解析命令行或配置中的格式名，大小写不敏感。
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatPDF, FormatSVG:
		return f, nil
	case "":
		return FormatPDF, nil
	default:
		return "", fmt.Errorf("不支持的输出格式 %q", s)
	}
}

// Ext returns the file extension for f, including the dot.
func (f Format) Ext() string { return "." + string(f) }
