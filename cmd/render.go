package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ByLCY/pinned/dsl"
	"github.com/ByLCY/pinned/internal/config"
	"github.com/ByLCY/pinned/internal/observability"
	"github.com/ByLCY/pinned/layout"
	"github.com/ByLCY/pinned/renderer"
	canvasrenderer "github.com/ByLCY/pinned/renderer/canvas"
)

type renderOptions struct {
	input         string
	output        string
	format        string
	debugPath     string
	debugRawUnits bool
	dataJSON      string
	dataFile      string
	frame         int
	outline       bool
}

func newRenderCmd(cfg *config.Config) *cobra.Command {
	opts := &renderOptions{}
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Lay out a scene file and render it to PDF or SVG",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("format") {
				opts.format = cfg.Render.Format
			}
			if !cmd.Flags().Changed("debug-raw-units") {
				opts.debugRawUnits = cfg.Render.DebugRawUnits
			}
			if !cmd.Flags().Changed("outline") {
				opts.outline = cfg.Render.Outline
			}
			return runRender(cmd.OutOrStdout(), opts, cfg.Render.StrokeWidth)
		},
	}
	cmd.Flags().StringVarP(&opts.input, "in", "i", "", "scene DSL 文件路径")
	cmd.Flags().StringVarP(&opts.output, "out", "o", "", "输出路径，- 表示标准输出（默认与输入同名）")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "pdf", "输出格式：pdf 或 svg")
	cmd.Flags().StringVar(&opts.debugPath, "debug", "", "布局调试 JSON 输出路径")
	cmd.Flags().BoolVar(&opts.debugRawUnits, "debug-raw-units", false, "在调试 JSON 中输出 debug.rawUnits 影子字段")
	cmd.Flags().StringVar(&opts.dataJSON, "data", "", "绑定到 DSL 的 JSON 数据")
	cmd.Flags().StringVar(&opts.dataFile, "data-file", "", "绑定到 DSL 的 JSON 文件")
	cmd.Flags().IntVar(&opts.frame, "frame", 0, "SVG 输出的画框序号")
	cmd.Flags().BoolVar(&opts.outline, "outline", false, "为没有描边的矩形画出轮廓")
	_ = cmd.MarkFlagRequired("in")
	cmd.MarkFlagsMutuallyExclusive("data", "data-file")
	return cmd
}

// runRender 串联解析、布局与渲染。
func runRender(stdout io.Writer, opts *renderOptions, strokeWidth float64) error {
	logger := observability.GetLogger()

	format, err := renderer.ParseFormat(opts.format)
	if err != nil {
		return err
	}
	data, err := loadData(opts.dataJSON, opts.dataFile)
	if err != nil {
		return err
	}

	file, err := os.Open(opts.input)
	if err != nil {
		return fmt.Errorf("无法打开 DSL 文件 %s: %w", opts.input, err)
	}
	defer file.Close()

	doc, err := dsl.Parse(file)
	if err != nil {
		return fmt.Errorf("解析 DSL 失败: %w", err)
	}

	result, err := layout.Build(doc, data, layout.BuildOptions{
		Debug:  layout.DebugOptions{Pins: opts.debugPath != "", RawUnits: opts.debugRawUnits},
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("布局计算失败: %w", err)
	}

	if opts.debugPath != "" {
		if err := writeDebug(result, opts.debugPath); err != nil {
			return err
		}
	}

	r := canvasrenderer.NewRendererWithOptions(canvasrenderer.Options{
		Format:      format,
		StrokeWidth: strokeWidth,
		Frame:       opts.frame,
		Outline:     opts.outline,
		Logger:      logger,
	})
	out, err := r.Render(result)
	if err != nil {
		return fmt.Errorf("渲染失败: %w", err)
	}

	if opts.output == "-" {
		_, err := stdout.Write(out)
		return err
	}
	outputPath := opts.output
	if outputPath == "" {
		outputPath = strings.TrimSuffix(opts.input, filepath.Ext(opts.input)) + format.Ext()
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}
	if err := os.WriteFile(outputPath, out, 0o644); err != nil {
		return fmt.Errorf("写入输出文件失败: %w", err)
	}
	logger.Info("rendered",
		zap.String("in", opts.input),
		zap.String("out", outputPath),
		zap.String("format", string(format)),
		zap.Int("frames", len(result.Frames)))
	fmt.Fprintf(stdout, "已生成 %s\n", outputPath)
	return nil
}

func loadData(inline, path string) (any, error) {
	raw := []byte(inline)
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("读取 data 文件失败: %w", err)
		}
		raw = b
	}
	if len(raw) == 0 {
		return nil, nil
	}
	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("解析 data JSON 失败: %w", err)
	}
	return data, nil
}

func writeDebug(result *layout.Result, debugPath string) error {
	if err := os.MkdirAll(filepath.Dir(debugPath), 0o755); err != nil {
		return fmt.Errorf("创建调试目录失败: %w", err)
	}
	if err := layout.WriteDebugJSON(result, debugPath); err != nil {
		return fmt.Errorf("输出调试 JSON 失败: %w", err)
	}
	return nil
}
