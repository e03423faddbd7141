package layout

import "go.uber.org/zap"

// BuildOptions 配置布局阶段的调试输出与日志。
type BuildOptions struct {
	Debug  DebugOptions
	Logger *zap.Logger // 为空时不输出日志
}

// DebugOptions 控制调试相关输出。
type DebugOptions struct {
	Pins     bool // 在每个矩形上附带 debug.pins/spans
	RawUnits bool // 额外输出 debug.rawUnits 影子字段（需同时开启 Pins）
}

func (o BuildOptions) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}
