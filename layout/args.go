package layout

import (
	"fmt"

	"github.com/ByLCY/pinned/dsl"
	"github.com/ByLCY/pinned/pin"
)

// pinnedKeys 是 pinned 语句接受的全部参数。
var pinnedKeys = map[string]bool{
	"left": true, "right": true, "top": true, "bottom": true,
	"width": true, "height": true, "h-middle": true, "v-middle": true,
}

// parsePositioned 解析 `pinned left 20 right 40% width 50mm h-middle 0.5 ...`。
// 边距带 % 时为父长度的比例；无单位的长度按 mm 处理；middle 取 0..1 或百分比。
func parsePositioned(args []*dsl.Lexeme) (Positioned, RawUnits, error) {
	var pos Positioned
	raw := RawUnits{}
	if len(args)%2 != 0 {
		return pos, nil, fmt.Errorf("参数必须成对出现（key value）")
	}
	for i := 0; i < len(args); i += 2 {
		key, val := args[i].Value, args[i+1].Value
		if !pinnedKeys[key] {
			return pos, nil, fmt.Errorf("%s: 未知参数 %s", args[i].Pos, key)
		}
		if _, dup := raw[key]; dup {
			return pos, nil, fmt.Errorf("%s: 重复的参数 %s", args[i].Pos, key)
		}
		l, err := ParseRawLengthStr(val)
		if err != nil {
			return pos, nil, fmt.Errorf("%s: %s: %w", args[i+1].Pos, key, err)
		}
		raw[key] = l.raw()

		switch key {
		case "left":
			pos.Left, pos.LeftFraction = edge(l)
		case "right":
			pos.Right, pos.RightFraction = edge(l)
		case "top":
			pos.Top, pos.TopFraction = edge(l)
		case "bottom":
			pos.Bottom, pos.BottomFraction = edge(l)
		case "width", "height":
			if l.IsFraction() {
				return pos, nil, fmt.Errorf("%s: %s 不支持百分比", args[i+1].Pos, key)
			}
			if key == "width" {
				pos.Width = pin.Float(l.ToMM())
			} else {
				pos.Height = pin.Float(l.ToMM())
			}
		case "h-middle", "v-middle":
			m, err := middle(l)
			if err != nil {
				return pos, nil, fmt.Errorf("%s: %s: %w", args[i+1].Pos, key, err)
			}
			if key == "h-middle" {
				pos.HorizontalMiddle = pin.Float(m)
			} else {
				pos.VerticalMiddle = pin.Float(m)
			}
		}
	}
	return pos, raw, nil
}

func edge(l Length) (abs, frac *float64) {
	if l.IsFraction() {
		return nil, pin.Float(l.Fraction())
	}
	return pin.Float(l.ToMM()), nil
}

func middle(l Length) (float64, error) {
	switch l.Unit {
	case UnitPercent:
		return l.Fraction(), nil
	case UnitNone:
		return l.Value, nil
	default:
		return 0, fmt.Errorf("middle 只接受无单位比例或百分比")
	}
}

// parseDesign 解析
// `design parent 200 200 bounds 20 20 50 50 pin left top fixed width`。
func parseDesign(args []*dsl.Lexeme) (Design, error) {
	var d Design
	var haveParent, haveBounds bool
	mode := ""
	for i := 0; i < len(args); {
		tok := args[i]
		switch tok.Value {
		case "parent":
			vals, err := lengths(args, i+1, 2)
			if err != nil {
				return d, fmt.Errorf("%s: parent: %w", tok.Pos, err)
			}
			d.ParentWidth, d.ParentHeight = vals[0], vals[1]
			haveParent, mode = true, ""
			i += 3
		case "bounds":
			vals, err := lengths(args, i+1, 4)
			if err != nil {
				return d, fmt.Errorf("%s: bounds: %w", tok.Pos, err)
			}
			d.Bounds = pin.Bounds{X: vals[0], Y: vals[1], Width: vals[2], Height: vals[3]}
			haveBounds, mode = true, ""
			i += 5
		case "pin", "fixed":
			mode = tok.Value
			i++
		default:
			if !setDesignFlag(&d.Flags, mode, tok.Value) {
				return d, fmt.Errorf("%s: 未知参数 %s", tok.Pos, tok.Value)
			}
			i++
		}
	}
	if !haveParent || !haveBounds {
		return d, fmt.Errorf("design 需要 parent 与 bounds")
	}
	return d, nil
}

func lengths(args []*dsl.Lexeme, from, n int) ([]float64, error) {
	if from+n > len(args) {
		return nil, fmt.Errorf("需要 %d 个长度", n)
	}
	out := make([]float64, n)
	for k := 0; k < n; k++ {
		l, err := ParseRawLengthStr(args[from+k].Value)
		if err != nil {
			return nil, err
		}
		if l.IsFraction() {
			return nil, fmt.Errorf("不支持百分比 %s", args[from+k].Value)
		}
		out[k] = l.ToMM()
	}
	return out, nil
}

// setDesignFlag 打开 pin/fixed 之后列出的一个标记。
func setDesignFlag(f *pin.DesignFlags, mode, name string) bool {
	switch mode + " " + name {
	case "pin left":
		f.PinLeft = true
	case "pin right":
		f.PinRight = true
	case "pin top":
		f.PinTop = true
	case "pin bottom":
		f.PinBottom = true
	case "fixed width":
		f.FixedWidth = true
	case "fixed height":
		f.FixedHeight = true
	default:
		return false
	}
	return true
}
