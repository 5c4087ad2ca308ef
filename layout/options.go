package layout

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoMeasurer is returned when Options carries no measurement backend.
	ErrNoMeasurer = errors.New("layout: 缺少测量后端 Measurer")
	// ErrInvalidAlign is returned for unknown horizontal or vertical alignments.
	ErrInvalidAlign = errors.New("layout: invalid alignment")
)

// Measurer 根据字体描述（见 FontString）测量一段文本。
type Measurer interface {
	Measure(text, font string) (Metrics, error)
}

// MeasureFunc adapts a function to Measurer.
type MeasureFunc func(text, font string) (Metrics, error)

// Measure calls fn.
func (fn MeasureFunc) Measure(text, font string) (Metrics, error) { return fn(text, font) }

// Align is the horizontal alignment. The zero value is AlignCenter.
type Align int

const (
	AlignCenter Align = iota
	AlignLeft
	AlignRight
)

// VAlign is the vertical alignment. The zero value is VAlignMiddle.
type VAlign int

const (
	VAlignMiddle VAlign = iota
	VAlignTop
	VAlignBottom
)

func (a Align) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignLeft:
		return "left"
	case AlignRight:
		return "right"
	default:
		return fmt.Sprintf("Align(%d)", int(a))
	}
}

func (v VAlign) String() string {
	switch v {
	case VAlignMiddle:
		return "middle"
	case VAlignTop:
		return "top"
	case VAlignBottom:
		return "bottom"
	default:
		return fmt.Sprintf("VAlign(%d)", int(v))
	}
}

// ParseAlign 解析水平对齐，空串视为默认值 center。
func ParseAlign(s string) (Align, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "center":
		return AlignCenter, nil
	case "left", "start":
		return AlignLeft, nil
	case "right", "end":
		return AlignRight, nil
	default:
		return 0, fmt.Errorf("%w: align %q", ErrInvalidAlign, s)
	}
}

// ParseVAlign 解析垂直对齐，空串视为默认值 middle。
func ParseVAlign(s string) (VAlign, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "middle":
		return VAlignMiddle, nil
	case "top":
		return VAlignTop, nil
	case "bottom":
		return VAlignBottom, nil
	default:
		return 0, fmt.Errorf("%w: vAlign %q", ErrInvalidAlign, s)
	}
}

// Options 配置一次排版。
type Options struct {
	Measurer Measurer
	Box      Box
	Align    Align
	VAlign   VAlign
	// Justify 为真时，非段尾行的空白会被拉伸/压缩以填满框宽。
	Justify bool
	// InferWhitespace 仅对 SplitWords 生效：在相邻的可见单词之间插入一个空格。
	// 零值为 false，单词数组需显式开启；DSL 中对应 box 的 infer-whitespace 属性。
	InferWhitespace bool
	// Format 为基础格式，nil 表示全部使用默认值。
	Format *TextFormat
	// Cache 可跨多次排版复用；nil 时每次排版使用新的缓存。
	Cache *MetricsCache
}

// Validate checks the options for values the engine cannot lay out.
func (o Options) Validate() error {
	if o.Measurer == nil {
		return ErrNoMeasurer
	}
	if o.Align < AlignCenter || o.Align > AlignRight {
		return fmt.Errorf("%w: %s", ErrInvalidAlign, o.Align)
	}
	if o.VAlign < VAlignMiddle || o.VAlign > VAlignBottom {
		return fmt.Errorf("%w: %s", ErrInvalidAlign, o.VAlign)
	}
	return nil
}

// BuildOptions 配置 DSL 构建阶段所需的依赖，例如测量后端。
type BuildOptions struct {
	Measurer Measurer
	// Cache 在整个文档的所有文本框之间共享；nil 时自动创建。
	Cache *MetricsCache
}
