package layout

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ByLCY/canvastxt/binding"
	"github.com/ByLCY/canvastxt/dsl"
)

// Build 根据 DSL AST 为每个 box 生成排版结果。data 为可选的 JSON 绑定数据。
func Build(doc *dsl.Document, data []byte, opts BuildOptions) ([]*Result, error) {
	if doc == nil {
		return nil, fmt.Errorf("文档为空")
	}
	if opts.Measurer == nil {
		return nil, ErrNoMeasurer
	}
	cache := opts.Cache
	if cache == nil {
		cache = NewMetricsCache()
	}

	results := make([]*Result, 0, len(doc.Boxes))
	for i, box := range doc.Boxes {
		res, err := buildBox(box, data, opts.Measurer, cache)
		if err != nil {
			return nil, fmt.Errorf("第 %d 个 box: %w", i+1, err)
		}
		results = append(results, res)
	}
	return results, nil
}

func buildBox(box *dsl.Box, data []byte, m Measurer, cache *MetricsCache) (*Result, error) {
	if box.Block == nil {
		return nil, fmt.Errorf("%s: box 缺少内容", box.Pos)
	}
	opts, err := parseBoxArgs(box.Args)
	if err != nil {
		return nil, err
	}
	opts.Measurer = m
	opts.Cache = cache

	base := &TextFormat{}
	var words []Word
	for _, stmt := range box.Block.Statements {
		switch {
		case stmt.Assignment != nil:
			a := stmt.Assignment
			if err := applyFormatAttr(base, a.Key, a.Value.Raw()); err != nil {
				return nil, fmt.Errorf("%s: %w", a.Pos, err)
			}
		case stmt.Span != nil:
			spanWords, err := buildSpan(stmt.Span, data)
			if err != nil {
				return nil, err
			}
			words = append(words, spanWords...)
		case stmt.Break != nil:
			words = append(words, Word{Text: "\n"})
		case stmt.Text != nil:
			words = append(words, tokenize(binding.Interpolate(string(stmt.Text.Value), data))...)
		}
	}
	opts.Format = base

	// 字符串之间的空白原样保留，行首行尾的空白由排版阶段裁剪。
	return SplitWords(words, opts)
}

func buildSpan(span *dsl.Span, data []byte) ([]Word, error) {
	override := &TextFormat{}
	positional, attrs, err := parseArgs(span.Args)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", span.Pos, err)
	}
	if len(positional) > 0 {
		return nil, fmt.Errorf("%s: span 不接受位置参数", positional[0].Pos)
	}
	for _, kv := range attrs {
		if err := applyFormatAttr(override, kv.key, kv.value); err != nil {
			return nil, fmt.Errorf("%s: %w", kv.pos, err)
		}
	}

	var words []Word
	for _, stmt := range span.Block.Statements {
		switch {
		case stmt.Text != nil:
			for _, w := range tokenize(binding.Interpolate(string(stmt.Text.Value), data)) {
				if !IsHardBreak(w.Text) {
					w.Format = override
				}
				words = append(words, w)
			}
		case stmt.Break != nil:
			words = append(words, Word{Text: "\n"})
		case stmt.Span != nil:
			return nil, fmt.Errorf("%s: span 不支持嵌套", stmt.Span.Pos)
		case stmt.Assignment != nil:
			return nil, fmt.Errorf("%s: span 内不支持属性赋值 %q", stmt.Assignment.Pos, stmt.Assignment.Key)
		}
	}
	return words, nil
}

type attr struct {
	key   string
	value string
	pos   fmt.Stringer
}

// parseArgs 将参数拆成开头的位置参数（数字）与其后的 key value 对。
func parseArgs(args []*dsl.Lexeme) ([]*dsl.Lexeme, []attr, error) {
	cursor := 0
	for cursor < len(args) && args[cursor].Type == "Number" {
		cursor++
	}
	positional := args[:cursor]

	var attrs []attr
	for cursor < len(args) {
		key := args[cursor]
		if key.Type != "Ident" {
			return nil, nil, fmt.Errorf("%s: 期望属性名，得到 %q", key.Pos, key.Raw)
		}
		if cursor+1 >= len(args) {
			return nil, nil, fmt.Errorf("%s: 属性 %q 缺少取值", key.Pos, key.Value)
		}
		attrs = append(attrs, attr{key: key.Value, value: args[cursor+1].Value, pos: key.Pos})
		cursor += 2
	}
	return positional, attrs, nil
}

func parseBoxArgs(args []*dsl.Lexeme) (Options, error) {
	var opts Options
	positional, attrs, err := parseArgs(args)
	if err != nil {
		return opts, err
	}
	if len(positional) > 4 {
		return opts, fmt.Errorf("%s: box 最多 4 个位置参数（x y width height）", positional[4].Pos)
	}
	dims := []*float64{&opts.Box.X, &opts.Box.Y, &opts.Box.Width, &opts.Box.Height}
	for i, lx := range positional {
		v, err := ParseLength(lx.Value)
		if err != nil {
			return opts, fmt.Errorf("%s: %w", lx.Pos, err)
		}
		*dims[i] = v
	}

	for _, kv := range attrs {
		var err error
		switch strings.ToLower(kv.key) {
		case "x":
			opts.Box.X, err = ParseLength(kv.value)
		case "y":
			opts.Box.Y, err = ParseLength(kv.value)
		case "width", "w":
			opts.Box.Width, err = ParseLength(kv.value)
		case "height", "h":
			opts.Box.Height, err = ParseLength(kv.value)
		case "align":
			opts.Align, err = ParseAlign(kv.value)
		case "valign", "v-align":
			opts.VAlign, err = ParseVAlign(kv.value)
		case "justify":
			opts.Justify, err = strconv.ParseBool(kv.value)
		case "infer-whitespace":
			opts.InferWhitespace, err = strconv.ParseBool(kv.value)
		default:
			err = fmt.Errorf("未知的 box 属性 %q", kv.key)
		}
		if err != nil {
			return opts, fmt.Errorf("%s: %w", kv.pos, err)
		}
	}
	return opts, nil
}

// applyFormatAttr 将一个 DSL 属性写入局部格式。
func applyFormatAttr(f *TextFormat, key, value string) error {
	key = strings.ToLower(strings.TrimSpace(key))
	switch key {
	case "font", "family", "font-family":
		f.Family = Ptr(value)
	case "size", "font-size":
		v, err := ParseLength(value)
		if err != nil {
			return err
		}
		f.Size = Ptr(v)
	case "weight", "font-weight":
		f.Weight = Ptr(normalizeWeight(value))
	case "style", "font-style":
		f.Style = Ptr(value)
	case "variant", "font-variant":
		f.Variant = Ptr(value)
	case "color", "fill":
		f.Color = Ptr(value)
	case "stroke", "stroke-color":
		f.StrokeColor = Ptr(value)
	case "stroke-width":
		v, err := ParseLength(value)
		if err != nil {
			return err
		}
		f.StrokeWidth = Ptr(v)
	case "underline":
		d, err := parseDecorationSwitch(value)
		if err != nil {
			return err
		}
		f.Underline = d
	case "strike", "strikethrough":
		d, err := parseDecorationSwitch(value)
		if err != nil {
			return err
		}
		f.Strikethrough = d
	default:
		if prop, sub, ok := strings.Cut(key, "-"); ok {
			switch prop {
			case "underline":
				return applyDecorationAttr(&f.Underline, sub, value)
			case "strike", "strikethrough":
				return applyDecorationAttr(&f.Strikethrough, sub, value)
			}
		}
		return fmt.Errorf("未知的格式属性 %q", key)
	}
	return nil
}

func parseDecorationSwitch(value string) (*Decoration, error) {
	on, err := strconv.ParseBool(value)
	if err != nil {
		return nil, fmt.Errorf("装饰线开关必须为 true/false: %w", err)
	}
	if on {
		return DecorationOn(), nil
	}
	return DecorationOff(), nil
}

// applyDecorationAttr 处理 underline-color / underline-thickness / underline-offset，
// 任何子属性都会把装饰线切换为对象形式。
func applyDecorationAttr(dst **Decoration, sub, value string) error {
	d := *dst
	if !d.IsObject() {
		d = DecorationWith(DecorationStyle{})
	}
	switch sub {
	case "color":
		d.Color = Ptr(value)
	case "thickness":
		v, err := ParseLength(value)
		if err != nil {
			return err
		}
		d.Thickness = Ptr(v)
	case "offset":
		v, err := ParseLength(value)
		if err != nil {
			return err
		}
		d.Offset = Ptr(v)
	default:
		return fmt.Errorf("未知的装饰线属性 %q", sub)
	}
	*dst = d
	return nil
}

func normalizeWeight(v string) string {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "normal", "regular":
		return "400"
	case "bold":
		return "700"
	default:
		return strings.TrimSpace(v)
	}
}
