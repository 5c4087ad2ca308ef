package layout

import (
	"github.com/bits-and-blooms/bitset"
)

// Baseline is the text baseline a renderer must use for a Result.
type Baseline string

const (
	BaselineTop    Baseline = "top"
	BaselineBottom Baseline = "bottom"
)

// anchor 描述垂直对齐对应的基线，以及单词 y 坐标取行顶还是行底。
type anchor struct {
	baseline Baseline
	atBottom bool
}

var vAlignAnchors = map[VAlign]anchor{
	VAlignTop:    {baseline: BaselineTop, atBottom: false},
	VAlignMiddle: {baseline: BaselineBottom, atBottom: true},
	VAlignBottom: {baseline: BaselineBottom, atBottom: true},
}

// measuredWord 是测量后、定位前的单词。
type measuredWord struct {
	word      Word
	format    ResolvedFormat
	metrics   Metrics
	space     bool
	hardBreak bool
}

// SplitText 对纯文本排版。换行符视为硬换行，文本两端的空白被丢弃，
// 空白已包含在文本中，因此不会推断空格。
func SplitText(text string, opts Options) (*Result, error) {
	return split(TextToWords(text), opts, false)
}

// SplitWords 对调用方给出的单词序列排版。words 不会被修改。
func SplitWords(words []Word, opts Options) (*Result, error) {
	return split(words, opts, opts.InferWhitespace)
}

func split(words []Word, opts Options, inferSpaces bool) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	cache := opts.Cache
	if cache == nil {
		cache = NewMetricsCache()
	}
	base := ResolveFormat(opts.Format, nil)
	anc := vAlignAnchors[opts.VAlign]

	res := &Result{
		Lines:     []Line{},
		Baseline:  anc.baseline,
		TextAlign: "left",
		Width:     opts.Box.Width,
		Box:       opts.Box,
		Format:    base,
	}
	if len(words) == 0 {
		return res, nil
	}

	measured, err := measureWords(words, opts, base, cache)
	if err != nil {
		return nil, err
	}
	if inferSpaces {
		measured, err = inferWhitespace(measured, opts, base, cache)
		if err != nil {
			return nil, err
		}
	}

	lines, terminal := wrapLines(measured, opts.Box.Width)
	lines, terminal = trimLines(lines, terminal)
	res.Lines, res.Height = positionLines(lines, terminal, opts, anc)
	return res, nil
}

func measureWords(words []Word, opts Options, base ResolvedFormat, cache *MetricsCache) ([]measuredWord, error) {
	out := make([]measuredWord, 0, len(words))
	for _, w := range words {
		mw := measuredWord{
			word:      w,
			format:    base,
			space:     IsWhitespace(w.Text),
			hardBreak: IsHardBreak(w.Text),
		}
		if w.Format != nil {
			// 覆盖格式合并到未解析的基础格式上，派生的装饰线尺寸随单词自身字号变化。
			mw.format = ResolveFormat(w.Format, opts.Format)
		}
		switch {
		case mw.hardBreak:
			// 硬换行不参与任何行，无需测量。
		case w.Metrics != nil:
			mw.metrics = *w.Metrics
		default:
			m, err := cache.measure(opts.Measurer, w.Text, mw.format)
			if err != nil {
				return nil, err
			}
			mw.metrics = m
		}
		out = append(out, mw)
	}
	return out, nil
}

// inferWhitespace 在相邻的两个可见单词之间插入一个使用基础格式的空格。
func inferWhitespace(words []measuredWord, opts Options, base ResolvedFormat, cache *MetricsCache) ([]measuredWord, error) {
	var space *measuredWord
	out := make([]measuredWord, 0, len(words)*2)
	for i, mw := range words {
		if i > 0 && !mw.space && !words[i-1].space {
			if space == nil {
				m, err := cache.measure(opts.Measurer, " ", base)
				if err != nil {
					return nil, err
				}
				space = &measuredWord{word: Word{Text: " "}, format: base, metrics: m, space: true}
			}
			out = append(out, *space)
		}
		out = append(out, mw)
	}
	return out, nil
}

// wrapLines 贪心折行：只有当前行已有可见单词且加入下一个单词会超出宽度时才换行，
// 因此不会产生空行，超宽单词独占一行且不会被截断。terminal 标记段尾行。
func wrapLines(words []measuredWord, width float64) ([][]measuredWord, *bitset.BitSet) {
	var (
		lines      [][]measuredWord
		terminal   = bitset.New(0)
		current    []measuredWord
		curWidth   float64
		hasVisible bool
	)
	push := func(last bool) {
		lines = append(lines, current)
		if last {
			terminal.Set(uint(len(lines) - 1))
		}
		current, curWidth, hasVisible = nil, 0, false
	}

	for _, mw := range words {
		if mw.hardBreak {
			if len(current) > 0 {
				push(true)
			}
			continue
		}
		if hasVisible && curWidth+mw.metrics.Width > width {
			push(false)
		}
		current = append(current, mw)
		// 行首空白终将被裁掉，不占用行宽
		if !mw.space || hasVisible {
			curWidth += mw.metrics.Width
		}
		if !mw.space {
			hasVisible = true
		}
	}
	if len(current) > 0 {
		push(true)
	}
	return lines, terminal
}

// trimLines 裁剪每行两端的空白并丢弃裁剪后为空的行，段尾标记前移到上一行。
func trimLines(lines [][]measuredWord, terminal *bitset.BitSet) ([][]measuredWord, *bitset.BitSet) {
	kept := make([][]measuredWord, 0, len(lines))
	keptTerminal := bitset.New(uint(len(lines)))
	for i, line := range lines {
		_, inner, _ := trimFunc(line, TrimBoth, func(mw measuredWord) bool { return mw.space })
		if len(inner) == 0 {
			if terminal.Test(uint(i)) && len(kept) > 0 {
				keptTerminal.Set(uint(len(kept) - 1))
			}
			continue
		}
		kept = append(kept, inner)
		if terminal.Test(uint(i)) {
			keptTerminal.Set(uint(len(kept) - 1))
		}
	}
	return kept, keptTerminal
}

func positionLines(lines [][]measuredWord, terminal *bitset.BitSet, opts Options, anc anchor) ([]Line, float64) {
	heights := make([]float64, len(lines))
	total := 0.0
	for i, line := range lines {
		for _, mw := range line {
			if mw.format.Size > heights[i] {
				heights[i] = mw.format.Size
			}
		}
		total += heights[i]
	}

	box := opts.Box
	var top float64
	switch opts.VAlign {
	case VAlignTop:
		top = box.Y
	case VAlignBottom:
		top = box.Y + box.Height - total
	default:
		top = box.Y + (box.Height-total)/2
	}

	out := make([]Line, 0, len(lines))
	y := top
	for i, line := range lines {
		lineWidth := 0.0
		spaces := 0
		for _, mw := range line {
			lineWidth += mw.metrics.Width
			if mw.space {
				spaces++
			}
		}

		stretch := 0.0
		offset := alignOffset(box.Width, lineWidth, opts.Align)
		if opts.Justify && !terminal.Test(uint(i)) && len(line) > 1 && spaces > 0 {
			stretch = (box.Width - lineWidth) / float64(spaces)
			offset = 0
		}

		wordY := y
		if anc.atBottom {
			wordY = y + heights[i]
		}
		x := box.X + offset
		positioned := make(Line, 0, len(line))
		for _, mw := range line {
			w := mw.metrics.Width
			if mw.space {
				w += stretch
			}
			positioned = append(positioned, PositionedWord{
				Word:         mw.word,
				Format:       mw.format,
				Metrics:      mw.metrics,
				X:            x,
				Y:            wordY,
				Width:        w,
				Height:       heights[i],
				IsWhitespace: mw.space,
			})
			x += w
		}
		out = append(out, positioned)
		y += heights[i]
	}
	return out, total
}

// alignOffset 返回行在框内的水平偏移；行宽超过框宽时偏移可能为负。
func alignOffset(container, width float64, align Align) float64 {
	switch align {
	case AlignLeft:
		return 0
	case AlignRight:
		return container - width
	default:
		return (container - width) / 2
	}
}
