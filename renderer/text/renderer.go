package textrenderer

import (
	"fmt"
	"math"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/ansi"

	"github.com/ByLCY/canvastxt/layout"
	"github.com/ByLCY/canvastxt/renderer"
)

// DefaultCols 是未指定列数时的网格宽度。
const DefaultCols = 80

// Renderer measures text in terminal cells and rasterizes results onto a
// rune grid, one row per line.
type Renderer struct {
	cols int
}

var (
	_ renderer.Renderer = (*Renderer)(nil)
	_ layout.Measurer   = (*Renderer)(nil)
)

// New returns a renderer whose grid is cols cells wide.
func New(cols int) *Renderer {
	if cols <= 0 {
		cols = DefaultCols
	}
	return &Renderer{cols: cols}
}

// Measure 返回 text 的显示宽度（单元格数），忽略字体；每行高一个单元格。
func (r *Renderer) Measure(text, _ string) (layout.Metrics, error) {
	return layout.Metrics{
		Width:  float64(ansi.PrintableRuneWidth(text)),
		Ascent: 1,
	}, nil
}

// Render 依次输出每个结果，结果之间以空行分隔。
func (r *Renderer) Render(results []*layout.Result) ([]byte, error) {
	if len(results) == 0 {
		return nil, fmt.Errorf("缺少可渲染的排版结果")
	}
	blocks := make([]string, 0, len(results))
	for _, res := range results {
		blocks = append(blocks, r.renderResult(res))
	}
	return []byte(strings.Join(blocks, "\n\n") + "\n"), nil
}

func (r *Renderer) renderResult(res *layout.Result) string {
	rows := make([]string, 0, len(res.Lines))
	for _, line := range res.Lines {
		rows = append(rows, r.renderLine(line, res.Box.X))
	}
	return strings.Join(rows, "\n")
}

// renderLine 把一行放到网格中，x 相对于 box 左边缘，超出列数的部分被裁掉。
func (r *Renderer) renderLine(line layout.Line, originX float64) string {
	grid := make([]rune, r.cols)
	for i := range grid {
		grid[i] = ' '
	}
	for _, pw := range line {
		if pw.IsWhitespace {
			continue
		}
		col := int(math.Round(pw.X - originX))
		for _, ch := range pw.Word.Text {
			w := runewidth.RuneWidth(ch)
			if w == 0 {
				continue
			}
			if col < 0 {
				col += w
				continue
			}
			if col+w > r.cols {
				break
			}
			grid[col] = ch
			// 宽字符占用的后续单元格留空，输出时跳过
			for k := 1; k < w; k++ {
				grid[col+k] = 0
			}
			col += w
		}
	}

	var b strings.Builder
	for _, ch := range grid {
		if ch != 0 {
			b.WriteRune(ch)
		}
	}
	return strings.TrimRight(b.String(), " ")
}
