package canvasrenderer

import (
	"bytes"
	"fmt"
	"image/color"
	"math"
	"os"
	"strings"
	"sync"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/ByLCY/canvastxt/fonts"
	"github.com/ByLCY/canvastxt/layout"
	"github.com/ByLCY/canvastxt/renderer"
)

// pageMargin 是未指定页面尺寸时在内容外留出的边距（px）。
const pageMargin = 16.0

// Renderer measures and draws text via github.com/tdewolff/canvas.
// Layout coordinates are px; canvas works in mm with font sizes in pt.
type Renderer struct {
	pageWidth  float64
	pageHeight float64

	fontBlobs map[string][]byte // by family key, see fontKeys

	fontMu       sync.Mutex
	fontFamilies map[string]*fontFamilyEntry
}

var (
	_ renderer.Renderer = (*Renderer)(nil)
	_ layout.Measurer   = (*Renderer)(nil)
)

type fontFamilyEntry struct {
	family *canvas.FontFamily
	style  canvas.FontStyle
}

// Options configures the canvas renderer.
type Options struct {
	// PageWidth/PageHeight in px; zero means "fit all boxes".
	PageWidth  float64
	PageHeight float64
	// Fonts maps "Family", "Family:bold", "Family:italic" or "Family:bold-italic"
	// to font data. Families without data fall back to the embedded Go fonts.
	Fonts map[string]Resource
}

// Resource can be provided either by Bytes or by Path. Paths of the form
// "embed:go-bold" select an embedded face.
type Resource struct {
	Bytes []byte
	Path  string
}

// NewRenderer creates a renderer that uses only the embedded fonts.
func NewRenderer() *Renderer { return NewRendererWithOptions(Options{}) }

// NewRendererWithOptions creates a renderer with injected fonts.
func NewRendererWithOptions(opts Options) *Renderer {
	r := &Renderer{
		pageWidth:    opts.PageWidth,
		pageHeight:   opts.PageHeight,
		fontBlobs:    map[string][]byte{},
		fontFamilies: map[string]*fontFamilyEntry{},
	}
	for name, res := range opts.Fonts {
		if name == "" {
			continue
		}
		if len(res.Bytes) > 0 {
			r.fontBlobs[name] = res.Bytes
			continue
		}
		if res.Path == "" {
			continue
		}
		var data []byte
		if strings.HasPrefix(res.Path, "embed:") {
			data, _ = fonts.Load(res.Path)
		} else {
			data, _ = os.ReadFile(res.Path) // 读取失败时回退到内置字体
		}
		if len(data) > 0 {
			r.fontBlobs[name] = data
		}
	}
	return r
}

// Measure 实现 layout.Measurer，返回 px 单位的宽度、上升部与下降部。
func (r *Renderer) Measure(text, font string) (layout.Metrics, error) {
	spec, err := ParseFontString(font)
	if err != nil {
		return layout.Metrics{}, err
	}
	face, err := r.fontFace(spec, canvas.Black)
	if err != nil {
		return layout.Metrics{}, err
	}
	m := face.Metrics()
	return layout.Metrics{
		Width:   toPx(face.TextWidth(text)),
		Ascent:  toPx(m.Ascent),
		Descent: toPx(math.Abs(m.Descent)),
	}, nil
}

// Render draws every result onto a single PDF page.
func (r *Renderer) Render(results []*layout.Result) ([]byte, error) {
	if len(results) == 0 {
		return nil, fmt.Errorf("缺少可渲染的排版结果")
	}
	width, height := r.pageSize(results)

	var buf bytes.Buffer
	writer := pdf.New(&buf, toMm(width), toMm(height), nil)
	c := canvas.New(toMm(width), toMm(height))
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV) // 使坐标与排版保持左上角为原点

	for _, res := range results {
		if err := r.drawResult(ctx, res); err != nil {
			return nil, err
		}
	}
	c.RenderTo(writer)
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) pageSize(results []*layout.Result) (float64, float64) {
	if r.pageWidth > 0 && r.pageHeight > 0 {
		return r.pageWidth, r.pageHeight
	}
	var maxX, maxY float64
	for _, res := range results {
		maxX = math.Max(maxX, res.Box.X+math.Max(res.Box.Width, 0))
		maxY = math.Max(maxY, res.Box.Y+math.Max(res.Box.Height, res.Height))
		for _, line := range res.Lines {
			for _, pw := range line {
				maxX = math.Max(maxX, pw.X+pw.Width)
				maxY = math.Max(maxY, pw.Y+pw.Height)
			}
		}
	}
	w, h := r.pageWidth, r.pageHeight
	if w <= 0 {
		w = maxX + pageMargin
	}
	if h <= 0 {
		h = maxY + pageMargin
	}
	return w, h
}

func (r *Renderer) drawResult(ctx *canvas.Context, res *layout.Result) error {
	for _, line := range res.Lines {
		for _, pw := range line {
			if !pw.IsWhitespace {
				if err := r.drawWord(ctx, pw, res.Baseline); err != nil {
					return err
				}
			}
			// 空白也绘制装饰线，使连续带下划线的短语保持连贯。
			if err := drawUnderline(ctx, pw, res.Baseline); err != nil {
				return err
			}
			if err := drawStrikethrough(ctx, pw, res.Baseline); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *Renderer) drawWord(ctx *canvas.Context, pw layout.PositionedWord, baseline layout.Baseline) error {
	spec, err := ParseFontString(pw.Format.Font())
	if err != nil {
		return err
	}
	fill, err := ParseColor(pw.Format.Color)
	if err != nil {
		return err
	}
	face, err := r.fontFace(spec, fill)
	if err != nil {
		return err
	}

	// DrawText 的 y 为字体基线。
	y := pw.Y + pw.Metrics.Ascent
	if baseline == layout.BaselineBottom {
		y = pw.Y - pw.Metrics.Descent
	}
	ctx.DrawText(toMm(pw.X), toMm(y), canvas.NewTextLine(face, pw.Word.Text, canvas.Left))
	if pw.Format.StrokeWidth > 0 {
		return drawStroke(ctx, face, pw, y)
	}
	return nil
}

// drawStroke 在填充之后沿字形轮廓描边。
func drawStroke(ctx *canvas.Context, face *canvas.FontFace, pw layout.PositionedWord, baselineY float64) error {
	stroke, err := ParseColor(pw.Format.StrokeColor)
	if err != nil {
		return err
	}
	path, _, err := face.ToPath(pw.Word.Text)
	if err != nil {
		return fmt.Errorf("生成 %q 的字形轮廓失败: %w", pw.Word.Text, err)
	}
	// 字形路径是 y 轴向上的，CartesianIV 下需要翻转
	path = path.Scale(1, -1)

	ctx.Push()
	defer ctx.Pop()
	ctx.SetFillColor(canvas.Transparent)
	ctx.SetStrokeColor(stroke)
	ctx.SetStrokeWidth(toMm(pw.Format.StrokeWidth))
	ctx.DrawPath(toMm(pw.X), toMm(baselineY), path)
	return nil
}

func drawUnderline(ctx *canvas.Context, pw layout.PositionedWord, baseline layout.Baseline) error {
	deco := pw.Format.Underline
	if !deco.Enabled() {
		return nil
	}
	y := pw.Y + pw.Height - pw.Metrics.Descent
	if baseline == layout.BaselineBottom {
		y = pw.Y - pw.Metrics.Descent/2
	}
	return drawBar(ctx, pw, deco, y+deco.Offset)
}

func drawStrikethrough(ctx *canvas.Context, pw layout.PositionedWord, baseline layout.Baseline) error {
	deco := pw.Format.Strikethrough
	if !deco.Enabled() {
		return nil
	}
	y := pw.Y + pw.Height/2
	if baseline == layout.BaselineBottom {
		y = pw.Y - (pw.Height/2 - pw.Metrics.Descent/3)
	}
	return drawBar(ctx, pw, deco, y+deco.Offset)
}

// drawBar 以 y 为中线绘制一条与单词等宽的横线。
func drawBar(ctx *canvas.Context, pw layout.PositionedWord, deco layout.ResolvedDecoration, y float64) error {
	col, err := ParseColor(deco.Color)
	if err != nil {
		return err
	}
	ctx.SetFillColor(col)
	ctx.SetStrokeColor(canvas.Transparent)
	ctx.DrawPath(toMm(pw.X), toMm(y-deco.Thickness/2), canvas.Rectangle(toMm(pw.Width), toMm(deco.Thickness)))
	return nil
}

func (r *Renderer) fontFace(spec FontSpec, col color.Color) (*canvas.FontFace, error) {
	family, style, err := r.ensureFontFamily(spec)
	if err != nil {
		return nil, err
	}
	rgba := color.RGBAModel.Convert(col).(color.RGBA)
	return family.Face(toPt(spec.SizePx), rgba, style, canvas.FontNormal), nil
}

// ensureFontFamily 为 (family, style) 加载字体，每种组合只加载一次。
func (r *Renderer) ensureFontFamily(spec FontSpec) (*canvas.FontFamily, canvas.FontStyle, error) {
	style := spec.canvasStyle()
	key := fmt.Sprintf("%s|%d", spec.Family, style)
	r.fontMu.Lock()
	defer r.fontMu.Unlock()

	if entry, ok := r.fontFamilies[key]; ok {
		return entry.family, entry.style, nil
	}

	family := canvas.NewFontFamily(spec.Family)
	if err := family.LoadFont(r.fontBytes(spec), 0, style); err != nil {
		return nil, canvas.FontRegular, fmt.Errorf("加载字体 %s 失败: %w", spec.Family, err)
	}
	r.fontFamilies[key] = &fontFamilyEntry{family: family, style: style}
	return family, style, nil
}

// fontBytes 依次查找注入的字体数据，找不到时回退到内置 Go 字体。
func (r *Renderer) fontBytes(spec FontSpec) []byte {
	for _, key := range fontKeys(spec) {
		if blob, ok := r.fontBlobs[key]; ok {
			return blob
		}
	}
	return fonts.Bytes(fonts.Face{
		Mono:   fonts.IsMonoFamily(spec.Family),
		Bold:   spec.Bold(),
		Italic: spec.Italic(),
	})
}

func fontKeys(spec FontSpec) []string {
	var suffix []string
	if spec.Bold() {
		suffix = append(suffix, "bold")
	}
	if spec.Italic() {
		suffix = append(suffix, "italic")
	}
	keys := []string{}
	if len(suffix) > 0 {
		keys = append(keys, spec.Family+":"+strings.Join(suffix, "-"))
	}
	return append(keys, spec.Family)
}

var namedColors = map[string]string{
	"black":  "#000000",
	"white":  "#ffffff",
	"red":    "#ff0000",
	"green":  "#008000",
	"blue":   "#0000ff",
	"gray":   "#808080",
	"grey":   "#808080",
	"orange": "#ffa500",
	"yellow": "#ffff00",
	"purple": "#800080",
	"navy":   "#000080",
	"teal":   "#008080",
}

// ParseColor parses a CSS hex color (#rgb, #rrggbb) or a basic named color.
func ParseColor(value string) (color.Color, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "transparent" {
		return canvas.Transparent, nil
	}
	if hex, ok := namedColors[v]; ok {
		v = hex
	}
	c, err := colorful.Hex(v)
	if err != nil {
		return nil, fmt.Errorf("无法解析颜色 %q: %w", value, err)
	}
	return c, nil
}

// toPt 将像素(px)转换为点(pt)。
func toPt(px float64) float64 { return px * layout.PxToPt }

// toMm 将像素(px)转换为毫米(mm)。
func toMm(px float64) float64 { return px * layout.PxToMm }

// toPx 将毫米(mm)转换为像素(px)。
func toPx(mm float64) float64 { return mm * layout.MmToPx }
