package canvasrenderer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tdewolff/canvas"
)

// FontSpec is a parsed font specifier as produced by layout.FontString.
type FontSpec struct {
	Style   string
	Variant string
	Weight  string
	SizePx  float64
	Family  string
}

// ParseFontString 解析 "style variant weight {size}px family" 形式的字体描述。
// size 之前的各部分均可省略，family 可以包含空格或被引号包围。
func ParseFontString(font string) (FontSpec, error) {
	fields := strings.Fields(font)
	spec := FontSpec{Weight: "400"}
	for i, f := range fields {
		lower := strings.ToLower(f)
		if strings.HasSuffix(lower, "px") {
			size, err := strconv.ParseFloat(strings.TrimSuffix(lower, "px"), 64)
			if err != nil {
				return FontSpec{}, fmt.Errorf("字体描述 %q 的字号无效: %w", font, err)
			}
			spec.SizePx = size
			spec.Family = strings.Trim(strings.Join(fields[i+1:], " "), `"'`)
			if spec.Family == "" {
				return FontSpec{}, fmt.Errorf("字体描述 %q 缺少字体族", font)
			}
			return spec, nil
		}
		switch {
		case lower == "normal":
		case lower == "italic" || lower == "oblique":
			spec.Style = lower
		case lower == "small-caps":
			spec.Variant = lower
		case lower == "bold":
			spec.Weight = "700"
		case lower == "lighter" || lower == "bolder":
			spec.Weight = lower
		default:
			if _, err := strconv.Atoi(lower); err != nil {
				return FontSpec{}, fmt.Errorf("字体描述 %q 含有无法识别的部分 %q", font, f)
			}
			spec.Weight = lower
		}
	}
	return FontSpec{}, fmt.Errorf("字体描述 %q 缺少以 px 为单位的字号", font)
}

// Italic reports whether the spec asks for a slanted face.
func (s FontSpec) Italic() bool { return s.Style == "italic" || s.Style == "oblique" }

// Bold reports whether the spec needs a bold data file (weight >= 600).
func (s FontSpec) Bold() bool {
	switch s.Weight {
	case "bolder":
		return true
	case "lighter":
		return false
	}
	w, err := strconv.Atoi(s.Weight)
	return err == nil && w >= 600
}

// canvasStyle maps CSS weight/style onto a canvas.FontStyle.
func (s FontSpec) canvasStyle() canvas.FontStyle {
	result := canvas.FontRegular
	w, err := strconv.Atoi(s.Weight)
	switch {
	case s.Weight == "bolder":
		result = canvas.FontBold
	case s.Weight == "lighter":
		result = canvas.FontLight
	case err != nil:
		result = canvas.FontRegular
	case w >= 900:
		result = canvas.FontBlack
	case w >= 800:
		result = canvas.FontExtraBold
	case w >= 700:
		result = canvas.FontBold
	case w >= 600:
		result = canvas.FontSemiBold
	case w >= 500:
		result = canvas.FontMedium
	case w <= 300:
		result = canvas.FontLight
	}
	if s.Italic() {
		result |= canvas.FontItalic
	}
	return result
}
