package layout

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Default base format values.
const (
	DefaultFontFamily  = "Arial"
	DefaultFontSize    = 14.0
	DefaultFontWeight  = "400"
	DefaultFontColor   = "black"
	DefaultStrokeColor = DefaultFontColor
	DefaultStrokeWidth = 0.0

	// decorationRefSize 是下划线/删除线几何尺寸的参考字号（px）。
	decorationRefSize = 24.0
)

// TextFormat is a partial text style. Nil fields inherit from the next source
// (word override -> base format -> defaults). Explicit zero values such as
// Size=0 or Weight="" are honored.
type TextFormat struct {
	Family        *string     `json:"fontFamily,omitempty"`
	Size          *float64    `json:"fontSize,omitempty"`
	Weight        *string     `json:"fontWeight,omitempty"`
	Style         *string     `json:"fontStyle,omitempty"`
	Variant       *string     `json:"fontVariant,omitempty"`
	Color         *string     `json:"fontColor,omitempty"`
	StrokeColor   *string     `json:"strokeColor,omitempty"`
	StrokeWidth   *float64    `json:"strokeWidth,omitempty"`
	Underline     *Decoration `json:"underline,omitempty"`
	Strikethrough *Decoration `json:"strikethrough,omitempty"`
}

// Ptr returns a pointer to v; handy for building TextFormat literals.
func Ptr[T any](v T) *T { return &v }

// Decoration is an underline or strikethrough setting: either a plain on/off
// switch or an object with optional color/thickness/offset.
//
// A literal with any of Color, Thickness or Offset set is the object form,
// so &Decoration{Thickness: Ptr(2.0)} enables the decoration. The zero
// value &Decoration{} means off.
type Decoration struct {
	object bool
	on     bool

	Color     *string  `json:"color,omitempty"`
	Thickness *float64 `json:"thickness,omitempty"`
	Offset    *float64 `json:"offset,omitempty"`
}

// DecorationStyle holds the optional fields of the object form.
type DecorationStyle struct {
	Color     *string
	Thickness *float64
	Offset    *float64
}

// DecorationOn enables the decoration with derived geometry and color.
func DecorationOn() *Decoration { return &Decoration{on: true} }

// DecorationOff disables the decoration (thickness 0).
func DecorationOff() *Decoration { return &Decoration{} }

// DecorationWith enables the decoration; fields left nil are derived.
func DecorationWith(s DecorationStyle) *Decoration {
	return &Decoration{object: true, on: true, Color: s.Color, Thickness: s.Thickness, Offset: s.Offset}
}

// IsObject reports whether the decoration uses the object form.
func (d *Decoration) IsObject() bool { return d != nil && d.isObject() }

func (d Decoration) isObject() bool {
	return d.object || d.Color != nil || d.Thickness != nil || d.Offset != nil
}

// MarshalJSON writes the bool form as true/false and the object form as an object.
func (d Decoration) MarshalJSON() ([]byte, error) {
	if !d.isObject() {
		return json.Marshal(d.on)
	}
	type plain struct {
		Color     *string  `json:"color,omitempty"`
		Thickness *float64 `json:"thickness,omitempty"`
		Offset    *float64 `json:"offset,omitempty"`
	}
	return json.Marshal(plain{Color: d.Color, Thickness: d.Thickness, Offset: d.Offset})
}

// UnmarshalJSON accepts either a boolean or an object.
func (d *Decoration) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("true")):
		*d = Decoration{on: true}
		return nil
	case bytes.Equal(data, []byte("false")):
		*d = Decoration{}
		return nil
	case len(data) > 0 && data[0] == '{':
		var obj struct {
			Color     *string  `json:"color"`
			Thickness *float64 `json:"thickness"`
			Offset    *float64 `json:"offset"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		*d = *DecorationWith(DecorationStyle{Color: obj.Color, Thickness: obj.Thickness, Offset: obj.Offset})
		return nil
	default:
		return fmt.Errorf("decoration must be a boolean or an object, got %s", data)
	}
}

// ResolvedDecoration is the concrete underline/strikethrough geometry.
type ResolvedDecoration struct {
	Color     string  `json:"color"`
	Thickness float64 `json:"thickness"`
	Offset    float64 `json:"offset"`
}

// Enabled reports whether the decoration should be drawn.
func (d ResolvedDecoration) Enabled() bool { return d.Thickness > 0 }

// ResolvedFormat is a TextFormat with every field concretely valued.
type ResolvedFormat struct {
	Family        string             `json:"fontFamily"`
	Size          float64            `json:"fontSize"`
	Weight        string             `json:"fontWeight"`
	Style         string             `json:"fontStyle"`
	Variant       string             `json:"fontVariant"`
	Color         string             `json:"fontColor"`
	StrokeColor   string             `json:"strokeColor"`
	StrokeWidth   float64            `json:"strokeWidth"`
	Underline     ResolvedDecoration `json:"underline"`
	Strikethrough ResolvedDecoration `json:"strikethrough"`
}

// Override returns a TextFormat that resolves back to f.
func (f ResolvedFormat) Override() *TextFormat {
	// 始终使用对象形式：关闭状态也保留颜色与偏移，保证往返一致。
	deco := func(d ResolvedDecoration) *Decoration {
		return DecorationWith(DecorationStyle{Color: Ptr(d.Color), Thickness: Ptr(d.Thickness), Offset: Ptr(d.Offset)})
	}
	return &TextFormat{
		Family:        Ptr(f.Family),
		Size:          Ptr(f.Size),
		Weight:        Ptr(f.Weight),
		Style:         Ptr(f.Style),
		Variant:       Ptr(f.Variant),
		Color:         Ptr(f.Color),
		StrokeColor:   Ptr(f.StrokeColor),
		StrokeWidth:   Ptr(f.StrokeWidth),
		Underline:     deco(f.Underline),
		Strikethrough: deco(f.Strikethrough),
	}
}

// Font returns the font specifier for f (no color).
func (f ResolvedFormat) Font() string {
	return FontString(TextFormat{Family: &f.Family, Size: &f.Size, Weight: &f.Weight, Style: &f.Style, Variant: &f.Variant})
}

// slot is one decoration sub-field during merging. A pending slot is filled in
// by ResolveFormat once size, family and color are known.
type slot[T any] struct {
	value     T
	pending   bool
	specified bool
}

func (s *slot[T]) set(v T) {
	s.value, s.pending, s.specified = v, false, true
}

func (s *slot[T]) markPending() {
	s.pending, s.specified = true, true
}

func (s *slot[T]) resolve(derive func() T) T {
	if s.pending {
		return derive()
	}
	return s.value
}

type decorationState struct {
	color     slot[string]
	thickness slot[float64]
	offset    slot[float64]
}

func (st *decorationState) apply(d *Decoration) {
	if d == nil {
		return
	}
	if !d.isObject() {
		if d.on {
			st.color.markPending()
			st.thickness.markPending()
			st.offset.markPending()
		} else {
			st.thickness.set(0)
		}
		return
	}
	if d.Color != nil {
		st.color.set(*d.Color)
	} else if !st.color.specified {
		st.color.markPending()
	}
	if d.Thickness != nil {
		st.thickness.set(*d.Thickness)
	} else if !st.thickness.specified {
		st.thickness.markPending()
	}
	if d.Offset != nil {
		st.offset.set(*d.Offset)
	} else if !st.offset.specified {
		st.offset.markPending()
	}
}

func (st *decorationState) resolve(f ResolvedFormat) ResolvedDecoration {
	factor := f.Size / decorationRefSize
	return ResolvedDecoration{
		Color:     st.color.resolve(func() string { return f.Color }),
		Thickness: st.thickness.resolve(func() float64 { return factor }),
		Offset:    st.offset.resolve(func() float64 { return familyOffset(f.Family) * factor }),
	}
}

// familyOffset 返回 24px 字号下各字体族的装饰线偏移量。
func familyOffset(family string) float64 {
	switch {
	case strings.HasPrefix(family, "Roboto"), strings.HasPrefix(family, "Verdana"):
		return -2
	case family == "Inter", strings.HasPrefix(family, "Montserrat"):
		return -1
	case strings.HasPrefix(family, "Comic Sans"):
		return -5
	default:
		return 0
	}
}

func newDecorationState() decorationState {
	st := decorationState{}
	st.color.value = DefaultFontColor
	return st
}

// ResolveFormat merges override onto base onto the defaults and derives the
// underline/strikethrough geometry that was left unspecified.
func ResolveFormat(override, base *TextFormat) ResolvedFormat {
	out := ResolvedFormat{
		Family:      DefaultFontFamily,
		Size:        DefaultFontSize,
		Weight:      DefaultFontWeight,
		Color:       DefaultFontColor,
		StrokeColor: DefaultStrokeColor,
		StrokeWidth: DefaultStrokeWidth,
	}
	underline, strike := newDecorationState(), newDecorationState()

	for _, src := range []*TextFormat{base, override} {
		if src == nil {
			continue
		}
		assign(&out.Family, src.Family)
		assign(&out.Size, src.Size)
		assign(&out.Weight, src.Weight)
		assign(&out.Style, src.Style)
		assign(&out.Variant, src.Variant)
		assign(&out.Color, src.Color)
		assign(&out.StrokeColor, src.StrokeColor)
		assign(&out.StrokeWidth, src.StrokeWidth)
		underline.apply(src.Underline)
		strike.apply(src.Strikethrough)
	}

	out.Underline = underline.resolve(out)
	out.Strikethrough = strike.resolve(out)
	return out
}

func assign[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// FontString builds the font specifier "style variant weight {size}px family".
// Empty parts are omitted; size and family fall back to the defaults.
func FontString(f TextFormat) string {
	size := DefaultFontSize
	if f.Size != nil {
		size = *f.Size
	}
	family := DefaultFontFamily
	if f.Family != nil && *f.Family != "" {
		family = *f.Family
	}
	parts := make([]string, 0, 5)
	for _, p := range []*string{f.Style, f.Variant, f.Weight} {
		if p != nil && strings.TrimSpace(*p) != "" {
			parts = append(parts, strings.TrimSpace(*p))
		}
	}
	parts = append(parts, fmt.Sprintf("%spx", formatNumber(size)), family)
	return strings.Join(parts, " ")
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
