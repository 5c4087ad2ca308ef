package layout

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveFormatDefaults(t *testing.T) {
	f := ResolveFormat(nil, nil)
	require.Equal(t, ResolvedFormat{
		Family:        "Arial",
		Size:          14,
		Weight:        "400",
		Color:         "black",
		StrokeColor:   "black",
		Underline:     ResolvedDecoration{Color: "black"},
		Strikethrough: ResolvedDecoration{Color: "black"},
	}, f)
	require.False(t, f.Underline.Enabled())
	require.Equal(t, "14px Arial", f.Font())
}

func TestResolveFormatOverrideWins(t *testing.T) {
	base := &TextFormat{Family: Ptr("Inter"), Size: Ptr(20.0), Color: Ptr("#333")}
	override := &TextFormat{Size: Ptr(10.0), Weight: Ptr("700")}

	f := ResolveFormat(override, base)
	require.Equal(t, "Inter", f.Family)
	require.Equal(t, 10.0, f.Size)
	require.Equal(t, "700", f.Weight)
	require.Equal(t, "#333", f.Color)

	// 显式的零值同样生效
	zero := ResolveFormat(&TextFormat{Size: Ptr(0.0), Weight: Ptr("")}, base)
	require.Equal(t, 0.0, zero.Size)
	require.Equal(t, "", zero.Weight)
}

func TestDecorationDerivedGeometry(t *testing.T) {
	cases := []struct {
		family    string
		size      float64
		thickness float64
		offset    float64
	}{
		{"Roboto", 24, 1, -2},
		{"Roboto", 48, 2, -4},
		{"Roboto Slab", 12, 0.5, -1},
		{"Verdana", 36, 1.5, -3},
		{"Inter", 24, 1, -1},
		{"Inter Display", 24, 1, 0},
		{"Montserrat Alternates", 48, 2, -2},
		{"Comic Sans MS", 24, 1, -5},
		{"Arial", 24, 1, 0},
	}
	for _, tc := range cases {
		f := ResolveFormat(&TextFormat{
			Family:        Ptr(tc.family),
			Size:          Ptr(tc.size),
			Color:         Ptr("red"),
			Underline:     DecorationOn(),
			Strikethrough: DecorationOn(),
		}, nil)
		want := ResolvedDecoration{Color: "red", Thickness: tc.thickness, Offset: tc.offset}
		require.Equal(t, want, f.Underline, "%s %gpx", tc.family, tc.size)
		require.Equal(t, want, f.Strikethrough, "%s %gpx", tc.family, tc.size)
	}
}

func TestDecorationFollowsWordSize(t *testing.T) {
	base := &TextFormat{Family: Ptr("Roboto"), Size: Ptr(24.0), Underline: DecorationOn()}
	f := ResolveFormat(&TextFormat{Size: Ptr(48.0)}, base)
	require.Equal(t, 2.0, f.Underline.Thickness)
	require.Equal(t, -4.0, f.Underline.Offset)
}

func TestDecorationFalseOverridesBase(t *testing.T) {
	base := &TextFormat{Underline: DecorationWith(DecorationStyle{Thickness: Ptr(3.0)})}
	f := ResolveFormat(&TextFormat{Underline: DecorationOff()}, base)
	require.False(t, f.Underline.Enabled())

	f = ResolveFormat(&TextFormat{Underline: DecorationOn()}, &TextFormat{Underline: DecorationOff()})
	require.True(t, f.Underline.Enabled())
}

func TestDecorationObjectMergesFields(t *testing.T) {
	base := &TextFormat{Strikethrough: DecorationWith(DecorationStyle{Thickness: Ptr(3.0)})}
	f := ResolveFormat(&TextFormat{Strikethrough: DecorationWith(DecorationStyle{Color: Ptr("blue")})}, base)
	require.Equal(t, ResolvedDecoration{Color: "blue", Thickness: 3, Offset: 0}, f.Strikethrough)

	// 对象形式中省略的颜色取填充色
	f = ResolveFormat(&TextFormat{
		Color:     Ptr("green"),
		Underline: DecorationWith(DecorationStyle{Offset: Ptr(4.0)}),
	}, nil)
	require.Equal(t, ResolvedDecoration{Color: "green", Thickness: 14.0 / 24, Offset: 4}, f.Underline)
}

func TestDecorationLiteralFields(t *testing.T) {
	f := ResolveFormat(&TextFormat{Underline: &Decoration{Thickness: Ptr(2.0)}}, nil)
	require.True(t, f.Underline.Enabled())
	require.Equal(t, 2.0, f.Underline.Thickness)

	f = ResolveFormat(&TextFormat{Color: Ptr("red"), Strikethrough: &Decoration{Color: Ptr("blue")}}, nil)
	require.True(t, f.Strikethrough.Enabled())
	require.Equal(t, "blue", f.Strikethrough.Color)

	// 零值仍表示关闭
	f = ResolveFormat(&TextFormat{Underline: &Decoration{}}, &TextFormat{Underline: DecorationOn()})
	require.False(t, f.Underline.Enabled())

	d := &Decoration{Offset: Ptr(1.0)}
	require.True(t, d.IsObject())
	out, err := json.Marshal(d)
	require.NoError(t, err)
	require.JSONEq(t, `{"offset":1}`, string(out))
}

func TestResolveFormatIdempotent(t *testing.T) {
	formats := []ResolvedFormat{
		ResolveFormat(nil, nil),
		ResolveFormat(&TextFormat{Family: Ptr("Roboto"), Size: Ptr(30.0), Underline: DecorationOn()}, nil),
		ResolveFormat(&TextFormat{Style: Ptr("italic"), Strikethrough: DecorationWith(DecorationStyle{Color: Ptr("red")})},
			&TextFormat{Size: Ptr(7.5), Underline: DecorationOff()}),
	}
	other := &TextFormat{Family: Ptr("Comic Sans MS"), Size: Ptr(99.0), Underline: DecorationOn()}
	for _, f := range formats {
		require.Equal(t, f, ResolveFormat(f.Override(), nil))
		require.Equal(t, f, ResolveFormat(f.Override(), other))
	}
}

func TestFontString(t *testing.T) {
	require.Equal(t, "italic 700 24px Arial", FontString(TextFormat{
		Style: Ptr("italic"), Weight: Ptr("700"), Size: Ptr(24.0), Family: Ptr("Arial"),
	}))
	require.Equal(t, "700 24px Arial", FontString(TextFormat{Weight: Ptr("700"), Size: Ptr(24.0), Family: Ptr("Arial")}))
	require.Equal(t, "small-caps 10.5px Arial", FontString(TextFormat{Variant: Ptr("small-caps"), Size: Ptr(10.5)}))
	require.Equal(t, "14px Arial", FontString(TextFormat{Style: Ptr(""), Family: Ptr("")}))
}

func TestDecorationJSON(t *testing.T) {
	var tf TextFormat
	require.NoError(t, json.Unmarshal([]byte(`{"fontSize":48,"underline":true,"strikethrough":{"color":"red"}}`), &tf))
	require.False(t, tf.Underline.IsObject())
	require.True(t, tf.Strikethrough.IsObject())

	f := ResolveFormat(&tf, nil)
	require.Equal(t, ResolvedDecoration{Color: "black", Thickness: 2}, f.Underline)
	require.Equal(t, ResolvedDecoration{Color: "red", Thickness: 2}, f.Strikethrough)

	for want, d := range map[string]*Decoration{
		`true`:            DecorationOn(),
		`false`:           DecorationOff(),
		`{"color":"red"}`: DecorationWith(DecorationStyle{Color: Ptr("red")}),
		`{}`:              DecorationWith(DecorationStyle{}),
	} {
		data, err := json.Marshal(d)
		require.NoError(t, err)
		require.JSONEq(t, want, string(data))
	}

	require.Error(t, json.Unmarshal([]byte(`{"underline":3}`), &tf))
}
