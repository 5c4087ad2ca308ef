package textrenderer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ByLCY/canvastxt/layout"
)

func TestMeasureCountsCells(t *testing.T) {
	r := New(0)
	require.Equal(t, DefaultCols, r.cols)

	m, err := r.Measure("hello", "14px Arial")
	require.NoError(t, err)
	require.Equal(t, layout.Metrics{Width: 5, Ascent: 1}, m)

	m, err = r.Measure("中文", "14px Arial")
	require.NoError(t, err)
	require.Equal(t, 4.0, m.Width)

	m, err = r.Measure("\x1b[1mbold\x1b[0m", "14px Arial")
	require.NoError(t, err)
	require.Equal(t, 4.0, m.Width)
}

func TestRenderWrapsIntoRows(t *testing.T) {
	r := New(20)
	res, err := layout.SplitText("Lorem ipsum dolor sit", layout.Options{
		Measurer: r,
		Box:      layout.Box{X: 5, Width: 11, Height: 10},
		Align:    layout.AlignLeft,
		VAlign:   layout.VAlignTop,
	})
	require.NoError(t, err)

	out, err := r.Render([]*layout.Result{res})
	require.NoError(t, err)
	require.Equal(t, "Lorem ipsum\ndolor sit\n", string(out))
}

func TestRenderAlignAndJustify(t *testing.T) {
	r := New(20)
	right, err := layout.SplitText("ab cd", layout.Options{
		Measurer: r,
		Box:      layout.Box{Width: 10},
		Align:    layout.AlignRight,
	})
	require.NoError(t, err)

	justified, err := layout.SplitText("ab cd ef gh", layout.Options{
		Measurer: r,
		Box:      layout.Box{Width: 10},
		Align:    layout.AlignLeft,
		Justify:  true,
	})
	require.NoError(t, err)

	out, err := r.Render([]*layout.Result{right, justified})
	require.NoError(t, err)
	require.Equal(t, "     ab cd\n\nab  cd  ef\ngh\n", string(out))
}

func TestRenderClipsWideRunes(t *testing.T) {
	r := New(5)
	line := layout.Line{{Word: layout.Word{Text: "中文字"}, X: 0, Width: 6}}
	require.Equal(t, "中文", r.renderLine(line, 0))

	_, err := r.Render(nil)
	require.Error(t, err)
}
