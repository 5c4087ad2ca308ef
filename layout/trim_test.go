package layout

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func words(texts ...string) []Word {
	out := make([]Word, len(texts))
	for i, t := range texts {
		out[i] = Word{Text: t}
	}
	return out
}

func TestTrimLine(t *testing.T) {
	line := words(" ", "a", " ", "b", "  ")

	got := TrimLine(line, TrimBoth)
	require.Equal(t, words(" "), got.Left)
	require.Equal(t, words("a", " ", "b"), got.Line)
	require.Equal(t, words("  "), got.Right)

	got = TrimLine(line, TrimLeft)
	require.Equal(t, words(" "), got.Left)
	require.Equal(t, words("a", " ", "b", "  "), got.Line)
	require.Empty(t, got.Right)

	got = TrimLine(line, TrimRight)
	require.Empty(t, got.Left)
	require.Equal(t, words(" ", "a", " ", "b"), got.Line)
	require.Equal(t, words("  "), got.Right)
}

func TestTrimLineAllWhitespace(t *testing.T) {
	line := words(" ", "\t")
	for _, side := range []TrimSide{TrimBoth, TrimLeft} {
		got := TrimLine(line, side)
		require.Equal(t, line, got.Left)
		require.Empty(t, got.Line)
		require.Empty(t, got.Right)
	}
	got := TrimLine(line, TrimRight)
	require.Empty(t, got.Left)
	require.Empty(t, got.Line)
	require.Equal(t, line, got.Right)
}

func TestTrimLineRoundTrip(t *testing.T) {
	lines := [][]Word{
		nil,
		words("a"),
		words(" "),
		words("a", " ", "b"),
		words(" ", " ", "a", " "),
	}
	for _, line := range lines {
		for _, side := range []TrimSide{TrimBoth, TrimLeft, TrimRight} {
			got := TrimLine(line, side)
			joined := append(append(append([]Word{}, got.Left...), got.Line...), got.Right...)
			require.Equal(t, len(line), len(joined))
			for i := range line {
				require.Equal(t, line[i], joined[i])
			}
		}
	}
}

func TestTrimLineDoesNotAlias(t *testing.T) {
	line := words("a", " ")
	got := TrimLine(line, TrimBoth)
	got.Line[0].Text = "changed"
	require.Equal(t, "a", line[0].Text)
}
