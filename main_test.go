package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	textrenderer "github.com/ByLCY/canvastxt/renderer/text"
)

func TestRunTextPreview(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.textbox")
	require.NoError(t, os.WriteFile(in, []byte(`textbox v1 {
  box 0 0 11 5 align left valign top { "Hello ${name} and more" }
}`), 0o644))

	out := filepath.Join(dir, "out", "preview.txt")
	debug := filepath.Join(dir, "debug", "layout.json")
	r := textrenderer.New(20)
	require.NoError(t, run(in, out, debug, []byte(`{"name":"Ada"}`), r, r))

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Equal(t, "Hello Ada\nand more\n", string(got))

	raw, err := os.ReadFile(debug)
	require.NoError(t, err)
	require.True(t, strings.Contains(string(raw), `"textBaseline": "top"`))
}

func TestRunErrors(t *testing.T) {
	r := textrenderer.New(20)
	require.Error(t, run("does-not-exist.textbox", "", "", nil, r, r))
	require.Error(t, run("x", "", "", nil, nil, r))

	bad := filepath.Join(t.TempDir(), "bad.textbox")
	require.NoError(t, os.WriteFile(bad, []byte(`textbox { }`), 0o644))
	require.Error(t, run(bad, "", "", nil, r, r))
}

func TestCanvasOptions(t *testing.T) {
	bold := filepath.Join(t.TempDir(), "Inter-Bold.ttf")
	require.NoError(t, os.WriteFile(bold, []byte("ttf"), 0o644))
	opts, err := canvasOptions("210mm", "", []string{"Inter=embed:go-regular", "Inter:bold = " + bold})
	require.NoError(t, err)
	require.InDelta(t, 793.7, opts.PageWidth, 0.1)
	require.Zero(t, opts.PageHeight)
	require.Equal(t, bold, opts.Fonts["Inter:bold"].Path)
	require.Equal(t, "embed:go-regular", opts.Fonts["Inter"].Path)

	_, err = canvasOptions("", "tall", nil)
	require.Error(t, err)
	_, err = canvasOptions("", "", []string{"Inter"})
	require.Error(t, err)
}

func TestCanvasOptionsRejectsMissingFonts(t *testing.T) {
	_, err := canvasOptions("", "", []string{"Inter=embed:go-blod"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "Inter")

	_, err = canvasOptions("", "", []string{"Inter=" + filepath.Join(t.TempDir(), "missing.ttf")})
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadData(t *testing.T) {
	data, err := loadData(`{"a":1}`, "")
	require.NoError(t, err)
	require.JSONEq(t, `{"a":1}`, string(data))

	data, err = loadData("", "")
	require.NoError(t, err)
	require.Nil(t, data)

	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"b":2}`), 0o644))
	data, err = loadData(`{"a":1}`, path)
	require.NoError(t, err)
	require.JSONEq(t, `{"b":2}`, string(data))
}
