package main

import (
	"testing"

	"github.com/npillmayer/bitfont/bmf"
	"github.com/npillmayer/bitfont/bmflayout"
	"github.com/npillmayer/bitfont/builder"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommand(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bitfont")
	defer teardown()
	//
	op := parseCommand("render Hello  World")
	assert.Equal(t, RENDER, op.code)
	assert.Equal(t, "Hello  World", op.arg)
	op = parseCommand("QUIT")
	assert.Equal(t, QUIT, op.code)
	op = parseCommand("frobnicate 1")
	assert.Equal(t, HELP, op.code)
}

func TestRenderRows(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bitfont")
	defer teardown()
	//
	b := builder.New()
	b.SetCellSize(8, 3)
	require.NoError(t, b.SetGlyphRune('I', builder.GlyphFromRows(2, "#", "#", "#")))
	data, err := b.Bytes()
	require.NoError(t, err)
	f, err := bmf.Parse(data, bmf.WithSpaceSize(1))
	require.NoError(t, err)
	rows, err := renderRows(f, "I I")
	require.NoError(t, err)
	assert.Equal(t, []string{"#..#.", "#..#.", "#..#."}, rows)
	_, err = renderRows(f, "IJ")
	assert.Error(t, err)
}

func TestExecute(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bitfont")
	defer teardown()
	//
	b := builder.New()
	require.NoError(t, b.SetGlyphRune('I', builder.GlyphFromRows(2, "#", "#", "#")))
	data, err := b.Bytes()
	require.NoError(t, err)
	f, err := bmf.Parse(data)
	require.NoError(t, err)
	intp := &Intp{font: f, layout: bmflayout.New(f)}
	assert.False(t, intp.execute(&Op{code: GLYPH, arg: "I"}))
	assert.False(t, intp.execute(&Op{code: GLYPH, arg: "xx"}), "a failing command keeps the REPL running")
	assert.False(t, intp.execute(&Op{code: -1}))
	assert.True(t, intp.execute(&Op{code: QUIT}))
}
