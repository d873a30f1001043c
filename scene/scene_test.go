package scene_test

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bodgit/wwgfx/font"
	"github.com/bodgit/wwgfx/scene"
	"github.com/bodgit/wwgfx/tileset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testScene = `
width: 64
height: 32
palette: test.pal
background: 9
tilesets:
  t: test.tem
fonts:
  f: test.fnt
cells:
  - {tileset: t, map: true, x: 0, y: 0}
  - {tileset: t, cell: 1, x: 40, y: 0, remap: {1: 5}}
text:
  - {font: f, x: 2, y: 26, fg: 7, string: "A"}
`

func icon(fill func(x, y int) uint8) *image.Paletted {
	m := image.NewPaletted(image.Rect(0, 0, tileset.IconWidth, tileset.IconHeight), color.Palette{color.Black})
	for y := 0; y < tileset.IconHeight; y++ {
		for x := 0; x < tileset.IconWidth; x++ {
			m.SetColorIndex(x, y, fill(x, y))
		}
	}
	return m
}

func assets(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()

	pal := make([]byte, 768)
	for i := 0; i < 64; i++ {
		pal[i*3], pal[i*3+1], pal[i*3+2] = byte(i), byte(i), byte(i)
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "test.pal"), pal, 0o644))

	solid := icon(func(int, int) uint8 { return 1 })
	checker := icon(func(x, y int) uint8 {
		if (x+y)&1 == 0 {
			return 0
		}
		return 2
	})
	b := new(bytes.Buffer)
	require.NoError(t, tileset.Encode(b, []*image.Paletted{solid, checker}, &tileset.Options{Map: []byte{1, 0}}))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "test.tem"), b.Bytes(), 0o644))

	glyphs := make([]font.Glyph, 128)
	glyphs['A'] = font.Glyph{Width: 3, Rows: [][]byte{
		{0, 0, 0},
		{1, 2, 1},
		{1, 0, 1},
		{0, 0, 0},
	}}
	b.Reset()
	require.NoError(t, font.Encode(b, glyphs, 4))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "test.fnt"), b.Bytes(), 0o644))

	return dir
}

func TestRender(t *testing.T) {
	dir := assets(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "test.yaml"), []byte(testScene), 0o644))

	s, err := scene.LoadFile(filepath.Join(dir, "test.yaml"))
	require.NoError(t, err)

	m, err := scene.Render(s)
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 64, 32), m.Bounds())

	tests := []struct {
		x, y int
		want uint8
	}{
		{0, 0, 9},   // transparent checker pixel
		{1, 0, 2},   // opaque checker pixel
		{30, 5, 1},  // solid icon from the map
		{45, 5, 5},  // remapped solid icon
		{10, 28, 9}, // background
		{2, 27, 7},  // glyph foreground
		{3, 27, 2},  // glyph colour 2
		{3, 28, 9},  // glyph hole, no text background
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, m.ColorIndexAt(tt.x, tt.y), "(%d, %d)", tt.x, tt.y)
	}
}

func TestRenderRGBA(t *testing.T) {
	dir := assets(t)

	s, err := scene.Load(strings.NewReader(testScene), dir)
	require.NoError(t, err)

	m, err := scene.RenderRGBA(s)
	require.NoError(t, err)

	p := s.ColorPalette()
	assert.Equal(t, p[1], m.RGBAAt(30, 5))
	assert.Equal(t, p[9], m.RGBAAt(10, 28))
	// Icons are opaque on this path
	assert.Equal(t, p[0], m.RGBAAt(0, 0))
}

func TestNoPalette(t *testing.T) {
	s, err := scene.Load(strings.NewReader("width: 8\nheight: 8\n"), t.TempDir())
	require.NoError(t, err)

	_, err = scene.Render(s)
	assert.Equal(t, scene.ErrNoPalette, err)

	s.SetColorPalette(color.Palette{color.Black, color.White})
	m, err := scene.Render(s)
	require.NoError(t, err)
	assert.Equal(t, uint8(0), m.ColorIndexAt(0, 0))
}

func TestLoadErrors(t *testing.T) {
	dir := assets(t)

	tests := map[string]struct {
		scene string
		is    error
	}{
		"size": {
			scene: "width: 0\nheight: 8\n",
		},
		"unknown field": {
			scene: "width: 8\nheight: 8\ncolour: 3\n",
		},
		"unknown tileset": {
			scene: "width: 8\nheight: 8\ncells:\n  - {tileset: missing}\n",
			is:    scene.ErrUnknownAsset,
		},
		"unknown font": {
			scene: "width: 8\nheight: 8\ntext:\n  - {font: missing, string: x}\n",
			is:    scene.ErrUnknownAsset,
		},
		"missing file": {
			scene: "width: 8\nheight: 8\ntilesets:\n  t: missing.tem\n",
			is:    os.ErrNotExist,
		},
		"malformed tileset": {
			scene: "width: 8\nheight: 8\ntilesets:\n  t: test.fnt\n",
			is:    tileset.ErrMalformed,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := scene.Load(strings.NewReader(tt.scene), dir)
			require.Error(t, err)
			if tt.is != nil {
				assert.True(t, errors.Is(err, tt.is), err)
			}
		})
	}
}
