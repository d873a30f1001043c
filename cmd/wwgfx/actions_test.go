package main

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/bodgit/wwgfx/tileset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIconSheet(t *testing.T) {
	p := color.Palette{color.Black, color.White, color.Gray{0x80}}

	var icons []*image.Paletted
	for i := 0; i < 3; i++ {
		m := image.NewPaletted(image.Rect(0, 0, tileset.IconWidth, tileset.IconHeight), p)
		for j := range m.Pix {
			m.Pix[j] = uint8(i)
		}
		icons = append(icons, m)
	}

	b := new(bytes.Buffer)
	require.NoError(t, tileset.Encode(b, icons, nil))
	ts, err := tileset.Parse(b.Bytes())
	require.NoError(t, err)

	m := iconSheet(ts, p, 2)
	assert.Equal(t, image.Rect(0, 0, 48, 48), m.Bounds())
	assert.Equal(t, uint8(0), m.ColorIndexAt(10, 10))
	assert.Equal(t, uint8(1), m.ColorIndexAt(30, 10))
	assert.Equal(t, uint8(2), m.ColorIndexAt(10, 30))

	m = iconSheet(ts, p, 8)
	assert.Equal(t, image.Rect(0, 0, 72, 24), m.Bounds())
	assert.Equal(t, uint8(2), m.ColorIndexAt(60, 10))
}
