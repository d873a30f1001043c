package tileset_test

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/bodgit/wwgfx/tileset"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func grey() color.Palette {
	p := make(color.Palette, 256)
	for i := range p {
		p[i] = color.Gray{uint8(i)}
	}
	return p
}

func icon(fill func(x, y int) uint8) *image.Paletted {
	m := image.NewPaletted(image.Rect(0, 0, tileset.IconWidth, tileset.IconHeight), grey())
	for y := 0; y < tileset.IconHeight; y++ {
		for x := 0; x < tileset.IconWidth; x++ {
			m.SetColorIndex(x, y, fill(x, y))
		}
	}
	return m
}

func solid(c uint8) *image.Paletted {
	return icon(func(int, int) uint8 { return c })
}

func encode(t *testing.T, icons []*image.Paletted, opts *tileset.Options) []byte {
	t.Helper()
	b := new(bytes.Buffer)
	require.NoError(t, tileset.Encode(b, icons, opts))
	return b.Bytes()
}

func TestParseLegacy(t *testing.T) {
	buf := encode(t, []*image.Paletted{solid(1), solid(0), solid(3)}, &tileset.Options{Map: []byte{2, 1, 0, 0xff}})

	ts, err := tileset.Parse(buf)
	require.NoError(t, err)

	want := tileset.Tileset{
		Variant:   tileset.Legacy,
		Width:     24,
		Height:    24,
		Count:     3,
		Size:      len(buf),
		Icons:     0x20,
		TransFlag: 0x20 + 3*576,
		Map:       0x20 + 3*576 + 3,
	}
	if diff := cmp.Diff(want, *ts, cmpopts.IgnoreUnexported(tileset.Tileset{})); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, "legacy", ts.Variant.String())
	assert.True(t, ts.HasMap())
	assert.False(t, ts.Transparent(0))
	assert.True(t, ts.Transparent(1))
	assert.Equal(t, bytes.Repeat([]byte{3}, 576), ts.Icon(2))
	assert.Nil(t, ts.Icon(3))

	for cell, want := range []struct {
		icon int
		ok   bool
	}{{2, true}, {1, true}, {0, true}, {0, false}, {0, false}} {
		icon, ok := ts.IconIndex(cell)
		assert.Equal(t, want.ok, ok, "cell %d", cell)
		if ok {
			assert.Equal(t, want.icon, icon, "cell %d", cell)
		}
	}
}

func TestParseExtended(t *testing.T) {
	buf := encode(t, []*image.Paletted{solid(5), solid(6)}, &tileset.Options{
		Variant:   tileset.Extended,
		Map:       []byte{1, 0},
		MapWidth:  2,
		MapHeight: 1,
		ColorMap:  []byte{7, 8},
	})

	ts, err := tileset.Parse(buf)
	require.NoError(t, err)

	assert.Equal(t, tileset.Extended, ts.Variant)
	assert.Equal(t, 0x28, ts.Icons)
	assert.Equal(t, 2, ts.MapWidth)
	assert.Equal(t, 1, ts.MapHeight)
	assert.Equal(t, byte(7), buf[ts.ColorMap])
	assert.Equal(t, byte(8), buf[ts.ColorMap+1])

	icon, ok := ts.IconIndex(0)
	require.True(t, ok)
	assert.Equal(t, 1, icon)
	assert.Equal(t, byte(6), ts.Icon(icon)[0])

	// Map dimensions bound the map, not the count
	_, ok = ts.IconIndex(2)
	assert.False(t, ok)
}

func TestParseNoMap(t *testing.T) {
	ts, err := tileset.Parse(encode(t, []*image.Paletted{solid(9), solid(10)}, nil))
	require.NoError(t, err)
	assert.False(t, ts.HasMap())

	icon, ok := ts.IconIndex(1)
	require.True(t, ok)
	assert.Equal(t, 1, icon)

	_, ok = ts.IconIndex(2)
	assert.False(t, ok)
	_, ok = ts.IconIndex(-1)
	assert.False(t, ok)
}

func TestDiscriminator(t *testing.T) {
	base := encode(t, []*image.Paletted{solid(1)}, nil)

	// Only the legacy icons field decides the layout
	for _, v := range []int32{0, 1, 0x28, -1, 0x7fffffff} {
		buf := append([]byte(nil), base...)
		binary.LittleEndian.PutUint32(buf[16:], uint32(v)) // palettes
		binary.LittleEndian.PutUint32(buf[20:], uint32(v)) // remaps
		binary.LittleEndian.PutUint16(buf[6:], uint16(v))  // allocated

		ts, err := tileset.Parse(buf)
		require.NoError(t, err)
		assert.Equal(t, tileset.Legacy, ts.Variant, "value %#x", v)
	}

	for _, v := range []int32{0x1f, 0x21, 0x28, 0} {
		buf := append([]byte(nil), base...)
		binary.LittleEndian.PutUint32(buf[12:], uint32(v))

		ts, err := tileset.Parse(buf)
		if err != nil {
			assert.True(t, errors.Is(err, tileset.ErrMalformed))
			continue
		}
		assert.Equal(t, tileset.Extended, ts.Variant, "value %#x", v)
	}
}

func TestParseErrors(t *testing.T) {
	valid := encode(t, []*image.Paletted{solid(1)}, &tileset.Options{Map: []byte{0, 0, 0}, Count: 3})

	tests := map[string]func([]byte) []byte{
		"short header": func(b []byte) []byte {
			return b[:0x1f]
		},
		"zero width": func(b []byte) []byte {
			binary.LittleEndian.PutUint16(b[0:], 0)
			return b
		},
		"negative count": func(b []byte) []byte {
			binary.LittleEndian.PutUint16(b[4:], 0xffff)
			return b
		},
		"trans flag beyond buffer": func(b []byte) []byte {
			binary.LittleEndian.PutUint32(b[24:], uint32(len(b)+1))
			return b
		},
		"negative trans flag": func(b []byte) []byte {
			binary.LittleEndian.PutUint32(b[24:], 0xfffffff0)
			return b
		},
		"map beyond buffer": func(b []byte) []byte {
			binary.LittleEndian.PutUint32(b[28:], uint32(len(b)-1))
			return b
		},
		"short extended header": func(b []byte) []byte {
			binary.LittleEndian.PutUint32(b[12:], 0x28)
			return b[:0x24]
		},
	}

	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := tileset.Parse(mutate(append([]byte(nil), valid...)))
			require.Error(t, err)
			assert.Truef(t, errors.Is(err, tileset.ErrMalformed), "%v", err)
		})
	}
}

func TestIconBeyondBuffer(t *testing.T) {
	// Count claims more icons than are stored
	buf := encode(t, []*image.Paletted{solid(1)}, &tileset.Options{Count: 4})

	ts, err := tileset.Parse(buf)
	require.NoError(t, err)
	assert.NotNil(t, ts.Icon(0))
	assert.Nil(t, ts.Icon(1))
	assert.Nil(t, ts.Icon(3))
	assert.False(t, ts.Transparent(100))
}

func TestEncodeImage(t *testing.T) {
	m := image.NewRGBA(image.Rect(0, 0, 48, 24))
	for y := 0; y < 24; y++ {
		for x := 0; x < 48; x++ {
			if x < 24 {
				m.Set(x, y, color.RGBA{0xff, 0, 0, 0xff})
			} else {
				m.Set(x, y, color.RGBA{0, 0xff, 0, 0xff})
			}
		}
	}

	p := color.Palette{color.RGBA{0, 0, 0, 0xff}, color.RGBA{0xff, 0, 0, 0xff}, color.RGBA{0, 0xff, 0, 0xff}}

	b := new(bytes.Buffer)
	require.NoError(t, tileset.EncodeImage(b, m, p, nil))

	ts, err := tileset.Parse(b.Bytes())
	require.NoError(t, err)
	require.Equal(t, 2, ts.Count)
	assert.Equal(t, bytes.Repeat([]byte{1}, 576), ts.Icon(0))
	assert.Equal(t, bytes.Repeat([]byte{2}, 576), ts.Icon(1))

	assert.Error(t, tileset.EncodeImage(new(bytes.Buffer), image.NewRGBA(image.Rect(0, 0, 25, 24)), p, nil))
}
