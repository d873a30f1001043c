package palette

import (
	"errors"
	"image"
	"image/color"
	"io"

	"github.com/ericpauley/go-quantize/quantize"
)

// Encode writes the palette p to w as 768 bytes of 6-bit RGB triplets. A
// shorter palette is padded with black.
func Encode(w io.Writer, p color.Palette) error {
	if len(p) > NumColors {
		return errors.New("palette: too many colors")
	}

	var tmp [paletteBytes]byte
	for i, c := range p {
		r, g, b, _ := c.RGBA()

		// Drop to 6 bits per channel
		tmp[i*bytesPerRGB+0] = byte(r >> 10)
		tmp[i*bytesPerRGB+1] = byte(g >> 10)
		tmp[i*bytesPerRGB+2] = byte(b >> 10)
	}

	_, err := w.Write(tmp[:])
	return err
}

// FromImage builds a palette of at most n colours that best represents m,
// padded with opaque black to NumColors entries. If m is already paletted
// with few enough colours its palette is reused as is.
func FromImage(m image.Image, n int) color.Palette {
	if n <= 0 || n > NumColors {
		n = NumColors
	}

	var p color.Palette
	if cp, ok := m.ColorModel().(color.Palette); ok && len(cp) <= n {
		p = append(p, cp...)
	} else {
		q := quantize.MedianCutQuantizer{}
		p = q.Quantize(make(color.Palette, 0, n), m)
	}

	return pad(p)
}

func pad(p color.Palette) color.Palette {
	for len(p) < NumColors {
		p = append(p, color.RGBA{0, 0, 0, 0xff})
	}
	return p
}
