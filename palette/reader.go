package palette

import (
	"errors"
	"image/color"
	"io"
)

var (
	errNotEnough = errors.New("palette: not enough palette data")
	errTooMuch   = errors.New("palette: too much palette data")
)

func readFull(r io.Reader, b []byte) error {
	_, err := io.ReadFull(r, b)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}

// Expand a 6-bit VGA intensity to the full 8-bit range
func expand(b byte) byte {
	b &= 0x3f
	return b<<2 | b>>4
}

// Decode reads a 768 byte VGA palette from r.
func Decode(r io.Reader) (color.Palette, error) {
	var tmp [paletteBytes]byte
	if err := readFull(r, tmp[:]); err != nil {
		if err != io.ErrUnexpectedEOF {
			return nil, err
		}
		return nil, errNotEnough
	}

	if n, err := r.Read(make([]byte, 1)); n != 0 || (err != io.EOF && err != io.ErrUnexpectedEOF) {
		if err != nil {
			return nil, err
		}
		return nil, errTooMuch
	}

	return FromBytes(tmp[:]), nil
}

// FromBytes converts raw 6-bit RGB triplets into a palette. Any trailing
// partial triplet is ignored and missing colours are left as opaque black.
func FromBytes(b []byte) color.Palette {
	p := make(color.Palette, NumColors)
	for i := range p {
		o := i * bytesPerRGB
		if o+bytesPerRGB > len(b) {
			p[i] = color.RGBA{0, 0, 0, 0xff}
			continue
		}
		p[i] = color.RGBA{expand(b[o]), expand(b[o+1]), expand(b[o+2]), 0xff}
	}
	return p
}
