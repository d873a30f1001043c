package palette

// Xlat is the colour translation table used when drawing fonts. Each 4-bit
// pixel value in a glyph is looked up here to find the palette index that is
// actually written. Entry 0 doubles as the background colour; when it is
// zero nothing is written.
type Xlat [XlatSize]uint8

// NewXlat returns an identity translation table.
func NewXlat() *Xlat {
	x := new(Xlat)
	x.Reset()
	return x
}

// Reset restores the identity mapping.
func (x *Xlat) Reset() {
	for i := range x {
		x[i] = uint8(i)
	}
}

// SetRange copies colors into the table starting at first and finishing at
// last inclusive. Both bounds wrap modulo 16. Copying stops early if colors
// runs out.
func (x *Xlat) SetRange(colors []byte, first, last int) {
	first &= xlatMask
	last &= xlatMask

	for i, j := first, 0; i <= last && j < len(colors); i, j = i+1, j+1 {
		x[i] = colors[j]
	}
}

// Lookup returns the palette index for the 4-bit value n.
func (x *Xlat) Lookup(n byte) byte {
	return x[n&xlatMask]
}
