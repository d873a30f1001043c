package blit

// PackedRowBytes returns the number of bytes used to store a row of width
// 4-bit pixels. Rows always start on a byte boundary.
func PackedRowBytes(width int) int {
	return (width + 1) >> 1
}

func lowerNibble(b byte) byte {
	return b & 0x0f
}

func upperNibble(b byte) byte {
	return b >> 4
}

// Unpack expands width 4-bit pixels from packed into dst, low nibble first,
// and returns the number of packed bytes consumed. dst must hold at least
// width bytes.
func Unpack(dst, packed []byte, width int) int {
	n := PackedRowBytes(width)
	for i := 0; i < width; i++ {
		b := packed[i>>1]
		if i&1 == 0 {
			dst[i] = lowerNibble(b)
		} else {
			dst[i] = upperNibble(b)
		}
	}
	return n
}

// Pack is the inverse of Unpack. Only the low four bits of each pixel are
// kept.
func Pack(dst, pixels []byte) int {
	n := PackedRowBytes(len(pixels))
	for i := 0; i < n; i++ {
		dst[i] = 0
	}
	for i, p := range pixels {
		if i&1 == 0 {
			dst[i>>1] |= lowerNibble(p)
		} else {
			dst[i>>1] |= lowerNibble(p) << 4
		}
	}
	return n
}

// Translate maps each pixel in row through the 16 entry table xlat in
// place.
func Translate(row []byte, xlat *[16]uint8) {
	for i, p := range row {
		row[i] = xlat[p&0x0f]
	}
}
