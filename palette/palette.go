/*
Package palette implements the 256 colour VGA palettes used by Westwood
assets along with the 16 entry colour translation table consulted whenever a
font is drawn.

A palette file is exactly 768 bytes; three bytes per colour in red, green,
blue order where each byte holds a 6-bit intensity. There is no header and
no compression.
*/
package palette

const (
	// NumColors is the number of colours in a full palette
	NumColors    = 256
	bytesPerRGB  = 3
	paletteBytes = NumColors * bytesPerRGB

	// XlatSize is the number of entries in a colour translation table
	XlatSize = 16
	xlatMask = XlatSize - 1
)
