package blit

import "image"

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// Walk calls plot for every point on the line from p0 to p1 inclusive.
func Walk(p0, p1 image.Point, plot func(image.Point)) {
	dx, dy := abs(p1.X-p0.X), -abs(p1.Y-p0.Y)
	sx, sy := 1, 1
	if p0.X > p1.X {
		sx = -1
	}
	if p0.Y > p1.Y {
		sy = -1
	}

	err := dx + dy
	for p := p0; ; {
		plot(p)
		if p == p1 {
			return
		}
		e2 := err << 1
		if e2 >= dy {
			err += dy
			p.X += sx
		}
		if e2 <= dx {
			err += dx
			p.Y += sy
		}
	}
}

// Line draws a line from p0 to p1 inclusive with c. Points that do not lie
// on dst are skipped.
func Line(dst *image.Paletted, p0, p1 image.Point, c uint8) {
	Walk(p0, p1, func(p image.Point) {
		if p.In(dst.Rect) {
			dst.Pix[dst.PixOffset(p.X, p.Y)] = c
		}
	})
}
