package draw

import (
	"image"
	"image/color"
)

// Line draws a line between two points.
func Line(dst Image, a, b image.Point, c color.Color) {
	var (
		dx = abs(b.X - a.X)
		dy = -abs(b.Y - a.Y)
		sx = 1
		sy = 1
	)
	if a.X > b.X {
		sx = -1
	}
	if a.Y > b.Y {
		sy = -1
	}

	for err := dx + dy; ; {
		dst.Set(a.X, a.Y, c)
		if a == b {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			a.X += sx
		}
		if e2 <= dx {
			err += dx
			a.Y += sy
		}
	}
}

// HorizontalLine draws a w pixels wide line starting at (x, y).
func HorizontalLine(dst Image, x, y, w int, c color.Color) {
	for i := 0; i < w; i++ {
		dst.Set(x+i, y, c)
	}
}

// VerticalLine draws a h pixels high line starting at (x, y).
func VerticalLine(dst Image, x, y, h int, c color.Color) {
	for i := 0; i < h; i++ {
		dst.Set(x, y+i, c)
	}
}

// Rectangle draws the outline of a rectangle.
func Rectangle(dst Image, rect image.Rectangle, c color.Color) {
	var (
		w = rect.Dx()
		h = rect.Dy()
	)
	if w <= 0 || h <= 0 {
		return
	}
	HorizontalLine(dst, rect.Min.X, rect.Min.Y, w, c)
	HorizontalLine(dst, rect.Min.X, rect.Max.Y-1, w, c)
	VerticalLine(dst, rect.Min.X, rect.Min.Y, h, c)
	VerticalLine(dst, rect.Max.X-1, rect.Min.Y, h, c)
}

// Box draws a filled rectangle.
func Box(dst Image, rect image.Rectangle, c color.Color) {
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		HorizontalLine(dst, rect.Min.X, y, rect.Dx(), c)
	}
}

// Circle draws a circle around a center point.
func Circle(dst Image, center image.Point, radius int, c color.Color) {
	var (
		f    = 1 - radius
		ddFx = 1
		ddFy = -2 * radius
		x    = 0
		y    = radius
	)
	dst.Set(center.X, center.Y+radius, c)
	dst.Set(center.X, center.Y-radius, c)
	dst.Set(center.X+radius, center.Y, c)
	dst.Set(center.X-radius, center.Y, c)

	for x < y {
		if f >= 0 {
			y--
			ddFy += 2
			f += ddFy
		}
		x++
		ddFx += 2
		f += ddFx

		dst.Set(center.X+x, center.Y+y, c)
		dst.Set(center.X-x, center.Y+y, c)
		dst.Set(center.X+x, center.Y-y, c)
		dst.Set(center.X-x, center.Y-y, c)
		dst.Set(center.X+y, center.Y+x, c)
		dst.Set(center.X-y, center.Y+x, c)
		dst.Set(center.X+y, center.Y-x, c)
		dst.Set(center.X-y, center.Y-x, c)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
