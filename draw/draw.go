// Package draw renders primitives onto LED panels or any other mutable
// image.
package draw

import (
	"image"
	"image/draw"
)

// Image is an alias for [image/draw.Image].
type Image = draw.Image

// Op is an alias for [image/draw.Op].
type Op = draw.Op

// Porter-Duff compositing operators.
const (
	Over Op = iota // (src in mask) over dst
	Src            // src in mask
)

// Draw aligns r.Min in dst with sp in src and then replaces the rectangle r
// in dst with the result of the op composition.
func Draw(dst Image, r image.Rectangle, src image.Image, sp image.Point, op Op) {
	draw.Draw(dst, r, src, sp, op)
}
