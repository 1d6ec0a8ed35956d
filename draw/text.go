package draw

import (
	"image"
	"image/color"
	"os"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Face7x13 is a fixed width bitmap face usable without loading any font
// files. At 7x13 pixels per glyph it only fits the larger panels.
var Face7x13 font.Face = basicfont.Face7x13

// LoadFont loads a TrueType font from disk and returns a face scaled to the
// requested point size.
func LoadFont(name string, points float64) (font.Face, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}

	f, err := truetype.Parse(data)
	if err != nil {
		return nil, err
	}

	return truetype.NewFace(f, &truetype.Options{Size: points}), nil
}

// Text draws s onto dst with the text baseline starting at p.
func Text(dst Image, p image.Point, face font.Face, s string, c color.Color) {
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(p.X, p.Y),
	}
	d.DrawString(s)
}

// TextWidth returns the advance width of s in pixels.
func TextWidth(face font.Face, s string) int {
	return font.MeasureString(face, s).Ceil()
}
