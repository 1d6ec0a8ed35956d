// Package matrix maps a two dimensional LED panel onto a neopixel strip.
package matrix

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/BeatGlow/neopixel"
)

// Layout defines how the strip wiring runs through the panel.
type Layout uint8

// Supported layouts.
const (
	Progressive Layout = iota // All rows run in the same direction
	Serpentine                // Odd rows run in the opposite direction
)

func (l Layout) String() string {
	switch l {
	case Serpentine:
		return "serpentine"
	default:
		return "progressive"
	}
}

// Rotation defines pixel rotation.
type Rotation uint8

// Supported rotations.
const (
	NoRotation Rotation = iota
	Rotate90            // Rotate 90° clock wise
	Rotate180           // Rotate 180°
	Rotate270           // Rotate 270° clock wise
)

func (r Rotation) String() string {
	switch r % 4 {
	case Rotate90:
		return "90°"
	case Rotate180:
		return "180°"
	case Rotate270:
		return "270°"
	default:
		return "0°"
	}
}

// Config is the panel configuration.
type Config struct {
	// Width of the panel in pixels.
	Width int

	// Height of the panel in pixels.
	Height int

	// Layout of the strip wiring.
	Layout Layout

	// Order of the color channels on the wire.
	Order neopixel.Order

	// Rotation of the panel.
	Rotation Rotation
}

// DefaultConfig matches the common 8x8 GRB panel.
var DefaultConfig = Config{
	Width:  8,
	Height: 8,
	Order:  neopixel.GRB,
}

func checkConfig(config *Config) (*Config, error) {
	if config == nil {
		config = &DefaultConfig
	}
	c := *config
	if c.Width == 0 {
		c.Width = DefaultConfig.Width
	}
	if c.Height == 0 {
		c.Height = DefaultConfig.Height
	}
	if c.Width < 0 || c.Height < 0 {
		return nil, fmt.Errorf("matrix: invalid panel size %dx%d", c.Width, c.Height)
	}
	return &c, nil
}

// Grid addresses the pixels of a panel by coordinate. It implements
// draw.Image, so the draw package primitives can render onto it directly.
type Grid struct {
	strip    *neopixel.Strip
	width    int
	height   int
	layout   Layout
	order    neopixel.Order
	rotation Rotation
}

// New wraps a strip in a panel coordinate mapping.
func New(strip *neopixel.Strip, config *Config) (*Grid, error) {
	if strip == nil {
		return nil, fmt.Errorf("matrix: no strip")
	}

	config, err := checkConfig(config)
	if err != nil {
		return nil, err
	}

	if size := config.Width * config.Height; size > strip.Len() {
		return nil, fmt.Errorf("matrix: %dx%d panel needs %d pixels, strip has %d",
			config.Width, config.Height, size, strip.Len())
	}

	return &Grid{
		strip:    strip,
		width:    config.Width,
		height:   config.Height,
		layout:   config.Layout,
		order:    config.Order,
		rotation: config.Rotation,
	}, nil
}

func (g *Grid) String() string {
	return fmt.Sprintf("%dx%d %s matrix", g.width, g.height, g.layout)
}

// Strip returns the underlying strip.
func (g *Grid) Strip() *neopixel.Strip {
	return g.strip
}

// Bounds is the panel bounding box after rotation.
func (g *Grid) Bounds() image.Rectangle {
	switch g.rotation % 4 {
	case Rotate90, Rotate270:
		return image.Rect(0, 0, g.height, g.width)
	default:
		return image.Rect(0, 0, g.width, g.height)
	}
}

// ColorModel used by the panel.
func (g *Grid) ColorModel() color.Model {
	return color.RGBAModel
}

// SetRotation adjusts the pixel rotation.
func (g *Grid) SetRotation(rotation Rotation) {
	g.rotation = rotation
}

// transform maps rotated coordinates onto the physical panel.
func (g *Grid) transform(x, y int) (int, int) {
	switch g.rotation % 4 {
	case Rotate90:
		return y, g.height - 1 - x
	case Rotate180:
		return g.width - 1 - x, g.height - 1 - y
	case Rotate270:
		return g.width - 1 - y, x
	default:
		return x, y
	}
}

// Index maps physical panel coordinates onto the strip, following the
// wiring layout. Rotation does not apply.
func (g *Grid) Index(x, y int) int {
	if g.layout == Serpentine && y%2 == 1 {
		return y*g.width + (g.width - 1 - x)
	}
	return y*g.width + x
}

// At returns the color of the pixel at (x, y).
func (g *Grid) At(x, y int) color.Color {
	if !image.Pt(x, y).In(g.Bounds()) {
		return color.Transparent
	}
	p, _ := g.strip.At(g.Index(g.transform(x, y)))
	return g.order.Color(p)
}

// Set the pixel color at (x, y).
func (g *Grid) Set(x, y int, c color.Color) {
	if !image.Pt(x, y).In(g.Bounds()) {
		return
	}
	_ = g.strip.Set(g.Index(g.transform(x, y)), g.order.Pixel(c))
}

// Fill the panel with a uniform color.
func (g *Grid) Fill(c color.Color) {
	g.strip.FillRange(0, g.width*g.height, g.order.Pixel(c))
}

// Clear the panel.
func (g *Grid) Clear() {
	g.Fill(color.Black)
}

// Write pushes the panel state out on the strip transport.
func (g *Grid) Write() error {
	return g.strip.Write()
}

// Interface checks.
var (
	_ image.Image = (*Grid)(nil)
	_ draw.Image  = (*Grid)(nil)
)
