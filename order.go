package neopixel

import (
	"fmt"
	"image/color"
	"strings"
)

// Order is the channel order a strip is wired with. The Strip itself never
// interprets channel slots; an Order converts between colors and wire-order
// triples for callers that know their hardware. WS2812 strips are commonly
// wired [GRB], WS2811 pixels [RGB].
type Order uint8

// Channel orders.
const (
	RGB Order = iota
	RBG
	GRB
	GBR
	BRG
	BGR
)

// orderSlots holds the wire slot of the red, green and blue components for
// each order.
var orderSlots = [...][3]int{
	RGB: {0, 1, 2},
	RBG: {0, 2, 1},
	GRB: {1, 0, 2},
	GBR: {2, 0, 1},
	BRG: {1, 2, 0},
	BGR: {2, 1, 0},
}

var orderNames = [...]string{
	RGB: "RGB",
	RBG: "RBG",
	GRB: "GRB",
	GBR: "GBR",
	BRG: "BRG",
	BGR: "BGR",
}

func (o Order) String() string {
	if int(o) >= len(orderNames) {
		return fmt.Sprintf("Order(%d)", uint8(o))
	}
	return orderNames[o]
}

// ParseOrder parses a channel order name such as "grb".
func ParseOrder(s string) (Order, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for o, v := range orderNames {
		if v == name {
			return Order(o), nil
		}
	}
	return 0, fmt.Errorf("neopixel: unknown channel order %q", s)
}

// Pixel converts a color to a wire-order triple.
func (o Order) Pixel(c color.Color) Pixel {
	r, g, b, _ := c.RGBA()
	slot := orderSlots[o]

	var p Pixel
	p[slot[0]] = uint8(r >> 8)
	p[slot[1]] = uint8(g >> 8)
	p[slot[2]] = uint8(b >> 8)
	return p
}

// Color converts a wire-order triple back to a color.
func (o Order) Color(p Pixel) color.Color {
	slot := orderSlots[o]
	return color.RGBA{
		R: p[slot[0]],
		G: p[slot[1]],
		B: p[slot[2]],
		A: 0xff,
	}
}
