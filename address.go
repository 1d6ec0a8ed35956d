package neopixel

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// openEnd marks a range without an explicit stop; clamping resolves it to
// the strip length.
const openEnd = math.MaxInt

// Kind describes the form of an Address.
type Kind uint8

// Address forms.
const (
	KindInvalid Kind = iota
	KindSingle
	KindPaired
	KindRange
)

func (k Kind) String() string {
	switch k {
	case KindSingle:
		return "single"
	case KindPaired:
		return "paired"
	case KindRange:
		return "range"
	default:
		return "invalid"
	}
}

// Address is a parsed strip location: a single pixel, a (pixel, channel)
// pair, or a contiguous pixel range. Consumers switch on [Address.Kind] and
// read the fields for that form; resolution against a concrete strip length
// happens in the Strip operations themselves.
type Address struct {
	kind    Kind
	pixel   int
	channel int
	start   int
	stop    int
}

// Single addresses one whole pixel.
func Single(i int) Address {
	return Address{kind: KindSingle, pixel: i}
}

// Paired addresses a single channel of one pixel.
func Paired(pixel, channel int) Address {
	return Address{kind: KindPaired, pixel: pixel, channel: channel}
}

// Range addresses the pixels in [start, stop).
func Range(start, stop int) Address {
	return Address{kind: KindRange, start: start, stop: stop}
}

// Kind returns the form of the address.
func (a Address) Kind() Kind {
	return a.kind
}

// Pixel returns the pixel index of a single or paired address.
func (a Address) Pixel() int {
	return a.pixel
}

// Channel returns the channel index of a paired address.
func (a Address) Channel() int {
	return a.channel
}

// Bounds returns the unresolved bounds of a range address.
func (a Address) Bounds() (start, stop int) {
	return a.start, a.stop
}

func (a Address) String() string {
	switch a.kind {
	case KindSingle:
		return fmt.Sprintf("pixel %d", a.pixel)
	case KindPaired:
		return fmt.Sprintf("pixel %d channel %d", a.pixel, a.channel)
	case KindRange:
		if a.stop == openEnd {
			return fmt.Sprintf("pixels %d:", a.start)
		}
		return fmt.Sprintf("pixels %d:%d", a.start, a.stop)
	default:
		return "invalid address"
	}
}

// ParseAddress parses a strip address:
//
//	"7", "-1"          a single pixel, negative counting from the end
//	"3.1"              channel 1 of pixel 3
//	"2:8", ":", "4:"   a pixel range with slice semantics
//
// A range step may be given ("0:8:1") but only a step of 1 is supported.
func ParseAddress(s string) (Address, error) {
	if strings.Contains(s, ":") {
		return parseRange(s)
	}

	if strings.Contains(s, ".") {
		parts := strings.Split(s, ".")
		if len(parts) != 2 {
			return Address{}, fmt.Errorf("neopixel: bad address %q: %w", s, ErrUnsupported)
		}
		pixel, err := strconv.Atoi(parts[0])
		if err != nil {
			return Address{}, fmt.Errorf("neopixel: bad pixel index %q: %w", parts[0], ErrTypeMismatch)
		}
		channel, err := strconv.Atoi(parts[1])
		if err != nil {
			return Address{}, fmt.Errorf("neopixel: bad channel index %q: %w", parts[1], ErrTypeMismatch)
		}
		return Paired(pixel, channel), nil
	}

	i, err := strconv.Atoi(s)
	if err != nil {
		return Address{}, fmt.Errorf("neopixel: bad address %q: %w", s, ErrTypeMismatch)
	}
	return Single(i), nil
}

func parseRange(s string) (Address, error) {
	parts := strings.Split(s, ":")
	if len(parts) > 3 {
		return Address{}, fmt.Errorf("neopixel: bad address %q: %w", s, ErrUnsupported)
	}
	for _, part := range parts {
		if strings.Contains(part, ".") {
			// A channel combined with a range would be a 2-D write.
			return Address{}, fmt.Errorf("neopixel: bad address %q: %w", s, ErrUnsupported)
		}
	}

	start, stop := 0, openEnd
	if parts[0] != "" {
		v, err := strconv.Atoi(parts[0])
		if err != nil {
			return Address{}, fmt.Errorf("neopixel: bad range start %q: %w", parts[0], ErrTypeMismatch)
		}
		start = v
	}
	if parts[1] != "" {
		v, err := strconv.Atoi(parts[1])
		if err != nil {
			return Address{}, fmt.Errorf("neopixel: bad range stop %q: %w", parts[1], ErrTypeMismatch)
		}
		stop = v
	}
	if len(parts) == 3 && parts[2] != "" {
		step, err := strconv.Atoi(parts[2])
		if err != nil {
			return Address{}, fmt.Errorf("neopixel: bad range step %q: %w", parts[2], ErrTypeMismatch)
		}
		if step != 1 {
			return Address{}, fmt.Errorf("neopixel: range step %d: %w", step, ErrUnsupported)
		}
	}
	return Range(start, stop), nil
}

// ParsePixel parses a comma-separated channel triple such as "255,80,0".
func ParsePixel(s string) (Pixel, error) {
	parts := strings.Split(s, ",")
	if len(parts) != channels {
		return Pixel{}, fmt.Errorf("neopixel: pixel value %q: %w", s, ErrShapeMismatch)
	}

	var p Pixel
	for i, part := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return Pixel{}, fmt.Errorf("neopixel: channel value %q: %w", part, ErrTypeMismatch)
		}
		if v < 0 || v > 0xff {
			return Pixel{}, fmt.Errorf("neopixel: channel value %d: %w", v, ErrValueOutOfDomain)
		}
		p[i] = uint8(v)
	}
	return p, nil
}

// resolveIndex normalizes a possibly negative pixel index against a strip
// of n pixels.
func resolveIndex(i, n int) (int, error) {
	if i < 0 {
		i += n
	}
	if i < 0 || i >= n {
		return 0, ErrOutOfRange
	}
	return i, nil
}

// resolveChannel checks a channel slot index. Channels do not wrap.
func resolveChannel(c int) (int, error) {
	if c < 0 || c >= channels {
		return 0, ErrOutOfRange
	}
	return c, nil
}

// resolveSpan normalizes range bounds against a strip of n pixels: negative
// bounds count from the end, anything outside the strip is clamped, and a
// reversed span collapses to empty.
func resolveSpan(start, stop, n int) (lo, hi int) {
	if start < 0 {
		start += n
	}
	if stop < 0 {
		stop += n
	}
	lo = min(max(start, 0), n)
	hi = min(max(stop, 0), n)
	if hi < lo {
		hi = lo
	}
	return lo, hi
}
