// Package neopixel drives WS2812 and compatible addressable LED strips
// ("NeoPixels") through a plain SPI bus.
//
// The strip's one-wire protocol is emulated by expanding every 8-bit channel
// value into 4 bytes of SPI data, so a pixel occupies 12 bytes on the wire.
// A [Strip] owns the expanded buffer and exposes pixel-level reads and
// writes; transmitting is a single write of the whole buffer to the
// configured transport.
package neopixel

import (
	"errors"
	"fmt"
	"io"
)

// Errors
var (
	ErrNoWriter         = errors.New("neopixel: output writer is nil")
	ErrOutOfRange       = errors.New("neopixel: index out of range")
	ErrUnsupported      = errors.New("neopixel: unsupported addressing")
	ErrShapeMismatch    = errors.New("neopixel: pixel value must have 3 channels")
	ErrTypeMismatch     = errors.New("neopixel: not an integer")
	ErrValueOutOfDomain = errors.New("neopixel: channel value out of range 0..255")
)

// Pixel holds one pixel's channel values in wire order. The strip is
// agnostic about which color each channel slot carries; see [Order] for
// mapping colors onto a known strip wiring.
type Pixel [3]uint8

// Strip is an addressable LED strip buffer. All writes mutate an internal
// buffer holding the expanded wire data; nothing reaches the hardware until
// [Strip.Write] is called. A Strip is not safe for concurrent mutation.
type Strip struct {
	w   io.Writer
	buf []byte
	n   int
}

// New returns a strip of the given pixel count that transmits to w. The
// buffer is sized at construction, never resized, and starts out black
// (every channel zero, already in expanded form).
func New(w io.Writer, pixels int) (*Strip, error) {
	if w == nil {
		return nil, ErrNoWriter
	}
	if pixels < 1 {
		return nil, fmt.Errorf("neopixel: pixel count must be positive, got %d", pixels)
	}

	s := &Strip{
		w:   w,
		buf: make([]byte, pixels*pixelStride),
		n:   pixels,
	}
	s.Fill(Pixel{})
	return s, nil
}

// Len returns the number of pixels on the strip.
func (s *Strip) Len() int {
	return s.n
}

// Bytes returns the expanded buffer. The slice is borrowed, not copied;
// callers bringing their own transport can hand it off directly.
func (s *Strip) Bytes() []byte {
	return s.buf
}

func (s *Strip) String() string {
	return fmt.Sprintf("NeoPixel strip with %d pixels", s.n)
}

// offset returns the buffer offset of a resolved pixel and channel index.
func (s *Strip) offset(i, c int) int {
	return i*pixelStride + c*groupLen
}

// At returns the pixel at index i. Negative indices count from the end of
// the strip.
func (s *Strip) At(i int) (Pixel, error) {
	i, err := resolveIndex(i, s.n)
	if err != nil {
		return Pixel{}, err
	}
	return compressPixel(s.buf[s.offset(i, 0):]), nil
}

// Set replaces the pixel at index i. Negative indices count from the end of
// the strip.
func (s *Strip) Set(i int, p Pixel) error {
	i, err := resolveIndex(i, s.n)
	if err != nil {
		return err
	}
	expandPixel(s.buf[s.offset(i, 0):], p)
	return nil
}

// ChannelAt returns channel c of the pixel at index i.
func (s *Strip) ChannelAt(i, c int) (uint8, error) {
	i, err := resolveIndex(i, s.n)
	if err != nil {
		return 0, err
	}
	if c, err = resolveChannel(c); err != nil {
		return 0, err
	}
	return compressByte(s.buf[s.offset(i, c):]), nil
}

// SetChannel sets channel c of the pixel at index i to v, which must be in
// 0..255.
func (s *Strip) SetChannel(i, c, v int) error {
	i, err := resolveIndex(i, s.n)
	if err != nil {
		return err
	}
	if c, err = resolveChannel(c); err != nil {
		return err
	}
	if v < 0 || v > 0xff {
		return ErrValueOutOfDomain
	}
	expandByte(s.buf[s.offset(i, c):], byte(v))
	return nil
}

// Pixels returns the pixels in [start, stop) in ascending order. The bounds
// follow slice conventions: negative values count from the end and
// out-of-range bounds are clamped, so a reversed or fully out-of-range span
// yields an empty result.
func (s *Strip) Pixels(start, stop int) []Pixel {
	lo, hi := resolveSpan(start, stop, s.n)
	ps := make([]Pixel, 0, hi-lo)
	for i := lo; i < hi; i++ {
		ps = append(ps, compressPixel(s.buf[s.offset(i, 0):]))
	}
	return ps
}

// FillRange sets every pixel in [start, stop) to p, with the same bounds
// conventions as [Strip.Pixels]. The triple is expanded once into the first
// slot of the span and the expanded group is then copied across the rest;
// expansion is deterministic, so tiling the bytes is equivalent to
// re-encoding per pixel.
func (s *Strip) FillRange(start, stop int, p Pixel) {
	lo, hi := resolveSpan(start, stop, s.n)
	if lo == hi {
		return
	}
	first := s.buf[s.offset(lo, 0) : s.offset(lo, 0)+pixelStride]
	expandPixel(first, p)
	for i := lo + 1; i < hi; i++ {
		copy(s.buf[s.offset(i, 0):], first)
	}
}

// Fill sets every pixel on the strip to p.
func (s *Strip) Fill(p Pixel) {
	s.FillRange(0, s.n, p)
}

// SetPixels assigns one pixel per element of ps to the span [start, stop),
// in order. The length of ps must match the resolved span exactly.
func (s *Strip) SetPixels(start, stop int, ps []Pixel) error {
	lo, hi := resolveSpan(start, stop, s.n)
	if len(ps) != hi-lo {
		return ErrShapeMismatch
	}
	for i, p := range ps {
		expandPixel(s.buf[s.offset(lo+i, 0):], p)
	}
	return nil
}

// Rotate moves every pixel count positions up the strip, wrapping around at
// the end; the pixel at index i ends up at index (i+count) mod Len. Any
// count is accepted, including negative amounts and amounts larger than the
// strip.
func (s *Strip) Rotate(count int) {
	count %= s.n
	if count < 0 {
		count += s.n
	}

	c := count * pixelStride
	if c == 0 {
		return
	}

	tail := make([]byte, c)
	copy(tail, s.buf[len(s.buf)-c:])
	copy(s.buf[c:], s.buf[:len(s.buf)-c])
	copy(s.buf, tail)
}

// Write transmits the entire expanded buffer to the strip. The buffer is
// handed to the transport in a single call and transport errors are
// returned as-is.
func (s *Strip) Write() error {
	_, err := s.w.Write(s.buf)
	return err
}

// Close closes the underlying transport if it supports closing.
func (s *Strip) Close() error {
	if c, ok := s.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
