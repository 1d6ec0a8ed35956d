package neopixel

// Strip bits are emulated on the SPI bus by clocking out 4 bits per strip
// bit: a "0" is the pattern 1000 and a "1" is 1100. At clock rates around
// 3.2MHz this reproduces the high/low pulse widths WS2812-class strips
// expect. Each byte of channel data therefore expands to 4 bytes on the
// wire, 2 channel bits per wire byte.
const (
	channels    = 3                   // channel slots per pixel
	groupLen    = 4                   // wire bytes per channel byte
	pixelStride = channels * groupLen // wire bytes per pixel
)

// expansion maps a 2-bit channel group onto its wire byte.
var expansion = [4]byte{0x88, 0x8C, 0xC8, 0xCC}

// expandByte writes the 4-byte wire pattern for v into dst[0:4], most
// significant group first.
func expandByte(dst []byte, v byte) {
	dst[0] = expansion[v>>6&3]
	dst[1] = expansion[v>>4&3]
	dst[2] = expansion[v>>2&3]
	dst[3] = expansion[v&3]
}

// compressByte recovers a channel value from the 4-byte wire pattern in
// src[0:4]. It is the exact inverse of expandByte for canonical patterns;
// other input yields a best-effort bit extraction.
func compressByte(src []byte) byte {
	const (
		hi = 0x40 // top bit of a group
		lo = 0x04 // bottom bit of a group
	)
	return (src[0]&hi)<<1 | (src[0]&lo)<<4 |
		(src[1]&hi)>>1 | (src[1]&lo)<<2 |
		(src[2]&hi)>>3 | src[2]&lo |
		(src[3]&hi)>>5 | (src[3]&lo)>>2
}

func expandPixel(dst []byte, p Pixel) {
	expandByte(dst[0:], p[0])
	expandByte(dst[groupLen:], p[1])
	expandByte(dst[2*groupLen:], p[2])
}

func compressPixel(src []byte) Pixel {
	return Pixel{
		compressByte(src[0:]),
		compressByte(src[groupLen:]),
		compressByte(src[2*groupLen:]),
	}
}
