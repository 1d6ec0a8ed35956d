package neopixel

import (
	"bytes"
	"errors"
	"testing"
)

func testStrip(t *testing.T, pixels int) (*Strip, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	s, err := New(&buf, pixels)
	if err != nil {
		t.Fatalf("expected a strip with %d pixels, got error %v", pixels, err)
	}
	return s, &buf
}

func TestNew(t *testing.T) {
	t.Run("no-writer", func(it *testing.T) {
		if _, err := New(nil, 8); !errors.Is(err, ErrNoWriter) {
			it.Errorf("expected %v, got %v", ErrNoWriter, err)
		}
	})

	t.Run("no-pixels", func(it *testing.T) {
		for _, pixels := range []int{0, -1, -30} {
			if _, err := New(&bytes.Buffer{}, pixels); err == nil {
				it.Errorf("expected an error for %d pixels", pixels)
			}
		}
	})

	t.Run("black", func(it *testing.T) {
		s, _ := testStrip(it, 8)
		if v := s.Len(); v != 8 {
			it.Errorf("expected 8 pixels, got %d", v)
		}
		wire := s.Bytes()
		if len(wire) != 8*pixelStride {
			it.Errorf("expected %d wire bytes, got %d", 8*pixelStride, len(wire))
		}
		for i, v := range wire {
			if v != 0x88 {
				it.Fatalf("expected wire byte %d to be 0x88, got %#02x", i, v)
			}
		}
	})
}

func TestStripString(t *testing.T) {
	s, _ := testStrip(t, 30)
	if v, want := s.String(), "NeoPixel strip with 30 pixels"; v != want {
		t.Errorf("expected %q, got %q", want, v)
	}
}

func TestSetAt(t *testing.T) {
	t.Run("wire", func(it *testing.T) {
		s, _ := testStrip(it, 4)
		if err := s.Set(0, Pixel{255, 0, 0}); err != nil {
			it.Fatal(err)
		}
		want := []byte{
			0xcc, 0xcc, 0xcc, 0xcc,
			0x88, 0x88, 0x88, 0x88,
			0x88, 0x88, 0x88, 0x88,
		}
		if wire := s.Bytes()[:pixelStride]; !bytes.Equal(wire, want) {
			it.Errorf("expected wire bytes % #x, got % #x", want, wire)
		}
		for i, v := range s.Bytes()[pixelStride:] {
			if v != 0x88 {
				it.Fatalf("expected pixel %d to stay black, got %#02x", 1+i/pixelStride, v)
			}
		}
	})

	t.Run("roundtrip", func(it *testing.T) {
		s, _ := testStrip(it, 30)
		want := make([]Pixel, s.Len())
		for i := range want {
			want[i] = testRandomPixel()
			if err := s.Set(i, want[i]); err != nil {
				it.Fatal(err)
			}
		}
		for i, p := range want {
			v, err := s.At(i)
			if err != nil {
				it.Fatal(err)
			}
			if v != p {
				it.Errorf("expected pixel %d to be %v, got %v", i, p, v)
			}
		}
	})

	t.Run("negative-index", func(it *testing.T) {
		s, _ := testStrip(it, 8)
		p := Pixel{1, 2, 3}
		if err := s.Set(-2, p); err != nil {
			it.Fatal(err)
		}
		if v, _ := s.At(6); v != p {
			it.Errorf("expected pixel 6 to be %v, got %v", p, v)
		}
		if v, _ := s.At(-1); v != (Pixel{}) {
			it.Errorf("expected pixel -1 to be black, got %v", v)
		}
	})

	t.Run("out-of-range", func(it *testing.T) {
		s, _ := testStrip(it, 4)
		if _, err := s.At(10); !errors.Is(err, ErrOutOfRange) {
			it.Errorf("expected %v, got %v", ErrOutOfRange, err)
		}
		if _, err := s.At(-5); !errors.Is(err, ErrOutOfRange) {
			it.Errorf("expected %v, got %v", ErrOutOfRange, err)
		}
		if err := s.Set(4, Pixel{}); !errors.Is(err, ErrOutOfRange) {
			it.Errorf("expected %v, got %v", ErrOutOfRange, err)
		}
	})
}

func TestChannels(t *testing.T) {
	t.Run("roundtrip", func(it *testing.T) {
		s, _ := testStrip(it, 8)
		if err := s.Set(3, Pixel{10, 20, 30}); err != nil {
			it.Fatal(err)
		}
		for c, want := range []uint8{10, 20, 30} {
			v, err := s.ChannelAt(3, c)
			if err != nil {
				it.Fatal(err)
			}
			if v != want {
				it.Errorf("expected channel %d to be %d, got %d", c, want, v)
			}
		}
	})

	t.Run("isolation", func(it *testing.T) {
		s, _ := testStrip(it, 8)
		if err := s.Set(3, Pixel{10, 20, 30}); err != nil {
			it.Fatal(err)
		}
		if err := s.SetChannel(3, 1, 200); err != nil {
			it.Fatal(err)
		}
		if v, _ := s.At(3); v != (Pixel{10, 200, 30}) {
			it.Errorf("expected pixel 3 to be {10 200 30}, got %v", v)
		}
		if v, _ := s.At(2); v != (Pixel{}) {
			it.Errorf("expected pixel 2 to stay black, got %v", v)
		}
	})

	t.Run("negative-index", func(it *testing.T) {
		s, _ := testStrip(it, 8)
		if err := s.SetChannel(-1, 2, 99); err != nil {
			it.Fatal(err)
		}
		if v, _ := s.ChannelAt(7, 2); v != 99 {
			it.Errorf("expected channel 2 of pixel 7 to be 99, got %d", v)
		}
	})

	t.Run("bad-channel", func(it *testing.T) {
		s, _ := testStrip(it, 8)
		for _, c := range []int{-1, 3, 12} {
			if _, err := s.ChannelAt(0, c); !errors.Is(err, ErrOutOfRange) {
				it.Errorf("expected %v for channel %d, got %v", ErrOutOfRange, c, err)
			}
			if err := s.SetChannel(0, c, 1); !errors.Is(err, ErrOutOfRange) {
				it.Errorf("expected %v for channel %d, got %v", ErrOutOfRange, c, err)
			}
		}
	})

	t.Run("bad-value", func(it *testing.T) {
		s, _ := testStrip(it, 8)
		for _, v := range []int{-1, 256, 1000} {
			if err := s.SetChannel(0, 0, v); !errors.Is(err, ErrValueOutOfDomain) {
				it.Errorf("expected %v for value %d, got %v", ErrValueOutOfDomain, v, err)
			}
		}
	})
}

func TestFill(t *testing.T) {
	s, _ := testStrip(t, 16)
	p := Pixel{0x12, 0x34, 0x56}
	s.Fill(p)

	var group [pixelStride]byte
	expandPixel(group[:], p)
	wire := s.Bytes()
	for i := 0; i < len(wire); i += pixelStride {
		if !bytes.Equal(wire[i:i+pixelStride], group[:]) {
			t.Fatalf("expected pixel %d wire bytes % #x, got % #x", i/pixelStride, group, wire[i:i+pixelStride])
		}
	}
}

func TestFillRange(t *testing.T) {
	t.Run("span", func(it *testing.T) {
		s, _ := testStrip(it, 8)
		p := Pixel{1, 2, 3}
		s.FillRange(2, 5, p)
		for i := 0; i < s.Len(); i++ {
			want := Pixel{}
			if i >= 2 && i < 5 {
				want = p
			}
			if v, _ := s.At(i); v != want {
				it.Errorf("expected pixel %d to be %v, got %v", i, want, v)
			}
		}
	})

	t.Run("clamped", func(it *testing.T) {
		s, _ := testStrip(it, 8)
		p := Pixel{9, 9, 9}
		s.FillRange(-3, 1000, p)
		for i := 0; i < 5; i++ {
			if v, _ := s.At(i); v != (Pixel{}) {
				it.Errorf("expected pixel %d to stay black, got %v", i, v)
			}
		}
		for i := 5; i < 8; i++ {
			if v, _ := s.At(i); v != p {
				it.Errorf("expected pixel %d to be %v, got %v", i, p, v)
			}
		}
	})

	t.Run("empty", func(it *testing.T) {
		s, _ := testStrip(it, 8)
		s.FillRange(5, 2, Pixel{7, 7, 7})
		for i := 0; i < s.Len(); i++ {
			if v, _ := s.At(i); v != (Pixel{}) {
				it.Errorf("expected pixel %d to stay black, got %v", i, v)
			}
		}
	})
}

func TestPixels(t *testing.T) {
	s, _ := testStrip(t, 8)
	want := make([]Pixel, s.Len())
	for i := range want {
		want[i] = testRandomPixel()
		if err := s.Set(i, want[i]); err != nil {
			t.Fatal(err)
		}
	}

	for _, p := range [][2]int{{0, 8}, {2, 5}, {-3, 1000}, {5, 2}} {
		lo, hi := resolveSpan(p[0], p[1], s.Len())
		pixels := s.Pixels(p[0], p[1])
		if len(pixels) != hi-lo {
			t.Fatalf("expected %d pixels for %d:%d, got %d", hi-lo, p[0], p[1], len(pixels))
		}
		for i, v := range pixels {
			if v != want[lo+i] {
				t.Errorf("expected pixel %d to be %v, got %v", lo+i, want[lo+i], v)
			}
		}
	}
}

func TestSetPixels(t *testing.T) {
	t.Run("in-order", func(it *testing.T) {
		s, _ := testStrip(it, 8)
		pixels := []Pixel{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
		if err := s.SetPixels(2, 5, pixels); err != nil {
			it.Fatal(err)
		}
		for i, p := range pixels {
			if v, _ := s.At(2 + i); v != p {
				it.Errorf("expected pixel %d to be %v, got %v", 2+i, p, v)
			}
		}
		if v, _ := s.At(5); v != (Pixel{}) {
			it.Errorf("expected pixel 5 to stay black, got %v", v)
		}
	})

	t.Run("shape-mismatch", func(it *testing.T) {
		s, _ := testStrip(it, 8)
		err := s.SetPixels(0, 2, []Pixel{{255, 255, 255}})
		if !errors.Is(err, ErrShapeMismatch) {
			it.Errorf("expected %v, got %v", ErrShapeMismatch, err)
		}
	})

	t.Run("clamped", func(it *testing.T) {
		s, _ := testStrip(it, 8)
		pixels := []Pixel{{4, 4, 4}, {5, 5, 5}}
		if err := s.SetPixels(6, 100, pixels); err != nil {
			it.Fatal(err)
		}
		for i, p := range pixels {
			if v, _ := s.At(6 + i); v != p {
				it.Errorf("expected pixel %d to be %v, got %v", 6+i, p, v)
			}
		}
	})
}

func TestRotate(t *testing.T) {
	t.Run("move", func(it *testing.T) {
		s, _ := testStrip(it, 8)
		p := Pixel{255, 128, 64}
		if err := s.Set(2, p); err != nil {
			it.Fatal(err)
		}
		s.Rotate(3)
		if v, _ := s.At(5); v != p {
			it.Errorf("expected pixel 5 to be %v, got %v", p, v)
		}
		if v, _ := s.At(2); v != (Pixel{}) {
			it.Errorf("expected pixel 2 to be black, got %v", v)
		}
	})

	t.Run("identity", func(it *testing.T) {
		s, _ := testStrip(it, 8)
		for i := 0; i < s.Len(); i++ {
			if err := s.Set(i, testRandomPixel()); err != nil {
				it.Fatal(err)
			}
		}
		want := append([]byte(nil), s.Bytes()...)
		for _, count := range []int{0, 8, -8, 16} {
			s.Rotate(count)
			if !bytes.Equal(s.Bytes(), want) {
				it.Errorf("expected rotate by %d to keep the strip unchanged", count)
			}
		}
	})

	t.Run("restore", func(it *testing.T) {
		s, _ := testStrip(it, 12)
		for i := 0; i < s.Len(); i++ {
			if err := s.Set(i, testRandomPixel()); err != nil {
				it.Fatal(err)
			}
		}
		want := append([]byte(nil), s.Bytes()...)
		for count := 0; count <= s.Len(); count++ {
			s.Rotate(count)
			s.Rotate(s.Len() - count)
			if !bytes.Equal(s.Bytes(), want) {
				it.Fatalf("expected rotate by %d and %d to restore the strip", count, s.Len()-count)
			}
		}
	})

	t.Run("negative", func(it *testing.T) {
		a, _ := testStrip(it, 8)
		b, _ := testStrip(it, 8)
		for i := 0; i < a.Len(); i++ {
			p := testRandomPixel()
			if err := a.Set(i, p); err != nil {
				it.Fatal(err)
			}
			if err := b.Set(i, p); err != nil {
				it.Fatal(err)
			}
		}
		a.Rotate(-3)
		b.Rotate(5)
		if !bytes.Equal(a.Bytes(), b.Bytes()) {
			it.Error("expected rotate by -3 to match rotate by 5")
		}
	})

	t.Run("uniform", func(it *testing.T) {
		s, _ := testStrip(it, 8)
		p := Pixel{3, 2, 1}
		s.Fill(p)
		s.Rotate(5)
		for i := 0; i < s.Len(); i++ {
			if v, _ := s.At(i); v != p {
				it.Errorf("expected pixel %d to be %v, got %v", i, p, v)
			}
		}
	})
}

func TestWrite(t *testing.T) {
	t.Run("refresh", func(it *testing.T) {
		s, buf := testStrip(it, 4)
		if err := s.Set(1, Pixel{255, 0, 255}); err != nil {
			it.Fatal(err)
		}
		if err := s.Write(); err != nil {
			it.Fatal(err)
		}
		if !bytes.Equal(buf.Bytes(), s.Bytes()) {
			it.Error("expected the transport to receive the wire bytes")
		}
		if err := s.Write(); err != nil {
			it.Fatal(err)
		}
		if v, want := buf.Len(), 2*4*pixelStride; v != want {
			it.Errorf("expected %d bytes after two refreshes, got %d", want, v)
		}
	})

	t.Run("error", func(it *testing.T) {
		s, err := New(&testFailWriter{}, 4)
		if err != nil {
			it.Fatal(err)
		}
		if err = s.Write(); err == nil {
			it.Error("expected a transport error")
		}
	})
}

func TestClose(t *testing.T) {
	t.Run("writer", func(it *testing.T) {
		s, _ := testStrip(it, 4)
		if err := s.Close(); err != nil {
			it.Errorf("expected nil, got %v", err)
		}
	})

	t.Run("closer", func(it *testing.T) {
		w := &testWriteCloser{}
		s, err := New(w, 4)
		if err != nil {
			it.Fatal(err)
		}
		if err = s.Close(); err != nil {
			it.Errorf("expected nil, got %v", err)
		}
		if !w.closed {
			it.Error("expected the transport to be closed")
		}
	})
}

type testFailWriter struct{}

func (testFailWriter) Write([]byte) (int, error) {
	return 0, errors.New("broken transport")
}

type testWriteCloser struct {
	bytes.Buffer
	closed bool
}

func (w *testWriteCloser) Close() error {
	w.closed = true
	return nil
}
