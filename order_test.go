package neopixel

import (
	"image/color"
	"testing"
)

func TestOrderPixel(t *testing.T) {
	c := color.RGBA{R: 1, G: 2, B: 3, A: 0xff}
	testCases := []struct {
		order Order
		want  Pixel
	}{
		{RGB, Pixel{1, 2, 3}},
		{RBG, Pixel{1, 3, 2}},
		{GRB, Pixel{2, 1, 3}},
		{GBR, Pixel{2, 3, 1}},
		{BRG, Pixel{3, 1, 2}},
		{BGR, Pixel{3, 2, 1}},
	}
	for _, test := range testCases {
		t.Run(test.order.String(), func(it *testing.T) {
			if v := test.order.Pixel(c); v != test.want {
				it.Errorf("expected %v, got %v", test.want, v)
			}
		})
	}
}

func TestOrderRoundtrip(t *testing.T) {
	for _, order := range []Order{RGB, RBG, GRB, GBR, BRG, BGR} {
		t.Run(order.String(), func(it *testing.T) {
			for i := 0; i < 100; i++ {
				p := testRandomPixel()
				if v := order.Pixel(order.Color(p)); v != p {
					it.Fatalf("expected %v to roundtrip, got %v", p, v)
				}
			}
		})
	}
}

func TestParseOrder(t *testing.T) {
	testCases := []struct {
		in   string
		want Order
		ok   bool
	}{
		{"RGB", RGB, true},
		{"grb", GRB, true},
		{" bgr ", BGR, true},
		{"RBG", RBG, true},
		{"xyz", 0, false},
		{"", 0, false},
	}
	for _, test := range testCases {
		v, err := ParseOrder(test.in)
		if test.ok && err != nil {
			t.Errorf("expected %q to parse, got %v", test.in, err)
			continue
		}
		if !test.ok && err == nil {
			t.Errorf("expected an error for %q", test.in)
			continue
		}
		if test.ok && v != test.want {
			t.Errorf("expected %q to parse as %s, got %s", test.in, test.want, v)
		}
	}
}

func TestOrderString(t *testing.T) {
	if v := GRB.String(); v != "GRB" {
		t.Errorf("expected GRB, got %q", v)
	}
	if v := Order(42).String(); v != "Order(42)" {
		t.Errorf("expected Order(42), got %q", v)
	}
}
