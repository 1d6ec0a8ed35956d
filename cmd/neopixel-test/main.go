package main

import (
	"flag"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"
	"time"

	"periph.io/x/host/v3"

	"github.com/BeatGlow/neopixel"
)

func main() {
	busFlag := flag.Int("bus", 0, "SPI bus")
	deviceFlag := flag.Int("dev", 0, "SPI device")
	countFlag := flag.Int("n", 30, "Number of pixels on the strip")
	speedFlag := flag.Uint("speed", neopixel.DefaultSpeed, "SPI clock speed in Hz")
	orderFlag := flag.String("order", "GRB", "Color channel order of the strip")
	portFlag := flag.String("port", "", "Open a named SPI port instead of a numbered bus")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <command> [arguments]\n\n", os.Args[0])
		fmt.Fprintln(os.Stderr, "Commands:")
		fmt.Fprintln(os.Stderr, "  get <address>          print pixel values")
		fmt.Fprintln(os.Stderr, "  set <address> <value>  set pixel values and refresh the strip")
		fmt.Fprintln(os.Stderr, "  fill <value>           fill the whole strip and refresh")
		fmt.Fprintln(os.Stderr, "  rotate <count>         rotate the strip contents and refresh")
		fmt.Fprintln(os.Stderr, "  demo <name>            run one of the animations: wheel, chase, fade")
		fmt.Fprintln(os.Stderr, "  off                    clear the strip")
		os.Exit(1)
	}

	order, err := neopixel.ParseOrder(*orderFlag)
	if err != nil {
		fatal(err)
	}

	config := &neopixel.SPIConfig{
		Bus:     *busFlag,
		Device:  *deviceFlag,
		SpeedHz: uint32(*speedFlag),
	}

	var conn neopixel.Conn
	if *portFlag != "" {
		if _, err = host.Init(); err != nil {
			fatal(err)
		}
		conn, err = neopixel.OpenPort(*portFlag, config)
	} else {
		conn, err = neopixel.OpenSPI(config)
	}
	if err != nil {
		fatal(err)
	}
	defer conn.Close()
	fmt.Printf("using connection: %s\n", conn)

	strip, err := neopixel.New(conn, *countFlag)
	if err != nil {
		fatal(err)
	}
	fmt.Printf("using strip: %s\n", strip)

	switch command := flag.Arg(0); command {
	case "get":
		err = get(strip, flag.Arg(1))
	case "set":
		err = set(strip, flag.Arg(1), flag.Arg(2))
	case "fill":
		err = fill(strip, flag.Arg(1))
	case "rotate":
		err = rotate(strip, flag.Arg(1))
	case "demo":
		err = demo(strip, order, flag.Arg(1))
	case "off":
		// New strips come up black, pushing that out clears the LEDs.
		err = strip.Write()
	default:
		err = fmt.Errorf("unsupported command %q", command)
	}
	if err != nil {
		fatal(err)
	}
}

func get(strip *neopixel.Strip, arg string) error {
	addr, err := neopixel.ParseAddress(arg)
	if err != nil {
		return err
	}

	switch addr.Kind() {
	case neopixel.KindSingle:
		p, err := strip.At(addr.Pixel())
		if err != nil {
			return err
		}
		fmt.Printf("%s: %d,%d,%d\n", addr, p[0], p[1], p[2])

	case neopixel.KindPaired:
		v, err := strip.ChannelAt(addr.Pixel(), addr.Channel())
		if err != nil {
			return err
		}
		fmt.Printf("%s: %d\n", addr, v)

	case neopixel.KindRange:
		start, stop := addr.Bounds()
		fmt.Printf("%s:", addr)
		for _, p := range strip.Pixels(start, stop) {
			fmt.Printf(" %d,%d,%d", p[0], p[1], p[2])
		}
		fmt.Println()
	}

	return nil
}

func set(strip *neopixel.Strip, addrArg, valueArg string) error {
	addr, err := neopixel.ParseAddress(addrArg)
	if err != nil {
		return err
	}

	switch addr.Kind() {
	case neopixel.KindSingle:
		p, err := neopixel.ParsePixel(valueArg)
		if err != nil {
			return err
		}
		if err = strip.Set(addr.Pixel(), p); err != nil {
			return err
		}

	case neopixel.KindPaired:
		v, err := strconv.Atoi(strings.TrimSpace(valueArg))
		if err != nil {
			return fmt.Errorf("%q: %w", valueArg, neopixel.ErrTypeMismatch)
		}
		if err = strip.SetChannel(addr.Pixel(), addr.Channel(), v); err != nil {
			return err
		}

	case neopixel.KindRange:
		start, stop := addr.Bounds()
		if strings.Contains(valueArg, ";") {
			var pixels []neopixel.Pixel
			for _, part := range strings.Split(valueArg, ";") {
				p, err := neopixel.ParsePixel(part)
				if err != nil {
					return err
				}
				pixels = append(pixels, p)
			}
			if err = strip.SetPixels(start, stop, pixels); err != nil {
				return err
			}
		} else {
			p, err := neopixel.ParsePixel(valueArg)
			if err != nil {
				return err
			}
			strip.FillRange(start, stop, p)
		}
	}

	return strip.Write()
}

func fill(strip *neopixel.Strip, arg string) error {
	p, err := neopixel.ParsePixel(arg)
	if err != nil {
		return err
	}

	strip.Fill(p)
	return strip.Write()
}

func rotate(strip *neopixel.Strip, arg string) error {
	count, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		return fmt.Errorf("%q: %w", arg, neopixel.ErrTypeMismatch)
	}

	strip.Rotate(count)
	return strip.Write()
}

func demo(strip *neopixel.Strip, order neopixel.Order, name string) error {
	var frame func(i int) error

	switch name {
	case "wheel":
		frame = func(i int) error {
			n := strip.Len()
			for j := 0; j < n; j++ {
				if err := strip.Set(j, order.Pixel(wheel(byte(j*256/n+i)))); err != nil {
					return err
				}
			}
			return strip.Write()
		}

	case "chase":
		if err := strip.Set(0, order.Pixel(color.RGBA{R: 0xff, A: 0xff})); err != nil {
			return err
		}
		frame = func(int) error {
			strip.Rotate(1)
			return strip.Write()
		}

	case "fade":
		frame = func(i int) error {
			v := uint8(i)
			if i&0x100 != 0 { // triangle wave
				v = ^v
			}
			strip.Fill(order.Pixel(color.RGBA{R: v, G: v, B: v, A: 0xff}))
			return strip.Write()
		}

	default:
		return fmt.Errorf("unsupported demo %q", name)
	}

	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	fmt.Println("hit control-c to stop...")
	for i := 0; ; i++ {
		if err := frame(i); err != nil {
			return err
		}
		<-ticker.C
	}
}

// wheel maps 0..255 onto a color wheel that runs from red over green to
// blue and back to red.
func wheel(pos byte) color.RGBA {
	switch {
	case pos < 85:
		return color.RGBA{R: 255 - pos*3, G: pos * 3, A: 0xff}
	case pos < 170:
		pos -= 85
		return color.RGBA{G: 255 - pos*3, B: pos * 3, A: 0xff}
	default:
		pos -= 170
		return color.RGBA{B: 255 - pos*3, R: pos * 3, A: 0xff}
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "fatal: "+err.Error())
	os.Exit(1)
}
