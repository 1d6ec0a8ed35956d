package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"os"
	"time"

	"periph.io/x/host/v3"

	"github.com/BeatGlow/neopixel"
	"github.com/BeatGlow/neopixel/draw"
	"github.com/BeatGlow/neopixel/matrix"
)

func main() {
	widthFlag := flag.Int("width", 8, "Panel width")
	heightFlag := flag.Int("height", 8, "Panel height")
	busFlag := flag.Int("bus", 0, "SPI bus")
	deviceFlag := flag.Int("dev", 0, "SPI device")
	portFlag := flag.String("port", "", "Open a named SPI port instead of a numbered bus")
	orderFlag := flag.String("order", "GRB", "Color channel order of the strip")
	serpentineFlag := flag.Bool("serpentine", true, "Odd panel rows run in the opposite direction")
	rotateFlag := flag.String("rotate", "", "Panel rotation")
	fontFlag := flag.String("font", "", "TrueType font file, uses the builtin face if empty")
	sizeFlag := flag.Float64("size", 8, "Font size in points")
	textFlag := flag.String("text", "BeatGlow", "Text to scroll")
	flag.Parse()

	var rotation matrix.Rotation
	switch *rotateFlag {
	case "", "no", "0":
		rotation = matrix.NoRotation
	case "90", "right", "cw":
		rotation = matrix.Rotate90
	case "180", "flip":
		rotation = matrix.Rotate180
	case "270", "left", "ccw":
		rotation = matrix.Rotate270
	default:
		fatal(fmt.Errorf("invalid rotation %q specified", *rotateFlag))
	}

	order, err := neopixel.ParseOrder(*orderFlag)
	if err != nil {
		fatal(err)
	}

	layout := matrix.Progressive
	if *serpentineFlag {
		layout = matrix.Serpentine
	}

	config := &neopixel.SPIConfig{
		Bus:    *busFlag,
		Device: *deviceFlag,
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

	strip, err := neopixel.New(conn, *widthFlag * *heightFlag)
	if err != nil {
		fatal(err)
	}

	grid, err := matrix.New(strip, &matrix.Config{
		Width:    *widthFlag,
		Height:   *heightFlag,
		Layout:   layout,
		Order:    order,
		Rotation: rotation,
	})
	if err != nil {
		fatal(err)
	}
	fmt.Printf("using panel: %s, rotation %s\n", grid, rotation)

	face := draw.Face7x13
	if *fontFlag != "" {
		if face, err = draw.LoadFont(*fontFlag, *sizeFlag); err != nil {
			fatal(err)
		}
	}

	bounds := grid.Bounds()

	// Border and circle test pattern before the text starts scrolling.
	draw.Rectangle(grid, bounds, color.RGBA{R: 0x20, A: 0xff})
	draw.Circle(grid, image.Pt(bounds.Dx()/2, bounds.Dy()/2), bounds.Dy()/3, color.RGBA{B: 0x20, A: 0xff})
	if err = grid.Write(); err != nil {
		fatal(err)
	}
	time.Sleep(2 * time.Second)

	var (
		width  = draw.TextWidth(face, *textFlag)
		ascent = face.Metrics().Ascent.Ceil()
		base   = (bounds.Dy() + ascent) / 2
		ticker = time.NewTicker(80 * time.Millisecond)
	)
	defer ticker.Stop()

	fmt.Println("hit control-c to stop...")
	for x := bounds.Dx(); ; x-- {
		if x < -width {
			x = bounds.Dx()
		}

		grid.Clear()
		draw.Text(grid, image.Pt(x, base), face, *textFlag, color.White)
		if err = grid.Write(); err != nil {
			fatal(err)
		}
		<-ticker.C
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "fatal: "+err.Error())
	os.Exit(1)
}
