package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/BeatGlow/neopixel"
	"github.com/BeatGlow/neopixel/conn"
)

func main() {
	busFlag := flag.Int("bus", 0, "SPI bus")
	deviceFlag := flag.Int("device", 0, "SPI device")
	speedFlag := flag.Int("speed", neopixel.DefaultSpeed, "SPI clock (Hz)")
	flag.Parse()

	c, err := conn.OpenSPI(*busFlag, *deviceFlag)
	if err != nil {
		log.Fatalln("open failed: ", err)
	}
	fmt.Println("connected using", c)

	if err = c.SetMode(conn.SPIMode0); err != nil {
		log.Fatalln("set mode failed: ", err)
	}
	if err = c.SetBitsPerWord(8); err != nil {
		log.Fatalln("set bits per word failed: ", err)
	}
	if err = c.SetMaxSpeed(*speedFlag); err != nil {
		log.Fatalln("set speed failed: ", err)
	}
	fmt.Println("configured for strip output:", c)

	if err = c.Close(); err != nil {
		log.Fatalln("close failed: ", err)
	}
}
