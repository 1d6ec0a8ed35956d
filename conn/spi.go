// Package conn implements the raw Linux spidev interface used to clock
// expanded strip data onto the bus.
package conn

import (
	"fmt"
	"os"

	"github.com/BeatGlow/neopixel/internal/ioctl"
)

const spiDevPath = "/dev/spidev"

// Definitions from <spi/spidev.h>
const (
	spiCPHA = 0x01
	spiCPOL = 0x02
)

type SPIMode uint8

const (
	SPIMode0 SPIMode = (0 | 0)             //nolint:staticcheck
	SPIMode1 SPIMode = (0 | spiCPHA)       //nolint:staticcheck
	SPIMode2 SPIMode = (spiCPOL | 0)       //nolint:staticcheck
	SPIMode3 SPIMode = (spiCPOL | spiCPHA) //nolint:staticcheck
)

const (
	spiIOCMode        = 0x6b01
	spiIOCLSBFirst    = 0x6b02
	spiIOCBitsPerWord = 0x6b03
	spiIOCMaxSpeedHz  = 0x6b04
)

// SPI implements the spidev interface. Strips are write-only devices, so
// there is no read side.
type SPI struct {
	f           *os.File
	fd          uintptr
	mode        SPIMode
	bitsPerWord uint8
	maxSpeedHz  uint32
}

// OpenSPI opens the numbered spi bus with the numbered device. The device
// usually corresponds to the CS pin for that bus; strips leave CS
// unconnected but the kernel still needs a concrete node.
func OpenSPI(bus, device int) (*SPI, error) {
	spidev := fmt.Sprintf("%s%d.%d", spiDevPath, bus, device)
	f, err := os.OpenFile(spidev, os.O_RDWR, 0)
	if err != nil {
		return nil, err
	}

	c := &SPI{
		f:  f,
		fd: f.Fd(),
	}
	if err = ioctl.Get(c.fd, spiIOCMode, &c.mode); err != nil {
		_ = f.Close()
		return nil, err
	}
	if err = ioctl.Get(c.fd, spiIOCBitsPerWord, &c.bitsPerWord); err != nil {
		_ = f.Close()
		return nil, err
	}
	if err = ioctl.Get(c.fd, spiIOCMaxSpeedHz, &c.maxSpeedHz); err != nil {
		_ = f.Close()
		return nil, err
	}

	return c, nil
}

func (c *SPI) Close() error {
	return c.f.Close()
}

func (c *SPI) String() string {
	return fmt.Sprintf("SPI mode=%d bits per word=%d max speed=%dHz", c.mode, c.bitsPerWord, c.maxSpeedHz)
}

func (c *SPI) Mode() SPIMode {
	return c.mode
}

// SetMode requests an SPI mode and verifies the driver accepted it; some
// controllers silently keep their previous mode.
func (c *SPI) SetMode(mode SPIMode) error {
	mode &= 0x0f

	if err := ioctl.Set(c.fd, spiIOCMode, &mode); err != nil {
		return err
	}

	var test SPIMode
	if err := ioctl.Get(c.fd, spiIOCMode, &test); err != nil {
		return err
	}

	if test != mode {
		return fmt.Errorf("conn: SPI attempted to set mode %#02x, but mode %#02x is in use", mode, test)
	}

	c.mode = mode
	return nil
}

func (c *SPI) BitsPerWord() uint8 {
	return c.bitsPerWord
}

func (c *SPI) SetBitsPerWord(bits uint8) error {
	if bits < 8 || bits > 32 {
		return fmt.Errorf("conn: SPI bits per word need to be 8 or more and 32 or less, got %d", bits)
	}

	if c.bitsPerWord != bits {
		if err := ioctl.Set(c.fd, spiIOCBitsPerWord, &bits); err != nil {
			return err
		}
		c.bitsPerWord = bits
	}

	return nil
}

func (c *SPI) MaxSpeed() int {
	return int(c.maxSpeedHz)
}

func (c *SPI) SetMaxSpeed(v int) error {
	if v < 0 {
		return nil
	}

	u := uint32(v)
	if c.maxSpeedHz != u {
		if err := ioctl.Set(c.fd, spiIOCMaxSpeedHz, &u); err != nil {
			return err
		}
		c.maxSpeedHz = u
	}

	return nil
}

func (c *SPI) Write(b []byte) (n int, err error) {
	return c.f.Write(b)
}
