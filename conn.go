package neopixel

import (
	"fmt"
	"io"

	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"

	"github.com/BeatGlow/neopixel/conn"
)

// Conn is a connection to the serial peripheral that clocks data onto the
// strip. Any io.Writer satisfies the transport contract of [New]; Conn is
// what the openers in this package return.
type Conn interface {
	String() string

	io.Writer

	// Close the connection.
	Close() error
}

// SPI clock bounds that keep the expanded pulse widths within the timing
// tolerance of WS2812-class strips. One strip bit spans 4 clock cycles, so
// at [DefaultSpeed] a bit lasts 1.25µs.
const (
	MinSpeed     = 2_400_000
	MaxSpeed     = 4_000_000
	DefaultSpeed = 3_200_000
)

// SPIConfig describes the SPI bus configuration.
type SPIConfig struct {
	// Bus and Device select the spidev node or registered port.
	Bus    int
	Device int

	// SpeedHz is the SPI clock in Hz, within [MinSpeed, MaxSpeed].
	SpeedHz uint32

	// BatchSize limits the size of a single bus write.
	BatchSize uint
}

// DefaultSPIConfig are the default configuration values.
var DefaultSPIConfig = SPIConfig{
	Bus:       0,
	Device:    0,
	SpeedHz:   DefaultSpeed,
	BatchSize: 4096,
}

func checkConfig(config *SPIConfig) (*SPIConfig, error) {
	if config == nil {
		config = new(SPIConfig)
		*config = DefaultSPIConfig
	}
	if config.SpeedHz == 0 {
		config.SpeedHz = DefaultSpeed
	}
	if config.BatchSize == 0 {
		config.BatchSize = DefaultSPIConfig.BatchSize
	}
	if config.SpeedHz < MinSpeed || config.SpeedHz > MaxSpeed {
		return nil, fmt.Errorf("neopixel: SPI speed %dHz outside %d..%dHz", config.SpeedHz, MinSpeed, MaxSpeed)
	}
	return config, nil
}

type spiConn struct {
	bus       *conn.SPI
	batchSize uint
}

// OpenSPI opens the numbered spidev bus and configures it for strip output:
// mode 0, 8 bits per word, and the configured clock.
func OpenSPI(config *SPIConfig) (Conn, error) {
	config, err := checkConfig(config)
	if err != nil {
		return nil, err
	}

	c, err := conn.OpenSPI(config.Bus, config.Device)
	if err != nil {
		return nil, err
	}

	if err = c.SetMode(conn.SPIMode0); err != nil {
		_ = c.Close()
		return nil, err
	}
	if err = c.SetBitsPerWord(8); err != nil {
		_ = c.Close()
		return nil, err
	}
	if err = c.SetMaxSpeed(int(config.SpeedHz)); err != nil {
		_ = c.Close()
		return nil, err
	}

	return &spiConn{
		bus:       c,
		batchSize: config.BatchSize,
	}, nil
}

func (c *spiConn) String() string {
	return fmt.Sprintf("SPI bus %s", c.bus)
}

func (c *spiConn) Close() error {
	return c.bus.Close()
}

func (c *spiConn) Write(p []byte) (n int, err error) {
	// spidev rejects writes larger than its buffer size, so long strips go
	// out in batches.
	for len(p) > 0 {
		chunk := p
		if uint(len(chunk)) > c.batchSize {
			chunk = chunk[:c.batchSize]
		}
		w, err := c.bus.Write(chunk)
		n += w
		if err != nil {
			return n, err
		}
		p = p[len(chunk):]
	}
	return n, nil
}

type portConn struct {
	port      spi.PortCloser
	conn      spi.Conn
	batchSize uint
}

// OpenPort connects a SPI port registered with the periph.io host drivers,
// selected by name ("SPI0.0", "/dev/spidev0.0", or empty for the first
// available port), configured the same way as [OpenSPI].
func OpenPort(name string, config *SPIConfig) (Conn, error) {
	config, err := checkConfig(config)
	if err != nil {
		return nil, err
	}

	port, err := spireg.Open(name)
	if err != nil {
		return nil, err
	}

	c, err := port.Connect(physic.Frequency(config.SpeedHz)*physic.Hertz, spi.Mode0, 8)
	if err != nil {
		_ = port.Close()
		return nil, err
	}

	return &portConn{
		port:      port,
		conn:      c,
		batchSize: config.BatchSize,
	}, nil
}

func (c *portConn) String() string {
	return c.conn.String()
}

func (c *portConn) Close() error {
	return c.port.Close()
}

func (c *portConn) Write(p []byte) (n int, err error) {
	for len(p) > 0 {
		chunk := p
		if uint(len(chunk)) > c.batchSize {
			chunk = chunk[:c.batchSize]
		}
		if err := c.conn.Tx(chunk, nil); err != nil {
			return n, err
		}
		n += len(chunk)
		p = p[len(chunk):]
	}
	return n, nil
}

// Interface checks.
var (
	_ Conn = (*spiConn)(nil)
	_ Conn = (*portConn)(nil)
)
