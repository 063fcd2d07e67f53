package source

import (
	"fmt"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	"github.com/novarover/gpsnode/internal/config"
)

// PMTK modules expose the same NMEA stream over I2C in fixed 32-byte
// read windows, padded with '\n' once the output buffer is drained.
const i2cWindow = 32

// Cap on bytes pulled per ReadChunk so a chatty module cannot pin the
// loop.
const i2cMaxChunk = 1024

type i2cSource struct {
	bus i2c.BusCloser
	dev i2c.Dev
}

func openI2C(cfg config.I2CConfig) (*i2cSource, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("init periph host: %w", err)
	}
	bus, err := i2creg.Open(cfg.Bus)
	if err != nil {
		return nil, fmt.Errorf("open i2c bus %q: %w", cfg.Bus, err)
	}
	return &i2cSource{bus: bus, dev: i2c.Dev{Bus: bus, Addr: cfg.Addr}}, nil
}

func (s *i2cSource) ReadChunk() (string, error) {
	var out []byte
	window := make([]byte, i2cWindow)
	for len(out) < i2cMaxChunk {
		if err := s.dev.Tx(nil, window); err != nil {
			return "", fmt.Errorf("i2c read: %w", err)
		}
		if allPadding(window) {
			break
		}
		out = append(out, window...)
	}
	return string(out), nil
}

// allPadding reports whether a read window holds only the '\n' filler
// the module emits when it has nothing queued.
func allPadding(window []byte) bool {
	for _, b := range window {
		if b != '\n' {
			return false
		}
	}
	return true
}

func (s *i2cSource) Write(p []byte) (int, error) {
	if err := s.dev.Tx(p, nil); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (s *i2cSource) Close() error {
	return s.bus.Close()
}
