// Package source supplies raw NMEA chunks from the GPS module over
// either of its transports. A chunk is whatever the receive side holds
// at call time: possibly empty, with no sentence alignment guarantee.
// Interpreting the bytes is the decoder's job.
package source

import (
	"fmt"
	"io"

	"github.com/novarover/gpsnode/internal/config"
)

// Source drains the module's receive buffer and accepts configuration
// commands in the write direction.
type Source interface {
	io.Writer
	io.Closer

	// ReadChunk returns the bytes currently available. An empty chunk
	// with a nil error means the module had nothing new.
	ReadChunk() (string, error)
}

// Open returns the transport selected by cfg.Kind.
func Open(cfg config.SourceConfig) (Source, error) {
	switch cfg.Kind {
	case "serial":
		return openSerial(cfg.Serial)
	case "i2c":
		return openI2C(cfg.I2C)
	}
	return nil, fmt.Errorf("unknown source kind %q", cfg.Kind)
}
