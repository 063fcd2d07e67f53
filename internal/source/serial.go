package source

import (
	"fmt"
	"io"

	serial "github.com/jacobsa/go-serial/serial"

	"github.com/novarover/gpsnode/internal/config"
)

type serialSource struct {
	port io.ReadWriteCloser
	buf  []byte
}

func openSerial(cfg config.SerialConfig) (*serialSource, error) {
	opts := serial.OpenOptions{
		PortName:   cfg.Port,
		BaudRate:   cfg.Baud,
		DataBits:   8,
		StopBits:   1,
		ParityMode: serial.PARITY_NONE,
		// Return whatever is buffered instead of blocking for a full
		// read: MinimumReadSize 0 with the shortest timeout termios
		// allows (100 ms).
		MinimumReadSize:       0,
		InterCharacterTimeout: 100,
	}

	port, err := serial.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open serial port %s: %w", cfg.Port, err)
	}
	return &serialSource{port: port, buf: make([]byte, 4096)}, nil
}

func (s *serialSource) ReadChunk() (string, error) {
	n, err := s.port.Read(s.buf)
	if n > 0 {
		return string(s.buf[:n]), nil
	}
	// A timed-out read with nothing buffered surfaces as io.EOF on
	// this port implementation; the module simply had nothing to say.
	if err != nil && err != io.EOF {
		return "", err
	}
	return "", nil
}

func (s *serialSource) Write(p []byte) (int, error) {
	return s.port.Write(p)
}

func (s *serialSource) Close() error {
	return s.port.Close()
}
