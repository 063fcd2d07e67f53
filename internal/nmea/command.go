package nmea

import (
	"fmt"
	"io"
	"time"
)

// PMTK setup commands for MediaTek-based modules (Adafruit Ultimate
// GPS and friends). Values match the module datasheet.
const (
	// CommandRMCOnly restricts sentence output to RMC.
	CommandRMCOnly = "PMTK314,0,1,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0"
	// CommandRate10Hz sets the output interval to 100 ms.
	CommandRate10Hz = "PMTK220,100"
)

// The module drops a command that arrives while it is still applying
// the previous one.
var commandPause = time.Second

// FormatCommand frames a command body for transmission to the module:
// $<body>*<checksum>\r\n, checksum in uppercase hex. Same XOR as the
// receive direction.
func FormatCommand(body string) string {
	return fmt.Sprintf("$%s*%02X\r\n", body, Checksum(body))
}

// Configure writes the RMC-only and 10 Hz setup commands to the
// device, pausing between them so both take effect.
func Configure(w io.Writer) error {
	for i, cmd := range []string{CommandRMCOnly, CommandRate10Hz} {
		if i > 0 {
			time.Sleep(commandPause)
		}
		if _, err := io.WriteString(w, FormatCommand(cmd)); err != nil {
			return fmt.Errorf("write %s: %w", cmd, err)
		}
	}
	return nil
}
