package nmea

import "strconv"

// Checksum returns the XOR of every byte of body. NMEA-0183 is a
// single-byte ASCII protocol and the transmitting module computes its
// checksum over the bytes it puts on the wire, so the XOR must run
// over raw bytes, never over transcoded runes.
func Checksum(body string) byte {
	var sum byte
	for i := 0; i < len(body); i++ {
		sum ^= body[i]
	}
	return sum
}

// ValidateChecksum verifies a sentence body (the text between the
// leading '$' and the '*') against its trailing checksum field. The
// field must hold exactly two hex digits; casing and the hex/decimal
// representation never matter because both sides are compared as
// integers. Any malformed field fails closed.
func ValidateChecksum(body, field string) bool {
	if len(field) != 2 {
		return false
	}
	want, err := strconv.ParseUint(field, 16, 8)
	if err != nil {
		return false
	}
	return Checksum(body) == byte(want)
}
