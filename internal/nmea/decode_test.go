package nmea

import (
	"fmt"
	"math"
	"testing"

	gonmea "github.com/adrianmo/go-nmea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sentence frames a payload the way the module transmits it.
func sentence(payload string) string {
	return fmt.Sprintf("$%s*%02X\r\n", payload, Checksum(payload))
}

const activePayload = "GPRMC,123519,A,4807.038,N,01131.000,E,022.4,084.4,230394,003.1,W"

func TestDecode_ActiveFix(t *testing.T) {
	out := Decode(sentence(activePayload), SentenceRMC)

	require.Equal(t, KindCoordinate, out.Kind)
	// 48° + 7.038'/60, 11° + 31.000'/60
	assert.InDelta(t, 48.1173, out.Coordinate.Latitude, 1e-9)
	assert.InDelta(t, 11.0+31.0/60.0, out.Coordinate.Longitude, 1e-9)
}

func TestDecode_MatchesReferenceParser(t *testing.T) {
	lines := []string{
		sentence(activePayload),
		sentence("GPRMC,051042,A,3342.6618,S,15109.5417,E,000.0,360.0,150120,012.5,E"),
		sentence("GPRMC,220516,A,5133.8200,N,00042.2400,W,173.8,231.8,130694,004.2,W"),
		sentence("GPRMC,064951.000,A,2307.1256,N,12016.4438,E,0.03,165.48,260406,3.05,W,A"),
	}
	for _, line := range lines {
		out := Decode(line, SentenceRMC)
		require.Equal(t, KindCoordinate, out.Kind, "line %q", line)

		parsed, err := gonmea.Parse(line[:len(line)-2])
		require.NoError(t, err)
		ref := parsed.(gonmea.RMC)

		assert.InDelta(t, ref.Latitude, out.Coordinate.Latitude, 1e-9, "line %q", line)
		assert.InDelta(t, ref.Longitude, out.Coordinate.Longitude, 1e-9, "line %q", line)
	}
}

func TestDecode_ModeIndicatorLayout(t *testing.T) {
	// NMEA 2.3 firmware appends a mode field (13 fields total); the
	// module's own 10 Hz output uses this layout.
	payload := "GPRMC,064951.000,A,2307.1256,N,12016.4438,E,0.03,165.48,260406,3.05,W,A"
	out := Decode(sentence(payload), SentenceRMC)

	require.Equal(t, KindCoordinate, out.Kind)
	assert.InDelta(t, 23.0+7.1256/60.0, out.Coordinate.Latitude, 1e-9)
	assert.InDelta(t, 120.0+16.4438/60.0, out.Coordinate.Longitude, 1e-9)
}

func TestDecode_SouthWestNegative(t *testing.T) {
	payload := "GPRMC,051042,A,3342.6618,S,15109.5417,W,000.0,360.0,150120,012.5,E"
	out := Decode(sentence(payload), SentenceRMC)

	require.Equal(t, KindCoordinate, out.Kind)
	assert.InDelta(t, -(33.0 + 42.6618/60.0), out.Coordinate.Latitude, 1e-9)
	assert.InDelta(t, -(151.0 + 9.5417/60.0), out.Coordinate.Longitude, 1e-9)
}

func TestDecode_EmptyChunk(t *testing.T) {
	assert.Equal(t, KindNoSentenceFound, Decode("", SentenceRMC).Kind)
}

func TestDecode_NoMatchingSentence(t *testing.T) {
	chunk := sentence("GPGGA,123519,4807.038,N,01131.000,E,1,08,0.9,545.4,M,46.9,M,,")
	assert.Equal(t, KindNoSentenceFound, Decode(chunk, SentenceRMC).Kind)
}

func TestDecode_TruncatedFragmentsTolerated(t *testing.T) {
	// Chunk cut mid-sentence at both ends, with the full sentence in
	// the middle.
	chunk := "31.000,E,022.4\r\n" + sentence(activePayload) + "$GPRM"
	assert.Equal(t, KindCoordinate, Decode(chunk, SentenceRMC).Kind)
}

func TestDecode_FirstMatchWins(t *testing.T) {
	second := sentence("GPRMC,051042,A,3342.6618,S,15109.5417,E,000.0,360.0,150120,012.5,E")
	out := Decode(sentence(activePayload)+second, SentenceRMC)

	require.Equal(t, KindCoordinate, out.Kind)
	assert.InDelta(t, 48.1173, out.Coordinate.Latitude, 1e-9)
}

func TestDecode_VoidFix(t *testing.T) {
	payload := "GPRMC,123519,V,4807.038,N,01131.000,E,022.4,084.4,230394,003.1,W"
	assert.Equal(t, KindNoFix, Decode(sentence(payload), SentenceRMC).Kind)
}

func TestDecode_VoidFixReportedBeforeChecksum(t *testing.T) {
	// A void fix is the benign, expected case; it is reported even
	// when the sentence is also corrupt.
	payload := "GPRMC,123519,V,4807.038,N,01131.000,E,022.4,084.4,230394,003.1,W"
	line := fmt.Sprintf("$%s*00\r\n", payload)
	assert.Equal(t, KindNoFix, Decode(line, SentenceRMC).Kind)
}

func TestDecode_TamperedChecksum(t *testing.T) {
	line := fmt.Sprintf("$%s*00\r\n", activePayload)
	assert.Equal(t, KindChecksumFailed, Decode(line, SentenceRMC).Kind)
}

func TestDecode_MissingChecksumField(t *testing.T) {
	line := "$" + activePayload + "\r\n"
	assert.Equal(t, KindChecksumFailed, Decode(line, SentenceRMC).Kind)
}

func TestDecode_BadChecksumHex(t *testing.T) {
	line := fmt.Sprintf("$%s*G1\r\n", activePayload)
	assert.Equal(t, KindChecksumFailed, Decode(line, SentenceRMC).Kind)
}

func TestDecode_WrongFieldCount(t *testing.T) {
	// 10 fields instead of 13: dropped bytes on the wire.
	payload := "GPRMC,123519,A,4807.038,N,01131.000,E,022.4,084.4,230394"
	assert.Equal(t, KindMalformedSentence, Decode(sentence(payload), SentenceRMC).Kind)
}

func TestDecode_UnknownStatusCharacter(t *testing.T) {
	payload := "GPRMC,123519,X,4807.038,N,01131.000,E,022.4,084.4,230394,003.1,W"
	assert.Equal(t, KindMalformedSentence, Decode(sentence(payload), SentenceRMC).Kind)
}

func TestDecode_MalformedCoordinates(t *testing.T) {
	payloads := map[string]string{
		"non-numeric latitude":  "GPRMC,123519,A,48AB.038,N,01131.000,E,022.4,084.4,230394,003.1,W",
		"latitude over 90":      "GPRMC,123519,A,9907.038,N,01131.000,E,022.4,084.4,230394,003.1,W",
		"longitude over 180":    "GPRMC,123519,A,4807.038,N,18131.000,E,022.4,084.4,230394,003.1,W",
		"minutes over 60":       "GPRMC,123519,A,4867.038,N,01131.000,E,022.4,084.4,230394,003.1,W",
		"empty latitude":        "GPRMC,123519,A,,N,01131.000,E,022.4,084.4,230394,003.1,W",
		"degree digits missing": "GPRMC,123519,A,48,N,01131.000,E,022.4,084.4,230394,003.1,W",
		"NaN latitude minutes":  "GPRMC,123519,A,48NaN,N,01131.000,E,022.4,084.4,230394,003.1,W",
		"NaN longitude minutes": "GPRMC,123519,A,4807.038,N,011NaN,E,022.4,084.4,230394,003.1,W",
	}
	for name, payload := range payloads {
		assert.Equal(t, KindMalformedSentence, Decode(sentence(payload), SentenceRMC).Kind, name)
	}
}

func TestDecode_GenericOverTag(t *testing.T) {
	// The tag match is not hardwired to RMC: any 13-field sentence
	// with the RMC layout decodes under its own tag.
	payload := "GPXYZ,123519,A,4807.038,N,01131.000,E,022.4,084.4,230394,003.1,W"
	out := Decode(sentence(payload), "XYZ")

	require.Equal(t, KindCoordinate, out.Kind)
	assert.InDelta(t, 48.1173, out.Coordinate.Latitude, 1e-9)
	assert.Equal(t, KindNoSentenceFound, Decode(sentence(payload), SentenceRMC).Kind)
}

func TestDecode_Idempotent(t *testing.T) {
	chunks := []string{
		sentence(activePayload),
		"",
		"$GPRMC,123519,V",
	}
	for _, chunk := range chunks {
		assert.Equal(t, Decode(chunk, SentenceRMC), Decode(chunk, SentenceRMC), "chunk %q", chunk)
	}
}

func TestDecode_ConversionRoundTrip(t *testing.T) {
	// Reconstructing DDMM.MMMM from the decoded decimal degrees must
	// recover the original degrees and minutes.
	cases := []struct {
		latDeg, lonDeg int
		min            float64
		latHemi        string
		lonHemi        string
	}{
		{0, 0, 0.0, "N", "E"},
		{12, 3, 30.5, "N", "W"},
		{48, 11, 7.038, "N", "E"},
		{89, 179, 59.9999, "S", "E"},
		{33, 151, 42.6618, "S", "W"},
	}
	for _, tc := range cases {
		payload := fmt.Sprintf("GPRMC,123519,A,%02d%07.4f,%s,%03d%07.4f,%s,022.4,084.4,230394,003.1,W",
			tc.latDeg, tc.min, tc.latHemi, tc.lonDeg, tc.min, tc.lonHemi)
		out := Decode(sentence(payload), SentenceRMC)
		require.Equal(t, KindCoordinate, out.Kind, "payload %q", payload)

		lat := math.Abs(out.Coordinate.Latitude)
		assert.Equal(t, tc.latDeg, int(lat))
		assert.InDelta(t, tc.min, (lat-math.Trunc(lat))*60, 1e-6)

		lon := math.Abs(out.Coordinate.Longitude)
		assert.Equal(t, tc.lonDeg, int(lon))
		assert.InDelta(t, tc.min, (lon-math.Trunc(lon))*60, 1e-6)
	}
}
