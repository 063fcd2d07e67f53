package nmea

import (
	"strconv"
	"strings"
)

// SentenceRMC is the tag of the recommended minimum navigation
// sentence, the only sentence this node asks its module to emit.
const SentenceRMC = "RMC"

// RMC field layout. NMEA 2.3 firmware appends a mode indicator for 13
// comma-separated fields; pre-2.3 sentences carry 12. Any other count
// means the transport dropped or injected bytes (baud mismatch, line
// noise) and the reading is discarded before its contents are looked
// at.
const (
	rmcFieldCountV22 = 12
	rmcFieldCountV23 = 13

	statusField  = 2
	latField     = 3
	latHemiField = 4
	lonField     = 5
	lonHemiField = 6

	statusActive = "A"
	statusVoid   = "V"
)

// The 3-character sentence tag sits after the 2-character talker ID.
const tagOffset = 2

// Coordinate is a position in signed decimal degrees: south and west
// are negative.
type Coordinate struct {
	Latitude  float64
	Longitude float64
}

// OutcomeKind tags the result of one Decode call.
type OutcomeKind int

const (
	// KindNoSentenceFound: the chunk held no sentence of the target
	// tag. Normal between module output intervals.
	KindNoSentenceFound OutcomeKind = iota
	// KindNoFix: the module reports no satellite fix yet. Normal
	// during startup or under obstruction.
	KindNoFix
	// KindChecksumFailed: the XOR checksum did not match, or the
	// checksum field itself was missing or unreadable.
	KindChecksumFailed
	// KindMalformedSentence: wrong field count, an unexpected status
	// character, or coordinate fields that do not parse.
	KindMalformedSentence
	// KindCoordinate: a validated, active-fix position was decoded.
	KindCoordinate
)

func (k OutcomeKind) String() string {
	switch k {
	case KindNoSentenceFound:
		return "no sentence found"
	case KindNoFix:
		return "no fix"
	case KindChecksumFailed:
		return "checksum failed"
	case KindMalformedSentence:
		return "malformed sentence"
	case KindCoordinate:
		return "coordinate"
	}
	return "unknown"
}

// Outcome is the tagged result of a Decode call. Coordinate is only
// meaningful when Kind is KindCoordinate; a position is never built
// from a sentence that failed validation, so there is no (0, 0)
// sentinel to confuse with a real equatorial fix.
type Outcome struct {
	Kind       OutcomeKind
	Coordinate Coordinate
}

// Decode scans a raw chunk for the first sentence whose tag matches
// tag and converts its position fields to decimal degrees.
//
// The chunk is whatever the receive buffer held at read time: possibly
// empty, possibly cut mid-sentence at either end, possibly holding
// several sentences. Truncated fragments are rejected individually;
// no state is carried between calls. When a chunk holds more than one
// matching sentence only the first is decoded; the steady state is
// one per chunk, and later duplicates are stale by definition.
//
// Checks run in the wire protocol's reporting order: field count,
// fix status (a void fix is reported as KindNoFix even when the
// checksum is also wrong, since it is the more common benign case),
// checksum, then coordinate conversion.
func Decode(chunk, tag string) Outcome {
	for _, fragment := range strings.Split(chunk, "$") {
		if len(fragment) < tagOffset+len(tag) {
			continue
		}
		if fragment[tagOffset:tagOffset+len(tag)] != tag {
			continue
		}
		return decodeFragment(fragment)
	}
	return Outcome{Kind: KindNoSentenceFound}
}

func decodeFragment(fragment string) Outcome {
	body := fragment
	star := strings.IndexByte(fragment, '*')
	if star != -1 {
		body = fragment[:star]
	}

	fields := strings.Split(body, ",")
	if n := len(fields); n != rmcFieldCountV22 && n != rmcFieldCountV23 {
		return Outcome{Kind: KindMalformedSentence}
	}

	switch fields[statusField] {
	case statusVoid:
		return Outcome{Kind: KindNoFix}
	case statusActive:
	default:
		return Outcome{Kind: KindMalformedSentence}
	}

	if star == -1 || !ValidateChecksum(body, strings.TrimSpace(fragment[star+1:])) {
		return Outcome{Kind: KindChecksumFailed}
	}

	lat, ok := parseCoordinate(fields[latField], fields[latHemiField], 2, 90)
	if !ok {
		return Outcome{Kind: KindMalformedSentence}
	}
	lon, ok := parseCoordinate(fields[lonField], fields[lonHemiField], 3, 180)
	if !ok {
		return Outcome{Kind: KindMalformedSentence}
	}

	return Outcome{Kind: KindCoordinate, Coordinate: Coordinate{Latitude: lat, Longitude: lon}}
}

// parseCoordinate converts an NMEA magnitude plus hemisphere to signed
// decimal degrees. Latitude magnitudes carry two leading degree digits
// (DDMM.MMMM), longitudes three (DDDMM.MMMM); degDigits selects
// which, and the asymmetry is part of the sentence format. limit
// bounds the magnitude in degrees.
func parseCoordinate(magnitude, hemisphere string, degDigits int, limit float64) (float64, bool) {
	if len(magnitude) <= degDigits {
		return 0, false
	}
	deg, err := strconv.Atoi(magnitude[:degDigits])
	if err != nil || deg < 0 {
		return 0, false
	}
	min, err := strconv.ParseFloat(magnitude[degDigits:], 64)
	// Guards phrased positively so ParseFloat's NaN (which compares
	// false against everything) cannot slip through.
	if err != nil || !(min >= 0 && min < 60) {
		return 0, false
	}
	dec := float64(deg) + min/60
	if !(dec <= limit) {
		return 0, false
	}
	if hemisphere == "S" || hemisphere == "W" {
		dec = -dec
	}
	return dec, true
}
