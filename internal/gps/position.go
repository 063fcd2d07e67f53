package gps

// Position is a single decoded GPS position suitable for JSON and MQTT.
// Latitude and longitude are decimal degrees; south and west are
// negative. A Position is only ever built from a sentence that passed
// checksum and fix-status validation.
type Position struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
}
