// Package nmea decodes NMEA-0183 sentences from raw serial chunks into
// validated decimal-degree coordinates.
//
// Decoding is stateless: each Decode call receives a self-contained
// chunk and yields either a coordinate or a typed outcome saying why
// none was produced. Only the 13-field RMC layout is interpreted; the
// tag match is generic so further sentence types can be routed without
// restructuring.
package nmea
