// Package polyline implements Google's Encoded Polyline Algorithm Format
// with a configurable precision factor.
package polyline

import (
	"errors"
	"math"

	"github.com/paulmach/orb"
)

// Precision factors for the two encodings used by the routing stack.
const (
	// Precision5 is the Google Maps standard (1e-5).
	Precision5 = 1e-5
	// Precision6 is used by the routing provider, which encodes with a
	// multiplier of 1,000,000.
	Precision6 = 1e-6
)

// ErrTruncated is returned when the encoding ends inside a delta group,
// either because a continuation bit is never cleared or because a latitude
// delta has no matching longitude delta.
var ErrTruncated = errors.New("polyline: truncated encoding")

// Decode converts an encoded polyline string to a LineString of
// [longitude, latitude] points. An empty string decodes to an empty line.
func Decode(encoded string, precision float64) (orb.LineString, error) {
	line := orb.LineString{}
	index, lat, lng := 0, 0, 0

	for index < len(encoded) {
		latDelta, next, err := decodeDelta(encoded, index)
		if err != nil {
			return nil, err
		}
		index = next
		lat += latDelta

		if index >= len(encoded) {
			// Latitude delta without a longitude delta.
			return nil, ErrTruncated
		}

		lngDelta, next, err := decodeDelta(encoded, index)
		if err != nil {
			return nil, err
		}
		index = next
		lng += lngDelta

		// GeoJSON order: longitude first.
		line = append(line, orb.Point{
			float64(lng) * precision,
			float64(lat) * precision,
		})
	}

	return line, nil
}

// decodeDelta reads one variable-length, zig-zag-encoded integer starting at
// index. Returns the signed delta and the index of the next unread byte.
func decodeDelta(encoded string, index int) (int, int, error) {
	shift, result := 0, 0
	for {
		if index >= len(encoded) {
			return 0, index, ErrTruncated
		}
		b := int(encoded[index]) - 63
		index++
		result |= (b & 0x1f) << shift
		shift += 5
		if b < 0x20 {
			break
		}
	}

	// Undo zig-zag encoding.
	if result&1 != 0 {
		return ^(result >> 1), index, nil
	}
	return result >> 1, index, nil
}

// Encode converts a LineString of [longitude, latitude] points to an encoded
// polyline string at the given precision.
func Encode(line orb.LineString, precision float64) string {
	if len(line) == 0 {
		return ""
	}

	buf := make([]byte, 0, len(line)*4)
	prevLat, prevLng := 0, 0

	for _, p := range line {
		lat := int(math.Round(p.Lat() / precision))
		lng := int(math.Round(p.Lon() / precision))

		buf = encodeDelta(buf, lat-prevLat)
		buf = encodeDelta(buf, lng-prevLng)

		prevLat = lat
		prevLng = lng
	}

	return string(buf)
}

func encodeDelta(buf []byte, value int) []byte {
	if value < 0 {
		value = ^(value << 1)
	} else {
		value <<= 1
	}

	for value >= 0x20 {
		buf = append(buf, byte((value&0x1f)|0x20)+63)
		value >>= 5
	}
	return append(buf, byte(value)+63)
}
