// unit/latlong.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package unit

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/mmp/geoverlay/math"
)

var ErrInvalidLatLong = errors.New("invalid latlong string")

// LatLong is a geodetic position.
type LatLong struct {
	Latitude  Angle
	Longitude Angle
}

func LatLongDegrees(lat, long float64) LatLong {
	return LatLong{Latitude: Degrees(lat), Longitude: Degrees(long)}
}

func (p LatLong) IsZero() bool {
	return p.Latitude == 0 && p.Longitude == 0
}

// String returns the position in decimal degrees, e.g.:
// (39.860901, -75.274864)
func (p LatLong) String() string {
	return fmt.Sprintf("(%f, %f)", p.Latitude.Degrees(), p.Longitude.Degrees())
}

// DMSString returns the position in degrees minutes, seconds, e.g.
// N039.51.39.243,W075.16.29.511
func (p LatLong) DMSString() string {
	format := func(a Angle) string {
		// Work in integer milliseconds of arc so nothing rounds up to 60.
		ms := int64(math.Abs(a)) * 3600
		d, ms := ms/3600000, ms%3600000
		m, ms := ms/60000, ms%60000
		s, ms := ms/1000, ms%1000
		return fmt.Sprintf("%03d.%02d.%02d.%03d", d, m, s, ms)
	}

	var s string
	if p.Latitude >= 0 {
		s = "N"
	} else {
		s = "S"
	}
	s += format(p.Latitude)

	if p.Longitude >= 0 {
		s += ",E"
	} else {
		s += ",W"
	}
	s += format(p.Longitude)

	return s
}

var (
	// pair of floats (no exponents)
	reLatLongFloat = regexp.MustCompile(`^(\-?[0-9]+\.[0-9]+), *(\-?[0-9]+\.[0-9]+)$`)
	// https://en.wikipedia.org/wiki/ISO_6709#String_expression_(Annex_H)
	// e.g. +403527.580-0734452.955
	reISO6709H = regexp.MustCompile(`^([-+][0-9][0-9])([0-9][0-9])([0-9][0-9])\.([0-9][0-9][0-9])([-+][0-9][0-9][0-9])([0-9][0-9])([0-9][0-9])\.([0-9][0-9][0-9])$`)
)

// Parse latlongs of the form "N40.37.58.400, W073.46.17.000" by hand;
// it's by far the most common form in shape files and a regexp is
// needlessly slow for it.
func tryParseDotted(b []byte) (LatLong, bool) {
	if len(b) == 0 || (b[0] != 'N' && b[0] != 'S') {
		return LatLong{}, false
	}
	negateLatitude := b[0] == 'S'

	// Skip over the N/S and parse the four dotted numbers following it
	b = b[1:]
	latitude, n, ok := tryParseDottedNumbers(b)
	if !ok {
		return LatLong{}, false
	}
	if negateLatitude {
		latitude = -latitude
	}
	b = b[n:]

	// Skip comma and optional space
	if len(b) == 0 || b[0] != ',' {
		return LatLong{}, false
	}
	b = b[1:]
	if len(b) > 0 && b[0] == ' ' {
		b = b[1:]
	}

	if len(b) == 0 || (b[0] != 'E' && b[0] != 'W') {
		return LatLong{}, false
	}
	negateLongitude := b[0] == 'W'

	b = b[1:]
	longitude, n, ok := tryParseDottedNumbers(b)
	if !ok || n != len(b) {
		return LatLong{}, false
	}
	if negateLongitude {
		longitude = -longitude
	}

	return LatLong{Latitude: latitude, Longitude: longitude}, true
}

// Parse a value of the form aaa.bbb.ccc.ddd (degrees, minutes, seconds,
// milliseconds) and return the corresponding angle, the number of bytes
// of b consumed, and a bool indicating success or failure.
func tryParseDottedNumbers(b []byte) (Angle, int, bool) {
	n := 0
	var ms int64

	// Scan to the end of the current number group; return
	// the number of bytes it uses.
	scan := func(b []byte) int {
		for i, v := range b {
			if v == '.' || v == ',' {
				return i
			}
		}
		return len(b)
	}

	for i := 0; i < 4; i++ {
		end := scan(b)
		if end == 0 {
			return 0, 0, false
		}

		value := int64(0)
		for _, ch := range b[:end] {
			if ch < '0' || ch > '9' {
				return 0, 0, false
			}
			value = 10*value + int64(ch-'0')
		}
		if i == 3 {
			// Treat the last set of digits as a decimal, so that
			// Nxx.yy.zz.1 is handled like Nxx.yy.zz.100.
			for j := end; j < 3; j++ {
				value *= 10
			}
		}

		scales := [4]int64{3600000, 60000, 1000, 1}
		ms += value * scales[i]
		n += end
		b = b[end:]

		if i < 3 {
			if len(b) == 0 {
				return 0, 0, false
			}
			b = b[1:]
			n++
		}
	}

	// milliseconds of arc to millidegrees
	return Degrees(float64(ms) / 3600000), n, true
}

// ParseLatLong parses a position given in one of the forms
// "N40.37.58.400,W073.46.17.000", "40.6328888, -73.771385" or
// "+403758.400-0734617.000".
func ParseLatLong(llstr []byte) (LatLong, error) {
	if p, ok := tryParseDotted(llstr); ok {
		return p, nil
	} else if strs := reLatLongFloat.FindStringSubmatch(string(llstr)); len(strs) == 3 {
		lat, err := strconv.ParseFloat(strs[1], 64)
		if err != nil {
			return LatLong{}, err
		}
		long, err := strconv.ParseFloat(strs[2], 64)
		if err != nil {
			return LatLong{}, err
		}
		return LatLongDegrees(lat, long), nil
	} else if strs := reISO6709H.FindStringSubmatch(string(llstr)); len(strs) == 9 {
		parse := func(deg, min, sec, frac string) (Angle, error) {
			d, err := strconv.Atoi(deg)
			if err != nil {
				return 0, err
			}
			m, err := strconv.Atoi(min)
			if err != nil {
				return 0, err
			}
			s, err := strconv.Atoi(sec)
			if err != nil {
				return 0, err
			}
			f, err := strconv.Atoi(frac)
			if err != nil {
				return 0, err
			}
			sgn := 1.
			if deg[0] == '-' {
				sgn = -1
			}
			d = math.Abs(d)
			return Degrees(sgn * (float64(d) + float64(m)/60 + float64(s)/3600 + float64(f)/3600000)), nil
		}

		lat, err := parse(strs[1], strs[2], strs[3], strs[4])
		if err != nil {
			return LatLong{}, err
		}
		long, err := parse(strs[5], strs[6], strs[7], strs[8])
		if err != nil {
			return LatLong{}, err
		}
		return LatLong{Latitude: lat, Longitude: long}, nil
	} else {
		return LatLong{}, fmt.Errorf("%s: %w", llstr, ErrInvalidLatLong)
	}
}

// Store LatLongs as strings in JSON, for compactness/friendliness...
func (p LatLong) MarshalJSON() ([]byte, error) {
	return []byte("\"" + p.DMSString() + "\""), nil
}

func (p *LatLong) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '[' {
		// [latitude, longitude] in decimal degrees
		var pt [2]float64
		err := json.Unmarshal(b, &pt)
		if err == nil {
			*p = LatLongDegrees(pt[0], pt[1])
		}
		return err
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	pt, err := ParseLatLong([]byte(s))
	if err == nil {
		*p = pt
	}
	return err
}
