// unit/scalar.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package unit

import (
	"fmt"
	"time"

	"github.com/mmp/geoverlay/math"
)

///////////////////////////////////////////////////////////////////////////
// Length

// Length is a distance in tenths of a millimetre.
type Length int64

const (
	metre        = 10000
	nauticalMile = 1852 * metre
	foot         = 0.3048 * metre
)

func Millimetres(mm float64) Length   { return Length(math.Round[int64](mm * 10)) }
func Metres(m float64) Length         { return Length(math.Round[int64](m * metre)) }
func Kilometres(km float64) Length    { return Length(math.Round[int64](km * 1000 * metre)) }
func NauticalMiles(nm float64) Length { return Length(math.Round[int64](nm * nauticalMile)) }
func Feet(ft float64) Length          { return Length(math.Round[int64](ft * foot)) }

func (l Length) Millimetres() float64   { return float64(l) / 10 }
func (l Length) Metres() float64        { return float64(l) / metre }
func (l Length) Kilometres() float64    { return float64(l) / (1000 * metre) }
func (l Length) NauticalMiles() float64 { return float64(l) / nauticalMile }
func (l Length) Feet() float64          { return float64(l) / foot }

func (l Length) Scale(s float64) Length { return Length(math.Round[int64](float64(l) * s)) }
func (l Length) Add(m Length) Length    { return l + m }
func (l Length) Sub(m Length) Length    { return l - m }

func (l Length) String() string {
	return fmt.Sprintf("%.4fm", l.Metres())
}

///////////////////////////////////////////////////////////////////////////
// Duration

// Duration is a time interval in milliseconds.
type Duration int64

func Milliseconds(ms float64) Duration { return Duration(math.Round[int64](ms)) }
func Seconds(s float64) Duration       { return Duration(math.Round[int64](s * 1000)) }
func Minutes(m float64) Duration       { return Duration(math.Round[int64](m * 60 * 1000)) }
func Hours(h float64) Duration         { return Duration(math.Round[int64](h * 3600 * 1000)) }

// FromTimeDuration converts from a time.Duration, rounding to the nearest
// millisecond.
func FromTimeDuration(d time.Duration) Duration {
	return Duration(d.Round(time.Millisecond) / time.Millisecond)
}

func (d Duration) Milliseconds() float64 { return float64(d) }
func (d Duration) Seconds() float64      { return float64(d) / 1000 }
func (d Duration) Minutes() float64      { return float64(d) / (60 * 1000) }
func (d Duration) Hours() float64        { return float64(d) / (3600 * 1000) }

func (d Duration) TimeDuration() time.Duration {
	return time.Duration(d) * time.Millisecond
}

func (d Duration) Scale(s float64) Duration { return Duration(math.Round[int64](float64(d) * s)) }

func (d Duration) String() string {
	return d.TimeDuration().String()
}

///////////////////////////////////////////////////////////////////////////
// Speed

// Speed is in millimetres per hour.
type Speed int64

const (
	mmPerMetre         = 1000
	secondsPerHour     = 3600
	mmPerHourPerKnot   = 1852 * mmPerMetre
	mmPerHourPerMPH    = 1609344
	mmPerHourPerKMH    = 1000 * mmPerMetre
	mmPerHourPerMetreS = mmPerMetre * secondsPerHour
)

func MetresPerSecond(v float64) Speed   { return Speed(math.Round[int64](v * mmPerHourPerMetreS)) }
func KilometresPerHour(v float64) Speed { return Speed(math.Round[int64](v * mmPerHourPerKMH)) }
func Knots(v float64) Speed             { return Speed(math.Round[int64](v * mmPerHourPerKnot)) }
func MilesPerHour(v float64) Speed      { return Speed(math.Round[int64](v * mmPerHourPerMPH)) }

func (s Speed) MetresPerSecond() float64   { return float64(s) / mmPerHourPerMetreS }
func (s Speed) KilometresPerHour() float64 { return float64(s) / mmPerHourPerKMH }
func (s Speed) Knots() float64             { return float64(s) / mmPerHourPerKnot }
func (s Speed) MilesPerHour() float64      { return float64(s) / mmPerHourPerMPH }

func (s Speed) Scale(f float64) Speed { return Speed(math.Round[int64](float64(s) * f)) }

// Distance returns how far something travelling at s goes in d.
func (s Speed) Distance(d Duration) Length {
	// mm/h * ms = 1/3600000 mm; a Length is 1/10 mm.
	return Length(math.Round[int64](float64(s) * float64(d) / 360000))
}

func (s Speed) String() string {
	return fmt.Sprintf("%.1fkt", s.Knots())
}
