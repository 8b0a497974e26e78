// unit/angle.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package unit provides the fixed-resolution scalar types used to
// declare overlays: angles, lengths, durations, speeds and colours. Each
// is an integer in its base unit so that values compare and hash exactly;
// constructors round to that resolution.
package unit

import (
	"fmt"
	gomath "math"

	"github.com/mmp/geoverlay/math"
)

// Angle is an angle in thousandths of a degree.
type Angle int64

const (
	Millidegree Angle = 1
	Degree            = 1000 * Millidegree
)

func Degrees(d float64) Angle {
	return Angle(math.Round[int64](d * float64(Degree)))
}

func Radians(r float64) Angle {
	return Degrees(math.Degrees(r))
}

// Atan2 returns the angle of the vector (x, y) measured from the x axis.
func Atan2(y, x float64) Angle {
	return Radians(gomath.Atan2(y, x))
}

func (a Angle) Degrees() float64 {
	return float64(a) / float64(Degree)
}

func (a Angle) Radians() float64 {
	return math.Radians(a.Degrees())
}

func (a Angle) Cos() float64 {
	return gomath.Cos(a.Radians())
}

func (a Angle) Sin() float64 {
	return gomath.Sin(a.Radians())
}

func (a Angle) Add(b Angle) Angle { return a + b }
func (a Angle) Sub(b Angle) Angle { return a - b }
func (a Angle) Negate() Angle     { return -a }

// Normalized returns the equivalent angle in [0, 360) degrees.
func (a Angle) Normalized() Angle {
	const full = 360 * Degree
	a %= full
	if a < 0 {
		a += full
	}
	return a
}

func (a Angle) String() string {
	return fmt.Sprintf("%.3f°", a.Degrees())
}
