// unit/colour.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package unit

import (
	"errors"
	"fmt"
	gomath "math"
	"regexp"
	"strconv"
	"strings"

	"github.com/mmp/geoverlay/math"

	"github.com/lucasb-eyer/go-colorful"
)

var ErrInvalidHexColour = errors.New("invalid hex colour")

// Colour is a packed RGBA colour, laid out the way the rasterizer's
// vertex colour attribute expects it: red in the top byte, then green,
// then blue, and the alpha as an integer percentage [0,100] in the low
// byte.
type Colour uint32

var (
	Black = RGB(0, 0, 0)
	White = RGB(255, 255, 255)
)

func pack(r, g, b int, alpha float64) Colour {
	r, g, b = math.Clamp(r, 0, 255), math.Clamp(g, 0, 255), math.Clamp(b, 0, 255)
	a := math.Clamp(math.Round[int](alpha*100), 0, 100)
	return Colour(uint32(r)<<24 | uint32(g)<<16 | uint32(b)<<8 | uint32(a))
}

// RGB returns an opaque colour; channels are in [0,255] and are clamped.
func RGB(r, g, b int) Colour {
	return pack(r, g, b, 1)
}

// RGBA returns a colour with the given alpha in [0,1].
func RGBA(r, g, b int, alpha float64) Colour {
	return pack(r, g, b, alpha)
}

var reHexColour = regexp.MustCompile(`^#?([0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// Hex parses colours of the form #rgb, #rrggbb or #rrggbbaa (the leading
// '#' is optional).
func Hex(s string) (Colour, error) {
	return parseHex(s, nil)
}

// Hexa parses a #rgb or #rrggbb colour and gives it the specified alpha
// in [0,1]. An alpha byte in the string is overridden.
func Hexa(s string, alpha float64) (Colour, error) {
	return parseHex(s, &alpha)
}

func parseHex(s string, alpha *float64) (Colour, error) {
	m := reHexColour.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, fmt.Errorf("%q: %w", s, ErrInvalidHexColour)
	}
	digits := m[1]

	a := 1.
	if len(digits) == 8 {
		v, err := strconv.ParseUint(digits[6:], 16, 8)
		if err != nil {
			return 0, fmt.Errorf("%q: %w", s, ErrInvalidHexColour)
		}
		a = float64(v) / 255
		digits = digits[:6]
	}
	if alpha != nil {
		a = *alpha
	}

	c, err := colorful.Hex("#" + digits)
	if err != nil {
		return 0, fmt.Errorf("%q: %w: %v", s, ErrInvalidHexColour, err)
	}
	r, g, b := c.Clamped().RGB255()
	return pack(int(r), int(g), int(b), a), nil
}

// MustHex is like Hex but panics on malformed input; it's intended for
// colour constants.
func MustHex(s string) Colour {
	c, err := Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// HSL returns an opaque colour from hue in degrees and saturation and
// lightness in [0,1].
func HSL(h, s, l float64) Colour {
	return HSLA(h, s, l, 1)
}

func HSLA(h, s, l, alpha float64) Colour {
	if h = gomath.Mod(h, 360); h < 0 {
		h += 360
	} else if gomath.IsNaN(h) {
		h = 0
	}
	c := colorful.Hsl(h, math.Clamp(s, 0, 1), math.Clamp(l, 0, 1))
	r, g, b := c.Clamped().RGB255()
	return pack(int(r), int(g), int(b), alpha)
}

func (c Colour) redByte() uint8   { return uint8(c >> 24) }
func (c Colour) greenByte() uint8 { return uint8(c >> 16) }
func (c Colour) blueByte() uint8  { return uint8(c >> 8) }

// Red, Green, Blue and Alpha return the channels in [0,1].
func (c Colour) Red() float64   { return float64(c.redByte()) / 255 }
func (c Colour) Green() float64 { return float64(c.greenByte()) / 255 }
func (c Colour) Blue() float64  { return float64(c.blueByte()) / 255 }
func (c Colour) Alpha() float64 { return float64(c&0xff) / 100 }

// RGBA returns the packed value for the rasterizer.
func (c Colour) RGBA() uint32 {
	return uint32(c)
}

// Float32 returns the channels in [0,1].
func (c Colour) Float32() [4]float32 {
	return [4]float32{float32(c.Red()), float32(c.Green()), float32(c.Blue()), float32(c.Alpha())}
}

func (c Colour) String() string {
	return fmt.Sprintf("#%02x%02x%02x@%d%%", c.redByte(), c.greenByte(), c.blueByte(), uint8(c))
}

func (c *Colour) UnmarshalText(b []byte) error {
	v, err := Hex(string(b))
	if err == nil {
		*c = v
	}
	return err
}

func (c Colour) MarshalText() ([]byte, error) {
	a := math.Round[int](c.Alpha() * 255)
	return []byte(fmt.Sprintf("#%02x%02x%02x%02x", c.redByte(), c.greenByte(), c.blueByte(), a)), nil
}
