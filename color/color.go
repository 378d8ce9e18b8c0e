// Package color parses hex CSS color literals and transforms them in HSL
// space.
package color

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

var (
	// ErrUnsupportedColorFormat is returned for color literals outside the
	// hex grammar. Named colors and rgb()/rgba()/hsl() are not implemented.
	ErrUnsupportedColorFormat = errors.New("color: unsupported color format")

	// ErrInvalidHexDigit is returned when a hex literal contains a
	// non-hexadecimal digit.
	ErrInvalidHexDigit = errors.New("color: invalid hex digit")
)

// Color is an RGB color with an optional alpha byte. A color parsed from an
// eight-digit literal keeps its alpha through transforms.
type Color struct {
	R, G, B  uint8
	A        uint8
	HasAlpha bool
}

// Parse parses a hex color literal: #RGB, #RRGGBB, or #RRGGBBAA.
func Parse(lit string) (Color, error) {
	s := strings.TrimSpace(lit)
	if !strings.HasPrefix(s, "#") {
		return Color{}, fmt.Errorf("%w: %q", ErrUnsupportedColorFormat, lit)
	}
	hex := s[1:]

	switch len(hex) {
	case 3:
		// Shorthand digits double up: #abc is #aabbcc.
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	case 6, 8:
	default:
		return Color{}, fmt.Errorf("%w: %q", ErrUnsupportedColorFormat, lit)
	}

	var parts [4]uint8
	for i := 0; i < len(hex)/2; i++ {
		v, err := strconv.ParseUint(hex[2*i:2*i+2], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("%w: %q", ErrInvalidHexDigit, lit)
		}
		parts[i] = uint8(v)
	}

	c := Color{R: parts[0], G: parts[1], B: parts[2]}
	if len(hex) == 8 {
		c.A = parts[3]
		c.HasAlpha = true
	}
	return c, nil
}

// ParseAmount parses a transform amount: a real number, or a percentage
// "N%" meaning N/100.
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	div := 1.0
	if strings.HasSuffix(s, "%") {
		s = strings.TrimSuffix(s, "%")
		div = 100.0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("color: invalid amount %q: %w", s, err)
	}
	return v / div, nil
}

// String serializes the color back to a hex literal.
func (c Color) String() string {
	if c.HasAlpha {
		return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
	}
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Lighten raises the HSL lightness by amount, clamped to [0, 1].
func (c Color) Lighten(amount float64) Color {
	h, s, l := c.hsl()
	return c.fromHSL(h, s, clamp01(l+amount))
}

// Darken lowers the HSL lightness by amount, clamped to [0, 1].
func (c Color) Darken(amount float64) Color {
	h, s, l := c.hsl()
	return c.fromHSL(h, s, clamp01(l-amount))
}

// Saturate raises the HSL saturation by amount, clamped to [0, 1].
func (c Color) Saturate(amount float64) Color {
	h, s, l := c.hsl()
	return c.fromHSL(h, clamp01(s+amount), l)
}

// Desaturate lowers the HSL saturation by amount, clamped to [0, 1].
func (c Color) Desaturate(amount float64) Color {
	h, s, l := c.hsl()
	return c.fromHSL(h, clamp01(s-amount), l)
}

// RotateHue rotates the hue by amount interpreted as a fraction of a full
// turn, so 0.25 (or "25%") rotates ninety degrees.
func (c Color) RotateHue(amount float64) Color {
	h, s, l := c.hsl()
	h = math.Mod(h+amount*360, 360)
	if h < 0 {
		h += 360
	}
	return c.fromHSL(h, s, l)
}

func (c Color) hsl() (h, s, l float64) {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Hsl()
}

// fromHSL builds a new color from HSL components, keeping the receiver's
// alpha.
func (c Color) fromHSL(h, s, l float64) Color {
	r, g, b := colorful.Hsl(h, s, l).Clamped().RGB255()
	return Color{R: r, G: g, B: b, A: c.A, HasAlpha: c.HasAlpha}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
