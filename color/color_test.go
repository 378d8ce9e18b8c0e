package color_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FeepingCreature/cssmx/color"
)

func TestParse(t *testing.T) {
	var tests = []struct {
		in  string
		out string
	}{
		{in: "#000000", out: "#000000"},
		{in: "#FF8800", out: "#ff8800"},
		{in: "#abc", out: "#aabbcc"},
		{in: "#11223344", out: "#11223344"},
		{in: "  #fff  ", out: "#ffffff"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			c, err := color.Parse(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.out, c.String())
		})
	}
}

func TestParse_Errors(t *testing.T) {
	var tests = []struct {
		in  string
		err error
	}{
		{in: "red", err: color.ErrUnsupportedColorFormat},
		{in: "rgb(1, 2, 3)", err: color.ErrUnsupportedColorFormat},
		{in: "hsl(0, 50%, 50%)", err: color.ErrUnsupportedColorFormat},
		{in: "#12345", err: color.ErrUnsupportedColorFormat},
		{in: "#gg0000", err: color.ErrInvalidHexDigit},
		{in: "#12345z", err: color.ErrInvalidHexDigit},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			_, err := color.Parse(tt.in)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestParseAmount(t *testing.T) {
	var tests = []struct {
		in  string
		out float64
	}{
		{in: "0.25", out: 0.25},
		{in: "50%", out: 0.5},
		{in: "100%", out: 1},
		{in: "-10%", out: -0.1},
		{in: " 2 ", out: 2},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			v, err := color.ParseAmount(tt.in)
			require.NoError(t, err)
			assert.InDelta(t, tt.out, v, 1e-9)
		})
	}

	_, err := color.ParseAmount("lots")
	assert.Error(t, err)
}

// Lightening black and darkening white by half meet at the same mid gray.
func TestLightnessSymmetry(t *testing.T) {
	black, err := color.Parse("#000000")
	require.NoError(t, err)
	white, err := color.Parse("#ffffff")
	require.NoError(t, err)

	assert.Equal(t, "#808080", black.Lighten(0.5).String())
	assert.Equal(t, "#808080", white.Darken(0.5).String())
}

func TestLighten_Clamps(t *testing.T) {
	white, err := color.Parse("#ffffff")
	require.NoError(t, err)
	assert.Equal(t, "#ffffff", white.Lighten(0.5).String())

	black, err := color.Parse("#000000")
	require.NoError(t, err)
	assert.Equal(t, "#000000", black.Darken(0.5).String())
}

func TestDesaturate(t *testing.T) {
	red, err := color.Parse("#ff0000")
	require.NoError(t, err)
	assert.Equal(t, "#808080", red.Desaturate(1).String())
}

func TestRotateHue(t *testing.T) {
	red, err := color.Parse("#ff0000")
	require.NoError(t, err)

	// Half a turn from red is cyan; a full turn is a no-op.
	assert.Equal(t, "#00ffff", red.RotateHue(0.5).String())
	assert.Equal(t, "#ff0000", red.RotateHue(1).String())
	assert.Equal(t, "#00ffff", red.RotateHue(-0.5).String())
}

// An eight-digit literal keeps its alpha byte through a transform.
func TestAlphaPreserved(t *testing.T) {
	c, err := color.Parse("#00000080")
	require.NoError(t, err)
	assert.Equal(t, "#80808080", c.Lighten(0.5).String())
}
