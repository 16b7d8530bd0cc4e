// Package colors holds the palette math behind the turntable's lamps,
// gradients and record labels. Hex strings are the currency because that
// is what lipgloss takes.
package colors

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

const fallbackHex = "#FFFFFF"

// Parse reads a "#rrggbb" string, falling back to white.
func Parse(hex string) colorful.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		c, _ = colorful.Hex(fallbackHex)
	}
	return c
}

// GenerateGradient interpolates in HCL so the midpoints keep their
// saturation instead of going muddy.
func GenerateGradient(startHex string, endHex string, steps int) []string {
	if steps <= 0 {
		return nil
	}
	if steps == 1 {
		return []string{startHex}
	}

	start, end := Parse(startHex), Parse(endHex)
	out := make([]string, steps)
	for i := range out {
		t := smoothStep(float64(i) / float64(steps-1))
		out[i] = start.BlendHcl(end, t).Clamped().Hex()
	}
	out[0], out[steps-1] = start.Hex(), end.Hex()
	return out
}

// GenerateMultiGradient spreads steps across consecutive stops.
func GenerateMultiGradient(stops []string, steps int) []string {
	switch {
	case len(stops) == 0 || steps <= 0:
		return nil
	case len(stops) == 1:
		out := make([]string, steps)
		for i := range out {
			out[i] = stops[0]
		}
		return out
	}

	out := make([]string, steps)
	segments := float64(len(stops) - 1)
	for i := range out {
		pos := 0.0
		if steps > 1 {
			pos = float64(i) / float64(steps-1) * segments
		}
		seg := int(pos)
		if seg >= len(stops)-1 {
			seg = len(stops) - 2
		}
		out[i] = BlendColors(stops[seg], stops[seg+1], pos-float64(seg))
	}
	return out
}

// Smoothness is the largest perceptual jump between neighbouring steps of
// a gradient. Lower is smoother.
func Smoothness(startHex string, endHex string, steps int) float64 {
	grad := GenerateGradient(startHex, endHex, steps)
	worst := 0.0
	for i := 1; i < len(grad); i++ {
		d := Parse(grad[i-1]).DistanceCIEDE2000(Parse(grad[i]))
		worst = math.Max(worst, d)
	}
	return worst
}

func Lightness(hex string) float64 {
	l, _, _ := Parse(hex).Lab()
	return l
}

func BlendColors(hex1 string, hex2 string, t float64) string {
	t = math.Max(0, math.Min(1, t))
	return Parse(hex1).BlendLab(Parse(hex2), t).Clamped().Hex()
}

// AdjustBrightness scales HSL lightness; factor 1 is a no-op.
func AdjustBrightness(hex string, factor float64) string {
	h, s, l := Parse(hex).Hsl()
	l = math.Max(0, math.Min(1, l*factor))
	return colorful.Hsl(h, s, l).Clamped().Hex()
}

func Desaturate(hex string, amount float64) string {
	h, s, l := Parse(hex).Hsl()
	s = math.Max(0, s*(1-amount))
	return colorful.Hsl(h, s, l).Clamped().Hex()
}

func ShiftHue(hex string, degrees float64) string {
	h, c, l := Parse(hex).Hcl()
	h = math.Mod(h+degrees+360, 360)
	return colorful.Hcl(h, c, l).Clamped().Hex()
}

// Glow blends towards white, used for the lit power lamp.
func Glow(hex string, intensity float64) string {
	return BlendColors(hex, fallbackHex, intensity*0.5)
}

func smoothStep(t float64) float64 {
	return t * t * (3 - 2*t)
}

// RenderGradientText colors each rune of text along gradient.
func RenderGradientText(text string, gradient []string, bold bool) string {
	if text == "" {
		return ""
	}
	if len(gradient) == 0 {
		return text
	}

	runes := []rune(text)
	var b strings.Builder
	for i, r := range runes {
		idx := 0
		if len(runes) > 1 {
			idx = i * (len(gradient) - 1) / (len(runes) - 1)
		}
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(gradient[idx]))
		if bold {
			style = style.Bold(true)
		}
		b.WriteString(style.Render(string(r)))
	}
	return b.String()
}
