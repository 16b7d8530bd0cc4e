package artwork

import (
	"image"
	"math"
	"sort"

	"github.com/EdlinOrg/prominentcolor"
	"github.com/lucasb-eyer/go-colorful"

	"karolbroda.com/platter/internal/colors"
)

const gradientSteps = 20

type Palette struct {
	Primary   string
	Secondary string
	Accent    string
	Dim       string
	Gradient  []string
}

func DefaultPalette() *Palette {
	return &Palette{
		Primary:   "#E8B04A",
		Secondary: "#C8563A",
		Accent:    "#7FB8A4",
		Dim:       "#6B6258",
		Gradient:  colors.GenerateGradient("#E8B04A", "#C8563A", gradientSteps),
	}
}

type swatch struct {
	color colorful.Color
	sat   float64
	value float64
	score float64
}

// ExtractPalette picks three lively colors out of a sleeve. Muddy or
// near-black sleeves fall back to the default palette.
func ExtractPalette(img image.Image) *Palette {
	if img == nil {
		return DefaultPalette()
	}

	items, err := prominentcolor.KmeansWithAll(5, img, prominentcolor.ArgumentDefault, prominentcolor.DefaultSize, nil)
	if err != nil || len(items) < 3 {
		return DefaultPalette()
	}

	swatches := make([]swatch, 0, len(items))
	for _, item := range items {
		c := colorful.Color{
			R: float64(item.Color.R) / 255,
			G: float64(item.Color.G) / 255,
			B: float64(item.Color.B) / 255,
		}
		_, s, v := c.Hsv()
		swatches = append(swatches, swatch{
			color: c,
			sat:   s,
			value: v,
			score: s * (1 - math.Abs(v-0.6)),
		})
	}

	primary, ok := pick(swatches, 0.2, 0.3, true)
	if !ok {
		return DefaultPalette()
	}
	secondary, ok := pick(without(swatches, primary), 0.15, 0.3, false)
	if !ok {
		secondary = swatch{color: colors.Parse(colors.ShiftHue(primary.color.Hex(), 40)), value: primary.value}
	}
	accent, ok := pick(without(without(swatches, primary), secondary), 0.1, 0.25, false)
	if !ok {
		accent = swatch{color: colors.Parse(colors.ShiftHue(primary.color.Hex(), -60)), value: primary.value}
	}

	// brightest leads, darkest trails
	ranked := []swatch{primary, secondary, accent}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].value > ranked[j].value })

	p := boost(ranked[0])
	s := boost(ranked[2])
	a := boost(ranked[1])

	start, end := smoothestPair(p, s, a)

	return &Palette{
		Primary:   p,
		Secondary: s,
		Accent:    a,
		Dim:       colors.Desaturate(colors.AdjustBrightness(p, 0.55), 0.6),
		Gradient:  colors.GenerateGradient(start, end, gradientSteps),
	}
}

// pick returns the first swatch above the thresholds, or the best scoring
// one when best is set.
func pick(swatches []swatch, minSat float64, minValue float64, best bool) (swatch, bool) {
	var (
		chosen swatch
		found  bool
	)
	for _, sw := range swatches {
		if sw.sat <= minSat || sw.value <= minValue {
			continue
		}
		if !best {
			return sw, true
		}
		if !found || sw.score > chosen.score {
			chosen = sw
			found = true
		}
	}
	return chosen, found
}

func without(swatches []swatch, drop swatch) []swatch {
	out := make([]swatch, 0, len(swatches))
	for _, sw := range swatches {
		if sw.color != drop.color {
			out = append(out, sw)
		}
	}
	return out
}

// boost lifts dark swatches and calms blown-out ones so they read on a
// dark terminal.
func boost(sw swatch) string {
	h, s, v := sw.color.Hsv()
	switch {
	case v < 0.4 && v > 0:
		v = math.Min(v*math.Min(0.4/v, 2.5), 1)
	case v > 0.85:
		s *= 0.7
	}
	return colorful.Hsv(h, s, v).Clamped().Hex()
}

func smoothestPair(primary string, secondary string, accent string) (string, string) {
	pairs := [][2]string{
		{primary, secondary},
		{primary, accent},
		{secondary, primary},
		{secondary, accent},
		{accent, primary},
		{accent, secondary},
	}

	best := 0
	bestScore := math.Inf(1)
	for i, pair := range pairs {
		score := colors.Smoothness(pair[0], pair[1], gradientSteps)
		// nearly as smooth and starting brighter wins
		if score < bestScore-5 || (score < bestScore+5 && colors.Lightness(pair[0]) > colors.Lightness(pairs[best][0])) {
			best = i
			bestScore = math.Min(score, bestScore)
		}
	}
	return pairs[best][0], pairs[best][1]
}
