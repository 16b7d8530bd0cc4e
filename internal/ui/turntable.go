package ui

import (
	"image"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"karolbroda.com/platter/internal/artwork"
	"karolbroda.com/platter/internal/colors"
	"karolbroda.com/platter/internal/terminal"
)

const (
	plinthColor   = "#1E1A17"
	rimColor      = "#262626"
	strobeColor   = "#4A4A4A"
	matColor      = "#0A0A0A"
	vinylColor    = "#141414"
	grooveColor   = "#1F1F1F"
	sheenColor    = "#2E2E2E"
	noDiscColor   = "#D9534F"
	spindleColor  = "#D4D4D4"
	pivotColor    = "#9CA3AF"
	pivotInner    = "#1F2937"
	armColor      = "#E5E7EB"
	weightColor   = "#4B5563"
	headColor     = "#111111"
	needleColor   = "#EF4444"
	badgeColor    = "#CA8A04"
	badgeBg       = "#2A2108"
	acceptColor   = "#EAB308"
	idleBorder    = "#3F3A36"
	draggingColor = "#6B6258"
	lampOn        = "#4ADE80"
	lampOff       = "#EF4444"

	strobeDots = 24
	sleeveCols = 6
)

func (m Model) renderDeck(l Layout, palette *artwork.Palette) string {
	var lines []string
	lines = append(lines, m.renderDisplay(l, palette)...)
	lines = append(lines, "")
	lines = append(lines, m.renderTurntable(l)...)
	lines = append(lines, "")
	lines = append(lines, m.renderControls(l))

	border := idleBorder
	if m.drag != nil {
		border = draggingColor
		if m.drag.over {
			border = acceptColor
		}
	} else if m.focus == focusDeck {
		border = palette.Primary
	}

	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(border)).
		Padding(0, 1).
		Width(max(l.Deck.W-2, 0)).
		Height(max(l.Deck.H-2, 0)).
		MaxHeight(max(l.Deck.H, 0))

	return style.Render(strings.Join(lines, "\n"))
}

func (m Model) displayText() string {
	loaded := m.station.Loaded
	if loaded == nil {
		return "NO DISC"
	}
	if m.station.Playing {
		return "NOW PLAYING: " + loaded.Label()
	}
	return "PAUSED: " + loaded.Label()
}

// renderDisplay is the lcd strip: the sleeve of the loaded record on the
// left, the marquee filling the rest.
func (m Model) renderDisplay(l Layout, palette *artwork.Palette) []string {
	if l.LCD.W <= 0 {
		return make([]string, lcdRows)
	}

	var sleeve string
	if m.station.Loaded != nil {
		sleeve = m.station.Loaded.ArtworkURL
	}
	thumb := m.thumbs[sleeve]
	if thumb == nil || l.LCD.W < sleeveCols*3 {
		return renderLCD(m.displayText(), l.LCD.W, m.anim.Marquee, palette.Gradient)
	}

	marquee := renderLCD(m.displayText(), l.LCD.W-sleeveCols-1, m.anim.Marquee, palette.Gradient)

	var art []string
	if m.termCaps != nil && m.termCaps.SupportsKittyGraphics {
		if seq := terminal.EncodeImageForKitty(m.art[sleeve].Image, sleeveCols, lcdRows); seq != "" {
			art = make([]string, lcdRows)
			for i := range art {
				art[i] = strings.Repeat(" ", sleeveCols)
			}
			art[0] = seq + art[0]
		}
	}
	if art == nil {
		canvas := artwork.NewCanvas(sleeveCols, lcdRows)
		canvas.Blit(thumb, 0, 0, sleeveCols, lcdRows*2)
		art = canvas.Render()
	}

	lines := make([]string, lcdRows)
	for i := range lines {
		lines[i] = art[i] + " " + marquee[i]
	}
	return lines
}

func (m Model) renderTurntable(l Layout) []string {
	c := artwork.NewCanvas(l.Canvas.W, l.Canvas.H)
	plinth := artwork.Hex(plinthColor)
	for y := 0; y < c.Height; y++ {
		for x := 0; x < c.Width; x++ {
			c.Set(x, y, plinth)
		}
	}
	if l.Radius == 0 {
		return c.Render()
	}

	cx, cy, r := l.CenterX, l.CenterY, l.Radius

	c.FillCircle(cx, cy, r, artwork.Hex(rimColor))
	strobe := artwork.Hex(strobeColor)
	for k := 0; k < strobeDots; k++ {
		a := (m.anim.Strobe + float64(k)*360/strobeDots) * math.Pi / 180
		c.Set(int(cx+(r-0.8)*math.Cos(a)), int(cy+(r-0.8)*math.Sin(a)), strobe)
	}
	c.FillCircle(cx, cy, r*0.9, artwork.Hex(matColor))

	if loaded := m.station.Loaded; loaded != nil {
		drawRecord(c, cx, cy, r*0.86, m.anim.Spin, m.thumbs[loaded.ArtworkURL], m.Palette().Primary)
	} else {
		c.FillCircle(cx, cy, r*0.3, artwork.Hex(noDiscColor))
	}

	c.FillCircle(cx, cy, math.Max(1, r*0.05), artwork.Hex(spindleColor))

	drawTonearm(c, l, m.anim.ArmAngle())

	return c.Render()
}

// drawRecord paints a spinning record. The sheen line and the label turn
// with angle so rotation shows even without artwork.
func drawRecord(c *artwork.Canvas, cx float64, cy float64, r float64, angle float64, label image.Image, fallback string) {
	c.FillCircle(cx, cy, r, artwork.Hex(vinylColor))

	groove := artwork.Hex(grooveColor)
	for _, f := range []float64{0.92, 0.8, 0.68, 0.56} {
		c.Ring(cx, cy, r*f-0.5, r*f, groove)
	}

	a := angle * math.Pi / 180
	sheen := artwork.Hex(sheenColor)
	c.Line(cx+r*0.5*math.Cos(a), cy+r*0.5*math.Sin(a), cx+r*0.9*math.Cos(a), cy+r*0.9*math.Sin(a), 1, sheen)

	labelR := r * 0.42
	if label != nil {
		c.Label(label, cx, cy, labelR, angle)
		return
	}

	c.FillCircle(cx, cy, labelR, artwork.Hex(fallback))
	// a darker notch on the plain label
	notch := artwork.Hex(colors.AdjustBrightness(fallback, 0.5))
	c.FillCircle(cx+labelR*0.6*math.Cos(a), cy+labelR*0.6*math.Sin(a), math.Max(0.8, labelR*0.2), notch)
}

// drawTonearm swings the arm clockwise from straight down by angle degrees.
func drawTonearm(c *artwork.Canvas, l Layout, angle float64) {
	px, py := l.PivotX, l.PivotY
	a := angle * math.Pi / 180
	sin, cos := math.Sin(a), math.Cos(a)

	c.Line(px, py, px+3*sin, py-3*cos, 3, artwork.Hex(weightColor))

	ex, ey := px-l.ArmLen*sin, py+l.ArmLen*cos
	c.Line(px, py, ex, ey, 1.4, artwork.Hex(armColor))

	head := a + 15*math.Pi/180
	hx, hy := ex-3*math.Sin(head), ey+3*math.Cos(head)
	c.Line(ex, ey, hx, hy, 2, artwork.Hex(headColor))
	c.Set(int(hx), int(hy), artwork.Hex(needleColor))

	c.FillCircle(px, py, 3.5, artwork.Hex(pivotColor))
	c.FillCircle(px, py, 2.2, artwork.Hex(pivotInner))
}

func (m Model) renderControls(l Layout) string {
	width := l.Controls.W
	if width <= 0 {
		return ""
	}

	lamp := lampOff
	if m.station.Playing {
		lamp = colors.Glow(lampOn, 0.4)
	}
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color(draggingColor))
	power := dim.Render("( ") +
		lipgloss.NewStyle().Foreground(lipgloss.Color(lamp)).Render("●") +
		dim.Render(" POWER )")

	badge := lipgloss.NewStyle().
		Foreground(lipgloss.Color(badgeColor)).
		Background(lipgloss.Color(badgeBg)).
		Bold(true).
		Render(" RETROAUDIO ")
	speed := dim.Render("33 ") + lipgloss.NewStyle().Foreground(lipgloss.Color(armColor)).Render("▮") + dim.Render(" 45")

	for _, left := range []string{badge + "  " + speed, badge, ""} {
		gap := width - lipgloss.Width(left) - powerCols
		if gap >= 1 {
			return left + strings.Repeat(" ", gap) + power
		}
	}
	return ansi.Truncate(power, width, "")
}
