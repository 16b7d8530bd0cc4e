package ui

import (
	"image"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"karolbroda.com/platter/internal/artwork"
	"karolbroda.com/platter/internal/colors"
	"karolbroda.com/platter/internal/track"
)

const (
	placeholderText = "Search for your favorite artists to find some records..."
	hintText        = "drag records to the player..."
	loadingText     = "Digging..."
	captionLength   = 20

	tokenVinyl  = "#111111"
	tokenGroove = "#222222"
	hintColor   = "#8C735A"
)

func (m Model) renderCrate(l Layout, palette *artwork.Palette) string {
	rows := make([]string, l.Crate.H)
	put := func(y int, line string) {
		if y >= 0 && y < len(rows) {
			rows[y] = ansi.Truncate(line, max(l.Crate.W-2, 0), "")
		}
	}

	for i, line := range m.renderBanner(l, palette) {
		put(l.Banner.Y+i, line)
	}
	for i, line := range m.renderSearchBox(l, palette) {
		put(l.Search.Y+i, line)
	}
	put(l.Hint.Y, m.renderHint())

	switch {
	case m.crate.ShowLoading():
		put(l.Grid.Y, lipgloss.NewStyle().Foreground(lipgloss.Color(palette.Accent)).Render(m.spinner.View()+" "+loadingText))
	case m.crate.ShowPlaceholder():
		text := lipgloss.NewStyle().
			Foreground(lipgloss.Color(palette.Dim)).
			Italic(true).
			Width(max(l.Grid.W, 10)).
			Render(placeholderText)
		for i, line := range strings.Split(text, "\n") {
			put(l.Grid.Y+1+i, line)
		}
	default:
		for i, line := range m.renderTokens(l, palette) {
			put(l.Grid.Y+i, line)
		}
	}

	for i := range rows {
		rows[i] = "  " + rows[i]
	}
	return strings.Join(rows, "\n")
}

func (m Model) renderBanner(l Layout, palette *artwork.Palette) []string {
	if l.Banner.H > 1 {
		lines := make([]string, 0, len(m.banner))
		for _, line := range m.banner {
			lines = append(lines, colors.RenderGradientText(line, palette.Gradient, true))
		}
		return lines
	}
	return []string{colors.RenderGradientText("CRATES", palette.Gradient, true)}
}

func (m Model) renderSearchBox(l Layout, palette *artwork.Palette) []string {
	if l.Search.W < 8 {
		return nil
	}

	border := palette.Dim
	if m.focus == focusSearch {
		border = palette.Primary
	}

	button := lipgloss.NewStyle().Foreground(lipgloss.Color(palette.Secondary)).Bold(true).Render("FIND")
	if m.crate.ShowLoading() {
		button = lipgloss.NewStyle().Foreground(lipgloss.Color(palette.Dim)).Render(loadingText)
	}

	inner := l.Search.W - 4
	input := ansi.Truncate(m.input.View(), max(inner-lipgloss.Width(button)-1, 0), "")
	gap := max(inner-lipgloss.Width(input)-lipgloss.Width(button), 1)
	content := ansi.Truncate(input+strings.Repeat(" ", gap)+button, inner, "")

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(border)).
		Padding(0, 1).
		Width(l.Search.W - 2).
		Render(content)

	return strings.Split(box, "\n")
}

func (m Model) renderHint() string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(hintColor)).Italic(true)
	if m.drag == nil {
		return style.Render(hintText)
	}

	name := ""
	if trk, ok := m.crate.At(m.drag.index); ok {
		name = trk.Short(captionLength)
	}
	if m.drag.over {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(acceptColor)).Bold(true).Render("▶ release to play " + name)
	}
	return style.Render("▶ carrying " + name)
}

func (m Model) renderTokens(l Layout, palette *artwork.Palette) []string {
	cols := l.GridColumns()
	tokens := m.crate.Tokens()

	var lines []string
	for start := 0; start < len(tokens); start += cols {
		end := min(start+cols, len(tokens))
		var blocks []string
		for i := start; i < end; i++ {
			if l.Tokens[i].Empty() {
				continue
			}
			blocks = append(blocks, m.renderToken(i, tokens[i], palette))
		}
		if len(blocks) == 0 {
			break
		}
		row := lipgloss.JoinHorizontal(lipgloss.Top, blocks...)
		lines = append(lines, strings.Split(row, "\n")...)
		lines = append(lines, "")
	}
	return lines
}

func (m Model) renderToken(i int, trk track.Track, palette *artwork.Palette) string {
	scale := m.anim.TokenScale(i)
	canvas := artwork.NewCanvas(tokenDiscCols, tokenDiscRows)

	selected := m.focus == focusCrate && i == m.selected
	carried := m.drag != nil && m.drag.index == i

	if scale > 0.05 {
		cx, cy := float64(tokenDiscCols)/2, float64(tokenDiscRows)
		r := (float64(tokenDiscCols)/2 - 0.4) * scale

		if selected {
			canvas.FillCircle(cx, cy, r+0.6, artwork.Hex(palette.Accent))
		}
		vinyl := tokenVinyl
		if carried {
			vinyl = draggingColor
		}
		canvas.FillCircle(cx, cy, r, artwork.Hex(vinyl))
		canvas.Ring(cx, cy, r*0.7-0.5, r*0.7, artwork.Hex(tokenGroove))

		drawTokenLabel(canvas, cx, cy, r*0.5, tilt(trk.ID), m.thumbs[trk.ArtworkURL], labelColor(trk.ID, palette))
		canvas.Set(int(cx), int(cy), artwork.Hex(matColor))
	}

	disc := canvas.Render()
	for j := range disc {
		disc[j] = " " + disc[j] + " "
	}

	captionStyle := lipgloss.NewStyle().Width(tokenCols).Align(lipgloss.Center).Foreground(lipgloss.Color(palette.Dim))
	if selected {
		captionStyle = captionStyle.Foreground(lipgloss.Color(palette.Primary)).Bold(true)
	}
	label := captionStyle.Render(ansi.Truncate(caption(trk), tokenCols-1, "…"))

	return strings.Join(append(disc, label), "\n")
}

func drawTokenLabel(c *artwork.Canvas, cx float64, cy float64, r float64, angle float64, thumb image.Image, fallback string) {
	if thumb != nil {
		c.Label(thumb, cx, cy, r, angle)
		return
	}
	c.FillCircle(cx, cy, r, artwork.Hex(fallback))
}

// caption is the first twenty characters of the name, always followed by
// an ellipsis.
func caption(trk track.Track) string {
	runes := []rune(trk.Name)
	if len(runes) > captionLength {
		runes = runes[:captionLength]
	}
	return string(runes) + "..."
}

// tilt gives each record a stable lean between -20 and 20 degrees.
func tilt(id int64) float64 {
	h := (id*2654435761 + 7) % 41
	if h < 0 {
		h = -h
	}
	return float64(h) - 20
}

func labelColor(id int64, palette *artwork.Palette) string {
	shift := math.Mod(float64(id%360)*37, 360)
	return colors.ShiftHue(palette.Secondary, shift)
}
