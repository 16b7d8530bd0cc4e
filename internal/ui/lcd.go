package ui

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"karolbroda.com/platter/internal/artwork"
)

const (
	glyphWidth   = 3
	glyphHeight  = 5
	glyphAdvance = glyphWidth + 1
	marqueeGap   = 12

	lcdBackground = "#07140C"
	lcdUnlit      = "#0E2616"
	lcdLit        = "#4ADE80"
)

// 3x5 dot matrix glyphs, one row per entry, high bit on the left.
var lcdFont = map[rune][glyphHeight]uint8{
	'A': {0b010, 0b101, 0b111, 0b101, 0b101},
	'B': {0b110, 0b101, 0b110, 0b101, 0b110},
	'C': {0b011, 0b100, 0b100, 0b100, 0b011},
	'D': {0b110, 0b101, 0b101, 0b101, 0b110},
	'E': {0b111, 0b100, 0b110, 0b100, 0b111},
	'F': {0b111, 0b100, 0b110, 0b100, 0b100},
	'G': {0b011, 0b100, 0b101, 0b101, 0b011},
	'H': {0b101, 0b101, 0b111, 0b101, 0b101},
	'I': {0b111, 0b010, 0b010, 0b010, 0b111},
	'J': {0b001, 0b001, 0b001, 0b101, 0b010},
	'K': {0b101, 0b101, 0b110, 0b101, 0b101},
	'L': {0b100, 0b100, 0b100, 0b100, 0b111},
	'M': {0b101, 0b111, 0b111, 0b101, 0b101},
	'N': {0b110, 0b101, 0b101, 0b101, 0b101},
	'O': {0b010, 0b101, 0b101, 0b101, 0b010},
	'P': {0b110, 0b101, 0b110, 0b100, 0b100},
	'Q': {0b010, 0b101, 0b101, 0b110, 0b011},
	'R': {0b110, 0b101, 0b110, 0b101, 0b101},
	'S': {0b011, 0b100, 0b010, 0b001, 0b110},
	'T': {0b111, 0b010, 0b010, 0b010, 0b010},
	'U': {0b101, 0b101, 0b101, 0b101, 0b111},
	'V': {0b101, 0b101, 0b101, 0b101, 0b010},
	'W': {0b101, 0b101, 0b111, 0b111, 0b101},
	'X': {0b101, 0b101, 0b010, 0b101, 0b101},
	'Y': {0b101, 0b101, 0b010, 0b010, 0b010},
	'Z': {0b111, 0b001, 0b010, 0b100, 0b111},

	'0': {0b111, 0b101, 0b101, 0b101, 0b111},
	'1': {0b010, 0b110, 0b010, 0b010, 0b111},
	'2': {0b110, 0b001, 0b010, 0b100, 0b111},
	'3': {0b110, 0b001, 0b010, 0b001, 0b110},
	'4': {0b101, 0b101, 0b111, 0b001, 0b001},
	'5': {0b111, 0b100, 0b110, 0b001, 0b110},
	'6': {0b011, 0b100, 0b111, 0b101, 0b111},
	'7': {0b111, 0b001, 0b010, 0b010, 0b010},
	'8': {0b111, 0b101, 0b111, 0b101, 0b111},
	'9': {0b111, 0b101, 0b111, 0b001, 0b110},

	' ':  {},
	'-':  {0b000, 0b000, 0b111, 0b000, 0b000},
	':':  {0b000, 0b010, 0b000, 0b010, 0b000},
	'.':  {0b000, 0b000, 0b000, 0b000, 0b010},
	',':  {0b000, 0b000, 0b000, 0b010, 0b100},
	'\'': {0b010, 0b010, 0b000, 0b000, 0b000},
	'!':  {0b010, 0b010, 0b010, 0b000, 0b010},
	'?':  {0b110, 0b001, 0b010, 0b000, 0b010},
	'&':  {0b010, 0b101, 0b010, 0b101, 0b011},
	'/':  {0b001, 0b001, 0b010, 0b100, 0b100},
	'(':  {0b001, 0b010, 0b010, 0b010, 0b001},
	')':  {0b100, 0b010, 0b010, 0b010, 0b100},
	'+':  {0b000, 0b010, 0b111, 0b010, 0b000},
	'#':  {0b101, 0b111, 0b101, 0b111, 0b101},
}

var foldAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// lcdText folds text into the glyph set: accents dropped, upper case,
// anything else shown as '?'.
func lcdText(text string) []rune {
	folded, _, err := transform.String(foldAccents, text)
	if err != nil {
		folded = text
	}
	folded = strings.ToUpper(strings.ReplaceAll(folded, "–", "-"))

	out := make([]rune, 0, len(folded))
	for _, r := range folded {
		if _, ok := lcdFont[r]; ok {
			out = append(out, r)
		} else {
			out = append(out, '?')
		}
	}
	return out
}

func lcdPixelWidth(text []rune) int {
	if len(text) == 0 {
		return 0
	}
	return len(text)*glyphAdvance - 1
}

// renderLCD draws text across a cols by lcdRows display. Text wider than
// the display scrolls by offset pixels and wraps round.
func renderLCD(text string, cols int, offset float64, gradient []string) []string {
	canvas := artwork.NewCanvas(cols, lcdRows)
	bg := artwork.Hex(lcdBackground)
	unlit := artwork.Hex(lcdUnlit)

	for y := 0; y < canvas.Height; y++ {
		for x := 0; x < canvas.Width; x++ {
			if y >= 1 && y <= glyphHeight && x%2 == 0 {
				canvas.Set(x, y, unlit)
			} else {
				canvas.Set(x, y, bg)
			}
		}
	}

	glyphs := lcdText(text)
	textW := lcdPixelWidth(glyphs)
	if textW == 0 || cols <= 0 {
		return canvas.Render()
	}

	if textW <= cols {
		drawGlyphs(canvas, glyphs, (cols-textW)/2, gradient)
		return canvas.Render()
	}

	period := textW + marqueeGap
	shift := int(offset) % period
	drawGlyphs(canvas, glyphs, -shift, gradient)
	drawGlyphs(canvas, glyphs, period-shift, gradient)

	return canvas.Render()
}

func drawGlyphs(canvas *artwork.Canvas, glyphs []rune, x0 int, gradient []string) {
	lit := artwork.Hex(lcdLit)
	for i, r := range glyphs {
		gx := x0 + i*glyphAdvance
		if gx+glyphWidth < 0 || gx >= canvas.Width {
			continue
		}
		glyph := lcdFont[r]
		for row := 0; row < glyphHeight; row++ {
			for col := 0; col < glyphWidth; col++ {
				if glyph[row]&(1<<(glyphWidth-1-col)) == 0 {
					continue
				}
				x := gx + col
				c := lit
				if len(gradient) > 0 && canvas.Width > 0 && x >= 0 {
					c = artwork.Hex(gradient[min(x*len(gradient)/canvas.Width, len(gradient)-1)])
				}
				canvas.Set(x, row+1, c)
			}
		}
	}
}
