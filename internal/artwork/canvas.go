package artwork

import (
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/nfnt/resize"

	"karolbroda.com/platter/internal/colors"
)

// Canvas is a pixel buffer two pixels tall per terminal cell. Each cell
// is drawn as an upper half block with the top pixel as foreground and the
// bottom pixel as background, which keeps pixels roughly square.
type Canvas struct {
	Width  int
	Height int
	pixels []color.RGBA
}

func NewCanvas(cols int, rows int) *Canvas {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	return &Canvas{
		Width:  cols,
		Height: rows * 2,
		pixels: make([]color.RGBA, cols*rows*2),
	}
}

func Hex(hex string) color.RGBA {
	r, g, b := colors.Parse(hex).RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

func (c *Canvas) Set(x int, y int, col color.RGBA) {
	if x < 0 || y < 0 || x >= c.Width || y >= c.Height {
		return
	}
	c.pixels[y*c.Width+x] = col
}

func (c *Canvas) At(x int, y int) color.RGBA {
	if x < 0 || y < 0 || x >= c.Width || y >= c.Height {
		return color.RGBA{}
	}
	return c.pixels[y*c.Width+x]
}

// FillCircle fills every pixel whose centre lies within r of (cx, cy).
func (c *Canvas) FillCircle(cx float64, cy float64, r float64, col color.RGBA) {
	c.Ring(cx, cy, 0, r, col)
}

// Ring fills the annulus inner < d <= outer.
func (c *Canvas) Ring(cx float64, cy float64, inner float64, outer float64, col color.RGBA) {
	x0, x1 := int(math.Floor(cx-outer)), int(math.Ceil(cx+outer))
	y0, y1 := int(math.Floor(cy-outer)), int(math.Ceil(cy+outer))
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			d := math.Hypot(float64(x)+0.5-cx, float64(y)+0.5-cy)
			if d <= outer && (inner <= 0 || d > inner) {
				c.Set(x, y, col)
			}
		}
	}
}

// Line draws a segment of the given thickness in pixels.
func (c *Canvas) Line(x0 float64, y0 float64, x1 float64, y1 float64, thickness float64, col color.RGBA) {
	length := math.Hypot(x1-x0, y1-y0)
	steps := int(math.Ceil(length * 2))
	if steps < 1 {
		steps = 1
	}
	half := math.Max(thickness/2, 0.5)
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		c.FillCircle(x0+(x1-x0)*t, y0+(y1-y0)*t, half, col)
	}
}

// Label paints img into the circle of radius r at (cx, cy), rotated by
// angle degrees clockwise. img should already be square; see Thumbnail.
func (c *Canvas) Label(img image.Image, cx float64, cy float64, r float64, angle float64) {
	if img == nil || r <= 0 {
		return
	}
	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return
	}

	rad := angle * math.Pi / 180
	sin, cos := math.Sin(-rad), math.Cos(-rad)

	x0, x1 := int(math.Floor(cx-r)), int(math.Ceil(cx+r))
	y0, y1 := int(math.Floor(cy-r)), int(math.Ceil(cy+r))
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			dx := float64(x) + 0.5 - cx
			dy := float64(y) + 0.5 - cy
			if math.Hypot(dx, dy) > r {
				continue
			}
			// rotate back into sleeve space, then map [-r, r] onto the image
			sx := dx*cos - dy*sin
			sy := dx*sin + dy*cos
			u := (sx + r) / (2 * r)
			v := (sy + r) / (2 * r)
			px := bounds.Min.X + clampInt(int(u*float64(bounds.Dx())), 0, bounds.Dx()-1)
			py := bounds.Min.Y + clampInt(int(v*float64(bounds.Dy())), 0, bounds.Dy()-1)
			c.Set(x, y, rgba(img.At(px, py)))
		}
	}
}

// Blit scales img into the rectangle at (x, y) of size w by h pixels.
func (c *Canvas) Blit(img image.Image, x int, y int, w int, h int) {
	if img == nil || w <= 0 || h <= 0 {
		return
	}
	scaled := resize.Resize(uint(w), uint(h), img, resize.Lanczos3)
	b := scaled.Bounds()
	for py := 0; py < h && py < b.Dy(); py++ {
		for px := 0; px < w && px < b.Dx(); px++ {
			c.Set(x+px, y+py, rgba(scaled.At(b.Min.X+px, b.Min.Y+py)))
		}
	}
}

// Thumbnail shrinks a sleeve to a square of size pixels so Label does not
// sample a 600px image for every frame.
func Thumbnail(img image.Image, size int) image.Image {
	if img == nil || size <= 0 {
		return nil
	}
	return resize.Resize(uint(size), uint(size), img, resize.Bilinear)
}

// Render turns the canvas into one string per terminal row.
func (c *Canvas) Render() []string {
	rows := c.Height / 2
	lines := make([]string, rows)

	for row := 0; row < rows; row++ {
		var line strings.Builder
		for x := 0; x < c.Width; x++ {
			top := c.At(x, row*2)
			bottom := c.At(x, row*2+1)
			line.WriteString(cell(top, bottom))
		}
		lines[row] = line.String()
	}

	return lines
}

func cell(top color.RGBA, bottom color.RGBA) string {
	topOn, bottomOn := top.A >= 128, bottom.A >= 128
	switch {
	case !topOn && !bottomOn:
		return " "
	case topOn && !bottomOn:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(hexOf(top))).Render("▀")
	case !topOn && bottomOn:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(hexOf(bottom))).Render("▄")
	default:
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color(hexOf(top))).
			Background(lipgloss.Color(hexOf(bottom))).
			Render("▀")
	}
}

func rgba(c color.Color) color.RGBA {
	r, g, b, a := c.RGBA()
	return color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
}

func hexOf(c color.RGBA) string {
	const digits = "0123456789ABCDEF"
	return string([]byte{
		'#',
		digits[c.R>>4], digits[c.R&0x0F],
		digits[c.G>>4], digits[c.G&0x0F],
		digits[c.B>>4], digits[c.B&0x0F],
	})
}

func clampInt(val int, min int, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
