package ui

import "math"

const (
	helpRows    = 1
	lcdRows     = 3
	minDeckCols = 36
	maxDeckCols = 72
	minCrateCol = 18

	tokenCols     = 14
	tokenRows     = 8
	tokenDiscCols = 12
	tokenDiscRows = 6

	powerCols = 11
)

type Rect struct {
	X, Y, W, H int
}

func (r Rect) Contains(x int, y int) bool {
	return r.W > 0 && r.H > 0 && x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Layout places every interactive element in screen cells. The view draws
// from it and mouse handling hit-tests against it, so both always agree.
type Layout struct {
	Width  int
	Height int

	Deck     Rect
	LCD      Rect
	Canvas   Rect
	Controls Rect
	Platter  Rect
	Power    Rect

	// platter geometry in canvas pixels
	CenterX float64
	CenterY float64
	Radius  float64
	PivotX  float64
	PivotY  float64
	ArmLen  float64

	Crate  Rect
	Banner Rect
	Search Rect
	Hint   Rect
	Grid   Rect
	Tokens []Rect

	Help Rect
}

func computeLayout(width int, height int, bannerRows int, tokens int, showHelp bool) Layout {
	if width <= 0 {
		width = 80
	}
	if height <= 0 {
		height = 24
	}

	l := Layout{Width: width, Height: height}

	body := height
	if showHelp {
		body -= helpRows
		l.Help = Rect{X: 0, Y: body, W: width, H: helpRows}
	}

	deckW := width * 11 / 20
	deckW = max(deckW, min(minDeckCols, width))
	deckW = min(deckW, maxDeckCols)
	if width-deckW < minCrateCol && width >= minDeckCols+minCrateCol {
		deckW = width - minCrateCol
	}

	l.Deck = Rect{X: 0, Y: 0, W: deckW, H: body}

	// border and one column of padding on each side
	innerX, innerY := 2, 1
	innerW := max(deckW-4, 0)
	innerH := max(body-2, 0)

	l.LCD = Rect{X: innerX, Y: innerY, W: innerW, H: lcdRows}
	canvasY := innerY + lcdRows + 1
	controlsY := innerY + innerH - 1
	l.Canvas = Rect{X: innerX, Y: canvasY, W: innerW, H: max(controlsY-1-canvasY, 0)}
	l.Controls = Rect{X: innerX, Y: controlsY, W: innerW, H: 1}
	l.Power = Rect{X: innerX + innerW - powerCols, Y: controlsY, W: powerCols, H: 1}

	l.placePlatter()

	crateX := deckW
	crateW := width - deckW
	l.Crate = Rect{X: crateX, Y: 0, W: crateW, H: body}

	x0 := crateX + 2
	w := max(crateW-3, 0)
	l.Banner = Rect{X: x0, Y: 0, W: w, H: bannerRows}
	l.Search = Rect{X: x0, Y: l.Banner.Y + l.Banner.H + 1, W: w, H: 3}
	l.Hint = Rect{X: x0, Y: l.Search.Y + l.Search.H, W: w, H: 1}
	gridY := l.Hint.Y + 2
	l.Grid = Rect{X: x0, Y: gridY, W: w, H: max(body-gridY, 0)}

	l.Tokens = make([]Rect, tokens)
	cols := max(w/tokenCols, 1)
	for i := range l.Tokens {
		r := Rect{
			X: l.Grid.X + (i%cols)*tokenCols,
			Y: l.Grid.Y + (i/cols)*tokenRows,
			W: tokenCols,
			H: tokenRows - 1,
		}
		// tokens that do not fit are neither drawn nor hittable
		if r.X+r.W <= l.Grid.X+l.Grid.W && r.Y+r.H <= l.Grid.Y+l.Grid.H {
			l.Tokens[i] = r
		}
	}

	return l
}

func (l *Layout) placePlatter() {
	pxW := float64(l.Canvas.W)
	pxH := float64(l.Canvas.H * 2)
	if pxW < 8 || pxH < 8 {
		return
	}

	armCols := math.Max(8, math.Round(pxW/5))
	r := math.Floor(math.Min((pxW-armCols)/2, pxH/2) - 1)
	if r < 3 {
		return
	}

	l.Radius = r
	l.CenterX = 1 + r + math.Floor((pxW-armCols-2*r-1)/2)
	l.CenterY = pxH / 2
	l.PivotX = pxW - armCols/2
	l.PivotY = 4
	l.ArmLen = math.Min(pxH-l.PivotY-4, r*1.8)

	l.Platter = Rect{
		X: l.Canvas.X + int(l.CenterX-r),
		Y: l.Canvas.Y + int((l.CenterY-r)/2),
		W: int(2 * r),
		H: int(r),
	}
}

// TokenAt returns the index of the token under the cell, or -1.
func (l Layout) TokenAt(x int, y int) int {
	for i, r := range l.Tokens {
		if r.Contains(x, y) {
			return i
		}
	}
	return -1
}

func (l Layout) OverPlatter(x int, y int) bool {
	return l.Platter.Contains(x, y)
}

func (l Layout) OverPower(x int, y int) bool {
	return l.Power.Contains(x, y)
}

func (l Layout) OverSearch(x int, y int) bool {
	return l.Search.Contains(x, y)
}

// VisibleTokens counts the tokens that fit on screen.
func (l Layout) VisibleTokens() int {
	n := 0
	for _, r := range l.Tokens {
		if !r.Empty() {
			n++
		}
	}
	return n
}

// GridColumns is how many tokens sit side by side.
func (l Layout) GridColumns() int {
	return max(l.Grid.W/tokenCols, 1)
}
