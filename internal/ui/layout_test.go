package ui

import "testing"

func TestLayoutHitTargets(t *testing.T) {
	l := computeLayout(120, 40, 5, 8, true)

	if l.Deck.W+l.Crate.W != 120 {
		t.Errorf("panes should fill the width: %d + %d", l.Deck.W, l.Crate.W)
	}
	if l.Platter.Empty() {
		t.Fatal("platter has no area")
	}
	if !l.OverPlatter(l.Platter.X+l.Platter.W/2, l.Platter.Y+l.Platter.H/2) {
		t.Error("platter centre is not over the platter")
	}
	if l.OverPlatter(l.Crate.X+1, l.Platter.Y) {
		t.Error("crate pane counted as platter")
	}

	for i, r := range l.Tokens {
		if r.Empty() {
			continue
		}
		if got := l.TokenAt(r.X, r.Y); got != i {
			t.Errorf("TokenAt corner of %d: got %d", i, got)
		}
		if r.X < l.Crate.X {
			t.Errorf("token %d overlaps the deck", i)
		}
	}
	if got := l.TokenAt(0, 0); got != -1 {
		t.Errorf("TokenAt(0,0): got %d, want -1", got)
	}

	if l.Power.X+l.Power.W > l.Deck.W {
		t.Error("power button outside the deck")
	}
	if l.Help.Y != 39 {
		t.Errorf("help row: got %d, want 39", l.Help.Y)
	}
}

func TestLayoutClipsTokensThatDoNotFit(t *testing.T) {
	l := computeLayout(80, 20, 1, 8, true)
	if got := l.VisibleTokens(); got >= 8 {
		t.Errorf("a small terminal cannot show all 8 tokens, got %d", got)
	}
	for i, r := range l.Tokens {
		if !r.Empty() && r.Y+r.H > l.Grid.Y+l.Grid.H {
			t.Errorf("token %d drawn past the grid", i)
		}
	}
}

func TestLayoutDefaultsWithoutSize(t *testing.T) {
	l := computeLayout(0, 0, 1, 0, false)
	if l.Width != 80 || l.Height != 24 {
		t.Errorf("default size: got %dx%d", l.Width, l.Height)
	}
	if !l.Help.Empty() {
		t.Error("help row should be empty when hidden")
	}
}
