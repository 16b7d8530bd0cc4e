package crate_test

import (
	"testing"

	"karolbroda.com/platter/internal/crate"
	"karolbroda.com/platter/internal/track"
	"karolbroda.com/platter/internal/transfer"
)

func records(n int) []track.Track {
	out := make([]track.Track, n)
	for i := range out {
		out[i] = track.Track{
			ID:         int64(i + 1),
			Name:       "Track",
			Artist:     "Artist",
			PreviewURL: "https://audio.example.com/p.m4a",
		}
	}
	return out
}

func TestInitialCrateShowsPlaceholder(t *testing.T) {
	var c crate.Crate
	if !c.ShowPlaceholder() {
		t.Error("empty crate should show placeholder")
	}
	if c.ShowLoading() {
		t.Error("empty crate should not be loading")
	}
}

func TestSearchWithResults(t *testing.T) {
	var c crate.Crate
	c, ticket := c.Begin("abc")

	if !c.ShowLoading() {
		t.Error("crate should be loading after Begin")
	}
	if c.ShowPlaceholder() {
		t.Error("placeholder must be suppressed while loading")
	}

	c = c.Arrive(ticket, records(3))

	if got := len(c.Tokens()); got != 3 {
		t.Errorf("tokens: got %d, want 3", got)
	}
	if c.ShowPlaceholder() {
		t.Error("placeholder shown with results")
	}
	if c.ShowLoading() {
		t.Error("still loading after results arrived")
	}
}

func TestEmptySearchShowsPlaceholder(t *testing.T) {
	var c crate.Crate
	c, first := c.Begin("abc")
	c = c.Arrive(first, records(3))

	c, second := c.Begin("")
	c = c.Arrive(second, []track.Track{})

	if len(c.Tokens()) != 0 {
		t.Errorf("tokens: got %d, want 0", len(c.Tokens()))
	}
	if !c.ShowPlaceholder() {
		t.Error("placeholder should be shown for empty results")
	}
}

func TestStaleResultsIgnored(t *testing.T) {
	var c crate.Crate
	c, slow := c.Begin("slow")
	c, fast := c.Begin("fast")

	c = c.Arrive(fast, records(2))
	c = c.Arrive(slow, records(5))

	if got := len(c.Tokens()); got != 2 {
		t.Errorf("stale response overwrote newer results: got %d tokens", got)
	}
	if c.Term != "fast" {
		t.Errorf("Term: got %q, want fast", c.Term)
	}
	if c.IsCurrent(slow) {
		t.Error("slow ticket should not be current")
	}
}

func TestStartDragDoesNotMutate(t *testing.T) {
	var c crate.Crate
	c, ticket := c.Begin("abc")
	c = c.Arrive(ticket, records(3))

	env, ok := c.StartDrag(1)
	if !ok {
		t.Fatal("StartDrag(1) failed")
	}
	if env.Effect != transfer.EffectCopy {
		t.Errorf("Effect: got %q, want copy", env.Effect)
	}

	got, err := transfer.Decode(env)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got != c.Tokens()[1] {
		t.Errorf("dragged record differs: got %+v", got)
	}
	if len(c.Tokens()) != 3 {
		t.Error("drag must not remove the token")
	}

	if _, ok := c.StartDrag(7); ok {
		t.Error("StartDrag out of range should fail")
	}
}
