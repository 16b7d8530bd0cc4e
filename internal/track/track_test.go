package track_test

import (
	"testing"

	"karolbroda.com/platter/internal/track"
)

func TestIsSameTrack(t *testing.T) {
	a := &track.Track{ID: 1, Name: "Song", Artist: "Band"}
	b := &track.Track{ID: 1, Name: "Other", Artist: "Band"}
	c := &track.Track{ID: 2, Name: "Song", Artist: "Band"}
	noID := &track.Track{Name: "Song", Artist: "Band"}

	tests := []struct {
		name  string
		left  *track.Track
		right *track.Track
		want  bool
	}{
		{"same id", a, b, true},
		{"different id", a, c, false},
		{"fallback to name and artist", a, noID, true},
		{"both nil", nil, nil, true},
		{"one nil", a, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.left.IsSameTrack(tt.right); got != tt.want {
				t.Errorf("IsSameTrack: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestShort(t *testing.T) {
	trk := &track.Track{Name: "A Very Long Track Name Indeed"}
	if got := trk.Short(20); got != "A Very Long Track Na..." {
		t.Errorf("Short: got %q", got)
	}
	if got := trk.Short(100); got != trk.Name {
		t.Errorf("Short without truncation: got %q", got)
	}
}

func TestIsPlayable(t *testing.T) {
	var nilTrack *track.Track
	if nilTrack.IsPlayable() {
		t.Error("nil track should not be playable")
	}
	if (&track.Track{Name: "x"}).IsPlayable() {
		t.Error("track without preview should not be playable")
	}
	if !(&track.Track{PreviewURL: "https://example.com/p.m4a"}).IsPlayable() {
		t.Error("track with preview should be playable")
	}
}
