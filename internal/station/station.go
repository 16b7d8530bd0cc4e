// Package station is the turntable's playback state. State is a value;
// every transition returns the next state and the audio commands that
// bring the player in line with it. Deck runs those commands.
package station

import (
	"karolbroda.com/platter/internal/track"
	"karolbroda.com/platter/internal/transfer"
)

type CommandKind int

const (
	CmdLoad CommandKind = iota
	CmdPlay
	CmdPause
)

func (k CommandKind) String() string {
	switch k {
	case CmdLoad:
		return "load"
	case CmdPlay:
		return "play"
	case CmdPause:
		return "pause"
	default:
		return "unknown"
	}
}

type Command struct {
	Kind CommandKind
	URL  string // CmdLoad only
}

func Load(url string) Command { return Command{Kind: CmdLoad, URL: url} }
func Play() Command           { return Command{Kind: CmdPlay} }
func Pause() Command          { return Command{Kind: CmdPause} }

// State is nil-Loaded when the platter is empty. Playing is never true
// without a loaded record.
type State struct {
	Loaded  *track.Track
	Playing bool
	// Ended is set once the loaded preview played through; the player has
	// nothing left to resume, so the next Toggle loads it again.
	Ended bool
}

func (s State) IsEmpty() bool {
	return s.Loaded == nil
}

// Drop puts the dropped record on the platter and starts it, whatever was
// there before. Only an absent or undecodable payload leaves the state
// alone; a record the player cannot play is still loaded.
func (s State) Drop(env transfer.Envelope) (State, []Command) {
	trk, err := transfer.Decode(env)
	if err != nil {
		return s, nil
	}

	loaded := trk
	next := State{Loaded: &loaded, Playing: true}
	return next, []Command{Load(trk.PreviewURL), Play()}
}

func (s State) Toggle() (State, []Command) {
	if s.IsEmpty() {
		return s, nil
	}
	if s.Playing {
		return State{Loaded: s.Loaded, Playing: false}, []Command{Pause()}
	}
	if s.Ended {
		return State{Loaded: s.Loaded, Playing: true}, []Command{Load(s.Loaded.PreviewURL), Play()}
	}
	return State{Loaded: s.Loaded, Playing: true}, []Command{Play()}
}

// Finished handles the preview at url reaching its end. The record stays on
// the platter so the next Toggle plays it again. An end reported for any
// other preview belongs to a record that has since been replaced.
func (s State) Finished(url string) State {
	if s.IsEmpty() || s.Loaded.PreviewURL != url {
		return s
	}
	return State{Loaded: s.Loaded, Playing: false, Ended: true}
}

// Hovering reports whether the platter should show itself as a target for
// the envelope being dragged.
func (s State) Hovering(env transfer.Envelope) bool {
	return transfer.Accepts(env)
}
