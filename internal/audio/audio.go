// Package audio hides the host media player behind a small command
// interface so the turntable can be driven, and tested, without sound.
package audio

import (
	"context"
	"errors"
)

var (
	ErrNoPlayer      = errors.New("audio: no media player available")
	ErrClosed        = errors.New("audio: driver closed")
	ErrNothingLoaded = errors.New("audio: nothing loaded")
)

type EventKind int

const (
	// EventEnded fires when a preview plays through to its natural end.
	EventEnded EventKind = iota
	EventStatus
)

// Event is tagged with the url that was loaded when it happened, so a
// listener can tell a late event of a replaced preview from a current one.
type Event struct {
	Kind    EventKind
	Playing bool
	URL     string
}

type Driver interface {
	// Load replaces whatever is loaded; it does not start playback.
	Load(ctx context.Context, url string) error
	Play(ctx context.Context) error
	Pause(ctx context.Context) error
	Events() <-chan Event
	Close() error
}

func emit(ch chan Event, ev Event) {
	select {
	case ch <- ev:
	default:
	}
}
