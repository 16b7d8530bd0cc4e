package audio

import (
	"context"
	"sync"
	"time"
)

// Silent plays nothing. It keeps a timer per preview so that Ended still
// arrives after the preview's length, pausing and resuming with the deck.
type Silent struct {
	mu        sync.Mutex
	length    time.Duration
	remaining time.Duration
	startedAt time.Time
	timer     *time.Timer
	gen       uint64
	loaded    string
	closed    bool
	events    chan Event
}

func NewSilent(length time.Duration) *Silent {
	return &Silent{
		length: length,
		events: make(chan Event, 8),
	}
}

func (s *Silent) Load(ctx context.Context, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	s.stopTimerLocked()
	s.gen++
	s.loaded = url
	s.remaining = s.length
	return nil
}

func (s *Silent) Play(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	if s.loaded == "" {
		return ErrNothingLoaded
	}
	if s.timer != nil {
		return nil
	}

	gen := s.gen
	s.startedAt = time.Now()
	s.timer = time.AfterFunc(s.remaining, func() { s.finish(gen) })
	emit(s.events, Event{Kind: EventStatus, Playing: true, URL: s.loaded})
	return nil
}

func (s *Silent) Pause(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	if s.timer == nil {
		return nil
	}
	s.stopTimerLocked()
	// a callback already waiting on the lock must not end the resumed run
	s.gen++
	s.remaining -= time.Since(s.startedAt)
	if s.remaining < 0 {
		s.remaining = 0
	}
	emit(s.events, Event{Kind: EventStatus, Playing: false, URL: s.loaded})
	return nil
}

func (s *Silent) Events() <-chan Event {
	return s.events
}

func (s *Silent) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	s.stopTimerLocked()
	return nil
}

func (s *Silent) finish(gen uint64) {
	s.mu.Lock()
	if s.closed || gen != s.gen || s.timer == nil {
		s.mu.Unlock()
		return
	}
	s.timer = nil
	// a finished preview restarts from the top on the next play
	s.remaining = s.length
	s.gen++
	url := s.loaded
	s.mu.Unlock()

	emit(s.events, Event{Kind: EventEnded, URL: url})
}

func (s *Silent) stopTimerLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
