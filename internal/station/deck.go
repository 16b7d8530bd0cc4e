package station

import (
	"context"
	"errors"
	"sync"

	"github.com/charmbracelet/log"

	"karolbroda.com/platter/internal/audio"
	"karolbroda.com/platter/internal/logging"
)

// Deck executes command batches on an audio driver. Batches run one at a
// time in the order they were submitted, off the caller's goroutine.
type Deck struct {
	driver     audio.Driver
	logger     *log.Logger
	onFinished func()

	mu      sync.Mutex
	pending [][]Command
	wake    chan struct{}

	events   chan audio.Event
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	stopOnce sync.Once
}

func NewDeck(driver audio.Driver, logger *log.Logger, onFinished func()) *Deck {
	if logger == nil {
		logger = logging.Discard()
	}
	if onFinished == nil {
		onFinished = func() {}
	}

	ctx, cancel := context.WithCancel(context.Background())
	d := &Deck{
		driver:     driver,
		logger:     logger,
		onFinished: onFinished,
		wake:       make(chan struct{}, 1),
		events:     make(chan audio.Event, 16),
		ctx:        ctx,
		cancel:     cancel,
	}

	d.wg.Add(2)
	go d.worker()
	go d.forward()

	return d
}

// Submit queues a batch and returns immediately.
func (d *Deck) Submit(cmds []Command) {
	if len(cmds) == 0 {
		return
	}
	if d.ctx.Err() != nil {
		return
	}

	batch := make([]Command, len(cmds))
	copy(batch, cmds)

	d.mu.Lock()
	d.pending = append(d.pending, batch)
	d.mu.Unlock()

	select {
	case d.wake <- struct{}{}:
	default:
	}
}

// Events carries driver events through to the ui.
func (d *Deck) Events() <-chan audio.Event {
	return d.events
}

func (d *Deck) Close() error {
	var err error
	d.stopOnce.Do(func() {
		d.cancel()
		d.wg.Wait()
		err = d.driver.Close()
	})
	return err
}

func (d *Deck) worker() {
	defer d.wg.Done()

	for {
		select {
		case <-d.ctx.Done():
			return
		case <-d.wake:
		}

		for {
			d.mu.Lock()
			if len(d.pending) == 0 {
				d.mu.Unlock()
				break
			}
			batch := d.pending[0]
			d.pending = d.pending[1:]
			d.mu.Unlock()

			d.run(batch)
		}
	}
}

func (d *Deck) run(batch []Command) {
	for _, cmd := range batch {
		if d.ctx.Err() != nil {
			return
		}

		var err error
		switch cmd.Kind {
		case CmdLoad:
			err = d.driver.Load(d.ctx, cmd.URL)
		case CmdPlay:
			err = d.driver.Play(d.ctx)
		case CmdPause:
			err = d.driver.Pause(d.ctx)
		}

		if err == nil {
			d.logger.Debug("command done", "cmd", cmd.Kind, "url", cmd.URL)
			continue
		}
		if errors.Is(err, context.Canceled) {
			return
		}

		// the station keeps whatever it believes; a refused play is only reported
		if cmd.Kind == CmdPlay {
			d.logger.Warn("play rejected", "err", err)
		} else {
			d.logger.Error("audio command failed", "cmd", cmd.Kind, "err", err)
		}
	}
}

func (d *Deck) forward() {
	defer d.wg.Done()

	src := d.driver.Events()
	for {
		select {
		case <-d.ctx.Done():
			return
		case ev, ok := <-src:
			if !ok {
				return
			}
			if ev.Kind == audio.EventEnded {
				d.logger.Info("song finished", "url", ev.URL)
				d.onFinished()
			}
			select {
			case d.events <- ev:
			case <-d.ctx.Done():
				return
			}
		}
	}
}
