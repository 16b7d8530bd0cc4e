package audio

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/godbus/dbus/v5"

	"karolbroda.com/platter/internal/logging"
)

const (
	mprisPath        = "/org/mpris/MediaPlayer2"
	mprisIface       = "org.mpris.MediaPlayer2"
	mprisPlayerIface = "org.mpris.MediaPlayer2.Player"
	mprisPrefix      = "org.mpris.MediaPlayer2."

	statusPlaying = "Playing"
	statusPaused  = "Paused"
	statusStopped = "Stopped"
)

// MPRIS drives any media player that implements the MPRIS D-Bus interface
// and accepts OpenUri (mpv with the mpris plugin, vlc, ...).
type MPRIS struct {
	bus        *dbus.Conn
	service    string
	logger     *log.Logger
	signalChan chan *dbus.Signal
	stopChan   chan struct{}
	stopOnce   sync.Once
	eventChan  chan Event

	mu      sync.RWMutex
	status  string
	loaded  string
	started bool
	closed  bool
}

var _ Driver = (*MPRIS)(nil)

func NewMPRIS(bus *dbus.Conn, service string, logger *log.Logger) (*MPRIS, error) {
	if bus == nil {
		return nil, errors.New("nil dbus connection")
	}
	if service == "" {
		return nil, errors.New("empty mpris service name")
	}
	if logger == nil {
		logger = logging.Discard()
	}

	return &MPRIS{
		bus:       bus,
		service:   service,
		logger:    logger,
		eventChan: make(chan Event, 16),
		stopChan:  make(chan struct{}),
	}, nil
}

// Start subscribes to the player's property changes. Without it commands
// still work but Ended is never reported.
func (m *MPRIS) Start() error {
	m.signalChan = make(chan *dbus.Signal, 10)
	m.bus.Signal(m.signalChan)

	err := m.bus.BusObject().Call("org.freedesktop.DBus.AddMatch", 0, m.matchRule()).Err
	if err != nil {
		return fmt.Errorf("failed to add properties match: %w", err)
	}

	go m.signalLoop()

	return nil
}

// Probe reports ErrNoPlayer when nobody owns the service name.
func (m *MPRIS) Probe(ctx context.Context) error {
	var owned bool
	err := m.bus.BusObject().CallWithContext(ctx, "org.freedesktop.DBus.NameHasOwner", 0, m.service).Store(&owned)
	if err != nil {
		return fmt.Errorf("failed to query %s: %w", m.service, err)
	}
	if !owned {
		return fmt.Errorf("%w: %s is not running", ErrNoPlayer, m.service)
	}
	return nil
}

func (m *MPRIS) Load(ctx context.Context, url string) error {
	if url == "" {
		return ErrNothingLoaded
	}
	if err := m.call(ctx, "OpenUri", url); err != nil {
		return err
	}

	m.mu.Lock()
	m.loaded = url
	m.started = false
	m.mu.Unlock()

	return nil
}

func (m *MPRIS) Play(ctx context.Context) error {
	return m.call(ctx, "Play")
}

func (m *MPRIS) Pause(ctx context.Context) error {
	return m.call(ctx, "Pause")
}

func (m *MPRIS) Events() <-chan Event {
	return m.eventChan
}

func (m *MPRIS) Close() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	m.mu.Unlock()

	m.stopOnce.Do(func() {
		close(m.stopChan)
	})

	if m.signalChan != nil {
		m.bus.RemoveSignal(m.signalChan)
		_ = m.bus.BusObject().Call("org.freedesktop.DBus.RemoveMatch", 0, m.matchRule()).Err
	}

	// leave the host player quiet once the turntable is gone
	obj := m.bus.Object(m.service, mprisPath)
	if err := obj.Call(mprisPlayerIface+".Stop", 0).Err; err != nil {
		m.logger.Debug("failed to stop player on close", "err", err)
	}

	return nil
}

func (m *MPRIS) Status() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

func (m *MPRIS) call(ctx context.Context, method string, args ...interface{}) error {
	m.mu.RLock()
	closed := m.closed
	m.mu.RUnlock()
	if closed {
		return ErrClosed
	}

	obj := m.bus.Object(m.service, mprisPath)
	call := obj.CallWithContext(ctx, mprisPlayerIface+"."+method, 0, args...)
	if call.Err != nil {
		if isServiceUnknown(call.Err) {
			return fmt.Errorf("%w: %s", ErrNoPlayer, m.service)
		}
		return fmt.Errorf("failed to call %s on %s: %w", method, m.service, call.Err)
	}
	return nil
}

func isServiceUnknown(err error) bool {
	const name = "org.freedesktop.DBus.Error.ServiceUnknown"

	var byValue dbus.Error
	if errors.As(err, &byValue) {
		return byValue.Name == name
	}
	var byPointer *dbus.Error
	if errors.As(err, &byPointer) {
		return byPointer.Name == name
	}
	return false
}

func (m *MPRIS) matchRule() string {
	return fmt.Sprintf(
		"type='signal',sender='%s',interface='org.freedesktop.DBus.Properties',member='PropertiesChanged',path='%s'",
		m.service, mprisPath,
	)
}

func (m *MPRIS) signalLoop() {
	for {
		select {
		case sig, ok := <-m.signalChan:
			if !ok {
				return
			}
			m.handleSignal(sig)
		case <-m.stopChan:
			return
		}
	}
}

func (m *MPRIS) handleSignal(sig *dbus.Signal) {
	if sig == nil || sig.Name != "org.freedesktop.DBus.Properties.PropertiesChanged" {
		return
	}
	if len(sig.Body) < 2 {
		return
	}

	interfaceName, ok := sig.Body[0].(string)
	if !ok || interfaceName != mprisPlayerIface {
		return
	}

	changedProps, ok := sig.Body[1].(map[string]dbus.Variant)
	if !ok {
		return
	}

	statusVariant, exists := changedProps["PlaybackStatus"]
	if !exists {
		return
	}
	status, ok := statusVariant.Value().(string)
	if !ok {
		return
	}

	m.applyStatus(status)
}

// applyStatus turns PlaybackStatus transitions into events. A player goes
// Stopped briefly while opening a new uri, so Ended is only reported once
// the current preview has actually been heard playing.
func (m *MPRIS) applyStatus(status string) {
	m.mu.Lock()
	m.status = status
	url := m.loaded
	ended := false
	switch status {
	case statusPlaying:
		m.started = true
	case statusStopped:
		ended = m.started
		m.started = false
	}
	m.mu.Unlock()

	m.logger.Debug("player status changed", "status", status)

	switch {
	case ended:
		emit(m.eventChan, Event{Kind: EventEnded, URL: url})
	case status == statusPlaying:
		emit(m.eventChan, Event{Kind: EventStatus, Playing: true, URL: url})
	case status == statusPaused:
		emit(m.eventChan, Event{Kind: EventStatus, Playing: false, URL: url})
	}
}

// ListPlayers returns every MPRIS service on the bus.
func ListPlayers(bus *dbus.Conn) ([]string, error) {
	var names []string
	err := bus.BusObject().Call("org.freedesktop.DBus.ListNames", 0).Store(&names)
	if err != nil {
		return nil, fmt.Errorf("failed to list dbus names: %w", err)
	}

	var players []string
	for _, name := range names {
		if strings.HasPrefix(name, mprisPrefix) {
			players = append(players, name)
		}
	}
	return players, nil
}

func Identity(bus *dbus.Conn, service string) string {
	return stringProperty(bus, service, mprisIface+".Identity")
}

func PlaybackStatus(bus *dbus.Conn, service string) string {
	return stringProperty(bus, service, mprisPlayerIface+".PlaybackStatus")
}

// CanOpenURI reports whether the player advertises http among its schemes.
func CanOpenURI(bus *dbus.Conn, service string) bool {
	obj := bus.Object(service, mprisPath)
	variant, err := obj.GetProperty(mprisIface + ".SupportedUriSchemes")
	if err != nil {
		return false
	}
	schemes, ok := variant.Value().([]string)
	if !ok {
		return false
	}
	for _, scheme := range schemes {
		if scheme == "http" || scheme == "https" {
			return true
		}
	}
	return false
}

func stringProperty(bus *dbus.Conn, service string, property string) string {
	obj := bus.Object(service, mprisPath)
	variant, err := obj.GetProperty(property)
	if err != nil {
		return ""
	}
	value, ok := variant.Value().(string)
	if !ok {
		return ""
	}
	return value
}
