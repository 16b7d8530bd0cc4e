package audio

import (
	"testing"

	"github.com/godbus/dbus/v5"
)

func newTestMPRIS() *MPRIS {
	return &MPRIS{
		service:   "org.mpris.MediaPlayer2.test",
		loaded:    "https://audio.example.com/a.m4a",
		eventChan: make(chan Event, 16),
		stopChan:  make(chan struct{}),
	}
}

func drain(ch <-chan Event) []Event {
	var out []Event
	for {
		select {
		case ev := <-ch:
			out = append(out, ev)
		default:
			return out
		}
	}
}

func TestApplyStatusReportsEndedOnlyAfterPlaying(t *testing.T) {
	m := newTestMPRIS()

	// opening a new uri passes through Stopped before anything was heard
	m.applyStatus(statusStopped)
	if evs := drain(m.Events()); len(evs) != 0 {
		t.Fatalf("unexpected events before playback: %+v", evs)
	}

	m.applyStatus(statusPlaying)
	m.applyStatus(statusStopped)

	evs := drain(m.Events())
	if len(evs) != 2 {
		t.Fatalf("got %d events, want 2: %+v", len(evs), evs)
	}
	if evs[0].Kind != EventStatus || !evs[0].Playing {
		t.Errorf("first event: got %+v, want playing status", evs[0])
	}
	if evs[1].Kind != EventEnded {
		t.Errorf("second event: got %+v, want ended", evs[1])
	}
	if evs[1].URL != "https://audio.example.com/a.m4a" {
		t.Errorf("ended url: got %q", evs[1].URL)
	}

	// a second Stopped does not end twice
	m.applyStatus(statusStopped)
	if evs := drain(m.Events()); len(evs) != 0 {
		t.Errorf("duplicate ended: %+v", evs)
	}
}

func TestApplyStatusPause(t *testing.T) {
	m := newTestMPRIS()
	m.applyStatus(statusPlaying)
	m.applyStatus(statusPaused)

	evs := drain(m.Events())
	if len(evs) != 2 || evs[1].Kind != EventStatus || evs[1].Playing {
		t.Fatalf("got %+v, want paused status last", evs)
	}
	if m.Status() != statusPaused {
		t.Errorf("Status: got %q", m.Status())
	}
}

func TestHandleSignalIgnoresForeignInterfaces(t *testing.T) {
	m := newTestMPRIS()
	m.handleSignal(&dbus.Signal{
		Name: "org.freedesktop.DBus.Properties.PropertiesChanged",
		Body: []interface{}{
			"org.example.Other",
			map[string]dbus.Variant{"PlaybackStatus": dbus.MakeVariant(statusPlaying)},
		},
	})
	if evs := drain(m.Events()); len(evs) != 0 {
		t.Errorf("foreign interface produced events: %+v", evs)
	}

	m.handleSignal(&dbus.Signal{
		Name: "org.freedesktop.DBus.Properties.PropertiesChanged",
		Body: []interface{}{
			mprisPlayerIface,
			map[string]dbus.Variant{"PlaybackStatus": dbus.MakeVariant(statusPlaying)},
		},
	})
	if evs := drain(m.Events()); len(evs) != 1 {
		t.Errorf("player interface: got %d events, want 1", len(evs))
	}
}

func TestIsServiceUnknown(t *testing.T) {
	err := dbus.Error{Name: "org.freedesktop.DBus.Error.ServiceUnknown"}
	if !isServiceUnknown(err) {
		t.Error("value error not recognised")
	}
	if !isServiceUnknown(&err) {
		t.Error("pointer error not recognised")
	}
	if isServiceUnknown(dbus.Error{Name: "org.freedesktop.DBus.Error.Failed"}) {
		t.Error("other dbus error misclassified")
	}
}
