// Package transfer carries a dragged record from the crate to the
// turntable. An Envelope is what a drop target receives; Decode is the
// only way back to a track.
package transfer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"karolbroda.com/platter/internal/track"
)

const (
	ContentTypeJSON = "application/json"
	EffectCopy      = "copy"
)

var (
	ErrNoPayload   = errors.New("transfer: no payload")
	ErrContentType = errors.New("transfer: unsupported content type")
	ErrMalformed   = errors.New("transfer: malformed payload")
)

type Envelope struct {
	ContentType string
	Effect      string
	Data        []byte
}

func (e Envelope) IsEmpty() bool {
	return len(bytes.TrimSpace(e.Data)) == 0
}

// Encode serializes a record for a drag. The source is copied, never moved.
func Encode(trk track.Track) (Envelope, error) {
	data, err := json.Marshal(trk)
	if err != nil {
		return Envelope{}, fmt.Errorf("failed to encode record: %w", err)
	}
	return Envelope{
		ContentType: ContentTypeJSON,
		Effect:      EffectCopy,
		Data:        data,
	}, nil
}

// Accepts reports whether a drop target should light up for this envelope.
func Accepts(env Envelope) bool {
	return env.ContentType == ContentTypeJSON
}

// Decode accepts any well-formed record, playable or not. Whether the
// player can do anything with it is the player's business.
func Decode(env Envelope) (track.Track, error) {
	if !Accepts(env) {
		return track.Track{}, fmt.Errorf("%w: %q", ErrContentType, env.ContentType)
	}
	if env.IsEmpty() {
		return track.Track{}, ErrNoPayload
	}

	var trk track.Track
	if err := json.Unmarshal(env.Data, &trk); err != nil {
		return track.Track{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return trk, nil
}
