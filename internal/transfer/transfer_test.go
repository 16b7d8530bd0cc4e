package transfer_test

import (
	"errors"
	"testing"

	"karolbroda.com/platter/internal/track"
	"karolbroda.com/platter/internal/transfer"
)

func sampleTrack() track.Track {
	return track.Track{
		ID:         42,
		Name:       "Around the World",
		Artist:     "Daft Punk",
		Collection: "Homework",
		ArtworkURL: "https://is1.example.com/600x600bb.jpg",
		PreviewURL: "https://audio.example.com/42.m4a",
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	want := sampleTrack()

	env, err := transfer.Encode(want)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if env.ContentType != transfer.ContentTypeJSON {
		t.Errorf("ContentType: got %q", env.ContentType)
	}
	if env.Effect != transfer.EffectCopy {
		t.Errorf("Effect: got %q", env.Effect)
	}

	got, err := transfer.Decode(env)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got != want {
		t.Errorf("round trip: got %+v, want %+v", got, want)
	}
}

func TestDecodeKeepsRecordWithoutPreview(t *testing.T) {
	want := sampleTrack()
	want.PreviewURL = ""

	env, err := transfer.Encode(want)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := transfer.Decode(env)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got != want {
		t.Errorf("round trip: got %+v, want %+v", got, want)
	}
}

func TestDecodeRejects(t *testing.T) {
	tests := []struct {
		name    string
		env     transfer.Envelope
		wantErr error
	}{
		{"absent payload", transfer.Envelope{ContentType: transfer.ContentTypeJSON}, transfer.ErrNoPayload},
		{"blank payload", transfer.Envelope{ContentType: transfer.ContentTypeJSON, Data: []byte("  ")}, transfer.ErrNoPayload},
		{"foreign type", transfer.Envelope{ContentType: "text/plain", Data: []byte(`{"trackId":1}`)}, transfer.ErrContentType},
		{"malformed json", transfer.Envelope{ContentType: transfer.ContentTypeJSON, Data: []byte(`{"trackId":`)}, transfer.ErrMalformed},
		{"wrong json shape", transfer.Envelope{ContentType: transfer.ContentTypeJSON, Data: []byte(`[1,2,3]`)}, transfer.ErrMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := transfer.Decode(tt.env)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Decode: got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestAccepts(t *testing.T) {
	if !transfer.Accepts(transfer.Envelope{ContentType: transfer.ContentTypeJSON}) {
		t.Error("json envelope should be accepted")
	}
	if transfer.Accepts(transfer.Envelope{ContentType: "text/uri-list"}) {
		t.Error("uri list should not be accepted")
	}
}
