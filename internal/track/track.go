package track

import "fmt"

// Track is a single catalog result. Field names follow the catalog's JSON
// so a record survives a marshal/unmarshal round trip unchanged.
type Track struct {
	ID         int64  `json:"trackId"`
	Name       string `json:"trackName"`
	Artist     string `json:"artistName"`
	Collection string `json:"collectionName"`
	ArtworkURL string `json:"artworkUrl100"`
	PreviewURL string `json:"previewUrl"`
}

func (t *Track) IsPlayable() bool {
	return t != nil && t.PreviewURL != ""
}

func (t *Track) IsSameTrack(other *Track) bool {
	if t == nil || other == nil {
		return t == other
	}
	if t.ID != 0 && other.ID != 0 {
		return t.ID == other.ID
	}
	return t.Name == other.Name && t.Artist == other.Artist
}

func (t *Track) Label() string {
	if t == nil {
		return ""
	}
	if t.Artist == "" {
		return t.Name
	}
	return fmt.Sprintf("%s – %s", t.Name, t.Artist)
}

// Short truncates the track name for token captions.
func (t *Track) Short(max int) string {
	if t == nil {
		return ""
	}
	runes := []rune(t.Name)
	if max <= 0 || len(runes) <= max {
		return t.Name
	}
	return string(runes[:max]) + "..."
}
