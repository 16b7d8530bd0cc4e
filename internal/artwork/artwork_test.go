package artwork_test

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"unicode/utf8"

	"karolbroda.com/platter/internal/artwork"
)

func bands() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 40, 40))
	fills := []color.RGBA{
		{R: 220, G: 40, B: 40, A: 255},
		{R: 40, G: 200, B: 60, A: 255},
		{R: 40, G: 80, B: 220, A: 255},
		{R: 230, G: 200, B: 40, A: 255},
	}
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			img.Set(x, y, fills[x/10])
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestFetchCachesSleeve(t *testing.T) {
	body := encodePNG(t, bands())
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "image/png")
		w.Write(body)
	}))
	defer server.Close()

	fetcher := artwork.NewFetcher(artwork.Options{})
	ctx := context.Background()

	first, err := fetcher.Fetch(ctx, server.URL+"/600x600bb.png")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if first.Image.Bounds().Dx() != 40 {
		t.Errorf("width: got %d", first.Image.Bounds().Dx())
	}
	if first.Palette == nil {
		t.Fatal("palette missing")
	}

	second, err := fetcher.Fetch(ctx, server.URL+"/600x600bb.png")
	if err != nil {
		t.Fatal(err)
	}
	if second != first {
		t.Error("second fetch should come from the cache")
	}
	if got := hits.Load(); got != 1 {
		t.Errorf("requests: got %d, want 1", got)
	}
}

func TestFetchErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/garbage" {
			w.Write([]byte("not an image"))
			return
		}
		http.NotFound(w, r)
	}))
	defer server.Close()

	fetcher := artwork.NewFetcher(artwork.Options{})
	for _, url := range []string{"", server.URL + "/missing", server.URL + "/garbage"} {
		if _, err := fetcher.Fetch(context.Background(), url); err == nil {
			t.Errorf("Fetch(%q): expected error", url)
		}
	}
}

func TestFetchFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sleeve.png")
	if err := os.WriteFile(path, encodePNG(t, bands()), 0o644); err != nil {
		t.Fatal(err)
	}

	sleeve, err := artwork.NewFetcher(artwork.Options{}).Fetch(context.Background(), "file://"+path)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if sleeve.Image == nil {
		t.Error("image missing")
	}
}

func TestCacheEvictsLeastRecentlyUsed(t *testing.T) {
	cache := artwork.NewCache(2)
	a := &artwork.Sleeve{URL: "a"}
	b := &artwork.Sleeve{URL: "b"}
	c := &artwork.Sleeve{URL: "c"}

	cache.Set("a", a)
	cache.Set("b", b)
	if _, err := cache.Get("a"); err != nil {
		t.Fatal(err)
	}
	cache.Set("c", c)

	if cache.Len() != 2 {
		t.Errorf("Len: got %d, want 2", cache.Len())
	}
	if _, err := cache.Get("c"); err != nil {
		t.Error("newest entry evicted")
	}
	if _, err := cache.Get("a"); err != nil {
		t.Error("recently used entry evicted")
	}
	if _, err := cache.Get("b"); err != artwork.ErrCacheMiss {
		t.Errorf("least recently used entry: got %v, want ErrCacheMiss", err)
	}

	cache.Clear()
	if _, err := cache.Get("c"); err != artwork.ErrCacheMiss {
		t.Errorf("after Clear: got %v, want ErrCacheMiss", err)
	}
}

func TestPalette(t *testing.T) {
	def := artwork.ExtractPalette(nil)
	if def.Primary != artwork.DefaultPalette().Primary {
		t.Errorf("nil image should yield the default palette")
	}

	p := artwork.ExtractPalette(bands())
	for name, hex := range map[string]string{
		"primary":   p.Primary,
		"secondary": p.Secondary,
		"accent":    p.Accent,
		"dim":       p.Dim,
	} {
		if len(hex) != 7 || hex[0] != '#' {
			t.Errorf("%s: malformed color %q", name, hex)
		}
	}
	if len(p.Gradient) != 20 {
		t.Errorf("gradient: got %d steps, want 20", len(p.Gradient))
	}
}

func TestCanvasRender(t *testing.T) {
	c := artwork.NewCanvas(10, 5)
	if c.Width != 10 || c.Height != 10 {
		t.Fatalf("size: got %dx%d", c.Width, c.Height)
	}

	c.FillCircle(5, 5, 3, artwork.Hex("#FF0000"))
	if c.At(5, 5).A == 0 {
		t.Error("centre not filled")
	}
	if c.At(0, 0).A != 0 {
		t.Error("corner should stay empty")
	}

	lines := c.Render()
	if len(lines) != 5 {
		t.Fatalf("rows: got %d, want 5", len(lines))
	}
	if got := utf8.RuneCountInString(stripANSI(lines[0])); got != 10 {
		t.Errorf("row width: got %d, want 10", got)
	}
}

func TestCanvasLabelRotates(t *testing.T) {
	sleeve := image.NewRGBA(image.Rect(0, 0, 2, 2))
	red := color.RGBA{R: 255, A: 255}
	blue := color.RGBA{B: 255, A: 255}
	// left half red, right half blue
	sleeve.Set(0, 0, red)
	sleeve.Set(0, 1, red)
	sleeve.Set(1, 0, blue)
	sleeve.Set(1, 1, blue)

	upright := artwork.NewCanvas(20, 10)
	upright.Label(sleeve, 10, 10, 8, 0)
	if got := upright.At(5, 10); got != red {
		t.Errorf("left of centre unrotated: got %v, want red", got)
	}

	flipped := artwork.NewCanvas(20, 10)
	flipped.Label(sleeve, 10, 10, 8, 180)
	if got := flipped.At(5, 10); got != blue {
		t.Errorf("left of centre after half turn: got %v, want blue", got)
	}
}

func stripANSI(s string) string {
	var out []rune
	inEscape := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			inEscape = true
		case inEscape && (r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'):
			inEscape = false
		case !inEscape:
			out = append(out, r)
		}
	}
	return string(out)
}
