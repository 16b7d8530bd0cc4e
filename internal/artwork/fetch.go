// Package artwork fetches record sleeves, pulls a palette out of them and
// paints the turntable onto a half-block pixel canvas.
package artwork

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"karolbroda.com/platter/internal/logging"
)

const defaultFetchTimeout = 5 * time.Second

type Options struct {
	Timeout    time.Duration
	HTTPClient *http.Client
	Cache      *Cache
	Logger     *log.Logger
}

// Fetcher downloads and decodes sleeves, remembering them for the session.
type Fetcher struct {
	httpClient *http.Client
	cache      *Cache
	logger     *log.Logger
}

func NewFetcher(opts Options) *Fetcher {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}

	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout:   timeout,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout: timeout,
				MaxIdleConns:        16,
				MaxIdleConnsPerHost: 8,
				IdleConnTimeout:     90 * time.Second,
			},
		}
	}

	cache := opts.Cache
	if cache == nil {
		cache = NewCache(DefaultCacheSize)
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	return &Fetcher{
		httpClient: client,
		cache:      cache,
		logger:     logger,
	}
}

// Sleeve is a decoded artwork image and the palette taken from it.
type Sleeve struct {
	URL     string
	Image   image.Image
	Palette *Palette
}

// Fetch returns the sleeve for url, from memory when it has been seen.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*Sleeve, error) {
	if url == "" {
		return nil, errors.New("empty artwork url")
	}

	if sleeve, err := f.cache.Get(url); err == nil {
		return sleeve, nil
	}

	img, err := f.decode(ctx, url)
	if err != nil {
		f.logger.Debug("artwork fetch failed", "url", url, "err", err)
		return nil, err
	}

	sleeve := &Sleeve{
		URL:     url,
		Image:   img,
		Palette: ExtractPalette(img),
	}
	f.cache.Set(url, sleeve)

	return sleeve, nil
}

func (f *Fetcher) decode(ctx context.Context, url string) (image.Image, error) {
	if path, ok := strings.CutPrefix(url, "file://"); ok {
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open artwork file: %w", err)
		}
		defer file.Close()

		img, _, err := image.Decode(file)
		if err != nil {
			return nil, fmt.Errorf("failed to decode artwork image: %w", err)
		}
		return img, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch artwork: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("artwork fetch returned status %d", resp.StatusCode)
	}

	img, _, err := image.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode artwork: %w", err)
	}

	return img, nil
}
