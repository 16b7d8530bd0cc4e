package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"karolbroda.com/platter/internal/config"
	"karolbroda.com/platter/internal/logging"
	"karolbroda.com/platter/internal/track"
)

const (
	lowResMarker  = "100x100"
	highResMarker = "600x600"
	userAgent     = "platter/1.0"
)

var ErrStatus = errors.New("unexpected catalog status")

type searchResponse struct {
	ResultCount int           `json:"resultCount"`
	Results     []track.Track `json:"results"`
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *log.Logger
}

type Options struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *log.Logger
}

func NewClient(opts Options) *Client {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = config.DefaultCatalogURL
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = config.DefaultHTTPTimeout * time.Second
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		transport := &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   2 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 5,
			IdleConnTimeout:     60 * time.Second,
			TLSHandshakeTimeout: 2 * time.Second,
		}
		httpClient = &http.Client{
			Transport: transport,
			Timeout:   timeout,
		}
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		logger:     logger,
	}
}

// Search never fails: any error is logged and an empty list returned.
func (c *Client) Search(ctx context.Context, term string) []track.Track {
	results, err := c.Lookup(ctx, term)
	if err != nil {
		c.logger.Error("failed to search catalog", "term", term, "err", err)
		return []track.Track{}
	}
	return results
}

// Lookup is Search with the error kept. Blank terms short-circuit without a
// request.
func (c *Client) Lookup(ctx context.Context, term string) ([]track.Track, error) {
	if strings.TrimSpace(term) == "" {
		return []track.Track{}, nil
	}

	requestURL, err := c.searchURL(term)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("searching catalog", "term", term)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w %d: %s", ErrStatus, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode catalog json: %w", err)
	}

	results := make([]track.Track, 0, len(payload.Results))
	for _, trk := range payload.Results {
		trk.ArtworkURL = UpscaleArtwork(trk.ArtworkURL)
		results = append(results, trk)
	}

	c.logger.Debug("catalog search done", "term", term, "results", len(results))

	return results, nil
}

func (c *Client) searchURL(term string) (string, error) {
	parsed, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid catalog url %q: %w", c.baseURL, err)
	}

	query := parsed.Query()
	query.Set("term", term)
	query.Set("media", "music")
	query.Set("entity", "song")
	query.Set("limit", strconv.Itoa(config.SearchLimit))
	parsed.RawQuery = query.Encode()

	return parsed.String(), nil
}

// UpscaleArtwork asks the artwork CDN for the 600x600 rendition by
// rewriting the resolution marker. URLs without the marker are unchanged.
func UpscaleArtwork(artworkURL string) string {
	return strings.ReplaceAll(artworkURL, lowResMarker, highResMarker)
}
