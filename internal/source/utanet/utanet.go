// Package utanet fetches song candidates and credit records from the
// uta-net lyrics database. It implements credit.Source.
package utanet

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"creditget/internal/credit"
)

const defaultBaseURL = "https://www.uta-net.com"

// Client is an uta-net scraping client.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
}

// New creates a Client. Zero timeout and empty userAgent fall back to
// 10 seconds and "creditget/1.0".
func New(timeout time.Duration, userAgent string) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if userAgent == "" {
		userAgent = "creditget/1.0"
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    defaultBaseURL,
		userAgent:  userAgent,
	}
}

func (c *Client) Name() string { return "uta-net" }

// Search queries the song-title search endpoint and returns the parsed
// result rows. An empty slice with nil error means the search page had
// no candidate rows.
func (c *Client) Search(ctx context.Context, title string) ([]credit.Candidate, error) {
	params := url.Values{}
	params.Set("Aselect", "2")
	params.Set("Keyword", title)

	reqURL := fmt.Sprintf("%s/search/?%s", c.baseURL, params.Encode())
	resp, err := c.get(ctx, reqURL)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search returned status %d", resp.StatusCode)
	}

	cands, err := parseSearchRows(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse search page: %w", err)
	}
	return cands, nil
}

// Credits fetches a song detail page and extracts its credit record.
// Missing blocks or labels leave the corresponding fields empty; only a
// failed fetch or unparseable page is an error.
func (c *Client) Credits(ctx context.Context, songID string) (credit.Record, error) {
	reqURL := fmt.Sprintf("%s/song/%s/", c.baseURL, songID)
	resp, err := c.get(ctx, reqURL)
	if err != nil {
		return credit.Record{}, fmt.Errorf("song page request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return credit.Record{}, fmt.Errorf("song page returned status %d", resp.StatusCode)
	}

	page, err := parseSongPage(resp.Body)
	if err != nil {
		return credit.Record{}, fmt.Errorf("failed to parse song page: %w", err)
	}

	return credit.Record{
		WorkName: page.workName,
		Lyricist: fieldAfter(page.detailText, labelLyricist),
		Composer: fieldAfter(page.detailText, labelComposer),
		Arranger: fieldAfter(page.detailText, labelArranger),
	}, nil
}

func (c *Client) get(ctx context.Context, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	return c.httpClient.Do(req)
}
