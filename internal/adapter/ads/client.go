// Package ads talks to the Telegram Ads console. The console exposes no
// API: campaign metadata is scraped from the HTML status page and the time
// series come from tab-delimited CSV exports linked inside it.
package ads

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Koveh/telegram-ads-collector/internal/core/domain"
)

const defaultTimeout = 30 * time.Second

// Client fetches campaign pages and exports. It carries a fixed User-Agent
// (the console rejects clients without a browser-looking one) and a bounded
// timeout so one unreachable campaign cannot stall a batch. Construct one
// per pipeline; there is no global session state.
type Client struct {
	baseURL   string
	userAgent string
	httpc     *http.Client
}

// NewClient returns a client rooted at baseURL. A zero timeout falls back
// to 30 seconds.
func NewClient(baseURL, userAgent string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		httpc:     &http.Client{Timeout: timeout},
	}
}

// FetchCampaignInfo downloads the status page for a campaign and extracts
// its metadata and export links. Only transport failures return an error;
// a page that fetched but does not look as expected yields a record with
// nil fields and no export links.
func (c *Client) FetchCampaignInfo(ctx context.Context, campaignID string) (*domain.CampaignInfo, error) {
	body, err := c.get(ctx, "/stats/"+campaignID)
	if err != nil {
		return nil, fmt.Errorf("fetch campaign %s: %w", campaignID, err)
	}
	return ExtractCampaignInfo(campaignID, body), nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("GET %s: status %d: %s", path, resp.StatusCode, strings.TrimSpace(string(b)))
	}
	return io.ReadAll(resp.Body)
}
