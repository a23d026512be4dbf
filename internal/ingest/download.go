package ingest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Downloader fetches the full raw payload for a dataset selector.
type Downloader interface {
	Download(ctx context.Context, d Dataset) ([]byte, error)
}

// HTTPDownloader performs a single GET against the selector-derived URL
// and buffers the whole response. The monthly file is large (~1.8M
// rows) and is held in memory for one enrichment pass.
type HTTPDownloader struct {
	BaseURL string
	Client  *http.Client
}

func NewHTTPDownloader(baseURL string) *HTTPDownloader {
	if baseURL == "" {
		baseURL = DefaultSourceURL
	}
	return &HTTPDownloader{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout: 30 * time.Minute,
			Transport: &http.Transport{
				ResponseHeaderTimeout: 60 * time.Second,
				IdleConnTimeout:       90 * time.Second,
			},
		},
	}
}

func (h *HTTPDownloader) Download(ctx context.Context, d Dataset) ([]byte, error) {
	url := strings.TrimSuffix(h.BaseURL, "/") + "/" + d.FileName()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("download request %s: %w", url, err)
	}
	resp, err := h.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download %s: unexpected status %s", url, resp.Status)
	}
	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("download %s: read body: %w", url, err)
	}
	return payload, nil
}
