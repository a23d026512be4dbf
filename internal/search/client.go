// Package search manages the downstream search service: a thin client
// for its management REST API and an idempotent provisioner for the
// properties index, its data source, and its indexer.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultAPIVersion = "2020-06-30"

// Client talks to the search service's management API. BaseURL is
// derived from the service name unless overridden (tests point it at a
// local server).
type Client struct {
	ServiceName string
	AdminKey    string
	APIVersion  string
	BaseURL     string
	HTTPClient  *http.Client
}

func NewClient(service, adminKey string) *Client {
	return &Client{
		ServiceName: service,
		AdminKey:    adminKey,
		APIVersion:  defaultAPIVersion,
		HTTPClient:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) baseURL() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	return fmt.Sprintf("https://%s.search.windows.net", c.ServiceName)
}

func (c *Client) apiVersion() string {
	if c.APIVersion != "" {
		return c.APIVersion
	}
	return defaultAPIVersion
}

func (c *Client) do(ctx context.Context, method, path string, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("search api encode: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	url := fmt.Sprintf("%s%s?api-version=%s", c.baseURL(), path, c.apiVersion())
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("search api request: %w", err)
	}
	req.Header.Set("api-key", c.AdminKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search api %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("search api %s %s: read body: %w", method, path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("search api %s %s: status %s: %s", method, path, resp.Status, payload)
	}
	return payload, nil
}

// ListIndexes returns the names of all indexes on the service.
func (c *Client) ListIndexes(ctx context.Context) ([]string, error) {
	payload, err := c.do(ctx, http.MethodGet, "/indexes", nil)
	if err != nil {
		return nil, err
	}
	var out struct {
		Value []struct {
			Name string `json:"name"`
		} `json:"value"`
	}
	if err := json.Unmarshal(payload, &out); err != nil {
		return nil, fmt.Errorf("search api list indexes decode: %w", err)
	}
	names := make([]string, 0, len(out.Value))
	for _, v := range out.Value {
		names = append(names, v.Name)
	}
	return names, nil
}

// CreateOrUpdateIndex upserts an index definition.
func (c *Client) CreateOrUpdateIndex(ctx context.Context, def Index) error {
	_, err := c.do(ctx, http.MethodPut, "/indexes/"+def.Name, def)
	return err
}

// CreateOrUpdateDataSource upserts a data-source binding.
func (c *Client) CreateOrUpdateDataSource(ctx context.Context, def DataSource) error {
	_, err := c.do(ctx, http.MethodPut, "/datasources/"+def.Name, def)
	return err
}

// CreateOrUpdateIndexer upserts a scheduled indexer job.
func (c *Client) CreateOrUpdateIndexer(ctx context.Context, def Indexer) error {
	_, err := c.do(ctx, http.MethodPut, "/indexers/"+def.Name, def)
	return err
}
