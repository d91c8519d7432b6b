package ballchasing

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const DefaultBaseURL = "https://ballchasing.com/api"

type Client struct {
	http    *http.Client
	baseURL string
	apiKey  string
}

func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		http:    &http.Client{Timeout: 30 * time.Second},
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func trimBase(u string) string { return strings.TrimRight(u, "/") }

// getJSON: GET base+path[?params]; la key va cruda en Authorization (sin Bearer).
func (c *Client) getJSON(ctx context.Context, path string, q url.Values, out any) error {
	if c.apiKey == "" {
		return ErrMissingAPIKey
	}
	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("ballchasing request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", c.apiKey)

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("ballchasing http: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(res.Body, 4<<10))
		return &APIError{Status: res.StatusCode, Body: strings.TrimSpace(string(b))}
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("ballchasing decode %s: %w", path, err)
	}
	return nil
}
