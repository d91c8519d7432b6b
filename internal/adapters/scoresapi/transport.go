package scoresapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Client struct {
	http      *http.Client
	baseURL   string
	requestID func(ctx context.Context) string
}

// New: baseURL es el origen del backend de scores (ej: https://scores.example.com).
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		http:    &http.Client{Timeout: 10 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Client) BaseURL() string { return c.baseURL }

// Get: GET base+path[?params] y decodifica el JSON en out.
func (c *Client) Get(ctx context.Context, path string, params url.Values, out any) error {
	return c.doJSON(ctx, http.MethodGet, path, params, nil, out)
}

// Post: POST base+path con body en JSON y decodifica la respuesta en out.
func (c *Client) Post(ctx context.Context, path string, body any, out any) error {
	return c.doJSON(ctx, http.MethodPost, path, nil, body, out)
}

// doJSON: arma la URL, manda X-Request-ID, sin reintentos.
func (c *Client) doJSON(ctx context.Context, method, path string, q url.Values, body any, out any) error {
	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("scores api encode: %w", err)
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, rd)
	if err != nil {
		return fmt.Errorf("scores api request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-ID", c.reqID(ctx))

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("scores api http: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(res.Body, 4<<10))
		return &APIError{Status: res.StatusCode, Body: strings.TrimSpace(string(b))}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("scores api decode %s %s: %w", method, path, err)
	}
	return nil
}

func (c *Client) reqID(ctx context.Context) string {
	if c.requestID != nil {
		if id := c.requestID(ctx); id != "" {
			return id
		}
	}
	return uuid.NewString()
}
