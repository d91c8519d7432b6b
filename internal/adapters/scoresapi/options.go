package scoresapi

import (
	"context"
	"net/http"
)

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithRequestIDFunc: de dónde sacar el request id entrante (ej: middleware.GetReqID de chi).
func WithRequestIDFunc(f func(ctx context.Context) string) Option {
	return func(c *Client) { c.requestID = f }
}
