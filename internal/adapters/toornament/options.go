package toornament

import "net/http"

type Option func(*Client)

// WithHTTPClient es el cliente de transporte (token y API); oauth2 lo envuelve.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.base = h }
}

func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = trimRight(u) }
}

func WithTokenURL(u string) Option {
	return func(c *Client) { c.tokenURL = u }
}
