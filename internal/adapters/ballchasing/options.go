package ballchasing

import "net/http"

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithBaseURL apunta el cliente a otro origen (tests, mirror).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = trimBase(u) }
}
