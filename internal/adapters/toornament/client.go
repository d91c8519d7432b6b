package toornament

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

const (
	DefaultBaseURL  = "https://api.toornament.com/organizer/v2"
	DefaultTokenURL = "https://api.toornament.com/oauth/v2/token"
)

// Scopes que pide el import (lectura de participantes y resultados).
var Scopes = []string{"organizer:view", "organizer:admin", "organizer:participant", "organizer:result"}

type Credentials struct {
	APIKey       string
	ClientID     string
	ClientSecret string
}

type Client struct {
	http     *http.Client
	base     *http.Client
	baseURL  string
	tokenURL string
	apiKey   string
}

// New: el token se pide con client credentials en el primer request y oauth2 lo renueva solo.
func New(creds Credentials, opts ...Option) *Client {
	c := &Client{
		base:     &http.Client{Timeout: 30 * time.Second},
		baseURL:  DefaultBaseURL,
		tokenURL: DefaultTokenURL,
		apiKey:   creds.APIKey,
	}
	for _, o := range opts {
		o(c)
	}

	cc := &clientcredentials.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		TokenURL:     c.tokenURL,
		Scopes:       Scopes,
		AuthStyle:    oauth2.AuthStyleInParams,
	}
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, c.base)
	c.http = cc.Client(ctx)
	c.http.Timeout = c.base.Timeout
	return c
}

type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("toornament status %d: %s", e.Status, e.Body)
}

// getJSON: toornament pagina con el header Range (ej: "participants=0-49").
func (c *Client) getJSON(ctx context.Context, path, rangeHeader string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("toornament request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Api-Key", c.apiKey)
	if rangeHeader != "" {
		req.Header.Set("Range", rangeHeader)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("toornament http: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(res.Body, 4<<10))
		return &APIError{Status: res.StatusCode, Body: strings.TrimSpace(string(b))}
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("toornament decode %s: %w", path, err)
	}
	return nil
}

func tournamentPath(id, tail string) string {
	return "/tournaments/" + url.PathEscape(id) + tail
}
