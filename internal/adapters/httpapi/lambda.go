package httpapi

import (
	"bytes"
	"context"
	"encoding/base64"
	"net/http"
	"net/url"
	"strings"

	"github.com/aws/aws-lambda-go/events"
)

// HandleLambda atiende un evento de API Gateway (HTTP API v2) con las mismas rutas del server.
func (s *Server) HandleLambda(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	body := req.Body
	if req.IsBase64Encoded {
		dec, err := base64.StdEncoding.DecodeString(req.Body)
		if err != nil {
			return events.APIGatewayV2HTTPResponse{StatusCode: http.StatusBadRequest, Body: "invalid base64"}, nil
		}
		body = string(dec)
	}

	path := req.RawPath
	if path == "" {
		path = req.RequestContext.HTTP.Path
	}
	u := &url.URL{Path: path, RawQuery: req.RawQueryString}

	method := req.RequestContext.HTTP.Method
	if method == "" {
		method = http.MethodGet
	}
	r, err := http.NewRequestWithContext(ctx, method, u.String(), strings.NewReader(body))
	if err != nil {
		return events.APIGatewayV2HTTPResponse{StatusCode: http.StatusBadRequest, Body: err.Error()}, nil
	}
	for k, v := range req.Headers {
		r.Header.Set(k, v)
	}
	r.RemoteAddr = req.RequestContext.HTTP.SourceIP

	w := newBufferedWriter()
	s.ServeHTTP(w, r)

	headers := make(map[string]string, len(w.header))
	for k := range w.header {
		headers[k] = w.header.Get(k)
	}
	return events.APIGatewayV2HTTPResponse{
		StatusCode: w.status,
		Headers:    headers,
		Body:       w.buf.String(),
	}, nil
}

type bufferedWriter struct {
	header http.Header
	buf    bytes.Buffer
	status int
	wrote  bool
}

func newBufferedWriter() *bufferedWriter {
	return &bufferedWriter{header: http.Header{}, status: http.StatusOK}
}

func (w *bufferedWriter) Header() http.Header { return w.header }

func (w *bufferedWriter) WriteHeader(code int) {
	if w.wrote {
		return
	}
	w.status, w.wrote = code, true
}

func (w *bufferedWriter) Write(p []byte) (int, error) {
	w.wrote = true
	return w.buf.Write(p)
}
