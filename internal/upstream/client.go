package upstream

import (
	"errors"
	"net/http"

	"github.com/ideagen/ideagen/backend/go-services/internal/config"
	"github.com/sashabaranov/go-openai"
)

// headerTransport adds the provider attribution headers to every request.
type headerTransport struct {
	base    http.RoundTripper
	referer string
	title   string
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	if t.referer != "" {
		req.Header.Set("HTTP-Referer", t.referer)
	}
	if t.title != "" {
		req.Header.Set("X-Title", t.title)
	}
	return t.base.RoundTrip(req)
}

// NewClient builds a client for the configured OpenAI-compatible provider,
// authenticated with the caller's key. Clients are per request since the key
// belongs to the end user.
func NewClient(cfg config.UpstreamConfig, apiKey string) *openai.Client {
	oc := openai.DefaultConfig(apiKey)
	if cfg.BaseURL != "" {
		oc.BaseURL = cfg.BaseURL
	}
	oc.HTTPClient = &http.Client{Transport: &headerTransport{
		base:    http.DefaultTransport,
		referer: cfg.Referer,
		title:   cfg.Title,
	}}
	return openai.NewClientWithConfig(oc)
}

// StatusOf returns the HTTP status the provider answered with, or 0 when the
// error did not come from an HTTP response.
func StatusOf(err error) int {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode
	}
	return 0
}

// Rejected reports whether the provider refused the credentials.
func Rejected(err error) bool {
	s := StatusOf(err)
	return s == http.StatusUnauthorized || s == http.StatusForbidden
}
