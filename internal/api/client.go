package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/five82/tally/internal/apperr"
	"github.com/five82/tally/internal/logging"
)

const (
	// DefaultBaseURL is a placeholder; configure a real endpoint in config.toml.
	DefaultBaseURL   = "https://api.example.com"
	defaultUserAgent = "tally/0.1"
)

// Client performs JSON requests against a base URL. It holds no mutable state
// and is safe for concurrent use.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	log       logrus.FieldLogger
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the transport handle.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithLogger sets the request logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Client) { c.log = l }
}

// New builds a Client. An empty baseURL uses DefaultBaseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL:   base,
		http:      &http.Client{}, // transport defaults only; callers bound requests with ctx
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = logging.Discard()
	}
	return c, nil
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Fetch issues a GET for endpoint and decodes the JSON body into T.
func Fetch[T any](ctx context.Context, c *Client, endpoint string) (T, error) {
	var out T
	if c == nil {
		return out, apperr.UnknownError("client is nil")
	}
	reqURL, err := c.resolve(endpoint)
	if err != nil {
		return out, err
	}
	err = c.do(ctx, http.MethodGet, reqURL, nil, &out)
	return out, err
}

// Post encodes body as JSON, POSTs it to endpoint and decodes the JSON
// response into T.
func Post[T, U any](ctx context.Context, c *Client, endpoint string, body U) (T, error) {
	var out T
	if c == nil {
		return out, apperr.UnknownError("client is nil")
	}
	reqURL, err := c.resolve(endpoint)
	if err != nil {
		return out, err
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return out, apperr.Wrap(apperr.Encoding, err)
	}
	err = c.do(ctx, http.MethodPost, reqURL, payload, &out)
	return out, err
}

// resolve joins base and endpoint as base + "/" + endpoint.
func (c *Client) resolve(endpoint string) (*url.URL, error) {
	trimmed := strings.TrimSpace(endpoint)
	if trimmed == "" {
		return nil, apperr.NetworkError("invalid URL")
	}
	raw := strings.TrimRight(c.baseURL.String(), "/") + "/" + strings.TrimLeft(trimmed, "/")
	u, err := url.Parse(raw)
	if err != nil {
		return nil, apperr.Wrapf(apperr.Network, err, "invalid URL")
	}
	return u, nil
}

func (c *Client) do(ctx context.Context, method string, reqURL *url.URL, payload []byte, dest any) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), body)
	if err != nil {
		return apperr.Wrapf(apperr.Network, err, "create request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log := c.log.WithFields(logrus.Fields{"method": method, "url": reqURL.String()})
	resp, err := c.http.Do(req)
	if err != nil {
		log.WithError(err).Warn("request failed")
		return apperr.Wrapf(apperr.Network, err, "execute request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.WithField("status", resp.StatusCode).Warn("unexpected response status")
		return apperr.Newf(apperr.Network, "invalid response: status %d", resp.StatusCode)
	}
	log.WithField("status", resp.StatusCode).Debug("request completed")

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		var netErr net.Error
		if errors.As(err, &netErr) {
			return apperr.Wrapf(apperr.Network, err, "read response")
		}
		return apperr.Wrapf(apperr.Decoding, err, "decode response")
	}
	return nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, apperr.Wrapf(apperr.Network, err, "parse base url %q", raw)
	}
	if u.Host == "" {
		return nil, apperr.Newf(apperr.Network, "base url %q has no host", raw)
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
