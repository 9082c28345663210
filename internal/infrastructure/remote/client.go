package remote

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/jmgilman/go/errors"

	"github.com/recipebox/backend/internal/domain"
	"github.com/recipebox/backend/internal/logger"
)

const userAgent = "RecipeBox/1.0"

// Compile-time interface check.
var _ domain.Fetcher = (*Client)(nil)

// Client performs single-attempt GET requests and maps failures to the
// domain error codes. It never retries.
type Client struct {
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient creates a client. A nil httpClient selects http.DefaultClient.
func NewClient(httpClient *http.Client, log *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		httpClient: httpClient,
		log:        logger.Component(log, "remote"),
	}
}

// FetchBytes issues a GET and returns the body of a 200 response.
func (c *Client) FetchBytes(ctx context.Context, rawURL string) ([]byte, error) {
	reqURL, err := parseURL(rawURL)
	if err != nil {
		return nil, err
	}

	resp, err := c.doRequest(ctx, reqURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.DebugContext(ctx, "unexpected status", "url", rawURL, "status", resp.StatusCode)
		return nil, domain.NewStatusError(resp.StatusCode, rawURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		wrapped := errors.Wrap(err, domain.CodeInvalidResponse, "failed to read response body")
		return nil, errors.WithContext(wrapped, "url", rawURL)
	}

	c.log.DebugContext(ctx, "fetched", "url", rawURL, "bytes", len(body))
	return body, nil
}

// FetchJSON issues a GET and decodes the body of a 200 response into out.
// Every decode failure is reported as CodeInvalidData.
func (c *Client) FetchJSON(ctx context.Context, rawURL string, out any) error {
	body, err := c.FetchBytes(ctx, rawURL)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		c.log.DebugContext(ctx, "decode failed", "url", rawURL, "error", err)
		wrapped := errors.Wrap(err, domain.CodeInvalidData, "the data received is invalid")
		return errors.WithContext(wrapped, "url", rawURL)
	}
	return nil
}

// doRequest executes a GET with the service headers.
func (c *Client) doRequest(ctx context.Context, reqURL *url.URL) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, domain.NewInvalidURLError(reqURL.String())
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.WarnContext(ctx, "request failed", "url", reqURL.String(), "error", err)
		wrapped := errors.Wrap(err, domain.CodeInvalidResponse, "the response from the server is invalid")
		return nil, errors.WithContext(wrapped, "url", reqURL.String())
	}
	return resp, nil
}

// parseURL accepts absolute http and https URLs only.
func parseURL(rawURL string) (*url.URL, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return nil, domain.NewInvalidURLError(rawURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, domain.NewInvalidURLError(rawURL)
	}
	return u, nil
}
