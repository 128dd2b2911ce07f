package scraper

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"

	"pharmacy-locator/config"
)

// ErrNoData is returned by the orchestrator when no brand produced records.
var ErrNoData = errors.New("scraper: no brand produced data")

// StatusError reports a response with a non-200 status.
type StatusError struct {
	URL    string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("scraper: %s returned status %d", e.URL, e.Status)
}

// Request describes one HTTP call. Body is JSON-encoded unless Form is set,
// in which case the form is sent urlencoded.
type Request struct {
	Method  string
	URL     string
	Headers map[string]string
	Body    any
	Form    map[string]string
}

// Response is the transport-neutral result of a request.
type Response struct {
	URL    string
	Status int
	Body   []byte
}

// Text returns the body as a string.
func (r *Response) Text() string {
	return string(r.Body)
}

// JSON decodes the body into v.
func (r *Response) JSON(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("scraper: decode %s: %w", r.URL, err)
	}
	return nil
}

// Any decodes the body into a generic JSON tree.
func (r *Response) Any() (any, error) {
	var v any
	err := r.JSON(&v)
	return v, err
}

// Client executes requests. Implementations must be safe for concurrent use.
type Client interface {
	Do(ctx context.Context, req Request) (*Response, error)
}

// Fetch runs req and turns any non-200 status into a *StatusError.
func Fetch(ctx context.Context, c Client, req Request) (*Response, error) {
	if req.Method == "" {
		req.Method = http.MethodGet
	}
	resp, err := c.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	if resp.Status != http.StatusOK {
		return resp, &StatusError{URL: req.URL, Status: resp.Status}
	}
	return resp, nil
}

// RestyClient is the default Client backed by resty.
type RestyClient struct {
	http *resty.Client
}

// NewRestyClient builds a resty client with the configured timeout and user
// agent. The Cloudflare bypass transport is layered on when enabled.
func NewRestyClient(cfg *config.Config) *RestyClient {
	client := resty.New()
	client.SetTimeout(cfg.RequestTimeout)
	client.SetHeader("User-Agent", cfg.UserAgent)
	client.SetHeader("Accept-Language", "en-US,en;q=0.9")
	if cfg.CloudflareBypass {
		client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	}
	return &RestyClient{http: client}
}

// Do implements Client.
func (c *RestyClient) Do(ctx context.Context, req Request) (*Response, error) {
	r := c.http.R().SetContext(ctx)
	if len(req.Headers) > 0 {
		r.SetHeaders(req.Headers)
	}
	switch {
	case req.Form != nil:
		r.SetFormData(req.Form)
	case req.Body != nil:
		r.SetBody(req.Body)
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}
	resp, err := r.Execute(method, req.URL)
	if err != nil {
		return nil, fmt.Errorf("scraper: %s %s: %w", method, req.URL, err)
	}
	return &Response{URL: req.URL, Status: resp.StatusCode(), Body: resp.Body()}, nil
}
