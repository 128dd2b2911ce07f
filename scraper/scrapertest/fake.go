// Package scrapertest provides an in-memory scraper.Client for handler tests.
package scrapertest

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"pharmacy-locator/config"
	"pharmacy-locator/scraper"
)

// Route is a canned reply.
type Route struct {
	Status int
	Body   string
	Err    error
}

// Client answers requests from a URL-keyed route table and records every
// request it sees. Unknown URLs get a 404.
type Client struct {
	mu       sync.Mutex
	routes   map[string]Route
	requests []scraper.Request
}

// New returns a Client answering 200 with the given bodies.
func New(bodies map[string]string) *Client {
	c := &Client{routes: make(map[string]Route, len(bodies))}
	for url, body := range bodies {
		c.routes[url] = Route{Status: http.StatusOK, Body: body}
	}
	return c
}

// Handle installs or replaces a route.
func (c *Client) Handle(url string, r Route) *Client {
	c.mu.Lock()
	defer c.mu.Unlock()
	if r.Status == 0 && r.Err == nil {
		r.Status = http.StatusOK
	}
	c.routes[url] = r
	return c
}

// Do implements scraper.Client.
func (c *Client) Do(ctx context.Context, req scraper.Request) (*scraper.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.requests = append(c.requests, req)
	r, ok := c.routes[req.URL]
	c.mu.Unlock()

	if !ok {
		return &scraper.Response{URL: req.URL, Status: http.StatusNotFound}, nil
	}
	if r.Err != nil {
		return nil, fmt.Errorf("scrapertest: %s: %w", req.URL, r.Err)
	}
	return &scraper.Response{URL: req.URL, Status: r.Status, Body: []byte(r.Body)}, nil
}

// Requests returns a copy of the requests seen so far.
func (c *Client) Requests() []scraper.Request {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]scraper.Request(nil), c.requests...)
}

// Deps wraps the client in handler dependencies with the production
// endpoint table and a silent logger.
func (c *Client) Deps() scraper.Deps {
	return scraper.Deps{Client: c, Endpoints: config.DefaultEndpoints(), HeavyBatch: 5, LightBatch: 10}
}
