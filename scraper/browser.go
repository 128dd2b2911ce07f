package scraper

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/chromedp/chromedp"

	"pharmacy-locator/config"
	"pharmacy-locator/utils"
)

// settleDelay gives client-side widgets time to render before the DOM is read.
const settleDelay = 4 * time.Second

// BrowserClient renders GET requests in headless Chrome and returns the final
// DOM as the response body. Every other method goes to the fallback client.
type BrowserClient struct {
	fallback Client
	logger   *utils.Logger
	timeout  time.Duration

	allocCtx    context.Context
	cancelAlloc context.CancelFunc
	browserCtx  context.Context
	cancelTab   context.CancelFunc

	startOnce sync.Once
	startErr  error
}

// NewBrowserClient prepares a Chrome allocator. Chrome itself is started
// lazily on the first rendered request.
func NewBrowserClient(cfg *config.Config, fallback Client, logger *utils.Logger) *BrowserClient {
	chromeBin := findChromeBinary(cfg.ChromeBin)
	logger.Info("[browser] Using browser binary: %s", chromeBin)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-setuid-sandbox", true),
		chromedp.UserAgent(cfg.UserAgent),
	)
	if chromeBin != "" {
		opts = append(opts, chromedp.ExecPath(chromeBin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)
	// Suppress chromedp log noise
	browserCtx, cancelTab := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))

	return &BrowserClient{
		fallback:    fallback,
		logger:      logger,
		timeout:     cfg.RequestTimeout + settleDelay,
		allocCtx:    allocCtx,
		cancelAlloc: cancelAlloc,
		browserCtx:  browserCtx,
		cancelTab:   cancelTab,
	}
}

// Do implements Client.
func (b *BrowserClient) Do(ctx context.Context, req Request) (*Response, error) {
	if req.Method != "" && req.Method != http.MethodGet {
		return b.fallback.Do(ctx, req)
	}

	// Tabs only share one browser once it is running.
	b.startOnce.Do(func() { b.startErr = chromedp.Run(b.browserCtx) })
	if b.startErr != nil {
		return nil, fmt.Errorf("scraper: start browser: %w", b.startErr)
	}

	tabCtx, cancel := chromedp.NewContext(b.browserCtx)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	tabCtx, cancelTimeout := context.WithTimeout(tabCtx, b.timeout)
	defer cancelTimeout()

	var html string
	err := chromedp.Run(tabCtx,
		chromedp.Navigate(req.URL),
		chromedp.Sleep(settleDelay),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("scraper: render %s: %w", req.URL, err)
	}

	b.logger.Debug("[browser] Rendered %s (%d bytes)", req.URL, len(html))
	return &Response{URL: req.URL, Status: http.StatusOK, Body: []byte(html)}, nil
}

// Close shuts the browser down.
func (b *BrowserClient) Close() {
	b.cancelTab()
	b.cancelAlloc()
}

// findChromeBinary locates Chrome/Chromium binary.
func findChromeBinary(configured string) string {
	if configured != "" {
		return configured
	}
	if bin := os.Getenv("CHROME_BIN"); bin != "" {
		return bin
	}

	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
		"/opt/google/chrome/google-chrome",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
