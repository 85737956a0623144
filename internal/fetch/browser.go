package fetch

import (
	"context"
	"fmt"
	"strings"

	"github.com/chromedp/chromedp"
	"github.com/tomkerrigan/fightstats-scraper/internal/config"
)

// BrowserFetcher implements browser-based page retrieval for pages that
// need JavaScript rendering
type BrowserFetcher struct {
	Config *config.AppConfig
}

// NewBrowserFetcher creates a new browser fetcher
func NewBrowserFetcher(config *config.AppConfig) *BrowserFetcher {
	return &BrowserFetcher{
		Config: config,
	}
}

// Fetch retrieves a URL using a headless browser after validating it
// against the expected page kind
func (f *BrowserFetcher) Fetch(url string, kind Kind) (string, error) {
	url = strings.TrimSpace(url)
	if err := ValidateKind(url, kind); err != nil {
		return "", fmt.Errorf("%s page %s: %w", kind, url, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), f.Config.Scraper.Timeout)
	defer cancel()

	// Configure browser options
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", f.Config.Browser.Headless),
		chromedp.UserAgent(f.Config.Browser.UserAgent),
	)

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.Sleep(f.Config.Browser.WaitTime),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", fmt.Errorf("%s page %s: %v: %w", kind, url, err, ErrFetch)
	}

	return html, nil
}
