package fetch

import (
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/tomkerrigan/fightstats-scraper/internal/config"
)

// HTTPFetcher implements plain HTTP page retrieval
type HTTPFetcher struct {
	Config *config.AppConfig
	Proxy  *ProxyManager
}

// NewHTTPFetcher creates a new HTTP fetcher
func NewHTTPFetcher(config *config.AppConfig) *HTTPFetcher {
	return &HTTPFetcher{
		Config: config,
		Proxy:  NewProxyManager(&config.Proxies),
	}
}

// Fetch retrieves the raw HTML of a URL after validating it against the
// expected page kind. A timeout counts as a failed fetch.
func (f *HTTPFetcher) Fetch(url string, kind Kind) (string, error) {
	url = strings.TrimSpace(url)
	if err := ValidateKind(url, kind); err != nil {
		return "", fmt.Errorf("%s page %s: %w", kind, url, err)
	}

	var retries int
	var lastErr error

	// Create a transport with proxy support
	transport := &http.Transport{}

	if f.Config.Proxies.Enabled && len(f.Config.Proxies.List) > 0 {
		if _, err := f.Proxy.ApplyToTransport(transport); err != nil {
			return "", fmt.Errorf("applying proxy: %w", err)
		}
	}

	client := &http.Client{
		Transport: transport,
		Timeout:   f.Config.Scraper.Timeout,
	}

	for retries <= f.Config.Scraper.MaxRetries {
		if retries > 0 {
			// Wait before retrying
			retryWait := f.Config.Scraper.RetryDelay * time.Duration(retries)
			time.Sleep(retryWait)

			// Rotate proxy if enabled
			if f.Config.Proxies.Enabled && f.Config.Proxies.Rotate && len(f.Config.Proxies.List) > 1 {
				f.Proxy.ApplyToTransport(transport)
			}
		}

		req, err := http.NewRequest(http.MethodGet, url, nil)
		if err != nil {
			lastErr = err
			retries++
			continue
		}

		// Set a random browser-like user agent
		if len(f.Config.Scraper.UserAgents) > 0 {
			userAgent := f.Config.Scraper.UserAgents[rand.Intn(len(f.Config.Scraper.UserAgents))]
			req.Header.Set("User-Agent", userAgent)
		}

		resp, err := client.Do(req)
		if err != nil {
			lastErr = err
			retries++
			continue
		}

		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			lastErr = fmt.Errorf("received non-200 status code: %d", resp.StatusCode)
			retries++
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = err
			retries++
			continue
		}

		return string(body), nil
	}

	return "", fmt.Errorf("%s page %s after %d retries: %v: %w", kind, url, retries, lastErr, ErrFetch)
}
