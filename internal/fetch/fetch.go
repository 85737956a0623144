// Package fetch retrieves raw HTML for the four kinds of pages the scraper
// reads: the event listing, event detail pages, fight detail pages and
// fighter profile pages. A URL is validated against its kind's path marker
// before any network call is made.
package fetch

import (
	"errors"
	"strings"

	"github.com/tomkerrigan/fightstats-scraper/internal/config"
)

// ErrInvalidURL marks a URL that does not match the path pattern expected
// for its page kind; such URLs are rejected without a network call.
var ErrInvalidURL = errors.New("url does not match page kind")

// ErrFetch marks a network or HTTP-status failure after retries.
var ErrFetch = errors.New("fetch failed")

// Kind identifies which kind of page a URL is expected to point at.
type Kind int

const (
	// KindListing is the paginated completed-events listing.
	KindListing Kind = iota
	// KindEvent is a single event's fight card page.
	KindEvent
	// KindFight is a single fight's statistics page.
	KindFight
	// KindFighter is a fighter's profile page.
	KindFighter
)

// marker returns the path substring a URL of this kind must contain.
// The listing page has no marker.
func (k Kind) marker() string {
	switch k {
	case KindEvent:
		return "event-details"
	case KindFight:
		return "fight-details"
	case KindFighter:
		return "fighter-details"
	default:
		return ""
	}
}

// String names the kind for log output.
func (k Kind) String() string {
	switch k {
	case KindListing:
		return "listing"
	case KindEvent:
		return "event"
	case KindFight:
		return "fight"
	case KindFighter:
		return "fighter"
	default:
		return "unknown"
	}
}

// Fetcher defines the interface for retrieving a page's raw HTML
type Fetcher interface {
	Fetch(url string, kind Kind) (string, error)
}

// New creates a new fetcher based on the configuration
func New(config *config.AppConfig) Fetcher {
	if config.Browser.Enabled {
		return NewBrowserFetcher(config)
	}
	return NewHTTPFetcher(config)
}

// ValidateKind checks a URL against its kind's required path marker.
func ValidateKind(url string, kind Kind) error {
	if m := kind.marker(); m != "" && !strings.Contains(url, m) {
		return ErrInvalidURL
	}
	return nil
}
