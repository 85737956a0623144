// Package discover crawls the paginated completed-events listing and
// produces event descriptors in the site's most-recent-first order.
package discover

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/tomkerrigan/fightstats-scraper/internal/config"
	"github.com/tomkerrigan/fightstats-scraper/internal/extract"
	"github.com/tomkerrigan/fightstats-scraper/internal/fetch"
	"github.com/tomkerrigan/fightstats-scraper/pkg/models"
)

// maxPages is the hard safety ceiling on listing pages per crawl.
const maxPages = 100

// Options bound one discovery run. Zero values disable a bound.
type Options struct {
	// Limit caps the number of returned events.
	Limit int
	// CutoffYear stops the crawl at the first event dated in that year or
	// earlier; such events are excluded.
	CutoffYear int
}

// Discoverer crawls event listing pages
type Discoverer struct {
	Fetcher   fetch.Fetcher
	BaseURL   string
	PageDelay time.Duration

	// Sleep spaces out page fetches; tests replace it.
	Sleep func(time.Duration)
}

// New creates a new event discoverer
func New(fetcher fetch.Fetcher, crawl *config.CrawlConfig) *Discoverer {
	return &Discoverer{
		Fetcher:   fetcher,
		BaseURL:   crawl.BaseURL,
		PageDelay: crawl.PageDelay,
		Sleep:     time.Sleep,
	}
}

// crawlState drives the pagination loop. Modeling the stop conditions as
// explicit transitions keeps limit, cutoff, empty-page and page-ceiling
// stops independently testable.
type crawlState int

const (
	stateFetchPage crawlState = iota
	stateScanRows
	stateNextPage
	stateDone
)

// Events crawls listing pages until a bound is hit and returns the
// discovered events. A listing page whose event table is missing entirely is
// a fatal condition: it means the remote layout changed.
func (d *Discoverer) Events(opts Options) ([]models.EventDescriptor, error) {
	var events []models.EventDescriptor
	page := 1
	state := stateFetchPage
	var rows *goquery.Selection

	for state != stateDone {
		switch state {
		case stateFetchPage:
			html, err := d.Fetcher.Fetch(d.pageURL(page), fetch.KindListing)
			if err != nil {
				if page == 1 {
					return nil, fmt.Errorf("listing page %d: %w", page, err)
				}
				// A mid-crawl fetch failure ends the crawl with what we have.
				state = stateDone
				continue
			}

			doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
			if err != nil {
				return nil, fmt.Errorf("listing page %d: %w", page, err)
			}

			var ok bool
			rows, ok = listingRows(doc)
			if !ok {
				if page == 1 {
					return nil, fmt.Errorf("listing page %d: event table: %w", page, extract.ErrStructureNotFound)
				}
				state = stateDone
				continue
			}

			// A page carrying only its header row is the end of history.
			if rows.Length() <= 1 {
				state = stateDone
				continue
			}

			state = stateScanRows

		case stateScanRows:
			added, next := d.scanRows(rows, opts, &events)
			if next == stateDone || added == 0 {
				state = stateDone
				continue
			}
			state = stateNextPage

		case stateNextPage:
			page++
			if page > maxPages {
				state = stateDone
				continue
			}
			d.Sleep(d.PageDelay)
			state = stateFetchPage
		}
	}

	// The first entry collected on the very first page is a listing header
	// artifact (the not-yet-completed next event), not a completed event.
	if len(events) > 0 {
		events = events[1:]
	}
	return events, nil
}

// scanRows collects the events of one page, skipping the per-page header row,
// and reports whether a bound ended the crawl.
func (d *Discoverer) scanRows(rows *goquery.Selection, opts Options, events *[]models.EventDescriptor) (int, crawlState) {
	added := 0
	next := stateNextPage

	rows.EachWithBreak(func(i int, row *goquery.Selection) bool {
		if i == 0 {
			return true // header row
		}

		event, ok := eventFromRow(row)
		if !ok {
			return true
		}

		if opts.CutoffYear > 0 && eventYear(event.Date) <= opts.CutoffYear {
			next = stateDone
			return false
		}

		*events = append(*events, event)
		added++

		// One extra entry covers the header artifact dropped at the end.
		if opts.Limit > 0 && len(*events) >= opts.Limit+1 {
			next = stateDone
			return false
		}
		return true
	})

	return added, next
}

func (d *Discoverer) pageURL(page int) string {
	if page == 1 {
		return d.BaseURL + "/statistics/events/completed"
	}
	return fmt.Sprintf("%s/statistics/events/completed?page=%d", d.BaseURL, page)
}

// listingRows locates the event rows of a listing page, header row included.
func listingRows(doc *goquery.Document) (*goquery.Selection, bool) {
	sel := doc.Find("tr.b-statistics__table-row")
	return sel, sel.Length() > 0
}

// eventFromRow reads one listing row: the first cell holds the event link
// and date span, the second the location.
func eventFromRow(row *goquery.Selection) (models.EventDescriptor, bool) {
	cells := row.Find("td.b-statistics__table-col")
	if cells.Length() < 2 {
		return models.EventDescriptor{}, false
	}

	link := cells.Eq(0).Find("a").First()
	dateSpan := cells.Eq(0).Find("span").First()
	if link.Length() == 0 || dateSpan.Length() == 0 {
		return models.EventDescriptor{}, false
	}

	url, _ := link.Attr("href")
	return models.EventDescriptor{
		Name:     strings.TrimSpace(link.Text()),
		Date:     strings.TrimSpace(dateSpan.Text()),
		Location: strings.TrimSpace(cells.Eq(1).Text()),
		URL:      url,
	}, true
}

// eventYear extracts the year from a "Month DD, YYYY" date; zero when absent.
func eventYear(date string) int {
	fields := strings.Fields(date)
	if len(fields) == 0 {
		return 0
	}
	year, err := strconv.Atoi(fields[len(fields)-1])
	if err != nil {
		return 0
	}
	return year
}
