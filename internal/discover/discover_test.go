package discover_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/tomkerrigan/fightstats-scraper/internal/config"
	"github.com/tomkerrigan/fightstats-scraper/internal/discover"
	"github.com/tomkerrigan/fightstats-scraper/internal/extract"
	"github.com/tomkerrigan/fightstats-scraper/internal/fetch"
	. "github.com/smartystreets/goconvey/convey"
)

const baseURL = "http://x"

// stubFetcher serves canned listing pages and counts fetches.
type stubFetcher struct {
	pages map[string]string
	calls int
}

func (f *stubFetcher) Fetch(url string, kind fetch.Kind) (string, error) {
	if err := fetch.ValidateKind(url, kind); err != nil {
		return "", err
	}
	f.calls++
	html, ok := f.pages[url]
	if !ok {
		return "", fmt.Errorf("page %s: %w", url, fetch.ErrFetch)
	}
	return html, nil
}

func eventRow(name, date, location string) string {
	return fmt.Sprintf(`<tr class="b-statistics__table-row">
  <td class="b-statistics__table-col"><a href="%s/event-details/%s">%s</a> <span class="b-statistics__date">%s</span></td>
  <td class="b-statistics__table-col">%s</td>
</tr>`, baseURL, strings.ReplaceAll(strings.ToLower(name), " ", "-"), name, date, location)
}

const listingHeader = `<tr class="b-statistics__table-row"><th class="b-statistics__table-col_header">Name/date</th><th>Location</th></tr>`

func listingPage(rows ...string) string {
	return `<html><body><table><tbody>` + listingHeader + strings.Join(rows, "\n") + `</tbody></table></body></html>`
}

func pageURL(page int) string {
	if page == 1 {
		return baseURL + "/statistics/events/completed"
	}
	return fmt.Sprintf("%s/statistics/events/completed?page=%d", baseURL, page)
}

func newDiscoverer(fetcher fetch.Fetcher) *discover.Discoverer {
	d := discover.New(fetcher, &config.CrawlConfig{
		BaseURL:   baseURL,
		PageDelay: time.Second,
	})
	d.Sleep = func(time.Duration) {}
	return d
}

// rowsFor generates n completed-event rows named after a page.
func rowsFor(page, n int, year int) []string {
	rows := make([]string, 0, n)
	for i := 0; i < n; i++ {
		rows = append(rows, eventRow(
			fmt.Sprintf("Card %d %d", page, i+1),
			fmt.Sprintf("June %02d, %d", i+1, year),
			"Las Vegas, Nevada, USA",
		))
	}
	return rows
}

func TestEvents(t *testing.T) {
	Convey("Given a two-page listing with a header artifact", t, func() {
		// The first row of page 1 is the upcoming-event artifact.
		page1 := append([]string{eventRow("Upcoming Card", "December 25, 2025", "TBD")}, rowsFor(1, 6, 2025)...)
		fetcher := &stubFetcher{pages: map[string]string{
			pageURL(1): listingPage(page1...),
			pageURL(2): listingPage(rowsFor(2, 6, 2024)...),
			pageURL(3): listingPage(),
		}}
		d := newDiscoverer(fetcher)

		Convey("A limit of 10 returns exactly 10 events, artifact excluded", func() {
			events, err := d.Events(discover.Options{Limit: 10})
			So(err, ShouldBeNil)
			So(len(events), ShouldEqual, 10)
			So(events[0].Name, ShouldEqual, "Card 1 1")
			for _, event := range events {
				So(event.Name, ShouldNotEqual, "Upcoming Card")
			}
		})

		Convey("Without a limit the crawl stops at the empty page", func() {
			events, err := d.Events(discover.Options{})
			So(err, ShouldBeNil)
			So(len(events), ShouldEqual, 12)
			So(fetcher.calls, ShouldEqual, 3)
		})

		Convey("Events keep the listing's most-recent-first order", func() {
			events, err := d.Events(discover.Options{})
			So(err, ShouldBeNil)
			So(events[0].Name, ShouldEqual, "Card 1 1")
			So(events[6].Name, ShouldEqual, "Card 2 1")
			So(events[0].Date, ShouldEqual, "June 01, 2025")
			So(events[0].Location, ShouldEqual, "Las Vegas, Nevada, USA")
			So(events[0].URL, ShouldEqual, baseURL+"/event-details/card-1-1")
		})

		Convey("A year cutoff excludes events of that year and older", func() {
			events, err := d.Events(discover.Options{CutoffYear: 2024})
			So(err, ShouldBeNil)
			So(len(events), ShouldEqual, 6)
			for _, event := range events {
				So(event.Date, ShouldEndWith, "2025")
			}
		})
	})

	Convey("Given a listing whose table is missing entirely", t, func() {
		fetcher := &stubFetcher{pages: map[string]string{
			pageURL(1): "<html><body><p>maintenance</p></body></html>",
		}}
		d := newDiscoverer(fetcher)

		_, err := d.Events(discover.Options{})

		Convey("Discovery halts with a structure error", func() {
			So(errors.Is(err, extract.ErrStructureNotFound), ShouldBeTrue)
		})
	})

	Convey("Given a first page that fails to fetch", t, func() {
		d := newDiscoverer(&stubFetcher{pages: map[string]string{}})

		_, err := d.Events(discover.Options{})

		Convey("Discovery surfaces the fetch failure", func() {
			So(errors.Is(err, fetch.ErrFetch), ShouldBeTrue)
		})
	})

	Convey("Given an endless listing", t, func() {
		pages := make(map[string]string)
		for p := 1; p <= 200; p++ {
			pages[pageURL(p)] = listingPage(rowsFor(p, 5, 2025)...)
		}
		fetcher := &stubFetcher{pages: pages}
		d := newDiscoverer(fetcher)

		events, err := d.Events(discover.Options{})

		Convey("The crawl stops at the page ceiling", func() {
			So(err, ShouldBeNil)
			So(fetcher.calls, ShouldEqual, 100)
			So(len(events), ShouldEqual, 100*5-1)
		})
	})

	Convey("Given inter-page pacing", t, func() {
		fetcher := &stubFetcher{pages: map[string]string{
			pageURL(1): listingPage(rowsFor(1, 3, 2025)...),
			pageURL(2): listingPage(),
		}}
		d := discover.New(fetcher, &config.CrawlConfig{BaseURL: baseURL, PageDelay: time.Second})

		var slept []time.Duration
		d.Sleep = func(dur time.Duration) { slept = append(slept, dur) }

		_, err := d.Events(discover.Options{})
		So(err, ShouldBeNil)

		Convey("Each page advance waits the configured delay", func() {
			So(len(slept), ShouldEqual, 1)
			So(slept[0], ShouldEqual, time.Second)
		})
	})
}
