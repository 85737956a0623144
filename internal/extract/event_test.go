package extract_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/tomkerrigan/fightstats-scraper/internal/extract"
	"github.com/tomkerrigan/fightstats-scraper/pkg/models"
	. "github.com/smartystreets/goconvey/convey"
)

// eventPage builds an event fixture: two decided fights (one green flag
// each), one no-contest fight whose bordered flags come in a pair, and every
// row repeating its link as the markup does.
const eventPage = `<html><body>
<section><div><div>
<table><tbody>
  <tr>
    <td><a class="b-flag b-flag_style_green" href="http://x/fight-details/f1">win</a></td>
    <td><a href="http://x/fight-details/f1">Alpha Fighter</a></td>
    <td><a href="http://x/fight-details/f1">Beta Fighter</a></td>
  </tr>
  <tr>
    <td><a class="b-flag b-flag_style_green" href="http://x/fight-details/f2">win</a></td>
    <td><a href="http://x/fight-details/f2">Gamma Fighter</a></td>
    <td><a href="http://x/fight-details/f2">Delta Fighter</a></td>
  </tr>
  <tr>
    <td>
      <a class="b-flag b-flag_style_bordered" href="http://x/fight-details/f3">nc</a>
      <a class="b-flag b-flag_style_bordered" href="http://x/fight-details/f3">nc</a>
    </td>
    <td><a href="http://x/fight-details/f3">Epsilon Fighter</a></td>
  </tr>
</tbody></table>
</div></div></section>
</body></html>`

// stubFights records calls and fails for a designated URL.
type stubFights struct {
	failURL string
	calls   []string
}

func (s *stubFights) Fight(url, date, location string) (models.FightRecord, error) {
	s.calls = append(s.calls, url)
	if url == s.failURL {
		return models.FightRecord{}, fmt.Errorf("fight %s: %w", url, extract.ErrStructureNotFound)
	}
	return models.FightRecord{Date: date, Location: location, WeightClass: url}, nil
}

func TestEventExtractor(t *testing.T) {
	Convey("Given an event page with repeated fight links", t, func() {
		fetcher := &stubFetcher{pages: map[string]string{
			"http://x/event-details/e1": eventPage,
		}}

		Convey("The flag-class strategy derives one URL per fight row", func() {
			extractor := extract.NewEventExtractor(fetcher, &stubFights{}, extract.FlagClassStrategy)
			urls, err := extractor.FightURLs("http://x/event-details/e1")
			So(err, ShouldBeNil)
			So(urls, ShouldResemble, []string{
				"http://x/fight-details/f1",
				"http://x/fight-details/f2",
				"http://x/fight-details/f3",
			})
		})

		Convey("The every-third strategy agrees on this markup variant", func() {
			extractor := extract.NewEventExtractor(fetcher, &stubFights{}, extract.EveryThirdStrategy)
			urls, err := extractor.FightURLs("http://x/event-details/e1")
			So(err, ShouldBeNil)
			So(urls, ShouldResemble, []string{
				"http://x/fight-details/f1",
				"http://x/fight-details/f2",
				"http://x/fight-details/f3",
			})
		})

		Convey("The every-other strategy never repeats a URL", func() {
			extractor := extract.NewEventExtractor(fetcher, &stubFights{}, extract.EveryOtherStrategy)
			urls, err := extractor.FightURLs("http://x/event-details/e1")
			So(err, ShouldBeNil)
			seen := make(map[string]bool)
			for _, u := range urls {
				So(seen[u], ShouldBeFalse)
				seen[u] = true
			}
		})

		Convey("Event fights come back in listing order with the event metadata", func() {
			fights := &stubFights{}
			extractor := extract.NewEventExtractor(fetcher, fights, extract.FlagClassStrategy)

			records, skipped, err := extractor.EventFights("http://x/event-details/e1", "August 09, 2025", "Las Vegas, Nevada, USA")
			So(err, ShouldBeNil)
			So(skipped, ShouldEqual, 0)
			So(len(records), ShouldEqual, 3)
			So(records[0].WeightClass, ShouldEqual, "http://x/fight-details/f1")
			So(records[2].WeightClass, ShouldEqual, "http://x/fight-details/f3")
			So(records[0].Date, ShouldEqual, "August 09, 2025")
			So(records[0].Location, ShouldEqual, "Las Vegas, Nevada, USA")
		})

		Convey("A failed fight is skipped and counted, not fatal", func() {
			fights := &stubFights{failURL: "http://x/fight-details/f2"}
			extractor := extract.NewEventExtractor(fetcher, fights, extract.FlagClassStrategy)

			records, skipped, err := extractor.EventFights("http://x/event-details/e1", "August 09, 2025", "Las Vegas, Nevada, USA")
			So(err, ShouldBeNil)
			So(skipped, ShouldEqual, 1)
			So(len(records), ShouldEqual, 2)
		})
	})

	Convey("Given an event page without the fight table", t, func() {
		fetcher := &stubFetcher{pages: map[string]string{
			"http://x/event-details/empty": "<html><body><p>no table</p></body></html>",
		}}
		extractor := extract.NewEventExtractor(fetcher, &stubFights{}, nil)

		_, err := extractor.FightURLs("http://x/event-details/empty")

		Convey("The extractor reports structure not found", func() {
			So(errors.Is(err, extract.ErrStructureNotFound), ShouldBeTrue)
		})
	})

	Convey("Given a strategy name", t, func() {
		Convey("Known names resolve", func() {
			for _, name := range []string{"", "flag-class", "every-other", "every-third"} {
				strategy, err := extract.StrategyForName(name)
				So(err, ShouldBeNil)
				So(strategy, ShouldNotBeNil)
			}
		})

		Convey("Unknown names are rejected", func() {
			_, err := extract.StrategyForName("alternate-fridays")
			So(err, ShouldNotBeNil)
		})
	})
}
