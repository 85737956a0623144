package extract

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/tomkerrigan/fightstats-scraper/internal/fetch"
	"github.com/tomkerrigan/fightstats-scraper/pkg/models"
)

// FightSource produces one fight record from a fight URL plus the event's
// known date and location. FightExtractor is the concrete implementation.
type FightSource interface {
	Fight(url, date, location string) (models.FightRecord, error)
}

// LinkStrategy derives exactly one fight URL per row from an event page's
// fight table. The source markup repeats two or three anchors per row, and
// the right disambiguation rule has changed across markup versions, so the
// rule is pluggable rather than hardcoded.
type LinkStrategy func(tbody *goquery.Selection) []string

// FlagClassStrategy selects links by result-flag class: every green (decided)
// flag once, and every second bordered (no-contest) flag since those come in
// identical pairs.
func FlagClassStrategy(tbody *goquery.Selection) []string {
	var urls []string
	seen := make(map[string]bool)

	add := func(s *goquery.Selection) {
		href, ok := s.Attr("href")
		if ok && href != "" && !seen[href] {
			seen[href] = true
			urls = append(urls, href)
		}
	}

	tbody.Find("a.b-flag.b-flag_style_green").Each(func(_ int, s *goquery.Selection) {
		add(s)
	})
	tbody.Find("a.b-flag.b-flag_style_bordered").Each(func(i int, s *goquery.Selection) {
		if i%2 == 0 {
			add(s)
		}
	})

	return urls
}

// EveryOtherStrategy takes every second fight-details anchor in the table.
func EveryOtherStrategy(tbody *goquery.Selection) []string {
	return strideStrategy(tbody, 2)
}

// EveryThirdStrategy takes every third fight-details anchor in the table.
func EveryThirdStrategy(tbody *goquery.Selection) []string {
	return strideStrategy(tbody, 3)
}

func strideStrategy(tbody *goquery.Selection, stride int) []string {
	var urls []string
	seen := make(map[string]bool)

	tbody.Find("a").FilterFunction(func(_ int, s *goquery.Selection) bool {
		href, ok := s.Attr("href")
		return ok && strings.Contains(href, "fight-details")
	}).Each(func(i int, s *goquery.Selection) {
		if i%stride != 0 {
			return
		}
		href, _ := s.Attr("href")
		if !seen[href] {
			seen[href] = true
			urls = append(urls, href)
		}
	})

	return urls
}

// StrategyForName resolves a configured strategy name.
func StrategyForName(name string) (LinkStrategy, error) {
	switch name {
	case "", "flag-class":
		return FlagClassStrategy, nil
	case "every-other":
		return EveryOtherStrategy, nil
	case "every-third":
		return EveryThirdStrategy, nil
	default:
		return nil, fmt.Errorf("unknown link strategy %q", name)
	}
}

// EventExtractor enumerates the fights of one event page
type EventExtractor struct {
	Fetcher  fetch.Fetcher
	Fights   FightSource
	Strategy LinkStrategy
}

// NewEventExtractor creates a new event fight-list extractor
func NewEventExtractor(fetcher fetch.Fetcher, fights FightSource, strategy LinkStrategy) *EventExtractor {
	if strategy == nil {
		strategy = FlagClassStrategy
	}
	return &EventExtractor{
		Fetcher:  fetcher,
		Fights:   fights,
		Strategy: strategy,
	}
}

// FightURLs fetches an event page and derives one fight URL per on-page row,
// in listing order.
func (e *EventExtractor) FightURLs(url string) ([]string, error) {
	html, err := e.Fetcher.Fetch(url, fetch.KindEvent)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("event page %s: %w", url, err)
	}

	tbody, ok := eventFightTable(doc)
	if !ok {
		return nil, fmt.Errorf("event fight table: %w", ErrStructureNotFound)
	}

	return e.Strategy(tbody), nil
}

// EventFights extracts all fight records of one event, in on-page listing
// order. The caller supplies the event's date and location; the page is
// assumed to match. Per-fight failures are skipped and counted, not fatal.
func (e *EventExtractor) EventFights(url, date, location string) ([]models.FightRecord, int, error) {
	urls, err := e.FightURLs(url)
	if err != nil {
		return nil, 0, err
	}

	var fights []models.FightRecord
	skipped := 0
	for _, fightURL := range urls {
		record, err := e.Fights.Fight(fightURL, date, location)
		if err != nil {
			skipped++
			continue
		}
		fights = append(fights, record)
	}

	return fights, skipped, nil
}
