// Package extract turns fetched pages into typed records: fighter profiles,
// fight statistics and event fight lists. Field values are normalized through
// the parse package; a field that fails to parse degrades to its unknown or
// zero default instead of failing the record.
package extract

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/tomkerrigan/fightstats-scraper/internal/fetch"
	"github.com/tomkerrigan/fightstats-scraper/internal/parse"
	"github.com/tomkerrigan/fightstats-scraper/pkg/models"
)

// dobSourceLayout matches profile dates of birth such as "Jan 08, 1994".
const dobSourceLayout = "Jan 2, 2006"

// ProfileSource supplies fighter snapshots for fight records. The concrete
// implementations are FighterExtractor and the read-through ProfileCache.
type ProfileSource interface {
	Profile(url string) (models.FighterSnapshot, error)
}

// FighterExtractor produces FighterSnapshot records from fighter profile
// pages
type FighterExtractor struct {
	Fetcher fetch.Fetcher
}

// NewFighterExtractor creates a new fighter profile extractor
func NewFighterExtractor(fetcher fetch.Fetcher) *FighterExtractor {
	return &FighterExtractor{Fetcher: fetcher}
}

// Profile fetches a fighter's profile page and extracts their biographical
// snapshot.
func (e *FighterExtractor) Profile(url string) (models.FighterSnapshot, error) {
	html, err := e.Fetcher.Fetch(url, fetch.KindFighter)
	if err != nil {
		return models.FighterSnapshot{}, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return models.FighterSnapshot{}, fmt.Errorf("fighter page %s: %w", url, err)
	}

	return ProfileFromDocument(doc)
}

// ProfileFromDocument extracts a fighter snapshot from an already parsed
// profile document. A missing profile container yields ErrStructureNotFound.
func ProfileFromDocument(doc *goquery.Document) (models.FighterSnapshot, error) {
	title, ok := fighterTitle(doc)
	if !ok {
		return models.FighterSnapshot{}, fmt.Errorf("fighter title block: %w", ErrStructureNotFound)
	}

	snapshot := models.FighterSnapshot{
		Stance:      models.Unknown,
		DateOfBirth: models.Unknown,
	}

	snapshot.Name = strings.TrimSpace(title.Find("span.b-content__title-highlight").First().Text())

	// The record span reads "Record: 21-3-0"; the W-L-D string is the
	// second token.
	if fields := strings.Fields(title.Find("span.b-content__title-record").First().Text()); len(fields) >= 2 {
		snapshot.Record = fields[1]
	} else {
		snapshot.Record = models.Unknown
	}

	list, ok := fighterStatList(doc)
	if !ok {
		return models.FighterSnapshot{}, fmt.Errorf("fighter attribute list: %w", ErrStructureNotFound)
	}

	attrs := profileAttributes(list)

	if v, ok := attrs["height"]; ok {
		if inches, err := parse.HeightInches(v); err == nil {
			snapshot.HeightInches = inches
		}
	}
	if v, ok := attrs["weight"]; ok {
		if pounds, err := parse.WeightPounds(v); err == nil {
			snapshot.WeightPounds = pounds
		}
	}
	if v, ok := attrs["reach"]; ok {
		if inches, err := parse.ReachInches(v); err == nil {
			snapshot.ReachInches = inches
		}
	}
	if v, ok := attrs["stance"]; ok {
		snapshot.Stance = v
	}
	if v, ok := attrs["dob"]; ok {
		if dob, err := parse.ReformatDate(v, dobSourceLayout); err == nil {
			snapshot.DateOfBirth = dob
		}
	}

	return snapshot, nil
}

// profileAttributes reads the profile's key-value list. Labels are
// lower-cased with the trailing colon stripped; empty or dash-only values are
// skipped so their fields keep the unknown default.
func profileAttributes(list *goquery.Selection) map[string]string {
	attrs := make(map[string]string)

	list.Find("li.b-list__box-list-item").Each(func(_ int, li *goquery.Selection) {
		label := li.Find("i.b-list__box-item-title").First()
		if label.Length() == 0 {
			return
		}

		labelText := strings.TrimSpace(label.Text())
		key := strings.ToLower(strings.TrimSuffix(labelText, ":"))

		// Value is the list item's text minus the label.
		value := strings.TrimSpace(strings.Replace(li.Text(), labelText, "", 1))
		if value == "" || isPlaceholder(value) {
			return
		}

		attrs[key] = value
	})

	return attrs
}

// isPlaceholder reports whether a value is the site's dash-only filler.
func isPlaceholder(value string) bool {
	return strings.Trim(value, "-") == ""
}
