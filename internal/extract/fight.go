package extract

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/tomkerrigan/fightstats-scraper/internal/fetch"
	"github.com/tomkerrigan/fightstats-scraper/internal/parse"
	"github.com/tomkerrigan/fightstats-scraper/pkg/models"
)

// eventDateLayout matches event dates such as "August 09, 2025".
const eventDateLayout = "January 2, 2006"

// totalsCategories is the fixed left-to-right category order of the totals
// table, after the leading fighter-name column.
var totalsCategories = []string{"kd", "sig_str", "sig_str_pct", "total_str", "td", "td_pct", "sub_att", "rev", "ctrl"}

// breakdownCategories is the fixed category order of the significant-strike
// breakdown table, after the name, sig-str and sig-str-pct columns that the
// totals table already covers.
var breakdownCategories = []string{"head", "body", "leg", "distance", "clinch", "ground"}

// FightExtractor produces FightRecord values from fight detail pages. Side
// labels are assigned by a coin flip drawn from the injected random source,
// never by the page's display order: the site's left/right placement
// correlates with historical win rate and must not leak into the labels.
type FightExtractor struct {
	Fetcher  fetch.Fetcher
	Profiles ProfileSource

	mu  sync.Mutex
	rng *rand.Rand
}

// NewFightExtractor creates a new fight statistics extractor. The random
// source drives side-label assignment; tests pass a seeded one.
func NewFightExtractor(fetcher fetch.Fetcher, profiles ProfileSource, rng *rand.Rand) *FightExtractor {
	return &FightExtractor{
		Fetcher:  fetcher,
		Profiles: profiles,
		rng:      rng,
	}
}

// flip draws one fair bit. The underlying source is not goroutine-safe, so
// the draw is serialized for use from worker pools.
func (e *FightExtractor) flip() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return int(e.rng.Int63() & 1)
}

// Fight fetches a fight page and extracts the full record. The event's date
// and location come from the caller; the fight page does not carry them in
// the needed form.
func (e *FightExtractor) Fight(url, date, location string) (models.FightRecord, error) {
	html, err := e.Fetcher.Fetch(url, fetch.KindFight)
	if err != nil {
		return models.FightRecord{}, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return models.FightRecord{}, fmt.Errorf("fight page %s: %w", url, err)
	}

	return e.FightFromDocument(doc, date, location)
}

// FightFromDocument extracts a fight record from an already parsed fight
// document. A page that does not match the fight-detail layout yields
// ErrStructureNotFound.
func (e *FightExtractor) FightFromDocument(doc *goquery.Document, date, location string) (models.FightRecord, error) {
	var record models.FightRecord

	// One fair bit decides which on-page fighter becomes side A.
	aIdx := e.flip()
	bIdx := 1 - aIdx

	persons, ok := fightPersons(doc)
	if !ok || persons.Length() < 2 {
		return record, fmt.Errorf("fighter blocks: %w", ErrStructureNotFound)
	}

	var names, links []string
	persons.Each(func(_ int, person *goquery.Selection) {
		link, ok := personName(person)
		if !ok {
			return
		}
		names = append(names, strings.TrimSpace(link.Text()))
		href, _ := link.Attr("href")
		links = append(links, href)
	})
	if len(names) < 2 {
		return record, fmt.Errorf("fighter name links: %w", ErrStructureNotFound)
	}

	record.FighterA = e.profileOrName(links[aIdx], names[aIdx])
	record.FighterB = e.profileOrName(links[bIdx], names[bIdx])

	if normalized, err := parse.ReformatDate(date, eventDateLayout); err == nil {
		record.Date = normalized
	} else {
		record.Date = models.Unknown
	}
	record.Location = location

	// The weight class is the title's first token. Multi-word classes
	// truncate: "Women's Strawweight Bout" stores "Women's", a title-prefixed
	// bout stores "UFC". Kept as-is; existing datasets use these values.
	if title, ok := fightTitle(doc); ok {
		if fields := strings.Fields(title.Text()); len(fields) > 0 {
			record.WeightClass = fields[0]
		}
	}
	if record.WeightClass == "" {
		record.WeightClass = models.Unknown
	}

	e.extractMetadata(doc, &record)
	e.resolveWinner(doc, &record)

	sections, ok := fightSections(doc)
	if !ok {
		return record, fmt.Errorf("statistics sections: %w", ErrStructureNotFound)
	}

	// Fixed section order: [1] aggregate totals, [2] per-round totals; the
	// aggregate breakdown is the table following [2], and [4] holds the
	// per-round breakdown.
	parseTotals(sections.Eq(1), aIdx, &record.StatsA, &record.StatsB, false)
	parseTotals(sections.Eq(2), aIdx, &record.StatsA, &record.StatsB, true)
	if breakdown, ok := breakdownTotalsTable(sections.Eq(2)); ok {
		parseBreakdown(breakdown, aIdx, &record.StatsA, &record.StatsB, false)
	}
	parseBreakdown(sections.Eq(4), aIdx, &record.StatsA, &record.StatsB, true)

	return record, nil
}

// profileOrName fetches a fighter's biographical snapshot, degrading to a
// name-only snapshot when the profile page is unavailable.
func (e *FightExtractor) profileOrName(link, name string) models.FighterSnapshot {
	snapshot, err := e.Profiles.Profile(link)
	if err != nil {
		return models.FighterSnapshot{
			Name:        name,
			Record:      models.Unknown,
			Stance:      models.Unknown,
			DateOfBirth: models.Unknown,
		}
	}
	if snapshot.Name == "" {
		snapshot.Name = name
	}
	return snapshot
}

// extractMetadata reads the metadata line: the first labeled item is the
// victory method, the next is the round reached, then the finish time, then
// the rounds format. Each is tokenized and the relevant position extracted;
// the rounds format "5 Rnd (5-5-5-5-5)" yields its count from the third
// whitespace token of the labeled text.
func (e *FightExtractor) extractMetadata(doc *goquery.Document, record *models.FightRecord) {
	record.VictoryMethod = models.Unknown
	record.FinishTime = models.Unknown

	details, ok := fightDetailsText(doc)
	if !ok {
		return
	}

	method := details.Find("i.b-fight-details__text-item_first").First()
	if fields := strings.Fields(method.Text()); len(fields) > 1 {
		record.VictoryMethod = strings.Join(fields[1:], "")
	}

	round := details.Find("i.b-fight-details__text-item").First()
	if fields := strings.Fields(round.Text()); len(fields) > 1 {
		record.FinalRound = atoiOrZero(fields[1])
	}

	finish := round.NextAllFiltered("i").First()
	if fields := strings.Fields(finish.Text()); len(fields) > 1 {
		record.FinishTime = fields[1]
	}

	format := finish.NextAllFiltered("i").First()
	if fields := strings.Fields(format.Text()); len(fields) > 2 {
		record.NumberOfRounds = atoiOrZero(fields[2])
	}
}

// resolveWinner matches the page's winner marker against the assigned side
// labels. Name comparison is case-sensitive. An absent or duplicated marker,
// or a name matching neither side, flags the record instead of defaulting.
func (e *FightExtractor) resolveWinner(doc *goquery.Document, record *models.FightRecord) {
	marker, ok := winnerMarker(doc)
	if !ok {
		record.WinnerAmbiguous = true
		return
	}

	block, ok := personBlock(marker)
	if !ok {
		record.WinnerAmbiguous = true
		return
	}

	link, ok := personName(block)
	if !ok {
		record.WinnerAmbiguous = true
		return
	}

	switch strings.TrimSpace(link.Text()) {
	case record.FighterA.Name:
		record.Winner = models.SideA
	case record.FighterB.Name:
		record.Winner = models.SideB
	default:
		record.WinnerAmbiguous = true
	}
}

// parseTotals reads a totals table: one paired fighter-value per category in
// fixed order. With perRound set, each data row is one round and is appended
// to the per-round slices; otherwise the single data row fills the aggregate
// lines. Rows without td cells (the header) are skipped.
func parseTotals(table *goquery.Selection, aIdx int, a, b *models.SideStats, perRound bool) {
	bIdx := 1 - aIdx

	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 2 {
			return
		}

		var lineA, lineB models.StatLine
		// First column holds the fighter names.
		stats := cells.Slice(1, cells.Length())

		for i, category := range totalsCategories {
			if i >= stats.Length() {
				break
			}
			values := stats.Eq(i).Find("p")
			if values.Length() < 2 {
				continue
			}
			rawA := strings.TrimSpace(values.Eq(aIdx).Text())
			rawB := strings.TrimSpace(values.Eq(bIdx).Text())
			setTotalsCategory(&lineA, category, rawA)
			setTotalsCategory(&lineB, category, rawB)
		}

		if perRound {
			a.Rounds = append(a.Rounds, lineA)
			b.Rounds = append(b.Rounds, lineB)
		} else {
			a.Totals = lineA
			b.Totals = lineB
		}
	})
}

// setTotalsCategory routes a raw cell value to the parser matching the
// category's semantic type.
func setTotalsCategory(line *models.StatLine, category, raw string) {
	switch category {
	case "kd":
		line.Knockdowns = atoiOrZero(raw)
	case "sig_str":
		line.SigStrikesLanded, line.SigStrikesAttempts = parse.Fraction(raw)
	case "sig_str_pct":
		line.SigStrikePct = parse.Percentage(raw)
	case "total_str":
		line.TotalStrikesLanded, line.TotalStrikesAtt = parse.Fraction(raw)
	case "td":
		line.TakedownsLanded, line.TakedownsAttempted = parse.Fraction(raw)
	case "td_pct":
		line.TakedownPct = parse.Percentage(raw)
	case "sub_att":
		line.SubmissionAttempts = atoiOrZero(raw)
	case "rev":
		line.Reversals = atoiOrZero(raw)
	case "ctrl":
		line.ControlSeconds = parse.DurationSeconds(raw)
	}
}

// parseBreakdown reads a significant-strike breakdown table: six target-area
// "X of Y" pairs per row, after skipping the name column and the overall
// sig-strike columns already captured by the totals.
func parseBreakdown(table *goquery.Selection, aIdx int, a, b *models.SideStats, perRound bool) {
	bIdx := 1 - aIdx
	round := 0

	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 4 {
			return
		}

		var lineA, lineB *models.StatLine
		if perRound {
			// Breakdown rounds line up with the totals rounds parsed first.
			if round >= len(a.Rounds) || round >= len(b.Rounds) {
				return
			}
			lineA = &a.Rounds[round]
			lineB = &b.Rounds[round]
			round++
		} else {
			lineA = &a.Totals
			lineB = &b.Totals
		}

		stats := cells.Slice(3, cells.Length())

		for i, category := range breakdownCategories {
			if i >= stats.Length() {
				break
			}
			values := stats.Eq(i).Find("p")
			if values.Length() < 2 {
				continue
			}
			setBreakdownCategory(lineA, category, strings.TrimSpace(values.Eq(aIdx).Text()))
			setBreakdownCategory(lineB, category, strings.TrimSpace(values.Eq(bIdx).Text()))
		}
	})
}

func setBreakdownCategory(line *models.StatLine, category, raw string) {
	landed, attempted := parse.Fraction(raw)
	switch category {
	case "head":
		line.HeadLanded, line.HeadAttempted = landed, attempted
	case "body":
		line.BodyLanded, line.BodyAttempted = landed, attempted
	case "leg":
		line.LegLanded, line.LegAttempted = landed, attempted
	case "distance":
		line.DistanceLanded, line.DistanceAttempted = landed, attempted
	case "clinch":
		line.ClinchLanded, line.ClinchAttempted = landed, attempted
	case "ground":
		line.GroundLanded, line.GroundAttempted = landed, attempted
	}
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
