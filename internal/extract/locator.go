package extract

import (
	"github.com/PuerkitoBio/goquery"
)

// The locator functions below are the only place that knows the source
// site's markup layout. Each returns the structural handle for one named
// region of a document kind, with ok reporting whether the region exists.
// Layout drift on the remote site is absorbed here.

// fighterTitle locates the name-and-record heading on a fighter profile page.
func fighterTitle(doc *goquery.Document) (*goquery.Selection, bool) {
	sel := doc.Find("h2.b-content__title").First()
	return sel, sel.Length() > 0
}

// fighterStatList locates the key-value attribute list on a fighter profile
// page.
func fighterStatList(doc *goquery.Document) (*goquery.Selection, bool) {
	sel := doc.Find("div.b-list__info-box ul.b-list__box-list").First()
	return sel, sel.Length() > 0
}

// fightPersons locates the two per-fighter blocks at the top of a fight page.
func fightPersons(doc *goquery.Document) (*goquery.Selection, bool) {
	sel := doc.Find("div.b-fight-details__persons div.b-fight-details__person")
	return sel, sel.Length() > 0
}

// fightTitle locates the bout title element carrying the weight class.
func fightTitle(doc *goquery.Document) (*goquery.Selection, bool) {
	sel := doc.Find("i.b-fight-details__fight-title").First()
	return sel, sel.Length() > 0
}

// fightDetailsText locates the metadata line holding method, round, time and
// rounds format.
func fightDetailsText(doc *goquery.Document) (*goquery.Selection, bool) {
	sel := doc.Find("div.b-fight-details__content p.b-fight-details__text").First()
	return sel, sel.Length() > 0
}

// winnerMarker locates the status icon flagging the winning fighter's block.
// ok is false when the marker is missing or appears more than once, both of
// which make the winner ambiguous.
func winnerMarker(doc *goquery.Document) (*goquery.Selection, bool) {
	sel := doc.Find("i.b-fight-details__person-status_style_green")
	return sel, sel.Length() == 1
}

// personBlock walks from a marker up to its enclosing fighter block.
func personBlock(marker *goquery.Selection) (*goquery.Selection, bool) {
	sel := marker.Closest("div.b-fight-details__person")
	return sel, sel.Length() > 0
}

// personName locates the fighter-name link inside a fighter block.
func personName(block *goquery.Selection) (*goquery.Selection, bool) {
	sel := block.Find("a.b-fight-details__person-link").First()
	return sel, sel.Length() > 0
}

// fightSections locates the statistics sections of a fight page in document
// order: [0] totals header, [1] aggregate totals, [2] per-round totals,
// [3] breakdown header, [4] per-round breakdown. The aggregate breakdown is
// the table element following the per-round totals section.
func fightSections(doc *goquery.Document) (*goquery.Selection, bool) {
	sel := doc.Find("section.b-fight-details__section.js-fight-section")
	return sel, sel.Length() >= 5
}

// breakdownTotalsTable locates the aggregate significant-strike breakdown
// relative to the per-round totals section.
func breakdownTotalsTable(perRoundTotals *goquery.Selection) (*goquery.Selection, bool) {
	sel := perRoundTotals.NextAllFiltered("table").First()
	return sel, sel.Length() > 0
}

// eventFightTable locates the fight listing body on an event page.
func eventFightTable(doc *goquery.Document) (*goquery.Selection, bool) {
	sel := doc.Find("body > section > div > div > table > tbody").First()
	return sel, sel.Length() > 0
}

// listingRows locates the event rows of a completed-events listing page,
// including the header row.
func listingRows(doc *goquery.Document) (*goquery.Selection, bool) {
	sel := doc.Find("tr.b-statistics__table-row")
	return sel, sel.Length() > 0
}
