// Package scrape holds the selector-candidate helpers shared by every HTML
// scraping component. Each logical field is located by an ordered list of
// selectors; the first one yielding a match wins, so a markup change on the
// scraped site means a config edit, not a code change.
package scrape

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// FirstMatch returns the first selection matched by any of the candidate
// selectors, scoped to sel. Returns an empty selection when nothing matches.
func FirstMatch(sel *goquery.Selection, selectors []string) *goquery.Selection {
	for _, s := range selectors {
		found := sel.Find(s)
		if found.Length() > 0 {
			return found.First()
		}
	}
	return sel.Slice(0, 0)
}

// AllMatches returns every element matched by the first candidate selector
// that matches anything. Unlike FirstMatch it keeps the whole collection,
// which is what list-shaped extraction (result containers, episode rows)
// needs.
func AllMatches(sel *goquery.Selection, selectors []string) *goquery.Selection {
	for _, s := range selectors {
		found := sel.Find(s)
		if found.Length() > 0 {
			return found
		}
	}
	return sel.Slice(0, 0)
}

// FirstText returns the trimmed text of the first candidate selector match.
func FirstText(sel *goquery.Selection, selectors []string) string {
	return strings.TrimSpace(FirstMatch(sel, selectors).Text())
}

// FirstAttr returns the named attribute of the first candidate selector
// match, or "" when no selector matches or the attribute is absent.
func FirstAttr(sel *goquery.Selection, selectors []string, attr string) string {
	value, _ := FirstMatch(sel, selectors).Attr(attr)
	return strings.TrimSpace(value)
}
