package scrape

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

const page = `
<div class="item">
  <h3 class="new-title">Fresh Markup</h3>
  <span class="legacy">Old Markup</span>
  <a href="/watch?v=1">link</a>
</div>`

func load(t *testing.T) *goquery.Selection {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	return doc.Find("div.item")
}

func TestFirstTextPrefersEarlierSelector(t *testing.T) {
	sel := load(t)
	if got := FirstText(sel, []string{"h3.new-title", "span.legacy"}); got != "Fresh Markup" {
		t.Fatalf("got %q", got)
	}
}

func TestFirstTextFallsBackOnMiss(t *testing.T) {
	sel := load(t)
	if got := FirstText(sel, []string{"h3.renamed", "span.legacy"}); got != "Old Markup" {
		t.Fatalf("got %q", got)
	}
}

func TestFirstTextEmptyWhenNothingMatches(t *testing.T) {
	sel := load(t)
	if got := FirstText(sel, []string{"h1", "h2"}); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}

func TestAllMatchesKeepsWholeCollection(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(`
<ul><li class="row">a</li><li class="row">b</li><li class="row">c</li></ul>`))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	if got := AllMatches(doc.Selection, []string{"li.renamed", "li.row"}).Length(); got != 3 {
		t.Fatalf("expected all 3 rows, got %d", got)
	}
	if got := AllMatches(doc.Selection, []string{"li.renamed"}).Length(); got != 0 {
		t.Fatalf("expected empty selection, got %d", got)
	}
}

func TestFirstAttr(t *testing.T) {
	sel := load(t)
	if got := FirstAttr(sel, []string{"a"}, "href"); got != "/watch?v=1" {
		t.Fatalf("got %q", got)
	}
	if got := FirstAttr(sel, []string{"img"}, "src"); got != "" {
		t.Fatalf("expected empty attr, got %q", got)
	}
}
