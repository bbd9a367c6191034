// Package inspect reads the cards back out of a rendered gallery page.
package inspect

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// CardSummary is what a rendered card exposes in its markup
type CardSummary struct {
	ID            string
	Category      string
	FilterClass   string
	Href          string
	Label         string
	Image         string
	CaptionHidden bool
	HoverBound    bool
}

// Summary describes a rendered page
type Summary struct {
	Title   string
	Filters []string
	Cards   []CardSummary
}

// Parse extracts the gallery cards from an HTML page
func Parse(r io.Reader) (Summary, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return Summary{}, fmt.Errorf("error parsing page: %w", err)
	}

	container := doc.Find(".filtr-container")
	if container.Length() == 0 {
		return Summary{}, fmt.Errorf("no gallery container found")
	}

	summary := Summary{Title: strings.TrimSpace(doc.Find("title").First().Text())}
	doc.Find(".filters li").Each(func(_ int, s *goquery.Selection) {
		summary.Filters = append(summary.Filters, s.AttrOr("data-filter", ""))
	})

	container.Find(".filtr-item").Each(func(_ int, s *goquery.Selection) {
		category := s.AttrOr("data-category", "")
		link := s.Find("a").First()
		caption := s.Find(".caption").First()
		_, hidden := caption.Attr("hidden")

		summary.Cards = append(summary.Cards, CardSummary{
			ID:            s.AttrOr("data-id", ""),
			Category:      category,
			FilterClass:   filterClass(s.AttrOr("class", ""), category),
			Href:          link.AttrOr("href", ""),
			Label:         link.AttrOr("title", ""),
			Image:         s.Find("img").First().AttrOr("src", ""),
			CaptionHidden: hidden,
			HoverBound:    caption.AttrOr("data-hover", "") == "caption",
		})
	})

	return summary, nil
}

// filterClass returns the f<category> class of a card, or "" when the card
// does not carry it
func filterClass(class, category string) string {
	if category == "" {
		return ""
	}
	want := "f" + category
	for _, c := range strings.Fields(class) {
		if c == want {
			return c
		}
	}
	return ""
}

// Unlinked returns the cards rendered without a link target
func (s Summary) Unlinked() []CardSummary {
	var cards []CardSummary
	for _, c := range s.Cards {
		if c.Href == "" {
			cards = append(cards, c)
		}
	}
	return cards
}

// CountByCategory returns the number of cards per category
func (s Summary) CountByCategory() map[string]int {
	counts := make(map[string]int)
	for _, c := range s.Cards {
		counts[c.Category]++
	}
	return counts
}
