// Package extract turns raw forum markup into structured records. All
// functions are pure: no I/O, and missing elements degrade to empty or
// absent fields rather than errors.
package extract

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/minjipark/audioguide-scraper/internal/domain"
)

// metadataSegments is the pipe-delimited segment count a listing's
// metadata line must have: "5 posts | 3 days ago | Posted in Italy".
const metadataSegments = 3

const postedInPrefix = "Posted in "

// Listing extracts one ListingRecord per topic link on a search-results
// page. Elements without an href are skipped. Metadata that is absent or
// does not split into exactly three segments leaves Time and Forum empty
// instead of failing the page.
func Listing(html string) ([]domain.ListingRecord, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse listing html: %w", err)
	}

	var records []domain.ListingRecord

	doc.Find("a.search-result.topic").Each(func(_ int, sel *goquery.Selection) {
		link := strings.TrimSpace(sel.AttrOr("href", ""))
		if link == "" {
			return
		}

		rec := domain.ListingRecord{
			Link:  link,
			Title: strings.TrimSpace(sel.Find("h2").First().Text()),
		}

		meta := strings.TrimSpace(sel.Find("p.metadata").First().Text())
		if parts := strings.Split(meta, "|"); len(parts) == metadataSegments {
			rec.Time = strings.TrimSpace(parts[1])
			rec.Forum = strings.TrimPrefix(strings.TrimSpace(parts[2]), postedInPrefix)
		}

		records = append(records, rec)
	})

	return records, nil
}

// PostDetail extracts the original post and its replies from a topic
// page. The canonical URL comes from the og:url meta tag, falling back
// to the canonical link element.
func PostDetail(html string) (domain.PostDetail, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return domain.PostDetail{}, fmt.Errorf("parse detail html: %w", err)
	}

	detail := domain.PostDetail{Replies: []domain.ReplyRecord{}}

	if u, ok := doc.Find(`meta[property="og:url"]`).Attr("content"); ok {
		detail.URL = strings.TrimSpace(u)
	} else if u, ok := doc.Find(`link[rel="canonical"]`).Attr("href"); ok {
		detail.URL = strings.TrimSpace(u)
	}

	detail.Title = strings.TrimSpace(doc.Find("h1.title").First().Text())

	if content := doc.Find("article.topic .content.markdown").First(); content.Length() > 0 {
		detail.Content = flatten(content)
	}

	doc.Find("section#replies article.reply").Each(func(_ int, sel *goquery.Selection) {
		reply := domain.ReplyRecord{
			Author:    strings.TrimSpace(sel.Find(".author a").First().Text()),
			Location:  strings.TrimSpace(sel.Find(".user-location").First().Text()),
			PostCount: strings.TrimSpace(sel.Find(".post-count").First().Text()),
		}

		if t, ok := sel.Find("time").First().Attr("datetime"); ok {
			reply.Time = t
		}

		if content := sel.Find(".content.markdown").First(); content.Length() > 0 {
			reply.Content = flatten(content)
		}

		detail.Replies = append(detail.Replies, reply)
	})

	return detail, nil
}

// flatten strips markup from a selection and trims surrounding whitespace.
func flatten(sel *goquery.Selection) string {
	return strings.TrimSpace(sel.Text())
}
