// Package scrape fans fetch+parse work out over many pages under a
// concurrency cap, collects partial failures without aborting the batch,
// and persists the aggregate artifact.
package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"sync"

	"github.com/minjipark/audioguide-scraper/internal/domain"
	"github.com/minjipark/audioguide-scraper/internal/extract"
	"github.com/minjipark/audioguide-scraper/internal/storage"
)

// DefaultMaxConcurrent bounds in-flight fetches when Config leaves the
// cap unset.
const DefaultMaxConcurrent = 5

// Config tunes the orchestrator.
type Config struct {
	// SearchRoot is the forum search endpoint listing pages are built on.
	SearchRoot string
	// MaxConcurrent caps simultaneously in-flight fetch operations
	// across the whole batch.
	MaxConcurrent int
}

// Orchestrator runs fetch-then-parse for every target and combines the
// results. Failure handling differs per batch kind: listing pages
// contribute nothing on failure, detail pages are dropped from the
// output. One unit's failure never cancels its siblings.
type Orchestrator struct {
	cfg     Config
	fetcher domain.Fetcher
	store   *storage.Store
	log     *slog.Logger
}

func New(cfg Config, fetcher domain.Fetcher, store *storage.Store, log *slog.Logger) *Orchestrator {
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = DefaultMaxConcurrent
	}
	return &Orchestrator{cfg: cfg, fetcher: fetcher, store: store, log: log}
}

// SearchURL builds the listing query for one result page:
// {root}?button=&filter=Travel+Forum&page={n}&query={keyword}.
func SearchURL(root, keyword string, page int) string {
	q := url.Values{
		"button": {""},
		"filter": {"Travel Forum"},
		"page":   {strconv.Itoa(page)},
		"query":  {keyword},
	}
	return root + "?" + q.Encode()
}

// Listings scrapes search-result pages startPage through endPage for
// keyword and persists the aggregate. A failed page contributes an empty
// record sequence; the batch as a whole always persists. Output order
// follows page order regardless of completion order.
func (o *Orchestrator) Listings(ctx context.Context, keyword string, startPage, endPage int) ([]domain.ListingRecord, error) {
	if endPage < startPage {
		return nil, fmt.Errorf("invalid page range %d-%d", startPage, endPage)
	}

	pages := make([]int, 0, endPage-startPage+1)
	for p := startPage; p <= endPage; p++ {
		pages = append(pages, p)
	}

	// Each unit writes only its own slot; aggregation happens after all
	// units settle.
	perPage := make([][]domain.ListingRecord, len(pages))
	sem := make(chan struct{}, o.cfg.MaxConcurrent)
	var wg sync.WaitGroup

	for i, page := range pages {
		wg.Add(1)
		go func(i, page int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			pageURL := SearchURL(o.cfg.SearchRoot, keyword, page)
			html, err := o.fetcher.Fetch(ctx, pageURL)
			if err != nil {
				o.log.Error("listing page failed", "page", page, "error", err)
				return
			}

			records, err := extract.Listing(html)
			if err != nil {
				o.log.Error("listing parse failed", "page", page, "error", err)
				return
			}
			perPage[i] = records
		}(i, page)
	}
	wg.Wait()

	all := make([]domain.ListingRecord, 0)
	for _, records := range perPage {
		all = append(all, records...)
	}

	if err := o.store.SaveListings(keyword, all); err != nil {
		return nil, fmt.Errorf("persist listings: %w", err)
	}

	o.log.Info("listing batch complete",
		"keyword", keyword,
		"pages", len(pages),
		"records", len(all),
	)
	return all, nil
}

// Details fetches every post page and persists the PostDetail array. A
// failed unit is omitted from the output rather than defaulted; the
// summary reports succeeded against attempted. Output order follows
// input order.
func (o *Orchestrator) Details(ctx context.Context, keyword string, links []string) ([]domain.PostDetail, error) {
	slots := make([]*domain.PostDetail, len(links))
	sem := make(chan struct{}, o.cfg.MaxConcurrent)
	var wg sync.WaitGroup

	for i, link := range links {
		wg.Add(1)
		go func(i int, link string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			html, err := o.fetcher.Fetch(ctx, link)
			if err != nil {
				o.log.Error("post detail failed", "url", link, "error", err)
				return
			}

			detail, err := extract.PostDetail(html)
			if err != nil {
				o.log.Error("post detail parse failed", "url", link, "error", err)
				return
			}
			slots[i] = &detail
		}(i, link)
	}
	wg.Wait()

	details := make([]domain.PostDetail, 0, len(links))
	for _, d := range slots {
		if d != nil {
			details = append(details, *d)
		}
	}

	if err := o.store.SaveDetails(keyword, details); err != nil {
		return nil, fmt.Errorf("persist details: %w", err)
	}

	o.log.Info("detail batch complete",
		"keyword", keyword,
		"succeeded", len(details),
		"attempted", len(links),
	)
	return details, nil
}
