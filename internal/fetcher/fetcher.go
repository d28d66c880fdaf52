package fetcher

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"news_monitor/internal/datefmt"
	"news_monitor/internal/logger"
	"news_monitor/internal/models"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-pkgz/requester"
	"github.com/mmcdole/gofeed"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Options configures a Fetcher.
type Options struct {
	Feeds     []string
	MaxItems  int // 0 means no limit
	Timeout   time.Duration
	UserAgent string
	Location  *time.Location
}

// Fetcher reads RSS/Atom feeds and turns their entries into news items.
type Fetcher struct {
	feeds    []string
	maxItems int
	loc      *time.Location
	rq       *requester.Requester
	log      *logrus.Entry
}

// New creates a Fetcher over the given feeds.
func New(opts Options) *Fetcher {
	log := logger.Log.WithField("service", "fetcher")
	if opts.Location == nil {
		opts.Location = time.Local
	}

	return &Fetcher{
		feeds:    opts.Feeds,
		maxItems: opts.MaxItems,
		loc:      opts.Location,
		rq: requester.New(
			http.Client{Timeout: opts.Timeout},
			UserAgent(opts.UserAgent),
			LoggingRoundTripper(log),
		),
		log: log,
	}
}

type entry struct {
	item      models.NewsItem
	published time.Time
}

// FetchNews downloads every feed and returns the merged items, newest first.
// Any failing feed fails the whole call; no partial list is returned.
func (f *Fetcher) FetchNews(ctx context.Context) ([]models.NewsItem, error) {
	results := make([][]entry, len(f.feeds))

	g, gctx := errgroup.WithContext(ctx)
	for i, u := range f.feeds {
		g.Go(func() error {
			entries, err := f.fetchFeed(gctx, u)
			if err != nil {
				return fmt.Errorf("feed %s: %w", u, err)
			}
			results[i] = entries
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	items := f.merge(lo.Flatten(results))
	f.log.WithField("items_count", len(items)).Debug("News fetched")
	return items, nil
}

func (f *Fetcher) fetchFeed(ctx context.Context, u string) ([]entry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := f.rq.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("bad status code: %d", resp.StatusCode)
	}

	feed, err := gofeed.NewParser().Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	entries := make([]entry, 0, len(feed.Items))
	for _, it := range feed.Items {
		if e, ok := f.convert(it); ok {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

// convert maps a feed item to an entry; items without a title are dropped.
func (f *Fetcher) convert(it *gofeed.Item) (entry, bool) {
	title := strings.TrimSpace(it.Title)
	if title == "" {
		return entry{}, false
	}

	summary := plainText(it.Description)
	if summary == "" {
		summary = plainText(it.Content)
	}

	e := entry{item: models.NewsItem{
		Title:   title,
		Summary: summary,
		Link:    strings.TrimSpace(it.Link),
	}}

	published := it.PublishedParsed
	if published == nil {
		published = it.UpdatedParsed
	}
	if published != nil {
		e.published = *published
		e.item.PublishedAt = datefmt.MediumDateShortTime(*published, f.loc)
	} else {
		e.item.PublishedAt = strings.TrimSpace(it.Published)
	}
	return e, true
}

// merge drops duplicates by key, orders by publication time (undated last) and applies the limit.
func (f *Fetcher) merge(entries []entry) []models.NewsItem {
	entries = lo.UniqBy(entries, func(e entry) string { return e.item.Key() })

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i].published, entries[j].published
		if a.IsZero() {
			return false
		}
		return b.IsZero() || a.After(b)
	})

	if f.maxItems > 0 && len(entries) > f.maxItems {
		entries = entries[:f.maxItems]
	}

	return lo.Map(entries, func(e entry, _ int) models.NewsItem { return e.item })
}

// plainText strips markup from an HTML fragment and collapses whitespace.
func plainText(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err == nil {
		s = doc.Text()
	}
	return strings.Join(strings.Fields(s), " ")
}
