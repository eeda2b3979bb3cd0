// Package feed aggregates rendered documents into RSS and Atom syndication
// documents.
package feed

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/gorilla/feeds"
)

// ErrEmptyFeed indicates a feed was required to have at least one entry.
var ErrEmptyFeed = errors.New("feed requires at least one entry")

// Site is the channel-level metadata shared by both feed documents.
type Site struct {
	Title       string
	Description string
	BaseURL     string
	Author      string
}

// Entry is one document's contribution to the feeds. Href is site-relative;
// absolute links are derived from Site.BaseURL.
type Entry struct {
	Title   string
	Href    string
	Summary string
	Created time.Time
	Updated time.Time
	Tags    []string
}

// Generator builds feed documents. Entries are ordered newest-first by
// publication date (created), then title, and capped at limit.
type Generator struct {
	site           Site
	limit          int
	requireEntries bool
}

// NewGenerator creates a Generator. limit <= 0 means unlimited; when
// requireEntries is set, building a feed from zero entries fails with
// ErrEmptyFeed (otherwise an empty feed is valid).
func NewGenerator(site Site, limit int, requireEntries bool) *Generator {
	return &Generator{site: site, limit: limit, requireEntries: requireEntries}
}

// RSS serializes the RSS 2.0 feed document.
func (g *Generator) RSS(entries []Entry) (string, error) {
	f, err := g.build(entries)
	if err != nil {
		return "", err
	}
	return f.ToRss()
}

// Atom serializes the Atom feed document.
func (g *Generator) Atom(entries []Entry) (string, error) {
	f, err := g.build(entries)
	if err != nil {
		return "", err
	}
	return f.ToAtom()
}

func (g *Generator) build(entries []Entry) (*feeds.Feed, error) {
	if len(entries) == 0 && g.requireEntries {
		return nil, ErrEmptyFeed
	}

	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].Created.Equal(sorted[j].Created) {
			return sorted[i].Created.After(sorted[j].Created)
		}
		return sorted[i].Title < sorted[j].Title
	})
	if g.limit > 0 && len(sorted) > g.limit {
		sorted = sorted[:g.limit]
	}

	base := strings.TrimSuffix(g.site.BaseURL, "/")

	f := &feeds.Feed{
		Title:       g.site.Title,
		Link:        &feeds.Link{Href: g.site.BaseURL},
		Description: g.site.Description,
		Author:      &feeds.Author{Name: g.site.Author},
	}

	// Atom requires an updated timestamp; use the newest entry's date rather
	// than the wall clock so rebuilding unchanged input is byte-identical.
	for _, e := range sorted {
		if ts := pubDate(e); ts.After(f.Updated) {
			f.Updated = ts
		}
	}

	for _, e := range sorted {
		link := base + "/" + strings.TrimPrefix(e.Href, "/")
		f.Items = append(f.Items, &feeds.Item{
			Id:          link,
			Title:       e.Title,
			Link:        &feeds.Link{Href: link},
			Description: e.Summary,
			Created:     e.Created,
			Updated:     e.Updated,
		})
	}

	return f, nil
}

// pubDate is the entry's publication timestamp: updated, falling back to
// created. Zero when the document is undated.
func pubDate(e Entry) time.Time {
	if !e.Updated.IsZero() {
		return e.Updated
	}
	return e.Created
}
