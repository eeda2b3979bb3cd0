package ssg

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/dysthesis/ssg/internal/feed"
	"github.com/dysthesis/ssg/internal/header"
	"github.com/dysthesis/ssg/internal/render"
)

// Assembler walks the content tree, renders each document, and writes the
// output site. One Assembler performs any number of builds; each Build is a
// full, idempotent pass.
type Assembler struct {
	cfg      Config
	renderer *render.Renderer
	feeds    *feed.Generator
}

// New creates an Assembler for the given configuration.
func New(cfg Config) (*Assembler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Assembler{
		cfg:      cfg,
		renderer: render.New(),
		feeds: feed.NewGenerator(feed.Site{
			Title:       cfg.Site.Title,
			Description: cfg.Site.Description,
			BaseURL:     cfg.Site.BaseURL,
			Author:      cfg.Site.Author,
		}, cfg.FeedItemLimit, cfg.RequireFeedEntries),
	}, nil
}

// rendered is one document's render result, produced by a worker and reduced
// single-threaded afterwards.
type rendered struct {
	page    Page
	article Article
}

// Build performs one full build: discover, render (in parallel), and emit.
// A single bad document aborts the whole run; the site is published
// whole-tree or not at all.
func (a *Assembler) Build(ctx context.Context) error {
	tree, err := discoverTree(a.path(a.cfg.ContentDir))
	if err != nil {
		return err
	}

	stylesheet, err := os.ReadFile(a.path(a.cfg.StylesheetPath))
	if err != nil {
		return fmt.Errorf("%w: %s", ErrStylesheetMissing, a.path(a.cfg.StylesheetPath))
	}

	headCommon := readOptional(a.path(a.cfg.HeadIncludesPath))
	footer := readOptional(a.path(a.cfg.FooterPath))

	results := make([]rendered, len(tree.Sources))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(ResolveWorkers(a.cfg.Workers))
	for i, src := range tree.Sources {
		i, src := i, src
		g.Go(func() error {
			res, err := a.renderDocument(gctx, src, headCommon, footer)
			if err != nil {
				return fmt.Errorf("%s: %w", src.Path, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	articles := make([]Article, len(results))
	for i, r := range results {
		articles[i] = r.article
	}
	sortArticles(articles)

	em := newEmitter(a.path(a.cfg.OutputDir))

	for _, r := range results {
		if err := em.writePage(r.page.Rel, r.page.HTML); err != nil {
			return err
		}
	}

	if err := a.writeListings(em, articles, headCommon); err != nil {
		return err
	}
	if err := a.writeFeeds(em, articles); err != nil {
		return err
	}

	// The stylesheet is copied byte-for-byte into the output root.
	return em.write(DefaultStylesheet, stylesheet)
}

// renderDocument turns one source file into a finished page plus its article
// record. Pure with respect to the output tree; only reads the source.
func (a *Assembler) renderDocument(ctx context.Context, src SourceFile, headCommon, footer string) (rendered, error) {
	content, err := os.ReadFile(src.Path)
	if err != nil {
		return rendered{}, err
	}

	meta, body, err := header.Parse(string(content))
	if err != nil {
		return rendered{}, err
	}

	fragment, err := a.renderer.Render(ctx, body)
	if err != nil {
		return rendered{}, err
	}

	outRel := outputRel(a.cfg.PostsDir, src.Rel)
	prefix := prefixToRoot(outRel)

	cssHref := prefix + DefaultStylesheet
	if meta.Stylesheet != "" {
		cssHref = prefix + meta.Stylesheet
	}

	// Navigation back to the index, only relevant on-page.
	fragment += "\n<p class=\"meta\"><a href=\"" + escapeAttr(prefix+"index.html") + "\">Index</a></p>\n"

	html := pageShell(headCommon, headFragment(meta, cssHref), bodyHeader(meta), fragment, footer)

	return rendered{
		page: Page{Rel: outRel, HTML: []byte(html)},
		article: Article{
			Title:   meta.Title,
			Href:    filepath.ToSlash(outRel),
			Summary: meta.Description,
			Created: meta.Created,
			Updated: meta.Updated,
			Tags:    meta.Tags,
		},
	}, nil
}

// writeListings emits the index page and one listing page per tag.
func (a *Assembler) writeListings(em *emitter, articles []Article, headCommon string) error {
	index := listingPage("Index", "Index", articles, headCommon, "")
	if err := em.writePage("index.html", []byte(index)); err != nil {
		return err
	}

	byTag := make(map[string][]Article)
	for _, art := range articles {
		for _, t := range art.Tags {
			if !validTag(t) {
				continue
			}
			byTag[t] = append(byTag[t], art)
		}
	}

	tags := make([]string, 0, len(byTag))
	for t := range byTag {
		tags = append(tags, t)
	}
	sort.Strings(tags)

	for _, t := range tags {
		rel := filepath.Join(a.cfg.TagsDir, t+".html")
		page := listingPage("Tag: "+t, "Tag: "+t, byTag[t], headCommon, prefixToRoot(rel))
		if err := em.writePage(rel, []byte(page)); err != nil {
			return err
		}
	}
	return nil
}

// writeFeeds emits rss.xml and atom.xml at the output root.
func (a *Assembler) writeFeeds(em *emitter, articles []Article) error {
	entries := make([]feed.Entry, len(articles))
	for i, art := range articles {
		entries[i] = feed.Entry{
			Title:   art.Title,
			Href:    art.Href,
			Summary: art.Summary,
			Created: art.Created,
			Updated: art.Updated,
			Tags:    art.Tags,
		}
	}

	rss, err := a.feeds.RSS(entries)
	if err != nil {
		return err
	}
	if err := em.write("rss.xml", []byte(rss)); err != nil {
		return err
	}

	atom, err := a.feeds.Atom(entries)
	if err != nil {
		return err
	}
	return em.write("atom.xml", []byte(atom))
}

// path resolves a configured path against Root unless already absolute.
func (a *Assembler) path(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(a.cfg.Root, p)
}

// readOptional loads a shared fragment, treating a missing file as empty.
func readOptional(path string) string {
	if path == "" {
		return ""
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return string(data)
}

// sortArticles orders newest-first by creation date, then title; undated
// articles sort last.
func sortArticles(articles []Article) {
	sort.SliceStable(articles, func(i, j int) bool {
		if !articles[i].Created.Equal(articles[j].Created) {
			return articles[i].Created.After(articles[j].Created)
		}
		return articles[i].Title < articles[j].Title
	})
}

// validTag reports whether a tag is safe to use as a listing filename.
// Invalid tags are dropped from tag listings, not errors.
func validTag(tag string) bool {
	if tag == "" {
		return false
	}
	for _, r := range tag {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return false
		}
	}
	return true
}
