package ssg

import (
	"fmt"
	"runtime"
	"time"
)

// Conventional layout defaults.
const (
	DefaultContentDir    = "contents"
	DefaultOutputDir     = "public"
	DefaultPostsDir      = "posts"
	DefaultTagsDir       = "tags"
	DefaultStylesheet    = "style.css"
	DefaultHeadIncludes  = "header.html"
	DefaultFooter        = "footer.html"
	DefaultFeedItemLimit = 50
)

// SiteMeta is site-wide metadata used for feeds and absolute links.
type SiteMeta struct {
	Title       string
	Description string
	BaseURL     string
	Author      string
}

// Config holds all paths and settings for a build. Paths are relative to
// Root unless absolute. The zero value is not usable; start from
// DefaultConfig.
type Config struct {
	Root string // base directory, "" = current directory

	ContentDir       string // tree of Markdown sources
	OutputDir        string // mirrored HTML output tree
	PostsDir         string // subdirectory of OutputDir holding rendered pages
	TagsDir          string // subdirectory of OutputDir holding tag listings
	StylesheetPath   string // copied byte-for-byte into the output root
	HeadIncludesPath string // optional shared <head> fragment
	FooterPath       string // optional shared footer fragment

	Site SiteMeta

	FeedItemLimit      int  // max entries per feed, <= 0 = unlimited
	RequireFeedEntries bool // fail with ErrEmptyFeed when no documents exist
	Workers            int  // parallel renders, <= 0 = GOMAXPROCS
}

// DefaultConfig returns the conventional single-author layout.
func DefaultConfig() Config {
	return Config{
		ContentDir:       DefaultContentDir,
		OutputDir:        DefaultOutputDir,
		PostsDir:         DefaultPostsDir,
		TagsDir:          DefaultTagsDir,
		StylesheetPath:   DefaultStylesheet,
		HeadIncludesPath: DefaultHeadIncludes,
		FooterPath:       DefaultFooter,
		FeedItemLimit:    DefaultFeedItemLimit,
	}
}

// Validate checks that required fields are present.
func (c Config) Validate() error {
	if c.ContentDir == "" {
		return fmt.Errorf("%w: content directory not set", ErrInvalidConfig)
	}
	if c.OutputDir == "" {
		return fmt.Errorf("%w: output directory not set", ErrInvalidConfig)
	}
	if c.StylesheetPath == "" {
		return fmt.Errorf("%w: stylesheet path not set", ErrInvalidConfig)
	}
	return nil
}

// Article is one successfully rendered document as the listing pages and
// feeds see it.
type Article struct {
	Title   string
	Href    string // output-root-relative, forward slashes
	Summary string
	Created time.Time
	Updated time.Time
	Tags    []string
}

// ResolveWorkers determines the render worker count.
// Priority: explicit workers > GOMAXPROCS (adjusted by automaxprocs in
// containerized builds).
func ResolveWorkers(workers int) int {
	if workers > 0 {
		return workers
	}
	if n := runtime.GOMAXPROCS(0); n > 1 {
		return n
	}
	return 1
}
