// Package ssg builds a single-author static site: a tree of Markdown
// documents with YAML metadata headers becomes a mirrored tree of HTML pages,
// listing pages, and RSS/Atom feeds.
//
// Basic usage:
//
//	a, err := ssg.New(ssg.DefaultConfig())
//	if err != nil {
//		// handle error
//	}
//	if err := a.Build(context.Background()); err != nil {
//		// handle error
//	}
//
// Configuration is an explicit value passed at construction, never ambient
// state; DefaultConfig returns the conventional layout (contents/ in,
// public/ out, style.css copied to the output root).
package ssg
