package ssg

import (
	stdhtml "html"
	"path/filepath"
	"strings"
	"time"

	"github.com/dysthesis/ssg/internal/dateutil"
	"github.com/dysthesis/ssg/internal/header"
)

// Page is one rendered output document during the write phase.
type Page struct {
	Rel  string // output-root-relative path
	HTML []byte
}

// escapeText HTML-escapes text content; escapeAttr follows the same rules,
// which suffice for attribute values here.
func escapeText(s string) string { return stdhtml.EscapeString(s) }
func escapeAttr(s string) string { return stdhtml.EscapeString(s) }

// prefixToRoot is the "../" chain navigating from a relative output path
// back to the output root.
func prefixToRoot(rel string) string {
	dir := filepath.Dir(filepath.ToSlash(rel))
	if dir == "." || dir == "/" {
		return ""
	}
	depth := strings.Count(dir, "/") + 1
	return strings.Repeat("../", depth)
}

// pageShell is the basic HTML shell shared by all pages.
func pageShell(headCommon, headFragment, bodyHeader, body, footer string) string {
	var b strings.Builder
	b.Grow(len(body) + 512)
	b.WriteString("<!doctype html>\n<html lang=\"en\">\n<head>\n")
	b.WriteString("<meta charset=\"utf-8\">\n")
	b.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">\n")
	b.WriteString(headCommon)
	b.WriteString(headFragment)
	b.WriteString("\n</head>\n<body>\n<article>\n<section>\n")
	b.WriteString(bodyHeader)
	b.WriteString(body)
	b.WriteString("\n</section>\n</article>\n</body>\n")
	b.WriteString(footer)
	b.WriteString("\n</html>\n")
	return b.String()
}

// headFragment builds the per-document <head> additions: title, description,
// and the stylesheet link (per-document override already resolved into
// cssHref by the caller).
func headFragment(meta header.Metadata, cssHref string) string {
	var b strings.Builder
	b.WriteString("<title>")
	b.WriteString(escapeText(meta.Title))
	b.WriteString("</title>\n")
	if meta.Description != "" {
		b.WriteString(`<meta name="description" content="`)
		b.WriteString(escapeAttr(meta.Description))
		b.WriteString("\">\n")
	}
	b.WriteString(`<link rel="stylesheet" href="`)
	b.WriteString(escapeAttr(cssHref))
	b.WriteString("\">")
	return b.String()
}

// bodyHeader renders the document masthead: title, optional subtitle, and a
// meta row with dates and tags.
func bodyHeader(meta header.Metadata) string {
	var b strings.Builder
	b.WriteString("<h1>")
	b.WriteString(escapeText(meta.Title))
	b.WriteString("</h1>\n")
	if meta.Subtitle != "" {
		b.WriteString(`<p class="subtitle">`)
		b.WriteString(escapeText(meta.Subtitle))
		b.WriteString("</p>\n")
	}
	b.WriteString(metaRow(meta))
	return b.String()
}

// metaRow renders the created/updated/tags line, or nothing when the header
// carries none of them.
func metaRow(meta header.Metadata) string {
	var parts []string

	if !meta.Created.IsZero() {
		parts = append(parts, timeSpan("Created", meta.Created))
	}
	if !meta.Updated.IsZero() {
		parts = append(parts, timeSpan("Updated", meta.Updated))
	}
	if len(meta.Tags) > 0 {
		var tags []string
		for _, t := range meta.Tags {
			tags = append(tags, `<span class="tag">`+escapeText(t)+`</span>`)
		}
		parts = append(parts, `<span class="meta-item">Tags: `+strings.Join(tags, " ")+`</span>`)
	}

	if len(parts) == 0 {
		return ""
	}
	return `<p class="meta">` + strings.Join(parts, `<span class="meta-sep">&#183;</span>`) + "</p>\n"
}

// timeSpan renders a labelled date, machine- and human-readable.
func timeSpan(label string, t time.Time) string {
	d := dateutil.FormatISO(t)
	return `<span class="meta-item">` + label + `: <time datetime="` +
		escapeAttr(d) + `">` + escapeText(d) + `</time></span>`
}

// listingPage renders an index or tag page: articles grouped by year,
// newest-first, each with its date and link.
func listingPage(pageTitle, heading string, articles []Article, headCommon, prefix string) string {
	var body strings.Builder

	currentYear := 0
	for _, a := range articles {
		if year := a.Created.Year(); year != currentYear && !a.Created.IsZero() {
			body.WriteString("<h2>")
			body.WriteString(escapeText(dateutil.FormatISO(a.Created)[:4]))
			body.WriteString("</h2>\n")
			currentYear = year
		}

		body.WriteString(`<p class="meta">`)
		if !a.Created.IsZero() {
			d := dateutil.FormatISO(a.Created)
			body.WriteString(`<time datetime="` + escapeAttr(d) + `">` + escapeText(d) + `</time>`)
			body.WriteString(`<span class="meta-sep">&#183;</span>`)
		}
		body.WriteString(`<a href="` + escapeAttr(prefix+a.Href) + `">` + escapeText(a.Title) + `</a>`)
		body.WriteString("</p>\n")
	}

	head := headCommon +
		"<title>" + escapeText(pageTitle) + "</title>\n" +
		`<link rel="stylesheet" href="` + escapeAttr(prefix+DefaultStylesheet) + `">`

	return pageShell("", head, "<h1>"+escapeText(heading)+"</h1>\n", body.String(), "")
}
