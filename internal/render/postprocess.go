package render

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	// Section headings in the rendered fragment. After demotion these are
	// h2 (from #) and h3 (from ##).
	tocHeadingPattern = regexp.MustCompile(`(?s)<h([23]) id="([^"]*)"[^>]*>(.*?)</h[23]>`)
	htmlTagPattern    = regexp.MustCompile(`<[^>]+>`)

	// A paragraph holding nothing but one image.
	soloImagePattern = regexp.MustCompile(`<p>(<img [^>]*?/?>)</p>`)
	imgAltPattern    = regexp.MustCompile(`alt="([^"]*)"`)

	blockquotePattern = regexp.MustCompile(`(?s)<blockquote>\n(.*?)</blockquote>`)
)

type tocEntry struct {
	level int
	id    string
	text  string
}

// buildTOC assembles the margin table of contents from the fragment's h2 and
// h3 headings, numbered 01, 01.1, and so on. Returns "" when the document has
// no section headings. Ids and titles are lifted from already-escaped output.
func buildTOC(html string) string {
	var entries []tocEntry
	for _, m := range tocHeadingPattern.FindAllStringSubmatch(html, -1) {
		level := 2
		if m[1] == "3" {
			level = 3
		}
		entries = append(entries, tocEntry{
			level: level,
			id:    m[2],
			text:  strings.TrimSpace(htmlTagPattern.ReplaceAllString(m[3], "")),
		})
	}
	if len(entries) == 0 {
		return ""
	}

	var b strings.Builder
	h2n, h3n := 0, 0
	liOpen, subOpen := false, false

	// The anchor constrains percentage margins to the text column width.
	b.WriteString(`<div class="toc-anchor">`)
	b.WriteString(`<nav class="toc marginnote" aria-label="Contents">`)
	b.WriteString(`<p class="toc-title">Contents</p>`)
	b.WriteString(`<ol class="toc-list">`)

	for i, e := range entries {
		next := 0
		if i+1 < len(entries) {
			next = entries[i+1].level
		}

		if e.level == 2 {
			if liOpen {
				if subOpen {
					b.WriteString("</ol>")
					subOpen = false
				}
				b.WriteString("</li>")
			}
			liOpen = true
			h2n++
			h3n = 0
			b.WriteString(`<li class="toc-l1">`)
			writeTOCLink(&b, fmt.Sprintf("%02d", h2n), e)
			if next == 3 {
				b.WriteString(`<ol class="toc-sub">`)
				subOpen = true
			}
			continue
		}

		// An h3 without a preceding h2 stands alone at the top level.
		if !liOpen {
			h2n++
			h3n = 0
			b.WriteString(`<li class="toc-l1">`)
			writeTOCLink(&b, fmt.Sprintf("%02d", h2n), e)
			b.WriteString("</li>")
			continue
		}

		h3n++
		b.WriteString(`<li class="toc-l2">`)
		writeTOCLink(&b, fmt.Sprintf("%02d.%d", h2n, h3n), e)
		b.WriteString("</li>")
	}

	if liOpen {
		if subOpen {
			b.WriteString("</ol>")
		}
		b.WriteString("</li>")
	}
	b.WriteString("</ol></nav></div>")
	return b.String()
}

func writeTOCLink(b *strings.Builder, num string, e tocEntry) {
	b.WriteString(`<a href="#` + e.id + `">`)
	b.WriteString(`<span class="toc-num">` + num + `</span>`)
	b.WriteString(`<span class="toc-text">` + e.text + `</span>`)
	b.WriteString(`<span class="toc-leader" aria-hidden="true"></span></a>`)
}

// renderFigures wraps each paragraph holding a single image in a figure,
// reusing the alt text as the caption.
func renderFigures(html string) string {
	return soloImagePattern.ReplaceAllStringFunc(html, func(m string) string {
		img := soloImagePattern.FindStringSubmatch(m)[1]
		caption := ""
		if alt := imgAltPattern.FindStringSubmatch(img); alt != nil {
			caption = alt[1]
		}
		return `<figure class="image-container">` + img +
			`<figcaption>` + caption + `</figcaption></figure>`
	})
}

// renderEpigraphs pulls a trailing "-- attribution" (or en/em dash) out of a
// blockquote's last paragraph into a <footer>, the conventional epigraph
// shape. Blockquotes without an attribution, and nested blockquotes, pass
// through unchanged.
func renderEpigraphs(html string) string {
	return blockquotePattern.ReplaceAllStringFunc(html, func(m string) string {
		inner := m[len("<blockquote>\n") : len(m)-len("</blockquote>")]
		if strings.Contains(inner, "<blockquote>") {
			return m
		}

		end := strings.LastIndex(inner, "</p>")
		if end == -1 {
			return m
		}
		start := strings.LastIndex(inner[:end], "<p>")
		if start == -1 {
			return m
		}
		para := inner[start+len("<p>") : end]

		cut := attributionIndex(para)
		if cut == -1 {
			return m
		}
		attribution := strings.TrimSpace(strings.TrimLeft(para[cut:], "-–—"))
		if attribution == "" {
			return m
		}

		var b strings.Builder
		b.WriteString("<blockquote>\n")
		b.WriteString(inner[:start])
		if quote := strings.TrimRight(para[:cut], " \n"); strings.TrimSpace(quote) != "" {
			b.WriteString("<p>" + quote + "</p>")
		}
		b.WriteString("\n<footer>" + attribution + "</footer>\n")
		b.WriteString("</blockquote>")
		return b.String()
	})
}

// attributionIndex finds the last "--", en dash, or em dash in the paragraph.
func attributionIndex(s string) int {
	if i := strings.LastIndex(s, "--"); i != -1 {
		return i
	}
	if i := strings.LastIndex(s, "–"); i != -1 {
		return i
	}
	return strings.LastIndex(s, "—")
}
