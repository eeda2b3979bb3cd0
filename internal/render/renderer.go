package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// ErrConversion indicates Markdown conversion failed.
var ErrConversion = errors.New("markdown conversion failed")

// Renderer converts document bodies to HTML fragments. Safe for concurrent
// use: goldmark instances are stateless across Convert calls.
type Renderer struct {
	md goldmark.Markdown
}

// New creates a Renderer with GFM, footnotes, and chroma-backed syntax
// highlighting. Chroma emits CSS classes rather than inline styles so token
// colors stay in the site stylesheet; its lexer registry is the supported
// language table, and unknown language tags degrade to escaped plain text.
// Headings are demoted one level so the metadata title keeps the only h1.
func New() *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,      // Tables, strikethrough, autolinks, task lists
			extension.Footnote, // [^label] references, indexed by first reference
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true),
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
			parser.WithASTTransformers(
				util.Prioritized(headingDemoter{}, 100),
			),
		),
		goldmark.WithRendererOptions(
			html.WithXHTML(),
		),
	)
	return &Renderer{md: md}
}

// Render converts a document body to an HTML fragment.
// Supports context cancellation via goroutine + select pattern since
// goldmark doesn't natively support context.
func (r *Renderer) Render(ctx context.Context, body string) (string, error) {
	// Fast path: check context before starting
	if err := ctx.Err(); err != nil {
		return "", err
	}

	// Math is diverted first so its verbatim content is invisible to every
	// later pass; highlight and footnote handling then see math-free text.
	content := normalizeLineEndings(body)
	content, spans := extractMath(content)
	content = convertHighlights(content)
	content = compressBlankLines(content)

	if _, err := scanFootnotes(content); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := r.md.Convert([]byte(content), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrConversion, err)}
			return
		}
		done <- result{html: buf.String()}
	}()

	var fragment string
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-done:
		if res.err != nil {
			return "", res.err
		}
		fragment = res.html
	}

	fragment = restoreMath(fragment, spans)
	fragment = restoreMarkPlaceholders(fragment)
	fragment = renderFigures(fragment)
	fragment = renderEpigraphs(fragment)
	if toc := buildTOC(fragment); toc != "" {
		fragment = toc + fragment
	}
	return fragment, nil
}
