package render

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestRender(t *testing.T) {
	t.Parallel()

	r := New()

	tests := []struct {
		name         string
		body         string
		wantContains []string
		wantExcludes []string
	}{
		{
			name:         "paragraph",
			body:         "Hello, world.",
			wantContains: []string{"<p>Hello, world.</p>"},
		},
		{
			name:         "heading demoted with auto id",
			body:         "# Section Title",
			wantContains: []string{"<h2 id=\"section-title\">Section Title</h2>"},
			wantExcludes: []string{"<h1"},
		},
		{
			name:         "subheading demoted",
			body:         "## Detail",
			wantContains: []string{"<h3 id=\"detail\">Detail</h3>"},
		},
		{
			name:         "h6 stays h6",
			body:         "###### Deep",
			wantContains: []string{"<h6 id=\"deep\">Deep</h6>"},
		},
		{
			name:         "gfm table",
			body:         "| a | b |\n|---|---|\n| 1 | 2 |",
			wantContains: []string{"<table>", "<td>1</td>"},
		},
		{
			name:         "gfm strikethrough",
			body:         "~~gone~~",
			wantContains: []string{"<del>gone</del>"},
		},
		{
			name:         "highlight mark",
			body:         "this is ==important== text",
			wantContains: []string{"<mark>important</mark>"},
		},
		{
			name:         "rust code block gets token spans",
			body:         "```rs\npub fn main() {}\n```",
			wantContains: []string{"<span class=", "pub"},
		},
		{
			name:         "unknown language degrades to escaped text",
			body:         "```nosuchlang\na < b\n```",
			wantContains: []string{"&lt;"},
			wantExcludes: []string{"<span class="},
		},
		{
			name: "inline math verbatim",
			body: "value $x_i = 5y$ here",
			wantContains: []string{
				`<span class="math math-inline">x_i = 5y</span>`,
			},
			wantExcludes: []string{"<em>"},
		},
		{
			name: "display math verbatim",
			body: "$$\n\\frac{a}{b} < 1\n$$",
			wantContains: []string{
				`<div class="math math-display">\frac{a}{b} &lt; 1</div>`,
			},
		},
		{
			name: "double equals inside math stays verbatim",
			body: "check $a == b == c$ holds",
			wantContains: []string{
				`<span class="math math-inline">a == b == c</span>`,
			},
			wantExcludes: []string{"<mark>"},
		},
		{
			name: "footnote shape inside math stays verbatim",
			body: "the set $[^a]$ of non-a",
			wantContains: []string{
				`<span class="math math-inline">[^a]</span>`,
			},
			wantExcludes: []string{"fnref"},
		},
		{
			name:         "footnote reference and definition",
			body:         "claim[^a]\n\n[^a]: evidence",
			wantContains: []string{"fnref", "evidence"},
		},
		{
			name:         "footnotes numbered by first reference",
			body:         "second[^b] first[^a]\n\n[^a]: alpha\n[^b]: beta",
			wantContains: []string{`id="fn:1"`, "beta"},
		},
		{
			name:         "mark literal inside code fence",
			body:         "```\n==not marked==\n```",
			wantContains: []string{"==not marked=="},
			wantExcludes: []string{"<mark>"},
		},
		{
			name: "table of contents from section headings",
			body: "# First\n\ntext\n\n## Sub\n\ntext\n\n# Second\n\ntext",
			wantContains: []string{
				`<nav class="toc marginnote" aria-label="Contents">`,
				`<a href="#first"><span class="toc-num">01</span><span class="toc-text">First</span>`,
				`<span class="toc-num">01.1</span><span class="toc-text">Sub</span>`,
				`<span class="toc-num">02</span><span class="toc-text">Second</span>`,
			},
		},
		{
			name:         "no headings no toc",
			body:         "plain paragraph",
			wantExcludes: []string{`class="toc`},
		},
		{
			name: "solo image becomes figure",
			body: "![A caption](img.png)",
			wantContains: []string{
				`<figure class="image-container">`,
				`src="img.png"`,
				`<figcaption>A caption</figcaption>`,
			},
		},
		{
			name: "blockquote attribution becomes footer",
			body: "> The quote text. -- Someone Famous",
			wantContains: []string{
				"<footer>Someone Famous</footer>",
				"The quote text.",
			},
		},
		{
			name:         "blockquote without attribution unchanged",
			body:         "> Just a quote.",
			wantContains: []string{"<blockquote>", "Just a quote."},
			wantExcludes: []string{"<footer>"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := r.Render(context.Background(), tt.body)
			if err != nil {
				t.Fatalf("Render error: %v", err)
			}
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("output missing %q:\n%s", want, got)
				}
			}
			for _, unwanted := range tt.wantExcludes {
				if strings.Contains(got, unwanted) {
					t.Errorf("output should not contain %q:\n%s", unwanted, got)
				}
			}
		})
	}
}

func TestRenderUndefinedFootnote(t *testing.T) {
	t.Parallel()

	r := New()
	_, err := r.Render(context.Background(), "dangling[^nowhere]")
	if !errors.Is(err, ErrUndefinedFootnote) {
		t.Errorf("error = %v, want ErrUndefinedFootnote", err)
	}
}

func TestRenderCancelledContext(t *testing.T) {
	t.Parallel()

	r := New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Render(ctx, "text")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestRenderDeterministic(t *testing.T) {
	t.Parallel()

	r := New()
	const body = "# Title\n\ntext[^a] with $e^x$\n\n```rs\nlet x = 1;\n```\n\n[^a]: note"

	first, err := r.Render(context.Background(), body)
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	second, err := r.Render(context.Background(), body)
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if first != second {
		t.Error("repeated renders of identical input differ")
	}
}
