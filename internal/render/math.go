package render

import (
	stdhtml "html"
	"strconv"
	"strings"
)

// Math placeholders bracket a span index between U+E002 and U+E003. The span
// content itself is held out-of-band so goldmark never sees it; _ and * inside
// formulas would otherwise be parsed as emphasis.
const (
	mathStartPlaceholder = "\uE002" // U+E002: Private Use Area
	mathEndPlaceholder   = "\uE003" // U+E003: Private Use Area
)

// mathSpan is one extracted math region, copied verbatim into the output.
type mathSpan struct {
	source  string
	display bool
}

func mathPlaceholder(idx int) string {
	return mathStartPlaceholder + strconv.Itoa(idx) + mathEndPlaceholder
}

// extractMath replaces inline $...$ spans and $$ blocks with indexed
// placeholders, returning the rewritten content and the extracted spans.
// Fenced code blocks and inline code spans are left untouched. Unterminated
// spans stay literal text; math is best-effort, never fatal.
func extractMath(content string) (string, []mathSpan) {
	lines := strings.Split(content, "\n")
	out := make([]string, 0, len(lines))
	var spans []mathSpan

	var fence fenceTracker
	for i := 0; i < len(lines); i++ {
		line := lines[i]

		if fence.scan(line) || fence.inCode() {
			out = append(out, line)
			continue
		}

		if strings.TrimSpace(line) == "$$" {
			end := closingMathFence(lines, i+1)
			if end == -1 {
				out = append(out, line)
				continue
			}
			spans = append(spans, mathSpan{
				source:  strings.Join(lines[i+1:end], "\n"),
				display: true,
			})
			out = append(out, mathPlaceholder(len(spans)-1))
			i = end
			continue
		}

		line, spans = extractInlineMath(line, spans)
		out = append(out, line)
	}

	return strings.Join(out, "\n"), spans
}

// closingMathFence finds the next "$$" line, or -1 if the block is
// unterminated (including running into a code fence).
func closingMathFence(lines []string, from int) int {
	for j := from; j < len(lines); j++ {
		if fenceLine.MatchString(lines[j]) {
			return -1
		}
		if strings.TrimSpace(lines[j]) == "$$" {
			return j
		}
	}
	return -1
}

// extractInlineMath rewrites $...$ spans within a single line. Dollars inside
// backtick code spans are literal, as are empty ($$) and unclosed spans.
func extractInlineMath(line string, spans []mathSpan) (string, []mathSpan) {
	if !strings.ContainsRune(line, '$') {
		return line, spans
	}

	var b strings.Builder
	b.Grow(len(line))
	rs := []rune(line)
	inCode := false

	for i := 0; i < len(rs); i++ {
		r := rs[i]
		if r == '`' {
			inCode = !inCode
		}
		if r != '$' || inCode {
			b.WriteRune(r)
			continue
		}

		end := -1
		code := false
		for j := i + 1; j < len(rs); j++ {
			if rs[j] == '`' {
				code = !code
				continue
			}
			if rs[j] == '$' && !code {
				end = j
				break
			}
		}
		if end == -1 || end == i+1 {
			b.WriteRune(r)
			continue
		}

		spans = append(spans, mathSpan{source: string(rs[i+1 : end])})
		b.WriteString(mathPlaceholder(len(spans) - 1))
		i = end
	}

	return b.String(), spans
}

// restoreMath swaps placeholders for marker elements wrapping the escaped
// verbatim source. The pipeline performs no mathematical interpretation;
// client-side rendering targets the math classes.
func restoreMath(html string, spans []mathSpan) string {
	for i, span := range spans {
		ph := mathPlaceholder(i)
		escaped := stdhtml.EscapeString(span.source)
		if span.display {
			repl := `<div class="math math-display">` + escaped + `</div>`
			// A block placeholder standing alone becomes its own paragraph.
			if wrapped := "<p>" + ph + "</p>"; strings.Contains(html, wrapped) {
				html = strings.Replace(html, wrapped, repl, 1)
			} else {
				html = strings.Replace(html, ph, repl, 1)
			}
			continue
		}
		repl := `<span class="math math-inline">` + escaped + `</span>`
		html = strings.Replace(html, ph, repl, 1)
	}
	return html
}
