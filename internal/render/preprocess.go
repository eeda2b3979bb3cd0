package render

import (
	"regexp"
	"strings"
)

// Highlight placeholders use Unicode Private Use Area characters.
// These are guaranteed to not conflict with any standard characters
// and will pass through goldmark unchanged (no WithUnsafe needed).
// Post-processing converts these to <mark> tags after HTML generation.
const (
	markStartPlaceholder = "\uE000" // U+E000: Private Use Area start
	markEndPlaceholder   = "\uE001" // U+E001: Private Use Area end
)

// Precompiled regex patterns for performance.
var (
	// Line ending normalization
	crlfOrCR = regexp.MustCompile(`\r\n?`)

	// Compress multiple blank lines to max 2
	multipleBlankLines = regexp.MustCompile(`\n{3,}`)

	// Highlight syntax ==text==
	highlightPattern = regexp.MustCompile(`==(.*?)==`)

	// Fence marker: three or more backticks or tildes, indented up to three
	// spaces per CommonMark.
	fenceLine = regexp.MustCompile("^ {0,3}(`{3,}|~{3,})")
)

// fenceTracker follows fenced code block boundaries line by line. A block
// closes only on a fence of the same character at least as long as the
// opener with nothing after it; anything else fence-shaped inside an open
// block is content.
type fenceTracker struct {
	char   byte
	length int
}

func (f *fenceTracker) inCode() bool { return f.length > 0 }

// scan processes one line, reporting whether it is a fence delimiter.
func (f *fenceTracker) scan(line string) bool {
	m := fenceLine.FindStringSubmatch(line)
	if m == nil {
		return false
	}
	marker := m[1]
	if f.length == 0 {
		f.char = marker[0]
		f.length = len(marker)
		return true
	}
	if marker[0] == f.char && len(marker) >= f.length &&
		strings.TrimSpace(line[len(m[0]):]) == "" {
		f.char = 0
		f.length = 0
		return true
	}
	return false
}

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// compressBlankLines limits consecutive blank lines to 2 maximum.
func compressBlankLines(content string) string {
	return multipleBlankLines.ReplaceAllString(content, "\n\n")
}

// convertHighlights transforms ==text== to placeholder markers, skipping
// fenced code blocks so highlighted snippets keep literal == sequences.
// Runs after math extraction; placeholder-held math is never touched.
func convertHighlights(content string) string {
	lines := strings.Split(content, "\n")
	var fence fenceTracker
	for i, line := range lines {
		if fence.scan(line) || fence.inCode() {
			continue
		}
		lines[i] = highlightPattern.ReplaceAllString(line, markStartPlaceholder+"$1"+markEndPlaceholder)
	}
	return strings.Join(lines, "\n")
}

// restoreMarkPlaceholders converts placeholder markers to <mark> tags.
// Called after goldmark HTML conversion to finalize highlight markup.
func restoreMarkPlaceholders(content string) string {
	return strings.ReplaceAll(
		strings.ReplaceAll(content, markStartPlaceholder, "<mark>"),
		markEndPlaceholder, "</mark>",
	)
}
