package render

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrUndefinedFootnote indicates a footnote reference with no matching
// definition anywhere in the document.
var ErrUndefinedFootnote = errors.New("undefined footnote")

var (
	// Definition: "[^label]: ..." at the start of a line, indented up to
	// three spaces per CommonMark block rules
	footnoteDefPattern = regexp.MustCompile(`^ {0,3}\[\^([^\]\s]+)\]:`)

	// Reference: "[^label]" anywhere in running text
	footnoteRefPattern = regexp.MustCompile(`\[\^([^\]\s]+)\]`)

	// Inline code spans, stripped before scanning for references
	inlineCodePattern = regexp.MustCompile("`[^`]*`")
)

// footnoteTable maps labels to ordinals assigned in order of first reference.
// It is scoped to one document's render pass and discarded afterwards.
type footnoteTable struct {
	order    []string
	ordinals map[string]int
	defined  map[string]bool
}

// scanFootnotes walks the body top-to-bottom collecting reference sites and
// definitions, in any relative order. Ordinals follow first *reference*
// appearance, not definition order; this matches how the rendering stage
// numbers them. A reference without a definition is fatal. An unreferenced
// definition is dead content and is simply not recorded.
func scanFootnotes(content string) (*footnoteTable, error) {
	t := &footnoteTable{
		ordinals: make(map[string]int),
		defined:  make(map[string]bool),
	}

	var fence fenceTracker
	for _, line := range strings.Split(content, "\n") {
		if fence.scan(line) || fence.inCode() {
			continue
		}

		// Definitions exist only at line start; a mid-line "[^x]:" is a
		// reference followed by a literal colon, exactly as it renders.
		rest := line
		if m := footnoteDefPattern.FindStringSubmatch(line); m != nil {
			t.defined[m[1]] = true
			rest = line[len(m[0]):]
		}

		rest = inlineCodePattern.ReplaceAllString(rest, "")
		for _, m := range footnoteRefPattern.FindAllStringSubmatch(rest, -1) {
			label := m[1]
			if _, seen := t.ordinals[label]; !seen {
				t.order = append(t.order, label)
				t.ordinals[label] = len(t.order)
			}
		}
	}

	for _, label := range t.order {
		if !t.defined[label] {
			return nil, fmt.Errorf("%w: [^%s]", ErrUndefinedFootnote, label)
		}
	}

	return t, nil
}
