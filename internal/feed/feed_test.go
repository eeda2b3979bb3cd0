package feed

import (
	"errors"
	"strings"
	"testing"
	"time"
)

var testSite = Site{
	Title:       "Test Site",
	Description: "A site under test",
	BaseURL:     "https://example.com",
	Author:      "Tester",
}

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func TestRSS(t *testing.T) {
	t.Parallel()

	entries := []Entry{
		{Title: "Oldest", Href: "posts/oldest.html", Created: day(1)},
		{Title: "Newest", Href: "posts/newest.html", Created: day(3)},
		{Title: "Middle", Href: "posts/middle.html", Summary: "in between", Created: day(2)},
	}

	g := NewGenerator(testSite, 0, false)
	out, err := g.RSS(entries)
	if err != nil {
		t.Fatalf("RSS error: %v", err)
	}

	for _, want := range []string{
		"<title>Test Site</title>",
		"A site under test",
		"https://example.com/posts/newest.html",
		"in between",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("feed missing %q:\n%s", want, out)
		}
	}

	// Entries must appear newest-first.
	newest := strings.Index(out, "Newest")
	middle := strings.Index(out, "Middle")
	oldest := strings.Index(out, "Oldest")
	if newest == -1 || middle == -1 || oldest == -1 {
		t.Fatalf("feed missing entries:\n%s", out)
	}
	if !(newest < middle && middle < oldest) {
		t.Errorf("entries out of order: newest=%d middle=%d oldest=%d", newest, middle, oldest)
	}
}

func TestAtom(t *testing.T) {
	t.Parallel()

	g := NewGenerator(testSite, 0, false)
	out, err := g.Atom([]Entry{
		{Title: "Entry", Href: "posts/entry.html", Created: day(5)},
	})
	if err != nil {
		t.Fatalf("Atom error: %v", err)
	}

	for _, want := range []string{
		"<feed xmlns=\"http://www.w3.org/2005/Atom\">",
		"https://example.com/posts/entry.html",
		"Tester",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("feed missing %q:\n%s", want, out)
		}
	}
}

func TestFeedLimit(t *testing.T) {
	t.Parallel()

	entries := make([]Entry, 5)
	for i := range entries {
		entries[i] = Entry{
			Title:   "Post " + string(rune('A'+i)),
			Href:    "posts/p.html",
			Created: day(i + 1),
		}
	}

	g := NewGenerator(testSite, 2, false)
	out, err := g.RSS(entries)
	if err != nil {
		t.Fatalf("RSS error: %v", err)
	}

	if !strings.Contains(out, "Post E") || !strings.Contains(out, "Post D") {
		t.Errorf("limited feed should keep newest entries:\n%s", out)
	}
	if strings.Contains(out, "Post A") {
		t.Errorf("limited feed should drop oldest entries:\n%s", out)
	}
}

func TestEmptyFeed(t *testing.T) {
	t.Parallel()

	t.Run("required entries", func(t *testing.T) {
		t.Parallel()

		g := NewGenerator(testSite, 0, true)
		if _, err := g.RSS(nil); !errors.Is(err, ErrEmptyFeed) {
			t.Errorf("error = %v, want ErrEmptyFeed", err)
		}
	})

	t.Run("empty allowed", func(t *testing.T) {
		t.Parallel()

		g := NewGenerator(testSite, 0, false)
		out, err := g.RSS(nil)
		if err != nil {
			t.Fatalf("RSS error: %v", err)
		}
		if !strings.Contains(out, "<title>Test Site</title>") {
			t.Errorf("empty feed missing channel metadata:\n%s", out)
		}
	})
}

func TestFeedDeterministic(t *testing.T) {
	t.Parallel()

	entries := []Entry{
		{Title: "One", Href: "posts/one.html", Created: day(1), Updated: day(9)},
		{Title: "Two", Href: "posts/two.html", Created: day(2)},
	}

	g := NewGenerator(testSite, 0, false)
	first, err := g.Atom(entries)
	if err != nil {
		t.Fatalf("Atom error: %v", err)
	}
	second, err := g.Atom(entries)
	if err != nil {
		t.Fatalf("Atom error: %v", err)
	}
	if first != second {
		t.Error("repeated generation of identical input differs")
	}
	// Updated timestamp comes from the newest entry, not the wall clock.
	if !strings.Contains(first, "2024-01-09") {
		t.Errorf("feed updated timestamp should come from entries:\n%s", first)
	}
}
