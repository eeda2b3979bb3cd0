package header

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		want     Metadata
		wantBody string
		wantErr  error
	}{
		{
			name: "full header",
			content: `---
title: First Post
subtitle: An opening note
description: Hello from the test suite
stylesheet: alt.css
created: 2024-01-02
updated: 2024-02-03
tags:
  - go
  - testing
---
Body text.
`,
			want: Metadata{
				Title:       "First Post",
				Subtitle:    "An opening note",
				Description: "Hello from the test suite",
				Stylesheet:  "alt.css",
				Created:     time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
				Updated:     time.Date(2024, 2, 3, 0, 0, 0, 0, time.UTC),
				Tags:        []string{"go", "testing"},
			},
			wantBody: "Body text.",
		},
		{
			name: "title only",
			content: `---
title: Minimal
---
x
`,
			want:     Metadata{Title: "Minimal"},
			wantBody: "x",
		},
		{
			name:    "no opening marker",
			content: "Just a body with no header.\n",
			wantErr: ErrMalformedHeader,
		},
		{
			name:    "unclosed header",
			content: "---\ntitle: Dangling\nNo closing marker here.\n",
			wantErr: ErrMalformedHeader,
		},
		{
			name:    "invalid yaml",
			content: "---\ntitle: [unbalanced\n---\nbody\n",
			wantErr: ErrMalformedHeader,
		},
		{
			name:    "missing title",
			content: "---\ndescription: no title field\n---\nbody\n",
			wantErr: ErrMissingTitle,
		},
		{
			name:    "blank title",
			content: "---\ntitle: \"   \"\n---\nbody\n",
			wantErr: ErrMissingTitle,
		},
		{
			name:    "bad created date",
			content: "---\ntitle: T\ncreated: yesterday\n---\nbody\n",
			wantErr: ErrMalformedHeader,
		},
		{
			name:    "bad updated date",
			content: "---\ntitle: T\nupdated: 2024-13-40\n---\nbody\n",
			wantErr: ErrMalformedHeader,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			meta, body, err := Parse(tt.content)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse error: %v", err)
			}

			if meta.Title != tt.want.Title {
				t.Errorf("Title = %q, want %q", meta.Title, tt.want.Title)
			}
			if meta.Subtitle != tt.want.Subtitle {
				t.Errorf("Subtitle = %q, want %q", meta.Subtitle, tt.want.Subtitle)
			}
			if meta.Description != tt.want.Description {
				t.Errorf("Description = %q, want %q", meta.Description, tt.want.Description)
			}
			if meta.Stylesheet != tt.want.Stylesheet {
				t.Errorf("Stylesheet = %q, want %q", meta.Stylesheet, tt.want.Stylesheet)
			}
			if !meta.Created.Equal(tt.want.Created) {
				t.Errorf("Created = %v, want %v", meta.Created, tt.want.Created)
			}
			if !meta.Updated.Equal(tt.want.Updated) {
				t.Errorf("Updated = %v, want %v", meta.Updated, tt.want.Updated)
			}
			if len(meta.Tags) != len(tt.want.Tags) {
				t.Fatalf("Tags = %v, want %v", meta.Tags, tt.want.Tags)
			}
			for i := range meta.Tags {
				if meta.Tags[i] != tt.want.Tags[i] {
					t.Errorf("Tags[%d] = %q, want %q", i, meta.Tags[i], tt.want.Tags[i])
				}
			}
			if got := strings.TrimSpace(body); got != tt.wantBody {
				t.Errorf("body = %q, want %q", got, tt.wantBody)
			}
		})
	}
}

func TestParseBodyKeepsMarkers(t *testing.T) {
	t.Parallel()

	// A "---" later in the body is a thematic break, not a header marker.
	content := "---\ntitle: T\n---\nabove\n\n---\n\nbelow\n"
	_, body, err := Parse(content)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if !strings.Contains(body, "---") {
		t.Errorf("body lost thematic break: %q", body)
	}
	if !strings.Contains(body, "below") {
		t.Errorf("body truncated: %q", body)
	}
}
