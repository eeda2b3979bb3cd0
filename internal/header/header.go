// Package header extracts and decodes the YAML metadata block prefacing each
// document. The block is delimited by "---" lines at the very start of the
// file; everything after the closing marker is the document body.
package header

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/adrg/frontmatter"

	"github.com/dysthesis/ssg/internal/dateutil"
	"github.com/dysthesis/ssg/internal/yamlutil"
)

// Sentinel errors for header parsing.
var (
	ErrMissingTitle    = errors.New("metadata header missing required title")
	ErrMalformedHeader = errors.New("malformed metadata header")
)

// Metadata is the decoded header of a single document.
type Metadata struct {
	Title       string
	Subtitle    string
	Description string
	Stylesheet  string // relative path overriding the site stylesheet
	Created     time.Time
	Updated     time.Time
	Tags        []string // document order preserved
}

// rawHeader is the loosely-typed YAML shape before validation.
type rawHeader struct {
	Title       string   `yaml:"title"`
	Subtitle    string   `yaml:"subtitle"`
	Description string   `yaml:"description"`
	Stylesheet  string   `yaml:"stylesheet"`
	Created     string   `yaml:"created"`
	Updated     string   `yaml:"updated"`
	Tags        []string `yaml:"tags"`
}

// yamlFormat decodes the block through yamlutil so the whole module shares
// one YAML implementation.
var yamlFormat = frontmatter.NewFormat("---", "---", yamlutil.Unmarshal)

// Parse splits content into decoded metadata and body. A file without an
// opening marker, with an unclosed block, or with undecodable YAML fails with
// ErrMalformedHeader; a decoded header without a title fails with
// ErrMissingTitle. Parse performs no I/O.
func Parse(content string) (Metadata, string, error) {
	var raw rawHeader
	body, err := frontmatter.MustParse(strings.NewReader(content), &raw, yamlFormat)
	if err != nil {
		return Metadata{}, "", fmt.Errorf("%w: %v", ErrMalformedHeader, err)
	}

	if strings.TrimSpace(raw.Title) == "" {
		return Metadata{}, "", ErrMissingTitle
	}

	meta := Metadata{
		Title:       raw.Title,
		Subtitle:    raw.Subtitle,
		Description: raw.Description,
		Stylesheet:  raw.Stylesheet,
		Tags:        raw.Tags,
	}

	if raw.Created != "" {
		t, err := dateutil.ParseISO(raw.Created)
		if err != nil {
			return Metadata{}, "", fmt.Errorf("%w: created: %v", ErrMalformedHeader, err)
		}
		meta.Created = t
	}
	if raw.Updated != "" {
		t, err := dateutil.ParseISO(raw.Updated)
		if err != nil {
			return Metadata{}, "", fmt.Errorf("%w: updated: %v", ErrMalformedHeader, err)
		}
		meta.Updated = t
	}

	return meta, string(body), nil
}
