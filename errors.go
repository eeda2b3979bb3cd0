package ssg

import (
	"errors"

	"github.com/dysthesis/ssg/internal/feed"
	"github.com/dysthesis/ssg/internal/header"
	"github.com/dysthesis/ssg/internal/render"
)

// Sentinel errors for site assembly.
var (
	ErrContentDirMissing = errors.New("content directory missing")
	ErrStylesheetMissing = errors.New("stylesheet missing")
	ErrWriteFailure      = errors.New("write failure")
	ErrInvalidConfig     = errors.New("invalid configuration")
	ErrOutputCollision   = errors.New("output path collision")
)

// Re-exported pipeline sentinels so callers can match every fatal build
// error against this package alone.
var (
	ErrMissingTitle      = header.ErrMissingTitle
	ErrMalformedHeader   = header.ErrMalformedHeader
	ErrUndefinedFootnote = render.ErrUndefinedFootnote
	ErrEmptyFeed         = feed.ErrEmptyFeed
)
