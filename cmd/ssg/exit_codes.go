package main

import (
	"errors"
	"os"

	"github.com/dysthesis/ssg"
)

// Exit codes for the ssg CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, 3=I/O.
const (
	ExitSuccess = 0 // Completed build
	ExitGeneral = 1 // General error (bad document content, render failure)
	ExitUsage   = 2 // Invalid flags or configuration
	ExitIO      = 3 // Missing directories/files, write failures
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use
// fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// I/O errors (exit 3)
	if errors.Is(err, ssg.ErrContentDirMissing) ||
		errors.Is(err, ssg.ErrStylesheetMissing) ||
		errors.Is(err, ssg.ErrWriteFailure) ||
		errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) {
		return ExitIO
	}

	// Usage/config errors (exit 2)
	if errors.Is(err, ssg.ErrInvalidConfig) {
		return ExitUsage
	}

	return ExitGeneral
}
