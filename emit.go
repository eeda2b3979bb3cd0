package ssg

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"os"
	"path/filepath"

	"github.com/andybalholm/brotli"
	"github.com/tdewolff/minify/v2"
	mhtml "github.com/tdewolff/minify/v2/html"
)

// brotliQuality trades the very slow maximum setting for near-identical
// output size.
const brotliQuality = 6

// emitter writes output artifacts under the output root, minifying HTML and
// producing precompressed .gz and .br variants alongside every file.
type emitter struct {
	outputDir string
	min       *minify.M
}

func newEmitter(outputDir string) *emitter {
	m := minify.New()
	// Conservative settings: collapse whitespace but keep the document
	// structurally conventional so pages stay diffable across rebuilds.
	m.Add("text/html", &mhtml.Minifier{
		KeepDocumentTags: true,
		KeepEndTags:      true,
		KeepQuotes:       true,
	})
	return &emitter{outputDir: outputDir, min: m}
}

// writePage minifies and writes an HTML page.
func (e *emitter) writePage(rel string, html []byte) error {
	minified, err := e.min.Bytes("text/html", html)
	if err != nil {
		// Minification is an optimization; malformed-but-writable HTML
		// falls back to the unminified bytes.
		minified = html
	}
	return e.write(rel, minified)
}

// write stores data at rel (creating parent directories) plus compressed
// variants. All failures wrap ErrWriteFailure with the offending path.
func (e *emitter) write(rel string, data []byte) error {
	path := filepath.Join(e.outputDir, rel)
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrWriteFailure, dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWriteFailure, path, err)
	}
	if err := writeGzipVariant(path, data); err != nil {
		return fmt.Errorf("%w: %s.gz: %v", ErrWriteFailure, path, err)
	}
	if err := writeBrotliVariant(path, data); err != nil {
		return fmt.Errorf("%w: %s.br: %v", ErrWriteFailure, path, err)
	}
	return nil
}

func writeGzipVariant(path string, data []byte) error {
	var buf bytes.Buffer
	zw, err := gzip.NewWriterLevel(&buf, gzip.BestCompression)
	if err != nil {
		return err
	}
	if _, err := zw.Write(data); err != nil {
		return err
	}
	if err := zw.Close(); err != nil {
		return err
	}
	return os.WriteFile(path+".gz", buf.Bytes(), 0o644)
}

func writeBrotliVariant(path string, data []byte) error {
	var buf bytes.Buffer
	bw := brotli.NewWriterLevel(&buf, brotliQuality)
	if _, err := bw.Write(data); err != nil {
		return err
	}
	if err := bw.Close(); err != nil {
		return err
	}
	return os.WriteFile(path+".br", buf.Bytes(), 0o644)
}
