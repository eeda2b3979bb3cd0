package ssg

import (
	"fmt"
	"os"
	"path/filepath"
)

// SourceFile pairs a discovered document with its content-root-relative path.
type SourceFile struct {
	Path string // absolute or Root-relative source path
	Rel  string // path relative to the content directory
}

// SiteTree is the ordered enumeration of all discovered sources. It is built
// once per run and never mutated concurrently with writes.
type SiteTree struct {
	Sources []SourceFile
}

// discoverTree walks the content directory recursively and collects Markdown
// sources in deterministic (lexical) order. Symlinked or re-visited
// directories are deduplicated by canonical path so cyclic links terminate.
func discoverTree(contentDir string) (*SiteTree, error) {
	info, err := os.Stat(contentDir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrContentDirMissing, contentDir)
	}

	tree := &SiteTree{}
	visited := make(map[string]bool)
	if err := visitDir(contentDir, contentDir, visited, tree); err != nil {
		return nil, err
	}

	// Different source extensions can map to the same output page; a silent
	// overwrite would publish whichever rendered last.
	pages := make(map[string]string)
	for _, src := range tree.Sources {
		key := src.Rel[:len(src.Rel)-len(filepath.Ext(src.Rel))]
		if prev, ok := pages[key]; ok {
			return nil, fmt.Errorf("%w: %s and %s", ErrOutputCollision, prev, src.Path)
		}
		pages[key] = src.Path
	}
	return tree, nil
}

func visitDir(root, dir string, visited map[string]bool, tree *SiteTree) error {
	canon, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", dir, err)
	}
	if visited[canon] {
		return nil
	}
	visited[canon] = true

	entries, err := os.ReadDir(dir) // sorted by name
	if err != nil {
		return fmt.Errorf("scanning %s: %w", dir, err)
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())

		if isDir(path, entry) {
			if err := visitDir(root, path, visited, tree); err != nil {
				return err
			}
			continue
		}

		if !isMarkdown(entry.Name()) {
			continue
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return fmt.Errorf("relativizing %s: %w", path, err)
		}
		tree.Sources = append(tree.Sources, SourceFile{Path: path, Rel: rel})
	}

	return nil
}

// isDir follows symlinks so a linked directory is traversed (and then caught
// by the canonical-path visited set if it loops).
func isDir(path string, entry os.DirEntry) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&os.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func isMarkdown(name string) bool {
	ext := filepath.Ext(name)
	return ext == ".md" || ext == ".markdown"
}

// outputRel maps a content-relative source path to its output-root-relative
// page path, e.g. "a/b.md" -> "posts/a/b.html".
func outputRel(postsDir, rel string) string {
	base := rel[:len(rel)-len(filepath.Ext(rel))] + ".html"
	return filepath.Join(postsDir, base)
}
