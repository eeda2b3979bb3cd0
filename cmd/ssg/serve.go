package main

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/dysthesis/ssg"
)

// runServe builds the site, then serves the output directory over HTTP while
// rebuilding on content or stylesheet changes. Build errors during watch
// mode are logged rather than fatal so the server stays alive.
func runServe(cfg ssg.Config, flags cliFlags) error {
	a, err := ssg.New(cfg)
	if err != nil {
		return err
	}

	fmt.Fprintln(os.Stderr, "Building site...")
	if err := a.Build(context.Background()); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	contentDir := resolvePath(cfg.Root, cfg.ContentDir)
	if err := watchRecursive(watcher, contentDir); err != nil {
		return err
	}
	stylesheet := resolvePath(cfg.Root, cfg.StylesheetPath)
	if _, err := os.Stat(stylesheet); err == nil {
		if err := watcher.Add(stylesheet); err != nil {
			return fmt.Errorf("watching %s: %w", stylesheet, err)
		}
	}

	go rebuildLoop(a, watcher)

	outputDir := resolvePath(cfg.Root, cfg.OutputDir)
	fmt.Fprintf(os.Stderr, "Serving %s on http://localhost%s\n", outputDir, flags.addr)
	return http.ListenAndServe(flags.addr, http.FileServer(http.Dir(outputDir)))
}

// rebuildLoop reruns the build whenever a watched file changes. Chmod-only
// events are ignored to prevent rebuild loops from readers touching files.
func rebuildLoop(a *ssg.Assembler, watcher *fsnotify.Watcher) {
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op == fsnotify.Chmod {
				continue
			}

			// Newly created directories must be watched too.
			if event.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = watchRecursive(watcher, event.Name)
				}
			}

			fmt.Fprintln(os.Stderr, "Change detected, rebuilding...")
			if err := a.Build(context.Background()); err != nil {
				fmt.Fprintf(os.Stderr, "Build failed: %v\n", err)
				continue
			}
			fmt.Fprintln(os.Stderr, "Rebuild complete.")

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			fmt.Fprintf(os.Stderr, "Watch error: %v\n", err)
		}
	}
}

// watchRecursive adds dir and every subdirectory to the watcher; fsnotify
// watches are not recursive on their own.
func watchRecursive(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		return nil
	})
}

func resolvePath(root, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, p)
}
