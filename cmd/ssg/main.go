package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/automaxprocs/maxprocs"

	"github.com/dysthesis/ssg"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Site-wide metadata used for feeds and absolute links.
const (
	siteTitle       = "Dysthesis"
	siteDescription = "Dysthesis' blog"
	siteBaseURL     = "https://dysthesis.com"
	siteAuthor      = "Dysthesis"
)

func main() {
	flags, command, err := parseFlags(os.Args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(ExitUsage)
	}

	if flags.version {
		fmt.Println("ssg " + Version)
		return
	}

	// Configure GOMAXPROCS with conditional logging.
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	if flags.verbose {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	cfg := siteConfig(flags)

	var runErr error
	switch command {
	case commandServe:
		runErr = runServe(cfg, flags)
	default:
		runErr = runBuild(cfg, flags)
	}

	if runErr != nil {
		fmt.Fprintln(os.Stderr, runErr)
		os.Exit(exitCodeFor(runErr))
	}
}

// siteConfig builds the assembler configuration from the conventional layout
// plus command-line overrides.
func siteConfig(flags cliFlags) ssg.Config {
	cfg := ssg.DefaultConfig()
	cfg.Root = flags.root
	cfg.Workers = flags.workers
	cfg.Site = ssg.SiteMeta{
		Title:       siteTitle,
		Description: siteDescription,
		BaseURL:     siteBaseURL,
		Author:      siteAuthor,
	}
	return cfg
}

// runBuild performs a single full build.
func runBuild(cfg ssg.Config, flags cliFlags) error {
	a, err := ssg.New(cfg)
	if err != nil {
		return err
	}

	if flags.verbose {
		fmt.Fprintf(os.Stderr, "Workers: %d\n", ssg.ResolveWorkers(cfg.Workers))
		fmt.Fprintln(os.Stderr, "Building site...")
	}

	if err := a.Build(context.Background()); err != nil {
		return err
	}

	if flags.verbose {
		fmt.Fprintln(os.Stderr, "Build complete.")
	}
	return nil
}
