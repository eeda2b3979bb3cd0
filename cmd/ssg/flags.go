package main

import (
	"fmt"

	flag "github.com/spf13/pflag"
)

// Commands recognized on the command line. The default (no command) is a
// single full build.
const (
	commandBuild = ""
	commandServe = "serve"
)

// Default address for the serve command's local HTTP server.
const defaultServeAddr = ":3000"

// cliFlags holds all command-line options.
type cliFlags struct {
	root    string
	workers int
	verbose bool
	version bool
	addr    string // serve only
}

// parseFlags parses os.Args into flags and the selected command.
func parseFlags(args []string) (cliFlags, string, error) {
	var flags cliFlags

	command := commandBuild
	rest := args[1:]
	if len(rest) > 0 && rest[0] == commandServe {
		command = commandServe
		rest = rest[1:]
	}

	fs := flag.NewFlagSet("ssg", flag.ContinueOnError)
	fs.StringVar(&flags.root, "root", "", "site root directory (default: current directory)")
	fs.IntVar(&flags.workers, "workers", 0, "parallel render workers (default: GOMAXPROCS)")
	fs.BoolVarP(&flags.verbose, "verbose", "v", false, "log build progress to stderr")
	fs.BoolVar(&flags.version, "version", false, "print version and exit")
	if command == commandServe {
		fs.StringVar(&flags.addr, "addr", defaultServeAddr, "listen address for the local server")
	}

	if err := fs.Parse(rest); err != nil {
		return cliFlags{}, "", err
	}
	if fs.NArg() > 0 {
		return cliFlags{}, "", fmt.Errorf("unexpected argument: %q", fs.Arg(0))
	}

	return flags, command, nil
}
