// Command stegosuite hides and recovers files or directories inside
// cover images, either by appending a framed, optionally encrypted
// blob after the cover's bytes, or by modulating mid-frequency DCT
// coefficients of the cover's luminance plane.
package main

import (
	"fmt"
	"os"

	"stegosuite/internal/cli"
)

// verbosity is set once by scanning -v/-vv off the argument list and
// read by every subcommand to size its logger. A single global flag
// like this is simplest to pull out by hand rather than teach the
// minimal Command dispatcher about parent-scoped flags it otherwise
// has no use for.
var verbosity int

func main() {
	if err := run(); err != nil {
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	args := scanVerbosity(os.Args[1:])
	return rootCommand().Execute(args)
}

// scanVerbosity strips -v/-vv/--verbose tokens from args, accumulating
// their count into the package-level verbosity, and returns the
// remaining arguments untouched.
func scanVerbosity(args []string) []string {
	remaining := make([]string, 0, len(args))
	for _, a := range args {
		switch a {
		case "-v", "--verbose":
			verbosity++
		case "-vv":
			verbosity += 2
		default:
			remaining = append(remaining, a)
		}
	}
	return remaining
}

func rootCommand() *cli.Command {
	return &cli.Command{
		Name:    "stegosuite",
		Summary: "hide and recover files inside cover images",
		Subcommands: []*cli.Command{
			embedCommand(),
			extractCommand(),
			metricsCommand(),
			benchCommand(),
		},
	}
}
