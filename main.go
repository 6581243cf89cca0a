// Package main implements a CLI tool to bump the version stored in a VERSION
// file or a YAML manifest, optionally committing and tagging the change.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"

	commitbump "github.com/bcomnes/commitbump/pkg"
)

var (
	errorPrefix = color.New(color.FgRed).Add(color.Bold).Sprint("Error:")
	label       = color.New(color.FgYellow).SprintFunc()
)

func usage() {
	msg := `Usage:
  commitbump [options] <major|minor|patch|build>

Bumps the version stored in a VERSION file (default: ./VERSION) or in the top-level "version:" field of a
YAML manifest such as pubspec.yaml, and prints the new version to stdout. Build numbers ("1.2.3+4") are
carried forward and incremented; a build bump adds "+1" when there is none.

Examples:
  commitbump patch
  commitbump -version-file pubspec.yaml build
  commitbump -commit -tag "$(extract-bump-type -git)"

Positional arguments:
  <bump>     One of: major, minor, patch, build

Options:
`
	fmt.Fprint(os.Stderr, msg)
	flag.PrintDefaults()
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, errorPrefix, err)
	os.Exit(1)
}

func main() {
	versionFile := flag.String("version-file", "VERSION", "Path to the VERSION file or YAML manifest holding the version")
	dryRun := flag.Bool("dry", false, "Compute the new version without modifying any files")
	commit := flag.Bool("commit", false, "Commit the updated version file with the new version as the message")
	tag := flag.Bool("tag", false, "Tag the commit with the new version prefixed by \"v\" (requires -commit)")
	showVersion := flag.Bool("version", false, "Show CLI version and exit")
	help := flag.Bool("help", false, "Show help message and exit")

	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		os.Exit(0)
	}
	if *showVersion {
		fmt.Println("commitbump CLI version", Version)
		os.Exit(0)
	}

	// Guard against misplaced flags after positional args.
	for _, arg := range flag.Args() {
		if strings.HasPrefix(arg, "-") {
			fmt.Fprintln(os.Stderr, errorPrefix, "Flags must be specified before the bump type. Please reorder your arguments.")
			usage()
			os.Exit(1)
		}
	}

	args := flag.Args()
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, errorPrefix, "<bump> positional argument is required")
		usage()
		os.Exit(1)
	}
	if *tag && !*commit {
		fmt.Fprintln(os.Stderr, errorPrefix, "-tag requires -commit")
		os.Exit(1)
	}

	bump := commitbump.ParseBumpType(args[0])
	if bump == commitbump.BumpError {
		fail(fmt.Errorf("invalid bump type %q: expected one of major, minor, patch, build", args[0]))
	}

	var meta commitbump.VersionMeta
	var err error
	if *dryRun {
		meta, err = commitbump.DryRun(*versionFile, bump)
	} else {
		meta, err = commitbump.Run(*versionFile, bump, commitbump.Options{Commit: *commit, Tag: *tag})
	}
	if err != nil {
		fail(err)
	}

	// The summary goes to stderr so stdout carries only the new version.
	if *dryRun {
		fmt.Fprintln(os.Stderr, "Dry run complete — no files were modified.")
	}
	fmt.Fprintf(os.Stderr, "%s %s\n", label("Old Version:"), meta.OldVersion)
	fmt.Fprintf(os.Stderr, "%s %s\n", label("New Version:"), meta.NewVersion)
	fmt.Fprintf(os.Stderr, "%s   %s\n", label("Bump Type:"), meta.BumpType)
	if meta.Committed {
		fmt.Fprintf(os.Stderr, "%s   %s\n", label("Committed:"), meta.NewVersion)
	}
	fmt.Println(meta.NewVersion)
}
