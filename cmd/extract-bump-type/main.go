// Command extract-bump-type prints the bump directive found in a commit
// message: one of major, minor, patch, build or error.
//
// It always exits 0 so that shell scripts can branch on the printed token.
//
// Usage:
//
//	extract-bump-type "feat: add login Bump:minor"   # prints "minor"
//	extract-bump-type "chore: tidy up"               # prints "patch"
//	extract-bump-type -git                           # reads the HEAD commit message
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"

	commitbump "github.com/bcomnes/commitbump/pkg"
)

func usage() {
	msg := `Usage:
  extract-bump-type [options] [message...]

Prints the bump type named by a "Bump:<type>" directive in the message. Messages without a directive
yield "patch"; an unrecognized directive yields "error". The exit status is always 0.

Use "--" before a message that starts with "-".

Options:
`
	fmt.Fprint(os.Stderr, msg)
	flag.PrintDefaults()
}

func main() {
	// Parse errors must not change the exit status; report them as "error".
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	fromGit := flag.Bool("git", false, "Read the message from the HEAD commit instead of the arguments")
	dir := flag.String("C", ".", "Repository directory used with -git")
	help := flag.Bool("help", false, "Show help message and exit")

	flag.CommandLine.Usage = usage
	if err := flag.CommandLine.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		fmt.Println(commitbump.BumpError)
		os.Exit(0)
	}

	if *help {
		usage()
		os.Exit(0)
	}

	var bump commitbump.BumpType
	if *fromGit {
		var err error
		bump, err = commitbump.ExtractFromGit(*dir)
		if err != nil {
			fmt.Fprintln(os.Stderr, color.YellowString("Warning:"), err)
		}
	} else {
		bump = commitbump.ExtractBumpType(strings.Join(flag.Args(), " "))
	}
	fmt.Println(bump)
}
