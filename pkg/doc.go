// Package commitbump provides a library for commit-message driven version bumps.
//
// It provides functionalities for:
//   - Extracting a "Bump:<type>" directive (major, minor, patch or build) from a commit message,
//     defaulting to patch when no directive is present.
//   - Parsing, bumping and rendering MAJOR.MINOR.PATCH[+BUILD] version strings, preserving whether
//     a build number is present.
//   - Reading and rewriting the version stored in a plain VERSION file or in the top-level
//     "version:" field of a YAML manifest such as a Flutter pubspec.yaml.
//   - Optionally committing the bumped file and tagging the commit with the new version (prefixed with "v").
//
// This library backs the commitbump and extract-bump-type command-line tools and can be used
// directly from other Go programs.
//
// Usage Example:
//
//	import (
//	    "log"
//	    commitbump "github.com/bcomnes/commitbump/pkg"
//	)
//
//	func main() {
//	    bump, err := commitbump.ExtractFromGit(".")
//	    if err != nil {
//	        log.Fatalf("reading commit message failed: %v", err)
//	    }
//	    meta, err := commitbump.Run("pubspec.yaml", bump, commitbump.Options{})
//	    if err != nil {
//	        log.Fatalf("version bump failed: %v", err)
//	    }
//	    log.Println("Bumped to", meta.NewVersion)
//	}
package commitbump
