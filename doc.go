// Package main implements the commitbump CLI tool.
//
// The commitbump tool is a command-line interface that bumps the version of a project from CI.
// It reads a version from a plain VERSION file (default "./VERSION") or from the top-level
// "version:" field of a YAML manifest such as a Flutter pubspec.yaml, bumps it according to the
// given directive ("major", "minor", "patch" or "build"), writes it back and prints the new
// version to stdout. Versions have the form MAJOR.MINOR.PATCH with an optional +BUILD number.
//
// Command Usage:
//
//	commitbump [flags] <bump>
//
// Flags:
//
//	-version-file: Specifies the path to the VERSION file or YAML manifest containing the version.
//	               (Defaults to "VERSION")
//	-dry:          Computes and prints the new version without modifying any files.
//	-commit:       Commits the updated version file using the new version as the commit message.
//	-tag:          Tags the commit with the new version prefixed with "v". Requires -commit.
//	-version:      Displays the version of the commitbump CLI tool and exits.
//
// Examples:
//
//	# Bump the patch version (e.g. 1.2.3 → 1.2.4, 1.2.3+7 → 1.2.4+8)
//	commitbump patch
//
//	# Bump the minor version (e.g. 1.2.3 → 1.3.0)
//	commitbump minor
//
//	# Bump the major version (e.g. 1.2.3 → 2.0.0)
//	commitbump major
//
//	# Bump only the build number of a Flutter app (e.g. 1.2.3+7 → 1.2.3+8, 1.2.3 → 1.2.3+1)
//	commitbump -version-file pubspec.yaml build
//
//	# Bump according to the "Bump:<type>" directive of the last commit and commit the result
//	commitbump -commit -tag "$(extract-bump-type -git)"
//
// The companion extract-bump-type command (in cmd/extract-bump-type) prints the bump type named
// by a commit message. It prints "patch" when there is no directive and "error" when the directive
// is not recognized.
//
// For more detailed API documentation, please see the documentation in the "pkg" package.
package main
