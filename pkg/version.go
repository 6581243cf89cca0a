package commitbump

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"
)

// Version is a parsed MAJOR.MINOR.PATCH[+BUILD] version. The build number
// is only rendered when HasBuild is set.
type Version struct {
	Major    uint64
	Minor    uint64
	Patch    uint64
	Build    uint64
	HasBuild bool
}

// ParseVersion parses exactly "M.m.p" or "M.m.p+B" where every component is a
// run of decimal digits. There is no tolerance for a leading "v", whitespace
// or prerelease suffixes.
func ParseVersion(s string) (Version, error) {
	var v Version

	core, build, hasBuild := strings.Cut(s, "+")
	parts := strings.Split(core, ".")
	if len(parts) != 3 {
		return v, &FormatError{Input: s, Reason: "expected MAJOR.MINOR.PATCH[+BUILD]"}
	}

	fields := []*uint64{&v.Major, &v.Minor, &v.Patch}
	names := []string{"major", "minor", "patch"}
	for i, p := range parts {
		n, err := parseComponent(p)
		if err != nil {
			return Version{}, &FormatError{Input: s, Reason: names[i] + " " + err.Error()}
		}
		*fields[i] = n
	}

	if hasBuild {
		n, err := parseComponent(build)
		if err != nil {
			return Version{}, &FormatError{Input: s, Reason: "build " + err.Error()}
		}
		v.Build = n
		v.HasBuild = true
	}
	return v, nil
}

type componentError string

func (e componentError) Error() string { return string(e) }

// parseComponent accepts only ASCII digits; strconv alone would let "+1" through.
func parseComponent(s string) (uint64, error) {
	if s == "" {
		return 0, componentError("is empty")
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, componentError("is not a decimal number: " + strconv.Quote(s))
		}
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, componentError("is out of range: " + s)
	}
	return n, nil
}

// String renders the version as M.m.p, appending +B when a build number is present.
func (v Version) String() string {
	base := strconv.FormatUint(v.Major, 10) + "." +
		strconv.FormatUint(v.Minor, 10) + "." +
		strconv.FormatUint(v.Patch, 10)
	if v.HasBuild {
		return base + "+" + strconv.FormatUint(v.Build, 10)
	}
	return base
}

// Semver returns the canonical "v" prefixed form understood by
// golang.org/x/mod/semver. The build number is kept as build metadata.
func (v Version) Semver() string {
	return "v" + v.String()
}

// Bump returns v incremented according to b.
//
// Major, minor and patch bumps reset the lower components and carry an
// existing build number forward incremented by one; they never introduce one.
// A build bump increments the build number, starting it at 1 when absent.
func (v Version) Bump(b BumpType) (Version, error) {
	next := v
	switch b {
	case BumpMajor:
		next.Major, next.Minor, next.Patch = v.Major+1, 0, 0
		if v.Major == math.MaxUint64 {
			return v, v.overflow("major")
		}
	case BumpMinor:
		next.Minor, next.Patch = v.Minor+1, 0
		if v.Minor == math.MaxUint64 {
			return v, v.overflow("minor")
		}
	case BumpPatch:
		next.Patch = v.Patch + 1
		if v.Patch == math.MaxUint64 {
			return v, v.overflow("patch")
		}
	case BumpBuild:
		if !v.HasBuild {
			next.Build, next.HasBuild = 1, true
			return next, nil
		}
	default:
		return v, &InvalidBumpTypeError{Bump: b}
	}

	if v.HasBuild {
		if v.Build == math.MaxUint64 {
			return v, v.overflow("build")
		}
		next.Build = v.Build + 1
	}
	return next, nil
}

func (v Version) overflow(component string) error {
	return &FormatError{Input: v.String(), Reason: component + " cannot be incremented without overflow"}
}

// Mutate parses version, applies bump and renders the result. A malformed
// version is reported before the bump type is looked at.
func Mutate(version string, bump BumpType) (string, error) {
	v, err := ParseVersion(version)
	if err != nil {
		return "", err
	}
	next, err := v.Bump(bump)
	if err != nil {
		return "", err
	}
	return next.String(), nil
}

// Compare returns -1, 0 or +1 depending on whether a is older than, equal to
// or newer than b. The core triple is ordered by semver precedence; build
// numbers then break ties, with no build sorting before any build.
func Compare(a, b Version) int {
	if c := semver.Compare(a.coreSemver(), b.coreSemver()); c != 0 {
		return c
	}
	switch {
	case a.HasBuild && !b.HasBuild:
		return 1
	case !a.HasBuild && b.HasBuild:
		return -1
	case a.Build < b.Build:
		return -1
	case a.Build > b.Build:
		return 1
	}
	return 0
}

func (v Version) coreSemver() string {
	core := v
	core.HasBuild = false
	return core.Semver()
}
