package commitbump

import "regexp"

// BumpType is the kind of version increment to apply.
type BumpType int

const (
	// BumpError means no valid bump could be determined. It is returned,
	// never raised, so callers can branch on it.
	BumpError BumpType = iota
	BumpMajor
	BumpMinor
	BumpPatch
	BumpBuild
)

var bumpNames = map[BumpType]string{
	BumpError: "error",
	BumpMajor: "major",
	BumpMinor: "minor",
	BumpPatch: "patch",
	BumpBuild: "build",
}

// String returns the lowercase token for b, e.g. "minor".
func (b BumpType) String() string {
	if name, ok := bumpNames[b]; ok {
		return name
	}
	return "error"
}

// ParseBumpType maps an exact lowercase token to its BumpType.
// Anything else, including "error", yields BumpError.
func ParseBumpType(s string) BumpType {
	switch s {
	case "major":
		return BumpMajor
	case "minor":
		return BumpMinor
	case "patch":
		return BumpPatch
	case "build":
		return BumpBuild
	}
	return BumpError
}

// directivePattern finds the first case-sensitive "Bump:" marker and captures
// the whole word that follows it, so "Bump:patchy" is seen as "patchy".
var directivePattern = regexp.MustCompile(`\bBump:([A-Za-z0-9_-]*)`)

// ExtractBumpType scans a commit message for a Bump:<type> directive.
//
// The marker is case sensitive and only the first one counts. A message
// without a marker defaults to BumpPatch. A marker followed by anything other
// than major, minor, patch or build yields BumpError.
func ExtractBumpType(message string) BumpType {
	m := directivePattern.FindStringSubmatch(message)
	if m == nil {
		return BumpPatch
	}
	return ParseBumpType(m[1])
}
