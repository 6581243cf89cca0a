package commitbump

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// VersionFile is a file that stores a single project version.
type VersionFile interface {
	Path() string
	ReadVersion() (string, error)
	WriteVersion(newVersion string) error
}

// OpenVersionFile picks the VersionFile implementation for path based on
// its extension: .yaml and .yml are treated as manifests (pubspec.yaml),
// everything else as a plain VERSION file.
func OpenVersionFile(path string) VersionFile {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return &ManifestFile{path: path}
	default:
		return &PlainFile{path: path}
	}
}

// readFile maps read failures onto FileNotFoundError and FileAccessError.
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &FileNotFoundError{Path: path, Err: err}
		}
		return nil, &FileAccessError{Path: path, Op: "read", Err: err}
	}
	return data, nil
}

// writeFile replaces path's contents, keeping its permission bits.
func writeFile(path string, data []byte) error {
	mode := fs.FileMode(0644)
	if fi, err := os.Stat(path); err == nil {
		mode = fi.Mode().Perm()
	}
	if err := os.WriteFile(path, data, mode); err != nil {
		return &FileAccessError{Path: path, Op: "write", Err: err}
	}
	return nil
}

// PlainFile is a VERSION file whose entire content is the version string.
type PlainFile struct {
	path string
}

func (f *PlainFile) Path() string { return f.path }

// ReadVersion returns the file content without surrounding whitespace.
func (f *PlainFile) ReadVersion() (string, error) {
	data, err := readFile(f.path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// WriteVersion overwrites the file with newVersion, keeping a trailing
// newline if the current content ends with one.
func (f *PlainFile) WriteVersion(newVersion string) error {
	out := newVersion
	if data, err := os.ReadFile(f.path); err == nil && bytes.HasSuffix(data, []byte("\n")) {
		out += "\n"
	}
	return writeFile(f.path, []byte(out))
}

// ManifestFile is a YAML manifest such as pubspec.yaml with a top-level
// "version:" field. Only that field's value is ever rewritten.
type ManifestFile struct {
	path string
}

func (f *ManifestFile) Path() string { return f.path }

// manifestVersion is the location of the top-level version value.
type manifestVersion struct {
	Value string
	Line  int // 1-based
}

// versionLinePattern splits a "version: value # comment" line into the parts
// that are kept (prefix, quotes, suffix) and the value that is replaced.
var versionLinePattern = regexp.MustCompile(`^(\s*version\s*:\s*)(["']?)([^"'\s#]+)(["']?)(.*)$`)

func (f *ManifestFile) locate(data []byte) (manifestVersion, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return manifestVersion{}, &FileAccessError{Path: f.path, Op: "parse", Err: err}
	}
	if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		root := doc.Content[0]
		if root.Kind == yaml.MappingNode {
			for i := 0; i+1 < len(root.Content); i += 2 {
				key, val := root.Content[i], root.Content[i+1]
				if key.Value != "version" {
					continue
				}
				if val.Kind != yaml.ScalarNode {
					return manifestVersion{}, &FileAccessError{Path: f.path, Op: "parse", Err: fmt.Errorf("version on line %d is not a scalar", key.Line)}
				}
				return manifestVersion{Value: val.Value, Line: key.Line}, nil
			}
		}
	}
	return manifestVersion{}, &FileAccessError{Path: f.path, Op: "parse", Err: errors.New("no top-level version field")}
}

// ReadVersion returns the value of the top-level version field.
func (f *ManifestFile) ReadVersion() (string, error) {
	data, err := readFile(f.path)
	if err != nil {
		return "", err
	}
	mv, err := f.locate(data)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(mv.Value), nil
}

// WriteVersion rewrites the value on the version line in place. Quotes,
// trailing comments and every other line are preserved byte for byte.
func (f *ManifestFile) WriteVersion(newVersion string) error {
	data, err := readFile(f.path)
	if err != nil {
		return err
	}
	mv, err := f.locate(data)
	if err != nil {
		return err
	}

	lines := strings.Split(string(data), "\n")
	if mv.Line < 1 || mv.Line > len(lines) {
		return &FileAccessError{Path: f.path, Op: "parse", Err: fmt.Errorf("version line %d out of range", mv.Line)}
	}
	line := lines[mv.Line-1]
	cr := strings.HasSuffix(line, "\r")
	line = strings.TrimSuffix(line, "\r")

	m := versionLinePattern.FindStringSubmatch(line)
	if m == nil {
		return &FileAccessError{Path: f.path, Op: "parse", Err: fmt.Errorf("cannot rewrite version on line %d: %q", mv.Line, line)}
	}
	line = m[1] + m[2] + newVersion + m[4] + m[5]
	if cr {
		line += "\r"
	}
	lines[mv.Line-1] = line

	return writeFile(f.path, []byte(strings.Join(lines, "\n")))
}
