package commitbump

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

// initRepo creates a temporary git repository with a committed file and
// returns its directory. The test is skipped if git is not available.
func initRepo(t *testing.T, name, content, message string) string {
	t.Helper()
	if err := checkGit(); err != nil {
		t.Skip("git is not available on system")
	}
	dir := t.TempDir()
	runGit(t, dir, "init")
	runGit(t, dir, "config", "user.email", "test@example.com")
	runGit(t, dir, "config", "user.name", "Test User")
	runGit(t, dir, "config", "commit.gpgsign", "false")
	runGit(t, dir, "config", "tag.gpgsign", "false")

	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	runGit(t, dir, "add", ".")
	runGit(t, dir, "commit", "-m", message)
	return dir
}

func runGit(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("git %v failed: %v\n%s", args, err, out)
	}
	return string(out)
}

func TestRunPlainFile(t *testing.T) {
	path := writeTemp(t, "VERSION", "1.0.0+5\n")

	meta, err := Run(path, BumpMinor, Options{})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if meta.OldVersion != "1.0.0+5" || meta.NewVersion != "1.1.0+6" {
		t.Errorf("meta = %+v, expected 1.0.0+5 -> 1.1.0+6", meta)
	}
	if meta.BumpType != BumpMinor {
		t.Errorf("meta.BumpType = %v, expected %v", meta.BumpType, BumpMinor)
	}
	if !slices.Equal(meta.UpdatedFiles, []string{path}) {
		t.Errorf("meta.UpdatedFiles = %v, expected [%s]", meta.UpdatedFiles, path)
	}
	if meta.Committed {
		t.Errorf("meta.Committed = true without Options.Commit")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "1.1.0+6\n" {
		t.Errorf("VERSION = %q, expected %q", data, "1.1.0+6\n")
	}
}

func TestRunManifestBuild(t *testing.T) {
	path := writeTemp(t, "pubspec.yaml", "name: app\nversion: 1.2.3\n")

	meta, err := Run(path, BumpBuild, Options{})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if meta.NewVersion != "1.2.3+1" {
		t.Errorf("meta.NewVersion = %q, expected %q", meta.NewVersion, "1.2.3+1")
	}
	data, _ := os.ReadFile(path)
	if string(data) != "name: app\nversion: 1.2.3+1\n" {
		t.Errorf("pubspec.yaml = %q", data)
	}
}

// TestRunFailureLeavesFileUnchanged checks that failed bumps never write.
func TestRunFailureLeavesFileUnchanged(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		bump    BumpType
		check   func(error) bool
	}{
		{
			name:    "invalid bump type",
			file:    "VERSION",
			content: "1.0.0\n",
			bump:    BumpError,
			check:   func(err error) bool { var e *InvalidBumpTypeError; return errors.As(err, &e) },
		},
		{
			name:    "leading v",
			file:    "VERSION",
			content: "v1.0.0\n",
			bump:    BumpPatch,
			check:   func(err error) bool { var e *FormatError; return errors.As(err, &e) },
		},
		{
			name:    "malformed manifest version",
			file:    "pubspec.yaml",
			content: "name: app\nversion: 1.0\n",
			bump:    BumpMajor,
			check:   func(err error) bool { var e *FormatError; return errors.As(err, &e) },
		},
		{
			name:    "overflow",
			file:    "VERSION",
			content: "1.0.18446744073709551615",
			bump:    BumpPatch,
			check:   func(err error) bool { var e *FormatError; return errors.As(err, &e) },
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := writeTemp(t, tc.file, tc.content)
			_, err := Run(path, tc.bump, Options{})
			if err == nil || !tc.check(err) {
				t.Fatalf("Run error = %v (%T)", err, err)
			}
			data, _ := os.ReadFile(path)
			if string(data) != tc.content {
				t.Errorf("file changed to %q, expected %q", data, tc.content)
			}
		})
	}
}

func TestRunMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "VERSION")
	_, err := Run(path, BumpPatch, Options{})
	var nf *FileNotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("Run error = %v, expected *FileNotFoundError", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("Run created %s", path)
	}
}

func TestDryRun(t *testing.T) {
	path := writeTemp(t, "VERSION", "2.3.4+9")
	meta, err := DryRun(path, BumpMajor)
	if err != nil {
		t.Fatalf("DryRun failed: %v", err)
	}
	if meta.OldVersion != "2.3.4+9" || meta.NewVersion != "3.0.0+10" {
		t.Errorf("meta = %+v, expected 2.3.4+9 -> 3.0.0+10", meta)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "2.3.4+9" {
		t.Errorf("DryRun modified the file: %q", data)
	}
}

// TestGitIntegration commits and tags a bump in a temporary repository.
func TestGitIntegration(t *testing.T) {
	dir := initRepo(t, "VERSION", "1.2.3\n", "initial commit")
	path := filepath.Join(dir, "VERSION")

	meta, err := Run(path, BumpPatch, Options{Commit: true, Tag: true})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !meta.Committed {
		t.Errorf("meta.Committed = false")
	}

	msg, err := LastCommitMessage(dir)
	if err != nil {
		t.Fatalf("LastCommitMessage failed: %v", err)
	}
	if msg != "1.2.4" {
		t.Errorf("commit message = %q, expected %q", msg, "1.2.4")
	}

	tags := strings.Split(strings.TrimSpace(runGit(t, dir, "tag")), "\n")
	if !slices.Contains(tags, "v1.2.4") {
		t.Errorf("expected git tag %q not found; got tags: %v", "v1.2.4", tags)
	}

	if status := runGit(t, dir, "status", "--porcelain"); strings.TrimSpace(status) != "" {
		t.Errorf("working tree not clean after commit:\n%s", status)
	}
}

func TestGitCommitWithoutTag(t *testing.T) {
	dir := initRepo(t, "pubspec.yaml", "name: app\nversion: 1.0.0+3\n", "initial commit")
	path := filepath.Join(dir, "pubspec.yaml")

	if _, err := Run(path, BumpBuild, Options{Commit: true}); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if msg, _ := LastCommitMessage(dir); msg != "1.0.0+4" {
		t.Errorf("commit message = %q, expected %q", msg, "1.0.0+4")
	}
	if tags := strings.TrimSpace(runGit(t, dir, "tag")); tags != "" {
		t.Errorf("expected no tags, got %q", tags)
	}
}

func TestGitDirtyWorkingTree(t *testing.T) {
	dir := initRepo(t, "VERSION", "1.2.3\n", "initial commit")
	path := filepath.Join(dir, "VERSION")
	if err := os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Run(path, BumpPatch, Options{Commit: true})
	if err == nil || !strings.Contains(err.Error(), "working directory is dirty") {
		t.Fatalf("Run error = %v, expected dirty working directory error", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "1.2.3\n" {
		t.Errorf("VERSION changed to %q", data)
	}
}

func TestExtractFromGit(t *testing.T) {
	tests := []struct {
		message string
		want    BumpType
	}{
		{"feat: login\n\nBump:minor", BumpMinor},
		{"chore: tidy", BumpPatch},
		{"fix: x Bump:bogus", BumpError},
	}
	for _, tc := range tests {
		dir := initRepo(t, "VERSION", "1.0.0\n", tc.message)
		got, err := ExtractFromGit(dir)
		if err != nil {
			t.Fatalf("ExtractFromGit failed: %v", err)
		}
		if got != tc.want {
			t.Errorf("ExtractFromGit(%q) = %v, expected %v", tc.message, got, tc.want)
		}
	}
}

func TestExtractFromGitNotARepo(t *testing.T) {
	if err := checkGit(); err != nil {
		t.Skip("git is not available on system")
	}
	dir := t.TempDir()
	t.Setenv("GIT_CEILING_DIRECTORIES", filepath.Dir(dir))
	got, err := ExtractFromGit(dir)
	if err == nil {
		t.Fatalf("ExtractFromGit in a non-repository returned nil error")
	}
	if got != BumpError {
		t.Errorf("ExtractFromGit = %v, expected %v", got, BumpError)
	}
}
