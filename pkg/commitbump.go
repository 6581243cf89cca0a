package commitbump

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// VersionMeta holds metadata about the version bump operation.
type VersionMeta struct {
	OldVersion   string   // The version before bumping.
	NewVersion   string   // The new version after bumping.
	BumpType     BumpType // The bump that was applied.
	UpdatedFiles []string // Paths of all files written (or that would be written in a dry run).
	Committed    bool     // Whether a git commit was created.
}

// Options controls what Run does besides rewriting the version file.
type Options struct {
	// Commit stages the version file and commits it with the new version
	// as the commit message.
	Commit bool
	// Tag tags the commit with the new version prefixed by "v". Only
	// honored together with Commit.
	Tag bool
}

// computeBump reads the current version and works out the next one without
// touching the file.
func computeBump(vf VersionFile, bump BumpType) (VersionMeta, error) {
	meta := VersionMeta{BumpType: bump}

	// Reject an unusable bump before doing any I/O.
	if bump == BumpError {
		return meta, &InvalidBumpTypeError{Bump: bump}
	}

	current, err := vf.ReadVersion()
	if err != nil {
		return meta, err
	}
	meta.OldVersion = current

	oldV, err := ParseVersion(current)
	if err != nil {
		return meta, err
	}
	newV, err := oldV.Bump(bump)
	if err != nil {
		return meta, err
	}
	if Compare(newV, oldV) <= 0 {
		return meta, fmt.Errorf("new version (%s) is not newer than the current version (%s)", newV, oldV)
	}
	meta.NewVersion = newV.String()
	return meta, nil
}

// Run bumps the version stored in versionFilePath.
//
// versionFilePath may be a plain VERSION file or a YAML manifest with a
// top-level version field (see OpenVersionFile). Nothing is written unless the
// new version was computed successfully, so a failed bump leaves the file
// unchanged. With opts.Commit the change is committed (and optionally tagged)
// in the git repository containing the file.
func Run(versionFilePath string, bump BumpType, opts Options) (VersionMeta, error) {
	vf := OpenVersionFile(versionFilePath)

	meta, err := computeBump(vf, bump)
	if err != nil {
		return meta, err
	}

	dir := filepath.Dir(versionFilePath)
	if opts.Commit {
		if err := checkGit(); err != nil {
			return meta, err
		}
		if err := checkUncommittedFiles(dir, []string{versionFilePath}); err != nil {
			return meta, err
		}
	}

	if err := vf.WriteVersion(meta.NewVersion); err != nil {
		return meta, err
	}
	meta.UpdatedFiles = []string{versionFilePath}

	if opts.Commit {
		if err := gitCommit(dir, meta.NewVersion, []string{versionFilePath}, opts.Tag); err != nil {
			return meta, err
		}
		meta.Committed = true
	}
	return meta, nil
}

// DryRun computes the bump Run would perform without writing anything.
func DryRun(versionFilePath string, bump BumpType) (VersionMeta, error) {
	meta, err := computeBump(OpenVersionFile(versionFilePath), bump)
	if err != nil {
		return meta, err
	}
	meta.UpdatedFiles = []string{versionFilePath}
	return meta, nil
}

// ExtractFromGit extracts the bump directive from the HEAD commit message of
// the repository at dir. If git fails, BumpError is returned with the error.
func ExtractFromGit(dir string) (BumpType, error) {
	msg, err := LastCommitMessage(dir)
	if err != nil {
		return BumpError, err
	}
	return ExtractBumpType(msg), nil
}

// LastCommitMessage returns the full message of the HEAD commit in dir.
func LastCommitMessage(dir string) (string, error) {
	cmd := exec.Command("git", "log", "-1", "--pretty=%B")
	cmd.Dir = dir
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git log failed: %v, detail: %s", err, strings.TrimSpace(stderr.String()))
	}
	return strings.TrimRight(string(out), "\n"), nil
}

// checkGit verifies that git is available on the system.
func checkGit() error {
	cmd := exec.Command("git", "--version")
	if err := cmd.Run(); err != nil {
		return errors.New("git is not available on the system")
	}
	return nil
}

// gitCommit stages the given files, commits with a message equal to the new
// version and, if tag is set, tags the commit with the version prefixed by "v".
func gitCommit(dir, newVersion string, files []string, tag bool) error {
	abs := make([]string, 0, len(files))
	for _, f := range files {
		p, err := filepath.Abs(f)
		if err != nil {
			return fmt.Errorf("failed to resolve path %q: %w", f, err)
		}
		abs = append(abs, p)
	}

	run := func(name string, args ...string) error {
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		var stderr bytes.Buffer
		cmd.Stderr = &stderr
		if err := cmd.Run(); err != nil {
			return fmt.Errorf("git %s failed: %v, detail: %s", name, err, stderr.String())
		}
		return nil
	}

	if err := run("add", append([]string{"add", "--"}, abs...)...); err != nil {
		return err
	}
	if err := run("commit", "commit", "-m", newVersion); err != nil {
		return err
	}
	if tag {
		if err := run("tag", "tag", "v"+newVersion); err != nil {
			return err
		}
	}
	return nil
}

// checkUncommittedFiles ensures only allowed files are modified in the
// repository containing dir.
func checkUncommittedFiles(dir string, allowed []string) error {
	top, err := exec.Command("git", "-C", dir, "rev-parse", "--show-toplevel").Output()
	if err != nil {
		return fmt.Errorf("failed to locate git repository for %s: %w", dir, err)
	}
	root := strings.TrimSpace(string(top))

	cmd := exec.Command("git", "status", "--porcelain")
	cmd.Dir = root
	out, err := cmd.Output()
	if err != nil {
		return fmt.Errorf("failed to check git status: %w", err)
	}

	allowedSet := make(map[string]struct{}, len(allowed))
	for _, f := range allowed {
		abs, err := filepath.Abs(f)
		if err != nil {
			return fmt.Errorf("failed to resolve path %q: %w", f, err)
		}
		if resolved, err := filepath.EvalSymlinks(abs); err == nil {
			abs = resolved
		}
		allowedSet[abs] = struct{}{}
	}

	var disallowed []string
	for _, line := range bytes.Split(out, []byte("\n")) {
		if len(line) < 4 {
			continue
		}
		path := string(bytes.TrimSpace(line[3:]))
		absPath := filepath.Join(root, path)
		if resolved, err := filepath.EvalSymlinks(absPath); err == nil {
			absPath = resolved
		}
		if _, ok := allowedSet[absPath]; !ok {
			disallowed = append(disallowed, path)
		}
	}

	if len(disallowed) > 0 {
		return fmt.Errorf("working directory is dirty; uncommitted files not included in commit: %v", disallowed)
	}
	return nil
}
