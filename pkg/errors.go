package commitbump

import "fmt"

// FormatError reports a version string that is not M.m.p or M.m.p+B.
type FormatError struct {
	Input  string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid version %q: %s", e.Input, e.Reason)
}

// InvalidBumpTypeError is returned when a bump is requested with BumpError.
type InvalidBumpTypeError struct {
	Bump BumpType
}

func (e *InvalidBumpTypeError) Error() string {
	return fmt.Sprintf("invalid bump type %q: expected one of major, minor, patch, build", e.Bump)
}

// FileNotFoundError reports a missing version file.
type FileNotFoundError struct {
	Path string
	Err  error
}

func (e *FileNotFoundError) Error() string {
	return fmt.Sprintf("version file %s not found", e.Path)
}

func (e *FileNotFoundError) Unwrap() error { return e.Err }

// FileAccessError reports a version file that exists but could not be
// read, written, or understood. Op is one of "read", "write" or "parse".
type FileAccessError struct {
	Path string
	Op   string
	Err  error
}

func (e *FileAccessError) Error() string {
	return fmt.Sprintf("%s version file %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileAccessError) Unwrap() error { return e.Err }
