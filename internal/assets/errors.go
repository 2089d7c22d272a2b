package assets

import (
	"errors"
	"path/filepath"
)

// ErrMissing is matched by every MissingError.
var ErrMissing = errors.New("asset missing")

// MissingError reports a required file that could not be loaded.
type MissingError struct {
	Path string
	Err  error
}

func (e *MissingError) Error() string {
	return "failed to load " + e.Path + ": " + e.Err.Error()
}

func (e *MissingError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrMissing) true.
func (e *MissingError) Is(target error) bool { return target == ErrMissing }

// FileName returns the base name of the missing file.
func (e *MissingError) FileName() string {
	return filepath.Base(e.Path)
}

// Missing wraps err as a MissingError for path.
func Missing(path string, err error) error {
	return &MissingError{Path: path, Err: err}
}

// MissingFile extracts the file name from an error chain containing a
// MissingError.
func MissingFile(err error) (string, bool) {
	var me *MissingError
	if errors.As(err, &me) {
		return me.FileName(), true
	}
	return "", false
}
