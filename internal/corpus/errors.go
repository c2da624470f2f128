package corpus

import (
	"errors"
	"fmt"
)

var (
	ErrCorpusNotFound  = errors.New("corpus: file not found")
	ErrEmptyCorpus     = errors.New("corpus: no entries left after filtering")
	ErrInvalidEncoding = errors.New("corpus: file is not valid UTF-8")
)

// StorageError reports an I/O failure on one of the session files
type StorageError struct {
	Op   string // "read", "write", "copy", "append", "create"
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func storageErr(op, path string, err error) error {
	return &StorageError{Op: op, Path: path, Err: err}
}
