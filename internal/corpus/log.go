package corpus

import (
	"bufio"
	"errors"
	"io/fs"
	"os"
	"strings"
)

// Log is an append-only file of classified entries, one per line
type Log struct {
	path string
}

// NewLog returns a log writing to path
func NewLog(path string) *Log {
	return &Log{path: path}
}

// Path returns the log file location
func (l *Log) Path() string {
	return l.path
}

// Append writes entry as a new line
func (l *Log) Append(entry string) error {
	f, err := os.OpenFile(l.path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return storageErr("append", l.path, err)
	}

	if _, err := f.WriteString(entry + "\n"); err != nil {
		_ = f.Close()
		return storageErr("append", l.path, err)
	}
	if err := f.Close(); err != nil {
		return storageErr("append", l.path, err)
	}
	return nil
}

// Count returns the number of non-blank lines. A missing log counts as empty.
func (l *Log) Count() (int, error) {
	return CountLines(l.path)
}

// CountLines counts non-blank lines in path. A missing file counts as empty.
func CountLines(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, nil
		}
		return 0, storageErr("read", path, err)
	}
	defer f.Close()

	n := 0
	scanner := bufio.NewScanner(decoder(f))
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) != "" {
			n++
		}
	}
	if err := scanner.Err(); err != nil {
		return 0, storageErr("read", path, err)
	}
	return n, nil
}
