// Package corpus loads study entries from disk and keeps the on-disk mirror of
// the remaining entries in step with in-memory removals.
package corpus

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ppiankov/recito/internal/model"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const maxLineBytes = 1 << 20

// Store owns the working set and the mirror file that tracks it
type Store struct {
	set    *WorkingSet
	mirror string
}

// Open prepares the session files and loads the working set.
// With resume set, entries come from the mirror instead of the corpus.
func Open(paths model.Paths, exclude *regexp.Regexp, resume bool) (*Store, error) {
	if err := Initialize(paths); err != nil {
		return nil, err
	}

	source := paths.Corpus
	if resume {
		source = paths.Mirror
	}

	set, err := Load(source, exclude)
	if err != nil {
		return nil, err
	}

	return &Store{set: set, mirror: paths.Mirror}, nil
}

// Set returns the working set
func (s *Store) Set() *WorkingSet {
	return s.set
}

// MirrorPath returns the mirror file location
func (s *Store) MirrorPath() string {
	return s.mirror
}

// Initialize creates empty classification logs if missing and, when the mirror
// does not exist yet, fills it with the BOM-decoded corpus contents.
func Initialize(paths model.Paths) error {
	for _, p := range []string{paths.Known, paths.Unknown} {
		if err := ensureFile(p); err != nil {
			return err
		}
	}

	if _, err := os.Stat(paths.Mirror); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return storageErr("stat", paths.Mirror, err)
	}

	content, err := readDecoded(paths.Corpus)
	if err != nil {
		return err
	}

	if err := writeAtomic(paths.Mirror, content); err != nil {
		return storageErr("copy", paths.Mirror, err)
	}
	return nil
}

// Load reads path line by line, trims each line and keeps the non-empty lines
// that do not match exclude, in file order.
func Load(path string, exclude *regexp.Regexp) (*WorkingSet, error) {
	data, err := readDecoded(path)
	if err != nil {
		return nil, err
	}

	var entries []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if exclude != nil && exclude.MatchString(line) {
			continue
		}
		entries = append(entries, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, storageErr("read", path, err)
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyCorpus, path)
	}

	return NewWorkingSet(entries), nil
}

// Remove drops entry from the working set and rewrites the mirror without any
// line whose trimmed content equals it. Entries are matched trimmed on both
// sides. The in-memory removal happens even when the mirror cannot be
// rewritten; the returned error is a *StorageError.
func (s *Store) Remove(entry string) error {
	entry = strings.TrimSpace(entry)
	s.set.Remove(entry)
	return RemoveFromMirror(s.mirror, entry)
}

// RemoveAt is Remove for an entry whose position is already known
func (s *Store) RemoveAt(pos int) error {
	entry := s.set.At(pos)
	s.set.RemoveAt(pos)
	return RemoveFromMirror(s.mirror, entry)
}

// RemoveFromMirror rewrites the mirror without every line matching entry
func RemoveFromMirror(mirrorPath, entry string) error {
	data, err := os.ReadFile(mirrorPath)
	if err != nil {
		return storageErr("read", mirrorPath, err)
	}

	target := strings.TrimSpace(entry)
	var out bytes.Buffer
	out.Grow(len(data))
	removed := false
	for _, line := range bytes.SplitAfter(data, []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		if string(bytes.TrimSpace(line)) == target {
			removed = true
			continue
		}
		out.Write(line)
	}

	if !removed {
		return nil
	}

	if err := writeAtomic(mirrorPath, out.Bytes()); err != nil {
		return storageErr("write", mirrorPath, err)
	}
	return nil
}

func openCorpus(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrCorpusNotFound, path)
		}
		return nil, storageErr("read", path, err)
	}
	return f, nil
}

// decoder strips a leading byte-order mark and decodes UTF-16 when one says so
func decoder(r io.Reader) io.Reader {
	return transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
}

// readDecoded returns the contents of path as UTF-8 without a byte-order mark.
// Input without a UTF-16 mark must already be valid UTF-8.
func readDecoded(path string) ([]byte, error) {
	f, err := openCorpus(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	raw, err := io.ReadAll(f)
	if err != nil {
		return nil, storageErr("read", path, err)
	}

	if !hasUTF16Mark(raw) && !utf8.Valid(raw) {
		return nil, storageErr("read", path, ErrInvalidEncoding)
	}

	data, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), raw)
	if err != nil {
		return nil, storageErr("read", path, err)
	}
	return data, nil
}

func hasUTF16Mark(b []byte) bool {
	return bytes.HasPrefix(b, []byte{0xFF, 0xFE}) || bytes.HasPrefix(b, []byte{0xFE, 0xFF})
}

func ensureFile(path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE, 0644)
	if err != nil {
		return storageErr("create", path, err)
	}
	if err := f.Close(); err != nil {
		return storageErr("create", path, err)
	}
	return nil
}

// writeAtomic replaces path with data through a temp file in the same directory
func writeAtomic(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err = os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
