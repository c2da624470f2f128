package corpus

import (
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"unicode/utf16"

	"github.com/ppiankov/recito/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testExclude = regexp.MustCompile(`[《》0-9()·]`)

func testPaths(t *testing.T, corpus string) model.Paths {
	t.Helper()
	dir := t.TempDir()
	paths := model.Paths{
		Corpus:  filepath.Join(dir, "sentences.txt"),
		Mirror:  filepath.Join(dir, "sentences_new.txt"),
		Known:   filepath.Join(dir, "true.txt"),
		Unknown: filepath.Join(dir, "false.txt"),
	}
	require.NoError(t, os.WriteFile(paths.Corpus, []byte(corpus), 0644))
	return paths
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestLoad_FiltersAndKeepsOrder(t *testing.T) {
	paths := testPaths(t, "《诗经》\n  关关雎鸠，在河之洲。  \n\n第1首\n窈窕淑女，君子好逑。\r\n李白(唐)\n")

	set, err := Load(paths.Corpus, testExclude)
	require.NoError(t, err)
	assert.Equal(t, []string{"关关雎鸠，在河之洲。", "窈窕淑女，君子好逑。"}, set.Entries())
}

func TestLoad_StripsByteOrderMark(t *testing.T) {
	paths := testPaths(t, "\ufeff花谢花飞花满天，红消香断有谁怜。\n")

	set, err := Load(paths.Corpus, testExclude)
	require.NoError(t, err)
	require.Equal(t, 1, set.Len())
	assert.Equal(t, "花谢花飞花满天，红消香断有谁怜。", set.At(0))
}

func utf16LE(s string) []byte {
	out := []byte{0xFF, 0xFE}
	for _, u := range utf16.Encode([]rune(s)) {
		out = append(out, byte(u), byte(u>>8))
	}
	return out
}

func TestLoad_UTF16ByteOrderMark(t *testing.T) {
	paths := testPaths(t, "")
	require.NoError(t, os.WriteFile(paths.Corpus, utf16LE("床前明月光，疑是地上霜。\r\n《静夜思》\r\n"), 0644))

	set, err := Load(paths.Corpus, testExclude)
	require.NoError(t, err)
	assert.Equal(t, []string{"床前明月光，疑是地上霜。"}, set.Entries())

	require.NoError(t, Initialize(paths))
	assert.Equal(t, "床前明月光，疑是地上霜。\r\n《静夜思》\r\n", readFile(t, paths.Mirror))
}

func TestInitialize_InvalidUTF8(t *testing.T) {
	paths := testPaths(t, "甲，乙。\xff\n")

	err := Initialize(paths)
	var serr *StorageError
	require.True(t, errors.As(err, &serr), "got %v", err)
	assert.ErrorIs(t, err, ErrInvalidEncoding)
	assert.Equal(t, paths.Corpus, serr.Path)

	_, statErr := os.Stat(paths.Mirror)
	assert.True(t, os.IsNotExist(statErr), "mirror must not be written from undecodable input")

	_, err = Load(paths.Corpus, testExclude)
	assert.ErrorIs(t, err, ErrInvalidEncoding)
}

func TestLoad_EmptyAfterFiltering(t *testing.T) {
	paths := testPaths(t, "《诗经》\n\n   \n")

	_, err := Load(paths.Corpus, testExclude)
	assert.True(t, errors.Is(err, ErrEmptyCorpus), "got %v", err)
}

func TestLoad_MissingCorpus(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.txt"), testExclude)
	assert.True(t, errors.Is(err, ErrCorpusNotFound), "got %v", err)
}

func TestInitialize_CreatesLogsAndMirror(t *testing.T) {
	paths := testPaths(t, "\ufeff床前明月光，疑是地上霜。\n举头望明月，低头思故乡。\n")

	require.NoError(t, Initialize(paths))

	assert.Equal(t, "", readFile(t, paths.Known))
	assert.Equal(t, "", readFile(t, paths.Unknown))
	assert.Equal(t, "床前明月光，疑是地上霜。\n举头望明月，低头思故乡。\n", readFile(t, paths.Mirror))
}

func TestInitialize_KeepsExistingFiles(t *testing.T) {
	paths := testPaths(t, "床前明月光，疑是地上霜。\n")
	require.NoError(t, os.WriteFile(paths.Mirror, []byte("举头望明月，低头思故乡。\n"), 0644))
	require.NoError(t, os.WriteFile(paths.Known, []byte("already\n"), 0644))

	require.NoError(t, Initialize(paths))

	assert.Equal(t, "举头望明月，低头思故乡。\n", readFile(t, paths.Mirror))
	assert.Equal(t, "already\n", readFile(t, paths.Known))
}

func TestInitialize_MissingCorpus(t *testing.T) {
	paths := testPaths(t, "")
	require.NoError(t, os.Remove(paths.Corpus))

	err := Initialize(paths)
	assert.True(t, errors.Is(err, ErrCorpusNotFound), "got %v", err)
}

func TestStore_RemoveRepairsMirror(t *testing.T) {
	paths := testPaths(t, "甲，乙。\n丙，丁。\n  甲，乙。\r\n戊，己。")
	store, err := Open(paths, testExclude, false)
	require.NoError(t, err)
	require.Equal(t, 4, store.Set().Len())

	require.NoError(t, store.Remove("甲，乙。"))
	assert.Equal(t, 3, store.Set().Len())
	assert.Equal(t, "丙，丁。\n戊，己。", readFile(t, paths.Mirror))

	// Second removal takes the duplicate in memory; the mirror is already clean.
	require.NoError(t, store.Remove("甲，乙。"))
	assert.Equal(t, 2, store.Set().Len())
	assert.Equal(t, "丙，丁。\n戊，己。", readFile(t, paths.Mirror))
	assert.ElementsMatch(t, []string{"丙，丁。", "戊，己。"}, store.Set().Entries())
}

func TestStore_RemoveMatchesTrimmedEntry(t *testing.T) {
	paths := testPaths(t, "甲，乙。\n丙，丁。\n")
	store, err := Open(paths, testExclude, false)
	require.NoError(t, err)

	require.NoError(t, store.Remove("  甲，乙。 "))
	assert.Equal(t, []string{"丙，丁。"}, store.Set().Entries())
	assert.Equal(t, "丙，丁。\n", readFile(t, paths.Mirror))
}

func TestStore_RemoveMirrorFailureStillRemovesInMemory(t *testing.T) {
	paths := testPaths(t, "甲，乙。\n丙，丁。\n")
	store, err := Open(paths, testExclude, false)
	require.NoError(t, err)
	require.NoError(t, os.Remove(paths.Mirror))

	err = store.Remove("甲，乙。")
	var serr *StorageError
	require.True(t, errors.As(err, &serr), "got %v", err)
	assert.Equal(t, paths.Mirror, serr.Path)
	assert.Equal(t, []string{"丙，丁。"}, store.Set().Entries())
}

func TestOpen_ResumeLoadsMirror(t *testing.T) {
	paths := testPaths(t, "甲，乙。\n丙，丁。\n")
	require.NoError(t, os.WriteFile(paths.Mirror, []byte("丙，丁。\n"), 0644))

	store, err := Open(paths, testExclude, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"丙，丁。"}, store.Set().Entries())
}

func TestLog_AppendAndCount(t *testing.T) {
	path := filepath.Join(t.TempDir(), "true.txt")
	log := NewLog(path)

	n, err := log.Count()
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	require.NoError(t, log.Append("甲，乙。"))
	require.NoError(t, log.Append("甲，乙。"))

	assert.Equal(t, "甲，乙。\n甲，乙。\n", readFile(t, path))
	n, err = log.Count()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
