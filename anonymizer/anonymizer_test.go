package anonymizer

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halukinal/yuzuncuyilfotograf-com/logging"
	"github.com/halukinal/yuzuncuyilfotograf-com/mapping"
)

const poolDirName = "_JURI_OYLAMA_HAVUZU"

func setupAnonymizer(t *testing.T) (*Anonymizer, string) {
	t.Helper()
	logging.Log = logrus.New()

	root := t.TempDir()
	return New(root, poolDirName), root
}

func writePhoto(t *testing.T, root, owner, name, content string) {
	t.Helper()
	dir := filepath.Join(root, owner)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func poolNames(t *testing.T, root string) []string {
	t.Helper()
	dirents, err := os.ReadDir(filepath.Join(root, poolDirName))
	require.NoError(t, err)

	var names []string
	for _, d := range dirents {
		names = append(names, d.Name())
	}
	return names
}

func TestRun(t *testing.T) {
	t.Run("Happy path - two owners, mixed extensions", func(t *testing.T) {
		a, root := setupAnonymizer(t)
		writePhoto(t, root, "Alice", "a.jpg", "photo-a")
		writePhoto(t, root, "Alice", "b.PNG", "photo-b")
		writePhoto(t, root, "Bob", "c.jpeg", "photo-c")

		entries, err := a.Run()
		require.NoError(t, err)

		assert.Equal(t, []mapping.Entry{
			{AnonymousName: "YARISMA_ID_001.jpg", Owner: "Alice", OriginalName: "a.jpg"},
			{AnonymousName: "YARISMA_ID_002.PNG", Owner: "Alice", OriginalName: "b.PNG"},
			{AnonymousName: "YARISMA_ID_003.jpeg", Owner: "Bob", OriginalName: "c.jpeg"},
		}, entries)

		assert.Equal(t, []string{"YARISMA_ID_001.jpg", "YARISMA_ID_002.PNG", "YARISMA_ID_003.jpeg"}, poolNames(t, root))

		// Copies carry the source bytes
		got, err := os.ReadFile(filepath.Join(root, poolDirName, "YARISMA_ID_003.jpeg"))
		require.NoError(t, err)
		assert.Equal(t, "photo-c", string(got))
	})

	t.Run("IDs form a gapless sequence across owners", func(t *testing.T) {
		a, root := setupAnonymizer(t)
		for _, owner := range []string{"Ayse", "Mehmet", "Zeynep"} {
			writePhoto(t, root, owner, "one.jpg", owner+"-1")
			writePhoto(t, root, owner, "two.jpg", owner+"-2")
		}

		entries, err := a.Run()
		require.NoError(t, err)
		require.Len(t, entries, 6)

		seen := map[string]bool{}
		for i, e := range entries {
			assert.Equal(t, FormatID(i+1)+".jpg", e.AnonymousName)
			assert.False(t, seen[e.AnonymousName], "duplicate id %s", e.AnonymousName)
			seen[e.AnonymousName] = true
		}
	})

	t.Run("Owners and files are enumerated in sorted order", func(t *testing.T) {
		a, root := setupAnonymizer(t)
		writePhoto(t, root, "Zeynep", "z.jpg", "z")
		writePhoto(t, root, "Ahmet", "b.jpg", "b")
		writePhoto(t, root, "Ahmet", "a.jpg", "a")

		entries, err := a.Run()
		require.NoError(t, err)
		require.Len(t, entries, 3)

		assert.Equal(t, "Ahmet", entries[0].Owner)
		assert.Equal(t, "a.jpg", entries[0].OriginalName)
		assert.Equal(t, "b.jpg", entries[1].OriginalName)
		assert.Equal(t, "Zeynep", entries[2].Owner)
	})

	t.Run("Non-image files and nested folders are skipped", func(t *testing.T) {
		a, root := setupAnonymizer(t)
		writePhoto(t, root, "Alice", "ok.jpg", "ok")
		writePhoto(t, root, "Alice", "notes.txt", "not a photo")
		writePhoto(t, root, "Alice", "raw.CR2", "not accepted")
		require.NoError(t, os.MkdirAll(filepath.Join(root, "Alice", "edits"), 0o755))

		entries, err := a.Run()
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "ok.jpg", entries[0].OriginalName)
	})

	t.Run("Symlinked submissions are accepted", func(t *testing.T) {
		a, root := setupAnonymizer(t)
		writePhoto(t, root, "Alice", "a.jpg", "real")
		require.NoError(t, os.MkdirAll(filepath.Join(root, "Bob"), 0o755))
		require.NoError(t, os.Symlink(filepath.Join(root, "Alice", "a.jpg"), filepath.Join(root, "Bob", "link.jpg")))

		entries, err := a.Run()
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "link.jpg", entries[1].OriginalName)

		got, err := os.ReadFile(filepath.Join(root, poolDirName, "YARISMA_ID_002.jpg"))
		require.NoError(t, err)
		assert.Equal(t, "real", string(got))
	})

	t.Run("Failed copy is skipped without consuming an id", func(t *testing.T) {
		a, root := setupAnonymizer(t)
		writePhoto(t, root, "Alice", "a.jpg", "a")
		writePhoto(t, root, "Alice", "b.jpg", "b")
		writePhoto(t, root, "Alice", "c.jpg", "c")

		realCopy := a.copy
		a.copy = func(src, dst string) error {
			if filepath.Base(src) == "b.jpg" {
				return errors.New("disk error")
			}
			return realCopy(src, dst)
		}

		entries, err := a.Run()
		require.NoError(t, err)

		// b.jpg is gone, its sequence number is not
		assert.Equal(t, []mapping.Entry{
			{AnonymousName: "YARISMA_ID_001.jpg", Owner: "Alice", OriginalName: "a.jpg"},
			{AnonymousName: "YARISMA_ID_002.jpg", Owner: "Alice", OriginalName: "c.jpg"},
		}, entries)
		assert.Equal(t, []string{"YARISMA_ID_001.jpg", "YARISMA_ID_002.jpg"}, poolNames(t, root))
	})

	t.Run("Hidden folders and the pool itself are not owners", func(t *testing.T) {
		a, root := setupAnonymizer(t)
		writePhoto(t, root, "Alice", "a.jpg", "a")
		writePhoto(t, root, ".Trash", "ghost.jpg", "ghost")
		writePhoto(t, root, poolDirName, "stale.jpg", "stale")

		entries, err := a.Run()
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "Alice", entries[0].Owner)
	})

	t.Run("Re-run clears the previous pool", func(t *testing.T) {
		a, root := setupAnonymizer(t)
		writePhoto(t, root, "Alice", "a.jpg", "first")

		_, err := a.Run()
		require.NoError(t, err)

		// Replace the only submission; the stale pool copy must vanish
		require.NoError(t, os.Remove(filepath.Join(root, "Alice", "a.jpg")))
		writePhoto(t, root, "Alice", "b.jpg", "second")

		entries, err := a.Run()
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "YARISMA_ID_001.jpg", entries[0].AnonymousName)
		assert.Equal(t, []string{"YARISMA_ID_001.jpg"}, poolNames(t, root))
	})

	t.Run("Re-run on unchanged tree is reproducible", func(t *testing.T) {
		a, root := setupAnonymizer(t)
		writePhoto(t, root, "Alice", "a.jpg", "photo-a")
		writePhoto(t, root, "Bob", "b.png", "photo-b")

		first, err := a.Run()
		require.NoError(t, err)
		second, err := a.Run()
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("Missing root is fatal", func(t *testing.T) {
		logging.Log = logrus.New()
		a := New("/nonexistent/contest/root", poolDirName)

		_, err := a.Run()
		assert.Error(t, err)
	})

	t.Run("Empty root yields no entries", func(t *testing.T) {
		a, _ := setupAnonymizer(t)

		entries, err := a.Run()
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}

func TestCopyFile(t *testing.T) {
	t.Run("Failed copy leaves no destination file", func(t *testing.T) {
		dir := t.TempDir()
		src := filepath.Join(dir, "srcdir")
		require.NoError(t, os.Mkdir(src, 0o755))
		dst := filepath.Join(dir, "YARISMA_ID_001.jpg")

		// Reading a directory as a file fails mid-copy
		require.Error(t, copyFile(src, dst))

		_, err := os.Stat(dst)
		assert.True(t, os.IsNotExist(err))
	})
}

func TestFormatID(t *testing.T) {
	assert.Equal(t, "YARISMA_ID_001", FormatID(1))
	assert.Equal(t, "YARISMA_ID_042", FormatID(42))
	assert.Equal(t, "YARISMA_ID_999", FormatID(999))
	// Past the padding width the ID keeps growing and lexicographic
	// ordering of the ledger no longer matches numeric ordering
	assert.Equal(t, "YARISMA_ID_1000", FormatID(1000))
}
