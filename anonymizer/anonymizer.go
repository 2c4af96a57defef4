// Package anonymizer turns a tree of per-participant submission folders
// into a flat jury pool of sequentially renamed copies, producing the
// owner-mapping entries that link the two back together.
package anonymizer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/halukinal/yuzuncuyilfotograf-com/logging"
	"github.com/halukinal/yuzuncuyilfotograf-com/mapping"
)

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

type Anonymizer struct {
	RootDir     string
	PoolDirName string

	copy func(src, dst string) error
}

func New(rootDir, poolDirName string) *Anonymizer {
	return &Anonymizer{
		RootDir:     rootDir,
		PoolDirName: poolDirName,
		copy:        copyFile,
	}
}

// FormatID renders sequence number seq as a public anonymous identifier.
// Padding is 3 digits minimum; the counter keeps going past 999.
func FormatID(seq int) string {
	return fmt.Sprintf("YARISMA_ID_%03d", seq)
}

// Run scans the contest root, repopulates the jury pool and returns one
// mapping entry per copied photo, in assignment order.
//
// Owner folders and the files inside them are processed in lexicographic
// order, so an unchanged source tree always yields the same assignment.
// A sequence number is only consumed once its file has been copied; a
// failed copy is logged and skipped.
func (a *Anonymizer) Run() ([]mapping.Entry, error) {
	if _, err := os.Stat(a.RootDir); err != nil {
		return nil, fmt.Errorf("contest root %s: %w", a.RootDir, err)
	}

	poolDir := filepath.Join(a.RootDir, a.PoolDirName)
	if err := resetPool(poolDir); err != nil {
		return nil, err
	}

	owners, err := a.listOwners()
	if err != nil {
		return nil, err
	}

	var entries []mapping.Entry
	seq := 1
	for _, owner := range owners {
		logging.Log.Infof("ANONYMIZER: processing %s", owner)

		files, err := listImages(filepath.Join(a.RootDir, owner))
		if err != nil {
			return nil, err
		}
		for _, name := range files {
			// Extension match is case-insensitive but the pooled copy
			// keeps the original casing
			anonymousName := FormatID(seq) + filepath.Ext(name)

			src := filepath.Join(a.RootDir, owner, name)
			dst := filepath.Join(poolDir, anonymousName)
			if err := a.copy(src, dst); err != nil {
				logging.Log.Errorf("ANONYMIZER: failed to copy %s: %v", src, err)
				continue
			}
			logging.Log.Infof("ANONYMIZER: copied %s", anonymousName)

			entries = append(entries, mapping.Entry{
				AnonymousName: anonymousName,
				Owner:         owner,
				OriginalName:  name,
			})
			seq++
		}
	}
	return entries, nil
}

// listOwners returns the participant folder names under the root, sorted.
// The pool folder itself and hidden/system entries are not participants.
func (a *Anonymizer) listOwners() ([]string, error) {
	dirents, err := os.ReadDir(a.RootDir)
	if err != nil {
		return nil, fmt.Errorf("read contest root %s: %w", a.RootDir, err)
	}

	var owners []string
	for _, d := range dirents {
		if !d.IsDir() {
			continue
		}
		if d.Name() == a.PoolDirName || strings.HasPrefix(d.Name(), ".") {
			continue
		}
		owners = append(owners, d.Name())
	}
	sort.Strings(owners)
	return owners, nil
}

func listImages(dir string) ([]string, error) {
	dirents, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read owner folder %s: %w", dir, err)
	}

	var names []string
	for _, d := range dirents {
		if d.IsDir() {
			continue
		}
		// Stat follows symlinks, so a linked submission still counts
		info, err := os.Stat(filepath.Join(dir, d.Name()))
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		if !imageExtensions[strings.ToLower(filepath.Ext(d.Name()))] {
			continue
		}
		names = append(names, d.Name())
	}
	sort.Strings(names)
	return names, nil
}

// resetPool clears any previous pool and recreates it empty, so the pool
// always mirrors exactly the current source tree.
func resetPool(poolDir string) error {
	if _, err := os.Stat(poolDir); err == nil {
		logging.Log.Infof("ANONYMIZER: clearing pool %s", poolDir)
		if err := os.RemoveAll(poolDir); err != nil {
			return fmt.Errorf("clear pool %s: %w", poolDir, err)
		}
	}
	if err := os.MkdirAll(poolDir, 0o755); err != nil {
		return fmt.Errorf("create pool %s: %w", poolDir, err)
	}
	return nil
}

// copyFile copies src to dst. A failed copy removes dst again: the pool
// must never hold a file that has no mapping row.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(dst)
		return err
	}
	return nil
}
