package walk

import (
	"fmt"
	"github.com/spf13/afero"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Entry is a directory discovered during a scan. It may disappear during the same run, see Exists.
type Entry struct {
	Path string //absolute, cleaned
	Name string //last path segment
}

func NewEntry(path string) Entry {
	clean := filepath.Clean(path)
	return Entry{Path: clean, Name: filepath.Base(clean)}
}

// Exists reports whether the entry is still a directory. It is always checked live because earlier merges may have consumed it.
func (e Entry) Exists(fsys afero.Fs) bool {
	isDir, err := afero.IsDir(fsys, e.Path)
	return err == nil && isDir
}

func (e Entry) String() string {
	return e.Path
}

type Walker struct {
	fs afero.Fs
}

func New(fsys afero.Fs) Walker {
	return Walker{fs: fsys}
}

// Siblings lists the directories directly inside dir, sorted by display name.
// Symbolic links are never listed: merging removes the source tree and must not reach through a link.
func (w Walker) Siblings(dir string) ([]Entry, error) {
	infos, err := afero.ReadDir(w.fs, dir)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}
	var entries []Entry
	for _, info := range infos {
		if isPlainDir(info) {
			entries = append(entries, NewEntry(filepath.Join(dir, info.Name())))
		}
	}
	SortByName(entries)
	return entries, nil
}

// Subtree lists every directory below root (root excluded), deepest first, ties sorted by path.
func (w Walker) Subtree(root string) ([]Entry, error) {
	root = filepath.Clean(root)
	var entries []Entry
	err := afero.Walk(w.fs, root, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}
		if !isPlainDir(info) {
			return nil
		}
		entries = append(entries, NewEntry(path))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		di, dj := Depth(entries[i].Path), Depth(entries[j].Path)
		if di != dj {
			return di > dj
		}
		return entries[i].Path < entries[j].Path
	})
	return entries, nil
}

// SortByName orders entries by display name, falling back to the full path for equal names.
func SortByName(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Name != entries[j].Name {
			return entries[i].Name < entries[j].Name
		}
		return entries[i].Path < entries[j].Path
	})
}

func Depth(path string) int {
	return strings.Count(filepath.Clean(path), string(os.PathSeparator))
}

func isPlainDir(info fs.FileInfo) bool {
	return info.IsDir() && info.Mode()&fs.ModeSymlink == 0
}
